package cart

import "errors"

// Domain errors for cart operations

var (
	ErrLineIndexOutOfRange = errors.New("cart line index out of range")
	ErrEmptyIngredientName = errors.New("ingredient name is required")
	ErrEmptyBrand          = errors.New("brand is required")
	ErrNegativeUnitPrice   = errors.New("unit price cannot be negative")
)
