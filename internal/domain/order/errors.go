package order

import "errors"

// Domain errors for order operations

var (
	ErrEmptyOrder    = errors.New("order must contain at least one item")
	ErrNegativeTotal = errors.New("order total cannot be negative")
)
