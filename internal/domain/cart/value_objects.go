package cart

// Value Objects - Immutable objects that describe aspects of the domain

import "github.com/google/uuid"

// Line is a single cart entry: one brand offer chosen for one ingredient.
// Two lines are the same entry when their keys match; adding a duplicate
// merges into the existing line instead of appending.
type Line struct {
	ID             uuid.UUID
	IngredientName string
	Brand          string
	UnitPrice      int
	PackageWeight  string
	Store          string
	ImageRef       string
	Quantity       int
}

// Key identifies a cart line for merge-on-add purposes.
type Key struct {
	IngredientName string
	Brand          string
	Store          string
}

// Key returns the line's identity key.
func (l Line) Key() Key {
	return Key{
		IngredientName: l.IngredientName,
		Brand:          l.Brand,
		Store:          l.Store,
	}
}

// Subtotal returns unit price times quantity for this line.
func (l Line) Subtotal() int {
	return l.UnitPrice * l.Quantity
}

// Validate validates the line
func (l Line) Validate() error {
	if l.IngredientName == "" {
		return ErrEmptyIngredientName
	}
	if l.Brand == "" {
		return ErrEmptyBrand
	}
	if l.UnitPrice < 0 {
		return ErrNegativeUnitPrice
	}
	return nil
}

// StoreGroup is one store's bucket of cart lines, in insertion order.
type StoreGroup struct {
	Store string
	Lines []Line
}
