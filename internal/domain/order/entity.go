// Package order contains the order snapshot captured at checkout.
package order

import (
	"time"

	"github.com/dishcart/assistant/internal/domain/cart"
	"github.com/google/uuid"
)

// Order is an immutable snapshot of the cart at checkout time. It is
// detached from the live cart: later cart mutation does not affect it.
type Order struct {
	id       uuid.UUID
	items    []cart.Line
	total    int
	placedAt time.Time
}

// New creates an order from a cart snapshot and its total. The lines are
// copied so the order owns its items outright.
func New(items []cart.Line, total int) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	if total < 0 {
		return nil, ErrNegativeTotal
	}

	copied := make([]cart.Line, len(items))
	copy(copied, items)

	return &Order{
		id:       uuid.New(),
		items:    copied,
		total:    total,
		placedAt: time.Now(),
	}, nil
}

// ID returns the order's unique identifier
func (o *Order) ID() uuid.UUID {
	return o.id
}

// Items returns a copy of the ordered items
func (o *Order) Items() []cart.Line {
	out := make([]cart.Line, len(o.items))
	copy(out, o.items)
	return out
}

// Total returns the order total in whole currency units
func (o *Order) Total() int {
	return o.total
}

// PlacedAt returns when the order was recorded
func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}
