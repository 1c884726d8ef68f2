// Package cart contains the core domain logic for the shopping cart.
// This follows Domain-Driven Design principles with rich domain models.
package cart

import (
	"time"

	"github.com/dishcart/assistant/internal/domain/shared"
	"github.com/google/uuid"
)

// MinQuantity is the lowest quantity a cart line may hold. Updates below
// it are clamped rather than rejected.
const MinQuantity = 1

// Cart is the aggregate root owning the ordered list of cart lines.
// Insertion order is preserved for display. Quantity >= MinQuantity holds
// for every line at all times.
type Cart struct {
	shared.AggregateRoot

	lines []Line
}

// New creates an empty cart
func New() *Cart {
	return &Cart{lines: []Line{}}
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct cart lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// AddLine adds a line for the given ingredient and offer. If a line with
// the same (ingredient, brand, store) key already exists its quantity is
// incremented by one; otherwise the line is appended with quantity one.
func (c *Cart) AddLine(line Line) error {
	if err := line.Validate(); err != nil {
		return err
	}

	now := time.Now()
	key := line.Key()
	for i := range c.lines {
		if c.lines[i].Key() == key {
			c.lines[i].Quantity++
			c.AddEvent(LineMergedEvent{
				LineID:      c.lines[i].ID,
				NewQuantity: c.lines[i].Quantity,
				MergedAt:    now,
			})
			return nil
		}
	}

	line.ID = uuid.New()
	line.Quantity = MinQuantity
	c.lines = append(c.lines, line)

	c.AddEvent(LineAddedEvent{
		LineID:         line.ID,
		IngredientName: line.IngredientName,
		Brand:          line.Brand,
		Store:          line.Store,
		AddedAt:        now,
	})

	return nil
}

// UpdateQuantity replaces the quantity of the line at the given position.
// Quantities below MinQuantity clamp to MinQuantity.
func (c *Cart) UpdateQuantity(index, quantity int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrLineIndexOutOfRange
	}

	if quantity < MinQuantity {
		quantity = MinQuantity
	}

	old := c.lines[index].Quantity
	c.lines[index].Quantity = quantity

	c.AddEvent(QuantityUpdatedEvent{
		LineID:      c.lines[index].ID,
		OldQuantity: old,
		NewQuantity: quantity,
		UpdatedAt:   time.Now(),
	})

	return nil
}

// RemoveLine removes the line at the given position.
func (c *Cart) RemoveLine(index int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrLineIndexOutOfRange
	}

	removed := c.lines[index]
	c.lines = append(c.lines[:index], c.lines[index+1:]...)

	c.AddEvent(LineRemovedEvent{
		LineID:    removed.ID,
		RemovedAt: time.Now(),
	})

	return nil
}

// Total returns the sum of unit price times quantity over all lines.
// Recomputed on every call; lines mutate independently so the value is
// never cached.
func (c *Cart) Total() int {
	var total int
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

// GroupByStore partitions the lines by store for display. Store buckets
// appear in first-seen order and lines keep their relative insertion
// order within each bucket. The cart is not mutated.
func (c *Cart) GroupByStore() []StoreGroup {
	groups := []StoreGroup{}
	indexByStore := map[string]int{}

	for _, line := range c.lines {
		i, seen := indexByStore[line.Store]
		if !seen {
			i = len(groups)
			indexByStore[line.Store] = i
			groups = append(groups, StoreGroup{Store: line.Store})
		}
		groups[i].Lines = append(groups[i].Lines, line)
	}

	return groups
}

// Clear empties the cart.
func (c *Cart) Clear() {
	count := len(c.lines)
	c.lines = []Line{}

	c.AddEvent(ClearedEvent{
		LineCount: count,
		ClearedAt: time.Now(),
	})
}

// Snapshot returns a deep copy of the current lines, detached from the
// cart so later mutation cannot reach it. Used for order capture.
func (c *Cart) Snapshot() []Line {
	return c.Lines()
}
