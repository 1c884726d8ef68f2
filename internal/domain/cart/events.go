package cart

import (
	"time"

	"github.com/google/uuid"
)

// Domain events raised by the cart aggregate

// LineAddedEvent is raised when a new line is appended to the cart
type LineAddedEvent struct {
	LineID         uuid.UUID
	IngredientName string
	Brand          string
	Store          string
	AddedAt        time.Time
}

func (e LineAddedEvent) EventName() string     { return "cart.line_added" }
func (e LineAddedEvent) OccurredAt() time.Time { return e.AddedAt }

// LineMergedEvent is raised when adding a duplicate increments an existing line
type LineMergedEvent struct {
	LineID      uuid.UUID
	NewQuantity int
	MergedAt    time.Time
}

func (e LineMergedEvent) EventName() string     { return "cart.line_merged" }
func (e LineMergedEvent) OccurredAt() time.Time { return e.MergedAt }

// QuantityUpdatedEvent is raised when a line quantity is replaced
type QuantityUpdatedEvent struct {
	LineID      uuid.UUID
	OldQuantity int
	NewQuantity int
	UpdatedAt   time.Time
}

func (e QuantityUpdatedEvent) EventName() string     { return "cart.quantity_updated" }
func (e QuantityUpdatedEvent) OccurredAt() time.Time { return e.UpdatedAt }

// LineRemovedEvent is raised when a line is removed from the cart
type LineRemovedEvent struct {
	LineID    uuid.UUID
	RemovedAt time.Time
}

func (e LineRemovedEvent) EventName() string     { return "cart.line_removed" }
func (e LineRemovedEvent) OccurredAt() time.Time { return e.RemovedAt }

// ClearedEvent is raised when the cart is emptied
type ClearedEvent struct {
	LineCount int
	ClearedAt time.Time
}

func (e ClearedEvent) EventName() string     { return "cart.cleared" }
func (e ClearedEvent) OccurredAt() time.Time { return e.ClearedAt }
