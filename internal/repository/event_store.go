package repository

import (
	"context"

	"ticketr/internal/model"
)

// EventFilter restricts List to events whose fields exactly match every
// non-empty filter value. Empty fields are ignored.
type EventFilter struct {
	Name         string
	Organization string
	Venue        string
	Date         string
}

// EventStore is the durable mapping from event id to event record. Two
// implementations exist: EventRepo backed by MySQL for production and
// MemoryEventStore for tests and DB-free development. UpdateTickets is
// the only write the purchase flow performs; implementations must apply
// it all-or-nothing so a failed purchase never leaves a partial
// decrement behind.
type EventStore interface {
	// GetByID returns the event or ErrEventNotFound.
	GetByID(ctx context.Context, id uint64) (model.Event, error)
	// List returns events matching the filter. Order is stable for a
	// fixed store state but otherwise unspecified.
	List(ctx context.Context, f EventFilter) ([]model.Event, error)
	// Create persists a new event and assigns its ID.
	Create(ctx context.Context, ev *model.Event) error
	// Replace overwrites every mutable field of an existing event,
	// tickets included. Returns ErrEventNotFound for an absent id.
	Replace(ctx context.Context, id uint64, ev model.Event) (model.Event, error)
	// Delete removes the event and its tiers. Returns ErrEventNotFound
	// for an absent id.
	Delete(ctx context.Context, id uint64) error
	// UpdateTickets overwrites only the tier array of an existing
	// event. Used by the purchase flow after quantities are decremented.
	UpdateTickets(ctx context.Context, id uint64, tickets []model.TicketTier) error
}
