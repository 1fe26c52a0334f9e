// Package purchase implements the ticket purchase flow: availability
// checks, price computation and the atomic inventory decrement.
package purchase

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"ticketr/internal/model"
	"ticketr/internal/repository"
)

// Line is one basket entry: a tier name and the number of tickets
// requested from it. The basket does not have to cover every tier of
// the event; tiers it never names are left untouched.
type Line struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// InsufficientInventoryError rejects a purchase that the availability
// policy cannot satisfy. Available carries the event's current tier
// snapshot so the caller can show the buyer what is left.
type InsufficientInventoryError struct {
	Available []model.TicketTier
}

func (e *InsufficientInventoryError) Error() string { return "not enough tickets" }

// Engine executes purchases against one EventStore. The read-check-write
// sequence for a given event id runs under a per-event mutex, so two
// concurrent purchases of the same event can never both pass the
// availability check against a stale quantity. Purchases of different
// events never contend.
type Engine struct {
	store repository.EventStore

	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}

// NewEngine returns an Engine bound to the given store.
func NewEngine(store repository.EventStore) *Engine {
	return &Engine{store: store, locks: make(map[uint64]*sync.Mutex)}
}

// Receipt is the outcome of a successful purchase: the event with its
// decremented tiers, the total charged and the number of tickets that
// were actually sold (basket lines naming unknown tiers sell nothing).
type Receipt struct {
	Event model.Event
	Total decimal.Decimal
	Sold  int64
}

// Purchase applies the basket to the event and returns a receipt with
// the updated event and the computed total price.
//
// The availability policy is deliberately tier-wide: with minRequested
// being the smallest quantity in the basket, a purchase is rejected
// outright when any tier of the event, basketed or not, holds fewer
// than minRequested tickets or is sold out. Basket lines that name no
// existing tier are skipped without error and contribute nothing to the
// total. Totals always use the tier's stored price; the buyer cannot
// supply one.
//
// A line larger than its own tier's stock still commits when the
// tier-wide check passes; the tier's quantity goes negative, which in
// turn blocks every later purchase of the event.
//
// Errors: repository.ErrEventNotFound when the id is unknown, and
// *InsufficientInventoryError when the policy rejects the basket.
func (e *Engine) Purchase(ctx context.Context, eventID uint64, basket []Line) (Receipt, error) {
	lock := e.lockFor(eventID)
	lock.Lock()
	defer lock.Unlock()

	ev, err := e.store.GetByID(ctx, eventID)
	if err != nil {
		return Receipt{}, err
	}

	minRequested := minQuantity(basket)
	for _, t := range ev.Tickets {
		if t.Quantity < minRequested || t.Quantity == 0 {
			return Receipt{}, &InsufficientInventoryError{Available: ev.CloneTickets()}
		}
	}

	tickets := ev.CloneTickets()
	total := decimal.Zero
	var sold int64
	for _, line := range basket {
		idx := tierIndex(tickets, line.Name)
		if idx < 0 {
			continue // unknown tier: no charge, no decrement
		}
		tickets[idx].Quantity -= line.Quantity
		total = total.Add(tickets[idx].Price.Mul(decimal.NewFromInt(line.Quantity)))
		sold += line.Quantity
	}

	if err := e.store.UpdateTickets(ctx, eventID, tickets); err != nil {
		return Receipt{}, err
	}
	ev.Tickets = tickets
	return Receipt{Event: ev, Total: total, Sold: sold}, nil
}

// Forget drops the purchase lock of an event, keeping the lock map
// bounded by the live catalog. Called after a catalog delete; a
// purchase racing the delete simply fails its event lookup.
func (e *Engine) Forget(eventID uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.locks, eventID)
}

// lockFor returns the mutex serializing purchases of one event id,
// creating it on first use.
func (e *Engine) lockFor(eventID uint64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[eventID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[eventID] = l
	}
	return l
}

func minQuantity(basket []Line) int64 {
	if len(basket) == 0 {
		return 0
	}
	min := basket[0].Quantity
	for _, l := range basket[1:] {
		if l.Quantity < min {
			min = l.Quantity
		}
	}
	return min
}

func tierIndex(tickets []model.TicketTier, name string) int {
	for i, t := range tickets {
		if t.Name == name {
			return i
		}
	}
	return -1
}
