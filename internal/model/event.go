package model

import "github.com/shopspring/decimal"

// TicketTier is a named ticket category within an event.  Price is
// currency-agnostic; Quantity is the remaining sellable count.  Quantity
// is only ever reduced by the purchase flow or overwritten wholesale by
// a full event update.
//
// Fields:
//  Name     – tier identifier, unique per event by convention (purchase
//             matches tiers by name).
//  Price    – unit price for one ticket of this tier.
//  Quantity – remaining sellable count, never negative.
type TicketTier struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

// Event is a row in the `events` table together with its ordered ticket
// tiers from `ticket_tiers`.  The Date field is always stored in the
// canonical DD/MM/YYYY form; input normalization happens before the
// record reaches the store.
//
// Fields:
//  ID           – primary key, assigned at creation, immutable.
//  Name         – event title.
//  Organization – organizing entity.
//  Venue        – where the event takes place.
//  Date         – canonical DD/MM/YYYY date string.
//  Tickets      – ordered tier list, order preserved across round trips.
type Event struct {
	ID           uint64       `json:"id"`
	Name         string       `json:"name"`
	Organization string       `json:"organization"`
	Venue        string       `json:"venue"`
	Date         string       `json:"date"`
	Tickets      []TicketTier `json:"tickets"`
}

// CloneTickets returns a deep copy of the event's tier slice so callers
// can mutate the copy without touching shared state.
func (e Event) CloneTickets() []TicketTier {
	if e.Tickets == nil {
		return nil
	}
	out := make([]TicketTier, len(e.Tickets))
	copy(out, e.Tickets)
	return out
}
