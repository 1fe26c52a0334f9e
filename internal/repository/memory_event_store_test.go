package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketr/internal/model"
)

func seedEvent(t *testing.T, s *MemoryEventStore, name, org, venue, date string, tickets []model.TicketTier) model.Event {
	t.Helper()
	ev := model.Event{Name: name, Organization: org, Venue: venue, Date: date, Tickets: tickets}
	require.NoError(t, s.Create(context.Background(), &ev))
	return ev
}

func standardTiers() []model.TicketTier {
	return []model.TicketTier{
		{Name: "standard", Price: decimal.NewFromInt(10), Quantity: 60},
		{Name: "vip", Price: decimal.NewFromInt(25), Quantity: 10},
	}
}

func TestMemoryEventStoreCreateAssignsSequentialIDs(t *testing.T) {
	s := NewMemoryEventStore()
	a := seedEvent(t, s, "A", "Org", "Venue", "01/01/2026", nil)
	b := seedEvent(t, s, "B", "Org", "Venue", "02/01/2026", nil)
	assert.Equal(t, uint64(1), a.ID)
	assert.Equal(t, uint64(2), b.ID)
}

func TestMemoryEventStoreRoundTrip(t *testing.T) {
	s := NewMemoryEventStore()
	created := seedEvent(t, s, "Concert", "LiveOrg", "Arena", "03/04/2026", standardTiers())

	got, err := s.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Date, got.Date)
	require.Len(t, got.Tickets, 2)
	assert.Equal(t, "standard", got.Tickets[0].Name)
	assert.True(t, got.Tickets[0].Price.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, int64(60), got.Tickets[0].Quantity)
}

func TestMemoryEventStoreReturnsCopies(t *testing.T) {
	s := NewMemoryEventStore()
	created := seedEvent(t, s, "Concert", "LiveOrg", "Arena", "03/04/2026", standardTiers())

	got, err := s.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	got.Tickets[0].Quantity = 0 // mutating the copy must not touch the store

	again, err := s.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(60), again.Tickets[0].Quantity)
}

func TestMemoryEventStoreGetMissing(t *testing.T) {
	s := NewMemoryEventStore()
	_, err := s.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestMemoryEventStoreListFilters(t *testing.T) {
	s := NewMemoryEventStore()
	seedEvent(t, s, "Rock Night", "LiveOrg", "Arena", "03/04/2026", nil)
	seedEvent(t, s, "Jazz Night", "LiveOrg", "Club", "03/04/2026", nil)
	seedEvent(t, s, "Rock Night", "OtherOrg", "Arena", "05/04/2026", nil)

	ctx := context.Background()

	all, err := s.List(ctx, EventFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byOrg, err := s.List(ctx, EventFilter{Organization: "LiveOrg"})
	require.NoError(t, err)
	assert.Len(t, byOrg, 2)

	narrow, err := s.List(ctx, EventFilter{Name: "Rock Night", Venue: "Arena", Date: "03/04/2026"})
	require.NoError(t, err)
	assert.Len(t, narrow, 1)

	none, err := s.List(ctx, EventFilter{Venue: "Stadium"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryEventStoreReplace(t *testing.T) {
	s := NewMemoryEventStore()
	created := seedEvent(t, s, "Concert", "LiveOrg", "Arena", "03/04/2026", standardTiers())

	updated, err := s.Replace(context.Background(), created.ID, model.Event{
		Name:         "Concert",
		Organization: "NewOrg",
		Venue:        "Arena",
		Date:         "03/04/2026",
		Tickets:      standardTiers(),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "NewOrg", updated.Organization)

	_, err = s.Replace(context.Background(), 99, model.Event{})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestMemoryEventStoreDelete(t *testing.T) {
	s := NewMemoryEventStore()
	created := seedEvent(t, s, "Concert", "LiveOrg", "Arena", "03/04/2026", nil)

	require.NoError(t, s.Delete(context.Background(), created.ID))
	_, err := s.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.ErrorIs(t, s.Delete(context.Background(), created.ID), ErrEventNotFound)
}

func TestMemoryEventStoreUpdateTickets(t *testing.T) {
	s := NewMemoryEventStore()
	created := seedEvent(t, s, "Concert", "LiveOrg", "Arena", "03/04/2026", standardTiers())

	tickets := created.CloneTickets()
	tickets[0].Quantity = 40
	require.NoError(t, s.UpdateTickets(context.Background(), created.ID, tickets))

	got, err := s.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(40), got.Tickets[0].Quantity)
	assert.Equal(t, "Concert", got.Name, "only tickets may change")

	assert.ErrorIs(t, s.UpdateTickets(context.Background(), 99, tickets), ErrEventNotFound)
}
