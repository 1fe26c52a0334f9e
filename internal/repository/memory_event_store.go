package repository

import (
	"context"
	"sort"
	"sync"

	"ticketr/internal/model"
)

// MemoryEventStore is an in-memory EventStore. It backs the test suite
// and the STORE_DRIVER=memory development mode. Records are deep-copied
// on the way in and out so callers can never mutate shared state, and
// every write swaps a complete record so readers observe either the old
// or the new tier array, never a partial one.
type MemoryEventStore struct {
	mu     sync.RWMutex
	nextID uint64
	events map[uint64]model.Event
}

// NewMemoryEventStore returns an empty in-memory store.
func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{nextID: 1, events: make(map[uint64]model.Event)}
}

func (s *MemoryEventStore) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.events[id]
	if !ok {
		return model.Event{}, ErrEventNotFound
	}
	return copyEvent(ev), nil
}

func (s *MemoryEventStore) List(ctx context.Context, f EventFilter) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Event, 0, len(s.events))
	for _, ev := range s.events {
		if f.Name != "" && ev.Name != f.Name {
			continue
		}
		if f.Organization != "" && ev.Organization != f.Organization {
			continue
		}
		if f.Venue != "" && ev.Venue != f.Venue {
			continue
		}
		if f.Date != "" && ev.Date != f.Date {
			continue
		}
		out = append(out, copyEvent(ev))
	}
	// map iteration order is random; sort for a stable listing
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryEventStore) Create(ctx context.Context, ev *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev.ID = s.nextID
	s.nextID++
	s.events[ev.ID] = copyEvent(*ev)
	return nil
}

func (s *MemoryEventStore) Replace(ctx context.Context, id uint64, ev model.Event) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return model.Event{}, ErrEventNotFound
	}
	ev.ID = id
	s.events[id] = copyEvent(ev)
	return copyEvent(ev), nil
}

func (s *MemoryEventStore) Delete(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return ErrEventNotFound
	}
	delete(s.events, id)
	return nil
}

func (s *MemoryEventStore) UpdateTickets(ctx context.Context, id uint64, tickets []model.TicketTier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok {
		return ErrEventNotFound
	}
	ev.Tickets = append([]model.TicketTier(nil), tickets...)
	s.events[id] = ev
	return nil
}

func copyEvent(ev model.Event) model.Event {
	ev.Tickets = ev.CloneTickets()
	return ev
}
