package repository

import (
	"context"
	"database/sql"

	"ticketr/internal/model"
)

// EventRepo provides MySQL-backed persistence for events. Event rows
// live in the `events` table; their tiers live in `ticket_tiers` with a
// `position` column so the tier array keeps its order across round
// trips. Every multi-statement write runs inside a transaction.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns an EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle for callers that need to compose
// transactions spanning multiple repositories.
func (r *EventRepo) DB() *sql.DB { return r.db }

// GetByID loads one event with its ordered tier list.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	var ev model.Event
	err := r.db.QueryRowContext(ctx,
		"SELECT id,name,organization,venue,date FROM events WHERE id=? LIMIT 1",
		id).Scan(&ev.ID, &ev.Name, &ev.Organization, &ev.Venue, &ev.Date)
	if err == sql.ErrNoRows {
		return model.Event{}, ErrEventNotFound
	}
	if err != nil {
		return model.Event{}, err
	}
	tickets, err := r.loadTickets(ctx, id)
	if err != nil {
		return model.Event{}, err
	}
	ev.Tickets = tickets
	return ev, nil
}

// List returns events matching every non-empty filter field exactly.
// Results are ordered by id so repeated calls against an unchanged
// store yield the same sequence.
func (r *EventRepo) List(ctx context.Context, f EventFilter) ([]model.Event, error) {
	query := "SELECT id,name,organization,venue,date FROM events WHERE 1=1"
	args := make([]interface{}, 0, 4)
	if f.Name != "" {
		query += " AND name=?"
		args = append(args, f.Name)
	}
	if f.Organization != "" {
		query += " AND organization=?"
		args = append(args, f.Organization)
	}
	if f.Venue != "" {
		query += " AND venue=?"
		args = append(args, f.Venue)
	}
	if f.Date != "" {
		query += " AND date=?"
		args = append(args, f.Date)
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		var ev model.Event
		if err := rows.Scan(&ev.ID, &ev.Name, &ev.Organization, &ev.Venue, &ev.Date); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range events {
		tickets, err := r.loadTickets(ctx, events[i].ID)
		if err != nil {
			return nil, err
		}
		events[i].Tickets = tickets
	}
	return events, nil
}

// Create inserts the event and its tiers in one transaction and
// populates the generated id on the passed record.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO events (name,organization,venue,date) VALUES (?,?,?,?)",
		ev.Name, ev.Organization, ev.Venue, ev.Date)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	if err := insertTiersTx(ctx, tx, ev.ID, ev.Tickets); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Replace overwrites all mutable fields of an existing event, replacing
// the tier array wholesale. The event keeps its id.
func (r *EventRepo) Replace(ctx context.Context, id uint64, ev model.Event) (model.Event, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Event{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"UPDATE events SET name=?,organization=?,venue=?,date=? WHERE id=?",
		ev.Name, ev.Organization, ev.Venue, ev.Date, id)
	if err != nil {
		return model.Event{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Event{}, err
	}
	if n == 0 {
		// UPDATE with identical values also reports zero rows, so
		// distinguish a no-op from a missing record explicitly.
		var exists uint64
		if err := tx.QueryRowContext(ctx, "SELECT id FROM events WHERE id=? LIMIT 1", id).Scan(&exists); err != nil {
			if err == sql.ErrNoRows {
				return model.Event{}, ErrEventNotFound
			}
			return model.Event{}, err
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM ticket_tiers WHERE event_id=?", id); err != nil {
		return model.Event{}, err
	}
	if err := insertTiersTx(ctx, tx, id, ev.Tickets); err != nil {
		return model.Event{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Event{}, err
	}
	committed = true
	ev.ID = id
	return ev, nil
}

// Delete removes the event row; ticket_tiers rows go with it via the
// ON DELETE CASCADE foreign key.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// UpdateTickets overwrites the tier array of one event inside a
// transaction. The parent row is selected FOR UPDATE so concurrent
// purchases of the same event serialize at the database as well as in
// the purchase engine.
func (r *EventRepo) UpdateTickets(ctx context.Context, id uint64, tickets []model.TicketTier) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var exists uint64
	err = tx.QueryRowContext(ctx, "SELECT id FROM events WHERE id=? FOR UPDATE", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return ErrEventNotFound
	}
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM ticket_tiers WHERE event_id=?", id); err != nil {
		return err
	}
	if err := insertTiersTx(ctx, tx, id, tickets); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// loadTickets returns the ordered tier list for an event.
func (r *EventRepo) loadTickets(ctx context.Context, eventID uint64) ([]model.TicketTier, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name,price,quantity FROM ticket_tiers WHERE event_id=? ORDER BY position",
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]model.TicketTier, 0)
	for rows.Next() {
		var t model.TicketTier
		if err := rows.Scan(&t.Name, &t.Price, &t.Quantity); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// insertTiersTx bulk-inserts the tier slice for an event in a single
// statement. Passing an empty slice has no effect.
func insertTiersTx(ctx context.Context, tx *sql.Tx, eventID uint64, tickets []model.TicketTier) error {
	if len(tickets) == 0 {
		return nil
	}
	query := "INSERT INTO ticket_tiers (event_id,position,name,price,quantity) VALUES "
	args := make([]interface{}, 0, len(tickets)*5)
	for i, t := range tickets {
		if i > 0 {
			query += ","
		}
		query += "(?,?,?,?,?)"
		args = append(args, eventID, i, t.Name, t.Price, t.Quantity)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}
