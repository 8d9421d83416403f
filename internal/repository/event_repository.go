package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-seat-booking/internal/model"
)

// EventRepo reads events.  Event administration lives elsewhere; this
// service only needs lookups.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// GetByID loads one event.  model.ErrEventNotFound is returned for unknown
// ids.  NULL layout and capacity columns map to empty values.
func (r *EventRepo) GetByID(ctx context.Context, id string) (model.Event, error) {
	const q = `SELECT id, name, auditorium, seat_layout, capacity, event_date, event_time
               FROM events WHERE id = ?`
	var (
		ev       model.Event
		evID     string
		layout   sql.NullString
		capacity sql.NullInt64
		date     sql.NullString
		tm       sql.NullString
		aud      sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&evID, &ev.Name, &aud, &layout, &capacity, &date, &tm)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, model.ErrEventNotFound
	}
	if err != nil {
		return model.Event{}, err
	}
	ev.ID = model.FlexString(evID)
	ev.Auditorium = aud.String
	ev.SeatLayout = model.FlexString(layout.String)
	if capacity.Valid {
		ev.Capacity = model.FlexString(itoa(capacity.Int64))
	}
	ev.Date = date.String
	ev.Time = tm.String
	return ev, nil
}
