package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/iliyamo/event-seat-booking/internal/model"
	"github.com/iliyamo/event-seat-booking/internal/seating"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// BookingRepo stores bookings.  Seats are kept as the same comma-separated
// field the rest of the system uses; uq_bookings_event_seat backs the
// single-seat case against concurrent inserts.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// NewBookingID returns "BK-" followed by 8 upper-case hex characters.
func NewBookingID() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "BK-" + strings.ToUpper(hex[:8])
}

// ListByEvent returns every booking of an event, oldest first.
func (r *BookingRepo) ListByEvent(ctx context.Context, eventID string) ([]model.Booking, error) {
	const q = `SELECT booking_id, usn, event_id, seats, schedule, status, UNIX_TIMESTAMP(created_at)
               FROM bookings WHERE event_id = ? ORDER BY created_at, booking_id`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var (
			id, usn, evID, seats, status, created string
			schedule                              sql.NullString
		)
		if err := rows.Scan(&id, &usn, &evID, &seats, &schedule, &status, &created); err != nil {
			return nil, err
		}
		b := model.Booking{
			BookingID: model.FlexString(id),
			USN:       model.FlexString(usn),
			EventID:   model.FlexString(evID),
			Seats:     model.FlexString(seats),
			Schedule:  model.FlexString(schedule.String),
			Status:    model.FlexString(status),
			Timestamp: model.FlexString(created),
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// NewBooking is the input to Create.
type NewBooking struct {
	USN      string
	EventID  string
	Seats    string
	Schedule string
}

// Create inserts a booking after checking, inside one transaction, that the
// viewer has no booking for the event yet and that none of the requested
// seats is taken.  Rule violations are returned as *RejectedError; anything
// else is a database failure.
func (r *BookingRepo) Create(ctx context.Context, nb NewBooking) (string, error) {
	usn := strings.TrimSpace(nb.USN)
	eventID := strings.TrimSpace(nb.EventID)
	if usn == "" || eventID == "" {
		return "", &RejectedError{Message: msgMissingFields}
	}
	requested := seating.SplitSeatField(nb.Seats)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the event's bookings so two submissions for the same event are
	// checked one after the other.
	const sel = `SELECT usn, seats FROM bookings WHERE event_id = ? FOR UPDATE`
	rows, err := tx.QueryContext(ctx, sel, eventID)
	if err != nil {
		return "", err
	}
	taken := map[string]struct{}{}
	alreadyBooked := false
	for rows.Next() {
		var owner, seats string
		if err := rows.Scan(&owner, &seats); err != nil {
			rows.Close()
			return "", err
		}
		if seating.SameViewer(owner, usn) {
			alreadyBooked = true
		}
		for _, s := range seating.SplitSeatField(seats) {
			taken[s] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return "", err
	}
	rows.Close()

	if alreadyBooked {
		return "", &RejectedError{Message: msgAlreadyBooked}
	}
	for _, s := range requested {
		if _, ok := taken[s]; ok {
			return "", &RejectedError{Message: fmt.Sprintf(msgSeatTakenFmt, s), SeatID: s}
		}
	}

	id := NewBookingID()
	const ins = `INSERT INTO bookings (booking_id, usn, event_id, seats, schedule, status) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, ins, id, usn, eventID, strings.Join(requested, ","), nb.Schedule, model.BookingConfirmed); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			seat := strings.Join(requested, ",")
			return "", &RejectedError{Message: fmt.Sprintf(msgSeatTakenFmt, seat), SeatID: seat}
		}
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	committed = true
	return id, nil
}

// RejectedError is a booking refused for a business reason.  It matches
// ErrConflict via errors.Is.
type RejectedError struct {
	Message string
	SeatID  string
}

func (e *RejectedError) Error() string { return e.Message }

func (e *RejectedError) Is(target error) bool { return target == ErrConflict }

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
