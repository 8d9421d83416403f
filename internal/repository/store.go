package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-seat-booking/internal/booking"
	"github.com/iliyamo/event-seat-booking/internal/model"
)

// Store bundles the repositories into the backend the seat service expects,
// for deployments that own the booking tables directly.
type Store struct {
	Events      *EventRepo
	Auditoriums *AuditoriumRepo
	Bookings    *BookingRepo
}

// NewStore builds a Store on db.
func NewStore(db *sql.DB) *Store {
	if db == nil {
		panic("nil db passed to NewStore")
	}
	return &Store{
		Events:      NewEventRepo(db),
		Auditoriums: NewAuditoriumRepo(db),
		Bookings:    NewBookingRepo(db),
	}
}

// GetEvent returns the event or model.ErrEventNotFound.  Database failures
// are network-class, like an unreachable booking API.
func (s *Store) GetEvent(ctx context.Context, eventID string) (model.Event, error) {
	ev, err := s.Events.GetByID(ctx, eventID)
	if err != nil && !errors.Is(err, model.ErrEventNotFound) {
		return model.Event{}, booking.NetworkError(err)
	}
	return ev, err
}

func (s *Store) GetAuditoriumLayout(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	layout, err := s.Auditoriums.LayoutByName(ctx, name)
	if err != nil {
		return "", booking.NetworkError(err)
	}
	return layout, nil
}

func (s *Store) GetBookingsForEvent(ctx context.Context, eventID string) ([]model.Booking, error) {
	out, err := s.Bookings.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, booking.NetworkError(err)
	}
	return out, nil
}

// CreateBooking maps repository outcomes onto the booking API contract:
// rejections become unsuccessful responses, database failures become
// network-class errors.
func (s *Store) CreateBooking(ctx context.Context, req booking.Request) (booking.APIResponse, error) {
	id, err := s.Bookings.Create(ctx, NewBooking{
		USN:      req.ViewerID,
		EventID:  req.EventID,
		Seats:    req.SeatID,
		Schedule: req.Schedule,
	})
	var rej *RejectedError
	switch {
	case err == nil:
		return booking.APIResponse{Success: true, BookingID: id}, nil
	case errors.As(err, &rej):
		return booking.APIResponse{Success: false, Message: rej.Message}, nil
	default:
		return booking.APIResponse{}, booking.NetworkError(err)
	}
}
