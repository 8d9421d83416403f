package booking

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/iliyamo/event-seat-booking/internal/seating"
)

// DefaultSchedule is used when neither the viewer nor the event names a
// schedule.
const DefaultSchedule = "TBD"

// Request is what gets sent to the booking system of record.
type Request struct {
	ViewerID string `json:"USN"`
	EventID  string `json:"EventID"`
	SeatID   string `json:"Seats"`
	Schedule string `json:"Schedule"`
}

// APIResponse is the booking system's answer to a create call.  A transport
// failure is reported as an error by the API instead.
type APIResponse struct {
	Success   bool
	BookingID string
	Message   string
}

// Result is what Submit hands back to the caller.
type Result struct {
	Success   bool   `json:"success"`
	BookingID string `json:"booking_id,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// CreateBookingAPI creates one booking.  Implementations return an error only
// when the booking system could not be reached or answered unreadably; an
// explicit rejection is an APIResponse with Success false.
type CreateBookingAPI interface {
	CreateBooking(ctx context.Context, req Request) (APIResponse, error)
}

// EventRef carries the event fields a submission needs.
type EventRef struct {
	ID         string
	Name       string
	Auditorium string
	Time       string // the event's own schedule, used when none is chosen
}

// Confirmation is published after a successful booking.
type Confirmation struct {
	BookingID   string
	Request     Request
	Event       EventRef
	ConfirmedAt time.Time
}

// Publisher fans out confirmations.  Failures never affect the booking result.
type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, c Confirmation) error
}

// Submitter turns a selection into exactly one create call.  Events and Now
// are optional.
type Submitter struct {
	API    CreateBookingAPI
	Events Publisher
	Now    func() time.Time
}

// NewSubmitter wires a submitter.  api must not be nil.
func NewSubmitter(api CreateBookingAPI, events Publisher) *Submitter {
	if api == nil {
		panic("nil booking api passed to NewSubmitter")
	}
	return &Submitter{API: api, Events: events, Now: time.Now}
}

// ResolveSchedule picks the schedule to book against: the one the viewer
// chose, else the event's time, else DefaultSchedule.
func ResolveSchedule(requested, eventTime string) string {
	if s := strings.TrimSpace(requested); s != "" {
		return s
	}
	if s := strings.TrimSpace(eventTime); s != "" {
		return s
	}
	return DefaultSchedule
}

// Submit books the selected seat.  An empty selection fails with
// ErrNoSelection before anything is sent.  Otherwise exactly one create call
// is made and never retried:
//
//   - success yields Result{Success: true, BookingID}
//   - an explicit rejection yields the server's message as Reason and a
//     *SeatConflictError
//   - a transport failure yields Reason "network" and an error matching
//     ErrNetwork
func (s *Submitter) Submit(ctx context.Context, sel seating.Selection, ev EventRef, schedule, viewerID string) (Result, error) {
	if sel.Empty() {
		return Result{Success: false, Reason: ErrNoSelection.Error()}, ErrNoSelection
	}
	req := Request{
		ViewerID: strings.TrimSpace(viewerID),
		EventID:  ev.ID,
		SeatID:   sel.SeatID(),
		Schedule: ResolveSchedule(schedule, ev.Time),
	}

	resp, err := s.API.CreateBooking(ctx, req)
	if err != nil {
		log.Printf("booking: create failed event=%s seat=%s: %v", req.EventID, req.SeatID, err)
		if !errors.Is(err, ErrNetwork) {
			err = NetworkError(err)
		}
		return Result{Success: false, Reason: ReasonNetwork}, err
	}
	if !resp.Success {
		reason := strings.TrimSpace(resp.Message)
		if reason == "" {
			reason = "booking failed"
		}
		return Result{Success: false, Reason: reason}, &SeatConflictError{SeatID: req.SeatID, Reason: reason}
	}

	if s.Events != nil {
		now := time.Now
		if s.Now != nil {
			now = s.Now
		}
		conf := Confirmation{BookingID: resp.BookingID, Request: req, Event: ev, ConfirmedAt: now().UTC()}
		if perr := s.Events.PublishBookingConfirmed(ctx, conf); perr != nil {
			log.Printf("booking: publish confirmation %s failed: %v", resp.BookingID, perr)
		}
	}
	return Result{Success: true, BookingID: resp.BookingID}, nil
}
