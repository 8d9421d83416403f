package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/iliyamo/event-seat-booking/internal/booking"
	"github.com/iliyamo/event-seat-booking/internal/cache"
	"github.com/iliyamo/event-seat-booking/internal/model"
	"github.com/iliyamo/event-seat-booking/internal/seating"
)

// ErrSuperseded is returned by a load whose result was discarded because a
// newer load for the same session started after it.
var ErrSuperseded = errors.New("superseded by a newer load")

// ErrOccupancyUnavailable is returned when bookings could not be fetched and
// no mirrored copy exists.
var ErrOccupancyUnavailable = errors.New("occupancy unavailable")

// Backend is the system of record.  Both the REST client and the MySQL store
// satisfy it.
type Backend interface {
	GetEvent(ctx context.Context, eventID string) (model.Event, error)
	GetAuditoriumLayout(ctx context.Context, name string) (string, error)
	GetBookingsForEvent(ctx context.Context, eventID string) ([]model.Booking, error)
	booking.CreateBookingAPI
}

// SeatService serves seat maps, clicks and submissions for many viewers.
type SeatService struct {
	backend     Backend
	mirror      cache.OccupancyMirror
	submitter   *booking.Submitter
	sessions    *SessionStore
	seatsPerRow int
}

// Options configures a SeatService.  Zero values pick defaults.
type Options struct {
	Mirror      cache.OccupancyMirror
	Publisher   booking.Publisher
	Sessions    *SessionStore
	SeatsPerRow int
}

// NewSeatService wires the service; backend must not be nil.
func NewSeatService(backend Backend, opts Options) *SeatService {
	if backend == nil {
		panic("nil backend passed to NewSeatService")
	}
	if opts.Mirror == nil {
		opts.Mirror = cache.NewMemoryMirror(0)
	}
	if opts.Sessions == nil {
		opts.Sessions = NewSessionStore(0, 0, nil)
	}
	if opts.SeatsPerRow <= 0 {
		opts.SeatsPerRow = seating.DefaultSeatsPerRow
	}
	return &SeatService{
		backend:     backend,
		mirror:      opts.Mirror,
		submitter:   booking.NewSubmitter(backend, opts.Publisher),
		sessions:    opts.Sessions,
		seatsPerRow: opts.SeatsPerRow,
	}
}

// ClickResult is the answer to a seat click.
type ClickResult struct {
	Outcome string          `json:"outcome"`
	Changed bool            `json:"changed"`
	Notice  string          `json:"notice,omitempty"`
	View    seating.MapView `json:"view"`
}

// BookResult is the answer to a submission.
type BookResult struct {
	booking.Result
	View seating.MapView `json:"view"`
}

// ResolveLayout derives the seat map for an event without any viewer state.
// Used by the public layout endpoint.
func (svc *SeatService) ResolveLayout(ctx context.Context, eventID string) (model.Event, seating.Resolution, error) {
	ev, err := svc.backend.GetEvent(ctx, eventID)
	if err != nil {
		return model.Event{}, seating.Resolution{}, err
	}
	res, err := svc.resolveMap(ctx, ev)
	return ev, res, err
}

func (svc *SeatService) resolveMap(ctx context.Context, ev model.Event) (seating.Resolution, error) {
	src := seating.LayoutSources{
		EventLayout: string(ev.SeatLayout),
		Capacity:    ev.CapacityInt(),
		SeatsPerRow: svc.seatsPerRow,
	}
	res := seating.ResolveSeatMap(src)
	// The auditorium is only consulted when the event's own layout is unusable.
	if res.Source != seating.SourceEvent && strings.TrimSpace(ev.Auditorium) != "" {
		layout, err := svc.backend.GetAuditoriumLayout(ctx, ev.Auditorium)
		if err != nil {
			if ctx.Err() != nil {
				return seating.Resolution{}, ctx.Err()
			}
			log.Printf("seat-service: auditorium %q layout fetch failed, using fallback: %v", ev.Auditorium, err)
		} else if layout != "" {
			src.AuditoriumLayout = layout
			res = seating.ResolveSeatMap(src)
		}
	}
	for _, skipped := range res.Skipped {
		log.Printf("seat-service: event %s: skipping layout: %v", ev.ID, skipped)
	}
	return res, nil
}

// loadOccupancy fetches bookings and resolves them.  Callers refresh the
// mirror once the result is known to be current.  When the fetch
// fails the mirror is consulted and stale is true; prevBooked carries the
// viewer's booked flag across such a fallback since the mirror does not
// record owners.
func (svc *SeatService) loadOccupancy(ctx context.Context, key SessionKey, viewer string, prevBooked bool) (occ seating.Occupancy, stale bool, err error) {
	mkey := cache.MirrorKey(key.EventID, key.Schedule)
	bookings, err := svc.backend.GetBookingsForEvent(ctx, key.EventID)
	if err != nil {
		if ctx.Err() != nil {
			return seating.Occupancy{}, false, ctx.Err()
		}
		seats, ok := svc.mirror.Load(ctx, mkey)
		if !ok {
			return seating.Occupancy{}, false, fmt.Errorf("%w: %v", ErrOccupancyUnavailable, err)
		}
		log.Printf("seat-service: bookings fetch for event %s failed, serving mirror: %v", key.EventID, err)
		return seating.OccupancyFromSeats(seats, prevBooked), true, nil
	}
	records := make([]seating.BookingRecord, 0, len(bookings))
	for _, b := range bookings {
		records = append(records, seating.BookingRecord{Owner: string(b.USN), Seats: string(b.Seats)})
	}
	return seating.ResolveOccupancy(records, viewer), false, nil
}

// Load fetches event, layout and bookings and (re)builds the viewer's
// session.  A selection made before the reload survives only if it is still
// valid.  If another load for the same session starts while this one is in
// flight, this one's result is discarded with ErrSuperseded.
func (svc *SeatService) Load(ctx context.Context, viewer, eventID, schedule string) (seating.MapView, error) {
	key := NewSessionKey(viewer, eventID, schedule)
	s := svc.sessions.Get(key)

	s.mu.Lock()
	s.gen++
	gen := s.gen
	prevBooked := s.loaded && s.ctrl.Occupancy.ViewerAlreadyBooked
	s.mu.Unlock()

	ev, err := svc.backend.GetEvent(ctx, eventID)
	if err != nil {
		return seating.MapView{}, err
	}
	res, err := svc.resolveMap(ctx, ev)
	if err != nil {
		return seating.MapView{}, err
	}
	occ, stale, err := svc.loadOccupancy(ctx, key, viewer, prevBooked)
	if err != nil {
		return seating.MapView{}, err
	}
	if err := ctx.Err(); err != nil {
		return seating.MapView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return seating.MapView{}, ErrSuperseded
	}
	if !stale {
		svc.mirror.Store(ctx, cache.MirrorKey(key.EventID, key.Schedule), occ.Sorted())
	}
	s.event = ev
	s.source = res.Source
	s.stale = stale
	s.ctrl = seating.NewController(res.Map, occ)
	s.sel = s.ctrl.Reconcile(s.sel)
	s.loaded = true
	return s.view(), nil
}

// session returns a loaded session, loading it first when needed.
func (svc *SeatService) session(ctx context.Context, viewer, eventID, schedule string) (*ViewSession, error) {
	key := NewSessionKey(viewer, eventID, schedule)
	s := svc.sessions.Get(key)
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if !loaded {
		if _, err := svc.Load(ctx, viewer, eventID, schedule); err != nil {
			return nil, err
		}
		s = svc.sessions.Get(key)
	}
	return s, nil
}

// Click applies one seat click to the viewer's selection.
func (svc *SeatService) Click(ctx context.Context, viewer, eventID, schedule, seatID string) (ClickResult, error) {
	s, err := svc.session(ctx, viewer, eventID, schedule)
	if err != nil {
		return ClickResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sel, out := s.ctrl.ClickSeat(s.sel, seatID)
	s.sel = sel
	return ClickResult{
		Outcome: out.String(),
		Changed: out.Changed(),
		Notice:  out.Notice(),
		View:    s.view(),
	}, nil
}

// ClearSelection empties the viewer's selection.
func (svc *SeatService) ClearSelection(ctx context.Context, viewer, eventID, schedule string) (seating.MapView, error) {
	s, err := svc.session(ctx, viewer, eventID, schedule)
	if err != nil {
		return seating.MapView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = seating.Selection{}
	return s.view(), nil
}

// Book submits the viewer's selection.  The session stays locked for the
// whole exchange so no click can change the selection mid-flight.
//
// On success the booked seat is marked taken locally and in the mirror, and
// the viewer is flagged as booked.  On a rejection occupancy is reloaded and
// the selection reconciled before returning, so the next attempt works
// against fresh data.  If that reload fails the mirrored copy is dropped:
// the rejection proves it out of date.  Either way any load that started
// before the answer is outdated and will be discarded.
func (svc *SeatService) Book(ctx context.Context, viewer, eventID, schedule string) (BookResult, error) {
	s, err := svc.session(ctx, viewer, eventID, schedule)
	if err != nil {
		return BookResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := booking.EventRef{
		ID:         eventID,
		Name:       s.event.Name,
		Auditorium: s.event.Auditorium,
		Time:       s.event.Time,
	}
	seat := s.sel.SeatID()
	res, subErr := svc.submitter.Submit(ctx, s.sel, ref, schedule, viewer)

	var conflict *booking.SeatConflictError
	mkey := cache.MirrorKey(s.key.EventID, s.key.Schedule)
	switch {
	case subErr == nil:
		s.gen++
		occ := s.ctrl.Occupancy.With(seat)
		occ.ViewerAlreadyBooked = true
		s.ctrl = seating.NewController(s.ctrl.Map, occ)
		s.sel = seating.Selection{}
		svc.mirror.Store(ctx, mkey, occ.Sorted())
		log.Printf("seat-service: booked %s seat=%s event=%s", res.BookingID, seat, eventID)
	case errors.As(subErr, &conflict):
		s.gen++
		occ, stale, err := svc.loadOccupancy(ctx, s.key, viewer, s.ctrl.Occupancy.ViewerAlreadyBooked)
		if err != nil || stale {
			// a mirrored copy predates the rejection, so it is dropped
			// rather than served again
			log.Printf("seat-service: reload after rejection failed for event %s (err=%v stale=%t); dropping mirror", eventID, err, stale)
			svc.mirror.Invalidate(ctx, mkey)
			s.stale = true
		} else {
			svc.mirror.Store(ctx, mkey, occ.Sorted())
			s.ctrl = seating.NewController(s.ctrl.Map, occ)
			s.stale = false
			s.sel = s.ctrl.Reconcile(s.sel)
		}
	}
	return BookResult{Result: res, View: s.view()}, subErr
}
