package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/event-seat-booking/internal/seating"
)

type fakeAPI struct {
	calls []Request
	resp  APIResponse
	err   error
}

func (f *fakeAPI) CreateBooking(_ context.Context, req Request) (APIResponse, error) {
	f.calls = append(f.calls, req)
	return f.resp, f.err
}

type fakePublisher struct {
	got []Confirmation
	err error
}

func (p *fakePublisher) PublishBookingConfirmed(_ context.Context, c Confirmation) error {
	p.got = append(p.got, c)
	return p.err
}

var testEvent = EventRef{ID: "42", Name: "Hackathon", Auditorium: "Main Hall", Time: "10:00 AM"}

func TestSubmit_NoSelection(t *testing.T) {
	api := &fakeAPI{}
	s := NewSubmitter(api, nil)
	res, err := s.Submit(context.Background(), seating.Selection{}, testEvent, "", "u1")
	if !errors.Is(err, ErrNoSelection) {
		t.Fatalf("err = %v, want ErrNoSelection", err)
	}
	if res.Success {
		t.Fatalf("result should not be a success")
	}
	if len(api.calls) != 0 {
		t.Fatalf("api called %d times, want 0", len(api.calls))
	}
}

func TestSubmit_Success(t *testing.T) {
	api := &fakeAPI{resp: APIResponse{Success: true, BookingID: "BK-1A2B3C4D"}}
	pub := &fakePublisher{}
	fixed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	s := NewSubmitter(api, pub)
	s.Now = func() time.Time { return fixed }

	res, err := s.Submit(context.Background(), seating.Selected("A3"), testEvent, "Day 1 09:00", " 1RV21CS001 ")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !res.Success || res.BookingID != "BK-1A2B3C4D" {
		t.Fatalf("result = %+v", res)
	}
	if len(api.calls) != 1 {
		t.Fatalf("api called %d times, want 1", len(api.calls))
	}
	want := Request{ViewerID: "1RV21CS001", EventID: "42", SeatID: "A3", Schedule: "Day 1 09:00"}
	if api.calls[0] != want {
		t.Fatalf("request = %+v, want %+v", api.calls[0], want)
	}
	if len(pub.got) != 1 || pub.got[0].BookingID != "BK-1A2B3C4D" || !pub.got[0].ConfirmedAt.Equal(fixed) {
		t.Fatalf("published = %+v", pub.got)
	}
}

func TestSubmit_PublishFailureIgnored(t *testing.T) {
	api := &fakeAPI{resp: APIResponse{Success: true, BookingID: "BK-00000001"}}
	s := NewSubmitter(api, &fakePublisher{err: errors.New("broker down")})
	res, err := s.Submit(context.Background(), seating.Selected("A1"), testEvent, "", "u1")
	if err != nil || !res.Success {
		t.Fatalf("res=%+v err=%v, want success", res, err)
	}
}

func TestSubmit_ExplicitFailure(t *testing.T) {
	api := &fakeAPI{resp: APIResponse{Success: false, Message: "Seat A1 is already booked."}}
	s := NewSubmitter(api, nil)
	res, err := s.Submit(context.Background(), seating.Selected("A1"), testEvent, "", "u1")
	var conflict *SeatConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want *SeatConflictError", err)
	}
	if conflict.SeatID != "A1" {
		t.Fatalf("conflict seat = %q", conflict.SeatID)
	}
	if res.Success || res.Reason != "Seat A1 is already booked." {
		t.Fatalf("result = %+v", res)
	}
	if len(api.calls) != 1 {
		t.Fatalf("api called %d times, want exactly 1", len(api.calls))
	}
}

func TestSubmit_NetworkFailure(t *testing.T) {
	api := &fakeAPI{err: errors.New("dial tcp: connection refused")}
	s := NewSubmitter(api, nil)
	res, err := s.Submit(context.Background(), seating.Selected("A1"), testEvent, "", "u1")
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}
	if res.Success || res.Reason != ReasonNetwork {
		t.Fatalf("result = %+v", res)
	}
	if len(api.calls) != 1 {
		t.Fatalf("api called %d times, want exactly 1 (no retry)", len(api.calls))
	}
}

func TestResolveSchedule(t *testing.T) {
	tests := []struct {
		requested, eventTime, want string
	}{
		{"Day 2", "10:00", "Day 2"},
		{"", "10:00", "10:00"},
		{"  ", "", DefaultSchedule},
		{"", "", "TBD"},
	}
	for _, tt := range tests {
		if got := ResolveSchedule(tt.requested, tt.eventTime); got != tt.want {
			t.Errorf("ResolveSchedule(%q, %q) = %q, want %q", tt.requested, tt.eventTime, got, tt.want)
		}
	}
}

func TestSubmit_DefaultsScheduleFromEvent(t *testing.T) {
	api := &fakeAPI{resp: APIResponse{Success: true, BookingID: "BK-X"}}
	s := NewSubmitter(api, nil)
	if _, err := s.Submit(context.Background(), seating.Selected("B2"), testEvent, "", "u1"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if api.calls[0].Schedule != "10:00 AM" {
		t.Fatalf("schedule = %q, want event time", api.calls[0].Schedule)
	}
}
