// Package apiclient talks to the external booking API that owns events,
// auditoriums and bookings.  Every endpoint answers with a JSON envelope:
// {"status":"success", ...payload} or {"status":"failed","message":"..."}.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iliyamo/event-seat-booking/internal/booking"
	"github.com/iliyamo/event-seat-booking/internal/model"
)

const statusSuccess = "success"

// Client is a thin REST client.  It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for baseURL.  The base is normalised so that it
// always ends in "/api"; an empty base means the relative "/api" prefix,
// which only works behind a same-origin proxy.  A zero timeout means 10s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: NormalizeBaseURL(baseURL),
		http:    &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient swaps the underlying client, mainly for tests.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// BaseURL returns the normalised base.
func (c *Client) BaseURL() string { return c.baseURL }

// NormalizeBaseURL trims trailing slashes and appends "/api" when missing.
func NormalizeBaseURL(raw string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return "/api"
	}
	if strings.HasSuffix(trimmed, "/api") {
		return trimmed
	}
	return trimmed + "/api"
}

// envelope covers every response shape the API uses.  Events come back under
// "events", everything else under "data".
type envelope struct {
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Events    json.RawMessage `json:"events"`
	BookingID string          `json:"bookingId"`
}

// errUnreadable marks a response body that is not valid JSON.
var errUnreadable = errors.New("unreadable response")

// do performs one request and decodes the envelope.  Transport errors and
// unreadable bodies are returned as errors; a decoded envelope is returned
// as-is regardless of HTTP status so callers can read "message".
func (c *Client) do(ctx context.Context, method, path string, body any) (envelope, int, error) {
	var rdr io.Reader
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			return envelope{}, 0, fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(bs)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return envelope{}, 0, err
	}
	// Content-Type only on bodies, GETs stay simple requests for CORS.
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return envelope{}, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return envelope{}, resp.StatusCode, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return envelope{}, resp.StatusCode, fmt.Errorf("%w (HTTP %d): %v", errUnreadable, resp.StatusCode, err)
	}
	return env, resp.StatusCode, nil
}

// getList fetches path and decodes the payload list into out.  Every read
// failure is network-class: the booking system, not the caller, is at fault.
func (c *Client) getList(ctx context.Context, path string, out any) error {
	env, code, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return booking.NetworkError(fmt.Errorf("GET %s: %w", path, err))
	}
	if env.Status != statusSuccess {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(code)
		}
		return booking.NetworkError(fmt.Errorf("GET %s: %s", path, msg))
	}
	payload := env.Data
	if len(payload) == 0 {
		payload = env.Events
	}
	if len(payload) == 0 || string(payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return booking.NetworkError(fmt.Errorf("GET %s: decode payload: %w", path, err))
	}
	return nil
}

// ListEvents returns every event the API knows.
func (c *Client) ListEvents(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := c.getList(ctx, "/events/", &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEvent finds one event.  The API has no single-event endpoint, so the
// full list is scanned.
func (c *Client) GetEvent(ctx context.Context, eventID string) (model.Event, error) {
	events, err := c.ListEvents(ctx)
	if err != nil {
		return model.Event{}, err
	}
	for _, ev := range events {
		if string(ev.ID) == eventID {
			return ev, nil
		}
	}
	return model.Event{}, model.ErrEventNotFound
}

// ListAuditoriums returns every auditorium.
func (c *Client) ListAuditoriums(ctx context.Context) ([]model.Auditorium, error) {
	var auds []model.Auditorium
	if err := c.getList(ctx, "/auditoriums/", &auds); err != nil {
		return nil, err
	}
	return auds, nil
}

// GetAuditoriumLayout returns the stored layout of the named auditorium, or
// "" when there is no such auditorium or it has no layout.
func (c *Client) GetAuditoriumLayout(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", nil
	}
	auds, err := c.ListAuditoriums(ctx)
	if err != nil {
		return "", err
	}
	for _, a := range auds {
		if a.Name == name {
			return string(a.SeatLayout), nil
		}
	}
	return "", nil
}

// GetBookingsForEvent lists all bookings of an event.
func (c *Client) GetBookingsForEvent(ctx context.Context, eventID string) ([]model.Booking, error) {
	var out []model.Booking
	if err := c.getList(ctx, "/bookings/event/"+url.PathEscape(eventID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// errNoBookingID is a success envelope without the id of the new booking.
var errNoBookingID = errors.New("success response without bookingId")

// CreateBooking posts one booking.  The envelope status decides the outcome.
// Explicit rejections come back as APIResponse{Success: false}; transport
// failures, unreadable answers, a success without an id and a 5xx that
// carries no envelope are errors matching booking.ErrNetwork.
func (c *Client) CreateBooking(ctx context.Context, req booking.Request) (booking.APIResponse, error) {
	env, code, err := c.do(ctx, http.MethodPost, "/bookings/add", req)
	if err != nil {
		return booking.APIResponse{}, booking.NetworkError(err)
	}
	if env.Status == statusSuccess {
		if env.BookingID == "" {
			return booking.APIResponse{}, booking.NetworkError(fmt.Errorf("%w (HTTP %d)", errNoBookingID, code))
		}
		return booking.APIResponse{Success: true, BookingID: env.BookingID}, nil
	}
	// a proxy error page or empty 5xx never reached the booking system
	if env.Status == "" && code >= http.StatusInternalServerError {
		return booking.APIResponse{}, booking.NetworkError(fmt.Errorf("booking API answered HTTP %d", code))
	}
	msg := env.Message
	if msg == "" {
		msg = fmt.Sprintf("booking failed (HTTP %d)", code)
	}
	return booking.APIResponse{Success: false, Message: msg}, nil
}
