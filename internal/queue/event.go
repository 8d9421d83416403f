// Package queue defines the booking.confirmed message and its consumer.
package queue

// BookingQueueName is the durable queue every confirmation is routed to.
const BookingQueueName = "booking.confirmed"

// BookingConfirmedEvent is published when the booking system accepts a
// seat.  It carries enough for consumers to log or notify without calling
// back into the booking API.
type BookingConfirmedEvent struct {
	BookingID   string `json:"booking_id"`
	ViewerID    string `json:"viewer_id"`
	EventID     string `json:"event_id"`
	EventName   string `json:"event_name"`
	Auditorium  string `json:"auditorium"`
	Seat        string `json:"seat"`
	Schedule    string `json:"schedule"`
	ConfirmedAt string `json:"confirmed_at"` // RFC3339, UTC
}
