// Package service drives the seating core on behalf of many viewers and
// publishes booking events.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/event-seat-booking/internal/booking"
	q "github.com/iliyamo/event-seat-booking/internal/queue"
)

// QueuePublisher publishes booking confirmations to RabbitMQ.  It dials per
// publish: confirmations are rare and a long-lived channel would need its own
// reconnect logic.  Errors are logged and returned; the submitter ignores
// them.
type QueuePublisher struct {
	URL string
}

// EventFromConfirmation maps a confirmation onto the wire event.
func EventFromConfirmation(c booking.Confirmation) q.BookingConfirmedEvent {
	return q.BookingConfirmedEvent{
		BookingID:   c.BookingID,
		ViewerID:    c.Request.ViewerID,
		EventID:     c.Request.EventID,
		EventName:   c.Event.Name,
		Auditorium:  c.Event.Auditorium,
		Seat:        c.Request.SeatID,
		Schedule:    c.Request.Schedule,
		ConfirmedAt: c.ConfirmedAt.UTC().Format(time.RFC3339),
	}
}

// PublishBookingConfirmed sends one persistent JSON message to the
// booking.confirmed queue.
func (p QueuePublisher) PublishBookingConfirmed(ctx context.Context, c booking.Confirmation) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(q.BookingQueueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(EventFromConfirmation(c))
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    c.BookingID,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.BookingQueueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
