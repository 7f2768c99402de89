// Package queue_publisher publishes reservation events to RabbitMQ.
// Publication is best-effort: errors are logged and returned so callers
// can ignore failures without interrupting the request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/ingri/reservations/internal/queue"
)

const eventQueueName = "reservation.events"

// Publisher publishes to the reservation.events queue over a broker URL
// fixed at construction time.
type Publisher struct {
	url string
}

// New returns a Publisher for the given AMQP URL.
func New(url string) *Publisher { return &Publisher{url: url} }

// Publish sends one event to the reservation.events queue.  Messages
// are persistent and the queue is declared durable so events survive
// broker restarts.  Any error is logged and returned; the caller is
// expected to treat it as non-fatal.
func (p *Publisher) Publish(ctx context.Context, ev queue.ReservationEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		logrus.WithError(err).Error("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logrus.WithError(err).Error("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(eventQueueName, true, false, false, false, nil); err != nil {
		logrus.WithError(err).Error("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		logrus.WithError(err).Error("rabbitmq: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", eventQueueName, false, false, pub); err != nil {
		logrus.WithError(err).Error("rabbitmq: publish failed")
		return err
	}
	return nil
}
