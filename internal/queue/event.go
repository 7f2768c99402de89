// Package queue defines message payloads exchanged over the message
// broker and the background consumer that turns them into an audit log.
package queue

import (
	"time"

	"github.com/ingri/reservations/internal/model"
)

// Event types carried on the reservation.events queue.
const (
	TypeCreated       = "reservation.created"
	TypeStatusChanged = "reservation.status_changed"
)

// ReservationEvent is published after every successful store write.  It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type ReservationEvent struct {
	Type          string `json:"type"`
	ReservationID string `json:"reservation_id"`
	Name          string `json:"name"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	PartySize     int    `json:"party_size"`
	Status        string `json:"status"`
	OccurredAt    string `json:"occurred_at"`
}

// NewEvent builds an event of the given type from a stored reservation.
func NewEvent(eventType string, r *model.Reservation) ReservationEvent {
	return ReservationEvent{
		Type:          eventType,
		ReservationID: r.ID,
		Name:          r.Name,
		Date:          r.Date,
		Time:          r.Time,
		PartySize:     r.PartySize,
		Status:        string(r.Status),
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
}
