// Package feed pushes store changes to live dashboard views.  The hub
// is an in-process observer registry: every successful create or
// status write is published once, and each subscriber receives the
// events matching its filter until it cancels.  A dashboard connection
// owns exactly one subscription at a time; switching filters cancels
// the old subscription before opening the next.
package feed

import (
	"sync"

	"github.com/ingri/reservations/internal/model"
)

// Event types published to the hub.
const (
	EventCreated       = "created"
	EventStatusChanged = "status_changed"
)

// Event is one observed change to the reservation store.
type Event struct {
	Type        string            `json:"type"`
	Reservation model.Reservation `json:"reservation"`
}

// Filter selects which reservations a subscriber cares about.
type Filter func(model.Reservation) bool

// FilterAll matches every reservation.
func FilterAll(model.Reservation) bool { return true }

// FilterDate matches reservations on one exact civil date.
func FilterDate(date string) Filter {
	return func(r model.Reservation) bool { return r.Date == date }
}

// CancelFunc tears down a subscription.  It is safe to call more than
// once.
type CancelFunc func()

type subscriber struct {
	filter   Filter
	onChange func(Event)
}

// Hub fans store change events out to subscribers.  Publish never
// blocks on the store path: onChange callbacks are expected to hand the
// event off quickly (the SSE handler uses a buffered channel and drops
// events for consumers that cannot keep up).
type Hub struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]subscriber
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]subscriber)}
}

// Subscribe registers a change callback behind a filter and returns the
// cancel function that removes it.
func (h *Hub) Subscribe(filter Filter, onChange func(Event)) CancelFunc {
	if filter == nil {
		filter = FilterAll
	}
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = subscriber{filter: filter, onChange: onChange}
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Publish delivers an event to every subscriber whose filter matches.
// Callbacks run outside the hub lock so a subscriber can cancel itself
// from within onChange.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	matched := make([]func(Event), 0, len(h.subs))
	for _, sub := range h.subs {
		if sub.filter(ev.Reservation) {
			matched = append(matched, sub.onChange)
		}
	}
	h.mu.Unlock()
	for _, fn := range matched {
		fn(ev)
	}
}

// Len reports the number of active subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
