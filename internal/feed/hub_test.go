package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingri/reservations/internal/model"
)

func eventFor(date string) Event {
	return Event{
		Type:        EventCreated,
		Reservation: model.Reservation{ID: "r1", Date: date, Time: "19:00", Status: model.StatusPending},
	}
}

func TestSubscribeReceivesMatchingEvents(t *testing.T) {
	hub := NewHub()
	var got []Event
	cancel := hub.Subscribe(FilterAll, func(ev Event) { got = append(got, ev) })
	defer cancel()

	hub.Publish(eventFor("2026-03-10"))
	hub.Publish(eventFor("2026-03-11"))

	require.Len(t, got, 2)
	assert.Equal(t, EventCreated, got[0].Type)
}

func TestDateFilter(t *testing.T) {
	hub := NewHub()
	var got []Event
	cancel := hub.Subscribe(FilterDate("2026-03-10"), func(ev Event) { got = append(got, ev) })
	defer cancel()

	hub.Publish(eventFor("2026-03-10"))
	hub.Publish(eventFor("2026-03-11"))
	hub.Publish(eventFor("2026-03-10"))

	assert.Len(t, got, 2)
}

func TestCancelStopsDelivery(t *testing.T) {
	hub := NewHub()
	var got int
	cancel := hub.Subscribe(FilterAll, func(Event) { got++ })

	hub.Publish(eventFor("2026-03-10"))
	cancel()
	cancel() // second call is a no-op
	hub.Publish(eventFor("2026-03-10"))

	assert.Equal(t, 1, got)
	assert.Equal(t, 0, hub.Len())
}

func TestFilterSwitchHoldsSingleSubscription(t *testing.T) {
	hub := NewHub()

	// dashboard switches from "today" to "all": cancel first, resubscribe
	cancel := hub.Subscribe(FilterDate("2026-03-10"), func(Event) {})
	assert.Equal(t, 1, hub.Len())
	cancel()
	cancel = hub.Subscribe(FilterAll, func(Event) {})
	defer cancel()
	assert.Equal(t, 1, hub.Len())
}

func TestSubscriberCanCancelFromCallback(t *testing.T) {
	hub := NewHub()
	var cancel CancelFunc
	var got int
	cancel = hub.Subscribe(FilterAll, func(Event) {
		got++
		cancel()
	})

	hub.Publish(eventFor("2026-03-10"))
	hub.Publish(eventFor("2026-03-10"))

	assert.Equal(t, 1, got)
}
