package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingri/reservations/internal/model"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []Message
	fail map[string]error // keyed by recipient
}

func (f *fakeMailer) Send(_ context.Context, msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.fail[msg.To]
}

func testReservation() *model.Reservation {
	return &model.Reservation{
		ID:        "abc-123",
		Name:      "Asha",
		Email:     "a@x.com",
		Phone:     "+49 170 1234567",
		Date:      "2026-03-10",
		Time:      "19:00",
		PartySize: 4,
		Status:    model.StatusPending,
	}
}

func quietLog() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestDispatchSendsBothBranches(t *testing.T) {
	mailer := &fakeMailer{}
	d := NewDispatcher(mailer, "host@ingri.example", quietLog())

	d.ReservationCreated(context.Background(), testReservation())

	require.Len(t, mailer.sent, 2)
	recipients := map[string]Message{}
	for _, m := range mailer.sent {
		recipients[m.To] = m
	}
	guest, ok := recipients["a@x.com"]
	require.True(t, ok, "customer confirmation missing")
	assert.Equal(t, "Your reservation at ingri is confirmed", guest.Subject)
	assert.Contains(t, guest.Body, "abc-123")
	assert.Contains(t, guest.Body, "party of 4")

	staff, ok := recipients["host@ingri.example"]
	require.True(t, ok, "staff notification missing")
	assert.Contains(t, staff.Subject, "Asha")
	assert.Contains(t, staff.Subject, "2026-03-10 at 19:00")
	assert.Contains(t, staff.Body, "+49 170 1234567")
}

func TestDispatchSurvivesSingleFailure(t *testing.T) {
	mailer := &fakeMailer{fail: map[string]error{
		"a@x.com": errors.New("mailbox unavailable"),
	}}
	d := NewDispatcher(mailer, "host@ingri.example", quietLog())

	// must not panic, must still attempt the other branch, must return
	d.ReservationCreated(context.Background(), testReservation())

	assert.Len(t, mailer.sent, 2)
}

func TestDispatchSurvivesTotalFailure(t *testing.T) {
	mailer := &fakeMailer{fail: map[string]error{
		"a@x.com":            errors.New("down"),
		"host@ingri.example": errors.New("down"),
	}}
	d := NewDispatcher(mailer, "host@ingri.example", quietLog())

	d.ReservationCreated(context.Background(), testReservation())

	assert.Len(t, mailer.sent, 2)
}

func TestMessagesOmitEmptyOptionals(t *testing.T) {
	r := testReservation()
	r.Phone = ""
	r.SpecialRequests = ""

	assert.NotContains(t, staffMessage(r, "s@ingri.example").Body, "Phone:")
	assert.NotContains(t, customerMessage(r).Body, "Special requests")

	r.SpecialRequests = "gluten free"
	assert.Contains(t, customerMessage(r).Body, "gluten free")
	assert.Contains(t, staffMessage(r, "s@ingri.example").Body, "gluten free")
}
