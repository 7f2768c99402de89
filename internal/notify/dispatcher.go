package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ingri/reservations/internal/model"
)

// Dispatcher fires the two creation notifications: a confirmation to
// the guest and a heads-up to the fixed staff address.  The two sends
// run in parallel and are independent; one failing does not cancel or
// roll back the other, and neither failure affects the booking.  It is
// invoked on creation only, never on status transitions.
type Dispatcher struct {
	mailer     Mailer
	staffEmail string
	log        logrus.FieldLogger
}

// NewDispatcher wires a dispatcher to a mailer and the staff address.
func NewDispatcher(mailer Mailer, staffEmail string, log logrus.FieldLogger) *Dispatcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Dispatcher{mailer: mailer, staffEmail: staffEmail, log: log}
}

// ReservationCreated sends both notifications and waits for both
// attempts to settle before returning.  Individual failures are logged
// with their branch and swallowed; the caller only learns that the
// attempts finished, which is all the creation response depends on.
func (d *Dispatcher) ReservationCreated(ctx context.Context, r *model.Reservation) {
	sends := []struct {
		branch string
		msg    Message
	}{
		{"customer_confirmation", customerMessage(r)},
		{"staff_notification", staffMessage(r, d.staffEmail)},
	}

	var wg sync.WaitGroup
	for _, s := range sends {
		wg.Add(1)
		go func(branch string, msg Message) {
			defer wg.Done()
			if err := d.mailer.Send(ctx, msg); err != nil {
				d.log.WithError(err).WithFields(logrus.Fields{
					"branch":         branch,
					"reservation_id": r.ID,
				}).Error("notification send failed")
			}
		}(s.branch, s.msg)
	}
	wg.Wait()
}

func customerMessage(r *model.Reservation) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", r.Name)
	fmt.Fprintf(&b, "We look forward to welcoming your party of %d on %s at %s.\n", r.PartySize, r.Date, r.Time)
	fmt.Fprintf(&b, "Your reservation reference is %s.\n", r.ID)
	if r.SpecialRequests != "" {
		fmt.Fprintf(&b, "\nSpecial requests noted: %s\n", r.SpecialRequests)
	}
	b.WriteString("\nWarm regards,\ningri\n")
	return Message{
		To:      r.Email,
		Subject: "Your reservation at ingri is confirmed",
		Body:    b.String(),
	}
}

func staffMessage(r *model.Reservation, staffEmail string) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "New reservation %s\n\n", r.ID)
	fmt.Fprintf(&b, "Guest: %s\nEmail: %s\n", r.Name, r.Email)
	if r.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", r.Phone)
	}
	fmt.Fprintf(&b, "Date: %s at %s\nParty size: %d\n", r.Date, r.Time, r.PartySize)
	if r.SpecialRequests != "" {
		fmt.Fprintf(&b, "Special requests: %s\n", r.SpecialRequests)
	}
	return Message{
		To:      staffEmail,
		Subject: fmt.Sprintf("New reservation — %s · %s at %s", r.Name, r.Date, r.Time),
		Body:    b.String(),
	}
}
