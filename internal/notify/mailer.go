// Package notify sends the confirmation and staff-notification emails
// fired when a reservation is created.  Delivery is strictly
// best-effort: failures are logged and never surfaced to the guest,
// and there is no outbox, retry queue or idempotency key.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers a single message.  Implementations must be safe for
// concurrent use; the dispatcher sends on multiple goroutines.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer delivers mail through a plain SMTP relay.
type SMTPMailer struct {
	host string
	port string
	from string
	auth smtp.Auth
}

// NewSMTPMailer builds a mailer for the given relay.  user may be empty
// for unauthenticated relays.
func NewSMTPMailer(host, port, user, pass, from string) *SMTPMailer {
	m := &SMTPMailer{host: host, port: port, from: from}
	if user != "" {
		m.auth = smtp.PlainAuth("", user, pass, host)
	}
	return m
}

// Send delivers one message.  The context is honored only up to the
// point the SMTP dialogue starts; net/smtp does not support
// cancellation mid-session, matching the system-wide rule that no
// operation is cancellable once issued.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(msg.Body)

	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, m.auth, m.from, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}
