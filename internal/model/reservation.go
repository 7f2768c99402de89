package model

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date form used throughout the
// system.  Dates are local civil dates: they are parsed by appending a
// midnight local time, never interpreted as UTC.
const DateLayout = "2006-01-02"

// Party size bounds enforced on every booking.
const (
	MinPartySize = 1
	MaxPartySize = 10
)

// ErrMissingFields is returned when a creation payload lacks one of the
// required fields (name, email, date, time, party_size).
var ErrMissingFields = errors.New("missing required fields")

// Reservation is a single booking record.  It is created once by a
// booking submission and after that only its Status ever changes; every
// other field is immutable.  Records are never physically deleted in
// normal operation.
//
// Fields:
//
//	ID              – opaque identifier generated by the store at creation.
//	Name, Email     – required contact details.
//	Phone           – optional phone number.
//	Date            – calendar date, YYYY-MM-DD, local civil date.
//	Time            – slot time, HH:MM 24-hour, from the slot catalog.
//	PartySize       – number of guests, 1–10 inclusive.
//	SpecialRequests – optional free text.
//	Status          – lifecycle state, see Status.
//	CreatedAt       – server-assigned creation timestamp, immutable.
type Reservation struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	PartySize       int       `json:"party_size"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateReservationInput is the payload accepted by the creation
// endpoint.  Name, Email, Date, Time and PartySize are required; Phone
// and SpecialRequests may be empty.
type CreateReservationInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	PartySize       int    `json:"party_size"`
	SpecialRequests string `json:"special_requests"`
}

// Validate checks a creation payload against the slot catalog.  It
// returns ErrMissingFields when a required field is absent, and a
// descriptive error when a field is present but malformed.  Requests
// that fail validation never reach the store.
func (in CreateReservationInput) Validate(catalog SlotCatalog) error {
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		in.Date == "" || in.Time == "" || in.PartySize == 0 {
		return ErrMissingFields
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("invalid email address %q", in.Email)
	}
	if _, err := ParseDate(in.Date); err != nil {
		return err
	}
	if !catalog.Contains(in.Time) {
		return fmt.Errorf("time %q is not a bookable slot", in.Time)
	}
	if in.PartySize < MinPartySize || in.PartySize > MaxPartySize {
		return fmt.Errorf("party_size %d outside allowed range %d-%d",
			in.PartySize, MinPartySize, MaxPartySize)
	}
	return nil
}

// ParseDate parses a canonical YYYY-MM-DD string as a local civil date
// (midnight in the server's local time zone).
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// CivilDate formats a timestamp as the local civil date it falls on.
func CivilDate(t time.Time) string {
	return t.In(time.Local).Format(DateLayout)
}
