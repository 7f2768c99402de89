// Package booking models the multi-step draft a guest assembles before
// submitting a reservation: date, time, party size, then contact
// details.  A step must be valid before the session advances past it,
// and only a session that has cleared every step can produce a
// creation payload.
package booking

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/ingri/reservations/internal/model"
)

// Step identifies one stage of the booking flow, in order.
type Step int

const (
	StepDate Step = iota
	StepTime
	StepParty
	StepDetails
	// StepDone is the terminal display state after a successful submission.
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepDate:
		return "date"
	case StepTime:
		return "time"
	case StepParty:
		return "party"
	case StepDetails:
		return "details"
	case StepDone:
		return "done"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// ErrStepIncomplete blocks advancing while the current step's validity
// predicate does not hold.
var ErrStepIncomplete = errors.New("current step is incomplete")

// ErrSlotFull is returned when the guest picks a slot that the
// availability snapshot reports at or above the per-slot cap.
var ErrSlotFull = errors.New("slot is fully booked")

// Session is an in-progress reservation draft.  It collects the fields
// of a creation payload across the ordered steps and gates forward
// movement on per-step validity.  The availability snapshot used to
// gate the time step is the one taken when the step was shown; it is
// deliberately not re-verified at submission time.
type Session struct {
	catalog model.SlotCatalog
	today   string // local civil date at session start
	step    Step

	date      string
	slot      string
	partySize int

	name     string
	email    string
	phone    string
	requests string

	// occupancy per slot for the selected date, from the availability
	// checker; entries absent mean zero
	occupancy map[string]int
}

// NewSession starts a draft at the date step.  The date defaults to
// today and the party counter to the minimum size, matching the first
// render of the booking flow.
func NewSession(catalog model.SlotCatalog, now time.Time) *Session {
	return &Session{
		catalog:   catalog,
		today:     model.CivilDate(now),
		date:      model.CivilDate(now),
		partySize: model.MinPartySize,
	}
}

// Step returns the step the session is currently on.
func (s *Session) Step() Step { return s.step }

// SelectDate sets the draft's date.  Dates earlier than today (local
// civil date) are rejected.
func (s *Session) SelectDate(date string) error {
	if _, err := model.ParseDate(date); err != nil {
		return err
	}
	if date < s.today {
		return fmt.Errorf("date %s is in the past", date)
	}
	if date != s.date {
		// changing the date invalidates the chosen slot and its snapshot
		s.slot = ""
		s.occupancy = nil
	}
	s.date = date
	return nil
}

// SetOccupancy records the availability snapshot for the selected date.
// The time step calls this once when it is shown.
func (s *Session) SetOccupancy(counts map[string]int) {
	s.occupancy = counts
}

// SelectTime sets the draft's slot.  The value must be in the catalog
// and below the per-slot cap according to the recorded snapshot; full
// slots remain visible but are not selectable.
func (s *Session) SelectTime(slot string) error {
	if !s.catalog.Contains(slot) {
		return fmt.Errorf("time %q is not a bookable slot", slot)
	}
	if s.occupancy[slot] >= s.catalog.MaxPerSlot {
		return ErrSlotFull
	}
	s.slot = slot
	return nil
}

// SetPartySize sets the guest count, clamped to the allowed range the
// way the counter control clamps it.
func (s *Session) SetPartySize(n int) {
	if n < model.MinPartySize {
		n = model.MinPartySize
	}
	if n > model.MaxPartySize {
		n = model.MaxPartySize
	}
	s.partySize = n
}

// SetDetails records the contact-details step.  Phone and special
// requests are optional.
func (s *Session) SetDetails(name, email, phone, requests string) {
	s.name = strings.TrimSpace(name)
	s.email = strings.TrimSpace(email)
	s.phone = strings.TrimSpace(phone)
	s.requests = strings.TrimSpace(requests)
}

// StepValid reports whether a step's validity predicate holds for the
// current draft.
func (s *Session) StepValid(step Step) bool {
	switch step {
	case StepDate:
		return s.date >= s.today
	case StepTime:
		return s.slot != "" && s.catalog.Contains(s.slot)
	case StepParty:
		return s.partySize >= model.MinPartySize && s.partySize <= model.MaxPartySize
	case StepDetails:
		if s.name == "" || s.email == "" {
			return false
		}
		_, err := mail.ParseAddress(s.email)
		return err == nil
	}
	return false
}

// Advance moves to the next step.  It fails with ErrStepIncomplete when
// the current step is not yet valid; advancing is blocked, not merely
// warned about.
func (s *Session) Advance() error {
	if s.step >= StepDone {
		return errors.New("session already submitted")
	}
	if !s.StepValid(s.step) {
		return fmt.Errorf("%w: %s", ErrStepIncomplete, s.step)
	}
	s.step++
	return nil
}

// Back returns to the previous step.  Earlier selections are kept.
func (s *Session) Back() {
	if s.step > StepDate && s.step < StepDone {
		s.step--
	}
}

// Payload assembles the single creation request for a draft that has
// cleared every step.
func (s *Session) Payload() (model.CreateReservationInput, error) {
	for step := StepDate; step <= StepDetails; step++ {
		if !s.StepValid(step) {
			return model.CreateReservationInput{}, fmt.Errorf("%w: %s", ErrStepIncomplete, step)
		}
	}
	return model.CreateReservationInput{
		Name:            s.name,
		Email:           s.email,
		Phone:           s.phone,
		Date:            s.date,
		Time:            s.slot,
		PartySize:       s.partySize,
		SpecialRequests: s.requests,
	}, nil
}

// Complete marks the session submitted; the draft is no longer editable.
func (s *Session) Complete() {
	s.step = StepDone
}
