// Package availability reports per-slot occupancy for a calendar date
// so the booking flow can gate slot selection.  The check is advisory:
// it is computed when the time step is shown and is not re-verified
// transactionally at submission time, so two concurrent bookers can
// both observe a slot one below the cap and both submit.  That gap is
// accepted behavior, not something this package tries to lock away.
package availability

import (
	"context"
	"fmt"

	"github.com/ingri/reservations/internal/model"
)

// SlotCounter supplies the occupancy counts the checker works from.
// *repository.ReservationRepo satisfies it.
type SlotCounter interface {
	CountByDateSlot(ctx context.Context, date string) (map[string]int, error)
}

// SlotStatus describes one bookable slot on the requested date.  A full
// slot stays visible in the flow but is not selectable.
type SlotStatus struct {
	Time   string `json:"time"`
	Booked int    `json:"booked"`
	Full   bool   `json:"full"`
}

// PartAvailability is the slot statuses of one day part, in day order.
type PartAvailability struct {
	Label string       `json:"label"`
	Slots []SlotStatus `json:"slots"`
}

// DayAvailability is the full availability picture for one date.
type DayAvailability struct {
	Date       string             `json:"date"`
	MaxPerSlot int                `json:"max_per_slot"`
	Parts      []PartAvailability `json:"parts"`
}

// Checker computes slot occupancy against the fixed slot catalog.
type Checker struct {
	counter SlotCounter
	catalog model.SlotCatalog
}

// NewChecker returns a Checker over the given counter and catalog.
func NewChecker(counter SlotCounter, catalog model.SlotCatalog) *Checker {
	return &Checker{counter: counter, catalog: catalog}
}

// Check returns the occupancy of every catalog slot on the given date.
// A slot is full when its count of non-cancelled reservations has
// reached the per-slot cap.
func (c *Checker) Check(ctx context.Context, date string) (*DayAvailability, error) {
	if _, err := model.ParseDate(date); err != nil {
		return nil, err
	}
	counts, err := c.counter.CountByDateSlot(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("count occupancy for %s: %w", date, err)
	}
	day := &DayAvailability{
		Date:       date,
		MaxPerSlot: c.catalog.MaxPerSlot,
		Parts:      make([]PartAvailability, 0, len(c.catalog.Parts)),
	}
	for _, part := range c.catalog.Parts {
		pa := PartAvailability{Label: part.Label, Slots: make([]SlotStatus, 0, len(part.Slots))}
		for _, slot := range part.Slots {
			booked := counts[slot]
			pa.Slots = append(pa.Slots, SlotStatus{
				Time:   slot,
				Booked: booked,
				Full:   booked >= c.catalog.MaxPerSlot,
			})
		}
		day.Parts = append(day.Parts, pa)
	}
	return day, nil
}

// Occupancy returns the raw slot-to-count map for a date, entries
// absent implying zero.
func (c *Checker) Occupancy(ctx context.Context, date string) (map[string]int, error) {
	if _, err := model.ParseDate(date); err != nil {
		return nil, err
	}
	return c.counter.CountByDateSlot(ctx, date)
}
