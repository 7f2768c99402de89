package model

import "fmt"

// Status is the lifecycle state of a reservation.  A reservation is
// created as StatusPending and moves forward one step at a time
// through the confirmed/seated/completed path.  From any of the three
// active states an operator may instead mark the reservation cancelled
// or no-show.  Completed, cancelled and no_show are terminal: no
// transition ever originates from them.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusSeated    Status = "seated"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// transitions lists every allowed edge of the lifecycle state machine.
// Anything not present here is an illegal transition.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusSeated, StatusCancelled, StatusNoShow},
	StatusSeated:    {StatusCompleted, StatusCancelled, StatusNoShow},
	// terminal states have no outgoing edges
	StatusCompleted: nil,
	StatusCancelled: nil,
	StatusNoShow:    nil,
}

// ParseStatus validates a raw status string and returns the typed value.
// Unknown values are rejected so that the update endpoint can never write
// an arbitrary string into the store.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusSeated,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return st, nil
	}
	return "", fmt.Errorf("unknown reservation status %q", s)
}

// CanTransition reports whether moving a reservation from one status to
// another is a legal lifecycle edge.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status permits no further transitions.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0 && s != ""
}

// CountsTowardOccupancy reports whether a reservation in this status
// occupies its time slot.  Only cancelled reservations free the slot;
// no-shows still count because the table was held for them.
func (s Status) CountsTowardOccupancy() bool {
	return s != StatusCancelled
}
