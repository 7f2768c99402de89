package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingri/reservations/internal/model"
)

var testNow = time.Date(2026, time.March, 8, 14, 30, 0, 0, time.Local)

func newSession() *Session {
	return NewSession(model.DefaultSlotCatalog(), testNow)
}

func TestSessionDefaultsToToday(t *testing.T) {
	s := newSession()
	assert.Equal(t, StepDate, s.Step())
	// date step is already valid on first render
	assert.True(t, s.StepValid(StepDate))
	require.NoError(t, s.Advance())
	assert.Equal(t, StepTime, s.Step())
}

func TestSelectDateRejectsPast(t *testing.T) {
	s := newSession()
	assert.Error(t, s.SelectDate("2026-03-07"))
	assert.Error(t, s.SelectDate("07/03/2026"))
	assert.NoError(t, s.SelectDate("2026-03-08")) // today is allowed
	assert.NoError(t, s.SelectDate("2026-03-10"))
}

func TestSelectTimeHonorsCapSnapshot(t *testing.T) {
	s := newSession()
	s.SetOccupancy(map[string]int{"19:00": 6, "19:30": 5})

	err := s.SelectTime("19:00")
	assert.ErrorIs(t, err, ErrSlotFull)
	assert.NoError(t, s.SelectTime("19:30")) // one seat below cap
	assert.NoError(t, s.SelectTime("18:00")) // absent entry means zero
	assert.Error(t, s.SelectTime("22:00"))   // not in catalog
}

func TestChangingDateClearsSlot(t *testing.T) {
	s := newSession()
	s.SetOccupancy(map[string]int{})
	require.NoError(t, s.SelectTime("18:30"))
	assert.True(t, s.StepValid(StepTime))

	require.NoError(t, s.SelectDate("2026-03-12"))
	assert.False(t, s.StepValid(StepTime))
}

func TestPartySizeClamping(t *testing.T) {
	s := newSession()
	s.SetPartySize(0)
	assert.True(t, s.StepValid(StepParty))
	s.SetPartySize(11)
	assert.True(t, s.StepValid(StepParty))

	s.SetPartySize(4)
	p, err := completedPayload(t, s)
	require.NoError(t, err)
	assert.Equal(t, 4, p.PartySize)
}

func TestAdvanceBlockedUntilStepValid(t *testing.T) {
	s := newSession()
	require.NoError(t, s.Advance()) // date defaults to today

	// no slot chosen yet
	err := s.Advance()
	assert.ErrorIs(t, err, ErrStepIncomplete)

	s.SetOccupancy(nil)
	require.NoError(t, s.SelectTime("19:00"))
	require.NoError(t, s.Advance())
	require.NoError(t, s.Advance()) // party defaults within range

	// details missing
	assert.ErrorIs(t, s.Advance(), ErrStepIncomplete)
	s.SetDetails("Asha", "not-an-email", "", "")
	assert.ErrorIs(t, s.Advance(), ErrStepIncomplete)
	s.SetDetails("Asha", "a@x.com", "", "")
	require.NoError(t, s.Advance())
	assert.Equal(t, StepDone, s.Step())
}

func TestPayloadRequiresCompleteDraft(t *testing.T) {
	s := newSession()
	_, err := s.Payload()
	assert.ErrorIs(t, err, ErrStepIncomplete)

	p, err := completedPayload(t, s)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-08", p.Date)
	assert.Equal(t, "19:00", p.Time)
	assert.Equal(t, "Asha", p.Name)
	assert.NoError(t, p.Validate(model.DefaultSlotCatalog()))
}

func TestBackKeepsSelections(t *testing.T) {
	s := newSession()
	require.NoError(t, s.Advance())
	s.SetOccupancy(nil)
	require.NoError(t, s.SelectTime("20:00"))
	require.NoError(t, s.Advance())

	s.Back()
	assert.Equal(t, StepTime, s.Step())
	assert.True(t, s.StepValid(StepTime))
	s.Back()
	s.Back() // already at the first step, stays there
	assert.Equal(t, StepDate, s.Step())
}

func completedPayload(t *testing.T, s *Session) (model.CreateReservationInput, error) {
	t.Helper()
	s.SetOccupancy(nil)
	if err := s.SelectTime("19:00"); err != nil {
		t.Fatalf("select time: %v", err)
	}
	s.SetDetails("Asha", "a@x.com", "", "")
	return s.Payload()
}
