package availability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingri/reservations/internal/model"
)

type fakeCounter struct {
	counts map[string]int
	err    error
	date   string
}

func (f *fakeCounter) CountByDateSlot(_ context.Context, date string) (map[string]int, error) {
	f.date = date
	return f.counts, f.err
}

func TestCheckMarksFullSlots(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int{
		"19:00": 6, // at cap
		"19:30": 5, // one below cap
		"20:00": 7, // over cap (race artifact), still just "full"
	}}
	checker := NewChecker(counter, model.DefaultSlotCatalog())

	day, err := checker.Check(context.Background(), "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", counter.date)
	assert.Equal(t, 6, day.MaxPerSlot)
	require.Len(t, day.Parts, 3)

	byTime := map[string]SlotStatus{}
	for _, part := range day.Parts {
		for _, s := range part.Slots {
			byTime[s.Time] = s
		}
	}
	assert.Len(t, byTime, 28) // every catalog slot is present

	assert.True(t, byTime["19:00"].Full)
	assert.Equal(t, 6, byTime["19:00"].Booked)
	assert.False(t, byTime["19:30"].Full)
	assert.Equal(t, 5, byTime["19:30"].Booked)
	assert.True(t, byTime["20:00"].Full)

	// absent entries imply zero occupancy
	assert.Equal(t, 0, byTime["08:00"].Booked)
	assert.False(t, byTime["08:00"].Full)
}

func TestCheckRejectsMalformedDate(t *testing.T) {
	checker := NewChecker(&fakeCounter{}, model.DefaultSlotCatalog())
	_, err := checker.Check(context.Background(), "10-03-2026")
	assert.Error(t, err)
	_, err = checker.Occupancy(context.Background(), "next friday")
	assert.Error(t, err)
}

func TestCheckPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("store unreachable")
	checker := NewChecker(&fakeCounter{err: storeErr}, model.DefaultSlotCatalog())
	_, err := checker.Check(context.Background(), "2026-03-10")
	assert.ErrorIs(t, err, storeErr)
}

func TestOccupancyPassthrough(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int{"18:00": 2}}
	checker := NewChecker(counter, model.DefaultSlotCatalog())
	counts, err := checker.Occupancy(context.Background(), "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, 2, counts["18:00"])
	assert.Equal(t, 0, counts["18:30"])
}
