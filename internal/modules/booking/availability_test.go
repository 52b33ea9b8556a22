package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicehub/internal/domain"
)

func slotTimes(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Time)
	}
	return out
}

func TestAvailableSlots_EmptyDayIsFullGrid(t *testing.T) {
	slots := availableSlots(60, nil)

	require.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "17:30", slots[len(slots)-1].Time)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestAvailableSlots_ExcludesOverlapWithBooking(t *testing.T) {
	booked := []domain.Booking{{ScheduledTime: "10:00", Duration: 60}}

	times := slotTimes(availableSlots(60, booked))

	assert.NotContains(t, times, "09:30")
	assert.NotContains(t, times, "10:00")
	assert.NotContains(t, times, "10:30")
	assert.Contains(t, times, "09:00")
	assert.Contains(t, times, "11:00")
}

func TestAvailableSlots_NeverOverlapsBusyIntervals(t *testing.T) {
	booked := []domain.Booking{
		{ScheduledTime: "09:15", Duration: 45},
		{ScheduledTime: "13:00", Duration: 90},
		{ScheduledTime: "17:45", Duration: 30},
	}

	for _, duration := range []int{30, 45, 60, 120} {
		for _, s := range availableSlots(duration, booked) {
			start, err := parseClock(s.Time)
			require.NoError(t, err)
			candidate := interval{start: start, end: start + duration}
			for _, b := range booked {
				iv, err := bookingInterval(b)
				require.NoError(t, err)
				assert.False(t, candidate.overlaps(iv), "slot %s (%d min) overlaps %s", s.Time, duration, b.ScheduledTime)
			}
		}
	}
}

func TestAvailableSlots_IgnoresUnreadableTimes(t *testing.T) {
	booked := []domain.Booking{{ScheduledTime: "noon", Duration: 60}}
	assert.Len(t, availableSlots(30, booked), 18)
}

func TestParseAndFormatClock(t *testing.T) {
	m, err := parseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)
	assert.Equal(t, "09:30", formatClock(m))

	_, err = parseClock("25:00")
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}
