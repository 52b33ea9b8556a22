package booking

import (
	"fmt"
	"time"

	"servicehub/internal/domain"
)

// Business hours grid, in minutes since midnight.
const (
	dayStart = 9 * 60
	dayEnd   = 18 * 60
	slotStep = 30
)

// interval is a half-open [start, end) range in minutes since midnight.
type interval struct {
	start int
	end   int
}

func (a interval) overlaps(b interval) bool {
	return a.start < b.end && a.end > b.start
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: time %q", ErrInvalidSchedule, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func bookingInterval(b domain.Booking) (interval, error) {
	start, err := parseClock(b.ScheduledTime)
	if err != nil {
		return interval{}, err
	}
	return interval{start: start, end: start + b.Duration}, nil
}

// availableSlots walks the grid from 09:00 up to, but excluding, 18:00 and
// keeps each start whose [start, start+duration) is clear of every booking.
// Bookings with an unreadable start time are ignored.
func availableSlots(duration int, bookings []domain.Booking) []Slot {
	busy := make([]interval, 0, len(bookings))
	for _, b := range bookings {
		iv, err := bookingInterval(b)
		if err != nil {
			continue
		}
		busy = append(busy, iv)
	}

	slots := []Slot{}
	for start := dayStart; start < dayEnd; start += slotStep {
		candidate := interval{start: start, end: start + duration}
		free := true
		for _, iv := range busy {
			if candidate.overlaps(iv) {
				free = false
				break
			}
		}
		if free {
			slots = append(slots, Slot{Time: formatClock(start), Available: true})
		}
	}
	return slots
}
