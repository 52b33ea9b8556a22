package booking

import "servicehub/internal/domain"

// findConflict returns the first existing booking whose interval overlaps
// requested, or nil. Bookings with an unreadable start time never conflict.
func findConflict(requested interval, existing []domain.Booking) *domain.Booking {
	for i := range existing {
		iv, err := bookingInterval(existing[i])
		if err != nil {
			continue
		}
		if requested.overlaps(iv) {
			return &existing[i]
		}
	}
	return nil
}
