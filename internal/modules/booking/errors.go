package booking

import "errors"

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrSlotUnavailable = errors.New("time slot is not available")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidSchedule = errors.New("invalid schedule")
)
