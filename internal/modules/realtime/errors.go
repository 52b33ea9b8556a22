package realtime

import "errors"

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrNotParticipant      = errors.New("not a participant of the booking")
	ErrInvalidMessage      = errors.New("receiverId and content are required")
	ErrReceiverNotFound    = errors.New("receiver not found")
	ErrUnsupportedType     = errors.New("unsupported message type")
	ErrUnauthorizedConnect = errors.New("unauthorized")
)
