package realtime

import "encoding/json"

// Event is the frame exchanged in both directions.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Server to client events.
const (
	EventNewBooking         = "new_booking"
	EventBookingUpdate      = "booking_update"
	EventNewMessage         = "new_message"
	EventNewBookingMessage  = "new_booking_message"
	EventMessageSent        = "message_sent"
	EventMessagesMarkedRead = "messages_marked_read"
	EventBookingJoined      = "booking_joined"
	EventError              = "error"
)

// Client to server events.
const (
	EventJoinBooking = "join_booking"
	EventSendMessage = "send_message"
	EventMarkRead    = "mark_read"
)

// incomingEvent defers decoding of data until the event name is known.
type incomingEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type JoinBookingPayload struct {
	BookingID string `json:"bookingId"`
}

type SendMessagePayload struct {
	ReceiverID int64   `json:"receiverId"`
	Content    string  `json:"content"`
	BookingID  *string `json:"bookingId,omitempty"`
	Type       string  `json:"type,omitempty"`
}

type MarkReadPayload struct {
	MessageIDs []int64 `json:"messageIds"`
}

type MarkedReadData struct {
	MessageIDs []int64 `json:"messageIds"`
	Updated    int64   `json:"updated"`
}

type ErrorData struct {
	Message string `json:"message"`
}
