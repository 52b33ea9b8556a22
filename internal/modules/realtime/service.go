package realtime

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"servicehub/internal/domain"
)

// Service holds the persistence side of the socket events.
type Service struct {
	users    UserLookup
	bookings BookingLookup
	messages MessageStore
}

func NewService(users UserLookup, bookings BookingLookup, messages MessageStore) *Service {
	return &Service{users: users, bookings: bookings, messages: messages}
}

// Authenticate confirms that the token subject still exists.
func (s *Service) Authenticate(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorizedConnect
		}
		return nil, err
	}
	return user, nil
}

// CanJoinBooking allows the booking's customer and the provider's user.
func (s *Service) CanJoinBooking(ctx context.Context, userID int64, bookingID string) error {
	b, err := s.bookings.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	if b.CustomerID == userID || (b.Provider != nil && b.Provider.UserID == userID) {
		return nil
	}
	return ErrNotParticipant
}

func (s *Service) SendMessage(ctx context.Context, senderID int64, p SendMessagePayload) (*domain.Message, error) {
	content := strings.TrimSpace(p.Content)
	if p.ReceiverID <= 0 || content == "" {
		return nil, ErrInvalidMessage
	}

	msgType := domain.MessageText
	switch strings.ToUpper(p.Type) {
	case "", string(domain.MessageText):
	case string(domain.MessageImage):
		msgType = domain.MessageImage
	default:
		return nil, ErrUnsupportedType
	}

	if _, err := s.users.GetByID(ctx, p.ReceiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiverNotFound
		}
		return nil, err
	}

	if p.BookingID != nil {
		if err := s.CanJoinBooking(ctx, senderID, *p.BookingID); err != nil {
			return nil, err
		}
	}

	msg := &domain.Message{
		SenderID:   senderID,
		ReceiverID: p.ReceiverID,
		BookingID:  p.BookingID,
		Content:    content,
		Type:       msgType,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// MarkRead flags messages addressed to userID as read.
func (s *Service) MarkRead(ctx context.Context, userID int64, ids []int64) (int64, error) {
	return s.messages.MarkRead(ctx, userID, ids)
}
