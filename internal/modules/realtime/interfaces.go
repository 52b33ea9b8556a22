package realtime

import (
	"context"

	"servicehub/internal/domain"
)

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type BookingLookup interface {
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error)
}

type MessageStore interface {
	Create(ctx context.Context, m *domain.Message) error
	MarkRead(ctx context.Context, receiverID int64, ids []int64) (int64, error)
}

// Publisher mirrors events to a message broker. *mq.Publisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}
