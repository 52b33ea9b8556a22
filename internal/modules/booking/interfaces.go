package booking

import (
	"context"

	"servicehub/internal/domain"
	"servicehub/internal/repository"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error)
	ListForProviderOnDate(ctx context.Context, providerID int64, date string, statuses []domain.BookingStatus) ([]domain.Booking, error)
	List(ctx context.Context, f repository.BookingListFilter) ([]domain.Booking, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, reason *string) error
}

type ServiceRepository interface {
	GetActiveByID(ctx context.Context, id int64) (*domain.Service, error)
}

type ProviderRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error)
}

// Notifier delivers booking events to interested users. Delivery is best
// effort; returned errors are only logged.
type Notifier interface {
	BookingCreated(ctx context.Context, providerUserID int64, b *domain.Booking) error
	BookingUpdated(ctx context.Context, b *domain.Booking) error
}

type noopNotifier struct{}

func (noopNotifier) BookingCreated(context.Context, int64, *domain.Booking) error { return nil }
func (noopNotifier) BookingUpdated(context.Context, *domain.Booking) error        { return nil }
