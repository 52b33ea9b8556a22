package repository

import (
	"context"

	"gorm.io/gorm"

	"servicehub/internal/domain"
)

// BookingListFilter selects the bookings a user takes part in, as customer
// or, when ProviderID is set, as provider.
type BookingListFilter struct {
	CustomerID int64
	ProviderID *int64
	Status     domain.BookingStatus
	Limit      int
	Offset     int
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	err := r.db.WithContext(ctx).Omit("Customer", "Service", "Provider").Create(b).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *BookingRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Preload("Service").
		Preload("Provider").
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListForProviderOnDate returns the provider's bookings on date whose status
// is one of statuses, ordered by start time.
func (r *BookingRepository) ListForProviderOnDate(ctx context.Context, providerID int64, date string, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Where("provider_id = ? AND scheduled_date = ? AND status IN ?", providerID, date, statuses).
		Order("scheduled_time ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) List(ctx context.Context, f BookingListFilter) ([]domain.Booking, int64, error) {
	var bookings []domain.Booking
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Booking{})
	if f.ProviderID != nil {
		q = q.Where("(customer_id = ? OR provider_id = ?)", f.CustomerID, *f.ProviderID)
	} else {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Preload("Service.Category").
		Preload("Customer").
		Preload("Provider.User").
		Find(&bookings).Error
	return bookings, total, err
}

// UpdateStatus sets the status and overwrites the cancellation reason; a nil
// reason clears it.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, reason *string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":              status,
			"cancellation_reason": reason,
		}).Error
}
