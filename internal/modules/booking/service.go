package booking

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"servicehub/internal/domain"
	"servicehub/internal/pkg/response"
	"servicehub/internal/repository"
)

// Service implements availability, creation and the status lifecycle of bookings.
type Service struct {
	bookings  BookingRepository
	services  ServiceRepository
	providers ProviderRepository
	notifier  Notifier
}

// NewService wires the booking service. A nil notifier disables realtime events.
func NewService(bookings BookingRepository, services ServiceRepository, providers ProviderRepository, notifier Notifier) *Service {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Service{
		bookings:  bookings,
		services:  services,
		providers: providers,
		notifier:  notifier,
	}
}

func (s *Service) getService(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.services.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return svc, nil
}

// Availability lists the free slots of a service on date. Only CONFIRMED
// and IN_PROGRESS bookings of the provider occupy the grid.
func (s *Service) Availability(ctx context.Context, serviceID int64, date string) (*AvailabilityResponse, error) {
	svc, err := s.getService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	busy, err := s.bookings.ListForProviderOnDate(ctx, svc.ProviderID, date, domain.BusyBookingStatuses)
	if err != nil {
		return nil, err
	}

	return &AvailabilityResponse{
		Date:      date,
		ServiceID: svc.ID,
		Duration:  svc.Duration,
		Slots:     availableSlots(svc.Duration, busy),
	}, nil
}

// Create books a service for the customer. The slot is rejected when it
// overlaps any PENDING, CONFIRMED or IN_PROGRESS booking of the provider on
// that date. Concurrent requests for the same slot are not serialized.
func (s *Service) Create(ctx context.Context, customerID int64, req CreateBookingRequest) (*domain.Booking, error) {
	svc, err := s.getService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	start, err := parseClock(req.ScheduledTime)
	if err != nil {
		return nil, err
	}

	existing, err := s.bookings.ListForProviderOnDate(ctx, svc.ProviderID, req.ScheduledDate, domain.ActiveBookingStatuses)
	if err != nil {
		return nil, err
	}
	if c := findConflict(interval{start: start, end: start + svc.Duration}, existing); c != nil {
		return nil, ErrSlotUnavailable
	}

	b := &domain.Booking{
		BookingID:     uuid.NewString(),
		CustomerID:    customerID,
		ServiceID:     svc.ID,
		ProviderID:    svc.ProviderID,
		ScheduledDate: req.ScheduledDate,
		ScheduledTime: formatClock(start),
		Duration:      svc.Duration,
		Status:        domain.BookingPending,
		TotalPrice:    svc.BasePrice,
		Address:       strings.TrimSpace(req.Address),
		Notes:         strings.TrimSpace(req.Notes),
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	b.Service = svc

	if svc.Provider != nil {
		if err := s.notifier.BookingCreated(ctx, svc.Provider.UserID, b); err != nil {
			logrus.WithError(err).WithField("booking_id", b.BookingID).Warn("new booking notification failed")
		}
	}

	return b, nil
}

// MyBookings lists bookings where the user is the customer or, for
// providers, the provider.
func (s *Service) MyBookings(ctx context.Context, userID int64, q MyBookingsQuery) (*MyBookingsResponse, error) {
	f := repository.BookingListFilter{
		CustomerID: userID,
		Status:     domain.BookingStatus(q.Status),
		Limit:      q.Limit,
		Offset:     (q.Page - 1) * q.Limit,
	}

	provider, err := s.providers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if provider != nil {
		f.ProviderID = &provider.ID
	}

	bookings, total, err := s.bookings.List(ctx, f)
	if err != nil {
		return nil, err
	}

	return &MyBookingsResponse{
		Bookings:   bookings,
		Pagination: response.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// UpdateStatus moves a booking owned by the caller's provider profile to
// status. Bookings of other providers are reported as not found.
func (s *Service) UpdateStatus(ctx context.Context, userID int64, bookingID string, req UpdateStatusRequest) (*domain.Booking, error) {
	status, ok := domain.ParseBookingStatus(req.Status)
	if !ok || status == domain.BookingPending {
		return nil, ErrInvalidStatus
	}

	provider, err := s.providers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, ErrBookingNotFound
	}

	b, err := s.bookings.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.ProviderID != provider.ID {
		return nil, ErrBookingNotFound
	}

	var reason *string
	if status == domain.BookingCancelled && req.CancellationReason != nil {
		if r := strings.TrimSpace(*req.CancellationReason); r != "" {
			reason = &r
		}
	}

	if err := s.bookings.UpdateStatus(ctx, b.ID, status, reason); err != nil {
		return nil, err
	}
	b.Status = status
	b.CancellationReason = reason

	if err := s.notifier.BookingUpdated(ctx, b); err != nil {
		logrus.WithError(err).WithField("booking_id", b.BookingID).Warn("booking update notification failed")
	}

	return b, nil
}
