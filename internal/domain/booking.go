package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "PENDING"
	BookingConfirmed  BookingStatus = "CONFIRMED"
	BookingInProgress BookingStatus = "IN_PROGRESS"
	BookingCompleted  BookingStatus = "COMPLETED"
	BookingCancelled  BookingStatus = "CANCELLED"
)

// ActiveBookingStatuses block a time slot for new bookings.
var ActiveBookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingInProgress}

// BusyBookingStatuses are the statuses shown as taken in the availability grid.
var BusyBookingStatuses = []BookingStatus{BookingConfirmed, BookingInProgress}

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch st := BookingStatus(s); st {
	case BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled:
		return st, true
	}
	return "", false
}

type Booking struct {
	ID            int64         `json:"id" gorm:"primaryKey"`
	BookingID     string        `json:"bookingId" gorm:"size:64;uniqueIndex;not null"`
	CustomerID    int64         `json:"customerId" gorm:"index;not null"`
	ServiceID     int64         `json:"serviceId" gorm:"index;not null"`
	ProviderID    int64         `json:"providerId" gorm:"index:idx_bookings_provider_date;not null"`
	ScheduledDate string        `json:"scheduledDate" gorm:"size:10;index:idx_bookings_provider_date;not null"`
	ScheduledTime string        `json:"scheduledTime" gorm:"size:5;not null"`
	Duration      int           `json:"duration"`
	Status        BookingStatus `json:"status" gorm:"size:16;index;not null"`
	TotalPrice    float64       `json:"totalPrice"`
	Address       string        `json:"address,omitempty"`
	Notes         string        `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	// Set only while Status is CANCELLED.
	CancellationReason *string `json:"cancellationReason,omitempty" gorm:"type:text"`

	Customer *User     `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Service  *Service  `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Provider *Provider `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
}
