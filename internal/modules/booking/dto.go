package booking

import (
	"servicehub/internal/domain"
	"servicehub/internal/pkg/response"
)

type CreateBookingRequest struct {
	ServiceID     int64  `json:"serviceId" binding:"required,gt=0"`
	ScheduledDate string `json:"scheduledDate" binding:"required,datetime=2006-01-02"`
	ScheduledTime string `json:"scheduledTime" binding:"required,datetime=15:04"`
	Address       string `json:"address" binding:"max=500"`
	Notes         string `json:"notes" binding:"max=2000"`
}

type UpdateStatusRequest struct {
	Status             string  `json:"status" binding:"required,oneof=CONFIRMED IN_PROGRESS COMPLETED CANCELLED"`
	CancellationReason *string `json:"cancellationReason" binding:"omitempty,max=500"`
}

type AvailabilityQuery struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

type MyBookingsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED IN_PROGRESS COMPLETED CANCELLED"`
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=20" binding:"min=1,max=50"`
}

type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type AvailabilityResponse struct {
	Date      string `json:"date"`
	ServiceID int64  `json:"serviceId"`
	Duration  int    `json:"duration"`
	Slots     []Slot `json:"slots"`
}

type MyBookingsResponse struct {
	Bookings   []domain.Booking    `json:"bookings"`
	Pagination response.Pagination `json:"pagination"`
}
