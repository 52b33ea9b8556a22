package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"servicehub/internal/middleware"
	"servicehub/internal/pkg/response"
	"servicehub/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.GET("/bookings/availability/:serviceId", h.GetAvailability)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	bookings := protected.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("/my", h.MyBookings)
		bookings.PATCH("/:bookingId/status", h.UpdateStatus)
	}
}

// GetAvailability lists free start times for a service on a date.
// @Summary		Service availability
// @Tags		Bookings
// @Param		serviceId	path	int		true	"Service ID"
// @Param		date		query	string	true	"YYYY-MM-DD"
// @Success		200	{object}	AvailabilityResponse
// @Failure		400	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/bookings/availability/{serviceId} [GET]
func (h *Handler) GetAvailability(c *gin.Context) {
	serviceID, err := strconv.ParseInt(c.Param("serviceId"), 10, 64)
	if err != nil || serviceID <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid service id")
		return
	}

	var q AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationErrors(c, http.StatusBadRequest, validator.FromError(err))
		return
	}

	res, err := h.service.Availability(c.Request.Context(), serviceID, q.Date)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// CreateBooking reserves a slot for the authenticated customer.
// @Summary		Create booking
// @Tags		Bookings
// @Security	BearerAuth
// @Param		request	body	CreateBookingRequest	true	"Booking"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/bookings [POST]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErrors(c, http.StatusBadRequest, validator.FromError(err))
		return
	}

	b, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Booking created successfully",
		"booking": b,
	})
}

func (h *Handler) MyBookings(c *gin.Context) {
	var q MyBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationErrors(c, http.StatusBadRequest, validator.FromError(err))
		return
	}

	res, err := h.service.MyBookings(c.Request.Context(), middleware.UserID(c), q)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// UpdateStatus changes the status of a booking of the caller's provider profile.
// @Summary		Update booking status
// @Tags		Bookings
// @Security	BearerAuth
// @Param		bookingId	path	string				true	"External booking id"
// @Param		request		body	UpdateStatusRequest	true	"New status"
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/bookings/{bookingId}/status [PATCH]
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErrors(c, http.StatusBadRequest, validator.FromError(err))
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), middleware.UserID(c), c.Param("bookingId"), req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Booking status updated",
		"booking": b,
	})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrServiceNotFound):
		response.Error(c, http.StatusNotFound, "Service not found")
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "Booking not found")
	case errors.Is(err, ErrSlotUnavailable):
		response.Error(c, http.StatusBadRequest, "Time slot is not available")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "Invalid status")
	case errors.Is(err, ErrInvalidSchedule):
		response.Error(c, http.StatusBadRequest, "Invalid scheduled time")
	default:
		response.Internal(c, err)
	}
}
