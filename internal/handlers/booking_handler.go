package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/booking-service/internal/helpers"
	"github.com/joshua-takyi/booking-service/internal/models"
	"github.com/joshua-takyi/booking-service/internal/services"
)

type createBookingRequest struct {
	EventID string `json:"eventId" binding:"required"`
}

// CreateBooking godoc
// @Summary      Book a seat for an event
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request  body      createBookingRequest  true  "Event to book"
// @Success      201      {object}  models.BookingCreatedResponse
// @Failure      400      {object}  models.ErrorBody
// @Failure      401      {object}  models.ErrorBody
// @Failure      402      {object}  models.ErrorBody
// @Failure      404      {object}  models.ErrorBody
// @Failure      500      {object}  models.ErrorBody
// @Security     cookieAuth
// @Router       /bookings [post]
func CreateBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("Missing required field: eventId"))
			return
		}

		userEmail := c.GetString(helpers.IdentityKey)

		booking, err := b.CreateBooking(c.Request.Context(), req.EventID, userEmail)
		if err != nil {
			status, msg := bookingErrorStatus(err)
			if status >= http.StatusInternalServerError {
				_ = c.Error(err)
			}
			c.JSON(status, models.ErrorResponse(msg))
			return
		}

		c.JSON(http.StatusCreated, models.CreatedResponse(booking.ID))
	}
}

// ListBookings godoc
// @Summary      List the caller's bookings
// @Tags         bookings
// @Produce      json
// @Success      200  {object}  models.BookingListResponse
// @Failure      400  {object}  models.ErrorBody
// @Failure      401  {object}  models.ErrorBody
// @Failure      500  {object}  models.ErrorBody
// @Security     cookieAuth
// @Router       /bookings [get]
func ListBookings(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := b.ListBookings(c.Request.Context(), c.GetString(helpers.IdentityKey))
		if err != nil {
			if errors.Is(err, services.ErrInvalidIdentity) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid or missing user email"))
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to list bookings"))
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(bookings))
	}
}

func bookingErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrMissingEventID):
		return http.StatusBadRequest, "Missing required field: eventId"
	case errors.Is(err, services.ErrInvalidIdentity):
		return http.StatusBadRequest, "Invalid or missing user email"
	case errors.Is(err, services.ErrNoSeats):
		return http.StatusBadRequest, "No seats available"
	case errors.Is(err, services.ErrEventNotFound):
		return http.StatusNotFound, "Event not found"
	case errors.Is(err, services.ErrPaymentDeclined):
		return http.StatusPaymentRequired, "Payment failed"
	case errors.Is(err, services.ErrAvailability):
		return http.StatusInternalServerError, "Failed to check seat availability"
	default:
		return http.StatusInternalServerError, "Failed to process booking"
	}
}
