package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"urbanserve/database/repository"
	bookingService "urbanserve/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateBookingHandler opens a pending booking for the authenticated customer.
func CreateBookingHandler(svc bookingService.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)
		u := currentUser(c)

		var req bookingService.CreateInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		booking, err := svc.Create(c.Request.Context(), u.ID, req)
		if err != nil {
			var ve bookingService.ValidationError
			switch {
			case errors.As(err, &ve):
				c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
			case errors.Is(err, repository.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
			default:
				logger.Error("Booking creation failed", zap.Uint("customer_id", u.ID), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Booking creation failed"})
			}
			return
		}
		c.JSON(http.StatusCreated, booking)
	}
}

// ListBookingsHandler lists bookings where the caller is either party.
func ListBookingsHandler(svc bookingService.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)
		u := currentUser(c)

		bookings, err := svc.ListForUser(c.Request.Context(), u.ID)
		if err != nil {
			logger.Error("Booking list failed", zap.Uint("user_id", u.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bookings"})
			return
		}
		c.JSON(http.StatusOK, bookings)
	}
}

// UpdateBookingStatusHandler applies one lifecycle transition.
func UpdateBookingStatusHandler(svc bookingService.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)
		u := currentUser(c)

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking id"})
			return
		}
		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		booking, err := svc.UpdateStatus(c.Request.Context(), uint(id), u.ID, req.Status)
		if err != nil {
			var ve bookingService.ValidationError
			var ae bookingService.AuthorizationError
			switch {
			case errors.As(err, &ve):
				c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
			case errors.As(err, &ae):
				c.JSON(http.StatusForbidden, gin.H{"error": ae.Reason})
			case errors.Is(err, repository.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			default:
				logger.Error("Booking status update failed",
					zap.Uint64("booking_id", id), zap.Uint("actor_id", u.ID), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Status update failed"})
			}
			return
		}
		c.JSON(http.StatusOK, booking)
	}
}
