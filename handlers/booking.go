package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barkwise/middleware"
	"barkwise/services/booking"
	"barkwise/utils"
)

// BookingHandler serves the booking lifecycle endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

// CreateBookingHandler handles POST /api/services/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := h.Service.CreateBooking(middleware.UserID(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListMyBookingsHandler handles GET /api/services/bookings.
func (h *BookingHandler) ListMyBookingsHandler(c *gin.Context) {
	bookings, err := h.Service.ListBookingsForUser(middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CreateHoldHandler handles POST /api/services/bookings/holds.
func (h *BookingHandler) CreateHoldHandler(c *gin.Context) {
	var input booking.HoldInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	hold, err := h.Service.CreateBookingHold(middleware.UserID(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, hold)
}

// GetHoldHandler handles GET /api/services/bookings/holds/:id.
func (h *BookingHandler) GetHoldHandler(c *gin.Context) {
	hold, err := h.Service.GetBookingHold(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hold)
}

// UpdateBookingStatusHandler handles POST /api/services/bookings/:id/status.
func (h *BookingHandler) UpdateBookingStatusHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := h.Service.UpdateBookingStatus(c.Param("id"), middleware.UserID(c), input.Status, input.Note)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListProviderBookingsHandler handles GET /api/services/providers/:id/bookings.
func (h *BookingHandler) ListProviderBookingsHandler(c *gin.Context) {
	bookings, err := h.Service.ListBookingsForProvider(c.Param("id"), middleware.UserID(c), c.Query("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CreateBlackoutHandler handles POST /api/services/providers/:id/blackouts.
func (h *BookingHandler) CreateBlackoutHandler(c *gin.Context) {
	var input struct {
		Date   string `json:"date"`
		Slot   string `json:"slot"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	blackout, err := h.Service.CreateProviderBlackout(c.Param("id"), middleware.UserID(c), input.Date, input.Slot, input.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, blackout)
}

// ListBlackoutsHandler handles GET /api/services/providers/:id/blackouts.
func (h *BookingHandler) ListBlackoutsHandler(c *gin.Context) {
	blackouts, err := h.Service.ListProviderBlackouts(c.Param("id"), c.Query("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blackouts)
}
