package handlers

import (
	"net/http"
	"strconv"

	"innkeep/models"
	"innkeep/services/booking"
	"innkeep/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves advance bookings.
type BookingHandler struct {
	BookingService booking.AdvanceBookingService
}

func NewBookingHandler(bs booking.AdvanceBookingService) *BookingHandler {
	return &BookingHandler{BookingService: bs}
}

// ListBookingsHandler serves one page of bookings filtered by ?search=.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid page", err.Error())
			return
		}
		page = n
	}
	result, err := h.BookingService.ListBookings(c.Request.Context(), c.Query("search"), page)
	if err != nil {
		utils.JSONFromError(c, "Failed to fetch bookings", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.BookingService.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONFromError(c, "Failed to fetch booking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req models.CreateAdvanceBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	id, err := h.BookingService.CreateAdvanceBooking(c.Request.Context(), req.AdvanceBookingDetails, req.Rooms)
	if err != nil {
		utils.JSONFromError(c, "Failed to create booking", err)
		return
	}
	getLogger(c).Info("Advance booking created", zap.String("bookingID", id), zap.String("date", req.DateOfBooking))
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// CancelBookingHandler cancels a booking. Without refund_amount the full advance is refunded.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	var req models.CancelBookingRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
			return
		}
	}

	id := c.Param("id")
	ctx := c.Request.Context()
	var refund = req.RefundAmount
	if refund == nil {
		b, err := h.BookingService.GetBooking(ctx, id)
		if err != nil {
			utils.JSONFromError(c, "Failed to cancel booking", err)
			return
		}
		full := b.AdvanceAmount
		refund = &full
	}

	if err := h.BookingService.CancelBooking(ctx, id, *refund); err != nil {
		utils.JSONFromError(c, "Failed to cancel booking", err)
		return
	}
	getLogger(c).Info("Advance booking cancelled", zap.String("bookingID", id), zap.String("refund", refund.String()))
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled", "refundAmount": refund})
}

func (h *BookingHandler) CompleteBookingHandler(c *gin.Context) {
	if err := h.BookingService.CompleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONFromError(c, "Failed to complete booking", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking completed"})
}
