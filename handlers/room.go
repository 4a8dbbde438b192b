package handlers

import (
	"net/http"

	"innkeep/models"
	"innkeep/services/availability"
	"innkeep/services/room"
	"innkeep/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoomHandler serves room inventory, availability and stays.
type RoomHandler struct {
	RoomService         room.RoomService
	AvailabilityService availability.AvailabilityService
}

func NewRoomHandler(rs room.RoomService, as availability.AvailabilityService) *RoomHandler {
	return &RoomHandler{RoomService: rs, AvailabilityService: as}
}

func (h *RoomHandler) ListRoomsHandler(c *gin.Context) {
	rooms, err := h.RoomService.ListRooms(c.Request.Context())
	if err != nil {
		utils.JSONFromError(c, "Failed to fetch rooms", err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) CreateRoomHandler(c *gin.Context) {
	var req models.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	created, err := h.RoomService.CreateRoom(c.Request.Context(), req)
	if err != nil {
		utils.JSONFromError(c, "Failed to create room", err)
		return
	}
	getLogger(c).Info("Room created", zap.String("roomID", created.ID), zap.Int("roomNumber", created.RoomNumber))
	c.JSON(http.StatusCreated, created)
}

func (h *RoomHandler) UpdateRoomStatusHandler(c *gin.Context) {
	var req models.UpdateRoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if err := h.RoomService.UpdateRoomStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		utils.JSONFromError(c, "Failed to update room status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room status updated"})
}

// AvailableRoomsHandler lists rooms free on ?date= matching ?type=.
func (h *RoomHandler) AvailableRoomsHandler(c *gin.Context) {
	rooms, err := h.AvailabilityService.FindAvailableRooms(c.Request.Context(), c.Query("date"), c.Query("type"))
	if err != nil {
		utils.JSONFromError(c, "Failed to resolve availability", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms, "noRooms": len(rooms) == 0})
}

func (h *RoomHandler) CheckInHandler(c *gin.Context) {
	var req models.RoomCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	stay, err := h.RoomService.CheckInRoom(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.JSONFromError(c, "Failed to check in", err)
		return
	}
	getLogger(c).Info("Guest checked in", zap.String("stayID", stay.ID), zap.Int("roomNumber", stay.RoomNumber))
	c.JSON(http.StatusCreated, stay)
}

// ListStaysHandler lists stays; ?open=true keeps only guests still in house.
func (h *RoomHandler) ListStaysHandler(c *gin.Context) {
	stays, err := h.RoomService.ListStays(c.Request.Context(), c.Query("open") == "true")
	if err != nil {
		utils.JSONFromError(c, "Failed to fetch stays", err)
		return
	}
	c.JSON(http.StatusOK, stays)
}

func (h *RoomHandler) StayPaymentHandler(c *gin.Context) {
	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	stay, err := h.RoomService.RecordStayPayment(c.Request.Context(), c.Param("id"), req.Amount, req.Mode)
	if err != nil {
		utils.JSONFromError(c, "Failed to record payment", err)
		return
	}
	c.JSON(http.StatusOK, stay)
}

func (h *RoomHandler) StayPaymentsHandler(c *gin.Context) {
	entries, err := h.RoomService.StayPayments(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONFromError(c, "Failed to fetch payments", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *RoomHandler) CheckOutHandler(c *gin.Context) {
	stay, err := h.RoomService.CheckOutRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONFromError(c, "Failed to check out", err)
		return
	}
	c.JSON(http.StatusOK, stay)
}
