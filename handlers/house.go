package handlers

import (
	"net/http"

	"innkeep/models"
	"innkeep/services/house"
	"innkeep/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HouseHandler serves the house board and the house booking state machine.
type HouseHandler struct {
	HouseService house.HouseService
}

func NewHouseHandler(hs house.HouseService) *HouseHandler {
	return &HouseHandler{HouseService: hs}
}

func (h *HouseHandler) BoardHandler(c *gin.Context) {
	board, err := h.HouseService.Board(c.Request.Context())
	if err != nil {
		utils.JSONFromError(c, "Failed to fetch houses", err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *HouseHandler) CheckInHandler(c *gin.Context) {
	var req models.HouseCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	b, err := h.HouseService.CheckIn(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.JSONFromError(c, "Failed to check in", err)
		return
	}
	getLogger(c).Info("House checked in", zap.String("houseID", b.HouseID), zap.String("bookingID", b.ID))
	c.JSON(http.StatusCreated, b)
}

func (h *HouseHandler) ExtendHandler(c *gin.Context) {
	var req models.ExtendStayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	b, err := h.HouseService.Extend(c.Request.Context(), c.Param("id"), req.AdditionalDays, req.RentForDays)
	if err != nil {
		utils.JSONFromError(c, "Failed to extend stay", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *HouseHandler) ExtraFeeHandler(c *gin.Context) {
	var req models.ExtraFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	b, err := h.HouseService.AddExtraFee(c.Request.Context(), c.Param("id"), req.Description, req.Amount)
	if err != nil {
		utils.JSONFromError(c, "Failed to add fee", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *HouseHandler) PaymentHandler(c *gin.Context) {
	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	b, err := h.HouseService.RecordPayment(c.Request.Context(), c.Param("id"), req.Amount, req.Mode)
	if err != nil {
		utils.JSONFromError(c, "Failed to record payment", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *HouseHandler) CheckOutHandler(c *gin.Context) {
	b, err := h.HouseService.CheckOut(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONFromError(c, "Failed to check out", err)
		return
	}
	getLogger(c).Info("House checked out", zap.String("houseID", b.HouseID), zap.String("bookingID", b.ID))
	c.JSON(http.StatusOK, b)
}
