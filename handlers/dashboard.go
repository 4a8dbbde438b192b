package handlers

import (
	"net/http"

	"innkeep/services/dashboard"
	"innkeep/utils"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	DashboardService dashboard.DashboardService
}

func NewDashboardHandler(ds dashboard.DashboardService) *DashboardHandler {
	return &DashboardHandler{DashboardService: ds}
}

func (h *DashboardHandler) SummaryHandler(c *gin.Context) {
	summary, err := h.DashboardService.Summary(c.Request.Context())
	if err != nil {
		utils.JSONFromError(c, "Failed to build dashboard", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
