package handlers

import (
	"fmt"
	"net/http"
	"time"

	"innkeep/models"
	"innkeep/services/ledger"
	"innkeep/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PaymentHandler serves the payment ledger.
type PaymentHandler struct {
	LedgerService ledger.LedgerService
	Location      *time.Location
	Clock         utils.Clock
}

func NewPaymentHandler(ls ledger.LedgerService, loc *time.Location, clock utils.Clock) *PaymentHandler {
	return &PaymentHandler{LedgerService: ls, Location: loc, Clock: clock}
}

func (h *PaymentHandler) location() *time.Location {
	if h.Location == nil {
		return time.UTC
	}
	return h.Location
}

func (h *PaymentHandler) now() time.Time {
	if h.Clock == nil {
		return time.Now()
	}
	return h.Clock.Now()
}

// bindQuery reads the filter and sort parameters. from and to are business dates; to
// covers the whole day.
func (h *PaymentHandler) bindQuery(c *gin.Context) (models.PaymentFilter, models.PaymentSort, error) {
	var filter models.PaymentFilter
	var sort models.PaymentSort
	if err := c.ShouldBindQuery(&filter); err != nil {
		return filter, sort, err
	}
	if err := c.ShouldBindQuery(&sort); err != nil {
		return filter, sort, err
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.ParseInLocation(utils.DayLayout, raw, h.location())
		if err != nil {
			return filter, sort, fmt.Errorf("from: %w", err)
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.ParseInLocation(utils.DayLayout, raw, h.location())
		if err != nil {
			return filter, sort, fmt.Errorf("to: %w", err)
		}
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.To = &end
	}
	return filter, sort, nil
}

func (h *PaymentHandler) ListPaymentsHandler(c *gin.Context) {
	filter, sort, err := h.bindQuery(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}
	report, err := h.LedgerService.ListPayments(c.Request.Context(), filter, sort)
	if err != nil {
		utils.JSONFromError(c, "Failed to fetch payments", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportPaymentsHandler streams the filtered ledger as an xlsx workbook.
func (h *PaymentHandler) ExportPaymentsHandler(c *gin.Context) {
	filter, sort, err := h.bindQuery(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}
	name := fmt.Sprintf("payments-%s.xlsx", utils.Day(h.now(), h.location()))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Status(http.StatusOK)
	if err := h.LedgerService.ExportPayments(c.Request.Context(), c.Writer, filter, sort); err != nil {
		getLogger(c).Error("Failed to export payments", zap.Error(err))
		if !c.Writer.Written() {
			c.Writer.Header().Del("Content-Type")
			c.Writer.Header().Del("Content-Disposition")
			utils.JSONFromError(c, "Failed to export payments", err)
		}
	}
}

// ReconcileHandler recomputes the running total of ?day=, today when omitted.
func (h *PaymentHandler) ReconcileHandler(c *gin.Context) {
	day := c.Query("day")
	if day == "" {
		day = utils.Day(h.now(), h.location())
	}
	result, err := h.LedgerService.ReconcileDay(c.Request.Context(), day)
	if err != nil {
		utils.JSONFromError(c, "Failed to reconcile", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
