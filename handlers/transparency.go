package handlers

import (
	"net/http"
	"strconv"
	"time"

	transparencyService "riggerbackend/services/transparency"
	"riggerbackend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TransparencyHandler exposes NGO contribution reporting endpoints.
type TransparencyHandler struct {
	Transparency transparencyService.Service
}

func yearParam(c *gin.Context) int {
	year, err := strconv.Atoi(c.DefaultQuery("year", ""))
	if err != nil || year < 2000 {
		return time.Now().UTC().Year()
	}
	return year
}

// GetTransparencyReportHandler handles GET /api/transparency/report.
// Admin only; includes internal annotations.
func (h *TransparencyHandler) GetTransparencyReportHandler(c *gin.Context) {
	logger := utils.GetLogger()
	year := yearParam(c)
	report, err := h.Transparency.GenerateReport(c.Request.Context(), year)
	if err != nil {
		logger.Error("Transparency report failed", zap.Int("year", year), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetPublicDashboardHandler handles GET /api/transparency/dashboard.
// Unauthenticated; the response carries no internal fields.
func (h *TransparencyHandler) GetPublicDashboardHandler(c *gin.Context) {
	logger := utils.GetLogger()
	year := yearParam(c)
	dashboard, err := h.Transparency.GeneratePublicDashboard(c.Request.Context(), year)
	if err != nil {
		logger.Error("Public dashboard failed", zap.Int("year", year), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// ReconcileLedgerHandler handles POST /api/transparency/reconcile.
// Admin only. Body may narrow the audited window; defaults to the
// current calendar year.
func (h *TransparencyHandler) ReconcileLedgerHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req struct {
		Start time.Time `json:"start"`
		End   time.Time `json:"end"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.Start.IsZero() || req.End.IsZero() {
		year := time.Now().UTC().Year()
		req.Start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		req.End = req.Start.AddDate(1, 0, 0)
	}

	report, err := h.Transparency.ValidateContributions(c.Request.Context(), req.Start, req.End)
	if err != nil {
		logger.Error("Reconciliation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reconciliation failed"})
		return
	}
	status := http.StatusOK
	if !report.ValidationPassed {
		logger.Warn("Reconciliation found discrepancies",
			zap.Int("count", len(report.Discrepancies)))
	}
	c.JSON(status, report)
}
