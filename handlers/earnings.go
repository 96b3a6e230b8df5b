package handlers

import (
	"net/http"

	earningsService "riggerbackend/services/earnings"
	"riggerbackend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EarningsHandler exposes worker earnings endpoints.
type EarningsHandler struct {
	Aggregator earningsService.Aggregator
}

// GetEarningsSummaryHandler handles GET /api/earnings/:workerID.
func (h *EarningsHandler) GetEarningsSummaryHandler(c *gin.Context) {
	logger := utils.GetLogger()
	workerID := c.Param("workerID")
	if !callerOwnsResource(c, workerID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	summary, err := h.Aggregator.GetSummary(c.Request.Context(), workerID)
	if err != nil {
		logger.Error("Earnings summary lookup failed", zap.String("worker_id", workerID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "no earnings recorded"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetEarningsReportHandler handles GET /api/earnings/:workerID/report.
// The period query selects the view: monthly, yearly or all.
func (h *EarningsHandler) GetEarningsReportHandler(c *gin.Context) {
	logger := utils.GetLogger()
	workerID := c.Param("workerID")
	if !callerOwnsResource(c, workerID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	period := c.DefaultQuery("period", "monthly")
	report, err := h.Aggregator.GenerateReport(c.Request.Context(), workerID, period)
	if err != nil {
		logger.Error("Earnings report failed",
			zap.String("worker_id", workerID),
			zap.String("period", period),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
