package handlers

import (
	"net/http"

	"riggerbackend/services/billing"
	"riggerbackend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BillingHandler exposes the billing use cases.
type BillingHandler struct {
	BillingService billing.Service
}

// statusForCode maps a billing failure code to an HTTP status.
func statusForCode(code billing.ErrorCode) int {
	switch code {
	case billing.CodeNotFound:
		return http.StatusNotFound
	case billing.CodeAlreadyProcessed:
		return http.StatusConflict
	case billing.CodeInvalidAmount, billing.CodeInvalidStateTransition, billing.CodeNotDue:
		return http.StatusUnprocessableEntity
	case billing.CodeProcessorFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ProcessJobPaymentHandler handles POST /api/billing/jobs/:id/pay.
func (h *BillingHandler) ProcessJobPaymentHandler(c *gin.Context) {
	logger := utils.GetLogger()
	jobID := c.Param("id")

	result := h.BillingService.ProcessJobCompletionPayment(c.Request.Context(), jobID)
	if !result.Success {
		logger.Warn("Job payment failed",
			zap.String("job_id", jobID),
			zap.String("code", string(result.Error.Code)))
		c.JSON(statusForCode(result.Error.Code), result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ProcessRenewalHandler handles POST /api/billing/subscriptions/:id/renew.
func (h *BillingHandler) ProcessRenewalHandler(c *gin.Context) {
	logger := utils.GetLogger()
	subID := c.Param("id")

	result := h.BillingService.ProcessSubscriptionRenewal(c.Request.Context(), subID)
	if !result.Success {
		logger.Warn("Subscription renewal failed",
			zap.String("subscription_id", subID),
			zap.String("code", string(result.Error.Code)))
		c.JSON(statusForCode(result.Error.Code), result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ProcessRecruitmentFeeHandler handles POST /api/billing/recruitment-fee.
func (h *BillingHandler) ProcessRecruitmentFeeHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req struct {
		JobID           string  `json:"job_id" binding:"required"`
		Amount          float64 `json:"amount" binding:"required"`
		PaymentMethodID string  `json:"payment_method_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	employerID, _ := c.Get("userID")

	result := h.BillingService.ProcessRecruitmentFee(
		c.Request.Context(), employerID.(string), req.JobID, req.Amount, req.PaymentMethodID)
	if !result.Success {
		logger.Warn("Recruitment fee failed",
			zap.String("job_id", req.JobID),
			zap.String("code", string(result.Error.Code)))
		c.JSON(statusForCode(result.Error.Code), result)
		return
	}
	c.JSON(http.StatusOK, result)
}
