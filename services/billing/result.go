package billing

import (
	"errors"

	"riggerbackend/models"
)

// FailureInfo is the error payload of a failed use case.
type FailureInfo struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Result is the uniform success/failure envelope the billing use cases
// return. Use cases never let errors escape their boundary; callers
// branch on Success without exception handling.
type Result struct {
	Success bool         `json:"success"`
	Error   *FailureInfo `json:"error,omitempty"`
}

func ok() Result {
	return Result{Success: true}
}

func fail(err error) Result {
	var be *Error
	if errors.As(err, &be) {
		return Result{Success: false, Error: &FailureInfo{Code: be.Code, Message: be.Message}}
	}
	return Result{Success: false, Error: &FailureInfo{
		Code:    CodeInternal,
		Message: "billing operation failed",
	}}
}

// JobPaymentResult is the outcome of a job completion payment.
type JobPaymentResult struct {
	Result
	Transaction *models.Transaction `json:"transaction,omitempty"`
	Job         *models.Job         `json:"job,omitempty"`
}

// RenewalResult is the outcome of a subscription renewal.
type RenewalResult struct {
	Result
	Subscription *models.Subscription `json:"subscription,omitempty"`
	Transaction  *models.Transaction  `json:"transaction,omitempty"`
}

// RecruitmentFeeResult is the outcome of a recruitment fee charge.
type RecruitmentFeeResult struct {
	Result
	Transaction *models.Transaction `json:"transaction,omitempty"`
}
