package billing

import (
	"context"
	"errors"
	"fmt"

	jobRepo "riggerbackend/database/repository/job"
	"riggerbackend/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProcessJobCompletionPayment settles a completed job with an assigned
// worker. The payment claim on the job is the double-payment guard: a
// second invocation fails with AlreadyProcessed.
func (s *DefaultBillingService) ProcessJobCompletionPayment(ctx context.Context, jobID string) JobPaymentResult {
	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, jobRepo.ErrNotFound) {
			return JobPaymentResult{Result: fail(NewError(CodeNotFound, "job not found"))}
		}
		s.Logger.Error("job lookup failed", zap.String("job_id", jobID), zap.Error(err))
		return JobPaymentResult{Result: fail(err)}
	}

	if job.PaymentStatus == models.PaymentPaid {
		return JobPaymentResult{Result: fail(NewError(CodeAlreadyProcessed, "job payment already processed"))}
	}
	if job.Status != models.JobCompleted {
		return JobPaymentResult{Result: fail(NewError(CodeInvalidStateTransition, "job is not completed"))}
	}
	if job.AssignedWorkerID == "" {
		return JobPaymentResult{Result: fail(NewError(CodeInvalidStateTransition, "job has no assigned worker"))}
	}

	hours := job.BillableHours()
	gross := decimal.NewFromFloat(hours).Mul(decimal.NewFromFloat(job.HourlyRate))
	fees, err := ComputeFees(gross, models.KindJobPayment)
	if err != nil {
		return JobPaymentResult{Result: fail(err)}
	}

	if err := s.Jobs.ClaimForPayment(ctx, jobID); err != nil {
		if errors.Is(err, jobRepo.ErrAlreadyClaimed) {
			return JobPaymentResult{Result: fail(NewError(CodeAlreadyProcessed, "job payment already processed"))}
		}
		s.Logger.Error("payment claim failed", zap.String("job_id", jobID), zap.Error(err))
		return JobPaymentResult{Result: fail(err)}
	}

	txn := s.buildTransaction(models.KindJobPayment, gross, fees)
	txn.PayerID = job.EmployerID
	txn.PayeeID = job.AssignedWorkerID
	txn.JobID = job.ID
	txn.Metadata = map[string]interface{}{
		"hours":       hours,
		"hourly_rate": job.HourlyRate,
	}
	s.flagSuspicious(txn)

	if err := s.persistWithContribution(ctx, txn); err != nil {
		s.Logger.Error("transaction persist failed", zap.String("job_id", jobID), zap.Error(err))
		if relErr := s.Jobs.ReleasePaymentClaim(ctx, jobID); relErr != nil {
			s.Logger.Error("payment claim release failed", zap.String("job_id", jobID), zap.Error(relErr))
		}
		s.Stats.RecordFailure("job_payment", string(CodeInternal))
		return JobPaymentResult{Result: fail(err)}
	}

	completed, err := s.Transactions.UpdateStatus(ctx, txn.ID, models.StatusCompleted)
	if err != nil {
		s.Logger.Error("transaction completion failed", zap.String("transaction_id", txn.ID), zap.Error(err))
		return JobPaymentResult{Result: fail(err)}
	}
	txn = completed

	if err := s.Jobs.MarkPaid(ctx, jobID, txn.ID, txn.NetAmount); err != nil {
		s.Logger.Error("job payment bookkeeping failed", zap.String("job_id", jobID), zap.Error(err))
		return JobPaymentResult{Result: fail(err)}
	}
	job.PaymentStatus = models.PaymentPaid
	job.PaymentTransactionID = txn.ID
	job.PaidAmount = txn.NetAmount

	if _, err := s.Earnings.ApplyPayment(ctx, job.AssignedWorkerID, txn.NetAmount, hours); err != nil {
		// The payment stands; the rollup can be rebuilt from transactions.
		s.Logger.Error("earnings update failed",
			zap.String("worker_id", job.AssignedWorkerID), zap.Error(err))
	}

	s.finishContribution(ctx, txn)
	s.Stats.RecordTransaction(models.KindJobPayment, txn.Amount)
	s.Logger.Info("job payment settled",
		zap.String("job_id", jobID),
		zap.String("transaction_id", txn.ID),
		zap.Float64("gross", txn.Amount),
		zap.Float64("net", txn.NetAmount),
	)

	return JobPaymentResult{Result: ok(), Transaction: txn, Job: job}
}

// flagSuspicious applies the lightweight fraud heuristic: it only logs,
// it never blocks a payment.
func (s *DefaultBillingService) flagSuspicious(txn *models.Transaction) {
	score := fraudScore(txn)
	if score >= fraudReviewThreshold {
		s.Logger.Warn("transaction flagged for review",
			zap.String("kind", string(txn.Kind)),
			zap.Float64("amount", txn.Amount),
			zap.Float64("score", score),
		)
		if txn.Metadata == nil {
			txn.Metadata = map[string]interface{}{}
		}
		txn.Metadata["fraud_score"] = fmt.Sprintf("%.2f", score)
	}
}
