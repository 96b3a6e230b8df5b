package billing

import (
	"context"
	"errors"

	billingRepo "riggerbackend/database/repository/billing"
	jobRepo "riggerbackend/database/repository/job"
	"riggerbackend/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProcessRecruitmentFee charges an employer the recruitment fee for a
// job. The fee flows to the platform, so the transaction has no payee.
func (s *DefaultBillingService) ProcessRecruitmentFee(ctx context.Context, employerID, jobID string, amount float64, paymentMethodID string) RecruitmentFeeResult {
	if amount <= 0 {
		return RecruitmentFeeResult{Result: fail(NewError(CodeInvalidAmount, "amount must be positive"))}
	}

	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, jobRepo.ErrNotFound) {
			return RecruitmentFeeResult{Result: fail(NewError(CodeNotFound, "job not found"))}
		}
		return RecruitmentFeeResult{Result: fail(err)}
	}
	if job.EmployerID != employerID {
		return RecruitmentFeeResult{Result: fail(NewError(CodeNotFound, "job does not belong to employer"))}
	}

	pm, err := s.Billing.GetPaymentMethodByID(ctx, paymentMethodID)
	if err != nil {
		if errors.Is(err, billingRepo.ErrPaymentMethodNotFound) {
			return RecruitmentFeeResult{Result: fail(NewError(CodeNotFound, "payment method not found"))}
		}
		return RecruitmentFeeResult{Result: fail(err)}
	}

	gross := decimal.NewFromFloat(amount)
	fees, err := ComputeFees(gross, models.KindRecruitmentFee)
	if err != nil {
		return RecruitmentFeeResult{Result: fail(err)}
	}

	chargeCtx, cancel := context.WithTimeout(ctx, s.processorTimeout())
	defer cancel()
	chargeID, err := s.Processor.CreateCharge(chargeCtx, amount, s.currency(), map[string]string{
		"job_id":         jobID,
		"employer_id":    employerID,
		"payment_method": pm.ID,
		"kind":           string(models.KindRecruitmentFee),
	})
	if err != nil {
		s.Logger.Warn("recruitment fee charge failed",
			zap.String("job_id", jobID), zap.Error(err))
		s.Stats.RecordFailure("recruitment_fee", string(CodeProcessorFailure))
		return RecruitmentFeeResult{Result: fail(NewError(CodeProcessorFailure, "payment processor declined the charge"))}
	}

	txn := s.buildTransaction(models.KindRecruitmentFee, gross, fees)
	txn.Status = models.StatusCompleted
	txn.PayerID = employerID
	txn.JobID = jobID
	txn.ProcessorChargeID = chargeID
	s.flagSuspicious(txn)

	if err := s.persistWithContribution(ctx, txn); err != nil {
		s.Logger.Error("recruitment fee persist failed", zap.String("job_id", jobID), zap.Error(err))
		return RecruitmentFeeResult{Result: fail(err)}
	}

	s.finishContribution(ctx, txn)
	s.Stats.RecordTransaction(models.KindRecruitmentFee, txn.Amount)
	s.Logger.Info("recruitment fee collected",
		zap.String("job_id", jobID),
		zap.String("transaction_id", txn.ID),
		zap.Float64("amount", txn.Amount),
	)

	return RecruitmentFeeResult{Result: ok(), Transaction: txn}
}
