package billing

import (
	"context"
	"time"

	billingRepo "riggerbackend/database/repository/billing"
	jobRepo "riggerbackend/database/repository/job"
	transactionRepo "riggerbackend/database/repository/transaction"
	"riggerbackend/models"
	"riggerbackend/services/contribution"
	"riggerbackend/services/earnings"
	"riggerbackend/services/notification"
	"riggerbackend/services/payment"
	"riggerbackend/services/stats"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultBillingService orchestrates billing use cases over the
// transaction store, contribution ledger, earnings aggregator and the
// external payment processor.
type DefaultBillingService struct {
	Transactions transactionRepo.TransactionRepository
	Jobs         jobRepo.JobRepository
	Billing      billingRepo.BillingRepository
	Ledger       contribution.LedgerService
	Earnings     earnings.Aggregator
	Processor    payment.Processor
	NGO          notification.NGONotifier
	Stats        stats.Recorder
	Logger       *zap.Logger

	Currency string
	// ProcessorTimeout bounds every external processor call.
	ProcessorTimeout time.Duration
	// TrackOnCompletion moves contribution recording from transaction
	// creation to completion time. Off by default to preserve the
	// platform's observable totals.
	TrackOnCompletion bool
	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultBillingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBillingService) processorTimeout() time.Duration {
	if s.ProcessorTimeout > 0 {
		return s.ProcessorTimeout
	}
	return 15 * time.Second
}

func (s *DefaultBillingService) currency() string {
	if s.Currency != "" {
		return s.Currency
	}
	return "AUD"
}

// buildTransaction assembles a transaction from a computed fee breakdown,
// rounding decimals to currency precision at this persistence boundary.
func (s *DefaultBillingService) buildTransaction(kind models.TransactionKind, gross decimal.Decimal, fees FeeBreakdown) *models.Transaction {
	contributionRate, _ := ContributionRate.Float64()
	feePercent, _ := fees.PlatformFeePercent.Float64()
	return &models.Transaction{
		Kind:     kind,
		Amount:   round2(gross),
		Currency: s.currency(),
		Fees: models.FeeDetails{
			PlatformFee: round2(fees.PlatformFee),
			TotalFees:   round2(fees.TotalFees),
		},
		NetAmount:          round2(fees.NetAmount),
		PlatformFeePercent: feePercent,
		Contribution: models.ContributionDetail{
			Percentage: contributionRate,
			Amount:     round2(fees.Contribution),
			Tracked:    true,
		},
	}
}

// persistWithContribution writes the transaction and, unless completion-
// time tracking is configured, its ledger entry in the same commit.
func (s *DefaultBillingService) persistWithContribution(ctx context.Context, txn *models.Transaction) error {
	if s.TrackOnCompletion {
		return s.Transactions.Create(ctx, txn)
	}
	rec := &models.ContributionRecord{
		Amount:     txn.Contribution.Amount,
		Percentage: txn.Contribution.Percentage,
		SourceKind: txn.Kind,
		Allocation: models.DefaultAllocationSplit(),
		Period:     models.PeriodFor(s.now()),
	}
	return s.Transactions.CreateWithContribution(ctx, txn, rec)
}

// finishContribution handles completion-time tracking and the NGO
// notification once a transaction reaches completed.
func (s *DefaultBillingService) finishContribution(ctx context.Context, txn *models.Transaction) {
	var rec *models.ContributionRecord
	var err error
	if s.TrackOnCompletion {
		rec, err = s.Ledger.Record(ctx, txn)
		if err != nil {
			s.Logger.Error("contribution recording failed; reconcile will flag it",
				zap.String("transaction_id", txn.ID), zap.Error(err))
			return
		}
	} else {
		rec = &models.ContributionRecord{
			TransactionID: txn.ID,
			Amount:        txn.Contribution.Amount,
			Percentage:    txn.Contribution.Percentage,
			SourceKind:    txn.Kind,
			Allocation:    models.DefaultAllocationSplit(),
			Period:        models.PeriodFor(txn.CreatedAt),
		}
	}
	if err := s.NGO.NotifyContribution(ctx, rec); err != nil {
		s.Logger.Warn("NGO notification failed", zap.String("transaction_id", txn.ID), zap.Error(err))
	}
	s.Stats.RecordContribution(rec.Amount)
}
