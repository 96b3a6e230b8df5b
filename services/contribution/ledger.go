package contribution

import (
	"context"
	"fmt"

	contributionRepo "riggerbackend/database/repository/contribution"
	transactionRepo "riggerbackend/database/repository/transaction"
	"riggerbackend/models"

	"go.uber.org/zap"
)

// DefaultLedgerService implements LedgerService over the contribution
// and transaction repositories.
type DefaultLedgerService struct {
	Repo    contributionRepo.ContributionRepository
	TxnRepo transactionRepo.TransactionRepository
	Logger  *zap.Logger
}

// Record writes the ledger entry derived from a transaction's embedded
// contribution detail. The period is derived from the transaction's
// creation time.
func (s *DefaultLedgerService) Record(ctx context.Context, txn *models.Transaction) (*models.ContributionRecord, error) {
	if !txn.Contribution.Tracked {
		return nil, fmt.Errorf("transaction %s is not contribution-tracked", txn.ID)
	}

	rec := &models.ContributionRecord{
		TransactionID: txn.ID,
		Period:        models.PeriodFor(txn.CreatedAt),
		Amount:        txn.Contribution.Amount,
		Percentage:    txn.Contribution.Percentage,
		SourceKind:    txn.Kind,
		Allocation:    models.DefaultAllocationSplit(),
		CreatedAt:     txn.CreatedAt,
	}
	if err := s.Repo.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to record contribution for transaction %s: %w", txn.ID, err)
	}

	s.Logger.Debug("contribution recorded",
		zap.String("transaction_id", txn.ID),
		zap.Float64("amount", rec.Amount),
	)
	return rec, nil
}

// QueryByPeriod returns ledger entries for a year or (year, month).
func (s *DefaultLedgerService) QueryByPeriod(ctx context.Context, year, month int) ([]models.ContributionRecord, error) {
	return s.Repo.QueryByPeriod(ctx, year, month)
}
