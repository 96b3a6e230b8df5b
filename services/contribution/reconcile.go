package contribution

import (
	"context"
	"fmt"
	"math"
	"time"

	transactionRepo "riggerbackend/database/repository/transaction"
	"riggerbackend/models"

	"go.uber.org/zap"
)

// Reconcile compares contribution-tracked transactions against ledger
// entries in [start, end). It reads both sides, totals them, and
// cross-checks record-by-record; it never mutates either store.
func (s *DefaultLedgerService) Reconcile(ctx context.Context, start, end time.Time) (*models.ReconciliationReport, error) {
	tracked := true
	filter := transactionRepo.Filter{
		ContributionTracked: &tracked,
		From:                &start,
		To:                  &end,
	}

	txns, err := s.TxnRepo.Find(ctx, filter, transactionRepo.Page{})
	if err != nil {
		return nil, fmt.Errorf("reconcile: failed to load transactions: %w", err)
	}
	records, err := s.Repo.QueryByRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("reconcile: failed to load ledger entries: %w", err)
	}

	report := &models.ReconciliationReport{
		StartDate:        start,
		EndDate:          end,
		TransactionCount: int64(len(txns)),
		LedgerCount:      int64(len(records)),
		Discrepancies:    []models.Discrepancy{},
	}

	byTxn := make(map[string]models.ContributionRecord, len(records))
	for _, rec := range records {
		byTxn[rec.TransactionID] = rec
		report.LedgerTotal += rec.Amount
	}

	seen := make(map[string]bool, len(txns))
	for _, txn := range txns {
		seen[txn.ID] = true
		report.TransactionTotal += txn.Contribution.Amount

		rec, ok := byTxn[txn.ID]
		if !ok {
			report.Discrepancies = append(report.Discrepancies, models.Discrepancy{
				Type:          "missing_record",
				TransactionID: txn.ID,
				Expected:      txn.Contribution.Amount,
				Detail:        "contribution-tracked transaction has no ledger entry",
			})
			continue
		}
		if math.Abs(rec.Amount-txn.Contribution.Amount) > ReconcileEpsilon {
			report.Discrepancies = append(report.Discrepancies, models.Discrepancy{
				Type:          "amount_mismatch",
				TransactionID: txn.ID,
				Expected:      txn.Contribution.Amount,
				Actual:        rec.Amount,
				Detail:        "ledger amount differs from transaction contribution",
			})
		}
	}
	for _, rec := range records {
		if !seen[rec.TransactionID] {
			report.Discrepancies = append(report.Discrepancies, models.Discrepancy{
				Type:          "orphaned_record",
				TransactionID: rec.TransactionID,
				Actual:        rec.Amount,
				Detail:        "ledger entry has no matching contribution-tracked transaction",
			})
		}
	}

	if math.Abs(report.TransactionTotal-report.LedgerTotal) > ReconcileEpsilon {
		report.Discrepancies = append(report.Discrepancies, models.Discrepancy{
			Type:     "total_mismatch",
			Expected: report.TransactionTotal,
			Actual:   report.LedgerTotal,
			Detail:   "transaction and ledger contribution totals disagree",
		})
	}
	if report.TransactionCount != report.LedgerCount {
		report.Discrepancies = append(report.Discrepancies, models.Discrepancy{
			Type:     "count_mismatch",
			Expected: float64(report.TransactionCount),
			Actual:   float64(report.LedgerCount),
			Detail:   "transaction and ledger record counts disagree",
		})
	}

	report.ValidationPassed = len(report.Discrepancies) == 0
	if !report.ValidationPassed {
		s.Logger.Warn("contribution reconciliation found discrepancies",
			zap.Int("discrepancies", len(report.Discrepancies)),
			zap.Float64("transaction_total", report.TransactionTotal),
			zap.Float64("ledger_total", report.LedgerTotal),
		)
	}
	return report, nil
}
