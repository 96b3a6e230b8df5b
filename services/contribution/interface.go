package contribution

import (
	"context"
	"time"

	"riggerbackend/models"
)

// ReconcileEpsilon is the tolerated absolute difference between the
// transaction-side and ledger-side contribution totals.
const ReconcileEpsilon = 0.01

// LedgerService is the append-only contribution ledger plus its
// read-side audit.
type LedgerService interface {
	// Record writes the ledger entry for a contribution-eligible
	// transaction. Safe to retry; re-recording a transaction is a no-op.
	Record(ctx context.Context, txn *models.Transaction) (*models.ContributionRecord, error)
	// QueryByPeriod returns ledger entries for a year or (year, month).
	QueryByPeriod(ctx context.Context, year, month int) ([]models.ContributionRecord, error)
	// Reconcile cross-checks contribution-tracked transactions against
	// ledger entries in [start, end). Pure read-side audit: mismatches
	// are reported, never auto-corrected.
	Reconcile(ctx context.Context, start, end time.Time) (*models.ReconciliationReport, error)
}
