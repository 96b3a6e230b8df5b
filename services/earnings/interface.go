package earnings

import (
	"context"

	"riggerbackend/models"
)

// Aggregator maintains per-worker earnings rollups.
type Aggregator interface {
	// ApplyPayment adds a completed payment to the worker's summary:
	// running totals, the current (year, month) bucket and the current
	// year bucket. Hours may be 0 when not tracked for the job.
	ApplyPayment(ctx context.Context, workerID string, amount, hours float64) (*models.EarningSummary, error)
	// GetSummary loads a worker's summary.
	GetSummary(ctx context.Context, workerID string) (*models.EarningSummary, error)
	// GenerateReport builds a worker earnings report for a period view:
	// "monthly", "yearly" or "all".
	GenerateReport(ctx context.Context, workerID, period string) (*models.EarningsReport, error)
}
