package earnings

import (
	"context"
	"fmt"
	"time"

	earningsRepo "riggerbackend/database/repository/earnings"
	"riggerbackend/models"

	"go.uber.org/zap"
)

// DefaultAggregator implements Aggregator over the earnings repository.
// All counter updates go through the repository's atomic delta, so
// concurrent payments for the same worker serialize at the store.
type DefaultAggregator struct {
	Repo   earningsRepo.EarningsRepository
	Logger *zap.Logger
	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (a *DefaultAggregator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// ApplyPayment applies the payment deltas and returns the refreshed
// summary with recomputed averages.
func (a *DefaultAggregator) ApplyPayment(ctx context.Context, workerID string, amount, hours float64) (*models.EarningSummary, error) {
	if workerID == "" {
		return nil, fmt.Errorf("worker id is required")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive")
	}

	now := a.now()
	if err := a.Repo.ApplyDelta(ctx, workerID, amount, hours, now.Year(), int(now.Month())); err != nil {
		return nil, fmt.Errorf("failed to apply payment for worker %s: %w", workerID, err)
	}

	summary, err := a.Repo.GetByWorkerID(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload summary for worker %s: %w", workerID, err)
	}
	// Averages are derived; persist them for read-side convenience.
	if err := a.Repo.SetAverages(ctx, workerID, summary.AverageJobValue, summary.AverageHourlyRate); err != nil {
		a.Logger.Warn("failed to persist derived averages", zap.String("worker_id", workerID), zap.Error(err))
	}

	a.Logger.Debug("earnings updated",
		zap.String("worker_id", workerID),
		zap.Float64("amount", amount),
		zap.Float64("total_earnings", summary.TotalEarnings),
	)
	return summary, nil
}

// GetSummary loads a worker's summary.
func (a *DefaultAggregator) GetSummary(ctx context.Context, workerID string) (*models.EarningSummary, error) {
	return a.Repo.GetByWorkerID(ctx, workerID)
}
