package earningsRepo

import (
	"context"
	"errors"

	"riggerbackend/models"
)

// ErrNotFound is returned when a worker has no earnings summary yet.
var ErrNotFound = errors.New("earning summary not found")

// EarningsRepository defines methods for earnings-summary access.
type EarningsRepository interface {
	// ApplyDelta adds a payment to a worker's summary with a single
	// store-level atomic increment, creating the summary and the
	// (year, month) / (year) buckets on first touch. Concurrent calls
	// for the same worker cannot lose updates.
	ApplyDelta(ctx context.Context, workerID string, amount, hours float64, year, month int) error
	// GetByWorkerID loads a worker's summary.
	GetByWorkerID(ctx context.Context, workerID string) (*models.EarningSummary, error)
	// SetAverages persists the derived averages after a recompute.
	SetAverages(ctx context.Context, workerID string, avgJobValue, avgHourlyRate float64) error
}
