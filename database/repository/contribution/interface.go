package contributionRepo

import (
	"context"
	"errors"
	"time"

	"riggerbackend/models"
)

// ErrNotFound is returned when no contribution record matches.
var ErrNotFound = errors.New("contribution record not found")

// ContributionRepository defines methods for contribution-ledger access.
// The ledger is append-only; records are never updated after creation
// except to attach publication metadata.
type ContributionRepository interface {
	// Upsert writes a contribution record keyed by its transaction ID.
	// Re-recording the same transaction is a no-op, which makes the
	// write safe to retry after partial failures.
	Upsert(ctx context.Context, rec *models.ContributionRecord) error
	// GetByTransactionID returns the record linked to a transaction.
	GetByTransactionID(ctx context.Context, transactionID string) (*models.ContributionRecord, error)
	// QueryByPeriod returns records for a year, or a (year, month) pair
	// when month is 1-12. Month 0 means the whole year.
	QueryByPeriod(ctx context.Context, year, month int) ([]models.ContributionRecord, error)
	// QueryByRange returns records created within [start, end).
	QueryByRange(ctx context.Context, start, end time.Time) ([]models.ContributionRecord, error)
	// SumByRange totals amount and count of records created within [start, end).
	SumByRange(ctx context.Context, start, end time.Time) (float64, int64, error)
	// MarkPublished attaches publication metadata to a record.
	MarkPublished(ctx context.Context, id, reportURL string) error
}
