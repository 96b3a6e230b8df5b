package transparency

import (
	"context"
	"time"

	"riggerbackend/models"
)

// Fixed divisor constants behind the estimated impact counts. They are
// illustrative estimates for the public dashboard, not ground truth.
const (
	costPerSafetyKit      = 150.0
	costPerTrainingHour   = 25.0
	costPerWorkerSupport  = 80.0
	costPerCommunityGrant = 500.0
)

// Service builds NGO-contribution transparency reports and exposes the
// ledger reconciliation audit.
type Service interface {
	// GenerateReport builds the full yearly report: totals, per-source
	// shares, 12 monthly buckets, 4 quarterly buckets, the 40/30/20/10
	// impact allocation and estimated impact metrics.
	GenerateReport(ctx context.Context, year int) (*models.TransparencyReport, error)
	// GeneratePublicDashboard wraps the report for unauthenticated
	// consumption, stripping internal fields.
	GeneratePublicDashboard(ctx context.Context, year int) (*models.PublicDashboard, error)
	// ValidateContributions runs the ledger-vs-transactions audit.
	ValidateContributions(ctx context.Context, start, end time.Time) (*models.ReconciliationReport, error)
}
