package transparency

import (
	"context"
	"fmt"
	"time"

	"riggerbackend/models"
	"riggerbackend/services/contribution"

	"go.uber.org/zap"
)

// DefaultService implements Service over the contribution ledger.
type DefaultService struct {
	Ledger contribution.LedgerService
	Logger *zap.Logger
	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GenerateReport builds the yearly transparency report from the ledger.
func (s *DefaultService) GenerateReport(ctx context.Context, year int) (*models.TransparencyReport, error) {
	records, err := s.Ledger.QueryByPeriod(ctx, year, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load contributions for %d: %w", year, err)
	}

	report := &models.TransparencyReport{
		Summary: models.TransparencySummary{
			Year:             year,
			ContributionRate: 0.005,
		},
		MonthlyBreakdown:   make([]models.MonthlyContribution, 12),
		QuarterlyBreakdown: make([]models.QuarterlyContribution, 4),
		GeneratedAt:        s.now(),
	}
	// Always 12 zero-filled months and 4 quarters.
	for m := 0; m < 12; m++ {
		report.MonthlyBreakdown[m].Month = m + 1
	}
	for q := 0; q < 4; q++ {
		report.QuarterlyBreakdown[q].Quarter = q + 1
	}

	type sourceAgg struct {
		amount float64
		count  int64
	}
	sources := make(map[models.TransactionKind]*sourceAgg)

	for _, rec := range records {
		report.Summary.TotalContributions += rec.Amount
		report.Summary.TotalTransactions++

		if rec.Period.Month >= 1 && rec.Period.Month <= 12 {
			bucket := &report.MonthlyBreakdown[rec.Period.Month-1]
			bucket.Amount += rec.Amount
			bucket.Count++
		}

		agg, ok := sources[rec.SourceKind]
		if !ok {
			agg = &sourceAgg{}
			sources[rec.SourceKind] = agg
		}
		agg.amount += rec.Amount
		agg.count++

		if rec.Publication != nil && rec.Publication.Published {
			report.PublishedRecordIDs = append(report.PublishedRecordIDs, rec.ID)
		}
	}

	// Quarters roll up from the monthly buckets.
	for m := 0; m < 12; m++ {
		q := models.QuarterForMonth(m + 1)
		report.QuarterlyBreakdown[q-1].Amount += report.MonthlyBreakdown[m].Amount
		report.QuarterlyBreakdown[q-1].Count += report.MonthlyBreakdown[m].Count
	}

	total := report.Summary.TotalContributions
	if report.Summary.TotalTransactions > 0 {
		report.Summary.AverageAmount = total / float64(report.Summary.TotalTransactions)
	}
	for kind, agg := range sources {
		share := 0.0
		if total > 0 {
			share = agg.amount / total * 100
		}
		report.Sources = append(report.Sources, models.SourceBreakdown{
			SourceKind: kind,
			Amount:     agg.amount,
			Count:      agg.count,
			Percentage: share,
		})
	}

	report.ImpactAllocation = models.ImpactAllocation{
		WorkerSafety:     total * models.AllocationWorkerSafety,
		TrainingPrograms: total * models.AllocationTrainingPrograms,
		CommunitySupport: total * models.AllocationCommunitySupport,
		Operations:       total * models.AllocationOperations,
	}
	report.ImpactMetrics = models.ImpactMetrics{
		SafetyKitsFunded:      int64(report.ImpactAllocation.WorkerSafety / costPerSafetyKit),
		TrainingHoursFunded:   int64(report.ImpactAllocation.TrainingPrograms / costPerTrainingHour),
		WorkersSupported:      int64(report.ImpactAllocation.WorkerSafety / costPerWorkerSupport),
		CommunityGrantsFunded: int64(report.ImpactAllocation.CommunitySupport / costPerCommunityGrant),
	}

	s.Logger.Debug("transparency report generated",
		zap.Int("year", year),
		zap.Float64("total", total),
		zap.Int64("records", report.Summary.TotalTransactions),
	)
	return report, nil
}

// ValidateContributions runs the ledger reconciliation audit.
func (s *DefaultService) ValidateContributions(ctx context.Context, start, end time.Time) (*models.ReconciliationReport, error) {
	return s.Ledger.Reconcile(ctx, start, end)
}
