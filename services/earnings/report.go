package earnings

import (
	"context"
	"fmt"
	"sort"

	"riggerbackend/models"
)

// GenerateReport builds a worker earnings report. Period selects the
// bucket view: "monthly", "yearly" or "all" (totals only).
func (a *DefaultAggregator) GenerateReport(ctx context.Context, workerID, period string) (*models.EarningsReport, error) {
	summary, err := a.Repo.GetByWorkerID(ctx, workerID)
	if err != nil {
		return nil, err
	}

	report := &models.EarningsReport{
		WorkerID:          workerID,
		Period:            period,
		TotalEarnings:     summary.TotalEarnings,
		TotalJobs:         summary.TotalJobs,
		TotalHours:        summary.TotalHours,
		AverageJobValue:   summary.AverageJobValue,
		AverageHourlyRate: summary.AverageHourlyRate,
		TaxDocumentDue:    summary.TotalEarnings >= summary.TaxThreshold,
		GeneratedAt:       a.now(),
	}

	switch period {
	case "monthly":
		for _, key := range summary.SortedMonthKeys() {
			b := summary.Monthly[key]
			report.Entries = append(report.Entries, models.EarningsReportEntry{
				Period:   key,
				Earnings: b.Earnings,
				Jobs:     b.Jobs,
				Hours:    b.Hours,
			})
		}
	case "yearly":
		keys := make([]string, 0, len(summary.Yearly))
		for k := range summary.Yearly {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			b := summary.Yearly[key]
			report.Entries = append(report.Entries, models.EarningsReportEntry{
				Period:   key,
				Earnings: b.Earnings,
				Jobs:     b.Jobs,
				Hours:    b.Hours,
			})
		}
	case "all", "":
		report.Period = "all"
	default:
		return nil, fmt.Errorf("unknown report period %q", period)
	}

	return report, nil
}
