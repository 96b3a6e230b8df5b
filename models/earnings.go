package models

import (
	"fmt"
	"sort"
	"time"
)

// DefaultTaxContributionThreshold is the earnings level above which the
// platform issues tax documentation for a worker.
const DefaultTaxContributionThreshold = 600.0

// EarningsBucket is one pre-aggregated rollup bucket (monthly or yearly).
type EarningsBucket struct {
	Earnings float64 `bson:"earnings" json:"earnings"`
	Jobs     int64   `bson:"jobs" json:"jobs"`
	Hours    float64 `bson:"hours" json:"hours"`
}

// EarningSummary is the per-worker aggregated earnings rollup. Monthly
// buckets are keyed "YYYY-MM" and yearly buckets "YYYY" so the store can
// upsert them with a single atomic increment.
type EarningSummary struct {
	WorkerID          string                    `bson:"worker_id" json:"worker_id"`
	TotalEarnings     float64                   `bson:"total_earnings" json:"total_earnings"`
	TotalJobs         int64                     `bson:"total_jobs" json:"total_jobs"`
	TotalHours        float64                   `bson:"total_hours" json:"total_hours"`
	AverageJobValue   float64                   `bson:"average_job_value" json:"average_job_value"`
	AverageHourlyRate float64                   `bson:"average_hourly_rate" json:"average_hourly_rate"`
	Monthly           map[string]EarningsBucket `bson:"monthly" json:"monthly"`
	Yearly            map[string]EarningsBucket `bson:"yearly" json:"yearly"`
	TaxThreshold      float64                   `bson:"tax_threshold" json:"tax_threshold"`
	CreatedAt         time.Time                 `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time                 `bson:"updated_at" json:"updated_at"`
}

// MonthKey builds the monthly bucket key for (year, month).
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// YearKey builds the yearly bucket key.
func YearKey(year int) string {
	return fmt.Sprintf("%04d", year)
}

// Recalculate refreshes the derived averages from the running totals,
// leaving an average at 0 when its denominator is 0.
func (s *EarningSummary) Recalculate() {
	if s.TotalJobs > 0 {
		s.AverageJobValue = s.TotalEarnings / float64(s.TotalJobs)
	} else {
		s.AverageJobValue = 0
	}
	if s.TotalHours > 0 {
		s.AverageHourlyRate = s.TotalEarnings / s.TotalHours
	} else {
		s.AverageHourlyRate = 0
	}
}

// SortedMonthKeys returns the monthly bucket keys in chronological order.
func (s *EarningSummary) SortedMonthKeys() []string {
	keys := make([]string, 0, len(s.Monthly))
	for k := range s.Monthly {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EarningsReportEntry is one period row in a worker earnings report.
type EarningsReportEntry struct {
	Period   string  `json:"period"`
	Earnings float64 `json:"earnings"`
	Jobs     int64   `json:"jobs"`
	Hours    float64 `json:"hours"`
}

// EarningsReport is the read-side view produced for a worker.
type EarningsReport struct {
	WorkerID          string                `json:"worker_id"`
	Period            string                `json:"period"` // monthly | yearly | all
	TotalEarnings     float64               `json:"total_earnings"`
	TotalJobs         int64                 `json:"total_jobs"`
	TotalHours        float64               `json:"total_hours"`
	AverageJobValue   float64               `json:"average_job_value"`
	AverageHourlyRate float64               `json:"average_hourly_rate"`
	Entries           []EarningsReportEntry `json:"entries"`
	TaxDocumentDue    bool                  `json:"tax_document_due"`
	GeneratedAt       time.Time             `json:"generated_at"`
}
