package models

import "time"

// SourceBreakdown is the contribution share of one transaction kind.
type SourceBreakdown struct {
	SourceKind TransactionKind `json:"source_kind"`
	Amount     float64         `json:"amount"`
	Count      int64           `json:"count"`
	Percentage float64         `json:"percentage"`
}

// MonthlyContribution is one month bucket of a yearly report. Reports
// always carry 12 buckets, zero-filled for inactive months.
type MonthlyContribution struct {
	Month  int     `json:"month"`
	Amount float64 `json:"amount"`
	Count  int64   `json:"count"`
}

// QuarterlyContribution is one quarter bucket of a yearly report.
type QuarterlyContribution struct {
	Quarter int     `json:"quarter"`
	Amount  float64 `json:"amount"`
	Count   int64   `json:"count"`
}

// ImpactAllocation applies the fixed 40/30/20/10 split to the yearly
// contribution total.
type ImpactAllocation struct {
	WorkerSafety     float64 `json:"worker_safety"`
	TrainingPrograms float64 `json:"training_programs"`
	CommunitySupport float64 `json:"community_support"`
	Operations       float64 `json:"operations"`
}

// ImpactMetrics are estimated impact counts derived from fixed divisor
// constants. They are illustrative estimates, not ground truth.
type ImpactMetrics struct {
	SafetyKitsFunded      int64 `json:"safety_kits_funded"`
	TrainingHoursFunded   int64 `json:"training_hours_funded"`
	WorkersSupported      int64 `json:"workers_supported"`
	CommunityGrantsFunded int64 `json:"community_grants_funded"`
}

// TransparencySummary is the headline section of a yearly report.
type TransparencySummary struct {
	Year               int     `json:"year"`
	TotalContributions float64 `json:"total_contributions"`
	TotalTransactions  int64   `json:"total_transactions"`
	ContributionRate   float64 `json:"contribution_rate"`
	AverageAmount      float64 `json:"average_amount"`
}

// TransparencyReport is the full yearly NGO-contribution report.
type TransparencyReport struct {
	Summary             TransparencySummary     `json:"summary"`
	Sources             []SourceBreakdown       `json:"sources"`
	MonthlyBreakdown    []MonthlyContribution   `json:"monthly_breakdown"`
	QuarterlyBreakdown  []QuarterlyContribution `json:"quarterly_breakdown"`
	ImpactAllocation    ImpactAllocation        `json:"impact_allocation"`
	ImpactMetrics       ImpactMetrics           `json:"impact_metrics"`
	GeneratedAt         time.Time               `json:"generated_at"`
	PublishedRecordIDs  []string                `json:"published_record_ids,omitempty"`
	InternalAnnotations map[string]interface{}  `json:"internal_annotations,omitempty"`
}

// PublicDashboard is the unauthenticated view of a transparency report,
// with internal fields stripped.
type PublicDashboard struct {
	Year               int                     `json:"year"`
	TotalContributions float64                 `json:"total_contributions"`
	ContributionRate   float64                 `json:"contribution_rate"`
	MonthlyBreakdown   []MonthlyContribution   `json:"monthly_breakdown"`
	QuarterlyBreakdown []QuarterlyContribution `json:"quarterly_breakdown"`
	ImpactAllocation   ImpactAllocation        `json:"impact_allocation"`
	ImpactMetrics      ImpactMetrics           `json:"impact_metrics"`
	GeneratedAt        time.Time               `json:"generated_at"`
}
