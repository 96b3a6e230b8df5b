package models

import "time"

// Fixed allocation percentages for aggregated contributions.
const (
	AllocationWorkerSafety     = 0.40
	AllocationTrainingPrograms = 0.30
	AllocationCommunitySupport = 0.20
	AllocationOperations       = 0.10
)

// ContributionPeriod tags a contribution record with the calendar period
// it belongs to. Quarter is derived from Month.
type ContributionPeriod struct {
	Year    int `bson:"year" json:"year"`
	Month   int `bson:"month" json:"month"`
	Quarter int `bson:"quarter" json:"quarter"`
}

// PeriodFor derives the period for a point in time.
func PeriodFor(t time.Time) ContributionPeriod {
	return ContributionPeriod{
		Year:    t.Year(),
		Month:   int(t.Month()),
		Quarter: QuarterForMonth(int(t.Month())),
	}
}

// QuarterForMonth maps a month (1-12) to its calendar quarter (1-4).
func QuarterForMonth(month int) int {
	return (month-1)/3 + 1
}

// AllocationSplit is the fixed percentage breakdown of a contribution
// across the four impact categories. The fields must sum to 1.0.
type AllocationSplit struct {
	WorkerSafety     float64 `bson:"worker_safety" json:"worker_safety"`
	TrainingPrograms float64 `bson:"training_programs" json:"training_programs"`
	CommunitySupport float64 `bson:"community_support" json:"community_support"`
	Operations       float64 `bson:"operations" json:"operations"`
}

// DefaultAllocationSplit returns the platform-wide 40/30/20/10 split.
func DefaultAllocationSplit() AllocationSplit {
	return AllocationSplit{
		WorkerSafety:     AllocationWorkerSafety,
		TrainingPrograms: AllocationTrainingPrograms,
		CommunitySupport: AllocationCommunitySupport,
		Operations:       AllocationOperations,
	}
}

// PublicationInfo records that a contribution has been included in a
// published transparency report.
type PublicationInfo struct {
	Published   bool       `bson:"published" json:"published"`
	ReportURL   string     `bson:"report_url,omitempty" json:"report_url,omitempty"`
	PublishedAt *time.Time `bson:"published_at,omitempty" json:"published_at,omitempty"`
}

// ContributionRecord is one charitable-contribution entry, tied 1:1 to a
// transaction. Records are append-only; only publication metadata may be
// attached after creation.
type ContributionRecord struct {
	ID            string             `bson:"id" json:"id"`
	TransactionID string             `bson:"transaction_id" json:"transaction_id"`
	Period        ContributionPeriod `bson:"period" json:"period"`
	Amount        float64            `bson:"amount" json:"amount"`
	Percentage    float64            `bson:"percentage" json:"percentage"`
	SourceKind    TransactionKind    `bson:"source_kind" json:"source_kind"`
	Allocation    AllocationSplit    `bson:"allocation" json:"allocation"`
	Publication   *PublicationInfo   `bson:"publication,omitempty" json:"publication,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// Discrepancy describes one mismatch found during reconciliation.
type Discrepancy struct {
	Type          string  `json:"type"` // total_mismatch | count_mismatch | missing_record | orphaned_record | amount_mismatch
	TransactionID string  `json:"transaction_id,omitempty"`
	Expected      float64 `json:"expected,omitempty"`
	Actual        float64 `json:"actual,omitempty"`
	Detail        string  `json:"detail"`
}

// ReconciliationReport is the read-only audit output comparing
// transaction-level contribution totals against the ledger.
type ReconciliationReport struct {
	StartDate        time.Time     `json:"start_date"`
	EndDate          time.Time     `json:"end_date"`
	TransactionTotal float64       `json:"transaction_total"`
	LedgerTotal      float64       `json:"ledger_total"`
	TransactionCount int64         `json:"transaction_count"`
	LedgerCount      int64         `json:"ledger_count"`
	Discrepancies    []Discrepancy `json:"discrepancies"`
	ValidationPassed bool          `json:"validation_passed"`
}
