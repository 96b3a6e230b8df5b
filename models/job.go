package models

import "time"

// Job statuses.
const (
	JobOpen       = "open"
	JobAssigned   = "assigned"
	JobInProgress = "in_progress"
	JobCompleted  = "completed"
	JobCancelled  = "cancelled"
)

// Job payment statuses.
const (
	PaymentUnpaid     = "unpaid"
	PaymentProcessing = "processing"
	PaymentPaid       = "paid"
)

// Job is a rigging/construction engagement posted by an employer.
type Job struct {
	ID                   string     `bson:"id" json:"id"`
	EmployerID           string     `bson:"employer_id" json:"employer_id"`
	Title                string     `bson:"title" json:"title"`
	Description          string     `bson:"description,omitempty" json:"description,omitempty"`
	Trade                string     `bson:"trade" json:"trade"` // e.g. rigger, dogger, crane_operator
	Location             string     `bson:"location,omitempty" json:"location,omitempty"`
	HourlyRate           float64    `bson:"hourly_rate" json:"hourly_rate"`
	EstimatedHours       float64    `bson:"estimated_hours" json:"estimated_hours"`
	ActualHours          float64    `bson:"actual_hours,omitempty" json:"actual_hours,omitempty"`
	AssignedWorkerID     string     `bson:"assigned_worker_id,omitempty" json:"assigned_worker_id,omitempty"`
	Status               string     `bson:"status" json:"status"`
	PaymentStatus        string     `bson:"payment_status" json:"payment_status"`
	PaymentTransactionID string     `bson:"payment_transaction_id,omitempty" json:"payment_transaction_id,omitempty"`
	PaidAmount           float64    `bson:"paid_amount,omitempty" json:"paid_amount,omitempty"`
	PaidAt               *time.Time `bson:"paid_at,omitempty" json:"paid_at,omitempty"`
	CreatedAt            time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `bson:"updated_at" json:"updated_at"`
}

// BillableHours returns the hours the payment is computed on: actual
// hours when recorded, otherwise the estimate.
func (j *Job) BillableHours() float64 {
	if j.ActualHours > 0 {
		return j.ActualHours
	}
	return j.EstimatedHours
}
