package models

import "time"

// TransactionKind classifies a monetary movement.
type TransactionKind string

const (
	KindJobPayment     TransactionKind = "job_payment"
	KindSubscription   TransactionKind = "subscription"
	KindRecruitmentFee TransactionKind = "recruitment_fee"
	KindPlatformFee    TransactionKind = "platform_fee"
	KindRefund         TransactionKind = "refund"
	KindChargeback     TransactionKind = "chargeback"
)

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusPending    TransactionStatus = "pending"
	StatusProcessing TransactionStatus = "processing"
	StatusCompleted  TransactionStatus = "completed"
	StatusFailed     TransactionStatus = "failed"
	StatusCancelled  TransactionStatus = "cancelled"
	StatusRefunded   TransactionStatus = "refunded"
)

// IsTerminal reports whether no further status transition is allowed,
// except for a refund/chargeback spawning a linked reversing transaction.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// FeeDetails is the fee breakdown persisted on a transaction.
type FeeDetails struct {
	PlatformFee  float64 `bson:"platform_fee" json:"platform_fee"`
	ProcessorFee float64 `bson:"processor_fee" json:"processor_fee"`
	TotalFees    float64 `bson:"total_fees" json:"total_fees"`
}

// ContributionDetail is the charitable-contribution sub-record embedded
// in a transaction. The ledger keeps the authoritative copy.
type ContributionDetail struct {
	Percentage float64 `bson:"percentage" json:"percentage"`
	Amount     float64 `bson:"amount" json:"amount"`
	Tracked    bool    `bson:"tracked" json:"tracked"`
}

// Transaction represents one monetary movement between a payer and a
// payee (or the platform).
type Transaction struct {
	ID                 string                 `bson:"id" json:"id"`
	Kind               TransactionKind        `bson:"kind" json:"kind"`
	Status             TransactionStatus      `bson:"status" json:"status"`
	Amount             float64                `bson:"amount" json:"amount"`
	Currency           string                 `bson:"currency" json:"currency"`
	Fees               FeeDetails             `bson:"fees" json:"fees"`
	NetAmount          float64                `bson:"net_amount" json:"net_amount"`
	PayerID            string                 `bson:"payer_id" json:"payer_id"`
	PayeeID            string                 `bson:"payee_id,omitempty" json:"payee_id,omitempty"`
	PlatformFeePercent float64                `bson:"platform_fee_percent,omitempty" json:"platform_fee_percent,omitempty"`
	JobID              string                 `bson:"job_id,omitempty" json:"job_id,omitempty"`
	SubscriptionID     string                 `bson:"subscription_id,omitempty" json:"subscription_id,omitempty"`
	InvoiceID          string                 `bson:"invoice_id,omitempty" json:"invoice_id,omitempty"`
	Contribution       ContributionDetail     `bson:"contribution" json:"contribution"`
	ProcessorChargeID  string                 `bson:"processor_charge_id,omitempty" json:"processor_charge_id,omitempty"`
	ReversalOf         string                 `bson:"reversal_of,omitempty" json:"reversal_of,omitempty"`
	ReversalReason     string                 `bson:"reversal_reason,omitempty" json:"reversal_reason,omitempty"`
	Metadata           map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt          time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time              `bson:"updated_at" json:"updated_at"`
}
