package models

import "time"

// SubscriptionPlan identifies a pricing tier.
type SubscriptionPlan string

const (
	PlanBasic        SubscriptionPlan = "basic"
	PlanProfessional SubscriptionPlan = "professional"
	PlanEnterprise   SubscriptionPlan = "enterprise"
)

// BillingInterval is the renewal cadence of a subscription.
type BillingInterval string

const (
	IntervalMonthly   BillingInterval = "monthly"
	IntervalQuarterly BillingInterval = "quarterly"
	IntervalYearly    BillingInterval = "yearly"
)

// Duration returns the fixed calendar-day offset for the interval.
// Intervals are day offsets, not true calendar-month arithmetic.
func (i BillingInterval) Duration() time.Duration {
	switch i {
	case IntervalQuarterly:
		return 90 * 24 * time.Hour
	case IntervalYearly:
		return 365 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}

// Subscription statuses.
const (
	SubscriptionActive    = "active"
	SubscriptionPastDue   = "past_due"
	SubscriptionCancelled = "cancelled"
)

// UsageCounters tracks per-period plan usage, reset on renewal.
type UsageCounters struct {
	JobPosts      int `bson:"job_posts" json:"job_posts"`
	FeaturedPosts int `bson:"featured_posts" json:"featured_posts"`
	WorkerInvites int `bson:"worker_invites" json:"worker_invites"`
}

// Subscription is a recurring billing agreement owned by one user.
type Subscription struct {
	ID                 string           `bson:"id" json:"id"`
	UserID             string           `bson:"user_id" json:"user_id"`
	Plan               SubscriptionPlan `bson:"plan" json:"plan"`
	Amount             float64          `bson:"amount" json:"amount"`
	Currency           string           `bson:"currency" json:"currency"`
	Interval           BillingInterval  `bson:"interval" json:"interval"`
	Status             string           `bson:"status" json:"status"`
	CurrentPeriodStart time.Time        `bson:"current_period_start" json:"current_period_start"`
	CurrentPeriodEnd   time.Time        `bson:"current_period_end" json:"current_period_end"`
	Usage              UsageCounters    `bson:"usage" json:"usage"`
	PaymentMethodID    string           `bson:"payment_method_id" json:"payment_method_id"`
	LastFailureReason  string           `bson:"last_failure_reason,omitempty" json:"last_failure_reason,omitempty"`
	CreatedAt          time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time        `bson:"updated_at" json:"updated_at"`
}

// PaymentMethod holds a tokenized processor reference; raw card data
// never touches the platform.
type PaymentMethod struct {
	ID             string    `bson:"id" json:"id"`
	UserID         string    `bson:"user_id" json:"user_id"`
	ProcessorToken string    `bson:"processor_token" json:"-"`
	Brand          string    `bson:"brand" json:"brand"`
	Last4          string    `bson:"last4" json:"last4"`
	ExpMonth       int       `bson:"exp_month" json:"exp_month"`
	ExpYear        int       `bson:"exp_year" json:"exp_year"`
	Default        bool      `bson:"default" json:"default"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}
