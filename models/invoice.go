package models

import "time"

// InvoiceLine is one billed item on an invoice.
type InvoiceLine struct {
	Description string  `bson:"description" json:"description"`
	Quantity    float64 `bson:"quantity" json:"quantity"`
	UnitPrice   float64 `bson:"unit_price" json:"unit_price"`
	Total       float64 `bson:"total" json:"total"`
}

// Invoice represents an invoice generated for a billing event.
type Invoice struct {
	ID             string        `bson:"id" json:"id"`
	UserID         string        `bson:"user_id" json:"user_id"`
	SubscriptionID string        `bson:"subscription_id,omitempty" json:"subscription_id,omitempty"`
	TransactionID  string        `bson:"transaction_id,omitempty" json:"transaction_id,omitempty"`
	Lines          []InvoiceLine `bson:"lines" json:"lines"`
	Subtotal       float64       `bson:"subtotal" json:"subtotal"`
	Total          float64       `bson:"total" json:"total"`
	Currency       string        `bson:"currency" json:"currency"`
	Status         string        `bson:"status" json:"status"` // draft | open | paid | void
	DueDate        time.Time     `bson:"due_date" json:"due_date"`
	PaidAt         *time.Time    `bson:"paid_at,omitempty" json:"paid_at,omitempty"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `bson:"updated_at" json:"updated_at"`
}
