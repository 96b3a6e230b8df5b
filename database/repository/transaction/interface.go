package transactionRepo

import (
	"context"
	"errors"
	"time"

	"riggerbackend/models"
)

var (
	// ErrNotFound is returned when no transaction matches the given ID.
	ErrNotFound = errors.New("transaction not found")
	// ErrInvalidTransition is returned for an illegal status change,
	// including any transition out of a terminal state.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidAmount is returned when creating a transaction with a
	// non-positive amount.
	ErrInvalidAmount = errors.New("transaction amount must be positive")
)

// Filter narrows transaction queries. Zero values are ignored.
type Filter struct {
	Kind                models.TransactionKind
	Status              models.TransactionStatus
	PayerID             string
	PayeeID             string
	JobID               string
	SubscriptionID      string
	ContributionTracked *bool
	From                *time.Time
	To                  *time.Time
}

// Page bounds a Find result set.
type Page struct {
	Offset int64
	Limit  int64
}

// TransactionRepository defines methods for transaction data access.
type TransactionRepository interface {
	// Create inserts a new transaction, assigning its ID and defaulting
	// the status to pending.
	Create(ctx context.Context, txn *models.Transaction) error
	// CreateWithContribution inserts a transaction and its contribution
	// record in one store transaction. The contribution write is an
	// upsert keyed by transaction ID, so a retry after partial failure
	// cannot double-record.
	CreateWithContribution(ctx context.Context, txn *models.Transaction, rec *models.ContributionRecord) error
	// GetByID retrieves a transaction by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	// UpdateStatus applies a lifecycle transition, rejecting illegal ones.
	UpdateStatus(ctx context.Context, id string, status models.TransactionStatus) (*models.Transaction, error)
	// Find returns transactions matching the filter, newest first.
	Find(ctx context.Context, filter Filter, page Page) ([]models.Transaction, error)
	// Count returns the number of transactions matching the filter.
	Count(ctx context.Context, filter Filter) (int64, error)
	// SumAmounts totals the gross amounts of matching transactions.
	SumAmounts(ctx context.Context, filter Filter) (float64, error)
	// SumContributions totals the contribution amounts of matching transactions.
	SumContributions(ctx context.Context, filter Filter) (float64, error)
	// CreateReversal marks the original transaction refunded and inserts
	// a linked reversing transaction of the given kind.
	CreateReversal(ctx context.Context, originalID string, kind models.TransactionKind, reason string) (*models.Transaction, error)
}
