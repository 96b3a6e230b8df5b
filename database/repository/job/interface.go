package jobRepo

import (
	"context"
	"errors"

	"riggerbackend/models"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrNotFound is returned when no job matches the given ID.
	ErrNotFound = errors.New("job not found")
	// ErrAlreadyClaimed is returned when a payment claim fails because
	// the job is no longer unpaid.
	ErrAlreadyClaimed = errors.New("job payment already claimed")
)

// SearchCriteria narrows job listings. Zero values are ignored.
type SearchCriteria struct {
	Trade      string
	Location   string
	Status     string
	EmployerID string
	WorkerID   string
	Offset     int64
	Limit      int64
}

// JobRepository defines methods for job data access.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	UpdateWithDocument(ctx context.Context, id string, updateDoc bson.M) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, criteria SearchCriteria) ([]models.Job, error)
	// ClaimForPayment atomically moves the job's payment status from
	// unpaid to processing. A second claim fails with ErrAlreadyClaimed,
	// which is the double-payment guard.
	ClaimForPayment(ctx context.Context, id string) error
	// ReleasePaymentClaim returns a claimed job to unpaid after a failure.
	ReleasePaymentClaim(ctx context.Context, id string) error
	// MarkPaid finalizes payment bookkeeping on the job.
	MarkPaid(ctx context.Context, id, transactionID string, amount float64) error
}
