package job

import (
	"context"

	jobRepo "riggerbackend/database/repository/job"
	"riggerbackend/models"
)

// JobService manages job postings through their lifecycle: posted by an
// employer, assigned to a worker, completed, then paid by the billing
// pipeline.
type JobService interface {
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Search(ctx context.Context, criteria jobRepo.SearchCriteria) ([]models.Job, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Job, error)
	AssignWorker(ctx context.Context, jobID, workerID string) (*models.Job, error)
	Complete(ctx context.Context, jobID string, actualHours float64) (*models.Job, error)
	Cancel(ctx context.Context, jobID string) error
	Delete(ctx context.Context, id string) error
}
