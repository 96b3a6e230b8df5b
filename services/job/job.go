package job

import (
	"context"
	"fmt"

	jobRepo "riggerbackend/database/repository/job"
	"riggerbackend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultJobService implements JobService over the job repository.
type DefaultJobService struct {
	Repo   jobRepo.JobRepository
	Logger *zap.Logger
}

// Create validates and stores a new job posting.
func (s *DefaultJobService) Create(ctx context.Context, j *models.Job) (*models.Job, error) {
	if j.EmployerID == "" {
		return nil, fmt.Errorf("employer id is required")
	}
	if j.Title == "" || j.Trade == "" {
		return nil, fmt.Errorf("title and trade are required")
	}
	if j.HourlyRate <= 0 {
		return nil, fmt.Errorf("hourly rate must be positive")
	}
	if j.EstimatedHours <= 0 {
		return nil, fmt.Errorf("estimated hours must be positive")
	}
	j.Status = models.JobOpen
	j.PaymentStatus = models.PaymentUnpaid

	if err := s.Repo.Create(ctx, j); err != nil {
		return nil, err
	}
	s.Logger.Info("job posted",
		zap.String("job_id", j.ID),
		zap.String("employer_id", j.EmployerID),
		zap.String("trade", j.Trade))
	return j, nil
}

// GetByID retrieves a job.
func (s *DefaultJobService) GetByID(ctx context.Context, id string) (*models.Job, error) {
	return s.Repo.GetByID(ctx, id)
}

// Search lists jobs matching the criteria.
func (s *DefaultJobService) Search(ctx context.Context, criteria jobRepo.SearchCriteria) ([]models.Job, error) {
	return s.Repo.Search(ctx, criteria)
}

// Update patches mutable posting fields. Lifecycle and payment fields
// are managed through the dedicated operations, never through Update.
func (s *DefaultJobService) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Job, error) {
	allowed := bson.M{}
	for _, key := range []string{"title", "description", "location", "hourly_rate", "estimated_hours"} {
		if v, ok := fields[key]; ok {
			allowed[key] = v
		}
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("no updatable fields provided")
	}
	j, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if j.Status != models.JobOpen {
		return nil, fmt.Errorf("only open jobs can be edited")
	}
	if err := s.Repo.UpdateWithDocument(ctx, id, allowed); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

// AssignWorker attaches a worker to an open job.
func (s *DefaultJobService) AssignWorker(ctx context.Context, jobID, workerID string) (*models.Job, error) {
	if workerID == "" {
		return nil, fmt.Errorf("worker id is required")
	}
	j, err := s.Repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.Status != models.JobOpen {
		return nil, fmt.Errorf("job is not open for assignment")
	}
	update := bson.M{
		"assigned_worker_id": workerID,
		"status":             models.JobAssigned,
	}
	if err := s.Repo.UpdateWithDocument(ctx, jobID, update); err != nil {
		return nil, err
	}
	s.Logger.Info("worker assigned",
		zap.String("job_id", jobID),
		zap.String("worker_id", workerID))
	return s.Repo.GetByID(ctx, jobID)
}

// Complete records the actual hours worked and marks the job completed,
// making it eligible for payment processing.
func (s *DefaultJobService) Complete(ctx context.Context, jobID string, actualHours float64) (*models.Job, error) {
	if actualHours < 0 {
		return nil, fmt.Errorf("actual hours cannot be negative")
	}
	j, err := s.Repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.Status != models.JobAssigned && j.Status != models.JobInProgress {
		return nil, fmt.Errorf("job cannot be completed from status %q", j.Status)
	}
	if j.AssignedWorkerID == "" {
		return nil, fmt.Errorf("job has no assigned worker")
	}
	update := bson.M{
		"status":       models.JobCompleted,
		"actual_hours": actualHours,
	}
	if err := s.Repo.UpdateWithDocument(ctx, jobID, update); err != nil {
		return nil, err
	}
	s.Logger.Info("job completed",
		zap.String("job_id", jobID),
		zap.Float64("actual_hours", actualHours))
	return s.Repo.GetByID(ctx, jobID)
}

// Cancel withdraws a job before payment. Paid jobs cannot be cancelled.
func (s *DefaultJobService) Cancel(ctx context.Context, jobID string) error {
	j, err := s.Repo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if j.PaymentStatus == models.PaymentPaid {
		return fmt.Errorf("paid jobs cannot be cancelled")
	}
	return s.Repo.UpdateWithDocument(ctx, jobID, bson.M{"status": models.JobCancelled})
}

// Delete removes a job posting.
func (s *DefaultJobService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
