package job_test

import (
	"context"
	"fmt"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	jobRepo "riggerbackend/database/repository/job"
	"riggerbackend/models"
	"riggerbackend/services/job"
)

// In-memory job repository.
type memJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*models.Job
	seq  int
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: make(map[string]*models.Job)}
}

func (m *memJobRepo) Create(ctx context.Context, j *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	j.ID = fmt.Sprintf("job-%d", m.seq)
	m.jobs[j.ID] = j
	return nil
}

func (m *memJobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, jobRepo.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (m *memJobRepo) UpdateWithDocument(ctx context.Context, id string, updateDoc bson.M) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return jobRepo.ErrNotFound
	}
	if v, ok := updateDoc["title"].(string); ok {
		j.Title = v
	}
	if v, ok := updateDoc["status"].(string); ok {
		j.Status = v
	}
	if v, ok := updateDoc["assigned_worker_id"].(string); ok {
		j.AssignedWorkerID = v
	}
	if v, ok := updateDoc["actual_hours"].(float64); ok {
		j.ActualHours = v
	}
	if v, ok := updateDoc["hourly_rate"].(float64); ok {
		j.HourlyRate = v
	}
	return nil
}

func (m *memJobRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, id)
	return nil
}

func (m *memJobRepo) Search(ctx context.Context, criteria jobRepo.SearchCriteria) ([]models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Job
	for _, j := range m.jobs {
		if criteria.Trade != "" && j.Trade != criteria.Trade {
			continue
		}
		if criteria.Status != "" && j.Status != criteria.Status {
			continue
		}
		if criteria.EmployerID != "" && j.EmployerID != criteria.EmployerID {
			continue
		}
		out = append(out, *j)
	}
	return out, nil
}

func (m *memJobRepo) ClaimForPayment(ctx context.Context, id string) error {
	return nil
}

func (m *memJobRepo) ReleasePaymentClaim(ctx context.Context, id string) error {
	return nil
}

func (m *memJobRepo) MarkPaid(ctx context.Context, id, transactionID string, amount float64) error {
	return nil
}

var _ = Describe("DefaultJobService", func() {
	var (
		ctx  context.Context
		repo *memJobRepo
		svc  *job.DefaultJobService
	)

	newPosting := func() *models.Job {
		return &models.Job{
			EmployerID:     "employer-1",
			Title:          "Mobile crane rigging",
			Trade:          "rigger",
			HourlyRate:     55,
			EstimatedHours: 12,
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMemJobRepo()
		svc = &job.DefaultJobService{Repo: repo, Logger: zap.NewNop()}
	})

	Describe("Create", func() {
		It("stores an open, unpaid job", func() {
			created, err := svc.Create(ctx, newPosting())
			Expect(err).ToNot(HaveOccurred())
			Expect(created.ID).ToNot(BeEmpty())
			Expect(created.Status).To(Equal(models.JobOpen))
			Expect(created.PaymentStatus).To(Equal(models.PaymentUnpaid))
		})

		It("rejects a missing employer", func() {
			j := newPosting()
			j.EmployerID = ""
			_, err := svc.Create(ctx, j)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a non-positive hourly rate", func() {
			j := newPosting()
			j.HourlyRate = 0
			_, err := svc.Create(ctx, j)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("AssignWorker", func() {
		It("moves an open job to assigned", func() {
			created, err := svc.Create(ctx, newPosting())
			Expect(err).ToNot(HaveOccurred())

			assigned, err := svc.AssignWorker(ctx, created.ID, "worker-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(assigned.Status).To(Equal(models.JobAssigned))
			Expect(assigned.AssignedWorkerID).To(Equal("worker-1"))
		})

		It("rejects assignment on a non-open job", func() {
			created, err := svc.Create(ctx, newPosting())
			Expect(err).ToNot(HaveOccurred())
			_, err = svc.AssignWorker(ctx, created.ID, "worker-1")
			Expect(err).ToNot(HaveOccurred())

			_, err = svc.AssignWorker(ctx, created.ID, "worker-2")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Complete", func() {
		var jobID string

		BeforeEach(func() {
			created, err := svc.Create(ctx, newPosting())
			Expect(err).ToNot(HaveOccurred())
			jobID = created.ID
			_, err = svc.AssignWorker(ctx, jobID, "worker-1")
			Expect(err).ToNot(HaveOccurred())
		})

		It("records the actual hours and marks the job completed", func() {
			completed, err := svc.Complete(ctx, jobID, 9.5)
			Expect(err).ToNot(HaveOccurred())
			Expect(completed.Status).To(Equal(models.JobCompleted))
			Expect(completed.ActualHours).To(Equal(9.5))
			Expect(completed.BillableHours()).To(Equal(9.5))
		})

		It("falls back to estimated hours when none were recorded", func() {
			completed, err := svc.Complete(ctx, jobID, 0)
			Expect(err).ToNot(HaveOccurred())
			Expect(completed.BillableHours()).To(Equal(12.0))
		})

		It("rejects completing an open job", func() {
			fresh, err := svc.Create(ctx, newPosting())
			Expect(err).ToNot(HaveOccurred())
			_, err = svc.Complete(ctx, fresh.ID, 4)
			Expect(err).To(HaveOccurred())
		})

		It("rejects negative hours", func() {
			_, err := svc.Complete(ctx, jobID, -1)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		It("patches only whitelisted fields on open jobs", func() {
			created, err := svc.Create(ctx, newPosting())
			Expect(err).ToNot(HaveOccurred())

			updated, err := svc.Update(ctx, created.ID, map[string]interface{}{
				"title":  "Tower crane rigging",
				"status": models.JobCompleted, // ignored
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Title).To(Equal("Tower crane rigging"))
			Expect(updated.Status).To(Equal(models.JobOpen))
		})

		It("rejects edits once the job is assigned", func() {
			created, err := svc.Create(ctx, newPosting())
			Expect(err).ToNot(HaveOccurred())
			_, err = svc.AssignWorker(ctx, created.ID, "worker-1")
			Expect(err).ToNot(HaveOccurred())

			_, err = svc.Update(ctx, created.ID, map[string]interface{}{"title": "new"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Cancel", func() {
		It("cancels an unpaid job", func() {
			created, err := svc.Create(ctx, newPosting())
			Expect(err).ToNot(HaveOccurred())
			Expect(svc.Cancel(ctx, created.ID)).To(Succeed())

			stored, err := svc.GetByID(ctx, created.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored.Status).To(Equal(models.JobCancelled))
		})

		It("refuses to cancel a paid job", func() {
			created, err := svc.Create(ctx, newPosting())
			Expect(err).ToNot(HaveOccurred())
			repo.jobs[created.ID].PaymentStatus = models.PaymentPaid

			Expect(svc.Cancel(ctx, created.ID)).ToNot(Succeed())
		})
	})
})
