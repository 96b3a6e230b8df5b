package jobRepo

import (
	"context"
	"fmt"
	"time"

	"riggerbackend/database"
	"riggerbackend/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoJobRepo struct {
	coll *mongo.Collection
}

// NewMongoJobRepo returns a JobRepository backed by MongoDB.
func NewMongoJobRepo() JobRepository {
	repo := &mongoJobRepo{
		coll: database.DB().Collection("jobs"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *mongoJobRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "employer_id", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_worker_id", Value: 1}}},
		{Keys: bson.D{{Key: "trade", Value: 1}, {Key: "status", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create job indexes: %w", err)
	}
	return nil
}

func (r *mongoJobRepo) Create(ctx context.Context, job *models.Job) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	if job.Status == "" {
		job.Status = models.JobOpen
	}
	if job.PaymentStatus == "" {
		job.PaymentStatus = models.PaymentUnpaid
	}
	if _, err := r.coll.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (r *mongoJobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&job)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job %s: %w", id, err)
	}
	return &job, nil
}

func (r *mongoJobRepo) UpdateWithDocument(ctx context.Context, id string, updateDoc bson.M) error {
	updateDoc["updated_at"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update job %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoJobRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete job %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoJobRepo) Search(ctx context.Context, criteria SearchCriteria) ([]models.Job, error) {
	query := bson.M{}
	if criteria.Trade != "" {
		query["trade"] = criteria.Trade
	}
	if criteria.Location != "" {
		query["location"] = criteria.Location
	}
	if criteria.Status != "" {
		query["status"] = criteria.Status
	}
	if criteria.EmployerID != "" {
		query["employer_id"] = criteria.EmployerID
	}
	if criteria.WorkerID != "" {
		query["assigned_worker_id"] = criteria.WorkerID
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if criteria.Limit > 0 {
		opts = opts.SetSkip(criteria.Offset).SetLimit(criteria.Limit)
	}
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []models.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// ClaimForPayment flips unpaid -> processing; the payment status is part
// of the filter so only one caller can win the claim.
func (r *mongoJobRepo) ClaimForPayment(ctx context.Context, id string) error {
	filter := bson.M{"id": id, "payment_status": models.PaymentUnpaid}
	update := bson.M{"$set": bson.M{
		"payment_status": models.PaymentProcessing,
		"updated_at":     time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to claim job %s for payment: %w", id, err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrAlreadyClaimed
	}
	return nil
}

func (r *mongoJobRepo) ReleasePaymentClaim(ctx context.Context, id string) error {
	filter := bson.M{"id": id, "payment_status": models.PaymentProcessing}
	update := bson.M{"$set": bson.M{
		"payment_status": models.PaymentUnpaid,
		"updated_at":     time.Now(),
	}}
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to release payment claim on job %s: %w", id, err)
	}
	return nil
}

func (r *mongoJobRepo) MarkPaid(ctx context.Context, id, transactionID string, amount float64) error {
	now := time.Now()
	update := bson.M{"$set": bson.M{
		"payment_status":         models.PaymentPaid,
		"payment_transaction_id": transactionID,
		"paid_amount":            amount,
		"paid_at":                now,
		"updated_at":             now,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to mark job %s paid: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
