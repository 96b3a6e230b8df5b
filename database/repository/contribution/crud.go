package contributionRepo

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

type mongoContributionRepo struct {
	coll *mongo.Collection
}

// NewMongoContributionRepo returns a ContributionRepository backed by MongoDB.
func NewMongoContributionRepo() ContributionRepository {
	repo := &mongoContributionRepo{
		coll: database.DB().Collection("contributions"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *mongoContributionRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "transaction_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "period.year", Value: 1}, {Key: "period.month", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create contribution indexes: %w", err)
	}
	return nil
}

// Upsert writes the record keyed by transaction ID; an existing record
// for the same transaction is left untouched.
func (r *mongoContributionRepo) Upsert(ctx context.Context, rec *models.ContributionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	filter := bson.M{"transaction_id": rec.TransactionID}
	update := bson.M{"$setOnInsert": rec}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert contribution record: %w", err)
	}
	return nil
}

// GetByTransactionID returns the record linked to a transaction.
func (r *mongoContributionRepo) GetByTransactionID(ctx context.Context, transactionID string) (*models.ContributionRecord, error) {
	var rec models.ContributionRecord
	err := r.coll.FindOne(ctx, bson.M{"transaction_id": transactionID}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// MarkPublished attaches publication metadata to a record.
func (r *mongoContributionRepo) MarkPublished(ctx context.Context, id, reportURL string) error {
	now := time.Now()
	update := bson.M{"$set": bson.M{
		"publication": models.PublicationInfo{
			Published:   true,
			ReportURL:   reportURL,
			PublishedAt: &now,
		},
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to mark contribution published: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
