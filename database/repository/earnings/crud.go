package earningsRepo

import (
	"context"
	"fmt"
	"time"

	"riggerbackend/database"
	"riggerbackend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoEarningsRepo struct {
	coll *mongo.Collection
}

// NewMongoEarningsRepo returns an EarningsRepository backed by MongoDB.
func NewMongoEarningsRepo() EarningsRepository {
	repo := &mongoEarningsRepo{
		coll: database.DB().Collection("earning_summaries"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *mongoEarningsRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "worker_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create earnings indexes: %w", err)
	}
	return nil
}

// ApplyDelta applies all counters in one upserted $inc. Nested $inc paths
// create missing buckets, so the summary, the month bucket and the year
// bucket all come into existence atomically on first touch.
func (r *mongoEarningsRepo) ApplyDelta(ctx context.Context, workerID string, amount, hours float64, year, month int) error {
	monthKey := models.MonthKey(year, month)
	yearKey := models.YearKey(year)

	inc := bson.M{
		"total_earnings": amount,
		"total_jobs":     1,
		"total_hours":    hours,
		fmt.Sprintf("monthly.%s.earnings", monthKey): amount,
		fmt.Sprintf("monthly.%s.jobs", monthKey):     1,
		fmt.Sprintf("monthly.%s.hours", monthKey):    hours,
		fmt.Sprintf("yearly.%s.earnings", yearKey):   amount,
		fmt.Sprintf("yearly.%s.jobs", yearKey):       1,
		fmt.Sprintf("yearly.%s.hours", yearKey):      hours,
	}
	update := bson.M{
		"$inc": inc,
		"$set": bson.M{"updated_at": time.Now()},
		"$setOnInsert": bson.M{
			"worker_id":     workerID,
			"tax_threshold": models.DefaultTaxContributionThreshold,
			"created_at":    time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"worker_id": workerID}, update, opts); err != nil {
		return fmt.Errorf("failed to apply earnings delta for worker %s: %w", workerID, err)
	}
	return nil
}

// GetByWorkerID loads a worker's summary with averages recomputed.
func (r *mongoEarningsRepo) GetByWorkerID(ctx context.Context, workerID string) (*models.EarningSummary, error) {
	var summary models.EarningSummary
	err := r.coll.FindOne(ctx, bson.M{"worker_id": workerID}).Decode(&summary)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch earning summary for worker %s: %w", workerID, err)
	}
	summary.Recalculate()
	return &summary, nil
}

// SetAverages persists derived averages. They are display values computed
// from the monotonic totals, so last-writer-wins is acceptable here.
func (r *mongoEarningsRepo) SetAverages(ctx context.Context, workerID string, avgJobValue, avgHourlyRate float64) error {
	update := bson.M{"$set": bson.M{
		"average_job_value":   avgJobValue,
		"average_hourly_rate": avgHourlyRate,
	}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"worker_id": workerID}, update); err != nil {
		return fmt.Errorf("failed to set averages for worker %s: %w", workerID, err)
	}
	return nil
}
