package contributionRepo

import (
	"context"
	"fmt"
	"time"

	"riggerbackend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QueryByPeriod returns records for a year, narrowed to a month when
// month is 1-12.
func (r *mongoContributionRepo) QueryByPeriod(ctx context.Context, year, month int) ([]models.ContributionRecord, error) {
	query := bson.M{"period.year": year}
	if month >= 1 && month <= 12 {
		query["period.month"] = month
	}
	return r.query(ctx, query)
}

// QueryByRange returns records created within [start, end).
func (r *mongoContributionRepo) QueryByRange(ctx context.Context, start, end time.Time) ([]models.ContributionRecord, error) {
	return r.query(ctx, bson.M{"created_at": bson.M{"$gte": start, "$lt": end}})
}

func (r *mongoContributionRepo) query(ctx context.Context, query bson.M) ([]models.ContributionRecord, error) {
	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query contribution records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.ContributionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SumByRange totals amount and count of records created within [start, end).
func (r *mongoContributionRepo) SumByRange(ctx context.Context, start, end time.Time) (float64, int64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"created_at": bson.M{"$gte": start, "$lt": end}}},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
			"count": bson.M{"$sum": 1},
		}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate contribution records: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
		Count int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].Total, results[0].Count, nil
}
