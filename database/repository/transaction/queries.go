package transactionRepo

import (
	"context"
	"fmt"

	"riggerbackend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func mongoUpsert() *options.UpdateOptions {
	return options.Update().SetUpsert(true)
}

func (f Filter) toBSON() bson.M {
	query := bson.M{}
	if f.Kind != "" {
		query["kind"] = f.Kind
	}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.PayerID != "" {
		query["payer_id"] = f.PayerID
	}
	if f.PayeeID != "" {
		query["payee_id"] = f.PayeeID
	}
	if f.JobID != "" {
		query["job_id"] = f.JobID
	}
	if f.SubscriptionID != "" {
		query["subscription_id"] = f.SubscriptionID
	}
	if f.ContributionTracked != nil {
		query["contribution.tracked"] = *f.ContributionTracked
	}
	if f.From != nil || f.To != nil {
		rng := bson.M{}
		if f.From != nil {
			rng["$gte"] = *f.From
		}
		if f.To != nil {
			rng["$lt"] = *f.To
		}
		query["created_at"] = rng
	}
	return query
}

// Find returns transactions matching the filter, newest first.
func (r *mongoTransactionRepo) Find(ctx context.Context, filter Filter, page Page) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if page.Limit > 0 {
		opts = opts.SetSkip(page.Offset).SetLimit(page.Limit)
	}
	cursor, err := r.coll.Find(ctx, filter.toBSON(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var txns []models.Transaction
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// Count returns the number of matching transactions.
func (r *mongoTransactionRepo) Count(ctx context.Context, filter Filter) (int64, error) {
	return r.coll.CountDocuments(ctx, filter.toBSON())
}

// SumAmounts totals the gross amounts of matching transactions.
func (r *mongoTransactionRepo) SumAmounts(ctx context.Context, filter Filter) (float64, error) {
	return r.sumField(ctx, filter, "$amount")
}

// SumContributions totals the contribution amounts of matching transactions.
func (r *mongoTransactionRepo) SumContributions(ctx context.Context, filter Filter) (float64, error) {
	return r.sumField(ctx, filter, "$contribution.amount")
}

func (r *mongoTransactionRepo) sumField(ctx context.Context, filter Filter, field string) (float64, error) {
	pipeline := []bson.M{
		{"$match": filter.toBSON()},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": field}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
