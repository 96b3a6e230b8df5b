package billingRepo

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

type mongoBillingRepo struct {
	subsColl     *mongo.Collection
	invoicesColl *mongo.Collection
	methodsColl  *mongo.Collection
}

// NewMongoBillingRepo returns a BillingRepository backed by MongoDB.
func NewMongoBillingRepo() BillingRepository {
	db := database.DB()
	repo := &mongoBillingRepo{
		subsColl:     db.Collection("subscriptions"),
		invoicesColl: db.Collection("invoices"),
		methodsColl:  db.Collection("payment_methods"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *mongoBillingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.subsColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "current_period_end", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create subscription indexes: %w", err)
	}
	if _, err := r.invoicesColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create invoice indexes: %w", err)
	}
	if _, err := r.methodsColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create payment method indexes: %w", err)
	}
	return nil
}

// --- Subscriptions ---

func (r *mongoBillingRepo) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	now := time.Now()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	if sub.Status == "" {
		sub.Status = models.SubscriptionActive
	}
	if _, err := r.subsColl.InsertOne(ctx, sub); err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

func (r *mongoBillingRepo) GetSubscriptionByID(ctx context.Context, id string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.subsColl.FindOne(ctx, bson.M{"id": id}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscription %s: %w", id, err)
	}
	return &sub, nil
}

func (r *mongoBillingRepo) UpdateSubscriptionWithDocument(ctx context.Context, id string, updateDoc bson.M) error {
	updateDoc["updated_at"] = time.Now()
	res, err := r.subsColl.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update subscription %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *mongoBillingRepo) FindDueSubscriptions(ctx context.Context, now time.Time, limit int64) ([]models.Subscription, error) {
	query := bson.M{
		"status":             models.SubscriptionActive,
		"current_period_end": bson.M{"$lte": now},
	}
	opts := options.Find().SetSort(bson.M{"current_period_end": 1})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := r.subsColl.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query due subscriptions: %w", err)
	}
	defer cursor.Close(ctx)

	var subs []models.Subscription
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// --- Invoices ---

func (r *mongoBillingRepo) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if _, err := r.invoicesColl.InsertOne(ctx, inv); err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

func (r *mongoBillingRepo) GetInvoiceByID(ctx context.Context, id string) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.invoicesColl.FindOne(ctx, bson.M{"id": id}).Decode(&inv)
	if err == mongo.ErrNoDocuments {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoice %s: %w", id, err)
	}
	return &inv, nil
}

func (r *mongoBillingRepo) MarkInvoicePaid(ctx context.Context, id, transactionID string) error {
	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":         "paid",
		"transaction_id": transactionID,
		"paid_at":        now,
		"updated_at":     now,
	}}
	res, err := r.invoicesColl.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to mark invoice %s paid: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

// --- Payment methods ---

func (r *mongoBillingRepo) CreatePaymentMethod(ctx context.Context, pm *models.PaymentMethod) error {
	if pm.ID == "" {
		pm.ID = uuid.New().String()
	}
	pm.CreatedAt = time.Now()
	if _, err := r.methodsColl.InsertOne(ctx, pm); err != nil {
		return fmt.Errorf("failed to create payment method: %w", err)
	}
	return nil
}

func (r *mongoBillingRepo) GetPaymentMethodByID(ctx context.Context, id string) (*models.PaymentMethod, error) {
	var pm models.PaymentMethod
	err := r.methodsColl.FindOne(ctx, bson.M{"id": id}).Decode(&pm)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPaymentMethodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment method %s: %w", id, err)
	}
	return &pm, nil
}
