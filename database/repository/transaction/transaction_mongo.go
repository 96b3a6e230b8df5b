package transactionRepo

import (
	"context"
	"fmt"
	"time"

	"riggerbackend/database"
	"riggerbackend/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoTransactionRepo struct {
	coll        *mongo.Collection
	contribColl *mongo.Collection
}

// NewMongoTransactionRepo returns a TransactionRepository backed by MongoDB.
func NewMongoTransactionRepo() TransactionRepository {
	db := database.DB()
	repo := &mongoTransactionRepo{
		coll:        db.Collection("transactions"),
		contribColl: db.Collection("contributions"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// allowedTransitions maps each non-terminal status to its legal successors.
var allowedTransitions = map[models.TransactionStatus][]models.TransactionStatus{
	models.StatusPending: {
		models.StatusProcessing, models.StatusCompleted,
		models.StatusFailed, models.StatusCancelled,
	},
	models.StatusProcessing: {
		models.StatusCompleted, models.StatusFailed, models.StatusCancelled,
	},
}

func transitionAllowed(from, to models.TransactionStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Create inserts a new transaction and assigns its identity.
func (r *mongoTransactionRepo) Create(ctx context.Context, txn *models.Transaction) error {
	if txn.Amount <= 0 {
		return ErrInvalidAmount
	}
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.Status == "" {
		txn.Status = models.StatusPending
	}
	txn.CreatedAt = time.Now()
	txn.UpdatedAt = txn.CreatedAt

	if _, err := r.coll.InsertOne(ctx, txn); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// CreateWithContribution commits the transaction and its linked
// contribution record together. The contribution side is an upsert keyed
// by transaction ID so a retried call stays idempotent.
func (r *mongoTransactionRepo) CreateWithContribution(ctx context.Context, txn *models.Transaction, rec *models.ContributionRecord) error {
	if txn.Amount <= 0 {
		return ErrInvalidAmount
	}
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.Status == "" {
		txn.Status = models.StatusPending
	}
	now := time.Now()
	txn.CreatedAt = now
	txn.UpdatedAt = now

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	rec.TransactionID = txn.ID
	rec.CreatedAt = now

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sc, txn); err != nil {
			return fmt.Errorf("insert transaction failed: %w", err)
		}
		filter := bson.M{"transaction_id": rec.TransactionID}
		update := bson.M{"$setOnInsert": rec}
		opts := mongoUpsert()
		if _, err := r.contribColl.UpdateOne(sc, filter, update, opts); err != nil {
			return fmt.Errorf("upsert contribution failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

// GetByID returns a transaction by its ID.
func (r *mongoTransactionRepo) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&txn)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// UpdateStatus applies a lifecycle transition. The current status is part
// of the update filter, so a concurrent transition cannot slip through.
func (r *mongoTransactionRepo) UpdateStatus(ctx context.Context, id string, status models.TransactionStatus) (*models.Transaction, error) {
	txn, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(txn.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, txn.Status, status)
	}

	filter := bson.M{"id": id, "status": txn.Status}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction status: %w", err)
	}
	if res.MatchedCount == 0 {
		// Lost a race to another transition; report it as illegal.
		return nil, fmt.Errorf("%w: transaction %s changed concurrently", ErrInvalidTransition, id)
	}
	txn.Status = status
	return txn, nil
}

// CreateReversal marks the original transaction refunded and inserts a
// linked reversing transaction, both inside one store transaction.
func (r *mongoTransactionRepo) CreateReversal(ctx context.Context, originalID string, kind models.TransactionKind, reason string) (*models.Transaction, error) {
	orig, err := r.GetByID(ctx, originalID)
	if err != nil {
		return nil, err
	}
	if orig.Status != models.StatusCompleted {
		return nil, fmt.Errorf("%w: only completed transactions can be reversed", ErrInvalidTransition)
	}
	if kind != models.KindRefund && kind != models.KindChargeback {
		return nil, fmt.Errorf("%w: reversal kind must be refund or chargeback", ErrInvalidTransition)
	}

	now := time.Now()
	reversal := &models.Transaction{
		ID:             uuid.New().String(),
		Kind:           kind,
		Status:         models.StatusCompleted,
		Amount:         orig.Amount,
		Currency:       orig.Currency,
		PayerID:        orig.PayeeID,
		PayeeID:        orig.PayerID,
		JobID:          orig.JobID,
		SubscriptionID: orig.SubscriptionID,
		ReversalOf:     orig.ID,
		ReversalReason: reason,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		filter := bson.M{"id": orig.ID, "status": models.StatusCompleted}
		update := bson.M{"$set": bson.M{"status": models.StatusRefunded, "updated_at": now}}
		res, err := r.coll.UpdateOne(sc, filter, update)
		if err == nil && res.MatchedCount == 0 {
			err = fmt.Errorf("%w: transaction %s changed concurrently", ErrInvalidTransition, orig.ID)
		}
		if err == nil {
			_, err = r.coll.InsertOne(sc, reversal)
		}
		if err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return nil, err
	}
	return reversal, nil
}
