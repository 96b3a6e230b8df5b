package billingRepo

import (
	"context"
	"errors"
	"time"

	"riggerbackend/models"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrSubscriptionNotFound is returned when no subscription matches.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrInvoiceNotFound is returned when no invoice matches.
	ErrInvoiceNotFound = errors.New("invoice not found")
	// ErrPaymentMethodNotFound is returned when no payment method matches.
	ErrPaymentMethodNotFound = errors.New("payment method not found")
)

// BillingRepository defines data access for subscriptions, invoices and
// payment methods.
type BillingRepository interface {
	CreateSubscription(ctx context.Context, sub *models.Subscription) error
	GetSubscriptionByID(ctx context.Context, id string) (*models.Subscription, error)
	// UpdateSubscriptionWithDocument patches a subscription document.
	UpdateSubscriptionWithDocument(ctx context.Context, id string, updateDoc bson.M) error
	// FindDueSubscriptions returns active subscriptions whose current
	// period ended at or before now.
	FindDueSubscriptions(ctx context.Context, now time.Time, limit int64) ([]models.Subscription, error)

	CreateInvoice(ctx context.Context, inv *models.Invoice) error
	GetInvoiceByID(ctx context.Context, id string) (*models.Invoice, error)
	MarkInvoicePaid(ctx context.Context, id, transactionID string) error

	CreatePaymentMethod(ctx context.Context, pm *models.PaymentMethod) error
	GetPaymentMethodByID(ctx context.Context, id string) (*models.PaymentMethod, error)
}
