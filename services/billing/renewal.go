package billing

import (
	"context"
	"errors"

	billingRepo "riggerbackend/database/repository/billing"
	"riggerbackend/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ProcessSubscriptionRenewal charges a due subscription and advances its
// billing period by the plan interval. A processor failure moves the
// subscription to past_due; retry scheduling is the sweep worker's
// concern, not this use case's.
func (s *DefaultBillingService) ProcessSubscriptionRenewal(ctx context.Context, subscriptionID string) RenewalResult {
	sub, err := s.Billing.GetSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, billingRepo.ErrSubscriptionNotFound) {
			return RenewalResult{Result: fail(NewError(CodeNotFound, "subscription not found"))}
		}
		s.Logger.Error("subscription lookup failed", zap.String("subscription_id", subscriptionID), zap.Error(err))
		return RenewalResult{Result: fail(err)}
	}

	now := s.now()
	if sub.Status != models.SubscriptionActive {
		return RenewalResult{Result: fail(NewError(CodeInvalidStateTransition, "subscription is not active"))}
	}
	if now.Before(sub.CurrentPeriodEnd) {
		return RenewalResult{Result: fail(NewError(CodeNotDue, "subscription is not due for renewal"))}
	}

	gross := decimal.NewFromFloat(sub.Amount)
	fees, err := ComputeFees(gross, models.KindSubscription)
	if err != nil {
		return RenewalResult{Result: fail(err)}
	}

	chargeCtx, cancel := context.WithTimeout(ctx, s.processorTimeout())
	defer cancel()
	chargeID, err := s.Processor.CreateCharge(chargeCtx, sub.Amount, sub.Currency, map[string]string{
		"subscription_id": sub.ID,
		"plan":            string(sub.Plan),
	})
	if err != nil {
		s.Logger.Warn("renewal charge failed",
			zap.String("subscription_id", sub.ID), zap.Error(err))
		updateDoc := bson.M{
			"status":              models.SubscriptionPastDue,
			"last_failure_reason": "payment processor charge failed",
		}
		if updErr := s.Billing.UpdateSubscriptionWithDocument(ctx, sub.ID, updateDoc); updErr != nil {
			s.Logger.Error("failed to mark subscription past_due",
				zap.String("subscription_id", sub.ID), zap.Error(updErr))
		}
		sub.Status = models.SubscriptionPastDue
		s.Stats.RecordFailure("subscription_renewal", string(CodeProcessorFailure))
		return RenewalResult{
			Result:       fail(NewError(CodeProcessorFailure, "payment processor declined the renewal charge")),
			Subscription: sub,
		}
	}

	// Advance the period by a fixed day offset from the previous end.
	newStart := sub.CurrentPeriodEnd
	newEnd := newStart.Add(sub.Interval.Duration())

	txn := s.buildTransaction(models.KindSubscription, gross, fees)
	txn.Status = models.StatusCompleted
	txn.PayerID = sub.UserID
	txn.SubscriptionID = sub.ID
	txn.ProcessorChargeID = chargeID
	if sub.Currency != "" {
		txn.Currency = sub.Currency
	}

	invoice := &models.Invoice{
		UserID:         sub.UserID,
		SubscriptionID: sub.ID,
		Lines: []models.InvoiceLine{{
			Description: string(sub.Plan) + " plan renewal",
			Quantity:    1,
			UnitPrice:   sub.Amount,
			Total:       sub.Amount,
		}},
		Subtotal: sub.Amount,
		Total:    sub.Amount,
		Currency: txn.Currency,
		Status:   "open",
		DueDate:  now,
	}
	if err := s.Billing.CreateInvoice(ctx, invoice); err != nil {
		s.Logger.Error("invoice creation failed", zap.String("subscription_id", sub.ID), zap.Error(err))
	} else {
		txn.InvoiceID = invoice.ID
	}

	if err := s.persistWithContribution(ctx, txn); err != nil {
		s.Logger.Error("renewal transaction persist failed",
			zap.String("subscription_id", sub.ID), zap.Error(err))
		return RenewalResult{Result: fail(err), Subscription: sub}
	}
	if invoice.ID != "" {
		if err := s.Billing.MarkInvoicePaid(ctx, invoice.ID, txn.ID); err != nil {
			s.Logger.Error("invoice settlement failed", zap.String("invoice_id", invoice.ID), zap.Error(err))
		}
	}

	updateDoc := bson.M{
		"current_period_start": newStart,
		"current_period_end":   newEnd,
		"usage":                models.UsageCounters{},
		"last_failure_reason":  "",
	}
	if err := s.Billing.UpdateSubscriptionWithDocument(ctx, sub.ID, updateDoc); err != nil {
		s.Logger.Error("subscription period advance failed",
			zap.String("subscription_id", sub.ID), zap.Error(err))
		return RenewalResult{Result: fail(err), Subscription: sub, Transaction: txn}
	}
	sub.CurrentPeriodStart = newStart
	sub.CurrentPeriodEnd = newEnd
	sub.Usage = models.UsageCounters{}
	sub.LastFailureReason = ""

	s.finishContribution(ctx, txn)
	s.Stats.RecordTransaction(models.KindSubscription, txn.Amount)
	s.Logger.Info("subscription renewed",
		zap.String("subscription_id", sub.ID),
		zap.String("transaction_id", txn.ID),
		zap.Time("period_end", newEnd),
	)

	return RenewalResult{Result: ok(), Subscription: sub, Transaction: txn}
}
