package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
	"go.uber.org/zap"
)

// StripeProcessor implements Processor against the Stripe API. The
// global stripe.Key is set at startup from config.
type StripeProcessor struct {
	logger *zap.Logger
}

// NewStripeProcessor returns a Stripe-backed payment processor.
func NewStripeProcessor(logger *zap.Logger) *StripeProcessor {
	return &StripeProcessor{logger: logger}
}

// toCents converts a currency amount to the minor unit Stripe expects.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateCharge creates and confirms a PaymentIntent.
func (p *StripeProcessor) CreateCharge(ctx context.Context, amount float64, currency string, metadata map[string]string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toCents(amount)),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		p.logger.Warn("stripe charge failed", zap.Error(err))
		return "", fmt.Errorf("stripe charge failed: %w", err)
	}
	p.logger.Info("stripe charge created", zap.String("payment_intent", pi.ID))
	return pi.ID, nil
}

// CaptureCharge captures a previously authorized PaymentIntent.
func (p *StripeProcessor) CaptureCharge(ctx context.Context, chargeID string, amount float64) error {
	params := &stripe.PaymentIntentCaptureParams{
		AmountToCapture: stripe.Int64(toCents(amount)),
	}
	params.Context = ctx
	if _, err := paymentintent.Capture(chargeID, params); err != nil {
		p.logger.Warn("stripe capture failed", zap.String("payment_intent", chargeID), zap.Error(err))
		return fmt.Errorf("stripe capture failed: %w", err)
	}
	return nil
}

// Refund reverses a captured charge.
func (p *StripeProcessor) Refund(ctx context.Context, chargeID string, amount float64, reason string) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(chargeID),
		Amount:        stripe.Int64(toCents(amount)),
	}
	if reason != "" {
		params.AddMetadata("reason", reason)
	}
	params.Context = ctx
	if _, err := refund.New(params); err != nil {
		p.logger.Warn("stripe refund failed", zap.String("payment_intent", chargeID), zap.Error(err))
		return fmt.Errorf("stripe refund failed: %w", err)
	}
	return nil
}
