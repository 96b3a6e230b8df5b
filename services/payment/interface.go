package payment

import "context"

// Processor is the external card-network capability the billing layer
// consumes. Implementations may fail and may be slow; callers bound
// every call with a context timeout.
type Processor interface {
	// CreateCharge initiates a charge and returns the processor's charge ID.
	CreateCharge(ctx context.Context, amount float64, currency string, metadata map[string]string) (string, error)
	// CaptureCharge captures a previously created charge.
	CaptureCharge(ctx context.Context, chargeID string, amount float64) error
	// Refund reverses a captured charge, fully or partially.
	Refund(ctx context.Context, chargeID string, amount float64, reason string) error
}
