package billing

import "context"

// Service exposes the billing use cases to the API layer. Each use case
// returns a success/failure result instead of propagating errors, so
// callers map outcomes to HTTP statuses without exception handling.
type Service interface {
	// ProcessJobCompletionPayment settles a completed job: fee split,
	// transaction + contribution records, job bookkeeping and the
	// worker's earnings rollup.
	ProcessJobCompletionPayment(ctx context.Context, jobID string) JobPaymentResult
	// ProcessSubscriptionRenewal charges a due subscription and advances
	// its billing period.
	ProcessSubscriptionRenewal(ctx context.Context, subscriptionID string) RenewalResult
	// ProcessRecruitmentFee charges an employer the platform's
	// recruitment fee for a job. The fee flows to the platform; there is
	// no payee.
	ProcessRecruitmentFee(ctx context.Context, employerID, jobID string, amount float64, paymentMethodID string) RecruitmentFeeResult
}
