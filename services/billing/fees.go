package billing

import (
	"riggerbackend/models"

	"github.com/shopspring/decimal"
)

// ContributionRate is the fixed share of gross earmarked for the NGO
// contribution, applied uniformly to every transaction kind.
var ContributionRate = decimal.NewFromFloat(0.005)

// defaultPlatformFeeRate applies to unrecognized transaction kinds.
var defaultPlatformFeeRate = decimal.NewFromFloat(0.03)

// platformFeeRates maps transaction kinds to their platform fee share.
var platformFeeRates = map[models.TransactionKind]decimal.Decimal{
	models.KindJobPayment:     decimal.NewFromFloat(0.03),
	models.KindRecruitmentFee: decimal.NewFromFloat(0.05),
	models.KindSubscription:   decimal.Zero,
	models.KindPlatformFee:    decimal.Zero,
}

// FeeBreakdown is the deterministic split of a gross amount. Values stay
// in decimal form; callers round only at the persistence or display
// boundary so aggregation chains never accumulate float error.
type FeeBreakdown struct {
	PlatformFee        decimal.Decimal
	Contribution       decimal.Decimal
	TotalFees          decimal.Decimal
	NetAmount          decimal.Decimal
	PlatformFeePercent decimal.Decimal
}

// PlatformFeeRate returns the fee rate for a transaction kind.
func PlatformFeeRate(kind models.TransactionKind) decimal.Decimal {
	if rate, ok := platformFeeRates[kind]; ok {
		return rate
	}
	return defaultPlatformFeeRate
}

// ComputeFees splits a gross amount into platform fee, NGO contribution
// and net amount. Pure and deterministic; no I/O.
func ComputeFees(amount decimal.Decimal, kind models.TransactionKind) (FeeBreakdown, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return FeeBreakdown{}, NewError(CodeInvalidAmount, "amount must be positive")
	}

	rate := PlatformFeeRate(kind)
	platformFee := amount.Mul(rate)
	contribution := amount.Mul(ContributionRate)
	totalFees := platformFee.Add(contribution)

	return FeeBreakdown{
		PlatformFee:        platformFee,
		Contribution:       contribution,
		TotalFees:          totalFees,
		NetAmount:          amount.Sub(totalFees),
		PlatformFeePercent: rate,
	}, nil
}

// round2 converts a decimal to a 2dp float for persistence.
func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
