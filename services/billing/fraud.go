package billing

import "riggerbackend/models"

// fraudReviewThreshold is the score above which a transaction is logged
// for manual review. The heuristic is intentionally crude; it never
// blocks a payment.
const fraudReviewThreshold = 0.7

// fraudScore is a stub heuristic over amount and kind.
func fraudScore(txn *models.Transaction) float64 {
	score := 0.0
	switch {
	case txn.Amount >= 50000:
		score += 0.6
	case txn.Amount >= 10000:
		score += 0.3
	}
	if txn.Kind == models.KindRecruitmentFee && txn.Amount >= 5000 {
		score += 0.2
	}
	if txn.PayerID == txn.PayeeID && txn.PayeeID != "" {
		score += 0.5
	}
	return score
}
