package notification

import (
	"context"

	"riggerbackend/models"

	"go.uber.org/zap"
)

// LogNGONotifier records contribution notifications in the structured
// log. It stands in until the partner NGO exposes a delivery endpoint.
type LogNGONotifier struct {
	Logger *zap.Logger
}

// NewLogNGONotifier returns a log-backed NGO notifier.
func NewLogNGONotifier(logger *zap.Logger) *LogNGONotifier {
	return &LogNGONotifier{Logger: logger}
}

func (n *LogNGONotifier) NotifyContribution(ctx context.Context, rec *models.ContributionRecord) error {
	n.Logger.Info("contribution tracked",
		zap.String("contribution_id", rec.ID),
		zap.String("transaction_id", rec.TransactionID),
		zap.Float64("amount", rec.Amount),
		zap.Int("year", rec.Period.Year),
		zap.Int("month", rec.Period.Month),
		zap.String("source_kind", string(rec.SourceKind)),
	)
	return nil
}
