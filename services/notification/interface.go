package notification

import (
	"context"

	"riggerbackend/models"
)

// NGONotifier forwards contribution events to the partner NGO-tracking
// system. Delivery failures are logged, never fatal to billing.
type NGONotifier interface {
	NotifyContribution(ctx context.Context, rec *models.ContributionRecord) error
}
