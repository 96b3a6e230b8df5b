package transparency

import (
	"context"
	"encoding/json"
	"fmt"

	"riggerbackend/models"
	"riggerbackend/utils"

	"go.uber.org/zap"
)

// GeneratePublicDashboard builds the unauthenticated view of the yearly
// report. The payload is cached in Redis since it changes slowly and is
// served without auth.
func (s *DefaultService) GeneratePublicDashboard(ctx context.Context, year int) (*models.PublicDashboard, error) {
	cacheKey := fmt.Sprintf("%s%d", utils.DashboardCachePrefix, year)
	cacheClient := utils.GetCacheClient()

	if cached, err := cacheClient.Get(ctx, cacheKey).Result(); err == nil {
		var dashboard models.PublicDashboard
		if err := json.Unmarshal([]byte(cached), &dashboard); err == nil {
			return &dashboard, nil
		}
		s.Logger.Warn("discarding malformed cached dashboard", zap.String("key", cacheKey))
	}

	report, err := s.GenerateReport(ctx, year)
	if err != nil {
		return nil, err
	}

	// Strip internal fields: annotations, published-record ids, raw
	// transaction counts.
	dashboard := &models.PublicDashboard{
		Year:               year,
		TotalContributions: report.Summary.TotalContributions,
		ContributionRate:   report.Summary.ContributionRate,
		MonthlyBreakdown:   report.MonthlyBreakdown,
		QuarterlyBreakdown: report.QuarterlyBreakdown,
		ImpactAllocation:   report.ImpactAllocation,
		ImpactMetrics:      report.ImpactMetrics,
		GeneratedAt:        report.GeneratedAt,
	}

	if payload, err := json.Marshal(dashboard); err == nil {
		if err := cacheClient.Set(ctx, cacheKey, payload, utils.DashboardCacheTTL).Err(); err != nil {
			s.Logger.Warn("failed to cache dashboard", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return dashboard, nil
}
