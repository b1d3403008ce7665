package eduapi

import (
	"context"
	"net/url"

	"github.com/eduhub/eduhub-go/internal/domain/model"
)

const (
	pathDashboard = "/analytics/dashboard/"
	pathProgress  = "/analytics/progress/"
	pathUserStats = "/analytics/user-stats/"
)

// DashboardStats fetches the current user's dashboard summary.
func (c *Client) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	var stats model.DashboardStats
	err := c.get(ctx, pathDashboard, nil, &stats, "Could not load your dashboard.")
	if err != nil {
		return model.DashboardStats{}, err
	}
	return stats, nil
}

// ProgressReport fetches a time-bucketed learning progress series. An empty
// timeframe leaves the bucketing to the server default.
func (c *Client) ProgressReport(ctx context.Context, timeframe string) (model.ProgressReport, error) {
	var query url.Values
	if timeframe != "" {
		query = url.Values{"timeframe": []string{timeframe}}
	}
	var report model.ProgressReport
	err := c.get(ctx, pathProgress, query, &report, "Could not load your progress.")
	if err != nil {
		return model.ProgressReport{}, err
	}
	return report, nil
}

// UserStats fetches lifetime learning statistics.
func (c *Client) UserStats(ctx context.Context) (model.UserStats, error) {
	var stats model.UserStats
	err := c.get(ctx, pathUserStats, nil, &stats, "Could not load your statistics.")
	if err != nil {
		return model.UserStats{}, err
	}
	return stats, nil
}
