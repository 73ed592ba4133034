package controller

import (
	"context"

	"backoffice/api"
	"backoffice/models"
)

// DashboardController owns the dashboard page: period-scoped revenue
// and order aggregates. Unlike the other pages it degrades to an
// explicit retry affordance on error rather than blanking the console.
type DashboardController struct {
	base
	api *api.API

	period string
	data   models.DashboardData
}

// NewDashboard builds the controller; call Load before reading state.
func NewDashboard(a *api.API, n Notifier) *DashboardController {
	return &DashboardController{base: newBase(n), api: a, period: "day"}
}

// Load fetches the aggregates for the current period.
func (c *DashboardController) Load() error {
	var data models.DashboardData
	return c.load(func() {
		c.data = data
	}, func(ctx context.Context) error {
		var err error
		data, err = c.api.GetOrderStatistics(ctx, c.period)
		return err
	})
}

// Retry re-enters Loading after an Errored load.
func (c *DashboardController) Retry() error {
	return c.Load()
}

// SetPeriod switches between day, month and year views and reloads.
func (c *DashboardController) SetPeriod(period string) error {
	switch period {
	case "day", "month", "year":
	default:
		return &models.ValidationError{Field: "period", Message: "Invalid period"}
	}
	c.mu.Lock()
	c.period = period
	c.mu.Unlock()
	return c.Load()
}

// Period returns the selected period.
func (c *DashboardController) Period() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.period
}

// Data returns the loaded aggregates.
func (c *DashboardController) Data() models.DashboardData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

// Refresh asks the server to recompute its aggregates, then refetches.
// A failed recompute is logged to the notifier but does not blank the
// already loaded data.
func (c *DashboardController) Refresh() error {
	if err := c.api.RefreshDashboard(c.lifetime); err != nil {
		if c.lifetime.Err() == nil {
			c.notify.Error("Failed to refresh dashboard.")
		}
		return err
	}
	return c.Load()
}
