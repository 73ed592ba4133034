package api

import (
	"context"
	"log"
	"net/url"

	"backoffice/models"
)

// GetOrderHistory fetches all orders plus the aggregate block carried
// alongside the pagination data.
func (a *API) GetOrderHistory(ctx context.Context) ([]models.Order, models.OrderStats, error) {
	var resp models.OrdersResponse
	if err := a.http.Get(ctx, "/order", nil, &resp); err != nil {
		log.Printf("Error fetching order history: %v", err)
		return nil, models.OrderStats{}, err
	}
	return resp.Data.Orders, resp.Data.Pagination, nil
}

// UpdateOrderStatus sets an order's status and returns the canonical
// order the server now holds.
func (a *API) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	var updated models.Order
	body := map[string]string{"status": string(status)}
	if err := a.http.Patch(ctx, "/order/"+id, body, &updated); err != nil {
		log.Printf("Error updating order %s status: %v", id, err)
		return models.Order{}, err
	}
	return updated, nil
}

// GetOrderStatistics fetches the dashboard aggregates for a period
// (day, month or year).
func (a *API) GetOrderStatistics(ctx context.Context, period string) (models.DashboardData, error) {
	query := url.Values{}
	if period != "" {
		query.Set("period", period)
	}
	var data models.DashboardData
	if err := a.http.Get(ctx, "/order/statistics", query, &data); err != nil {
		log.Printf("Error fetching order statistics: %v", err)
		return models.DashboardData{}, err
	}
	return data, nil
}

// RefreshDashboard asks the server to recompute its dashboard
// aggregates.
func (a *API) RefreshDashboard(ctx context.Context) error {
	if err := a.http.Post(ctx, "/order/refresh", nil, nil); err != nil {
		log.Printf("Error refreshing dashboard: %v", err)
		return err
	}
	return nil
}
