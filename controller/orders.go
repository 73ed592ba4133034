package controller

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"backoffice/api"
	"backoffice/export"
	"backoffice/models"
)

// OrdersController owns the orders page: the order list, the aggregate
// stats block and the search/status/date-range filters. Totals are
// shown exactly as the server sent them; the console never recomputes a
// total from the line items.
type OrdersController struct {
	base
	api *api.API

	orders []models.Order
	stats  models.OrderStats

	searchTerm   string
	statusFilter string
	dateStart    time.Time
	dateEnd      time.Time
	expandedID   string
}

// NewOrders builds the controller; call Load before reading state.
func NewOrders(a *api.API, n Notifier) *OrdersController {
	return &OrdersController{
		base:         newBase(n),
		api:          a,
		statusFilter: "All",
	}
}

// Load fetches the order history plus its aggregate block.
func (c *OrdersController) Load() error {
	var (
		orders []models.Order
		stats  models.OrderStats
	)
	return c.load(func() {
		c.orders = orders
		c.stats = stats
	}, func(ctx context.Context) error {
		var err error
		orders, stats, err = c.api.GetOrderHistory(ctx)
		return err
	})
}

// Retry re-enters Loading after an Errored load.
func (c *OrdersController) Retry() error {
	return c.Load()
}

// SetSearch filters by email or phone substring, case-insensitively.
func (c *OrdersController) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchTerm = term
}

// SetStatusFilter sets the status filter; "All" passes everything.
func (c *OrdersController) SetStatusFilter(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statusFilter = status
}

// SetDateRange restricts the view to orders created between start and
// end inclusive. Zero times clear the bound.
func (c *OrdersController) SetDateRange(start, end time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dateStart = start
	c.dateEnd = end
}

// ToggleDetails expands an order row, or collapses it when already
// expanded.
func (c *OrdersController) ToggleDetails(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expandedID == id {
		c.expandedID = ""
	} else {
		c.expandedID = id
	}
}

// ExpandedID returns the currently expanded row, or "".
func (c *OrdersController) ExpandedID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expandedID
}

// Stats returns the server's aggregate block for the stat cards.
func (c *OrdersController) Stats() models.OrderStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Visible returns the filtered view of the order list.
func (c *OrdersController) Visible() []models.Order {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := make([]models.Order, 0, len(c.orders))
	for _, order := range c.orders {
		if !matchesSearch(c.searchTerm, order.Email, order.Phone) {
			continue
		}
		if c.statusFilter != "All" && string(order.Status) != c.statusFilter {
			continue
		}
		if !c.dateStart.IsZero() && order.CreatedAt.Before(c.dateStart) {
			continue
		}
		if !c.dateEnd.IsZero() && order.CreatedAt.After(c.dateEnd) {
			continue
		}
		visible = append(visible, order)
	}
	return visible
}

// UpdateStatus sets an order's status server-side, then replaces the
// entry by id with the server's canonical order.
func (c *OrdersController) UpdateStatus(id string, status models.OrderStatus) error {
	switch status {
	case models.OrderPending, models.OrderProcessing, models.OrderCompleted, models.OrderCancelled:
	default:
		return &models.ValidationError{Field: "status", Message: "Invalid order status"}
	}
	var updated models.Order
	return c.runMutation(
		"Order status updated successfully!",
		"Failed to update order status. Please try again.",
		func(ctx context.Context) error {
			var err error
			updated, err = c.api.UpdateOrderStatus(ctx, id, status)
			return err
		},
		func() {
			for i, order := range c.orders {
				if order.ID == id {
					if updated.ID == "" {
						order.Status = status
						updated = order
					}
					c.orders[i] = updated
				}
			}
		},
		nil,
	)
}

// Cancel marks an order cancelled.
func (c *OrdersController) Cancel(id string) error {
	return c.UpdateStatus(id, models.OrderCancelled)
}

// ExportCSV writes the currently filtered view as CSV.
func (c *OrdersController) ExportCSV(w io.Writer) error {
	visible := c.Visible()
	header := []string{"Order ID", "Email", "Phone", "Items", "Total", "Status", "Created At"}
	rows := make([][]string, 0, len(visible))
	for _, order := range visible {
		lines := make([]string, 0, len(order.Items))
		for _, item := range order.Items {
			lines = append(lines, item.ProductName+" x"+strconv.Itoa(item.Quantity))
		}
		rows = append(rows, []string{
			order.OrderID,
			order.Email,
			order.Phone,
			strings.Join(lines, "; "),
			order.Total.String(),
			string(order.Status),
			order.CreatedAt.Format(time.RFC3339),
		})
	}
	return export.WriteCSV(w, header, rows)
}
