package controller

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/models"
)

func seedOrders(t *testing.T) (*OrdersController, *Recorder) {
	t.Helper()
	srv, a := startBackend(t)
	now := time.Now()
	srv.InjectOrders(
		models.Order{
			ID: "o1", OrderID: "ORD-1", Email: "alice@example.com", Phone: "555-0101",
			Items:     []models.OrderItem{{ProductName: "Tea", Quantity: 2, Price: decimal.NewFromFloat(3.50)}},
			Total:     decimal.NewFromFloat(7.00),
			Status:    models.OrderPending,
			CreatedAt: now.Add(-48 * time.Hour), UpdatedAt: now.Add(-48 * time.Hour),
		},
		models.Order{
			ID: "o2", OrderID: "ORD-2", Email: "bob@example.com", Phone: "555-0102",
			Items:     []models.OrderItem{{ProductName: "Pizza", Quantity: 1, Price: decimal.NewFromFloat(11.00)}},
			Total:     decimal.NewFromFloat(11.00),
			Status:    models.OrderCompleted,
			CreatedAt: now.Add(-1 * time.Hour), UpdatedAt: now.Add(-1 * time.Hour),
		},
	)

	rec := &Recorder{}
	ctrl := NewOrders(a, rec)
	t.Cleanup(ctrl.Close)
	require.NoError(t, ctrl.Load())
	return ctrl, rec
}

func TestOrdersLoadCarriesServerStats(t *testing.T) {
	ctrl, _ := seedOrders(t)

	stats := ctrl.Stats()
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 1, stats.PendingOrders)
	assert.Equal(t, 1, stats.CompletedOrders)
	assert.Len(t, ctrl.Visible(), 2)
}

func TestOrdersSearchAndStatusFilter(t *testing.T) {
	ctrl, _ := seedOrders(t)

	ctrl.SetSearch("alice")
	require.Len(t, ctrl.Visible(), 1)
	assert.Equal(t, "ORD-1", ctrl.Visible()[0].OrderID)

	ctrl.SetSearch("555-0102")
	require.Len(t, ctrl.Visible(), 1)
	assert.Equal(t, "ORD-2", ctrl.Visible()[0].OrderID)

	ctrl.SetSearch("")
	ctrl.SetStatusFilter("completed")
	require.Len(t, ctrl.Visible(), 1)
	assert.Equal(t, models.OrderCompleted, ctrl.Visible()[0].Status)

	// Filtering never changes the stat cards.
	assert.Equal(t, 2, ctrl.Stats().TotalOrders)
}

func TestOrdersDateRange(t *testing.T) {
	ctrl, _ := seedOrders(t)

	ctrl.SetDateRange(time.Now().Add(-2*time.Hour), time.Time{})
	require.Len(t, ctrl.Visible(), 1)
	assert.Equal(t, "ORD-2", ctrl.Visible()[0].OrderID)

	ctrl.SetDateRange(time.Time{}, time.Now().Add(-24*time.Hour))
	require.Len(t, ctrl.Visible(), 1)
	assert.Equal(t, "ORD-1", ctrl.Visible()[0].OrderID)
}

func TestUpdateOrderStatus(t *testing.T) {
	ctrl, rec := seedOrders(t)

	require.NoError(t, ctrl.UpdateStatus("o1", models.OrderProcessing))
	assert.Equal(t, []string{"Order status updated successfully!"}, rec.Successes)

	for _, o := range ctrl.Visible() {
		if o.ID == "o1" {
			assert.Equal(t, models.OrderProcessing, o.Status)
		}
	}
}

func TestUpdateOrderStatusRejectsUnknown(t *testing.T) {
	ctrl, rec := seedOrders(t)

	var vErr *models.ValidationError
	err := ctrl.UpdateStatus("o1", models.OrderStatus("shipped"))
	require.ErrorAs(t, err, &vErr)

	// Rejected locally: no request, no toast, no state change.
	assert.Empty(t, rec.Errors)
	for _, o := range ctrl.Visible() {
		if o.ID == "o1" {
			assert.Equal(t, models.OrderPending, o.Status)
		}
	}
}

func TestCancelOrder(t *testing.T) {
	ctrl, _ := seedOrders(t)

	require.NoError(t, ctrl.Cancel("o2"))
	for _, o := range ctrl.Visible() {
		if o.ID == "o2" {
			assert.Equal(t, models.OrderCancelled, o.Status)
		}
	}
}

func TestOrdersExportCSV(t *testing.T) {
	ctrl, _ := seedOrders(t)

	var buf bytes.Buffer
	require.NoError(t, ctrl.ExportCSV(&buf))

	out := buf.String()
	assert.Contains(t, out, "Order ID,Email,Phone,Items,Total,Status,Created At")
	assert.Contains(t, out, "Tea x2")
	assert.Contains(t, out, "11")
}
