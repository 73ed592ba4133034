package devserver

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"backoffice/models"
)

func (s *Server) handleListOrders(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var resp models.OrdersResponse
	resp.Data.Orders = append([]models.Order{}, s.orders...)
	resp.Data.Pagination.TotalOrders = len(s.orders)
	for _, o := range s.orders {
		switch o.Status {
		case models.OrderPending:
			resp.Data.Pagination.PendingOrders++
		case models.OrderProcessing:
			resp.Data.Pagination.ProcessingOrders++
		case models.OrderCompleted:
			resp.Data.Pagination.CompletedOrders++
		case models.OrderCancelled:
			resp.Data.Pagination.CancelledOrders++
		}
	}
	return c.JSON(resp)
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleUpdateOrderStatus(c *fiber.Ctx) error {
	id := c.Params("orderId")
	var req orderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	switch models.OrderStatus(req.Status) {
	case models.OrderPending, models.OrderProcessing, models.OrderCompleted, models.OrderCancelled:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  map[string][]string{"status": {"Unknown order status"}},
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.orders {
		if o.ID != id {
			continue
		}
		o.Status = models.OrderStatus(req.Status)
		o.UpdatedAt = time.Now()
		s.orders[i] = o
		return c.JSON(o)
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "Order not found",
	})
}

// periodStart is the cutoff for the statistics window; orders created
// before it are excluded.
func periodStart(period string, now time.Time) time.Time {
	switch period {
	case "month":
		return now.AddDate(0, -1, 0)
	case "year":
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -1)
	}
}

func (s *Server) handleOrderStatistics(c *fiber.Ctx) error {
	period := c.Query("period", "day")
	cutoff := periodStart(period, time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	data := models.DashboardData{
		SalesByDay: []models.SalesByDay{},
		TopItems:   []models.TopItem{},
	}
	byDay := map[string]decimal.Decimal{}
	byItem := map[string]int{}
	for _, o := range s.orders {
		if o.CreatedAt.Before(cutoff) || o.Status == models.OrderCancelled {
			continue
		}
		data.TotalOrders++
		data.DailyRevenue = data.DailyRevenue.Add(o.Total)
		day := o.CreatedAt.Weekday().String()[:3]
		byDay[day] = byDay[day].Add(o.Total)
		for _, item := range o.Items {
			byItem[item.ProductName] += item.Quantity
		}
	}
	if data.TotalOrders > 0 {
		data.AverageOrderValue = data.DailyRevenue.DivRound(decimal.NewFromInt(int64(data.TotalOrders)), 2)
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		key := day.String()[:3]
		if total, ok := byDay[key]; ok {
			data.SalesByDay = append(data.SalesByDay, models.SalesByDay{Day: key, TotalSales: total})
		}
	}
	for name, count := range byItem {
		data.TopItems = append(data.TopItems, models.TopItem{Name: name, TotalOrdered: count})
	}

	return c.JSON(data)
}

func (s *Server) handleRefreshDashboard(c *fiber.Ctx) error {
	// Aggregates are computed on read, so a refresh has nothing to
	// recompute here.
	return c.JSON(fiber.Map{"message": "Dashboard refreshed"})
}
