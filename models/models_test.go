package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEffectiveStockInactiveReadsOutOfStock(t *testing.T) {
	item := MenuItem{Status: StatusInactive, Stock: InStock}
	assert.Equal(t, OutOfStock, EffectiveStock(item))

	// The stored value is untouched; only the derived reading changes.
	assert.Equal(t, InStock, item.Stock)

	item.Status = StatusActive
	assert.Equal(t, InStock, EffectiveStock(item))
}

func TestEffectiveStockActivePassesThrough(t *testing.T) {
	for _, stock := range []StockState{InStock, LowStock, OutOfStock} {
		item := MenuItem{Status: StatusActive, Stock: stock}
		assert.Equal(t, stock, EffectiveStock(item))
	}
}

func TestRefDecodesBothShapes(t *testing.T) {
	var fromID Ref
	err := json.Unmarshal([]byte(`"cat-1"`), &fromID)
	assert.NoError(t, err)
	assert.Equal(t, Ref{ID: "cat-1"}, fromID)

	var fromObject Ref
	err = json.Unmarshal([]byte(`{"_id":"cat-1","name":"Drinks"}`), &fromObject)
	assert.NoError(t, err)
	assert.Equal(t, Ref{ID: "cat-1", Name: "Drinks"}, fromObject)
}

func TestRefEncodesAsID(t *testing.T) {
	data, err := json.Marshal(Ref{ID: "cat-1", Name: "Drinks"})
	assert.NoError(t, err)
	assert.Equal(t, `"cat-1"`, string(data))
}

func TestImageRefDecodesBothShapes(t *testing.T) {
	var fromString ImageRef
	err := json.Unmarshal([]byte(`"/uploads/a.jpg"`), &fromString)
	assert.NoError(t, err)
	assert.Equal(t, "/uploads/a.jpg", fromString.URL)

	var fromObject ImageRef
	err = json.Unmarshal([]byte(`{"url":"/uploads/a.jpg","id":"img-1"}`), &fromObject)
	assert.NoError(t, err)
	assert.Equal(t, "/uploads/a.jpg", fromObject.URL)
	assert.Equal(t, "img-1", fromObject.ID)
}

func TestOrdersResponseEnvelope(t *testing.T) {
	payload := `{"data":{"orders":[{"_id":"o1","orderId":"ORD-1","email":"a@b.c",
		"items":[{"productName":"Tea","quantity":2,"price":"3.50"}],
		"total":"7.00","status":"pending","createdAt":"2026-08-30T10:00:00Z",
		"updatedAt":"2026-08-30T10:00:00Z"}],
		"pagination":{"totalOrders":1,"pendingOrders":1}}}`

	var resp OrdersResponse
	err := json.Unmarshal([]byte(payload), &resp)
	assert.NoError(t, err)
	assert.Len(t, resp.Data.Orders, 1)
	assert.Equal(t, 1, resp.Data.Pagination.TotalOrders)

	order := resp.Data.Orders[0]
	assert.True(t, order.Total.Equal(decimal.NewFromFloat(7.00)))
	assert.Equal(t, OrderPending, order.Status)
}

func TestApiErrorMessage(t *testing.T) {
	err := &ApiError{Status: 400, Message: "Validation failed",
		Errors: map[string][]string{"email": {"Email is required"}}}
	assert.Contains(t, err.Error(), "Validation failed")
	assert.Equal(t, "Email is required", err.FieldError("email"))
	assert.Equal(t, "", err.FieldError("name"))
}
