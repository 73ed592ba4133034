package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Status marks an entity as visible to customers or hidden.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// StockState is the stock level reported for a menu item.
type StockState string

const (
	InStock    StockState = "In Stock"
	LowStock   StockState = "Low Stock"
	OutOfStock StockState = "Out of Stock"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// Image is an uploaded file reference as returned by the backend.
type Image struct {
	URL string `json:"url"`
	ID  string `json:"id,omitempty"`
}

// ImageRef tolerates the two shapes the backend uses for images: a bare
// URL string or an {url, id} object. It always re-encodes as the object.
type ImageRef struct {
	Image
}

func (r *ImageRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.Image = Image{URL: s}
		return nil
	}
	return json.Unmarshal(data, &r.Image)
}

func (r ImageRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Image)
}

// Subcategory is a secondary grouping for menu items.
type Subcategory struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Ref is a reference to another entity that the backend serializes
// inconsistently: sometimes a bare id string, sometimes an embedded
// {_id, name} object. Decoding normalizes both shapes; encoding always
// emits the id so mutation payloads stay uniform.
type Ref struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*r = Ref{ID: id}
		return nil
	}
	type embedded Ref
	var e embedded
	if err := json.Unmarshal(data, &e); err != nil {
		return err
	}
	*r = Ref(e)
	return nil
}

func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// Category groups menu items. Subcategories are embedded by value when
// listing; mutation payloads reference them by id.
type Category struct {
	ID            string        `json:"_id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Status        Status        `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	Image         ImageRef      `json:"image"`
	ItemsCount    int           `json:"itemsCount"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

// MostOrderedCategory is the server-side "most used" aggregate.
type MostOrderedCategory struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	TotalOrdered int    `json:"totalOrdered"`
}

// CategoriesResponse is the list payload of GET /category.
type CategoriesResponse struct {
	Categories            []Category          `json:"categories"`
	TotalCategories       int                 `json:"totalCategories"`
	TotalActiveCategories int                 `json:"totalActiveCategories"`
	MostOrderedCategory   MostOrderedCategory `json:"mostOrderedCategory"`
}

// CategoryStats backs the stat cards on the categories page. Total,
// active and most-used come from the server aggregate; unused is counted
// over the full loaded collection.
type CategoryStats struct {
	TotalCategories  int
	ActiveCategories int
	MostUsed         MostOrderedCategory
	UnusedCategories int
}

// Product is the wire shape of a menu item as the backend sends it.
// Category and subcategory references arrive in mixed shapes and are
// normalized into a MenuItem immediately after fetch.
type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Category    Ref             `json:"category"`
	SubCategory Ref             `json:"subCategory"`
	Price       decimal.Decimal `json:"price"`
	Stock       StockState      `json:"stock"`
	Status      Status          `json:"status"`
	Image       ImageRef        `json:"image"`
	Description string          `json:"description"`
}

// MenuItem is the normalized, view-facing shape of a product: references
// flattened to id plus display name.
type MenuItem struct {
	ID              string
	Name            string
	Category        string
	CategoryName    string
	SubCategory     string
	SubCategoryName string
	Price           decimal.Decimal
	Stock           StockState
	Status          Status
	Image           string
	Description     string
}

// EffectiveStock is the stock level to display for an item. An item that
// is not active always reads as out of stock, whatever the stored value
// says; this is recomputed on every read, never persisted.
func EffectiveStock(item MenuItem) StockState {
	if item.Status != StatusActive {
		return OutOfStock
	}
	return item.Stock
}

// ProductSummary is the server aggregate attached to GET /product.
type ProductSummary struct {
	TotalProducts   int `json:"totalProducts"`
	TotalActive     int `json:"totalActive"`
	TotalInStock    int `json:"totalInStock"`
	TotalOutOfStock int `json:"totalOutOfStock"`
}

// MenuItemsResponse is the list payload of GET /product.
type MenuItemsResponse struct {
	Products []Product      `json:"products"`
	Summary  ProductSummary `json:"summary"`
}

// OrderItem is a line in an order.
type OrderItem struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Order as returned by GET /order. Total is authoritative from the
// server and is never recomputed from the items.
type Order struct {
	ID        string          `json:"_id"`
	OrderID   string          `json:"orderId"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// OrderStats is the aggregate block the order list carries alongside its
// pagination data.
type OrderStats struct {
	TotalOrders      int `json:"totalOrders"`
	PendingOrders    int `json:"pendingOrders"`
	ProcessingOrders int `json:"processingOrders"`
	CompletedOrders  int `json:"completedOrders"`
	CancelledOrders  int `json:"cancelledOrders"`
}

// OrdersResponse is the envelope of GET /order.
type OrdersResponse struct {
	Data struct {
		Orders     []Order    `json:"orders"`
		Pagination OrderStats `json:"pagination"`
	} `json:"data"`
}

// SalesByDay is one bar of the dashboard revenue chart.
type SalesByDay struct {
	Day        string          `json:"day"`
	TotalSales decimal.Decimal `json:"totalSales"`
}

// TopItem is one entry of the dashboard best-sellers list.
type TopItem struct {
	Name         string `json:"name"`
	TotalOrdered int    `json:"totalOrdered"`
}

// DashboardData is the payload of GET /order/statistics.
type DashboardData struct {
	DailyRevenue      decimal.Decimal `json:"dailyRevenue"`
	TotalOrders       int             `json:"totalOrders"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	SalesByDay        []SalesByDay    `json:"salesByDay"`
	TopItems          []TopItem       `json:"topItems"`
}

// Banner is a promotional image shown in the customer app.
type Banner struct {
	ID    string   `json:"_id"`
	Name  string   `json:"name"`
	Image ImageRef `json:"image"`
}
