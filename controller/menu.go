package controller

import (
	"context"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"backoffice/api"
	"backoffice/client"
	"backoffice/export"
	"backoffice/models"
)

// MenuItemInput is the add/edit form payload for a menu item.
type MenuItemInput struct {
	Name        string
	Category    string // category id
	SubCategory string // subcategory id
	Price       decimal.Decimal
	Stock       models.StockState
	Status      models.Status
	Description string
	Image       *client.File
}

// MenuController owns the menu management page. Products arrive from
// the server with inconsistently nested category/subcategory references
// and are normalized into MenuItems immediately after fetch, so nothing
// downstream branches on wire shape.
type MenuController struct {
	base
	api *api.API

	items      []models.MenuItem
	categories []models.Category
	summary    models.ProductSummary

	searchTerm     string
	categoryFilter string
	modalOpen      bool
	formErr        string
}

// NewMenu builds the controller; call Load before reading state.
func NewMenu(a *api.API, n Notifier) *MenuController {
	return &MenuController{
		base:           newBase(n),
		api:            a,
		categoryFilter: "All",
	}
}

// Load join-fetches the product list (with its summary block) and the
// category list used to resolve reference names.
func (c *MenuController) Load() error {
	var (
		items models.MenuItemsResponse
		cats  models.CategoriesResponse
	)
	return c.load(func() {
		c.categories = cats.Categories
		c.summary = items.Summary
		c.items = make([]models.MenuItem, 0, len(items.Products))
		for _, p := range items.Products {
			c.items = append(c.items, c.normalize(p))
		}
	}, func(ctx context.Context) error {
		var err error
		items, err = c.api.GetMenuItems(ctx)
		return err
	}, func(ctx context.Context) error {
		var err error
		cats, err = c.api.GetCategoriesData(ctx)
		return err
	})
}

// Retry re-enters Loading after an Errored load.
func (c *MenuController) Retry() error {
	return c.Load()
}

// normalize flattens a wire product into the canonical view shape,
// resolving names the payload carried only as ids. Callers hold no
// lock ordering obligations; c.categories is only read.
func (c *MenuController) normalize(p models.Product) models.MenuItem {
	item := models.MenuItem{
		ID:              p.ID,
		Name:            p.Name,
		Category:        p.Category.ID,
		CategoryName:    p.Category.Name,
		SubCategory:     p.SubCategory.ID,
		SubCategoryName: p.SubCategory.Name,
		Price:           p.Price,
		Stock:           p.Stock,
		Status:          p.Status,
		Image:           p.Image.URL,
		Description:     p.Description,
	}
	for _, cat := range c.categories {
		if cat.ID == item.Category && item.CategoryName == "" {
			item.CategoryName = cat.Name
		}
		if cat.ID == item.Category && item.SubCategoryName == "" {
			for _, sub := range cat.Subcategories {
				if sub.ID == item.SubCategory {
					item.SubCategoryName = sub.Name
				}
			}
		}
	}
	return item
}

// SetSearch sets the case-insensitive name/description filter.
func (c *MenuController) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchTerm = term
}

// SetCategoryFilter filters by category name; "All" passes everything.
func (c *MenuController) SetCategoryFilter(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categoryFilter = name
}

// Categories returns the fetched categories for the form pickers.
func (c *MenuController) Categories() []models.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Category(nil), c.categories...)
}

// Summary returns the server's product aggregate block.
func (c *MenuController) Summary() models.ProductSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary
}

// FormError returns the inline error of the open modal, or "".
func (c *MenuController) FormError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formErr
}

// Visible returns the filtered view of the collection. Stock shown to
// the operator must come from models.EffectiveStock, not the stored
// field.
func (c *MenuController) Visible() []models.MenuItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := make([]models.MenuItem, 0, len(c.items))
	for _, item := range c.items {
		if !matchesSearch(c.searchTerm, item.Name, item.Description) {
			continue
		}
		if c.categoryFilter != "All" && item.CategoryName != c.categoryFilter {
			continue
		}
		visible = append(visible, item)
	}
	return visible
}

// Add validates the form locally, creates the product and appends the
// normalized server object to the collection.
func (c *MenuController) Add(in MenuItemInput) error {
	if err := c.validate(in); err != nil {
		return err
	}
	var created models.Product
	return c.runMutation(
		"Product added successfully!",
		"Failed to add menu item. Please try again.",
		func(ctx context.Context) error {
			var err error
			created, err = c.api.CreateMenuItem(ctx, menuItemForm(in))
			return err
		},
		func() {
			c.items = append(c.items, c.normalize(created))
			c.modalOpen = false
			c.formErr = ""
		},
		c.setFormErr,
	)
}

// Edit patches only the fields that changed against the stored item,
// then replaces the entry by id with the normalized server object.
func (c *MenuController) Edit(id string, in MenuItemInput) error {
	if err := c.validate(in); err != nil {
		return err
	}
	c.mu.Lock()
	var original *models.MenuItem
	for i := range c.items {
		if c.items[i].ID == id {
			original = &c.items[i]
		}
	}
	c.mu.Unlock()
	if original == nil {
		msg := "Invalid item or item ID"
		c.setFormErr(msg)
		return &models.ValidationError{Field: "id", Message: msg}
	}

	form := changedFieldsForm(*original, in)
	var updated models.Product
	return c.runMutation(
		"Product item updated successfully!",
		"Failed to update menu item. Please try again.",
		func(ctx context.Context) error {
			var err error
			updated, err = c.api.UpdateProduct(ctx, id, form)
			return err
		},
		func() {
			merged := c.normalize(updated)
			if merged.ID == "" {
				merged.ID = id
			}
			for i, item := range c.items {
				if item.ID == id {
					c.items[i] = mergeMenuItem(item, merged)
				}
			}
			c.modalOpen = false
			c.formErr = ""
		},
		c.setFormErr,
	)
}

// Delete removes the product server-side, then filters it out locally.
func (c *MenuController) Delete(id string) error {
	return c.runMutation(
		"Product deleted successfully!",
		"Failed to delete menu item. Please try again.",
		func(ctx context.Context) error {
			return c.api.DeleteProduct(ctx, id)
		},
		func() {
			kept := c.items[:0]
			for _, item := range c.items {
				if item.ID != id {
					kept = append(kept, item)
				}
			}
			c.items = kept
		},
		nil,
	)
}

// ToggleVisibility flips an item's stored stock between in and out of
// stock. Local state only; no network call.
func (c *MenuController) ToggleVisibility(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, item := range c.items {
		if item.ID != id {
			continue
		}
		if item.Stock == models.InStock {
			c.items[i].Stock = models.OutOfStock
		} else {
			c.items[i].Stock = models.InStock
		}
	}
}

// ExportCSV writes the currently filtered view as CSV. The stock column
// carries the derived display value.
func (c *MenuController) ExportCSV(w io.Writer) error {
	visible := c.Visible()
	header := []string{"ID", "Name", "Category", "Subcategory", "Price", "Stock", "Status", "Description"}
	rows := make([][]string, 0, len(visible))
	for _, item := range visible {
		rows = append(rows, []string{
			item.ID,
			item.Name,
			item.CategoryName,
			item.SubCategoryName,
			item.Price.String(),
			string(models.EffectiveStock(item)),
			string(item.Status),
			item.Description,
		})
	}
	return export.WriteCSV(w, header, rows)
}

func (c *MenuController) validate(in MenuItemInput) error {
	var msg string
	switch {
	case strings.TrimSpace(in.Name) == "":
		msg = "Item name is required"
	case in.Category == "":
		msg = "Category is required"
	case in.Price.IsNegative():
		msg = "Price cannot be negative"
	}
	if msg == "" {
		return nil
	}
	c.setFormErr(msg)
	return &models.ValidationError{Field: "name", Message: msg}
}

func (c *MenuController) setFormErr(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formErr = msg
}

func menuItemForm(in MenuItemInput) *client.Form {
	form := &client.Form{Fields: map[string]string{
		"name":        in.Name,
		"category":    in.Category,
		"subCategory": in.SubCategory,
		"price":       in.Price.String(),
		"stock":       string(in.Stock),
		"status":      string(in.Status),
		"description": in.Description,
	}}
	if in.Image != nil {
		form.Files = append(form.Files, *in.Image)
	}
	return form
}

// changedFieldsForm builds the PATCH payload: only the fields that
// differ from the stored item are sent.
func changedFieldsForm(original models.MenuItem, in MenuItemInput) *client.Form {
	form := &client.Form{Fields: map[string]string{}}
	if in.Name != original.Name {
		form.Fields["name"] = in.Name
	}
	if in.Category != original.Category {
		form.Fields["category"] = in.Category
	}
	if in.SubCategory != original.SubCategory {
		form.Fields["subCategory"] = in.SubCategory
	}
	if !in.Price.Equal(original.Price) {
		form.Fields["price"] = in.Price.String()
	}
	if in.Stock != original.Stock {
		form.Fields["stock"] = string(in.Stock)
	}
	if in.Status != original.Status {
		form.Fields["status"] = string(in.Status)
	}
	if in.Description != original.Description {
		form.Fields["description"] = in.Description
	}
	if in.Image != nil {
		form.Files = append(form.Files, *in.Image)
	}
	return form
}

// mergeMenuItem replaces a collection entry with the server's response,
// falling back to previous values for fields the server omitted.
func mergeMenuItem(prev, updated models.MenuItem) models.MenuItem {
	merged := updated
	if merged.Name == "" {
		merged.Name = prev.Name
	}
	if merged.Category == "" {
		merged.Category = prev.Category
		merged.CategoryName = prev.CategoryName
	}
	if merged.SubCategory == "" {
		merged.SubCategory = prev.SubCategory
		merged.SubCategoryName = prev.SubCategoryName
	}
	if merged.Price.IsZero() {
		merged.Price = prev.Price
	}
	if merged.Stock == "" {
		merged.Stock = prev.Stock
	}
	if merged.Status == "" {
		merged.Status = prev.Status
	}
	if merged.Image == "" {
		merged.Image = prev.Image
	}
	if merged.Description == "" {
		merged.Description = prev.Description
	}
	return merged
}
