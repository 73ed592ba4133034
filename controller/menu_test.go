package controller

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/models"
)

func TestMenuLoadNormalizesReferences(t *testing.T) {
	srv, a := startBackend(t)
	srv.SeedDemo()

	ctrl := NewMenu(a, &Recorder{})
	defer ctrl.Close()
	require.NoError(t, ctrl.Load())

	items := ctrl.Visible()
	require.Len(t, items, 2)
	for _, item := range items {
		assert.NotEmpty(t, item.Category, "category id resolved")
		assert.NotEmpty(t, item.CategoryName, "category name resolved")
	}
}

func TestMenuAddAndCategoryFilter(t *testing.T) {
	srv, a := startBackend(t)
	srv.SeedDemo()

	rec := &Recorder{}
	ctrl := NewMenu(a, rec)
	defer ctrl.Close()
	require.NoError(t, ctrl.Load())

	cats := ctrl.Categories()
	require.NotEmpty(t, cats)
	var drinks models.Category
	for _, cat := range cats {
		if cat.Name == "Drinks" {
			drinks = cat
		}
	}
	require.NotEmpty(t, drinks.ID)

	err := ctrl.Add(MenuItemInput{
		Name:     "Lemonade",
		Category: drinks.ID,
		Price:    decimal.NewFromFloat(4.25),
		Stock:    models.InStock,
		Status:   models.StatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Product added successfully!"}, rec.Successes)

	ctrl.SetCategoryFilter("Drinks")
	names := []string{}
	for _, item := range ctrl.Visible() {
		names = append(names, item.Name)
	}
	assert.Contains(t, names, "Lemonade")
	assert.NotContains(t, names, "Margherita")
}

func TestMenuValidation(t *testing.T) {
	_, a := startBackend(t)

	ctrl := NewMenu(a, &Recorder{})
	defer ctrl.Close()
	require.NoError(t, ctrl.Load())

	var vErr *models.ValidationError

	err := ctrl.Add(MenuItemInput{Category: "c1"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Item name is required", ctrl.FormError())

	err = ctrl.Add(MenuItemInput{Name: "Tea"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Category is required", ctrl.FormError())

	err = ctrl.Add(MenuItemInput{Name: "Tea", Category: "c1", Price: decimal.NewFromInt(-1)})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Price cannot be negative", ctrl.FormError())
}

func TestChangedFieldsFormSendsOnlyDiffs(t *testing.T) {
	original := models.MenuItem{
		Name:        "Iced Tea",
		Category:    "c1",
		Price:       decimal.NewFromFloat(3.50),
		Stock:       models.InStock,
		Status:      models.StatusActive,
		Description: "House-brewed",
	}
	in := MenuItemInput{
		Name:        "Iced Tea",
		Category:    "c1",
		Price:       decimal.NewFromFloat(3.75),
		Stock:       models.InStock,
		Status:      models.StatusActive,
		Description: "House-brewed",
	}

	form := changedFieldsForm(original, in)
	assert.Equal(t, map[string]string{"price": "3.75"}, form.Fields)
	assert.Empty(t, form.Files)

	// An unchanged submission produces an empty payload.
	in.Price = original.Price
	assert.Empty(t, changedFieldsForm(original, in).Fields)
}

func TestMenuEditIsIdempotent(t *testing.T) {
	srv, a := startBackend(t)
	srv.SeedDemo()

	rec := &Recorder{}
	ctrl := NewMenu(a, rec)
	defer ctrl.Close()
	require.NoError(t, ctrl.Load())

	target := ctrl.Visible()[0]
	in := MenuItemInput{
		Name:        target.Name,
		Category:    target.Category,
		SubCategory: target.SubCategory,
		Price:       target.Price,
		Stock:       target.Stock,
		Status:      target.Status,
		Description: target.Description,
	}

	require.NoError(t, ctrl.Edit(target.ID, in))
	require.NoError(t, ctrl.Edit(target.ID, in))

	after := ctrl.Visible()[0]
	assert.Equal(t, target.Name, after.Name)
	assert.True(t, target.Price.Equal(after.Price))
	assert.Equal(t, target.Stock, after.Stock)
}

func TestToggleVisibilityIsLocal(t *testing.T) {
	srv, a := startBackend(t)
	srv.SeedDemo()

	ctrl := NewMenu(a, &Recorder{})
	defer ctrl.Close()
	require.NoError(t, ctrl.Load())

	var target models.MenuItem
	for _, item := range ctrl.Visible() {
		if item.Stock == models.InStock {
			target = item
		}
	}
	require.NotEmpty(t, target.ID)

	ctrl.ToggleVisibility(target.ID)
	for _, item := range ctrl.Visible() {
		if item.ID == target.ID {
			assert.Equal(t, models.OutOfStock, item.Stock)
		}
	}

	ctrl.ToggleVisibility(target.ID)
	for _, item := range ctrl.Visible() {
		if item.ID == target.ID {
			assert.Equal(t, models.InStock, item.Stock)
		}
	}
}

func TestMenuExportShowsDerivedStock(t *testing.T) {
	srv, a := startBackend(t)
	srv.SeedDemo()

	ctrl := NewMenu(a, &Recorder{})
	defer ctrl.Close()
	require.NoError(t, ctrl.Load())

	// Deactivate an item that is in stock; its exported stock column
	// must read out of stock.
	target := ctrl.Visible()[0]
	require.NoError(t, ctrl.Edit(target.ID, MenuItemInput{
		Name:     target.Name,
		Category: target.Category,
		Price:    target.Price,
		Stock:    target.Stock,
		Status:   models.StatusInactive,
	}))

	var buf bytes.Buffer
	require.NoError(t, ctrl.ExportCSV(&buf))
	assert.Contains(t, buf.String(), string(models.OutOfStock))
}
