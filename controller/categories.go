package controller

import (
	"context"
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"

	"backoffice/api"
	"backoffice/client"
	"backoffice/export"
	"backoffice/models"
)

// SortOption selects the comparator for the categories view.
type SortOption string

const (
	SortByName   SortOption = "Name"
	SortByCount  SortOption = "Items Count"
	SortByNewest SortOption = "Newest"
)

// CategoryInput is the add/edit form payload for a category.
type CategoryInput struct {
	Name          string
	Description   string
	Status        models.Status
	Image         *client.File
	Subcategories []string // subcategory ids
}

// CategoriesController owns the categories page: the category
// collection, the independently fetched subcategory list and all
// UI-only derived state.
type CategoriesController struct {
	base
	api *api.API

	categories    []models.Category
	subcategories []models.Subcategory
	mostOrdered   models.MostOrderedCategory

	searchTerm   string
	statusFilter string
	sortOption   SortOption
	expandedID   string
	modalOpen    bool
	formErr      string
}

// NewCategories builds the controller; call Load before reading state.
func NewCategories(a *api.API, n Notifier) *CategoriesController {
	return &CategoriesController{
		base:         newBase(n),
		api:          a,
		statusFilter: "All",
		sortOption:   SortByName,
	}
}

// Load join-fetches the category list (with its aggregate block) and
// the subcategory list. Both must succeed before the page is Ready.
func (c *CategoriesController) Load() error {
	var (
		catResp models.CategoriesResponse
		subs    []models.Subcategory
	)
	return c.load(func() {
		c.categories = catResp.Categories
		c.mostOrdered = catResp.MostOrderedCategory
		c.subcategories = subs
	}, func(ctx context.Context) error {
		var err error
		catResp, err = c.api.GetCategoriesData(ctx)
		return err
	}, func(ctx context.Context) error {
		var err error
		subs, err = c.api.FetchSubcategories(ctx)
		return err
	})
}

// Retry re-enters Loading after an Errored load.
func (c *CategoriesController) Retry() error {
	return c.Load()
}

// SetSearch sets the case-insensitive name/description filter.
func (c *CategoriesController) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchTerm = term
}

// SetStatusFilter sets the status filter; "All" passes everything.
func (c *CategoriesController) SetStatusFilter(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statusFilter = status
}

// SetSort selects the view comparator.
func (c *CategoriesController) SetSort(opt SortOption) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortOption = opt
}

// ToggleDetails expands a category row, or collapses it when already
// expanded.
func (c *CategoriesController) ToggleDetails(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expandedID == id {
		c.expandedID = ""
	} else {
		c.expandedID = id
	}
}

// ExpandedID returns the currently expanded row, or "".
func (c *CategoriesController) ExpandedID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expandedID
}

// FormError returns the inline error of the open modal, or "".
func (c *CategoriesController) FormError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formErr
}

// ModalOpen reports whether an add/edit modal is open.
func (c *CategoriesController) ModalOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modalOpen
}

// OpenModal marks an add/edit modal as open.
func (c *CategoriesController) OpenModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modalOpen = true
	c.formErr = ""
}

// Subcategories returns the fetched subcategory list for the pickers.
func (c *CategoriesController) Subcategories() []models.Subcategory {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Subcategory(nil), c.subcategories...)
}

// Visible returns the filtered and sorted view of the collection.
// Computed fresh on every call; never stored.
func (c *CategoriesController) Visible() []models.Category {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := make([]models.Category, 0, len(c.categories))
	for _, cat := range c.categories {
		if !matchesSearch(c.searchTerm, cat.Name, cat.Description) {
			continue
		}
		if c.statusFilter != "All" && string(cat.Status) != c.statusFilter {
			continue
		}
		visible = append(visible, cat)
	}

	switch c.sortOption {
	case SortByCount:
		sort.SliceStable(visible, func(i, j int) bool {
			return visible[i].ItemsCount > visible[j].ItemsCount
		})
	case SortByNewest:
		sort.SliceStable(visible, func(i, j int) bool {
			return visible[i].CreatedAt.After(visible[j].CreatedAt)
		})
	default:
		sort.SliceStable(visible, func(i, j int) bool {
			return visible[i].Name < visible[j].Name
		})
	}
	return visible
}

// Stats computes the stat cards from the full loaded collection.
// Filtering and search never change these numbers.
func (c *CategoriesController) Stats() models.CategoryStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := models.CategoryStats{MostUsed: c.mostOrdered}
	stats.TotalCategories = len(c.categories)
	for _, cat := range c.categories {
		if cat.Status == models.StatusActive {
			stats.ActiveCategories++
		}
		if cat.ItemsCount == 0 {
			stats.UnusedCategories++
		}
	}
	return stats
}

// Add validates the form locally, creates the category and appends the
// server's canonical object to the collection.
func (c *CategoriesController) Add(in CategoryInput) error {
	if err := c.validate(in, true); err != nil {
		return err
	}
	var created models.Category
	return c.runMutation(
		"Category added successfully!",
		"Failed to add category. Please try again.",
		func(ctx context.Context) error {
			var err error
			created, err = c.api.AddCategory(ctx, categoryForm(in))
			return err
		},
		func() {
			c.categories = append(c.categories, created)
			c.modalOpen = false
			c.formErr = ""
		},
		c.setFormErr,
	)
}

// Edit validates the form locally, updates the category and replaces
// the entry by id with the server's canonical object.
func (c *CategoriesController) Edit(id string, in CategoryInput) error {
	if err := c.validate(in, false); err != nil {
		return err
	}
	var updated models.Category
	return c.runMutation(
		"Category updated successfully!",
		"Failed to update category. Please try again.",
		func(ctx context.Context) error {
			var err error
			updated, err = c.api.UpdateCategory(ctx, id, categoryForm(in))
			return err
		},
		func() {
			for i, cat := range c.categories {
				if cat.ID == id {
					c.categories[i] = mergeCategory(cat, updated)
				}
			}
			c.modalOpen = false
			c.formErr = ""
		},
		c.setFormErr,
	)
}

// Delete removes the category server-side, then filters it out of the
// local collection. No re-fetch: the local filter is trusted to mirror
// server state until the next full reload.
func (c *CategoriesController) Delete(id string) error {
	return c.runMutation(
		"Category deleted successfully!",
		"Failed to delete category. Please try again.",
		func(ctx context.Context) error {
			return c.api.DeleteCategory(ctx, id)
		},
		func() {
			kept := c.categories[:0]
			for _, cat := range c.categories {
				if cat.ID != id {
					kept = append(kept, cat)
				}
			}
			c.categories = kept
		},
		nil,
	)
}

// ExportCSV writes the currently filtered and sorted view as CSV.
func (c *CategoriesController) ExportCSV(w io.Writer) error {
	visible := c.Visible()
	header := []string{"ID", "Name", "Description", "Items Count", "Status", "Created At", "Image", "Subcategories"}
	rows := make([][]string, 0, len(visible))
	for _, cat := range visible {
		names := make([]string, 0, len(cat.Subcategories))
		for _, sub := range cat.Subcategories {
			names = append(names, sub.Name)
		}
		rows = append(rows, []string{
			cat.ID,
			cat.Name,
			cat.Description,
			strconv.Itoa(cat.ItemsCount),
			string(cat.Status),
			cat.CreatedAt.Format("2006-01-02"),
			cat.Image.URL,
			strings.Join(names, "; "),
		})
	}
	return export.WriteCSV(w, header, rows)
}

func (c *CategoriesController) validate(in CategoryInput, requireImage bool) error {
	var msg string
	switch {
	case strings.TrimSpace(in.Name) == "":
		msg = "Category name is required"
	case requireImage && in.Image == nil:
		msg = "Category image is required"
	}
	if msg == "" {
		return nil
	}
	c.setFormErr(msg)
	return &models.ValidationError{Field: "name", Message: msg}
}

func (c *CategoriesController) setFormErr(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formErr = msg
}

func categoryForm(in CategoryInput) *client.Form {
	form := &client.Form{Fields: map[string]string{
		"name":        in.Name,
		"description": in.Description,
		"status":      string(in.Status),
	}}
	if len(in.Subcategories) > 0 {
		ids, _ := json.Marshal(in.Subcategories)
		form.Fields["subcategories"] = string(ids)
	}
	if in.Image != nil {
		form.Files = append(form.Files, *in.Image)
	}
	return form
}

// mergeCategory replaces a collection entry with the server's response,
// falling back to the previous values for fields the server omitted.
func mergeCategory(prev, updated models.Category) models.Category {
	merged := updated
	if merged.ID == "" {
		merged.ID = prev.ID
	}
	if merged.Name == "" {
		merged.Name = prev.Name
	}
	if merged.Description == "" {
		merged.Description = prev.Description
	}
	if merged.Status == "" {
		merged.Status = prev.Status
	}
	if merged.CreatedAt.IsZero() {
		merged.CreatedAt = prev.CreatedAt
	}
	if merged.Image.URL == "" {
		merged.Image = prev.Image
	}
	if merged.Subcategories == nil {
		merged.Subcategories = prev.Subcategories
	}
	if merged.ItemsCount == 0 {
		merged.ItemsCount = prev.ItemsCount
	}
	return merged
}
