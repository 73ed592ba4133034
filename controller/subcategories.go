package controller

import (
	"context"
	"strconv"
	"strings"
	"time"

	"backoffice/api"
	"backoffice/models"
)

// SubcategoriesController owns the standalone subcategories page.
type SubcategoriesController struct {
	base
	api *api.API

	subcategories []models.Subcategory
	formErr       string
}

// NewSubcategories builds the controller; call Load before reading state.
func NewSubcategories(a *api.API, n Notifier) *SubcategoriesController {
	return &SubcategoriesController{base: newBase(n), api: a}
}

// Load fetches the subcategory list.
func (c *SubcategoriesController) Load() error {
	var subs []models.Subcategory
	return c.load(func() {
		c.subcategories = subs
	}, func(ctx context.Context) error {
		var err error
		subs, err = c.api.FetchSubcategories(ctx)
		return err
	})
}

// Retry re-enters Loading after an Errored load.
func (c *SubcategoriesController) Retry() error {
	return c.Load()
}

// All returns the loaded subcategories.
func (c *SubcategoriesController) All() []models.Subcategory {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Subcategory(nil), c.subcategories...)
}

// FormError returns the inline error of the open form, or "".
func (c *SubcategoriesController) FormError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formErr
}

// Add creates a subcategory and appends the server's canonical object.
func (c *SubcategoriesController) Add(name string) error {
	if strings.TrimSpace(name) == "" {
		msg := "Subcategory name is required"
		c.setFormErr(msg)
		return &models.ValidationError{Field: "name", Message: msg}
	}
	var created models.Subcategory
	return c.runMutation(
		"Subcategory added successfully!",
		"Unable to add subcategory!",
		func(ctx context.Context) error {
			var err error
			created, err = c.api.AddSubcategoryData(ctx, name)
			return err
		},
		func() {
			c.subcategories = append(c.subcategories, created)
			c.formErr = ""
		},
		c.setFormErr,
	)
}

// Edit renames a subcategory and replaces the entry by id.
func (c *SubcategoriesController) Edit(id, name string) error {
	if strings.TrimSpace(name) == "" {
		msg := "Subcategory name is required"
		c.setFormErr(msg)
		return &models.ValidationError{Field: "name", Message: msg}
	}
	var updated models.Subcategory
	return c.runMutation(
		"Subcategory updated successfully!",
		"Unable to update subcategory!",
		func(ctx context.Context) error {
			var err error
			updated, err = c.api.UpdateSubcategoryData(ctx, id, name)
			return err
		},
		func() {
			for i, sub := range c.subcategories {
				if sub.ID == id {
					if updated.ID == "" {
						updated.ID = id
					}
					c.subcategories[i] = updated
				}
			}
			c.formErr = ""
		},
		c.setFormErr,
	)
}

// Delete removes a subcategory server-side, then filters it out locally.
func (c *SubcategoriesController) Delete(id string) error {
	return c.runMutation(
		"Subcategory deleted successfully!",
		"Unable to delete subcategory!",
		func(ctx context.Context) error {
			return c.api.DeleteSubcategoryData(ctx, id)
		},
		func() {
			kept := c.subcategories[:0]
			for _, sub := range c.subcategories {
				if sub.ID != id {
					kept = append(kept, sub)
				}
			}
			c.subcategories = kept
		},
		nil,
	)
}

func (c *SubcategoriesController) setFormErr(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formErr = msg
}

// DraftID returns a transient placeholder id for a subcategory added
// inside a category form but not yet saved. The server assigns the real
// id on save.
func DraftID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
