package controller

import (
	"context"
	"strings"

	"backoffice/api"
	"backoffice/client"
	"backoffice/models"
)

// BannersController owns the banners page.
type BannersController struct {
	base
	api *api.API

	banners []models.Banner
	formErr string
}

// NewBanners builds the controller; call Load before reading state.
func NewBanners(a *api.API, n Notifier) *BannersController {
	return &BannersController{base: newBase(n), api: a}
}

// Load fetches the banner list.
func (c *BannersController) Load() error {
	var banners []models.Banner
	return c.load(func() {
		c.banners = banners
	}, func(ctx context.Context) error {
		var err error
		banners, err = c.api.FetchBanners(ctx)
		return err
	})
}

// Retry re-enters Loading after an Errored load.
func (c *BannersController) Retry() error {
	return c.Load()
}

// All returns the loaded banners.
func (c *BannersController) All() []models.Banner {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Banner(nil), c.banners...)
}

// FormError returns the inline error of the open form, or "".
func (c *BannersController) FormError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formErr
}

// Add creates a banner. Name and image file are both required before
// any network call is made.
func (c *BannersController) Add(name string, image *client.File) error {
	if strings.TrimSpace(name) == "" || image == nil {
		msg := "Banner name and image file are required"
		c.setFormErr(msg)
		return &models.ValidationError{Field: "name", Message: msg}
	}
	form := &client.Form{
		Fields: map[string]string{"name": name},
		Files:  []client.File{*image},
	}
	var created models.Banner
	return c.runMutation(
		"Banner added successfully!",
		"Unable to add banner!",
		func(ctx context.Context) error {
			var err error
			created, err = c.api.AddBannerData(ctx, form)
			return err
		},
		func() {
			c.banners = append(c.banners, created)
			c.formErr = ""
		},
		c.setFormErr,
	)
}

// Edit updates a banner's name and optionally its image, then replaces
// the entry by id.
func (c *BannersController) Edit(id, name string, image *client.File) error {
	if strings.TrimSpace(name) == "" {
		msg := "Banner name is required"
		c.setFormErr(msg)
		return &models.ValidationError{Field: "name", Message: msg}
	}
	form := &client.Form{Fields: map[string]string{"name": name}}
	if image != nil {
		form.Files = append(form.Files, *image)
	}
	var updated models.Banner
	return c.runMutation(
		"Banner updated successfully!",
		"Unable to update banner!",
		func(ctx context.Context) error {
			var err error
			updated, err = c.api.UpdateBannerData(ctx, id, form)
			return err
		},
		func() {
			for i, banner := range c.banners {
				if banner.ID == id {
					if updated.ID == "" {
						updated.ID = id
					}
					c.banners[i] = updated
				}
			}
			c.formErr = ""
		},
		c.setFormErr,
	)
}

// Delete removes a banner server-side, then filters it out locally.
func (c *BannersController) Delete(id string) error {
	return c.runMutation(
		"Banner deleted successfully!",
		"Unable to delete banner!",
		func(ctx context.Context) error {
			return c.api.DeleteBannerData(ctx, id)
		},
		func() {
			kept := c.banners[:0]
			for _, banner := range c.banners {
				if banner.ID != id {
					kept = append(kept, banner)
				}
			}
			c.banners = kept
		},
		nil,
	)
}

func (c *BannersController) setFormErr(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formErr = msg
}
