package api

import (
	"context"
	"log"

	"backoffice/client"
	"backoffice/models"
)

// FetchBanners lists all banners.
func (a *API) FetchBanners(ctx context.Context) ([]models.Banner, error) {
	var banners []models.Banner
	if err := a.http.Get(ctx, "/banner", nil, &banners); err != nil {
		log.Printf("Error fetching banners: %v", err)
		return nil, err
	}
	return banners, nil
}

// AddBannerData creates a banner from a multipart form (name + image).
func (a *API) AddBannerData(ctx context.Context, form *client.Form) (models.Banner, error) {
	var created models.Banner
	if err := a.http.Post(ctx, "/banner/create", form, &created); err != nil {
		log.Printf("Error adding banner: %v", err)
		return models.Banner{}, err
	}
	return created, nil
}

// UpdateBannerData updates a banner from a multipart form.
func (a *API) UpdateBannerData(ctx context.Context, id string, form *client.Form) (models.Banner, error) {
	var updated models.Banner
	if err := a.http.Put(ctx, "/banner/"+id, form, &updated); err != nil {
		log.Printf("Error updating banner %s: %v", id, err)
		return models.Banner{}, err
	}
	return updated, nil
}

// DeleteBannerData removes a banner.
func (a *API) DeleteBannerData(ctx context.Context, id string) error {
	if err := a.http.Delete(ctx, "/banner/"+id, nil); err != nil {
		log.Printf("Error deleting banner %s: %v", id, err)
		return err
	}
	return nil
}
