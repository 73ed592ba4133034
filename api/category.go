package api

import (
	"context"
	"log"

	"backoffice/client"
	"backoffice/models"
)

// GetCategoriesData fetches all categories together with the aggregate
// stats the list endpoint carries.
func (a *API) GetCategoriesData(ctx context.Context) (models.CategoriesResponse, error) {
	var resp models.CategoriesResponse
	if err := a.http.Get(ctx, "/category", nil, &resp); err != nil {
		log.Printf("Error fetching categories data: %v", err)
		return models.CategoriesResponse{}, err
	}
	return resp, nil
}

// AddCategory creates a category from a multipart form (name,
// description, status, image file, subcategory ids).
func (a *API) AddCategory(ctx context.Context, form *client.Form) (models.Category, error) {
	var created models.Category
	if err := a.http.Post(ctx, "/category/create", form, &created); err != nil {
		log.Printf("Error adding category: %v", err)
		return models.Category{}, err
	}
	return created, nil
}

// UpdateCategory patches a category from a multipart form.
func (a *API) UpdateCategory(ctx context.Context, id string, form *client.Form) (models.Category, error) {
	var updated models.Category
	if err := a.http.Patch(ctx, "/category/"+id, form, &updated); err != nil {
		log.Printf("Error updating category %s: %v", id, err)
		return models.Category{}, err
	}
	return updated, nil
}

// DeleteCategory removes a category.
func (a *API) DeleteCategory(ctx context.Context, id string) error {
	if err := a.http.Delete(ctx, "/category/"+id, nil); err != nil {
		log.Printf("Error deleting category %s: %v", id, err)
		return err
	}
	return nil
}
