package api

import (
	"context"
	"log"

	"backoffice/models"
)

// FetchSubcategories lists all subcategories.
func (a *API) FetchSubcategories(ctx context.Context) ([]models.Subcategory, error) {
	var subs []models.Subcategory
	if err := a.http.Get(ctx, "/subcategory", nil, &subs); err != nil {
		log.Printf("Error fetching subcategories: %v", err)
		return nil, err
	}
	return subs, nil
}

// AddSubcategoryData creates a subcategory.
func (a *API) AddSubcategoryData(ctx context.Context, name string) (models.Subcategory, error) {
	var created models.Subcategory
	body := map[string]string{"name": name}
	if err := a.http.Post(ctx, "/subcategory/create", body, &created); err != nil {
		log.Printf("Error adding subcategory: %v", err)
		return models.Subcategory{}, err
	}
	return created, nil
}

// UpdateSubcategoryData renames a subcategory.
func (a *API) UpdateSubcategoryData(ctx context.Context, id, name string) (models.Subcategory, error) {
	var updated models.Subcategory
	body := map[string]string{"name": name}
	if err := a.http.Put(ctx, "/subcategory/"+id, body, &updated); err != nil {
		log.Printf("Error updating subcategory %s: %v", id, err)
		return models.Subcategory{}, err
	}
	return updated, nil
}

// DeleteSubcategoryData removes a subcategory.
func (a *API) DeleteSubcategoryData(ctx context.Context, id string) error {
	if err := a.http.Delete(ctx, "/subcategory/"+id, nil); err != nil {
		log.Printf("Error deleting subcategory %s: %v", id, err)
		return err
	}
	return nil
}
