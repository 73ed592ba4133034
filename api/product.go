package api

import (
	"context"
	"encoding/json"
	"log"

	"backoffice/client"
	"backoffice/models"
)

// productResponse tolerates the two envelopes product mutations come
// back in: {"product": {...}} or the product as the body itself.
type productResponse struct {
	product models.Product
}

func (r *productResponse) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Product *models.Product `json:"product"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Product != nil {
		r.product = *envelope.Product
		return nil
	}
	return json.Unmarshal(data, &r.product)
}

// GetMenuItems fetches all products plus the summary block.
func (a *API) GetMenuItems(ctx context.Context) (models.MenuItemsResponse, error) {
	var resp models.MenuItemsResponse
	if err := a.http.Get(ctx, "/product", nil, &resp); err != nil {
		log.Printf("Error fetching menu items: %v", err)
		return models.MenuItemsResponse{}, err
	}
	return resp, nil
}

// CreateMenuItem creates a product from a multipart form.
func (a *API) CreateMenuItem(ctx context.Context, form *client.Form) (models.Product, error) {
	var resp productResponse
	if err := a.http.Post(ctx, "/product/create", form, &resp); err != nil {
		log.Printf("Error creating menu item: %v", err)
		return models.Product{}, err
	}
	return resp.product, nil
}

// UpdateProduct patches a product. The form carries only the fields
// that changed.
func (a *API) UpdateProduct(ctx context.Context, id string, form *client.Form) (models.Product, error) {
	var resp productResponse
	if err := a.http.Patch(ctx, "/product/"+id, form, &resp); err != nil {
		log.Printf("Error updating product %s: %v", id, err)
		return models.Product{}, err
	}
	return resp.product, nil
}

// DeleteProduct removes a product.
func (a *API) DeleteProduct(ctx context.Context, id string) error {
	if err := a.http.Delete(ctx, "/product/"+id, nil); err != nil {
		log.Printf("Error deleting product %s: %v", id, err)
		return err
	}
	return nil
}
