package devserver

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"backoffice/models"
)

func (s *Server) handleListCategories(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := models.CategoriesResponse{
		Categories:      append([]models.Category{}, s.categories...),
		TotalCategories: len(s.categories),
	}
	for _, cat := range s.categories {
		if cat.Status == models.StatusActive {
			resp.TotalActiveCategories++
		}
		if cat.ItemsCount > resp.MostOrderedCategory.TotalOrdered {
			resp.MostOrderedCategory = models.MostOrderedCategory{
				ID:           cat.ID,
				Name:         cat.Name,
				TotalOrdered: cat.ItemsCount,
			}
		}
	}
	return c.JSON(resp)
}

// resolveSubcategories maps the ids carried in the "subcategories" form
// field to stored subcategories. Unknown ids are dropped.
func (s *Server) resolveSubcategories(raw string) []models.Subcategory {
	if raw == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	var out []models.Subcategory
	for _, id := range ids {
		for _, sub := range s.subcategories {
			if sub.ID == id {
				out = append(out, sub)
				break
			}
		}
	}
	return out
}

func (s *Server) handleCreateCategory(c *fiber.Ctx) error {
	name := c.FormValue("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  map[string][]string{"name": {"Category name is required"}},
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cat := models.Category{
		ID:            uuid.NewString(),
		Name:          name,
		Description:   c.FormValue("description"),
		Status:        models.Status(c.FormValue("status")),
		CreatedAt:     time.Now(),
		Subcategories: s.resolveSubcategories(c.FormValue("subcategories")),
	}
	if cat.Status == "" {
		cat.Status = models.StatusActive
	}
	if file, err := c.FormFile("image"); err == nil {
		cat.Image = models.ImageRef{Image: models.Image{URL: uploadURL(file.Filename)}}
	}
	s.categories = append(s.categories, cat)

	return c.Status(fiber.StatusCreated).JSON(cat)
}

func (s *Server) handleUpdateCategory(c *fiber.Ctx) error {
	id := c.Params("categoryId")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cat := range s.categories {
		if cat.ID != id {
			continue
		}
		if v := c.FormValue("name"); v != "" {
			cat.Name = v
		}
		if v := c.FormValue("description"); v != "" {
			cat.Description = v
		}
		if v := c.FormValue("status"); v != "" {
			cat.Status = models.Status(v)
		}
		if v := c.FormValue("subcategories"); v != "" {
			cat.Subcategories = s.resolveSubcategories(v)
		}
		if file, err := c.FormFile("image"); err == nil {
			cat.Image = models.ImageRef{Image: models.Image{URL: uploadURL(file.Filename)}}
		}
		s.categories[i] = cat
		return c.JSON(cat)
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "Category not found",
	})
}

func (s *Server) handleDeleteCategory(c *fiber.Ctx) error {
	id := c.Params("categoryId")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cat := range s.categories {
		if cat.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return c.JSON(fiber.Map{"message": "Category deleted successfully"})
		}
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "Category not found",
	})
}

func (s *Server) handleListSubcategories(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(append([]models.Subcategory{}, s.subcategories...))
}

type subcategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleCreateSubcategory(c *fiber.Ctx) error {
	var req subcategoryRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Subcategory name is required",
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub := models.Subcategory{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
	}
	s.subcategories = append(s.subcategories, sub)
	return c.Status(fiber.StatusCreated).JSON(sub)
}

func (s *Server) handleUpdateSubcategory(c *fiber.Ctx) error {
	id := c.Params("subId")
	var req subcategoryRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Subcategory name is required",
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subcategories {
		if sub.ID != id {
			continue
		}
		sub.Name = req.Name
		if req.Description != "" {
			sub.Description = req.Description
		}
		s.subcategories[i] = sub
		return c.JSON(sub)
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "Subcategory not found",
	})
}

func (s *Server) handleDeleteSubcategory(c *fiber.Ctx) error {
	id := c.Params("subId")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subcategories {
		if sub.ID == id {
			s.subcategories = append(s.subcategories[:i], s.subcategories[i+1:]...)
			return c.JSON(fiber.Map{"message": "Subcategory deleted successfully"})
		}
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "Subcategory not found",
	})
}

func (s *Server) handleListProducts(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := models.MenuItemsResponse{
		Products: append([]models.Product{}, s.products...),
	}
	resp.Summary.TotalProducts = len(s.products)
	for _, p := range s.products {
		if p.Status == models.StatusActive {
			resp.Summary.TotalActive++
		}
		if p.Stock == models.OutOfStock || p.Status != models.StatusActive {
			resp.Summary.TotalOutOfStock++
		} else {
			resp.Summary.TotalInStock++
		}
	}
	return c.JSON(resp)
}

// productFromForm applies the multipart fields present in the request to
// p. Absent fields are left untouched.
func (s *Server) productFromForm(c *fiber.Ctx, p *models.Product) error {
	if v := c.FormValue("name"); v != "" {
		p.Name = v
	}
	if v := c.FormValue("category"); v != "" {
		p.Category = models.Ref{ID: v}
		for _, cat := range s.categories {
			if cat.ID == v {
				p.Category.Name = cat.Name
				break
			}
		}
	}
	if v := c.FormValue("subCategory"); v != "" {
		p.SubCategory = models.Ref{ID: v}
		for _, sub := range s.subcategories {
			if sub.ID == v {
				p.SubCategory.Name = sub.Name
				break
			}
		}
	}
	if v := c.FormValue("price"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			return err
		}
		p.Price = price
	}
	if v := c.FormValue("stock"); v != "" {
		p.Stock = models.StockState(v)
	}
	if v := c.FormValue("status"); v != "" {
		p.Status = models.Status(v)
	}
	if v := c.FormValue("description"); v != "" {
		p.Description = v
	}
	if file, err := c.FormFile("image"); err == nil {
		p.Image = models.ImageRef{Image: models.Image{URL: uploadURL(file.Filename)}}
	}
	return nil
}

func (s *Server) handleCreateProduct(c *fiber.Ctx) error {
	if c.FormValue("name") == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  map[string][]string{"name": {"Product name is required"}},
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := models.Product{
		ID:     uuid.NewString(),
		Stock:  models.InStock,
		Status: models.StatusActive,
	}
	if err := s.productFromForm(c, &p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  map[string][]string{"price": {"Price must be a number"}},
		})
	}
	s.products = append(s.products, p)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product": p})
}

func (s *Server) handleUpdateProduct(c *fiber.Ctx) error {
	id := c.Params("productId")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID != id {
			continue
		}
		if err := s.productFromForm(c, &p); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  map[string][]string{"price": {"Price must be a number"}},
			})
		}
		s.products[i] = p
		return c.JSON(fiber.Map{"product": p})
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "Product not found",
	})
}

func (s *Server) handleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("productId")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return c.JSON(fiber.Map{"message": "Product deleted successfully"})
		}
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "Product not found",
	})
}
