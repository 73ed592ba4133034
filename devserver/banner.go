package devserver

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"backoffice/models"
)

func (s *Server) handleListBanners(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(append([]models.Banner{}, s.banners...))
}

func (s *Server) handleCreateBanner(c *fiber.Ctx) error {
	name := c.FormValue("name")
	file, err := c.FormFile("image")
	if name == "" || err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Banner name and image are required",
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	banner := models.Banner{
		ID:    uuid.NewString(),
		Name:  name,
		Image: models.ImageRef{Image: models.Image{URL: uploadURL(file.Filename)}},
	}
	s.banners = append(s.banners, banner)
	return c.Status(fiber.StatusCreated).JSON(banner)
}

func (s *Server) handleUpdateBanner(c *fiber.Ctx) error {
	id := c.Params("bannerId")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, banner := range s.banners {
		if banner.ID != id {
			continue
		}
		if v := c.FormValue("name"); v != "" {
			banner.Name = v
		}
		if file, err := c.FormFile("image"); err == nil {
			banner.Image = models.ImageRef{Image: models.Image{URL: uploadURL(file.Filename)}}
		}
		s.banners[i] = banner
		return c.JSON(banner)
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "Banner not found",
	})
}

func (s *Server) handleDeleteBanner(c *fiber.Ctx) error {
	id := c.Params("bannerId")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, banner := range s.banners {
		if banner.ID == id {
			s.banners = append(s.banners[:i], s.banners[i+1:]...)
			return c.JSON(fiber.Map{"message": "Banner deleted successfully"})
		}
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "Banner not found",
	})
}
