package devserver

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"backoffice/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.Email != req.Email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(s.passwords[u.ID]), []byte(req.Password)); err != nil {
			break
		}
		if u.Status != models.StatusActive {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Account is inactive",
			})
		}
		token, err := s.createToken(u.ID, u.Role)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to create token",
			})
		}
		now := time.Now()
		s.users[i].LastLogin = &now
		return c.JSON(models.LoginResponse{
			Token:   token,
			User:    s.users[i],
			Message: "Login successful",
		})
	}

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Invalid email or password",
	})
}

func (s *Server) handleGetUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var stats models.UserStats
	nonAdmins := 0
	for _, u := range s.users {
		stats.TotalUsers++
		if u.Role == models.RoleAdmin {
			stats.TotalAdmins++
		} else {
			nonAdmins++
		}
		if u.Status == models.StatusActive {
			stats.TotalActiveUsers++
		} else {
			stats.TotalInactiveUsers++
		}
	}

	totalPages := (len(s.users) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	start := (page - 1) * limit
	if start > len(s.users) {
		start = len(s.users)
	}
	end := start + limit
	if end > len(s.users) {
		end = len(s.users)
	}
	pageUsers := append([]models.User{}, s.users[start:end]...)

	return c.JSON(models.UsersResponse{
		Users: pageUsers,
		Pagination: models.UsersPagination{
			CurrentPage:        page,
			TotalPages:         totalPages,
			TotalNonAdminUsers: nonAdmins,
			Limit:              limit,
		},
		Stats: stats,
	})
}

func (s *Server) handleAddUser(c *fiber.Ctx) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	role := c.FormValue("role")
	status := c.FormValue("status")
	password := c.FormValue("password")

	errs := map[string][]string{}
	if name == "" {
		errs["name"] = append(errs["name"], "Name is required")
	}
	if email == "" {
		errs["email"] = append(errs["email"], "Email is required")
	}
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errs,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  map[string][]string{"email": {"Email is already in use"}},
			})
		}
	}

	user := models.User{
		ID:     uuid.NewString(),
		Name:   name,
		Email:  email,
		Role:   models.Role(role),
		Status: models.Status(status),
	}
	if user.Role == "" {
		user.Role = models.RoleStaff
	}
	if user.Status == "" {
		user.Status = models.StatusActive
	}
	if file, err := c.FormFile("avatar"); err == nil {
		user.Avatar = uploadURL(file.Filename)
	}
	if password == "" {
		password = "changeme"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to hash password",
		})
	}
	s.users = append(s.users, user)
	s.passwords[user.ID] = string(hash)

	return c.Status(fiber.StatusCreated).JSON(models.UserResponse{
		User:    user,
		Message: "User created successfully",
	})
}

func (s *Server) handleUpdateUser(c *fiber.Ctx) error {
	id := c.Params("userId")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.ID != id {
			continue
		}
		if v := c.FormValue("name"); v != "" {
			u.Name = v
		}
		if v := c.FormValue("email"); v != "" {
			u.Email = v
		}
		if v := c.FormValue("role"); v != "" {
			u.Role = models.Role(v)
		}
		if v := c.FormValue("status"); v != "" {
			u.Status = models.Status(v)
		}
		if file, err := c.FormFile("avatar"); err == nil {
			u.Avatar = uploadURL(file.Filename)
		}
		s.users[i] = u
		return c.JSON(models.UserResponse{
			User:    u,
			Message: "User updated successfully",
		})
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "User not found",
	})
}

func (s *Server) handleDeleteUser(c *fiber.Ctx) error {
	id := c.Params("userId")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			delete(s.passwords, id)
			return c.JSON(fiber.Map{"message": "User deleted successfully"})
		}
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "User not found",
	})
}

type changePasswordRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleChangePassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if len(req.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  map[string][]string{"password": {"Password must be at least 6 characters"}},
		})
	}

	userID, _ := c.Locals("userId").(string)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.passwords[userID]; !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}
	newHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to hash password",
		})
	}
	s.passwords[userID] = string(newHash)

	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}
