// Package devserver is an in-memory implementation of the backend REST
// contract the console consumes. It backs the -dev console mode and the
// test suites; nothing is persisted across restarts.
package devserver

import (
	"log"
	"net"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"backoffice/models"
)

// Server holds the in-memory state behind the REST routes.
type Server struct {
	app       *fiber.App
	jwtSecret []byte

	mu            sync.Mutex
	users         []models.User
	passwords     map[string]string // user id -> bcrypt hash
	categories    []models.Category
	subcategories []models.Subcategory
	products      []models.Product
	orders        []models.Order
	banners       []models.Banner
}

// New builds a server with a single seeded admin account
// (admin@backoffice.dev / admin123).
func New(jwtSecret string) *Server {
	s := &Server{
		app:       fiber.New(fiber.Config{DisableStartupMessage: true}),
		jwtSecret: []byte(jwtSecret),
		passwords: map[string]string{},
	}

	adminID := uuid.NewString()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error hashing seed password: %v", err)
	}
	s.users = append(s.users, models.User{
		ID:     adminID,
		Name:   "Admin",
		Email:  "admin@backoffice.dev",
		Role:   models.RoleAdmin,
		Status: models.StatusActive,
	})
	s.passwords[adminID] = string(hash)

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.app.Use(cors.New())

	auth := s.app.Group("/auth")
	auth.Post("/login", s.handleLogin)
	auth.Get("/users", s.authenticate, s.handleGetUsers)
	auth.Post("/add-user", s.authenticate, s.handleAddUser)
	auth.Put("/users/:userId", s.authenticate, s.handleUpdateUser)
	auth.Delete("/user/:userId", s.authenticate, s.handleDeleteUser)
	auth.Post("/change-password", s.authenticate, s.handleChangePassword)

	category := s.app.Group("/category", s.authenticate)
	category.Get("/", s.handleListCategories)
	category.Post("/create", s.handleCreateCategory)
	category.Patch("/:categoryId", s.handleUpdateCategory)
	category.Delete("/:categoryId", s.handleDeleteCategory)

	subcategory := s.app.Group("/subcategory", s.authenticate)
	subcategory.Get("/", s.handleListSubcategories)
	subcategory.Post("/create", s.handleCreateSubcategory)
	subcategory.Put("/:subId", s.handleUpdateSubcategory)
	subcategory.Delete("/:subId", s.handleDeleteSubcategory)

	product := s.app.Group("/product", s.authenticate)
	product.Get("/", s.handleListProducts)
	product.Post("/create", s.handleCreateProduct)
	product.Patch("/:productId", s.handleUpdateProduct)
	product.Delete("/:productId", s.handleDeleteProduct)

	order := s.app.Group("/order", s.authenticate)
	order.Get("/", s.handleListOrders)
	order.Get("/statistics", s.handleOrderStatistics)
	order.Post("/refresh", s.handleRefreshDashboard)
	order.Patch("/:orderId", s.handleUpdateOrderStatus)

	banner := s.app.Group("/banner", s.authenticate)
	banner.Get("/", s.handleListBanners)
	banner.Post("/create", s.handleCreateBanner)
	banner.Put("/:bannerId", s.handleUpdateBanner)
	banner.Delete("/:bannerId", s.handleDeleteBanner)
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Serve serves on an existing listener; tests use this with a
// 127.0.0.1:0 listener to get a real base URL.
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Shutdown stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// InjectOrders adds order fixtures directly to the store.
func (s *Server) InjectOrders(orders ...models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, orders...)
}

// SeedDemo loads a small demo dataset for browsing the console in -dev
// mode.
func (s *Server) SeedDemo() {
	s.mu.Lock()
	defer s.mu.Unlock()

	sides := models.Subcategory{ID: uuid.NewString(), Name: "Sides"}
	cold := models.Subcategory{ID: uuid.NewString(), Name: "Cold Drinks"}
	s.subcategories = append(s.subcategories, sides, cold)

	drinks := models.Category{
		ID:            uuid.NewString(),
		Name:          "Drinks",
		Description:   "Hot and cold drinks",
		Status:        models.StatusActive,
		CreatedAt:     time.Now().Add(-72 * time.Hour),
		Image:         models.ImageRef{Image: models.Image{URL: "/uploads/drinks.jpg"}},
		ItemsCount:    2,
		Subcategories: []models.Subcategory{cold},
	}
	mains := models.Category{
		ID:          uuid.NewString(),
		Name:        "Mains",
		Description: "Main dishes",
		Status:      models.StatusActive,
		CreatedAt:   time.Now().Add(-48 * time.Hour),
		Image:       models.ImageRef{Image: models.Image{URL: "/uploads/mains.jpg"}},
		ItemsCount:  1,
	}
	s.categories = append(s.categories, drinks, mains)

	s.products = append(s.products,
		models.Product{
			ID:          uuid.NewString(),
			Name:        "Iced Tea",
			Category:    models.Ref{ID: drinks.ID, Name: drinks.Name},
			SubCategory: models.Ref{ID: cold.ID, Name: cold.Name},
			Price:       decimal.NewFromFloat(3.50),
			Stock:       models.InStock,
			Status:      models.StatusActive,
			Image:       models.ImageRef{Image: models.Image{URL: "/uploads/iced-tea.jpg"}},
			Description: "House-brewed iced tea",
		},
		models.Product{
			ID:          uuid.NewString(),
			Name:        "Margherita",
			Category:    models.Ref{ID: mains.ID, Name: mains.Name},
			Price:       decimal.NewFromFloat(11.00),
			Stock:       models.LowStock,
			Status:      models.StatusActive,
			Image:       models.ImageRef{Image: models.Image{URL: "/uploads/margherita.jpg"}},
			Description: "Tomato, mozzarella, basil",
		},
	)

	now := time.Now()
	s.orders = append(s.orders,
		models.Order{
			ID:      uuid.NewString(),
			OrderID: "ORD-1001",
			Email:   "alice@example.com",
			Phone:   "555-0101",
			Items: []models.OrderItem{
				{ProductName: "Iced Tea", Quantity: 2, Price: decimal.NewFromFloat(3.50)},
			},
			Total:     decimal.NewFromFloat(7.00),
			Status:    models.OrderCompleted,
			CreatedAt: now.Add(-26 * time.Hour),
			UpdatedAt: now.Add(-25 * time.Hour),
		},
		models.Order{
			ID:      uuid.NewString(),
			OrderID: "ORD-1002",
			Email:   "bob@example.com",
			Phone:   "555-0102",
			Items: []models.OrderItem{
				{ProductName: "Margherita", Quantity: 1, Price: decimal.NewFromFloat(11.00)},
			},
			Total:     decimal.NewFromFloat(11.00),
			Status:    models.OrderPending,
			CreatedAt: now.Add(-2 * time.Hour),
			UpdatedAt: now.Add(-2 * time.Hour),
		},
	)

	s.banners = append(s.banners, models.Banner{
		ID:    uuid.NewString(),
		Name:  "Summer Specials",
		Image: models.ImageRef{Image: models.Image{URL: "/uploads/summer.jpg"}},
	})
}

// uploadURL records an uploaded file and returns its public path.
func uploadURL(filename string) string {
	return "/uploads/" + uuid.NewString() + "-" + filename
}
