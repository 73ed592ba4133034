package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"backoffice/api"
	"backoffice/client"
	"backoffice/config"
	"backoffice/controller"
	"backoffice/devserver"
	"backoffice/models"
	"backoffice/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dev := flag.Bool("dev", false, "serve a bundled in-memory backend and connect to it")
	flag.Parse()

	if *dev {
		if err := startDevBackend(); err != nil {
			log.Fatalf("Error starting dev backend: %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	store := session.New(cfg.TokenFile)
	httpClient := client.New(cfg, store, func() {
		fmt.Println("Session expired, please log in again.")
	})

	c := &console{
		in:      bufio.NewReader(os.Stdin),
		api:     api.New(httpClient),
		session: store,
	}
	c.run()
}

// startDevBackend serves the in-memory backend on a loopback port and
// points API_BASE_URL at it unless the operator already set one.
func startDevBackend() error {
	srv := devserver.New("dev-secret")
	srv.SeedDemo()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return err
	}
	go func() {
		if err := srv.Serve(ln); err != nil {
			log.Printf("Error serving dev backend: %v", err)
		}
	}()
	if os.Getenv("API_BASE_URL") == "" {
		os.Setenv("API_BASE_URL", "http://"+ln.Addr().String())
	}
	fmt.Printf("Dev backend listening on %s (admin@backoffice.dev / admin123)\n", ln.Addr())
	return nil
}

type console struct {
	in      *bufio.Reader
	api     *api.API
	session *session.Store
}

func (c *console) run() {
	for {
		if !c.session.IsAuthenticated() {
			if !c.login() {
				return
			}
		}
		if user := c.session.CurrentUser(); user != nil {
			fmt.Printf("\nSigned in as %s (%s)\n", user.Name, user.Role)
		}
		fmt.Println(`
1) Dashboard
2) Categories
3) Menu items
4) Order history
5) Users
6) Subcategories
7) Banners
8) Change password
9) Logout
q) Quit`)
		switch c.prompt("> ") {
		case "1":
			c.dashboardPage()
		case "2":
			c.categoriesPage()
		case "3":
			c.menuPage()
		case "4":
			c.ordersPage()
		case "5":
			c.usersPage()
		case "6":
			c.subcategoriesPage()
		case "7":
			c.bannersPage()
		case "8":
			c.changePassword()
		case "9":
			c.session.Logout()
			fmt.Println("Logged out.")
		case "q":
			return
		}
	}
}

func (c *console) prompt(label string) string {
	fmt.Print(label)
	line, err := c.in.ReadString('\n')
	if err != nil {
		return "q"
	}
	return strings.TrimSpace(line)
}

func (c *console) login() bool {
	fmt.Println("\nLog in to continue (q to quit).")
	email := c.prompt("Email: ")
	if email == "q" {
		return false
	}
	password := c.prompt("Password: ")
	resp, err := c.api.Login(context.Background(), email, password)
	if err != nil {
		fmt.Printf("Login failed: %v\n", err)
		return c.login()
	}
	if err := c.session.SetCredentials(resp.User, resp.Token); err != nil {
		fmt.Printf("Warning: could not persist session: %v\n", err)
	}
	fmt.Println(resp.Message)
	return true
}

func (c *console) changePassword() {
	password := c.prompt("New password: ")
	if err := c.api.ChangePassword(context.Background(), password); err != nil {
		fmt.Printf("Could not change password: %v\n", err)
		return
	}
	fmt.Println("Password changed.")
}

func (c *console) dashboardPage() {
	ctrl := controller.NewDashboard(c.api, nil)
	defer ctrl.Close()
	if err := ctrl.Load(); err != nil {
		fmt.Printf("Could not load dashboard: %v\n", err)
		return
	}
	for {
		data := ctrl.Data()
		fmt.Printf("\nDashboard (%s)\n", ctrl.Period())
		fmt.Printf("  Revenue: %s  Orders: %d  Avg order: %s\n",
			data.DailyRevenue, data.TotalOrders, data.AverageOrderValue)
		for _, day := range data.SalesByDay {
			fmt.Printf("  %s  %s\n", day.Day, day.TotalSales)
		}
		for _, item := range data.TopItems {
			fmt.Printf("  %-24s x%d\n", item.Name, item.TotalOrdered)
		}
		switch in := c.prompt("period (day/month/year), r)efresh or b)ack: "); in {
		case "day", "month", "year":
			if err := ctrl.SetPeriod(in); err != nil {
				fmt.Printf("Could not switch period: %v\n", err)
			}
		case "r":
			if err := ctrl.Refresh(); err != nil {
				fmt.Printf("Could not refresh: %v\n", err)
			}
		default:
			return
		}
	}
}

func (c *console) categoriesPage() {
	ctrl := controller.NewCategories(c.api, nil)
	defer ctrl.Close()
	if err := ctrl.Load(); err != nil {
		fmt.Printf("Could not load categories: %v\n", err)
		return
	}
	for {
		stats := ctrl.Stats()
		fmt.Printf("\nCategories: %d total, %d active, %d unused, most used %q\n",
			stats.TotalCategories, stats.ActiveCategories, stats.UnusedCategories, stats.MostUsed.Name)
		for _, cat := range ctrl.Visible() {
			fmt.Printf("  %-28s %-8s %3d items  %s\n", cat.Name, cat.Status, cat.ItemsCount, cat.ID)
		}
		switch c.prompt("s)earch f)ilter d)elete e)xport b)ack: ") {
		case "s":
			ctrl.SetSearch(c.prompt("search: "))
		case "f":
			ctrl.SetStatusFilter(c.prompt("status (All/active/inactive): "))
		case "d":
			ctrl.Delete(c.prompt("category id: "))
		case "e":
			c.export("categories.csv", ctrl.ExportCSV)
		default:
			return
		}
	}
}

func (c *console) menuPage() {
	ctrl := controller.NewMenu(c.api, nil)
	defer ctrl.Close()
	if err := ctrl.Load(); err != nil {
		fmt.Printf("Could not load menu: %v\n", err)
		return
	}
	for {
		fmt.Println("\nMenu items:")
		for _, item := range ctrl.Visible() {
			fmt.Printf("  %-28s %-18s %8s  %-12s %s\n",
				item.Name, item.CategoryName, item.Price, models.EffectiveStock(item), item.ID)
		}
		switch c.prompt("s)earch c)ategory t)oggle visibility d)elete e)xport b)ack: ") {
		case "s":
			ctrl.SetSearch(c.prompt("search: "))
		case "c":
			ctrl.SetCategoryFilter(c.prompt("category name (All for everything): "))
		case "t":
			ctrl.ToggleVisibility(c.prompt("item id: "))
		case "d":
			ctrl.Delete(c.prompt("item id: "))
		case "e":
			c.export("menu.csv", ctrl.ExportCSV)
		default:
			return
		}
	}
}

func (c *console) ordersPage() {
	ctrl := controller.NewOrders(c.api, nil)
	defer ctrl.Close()
	if err := ctrl.Load(); err != nil {
		fmt.Printf("Could not load orders: %v\n", err)
		return
	}
	for {
		stats := ctrl.Stats()
		fmt.Printf("\nOrders: %d total (%d pending, %d processing, %d completed, %d cancelled)\n",
			stats.TotalOrders, stats.PendingOrders, stats.ProcessingOrders,
			stats.CompletedOrders, stats.CancelledOrders)
		for _, o := range ctrl.Visible() {
			fmt.Printf("  %-10s %-26s %8s  %-10s %s\n", o.OrderID, o.Email, o.Total, o.Status, o.ID)
		}
		switch c.prompt("s)earch f)ilter u)pdate status c)ancel e)xport b)ack: ") {
		case "s":
			ctrl.SetSearch(c.prompt("email or phone: "))
		case "f":
			ctrl.SetStatusFilter(c.prompt("status (All/pending/processing/completed/cancelled): "))
		case "u":
			id := c.prompt("order id: ")
			status := c.prompt("new status: ")
			ctrl.UpdateStatus(id, models.OrderStatus(status))
		case "c":
			ctrl.Cancel(c.prompt("order id: "))
		case "e":
			c.export("orders.csv", ctrl.ExportCSV)
		default:
			return
		}
	}
}

func (c *console) usersPage() {
	ctrl := controller.NewUsers(c.api, nil)
	defer ctrl.Close()
	if err := ctrl.Load(); err != nil {
		fmt.Printf("Could not load users: %v\n", err)
		return
	}
	for {
		p := ctrl.Pagination()
		fmt.Printf("\nUsers (page %d/%d):\n", p.CurrentPage, p.TotalPages)
		for _, u := range ctrl.Visible() {
			fmt.Printf("  %-24s %-30s %-8s %-8s %s\n", u.Name, u.Email, u.Role, u.Status, u.ID)
		}
		switch c.prompt("s)earch r)ole filter n)ext page d)elete e)xport b)ack: ") {
		case "s":
			ctrl.SetSearch(c.prompt("search: "))
		case "r":
			ctrl.SetRoleFilter(c.prompt("role (all/admin/manager/staff): "))
		case "n":
			ctrl.SetPage(p.CurrentPage + 1)
		case "d":
			ctrl.Delete(c.prompt("user id: "))
		case "e":
			c.export("users.csv", ctrl.ExportCSV)
		default:
			return
		}
	}
}

func (c *console) subcategoriesPage() {
	ctrl := controller.NewSubcategories(c.api, nil)
	defer ctrl.Close()
	if err := ctrl.Load(); err != nil {
		fmt.Printf("Could not load subcategories: %v\n", err)
		return
	}
	for {
		fmt.Println("\nSubcategories:")
		for _, sub := range ctrl.All() {
			fmt.Printf("  %-28s %s\n", sub.Name, sub.ID)
		}
		switch c.prompt("a)dd r)ename d)elete b)ack: ") {
		case "a":
			ctrl.Add(c.prompt("name: "))
		case "r":
			id := c.prompt("subcategory id: ")
			ctrl.Edit(id, c.prompt("new name: "))
		case "d":
			ctrl.Delete(c.prompt("subcategory id: "))
		default:
			return
		}
	}
}

func (c *console) bannersPage() {
	ctrl := controller.NewBanners(c.api, nil)
	defer ctrl.Close()
	if err := ctrl.Load(); err != nil {
		fmt.Printf("Could not load banners: %v\n", err)
		return
	}
	for {
		fmt.Println("\nBanners:")
		for _, b := range ctrl.All() {
			fmt.Printf("  %-28s %-40s %s\n", b.Name, b.Image.URL, b.ID)
		}
		switch c.prompt("a)dd from file r)ename d)elete b)ack: ") {
		case "a":
			name := c.prompt("name: ")
			path := c.prompt("image file: ")
			content, err := os.ReadFile(path)
			if err != nil {
				fmt.Printf("Could not read %s: %v\n", path, err)
				continue
			}
			ctrl.Add(name, &client.File{Field: "image", Name: path, Content: content})
		case "r":
			id := c.prompt("banner id: ")
			ctrl.Edit(id, c.prompt("new name: "), nil)
		case "d":
			ctrl.Delete(c.prompt("banner id: "))
		default:
			return
		}
	}
}

// export runs a controller's CSV writer against a freshly created file.
func (c *console) export(name string, write func(w io.Writer) error) {
	f, err := os.Create(name)
	if err != nil {
		fmt.Printf("Could not create %s: %v\n", name, err)
		return
	}
	defer f.Close()
	if err := write(f); err != nil {
		fmt.Printf("Export failed: %v\n", err)
		return
	}
	fmt.Printf("Wrote %s at %s\n", name, time.Now().Format(time.Kitchen))
}
