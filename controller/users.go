package controller

import (
	"context"
	"io"
	"strings"

	"backoffice/api"
	"backoffice/client"
	"backoffice/export"
	"backoffice/models"
)

// UserInput is the add/edit form payload for a staff account.
type UserInput struct {
	Name   string
	Email  string
	Role   models.Role
	Status models.Status
	Avatar *client.File
}

// UserCardStats backs the stat cards of the users page, computed from
// the full loaded collection.
type UserCardStats struct {
	Total    int
	Active   int
	Inactive int
	Admins   int
}

// UsersController owns the staff accounts page. The backend enforces
// authorization; the console only hides controls.
type UsersController struct {
	base
	api *api.API

	users      []models.User
	pagination models.UsersPagination

	page         int
	limit        int
	searchTerm   string
	roleFilter   string
	statusFilter string
	formErr      string
}

// NewUsers builds the controller; call Load before reading state.
func NewUsers(a *api.API, n Notifier) *UsersController {
	return &UsersController{
		base:         newBase(n),
		api:          a,
		page:         1,
		limit:        10,
		roleFilter:   "all",
		statusFilter: "all",
	}
}

// Load fetches the current page of staff accounts.
func (c *UsersController) Load() error {
	var resp models.UsersResponse
	return c.load(func() {
		c.users = resp.Users
		c.pagination = resp.Pagination
	}, func(ctx context.Context) error {
		var err error
		resp, err = c.api.GetUsers(ctx, c.page, c.limit)
		return err
	})
}

// Retry re-enters Loading after an Errored load.
func (c *UsersController) Retry() error {
	return c.Load()
}

// SetPage selects a page and reloads.
func (c *UsersController) SetPage(page int) error {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.page = page
	c.mu.Unlock()
	return c.Load()
}

// Pagination returns the server's paging block.
func (c *UsersController) Pagination() models.UsersPagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pagination
}

// SetSearch filters by name or email substring, case-insensitively.
func (c *UsersController) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchTerm = term
}

// SetRoleFilter sets the role filter; "all" passes everything.
func (c *UsersController) SetRoleFilter(role string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roleFilter = role
}

// SetStatusFilter sets the status filter; "all" passes everything.
func (c *UsersController) SetStatusFilter(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statusFilter = status
}

// FormError returns the inline error of the open modal, or "".
func (c *UsersController) FormError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formErr
}

// Visible returns the filtered view of the loaded page.
func (c *UsersController) Visible() []models.User {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := make([]models.User, 0, len(c.users))
	for _, user := range c.users {
		if !matchesSearch(c.searchTerm, user.Name, user.Email) {
			continue
		}
		if c.roleFilter != "all" && string(user.Role) != c.roleFilter {
			continue
		}
		if c.statusFilter != "all" && string(user.Status) != c.statusFilter {
			continue
		}
		visible = append(visible, user)
	}
	return visible
}

// Stats computes the stat cards from the full loaded collection;
// filtering never changes them.
func (c *UsersController) Stats() UserCardStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	var stats UserCardStats
	stats.Total = len(c.users)
	for _, user := range c.users {
		if user.Status == models.StatusActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
		if user.Role == models.RoleAdmin {
			stats.Admins++
		}
	}
	return stats
}

// Add validates the form locally, creates the account and appends the
// server's canonical user to the collection.
func (c *UsersController) Add(in UserInput) error {
	if err := c.validate(in); err != nil {
		return err
	}
	var resp models.UserResponse
	return c.runMutation(
		"User added successfully!",
		"Failed to add user. Please try again.",
		func(ctx context.Context) error {
			var err error
			resp, err = c.api.AddUser(ctx, userForm(in))
			return err
		},
		func() {
			c.users = append(c.users, resp.User)
			c.formErr = ""
		},
		c.setFormErr,
	)
}

// Edit updates the account and replaces the entry by id with the
// server's canonical user.
func (c *UsersController) Edit(id string, in UserInput) error {
	if err := c.validate(in); err != nil {
		return err
	}
	var resp models.UserResponse
	return c.runMutation(
		"User updated successfully!",
		"Failed to update user. Please try again.",
		func(ctx context.Context) error {
			var err error
			resp, err = c.api.UpdateUser(ctx, id, userForm(in))
			return err
		},
		func() {
			for i, user := range c.users {
				if user.ID == id {
					if resp.User.ID == "" {
						resp.User.ID = id
					}
					c.users[i] = resp.User
				}
			}
			c.formErr = ""
		},
		c.setFormErr,
	)
}

// Delete removes the account server-side, then filters it out locally.
func (c *UsersController) Delete(id string) error {
	return c.runMutation(
		"User deleted successfully!",
		"Failed to delete user. Please try again.",
		func(ctx context.Context) error {
			return c.api.DeleteUser(ctx, id)
		},
		func() {
			kept := c.users[:0]
			for _, user := range c.users {
				if user.ID != id {
					kept = append(kept, user)
				}
			}
			c.users = kept
		},
		nil,
	)
}

// ChangePassword sets a new password for the signed-in user.
func (c *UsersController) ChangePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		msg := "Password is required"
		c.setFormErr(msg)
		return &models.ValidationError{Field: "password", Message: msg}
	}
	return c.runMutation(
		"Password changed successfully!",
		"Failed to change password. Please try again.",
		func(ctx context.Context) error {
			return c.api.ChangePassword(ctx, password)
		},
		func() { c.formErr = "" },
		c.setFormErr,
	)
}

// ExportCSV writes the currently filtered view as CSV.
func (c *UsersController) ExportCSV(w io.Writer) error {
	visible := c.Visible()
	header := []string{"ID", "Name", "Email", "Role", "Status", "Last Login"}
	rows := make([][]string, 0, len(visible))
	for _, user := range visible {
		lastLogin := ""
		if user.LastLogin != nil {
			lastLogin = user.LastLogin.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			user.ID,
			user.Name,
			user.Email,
			string(user.Role),
			string(user.Status),
			lastLogin,
		})
	}
	return export.WriteCSV(w, header, rows)
}

func (c *UsersController) validate(in UserInput) error {
	var msg string
	switch {
	case strings.TrimSpace(in.Name) == "":
		msg = "Name is required"
	case strings.TrimSpace(in.Email) == "" || !strings.Contains(in.Email, "@"):
		msg = "A valid email is required"
	}
	if msg == "" {
		return nil
	}
	c.setFormErr(msg)
	return &models.ValidationError{Field: "name", Message: msg}
}

func (c *UsersController) setFormErr(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formErr = msg
}

func userForm(in UserInput) *client.Form {
	form := &client.Form{Fields: map[string]string{
		"name":   in.Name,
		"email":  in.Email,
		"role":   string(in.Role),
		"status": string(in.Status),
	}}
	if in.Avatar != nil {
		form.Files = append(form.Files, *in.Avatar)
	}
	return form
}
