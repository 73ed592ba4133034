package api

import (
	"context"
	"log"
	"net/url"
	"strconv"

	"backoffice/client"
	"backoffice/models"
)

// Login exchanges credentials for a token and user profile.
func (a *API) Login(ctx context.Context, email, password string) (models.LoginResponse, error) {
	var resp models.LoginResponse
	body := map[string]string{"email": email, "password": password}
	if err := a.http.Post(ctx, "/auth/login", body, &resp); err != nil {
		log.Printf("Error logging in: %v", err)
		return models.LoginResponse{}, err
	}
	return resp, nil
}

// GetUsers fetches one page of staff accounts plus the user stats block.
func (a *API) GetUsers(ctx context.Context, page, limit int) (models.UsersResponse, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var resp models.UsersResponse
	if err := a.http.Get(ctx, "/auth/users", query, &resp); err != nil {
		log.Printf("Error fetching users: %v", err)
		return models.UsersResponse{}, err
	}
	return resp, nil
}

// AddUser creates a staff account from a multipart form (fields plus an
// optional avatar file).
func (a *API) AddUser(ctx context.Context, form *client.Form) (models.UserResponse, error) {
	var resp models.UserResponse
	if err := a.http.Post(ctx, "/auth/add-user", form, &resp); err != nil {
		log.Printf("Error adding user: %v", err)
		return models.UserResponse{}, err
	}
	return resp, nil
}

// UpdateUser updates a staff account from a multipart form.
func (a *API) UpdateUser(ctx context.Context, id string, form *client.Form) (models.UserResponse, error) {
	var resp models.UserResponse
	if err := a.http.Put(ctx, "/auth/users/"+id, form, &resp); err != nil {
		log.Printf("Error updating user %s: %v", id, err)
		return models.UserResponse{}, err
	}
	return resp, nil
}

// DeleteUser removes a staff account.
func (a *API) DeleteUser(ctx context.Context, id string) error {
	if err := a.http.Delete(ctx, "/auth/user/"+id, nil); err != nil {
		log.Printf("Error deleting user %s: %v", id, err)
		return err
	}
	return nil
}

// ChangePassword sets a new password for the signed-in user.
func (a *API) ChangePassword(ctx context.Context, password string) error {
	body := map[string]string{"password": password}
	if err := a.http.Post(ctx, "/auth/change-password", body, nil); err != nil {
		log.Printf("Error changing password: %v", err)
		return err
	}
	return nil
}
