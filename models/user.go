package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Role is a staff account's permission level. Authorization is enforced
// server-side; the console only uses roles for display and for hiding
// controls.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// User is a staff account.
type User struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	Status    Status     `json:"status"`
	Avatar    string     `json:"avatar,omitempty"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// JwtClaims is the claims payload of the backend's bearer tokens.
type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// LoginResponse is the payload of POST /auth/login.
type LoginResponse struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message"`
}

// UsersPagination is the paging block of GET /auth/users.
type UsersPagination struct {
	CurrentPage        int `json:"currentPage"`
	TotalPages         int `json:"totalPages"`
	TotalNonAdminUsers int `json:"totalNonAdminUsers"`
	Limit              int `json:"limit"`
}

// UserStats is the aggregate block of GET /auth/users.
type UserStats struct {
	TotalUsers         int `json:"totalUsers"`
	TotalAdmins        int `json:"totalAdmins"`
	TotalActiveUsers   int `json:"totalActiveUsers"`
	TotalInactiveUsers int `json:"totalInactiveUsers"`
}

// UsersResponse is the envelope of GET /auth/users.
type UsersResponse struct {
	Users      []User          `json:"users"`
	Pagination UsersPagination `json:"pagination"`
	Stats      UserStats       `json:"stats"`
}

// UserResponse is the envelope of user mutations.
type UserResponse struct {
	User    User   `json:"user"`
	Message string `json:"message"`
}
