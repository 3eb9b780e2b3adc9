package ports

import (
	"context"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// RegisterInput carries a self-service registration. The role is always
// RoleUser; only admins create accounts with other roles.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Address  string
}

// ChangePasswordInput carries a password change for the authenticated user.
// Confirmation equality is checked at the transport layer.
type ChangePasswordInput struct {
	UserID          int
	CurrentPassword string
	NewPassword     string
}

// AuthService implements registration, login, logout and password changes.
// Login and Register return a signed session token to be set as a cookie.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, sessionID string) error
	ChangePassword(ctx context.Context, input ChangePasswordInput) error
}
