package ports

import (
	"context"
	"time"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// UserView is a user as listed on the admin dashboard. Owners with a store
// carry the store's name and average rating; for everyone else both pointers
// are nil.
type UserView struct {
	ID          int
	Name        string
	Email       string
	Address     string
	Role        domain.Role
	CreatedAt   time.Time
	StoreName   *string
	StoreRating *float64
}

// CreateUserInput carries an admin user creation; unlike self-service
// registration the role is chosen by the caller.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     domain.Role
}

// AdminService implements the admin dashboard operations.
type AdminService interface {
	Statistics(ctx context.Context) (*domain.Statistics, error)
	ListUsers(ctx context.Context) ([]UserView, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
}
