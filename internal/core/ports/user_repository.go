package ports

import (
	"context"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
//
// Create assigns the next sequential id before inserting and must map a
// duplicate email (case-insensitive) to domain.ErrEmailTaken. Lookups return
// domain.ErrUserNotFound when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	// FindByEmail matches case-insensitively and returns the first match.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdatePassword replaces only the password hash.
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
}
