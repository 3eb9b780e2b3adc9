package ports

import (
	"context"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// StoreRepository defines persistence operations for stores.
//
// Create assigns the next sequential id and maps a duplicate email to
// domain.ErrEmailTaken. Search methods match a case-insensitive substring.
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) (*domain.Store, error)
	FindByID(ctx context.Context, id int) (*domain.Store, error)
	// FindByOwner returns the first store whose OwnerID matches, or
	// domain.ErrStoreNotFound when the owner has none.
	FindByOwner(ctx context.Context, ownerID int) (*domain.Store, error)
	List(ctx context.Context) ([]domain.Store, error)
	SearchByName(ctx context.Context, name string) ([]domain.Store, error)
	SearchByAddress(ctx context.Context, address string) ([]domain.Store, error)
	Count(ctx context.Context) (int64, error)
}
