package ports

import (
	"context"
	"time"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// StoreView is a store enriched with its derived rating figures. UserRating
// is the viewer's own score; nil means the viewer has not rated the store
// (never zero — the domain floor is 1) and is only populated for viewers
// with RoleUser.
type StoreView struct {
	ID            int
	Name          string
	Email         string
	Address       string
	OwnerID       int
	CreatedAt     time.Time
	AverageRating float64
	TotalRatings  int
	UserRating    *int
}

// RatingView is a rating enriched with the rater's name and email, as shown
// on the owner dashboard.
type RatingView struct {
	ID        int
	UserID    int
	StoreID   int
	Value     int
	CreatedAt time.Time
	UserName  string
	UserEmail string
}

// CreateStoreInput carries an admin store creation.
type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID int
}

// StoreService implements store listing, creation and the owner dashboard.
type StoreService interface {
	// ListStores returns all stores, or those matching search: stores are
	// first filtered by name substring; only when that yields nothing is the
	// address substring tried. The viewer (may be nil) controls UserRating
	// enrichment.
	ListStores(ctx context.Context, search string, viewer *domain.User) ([]StoreView, error)
	CreateStore(ctx context.Context, input CreateStoreInput) (*domain.Store, error)
	// OwnerStore returns the owner's store with aggregates, or
	// domain.ErrStoreNotFound when the owner has none.
	OwnerStore(ctx context.Context, ownerID int) (*StoreView, error)
	OwnerRatings(ctx context.Context, ownerID int) ([]RatingView, error)
}
