package ports

import (
	"context"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// RatingRepository defines persistence operations for ratings.
//
// The (UserID, StoreID) pair is a compound uniqueness key. Create must refuse
// to overwrite an existing pair and return domain.ErrRatingExists on a
// collision, so the service can fall back to UpdateValue when two submissions
// race past the existence check.
type RatingRepository interface {
	Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error)
	// Find returns the rating for (userID, storeID), or domain.ErrRatingNotFound.
	Find(ctx context.Context, userID, storeID int) (*domain.Rating, error)
	// UpdateValue overwrites only the star value, preserving id and createdAt.
	UpdateValue(ctx context.Context, userID, storeID, value int) (*domain.Rating, error)
	ListByStore(ctx context.Context, storeID int) ([]domain.Rating, error)
	// AggregateByStore computes the mean and count for one store; mean is 0
	// when the store has no ratings.
	AggregateByStore(ctx context.Context, storeID int) (domain.StoreAggregate, error)
	Count(ctx context.Context) (int64, error)
}
