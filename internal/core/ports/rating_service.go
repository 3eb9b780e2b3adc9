package ports

import (
	"context"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// SubmitRatingInput carries one rating submission.
type SubmitRatingInput struct {
	UserID  int
	StoreID int
	Value   int
}

// SubmitRatingResult reports the stored rating and whether it was newly
// created (first submission) or an overwrite of an existing one.
type SubmitRatingResult struct {
	Rating  *domain.Rating
	Created bool
}

// RatingService implements rating submission. A submission for an unknown
// store fails with domain.ErrStoreNotFound and changes nothing.
type RatingService interface {
	Submit(ctx context.Context, input SubmitRatingInput) (*SubmitRatingResult, error)
}
