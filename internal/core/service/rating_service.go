package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// RatingService implements rating submission.
type RatingService struct {
	ratings ports.RatingRepository
	stores  ports.StoreRepository
	logger  zerolog.Logger
}

func NewRatingService(ratings ports.RatingRepository, stores ports.StoreRepository, logger zerolog.Logger) *RatingService {
	return &RatingService{ratings: ratings, stores: stores, logger: logger}
}

// Submit records a rating for a store. The first submission per (user, store)
// creates a record; later ones overwrite the value in place, keeping the
// original id and createdAt. When the existence check loses a race against a
// concurrent create, the unique index surfaces domain.ErrRatingExists and the
// submission degrades to an update.
func (s *RatingService) Submit(ctx context.Context, input ports.SubmitRatingInput) (*ports.SubmitRatingResult, error) {
	if input.Value < domain.MinRating || input.Value > domain.MaxRating {
		return nil, domain.NewValidationError("rating", "rating must be between 1 and 5")
	}

	if _, err := s.stores.FindByID(ctx, input.StoreID); err != nil {
		return nil, err
	}

	_, err := s.ratings.Find(ctx, input.UserID, input.StoreID)
	switch {
	case err == nil:
		return s.overwrite(ctx, input)
	case errors.Is(err, domain.ErrRatingNotFound):
		// fall through to create
	default:
		return nil, err
	}

	created, err := s.ratings.Create(ctx, &domain.Rating{
		UserID:    input.UserID,
		StoreID:   input.StoreID,
		Value:     input.Value,
		CreatedAt: time.Now().UTC(),
	})
	if errors.Is(err, domain.ErrRatingExists) {
		return s.overwrite(ctx, input)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("user_id", input.UserID).Int("store_id", input.StoreID).Int("rating", input.Value).Msg("rating created")
	return &ports.SubmitRatingResult{Rating: created, Created: true}, nil
}

func (s *RatingService) overwrite(ctx context.Context, input ports.SubmitRatingInput) (*ports.SubmitRatingResult, error) {
	updated, err := s.ratings.UpdateValue(ctx, input.UserID, input.StoreID, input.Value)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("user_id", input.UserID).Int("store_id", input.StoreID).Int("rating", input.Value).Msg("rating updated")
	return &ports.SubmitRatingResult{Rating: updated, Created: false}, nil
}
