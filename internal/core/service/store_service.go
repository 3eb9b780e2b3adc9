package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// StoreService implements store listing, creation and the owner dashboard.
type StoreService struct {
	stores  ports.StoreRepository
	ratings ports.RatingRepository
	users   ports.UserRepository
	logger  zerolog.Logger
}

func NewStoreService(stores ports.StoreRepository, ratings ports.RatingRepository, users ports.UserRepository, logger zerolog.Logger) *StoreService {
	return &StoreService{stores: stores, ratings: ratings, users: users, logger: logger}
}

// ListStores returns stores enriched with their rating aggregates. When
// search is non-empty, name substrings are tried first and the address
// fallback only runs when the name search matched nothing. UserRating is
// filled in only for viewers with RoleUser.
func (s *StoreService) ListStores(ctx context.Context, search string, viewer *domain.User) ([]ports.StoreView, error) {
	var (
		stores []domain.Store
		err    error
	)

	if search != "" {
		stores, err = s.stores.SearchByName(ctx, search)
		if err == nil && len(stores) == 0 {
			stores, err = s.stores.SearchByAddress(ctx, search)
		}
	} else {
		stores, err = s.stores.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	views := make([]ports.StoreView, 0, len(stores))
	for i := range stores {
		view, err := s.enrich(ctx, &stores[i], viewer)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// CreateStore creates a store for an existing owner. The owner must hold
// RoleOwner; the store email must be unused.
func (s *StoreService) CreateStore(ctx context.Context, input ports.CreateStoreInput) (*domain.Store, error) {
	owner, err := s.users.FindByID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner.Role != domain.RoleOwner {
		return nil, domain.NewValidationError("ownerId", "referenced user is not a store owner")
	}

	store := &domain.Store{
		Name:      input.Name,
		Email:     input.Email,
		Address:   input.Address,
		OwnerID:   input.OwnerID,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.stores.Create(ctx, store)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("store_id", created.ID).Int("owner_id", created.OwnerID).Msg("store created")
	return created, nil
}

// OwnerStore returns the owner's store with aggregates; the first store wins
// when an owner somehow has several.
func (s *StoreService) OwnerStore(ctx context.Context, ownerID int) (*ports.StoreView, error) {
	store, err := s.stores.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, store, nil)
}

// OwnerRatings lists all ratings for the owner's store, each enriched with
// the rater's name and email.
func (s *StoreService) OwnerRatings(ctx context.Context, ownerID int) ([]ports.RatingView, error) {
	store, err := s.stores.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	ratings, err := s.ratings.ListByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	views := make([]ports.RatingView, 0, len(ratings))
	for _, r := range ratings {
		view := ports.RatingView{
			ID:        r.ID,
			UserID:    r.UserID,
			StoreID:   r.StoreID,
			Value:     r.Value,
			CreatedAt: r.CreatedAt,
			UserName:  "Unknown",
			UserEmail: "unknown@example.com",
		}
		if user, err := s.users.FindByID(ctx, r.UserID); err == nil {
			view.UserName = user.Name
			view.UserEmail = user.Email
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// enrich computes the derived aggregates for one store and, for RoleUser
// viewers, their own rating.
func (s *StoreService) enrich(ctx context.Context, store *domain.Store, viewer *domain.User) (*ports.StoreView, error) {
	agg, err := s.ratings.AggregateByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	view := &ports.StoreView{
		ID:            store.ID,
		Name:          store.Name,
		Email:         store.Email,
		Address:       store.Address,
		OwnerID:       store.OwnerID,
		CreatedAt:     store.CreatedAt,
		AverageRating: agg.Average,
		TotalRatings:  agg.Count,
	}

	if viewer != nil && viewer.Role == domain.RoleUser {
		rating, err := s.ratings.Find(ctx, viewer.ID, store.ID)
		switch {
		case err == nil:
			value := rating.Value
			view.UserRating = &value
		case errors.Is(err, domain.ErrRatingNotFound):
			// unrated: leave UserRating nil
		default:
			return nil, err
		}
	}
	return view, nil
}
