package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// AdminService implements the admin dashboard operations.
type AdminService struct {
	users   ports.UserRepository
	stores  ports.StoreRepository
	ratings ports.RatingRepository
	logger  zerolog.Logger
}

func NewAdminService(users ports.UserRepository, stores ports.StoreRepository, ratings ports.RatingRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, stores: stores, ratings: ratings, logger: logger}
}

// Statistics returns the collection sizes at call time.
func (s *AdminService) Statistics(ctx context.Context) (*domain.Statistics, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalStores, err := s.stores.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalRatings, err := s.ratings.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Statistics{
		TotalUsers:   totalUsers,
		TotalStores:  totalStores,
		TotalRatings: totalRatings,
	}, nil
}

// ListUsers returns every user; owners that have a store carry the store's
// name and current average rating.
func (s *AdminService) ListUsers(ctx context.Context) ([]ports.UserView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ports.UserView, 0, len(users))
	for _, u := range users {
		view := ports.UserView{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Address:   u.Address,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		}

		if u.Role == domain.RoleOwner {
			store, err := s.stores.FindByOwner(ctx, u.ID)
			switch {
			case err == nil:
				agg, err := s.ratings.AggregateByStore(ctx, store.ID)
				if err != nil {
					return nil, err
				}
				name := store.Name
				avg := agg.Average
				view.StoreName = &name
				view.StoreRating = &avg
			case errors.Is(err, domain.ErrStoreNotFound):
				// owner without a store: no enrichment
			default:
				return nil, err
			}
		}

		views = append(views, view)
	}
	return views, nil
}

// CreateUser creates an account with an admin-chosen role. The email must be
// unused; the repository's unique index backs the pre-check.
func (s *AdminService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if !input.Role.Valid() {
		return nil, domain.NewValidationError("role", "role must be one of admin, user, owner")
	}

	if existing, err := s.users.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Address:      input.Address,
		Role:         input.Role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("user_id", created.ID).Str("role", string(created.Role)).Msg("user created by admin")
	return created, nil
}
