package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

type RatingRepository struct {
	mu      sync.RWMutex
	ratings map[string]domain.Rating // keyed by "<userID>-<storeID>"
	nextID  int
}

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{ratings: make(map[string]domain.Rating), nextID: 1}
}

func ratingKey(userID, storeID int) string {
	return fmt.Sprintf("%d-%d", userID, storeID)
}

func (r *RatingRepository) Create(_ context.Context, rating *domain.Rating) (*domain.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ratingKey(rating.UserID, rating.StoreID)
	if _, exists := r.ratings[key]; exists {
		return nil, domain.ErrRatingExists
	}

	created := *rating
	created.ID = r.nextID
	r.nextID++
	r.ratings[key] = created

	clone := created
	return &clone, nil
}

func (r *RatingRepository) Find(_ context.Context, userID, storeID int) (*domain.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rating, ok := r.ratings[ratingKey(userID, storeID)]
	if !ok {
		return nil, domain.ErrRatingNotFound
	}
	clone := rating
	return &clone, nil
}

func (r *RatingRepository) UpdateValue(_ context.Context, userID, storeID, value int) (*domain.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ratingKey(userID, storeID)
	rating, ok := r.ratings[key]
	if !ok {
		return nil, domain.ErrRatingNotFound
	}
	rating.Value = value
	r.ratings[key] = rating

	clone := rating
	return &clone, nil
}

func (r *RatingRepository) ListByStore(_ context.Context, storeID int) ([]domain.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Rating, 0)
	for _, rating := range r.ratings {
		if rating.StoreID == storeID {
			out = append(out, rating)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RatingRepository) AggregateByStore(_ context.Context, storeID int) (domain.StoreAggregate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sum, count int
	for _, rating := range r.ratings {
		if rating.StoreID == storeID {
			sum += rating.Value
			count++
		}
	}

	agg := domain.StoreAggregate{Count: count}
	if count > 0 {
		agg.Average = float64(sum) / float64(count)
	}
	return agg, nil
}

func (r *RatingRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.ratings)), nil
}
