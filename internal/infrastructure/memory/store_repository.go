package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

type StoreRepository struct {
	mu     sync.RWMutex
	stores map[int]domain.Store
	nextID int
}

func NewStoreRepository() *StoreRepository {
	return &StoreRepository{stores: make(map[int]domain.Store), nextID: 1}
}

func (r *StoreRepository) Create(_ context.Context, store *domain.Store) (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.stores {
		if strings.EqualFold(s.Email, store.Email) {
			return nil, domain.ErrEmailTaken
		}
	}

	created := *store
	created.ID = r.nextID
	r.nextID++
	r.stores[created.ID] = created

	clone := created
	return &clone, nil
}

func (r *StoreRepository) FindByID(_ context.Context, id int) (*domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.stores[id]
	if !ok {
		return nil, domain.ErrStoreNotFound
	}
	clone := s
	return &clone, nil
}

func (r *StoreRepository) FindByOwner(_ context.Context, ownerID int) (*domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.sortedIDs() {
		s := r.stores[id]
		if s.OwnerID == ownerID {
			clone := s
			return &clone, nil
		}
	}
	return nil, domain.ErrStoreNotFound
}

func (r *StoreRepository) List(_ context.Context) ([]domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(domain.Store) bool { return true }), nil
}

func (r *StoreRepository) SearchByName(_ context.Context, name string) ([]domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(name)
	return r.filter(func(s domain.Store) bool {
		return strings.Contains(strings.ToLower(s.Name), needle)
	}), nil
}

func (r *StoreRepository) SearchByAddress(_ context.Context, address string) ([]domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(address)
	return r.filter(func(s domain.Store) bool {
		return strings.Contains(strings.ToLower(s.Address), needle)
	}), nil
}

func (r *StoreRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.stores)), nil
}

// filter returns matching stores in id order; callers hold the lock.
func (r *StoreRepository) filter(match func(domain.Store) bool) []domain.Store {
	out := make([]domain.Store, 0, len(r.stores))
	for _, id := range r.sortedIDs() {
		if s := r.stores[id]; match(s) {
			out = append(out, s)
		}
	}
	return out
}

func (r *StoreRepository) sortedIDs() []int {
	ids := make([]int, 0, len(r.stores))
	for id := range r.stores {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
