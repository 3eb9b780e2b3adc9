package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
	"github.com/ratehub/store-ratings-api/internal/infrastructure/memory"
)

type adminFixture struct {
	svc     *AdminService
	users   *memory.UserRepository
	stores  *memory.StoreRepository
	ratings *memory.RatingRepository
}

func newAdminFixture() *adminFixture {
	users := memory.NewUserRepository()
	stores := memory.NewStoreRepository()
	ratings := memory.NewRatingRepository()
	return &adminFixture{
		svc:     NewAdminService(users, stores, ratings, zerolog.Nop()),
		users:   users,
		stores:  stores,
		ratings: ratings,
	}
}

func TestAdminService_Statistics(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	stats, err := f.svc.Statistics(ctx)
	if err != nil {
		t.Fatalf("Statistics failed: %v", err)
	}
	if stats.TotalUsers != 0 || stats.TotalStores != 0 || stats.TotalRatings != 0 {
		t.Fatalf("expected empty statistics, got %+v", stats)
	}

	u, _ := f.users.Create(ctx, &domain.User{Name: "n", Email: "a@example.com", Role: domain.RoleUser})
	s, _ := f.stores.Create(ctx, &domain.Store{Name: "n", Email: "s@example.com"})
	if _, err := f.ratings.Create(ctx, &domain.Rating{UserID: u.ID, StoreID: s.ID, Value: 3}); err != nil {
		t.Fatalf("seed rating: %v", err)
	}

	stats, _ = f.svc.Statistics(ctx)
	if stats.TotalUsers != 1 || stats.TotalStores != 1 || stats.TotalRatings != 1 {
		t.Fatalf("expected 1/1/1, got %+v", stats)
	}
}

func TestAdminService_ListUsers_OwnerEnrichment(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	owner, _ := f.users.Create(ctx, &domain.User{
		Name: "Storefront Owner With Long Name", Email: "owner@example.com", Role: domain.RoleOwner, CreatedAt: time.Now().UTC(),
	})
	bare, _ := f.users.Create(ctx, &domain.User{
		Name: "Owner Without Any Store Yet Ok", Email: "bare@example.com", Role: domain.RoleOwner, CreatedAt: time.Now().UTC(),
	})
	customer, _ := f.users.Create(ctx, &domain.User{
		Name: "Regular Customer With Long Name", Email: "cust@example.com", Role: domain.RoleUser, CreatedAt: time.Now().UTC(),
	})

	store, _ := f.stores.Create(ctx, &domain.Store{
		Name: "Downtown Groceries & Provisions", Email: "dg@example.com", OwnerID: owner.ID,
	})
	if _, err := f.ratings.Create(ctx, &domain.Rating{UserID: customer.ID, StoreID: store.ID, Value: 4}); err != nil {
		t.Fatalf("seed rating: %v", err)
	}

	views, err := f.svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 users, got %d", len(views))
	}

	byID := make(map[int]ports.UserView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}

	if v := byID[owner.ID]; v.StoreName == nil || *v.StoreName != store.Name || v.StoreRating == nil || *v.StoreRating != 4 {
		t.Fatalf("owner view missing store enrichment: %+v", v)
	}
	if v := byID[bare.ID]; v.StoreName != nil || v.StoreRating != nil {
		t.Fatalf("owner without store must not be enriched: %+v", v)
	}
	if v := byID[customer.ID]; v.StoreName != nil || v.StoreRating != nil {
		t.Fatalf("non-owner must not be enriched: %+v", v)
	}
}

func TestAdminService_CreateUser(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	created, err := f.svc.CreateUser(ctx, ports.CreateUserInput{
		Name:     "Brand New Administrator Person",
		Email:    "new-admin@example.com",
		Password: "Sup3rSecret!",
		Address:  "1 Admin Way",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if created.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %q", created.Role)
	}
	if ok, err := ComparePasswords("Sup3rSecret!", created.PasswordHash); err != nil || !ok {
		t.Fatalf("stored hash does not verify: ok=%v err=%v", ok, err)
	}

	// invalid role
	var ve *domain.ValidationError
	_, err = f.svc.CreateUser(ctx, ports.CreateUserInput{
		Name: "Whoever This Is Supposed To Be", Email: "x@example.com", Password: "Sup3rSecret!", Role: "superuser",
	})
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error for bad role, got %v", err)
	}

	// duplicate email, case-insensitive
	_, err = f.svc.CreateUser(ctx, ports.CreateUserInput{
		Name: "Duplicate Email Account Holder", Email: "NEW-ADMIN@example.com", Password: "Sup3rSecret!", Role: domain.RoleUser,
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}
