package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ratehub/store-ratings-api/internal/api/middleware"
	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/service"
	"github.com/ratehub/store-ratings-api/internal/infrastructure/memory"
)

type apiFixture struct {
	e       *echo.Echo
	users   *memory.UserRepository
	stores  *memory.StoreRepository
	ratings *memory.RatingRepository
}

func (f *apiFixture) do(t *testing.T, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) seedUser(t *testing.T, name, email, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := service.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := f.users.Create(context.Background(), &domain.User{
		Name: name, Email: email, PasswordHash: hash, Address: "seeded", Role: role, CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// TestRouter walks the API the way a client would: one Echo instance, one set
// of in-memory repositories, and subtests that build on each other's state.
// The prometheus middleware registers collectors globally, so the router is
// constructed exactly once.
func TestRouter(t *testing.T) {
	f := &apiFixture{
		users:   memory.NewUserRepository(),
		stores:  memory.NewStoreRepository(),
		ratings: memory.NewRatingRepository(),
	}
	f.e = NewRouter(Dependencies{
		Users:      f.users,
		Stores:     f.stores,
		Ratings:    f.ratings,
		Sessions:   memory.NewSessionStore(),
		JWTSecret:  "router-test-secret",
		SessionTTL: time.Hour,
		Logger:     zerolog.Nop(),
	})

	f.seedUser(t, "Platform Administrator Person", "admin@example.com", "Admin123!", domain.RoleAdmin)

	var (
		userCookie  *http.Cookie
		adminCookie *http.Cookie
		ownerCookie *http.Cookie
		storeID     int
	)

	t.Run("register opens a session", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/register", `{
			"name": "Jonathan Quincy Ratingperson",
			"email": "jon@example.com",
			"password": "Passw0rd!",
			"address": "12 Elm Street"
		}`, nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var body struct {
			Role  string `json:"role"`
			Email string `json:"email"`
		}
		decode(t, rec, &body)
		if body.Role != "user" {
			t.Fatalf("self-registration must yield role user, got %q", body.Role)
		}
		userCookie = sessionCookie(t, rec)
	})

	t.Run("duplicate registration is a 400", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/register", `{
			"name": "Jonathan Quincy Ratingperson",
			"email": "JON@example.com",
			"password": "Passw0rd!",
			"address": "12 Elm Street"
		}`, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for duplicate email, got %d", rec.Code)
		}
	})

	t.Run("validation failures name their fields", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/register", `{
			"name": "short",
			"email": "not-an-email",
			"password": "lowercaseonly",
			"address": "12 Elm Street"
		}`, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}

		var body struct {
			Errors map[string]string `json:"errors"`
		}
		decode(t, rec, &body)
		for _, field := range []string{"name", "email", "password"} {
			if body.Errors[field] == "" {
				t.Fatalf("expected an error for %q, got %v", field, body.Errors)
			}
		}
	})

	t.Run("protected routes 401 without a session", func(t *testing.T) {
		for _, path := range []string{"/api/user", "/api/stores", "/api/admin/statistics", "/api/owner/store"} {
			rec := f.do(t, http.MethodGet, path, "", nil)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("GET %s without cookie: expected 401, got %d", path, rec.Code)
			}
		}
	})

	t.Run("admin login and provisioning", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/login", `{"email":"admin@example.com","password":"Admin123!"}`, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("admin login: expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		adminCookie = sessionCookie(t, rec)

		rec = f.do(t, http.MethodPost, "/api/admin/users", `{
			"name": "Olivia Ownsfield The Merchant",
			"email": "owner@example.com",
			"password": "Owner123!",
			"address": "3 Commerce Blvd",
			"role": "owner"
		}`, adminCookie)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create owner: expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		var owner struct {
			ID int `json:"id"`
		}
		decode(t, rec, &owner)

		rec = f.do(t, http.MethodPost, "/api/admin/stores", `{
			"name": "Downtown Groceries And More",
			"email": "store@example.com",
			"address": "42 Market Street",
			"ownerId": `+strconv.Itoa(owner.ID)+`
		}`, adminCookie)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create store: expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		var store struct {
			ID int `json:"id"`
		}
		decode(t, rec, &store)
		storeID = store.ID

		rec = f.do(t, http.MethodPost, "/api/login", `{"email":"owner@example.com","password":"Owner123!"}`, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("owner login: expected 200, got %d", rec.Code)
		}
		ownerCookie = sessionCookie(t, rec)
	})

	t.Run("normal user cannot reach admin routes", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/admin/statistics", "", userCookie)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("admin cannot submit ratings", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/ratings", `{"storeId":`+strconv.Itoa(storeID)+`,"rating":5}`, adminCookie)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("rating create then overwrite", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/ratings", `{"storeId":`+strconv.Itoa(storeID)+`,"rating":4}`, userCookie)
		if rec.Code != http.StatusCreated {
			t.Fatalf("first rating: expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		var first struct {
			ID     int `json:"id"`
			Rating int `json:"rating"`
		}
		decode(t, rec, &first)
		if first.Rating != 4 {
			t.Fatalf("expected rating 4, got %d", first.Rating)
		}

		rec = f.do(t, http.MethodPost, "/api/ratings", `{"storeId":`+strconv.Itoa(storeID)+`,"rating":2}`, userCookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("overwrite: expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var second struct {
			ID     int `json:"id"`
			Rating int `json:"rating"`
		}
		decode(t, rec, &second)
		if second.ID != first.ID || second.Rating != 2 {
			t.Fatalf("overwrite must keep the id: first=%+v second=%+v", first, second)
		}
	})

	t.Run("store listing reflects the viewer", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/stores", "", userCookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var stores []struct {
			AverageRating float64 `json:"averageRating"`
			TotalRatings  int     `json:"totalRatings"`
			UserRating    *int    `json:"userRating"`
		}
		decode(t, rec, &stores)
		if len(stores) != 1 {
			t.Fatalf("expected 1 store, got %d", len(stores))
		}
		s := stores[0]
		if s.AverageRating != 2 || s.TotalRatings != 1 {
			t.Fatalf("expected average 2 over 1 rating, got %v over %d", s.AverageRating, s.TotalRatings)
		}
		if s.UserRating == nil || *s.UserRating != 2 {
			t.Fatalf("expected userRating 2, got %v", s.UserRating)
		}
	})

	t.Run("empty search is an empty list", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/stores?search=zzzzzz", "", userCookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
			t.Fatalf("expected empty array, got %s", body)
		}
	})

	t.Run("rating an unknown store is a 404", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/ratings", `{"storeId":9999,"rating":3}`, userCookie)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("owner dashboard", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/owner/store", "", ownerCookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var store struct {
			AverageRating float64 `json:"averageRating"`
			TotalRatings  int     `json:"totalRatings"`
		}
		decode(t, rec, &store)
		if store.AverageRating != 2 || store.TotalRatings != 1 {
			t.Fatalf("owner view aggregates off: %+v", store)
		}

		rec = f.do(t, http.MethodGet, "/api/owner/ratings", "", ownerCookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var ratings []struct {
			Rating    int    `json:"rating"`
			UserName  string `json:"userName"`
			UserEmail string `json:"userEmail"`
		}
		decode(t, rec, &ratings)
		if len(ratings) != 1 || ratings[0].Rating != 2 || ratings[0].UserEmail != "jon@example.com" {
			t.Fatalf("unexpected owner ratings: %+v", ratings)
		}
	})

	t.Run("admin statistics", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/admin/statistics", "", adminCookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var stats struct {
			TotalUsers   int64 `json:"totalUsers"`
			TotalStores  int64 `json:"totalStores"`
			TotalRatings int64 `json:"totalRatings"`
		}
		decode(t, rec, &stats)
		if stats.TotalUsers != 3 || stats.TotalStores != 1 || stats.TotalRatings != 1 {
			t.Fatalf("expected 3/1/1, got %+v", stats)
		}

		rec = f.do(t, http.MethodGet, "/api/admin/stores", "", adminCookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("admin stores: expected 200, got %d", rec.Code)
		}
		var stores []struct {
			AverageRating float64 `json:"averageRating"`
			TotalRatings  int     `json:"totalRatings"`
			UserRating    *int    `json:"userRating"`
		}
		decode(t, rec, &stores)
		if len(stores) != 1 || stores[0].AverageRating != 2 || stores[0].TotalRatings != 1 {
			t.Fatalf("admin store listing aggregates off: %+v", stores)
		}
		if stores[0].UserRating != nil {
			t.Fatalf("admin listing must not carry userRating")
		}
	})

	t.Run("admin users listing enriches owners", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/admin/users", "", adminCookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var users []struct {
			Role        string   `json:"role"`
			StoreName   *string  `json:"storeName"`
			StoreRating *float64 `json:"storeRating"`
		}
		decode(t, rec, &users)

		var sawOwner bool
		for _, u := range users {
			switch u.Role {
			case "owner":
				sawOwner = true
				if u.StoreName == nil || u.StoreRating == nil || *u.StoreRating != 2 {
					t.Fatalf("owner row missing store enrichment: %+v", u)
				}
			default:
				if u.StoreName != nil || u.StoreRating != nil {
					t.Fatalf("non-owner row must not be enriched: %+v", u)
				}
			}
		}
		if !sawOwner {
			t.Fatalf("expected an owner row")
		}
	})

	t.Run("change password and relogin", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/change-password", `{
			"currentPassword": "Passw0rd!",
			"newPassword": "N3wSecret!",
			"confirmPassword": "N3wSecret!"
		}`, userCookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("change password: expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		rec = f.do(t, http.MethodPost, "/api/login", `{"email":"jon@example.com","password":"Passw0rd!"}`, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("old password must stop working, got %d", rec.Code)
		}
		rec = f.do(t, http.MethodPost, "/api/login", `{"email":"jon@example.com","password":"N3wSecret!"}`, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("new password must work, got %d", rec.Code)
		}
		userCookie = sessionCookie(t, rec)
	})

	t.Run("logout revokes the session", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/logout", "", userCookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("logout: expected 200, got %d", rec.Code)
		}

		rec = f.do(t, http.MethodGet, "/api/user", "", userCookie)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("revoked session must 401, got %d", rec.Code)
		}
	})

	t.Run("probes answer without auth", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/health", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("liveness: expected 200, got %d", rec.Code)
		}
		rec = f.do(t, http.MethodGet, "/health/ready", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("readiness: expected 200, got %d", rec.Code)
		}
	})
}
