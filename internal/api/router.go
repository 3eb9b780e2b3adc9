package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ratehub/store-ratings-api/internal/api/handler"
	"github.com/ratehub/store-ratings-api/internal/api/middleware"
	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
	"github.com/ratehub/store-ratings-api/internal/core/service"
)

// Dependencies carries everything the router needs. Mongo and Redis are nil
// when the memory storage driver is active; the readiness probe then has
// nothing to check.
type Dependencies struct {
	Users    ports.UserRepository
	Stores   ports.StoreRepository
	Ratings  ports.RatingRepository
	Sessions ports.SessionStore

	Mongo *mongo.Database
	Redis *redis.Client

	JWTSecret    string
	SessionTTL   time.Duration
	SecureCookie bool
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storeratings"))

	// --- Services ---
	authService := service.NewAuthService(deps.Users, deps.Sessions, deps.JWTSecret, deps.SessionTTL, deps.Logger)
	storeService := service.NewStoreService(deps.Stores, deps.Ratings, deps.Users, deps.Logger)
	ratingService := service.NewRatingService(deps.Ratings, deps.Stores, deps.Logger)
	adminService := service.NewAdminService(deps.Users, deps.Stores, deps.Ratings, deps.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, deps.SessionTTL, deps.SecureCookie)
	adminHandler := handler.NewAdminHandler(adminService, storeService)
	storeHandler := handler.NewStoreHandler(storeService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	ownerHandler := handler.NewOwnerHandler(storeService)

	session := middleware.Session(deps.JWTSecret, deps.Sessions, deps.Users)

	// --- Public routes ---
	e.POST("/api/register", authHandler.Register)
	e.POST("/api/login", authHandler.Login)

	// --- Any authenticated identity ---
	authed := e.Group("/api", session)
	authed.POST("/logout", authHandler.Logout)
	authed.GET("/user", authHandler.Me)
	authed.POST("/change-password", authHandler.ChangePassword)
	authed.GET("/stores", storeHandler.List)

	// --- Normal users only ---
	authed.POST("/ratings", ratingHandler.Submit, middleware.RequireRole(domain.RoleUser))

	// --- Admin only ---
	admin := authed.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/statistics", adminHandler.Statistics)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.CreateUser)
	admin.GET("/stores", adminHandler.ListStores)
	admin.POST("/stores", adminHandler.CreateStore)

	// --- Store owners only ---
	owner := authed.Group("/owner", middleware.RequireRole(domain.RoleOwner))
	owner.GET("/store", ownerHandler.Store)
	owner.GET("/ratings", ownerHandler.Ratings)

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
