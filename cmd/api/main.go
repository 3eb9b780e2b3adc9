package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ratehub/store-ratings-api/internal/api"
	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
	"github.com/ratehub/store-ratings-api/internal/core/service"
	"github.com/ratehub/store-ratings-api/internal/infrastructure/config"
	mongodb "github.com/ratehub/store-ratings-api/internal/infrastructure/db/mongo"
	redisdb "github.com/ratehub/store-ratings-api/internal/infrastructure/db/redis"
	"github.com/ratehub/store-ratings-api/internal/infrastructure/memory"
	"github.com/ratehub/store-ratings-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	deps := api.Dependencies{
		JWTSecret:    cfg.JWTSecret,
		SessionTTL:   cfg.SessionTTL,
		SecureCookie: cfg.Production(),
		Logger:       log,
	}

	switch cfg.Storage {
	case "memory":
		log.Warn().Msg("memory storage driver active: state is lost on restart")
		deps.Users = memory.NewUserRepository()
		deps.Stores = memory.NewStoreRepository()
		deps.Ratings = memory.NewRatingRepository()
		deps.Sessions = memory.NewSessionStore()

	case "mongo":
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		users := mongodb.NewUserRepository(db)
		stores := mongodb.NewStoreRepository(db)
		ratings := mongodb.NewRatingRepository(db)
		if err := ensureIndexes(ctx, users, stores, ratings); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}

		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = rdb.Close() }()

		deps.Users = users
		deps.Stores = stores
		deps.Ratings = ratings
		deps.Sessions = redisdb.NewSessionStore(rdb)
		deps.Mongo = db
		deps.Redis = rdb

	default:
		log.Fatal().Str("driver", cfg.Storage).Msg("unknown storage driver")
	}

	if err := seedAdmin(ctx, deps.Users, cfg.Admin, log); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	e := api.NewRouter(deps)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

type indexed interface {
	EnsureIndexes(ctx context.Context) error
}

func ensureIndexes(ctx context.Context, repos ...indexed) error {
	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}

// seedAdmin creates the bootstrap admin account unless its email already
// exists, so an operator can always log in to a fresh deployment.
func seedAdmin(ctx context.Context, users ports.UserRepository, cfg config.AdminConfig, log zerolog.Logger) error {
	if _, err := users.FindByEmail(ctx, cfg.Email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := service.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	admin, err := users.Create(ctx, &domain.User{
		Name:         cfg.Name,
		Email:        cfg.Email,
		PasswordHash: hash,
		Address:      cfg.Address,
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		// lost a race against a concurrent instance seeding the same account
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil
		}
		return err
	}

	log.Info().Int("user_id", admin.ID).Str("email", admin.Email).Msg("admin account seeded")
	return nil
}
