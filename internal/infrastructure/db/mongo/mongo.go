// Package mongo implements the repository ports on MongoDB. Entities keep
// sequential integer ids (a counters collection hands them out) and the
// uniqueness rules live in indexes, so concurrent writers cannot slip
// duplicates past the services' pre-checks.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config selects the MongoDB deployment and database.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect dials the deployment and pings it before handing the database
// back; an unreachable Mongo stops startup rather than failing per request.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("store-ratings-api").
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// caseInsensitive is the collation applied to email lookups and unique
// indexes so "Foo@Bar.com" and "foo@bar.com" collide.
func caseInsensitive() *options.Collation {
	return &options.Collation{Locale: "en", Strength: 2}
}
