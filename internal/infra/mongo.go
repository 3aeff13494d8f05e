package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongoDatabase connects to MongoDB and returns the configured database
// handle. It returns (nil, nil, nil) when no Mongo URI is configured. The
// returned disconnect func must be called on shutdown.
func NewMongoDatabase(ctx context.Context, cfg *Config) (*mongo.Database, func(context.Context) error, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("config is required")
	}
	uri := strings.TrimSpace(cfg.MongoURI)
	if uri == "" {
		return nil, nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(20).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client.Database(cfg.MongoDatabase), client.Disconnect, nil
}
