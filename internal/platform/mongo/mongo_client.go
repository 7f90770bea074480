// Package mongo opens the MongoDB client backing the document cache.
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Config holds connection settings for MongoDB.
type Config struct {
	URI        string
	Database   string
	Collection string
}

// LoadConfig reads MONGO_URI, MONGO_DATABASE and MONGO_COLLECTION.
func LoadConfig() Config {
	cfg := Config{
		URI:        os.Getenv("MONGO_URI"),
		Database:   os.Getenv("MONGO_DATABASE"),
		Collection: os.Getenv("MONGO_COLLECTION"),
	}
	if cfg.Database == "" {
		cfg.Database = "ohlcv"
	}
	if cfg.Collection == "" {
		cfg.Collection = "record_cache"
	}
	return cfg
}

// NewMongoClient connects and pings the primary once within probeTimeout.
func NewMongoClient(cfg Config, probeTimeout time.Duration) (*mongo.Client, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo: MONGO_URI is not set")
	}

	client, err := mongo.Connect(options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(probeTimeout))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		slog.Error("MongoDB connection failed", "database", cfg.Database, "error", err)
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	slog.Info("MongoDB connection successful", "database", cfg.Database)
	return client, nil
}
