// Package db provides database connection infrastructure.
// This is part of the platform layer and contains no business logic.
package db

import (
	"context"
	"time"

	"evmaint_backend/platform/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect creates a MongoDB client with production-ready settings and verifies
// connectivity with a ping.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.GetMongoURL()).
		SetMaxPoolSize(25).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(30 * time.Minute).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return client, nil
}

// ClientAdapter adapts a mongo client to the HealthChecker interface used by
// the readiness endpoint.
type ClientAdapter struct {
	client *mongo.Client
}

// NewClientAdapter wraps a mongo client for health checks.
func NewClientAdapter(client *mongo.Client) *ClientAdapter {
	return &ClientAdapter{client: client}
}

// Ping verifies the database connection is alive.
func (a *ClientAdapter) Ping(ctx context.Context) error {
	return a.client.Ping(ctx, readpref.Primary())
}
