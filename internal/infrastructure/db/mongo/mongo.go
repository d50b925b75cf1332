package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	connectTimeout = 10 * time.Second
	maxPoolSize    = 100
	appName        = "catalog-system"
)

// Config carries the connection settings for the platform's MongoDB
// deployment, shared by the identity and catalog binaries.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// clientOptions translates the Config into driver options with the
// platform's pool sizing and app name applied.
func (c Config) clientOptions() *options.ClientOptions {
	return options.Client().
		ApplyURI(c.URI).
		SetAppName(appName).
		SetMaxPoolSize(maxPoolSize)
}

// Connect establishes a client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, cfg.clientOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
