package suite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	expireDuration  = 300
	maxWaitDuration = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "7-alpine"
)

var errDockerUnavailable = errors.New("docker is not reachable")

// Redis is one throwaway redis container shared by the tests of a package.
// Start it from TestMain and Close it after m.Run.
type Redis struct {
	pool     *dockertest.Pool
	resource *dockertest.Resource
	client   *redis.Client

	skipReason string
}

// Suite is what a single test gets: a flushed database and a quiet logger.
type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage *redis.Client
}

// StartRedis - runs the container. Without docker it returns a Redis that
// skips every test asking for it, so the rest of the package still runs.
func StartRedis(short bool) (*Redis, error) {
	if short {
		return &Redis{skipReason: "redis suite skipped in short mode"}, nil
	}

	pool, err := dockertest.NewPool("")
	if err == nil {
		err = pool.Client.Ping()
	}

	if err != nil {
		return &Redis{skipReason: fmt.Sprintf("%v: %v", errDockerUnavailable, err)}, nil
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("could not start redis: %w", err)
	}

	// hard kill in case Close is never reached
	_ = resource.Expire(expireDuration)

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer cancel()

	pool.MaxWait = maxWaitDuration

	client := redis.NewClient(&redis.Options{Addr: resource.GetHostPort(redisPort)})

	if err = pool.Retry(func() error {
		return client.Ping(ctx).Err()
	}); err != nil {
		_ = client.Close()
		_ = pool.Purge(resource)

		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	return &Redis{pool: pool, resource: resource, client: client}, nil
}

// Close - drops the client and the container.
func (that *Redis) Close() error {
	if that.client == nil {
		return nil
	}

	if err := that.client.Close(); err != nil {
		return fmt.Errorf("could not close redis client: %w", err)
	}

	if err := that.pool.Purge(that.resource); err != nil {
		return fmt.Errorf("could not purge redis: %w", err)
	}

	return nil
}

// New - hands t an empty database. Tests sharing a Redis must not run in
// parallel.
func (that *Redis) New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	if that.skipReason != "" {
		t.Skip(that.skipReason)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	if err := that.client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	return ctx, &Suite{
		T:       t,
		Logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Storage: that.client,
	}
}

// KeyTTL - remaining lifetime of key; negative when it never expires.
func (that *Suite) KeyTTL(ctx context.Context, key string) time.Duration {
	that.Helper()

	ttl, err := that.Storage.TTL(ctx, key).Result()
	if err != nil {
		that.Fatalf("could not read ttl of %s: %v", key, err)
	}

	return ttl
}

// Age - shortens the lifetime of key to ttl, standing in for elapsed time.
func (that *Suite) Age(ctx context.Context, key string, ttl time.Duration) {
	that.Helper()

	if err := that.Storage.Expire(ctx, key, ttl).Err(); err != nil {
		that.Fatalf("could not expire %s: %v", key, err)
	}
}
