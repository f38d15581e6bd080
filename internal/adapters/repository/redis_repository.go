package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/kaicrotty88/MyStudyPlanner/internal/ports"
)

// RedisRepository stores the snapshot blob under a single key per operating
// mode. Useful when the planner runs next to an existing Redis instance and
// the data directory is not writable.
type RedisRepository struct {
	client *redis.Client
	key    string
}

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisRepository connects to Redis and verifies the connection before
// returning the repository.
func NewRedisRepository(ctx context.Context, opts RedisOptions, mode string) (*RedisRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisRepository{
		client: client,
		key:    fmt.Sprintf("planner:snapshot:%s", mode),
	}, nil
}

// Load reads the snapshot key. A missing key maps to ErrSnapshotNotFound.
func (r *RedisRepository) Load(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot key: %w", err)
	}
	return data, nil
}

// Save replaces the snapshot key. Snapshots never expire.
func (r *RedisRepository) Save(ctx context.Context, data []byte) error {
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot key: %w", err)
	}
	return nil
}

// Delete removes the snapshot key.
func (r *RedisRepository) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot key: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *RedisRepository) Close() error {
	return r.client.Close()
}
