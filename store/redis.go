package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/etnz/fintrack"
	"github.com/go-redis/redis/v8"
)

// Redis is the remote document store: one JSON document per user.
type Redis struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedis returns a Store using client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client, now: time.Now}
}

// OpenRedis connects lazily to the redis server at rawURL.
func OpenRedis(rawURL string) (*Redis, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return NewRedis(redis.NewClient(opts)), nil
}

func documentKey(username string) string { return "users:" + username }

// Load implements Store.
func (r *Redis) Load(ctx context.Context, username string) (fintrack.Bundle, error) {
	data, err := r.client.Get(ctx, documentKey(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		return fintrack.Bundle{}, ErrNotFound
	}
	if err != nil {
		return fintrack.Bundle{}, fmt.Errorf("redis get %q: %w", username, err)
	}
	return fintrack.DecodeBundle(bytes.NewReader(data))
}

// Save implements Store.
func (r *Redis) Save(ctx context.Context, username string, b fintrack.Bundle) error {
	b.LastUpdated = r.now().UTC()
	var buf bytes.Buffer
	if err := fintrack.EncodeBundle(&buf, b); err != nil {
		return err
	}
	if err := r.client.Set(ctx, documentKey(username), buf.String(), 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", username, err)
	}
	return nil
}

// Close implements Store.
func (r *Redis) Close() error { return r.client.Close() }
