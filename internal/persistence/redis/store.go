// Package redis implements persistence.Store on a Redis server.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Options configures the Redis connection and key namespace.
type Options struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key so several deployments can share a server.
	Prefix string
}

// Store keeps booking documents as plain Redis string values.
type Store struct {
	rdb    redis.UniversalClient
	prefix string
}

// compareAndSetScript replaces KEYS[1] with ARGV[2] when its value equals ARGV[1].
// An empty ARGV[1] requires the key to be absent.
var compareAndSetScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if ARGV[1] == "" then
  if current then
    return 0
  end
elseif current ~= ARGV[1] then
  return 0
end
redis.call("SET", KEYS[1], ARGV[2])
return 1
`)

// Open connects to Redis and verifies the connection.
func Open(ctx context.Context, opts Options) (*Store, error) {
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		return nil, fmt.Errorf("redis: address is required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return New(rdb, opts.Prefix), nil
}

// New wraps an existing client.
func New(rdb redis.UniversalClient, prefix string) *Store {
	return &Store{rdb: rdb, prefix: prefix}
}

// Close releases the client.
func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

// Get implements persistence.Store.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.rdb.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis: get %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements persistence.Store.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

// Delete implements persistence.Store.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis: delete %s: %w", key, err)
	}
	return nil
}

// List implements persistence.Store. Keys are scanned incrementally so large
// databases are not blocked.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	match := escapePattern(s.prefix+prefix) + "*"
	keys := make([]string, 0)

	iter := s.rdb.Scan(ctx, 0, match, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis: list %q: %w", prefix, err)
	}

	sort.Strings(keys)
	return keys, nil
}

// CompareAndSet implements persistence.CompareAndSetter.
func (s *Store) CompareAndSet(ctx context.Context, key, expected, value string) (bool, error) {
	res, err := compareAndSetScript.Run(ctx, s.rdb, []string{s.key(key)}, expected, value).Int64()
	if err != nil {
		return false, fmt.Errorf("redis: compare and set %s: %w", key, err)
	}
	return res == 1, nil
}

func escapePattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)
	return replacer.Replace(s)
}
