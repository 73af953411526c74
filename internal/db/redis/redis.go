// Package redis probes the key-value store engine.
package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/confsmith/confsmith/internal/db"
)

const probeKey = "confsmith:probe"

// Redis implements db.Prober for the key-value store.
type Redis struct {
	client *redis.Client
	opts   Options
}

// Options holds the key-value store connection parameters.
type Options struct {
	Addr     string // host:port
	Password string
	DB       int
	Timeout  time.Duration
}

// New creates an unconnected prober.
func New(opts Options) (*Redis, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("key-value store address is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = db.DefaultTimeout
	}
	return &Redis{opts: opts}, nil
}

// Connect dials the server and verifies it answers PING.
func (r *Redis) Connect(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:         r.opts.Addr,
		Password:     r.opts.Password,
		DB:           r.opts.DB,
		DialTimeout:  r.opts.Timeout,
		ReadTimeout:  r.opts.Timeout,
		WriteTimeout: r.opts.Timeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to ping key-value store: %w", err)
	}

	r.client = client
	return nil
}

// Disconnect closes the connection.
func (r *Redis) Disconnect(_ context.Context) error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	if r.client == nil {
		return fmt.Errorf("not connected to key-value store")
	}
	return r.client.Ping(ctx).Err()
}

// RoundTrip writes, reads back and deletes a probe key. The key carries
// a short TTL so an interrupted probe cannot leave litter behind.
func (r *Redis) RoundTrip(ctx context.Context) error {
	if r.client == nil {
		return fmt.Errorf("not connected to key-value store")
	}

	const probeValue = "ok"
	if err := r.client.Set(ctx, probeKey, probeValue, time.Minute).Err(); err != nil {
		return fmt.Errorf("probe write failed: %w", err)
	}

	got, err := r.client.Get(ctx, probeKey).Result()
	if err != nil {
		return fmt.Errorf("probe read failed: %w", err)
	}
	if got != probeValue {
		return fmt.Errorf("probe read returned %q, want %q", got, probeValue)
	}

	if err := r.client.Del(ctx, probeKey).Err(); err != nil {
		return fmt.Errorf("probe delete failed: %w", err)
	}
	return nil
}

// Info reports the server version and memory use from INFO.
func (r *Redis) Info(ctx context.Context) (*db.Info, error) {
	if r.client == nil {
		return nil, fmt.Errorf("not connected to key-value store")
	}

	raw, err := r.client.Info(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("INFO failed: %w", err)
	}

	fields := parseInfo(raw)
	info := &db.Info{
		Engine:  "key-value-store",
		Version: fields["redis_version"],
		Details: map[string]string{},
	}
	if mem, ok := fields["used_memory_human"]; ok {
		info.Details["used_memory"] = mem
	}
	if mode, ok := fields["redis_mode"]; ok {
		info.Details["mode"] = mode
	}
	return info, nil
}

// parseInfo splits the INFO reply into key/value pairs, skipping section
// headers and blank lines.
func parseInfo(raw string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if key, value, ok := strings.Cut(line, ":"); ok {
			fields[key] = value
		}
	}
	return fields
}
