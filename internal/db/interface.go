package db

import (
	"context"
	"time"
)

// Info summarizes a reachable engine for operator output.
type Info struct {
	Engine  string
	Version string
	Details map[string]string
}

// Prober is the common surface for connection smoke tests against a
// provisioned engine: connect, ping, prove a write/read/delete round
// trip, and report what is running.
type Prober interface {
	Connect(ctx context.Context) error
	Ping(ctx context.Context) error
	RoundTrip(ctx context.Context) error
	Info(ctx context.Context) (*Info, error)
	Disconnect(ctx context.Context) error
}

// Config carries the connection parameters shared by all probers.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// DefaultTimeout bounds every probe operation unless overridden.
const DefaultTimeout = 5 * time.Second

// EffectiveTimeout returns the configured timeout or the default.
func (c *Config) EffectiveTimeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}
