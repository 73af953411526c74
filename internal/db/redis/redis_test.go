package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProber(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	prober, err := New(Options{Addr: srv.Addr(), Timeout: 2 * time.Second})
	require.NoError(t, err)
	return prober, srv
}

func TestNewRequiresAddr(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestConnectAndPing(t *testing.T) {
	prober, _ := newTestProber(t)
	ctx := context.Background()

	require.NoError(t, prober.Connect(ctx))
	defer prober.Disconnect(ctx)

	assert.NoError(t, prober.Ping(ctx))
}

func TestConnectFailure(t *testing.T) {
	prober, srv := newTestProber(t)
	srv.Close()

	err := prober.Connect(context.Background())
	assert.ErrorContains(t, err, "failed to ping key-value store")
}

func TestRoundTrip(t *testing.T) {
	prober, srv := newTestProber(t)
	ctx := context.Background()

	require.NoError(t, prober.Connect(ctx))
	defer prober.Disconnect(ctx)

	require.NoError(t, prober.RoundTrip(ctx))

	// the probe key must not survive the round trip
	assert.False(t, srv.Exists(probeKey))
}

func TestOpsRequireConnection(t *testing.T) {
	prober, _ := newTestProber(t)
	ctx := context.Background()

	assert.Error(t, prober.Ping(ctx))
	assert.Error(t, prober.RoundTrip(ctx))
	_, err := prober.Info(ctx)
	assert.Error(t, err)
}

func TestParseInfo(t *testing.T) {
	raw := "# Server\r\nredis_version:7.2.4\r\nredis_mode:standalone\r\n\r\n# Memory\r\nused_memory_human:1.05M\r\n"

	fields := parseInfo(raw)
	assert.Equal(t, "7.2.4", fields["redis_version"])
	assert.Equal(t, "standalone", fields["redis_mode"])
	assert.Equal(t, "1.05M", fields["used_memory_human"])
	assert.NotContains(t, fields, "# Server")
}
