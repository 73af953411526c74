package provision

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confsmith/confsmith/internal/document"
)

func TestApplyWritesNormalizedFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "redis.conf")

	doc, err := document.ParseRedis([]byte("maxmemory 64mb\nmaxmemory-policy allkeys-lru\n"))
	require.NoError(t, err)

	res, err := Apply("key-value-store", doc, target)
	require.NoError(t, err)
	assert.True(t, res.OK())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "maxmemory 67108864\n")
	assert.Contains(t, string(data), "maxmemory-policy allkeys-lru\n")
}

func TestApplyLeavesTargetUntouchedOnFailure(t *testing.T) {
	target := filepath.Join(t.TempDir(), "redis.conf")
	require.NoError(t, os.WriteFile(target, []byte("port 6379\n"), 0o644))

	doc, err := document.ParseRedis([]byte("port 70000\n"))
	require.NoError(t, err)

	res, err := Apply("key-value-store", doc, target)
	require.ErrorIs(t, err, ErrInvalidDocument)
	require.NotNil(t, res)
	assert.False(t, res.OK())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "port 6379\n", string(data))
}

func TestApplyUnknownEngine(t *testing.T) {
	_, err := Apply("graph-database", &document.Document{}, filepath.Join(t.TempDir(), "x.conf"))
	assert.Error(t, err)
}
