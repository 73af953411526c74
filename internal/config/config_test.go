package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "localhost:6379", cfg.KeyValueStore.Addr())
	assert.Equal(t, "localhost:27017", cfg.DocumentDatabase.Addr())
	assert.Equal(t, "/etc/redis/redis.conf", cfg.KeyValueStore.ConfigPath)
	assert.Equal(t, "/etc/mongod.conf", cfg.DocumentDatabase.ConfigPath)
	assert.Equal(t, "*/5 * * * *", cfg.Watch.Cron)
	assert.NotEmpty(t, cfg.Audit.Path)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.KeyValueStore.Host = "cache.internal"
	cfg.KeyValueStore.Port = 6380
	cfg.DocumentDatabase.Password = "secret"

	require.NoError(t, cfg.Save(path))
	assert.True(t, Exists(path))

	// config may hold credentials; keep it private
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cache.internal", loaded.KeyValueStore.Host)
	assert.Equal(t, 6380, loaded.KeyValueStore.Port)
	assert.Equal(t, "secret", loaded.DocumentDatabase.Password)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	t.Setenv("CONFSMITH_REDIS_HOST", "cache.prod.internal")
	t.Setenv("CONFSMITH_REDIS_PORT", "6380")
	t.Setenv("CONFSMITH_MONGO_USERNAME", "appuser")
	t.Setenv("CONFSMITH_MONGO_PASSWORD", "hunter2")
	t.Setenv("CONFSMITH_MONGO_AUTH_SOURCE", "admin")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cache.prod.internal", cfg.KeyValueStore.Host)
	assert.Equal(t, 6380, cfg.KeyValueStore.Port)
	assert.Equal(t, "appuser", cfg.DocumentDatabase.User)
	assert.Equal(t, "hunter2", cfg.DocumentDatabase.Password)
	assert.Equal(t, "admin", cfg.DocumentDatabase.AuthSource)
}

func TestEnvOverrideIgnoresBadInt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	t.Setenv("CONFSMITH_REDIS_PORT", "not-a-port")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6379, cfg.KeyValueStore.Port)
}

func TestExists(t *testing.T) {
	assert.False(t, Exists(filepath.Join(t.TempDir(), "nope.yaml")))
}
