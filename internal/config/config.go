package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the tool's own configuration: where the engines live, where
// their config files are written, and where the audit log is kept.
type Config struct {
	KeyValueStore    EngineConfig `yaml:"key_value_store"`
	DocumentDatabase EngineConfig `yaml:"document_database"`
	Audit            AuditConfig  `yaml:"audit"`
	Watch            WatchConfig  `yaml:"watch"`
	CORSOrigin       string       `yaml:"cors_origin,omitempty"`
}

// EngineConfig describes one managed engine.
type EngineConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	User       string `yaml:"username,omitempty"` // document db only; the key-value store has no usernames
	Password   string `yaml:"password,omitempty"`
	Database   string `yaml:"database,omitempty"`    // name (document db) or index (key-value store)
	AuthSource string `yaml:"auth_source,omitempty"` // document db only; defaults to the database
	ConfigPath string `yaml:"config_path,omitempty"` // engine config file this tool manages
}

// Addr returns the host:port address of the engine.
func (e EngineConfig) Addr() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

// AuditConfig locates the audit log database.
type AuditConfig struct {
	Path string `yaml:"path"`
}

// WatchConfig controls the drift checker.
type WatchConfig struct {
	Cron string `yaml:"cron"` // standard 5-field cron expression
}

// DefaultConfig returns a configuration pointing at local engines on
// their stock ports.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		KeyValueStore: EngineConfig{
			Host:       "localhost",
			Port:       6379,
			Database:   "0",
			ConfigPath: "/etc/redis/redis.conf",
		},
		DocumentDatabase: EngineConfig{
			Host:       "localhost",
			Port:       27017,
			Database:   "confsmith",
			ConfigPath: "/etc/mongod.conf",
		},
		Audit: AuditConfig{
			Path: filepath.Join(home, ".confsmith", "audit.db"),
		},
		Watch: WatchConfig{
			Cron: "*/5 * * * *",
		},
	}
}

// Load reads the configuration file and applies environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnv()
	return &config, nil
}

// applyEnv lets deployment environments override connection parameters
// without editing the file, matching the engines' own setup scripts.
func (c *Config) applyEnv() {
	overrideString(&c.KeyValueStore.Host, "CONFSMITH_REDIS_HOST")
	overrideInt(&c.KeyValueStore.Port, "CONFSMITH_REDIS_PORT")
	overrideString(&c.KeyValueStore.Password, "CONFSMITH_REDIS_PASSWORD")
	overrideString(&c.KeyValueStore.Database, "CONFSMITH_REDIS_DB")

	overrideString(&c.DocumentDatabase.Host, "CONFSMITH_MONGO_HOST")
	overrideInt(&c.DocumentDatabase.Port, "CONFSMITH_MONGO_PORT")
	overrideString(&c.DocumentDatabase.User, "CONFSMITH_MONGO_USERNAME")
	overrideString(&c.DocumentDatabase.Password, "CONFSMITH_MONGO_PASSWORD")
	overrideString(&c.DocumentDatabase.Database, "CONFSMITH_MONGO_DATABASE")
	overrideString(&c.DocumentDatabase.AuthSource, "CONFSMITH_MONGO_AUTH_SOURCE")
}

func overrideString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, env string) {
	if v := os.Getenv(env); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// Save writes the configuration to file, creating the directory first.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default config file path.
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".confsmith/config.yaml"
	}
	return filepath.Join(home, ".confsmith", "config.yaml")
}

// Exists checks if a config file exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
