package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/confsmith/confsmith/internal/audit"
	"github.com/confsmith/confsmith/internal/config"
	"github.com/confsmith/confsmith/internal/logger"
)

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "confsmith",
	Short: "Database configuration validator and provisioner",
	Long: `Confsmith validates, normalizes and applies configuration for a
key-value store and a document database, and provisions the running
engines: connection smoke tests, user bootstrap, connection strings,
scheduled drift checks, and a local audit log of every run.

Validation collects every problem in a document instead of stopping at
the first one, and a document is never partially applied.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Init(logger.ParseLogLevel(logLevel), os.Stderr)
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.confsmith/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warning, error)")

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(connstringCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(runsCmd)
}

// configPath resolves the active config file path.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if envPath := os.Getenv("CONFSMITH_CONFIG_PATH"); envPath != "" {
		return envPath
	}
	return config.GetConfigPath()
}

// loadConfig loads the tool configuration, failing with a hint when the
// setup wizard has not been run yet.
func loadConfig() (*config.Config, error) {
	path := configPath()
	if !config.Exists(path) {
		return nil, fmt.Errorf("configuration file not found at %s. Run 'confsmith init' to create one", path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openAudit opens the audit store configured in cfg.
func openAudit(cfg *config.Config) (*audit.Store, error) {
	store, err := audit.Open(cfg.Audit.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	return store, nil
}
