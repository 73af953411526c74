package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/confsmith/confsmith/internal/watcher"
)

var watchCron string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Periodically re-validate the managed engine config files",
	Long: `Register a cron entry that re-parses and re-validates the engine
config files named in the tool configuration, logging any drift and
recording every sweep in the audit log. An immediate sweep runs on
startup.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchCron, "cron", "", "cron expression (overrides the configured one)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cronExpr := watchCron
	if cronExpr == "" {
		cronExpr = cfg.Watch.Cron
	}
	if _, err := validateCronExpression(cronExpr); err != nil {
		return err
	}

	var targets []watcher.Target
	if cfg.KeyValueStore.ConfigPath != "" {
		targets = append(targets, watcher.Target{Engine: "key-value-store", Path: cfg.KeyValueStore.ConfigPath})
	}
	if cfg.DocumentDatabase.ConfigPath != "" {
		targets = append(targets, watcher.Target{Engine: "document-database", Path: cfg.DocumentDatabase.ConfigPath})
	}
	if len(targets) == 0 {
		return fmt.Errorf("nothing to watch: set config_path for at least one engine in %s", configPath())
	}

	store, err := openAudit(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	w := watcher.New(targets, store)
	if err := w.Start(context.Background(), cronExpr); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Printf("%s Watching %d config file(s) on schedule %q\n", FormatSuccess("👀"), len(targets), cronExpr)
	fmt.Println("Press Ctrl+C to stop")

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	fmt.Println("\n🛑 Stopping watcher...")
	return nil
}
