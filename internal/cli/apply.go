package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/confsmith/confsmith/internal/audit"
	"github.com/confsmith/confsmith/internal/document"
	"github.com/confsmith/confsmith/internal/provision"
)

var (
	applyEngine string
	applyTarget string
)

var applyCmd = &cobra.Command{
	Use:   "apply <file>",
	Short: "Validate a configuration file and write it to its target path",
	Long: `Validate a configuration file and, only when it is fully clean, write
its normalized rendering atomically to the engine's config path. Either
all values are applied or none are.

The target defaults to the engine's config_path from the tool
configuration. The engine must be restarted separately to pick up the
new file.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&applyEngine, "engine", "e", "", "target engine: key-value-store or document-database (required)")
	applyCmd.Flags().StringVarP(&applyTarget, "target", "t", "", "target file path (default from tool config)")
	_ = applyCmd.MarkFlagRequired("engine")
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	target := applyTarget
	if target == "" {
		switch applyEngine {
		case "key-value-store", "redis", "kv":
			target = cfg.KeyValueStore.ConfigPath
		case "document-database", "mongodb", "mongod":
			target = cfg.DocumentDatabase.ConfigPath
		}
	}
	if target == "" {
		return fmt.Errorf("no target path: pass --target or set config_path for the engine in %s", configPath())
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	doc, err := document.Parse(applyEngine, data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	store, err := openAudit(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	res, applyErr := provision.Apply(applyEngine, doc, target)

	if res != nil {
		outcome := "ok"
		if applyErr != nil {
			outcome = "failed"
		}
		run := &audit.Run{
			Engine:   res.Engine,
			Action:   "apply",
			Target:   target,
			Errors:   len(res.Errors),
			Warnings: len(res.Warnings),
			Outcome:  outcome,
		}
		if err := store.Record(ctx, run); err != nil {
			fmt.Printf("%s failed to record run: %v\n", FormatWarning("warning:"), err)
		}
	}

	if applyErr != nil {
		if res != nil && errors.Is(applyErr, provision.ErrInvalidDocument) {
			printFindings(args[0], res)
		}
		return applyErr
	}

	printFindings(args[0], res)
	fmt.Printf("%s Applied %s to %s\n", FormatSuccess("✅"), args[0], target)
	fmt.Println(FormatDim("Restart the engine to pick up the new configuration."))
	return nil
}
