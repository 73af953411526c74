package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent audit log entries",
	Long:  `List recent validate/apply/check/setup/watch runs from the audit log.`,
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum entries to show")
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openAudit(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(context.Background(), runsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Println(FormatHeader("📋 Recent runs"))
	fmt.Println(FormatHeader("=============="))
	for _, run := range runs {
		status := FormatSuccess("ok")
		if run.Outcome != "ok" {
			status = FormatError(run.Outcome)
		}

		fmt.Printf("%s  %-8s %-18s %s %s\n",
			FormatMeta(run.CreatedAt.Local().Format(time.RFC3339)),
			run.Action,
			run.Engine,
			status,
			FormatDim(run.Target),
		)
		if run.Errors > 0 || run.Warnings > 0 {
			fmt.Printf("  %s error(s), %s warning(s)\n", FormatCount(run.Errors), FormatCount(run.Warnings))
		}
	}
	return nil
}
