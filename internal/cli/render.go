package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confsmith/confsmith/internal/render"
)

var (
	renderEngine string
	renderOutput string
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Validate and render a normalized configuration file",
	Long: `Validate a configuration file and print (or write) its normalized,
engine-native rendering: size suffixes expanded to byte counts, enum
casing canonicalized, and schema defaults filled in.

An invalid document renders nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderEngine, "engine", "e", "", "target engine: key-value-store or document-database (required)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write rendered config to file instead of stdout")
	_ = renderCmd.MarkFlagRequired("engine")
}

func runRender(cmd *cobra.Command, args []string) error {
	res, err := validateFile(args[0], renderEngine)
	if err != nil {
		return err
	}

	if !res.OK() {
		printFindings(args[0], res)
		return fmt.Errorf("%d validation error(s) in %s", len(res.Errors), args[0])
	}

	out, err := render.Render(res.Engine, res.Normalized)
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}

	if renderOutput == "" {
		fmt.Print(string(out))
		return nil
	}

	if err := render.WriteFile(renderOutput, out, 0o644); err != nil {
		return err
	}
	fmt.Printf("%s Rendered %s to %s\n", FormatSuccess("✅"), args[0], renderOutput)
	return nil
}
