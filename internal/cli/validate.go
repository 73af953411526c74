package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/confsmith/confsmith/internal/document"
	"github.com/confsmith/confsmith/internal/validate"
)

var (
	validateEngine string
	validateJSON   bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate an engine configuration file",
	Long: `Validate a configuration file against the schema of its target engine.

Every problem in the document is reported, not just the first one.
Unknown keys are warnings; type, range, duplicate-key and unit-suffix
problems are fatal. The command exits non-zero when fatal problems are
found.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateEngine, "engine", "e", "", "target engine: key-value-store or document-database (required)")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "emit findings as JSON")
	_ = validateCmd.MarkFlagRequired("engine")
}

func runValidate(cmd *cobra.Command, args []string) error {
	res, err := validateFile(args[0], validateEngine)
	if err != nil {
		return err
	}

	if validateJSON {
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal findings: %w", err)
		}
		fmt.Println(string(out))
	} else {
		printFindings(args[0], res)
	}

	if !res.OK() {
		return fmt.Errorf("%d validation error(s) in %s", len(res.Errors), args[0])
	}
	return nil
}

// validateFile parses and validates one on-disk document.
func validateFile(path, engine string) (*validate.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := document.Parse(engine, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return validate.Document(doc, engine)
}

// printFindings renders findings for a terminal.
func printFindings(path string, res *validate.Result) {
	for _, w := range res.Warnings {
		fmt.Printf("%s %s\n", FormatWarning("warning:"), w.Error())
	}
	for _, e := range res.Errors {
		fmt.Printf("%s %s\n", FormatError("error:"), e.Error())
	}

	if res.OK() {
		fmt.Printf("%s %s is valid for %s (%s warning(s))\n",
			FormatSuccess("✅"), path, res.Engine, FormatCount(len(res.Warnings)))
	} else {
		fmt.Printf("%s %s failed validation for %s: %s error(s), %s warning(s)\n",
			FormatError("❌"), path, res.Engine, FormatCount(len(res.Errors)), FormatCount(len(res.Warnings)))
	}
}
