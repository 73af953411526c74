package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/confsmith/confsmith/internal/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect the built-in engine schemas",
}

var schemaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the supported engines",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(FormatHeader("Supported engines"))
		for _, engine := range schema.Engines() {
			sch, err := schema.Lookup(engine)
			if err != nil {
				return err
			}
			fmt.Printf("  %s %s\n", FormatLabelValue(engine, ""),
				FormatMeta("(aliases: "+strings.Join(sch.Aliases, ", ")+")"))
		}
		return nil
	},
}

var schemaShowCmd = &cobra.Command{
	Use:   "show <engine>",
	Short: "Show every recognized option for an engine",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchemaShow,
}

func init() {
	schemaCmd.AddCommand(schemaListCmd)
	schemaCmd.AddCommand(schemaShowCmd)
}

func runSchemaShow(cmd *cobra.Command, args []string) error {
	sch, err := schema.Lookup(args[0])
	if err != nil {
		return err
	}

	fmt.Println(FormatHeader(sch.Engine))
	fmt.Println(FormatHeader(strings.Repeat("=", len(sch.Engine))))

	for _, opt := range sch.Options() {
		constraints := make([]string, 0, len(opt.Elems))
		for _, elem := range opt.Elems {
			constraints = append(constraints, elem.Constraint())
		}

		line := fmt.Sprintf("  %-55s %s", opt.Path(), strings.Join(constraints, ", "))
		fmt.Println(line)

		if opt.Default != nil {
			fmt.Printf("  %-55s %s\n", "", FormatMeta("default: "+strings.Join(opt.Default, " ")))
		}
		if opt.Repeatable {
			fmt.Printf("  %-55s %s\n", "", FormatMeta("repeatable"))
		}
		if opt.Doc != "" {
			fmt.Printf("  %-55s %s\n", "", FormatDim(opt.Doc))
		}
	}

	if len(sch.OpenSections) > 0 {
		fmt.Println()
		fmt.Printf("  %s\n", FormatMeta("open sections (unknown keys tolerated): "+strings.Join(sch.OpenSections, ", ")))
	}
	return nil
}
