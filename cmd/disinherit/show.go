package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show MODULE::TYPE",
	Short: "Show a type's declaration and member surface",
	Long: `Show a declared type: its bases, resolution order, own member table,
and the post-transformation surface. Hidden members are annotated.`,
	Example: `  disinherit show -p ./schemas app::Panel
  disinherit show -p ./schemas --format json app::Panel`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	typ, err := resolveTypeArg(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := buildTypeJSON(typ)
	if flagFormat == "json" {
		return writeJSON(out)
	}

	fmt.Printf("%s::%s\n", out.Module, out.Name)
	if len(out.Bases) > 0 {
		fmt.Printf("  bases: %s\n", strings.Join(out.Bases, ", "))
	}
	if out.Doc != "" {
		fmt.Printf("  doc:   %s\n", out.Doc)
	}

	if len(out.Members) > 0 {
		fmt.Println()
		fmt.Println("Own members:")
		width := 0
		for _, m := range out.Members {
			width = max(width, len(m.Name))
		}
		for _, m := range out.Members {
			if m.Value != "" {
				fmt.Printf("  %-*s  %-6s  %s\n", width, m.Name, m.Kind, m.Value)
			} else {
				fmt.Printf("  %-*s  %s\n", width, m.Name, m.Kind)
			}
		}
	}

	fmt.Println()
	fmt.Printf("Visible (%d): %s\n", len(out.Visible), strings.Join(out.Visible, ", "))
	if len(out.Hidden) > 0 {
		fmt.Printf("Hidden  (%d): %s\n", len(out.Hidden), strings.Join(out.Hidden, ", "))
	}
	return nil
}
