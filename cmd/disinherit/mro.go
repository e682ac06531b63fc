package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mroCmd = &cobra.Command{
	Use:   "mro MODULE::TYPE",
	Short: "Show a type's method resolution order",
	Long: `Show the resolution chain of a type, from the type itself down to
the builtin origin. Member retrieval answers with the first definition
along this chain.`,
	Example: `  disinherit mro -p ./schemas app::Widget`,
	Args:    cobra.ExactArgs(1),
	RunE:    runMro,
}

func runMro(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	typ, err := resolveTypeArg(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	var names []string
	for _, anc := range typ.Linearization() {
		names = append(names, anc.QualifiedName())
	}

	if flagFormat == "json" {
		return writeJSON(names)
	}
	for i, name := range names {
		fmt.Printf("%2d  %s\n", i, name)
	}
	return nil
}
