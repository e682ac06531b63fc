package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/dynatype/disinherit"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List module names the sources provide",
	Long: `List all module names from the configured sources, without parsing
the documents. With --types the corpus is loaded and the declared
qualified type names are listed instead.`,
	Example: `  disinherit list -p ./schemas
  disinherit list -p ./schemas --count
  disinherit list -p ./schemas --types`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listCount bool
	listTypes bool
)

func init() {
	listCmd.Flags().BoolVar(&listCount, "count", false, "print only the count")
	listCmd.Flags().BoolVar(&listTypes, "types", false, "load the corpus and list qualified type names")
}

func runList(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}

	var names []string
	if listTypes {
		reg, err := queryRegistry(cmd.Context(), nil)
		if err != nil {
			return err
		}
		for typ := range reg.Types() {
			names = append(names, typ.QualifiedName())
		}
	} else {
		source, _, err := buildSource()
		if err != nil {
			return err
		}
		if source == nil {
			discovered := disinherit.DiscoverSystemSources()
			if len(discovered) == 0 {
				return errors.New("no sources available")
			}
			source = disinherit.Multi(discovered...)
		}
		names, err = source.ListModules()
		if err != nil {
			return fmt.Errorf("listing modules: %w", err)
		}
	}
	slices.Sort(names)

	if listCount {
		fmt.Println(len(names))
		return nil
	}
	if flagFormat == "json" {
		return writeJSON(names)
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
