package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dirCmd = &cobra.Command{
	Use:   "dir MODULE::TYPE",
	Short: "Enumerate the members of a fresh instance",
	Long: `Mint a fresh instance of the type and enumerate its members through
the type's enumeration hook. For a transformed type this is the surface
after hiding; hidden names do not appear.`,
	Example: `  disinherit dir -p ./schemas app::Panel`,
	Args:    cobra.ExactArgs(1),
	RunE:    runDir,
}

func runDir(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	typ, err := resolveTypeArg(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	names := typ.New().Dir()
	if flagFormat == "json" {
		return writeJSON(names)
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
