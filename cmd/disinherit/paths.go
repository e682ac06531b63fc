package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dynatype/disinherit"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show document search paths",
	Long: `Show the search paths that would be used. With -p those paths are
shown; otherwise the system-discovered paths (disinherit.conf files and
DISINHERIT_PATH).`,
	Args: cobra.NoArgs,
	RunE: runPaths,
}

func runPaths(cmd *cobra.Command, args []string) error {
	paths := flagPaths
	if len(paths) == 0 {
		paths = disinherit.DiscoverSystemPaths()
	}

	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "no search paths found")
		return nil
	}
	if flagFormat == "json" {
		return writeJSON(paths)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}
