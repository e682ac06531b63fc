// Command disinherit loads declared-type hierarchies and inspects the
// member surfaces their hiding transformations produce.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dynatype/disinherit"
	"github.com/dynatype/disinherit/cmd/internal/cliutil"
)

// Exit codes.
const (
	exitOK       = 0 // success
	exitError    = 1 // user error, processing failure, or failing findings
	exitLoadFail = 2 // lint could not complete the load
)

var (
	flagPaths   []string
	flagVerbose int
	flagFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "disinherit",
	Short: "Load type hierarchies and inspect hidden member surfaces",
	Long: `disinherit loads declarative type hierarchy documents, applies the
member hiding each document requests, and answers queries about the
resulting member surfaces.

Documents are found through -p paths, or through the system search
paths (disinherit.conf files, DISINHERIT_PATH) when no -p is given.`,
	Example: `  disinherit list -p ./schemas
  disinherit show -p ./schemas app::Panel
  disinherit dir -p ./schemas app::Panel
  disinherit get -p ./schemas app::Panel render --call
  disinherit lint -p ./schemas`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringArrayVarP(&flagPaths, "path", "p", nil,
		"document search path (repeatable)")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v",
		"increase log verbosity (-v debug, -vv trace)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text",
		"output format: text or json")

	rootCmd.AddCommand(listCmd, showCmd, mroCmd, dirCmd, getCmd, lintCmd, pathsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitCodeError
		if errors.As(err, &ee) {
			if ee.msg != "" {
				cliutil.PrintError("%s", ee.msg)
			}
			os.Exit(ee.code)
		}
		cliutil.PrintError("%v", err)
		os.Exit(exitError)
	}
}

// exitCodeError carries a specific process exit code through the cobra
// error path. An empty message means the command already reported the
// cause.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

func checkFormat() error {
	switch flagFormat {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown format: %s", flagFormat)
	}
}

func setupLogger() *slog.Logger {
	if flagVerbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if flagVerbose >= 2 {
		level = disinherit.LevelTrace
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// buildSource composes the document source from -p paths. A nil source
// with system-path options means no explicit paths were given.
func buildSource() (disinherit.Source, []disinherit.LoadOption, error) {
	var opts []disinherit.LoadOption
	if logger := setupLogger(); logger != nil {
		opts = append(opts, disinherit.WithLogger(logger))
	}

	if len(flagPaths) == 0 {
		return nil, append(opts, disinherit.WithSystemPaths()), nil
	}

	var sources []disinherit.Source
	for _, p := range flagPaths {
		src, err := disinherit.DirTree(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot access path %s: %v\n", p, err)
			continue
		}
		sources = append(sources, src)
	}
	if len(sources) == 0 {
		return nil, nil, disinherit.ErrNoSources
	}
	return disinherit.Multi(sources...), opts, nil
}

// loadRegistry loads the named modules, or every module the sources
// list when names is empty.
func loadRegistry(ctx context.Context, names []string, extra ...disinherit.LoadOption) (*disinherit.Registry, error) {
	source, opts, err := buildSource()
	if err != nil {
		return nil, err
	}
	opts = append(opts, extra...)
	if len(names) == 0 {
		return disinherit.Load(ctx, source, opts...)
	}
	return disinherit.LoadModules(ctx, names, source, opts...)
}

// queryRegistry loads for an inspection command. A threshold failure is
// reported as a warning and inspection proceeds on what did resolve.
func queryRegistry(ctx context.Context, names []string) (*disinherit.Registry, error) {
	reg, err := loadRegistry(ctx, names)
	if err != nil {
		var le *disinherit.LoadError
		if errors.As(err, &le) && reg != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", le)
			return reg, nil
		}
		return nil, err
	}
	return reg, nil
}

// resolveTypeArg loads the module named in a MODULE::TYPE argument and
// returns the type.
func resolveTypeArg(ctx context.Context, qualified string) (*disinherit.Type, error) {
	modName, _, ok := disinherit.SplitQualified(qualified)
	if !ok {
		return nil, fmt.Errorf("argument %q is not of the form MODULE::TYPE", qualified)
	}
	reg, err := queryRegistry(ctx, []string{modName})
	if err != nil {
		return nil, err
	}
	typ := reg.Type(qualified)
	if typ == nil {
		return nil, fmt.Errorf("type %s not found", qualified)
	}
	return typ, nil
}
