// Command disinherit-fixturegen regenerates the JSON surface fixtures
// under testdata/fixtures. Each entry records the member names a fresh
// instance of a loaded type enumerates and the names its hiding clause
// withholds, after every document transformation has run.
//
// Targets are module names or qualified type names:
//
//	disinherit-fixturegen -p testdata/corpus/basic -o testdata/fixtures/basic.json app core::Middle
//
// A module target expands to all of its types in declaration order.
// Name lists render on a single line so fixture diffs stay readable.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/dynatype/disinherit"
	"github.com/dynatype/disinherit/cmd/internal/cliutil"
)

type pathList []string

func (p *pathList) String() string     { return strings.Join(*p, ",") }
func (p *pathList) Set(v string) error { *p = append(*p, v); return nil }

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("disinherit-fixturegen", flag.ExitOnError)

	var paths pathList
	var outFile string
	fs.Var(&paths, "p", "Directory tree to load documents from (repeatable)")
	fs.StringVar(&outFile, "o", "", "Output file (default: stdout)")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `Usage: disinherit-fixturegen -p PATH [options] TARGET [TARGET...]

Generate a JSON fixture describing the visible and hidden member
surfaces of loaded types. A TARGET is a module name or a qualified
type name (module::Type); modules expand to their types in
declaration order.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}

	targets := fs.Args()
	if len(targets) == 0 {
		fmt.Fprintln(os.Stderr, "error: at least one TARGET argument is required")
		fs.Usage()
		return 1
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "error: at least one -p PATH is required")
		fs.Usage()
		return 1
	}

	var sources []disinherit.Source
	for _, p := range paths {
		src, err := disinherit.DirTree(p)
		if err != nil {
			cliutil.PrintError("cannot use path %s: %v", p, err)
			return 1
		}
		sources = append(sources, src)
	}

	reg, err := disinherit.Load(context.Background(), disinherit.Multi(sources...))
	if err != nil {
		cliutil.PrintError("load failed: %v", err)
		return 1
	}

	var entries []fixtureEntry
	for _, target := range targets {
		expanded, err := expandTarget(reg, target)
		if err != nil {
			cliutil.PrintError("%v", err)
			return 1
		}
		entries = append(entries, expanded...)
	}

	out, closeOut, err := cliutil.GetOutput(outFile)
	if err != nil {
		cliutil.PrintError("cannot open output: %v", err)
		return 1
	}
	defer closeOut()

	if _, err := out.WriteString(formatFixture(entries)); err != nil {
		cliutil.PrintError("cannot write output: %v", err)
		return 1
	}
	if outFile != "" {
		fmt.Fprintf(os.Stderr, "wrote %s (%d types)\n", outFile, len(entries))
	}
	return 0
}

type fixtureEntry struct {
	module  string
	name    string
	visible []string
	hidden  []string
}

func expandTarget(reg *disinherit.Registry, target string) ([]fixtureEntry, error) {
	if _, _, ok := disinherit.SplitQualified(target); ok {
		typ := reg.Type(target)
		if typ == nil {
			return nil, fmt.Errorf("type %s not found", target)
		}
		return []fixtureEntry{normalize(typ)}, nil
	}
	mod := reg.Module(target)
	if mod == nil {
		return nil, fmt.Errorf("module %s not found", target)
	}
	var entries []fixtureEntry
	for _, typ := range mod.Types() {
		entries = append(entries, normalize(typ))
	}
	return entries, nil
}

func normalize(typ *disinherit.Type) fixtureEntry {
	e := fixtureEntry{name: typ.Name()}
	if mod := typ.Module(); mod != nil {
		e.module = mod.Name()
	}
	e.visible = typ.New().Dir()
	for name, v := range typ.ResolvedMembers() {
		if disinherit.IsHidden(v) {
			e.hidden = append(e.hidden, name)
		}
	}
	slices.Sort(e.hidden)
	return e
}

func formatFixture(entries []fixtureEntry) string {
	var b strings.Builder
	b.WriteString("[\n")
	for i, e := range entries {
		b.WriteString("  {\n")
		fmt.Fprintf(&b, "    \"module\": %s,\n", strconv.Quote(e.module))
		fmt.Fprintf(&b, "    \"name\": %s,\n", strconv.Quote(e.name))
		fmt.Fprintf(&b, "    \"visible\": %s", quoteList(e.visible))
		if len(e.hidden) > 0 {
			fmt.Fprintf(&b, ",\n    \"hidden\": %s\n", quoteList(e.hidden))
		} else {
			b.WriteString("\n")
		}
		if i < len(entries)-1 {
			b.WriteString("  },\n")
		} else {
			b.WriteString("  }\n")
		}
	}
	b.WriteString("]\n")
	return b.String()
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = strconv.Quote(n)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
