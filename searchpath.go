package disinherit

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dynatype/disinherit/internal/logutil"
)

// WithSystemPaths enables automatic discovery of document search paths
// from disinherit.conf files, the DISINHERIT_PATH environment variable,
// and the standard schema directories. Discovered paths are appended
// after any explicit source, serving as fallback. When source is nil
// and WithSystemPaths is set, system paths alone are sufficient.
func WithSystemPaths() LoadOption {
	return func(c *loadConfig) { c.systemPaths = true }
}

// DiscoverSystemSources returns a Source per discovered system schema
// directory, in discovery order.
func DiscoverSystemSources() []Source {
	return discoverSystemSources(logutil.Logger{})
}

// DiscoverSystemPaths returns the system schema directories that exist,
// after applying disinherit.conf files and DISINHERIT_PATH.
func DiscoverSystemPaths() []string {
	return discoverSystemPaths(logutil.Logger{})
}

type pathOp int

const (
	pathReplace pathOp = iota
	pathAppend
	pathPrepend
)

// discoverSystemSources returns Sources for all discovered schema
// directories.
func discoverSystemSources(logger logutil.Logger) []Source {
	dirs := discoverSystemPaths(logger)
	var sources []Source
	for _, d := range dirs {
		if src, err := Dir(d); err == nil {
			sources = append(sources, src)
		}
	}
	return sources
}

// discoverSystemPaths returns schema directories from configuration
// files and the environment, deduplicated and filtered to directories
// that exist.
func discoverSystemPaths(logger logutil.Logger) []string {
	paths := defaultSchemaDirs()
	for _, cf := range configFiles() {
		paths = applyConfigFile(cf, paths, logger)
	}
	if v := os.Getenv("DISINHERIT_PATH"); v != "" {
		paths = applyEnvPath(v, paths)
	}
	return filterExistingDirs(dedupPaths(paths))
}

func defaultSchemaDirs() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".disinherit", "schemas"))
	}
	paths = append(paths,
		"/usr/share/disinherit/schemas",
		"/usr/local/share/disinherit/schemas",
	)
	return paths
}

func configFiles() []string {
	files := []string{"/etc/disinherit.conf"}
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, filepath.Join(home, ".disinherit.conf"))
	}
	return files
}

// parsePathLine parses a single disinherit.conf line for schemadirs
// directives. A + prefix on the value appends to the current list, a -
// prefix prepends, a bare value replaces it.
func parsePathLine(line string) (pathOp, []string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return 0, nil, false
	}

	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "schemadirs" {
		return 0, nil, false
	}

	value := fields[1]
	if rest, ok := strings.CutPrefix(value, "+"); ok {
		return pathAppend, splitPaths(rest), true
	}
	if rest, ok := strings.CutPrefix(value, "-"); ok {
		return pathPrepend, splitPaths(rest), true
	}
	return pathReplace, splitPaths(value), true
}

// applyEnvPath interprets DISINHERIT_PATH with the same prefix
// semantics as the config directive.
func applyEnvPath(value string, current []string) []string {
	if rest, ok := strings.CutPrefix(value, "+"); ok {
		return applyOp(pathAppend, splitPaths(rest), current)
	}
	if rest, ok := strings.CutPrefix(value, "-"); ok {
		return applyOp(pathPrepend, splitPaths(rest), current)
	}
	return splitPaths(value)
}

func applyOp(op pathOp, dirs, current []string) []string {
	switch op {
	case pathAppend:
		return append(current, dirs...)
	case pathPrepend:
		return append(dirs, current...)
	default:
		return dirs
	}
}

func applyConfigFile(path string, current []string, logger logutil.Logger) []string {
	f, err := os.Open(path)
	if err != nil {
		return current
	}
	defer f.Close() //nolint:errcheck // best-effort config file read

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		op, dirs, ok := parsePathLine(scanner.Text())
		if !ok {
			continue
		}
		current = applyOp(op, dirs, current)
	}
	if err := scanner.Err(); err != nil {
		logger.Log(slog.LevelDebug, "error reading config file",
			slog.String("path", path), slog.Any("error", err))
	}
	return current
}

func splitPaths(s string) []string {
	if s == "" {
		return nil
	}
	var result []string
	for _, p := range strings.Split(s, string(os.PathListSeparator)) {
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func dedupPaths(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	var result []string
	for _, p := range paths {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			result = append(result, p)
		}
	}
	return result
}

func filterExistingDirs(paths []string) []string {
	var result []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err == nil && info.IsDir() {
			result = append(result, p)
		}
	}
	return result
}
