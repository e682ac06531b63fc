package disinherit

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/dynatype/disinherit/internal/logutil"
	"github.com/dynatype/disinherit/internal/resolver"
	"github.com/dynatype/disinherit/internal/schema"
	"github.com/dynatype/disinherit/typesys"
)

// loadAllModules parses every document the sources list in parallel and
// resolves the result.
func loadAllModules(ctx context.Context, sources []Source, cfg loadConfig) (*typesys.Registry, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	logger := logutil.Logger{L: cfg.logger}

	names, err := listAllModules(sources)
	if err != nil {
		return nil, err
	}

	reg := typesys.NewRegistry()
	if len(names) == 0 {
		return reg, nil
	}

	logger.Log(slog.LevelInfo, "parallel loading",
		slog.Int("modules", len(names)))

	type parseResult struct {
		idx  int
		doc  *schema.Document
		diag *typesys.Diagnostic
	}
	results := make(chan parseResult, len(names))

	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.NumCPU())

	heuristic := defaultHeuristic()
	if cfg.noHeuristic {
		heuristic.enabled = false
	}

	for i, name := range names {
		wg.Add(1)
		go func(idx int, name string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			content, path, err := readModule(sources, name)
			if err != nil {
				return
			}

			if !heuristic.looksLikeDocument(content) {
				logger.Debug("content rejected by heuristic",
					slog.String("module", name))
				return
			}

			doc, err := schema.Parse(content, path)
			if err != nil {
				results <- parseResult{idx: idx, diag: parseDiagnostic(path, err)}
				return
			}
			results <- parseResult{idx: idx, doc: doc}
		}(i, name)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]parseResult, 0, len(names))
	for r := range results {
		collected = append(collected, r)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	slices.SortFunc(collected, func(a, b parseResult) int {
		return cmp.Compare(a.idx, b.idx)
	})

	var docs []*schema.Document
	for _, r := range collected {
		if r.diag != nil {
			reg.AddDiagnostics(*r.diag)
		}
		if r.doc != nil {
			docs = append(docs, r.doc)
		}
	}

	logger.Log(slog.LevelInfo, "parallel loading complete",
		slog.Int("documents", len(docs)))

	return finishLoad(ctx, reg, docs, cfg, logger)
}

// loadModulesByName loads the named modules and, transitively, every
// module their declarations reference.
func loadModulesByName(ctx context.Context, sources []Source, names []string, cfg loadConfig) (*typesys.Registry, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	logger := logutil.Logger{L: cfg.logger}

	heuristic := defaultHeuristic()
	if cfg.noHeuristic {
		heuristic.enabled = false
	}

	reg := typesys.NewRegistry()
	loaded := make(map[string]*schema.Document)
	loading := make(map[string]struct{})
	var docs []*schema.Document

	var loadOne func(name string, requested bool) error
	loadOne = func(name string, requested bool) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if name == typesys.BuiltinModule {
			return nil // seeded by the registry
		}
		if _, ok := loaded[name]; ok {
			return nil
		}
		if _, inProgress := loading[name]; inProgress {
			return nil
		}
		loading[name] = struct{}{}
		defer delete(loading, name)

		content, path, err := readModule(sources, name)
		if err != nil {
			if requested {
				reg.AddDiagnostics(typesys.Diagnostic{
					Severity: typesys.SeverityWarning,
					Code:     typesys.DiagModuleNotFound,
					Message:  "module " + name + " not found in any source",
					Module:   name,
				})
			}
			logger.Debug("module not found", slog.String("module", name))
			return nil
		}

		if !heuristic.looksLikeDocument(content) {
			logger.Debug("content rejected by heuristic",
				slog.String("module", name))
			return nil
		}

		doc, err := schema.Parse(content, path)
		if err != nil {
			reg.AddDiagnostics(*parseDiagnostic(path, err))
			return nil
		}

		loaded[doc.Module] = doc
		if doc.Module != name {
			loaded[name] = doc // also cache under requested name
		}
		docs = append(docs, doc)

		for _, dep := range doc.References() {
			if err := loadOne(dep, false); err != nil {
				return err
			}
		}
		return nil
	}

	for _, name := range names {
		if err := loadOne(name, true); err != nil {
			return nil, err
		}
	}

	return finishLoad(ctx, reg, docs, cfg, logger)
}

// finishLoad runs resolution and applies the failure threshold.
func finishLoad(ctx context.Context, reg *typesys.Registry, docs []*schema.Document, cfg loadConfig, logger logutil.Logger) (*typesys.Registry, error) {
	err := resolver.Resolve(ctx, reg, cfg.diag, docs, logger.Component("resolver"))
	if err != nil {
		return nil, err
	}
	if failing := reg.Failing(cfg.diag); len(failing) > 0 {
		return reg, &LoadError{Diagnostics: failing}
	}
	return reg, nil
}

// parseDiagnostic converts a schema parse error into a diagnostic. The
// error text already names the file, so the path prefix is stripped
// before it lands in the message.
func parseDiagnostic(path string, err error) *typesys.Diagnostic {
	msg := strings.TrimPrefix(err.Error(), path+": ")
	return &typesys.Diagnostic{
		Severity: typesys.SeverityError,
		Code:     typesys.DiagDocumentInvalid,
		Message:  msg,
		File:     path,
	}
}

// listAllModules returns the union of the sources' module names, first
// source wins on duplicates.
func listAllModules(sources []Source) ([]string, error) {
	var names []string
	seen := make(map[string]struct{})
	for _, src := range sources {
		mods, err := src.ListModules()
		if err != nil {
			return nil, err
		}
		for _, name := range mods {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	return names, nil
}

// readModule fetches a module document from the first source that has
// it.
func readModule(sources []Source, name string) ([]byte, string, error) {
	for _, src := range sources {
		r, path, err := src.Find(name)
		if err == nil {
			content, err := io.ReadAll(r)
			_ = r.Close()
			if err != nil {
				return nil, path, err
			}
			return content, path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, path, err
		}
	}
	return nil, "", fs.ErrNotExist
}

var sigModule = []byte("module:")

type heuristicConfig struct {
	enabled      bool
	maxProbeSize int
}

func defaultHeuristic() heuristicConfig {
	return heuristicConfig{
		enabled:      true,
		maxProbeSize: 64 * 1024,
	}
}

// looksLikeDocument rejects binary files and text without a module key
// before the YAML parser sees them.
func (h *heuristicConfig) looksLikeDocument(content []byte) bool {
	if !h.enabled {
		return true
	}
	if len(content) == 0 {
		return false
	}

	probe := content
	if len(probe) > h.maxProbeSize {
		probe = probe[:h.maxProbeSize]
	}

	if bytes.IndexByte(probe, 0) >= 0 {
		return false
	}

	return bytes.Contains(probe, sigModule)
}
