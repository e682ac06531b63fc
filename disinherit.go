// Package disinherit hides inherited members on declared types. It
// loads hierarchy documents into a type registry and rewrites each
// marked type so unwanted inherited members vanish from enumeration and
// retrieval while the members the origin type requires stay reachable.
package disinherit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dynatype/disinherit/internal/hide"
	"github.com/dynatype/disinherit/internal/logutil"
	"github.com/dynatype/disinherit/typesys"
)

// ErrNoSources is returned when Load is called with no sources.
var ErrNoSources = errors.New("no document sources provided")

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item iteration logging (members, bases, exemptions).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = logutil.LevelTrace

// LoadError reports diagnostics at or above the configured failure
// threshold. Load returns it together with the registry, which stays
// usable for inspecting everything that did resolve.
type LoadError struct {
	Diagnostics []Diagnostic
}

func (e *LoadError) Error() string {
	if len(e.Diagnostics) == 1 {
		return "loading failed: " + e.Diagnostics[0].String()
	}
	return fmt.Sprintf("loading failed with %d diagnostics, first: %s",
		len(e.Diagnostics), e.Diagnostics[0].String())
}

// TransformOption configures Transform.
type TransformOption func(*transformConfig)

type transformConfig struct {
	exempt []any
	logger *slog.Logger
}

// Exempt keeps the given inherited members visible through a
// transformation. Specifiers may be a *Type (every member it resolves),
// a Member or *Member (that single definition), or nested slices of
// either. Anything else is ignored.
func Exempt(specs ...any) TransformOption {
	return func(c *transformConfig) { c.exempt = append(c.exempt, specs...) }
}

// WithTransformLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithTransformLogger(logger *slog.Logger) TransformOption {
	return func(c *transformConfig) { c.logger = logger }
}

// Transform rewrites target in place so inherited members stop
// resolving: each inherited name is shadowed with the Unimplemented
// marker and the enumeration and retrieval hooks are replaced with
// guarded versions. Names the origin type requires are always kept, as
// are the target's own definitions and anything exempted.
//
// Transform is idempotent. It fails only with a *ConfigError, before
// anything is mutated, when a type in the resolution chain has no
// derivable key.
//
// Example:
//
//	panel := mod.Type("Panel")
//	helper, _ := base.Lookup("helper")
//	err := disinherit.Transform(panel, disinherit.Exempt(helper))
func Transform(target *Type, opts ...TransformOption) error {
	var cfg transformConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	log := logutil.Logger{L: cfg.logger}.Component("hide")
	return hide.Apply(target, cfg.exempt, log)
}

// MustTransform is like Transform but panics on error. It returns the
// target so a declaration site can transform and assign in one step.
func MustTransform(target *Type, opts ...TransformOption) *Type {
	if err := Transform(target, opts...); err != nil {
		panic(err)
	}
	return target
}

// LoadOption configures Load and LoadModules.
type LoadOption func(*loadConfig)

type loadConfig struct {
	logger      *slog.Logger
	diag        typesys.DiagnosticConfig
	noHeuristic bool
	systemPaths bool
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) LoadOption {
	return func(c *loadConfig) { c.logger = logger }
}

// WithDiagnostics sets the diagnostic configuration controlling
// strictness, reporting, and the failure threshold. The default is
// DefaultConfig().
func WithDiagnostics(cfg DiagnosticConfig) LoadOption {
	return func(c *loadConfig) { c.diag = cfg }
}

// WithNoHeuristic disables content sniffing before parsing.
func WithNoHeuristic() LoadOption {
	return func(c *loadConfig) { c.noHeuristic = true }
}

// Load loads every hierarchy document the source lists, resolves the
// declared types, and applies the requested hiding transformations.
// Use Multi() to combine multiple sources.
//
// Example:
//
//	reg, err := disinherit.Load(ctx,
//	    disinherit.MustDirTree("./schemas"),
//	    disinherit.WithLogger(slog.Default()),
//	)
//
//	// Multiple sources:
//	reg, err := disinherit.Load(ctx,
//	    disinherit.Multi(disinherit.MustDirTree("./schemas"), disinherit.MustDir("./local")),
//	)
func Load(ctx context.Context, source Source, opts ...LoadOption) (*Registry, error) {
	cfg := newLoadConfig(opts)
	return loadAllModules(ctx, gatherSources(source, cfg), cfg)
}

// LoadModules loads specific modules by name, along with the modules
// their declarations reference.
//
// Example:
//
//	reg, err := disinherit.LoadModules(ctx,
//	    []string{"core", "app"},
//	    disinherit.MustDirTree("./schemas"),
//	)
func LoadModules(ctx context.Context, names []string, source Source, opts ...LoadOption) (*Registry, error) {
	cfg := newLoadConfig(opts)
	return loadModulesByName(ctx, gatherSources(source, cfg), names, cfg)
}

func newLoadConfig(opts []LoadOption) loadConfig {
	cfg := loadConfig{diag: typesys.DefaultConfig()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func gatherSources(source Source, cfg loadConfig) []Source {
	var sources []Source
	if source != nil {
		sources = append(sources, source)
	}
	if cfg.systemPaths {
		log := logutil.Logger{L: cfg.logger}.Component("searchpath")
		sources = append(sources, discoverSystemSources(log)...)
	}
	return sources
}
