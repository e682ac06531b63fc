package typesys

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"
)

// Names of the builtin module and the origin type every registry seeds.
const (
	BuiltinModule = "builtin"
	OriginName    = "object"
)

// Registry is the top-level container of declared modules and types.
// Registration takes a write lock; lookups and iteration are safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]*Module
	order   []string
	origin  *Type
	diags   []Diagnostic
}

// NewRegistry returns a registry holding the builtin module and its
// origin type.
func NewRegistry() *Registry {
	r := &Registry{modules: make(map[string]*Module)}
	builtin := &Module{registry: r, name: BuiltinModule, types: make(map[string]*Type)}
	r.modules[BuiltinModule] = builtin
	r.order = append(r.order, BuiltinModule)

	obj, err := newType(builtin, OriginName, nil)
	if err != nil {
		panic(err) // unreachable: the origin declaration is static
	}
	seedOrigin(obj)
	builtin.types[OriginName] = obj
	builtin.order = append(builtin.order, OriginName)
	r.origin = obj
	return r
}

// seedOrigin installs the origin member set. Names whose underscore-
// stripped form is longer than two characters make up the functionally
// required surface that hiding never removes; the comparison members
// below that threshold are ordinary hide candidates.
func seedOrigin(obj *Type) {
	obj.Define("__doc__", "Root of every declared hierarchy.")
	obj.Define("__init__", Func(func(self *Instance, args ...Value) (Value, error) {
		return nil, nil
	}))
	obj.Define("__str__", Func(func(self *Instance, args ...Value) (Value, error) {
		return self.String(), nil
	}))
	obj.Define("__repr__", Func(func(self *Instance, args ...Value) (Value, error) {
		return self.String(), nil
	}))
	obj.Define("__hash__", Func(func(self *Instance, args ...Value) (Value, error) {
		return self.id, nil
	}))
	obj.Define("__eq__", Func(func(self *Instance, args ...Value) (Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("__eq__ takes one argument, got %d", len(args))
		}
		other, ok := args[0].(*Instance)
		return ok && other == self, nil
	}))
	obj.Define("__ne__", Func(func(self *Instance, args ...Value) (Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("__ne__ takes one argument, got %d", len(args))
		}
		other, ok := args[0].(*Instance)
		return !ok || other != self, nil
	}))
}

// Origin returns the registry's origin type, the final node of every
// resolution chain.
func (r *Registry) Origin() *Type { return r.origin }

// AddModule registers a new module. The source path may be empty for
// programmatic modules; when set it becomes the source half of the
// module's type keys.
func (r *Registry) AddModule(name, sourcePath string) (*Module, error) {
	if err := checkModuleName(name); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.modules[name]; exists {
		return nil, fmt.Errorf("module %s already registered", name)
	}
	m := &Module{
		registry:   r,
		name:       name,
		sourcePath: sourcePath,
		types:      make(map[string]*Type),
	}
	r.modules[name] = m
	r.order = append(r.order, name)
	return m, nil
}

func checkModuleName(name string) error {
	if name == "" {
		return fmt.Errorf("empty module name")
	}
	if strings.ContainsAny(name, ": \t\n") {
		return fmt.Errorf("invalid module name %q", name)
	}
	return nil
}

// Module returns the module with the given name, or nil.
func (r *Registry) Module(name string) *Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.modules[name]
}

// Modules returns all modules in registration order, builtin first.
func (r *Registry) Modules() []*Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Module, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.modules[name])
	}
	return out
}

// Type looks up a type by qualified name ("module::Name"). It returns nil
// for malformed or unknown names.
func (r *Registry) Type(qualified string) *Type {
	modName, typeName, ok := SplitQualified(qualified)
	if !ok {
		return nil
	}
	mod := r.Module(modName)
	if mod == nil {
		return nil
	}
	return mod.Type(typeName)
}

// Types iterates every declared type, modules in registration order,
// types in declaration order.
func (r *Registry) Types() iter.Seq[*Type] {
	return func(yield func(*Type) bool) {
		for _, mod := range r.Modules() {
			for _, t := range mod.Types() {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// ModuleCount returns the number of registered modules, builtin included.
func (r *Registry) ModuleCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.modules)
}

// TypeCount returns the number of declared types across all modules.
func (r *Registry) TypeCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, m := range r.modules {
		n += len(m.types)
	}
	return n
}

// AddDiagnostics records load or resolution findings.
func (r *Registry) AddDiagnostics(ds ...Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diags = append(r.diags, ds...)
}

// Diagnostics returns all recorded findings in emission order.
func (r *Registry) Diagnostics() []Diagnostic {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.diags)
}

// HasErrors reports whether any finding is at SeverityError or more
// severe.
func (r *Registry) HasErrors() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.diags {
		if d.Severity <= SeverityError {
			return true
		}
	}
	return false
}

// Report returns the findings that the configuration reports, with
// severity overrides applied.
func (r *Registry) Report(cfg DiagnosticConfig) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics() {
		if !cfg.ShouldReport(d.Code, d.Severity) {
			continue
		}
		if override, ok := cfg.Overrides[d.Code]; ok {
			d.Severity = override
		}
		out = append(out, d)
	}
	return out
}

// Failing returns the findings that cross the configuration's failure
// threshold, with ignores and severity overrides applied.
func (r *Registry) Failing(cfg DiagnosticConfig) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics() {
		if slices.ContainsFunc(cfg.Ignore, func(pattern string) bool {
			return MatchGlob(pattern, d.Code)
		}) {
			continue
		}
		if override, ok := cfg.Overrides[d.Code]; ok {
			d.Severity = override
		}
		if cfg.ShouldFail(d.Severity) {
			out = append(out, d)
		}
	}
	return out
}

func (r *Registry) String() string {
	return fmt.Sprintf("registry: %d modules, %d types", r.ModuleCount(), r.TypeCount())
}
