package typesys

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/dynatype/disinherit/internal/mro"
)

// Type is a declared type: a named node in a module with an ordered base
// list, a table of its own member definitions, and the two hooks that
// serve instance enumeration and retrieval.
//
// A type is mutable while it is being declared (Define, SetDirHook,
// SetAttrHook) and read-only afterwards. Mutation is not synchronized;
// finish declaring and transforming a type before sharing it.
type Type struct {
	module *Module // nil for detached types
	name   string
	bases  []*Type
	lin    []*Type // cached C3 linearization, starts with the type itself
	own    map[string]Value

	// Hooks are unset until installed; lookup resolves them through the
	// linearization at call time, so transforming an ancestor changes
	// the behavior of already-declared descendants.
	dirHook  DirHook
	attrHook AttrHook
}

// NewType declares a detached type outside any module. Detached types can
// serve as bases but have no disambiguation key, so hiding transformations
// reject chains that contain them.
func NewType(name string, bases ...*Type) (*Type, error) {
	return newType(nil, name, bases)
}

func newType(mod *Module, name string, bases []*Type) (*Type, error) {
	if err := checkTypeName(name); err != nil {
		return nil, err
	}
	for i, b := range bases {
		if b == nil {
			return nil, fmt.Errorf("type %s: base %d is nil", name, i)
		}
	}
	t := &Type{
		module: mod,
		name:   name,
		bases:  slices.Clone(bases),
		own:    make(map[string]Value),
	}
	lin, err := mro.Linearize(t, func(x *Type) []*Type { return x.bases })
	if err != nil {
		return nil, fmt.Errorf("type %s: %w", name, err)
	}
	t.lin = lin
	return t, nil
}

func checkTypeName(name string) error {
	if name == "" {
		return fmt.Errorf("empty type name")
	}
	if strings.ContainsAny(name, ":. \t\n") {
		return fmt.Errorf("invalid type name %q", name)
	}
	return nil
}

// Name returns the declared name.
func (t *Type) Name() string { return t.name }

// Module returns the declaring module, or nil for detached types.
func (t *Type) Module() *Module { return t.module }

// QualifiedName returns "module::Name", or the bare name for detached
// types.
func (t *Type) QualifiedName() string {
	if t.module == nil {
		return t.name
	}
	return t.module.name + "::" + t.name
}

// Bases returns the ordered direct bases.
func (t *Type) Bases() []*Type { return slices.Clone(t.bases) }

// Linearization returns the type's resolution chain in C3 order: the type
// itself first, the hierarchy root last.
func (t *Type) Linearization() []*Type { return slices.Clone(t.lin) }

// Origin returns the final type of the resolution chain.
func (t *Type) Origin() *Type { return t.lin[len(t.lin)-1] }

// Define sets a member in the type's own table, shadowing any inherited
// definition of the same name. Empty names are ignored.
func (t *Type) Define(name string, v Value) {
	if name == "" {
		return
	}
	t.own[name] = v
}

// Defines reports whether the type's own table contains name, regardless
// of inherited definitions.
func (t *Type) Defines(name string) bool {
	_, ok := t.own[name]
	return ok
}

// OwnMembers returns a copy of the type's own member table.
func (t *Type) OwnMembers() map[string]Value { return maps.Clone(t.own) }

// OwnNames returns the type's own member names, sorted.
func (t *Type) OwnNames() []string {
	names := slices.Collect(maps.Keys(t.own))
	slices.Sort(names)
	return names
}

// Resolve walks the linearization and returns the first definition of
// name. The hidden-member marker is returned as-is; observation hooks are
// not consulted.
func (t *Type) Resolve(name string) (Value, bool) {
	for _, anc := range t.lin {
		if v, ok := anc.own[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// ResolvedMembers returns the full member map visible from this type:
// every name defined anywhere in the linearization, each mapped to its
// first definition. Hidden-member markers are included.
func (t *Type) ResolvedMembers() map[string]Value {
	out := make(map[string]Value)
	for _, anc := range t.lin {
		for name, v := range anc.own {
			if _, seen := out[name]; !seen {
				out[name] = v
			}
		}
	}
	return out
}

// Lookup resolves name through the linearization and reports the defining
// type alongside the value.
func (t *Type) Lookup(name string) (*Member, bool) {
	for _, anc := range t.lin {
		if v, ok := anc.own[name]; ok {
			return &Member{owner: anc, name: name, value: v}, true
		}
	}
	return nil, false
}

// Members iterates the resolved member set in name order, including
// hidden-member markers.
func (t *Type) Members() iter.Seq[*Member] {
	return func(yield func(*Member) bool) {
		resolved := t.ResolvedMembers()
		names := slices.Collect(maps.Keys(resolved))
		slices.Sort(names)
		for _, name := range names {
			m, ok := t.Lookup(name)
			if !ok {
				continue
			}
			if !yield(m) {
				return
			}
		}
	}
}

// DirHook returns the enumeration hook in effect: the type's own if
// installed, otherwise the nearest ancestor's, otherwise the default.
func (t *Type) DirHook() DirHook {
	for _, anc := range t.lin {
		if anc.dirHook != nil {
			return anc.dirHook
		}
	}
	return DefaultDirHook
}

// SetDirHook installs the type's own enumeration hook. A nil hook
// removes it, so the inherited one applies again.
func (t *Type) SetDirHook(h DirHook) { t.dirHook = h }

// AttrHook returns the retrieval hook in effect: the type's own if
// installed, otherwise the nearest ancestor's, otherwise the default.
func (t *Type) AttrHook() AttrHook {
	for _, anc := range t.lin {
		if anc.attrHook != nil {
			return anc.attrHook
		}
	}
	return DefaultAttrHook
}

// SetAttrHook installs the type's own retrieval hook. A nil hook removes
// it, so the inherited one applies again.
func (t *Type) SetAttrHook(h AttrHook) { t.attrHook = h }

// New creates an instance of the type with empty local storage.
// Construction does not invoke any member.
func (t *Type) New() *Instance {
	return &Instance{
		typ:   t,
		id:    nextInstanceID(),
		attrs: make(map[string]Value),
	}
}

func (t *Type) String() string { return t.QualifiedName() }
