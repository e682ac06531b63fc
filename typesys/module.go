package typesys

import (
	"fmt"
)

// Module is a named namespace of declared types. Modules loaded from a
// hierarchy file carry the file's path as their source path; the path
// feeds type disambiguation keys.
type Module struct {
	registry   *Registry
	name       string
	sourcePath string
	types      map[string]*Type
	order      []string
}

// Name returns the module name.
func (m *Module) Name() string { return m.name }

// SourcePath returns the path of the file the module was loaded from, or
// "" for modules declared programmatically.
func (m *Module) SourcePath() string { return m.sourcePath }

// Registry returns the owning registry.
func (m *Module) Registry() *Registry { return m.registry }

// NewType declares a type in the module. A declaration without bases
// implicitly descends from the registry's origin type. Declaring a name
// twice is an error, as is an inconsistent base hierarchy.
func (m *Module) NewType(name string, bases ...*Type) (*Type, error) {
	if len(bases) == 0 {
		bases = []*Type{m.registry.origin}
	}
	t, err := newType(m, name, bases)
	if err != nil {
		return nil, err
	}

	m.registry.mu.Lock()
	defer m.registry.mu.Unlock()
	if _, exists := m.types[name]; exists {
		return nil, fmt.Errorf("type %s already declared in module %s", name, m.name)
	}
	m.types[name] = t
	m.order = append(m.order, name)
	return t, nil
}

// Type returns the declared type with the given name, or nil.
func (m *Module) Type(name string) *Type {
	m.registry.mu.RLock()
	defer m.registry.mu.RUnlock()
	return m.types[name]
}

// Types returns the module's types in declaration order.
func (m *Module) Types() []*Type {
	m.registry.mu.RLock()
	defer m.registry.mu.RUnlock()
	out := make([]*Type, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.types[name])
	}
	return out
}

func (m *Module) String() string { return m.name }
