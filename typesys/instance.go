package typesys

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
)

var instanceIDs atomic.Uint64

func nextInstanceID() uint64 { return instanceIDs.Add(1) }

// Instance is an object of a declared type. Local attribute storage is
// guarded by a mutex; member enumeration and retrieval go through the
// type's hooks, so a transformed type's hiding applies to every instance
// created from it.
type Instance struct {
	typ *Type
	id  uint64

	mu    sync.RWMutex
	attrs map[string]Value
}

// Type returns the instance's type.
func (in *Instance) Type() *Type { return in.typ }

// ID returns the instance's creation sequence number.
func (in *Instance) ID() uint64 { return in.id }

// Attr retrieves a member by name through the type's retrieval hook.
func (in *Instance) Attr(name string) (Value, error) {
	return in.typ.AttrHook().Attr(in, name)
}

// SetAttr stores a local attribute on the instance, shadowing any
// type-level definition for this instance only.
func (in *Instance) SetAttr(name string, v Value) {
	if name == "" {
		return
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	in.attrs[name] = v
}

// Dir enumerates the instance's member names through the type's
// enumeration hook.
func (in *Instance) Dir() []string {
	return in.typ.DirHook().Dir(in)
}

// Call retrieves a member and invokes it. The member must resolve to a
// Func.
func (in *Instance) Call(name string, args ...Value) (Value, error) {
	v, err := in.Attr(name)
	if err != nil {
		return nil, err
	}
	fn, ok := v.(Func)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNotCallable, in.typ.QualifiedName(), name)
	}
	return fn(in, args...)
}

// local returns the instance-local value for name, if set.
func (in *Instance) local(name string) (Value, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	v, ok := in.attrs[name]
	return v, ok
}

// localNames returns the instance-local attribute names, unsorted.
func (in *Instance) localNames() []string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return slices.Collect(maps.Keys(in.attrs))
}

func (in *Instance) String() string {
	return fmt.Sprintf("<%s #%d>", in.typ.QualifiedName(), in.id)
}
