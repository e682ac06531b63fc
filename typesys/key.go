package typesys

import (
	"errors"
	"fmt"
	"strings"
)

// ErrKeyUnderivable is reported when a type's disambiguation key cannot
// be computed because the type has no name or no enclosing module.
var ErrKeyUnderivable = errors.New("type key underivable")

// Key uniquely identifies a type within a resolution chain. Source is the
// defining module's source path, or the module name when the module was
// not loaded from a file, so two unrelated types sharing a bare name never
// collide.
type Key struct {
	Source string
	Name   string
}

func (k Key) String() string {
	return fmt.Sprintf("%s->%q", k.Source, k.Name)
}

// Key derives the type's disambiguation key. Detached types (declared
// outside a module) and anonymous types have no key.
func (t *Type) Key() (Key, error) {
	if t == nil || t.name == "" {
		return Key{}, fmt.Errorf("%w: type has no name", ErrKeyUnderivable)
	}
	if t.module == nil {
		return Key{}, fmt.Errorf("%w: %s is not declared in a module", ErrKeyUnderivable, t.name)
	}
	source := t.module.sourcePath
	if source == "" {
		source = t.module.name
	}
	return Key{Source: source, Name: t.name}, nil
}

// SplitQualified splits a qualified type name of the form "module::Name"
// into its parts. It returns ok=false if either part is empty or the
// separator is missing.
func SplitQualified(qualified string) (module, name string, ok bool) {
	i := strings.Index(qualified, "::")
	if i < 0 {
		return "", "", false
	}
	module, name = qualified[:i], qualified[i+2:]
	if module == "" || name == "" {
		return "", "", false
	}
	return module, name, true
}
