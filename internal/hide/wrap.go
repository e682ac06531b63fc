package hide

import "github.com/dynatype/disinherit/typesys"

// dirGuard filters the wrapped enumeration: names whose current
// resolution on the instance's type is the hidden-member marker are
// omitted. The guard is stateless, so one layer serves the type and
// every subtype that inherits it.
type dirGuard struct {
	next typesys.DirHook
}

func (g dirGuard) Dir(in *typesys.Instance) []string {
	names := g.next.Dir(in)
	kept := names[:0]
	for _, name := range names {
		if v, ok := in.Type().Resolve(name); ok && typesys.IsHidden(v) {
			continue
		}
		kept = append(kept, name)
	}
	return kept
}

// attrGuard delegates retrieval and converts a hidden-member result into
// a no-such-member failure carrying the type and member names.
type attrGuard struct {
	next typesys.AttrHook
}

func (g attrGuard) Attr(in *typesys.Instance, name string) (typesys.Value, error) {
	v, err := g.next.Attr(in, name)
	if err != nil {
		return nil, err
	}
	if typesys.IsHidden(v) {
		return nil, &typesys.NoSuchMemberError{Type: in.Type().QualifiedName(), Member: name}
	}
	return v, nil
}

// installGuards wraps the target's hooks. Installation is idempotent: a
// hook that is already guarded, directly or through hook inheritance
// from a transformed base, is left alone.
func installGuards(target *typesys.Type) {
	if _, guarded := target.DirHook().(dirGuard); !guarded {
		target.SetDirHook(dirGuard{next: target.DirHook()})
	}
	if _, guarded := target.AttrHook().(attrGuard); !guarded {
		target.SetAttrHook(attrGuard{next: target.AttrHook()})
	}
}
