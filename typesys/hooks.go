package typesys

import "slices"

// DefaultAttrHook is the retrieval behavior types start with: instance
// storage first, then the first definition along the linearization. It
// performs no hiding; a hidden-member marker found in a member table is
// returned as the resolved value.
var DefaultAttrHook AttrHook = AttrFunc(resolveAttr)

// DefaultDirHook is the enumeration behavior types start with: the union
// of instance-local attribute names and every name defined along the
// linearization, sorted. It performs no hiding.
var DefaultDirHook DirHook = DirFunc(resolveDir)

func resolveAttr(in *Instance, name string) (Value, error) {
	if v, ok := in.local(name); ok {
		return v, nil
	}
	if v, ok := in.typ.Resolve(name); ok {
		return v, nil
	}
	return nil, &NoSuchMemberError{Type: in.typ.QualifiedName(), Member: name}
}

func resolveDir(in *Instance) []string {
	names := in.localNames()
	for _, anc := range in.typ.lin {
		for name := range anc.own {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}
