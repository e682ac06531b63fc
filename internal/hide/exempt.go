package hide

import (
	"maps"

	"github.com/dynatype/disinherit/typesys"
)

// coerceExempt normalizes exemption specifiers into a map keyed like the
// chain map. A whole type contributes its entire resolved member map; a
// member contributes itself under its owner's key. Specifiers naming
// types outside the chain, members without an owner, and unrecognized
// shapes are dropped without error.
func coerceExempt(nodes []chainNode, specs []any) map[typesys.Key]map[string]typesys.Value {
	index := make(map[typesys.Key]map[string]typesys.Value, len(nodes))
	for _, node := range nodes {
		index[node.key] = node.members
	}

	out := make(map[typesys.Key]map[string]typesys.Value)
	sub := func(key typesys.Key) map[string]typesys.Value {
		if out[key] == nil {
			out[key] = make(map[string]typesys.Value)
		}
		return out[key]
	}

	addMember := func(m typesys.Member) {
		owner := m.Owner()
		if owner == nil || m.Name() == "" {
			return
		}
		key, err := owner.Key()
		if err != nil {
			return
		}
		if _, inChain := index[key]; !inChain {
			return
		}
		sub(key)[m.Name()] = m.Value()
	}

	var add func(spec any)
	add = func(spec any) {
		switch s := spec.(type) {
		case nil:
		case []any:
			for _, item := range s {
				add(item)
			}
		case *typesys.Type:
			key, err := s.Key()
			if err != nil {
				return
			}
			members, inChain := index[key]
			if !inChain {
				return
			}
			maps.Copy(sub(key), members)
		case typesys.Member:
			addMember(s)
		case *typesys.Member:
			if s != nil {
				addMember(*s)
			}
		}
	}
	for _, spec := range specs {
		add(spec)
	}
	return out
}
