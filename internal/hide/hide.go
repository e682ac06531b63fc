// Package hide implements the member hiding transformation: given a
// target type, it classifies inherited member names as valid or invalid,
// marks invalid names with the hidden-member marker, reinstalls exempted
// members, and wraps the target's observation hooks so hidden names stay
// out of enumeration and fail retrieval.
package hide

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dynatype/disinherit/internal/logutil"
	"github.com/dynatype/disinherit/typesys"
)

// chainNode is one entry of the target's resolution chain, paired with
// its disambiguation key and its full resolved member map.
type chainNode struct {
	typ     *typesys.Type
	key     typesys.Key
	members map[string]typesys.Value
}

// Apply transforms target in place. Exemption specifiers may be
// *typesys.Type (whole type), typesys.Member or *typesys.Member (single
// member), or nested []any collections; anything else is dropped
// silently. The only failure is a *typesys.ConfigError when a chain node
// has no derivable key.
func Apply(target *typesys.Type, exempt []any, log logutil.Logger) error {
	if target == nil {
		return &typesys.ConfigError{Type: "<nil>", Err: fmt.Errorf("no target type")}
	}
	chain := target.Linearization()
	if len(chain) < 2 {
		return &typesys.ConfigError{
			Type: target.QualifiedName(),
			Err:  fmt.Errorf("resolution chain has no ancestors"),
		}
	}

	nodes, err := mapChain(chain)
	if err != nil {
		return &typesys.ConfigError{Type: target.QualifiedName(), Err: err}
	}

	exemptSet := coerceExempt(nodes, exempt)
	invalid := invalidNames(target, nodes, exemptSet)
	rewrite(target, nodes, invalid, exemptSet)
	installGuards(target)

	log.Debug("hide applied",
		slog.String("type", target.QualifiedName()),
		slog.Int("chain", len(chain)),
		slog.Int("hidden", len(invalid)),
		slog.Int("exempt_keys", len(exemptSet)))
	if log.TraceEnabled() {
		for name := range invalid {
			log.Trace("member hidden",
				slog.String("type", target.QualifiedName()),
				slog.String("member", name))
		}
	}
	return nil
}

// mapChain derives every chain node's key and resolved member map. A
// node without a derivable key aborts the whole transformation; a
// malformed chain must not produce a partial hide.
func mapChain(chain []*typesys.Type) ([]chainNode, error) {
	nodes := make([]chainNode, 0, len(chain))
	for _, t := range chain {
		key, err := t.Key()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, chainNode{
			typ:     t,
			key:     key,
			members: t.ResolvedMembers(),
		})
	}
	return nodes, nil
}

// invalidNames classifies every member name of the non-target, non-origin
// chain nodes. A name stays valid if it is required by the origin, defined
// by the target itself, or exempted under the key of any classified node
// whose member map carries it; it is invalid only when no valid-making
// condition fires anywhere in the chain.
func invalidNames(target *typesys.Type, nodes []chainNode, exempt map[typesys.Key]map[string]typesys.Value) map[string]struct{} {
	required := requiredNames(nodes[len(nodes)-1].typ)

	valid := make(map[string]struct{})
	candidates := make(map[string]struct{})
	for _, node := range nodes[1 : len(nodes)-1] {
		sub := exempt[node.key]
		for name := range node.members {
			switch {
			case required[name]:
			case target.Defines(name):
			case sub != nil && hasKey(sub, name):
				valid[name] = struct{}{}
			default:
				candidates[name] = struct{}{}
			}
		}
	}
	for name := range valid {
		delete(candidates, name)
	}
	return candidates
}

func hasKey(m map[string]typesys.Value, name string) bool {
	_, ok := m[name]
	return ok
}

// requiredNames returns the origin member names whose form stripped of
// leading and trailing underscores is longer than two characters. The
// threshold keeps dunder-style comparison hooks hideable while the
// behavioral surface stays.
func requiredNames(origin *typesys.Type) map[string]bool {
	req := make(map[string]bool)
	for name := range origin.OwnMembers() {
		if len(strings.Trim(name, "_")) > 2 {
			req[name] = true
		}
	}
	return req
}

// rewrite installs the hidden-member marker for every invalid name, then
// explicitly installs each exempted member whose name is still absent
// from the target's own table. Exemption keys are visited in chain order
// so the outcome never depends on specifier order.
func rewrite(target *typesys.Type, nodes []chainNode, invalid map[string]struct{}, exempt map[typesys.Key]map[string]typesys.Value) {
	for name := range invalid {
		target.Define(name, typesys.Unimplemented)
	}
	for _, node := range nodes {
		sub := exempt[node.key]
		if sub == nil {
			continue
		}
		for name, v := range sub {
			if target.Defines(name) {
				continue
			}
			target.Define(name, v)
		}
	}
}
