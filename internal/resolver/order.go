package resolver

import (
	"slices"
	"strings"

	"github.com/dynatype/disinherit/internal/graph"
	"github.com/dynatype/disinherit/typesys"
)

// orderTypes computes a build order for the surviving declarations.
// Derivation cycles are diagnosed and broken: a strict configuration
// drops the cycle members, otherwise their in-cycle bases are removed so
// the members still build against the rest of their bases. Breaking a
// cycle can only remove edges, so the rebuild loop terminates.
func orderTypes(rc *ResolverContext) {
	for {
		order, cycles := buildGraph(rc).BuildOrder()
		if len(cycles) == 0 {
			rc.order = order
			return
		}
		for _, cycle := range cycles {
			breakCycle(rc, cycle)
		}
	}
}

func breakCycle(rc *ResolverContext, cycle []graph.TypeRef) {
	names := make([]string, len(cycle))
	inCycle := make(map[graph.TypeRef]bool, len(cycle))
	for i, ref := range cycle {
		names[i] = ref.String()
		inCycle[ref] = true
	}
	first := rc.decls[cycle[0]]
	rc.reportf(typesys.SeveritySevere, typesys.DiagBaseCycle, first.doc, first.decl.Line,
		"derivation cycle through %s", strings.Join(names, ", "))

	for _, ref := range cycle {
		if rc.cfg.IsStrict() {
			delete(rc.decls, ref)
			continue
		}
		d := rc.decls[ref]
		d.bases = slices.DeleteFunc(d.bases, func(b graph.TypeRef) bool { return inCycle[b] })
	}
}

// buildGraph builds the derivation graph over the current declarations.
// Bases already present in the registry need no ordering and contribute
// no edges.
func buildGraph(rc *ResolverContext) *graph.Graph {
	g := graph.New()
	for ref, d := range rc.decls {
		g.AddNode(ref)
		for _, b := range d.bases {
			if _, ok := rc.decls[b]; ok {
				g.AddBase(ref, b)
			}
		}
	}
	return g
}
