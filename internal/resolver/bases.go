package resolver

import (
	"strings"

	"github.com/dynatype/disinherit/internal/graph"
	"github.com/dynatype/disinherit/typesys"
)

// resolveBases maps each declaration's base strings onto type refs.
// A reference that resolves to nothing is diagnosed and removed; under a
// strict configuration the declaring type is dropped instead.
func resolveBases(rc *ResolverContext) {
	for _, ref := range rc.declOrder {
		d := rc.decls[ref]
		if d == nil {
			continue
		}
		var keep []graph.TypeRef
		for _, raw := range d.decl.Bases {
			bref, ok := parseTypeRef(raw, ref.Module)
			if !ok {
				rc.reportf(typesys.SeveritySevere, typesys.DiagBaseUnresolved, d.doc, d.decl.Line,
					"malformed base reference %q on %s", raw, ref)
				continue
			}
			if _, isDecl := rc.decls[bref]; isDecl {
				keep = append(keep, bref)
				continue
			}
			if rc.reg.Type(bref.String()) != nil {
				keep = append(keep, bref)
				continue
			}
			rc.reportf(typesys.SeveritySevere, typesys.DiagBaseUnresolved, d.doc, d.decl.Line,
				"unknown base %s of %s", bref, ref)
		}
		if rc.cfg.IsStrict() && len(keep) < len(d.decl.Bases) {
			delete(rc.decls, ref)
			continue
		}
		d.bases = keep
	}
}

// parseTypeRef resolves a base reference. "module::Type" is fully
// qualified; a bare "Type" names the declaring module.
func parseTypeRef(raw, localModule string) (graph.TypeRef, bool) {
	if mod, name, ok := typesys.SplitQualified(raw); ok {
		if strings.ContainsAny(name, ":. \t\n") {
			return graph.TypeRef{}, false
		}
		return graph.TypeRef{Module: mod, Name: name}, true
	}
	if raw == "" || strings.ContainsAny(raw, ":. \t\n") {
		return graph.TypeRef{}, false
	}
	return graph.TypeRef{Module: localModule, Name: raw}, true
}
