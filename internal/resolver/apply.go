package resolver

import (
	"strings"

	"github.com/dynatype/disinherit/internal/hide"
	"github.com/dynatype/disinherit/typesys"
)

// applyDisinherit runs the hiding transformation for every built type
// with an enabled disinherit clause, in build order. Applying in
// dependency order means a derived type sees its ancestors already
// transformed, the same way a decorator sees base classes finalized
// before the deriving declaration runs.
func applyDisinherit(rc *ResolverContext) {
	for _, ref := range rc.order {
		d := rc.decls[ref]
		if d == nil || d.decl.Disinherit == nil || d.decl.Disinherit.Disabled {
			continue
		}
		t := rc.built[ref]
		if t == nil {
			continue
		}
		exempt := resolveExempt(rc, t, d)
		if err := hide.Apply(t, exempt, rc.Logger); err != nil {
			rc.reportf(typesys.SeverityError, typesys.DiagDisinheritFailed, d.doc, d.decl.Disinherit.Line,
				"disinherit %s: %v", t.QualifiedName(), err)
		}
	}
}

// resolveExempt maps a clause's exemption strings onto live types and
// members. Strings that resolve to nothing are diagnosed and skipped;
// the clause still applies with the exemptions that did resolve.
func resolveExempt(rc *ResolverContext, t *typesys.Type, d *typeDecl) []any {
	clause := d.decl.Disinherit
	exempt := make([]any, 0, len(clause.Exempt))
	for _, raw := range clause.Exempt {
		qualified, memberName, ok := parseExempt(raw, d.doc.Module)
		if !ok {
			rc.reportf(typesys.SeverityWarning, typesys.DiagExemptUnresolved, d.doc, clause.Line,
				"malformed exemption %q on %s", raw, t.QualifiedName())
			continue
		}
		target := rc.reg.Type(qualified)
		if target == nil {
			rc.reportf(typesys.SeverityWarning, typesys.DiagExemptUnresolved, d.doc, clause.Line,
				"exemption %q on %s names an unknown type", raw, t.QualifiedName())
			continue
		}
		if memberName == "" {
			exempt = append(exempt, target)
			continue
		}
		m, found := target.Lookup(memberName)
		if !found {
			rc.reportf(typesys.SeverityWarning, typesys.DiagExemptUnresolved, d.doc, clause.Line,
				"exemption %q on %s names an unknown member", raw, t.QualifiedName())
			continue
		}
		exempt = append(exempt, m)
	}
	return exempt
}

// parseExempt splits an exemption reference into a qualified type name
// and an optional member name: "module::Type", "module::Type.member", or
// the same forms without the module part for the declaring module.
func parseExempt(raw, localModule string) (qualified, member string, ok bool) {
	modPart, namePart := localModule, raw
	if mod, rest, found := typesys.SplitQualified(raw); found {
		modPart, namePart = mod, rest
	} else if strings.Contains(raw, ":") {
		return "", "", false
	}
	name, member, _ := strings.Cut(namePart, ".")
	if name == "" || modPart == "" {
		return "", "", false
	}
	return modPart + "::" + name, member, true
}
