package resolver

import (
	"log/slog"
	"slices"

	"github.com/dynatype/disinherit/internal/graph"
	"github.com/dynatype/disinherit/internal/schema"
	"github.com/dynatype/disinherit/typesys"
)

// buildTypes declares the surviving types in dependency order and
// installs their members. Bases lost to strict-mode drops cascade here:
// the dependent is diagnosed and, still strict, dropped as well. An
// inconsistent hierarchy falls back to an origin-only base list.
func buildTypes(rc *ResolverContext) {
	for _, ref := range rc.order {
		d := rc.decls[ref]
		mod := rc.reg.Module(ref.Module)
		if d == nil || mod == nil {
			continue
		}

		var bases []*typesys.Type
		var missing []graph.TypeRef
		for _, bref := range d.bases {
			switch {
			case rc.built[bref] != nil:
				bases = append(bases, rc.built[bref])
			case rc.reg.Type(bref.String()) != nil:
				bases = append(bases, rc.reg.Type(bref.String()))
			default:
				missing = append(missing, bref)
			}
		}
		for _, m := range missing {
			rc.reportf(typesys.SeveritySevere, typesys.DiagBaseUnresolved, d.doc, d.decl.Line,
				"base %s of %s was dropped", m, ref)
		}
		if len(missing) > 0 && rc.cfg.IsStrict() {
			continue
		}

		t, err := mod.NewType(d.decl.Name, bases...)
		if err != nil {
			rc.reportf(typesys.SeveritySevere, typesys.DiagHierarchyInconsistent, d.doc, d.decl.Line,
				"%v", err)
			if rc.cfg.IsStrict() {
				continue
			}
			if t, err = mod.NewType(d.decl.Name); err != nil {
				continue
			}
		}
		installMembers(rc, t, d)
		rc.built[ref] = t

		if rc.TraceEnabled() {
			rc.Trace("type built",
				slog.String("type", t.QualifiedName()),
				slog.Int("bases", len(bases)),
				slog.Int("chain", len(t.Linearization())))
		}
	}
}

// installMembers fills the type's own table from the declaration.
// Members install in name order so diagnostics are stable across runs.
func installMembers(rc *ResolverContext, t *typesys.Type, d *typeDecl) {
	if d.decl.Doc != "" {
		t.Define("__doc__", d.decl.Doc)
	}
	names := make([]string, 0, len(d.decl.Members))
	for name := range d.decl.Members {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		m := d.decl.Members[name]
		switch m.Kind {
		case schema.KindAttr:
			t.Define(name, m.Value)
		case schema.KindMethod:
			t.Define(name, methodStub(t, name))
		default:
			rc.reportf(typesys.SeverityMinor, typesys.DiagMemberKindUnknown, d.doc, m.Line,
				"member %s.%s has unknown kind %q", t.QualifiedName(), name, m.Kind)
		}
	}
}

// methodStub returns a callable placeholder for a declared method. The
// stub reports the qualified name of its declaring type, which keeps the
// winning implementation observable without executable bodies in
// documents.
func methodStub(t *typesys.Type, name string) typesys.Func {
	qual := t.QualifiedName() + "." + name
	return func(self *typesys.Instance, args ...typesys.Value) (typesys.Value, error) {
		return qual, nil
	}
}
