package resolver

import (
	"log/slog"

	"github.com/dynatype/disinherit/internal/graph"
	"github.com/dynatype/disinherit/typesys"
)

// registerModules creates one module per document and indexes the type
// declarations, rejecting duplicate modules, invalid type names, and
// duplicate types.
func registerModules(rc *ResolverContext) {
	for _, doc := range rc.docs {
		if rc.reg.Module(doc.Module) != nil {
			rc.reportf(typesys.SeverityError, typesys.DiagDuplicateModule, doc, 0,
				"module %s already loaded, skipping %s", doc.Module, doc.File)
			continue
		}
		if _, err := rc.reg.AddModule(doc.Module, doc.File); err != nil {
			rc.reportf(typesys.SeverityError, typesys.DiagDocumentInvalid, doc, 0, "%v", err)
			continue
		}

		for i := range doc.Types {
			decl := &doc.Types[i]
			// A detached probe runs the same name checks the build
			// phase's NewType will.
			if _, err := typesys.NewType(decl.Name); err != nil {
				rc.reportf(typesys.SeverityError, typesys.DiagBadTypeName, doc, decl.Line, "%v", err)
				continue
			}
			ref := graph.TypeRef{Module: doc.Module, Name: decl.Name}
			if _, dup := rc.decls[ref]; dup {
				rc.reportf(typesys.SeverityError, typesys.DiagDuplicateType, doc, decl.Line,
					"type %s declared twice", ref)
				continue
			}
			rc.decls[ref] = &typeDecl{doc: doc, decl: decl}
			rc.declOrder = append(rc.declOrder, ref)
		}

		if rc.TraceEnabled() {
			rc.Trace("registered module",
				slog.String("name", doc.Module),
				slog.String("file", doc.File),
				slog.Int("types", len(doc.Types)))
		}
	}
}
