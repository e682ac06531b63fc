package resolver

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dynatype/disinherit/internal/graph"
	"github.com/dynatype/disinherit/internal/logutil"
	"github.com/dynatype/disinherit/internal/schema"
	"github.com/dynatype/disinherit/typesys"
)

// ResolverContext carries shared state across resolution phases.
type ResolverContext struct {
	logutil.Logger

	reg *typesys.Registry
	cfg typesys.DiagnosticConfig

	docs      []*schema.Document
	decls     map[graph.TypeRef]*typeDecl
	declOrder []graph.TypeRef
	order     []graph.TypeRef
	built     map[graph.TypeRef]*typesys.Type
	diags     []typesys.Diagnostic
}

// typeDecl is one accepted type declaration together with its resolved
// base references.
type typeDecl struct {
	doc   *schema.Document
	decl  *schema.TypeDecl
	bases []graph.TypeRef
}

func newResolverContext(reg *typesys.Registry, cfg typesys.DiagnosticConfig, docs []*schema.Document, logger logutil.Logger) *ResolverContext {
	sorted := slices.Clone(docs)
	slices.SortStableFunc(sorted, func(a, b *schema.Document) int {
		return strings.Compare(a.File, b.File)
	})
	return &ResolverContext{
		Logger: logger.Component("resolver"),
		reg:    reg,
		cfg:    cfg,
		docs:   sorted,
		decls:  make(map[graph.TypeRef]*typeDecl),
		built:  make(map[graph.TypeRef]*typesys.Type),
	}
}

func (rc *ResolverContext) reportf(sev typesys.Severity, code string, doc *schema.Document, line int, format string, args ...any) {
	d := typesys.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Module:   doc.Module,
		File:     doc.File,
		Line:     line,
	}
	rc.diags = append(rc.diags, d)
	rc.Debug("diagnostic",
		slog.String("severity", sev.String()),
		slog.String("code", code),
		slog.String("message", d.Message))
}
