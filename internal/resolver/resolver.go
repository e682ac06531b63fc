// Package resolver provides multi-phase hierarchy resolution.
//
// Resolution transforms parsed hierarchy documents into a populated
// registry where every base reference is concrete, member tables are
// built, and disinherit clauses have been applied.
//
// # Resolution Phases
//
// The resolver executes the following phases in order:
//
//  1. Register: create modules and index their type declarations
//  2. Bases: resolve base references across modules
//  3. Order: compute a derivation order and break cycles
//  4. Build: declare types in dependency order and install members
//  5. Apply: run disinherit clauses on the built types
//
// Structural problems become diagnostics on the registry rather than
// hard errors; whether a finding aborts the load is the caller's policy.
// Under a strict configuration a problematic type is dropped, otherwise
// its bases fall back toward the origin so the rest of the hierarchy
// still resolves.
//
// # Usage
//
//	err := resolver.Resolve(ctx, reg, cfg, docs, logger)
package resolver

import (
	"context"
	"log/slog"
	"time"

	"github.com/dynatype/disinherit/internal/logutil"
	"github.com/dynatype/disinherit/internal/schema"
	"github.com/dynatype/disinherit/typesys"
)

// Resolve processes the documents into reg and records all findings on
// it. Documents are taken in file-name order so resolution does not
// depend on discovery order.
func Resolve(ctx context.Context, reg *typesys.Registry, cfg typesys.DiagnosticConfig, docs []*schema.Document, logger logutil.Logger) error {
	rc := newResolverContext(reg, cfg, docs, logger)

	type phase struct {
		name string
		run  func(*ResolverContext)
	}
	for _, p := range []phase{
		{"register", registerModules},
		{"bases", resolveBases},
		{"order", orderTypes},
		{"build", buildTypes},
		{"apply", applyDisinherit},
	} {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		rc.Debug("starting phase", slog.String("phase", p.name))
		p.run(rc)
		rc.Debug("phase complete",
			slog.String("phase", p.name),
			slog.Duration("elapsed", time.Since(start)),
			slog.Int("diagnostics", len(rc.diags)))
	}

	reg.AddDiagnostics(rc.diags...)

	rc.Log(slog.LevelInfo, "resolution complete",
		slog.Int("modules", reg.ModuleCount()),
		slog.Int("types", reg.TypeCount()),
		slog.Int("diagnostics", len(rc.diags)))
	return nil
}
