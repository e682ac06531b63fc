package testutil

import (
	"slices"
	"strings"

	"github.com/dynatype/disinherit/typesys"
)

// NormalizeType converts a live type into fixture form. Visible names
// are what a fresh instance enumerates; hidden names are the marker
// entries of the resolved member map.
func NormalizeType(typ *typesys.Type) *FixtureType {
	if typ == nil {
		return nil
	}
	f := &FixtureType{Name: typ.Name()}
	if mod := typ.Module(); mod != nil {
		f.Module = mod.Name()
	}
	f.Visible = typ.New().Dir()
	for name, v := range typ.ResolvedMembers() {
		if typesys.IsHidden(v) {
			f.Hidden = append(f.Hidden, name)
		}
	}
	slices.Sort(f.Hidden)
	return f
}

// FormatNames renders a name list for assertion messages.
func FormatNames(names []string) string {
	if len(names) == 0 {
		return "{}"
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// DiffNames reports the names present in want but not got and vice
// versa, each sorted.
func DiffNames(want, got []string) (missing, extra []string) {
	wantSet := make(map[string]bool, len(want))
	for _, n := range want {
		wantSet[n] = true
	}
	gotSet := make(map[string]bool, len(got))
	for _, n := range got {
		gotSet[n] = true
	}
	for _, n := range want {
		if !gotSet[n] {
			missing = append(missing, n)
		}
	}
	for _, n := range got {
		if !wantSet[n] {
			extra = append(extra, n)
		}
	}
	slices.Sort(missing)
	slices.Sort(extra)
	return missing, extra
}
