package integration

import (
	"testing"

	"github.com/dynatype/disinherit"
	"github.com/dynatype/disinherit/internal/testutil"
)

// LinearizationTestCase tests that a type's resolution chain comes out
// in the declared order, target first, origin last.
type LinearizationTestCase struct {
	Name      string   // qualified type name
	WantChain []string // expected chain, qualified names
}

var linearizationTests = []LinearizationTestCase{
	{Name: "core::Base", WantChain: []string{"core::Base", "builtin::object"}},
	{Name: "core::Middle", WantChain: []string{"core::Middle", "core::Base", "builtin::object"}},
	{Name: "app::Panel", WantChain: []string{"app::Panel", "core::Middle", "core::Base", "builtin::object"}},
	{Name: "app::Derived", WantChain: []string{"app::Derived", "app::Panel", "core::Middle", "core::Base", "builtin::object"}},
	{Name: "app::Plain", WantChain: []string{"app::Plain", "core::Base", "builtin::object"}},
	{Name: "bridge::Span", WantChain: []string{"bridge::Span", "north::Base", "builtin::object"}},
	{Name: "bridge::Deck", WantChain: []string{"bridge::Deck", "north::Base", "builtin::object"}},
}

func TestLinearization(t *testing.T) {
	reg := loadCorpus(t)

	for _, tc := range linearizationTests {
		t.Run(tc.Name, func(t *testing.T) {
			typ := getType(t, reg, tc.Name)

			var got []string
			for _, a := range typ.Linearization() {
				got = append(got, a.QualifiedName())
			}
			testutil.SliceEqual(t, tc.WantChain, got, "chain mismatch")
			testutil.Equal(t, "builtin::object", typ.Origin().QualifiedName(), "origin mismatch")
		})
	}
}

// ModuleTypesTestCase tests that a module carries its declared types in
// declaration order.
type ModuleTypesTestCase struct {
	Module    string   // module name
	WantTypes []string // expected type names, declaration order
}

var moduleTypesTests = []ModuleTypesTestCase{
	{Module: "builtin", WantTypes: []string{"object"}},
	{Module: "core", WantTypes: []string{"Base", "Middle"}},
	{Module: "app", WantTypes: []string{"Panel", "Widget", "Plain", "Derived", "Gadget"}},
	{Module: "bridge", WantTypes: []string{"Span", "Deck"}},
	{Module: "north", WantTypes: []string{"Base"}},
	{Module: "south", WantTypes: []string{"Base"}},
}

func TestModuleTypes(t *testing.T) {
	reg := loadCorpus(t)

	for _, tc := range moduleTypesTests {
		t.Run(tc.Module, func(t *testing.T) {
			mod := reg.Module(tc.Module)
			testutil.NotNil(t, mod, "module %s should exist", tc.Module)

			var got []string
			for _, typ := range mod.Types() {
				got = append(got, typ.Name())
			}
			testutil.SliceEqual(t, tc.WantTypes, got, "type list mismatch")
		})
	}
}

// BasesTestCase tests that declared bases resolve to the right types,
// including same-named types in different modules.
type BasesTestCase struct {
	Name      string   // qualified type name
	WantBases []string // expected direct bases, qualified names
}

var basesTests = []BasesTestCase{
	{Name: "app::Widget", WantBases: []string{"core::Middle"}},
	{Name: "app::Derived", WantBases: []string{"app::Panel"}},
	{Name: "bridge::Span", WantBases: []string{"north::Base"}},
	{Name: "core::Base", WantBases: []string{"builtin::object"}},
}

func TestBases(t *testing.T) {
	reg := loadCorpus(t)

	for _, tc := range basesTests {
		t.Run(tc.Name, func(t *testing.T) {
			typ := getType(t, reg, tc.Name)

			var got []string
			for _, b := range typ.Bases() {
				got = append(got, b.QualifiedName())
			}
			testutil.SliceEqual(t, tc.WantBases, got, "bases mismatch")
		})
	}
}

// TestDistinctBaseIdentity verifies that the two Base declarations stay
// distinct types even though they share a bare name.
func TestDistinctBaseIdentity(t *testing.T) {
	reg := loadCorpus(t)

	north := getType(t, reg, "north::Base")
	south := getType(t, reg, "south::Base")
	testutil.True(t, north != south, "north::Base and south::Base should be distinct")

	// Both keys carry the bare name; the source file keeps them apart.
	nk, err := north.Key()
	testutil.NoError(t, err, "north key")
	sk, err := south.Key()
	testutil.NoError(t, err, "south key")
	testutil.Equal(t, "Base", nk.Name, "north key name")
	testutil.Equal(t, "Base", sk.Name, "south key name")
	testutil.True(t, nk != sk, "keys should differ")
	testutil.Contains(t, nk.Source, "north.yaml", "north key source")
	testutil.Contains(t, sk.Source, "south.yaml", "south key source")
}

// TestOriginIsShared verifies every chain bottoms out at the one seeded
// origin type.
func TestOriginIsShared(t *testing.T) {
	reg := loadCorpus(t)

	origin := getType(t, reg, disinherit.BuiltinModule+"::"+disinherit.OriginName)
	for _, qualified := range []string{"app::Panel", "bridge::Deck", "south::Base"} {
		typ := getType(t, reg, qualified)
		testutil.True(t, typ.Origin() == origin, "%s origin should be the builtin object", qualified)
	}
}
