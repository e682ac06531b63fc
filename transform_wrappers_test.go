package disinherit

import (
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/dynatype/disinherit/internal/testutil"
)

// Guard behavior on transformed types: enumeration filtering, retrieval
// failure shapes, and the interplay with instance-local attributes and
// untransformed subtypes.

func TestDirFiltersHiddenNames(t *testing.T) {
	reg := loadBasicCorpus(t)
	panel := mustType(t, reg, "app::Panel")

	want := []string{"__doc__", "__hash__", "__init__", "__repr__", "__str__", "render", "title"}
	testutil.SliceEqual(t, want, panel.New().Dir())
}

func TestDirIncludesInstanceLocals(t *testing.T) {
	reg := loadBasicCorpus(t)
	widget := mustType(t, reg, "app::Widget")

	in := widget.New()
	in.SetAttr("color", "red")

	dir := in.Dir()
	testutil.True(t, slices.Contains(dir, "color"), "instance-local attribute missing from Dir: %v", dir)
	testutil.False(t, slices.Contains(dir, "middleOnly"), "hidden member leaked into Dir: %v", dir)
}

// A local attribute that shares its name with a hidden member splits the
// two surfaces: retrieval finds the local value, enumeration still drops
// the name because the type-level resolution is the hidden marker.

func TestAttrPrefersInstanceLocal(t *testing.T) {
	reg := loadBasicCorpus(t)
	panel := mustType(t, reg, "app::Panel")

	in := panel.New()
	in.SetAttr("helper", "local-helper")

	v, err := in.Attr("helper")
	testutil.NoError(t, err)
	testutil.Equal(t, "local-helper", v.(string))
}

func TestDirOmitsLocalShadowingHiddenName(t *testing.T) {
	reg := loadBasicCorpus(t)
	panel := mustType(t, reg, "app::Panel")

	in := panel.New()
	in.SetAttr("helper", "local-helper")

	testutil.False(t, slices.Contains(in.Dir(), "helper"), "shadowed hidden name listed in Dir")
}

func TestHiddenAttrFailureShape(t *testing.T) {
	reg := loadBasicCorpus(t)
	panel := mustType(t, reg, "app::Panel")

	_, err := panel.New().Attr("shared")
	testutil.ErrorIs(t, err, ErrNoSuchMember)

	var nsm *NoSuchMemberError
	testutil.True(t, errors.As(err, &nsm), "want NoSuchMemberError, got %T", err)
	testutil.Equal(t, "app::Panel", nsm.Type)
	testutil.Equal(t, "shared", nsm.Member)
}

func TestUnknownAttrFailureShape(t *testing.T) {
	reg := loadBasicCorpus(t)
	panel := mustType(t, reg, "app::Panel")

	_, err := panel.New().Attr("nonexistent")
	testutil.ErrorIs(t, err, ErrNoSuchMember)
}

func TestCallHiddenMethodFails(t *testing.T) {
	reg := loadBasicCorpus(t)
	panel := mustType(t, reg, "app::Panel")

	_, err := panel.New().Call("utility")
	testutil.ErrorIs(t, err, ErrNoSuchMember)
}

func TestCallNonCallableMember(t *testing.T) {
	reg := loadBasicCorpus(t)
	panel := mustType(t, reg, "app::Panel")

	_, err := panel.New().Call("title")
	testutil.ErrorIs(t, err, ErrNotCallable)
}

// Derived is never transformed itself. Its hooks resolve through the
// linearization at call time, so Panel's guards govern it, and failures
// report Derived as the owning type.

func TestGuardsGovernSubtypes(t *testing.T) {
	reg := loadBasicCorpus(t)
	derived := mustType(t, reg, "app::Derived")

	in := derived.New()
	dir := in.Dir()
	testutil.False(t, slices.Contains(dir, "helper"), "hidden member leaked into subtype Dir: %v", dir)
	testutil.True(t, slices.Contains(dir, "extra"), "own member missing from subtype Dir: %v", dir)

	_, err := in.Attr("shared")
	var nsm *NoSuchMemberError
	testutil.True(t, errors.As(err, &nsm), "want NoSuchMemberError, got %T", err)
	testutil.Equal(t, "app::Derived", nsm.Type)
}

// Hidden-state reads share nothing mutable after transform time.

func TestConcurrentGuardedAccess(t *testing.T) {
	reg := loadBasicCorpus(t)
	panel := mustType(t, reg, "app::Panel")

	in := panel.New()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if slices.Contains(in.Dir(), "shared") {
				t.Error("hidden member leaked into Dir")
			}
			if _, err := in.Attr("title"); err != nil {
				t.Errorf("title: %v", err)
			}
			if _, err := in.Attr("shared"); !errors.Is(err, ErrNoSuchMember) {
				t.Errorf("shared retrieval: %v", err)
			}
			if _, err := in.Call("render"); err != nil {
				t.Errorf("render: %v", err)
			}
		}()
	}
	wg.Wait()
}
