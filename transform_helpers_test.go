package disinherit

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dynatype/disinherit/internal/testutil"
)

const fixtureDir = "testdata/fixtures"

var (
	basicOnce sync.Once
	basicReg  *Registry
	basicErr  error

	collisionsOnce sync.Once
	collisionsReg  *Registry
	collisionsErr  error
)

// loadBasicCorpus loads testdata/corpus/basic once (via sync.Once) and
// returns the shared registry, so tests sharing the fixture set avoid
// redundant parsing.
func loadBasicCorpus(t testing.TB) *Registry {
	t.Helper()
	basicOnce.Do(func() {
		src, err := Dir("testdata/corpus/basic")
		if err != nil {
			basicErr = err
			return
		}
		basicReg, basicErr = Load(context.Background(), src)
	})
	if basicErr != nil {
		t.Fatalf("failed to load basic corpus: %v", basicErr)
	}
	return basicReg
}

func loadCollisionsCorpus(t testing.TB) *Registry {
	t.Helper()
	collisionsOnce.Do(func() {
		src, err := Dir("testdata/corpus/collisions")
		if err != nil {
			collisionsErr = err
			return
		}
		collisionsReg, collisionsErr = Load(context.Background(), src)
	})
	if collisionsErr != nil {
		t.Fatalf("failed to load collisions corpus: %v", collisionsErr)
	}
	return collisionsReg
}

// loadProblemsCorpus loads the problem corpus fresh each call. The
// corpus fails the default threshold, so callers get the registry and
// the LoadError separately.
func loadProblemsCorpus(t testing.TB, opts ...LoadOption) (*Registry, error) {
	t.Helper()
	src, err := Dir("testdata/corpus/problems")
	if err != nil {
		t.Fatalf("problems corpus missing: %v", err)
	}
	return Load(context.Background(), src, opts...)
}

func fixturePath(name string) string {
	return filepath.Join(fixtureDir, name+".json")
}

func loadFixtureTypes(t testing.TB, name string) map[string]*testutil.FixtureType {
	t.Helper()
	return testutil.LoadFixture(t, fixturePath(name))
}

// mustType fetches a qualified type and fails the test if it is
// missing.
func mustType(t testing.TB, reg *Registry, qualified string) *Type {
	t.Helper()
	typ := reg.Type(qualified)
	if typ == nil {
		t.Fatalf("type %s not found", qualified)
	}
	return typ
}

// callMember invokes a method member on a fresh instance and returns
// the string it yields.
func callMember(t testing.TB, typ *Type, name string) string {
	t.Helper()
	out, err := typ.New().Call(name)
	if err != nil {
		t.Fatalf("call %s on %s: %v", name, typ.QualifiedName(), err)
	}
	s, ok := out.(string)
	if !ok {
		t.Fatalf("call %s on %s returned %T, want string", name, typ.QualifiedName(), out)
	}
	return s
}

// findDiagnostic returns the first diagnostic with the given code.
func findDiagnostic(reg *Registry, code string) (Diagnostic, bool) {
	for _, d := range reg.Diagnostics() {
		if d.Code == code {
			return d, true
		}
	}
	return Diagnostic{}, false
}

// writeCorpusFile drops a document into dir for tests that build their
// own corpus.
func writeCorpusFile(t testing.TB, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
