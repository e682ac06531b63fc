// Package integration provides integration tests against the document
// test corpus.
//
// These tests load testdata/corpus/basic/ and testdata/corpus/collisions/
// together and make assertions against the resolved registry. Expected
// member surfaces are worked out by hand from the documents and the
// resolution chains they declare.
//
// # Adding Test Cases
//
// 1. Derive the expected surface from the document and its chain
// 2. Add the test case to the appropriate file (hiding_test.go, hierarchy_test.go, etc.)
// 3. Regenerate testdata/fixtures with disinherit-fixturegen when the corpus changes
//
// # File Organization
//
//   - corpus_test.go: Shared infrastructure and basic load test
//   - hierarchy_test.go: Module contents, bases, resolution chains
//   - hiding_test.go: Post-transform member surfaces and retrieval
//   - diagnostics_test.go: Broken corpus behavior across strictness levels
package integration

import (
	"context"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/dynatype/disinherit"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// corpusReg holds the shared resolved registry for all tests.
// Loaded once via loadCorpus().
var (
	corpusReg  *disinherit.Registry
	corpusOnce sync.Once
	corpusErr  error
)

// corpusPath returns the path to the named test corpus.
func corpusPath(name string) string {
	return filepath.Join("..", "testdata", "corpus", name)
}

// loadCorpus loads the basic and collisions corpora once and caches the
// result. All tests share the same resolved registry for efficiency.
func loadCorpus(t *testing.T) *disinherit.Registry {
	t.Helper()

	corpusOnce.Do(func() {
		basic, err := disinherit.Dir(corpusPath("basic"))
		if err != nil {
			corpusErr = err
			return
		}
		collisions, err := disinherit.Dir(corpusPath("collisions"))
		if err != nil {
			corpusErr = err
			return
		}
		corpusReg, corpusErr = disinherit.Load(context.Background(),
			disinherit.Multi(basic, collisions))
	})

	if corpusErr != nil {
		t.Fatalf("failed to load corpus: %v", corpusErr)
	}
	if corpusReg == nil {
		t.Fatal("corpus registry is nil")
	}

	return corpusReg
}

// getType retrieves a type by qualified name and fails if not found.
func getType(t *testing.T, reg *disinherit.Registry, qualified string) *disinherit.Type {
	t.Helper()
	typ := reg.Type(qualified)
	require.NotNil(t, typ, "type %s should exist", qualified)
	return typ
}

// hiddenNames returns the sorted names the type's resolved member map
// marks as hidden.
func hiddenNames(typ *disinherit.Type) []string {
	var names []string
	for name, v := range typ.ResolvedMembers() {
		if disinherit.IsHidden(v) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// callString calls a member and fails unless it returns a string.
func callString(t *testing.T, in *disinherit.Instance, name string) string {
	t.Helper()
	out, err := in.Call(name)
	require.NoError(t, err, "calling %s on %s", name, in.Type().QualifiedName())
	s, ok := out.(string)
	require.True(t, ok, "%s should return a string, got %T", name, out)
	return s
}

// TestCorpusLoads verifies the corpus loads without fatal errors.
func TestCorpusLoads(t *testing.T) {
	reg := loadCorpus(t)

	// Basic sanity checks
	require.Greater(t, reg.ModuleCount(), 1, "should have loaded modules beyond builtin")
	require.Greater(t, reg.TypeCount(), 1, "should have declared types")
	require.Empty(t, reg.Diagnostics(), "clean corpus should produce no diagnostics")

	t.Logf("Corpus: %d modules, %d types", reg.ModuleCount(), reg.TypeCount())
}
