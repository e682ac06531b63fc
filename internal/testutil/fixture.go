package testutil

import (
	"encoding/json"
	"os"
	"testing"
)

// FixtureType is one expected type surface from a JSON fixture: the
// member names an instance should enumerate and the names hiding must
// withhold.
type FixtureType struct {
	Module  string   `json:"module"`
	Name    string   `json:"name"`
	Visible []string `json:"visible"`
	Hidden  []string `json:"hidden,omitempty"`
}

// Qualified returns the entry's "module::Name" form.
func (f *FixtureType) Qualified() string {
	return f.Module + "::" + f.Name
}

// LoadFixture reads a fixture file and returns its entries keyed by
// qualified type name. The file holds a JSON array of FixtureType
// objects.
func LoadFixture(t testing.TB, path string) map[string]*FixtureType {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	var entries []*FixtureType
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("parse fixture %s: %v", path, err)
	}
	types := make(map[string]*FixtureType, len(entries))
	for _, f := range entries {
		if f.Module == "" || f.Name == "" {
			t.Fatalf("fixture %s: entry missing module or name", path)
		}
		if _, ok := types[f.Qualified()]; ok {
			t.Fatalf("fixture %s: duplicate entry %s", path, f.Qualified())
		}
		types[f.Qualified()] = f
	}
	return types
}

// FixtureModuleTypes filters entries down to those declared in module.
func FixtureModuleTypes(types map[string]*FixtureType, module string) map[string]*FixtureType {
	out := make(map[string]*FixtureType)
	for q, f := range types {
		if f.Module == module {
			out[q] = f
		}
	}
	return out
}
