// Package schema decodes declarative hierarchy documents.
//
// A document declares one module and its types:
//
//	module: core
//	types:
//	  - name: Base
//	    bases: [builtin::object]
//	    members:
//	      helper: method
//	      limit: {kind: attr, value: 10}
//	    disinherit:
//	      exempt: [core::Mixin, core::Mixin.helper]
//
// Decoding is strict: unknown fields are errors. Semantic checks (base
// references, member kinds, exemption strings) are the resolver's job,
// which is why declarations carry their source line numbers.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Member kinds understood by the resolver.
const (
	KindAttr   = "attr"
	KindMethod = "method"
)

// Document is one parsed hierarchy file.
type Document struct {
	Module string     `yaml:"module"`
	Types  []TypeDecl `yaml:"types"`

	File string `yaml:"-"` // set by Parse
}

// TypeDecl declares one type. A declaration without bases implicitly
// descends from the origin. The doc string becomes the type's __doc__
// member.
type TypeDecl struct {
	Name       string                `yaml:"name"`
	Doc        string                `yaml:"doc"`
	Bases      []string              `yaml:"bases"`
	Members    map[string]MemberDecl `yaml:"members"`
	Disinherit *DisinheritDecl       `yaml:"disinherit"`

	Line int `yaml:"-"`
}

func (d *TypeDecl) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: type declaration must be a mapping", n.Line)
	}
	if err := checkFields(n, "name", "doc", "bases", "members", "disinherit"); err != nil {
		return err
	}
	type plain TypeDecl
	var p plain
	if err := n.Decode(&p); err != nil {
		return err
	}
	*d = TypeDecl(p)
	d.Line = n.Line
	return nil
}

// MemberDecl declares one member. The scalar shorthand names the kind
// ("method"); the mapping form sets kind and value explicitly. A mapping
// with a value but no kind declares an attribute.
type MemberDecl struct {
	Kind  string `yaml:"kind"`
	Value any    `yaml:"value"`

	Line int `yaml:"-"`
}

func (d *MemberDecl) UnmarshalYAML(n *yaml.Node) error {
	switch {
	case n.Kind == yaml.ScalarNode && n.Tag == "!!str":
		*d = MemberDecl{Kind: n.Value, Line: n.Line}
		return nil
	case n.Kind == yaml.MappingNode:
		if err := checkFields(n, "kind", "value"); err != nil {
			return err
		}
		type plain MemberDecl
		var p plain
		if err := n.Decode(&p); err != nil {
			return err
		}
		*d = MemberDecl(p)
		if d.Kind == "" {
			d.Kind = KindAttr
		}
		d.Line = n.Line
		return nil
	default:
		return fmt.Errorf("line %d: member declaration must be a kind name or a mapping", n.Line)
	}
}

// DisinheritDecl enables hiding for a type. The forms "disinherit: true"
// and "disinherit: {}" hide with no exemptions; "disinherit: false"
// disables the clause. Exemption strings name a whole type
// ("module::Type") or a single member ("module::Type.member").
type DisinheritDecl struct {
	Exempt []string `yaml:"exempt"`

	Disabled bool `yaml:"-"`
	Line     int  `yaml:"-"`
}

func (d *DisinheritDecl) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var enabled bool
		if err := n.Decode(&enabled); err != nil {
			return fmt.Errorf("line %d: disinherit must be a boolean or a mapping", n.Line)
		}
		*d = DisinheritDecl{Disabled: !enabled, Line: n.Line}
		return nil
	case yaml.MappingNode:
		if err := checkFields(n, "exempt"); err != nil {
			return err
		}
		type plain DisinheritDecl
		var p plain
		if err := n.Decode(&p); err != nil {
			return err
		}
		*d = DisinheritDecl(p)
		d.Line = n.Line
		return nil
	default:
		return fmt.Errorf("line %d: disinherit must be a boolean or a mapping", n.Line)
	}
}

// References returns the other modules the document refers to through
// qualified base and exemption names, sorted and deduplicated. Names
// that fail stricter resolver checks may appear; callers that chase
// references treat a miss as a soft failure.
func (d *Document) References() []string {
	seen := make(map[string]bool)
	note := func(raw string) {
		if mod, _, ok := strings.Cut(raw, "::"); ok && mod != "" && mod != d.Module {
			seen[mod] = true
		}
	}
	for i := range d.Types {
		t := &d.Types[i]
		for _, b := range t.Bases {
			note(b)
		}
		if t.Disinherit != nil {
			for _, e := range t.Disinherit.Exempt {
				note(e)
			}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Parse decodes a hierarchy document. The file name is recorded on the
// document and used in error messages.
func Parse(data []byte, file string) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty document", file)
		}
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	if doc.Module == "" {
		return nil, fmt.Errorf("%s: missing module name", file)
	}
	doc.File = file
	return &doc, nil
}

// ParseFile reads and parses the document at path.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// checkFields rejects mapping keys outside the allowed set.
func checkFields(n *yaml.Node, allowed ...string) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if !slices.Contains(allowed, key.Value) {
			return fmt.Errorf("line %d: unknown field %q", key.Line, key.Value)
		}
	}
	return nil
}
