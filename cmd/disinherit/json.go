package main

import (
	"encoding/json"
	"os"
	"slices"

	"github.com/dynatype/disinherit"
)

// TypeJSON is the JSON-serializable form of a declared type.
type TypeJSON struct {
	Name    string       `json:"name"`
	Module  string       `json:"module"`
	Bases   []string     `json:"bases,omitempty"`
	Mro     []string     `json:"mro,omitempty"`
	Doc     string       `json:"doc,omitempty"`
	Members []MemberJSON `json:"members,omitempty"`
	Visible []string     `json:"visible,omitempty"`
	Hidden  []string     `json:"hidden,omitempty"`
}

// MemberJSON is one entry of a type's own member table.
type MemberJSON struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value string `json:"value,omitempty"`
}

// DiagnosticJSON is the JSON-serializable form of a loading finding.
type DiagnosticJSON struct {
	Severity    string `json:"severity"`
	SeverityNum int    `json:"severityNum"`
	Code        string `json:"code"`
	Message     string `json:"message"`
	Module      string `json:"module,omitempty"`
	File        string `json:"file,omitempty"`
	Line        int    `json:"line,omitempty"`
	Column      int    `json:"column,omitempty"`
}

func buildTypeJSON(typ *disinherit.Type) TypeJSON {
	out := TypeJSON{Name: typ.Name()}
	if mod := typ.Module(); mod != nil {
		out.Module = mod.Name()
	}
	for _, b := range typ.Bases() {
		out.Bases = append(out.Bases, b.QualifiedName())
	}
	for _, a := range typ.Linearization() {
		out.Mro = append(out.Mro, a.QualifiedName())
	}
	if doc, ok := typ.Resolve("__doc__"); ok {
		if s, isStr := doc.(string); isStr {
			out.Doc = s
		}
	}

	for _, name := range typ.OwnNames() {
		v, _ := typ.Resolve(name)
		out.Members = append(out.Members, MemberJSON{
			Name:  name,
			Kind:  memberKind(v),
			Value: memberValue(v),
		})
	}

	out.Visible = typ.New().Dir()
	for name, v := range typ.ResolvedMembers() {
		if disinherit.IsHidden(v) {
			out.Hidden = append(out.Hidden, name)
		}
	}
	slices.Sort(out.Hidden)
	return out
}

func memberKind(v disinherit.Value) string {
	switch {
	case disinherit.IsHidden(v):
		return "hidden"
	case isFunc(v):
		return "method"
	default:
		return "attr"
	}
}

// memberValue renders an attribute value; methods and hidden markers
// carry no useful literal.
func memberValue(v disinherit.Value) string {
	if disinherit.IsHidden(v) || isFunc(v) {
		return ""
	}
	return disinherit.DescribeValue(v)
}

func isFunc(v disinherit.Value) bool {
	_, ok := v.(disinherit.Func)
	return ok
}

func buildDiagnosticJSON(d disinherit.Diagnostic) DiagnosticJSON {
	return DiagnosticJSON{
		Severity:    d.Severity.String(),
		SeverityNum: int(d.Severity),
		Code:        d.Code,
		Message:     d.Message,
		Module:      d.Module,
		File:        d.File,
		Line:        d.Line,
		Column:      d.Column,
	}
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
