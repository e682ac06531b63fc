package typesys

import (
	"fmt"
	"slices"
	"strings"
)

// Severity levels for diagnostics. Lower values are more severe.
type Severity int

const (
	SeverityFatal   Severity = 0 // Cannot continue loading
	SeveritySevere  Severity = 1 // Semantics changed to continue, must correct
	SeverityError   Severity = 2 // Able to continue, should correct
	SeverityMinor   Severity = 3 // Minor issue, should correct
	SeverityStyle   Severity = 4 // Style recommendation
	SeverityWarning Severity = 5 // Might be correct under some circumstances
	SeverityInfo    Severity = 6 // Informational notice
)

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeveritySevere:
		return "severe"
	case SeverityError:
		return "error"
	case SeverityMinor:
		return "minor"
	case SeverityStyle:
		return "style"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// StrictnessLevel defines preset strictness configurations.
type StrictnessLevel int

const (
	StrictnessStrict     StrictnessLevel = 0 // Reject anything irregular, no fallbacks
	StrictnessNormal     StrictnessLevel = 3 // Default, warn and fall back
	StrictnessPermissive StrictnessLevel = 5 // Accept sloppy hierarchies
	StrictnessSilent     StrictnessLevel = 6 // Accept everything, minimal output
)

func (l StrictnessLevel) String() string {
	switch l {
	case StrictnessStrict:
		return "strict"
	case StrictnessNormal:
		return "normal"
	case StrictnessPermissive:
		return "permissive"
	case StrictnessSilent:
		return "silent"
	default:
		return fmt.Sprintf("StrictnessLevel(%d)", int(l))
	}
}

// Diagnostic represents an issue found while loading or resolving a
// hierarchy.
type Diagnostic struct {
	Severity Severity
	Code     string // e.g. "base-unresolved", "duplicate-type"
	Message  string
	Module   string // module name, "" if not applicable
	File     string // source file path, "" if not applicable
	Line     int    // 1-based line number, 0 if not applicable
	Column   int    // 1-based column, 0 if not applicable
}

// String returns "[severity] location: message" with location parts
// omitted when unknown. The file path wins over the module name.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(d.Severity.String())
	b.WriteString("] ")
	loc := d.File
	if loc == "" {
		loc = d.Module
	}
	if loc != "" {
		b.WriteString(loc)
		if d.Line > 0 {
			fmt.Fprintf(&b, ":%d", d.Line)
			if d.Column > 0 {
				fmt.Fprintf(&b, ":%d", d.Column)
			}
		}
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}

// DiagnosticConfig controls strictness and diagnostic filtering.
type DiagnosticConfig struct {
	// Level sets the base strictness level.
	// Diagnostics with severity > Level are suppressed.
	Level StrictnessLevel

	// FailAt sets the severity threshold for failure.
	// If any diagnostic has severity <= FailAt, loading fails.
	// Default (0) means fail on Fatal only.
	FailAt Severity

	// Overrides change severity for specific diagnostic codes.
	// Use to upgrade/downgrade specific checks.
	Overrides map[string]Severity

	// Ignore lists diagnostic codes to suppress entirely.
	// Supports glob patterns (e.g. "exempt-*").
	Ignore []string
}

// DefaultConfig returns the default diagnostic configuration (Normal
// strictness, fail on Severe or worse).
func DefaultConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessNormal,
		FailAt: SeveritySevere,
	}
}

// StrictConfig rejects every irregularity: no base fallbacks, failure at
// Severe or worse.
func StrictConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessStrict,
		FailAt: SeveritySevere,
	}
}

// PermissiveConfig accepts sloppy hierarchies: only Fatal findings fail
// the load, and the usual noise of loose exemption lists is suppressed.
func PermissiveConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessPermissive,
		FailAt: SeverityFatal,
		Ignore: []string{
			DiagExemptUnresolved,
			DiagMemberKindUnknown,
		},
	}
}

// ShouldReport returns true if a diagnostic with the given code and
// severity should be reported under this configuration.
//
// The Level controls the reporting threshold:
//   - Level 0 (Strict): report everything (Info and above)
//   - Level 3 (Normal): report Minor and above
//   - Level 5 (Permissive): report Warning and above
//   - Level 6 (Silent): report nothing
//
// Lower severity numbers are more severe (Fatal=0, Info=6).
func (c DiagnosticConfig) ShouldReport(code string, sev Severity) bool {
	if slices.ContainsFunc(c.Ignore, func(pattern string) bool {
		return MatchGlob(pattern, code)
	}) {
		return false
	}

	if override, ok := c.Overrides[code]; ok {
		sev = override
	}

	if c.Level >= StrictnessSilent {
		return false
	}
	if c.Level == StrictnessStrict {
		return true
	}
	return int(sev) <= int(c.Level)
}

// ShouldFail returns true if a diagnostic with the given severity should
// cause loading to fail.
func (c DiagnosticConfig) ShouldFail(sev Severity) bool {
	return sev <= c.FailAt
}

// IsStrict returns true when no fallback resolution strategies should be
// used. In strict mode an unresolved or cyclic base drops the type
// instead of falling back to the origin.
func (c DiagnosticConfig) IsStrict() bool {
	return c.Level < StrictnessNormal
}

// MatchGlob performs simple glob matching with a leading or trailing *
// wildcard.
func MatchGlob(pattern, s string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(s, prefix)
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
		return strings.HasSuffix(s, suffix)
	}
	return pattern == s
}
