package typesys

// Diagnostic codes emitted by the schema and resolver phases.
// Centralizing these prevents silent breakage from typos in string
// literals.

// Schema diagnostic codes.
const (
	DiagDocumentInvalid   = "document-invalid"
	DiagBadTypeName       = "bad-type-name"
	DiagMemberKindUnknown = "member-kind-unknown"
)

// Resolver diagnostic codes.
const (
	DiagDuplicateModule       = "duplicate-module"
	DiagDuplicateType         = "duplicate-type"
	DiagModuleNotFound        = "module-not-found"
	DiagBaseUnresolved        = "base-unresolved"
	DiagBaseCycle             = "base-cycle"
	DiagHierarchyInconsistent = "hierarchy-inconsistent"
	DiagExemptUnresolved      = "exempt-unresolved"
	DiagDisinheritFailed      = "disinherit-failed"
)

// DiagCodeInfo describes a known diagnostic code.
type DiagCodeInfo struct {
	Code  string
	Phase string
}

// AllDiagnosticCodes returns all known diagnostic codes grouped by phase.
func AllDiagnosticCodes() []DiagCodeInfo {
	return []DiagCodeInfo{
		// Schema
		{Code: DiagDocumentInvalid, Phase: "schema"},
		{Code: DiagBadTypeName, Phase: "schema"},
		{Code: DiagMemberKindUnknown, Phase: "schema"},
		// Resolver
		{Code: DiagDuplicateModule, Phase: "resolver"},
		{Code: DiagDuplicateType, Phase: "resolver"},
		{Code: DiagModuleNotFound, Phase: "resolver"},
		{Code: DiagBaseUnresolved, Phase: "resolver"},
		{Code: DiagBaseCycle, Phase: "resolver"},
		{Code: DiagHierarchyInconsistent, Phase: "resolver"},
		{Code: DiagExemptUnresolved, Phase: "resolver"},
		{Code: DiagDisinheritFailed, Phase: "resolver"},
	}
}
