package disinherit

import "github.com/dynatype/disinherit/typesys"

// Type aliases for public API - all types come from the typesys subpackage.

// Registry is the top-level container for loaded modules and types.
type Registry = typesys.Registry

// Module is a named group of type declarations from one document.
type Module = typesys.Module

// Type is a declared type with its resolution chain and member table.
type Type = typesys.Type

// Member is a named member value together with the type that defines it.
type Member = typesys.Member

// Instance is a value minted from a Type.
type Instance = typesys.Instance

// Value is a member implementation.
type Value = typesys.Value

// Func is the implementation of a callable member.
type Func = typesys.Func

// Key identifies a type by declaration site and name.
type Key = typesys.Key

// DirHook produces the member enumeration for an instance.
type DirHook = typesys.DirHook

// AttrHook retrieves a named member of an instance.
type AttrHook = typesys.AttrHook

// Diagnostic represents a loading or resolution issue.
type Diagnostic = typesys.Diagnostic

// Severity for diagnostics.
type Severity = typesys.Severity

// NoSuchMemberError reports retrieval of a missing or hidden member.
type NoSuchMemberError = typesys.NoSuchMemberError

// ConfigError reports a hiding transformation that could not be applied.
type ConfigError = typesys.ConfigError

// Severity constants (lower = more severe).
const (
	SeverityFatal   = typesys.SeverityFatal   // 0: Cannot continue loading
	SeveritySevere  = typesys.SeveritySevere  // 1: Semantics changed to continue
	SeverityError   = typesys.SeverityError   // 2: Should correct
	SeverityMinor   = typesys.SeverityMinor   // 3: Minor issue
	SeverityStyle   = typesys.SeverityStyle   // 4: Style recommendation
	SeverityWarning = typesys.SeverityWarning // 5: Might be correct
	SeverityInfo    = typesys.SeverityInfo    // 6: Informational
)

// StrictnessLevel defines preset strictness configurations.
type StrictnessLevel = typesys.StrictnessLevel

// StrictnessLevel constants.
const (
	StrictnessStrict     = typesys.StrictnessStrict
	StrictnessNormal     = typesys.StrictnessNormal
	StrictnessPermissive = typesys.StrictnessPermissive
	StrictnessSilent     = typesys.StrictnessSilent
)

// DiagnosticConfig controls strictness and diagnostic filtering.
type DiagnosticConfig = typesys.DiagnosticConfig

// Config constructors.
var (
	DefaultConfig    = typesys.DefaultConfig
	StrictConfig     = typesys.StrictConfig
	PermissiveConfig = typesys.PermissiveConfig
)

// Diagnostic codes, usable in DiagnosticConfig overrides and ignore
// lists.
const (
	DiagDocumentInvalid       = typesys.DiagDocumentInvalid
	DiagBadTypeName           = typesys.DiagBadTypeName
	DiagMemberKindUnknown     = typesys.DiagMemberKindUnknown
	DiagDuplicateModule       = typesys.DiagDuplicateModule
	DiagDuplicateType         = typesys.DiagDuplicateType
	DiagModuleNotFound        = typesys.DiagModuleNotFound
	DiagBaseUnresolved        = typesys.DiagBaseUnresolved
	DiagBaseCycle             = typesys.DiagBaseCycle
	DiagHierarchyInconsistent = typesys.DiagHierarchyInconsistent
	DiagExemptUnresolved      = typesys.DiagExemptUnresolved
	DiagDisinheritFailed      = typesys.DiagDisinheritFailed
)

// DiagCodeInfo describes a known diagnostic code.
type DiagCodeInfo = typesys.DiagCodeInfo

// AllDiagnosticCodes returns all known diagnostic codes grouped by
// phase.
var AllDiagnosticCodes = typesys.AllDiagnosticCodes

// NewRegistry creates an empty registry seeded with the builtin origin
// type.
var NewRegistry = typesys.NewRegistry

// Unimplemented marks a member name as deliberately hidden on a type.
var Unimplemented = typesys.Unimplemented

// Member value helpers.
var (
	IsHidden      = typesys.IsHidden
	DescribeValue = typesys.DescribeValue
)

// Error sentinels.
var (
	ErrNoSuchMember   = typesys.ErrNoSuchMember
	ErrNotCallable    = typesys.ErrNotCallable
	ErrKeyUnderivable = typesys.ErrKeyUnderivable
)

// SplitQualified splits a "module::Name" reference into its parts.
var SplitQualified = typesys.SplitQualified

// Well-known names: the seeded builtin module and the origin type it
// declares.
const (
	BuiltinModule = typesys.BuiltinModule
	OriginName    = typesys.OriginName
)
