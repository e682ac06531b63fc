package typesys

import (
	"errors"
	"fmt"
)

// ErrNoSuchMember matches any NoSuchMemberError via errors.Is.
var ErrNoSuchMember = errors.New("no such member")

// ErrNotCallable is reported when Call is used on a member whose value is
// not a Func.
var ErrNotCallable = errors.New("member is not callable")

// NoSuchMemberError is returned when member retrieval fails, either
// because the name does not resolve anywhere in the type's linearization
// or because it resolves to the hidden-member marker.
type NoSuchMemberError struct {
	Type   string // qualified type name
	Member string // requested member name
}

func (e *NoSuchMemberError) Error() string {
	return fmt.Sprintf("type %s has no member %q", e.Type, e.Member)
}

func (e *NoSuchMemberError) Is(target error) bool {
	return target == ErrNoSuchMember
}

// ConfigError aborts a hiding transformation: the target is missing, its
// resolution chain has no ancestors, or some chain node has no derivable
// disambiguation key. Keys are derived before anything is mutated, so a
// failed transformation leaves the target untouched.
type ConfigError struct {
	Type string // target type, qualified
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuring hide for %s: %v", e.Type, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
