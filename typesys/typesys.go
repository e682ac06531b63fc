// Package typesys provides the declared-type object model that hiding
// transformations operate on.
//
// A Registry holds named modules; each module declares types with ordered
// base lists. Types resolve their inheritance with a C3 linearization,
// carry a member table of their own definitions, and mint instances whose
// member enumeration and retrieval route through replaceable hooks. The
// registry seeds a builtin origin type that every declared type ultimately
// descends from.
//
// Types are built single-threaded (declare members and install hooks
// before sharing); afterwards all reads, including concurrent instance
// access, are safe.
package typesys

import "fmt"

// Value is a member implementation: any Go value for plain attributes, or
// a Func for callable members.
type Value = any

// Func is the implementation of a callable member. The receiver instance
// is passed explicitly.
type Func func(self *Instance, args ...Value) (Value, error)

// unimplemented is the distinguished marker type for deliberately hidden
// members. Only the Unimplemented singleton exists.
type unimplemented struct{}

func (unimplemented) String() string { return "Unimplemented" }

// Unimplemented marks a member name as deliberately hidden on a type.
// A resolved value equal to Unimplemented is excluded from enumeration and
// fails retrieval with a no-such-member error. It is never a valid member
// implementation.
var Unimplemented Value = unimplemented{}

// IsHidden reports whether v is the hidden-member marker.
func IsHidden(v Value) bool {
	return v == Unimplemented
}

// DirHook produces the member enumeration for an instance.
type DirHook interface {
	Dir(in *Instance) []string
}

// DirFunc adapts a function to a DirHook.
type DirFunc func(in *Instance) []string

func (f DirFunc) Dir(in *Instance) []string { return f(in) }

// AttrHook retrieves a named member of an instance.
type AttrHook interface {
	Attr(in *Instance, name string) (Value, error)
}

// AttrFunc adapts a function to an AttrHook.
type AttrFunc func(in *Instance, name string) (Value, error)

func (f AttrFunc) Attr(in *Instance, name string) (Value, error) { return f(in, name) }

// DescribeValue renders a member value for dumps and listings.
func DescribeValue(v Value) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case unimplemented:
		return v.String()
	case Func:
		return "func"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
