package typesys

// Member is a resolved member together with the type that defines it.
// The owner association is what lets a member act as an exemption
// specifier; a zero Member has no owner and is not a usable specifier.
type Member struct {
	owner *Type
	name  string
	value Value
}

// Owner returns the type whose own table defines the member.
func (m Member) Owner() *Type { return m.owner }

// Name returns the member name.
func (m Member) Name() string { return m.name }

// Value returns the member implementation.
func (m Member) Value() Value { return m.value }

func (m Member) String() string {
	if m.owner == nil {
		return m.name
	}
	return m.owner.QualifiedName() + "." + m.name
}
