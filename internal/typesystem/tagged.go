package typesystem

// Tagged pairs a base type with a sensitivity tag. Tagged values are
// immutable: WithTag returns a copy. Tags exist only inside the checker;
// nothing about a tag survives into the host's lowering stage.
type Tagged struct {
	Base Type
	Tag  Tag
}

// NewTagged constructs a Tagged, rejecting bases that may not carry a
// tag directly. Collections carry tags only on their element types, and
// records only per field, so `inproc List<String>` and `inproc Creds`
// are both construction-time errors (they never reach the checker).
func NewTagged(base Type, tag Tag) (Tagged, error) {
	if tag != TagNone {
		if IsCollection(base) {
			return Tagged{}, NewInvalidTagTargetError(base)
		}
		if _, ok := base.(TRecord); ok {
			return Tagged{}, NewInvalidTagTargetError(base)
		}
	}
	return Tagged{Base: base, Tag: tag}, nil
}

// Untagged wraps a base type with no annotation (checks as xproc).
func Untagged(base Type) Tagged {
	return Tagged{Base: base, Tag: TagNone}
}

// WithTag returns a copy of t carrying newTag. The receiver is unchanged.
func (t Tagged) WithTag(newTag Tag) Tagged {
	return Tagged{Base: t.Base, Tag: newTag}
}

func (t Tagged) String() string {
	if t.Tag == TagNone {
		return t.Base.String()
	}
	return t.Tag.String() + " " + t.Base.String()
}

// Equal requires identical base types and identical normalized tags.
func (t Tagged) Equal(other Tagged) bool {
	return t.Base.Equal(other.Base) && t.Tag.Normalize() == other.Tag.Normalize()
}
