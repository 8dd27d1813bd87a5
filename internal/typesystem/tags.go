package typesystem

// Tag is the process-boundary sensitivity of a value.
//
// InProc values must not cross a process boundary (file descriptors,
// sockets, shared memory) without an explicit reveal. XProc values may.
// TagNone marks types written without an annotation; for checking
// purposes an untagged type behaves exactly like XProc, which keeps
// existing untagged code passing unchanged.
type Tag int

const (
	TagNone Tag = iota
	TagXProc
	TagInProc
)

func (t Tag) String() string {
	switch t {
	case TagInProc:
		return "inproc"
	case TagXProc:
		return "xproc"
	default:
		return ""
	}
}

// Normalize maps TagNone to TagXProc. Every lattice operation works on
// normalized tags; TagNone exists only so that printed types can
// distinguish "never annotated" from an explicit xproc.
func (t Tag) Normalize() Tag {
	if t == TagNone {
		return TagXProc
	}
	return t
}

// Combine is the poisoning rule: the result of combining two tagged
// operands is inproc if either operand is inproc. Used everywhere two
// tagged values meet (infix operators, template holes, field merges).
func Combine(a, b Tag) Tag {
	if a.Normalize() == TagInProc || b.Normalize() == TagInProc {
		return TagInProc
	}
	return TagXProc
}

// AssignableTag reports whether a value tagged src may flow into a slot
// tagged target. The only forbidden direction is inproc -> xproc: an
// xproc value can always be widened into an inproc slot, while the
// reverse requires an explicit reveal.
func AssignableTag(src, target Tag) bool {
	return !(src.Normalize() == TagInProc && target.Normalize() == TagXProc)
}
