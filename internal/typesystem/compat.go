package typesystem

// CompatibleBase reports whether two base types are structurally
// compatible, ignoring tags. This is the stand-in for the host type
// system's ordinary compatibility check; tag checking is layered on top
// of it and never replaces it.
func CompatibleBase(a, b Type) bool {
	switch at := a.(type) {
	case TCon:
		bt, ok := b.(TCon)
		return ok && at.Name == bt.Name
	case TList:
		bt, ok := b.(TList)
		return ok && CompatibleBase(at.Elem.Base, bt.Elem.Base)
	case TMap:
		bt, ok := b.(TMap)
		return ok && CompatibleBase(at.Key.Base, bt.Key.Base) && CompatibleBase(at.Value.Base, bt.Value.Base)
	case TRecord:
		bt, ok := b.(TRecord)
		if !ok {
			return false
		}
		if at.Name != "" || bt.Name != "" {
			return at.Name == bt.Name
		}
		if len(at.Fields) != len(bt.Fields) {
			return false
		}
		for k, v := range at.Fields {
			bv, ok := bt.Fields[k]
			if !ok || !CompatibleBase(v.Base, bv.Base) {
				return false
			}
		}
		return true
	case TFunc:
		bt, ok := b.(TFunc)
		if !ok || len(at.Params) != len(bt.Params) {
			return false
		}
		for i, p := range at.Params {
			if !CompatibleBase(p.Base, bt.Params[i].Base) {
				return false
			}
		}
		return CompatibleBase(at.ReturnType.Base, bt.ReturnType.Base)
	}
	return false
}

// TagsAssignable reports whether the tags of src permit it to flow into
// a slot of type target. Bases are assumed CompatibleBase already.
//
// Scalars follow the lattice rule directly. Record fields are checked
// per field in the same direction (records are values here). Collection
// element tags must match exactly: a List<xproc String> aliased as
// List<inproc String> would let later inproc writes leak through the
// xproc view, so elements are invariant.
func TagsAssignable(src, target Tagged) bool {
	if !AssignableTag(src.Tag, target.Tag) {
		return false
	}
	switch st := src.Base.(type) {
	case TList:
		tt := target.Base.(TList)
		return elemTagsEqual(st.Elem, tt.Elem)
	case TMap:
		tt := target.Base.(TMap)
		return elemTagsEqual(st.Key, tt.Key) && elemTagsEqual(st.Value, tt.Value)
	case TRecord:
		tt := target.Base.(TRecord)
		for k, sv := range st.Fields {
			tv, ok := tt.Fields[k]
			if !ok {
				continue // nominal match already established
			}
			if !TagsAssignable(sv, tv) {
				return false
			}
		}
		return true
	case TFunc:
		tt := target.Base.(TFunc)
		// Parameters are contravariant: the target may not promise to
		// accept an inproc argument the source would leak.
		for i, sp := range st.Params {
			if !AssignableTag(tt.Params[i].Tag, sp.Tag) {
				return false
			}
		}
		return AssignableTag(st.ReturnType.Tag, tt.ReturnType.Tag)
	}
	return true
}

func elemTagsEqual(a, b Tagged) bool {
	if a.Tag.Normalize() != b.Tag.Normalize() {
		return false
	}
	// Nested collections carry tags deeper down.
	switch a.Base.(type) {
	case TList, TMap, TRecord, TFunc:
		return TagsAssignable(a, b) && TagsAssignable(b, a)
	}
	return true
}
