package checker

import (
	"github.com/funvibe/procheck/internal/diagnostics"
	"github.com/funvibe/procheck/internal/token"
	"github.com/funvibe/procheck/internal/typesystem"
)

// checkAssignable verifies that src may flow into a slot of type
// target. The same rule covers simple assignment, argument binding,
// returns, and record field initialization; call sites differ only in
// which target binding they select.
//
// Base compatibility is checked first (the host type system's job,
// reproduced structurally here); the tag check is layered on top and
// never short-circuits it.
func (w *walker) checkAssignable(src, target typesystem.Tagged, tok token.Token, what string) bool {
	if !typesystem.CompatibleBase(src.Base, target.Base) {
		w.errorf(diagnostics.ErrT003, tok,
			"cannot use %s as %s in %s", src.String(), target.String(), what)
		return false
	}
	if !typesystem.TagsAssignable(src, target) {
		w.errorf(diagnostics.ErrT001, tok,
			"type %s is not assignable to type %s; use %s() to convert",
			src.String(), target.String(), revealName)
		return false
	}
	return true
}
