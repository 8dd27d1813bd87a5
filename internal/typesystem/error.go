package typesystem

import "fmt"

// InvalidTagTargetError indicates an attempt to tag a type that may not
// carry a tag directly (a collection or a whole record).
type InvalidTagTargetError struct {
	Target Type
}

func (e *InvalidTagTargetError) Error() string {
	return fmt.Sprintf("type %s cannot carry a process-boundary tag; tag the element type instead", e.Target.String())
}

func NewInvalidTagTargetError(target Type) *InvalidTagTargetError {
	return &InvalidTagTargetError{Target: target}
}
