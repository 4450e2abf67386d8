package typesystem

import "fmt"

// ConflictError indicates a substitution that would produce an impossible type.
type ConflictError struct {
	Type        Type
	Replacement Projection
	Reason      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot substitute %s into %s: %s", e.Replacement, e.Type, e.Reason)
}

// ArityError indicates a type whose argument count differs from its
// constructor's parameter count.
type ArityError struct {
	Type Type
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: expected %d type arguments, got %d", e.Type, e.Want, e.Got)
}
