package casts

import "fmt"

// ContractViolation is the panic value for calls that break a precondition.
// It marks a bug in the caller, never a property of the program under check.
type ContractViolation struct {
	Op  string
	Msg string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("%s: contract violation: %s", e.Op, e.Msg)
}
