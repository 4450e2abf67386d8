package universe

import "fmt"

// UnknownClassifierError indicates a classifier name that is not defined.
type UnknownClassifierError struct {
	Name string
}

func (e *UnknownClassifierError) Error() string {
	return fmt.Sprintf("classifier not found: %s", e.Name)
}

func NewUnknownClassifierError(name string) *UnknownClassifierError {
	return &UnknownClassifierError{Name: name}
}

// ParseError indicates a malformed type expression.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("type expression %q at %d: %s", e.Input, e.Pos, e.Msg)
}
