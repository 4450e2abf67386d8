package casts

import (
	"github.com/funvibe/castcheck/internal/typesystem"
)

// isRelated reports whether a and b, ignoring nullability, could stand in a
// subtype relation in either direction once platform types are replaced by
// their native equivalents.
func (e *Engine) isRelated(a, b typesystem.Type) bool {
	as := e.platformCandidates(a)
	bs := e.platformCandidates(b)

	for _, x := range as {
		for _, y := range bs {
			if e.oracle.IsSubtypeOf(x, y) || e.oracle.IsSubtypeOf(y, x) {
				return true
			}
		}
	}
	return false
}

// platformCandidates returns the non-null form of t followed by each native
// equivalent of its classifier applied to t's own arguments.
// Only the foreign→native direction is consulted.
func (e *Engine) platformCandidates(t typesystem.Type) []typesystem.Type {
	t = t.MakeNotNullable()
	out := []typesystem.Type{t}
	if e.platform == nil {
		return out
	}
	for _, native := range e.platform.MapEquivalents(t.Constructor) {
		out = append(out, typesystem.SubstituteArguments(native, t.Args))
	}
	return out
}
