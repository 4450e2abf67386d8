package casts

import (
	"github.com/funvibe/castcheck/internal/typesystem"
	"go.uber.org/zap"
)

// IsCastErased reports whether checking that a value of static type
// supertype is an instance of subtype needs generic arguments the runtime
// cannot observe. Nullability never matters.
func (e *Engine) IsCastErased(supertype, subtype typesystem.Type) bool {
	erased, reason := e.castErased(supertype, subtype)
	e.logger.Debug("cast erasure",
		zap.Stringer("from", supertype), zap.Stringer("to", subtype),
		zap.Bool("erased", erased), zap.String("reason", reason))
	return erased
}

func (e *Engine) castErased(supertype, subtype typesystem.Type) (bool, string) {
	if supertype.IsZero() || subtype.IsZero() {
		return true, "unknown type"
	}
	if supertype.Nullable || subtype.Nullable {
		return e.castErased(supertype.MakeNotNullable(), subtype.MakeNotNullable())
	}

	if e.oracle.IsSubtypeOf(supertype, subtype) {
		return false, "upcast"
	}
	if subtype.IsTypeParameter() {
		if subtype.Constructor.Param != nil && subtype.Constructor.Param.Reified {
			return false, "reified parameter"
		}
		return true, "type parameter"
	}
	if allReified(subtype.Constructor) {
		return false, "reified arguments"
	}

	res := e.FindStaticallyKnownSubtype(supertype, subtype.Constructor)
	if res.Type.IsZero() {
		return true, "reconstruction failed"
	}
	if !e.oracle.IsSubtypeOf(res.Type, subtype) {
		return true, "arguments not implied by " + res.Type.String()
	}
	return false, "arguments implied by " + res.Type.String()
}

// allReified holds vacuously for classifiers without parameters.
func allReified(c *typesystem.Classifier) bool {
	for _, p := range c.Params {
		if !p.Reified {
			return false
		}
	}
	return true
}
