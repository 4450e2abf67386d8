package casts

import (
	"github.com/funvibe/castcheck/internal/config"
	"github.com/funvibe/castcheck/internal/typesystem"
	"go.uber.org/zap"
)

// IsCastPossible reports whether a value of static type lhs could ever be an
// instance of rhs. A false answer means the cast always fails; a true answer
// guarantees nothing.
func (e *Engine) IsCastPossible(lhs, rhs typesystem.Type) bool {
	possible, rule := e.castPossible(lhs, rhs)
	e.logger.Debug("cast feasibility",
		zap.Stringer("lhs", lhs), zap.Stringer("rhs", rhs),
		zap.Bool("possible", possible), zap.String("rule", rule))
	return possible
}

func (e *Engine) castPossible(lhs, rhs typesystem.Type) (bool, string) {
	if lhs.IsZero() || rhs.IsZero() {
		return true, "unknown type"
	}

	// Only null inhabits Nothing?
	if lhs.IsBuiltin(config.NothingTypeName) && lhs.Nullable && !e.oracle.MayBeNull(rhs) {
		return false, "null into non-null"
	}
	if e.isRelated(lhs, rhs) {
		return true, "related"
	}
	// Bounds are ignored here.
	if lhs.IsTypeParameter() || rhs.IsTypeParameter() {
		return true, "type parameter"
	}
	if !e.oracle.CanHaveSubtypes(lhs) || !e.oracle.CanHaveSubtypes(rhs) {
		return false, "final"
	}
	if lhs.Constructor.IsInterface() || rhs.Constructor.IsInterface() {
		return true, "interface"
	}
	return false, "unrelated classes"
}
