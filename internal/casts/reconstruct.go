package casts

import (
	"github.com/funvibe/castcheck/internal/typesystem"
	"go.uber.org/zap"
)

// ReconstructionResult is the statically known instantiation of a classifier.
type ReconstructionResult struct {
	// Type is the zero Type when the bindings describe an impossible type.
	Type typesystem.Type

	// Complete is false when at least one argument is an unknown star.
	Complete bool
}

// OK reports whether a type was produced.
func (r ReconstructionResult) OK() bool { return !r.Type.IsZero() }

// FindStaticallyKnownSubtype computes the most specific instantiation of c
// consistent with a value of static type supertype. Arguments that the
// supertype does not determine become stars.
//
// It panics with *ContractViolation if supertype is nullable or c is nil.
func (e *Engine) FindStaticallyKnownSubtype(supertype typesystem.Type, c *typesystem.Classifier) ReconstructionResult {
	if c == nil {
		panic(&ContractViolation{Op: "FindStaticallyKnownSubtype", Msg: "nil classifier"})
	}
	if supertype.IsZero() {
		panic(&ContractViolation{Op: "FindStaticallyKnownSubtype", Msg: "empty supertype"})
	}
	if supertype.Nullable {
		panic(&ContractViolation{Op: "FindStaticallyKnownSubtype", Msg: "nullable supertype " + supertype.String()})
	}

	schematic, fresh := typesystem.ApplyFresh(c)
	free := make(map[string]bool, len(fresh))
	for _, v := range fresh {
		free[v.Symbol().ID] = true
	}

	bindings := make(typesystem.Subst)
	if withVars, ok := e.oracle.FindCorrespondingSupertype(schematic, supertype); ok {
		u := typesystem.Unifier{
			IsFree:   func(k *typesystem.Classifier) bool { return free[k.ID] },
			MaxDepth: e.maxUnifyDepth,
		}
		sol := u.Unify(typesystem.InvariantProjection(supertype), typesystem.InvariantProjection(withVars))
		for _, conflict := range sol.Conflicts {
			e.logger.Debug("conflicting binding", zap.Stringer("supertype", supertype),
				zap.Stringer("classifier", c), zap.String("conflict", conflict))
		}
		if sol.Failed {
			e.logger.Debug("partial unification", zap.Stringer("supertype", supertype),
				zap.Stringer("schematic", withVars))
		}
		bindings = sol.Subst
	}

	complete := true
	s := make(typesystem.Subst, len(fresh))
	for _, v := range fresh {
		p, ok := bindings.Lookup(v.Symbol())
		if !ok {
			p = typesystem.StarProjection()
			complete = false
		}
		s[v.Symbol().ID] = p
	}

	t, err := typesystem.Substitute(schematic, s)
	if err != nil {
		e.logger.Debug("impossible reconstruction", zap.Stringer("supertype", supertype),
			zap.Stringer("classifier", c), zap.Error(err))
		return ReconstructionResult{}
	}
	return ReconstructionResult{Type: t, Complete: complete}
}
