package typesystem

import (
	"fmt"

	"github.com/funvibe/castcheck/internal/config"
)

// Solution is the outcome of unifying a ground projection against a schematic one.
// Failed sub-terms contribute no bindings but do not discard bindings found
// elsewhere; callers treat unbound variables as undetermined.
type Solution struct {
	Subst Subst

	// Failed is set when at least one sub-term did not match.
	Failed bool

	// Conflicts describes variables that were bound twice to different
	// projections. The first binding is kept.
	Conflicts []string
}

// Unifier matches ground projections against schematic ones.
// Only classifiers accepted by IsFree can be bound; every other
// constructor is rigid.
type Unifier struct {
	IsFree   func(*Classifier) bool
	MaxDepth int
}

// Unify matches concrete (fully ground) against schematic and returns the
// bindings of the free variables of schematic.
func Unify(concrete, schematic Projection, isFree func(*Classifier) bool) Subst {
	return Unifier{IsFree: isFree}.Unify(concrete, schematic).Subst
}

// Unify runs the unification and reports the full solution.
func (u Unifier) Unify(concrete, schematic Projection) *Solution {
	if u.MaxDepth <= 0 {
		u.MaxDepth = config.DefaultMaxUnifyDepth
	}
	sol := &Solution{Subst: make(Subst)}
	u.unify(concrete, schematic, 0, sol)
	return sol
}

func (u Unifier) isFree(c *Classifier) bool {
	return c != nil && u.IsFree != nil && u.IsFree(c)
}

func (u Unifier) unify(known, withVars Projection, depth int, sol *Solution) {
	if depth > u.MaxDepth {
		sol.Failed = true
		return
	}

	// * ~ X  =>  X |-> *
	if known.Star {
		switch {
		case withVars.Star:
		case !withVars.Type.Nullable && u.isFree(withVars.Type.Constructor):
			u.bind(withVars.Type.Constructor, known, sol)
		default:
			sol.Failed = true
		}
		return
	}
	if withVars.Star {
		sol.Failed = true
		return
	}

	kt, wt := known.Type, withVars.Type
	kv, wv := known.Variance, withVars.Variance

	// in Foo ~ in X  =>  Foo ~ X
	if kv == wv && kv != Invariant {
		u.unify(InvariantProjection(kt), InvariantProjection(wt), depth+1, sol)
		return
	}

	// Foo? ~ X?  =>  Foo ~ X
	if kt.Nullable && wt.Nullable {
		u.unify(NewProjection(kv, kt.MakeNotNullable()), NewProjection(wv, wt.MakeNotNullable()), depth+1, sol)
		return
	}

	// in Foo ~ out X  =>  fail
	// in Foo ~ X  =>  may be OK
	if kv != wv && wv != Invariant {
		sol.Failed = true
		return
	}

	// Foo ~ X?  =>  fail
	if !kt.Nullable && wt.Nullable {
		sol.Failed = true
		return
	}

	// Foo ~ X  =>  X |-> Foo
	if u.isFree(wt.Constructor) {
		u.bind(wt.Constructor, NewProjection(kv, kt), sol)
		return
	}

	// Foo? ~ Foo || in Foo ~ Foo || Foo ~ Bar
	if kt.Nullable != wt.Nullable || kv != wv || !SameClassifier(kt.Constructor, wt.Constructor) {
		sol.Failed = true
		return
	}

	// Foo<A> ~ Foo<B, C>
	if len(kt.Args) != len(wt.Args) {
		sol.Failed = true
		return
	}

	for i := range kt.Args {
		declared := kt.DeclaredVariance(i)
		ka, wa := kt.Args[i], wt.Args[i]
		ka.Variance = normalizeUseSite(declared, ka.Variance)
		wa.Variance = normalizeUseSite(declared, wa.Variance)
		u.unify(ka, wa, depth+1, sol)
	}
}

func (u Unifier) bind(v *Classifier, p Projection, sol *Solution) {
	if !sol.Subst.Bind(v, p) {
		old, _ := sol.Subst.Lookup(v)
		sol.Conflicts = append(sol.Conflicts, fmt.Sprintf("%s: kept %s, dropped %s", v, old, p))
	}
}
