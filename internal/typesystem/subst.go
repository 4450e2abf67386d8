package typesystem

import (
	"github.com/funvibe/castcheck/internal/config"
	"github.com/google/uuid"
)

// Subst is a mapping from type variable classifier IDs to projections.
type Subst map[string]Projection

// Lookup returns the projection bound to the variable c.
func (s Subst) Lookup(c *Classifier) (Projection, bool) {
	if c == nil {
		return Projection{}, false
	}
	p, ok := s[c.ID]
	return p, ok
}

// Bind adds v ↦ p unless v is already bound.
// Returns false when an existing binding differs from p.
func (s Subst) Bind(v *Classifier, p Projection) bool {
	if old, ok := s[v.ID]; ok {
		return old.Equal(p)
	}
	s[v.ID] = p
	return true
}

// Clone returns a shallow copy; projections are immutable values.
func (s Subst) Clone() Subst {
	out := make(Subst, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Substitute replaces every variable of s occurring in t.
// Replacements are not substituted again, so the walk is bounded by the nesting of t.
// An in-projection reaching an out-position becomes a star. Returns a
// *ConflictError when the result would be an impossible type, e.g. In<out Foo>
// for a contravariant In.
func Substitute(t Type, s Subst) (Type, error) {
	if t.Constructor == nil || len(s) == 0 {
		return t, nil
	}

	if t.Constructor.IsTypeParameter() {
		r, ok := s.Lookup(t.Constructor)
		if !ok {
			return t, nil
		}
		if r.Star || r.Variance != Invariant {
			return Type{}, &ConflictError{Type: t, Replacement: r, Reason: "projection used in type position"}
		}
		if t.Nullable {
			return r.Type.MakeNullable(), nil
		}
		return r.Type, nil
	}

	if len(t.Args) == 0 {
		return t, nil
	}

	newArgs := make([]Projection, len(t.Args))
	for i, arg := range t.Args {
		p, err := substituteArgument(t, i, arg, s)
		if err != nil {
			return Type{}, err
		}
		newArgs[i] = p
	}
	return Type{Constructor: t.Constructor, Args: newArgs, Nullable: t.Nullable}, nil
}

func substituteArgument(owner Type, i int, arg Projection, s Subst) (Projection, error) {
	if arg.Star {
		return arg, nil
	}

	var result Projection
	if r, ok := s.Lookup(arg.Type.Constructor); ok && arg.Type.IsTypeParameter() {
		if r.Star {
			return r, nil
		}
		// Conflicts are judged against the declared variance too, so Out<in Foo>
		// for a covariant Out is a star even without a use-site annotation.
		pos := arg.Variance
		if eff, ok := EffectiveVariance(owner.DeclaredVariance(i), arg.Variance); ok {
			pos = eff
		}
		if _, star, err := combineUseSite(pos, r.Variance); err != nil {
			return Projection{}, &ConflictError{Type: owner, Replacement: r, Reason: err.Error()}
		} else if star {
			return StarProjection(), nil
		}
		v, _, _ := combineUseSite(arg.Variance, r.Variance)
		typ := r.Type
		if arg.Type.Nullable {
			typ = typ.MakeNullable()
		}
		result = Projection{Variance: v, Type: typ}
	} else {
		typ, err := Substitute(arg.Type, s)
		if err != nil {
			return Projection{}, err
		}
		result = Projection{Variance: arg.Variance, Type: typ}
	}

	if _, ok := EffectiveVariance(owner.DeclaredVariance(i), result.Variance); !ok {
		return Projection{}, &ConflictError{Type: owner, Replacement: result, Reason: "use-site variance contradicts declared variance"}
	}
	return result, nil
}

type varianceConflict string

func (e varianceConflict) Error() string { return string(e) }

// combineUseSite merges the annotation at a variable's position with the
// annotation of its replacement. An in-projection in out-position degrades
// to a star; an out-projection in in-position is impossible.
func combineUseSite(position, replacement Variance) (v Variance, star bool, err error) {
	switch {
	case position == Invariant:
		return replacement, false, nil
	case replacement == Invariant, replacement == position:
		return position, false, nil
	case position == Out && replacement == In:
		return Invariant, true, nil
	default:
		return Invariant, false, varianceConflict("out-projection in in-position")
	}
}

// SubstituteArguments applies c to args positionally, as if args had been
// written for c's own parameters. Missing positions become stars, extra
// arguments are dropped.
func SubstituteArguments(c *Classifier, args []Projection) Type {
	out := make([]Projection, len(c.Params))
	for i := range c.Params {
		if i < len(args) {
			out[i] = args[i]
		} else {
			out[i] = StarProjection()
		}
	}
	return Type{Constructor: c, Args: out}
}

// FreshVariables creates one fresh type variable per declared parameter of c,
// in declaration order, and the substitution renaming c's parameters to them.
func FreshVariables(c *Classifier) ([]*TypeParameter, Subst) {
	fresh := make([]*TypeParameter, len(c.Params))
	renaming := make(Subst, len(c.Params))
	for i, p := range c.Params {
		id := p.Symbol().ID + config.FreshVariableSeparator + uuid.NewString()
		v := NewTypeParameter(id, p.Name, i, p.Variance, p.Reified)
		v.Bounds = p.Bounds
		fresh[i] = v
		renaming[p.Symbol().ID] = InvariantProjection(v.Type())
	}
	return fresh, renaming
}

// ApplyFresh returns c applied to fresh variables, plus the variables.
func ApplyFresh(c *Classifier) (Type, []*TypeParameter) {
	fresh, _ := FreshVariables(c)
	args := make([]Projection, len(fresh))
	for i, v := range fresh {
		args[i] = InvariantProjection(v.Type())
	}
	return Type{Constructor: c, Args: args}, fresh
}
