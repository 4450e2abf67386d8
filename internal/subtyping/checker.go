// Package subtyping is the reference subtype oracle over the nominal type model.
//
// It answers subtype queries with declaration-site and use-site variance,
// nullability and type parameter bounds, and searches the declared supertype
// graph for the instance of a given constructor.
package subtyping

import (
	"github.com/funvibe/castcheck/internal/config"
	"github.com/funvibe/castcheck/internal/typesystem"
	"go.uber.org/zap"
)

// Checker is immutable after construction and safe for concurrent use.
type Checker struct {
	logger            *zap.Logger
	maxSupertypeDepth int
	maxSubtypeDepth   int
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the logger used for depth-limit and substitution traces.
func WithLogger(l *zap.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSettings applies the recursion limits from settings.
func WithSettings(s *config.Settings) Option {
	return func(c *Checker) {
		if s == nil {
			return
		}
		if s.MaxSupertypeDepth > 0 {
			c.maxSupertypeDepth = s.MaxSupertypeDepth
		}
		if s.MaxSubtypeDepth > 0 {
			c.maxSubtypeDepth = s.MaxSubtypeDepth
		}
	}
}

// New creates a Checker.
func New(opts ...Option) *Checker {
	c := &Checker{
		logger:            zap.NewNop(),
		maxSupertypeDepth: config.DefaultMaxSupertypeDepth,
		maxSubtypeDepth:   config.DefaultMaxSubtypeDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsSubtypeOf reports whether sub <: super.
func (c *Checker) IsSubtypeOf(sub, super typesystem.Type) bool {
	return c.isSubtype(sub, super, 0)
}

func (c *Checker) isSubtype(sub, sup typesystem.Type, depth int) bool {
	if sub.IsZero() || sup.IsZero() {
		return false
	}
	if depth > c.maxSubtypeDepth {
		c.logger.Warn("subtype depth limit reached",
			zap.Stringer("sub", sub), zap.Stringer("super", sup), zap.Int("limit", c.maxSubtypeDepth))
		return false
	}

	// Nothing <: T for every T, Nothing? <: T? for every T
	if sub.IsBuiltin(config.NothingTypeName) {
		return !sub.Nullable || sup.Nullable
	}
	if sub.Nullable && !sup.Nullable {
		return false
	}
	if sup.IsBuiltin(config.AnyTypeName) {
		return sup.Nullable || !c.mayBeNull(sub, depth)
	}

	if sub.IsTypeParameter() {
		if typesystem.SameClassifier(sub.Constructor, sup.Constructor) {
			return true
		}
		for _, b := range boundsOf(sub.Constructor.Param) {
			if sub.Nullable {
				b = b.MakeNullable()
			}
			if c.isSubtype(b, sup, depth+1) {
				return true
			}
		}
		return false
	}
	if sup.IsTypeParameter() {
		return false
	}

	corresponding, ok := c.FindCorrespondingSupertype(sub.MakeNotNullable(), sup.MakeNotNullable())
	if !ok || len(corresponding.Args) != len(sup.Args) {
		return false
	}
	for i := range sup.Args {
		if !c.argumentContains(sup, i, corresponding.Args[i], depth) {
			return false
		}
	}
	return true
}

// argumentContains reports whether the super-side argument at position i
// contains the sub-side argument a.
func (c *Checker) argumentContains(sup typesystem.Type, i int, a typesystem.Projection, depth int) bool {
	q := sup.Args[i]
	if q.Star {
		return true
	}
	declared := sup.DeclaredVariance(i)
	qv, ok := typesystem.EffectiveVariance(declared, q.Variance)
	if !ok {
		// Impossible projection, behaves as a star
		return true
	}

	av := typesystem.Invariant
	if !a.Star {
		av, ok = typesystem.EffectiveVariance(declared, a.Variance)
		if !ok {
			a = typesystem.StarProjection()
		}
	}

	switch qv {
	case typesystem.Out:
		if a.Star || av == typesystem.In {
			return q.Type.IsBuiltin(config.AnyTypeName) && q.Type.Nullable
		}
		return c.isSubtype(a.Type, q.Type, depth+1)
	case typesystem.In:
		if a.Star || av == typesystem.Out {
			return q.Type.IsBuiltin(config.NothingTypeName)
		}
		return c.isSubtype(q.Type, a.Type, depth+1)
	default:
		if a.Star || av != typesystem.Invariant {
			return false
		}
		return c.isSubtype(a.Type, q.Type, depth+1) && c.isSubtype(q.Type, a.Type, depth+1)
	}
}

// MayBeNull reports whether null can inhabit t: t is marked nullable, or t
// is a type parameter all of whose bounds may be null. An unbounded
// parameter is bounded by Any? and so may be null.
func (c *Checker) MayBeNull(t typesystem.Type) bool {
	return c.mayBeNull(t, 0)
}

// Bound chains deeper than the limit are assumed nullable.
func (c *Checker) mayBeNull(t typesystem.Type, depth int) bool {
	if t.Nullable {
		return true
	}
	if !t.IsTypeParameter() {
		return false
	}
	if depth > c.maxSubtypeDepth {
		return true
	}
	bounds := t.Constructor.Param.Bounds
	if len(bounds) == 0 {
		return true
	}
	for _, b := range bounds {
		if !c.mayBeNull(b, depth+1) {
			return false
		}
	}
	return true
}

// CanHaveSubtypes reports whether a proper subtype of t could exist.
func (c *Checker) CanHaveSubtypes(t typesystem.Type) bool {
	if t.IsZero() {
		return false
	}
	if t.Nullable || !t.Constructor.IsFinal() {
		return true
	}
	for i, arg := range t.Args {
		p, ok := t.ParamAt(i)
		if !ok {
			continue
		}
		if arg.Star {
			return true
		}
		v, ok := typesystem.EffectiveVariance(p.Variance, arg.Variance)
		if !ok {
			return true
		}
		switch v {
		case typesystem.Invariant:
			if c.lowerThanBound(arg.Type, p) || c.CanHaveSubtypes(arg.Type) {
				return true
			}
		case typesystem.In:
			if c.lowerThanBound(arg.Type, p) {
				return true
			}
		case typesystem.Out:
			if c.CanHaveSubtypes(arg.Type) {
				return true
			}
		}
	}
	return false
}

// lowerThanBound reports whether arg is a subtype of one of p's bounds with
// a different constructor, i.e. something between arg and the bound exists.
func (c *Checker) lowerThanBound(arg typesystem.Type, p *typesystem.TypeParameter) bool {
	if len(p.Bounds) == 0 {
		// Implicit Any?
		return !arg.IsBuiltin(config.AnyTypeName)
	}
	for _, b := range p.Bounds {
		if c.IsSubtypeOf(arg, b) && !typesystem.SameClassifier(arg.Constructor, b.Constructor) {
			return true
		}
	}
	return false
}

func boundsOf(p *typesystem.TypeParameter) []typesystem.Type {
	if p == nil {
		return nil
	}
	return p.Bounds
}
