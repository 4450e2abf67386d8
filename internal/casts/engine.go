// Package casts decides whether a cast between two static types can ever
// succeed and whether checking it at runtime loses generic arguments.
//
// The engine is complete rather than sound for feasibility: it never rejects
// a cast that could succeed. For erasure it is conservative: when the
// statically known instantiation of the target cannot be proved, the cast is
// reported as erased.
package casts

import (
	"github.com/funvibe/castcheck/internal/config"
	"github.com/funvibe/castcheck/internal/typesystem"
	"go.uber.org/zap"
)

// Oracle answers subtype queries over the type model.
type Oracle interface {
	IsSubtypeOf(sub, super typesystem.Type) bool
	CanHaveSubtypes(t typesystem.Type) bool
	FindCorrespondingSupertype(schematic, target typesystem.Type) (typesystem.Type, bool)
	// MayBeNull follows type parameter bounds.
	MayBeNull(t typesystem.Type) bool
}

// PlatformMap maps a foreign classifier to its native equivalents.
type PlatformMap interface {
	MapEquivalents(c *typesystem.Classifier) []*typesystem.Classifier
}

// Engine holds no mutable state; it is safe for concurrent use when its
// Oracle and PlatformMap are.
type Engine struct {
	oracle        Oracle
	platform      PlatformMap
	logger        *zap.Logger
	maxUnifyDepth int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used to trace decisions at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSettings applies the unification depth limit.
func WithSettings(s *config.Settings) Option {
	return func(e *Engine) {
		if s != nil && s.MaxUnifyDepth > 0 {
			e.maxUnifyDepth = s.MaxUnifyDepth
		}
	}
}

// New creates an Engine. A nil platform map disables platform aliasing.
func New(oracle Oracle, platform PlatformMap, opts ...Option) *Engine {
	if oracle == nil {
		panic(&ContractViolation{Op: "New", Msg: "nil oracle"})
	}
	e := &Engine{
		oracle:        oracle,
		platform:      platform,
		logger:        zap.NewNop(),
		maxUnifyDepth: config.DefaultMaxUnifyDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
