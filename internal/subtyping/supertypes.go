package subtyping

import (
	"github.com/funvibe/castcheck/internal/config"
	"github.com/funvibe/castcheck/internal/typesystem"
	"go.uber.org/zap"
)

type searchNode struct {
	t     typesystem.Type
	depth int
}

// FindCorrespondingSupertype searches the declared supertypes of schematic
// for an instance of target's constructor, substituting arguments along
// every edge walked.
//
// The search is breadth-first in declaration order and each constructor is
// visited once, so in a diamond hierarchy the first path found wins.
func (c *Checker) FindCorrespondingSupertype(schematic, target typesystem.Type) (typesystem.Type, bool) {
	if schematic.IsZero() || target.IsZero() {
		return typesystem.Type{}, false
	}
	if typesystem.SameClassifier(schematic.Constructor, target.Constructor) {
		return schematic, true
	}
	if target.IsBuiltin(config.AnyTypeName) {
		return typesystem.Type{Constructor: target.Constructor, Nullable: schematic.Nullable}, true
	}

	visited := map[string]bool{schematic.Constructor.ID: true}
	queue := []searchNode{{t: schematic.MakeNotNullable()}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.depth >= c.maxSupertypeDepth {
			c.logger.Warn("supertype search depth limit reached",
				zap.Stringer("from", schematic), zap.Stringer("at", cur.t), zap.Int("limit", c.maxSupertypeDepth))
			continue
		}

		for _, st := range c.directSupertypes(cur.t) {
			if st.IsZero() || visited[st.Constructor.ID] {
				continue
			}
			visited[st.Constructor.ID] = true

			if typesystem.SameClassifier(st.Constructor, target.Constructor) {
				if schematic.Nullable {
					st = st.MakeNullable()
				}
				return st, true
			}
			queue = append(queue, searchNode{t: st, depth: cur.depth + 1})
		}
	}
	return typesystem.Type{}, false
}

// directSupertypes returns the declared supertypes of t instantiated with
// t's arguments. For a type parameter these are its bounds.
func (c *Checker) directSupertypes(t typesystem.Type) []typesystem.Type {
	if t.IsTypeParameter() {
		out := make([]typesystem.Type, 0, len(t.Constructor.Param.Bounds))
		for _, b := range t.Constructor.Param.Bounds {
			out = append(out, b.MakeNotNullable())
		}
		return out
	}

	declared := t.Constructor.Supertypes
	if len(declared) == 0 {
		return nil
	}

	s := make(typesystem.Subst, len(t.Constructor.Params))
	for i, p := range t.Constructor.Params {
		if i < len(t.Args) {
			s[p.Symbol().ID] = t.Args[i]
		}
	}

	out := make([]typesystem.Type, 0, len(declared))
	for _, st := range declared {
		inst, err := typesystem.Substitute(st, s)
		if err != nil {
			c.logger.Debug("skipping impossible supertype",
				zap.Stringer("type", t), zap.Stringer("supertype", st), zap.Error(err))
			continue
		}
		out = append(out, inst)
	}
	return out
}
