// Package platform maps host-runtime classifiers to their native equivalents,
// e.g. a host string class to the language's String.
//
// Only the foreign→native direction is recorded and queried. The reverse
// direction is never consulted.
package platform

import (
	"sort"

	"github.com/funvibe/castcheck/internal/typesystem"
)

// Map is an immutable-after-construction foreign→native classifier map.
type Map struct {
	natives map[string][]*typesystem.Classifier
}

// New creates an empty map.
func New() *Map {
	return &Map{natives: make(map[string][]*typesystem.Classifier)}
}

// Add records natives as equivalents of foreign. Duplicates are ignored.
func (m *Map) Add(foreign *typesystem.Classifier, natives ...*typesystem.Classifier) {
	existing := m.natives[foreign.ID]
	for _, n := range natives {
		if n == nil || containsClassifier(existing, n) {
			continue
		}
		existing = append(existing, n)
	}
	m.natives[foreign.ID] = existing
}

// MapEquivalents returns the native equivalents of c, or nil.
// Type parameter symbols never have equivalents.
func (m *Map) MapEquivalents(c *typesystem.Classifier) []*typesystem.Classifier {
	if m == nil || c == nil || c.IsTypeParameter() {
		return nil
	}
	return m.natives[c.ID]
}

// Foreign lists the IDs of every mapped foreign classifier, sorted.
func (m *Map) Foreign() []string {
	ids := make([]string, 0, len(m.natives))
	for id := range m.natives {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of mapped foreign classifiers.
func (m *Map) Len() int { return len(m.natives) }

func containsClassifier(list []*typesystem.Classifier, c *typesystem.Classifier) bool {
	for _, x := range list {
		if typesystem.SameClassifier(x, c) {
			return true
		}
	}
	return false
}
