// Package universe holds the classifiers known to a session and builds
// types from textual type expressions such as "Map<String, out List<*>>?".
//
// Classifiers come from the embedded prelude and from YAML declaration files.
package universe

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/funvibe/castcheck/internal/platform"
	"github.com/funvibe/castcheck/internal/typesystem"
)

// paramSeparator joins a classifier ID and one of its parameter names.
const paramSeparator = "::"

// Universe is a registry of classifiers plus the platform map between them.
// It is built once and then only read.
type Universe struct {
	classifiers map[string]*typesystem.Classifier
	order       []string
	platform    *platform.Map
}

// New creates an empty universe.
func New() *Universe {
	return &Universe{
		classifiers: make(map[string]*typesystem.Classifier),
		platform:    platform.New(),
	}
}

// Define registers c. IDs must be unique.
func (u *Universe) Define(c *typesystem.Classifier) error {
	if c == nil || c.ID == "" {
		return fmt.Errorf("cannot define a classifier without an ID")
	}
	if _, exists := u.classifiers[c.ID]; exists {
		return fmt.Errorf("classifier %s already defined", c.ID)
	}
	u.classifiers[c.ID] = c
	u.order = append(u.order, c.ID)
	return nil
}

// Lookup finds a classifier by ID.
func (u *Universe) Lookup(id string) (*typesystem.Classifier, bool) {
	c, ok := u.classifiers[id]
	return c, ok
}

// Resolve finds a classifier by ID or returns *UnknownClassifierError.
// A qualified "Owner::Name" resolves to the symbol of Owner's parameter Name.
func (u *Universe) Resolve(id string) (*typesystem.Classifier, error) {
	if c, ok := u.classifiers[id]; ok {
		return c, nil
	}
	if i := strings.LastIndex(id, paramSeparator); i > 0 {
		if owner, ok := u.classifiers[id[:i]]; ok {
			for _, p := range owner.Params {
				if p.Name == id[i+len(paramSeparator):] {
					return p.Symbol(), nil
				}
			}
		}
	}
	return nil, NewUnknownClassifierError(id)
}

// MustLookup is Lookup for callers that know the classifier exists.
func (u *Universe) MustLookup(id string) *typesystem.Classifier {
	c, ok := u.classifiers[id]
	if !ok {
		panic(NewUnknownClassifierError(id))
	}
	return c
}

// Classifiers returns all classifiers in definition order.
func (u *Universe) Classifiers() []*typesystem.Classifier {
	out := make([]*typesystem.Classifier, len(u.order))
	for i, id := range u.order {
		out[i] = u.classifiers[id]
	}
	return out
}

// IDs returns all classifier IDs, sorted.
func (u *Universe) IDs() []string {
	ids := append([]string(nil), u.order...)
	sort.Strings(ids)
	return ids
}

// Platform returns the foreign→native map of this universe.
func (u *Universe) Platform() *platform.Map { return u.platform }

// MustParse is ParseType for tests and fixed expressions.
func (u *Universe) MustParse(expr string) typesystem.Type {
	t, err := u.ParseType(expr, nil)
	if err != nil {
		panic(err)
	}
	return t
}

// LoadFile reads a YAML declaration file into u.
func (u *Universe) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading declarations %s: %w", path, err)
	}
	return u.LoadDeclarations(data, path)
}
