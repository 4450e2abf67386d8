package universe

import (
	"fmt"

	"github.com/funvibe/castcheck/internal/typesystem"
	"gopkg.in/yaml.v3"
)

// Declarations is the top-level layout of a YAML declaration file.
type Declarations struct {
	// Classifiers lists classes and interfaces. Order matters only for
	// diagnostics; forward references are allowed.
	Classifiers []ClassifierDecl `yaml:"classifiers"`

	// Platform lists foreign→native equivalences.
	Platform []PlatformDecl `yaml:"platform,omitempty"`
}

// ClassifierDecl declares a class or interface.
type ClassifierDecl struct {
	// Name is the classifier ID, optionally qualified (e.g. "host.String").
	Name string `yaml:"name"`

	// Kind is "class" (default) or "interface".
	Kind string `yaml:"kind,omitempty"`

	// Final marks a class that cannot be subclassed. Ignored for interfaces.
	Final bool `yaml:"final,omitempty"`

	Params []ParamDecl `yaml:"params,omitempty"`

	// Supertypes are type expressions over this classifier's parameters,
	// e.g. "Collection<E>".
	Supertypes []string `yaml:"supertypes,omitempty"`
}

// ParamDecl declares a type parameter.
type ParamDecl struct {
	Name string `yaml:"name"`

	// Variance is "in", "out" or empty for invariant.
	Variance string `yaml:"variance,omitempty"`

	Reified bool `yaml:"reified,omitempty"`

	// Bounds are upper bounds; may mention any parameter of the classifier.
	Bounds []string `yaml:"bounds,omitempty"`
}

// PlatformDecl maps one foreign classifier to its native equivalents.
type PlatformDecl struct {
	Foreign string   `yaml:"foreign"`
	Native  []string `yaml:"native"`
}

// ParseDeclarations parses declaration YAML without resolving or validating it.
// The path argument is used only for error messages.
func ParseDeclarations(data []byte, path string) (*Declarations, error) {
	var d Declarations
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &d, nil
}

func (d *Declarations) validate(path string) error {
	seen := make(map[string]bool)
	for i, c := range d.Classifiers {
		if c.Name == "" {
			return fmt.Errorf("%s: classifiers[%d]: name is required", path, i)
		}
		if seen[c.Name] {
			return fmt.Errorf("%s: classifiers[%d]: duplicate classifier %s", path, i, c.Name)
		}
		seen[c.Name] = true

		switch c.Kind {
		case "", "class", "interface":
		default:
			return fmt.Errorf("%s: %s: kind must be class or interface (got %q)", path, c.Name, c.Kind)
		}

		params := make(map[string]bool)
		for j, p := range c.Params {
			if p.Name == "" {
				return fmt.Errorf("%s: %s: params[%d]: name is required", path, c.Name, j)
			}
			if params[p.Name] {
				return fmt.Errorf("%s: %s: duplicate parameter %s", path, c.Name, p.Name)
			}
			params[p.Name] = true
			if _, ok := typesystem.ParseVariance(p.Variance); !ok {
				return fmt.Errorf("%s: %s.%s: unknown variance %q", path, c.Name, p.Name, p.Variance)
			}
		}
	}

	for i, m := range d.Platform {
		if m.Foreign == "" {
			return fmt.Errorf("%s: platform[%d]: foreign is required", path, i)
		}
		if len(m.Native) == 0 {
			return fmt.Errorf("%s: platform[%d]: %s has no native equivalents", path, i, m.Foreign)
		}
	}
	return nil
}

// LoadDeclarations parses data and adds its classifiers and platform
// mappings to u. Declarations may reference classifiers already in u.
func (u *Universe) LoadDeclarations(data []byte, path string) error {
	d, err := ParseDeclarations(data, path)
	if err != nil {
		return err
	}
	return u.Apply(d, path)
}

// Apply resolves d into u. Classifiers are created first so that supertypes
// and bounds may reference any of them. On error u is left as it was before
// the call.
func (u *Universe) Apply(d *Declarations, path string) (err error) {
	if err := d.validate(path); err != nil {
		return err
	}
	mark := len(u.order)
	defer func() {
		if err != nil {
			u.truncate(mark)
		}
	}()

	created := make([]*typesystem.Classifier, len(d.Classifiers))
	for i, decl := range d.Classifiers {
		kind := typesystem.ClassKind
		if decl.Kind == "interface" {
			kind = typesystem.InterfaceKind
		}

		params := make([]*typesystem.TypeParameter, len(decl.Params))
		for j, pd := range decl.Params {
			v, _ := typesystem.ParseVariance(pd.Variance)
			params[j] = typesystem.NewTypeParameter(decl.Name+paramSeparator+pd.Name, pd.Name, j, v, pd.Reified)
		}

		c := typesystem.NewClassifier(decl.Name, kind, decl.Final, params...)
		if err := u.Define(c); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		created[i] = c
	}

	for i, decl := range d.Classifiers {
		c := created[i]
		for _, expr := range decl.Supertypes {
			st, err := u.ParseType(expr, c)
			if err != nil {
				return fmt.Errorf("%s: supertype of %s: %w", path, c.ID, err)
			}
			c.Supertypes = append(c.Supertypes, st)
		}
		for j, pd := range decl.Params {
			for _, expr := range pd.Bounds {
				b, err := u.ParseType(expr, c)
				if err != nil {
					return fmt.Errorf("%s: bound of %s.%s: %w", path, c.ID, pd.Name, err)
				}
				c.Params[j].Bounds = append(c.Params[j].Bounds, b)
			}
		}
		if err := typesystem.CheckClassifier(c); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	type mapping struct{ foreign, native *typesystem.Classifier }
	var mappings []mapping
	for _, m := range d.Platform {
		foreign, err := u.Resolve(m.Foreign)
		if err != nil {
			return fmt.Errorf("%s: platform: %w", path, err)
		}
		for _, n := range m.Native {
			native, err := u.Resolve(n)
			if err != nil {
				return fmt.Errorf("%s: platform %s: %w", path, m.Foreign, err)
			}
			mappings = append(mappings, mapping{foreign, native})
		}
	}
	for _, m := range mappings {
		u.platform.Add(m.foreign, m.native)
	}
	return nil
}

// truncate forgets every classifier defined after the first n.
func (u *Universe) truncate(n int) {
	for _, id := range u.order[n:] {
		delete(u.classifiers, id)
	}
	u.order = u.order[:n]
}
