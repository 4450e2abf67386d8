package typesystem

import "fmt"

// CheckArity validates that every type in t has as many arguments as its
// constructor declares parameters. Star projections count as arguments.
func CheckArity(t Type) error {
	if t.Constructor == nil {
		return fmt.Errorf("cannot check arity of an empty type")
	}

	want := len(t.Constructor.Params)
	if t.Constructor.IsTypeParameter() {
		want = 0
	}
	if len(t.Args) != want {
		return &ArityError{Type: t, Want: want, Got: len(t.Args)}
	}

	for _, arg := range t.Args {
		if arg.Star {
			continue
		}
		if err := CheckArity(arg.Type); err != nil {
			return err
		}
	}
	return nil
}

// CheckClassifier validates the declared supertypes and parameter bounds of c.
func CheckClassifier(c *Classifier) error {
	for _, st := range c.Supertypes {
		if err := CheckArity(st); err != nil {
			return fmt.Errorf("supertype of %s: %w", c, err)
		}
		if st.Nullable {
			return fmt.Errorf("supertype of %s: %s must not be nullable", c, st)
		}
		if st.IsTypeParameter() {
			return fmt.Errorf("supertype of %s: %s is a type parameter", c, st)
		}
	}
	for _, p := range c.Params {
		for _, b := range p.Bounds {
			if err := CheckArity(b); err != nil {
				return fmt.Errorf("bound of %s.%s: %w", c, p.Name, err)
			}
		}
	}
	return nil
}
