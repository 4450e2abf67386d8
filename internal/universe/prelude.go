package universe

import (
	_ "embed"
	"fmt"

	"github.com/funvibe/castcheck/internal/config"
)

//go:embed prelude.yaml
var preludeYAML []byte

// Prelude returns a fresh universe holding the built-in classifiers.
func Prelude() (*Universe, error) {
	u := New()
	if err := u.LoadDeclarations(preludeYAML, "prelude.yaml"); err != nil {
		return nil, err
	}
	for _, name := range []string{config.AnyTypeName, config.NothingTypeName} {
		if _, ok := u.Lookup(name); !ok {
			return nil, fmt.Errorf("prelude.yaml: missing builtin %s", name)
		}
	}
	return u, nil
}

// Load builds a universe from settings: the prelude unless disabled,
// then every declaration file in order.
func Load(s *config.Settings) (*Universe, error) {
	u := New()
	if s == nil || !s.NoPrelude {
		p, err := Prelude()
		if err != nil {
			return nil, err
		}
		u = p
	}
	if s != nil {
		for _, path := range s.Declarations {
			if err := u.LoadFile(path); err != nil {
				return nil, err
			}
		}
	}
	return u, nil
}
