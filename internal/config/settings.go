package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings represents the top-level castcheck.yaml configuration.
type Settings struct {
	// Declarations lists YAML declaration files loaded on top of the prelude.
	// Relative paths are resolved against the directory of the settings file.
	Declarations []string `yaml:"declarations,omitempty"`

	// MaxSupertypeDepth bounds the declared-supertype graph walk.
	MaxSupertypeDepth int `yaml:"max_supertype_depth,omitempty"`

	// MaxSubtypeDepth bounds nested subtype queries through type arguments
	// and type parameter bounds.
	MaxSubtypeDepth int `yaml:"max_subtype_depth,omitempty"`

	// MaxUnifyDepth bounds the nesting depth explored by unification.
	MaxUnifyDepth int `yaml:"max_unify_depth,omitempty"`

	// Color controls verdict colouring in the CLI: "auto", "always" or "never".
	// Defaults to "auto".
	Color string `yaml:"color,omitempty"`

	// NoPrelude disables the built-in declarations.
	NoPrelude bool `yaml:"no_prelude,omitempty"`
}

// Default returns settings with every default applied.
func Default() *Settings {
	s := &Settings{}
	s.setDefaults()
	return s
}

// LoadSettings reads and parses a castcheck.yaml file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseSettings(data, path)
}

// ParseSettings parses castcheck.yaml content from bytes.
// The path argument is used for error messages and to resolve relative
// declaration paths.
func ParseSettings(data []byte, path string) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := s.validate(path); err != nil {
		return nil, err
	}
	s.setDefaults()

	dir := filepath.Dir(path)
	for i, decl := range s.Declarations {
		if !filepath.IsAbs(decl) {
			s.Declarations[i] = filepath.Join(dir, decl)
		}
	}
	return &s, nil
}

// FindSettings searches for castcheck.yaml starting from dir and walking up
// to parent directories.
// Returns the path to the settings file, or empty string if none exists.
func FindSettings(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (s *Settings) validate(path string) error {
	if s.MaxSupertypeDepth < 0 {
		return fmt.Errorf("%s: max_supertype_depth must not be negative", path)
	}
	if s.MaxSubtypeDepth < 0 {
		return fmt.Errorf("%s: max_subtype_depth must not be negative", path)
	}
	if s.MaxUnifyDepth < 0 {
		return fmt.Errorf("%s: max_unify_depth must not be negative", path)
	}
	switch s.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("%s: color must be one of auto, always, never (got %q)", path, s.Color)
	}
	for i, decl := range s.Declarations {
		if decl == "" {
			return fmt.Errorf("%s: declarations[%d]: empty path", path, i)
		}
	}
	return nil
}

func (s *Settings) setDefaults() {
	if s.MaxSupertypeDepth == 0 {
		s.MaxSupertypeDepth = DefaultMaxSupertypeDepth
	}
	if s.MaxSubtypeDepth == 0 {
		s.MaxSubtypeDepth = DefaultMaxSubtypeDepth
	}
	if s.MaxUnifyDepth == 0 {
		s.MaxUnifyDepth = DefaultMaxUnifyDepth
	}
	if s.Color == "" {
		s.Color = "auto"
	}
}
