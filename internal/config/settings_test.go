package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettingsDefaults(t *testing.T) {
	s, err := ParseSettings([]byte("declarations: [types.yaml]\n"), "/work/castcheck.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join("/work", "types.yaml")}, s.Declarations)
	assert.Equal(t, DefaultMaxSupertypeDepth, s.MaxSupertypeDepth)
	assert.Equal(t, DefaultMaxSubtypeDepth, s.MaxSubtypeDepth)
	assert.Equal(t, DefaultMaxUnifyDepth, s.MaxUnifyDepth)
	assert.Equal(t, "auto", s.Color)
}

func TestParseSettingsErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "declarations: [\n"},
		{"negative depth", "max_supertype_depth: -1\n"},
		{"bad color", "color: sometimes\n"},
		{"empty declaration", "declarations: ['']\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSettings([]byte(tt.yaml), "castcheck.yaml")
			assert.Error(t, err)
		})
	}
}

func TestFindSettingsWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	want := filepath.Join(root, "castcheck.yml")
	require.NoError(t, os.WriteFile(want, []byte("color: never\n"), 0o644))

	got, err := FindSettings(nested)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	s, err := LoadSettings(got)
	require.NoError(t, err)
	assert.Equal(t, "never", s.Color)
}
