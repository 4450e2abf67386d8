package universe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/funvibe/castcheck/internal/config"
	"github.com/funvibe/castcheck/internal/typesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrelude(t *testing.T) {
	u, err := Prelude()
	require.NoError(t, err)

	list := u.MustLookup("List")
	assert.True(t, list.IsInterface())
	require.Len(t, list.Params, 1)
	assert.Equal(t, typesystem.Out, list.Params[0].Variance)
	assert.Equal(t, "Collection<E>", list.Supertypes[0].String())

	array := u.MustLookup("Array")
	assert.True(t, array.IsFinal())
	assert.True(t, array.Params[0].Reified)

	enum := u.MustLookup("Enum")
	require.Len(t, enum.Params[0].Bounds, 1)
	assert.True(t, typesystem.SameClassifier(enum.Params[0].Bounds[0].Args[0].Type.Constructor, enum.Params[0].Symbol()))

	natives := u.Platform().MapEquivalents(u.MustLookup("host.List"))
	assert.Len(t, natives, 2)

	// Each call builds an independent universe
	other, err := Prelude()
	require.NoError(t, err)
	assert.NotSame(t, list, other.MustLookup("List"))
}

func TestParseType(t *testing.T) {
	u, err := Prelude()
	require.NoError(t, err)

	tests := []struct {
		expr string
		want string
	}{
		{"String", "String"},
		{"String?", "String?"},
		{"List<String>", "List<String>"},
		{"Map<String, out List<*>>?", "Map<String, out List<*>>?"},
		{"  MutableList < in Int > ", "MutableList<in Int>"},
		{"host.List<host.String>", "host.List<host.String>"},
		{"List<List<String?>>", "List<List<String?>>"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := u.ParseType(tt.expr, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseTypeErrors(t *testing.T) {
	u, err := Prelude()
	require.NoError(t, err)

	tests := []struct {
		expr   string
		target interface{}
	}{
		{"Unknown", new(*UnknownClassifierError)},
		{"List<String", new(*ParseError)},
		{"List<sideways String>", new(*ParseError)},
		{"String String", new(*ParseError)},
		{"List<>", new(*ParseError)},
		{"#", new(*ParseError)},
		{"List<String, Int>", new(*typesystem.ArityError)},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := u.ParseType(tt.expr, nil)
			require.Error(t, err)
			assert.ErrorAs(t, err, tt.target)
		})
	}
}

func TestParseTypeScope(t *testing.T) {
	u, err := Prelude()
	require.NoError(t, err)
	list := u.MustLookup("List")

	got, err := u.ParseType("Collection<E>", list)
	require.NoError(t, err)
	assert.True(t, typesystem.SameClassifier(got.Args[0].Type.Constructor, list.Params[0].Symbol()))

	_, err = u.ParseType("Collection<E>", nil)
	assert.Error(t, err, "parameter names only resolve inside their classifier")

	got, err = u.ParseType("Collection<List::E?>", nil)
	require.NoError(t, err)
	assert.True(t, typesystem.SameClassifier(got.Args[0].Type.Constructor, list.Params[0].Symbol()))
	assert.True(t, got.Args[0].Type.Nullable)

	_, err = u.ParseType("List::X", nil)
	assert.ErrorAs(t, err, new(*UnknownClassifierError))
}

func TestLoadDeclarations(t *testing.T) {
	u, err := Prelude()
	require.NoError(t, err)

	src := `
classifiers:
  - name: Animal
    kind: interface
  - name: Dog
    final: true
    supertypes: [Animal]
  - name: Kennel
    params:
      - name: T
        variance: out
        bounds: [Animal]
    supertypes: ["Box<T>"]
  - name: Box
    params:
      - name: T
platform:
  - foreign: host.Object
    native: [Animal]
`
	require.NoError(t, u.LoadDeclarations([]byte(src), "zoo.yaml"))

	kennel := u.MustLookup("Kennel")
	assert.Equal(t, "Box<T>", kennel.Supertypes[0].String(), "forward references resolve")
	assert.Equal(t, "Animal", kennel.Params[0].Bounds[0].String())
	assert.True(t, u.MustLookup("Dog").IsFinal())
	assert.Len(t, u.Platform().MapEquivalents(u.MustLookup("host.Object")), 2)
}

func TestLoadDeclarationsErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad yaml", "classifiers: [\n"},
		{"missing name", "classifiers:\n  - kind: class\n"},
		{"duplicate", "classifiers:\n  - name: A\n  - name: A\n"},
		{"redefines prelude", "classifiers:\n  - name: String\n"},
		{"bad kind", "classifiers:\n  - name: A\n    kind: struct\n"},
		{"bad variance", "classifiers:\n  - name: A\n    params:\n      - name: T\n        variance: sideways\n"},
		{"unknown supertype", "classifiers:\n  - name: A\n    supertypes: [Missing]\n"},
		{"nullable supertype", "classifiers:\n  - name: A\n    supertypes: ['Any?']\n"},
		{"unknown native", "platform:\n  - foreign: host.Object\n    native: [Missing]\n"},
		{"empty native", "platform:\n  - foreign: host.Object\n    native: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := Prelude()
			require.NoError(t, err)
			assert.Error(t, u.LoadDeclarations([]byte(tt.src), "bad.yaml"))
		})
	}
}

func TestLoadDeclarationsLeavesUniverseUnchangedOnError(t *testing.T) {
	u, err := Prelude()
	require.NoError(t, err)
	ids := u.IDs()
	object := u.MustLookup("host.Object")
	mapped := u.Platform().MapEquivalents(object)

	bad := `
classifiers:
  - name: A
  - name: B
    supertypes: [Missing]
platform:
  - foreign: host.Object
    native: [A]
`
	require.Error(t, u.LoadDeclarations([]byte(bad), "bad.yaml"))
	_, ok := u.Lookup("A")
	assert.False(t, ok)
	assert.Equal(t, ids, u.IDs())
	assert.Equal(t, mapped, u.Platform().MapEquivalents(object))

	badPlatform := `
classifiers:
  - name: A
platform:
  - foreign: host.Object
    native: [A, Missing]
`
	require.Error(t, u.LoadDeclarations([]byte(badPlatform), "bad.yaml"))
	assert.Equal(t, ids, u.IDs())
	assert.Equal(t, mapped, u.Platform().MapEquivalents(object))

	require.NoError(t, u.LoadDeclarations([]byte("classifiers:\n  - name: A\n"), "good.yaml"))
	_, ok = u.Lookup("A")
	assert.True(t, ok, "a failed load does not block a later one")
}

func TestLoadFromSettings(t *testing.T) {
	dir := t.TempDir()
	decls := filepath.Join(dir, "extra.yaml")
	require.NoError(t, os.WriteFile(decls, []byte("classifiers:\n  - name: Widget\n"), 0o644))

	u, err := Load(&config.Settings{Declarations: []string{decls}})
	require.NoError(t, err)
	_, ok := u.Lookup("Widget")
	assert.True(t, ok)
	_, ok = u.Lookup("String")
	assert.True(t, ok)

	bare, err := Load(&config.Settings{NoPrelude: true})
	require.NoError(t, err)
	assert.Empty(t, bare.Classifiers())

	_, err = Load(&config.Settings{Declarations: []string{filepath.Join(dir, "missing.yaml")}})
	assert.Error(t, err)
}
