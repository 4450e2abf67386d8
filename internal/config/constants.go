package config

// IsTestMode indicates if the program is running under tests.
// When set, fresh type variables print without their unique suffix.
var IsTestMode = false

// Built-in classifier names
const (
	AnyTypeName     = "Any"
	NothingTypeName = "Nothing"
)

// FreshVariableSeparator separates a declared parameter ID from the unique
// suffix of a fresh type variable created for it.
const FreshVariableSeparator = "#"

// ConfigFileNames are the recognized settings file names, in lookup order.
var ConfigFileNames = []string{"castcheck.yaml", "castcheck.yml"}

// Default recursion limits
const (
	DefaultMaxSupertypeDepth = 64
	DefaultMaxSubtypeDepth   = 128
	DefaultMaxUnifyDepth     = 128
)
