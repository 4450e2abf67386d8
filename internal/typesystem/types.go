package typesystem

import (
	"strings"

	"github.com/funvibe/castcheck/internal/config"
)

// ClassifierKind distinguishes the closed set of classifier variants.
type ClassifierKind int

const (
	ClassKind ClassifierKind = iota
	InterfaceKind
	TypeParameterKind
)

func (k ClassifierKind) String() string {
	switch k {
	case InterfaceKind:
		return "interface"
	case TypeParameterKind:
		return "type parameter"
	default:
		return "class"
	}
}

// Classifier is a nominal type constructor: a class, an interface, or the
// symbol of a type parameter.
// Two classifiers denote the same nominal type iff their IDs are equal.
type Classifier struct {
	ID   string // Identity key, e.g. "List" or "host.String"
	Name string // Display name
	Kind ClassifierKind

	// Final is true when the classifier cannot be subclassed.
	// Always false for interfaces and type parameters.
	Final bool

	// Params are the declared type parameters, in declaration order.
	Params []*TypeParameter

	// Supertypes are the directly declared supertypes, schematic over Params.
	Supertypes []Type

	// Param is set for TypeParameterKind and points back to the parameter.
	Param *TypeParameter
}

// NewClassifier creates a class or interface classifier with the given parameters.
// Supertypes are attached afterwards since they usually mention the parameters.
func NewClassifier(id string, kind ClassifierKind, final bool, params ...*TypeParameter) *Classifier {
	name := id
	if i := strings.LastIndex(id, "."); i >= 0 {
		name = id[i+1:]
	}
	return &Classifier{ID: id, Name: name, Kind: kind, Final: final && kind == ClassKind, Params: params}
}

func (c *Classifier) IsFinal() bool         { return c != nil && c.Final }
func (c *Classifier) IsInterface() bool     { return c != nil && c.Kind == InterfaceKind }
func (c *Classifier) IsTypeParameter() bool { return c != nil && c.Kind == TypeParameterKind }

// DefaultType is the classifier applied to its own declared parameters, e.g. List<E>.
func (c *Classifier) DefaultType() Type {
	args := make([]Projection, len(c.Params))
	for i, p := range c.Params {
		args[i] = InvariantProjection(p.Type())
	}
	return Type{Constructor: c, Args: args}
}

func (c *Classifier) String() string {
	if c == nil {
		return "<nil>"
	}
	if c.Kind == TypeParameterKind && c.Param != nil {
		return c.Param.String()
	}
	return c.Name
}

// SameClassifier reports whether a and b denote the same nominal type.
func SameClassifier(a, b *Classifier) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}

// TypeParameter is a generic parameter declared on a classifier.
type TypeParameter struct {
	Name     string
	Index    int
	Variance Variance
	Reified  bool

	// Bounds are the upper bounds. Empty means the implicit nullable top type.
	Bounds []Type

	symbol *Classifier
}

// NewTypeParameter creates a parameter together with its classifier symbol.
// The id must be unique among all classifiers, e.g. "List::E".
func NewTypeParameter(id, name string, index int, variance Variance, reified bool) *TypeParameter {
	p := &TypeParameter{Name: name, Index: index, Variance: variance, Reified: reified}
	p.symbol = &Classifier{ID: id, Name: name, Kind: TypeParameterKind, Param: p}
	return p
}

// Symbol returns the classifier that references to this parameter use as constructor.
func (p *TypeParameter) Symbol() *Classifier { return p.symbol }

// Type returns a non-nullable reference to the parameter.
func (p *TypeParameter) Type() Type { return Type{Constructor: p.symbol} }

func (p *TypeParameter) String() string {
	name := p.Name
	if config.IsTestMode {
		// Fresh variables carry a unique suffix; hide it for deterministic output
		if i := strings.Index(p.symbol.ID, config.FreshVariableSeparator); i >= 0 {
			return name + config.FreshVariableSeparator + "?"
		}
	}
	return name
}

// Projection is a type argument: either Star or a type with a use-site variance.
type Projection struct {
	Star     bool
	Variance Variance
	Type     Type
}

// StarProjection is the unknown argument marker.
func StarProjection() Projection { return Projection{Star: true} }

func InvariantProjection(t Type) Projection { return Projection{Type: t} }

func NewProjection(v Variance, t Type) Projection { return Projection{Variance: v, Type: t} }

func (p Projection) Equal(o Projection) bool {
	if p.Star || o.Star {
		return p.Star == o.Star
	}
	return p.Variance == o.Variance && p.Type.Equal(o.Type)
}

func (p Projection) String() string {
	if p.Star {
		return "*"
	}
	if p.Variance == Invariant {
		return p.Type.String()
	}
	return p.Variance.String() + " " + p.Type.String()
}

// Type is an immutable nominal type: a constructor applied to argument projections.
// The zero Type stands for "no type".
type Type struct {
	Constructor *Classifier
	Args        []Projection
	Nullable    bool
}

// NewType applies c to args.
func NewType(c *Classifier, args ...Projection) Type {
	return Type{Constructor: c, Args: args}
}

func (t Type) IsZero() bool { return t.Constructor == nil }

func (t Type) MakeNullable() Type {
	t.Nullable = true
	return t
}

func (t Type) MakeNotNullable() Type {
	t.Nullable = false
	return t
}

// IsTypeParameter reports whether t is a reference to a type parameter.
func (t Type) IsTypeParameter() bool { return t.Constructor.IsTypeParameter() }

// IsBuiltin reports whether t's constructor is the builtin classifier with the given name.
func (t Type) IsBuiltin(name string) bool {
	return t.Constructor != nil && t.Constructor.Kind != TypeParameterKind && t.Constructor.ID == name
}

// Equal is structural equality over constructor, arguments and nullability.
func (t Type) Equal(o Type) bool {
	if t.Nullable != o.Nullable || !SameClassifier(t.Constructor, o.Constructor) {
		return false
	}
	if len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

func (t Type) String() string {
	if t.Constructor == nil {
		return "<no type>"
	}
	var sb strings.Builder
	sb.WriteString(t.Constructor.String())
	if len(t.Args) > 0 {
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = a.String()
		}
		sb.WriteString("<")
		sb.WriteString(strings.Join(args, ", "))
		sb.WriteString(">")
	}
	if t.Nullable {
		sb.WriteString("?")
	}
	return sb.String()
}

// ParamAt returns the declared parameter of t's constructor at position i, if any.
func (t Type) ParamAt(i int) (*TypeParameter, bool) {
	if t.Constructor == nil || i < 0 || i >= len(t.Constructor.Params) {
		return nil, false
	}
	return t.Constructor.Params[i], true
}

// DeclaredVariance returns the declared variance at argument position i.
// Positions without a declared parameter are treated as invariant.
func (t Type) DeclaredVariance(i int) Variance {
	if p, ok := t.ParamAt(i); ok {
		return p.Variance
	}
	return Invariant
}
