package typesystem

import (
	"testing"

	"github.com/funvibe/castcheck/internal/config"
)

func TestTypeString(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"simple", f.strType(), "String"},
		{"nullable", f.strType().MakeNullable(), "String?"},
		{"applied", f.apply(f.list, f.strType()), "List<String>"},
		{"projected", NewType(f.box, NewProjection(Out, f.strType())), "Box<out String>"},
		{"star", NewType(f.pair, StarProjection(), InvariantProjection(f.intType())), "Pair<*, Int>"},
		{"default type", f.list.DefaultType(), "List<E>"},
		{"empty", Type{}, "<no type>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTypeEqual(t *testing.T) {
	f := newFixture()
	a := f.apply(f.list, f.strType())
	b := f.apply(f.list, f.strType())

	if !a.Equal(b) {
		t.Errorf("%s should equal %s", a, b)
	}
	if a.Equal(a.MakeNullable()) {
		t.Errorf("nullability must take part in equality")
	}
	if a.Equal(f.apply(f.list, f.intType())) {
		t.Errorf("arguments must take part in equality")
	}

	// Equality is by ID, not by pointer
	clone := NewClassifier("List", InterfaceKind, false, f.list.Params...)
	if !a.Equal(NewType(clone, InvariantProjection(f.strType()))) {
		t.Errorf("classifiers with equal IDs must denote the same type")
	}
}

func TestClassifierKinds(t *testing.T) {
	f := newFixture()
	if !f.str.IsFinal() || f.any.IsFinal() {
		t.Errorf("finality not preserved")
	}
	if NewClassifier("I", InterfaceKind, true).IsFinal() {
		t.Errorf("interfaces are never final")
	}
	if !f.list.IsInterface() {
		t.Errorf("List should be an interface")
	}
	if !f.box.Params[0].Type().IsTypeParameter() {
		t.Errorf("parameter reference should be a type parameter type")
	}
	if f.box.Params[0].Symbol().Param != f.box.Params[0] {
		t.Errorf("symbol should point back to its parameter")
	}
}

func TestFreshVariableString(t *testing.T) {
	config.IsTestMode = true
	defer func() { config.IsTestMode = false }()

	f := newFixture()
	typ, fresh := ApplyFresh(f.pair)
	if len(fresh) != 2 {
		t.Fatalf("expected 2 fresh variables, got %d", len(fresh))
	}
	if got := typ.String(); got != "Pair<A#?, B#?>" {
		t.Errorf("String() = %s, want Pair<A#?, B#?>", got)
	}
	if SameClassifier(fresh[0].Symbol(), f.pair.Params[0].Symbol()) {
		t.Errorf("fresh variable must differ from the declared parameter")
	}
}

func TestCheckArity(t *testing.T) {
	f := newFixture()
	if err := CheckArity(f.apply(f.pair, f.strType(), f.intType())); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckArity(NewType(f.pair, StarProjection(), StarProjection())); err != nil {
		t.Errorf("stars count as arguments: %v", err)
	}
	err := CheckArity(f.apply(f.box, f.apply(f.pair, f.strType())))
	if _, ok := err.(*ArityError); !ok {
		t.Errorf("expected *ArityError for nested mismatch, got %v", err)
	}
	if err := CheckClassifier(f.list); err != nil {
		t.Errorf("List declaration should be valid: %v", err)
	}
}
