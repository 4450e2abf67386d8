package typesystem

import (
	"testing"
)

func TestVarianceString(t *testing.T) {
	if In.String() != "in" {
		t.Errorf("In.String() = %q, want in", In.String())
	}
	if Out.String() != "out" {
		t.Errorf("Out.String() = %q, want out", Out.String())
	}
	if Invariant.String() != "" {
		t.Errorf("Invariant.String() = %q, want empty", Invariant.String())
	}
	if In.Opposite() != Out || Out.Opposite() != In || Invariant.Opposite() != Invariant {
		t.Errorf("Opposite is not an involution on in/out")
	}
}

func TestEffectiveVariance(t *testing.T) {
	tests := []struct {
		name     string
		declared Variance
		useSite  Variance
		want     Variance
		wantOK   bool
	}{
		{"invariant/invariant", Invariant, Invariant, Invariant, true},
		{"declared out", Out, Invariant, Out, true},
		{"use-site in", Invariant, In, In, true},
		{"redundant out", Out, Out, Out, true},
		{"out declared, in used", Out, In, Invariant, false},
		{"in declared, out used", In, Out, Invariant, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EffectiveVariance(tt.declared, tt.useSite)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("EffectiveVariance(%v, %v) = (%v, %v), want (%v, %v)",
					tt.declared, tt.useSite, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseVariance(t *testing.T) {
	for in, want := range map[string]Variance{"": Invariant, "invariant": Invariant, "in": In, "out": Out} {
		got, ok := ParseVariance(in)
		if !ok || got != want {
			t.Errorf("ParseVariance(%q) = (%v, %v), want (%v, true)", in, got, ok, want)
		}
	}
	if _, ok := ParseVariance("inout"); ok {
		t.Errorf("ParseVariance(inout) should fail")
	}
}
