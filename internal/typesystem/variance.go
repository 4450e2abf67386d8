package typesystem

// Variance is the subtyping direction allowed for a type argument.
// Declared on type parameters (declaration-site) and on projections (use-site).
type Variance int

const (
	Invariant Variance = iota
	In
	Out
)

func (v Variance) String() string {
	switch v {
	case In:
		return "in"
	case Out:
		return "out"
	default:
		return ""
	}
}

// Opposite swaps in and out; Invariant stays Invariant.
func (v Variance) Opposite() Variance {
	switch v {
	case In:
		return Out
	case Out:
		return In
	default:
		return Invariant
	}
}

// ParseVariance accepts "in", "out" and "" (or "invariant").
func ParseVariance(s string) (Variance, bool) {
	switch s {
	case "", "invariant":
		return Invariant, true
	case "in":
		return In, true
	case "out":
		return Out, true
	}
	return Invariant, false
}

// EffectiveVariance combines the declared variance of a parameter with the
// use-site annotation of an argument in that position.
// Returns false when the two contradict (in vs out).
func EffectiveVariance(declared, useSite Variance) (Variance, bool) {
	if useSite == Invariant {
		return declared, true
	}
	if declared == Invariant || declared == useSite {
		return useSite, true
	}
	return Invariant, false
}

// normalizeUseSite drops a use-site annotation that only repeats the
// declared variance, so List<out E> and List<E> compare equal.
func normalizeUseSite(declared, useSite Variance) Variance {
	if useSite == declared {
		return Invariant
	}
	return useSite
}
