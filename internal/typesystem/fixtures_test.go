package typesystem

// Minimal hand-built hierarchy shared by the package tests.
type fixture struct {
	any, str, intc *Classifier
	collection     *Classifier // interface Collection<out E>
	list           *Classifier // interface List<out E> : Collection<E>
	box            *Classifier // class Box<T>
	out            *Classifier // final class Out<out T>
	sink           *Classifier // final class Sink<in T>
	pair           *Classifier // final class Pair<A, B>
}

func newFixture() *fixture {
	f := &fixture{}
	f.any = NewClassifier("Any", ClassKind, false)
	f.str = NewClassifier("String", ClassKind, true)
	f.intc = NewClassifier("Int", ClassKind, true)
	f.str.Supertypes = []Type{NewType(f.any)}
	f.intc.Supertypes = []Type{NewType(f.any)}

	e := NewTypeParameter("Collection::E", "E", 0, Out, false)
	f.collection = NewClassifier("Collection", InterfaceKind, false, e)
	f.collection.Supertypes = []Type{NewType(f.any)}

	le := NewTypeParameter("List::E", "E", 0, Out, false)
	f.list = NewClassifier("List", InterfaceKind, false, le)
	f.list.Supertypes = []Type{NewType(f.collection, InvariantProjection(le.Type()))}

	bt := NewTypeParameter("Box::T", "T", 0, Invariant, false)
	f.box = NewClassifier("Box", ClassKind, false, bt)

	ot := NewTypeParameter("Out::T", "T", 0, Out, false)
	f.out = NewClassifier("Out", ClassKind, true, ot)

	st := NewTypeParameter("Sink::T", "T", 0, In, false)
	f.sink = NewClassifier("Sink", ClassKind, true, st)

	pa := NewTypeParameter("Pair::A", "A", 0, Invariant, false)
	pb := NewTypeParameter("Pair::B", "B", 1, Invariant, false)
	f.pair = NewClassifier("Pair", ClassKind, true, pa, pb)
	return f
}

func (f *fixture) strType() Type { return NewType(f.str) }
func (f *fixture) intType() Type { return NewType(f.intc) }

func (f *fixture) apply(c *Classifier, args ...Type) Type {
	ps := make([]Projection, len(args))
	for i, a := range args {
		ps[i] = InvariantProjection(a)
	}
	return NewType(c, ps...)
}
