package lattice

// TypeLattice represents the chain of primitive value types:
//
//	Any
//	 |
//	Float
//	 |
//	Int
//	 |
//	Bool
//	 |
//	 ⊥
type TypeLattice struct {
	lattice
}

// typeLattice is a singleton instantiation of the type lattice.
var typeLattice = &TypeLattice{}

// Type yields the type lattice.
func (latticeFactory) Type() *TypeLattice {
	return typeLattice
}

// Top yields Any.
func (*TypeLattice) Top() Element {
	return TypeElement{rank: Any}
}

// Bot yields the impossible type.
func (*TypeLattice) Bot() Element {
	return TypeElement{bot: true}
}

func (*TypeLattice) String() string {
	return colorize.Lattice("𝕋")
}

// Eq checks that l2 is the type lattice.
func (l1 *TypeLattice) Eq(l2 Lattice) bool {
	_, ok := l2.(*TypeLattice)
	return ok
}

// Type safely converts the type lattice.
func (l1 *TypeLattice) Type() *TypeLattice {
	return l1
}
