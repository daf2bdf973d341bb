package lattice

// AssumptionLattice is the product of the type lattice and a numeric
// range lattice, describing what is assumed about one observed value:
//
//	𝕋 × R
type AssumptionLattice struct {
	lattice
	rng Lattice
}

// assumptionLattice is the assumption lattice over integer intervals.
var assumptionLattice = &AssumptionLattice{rng: intervalLattice}

// Assumption yields the assumption lattice with interval ranges.
func (latticeFactory) Assumption() *AssumptionLattice {
	return assumptionLattice
}

// AssumptionOver yields an assumption lattice with ranges drawn from rng.
func (latticeFactory) AssumptionOver(rng Lattice) *AssumptionLattice {
	if rng.Eq(intervalLattice) {
		return assumptionLattice
	}
	return &AssumptionLattice{rng: rng}
}

// Range retrieves the lattice of range assumptions.
func (l *AssumptionLattice) Range() Lattice {
	return l.rng
}

// Top yields (Any, ⊤).
func (l *AssumptionLattice) Top() Element {
	return Assumption{
		element: element{l},
		typ:     typeLattice.Top().Type(),
		rng:     l.rng.Top(),
	}
}

// Bot yields (⊥, ⊥).
func (l *AssumptionLattice) Bot() Element {
	return Assumption{
		element: element{l},
		typ:     typeLattice.Bot().Type(),
		rng:     l.rng.Bot(),
	}
}

func (l *AssumptionLattice) String() string {
	return "(" + typeLattice.String() + " × " + l.rng.String() + ")"
}

func (l1 *AssumptionLattice) Eq(l2 Lattice) bool {
	if l1 == l2 {
		return true
	}
	switch l2 := l2.(type) {
	case *AssumptionLattice:
		return l1.rng.Eq(l2.rng)
	default:
		return false
	}
}

func (l *AssumptionLattice) Assumption() *AssumptionLattice {
	return l
}
