package lattice

// InputAssumptionLattice is the lattice of run-length encoded sequences
// of assumptions, describing the inputs consumed along a program path.
// Sequence positions hold members of an assumption lattice, or nested
// sequences of the same lattice.
type InputAssumptionLattice struct {
	lattice
	asm *AssumptionLattice
}

// inputAssumptionLattice is the input assumption lattice over interval assumptions.
var inputAssumptionLattice = &InputAssumptionLattice{asm: assumptionLattice}

// InputAssumption yields the input assumption lattice over interval assumptions.
func (latticeFactory) InputAssumption() *InputAssumptionLattice {
	return inputAssumptionLattice
}

// InputAssumptionOver yields the input assumption lattice over the given assumption lattice.
func (latticeFactory) InputAssumptionOver(asm *AssumptionLattice) *InputAssumptionLattice {
	if asm.Eq(assumptionLattice) {
		return inputAssumptionLattice
	}
	return &InputAssumptionLattice{asm: asm}
}

// Assumptions retrieves the lattice of the sequence leaves.
func (l *InputAssumptionLattice) Assumptions() *AssumptionLattice {
	return l.asm
}

func (l *InputAssumptionLattice) Top() Element {
	return InputAssumption{
		element:    element{l},
		kind:       inputTop,
		iterations: Unresolved,
	}
}

func (l *InputAssumptionLattice) Bot() Element {
	return InputAssumption{
		element:    element{l},
		kind:       inputBot,
		iterations: Unresolved,
	}
}

func (l *InputAssumptionLattice) String() string {
	return "ℕ × " + l.asm.String() + "*"
}

func (l1 *InputAssumptionLattice) Eq(l2 Lattice) bool {
	if l1 == l2 {
		return true
	}
	switch l2 := l2.(type) {
	case *InputAssumptionLattice:
		return l1.asm.Eq(l2.asm)
	default:
		return false
	}
}

func (l *InputAssumptionLattice) InputAssumption() *InputAssumptionLattice {
	return l
}
