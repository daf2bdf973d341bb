package lattice

// IntervalKeyLattice is the lattice of integer key ranges denoted by one
// key variable, e. g. the indexes covered by a segment of an array.
type IntervalKeyLattice struct {
	lattice
	key Variable
}

// IntervalKey creates the lattice of key ranges for the given key variable.
func (latticeFactory) IntervalKey(key Variable) *IntervalKeyLattice {
	return &IntervalKeyLattice{key: key}
}

// Key retrieves the key variable.
func (l *IntervalKeyLattice) Key() Variable {
	return l.key
}

func (l *IntervalKeyLattice) Top() Element {
	return IntervalKey{element{l}, intervalLattice.Top().Interval()}
}

func (l *IntervalKeyLattice) Bot() Element {
	return IntervalKey{element{l}, intervalLattice.Bot().Interval()}
}

func (l *IntervalKeyLattice) String() string {
	return colorize.Key(l.key.Name()) + " ∈ " + intervalLattice.String()
}

func (l1 *IntervalKeyLattice) Eq(l2 Lattice) bool {
	switch l2 := l2.(type) {
	case *IntervalKeyLattice:
		return l1 == l2 || l1.key == l2.key
	default:
		return false
	}
}

func (l *IntervalKeyLattice) IntervalKey() *IntervalKeyLattice {
	return l
}
