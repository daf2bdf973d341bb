package lattice

// IntervalKey is a member of an interval key lattice: the range of
// integer keys covered by one segment.
type IntervalKey struct {
	element
	keys Interval
}

// IntervalKey creates a segment key factory for the given lattice.
func (elementFactory) IntervalKey(lat *IntervalKeyLattice) func(keys Interval) IntervalKey {
	return func(keys Interval) IntervalKey {
		return IntervalKey{element{lat}, keys}
	}
}

func (k IntervalKey) IntervalKey() IntervalKey {
	return k
}

// KeyVar retrieves the variable denoting the keys of the segment.
func (k IntervalKey) KeyVar() Variable {
	return k.lattice.IntervalKey().key
}

// Keys retrieves the range of keys.
func (k IntervalKey) Keys() Interval {
	return k.keys
}

func (k IntervalKey) String() string {
	return colorize.Key(k.KeyVar().Name()) + " ∈ " + k.keys.String()
}

func (k IntervalKey) IsBot() bool {
	return k.keys.IsBot()
}

func (k IntervalKey) IsTop() bool {
	return k.keys.IsTop()
}

func (k IntervalKey) IsSingleton() bool {
	return k.keys.IsSingleton()
}

// Decomp subtracts the overlap with exclude from the key range, leaving
// at most a range below and a range above the overlap.
func (k IntervalKey) Decomp(exclude KeyWrapper) ([]KeyWrapper, bool) {
	ex, ok := exclude.(IntervalKey)
	if !ok || !k.lattice.Eq(ex.lattice) {
		return nil, false
	}

	if k.IsBot() {
		return []KeyWrapper{}, true
	}
	overlap := k.keys.Meet(ex.keys).Interval()
	if overlap.IsBot() {
		return []KeyWrapper{k}, true
	}

	one := FiniteBound(1)
	res := make([]KeyWrapper, 0, 2)
	if k.keys.low.Lt(overlap.low) {
		res = append(res, IntervalKey{k.element, Interval{low: k.keys.low, high: overlap.low.Minus(one)}})
	}
	if overlap.high.Lt(k.keys.high) {
		res = append(res, IntervalKey{k.element, Interval{low: overlap.high.Plus(one), high: k.keys.high}})
	}
	return res, true
}

// Less orders segments by lower bound, then by upper bound, and finally
// by the name of the key variable.
func (k IntervalKey) Less(o KeyWrapper) bool {
	ok := o.IntervalKey()
	switch {
	case !k.keys.low.Eq(ok.keys.low):
		return k.keys.low.Lt(ok.keys.low)
	case !k.keys.high.Eq(ok.keys.high):
		return k.keys.high.Lt(ok.keys.high)
	}
	return k.KeyVar().Name() < ok.KeyVar().Name()
}

func (k IntervalKey) Eq(e2 Element) bool {
	checkLatticeMatch(k.Lattice(), e2.Lattice(), "=")
	return boundedEq(k, e2)
}

func (k IntervalKey) eq(e2 Element) bool {
	return k.keys.eq(e2.IntervalKey().keys)
}

func (k IntervalKey) Leq(e2 Element) bool {
	checkLatticeMatch(k.Lattice(), e2.Lattice(), "⊑")
	return boundedLeq(k, e2)
}

func (k IntervalKey) leq(e2 Element) bool {
	return k.keys.leq(e2.IntervalKey().keys)
}

func (k IntervalKey) Geq(e2 Element) bool {
	checkLatticeMatch(k.Lattice(), e2.Lattice(), "⊒")
	return boundedLeq(e2, k)
}

func (k IntervalKey) Join(e2 Element) Element {
	checkLatticeMatch(k.Lattice(), e2.Lattice(), "⊔")
	return boundedJoin(k, e2)
}

func (k IntervalKey) join(e2 Element) Element {
	k.keys = k.keys.join(e2.IntervalKey().keys).Interval()
	return k
}

func (k IntervalKey) Meet(e2 Element) Element {
	checkLatticeMatch(k.Lattice(), e2.Lattice(), "⊓")
	return boundedMeet(k, e2)
}

func (k IntervalKey) meet(e2 Element) Element {
	k.keys = k.keys.meet(e2.IntervalKey().keys).Interval()
	return k
}

func (k IntervalKey) Widening(e2 Element) Element {
	checkLatticeMatch(k.Lattice(), e2.Lattice(), "∇")
	return boundedWidening(k, e2)
}

func (k IntervalKey) widening(e2 Element) Element {
	k.keys = k.keys.widening(e2.IntervalKey().keys).Interval()
	return k
}
