package lattice

// Assumption is a member of the assumption lattice: a type assumption
// paired with a range assumption.
//
// Unlike a plain product, an assumption is ⊥ as soon as any of its
// components is ⊥: a value cannot be observed if either fact is impossible.
type Assumption struct {
	element
	typ TypeElement
	rng Element
}

// Assumption creates an assumption factory for the given lattice.
// Nil components default to the ⊤ of their lattice.
func (elementFactory) Assumption(lat *AssumptionLattice) func(typ, rng Element) Assumption {
	return func(typ, rng Element) Assumption {
		a := lat.Top().Assumption()
		if typ != nil {
			checkLatticeMatch(typeLattice, typ.Lattice(), "type assumption")
			a.typ = typ.Type()
		}
		if rng != nil {
			checkLatticeMatch(lat.rng, rng.Lattice(), "range assumption")
			a.rng = rng
		}
		return a
	}
}

// AssumptionOf creates a member of the assumption lattice with interval ranges.
func (elementFactory) AssumptionOf(typ TypeElement, rng Interval) Assumption {
	return Assumption{element: element{assumptionLattice}, typ: typ, rng: rng}
}

func (e Assumption) Assumption() Assumption {
	return e
}

// TypeAssumption retrieves the assumed type rank.
func (e Assumption) TypeAssumption() TypeElement {
	return e.typ
}

// RangeAssumption retrieves the assumed range of values.
func (e Assumption) RangeAssumption() Element {
	return e.rng
}

// UpdateType replaces the type assumption.
func (e Assumption) UpdateType(typ TypeElement) Assumption {
	e.typ = typ
	return e
}

// UpdateRange replaces the range assumption.
func (e Assumption) UpdateRange(rng Element) Assumption {
	checkLatticeMatch(e.lattice.Assumption().rng, rng.Lattice(), "range assumption")
	e.rng = rng
	return e
}

func (e Assumption) String() string {
	return "(" + e.typ.String() + ", " + e.rng.String() + ")"
}

// IsBot holds if any of the components is ⊥.
func (e Assumption) IsBot() bool {
	return e.typ.IsBot() || e.rng.IsBot()
}

// IsTop holds if all components are ⊤.
func (e Assumption) IsTop() bool {
	return e.typ.IsTop() && e.rng.IsTop()
}

func (e1 Assumption) Eq(e2 Element) bool {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "=")
	return boundedEq(e1, e2)
}

func (e1 Assumption) eq(e2 Element) bool {
	o := e2.Assumption()
	return boundedEq(e1.typ, o.typ) && boundedEq(e1.rng, o.rng)
}

func (e1 Assumption) Leq(e2 Element) bool {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "⊑")
	return boundedLeq(e1, e2)
}

func (e1 Assumption) leq(e2 Element) bool {
	o := e2.Assumption()
	return boundedLeq(e1.typ, o.typ) && boundedLeq(e1.rng, o.rng)
}

func (e1 Assumption) Geq(e2 Element) bool {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "⊒")
	return boundedLeq(e2, e1)
}

func (e1 Assumption) Join(e2 Element) Element {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "⊔")
	return boundedJoin(e1, e2)
}

func (e1 Assumption) join(e2 Element) Element {
	o := e2.Assumption()
	e1.typ = boundedJoin(e1.typ, o.typ).Type()
	e1.rng = boundedJoin(e1.rng, o.rng)
	return e1
}

func (e1 Assumption) Meet(e2 Element) Element {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "⊓")
	return boundedMeet(e1, e2)
}

func (e1 Assumption) meet(e2 Element) Element {
	o := e2.Assumption()
	e1.typ = boundedMeet(e1.typ, o.typ).Type()
	e1.rng = boundedMeet(e1.rng, o.rng)
	return e1
}

func (e1 Assumption) Widening(e2 Element) Element {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "∇")
	return boundedWidening(e1, e2)
}

func (e1 Assumption) widening(e2 Element) Element {
	o := e2.Assumption()
	e1.typ = boundedWidening(e1.typ, o.typ).Type()
	e1.rng = boundedWidening(e1.rng, o.rng)
	return e1
}
