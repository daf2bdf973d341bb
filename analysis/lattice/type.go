package lattice

import (
	"go/types"
)

// TypeRank is a rank in the chain of primitive value types.
type TypeRank uint8

const (
	Bool TypeRank = iota
	Int
	Float
	Any
)

func (r TypeRank) String() string {
	switch r {
	case Bool:
		return "Bool"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Any:
		return "Any"
	}
	return "TypeRank(?)"
}

// TypeElement is a member of the type lattice. It is either ⊥,
// or one of the ranks Bool ⊑ Int ⊑ Float ⊑ Any.
type TypeElement struct {
	element
	rank TypeRank
	bot  bool
}

// Type creates the type lattice member for the given rank.
func (elementFactory) Type(r TypeRank) TypeElement {
	return TypeElement{rank: r}
}

// TypeOf abstracts a static type: booleans are Bool, integers are Int,
// floats are Float and everything else is Any.
func (elementFactory) TypeOf(t types.Type) TypeElement {
	if b, ok := t.Underlying().(*types.Basic); ok {
		switch info := b.Info(); {
		case info&types.IsBoolean != 0:
			return TypeElement{rank: Bool}
		case info&types.IsInteger != 0:
			return TypeElement{rank: Int}
		case info&types.IsFloat != 0:
			return TypeElement{rank: Float}
		}
	}
	return TypeElement{rank: Any}
}

// Lattice retrieves the type lattice for any type element.
func (TypeElement) Lattice() Lattice {
	return typeLattice
}

// Type safely converts a type element.
func (e TypeElement) Type() TypeElement {
	return e
}

func (e TypeElement) String() string {
	if e.bot {
		return colorize.Element("⊥")
	}
	return colorize.Element(e.rank.String())
}

// Rank returns the rank of the element. The boolean is false for ⊥,
// which has no rank.
func (e TypeElement) Rank() (TypeRank, bool) {
	if e.bot {
		return 0, false
	}
	return e.rank, true
}

// Height is the distance of the element from ⊥.
func (e TypeElement) Height() int {
	if e.bot {
		return 0
	}
	return int(e.rank) + 1
}

// AsBool forces the element to Bool, bypassing the join.
func (TypeElement) AsBool() TypeElement {
	return TypeElement{rank: Bool}
}

// AsInt forces the element to Int, bypassing the join.
func (TypeElement) AsInt() TypeElement {
	return TypeElement{rank: Int}
}

// AsFloat forces the element to Float, bypassing the join.
func (TypeElement) AsFloat() TypeElement {
	return TypeElement{rank: Float}
}

// AsAny forces the element to Any.
func (TypeElement) AsAny() TypeElement {
	return TypeElement{rank: Any}
}

func (e TypeElement) IsBool() bool {
	return !e.bot && e.rank == Bool
}

func (e TypeElement) IsInt() bool {
	return !e.bot && e.rank == Int
}

func (e TypeElement) IsFloat() bool {
	return !e.bot && e.rank == Float
}

func (e TypeElement) IsBot() bool {
	return e.bot
}

func (e TypeElement) IsTop() bool {
	return !e.bot && e.rank == Any
}

// Eq computes e1 = e2. Performs lattice dynamic type checking.
func (e1 TypeElement) Eq(e2 Element) bool {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "=")
	return boundedEq(e1, e2)
}

func (e1 TypeElement) eq(e2 Element) bool {
	return e1.rank == e2.Type().rank
}

// Leq computes e1 ⊑ e2. Performs lattice dynamic type checking.
func (e1 TypeElement) Leq(e2 Element) bool {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "⊑")
	return boundedLeq(e1, e2)
}

func (e1 TypeElement) leq(e2 Element) bool {
	return e1.rank <= e2.Type().rank
}

// Geq computes e1 ⊒ e2. Performs lattice dynamic type checking.
func (e1 TypeElement) Geq(e2 Element) bool {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "⊒")
	return boundedLeq(e2, e1)
}

// Join computes e1 ⊔ e2. Performs lattice dynamic type checking.
func (e1 TypeElement) Join(e2 Element) Element {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "⊔")
	return boundedJoin(e1, e2)
}

// join takes the higher of the two ranks.
func (e1 TypeElement) join(e2 Element) Element {
	if r := e2.Type().rank; r > e1.rank {
		return TypeElement{rank: r}
	}
	return e1
}

// Meet computes e1 ⊓ e2. Performs lattice dynamic type checking.
func (e1 TypeElement) Meet(e2 Element) Element {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "⊓")
	return boundedMeet(e1, e2)
}

// meet takes the lower of the two ranks.
func (e1 TypeElement) meet(e2 Element) Element {
	if r := e2.Type().rank; r < e1.rank {
		return TypeElement{rank: r}
	}
	return e1
}

// Widening computes e1 ∇ e2. Performs lattice dynamic type checking.
func (e1 TypeElement) Widening(e2 Element) Element {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "∇")
	return boundedWidening(e1, e2)
}

// The chain has finite height, so a join always stabilizes.
func (e1 TypeElement) widening(e2 Element) Element {
	return e1.join(e2)
}
