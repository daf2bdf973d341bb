package lattice

import (
	"fmt"
	"math"
	"strconv"
)

// Interval is an interval and a member of the interval lattice.
// Any interval consists two interval bounds, `low` and `high`.
type Interval struct {
	element
	low  IntervalBound
	high IntervalBound
}

// Interval creates an interval with possibly infinite bounds.
func (elementFactory) Interval(low IntervalBound, high IntervalBound) Interval {
	return Interval{low: low, high: high}
}

// IntervalFinite creates an interval with finite bounds.
func (elementFactory) IntervalFinite(low int, high int) Interval {
	return Interval{
		low:  FiniteBound(low),
		high: FiniteBound(high),
	}
}

// Constant creates the singleton interval [c, c].
func (elementFactory) Constant(c int) Interval {
	return Interval{low: FiniteBound(c), high: FiniteBound(c)}
}

// Lattice retrieves the interval lattice for any interval.
func (Interval) Lattice() Lattice {
	return intervalLattice
}

func (e Interval) String() string {
	if e.IsBot() {
		return "⊥"
	}
	return "[" + e.low.String() + ", " + e.high.String() + "]"
}

// Interval safely converts an interval.
func (e Interval) Interval() Interval {
	return e
}

// IsBot checks that the interval denotes no integer, i.e. its upper bound
// is strictly below its lower bound.
func (e Interval) IsBot() bool {
	return e.high.Lt(e.low)
}

// IsTop checks that the interval is equal to ⊤ = [-∞, ∞].
func (e Interval) IsTop() bool {
	_, low := e.low.(MinusInfinity)
	_, high := e.high.(PlusInfinity)
	return low && high
}

// IsFinite checks that both bounds are finite.
func (e Interval) IsFinite() bool {
	return !e.IsBot() && !e.low.IsInfinite() && !e.high.IsInfinite()
}

// IsSingleton checks that the interval denotes exactly one integer.
func (e Interval) IsSingleton() bool {
	return e.IsFinite() && e.low.Eq(e.high)
}

// Contains checks whether c lies within the interval.
func (e Interval) Contains(c int) bool {
	return e.low.Leq(FiniteBound(c)) && FiniteBound(c).Leq(e.high)
}

// Eq computes m = o. Performs lattice dynamic type checking.
func (e1 Interval) Eq(e2 Element) bool {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "=")
	return boundedEq(e1, e2)
}

// eq computes m = o.
func (e1 Interval) eq(e2 Element) bool {
	o := e2.Interval()
	return e1.low.Eq(o.low) && e1.high.Eq(o.high)
}

// Leq computes m ⊑ o. Performs lattice dynamic type checking.
func (e1 Interval) Leq(e2 Element) bool {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "⊑")
	return boundedLeq(e1, e2)
}

// leq computes m ⊑ o.
func (e1 Interval) leq(e2 Element) bool {
	o := e2.Interval()
	return e1.low.Geq(o.low) && e1.high.Leq(o.high)
}

// Geq computes m ⊒ o. Performs lattice dynamic type checking.
func (e1 Interval) Geq(e2 Element) bool {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "⊒")
	return boundedLeq(e2, e1)
}

// Join computes m ⊔ o. Performs lattice dynamic type checking.
func (e1 Interval) Join(e2 Element) Element {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "⊔")
	return boundedJoin(e1, e2)
}

// join computes m ⊔ o.
// The resulting interval takes the lowest of the lower bounds,
// and the highest of the upper bounds.
func (e1 Interval) join(e2 Element) Element {
	o := e2.Interval()
	return Interval{low: e1.low.Min(o.low), high: e1.high.Max(o.high)}
}

// Meet computes m ⊓ o. Performs lattice dynamic type checking.
func (e1 Interval) Meet(e2 Element) Element {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "⊓")
	return boundedMeet(e1, e2)
}

// meet computes m ⊓ o. Disjoint intervals meet at ⊥.
func (e1 Interval) meet(e2 Element) Element {
	o := e2.Interval()
	res := Interval{low: e1.low.Max(o.low), high: e1.high.Min(o.high)}
	if res.IsBot() {
		return intervalLattice.Bot()
	}
	return res
}

// Widening computes m ∇ o. Performs lattice dynamic type checking.
func (e1 Interval) Widening(e2 Element) Element {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "∇")
	return boundedWidening(e1, e2)
}

// widening computes m ∇ o. A bound that is not stable is pushed
// to the matching infinity:
//
//	[l1, h1] ∇ [l2, h2] = [l2 < l1 ? -∞ : l1, h2 > h1 ? ∞ : h1]
//
// Every bound moves at most once, so ascending chains stabilize
// after at most two widening steps.
func (e1 Interval) widening(e2 Element) Element {
	o := e2.Interval()
	low, high := e1.low, e1.high
	if o.low.Lt(low) {
		low = MinusInfinity{}
	}
	if o.high.Gt(high) {
		high = PlusInfinity{}
	}
	return Interval{low: low, high: high}
}

// Plus computes [l1, h1] + [l2, h2] = [l1 + l2, h1 + h2].
func (e1 Interval) Plus(e2 Interval) Interval {
	if e1.IsBot() || e2.IsBot() {
		return intervalLattice.Bot().Interval()
	}
	return saturate(e1.low.Plus(e2.low), e1.high.Plus(e2.high))
}

// Neg computes -[l, h] = [-h, -l].
func (e Interval) Neg() Interval {
	if e.IsBot() {
		return e
	}
	return saturate(FiniteBound(0).Minus(e.high), FiniteBound(0).Minus(e.low))
}

// Minus computes [l1, h1] - [l2, h2] = [l1 - h2, h1 - l2].
func (e1 Interval) Minus(e2 Interval) Interval {
	return e1.Plus(e2.Neg())
}

// Mult computes the product of two intervals. Products involving
// infinite bounds are approximated by ⊤, unless one of the factors is [0, 0].
func (e1 Interval) Mult(e2 Interval) Interval {
	switch {
	case e1.IsBot() || e2.IsBot():
		return intervalLattice.Bot().Interval()
	case e1.IsSingleton() && e1.Low() == 0:
		return e1
	case e2.IsSingleton() && e2.Low() == 0:
		return e2
	case !e1.IsFinite() || !e2.IsFinite():
		return intervalLattice.Top().Interval()
	}

	l1, h1 := e1.GetFiniteBounds()
	l2, h2 := e2.GetFiniteBounds()
	products := []IntervalBound{mult(l1, l2), mult(l1, h2), mult(h1, l2), mult(h1, h2)}
	low, high := products[0], products[0]
	for _, p := range products[1:] {
		low, high = low.Min(p), high.Max(p)
	}
	return saturate(low, high)
}

// saturate builds an interval from bounds computed with overflow. A lower
// bound that overflowed to ∞ is kept at the largest finite bound, and an
// upper bound that overflowed to -∞ at the smallest one.
func saturate(low, high IntervalBound) Interval {
	if _, ok := low.(PlusInfinity); ok {
		low = FiniteBound(math.MaxInt)
	}
	if _, ok := high.(MinusInfinity); ok {
		high = FiniteBound(math.MinInt)
	}
	return Interval{low: low, high: high}
}

// mult computes a * b. A product that overflows saturates to the infinity
// matching its sign.
func mult(a, b int) IntervalBound {
	p := a * b
	if a != 0 && (p/a != b || (a == -1 && b == math.MinInt)) {
		if (a < 0) != (b < 0) {
			return MinusInfinity{}
		}
		return PlusInfinity{}
	}
	return FiniteBound(p)
}

// GetFiniteBounds unpacks the interval bounds, if finite, and panics otherwise.
func (i Interval) GetFiniteBounds() (int, int) {
	if i.low.IsInfinite() || i.high.IsInfinite() {
		panic(fmt.Sprintf("Interval %s does not have finite bounds", i))
	}
	return (int)(i.low.(FiniteBound)), (int)(i.high.(FiniteBound))
}

// Low return the lower bound as an integer, if finite, and panics otherwise.
func (i Interval) Low() int {
	if i.low.IsInfinite() {
		panic(fmt.Sprintf("Interval %s does not have finite lower bound", i))
	}
	return (int)(i.low.(FiniteBound))
}

// High returns the upper bound as an integer, if finite, and panics otherwise.
func (i Interval) High() int {
	if i.high.IsInfinite() {
		panic(fmt.Sprintf("Interval %s does not have finite upper bound", i))
	}
	return (int)(i.high.(FiniteBound))
}

// LowBound exposes the lower bound.
func (i Interval) LowBound() IntervalBound {
	return i.low
}

// HighBound exposes the upper bound.
func (i Interval) HighBound() IntervalBound {
	return i.high
}

// IntervalBound is an interface implemented by all interval lattice bounds i.e.,
// any FiniteBound value, PlusInfinity and MinusInfinity.
type IntervalBound interface {
	String() string

	// IsInfinite checks whether the interval bound is finite.
	IsInfinite() bool

	// Eq checks for interval bound equality.
	Eq(IntervalBound) bool
	// Leq computes b1 ≤ b2. The semantics is -∞ ≤ c ≤ ∞, where c ∈ ℤ.
	Leq(IntervalBound) bool
	// Geq computes b1 ≥ b2. The semantics is ∞ ≥ c ≥ -∞, where c ∈ ℤ.
	Geq(IntervalBound) bool
	// Lt computes b1 < b2. The semantics is -∞ < c < ∞, where c ∈ ℤ.
	Lt(IntervalBound) bool
	// Gt computes b1 > b2. The semantics is -∞ < c < ∞, where c ∈ ℤ.
	Gt(IntervalBound) bool

	// Plus computes b1 + b2. Adding opposite infinities panics.
	Plus(IntervalBound) IntervalBound
	// Minus computes b1 - b2. Subtracting equal infinities panics.
	Minus(IntervalBound) IntervalBound
	// Max computes max(b1, b2).
	Max(IntervalBound) IntervalBound
	// Min computes min(b1, b2).
	Min(IntervalBound) IntervalBound
}

type (
	// FiniteBound is used to represent finite limits of an interval value.
	FiniteBound int
	// PlusInfinity represents ∞.
	PlusInfinity struct{}
	// MinusInfinity represents -∞.
	MinusInfinity struct{}
)

// IsInfinite is false for the finite bound.
func (FiniteBound) IsInfinite() bool {
	return false
}

func (b FiniteBound) String() string {
	return colorize.Element(strconv.Itoa((int)(b)))
}

// Eq compares for equality with another bound. Two finite bounds
// are equal if their underlying values are equal.
func (b1 FiniteBound) Eq(b2 IntervalBound) bool {
	b2f, ok := b2.(FiniteBound)
	return ok && b1 == b2f
}

func (b1 FiniteBound) Leq(b2 IntervalBound) bool {
	switch b2 := b2.(type) {
	case FiniteBound:
		return b1 <= b2
	case PlusInfinity:
		return true
	}
	return false
}

func (b1 FiniteBound) Geq(b2 IntervalBound) bool {
	switch b2 := b2.(type) {
	case FiniteBound:
		return b1 >= b2
	case MinusInfinity:
		return true
	}
	return false
}

func (b1 FiniteBound) Lt(b2 IntervalBound) bool {
	switch b2 := b2.(type) {
	case FiniteBound:
		return b1 < b2
	case PlusInfinity:
		return true
	}
	return false
}

func (b1 FiniteBound) Gt(b2 IntervalBound) bool {
	switch b2 := b2.(type) {
	case FiniteBound:
		return b1 > b2
	case MinusInfinity:
		return true
	}
	return false
}

// Plus computes b1 + b2. The semantics of plus is:
//
//	.--------------------.
//	|   b2   |  b1 + b2  |
//	|========|===========|
//	|   ∈ ℤ  |  b1 + b2  |
//	|--------|-----------|
//	|    ∞   |     ∞     |
//	|--------|-----------|
//	|   -∞   |    -∞     |
//	 --------------------
//
// A finite sum that overflows saturates to ∞ or -∞.
func (b1 FiniteBound) Plus(b2 IntervalBound) IntervalBound {
	switch b2 := b2.(type) {
	case FiniteBound:
		sum := b1 + b2
		switch {
		case b2 > 0 && sum < b1:
			return PlusInfinity{}
		case b2 < 0 && sum > b1:
			return MinusInfinity{}
		}
		return sum
	case PlusInfinity:
		return PlusInfinity{}
	case MinusInfinity:
		return MinusInfinity{}
	}
	panic(errPatternMatch(b2))
}

// Minus computes b1 - b2. The semantics of minus is:
//
//	.--------------------.
//	|   b2   |  b1 - b2  |
//	|========|===========|
//	|   ∈ ℤ  |  b1 - b2  |
//	|--------|-----------|
//	|    ∞   |    -∞     |
//	|--------|-----------|
//	|   -∞   |     ∞     |
//	 --------------------
//
// A finite difference that overflows saturates to ∞ or -∞.
func (b1 FiniteBound) Minus(b2 IntervalBound) IntervalBound {
	switch b2 := b2.(type) {
	case FiniteBound:
		diff := b1 - b2
		switch {
		case b2 < 0 && diff < b1:
			return PlusInfinity{}
		case b2 > 0 && diff > b1:
			return MinusInfinity{}
		}
		return diff
	case PlusInfinity:
		return MinusInfinity{}
	case MinusInfinity:
		return PlusInfinity{}
	}
	panic(errPatternMatch(b2))
}

func (b1 FiniteBound) Max(b2 IntervalBound) IntervalBound {
	if b1.Lt(b2) {
		return b2
	}
	return b1
}

func (b1 FiniteBound) Min(b2 IntervalBound) IntervalBound {
	if b1.Gt(b2) {
		return b2
	}
	return b1
}

// IsInfinite is true for ∞.
func (PlusInfinity) IsInfinite() bool {
	return true
}

func (PlusInfinity) String() string {
	return colorize.Element("∞")
}

func (PlusInfinity) Eq(b2 IntervalBound) bool {
	_, ok := b2.(PlusInfinity)
	return ok
}

func (b1 PlusInfinity) Leq(b2 IntervalBound) bool {
	return b1.Eq(b2)
}

// Geq computes ∞ ≥ b. It is always true as ∞ is the largest possible bound.
func (PlusInfinity) Geq(IntervalBound) bool {
	return true
}

// Lt computes ∞ < b. It is always false as ∞ is the largest possible bound.
func (PlusInfinity) Lt(IntervalBound) bool {
	return false
}

func (b1 PlusInfinity) Gt(b2 IntervalBound) bool {
	return !b1.Eq(b2)
}

// Plus computes ∞ + b, which panics for b = -∞.
func (PlusInfinity) Plus(b2 IntervalBound) IntervalBound {
	if _, ok := b2.(MinusInfinity); ok {
		panic("∞ - ∞")
	}
	return PlusInfinity{}
}

// Minus computes ∞ - b, which panics for b = ∞.
func (PlusInfinity) Minus(b2 IntervalBound) IntervalBound {
	if _, ok := b2.(PlusInfinity); ok {
		panic("∞ - ∞")
	}
	return PlusInfinity{}
}

func (PlusInfinity) Max(IntervalBound) IntervalBound {
	return PlusInfinity{}
}

func (PlusInfinity) Min(b2 IntervalBound) IntervalBound {
	return b2
}

// IsInfinite is true for -∞.
func (MinusInfinity) IsInfinite() bool {
	return true
}

func (MinusInfinity) String() string {
	return colorize.Element("-∞")
}

func (MinusInfinity) Eq(b2 IntervalBound) bool {
	_, ok := b2.(MinusInfinity)
	return ok
}

// Leq computes -∞ ≤ b. It is always true as -∞ is the smallest possible bound.
func (MinusInfinity) Leq(IntervalBound) bool {
	return true
}

func (b1 MinusInfinity) Geq(b2 IntervalBound) bool {
	return b1.Eq(b2)
}

func (b1 MinusInfinity) Lt(b2 IntervalBound) bool {
	return !b1.Eq(b2)
}

// Gt computes -∞ > b. It is always false as -∞ is the smallest possible bound.
func (MinusInfinity) Gt(IntervalBound) bool {
	return false
}

// Plus computes -∞ + b, which panics for b = ∞.
func (MinusInfinity) Plus(b IntervalBound) IntervalBound {
	if _, ok := b.(PlusInfinity); ok {
		panic("-∞ + ∞")
	}
	return MinusInfinity{}
}

// Minus computes -∞ - b, which panics for b = -∞.
func (MinusInfinity) Minus(b IntervalBound) IntervalBound {
	if _, ok := b.(MinusInfinity); ok {
		panic("-∞ - (-∞)")
	}
	return MinusInfinity{}
}

func (MinusInfinity) Max(b IntervalBound) IntervalBound {
	return b
}

func (MinusInfinity) Min(IntervalBound) IntervalBound {
	return MinusInfinity{}
}
