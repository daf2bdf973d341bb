package lattice

import (
	"math"
	"testing"
)

func TestIntervalJoin(t *testing.T) {
	lat := Create().Lattice().Interval()
	int := Create().Element().Interval

	type b = FiniteBound
	type P = PlusInfinity
	type M = MinusInfinity

	tests := []struct {
		a, b, expected Element
	}{
		{lat.Bot(), lat.Bot(), lat.Bot()},
		{lat.Bot(), lat.Top(), lat.Top()},
		{lat.Top(), lat.Bot(), lat.Top()},
		{lat.Top(), lat.Top(), lat.Top()},
		{lat.Bot(), int(b(0), b(0)), int(b(0), b(0))},
		{int(b(0), b(0)), lat.Bot(), int(b(0), b(0))},
		{int(b(0), b(0)), int(b(1), b(1)), int(b(0), b(1))},
		{int(b(1), b(1)), int(b(0), b(0)), int(b(0), b(1))},
		{int(b(1), b(2)), int(b(3), b(4)), int(b(1), b(4))},
		{int(b(-1), b(0)), int(b(0), b(1)), int(b(-1), b(1))},
		{int(b(0), b(1)), int(b(-1), b(0)), int(b(-1), b(1))},
		{int(b(0), b(1024)), int(b(0), P{}), int(b(0), P{})},
		{int(b(0), P{}), int(b(0), b(1024)), int(b(0), P{})},
		{int(b(-1024), b(0)), int(b(0), P{}), int(b(-1024), P{})},
		{int(M{}, b(0)), int(b(-1024), b(0)), int(M{}, b(0))},
		{int(b(-1024), b(0)), int(M{}, b(0)), int(M{}, b(0))},
		{int(M{}, b(-1024)), int(b(1024), P{}), lat.Top()},
	}

	for _, test := range tests {
		res := test.a.Join(test.b)
		if !res.Eq(test.expected) {
			t.Errorf("%s ⊔ %s = %s, expected %s\n", test.a, test.b, res, test.expected)
		} else {
			t.Logf("%s ⊔ %s = %s\n", test.a, test.b, res)
		}
	}
}

func TestIntervalMeet(t *testing.T) {
	lat := Create().Lattice().Interval()
	int := Create().Element().Interval

	type b = FiniteBound
	type P = PlusInfinity
	type M = MinusInfinity

	tests := []struct {
		a, b, expected Element
	}{
		{lat.Bot(), lat.Top(), lat.Bot()},
		{lat.Top(), lat.Top(), lat.Top()},
		{lat.Top(), int(b(0), b(3)), int(b(0), b(3))},
		{int(b(0), b(10)), int(b(3), b(5)), int(b(3), b(5))},
		{int(b(0), b(10)), int(b(5), P{}), int(b(5), b(10))},
		{int(M{}, b(2)), int(b(0), P{}), int(b(0), b(2))},
		{int(b(0), b(2)), int(b(3), b(5)), lat.Bot()},
		{int(b(0), b(2)), int(b(2), b(5)), int(b(2), b(2))},
	}

	for _, test := range tests {
		res := test.a.Meet(test.b)
		if !res.Eq(test.expected) {
			t.Errorf("%s ⊓ %s = %s, expected %s\n", test.a, test.b, res, test.expected)
		} else {
			t.Logf("%s ⊓ %s = %s\n", test.a, test.b, res)
		}
	}
}

func TestIntervalWidening(t *testing.T) {
	lat := Create().Lattice().Interval()
	int := Create().Element().Interval

	type b = FiniteBound
	type P = PlusInfinity
	type M = MinusInfinity

	tests := []struct {
		a, b, expected Element
	}{
		{lat.Bot(), int(b(0), b(0)), int(b(0), b(0))},
		{int(b(0), b(0)), int(b(0), b(0)), int(b(0), b(0))},
		{int(b(0), b(0)), int(b(0), b(1)), int(b(0), P{})},
		{int(b(0), b(0)), int(b(-1), b(0)), int(M{}, b(0))},
		{int(b(0), b(5)), int(b(-1), b(6)), lat.Top()},
		{int(b(0), b(5)), int(b(1), b(4)), int(b(0), b(5))},
		{int(b(0), P{}), int(b(0), b(7)), int(b(0), P{})},
	}

	for _, test := range tests {
		res := test.a.Widening(test.b)
		if !res.Eq(test.expected) {
			t.Errorf("%s ∇ %s = %s, expected %s\n", test.a, test.b, res, test.expected)
		} else {
			t.Logf("%s ∇ %s = %s\n", test.a, test.b, res)
		}
	}
}

func TestIntervalWideningStabilizes(t *testing.T) {
	int := Create().Element().IntervalFinite

	// An ascending chain [0, 0] ⊑ [0, 1] ⊑ [-1, 2] ⊑ ...
	acc := Element(int(0, 0))
	steps := 0
	for i := 1; i <= 100; i++ {
		next := acc.Widening(int(-i/2, i))
		if next.Eq(acc) {
			break
		}
		steps++
		acc = next
	}

	if steps > 2 {
		t.Errorf("Widening took %d steps to stabilize at %s", steps, acc)
	}
	if !acc.IsTop() {
		t.Errorf("Expected widening to stabilize at ⊤, got %s", acc)
	}
}

func TestIntervalArithmetic(t *testing.T) {
	lat := Create().Lattice().Interval()
	int := Create().Element().Interval

	type b = FiniteBound
	type P = PlusInfinity
	type M = MinusInfinity

	bot := lat.Bot().Interval()
	top := lat.Top().Interval()

	tests := []struct {
		op             string
		a, b, expected Interval
	}{
		{"+", int(b(0), b(10)), int(b(5), b(20)), int(b(5), b(30))},
		{"+", int(b(0), P{}), int(b(-5), b(5)), int(b(-5), P{})},
		{"+", bot, int(b(0), b(1)), bot},
		{"-", int(b(0), b(10)), int(b(5), b(20)), int(b(-20), b(5))},
		{"-", int(M{}, b(0)), int(b(1), b(1)), int(M{}, b(-1))},
		{"*", int(b(-2), b(3)), int(b(4), b(5)), int(b(-10), b(15))},
		{"*", int(b(-2), b(-1)), int(b(-3), b(-2)), int(b(2), b(6))},
		{"*", int(b(0), b(0)), top, int(b(0), b(0))},
		{"*", int(b(1), P{}), int(b(2), b(2)), top},
		{"*", int(b(1), b(2)), bot, bot},
	}

	for _, test := range tests {
		var res Interval
		switch test.op {
		case "+":
			res = test.a.Plus(test.b)
		case "-":
			res = test.a.Minus(test.b)
		case "*":
			res = test.a.Mult(test.b)
		}
		if !res.Eq(test.expected) {
			t.Errorf("%s %s %s = %s, expected %s\n", test.a, test.op, test.b, res, test.expected)
		}
	}

	if neg := int(b(-3), P{}).Neg(); !neg.Eq(int(M{}, b(3))) {
		t.Errorf("-[-3, ∞] = %s, expected [-∞, 3]", neg)
	}
}

func TestIntervalArithmeticOverflow(t *testing.T) {
	int := Create().Element().Interval

	type b = FiniteBound
	type P = PlusInfinity
	type M = MinusInfinity

	tests := []struct {
		op             string
		a, b, expected Interval
	}{
		{"+", int(b(math.MaxInt-1), b(math.MaxInt)), int(b(0), b(1)), int(b(math.MaxInt-1), P{})},
		{"+", int(b(math.MaxInt), b(math.MaxInt)), int(b(1), b(1)), int(b(math.MaxInt), P{})},
		{"+", int(b(math.MinInt), b(0)), int(b(-1), b(0)), int(M{}, b(0))},
		{"-", int(b(math.MinInt), b(math.MinInt)), int(b(1), b(1)), int(M{}, b(math.MinInt))},
		{"-", int(b(0), b(0)), int(b(math.MinInt), b(0)), int(b(0), P{})},
		{"*", int(b(math.MaxInt/2+1), b(math.MaxInt/2+1)), int(b(2), b(2)), int(b(math.MaxInt), P{})},
		{"*", int(b(-3), b(math.MaxInt)), int(b(2), b(2)), int(b(-6), P{})},
		{"*", int(b(math.MinInt), b(math.MinInt)), int(b(-1), b(-1)), int(b(math.MaxInt), P{})},
		{"*", int(b(-1), b(-1)), int(b(math.MinInt), b(0)), int(b(0), P{})},
		{"*", int(b(math.MaxInt), b(math.MaxInt)), int(b(-2), b(1)), int(M{}, b(math.MaxInt))},
	}

	for _, test := range tests {
		var res Interval
		switch test.op {
		case "+":
			res = test.a.Plus(test.b)
		case "-":
			res = test.a.Minus(test.b)
		case "*":
			res = test.a.Mult(test.b)
		}
		if res.IsBot() {
			t.Errorf("%s %s %s = ⊥, expected %s\n", test.a, test.op, test.b, test.expected)
		} else if !res.Eq(test.expected) {
			t.Errorf("%s %s %s = %s, expected %s\n", test.a, test.op, test.b, res, test.expected)
		}
	}

	if neg := int(b(math.MinInt), b(math.MinInt)).Neg(); !neg.Eq(int(b(math.MaxInt), P{})) {
		t.Errorf("-[MinInt, MinInt] = %s, expected [MaxInt, ∞]", neg)
	}
}

func TestIntervalPredicates(t *testing.T) {
	int := Create().Element().Interval

	type b = FiniteBound
	type P = PlusInfinity

	if !int(b(3), b(3)).IsSingleton() {
		t.Error("[3, 3] should be a singleton")
	}
	if int(b(3), b(4)).IsSingleton() {
		t.Error("[3, 4] should not be a singleton")
	}
	if int(b(3), P{}).IsSingleton() || int(b(3), P{}).IsFinite() {
		t.Error("[3, ∞] should be neither finite nor a singleton")
	}
	if !int(b(5), b(3)).IsBot() {
		t.Error("[5, 3] should be ⊥")
	}
	if !int(b(0), b(9)).Contains(9) || int(b(0), b(9)).Contains(10) {
		t.Error("Containment in [0, 9] is wrong")
	}
}
