package lattice

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recoverError runs f and returns the error it panicked with, if any.
func recoverError(f func()) (err error) {
	defer func() {
		if r, ok := recover().(error); ok {
			err = r
		}
	}()
	f()
	return nil
}

func TestInputAssumptionJoin(t *testing.T) {
	lat := Create().Lattice().InputAssumption()
	seq := Create().Element().InputAssumptionOf
	asm := Create().Element().AssumptionOf
	typ := Create().Element().Type
	itv := Create().Element().IntervalFinite
	placeholder := Create().Element().Placeholder(lat)

	boolean := Leaf(asm(typ(Bool), itv(0, 1)))

	tests := []struct {
		name           string
		a, b, expected Element
	}{
		{
			"position-wise",
			seq(1, Leaf(asm(typ(Int), itv(0, 5))), boolean),
			seq(1, Leaf(asm(typ(Int), itv(3, 9))), boolean),
			seq(1, Leaf(asm(typ(Int), itv(0, 9))), boolean),
		},
		{
			"iterations differ",
			seq(3, Leaf(asm(typ(Int), itv(0, 5)))),
			seq(5, Leaf(asm(typ(Int), itv(0, 5)))),
			lat.Top(),
		},
		{
			"placeholder on the left",
			placeholder,
			seq(2, boolean),
			seq(2, boolean),
		},
		{
			"placeholder on the right",
			seq(2, boolean),
			placeholder,
			seq(2, boolean),
		},
		{
			"placeholder position",
			seq(1, Block(placeholder), boolean),
			seq(1, Block(seq(4, boolean)), boolean),
			seq(1, Block(seq(4, boolean)), boolean),
		},
		{
			"kinds differ",
			seq(1, boolean),
			seq(1, Block(seq(4, boolean))),
			lat.Top(),
		},
		{
			"nested blocks",
			seq(1, Block(seq(2, Leaf(asm(typ(Int), itv(0, 0)))))),
			seq(1, Block(seq(2, Leaf(asm(typ(Float), itv(7, 8)))))),
			seq(1, Block(seq(2, Leaf(asm(typ(Float), itv(0, 8)))))),
		},
		{
			"fold leading blocks",
			seq(1,
				Block(seq(2, Leaf(asm(typ(Int), itv(0, 1))))),
				Block(seq(2, Leaf(asm(typ(Int), itv(5, 6))))),
				boolean),
			seq(1, Block(placeholder), boolean),
			seq(1, Block(seq(2, Leaf(asm(typ(Int), itv(0, 6))))), boolean),
		},
		{
			"fold on the right",
			seq(1, Block(placeholder), boolean),
			seq(1,
				Block(seq(2, Leaf(asm(typ(Int), itv(0, 1))))),
				Block(seq(2, Leaf(asm(typ(Int), itv(5, 6))))),
				boolean),
			seq(1, Block(seq(2, Leaf(asm(typ(Int), itv(0, 6))))), boolean),
		},
		{
			"lengths differ without placeholder",
			seq(1, boolean),
			seq(1, boolean, boolean),
			lat.Top(),
		},
		{
			"bottom",
			lat.Bot(),
			seq(1, boolean),
			seq(1, boolean),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			res := test.a.Join(test.b)
			if !res.Eq(test.expected) {
				t.Errorf("%s ⊔ %s = %s, expected %s\n", test.a, test.b, res, test.expected)
			} else {
				t.Logf("%s ⊔ %s = %s\n", test.a, test.b, res)
			}
		})
	}
}

func TestInputAssumptionOrder(t *testing.T) {
	lat := Create().Lattice().InputAssumption()
	seq := Create().Element().InputAssumptionOf
	asm := Create().Element().AssumptionOf
	typ := Create().Element().Type
	itv := Create().Element().IntervalFinite
	placeholder := Create().Element().Placeholder(lat)

	small := seq(1, Leaf(asm(typ(Int), itv(0, 5))))
	large := seq(1, Leaf(asm(typ(Int), itv(0, 9))))

	tests := []struct {
		a, b     Element
		expected bool
	}{
		{small, large, true},
		{large, small, false},
		{placeholder, small, true},
		{small, placeholder, false},
		{small, seq(2, Leaf(asm(typ(Int), itv(0, 5)))), false},
		{small, seq(1, Leaf(asm(typ(Int), itv(0, 5))), Leaf(asm(typ(Int), itv(0, 5)))), false},
		{seq(1, Block(placeholder)), seq(1, Block(small)), true},
		{seq(1, Block(small)), seq(1, Block(placeholder)), false},
		{lat.Bot(), small, true},
		{small, lat.Top(), true},
		{lat.Top(), small, false},
	}

	for _, test := range tests {
		if res := test.a.Leq(test.b); res != test.expected {
			t.Errorf("%s ⊑ %s = %v, expected %v", test.a, test.b, res, test.expected)
		}
	}
}

func TestInputAssumptionEqIgnoresMarkers(t *testing.T) {
	seq := Create().Element().InputAssumptionOf
	asm := Create().Element().AssumptionOf(Create().Element().Type(Int), Create().Element().Constant(3))

	a := seq(1).PrependLoop(2, Leaf(asm))
	b := seq(1, Block(seq(2, Leaf(asm)))).WithCondition("x < 10")

	assert.True(t, a.Entry(0).block.IsLoop())
	assert.False(t, b.Entry(0).block.IsLoop())
	assert.Equal(t, "x < 10", b.Condition())
	assert.True(t, a.Eq(b))
}

func TestInputAssumptionPrepend(t *testing.T) {
	lat := Create().Lattice().InputAssumption()
	seq := Create().Element().InputAssumptionOf
	asm := Create().Element().AssumptionOf
	typ := Create().Element().Type
	c := Create().Element().Constant

	x, y, z := asm(typ(Int), c(1)), asm(typ(Int), c(2)), asm(typ(Bool), c(0))

	res := seq(1, Leaf(z)).PrependAssumptions(x, y)
	require.Equal(t, 3, res.Len())
	for i, expected := range []Assumption{x, y, z} {
		leaf, ok := res.Entry(i).AsLeaf()
		require.True(t, ok)
		assert.True(t, leaf.Eq(expected), "position %d: %s, expected %s", i, leaf, expected)
	}

	res = res.PrependLoop(3, Leaf(z))
	require.Equal(t, 4, res.Len())
	block, ok := res.Entry(0).AsBlock()
	require.True(t, ok)
	assert.True(t, block.IsLoop())
	assert.Equal(t, Iterations(3), block.Iterations())

	top := lat.Top().InputAssumption()
	assert.True(t, top.PrependAssumption(x).IsTop())
	assert.True(t, top.PrependLoop(2, Leaf(x)).IsTop())
	assert.True(t, lat.Bot().InputAssumption().PrependAssumption(x).IsBot())
}

func TestInputAssumptionUnsupported(t *testing.T) {
	seq := Create().Element().InputAssumptionOf
	a := seq(1)

	err := recoverError(func() { a.Meet(a) })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)

	err = recoverError(func() { a.Widening(a) })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestInputAssumptionString(t *testing.T) {
	lat := Create().Lattice().InputAssumption()
	seq := Create().Element().InputAssumptionOf
	asm := Create().Element().AssumptionOf
	typ := Create().Element().Type
	itv := Create().Element().IntervalFinite

	elems := []InputAssumption{
		lat.Bot().InputAssumption(),
		lat.Top().InputAssumption(),
		Create().Element().Placeholder(lat),
		seq(1),
		seq(1, Leaf(asm(typ(Int), itv(0, 10))), Leaf(asm(typ(Bool), itv(0, 1)))),
		seq(3, Leaf(asm(typ(Float), itv(-2, 2)))),
		seq(1, Leaf(asm(typ(Int), itv(0, 0)))).PrependLoop(4, Leaf(asm(typ(Bool), itv(1, 1)))),
	}

	var out bytes.Buffer
	for _, e := range elems {
		fmt.Fprintln(&out, e)
	}
	goldie.New(t).Assert(t, t.Name(), out.Bytes())
}
