package lattice

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyStrings(segs []KeyWrapper) []string {
	res := make([]string, 0, len(segs))
	for _, seg := range segs {
		res = append(res, seg.String())
	}
	return res
}

func TestIntervalKeyDecomp(t *testing.T) {
	k := NewVariable("k", types.Typ[types.Int])
	lat := Lattices().IntervalKey(k)
	key := Elements().IntervalKey(lat)
	itv := Elements().IntervalFinite

	tests := []struct {
		name         string
		seg, exclude IntervalKey
		expected     []string
	}{
		{"middle", key(itv(0, 10)), key(itv(3, 5)), []string{"k ∈ [0, 2]", "k ∈ [6, 10]"}},
		{"left", key(itv(0, 10)), key(itv(-5, 3)), []string{"k ∈ [4, 10]"}},
		{"right", key(itv(0, 10)), key(itv(10, 20)), []string{"k ∈ [0, 9]"}},
		{"covered", key(itv(3, 5)), key(itv(0, 10)), []string{}},
		{"disjoint", key(itv(0, 2)), key(itv(5, 7)), []string{"k ∈ [0, 2]"}},
		{"unbounded", lat.Top().IntervalKey(), key(itv(0, 0)), []string{"k ∈ [-∞, -1]", "k ∈ [1, ∞]"}},
		{"bottom", lat.Bot().IntervalKey(), key(itv(0, 0)), []string{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			res, ok := test.seg.Decomp(test.exclude)
			require.True(t, ok)
			assert.Equal(t, test.expected, keyStrings(res))

			for _, r := range res {
				assert.True(t, r.Meet(test.exclude).IsBot(), "%s overlaps %s", r, test.exclude)
				assert.True(t, r.Leq(test.seg), "%s escapes %s", r, test.seg)
			}
		})
	}

	other := Elements().IntervalKey(Lattices().IntervalKey(NewVariable("k", types.Typ[types.Int])))
	_, ok := key(itv(0, 10)).Decomp(other(itv(3, 5)))
	assert.False(t, ok, "keys of distinct variables cannot be compared")

	same := Elements().IntervalKey(Lattices().IntervalKey(k))
	res, ok := key(itv(0, 10)).Decomp(same(itv(3, 5)))
	assert.True(t, ok, "lattices of the same key variable are interchangeable")
	assert.Len(t, res, 2)
}

func TestIntervalKeyOrder(t *testing.T) {
	i := NewVariable("i", types.Typ[types.Int])
	j := NewVariable("j", types.Typ[types.Int])
	ki := Elements().IntervalKey(Lattices().IntervalKey(i))
	kj := Elements().IntervalKey(Lattices().IntervalKey(j))
	itv := Elements().IntervalFinite

	tests := []struct {
		a, b     KeyWrapper
		expected bool
	}{
		{ki(itv(0, 5)), ki(itv(1, 2)), true},
		{ki(itv(1, 2)), ki(itv(0, 5)), false},
		{ki(itv(0, 2)), ki(itv(0, 5)), true},
		{ki(itv(0, 5)), kj(itv(0, 5)), true},
		{kj(itv(0, 5)), ki(itv(0, 5)), false},
		{ki(itv(0, 5)), ki(itv(0, 5)), false},
	}

	for _, test := range tests {
		if res := test.a.Less(test.b); res != test.expected {
			t.Errorf("%s < %s = %v, expected %v", test.a, test.b, res, test.expected)
		}
	}

	assert.True(t, ki(itv(3, 3)).IsSingleton())
	assert.False(t, ki(itv(3, 4)).IsSingleton())
	assert.Same(t, i, ki(itv(0, 1)).KeyVar())
	assert.Equal(t, "i ∈ [ℤ, ℤ]", Lattices().IntervalKey(i).String())
}

func TestCanonicalize(t *testing.T) {
	k := NewVariable("k", types.Typ[types.Int])
	lat := Lattices().IntervalKey(k)
	key := Elements().IntervalKey(lat)
	itv := Elements().IntervalFinite

	segs := []KeyWrapper{
		key(itv(6, 10)),
		lat.Bot().IntervalKey(),
		key(itv(2, 4)),
		key(itv(12, 12)),
		key(itv(0, 3)),
		key(itv(9, 11)),
	}

	res := Canonicalize(segs)
	assert.Equal(t, []string{"k ∈ [0, 4]", "k ∈ [6, 11]", "k ∈ [12, 12]"}, keyStrings(res))
	assert.Equal(t, keyStrings(res), keyStrings(Canonicalize(res)), "canonicalization is idempotent")
	assert.Empty(t, Canonicalize(nil))
}

func TestSubtract(t *testing.T) {
	k := NewVariable("k", types.Typ[types.Int])
	key := Elements().IntervalKey(Lattices().IntervalKey(k))
	itv := Elements().IntervalFinite

	segs := []KeyWrapper{key(itv(0, 4)), key(itv(6, 10)), key(itv(20, 30))}

	res, strong := Subtract(segs, key(itv(3, 7)))
	assert.True(t, strong)
	assert.Equal(t, []string{"k ∈ [0, 2]", "k ∈ [8, 10]", "k ∈ [20, 30]"}, keyStrings(res))

	other := Elements().IntervalKey(Lattices().IntervalKey(NewVariable("j", types.Typ[types.Int])))
	res, strong = Subtract(segs, other(itv(3, 7)))
	assert.False(t, strong)
	assert.Equal(t, keyStrings(segs), keyStrings(res))
}
