package lattice

import (
	"bytes"
	"fmt"
	"go/types"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeFixture struct {
	lat     *StoreLattice
	x, y, b Variable
	mk      func(typ TypeRank, low, high int) Assumption
}

func newStoreFixture() storeFixture {
	asm := Lattices().Assumption()
	lat := Lattices().Store().
		Bind(types.Typ[types.Int], asm).
		Bind(types.Typ[types.Bool], asm)

	return storeFixture{
		lat: lat,
		x:   NewVariable("x", types.Typ[types.Int]),
		y:   NewVariable("y", types.Typ[types.Int]),
		b:   NewVariable("b", types.Typ[types.Bool]),
		mk: func(typ TypeRank, low, high int) Assumption {
			return Elements().AssumptionOf(Elements().Type(typ), Elements().IntervalFinite(low, high))
		},
	}
}

func (f storeFixture) store(t *testing.T, vars ...Variable) Store {
	s, err := Elements().Store(f.lat, vars...)
	require.NoError(t, err)
	return s
}

func TestStoreCreate(t *testing.T) {
	f := newStoreFixture()
	s := f.store(t, f.x, f.y, f.b, f.x)

	assert.Equal(t, 3, s.Size())
	assert.True(t, s.IsTop())
	assert.False(t, s.IsBot())
	assert.Equal(t, []Variable{f.b, f.x, f.y}, s.Variables())

	e, ok := s.Get(f.x)
	require.True(t, ok)
	assert.True(t, e.Eq(Lattices().Assumption().Top()))

	str := NewVariable("s", types.Typ[types.String])
	_, err := Elements().Store(f.lat, f.x, str)
	assert.ErrorIs(t, err, ErrMissingLattice)
}

func TestStoreRegistry(t *testing.T) {
	lat := Lattices().Store().Bind(types.NewPointer(types.Typ[types.Int]), Lattices().Interval())

	res, ok := lat.LatticeFor(types.NewPointer(types.Typ[types.Int]))
	require.True(t, ok, "identical types should share a registration")
	assert.True(t, res.Eq(Lattices().Interval()))

	_, ok = lat.LatticeFor(types.Typ[types.Int])
	assert.False(t, ok)

	other := Lattices().Store().Bind(types.NewPointer(types.Typ[types.Int]), Lattices().Interval())
	assert.True(t, lat.Eq(other))
	assert.False(t, lat.Eq(Lattices().Store()))

	err := recoverError(func() { lat.Bot() })
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestStoreEnvironment(t *testing.T) {
	f := newStoreFixture()
	s := f.store(t, f.x)

	_, err := s.AddVar(f.x)
	assert.ErrorIs(t, err, ErrVariableTracked)

	_, err = s.AddVar(NewVariable("f", types.Typ[types.Float64]))
	assert.ErrorIs(t, err, ErrMissingLattice)

	s2, err := s.AddVar(f.y)
	require.NoError(t, err)
	assert.True(t, s2.Has(f.y))
	assert.False(t, s.Has(f.y), "stores are persistent")

	assert.True(t, s.RemoveVar(f.y).Eq(s), "removing an untracked variable is a no-op")
	assert.False(t, s2.RemoveVar(f.y).Has(f.y))

	s2 = s2.Update(f.x, f.mk(Int, 0, 10))
	s3 := s2.InvalidateVar(f.x)
	e, _ := s3.Get(f.x)
	assert.True(t, e.IsTop())
	assert.True(t, s3.InvalidateVar(f.b).Eq(s3), "invalidating an untracked variable is a no-op")

	err = recoverError(func() { s.Update(f.b, f.mk(Bool, 0, 1)) })
	assert.ErrorIs(t, err, errInternal)
}

func TestStorePointwise(t *testing.T) {
	f := newStoreFixture()
	s := f.store(t, f.x, f.b)

	s1 := s.Update(f.x, f.mk(Int, 0, 1)).Update(f.b, f.mk(Bool, 0, 0))
	s2 := s.Update(f.x, f.mk(Int, 5, 5)).Update(f.b, f.mk(Bool, 1, 1))

	get := func(s Store, v Variable) Element {
		e, ok := s.Get(v)
		require.True(t, ok)
		return e
	}

	join := s1.MonoJoin(s2)
	assert.True(t, get(join, f.x).Eq(f.mk(Int, 0, 5)), "got %s", join)
	assert.True(t, get(join, f.b).Eq(f.mk(Bool, 0, 1)), "got %s", join)
	assert.True(t, s1.Leq(join))
	assert.True(t, s2.Leq(join))
	assert.False(t, join.Leq(s1))

	meet := join.Meet(s1).Store()
	assert.True(t, meet.Eq(s1), "got %s", meet)

	// x and b are ⊥ in the meet, which makes the whole store ⊥.
	assert.True(t, s1.Meet(s2).IsBot())

	widened := s1.Widening(join).Store()
	assert.Equal(t, "[0, ∞]", get(widened, f.x).Assumption().RangeAssumption().String())

	assert.True(t, s1.ToBot().IsBot())
	assert.True(t, s1.ToTop().IsTop())
	assert.True(t, s1.ToBot().Join(s2).Eq(s2))
}

func TestStoreMismatch(t *testing.T) {
	f := newStoreFixture()
	s1 := f.store(t, f.x, f.y).Update(f.x, f.mk(Int, 0, 1)).Update(f.y, f.mk(Int, 0, 1))
	s2 := f.store(t, f.x).Update(f.x, f.mk(Int, 3, 4))

	err := recoverError(func() { s1.Join(s2) })
	assert.ErrorIs(t, err, errInternal)
}

func TestStoreString(t *testing.T) {
	f := newStoreFixture()

	stores := []Store{
		f.store(t),
		f.store(t, f.x).Update(f.x, f.mk(Int, 0, 10)),
		f.store(t, f.x, f.y, f.b).
			Update(f.x, f.mk(Int, 0, 10)).
			Update(f.b, f.mk(Bool, 0, 1)),
	}

	var out bytes.Buffer
	for _, s := range stores {
		fmt.Fprintln(&out, s)
	}
	goldie.New(t).Assert(t, t.Name(), out.Bytes())
}
