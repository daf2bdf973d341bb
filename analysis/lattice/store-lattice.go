package lattice

import (
	"go/types"

	"golang.org/x/tools/go/types/typeutil"
)

// StoreLattice lifts a family of lattices, selected by static type, over
// an environment of program variables. Every variable of a store is bound
// to a member of the lattice registered for its type.
type StoreLattice struct {
	lattice
	registry *typeutil.Map
}

// Store creates a store lattice with an empty type registry.
func (latticeFactory) Store() *StoreLattice {
	return &StoreLattice{registry: new(typeutil.Map)}
}

// Bind registers the lattice governing variables of type t. Identical
// types share a registration.
func (l *StoreLattice) Bind(t types.Type, lat Lattice) *StoreLattice {
	l.registry.Set(t, lat)
	return l
}

// LatticeFor retrieves the lattice governing variables of type t.
func (l *StoreLattice) LatticeFor(t types.Type) (Lattice, bool) {
	lat, ok := l.registry.At(t).(Lattice)
	return lat, ok
}

// Top yields the empty store. Stores over a set of variables are created
// with Elements().Store, and reset with Store.ToTop.
func (l *StoreLattice) Top() Element {
	return newStore(l)
}

// Bot is undefined without a variable set. Use Store.ToBot instead.
func (l *StoreLattice) Bot() Element {
	panic(ErrUnsupportedOperation)
}

func (l *StoreLattice) String() string {
	strs := l.registry.KeysString()
	return colorize.Lattice("Var") + " → " + strs
}

func (l1 *StoreLattice) Eq(l2 Lattice) bool {
	if l1 == l2 {
		return true
	}
	switch l2 := l2.(type) {
	case *StoreLattice:
		if l1.registry.Len() != l2.registry.Len() {
			return false
		}
		eq := true
		l1.registry.Iterate(func(t types.Type, lat interface{}) {
			if other, ok := l2.LatticeFor(t); !ok || !other.Eq(lat.(Lattice)) {
				eq = false
			}
		})
		return eq
	default:
		return false
	}
}

func (l *StoreLattice) Store() *StoreLattice {
	return l
}
