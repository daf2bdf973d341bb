package lattice

import (
	"fmt"
	"go/types"
	"sort"

	"github.com/cs-au-dk/absdom/utils"
	i "github.com/cs-au-dk/absdom/utils/indenter"

	"github.com/benbjohnson/immutable"
)

// Variable is a program variable tracked by a store. Variables are
// identified by pointer identity. Every ssa.Value is a variable.
type Variable interface {
	Name() string
	Type() types.Type
}

type variable struct {
	name string
	typ  types.Type
}

// NewVariable creates a fresh variable, distinct from every other variable.
func NewVariable(name string, typ types.Type) Variable {
	return &variable{name, typ}
}

func (v *variable) Name() string     { return v.name }
func (v *variable) Type() types.Type { return v.typ }
func (v *variable) String() string   { return v.name }

// Store is a member of a store lattice, binding each tracked variable to an
// element of the lattice registered for its type.
type Store struct {
	element
	mp *immutable.Map[Variable, Element]
}

func newStore(lat *StoreLattice) Store {
	return Store{
		element{lat},
		immutable.NewMap[Variable, Element](utils.PointerHasher[Variable]{}),
	}
}

// Store creates a store for the given variables, each bound to the ⊤ of
// the lattice governing its type. No store is created if a variable has
// a type without a registered lattice.
func (elementFactory) Store(lat *StoreLattice, vars ...Variable) (Store, error) {
	s := newStore(lat)
	for _, v := range vars {
		if s.Has(v) {
			continue
		}
		vlat, ok := lat.LatticeFor(v.Type())
		if !ok {
			return Store{}, fmt.Errorf("%w: %s of %s", ErrMissingLattice, v.Type(), v.Name())
		}
		s.mp = s.mp.Set(v, vlat.Top())
	}
	return s, nil
}

func (s Store) Store() Store {
	return s
}

// Size is the number of tracked variables.
func (s Store) Size() int {
	return s.mp.Len()
}

// Has checks whether the variable is tracked.
func (s Store) Has(v Variable) bool {
	_, ok := s.mp.Get(v)
	return ok
}

// Get retrieves the element bound to a variable.
func (s Store) Get(v Variable) (Element, bool) {
	return s.mp.Get(v)
}

// Update binds a tracked variable to a new element.
func (s Store) Update(v Variable, e Element) Store {
	old, ok := s.mp.Get(v)
	if !ok {
		panic(fmt.Errorf("%w: %s is not tracked", errInternal, v.Name()))
	}
	checkLatticeMatchThunked(old.Lattice(), e.Lattice(), func() string {
		return fmt.Sprintf("%s[ %s ↦ %s ]", s, v.Name(), e)
	})
	s.mp = s.mp.Set(v, e)
	return s
}

// Variables lists the tracked variables, ordered by name.
func (s Store) Variables() []Variable {
	vars := make([]Variable, 0, s.Size())
	for itr := s.mp.Iterator(); !itr.Done(); {
		v, _, _ := itr.Next()
		vars = append(vars, v)
	}
	sort.SliceStable(vars, func(i, j int) bool {
		return vars[i].Name() < vars[j].Name()
	})
	return vars
}

func (s Store) mapValues(f func(Element) Element) Store {
	b := immutable.NewMapBuilder[Variable, Element](utils.PointerHasher[Variable]{})
	for itr := s.mp.Iterator(); !itr.Done(); {
		v, e, _ := itr.Next()
		b.Set(v, f(e))
	}
	s.mp = b.Map()
	return s
}

// ToTop binds every tracked variable to ⊤.
func (s Store) ToTop() Store {
	return s.mapValues(func(e Element) Element { return e.Lattice().Top() })
}

// ToBot binds every tracked variable to ⊥.
func (s Store) ToBot() Store {
	return s.mapValues(func(e Element) Element { return e.Lattice().Bot() })
}

// AddVar starts tracking a variable, bound to the ⊤ of its lattice.
func (s Store) AddVar(v Variable) (Store, error) {
	if s.Has(v) {
		return s, fmt.Errorf("%w: %s", ErrVariableTracked, v.Name())
	}
	lat, ok := s.lattice.Store().LatticeFor(v.Type())
	if !ok {
		return s, fmt.Errorf("%w: %s of %s", ErrMissingLattice, v.Type(), v.Name())
	}
	s.mp = s.mp.Set(v, lat.Top())
	return s, nil
}

// RemoveVar stops tracking a variable. Untracked variables are ignored.
func (s Store) RemoveVar(v Variable) Store {
	s.mp = s.mp.Delete(v)
	return s
}

// InvalidateVar forgets everything known about a variable.
func (s Store) InvalidateVar(v Variable) Store {
	if e, ok := s.mp.Get(v); ok {
		s.mp = s.mp.Set(v, e.Lattice().Top())
	}
	return s
}

func (s Store) String() string {
	vars := s.Variables()
	if len(vars) == 0 {
		return "[]"
	}

	buf := make([]func() string, 0, len(vars))
	for _, v := range vars {
		v := v
		e, _ := s.mp.Get(v)
		buf = append(buf, func() string {
			return colorize.Key(v.Name()) + " ↦ " + e.String()
		})
	}
	return i.Indenter().Start("[").NestThunkedSep(",", buf...).End("]")
}

// IsBot holds if any variable is bound to ⊥.
func (s Store) IsBot() bool {
	for itr := s.mp.Iterator(); !itr.Done(); {
		_, e, _ := itr.Next()
		if e.IsBot() {
			return true
		}
	}
	return false
}

// IsTop holds if every variable is bound to ⊤.
func (s Store) IsTop() bool {
	for itr := s.mp.Iterator(); !itr.Done(); {
		_, e, _ := itr.Next()
		if !e.IsTop() {
			return false
		}
	}
	return true
}

// counterpart retrieves the binding of v in o, which must track every
// variable of the receiver.
func (s Store) counterpart(o Store, v Variable) Element {
	e, ok := o.mp.Get(v)
	if !ok {
		panic(fmt.Errorf("%w: %s is not tracked by %s", errInternal, v.Name(), o))
	}
	return e
}

func (s Store) pointwise(e2 Element, op func(a, b Element) Element) Store {
	o := e2.Store()
	b := immutable.NewMapBuilder[Variable, Element](utils.PointerHasher[Variable]{})
	for itr := s.mp.Iterator(); !itr.Done(); {
		v, e, _ := itr.Next()
		b.Set(v, op(e, s.counterpart(o, v)))
	}
	s.mp = b.Map()
	return s
}

func (s Store) Eq(e2 Element) bool {
	checkLatticeMatch(s.Lattice(), e2.Lattice(), "=")
	return boundedEq(s, e2)
}

func (s Store) eq(e2 Element) bool {
	o := e2.Store()
	if s.Size() != o.Size() {
		return false
	}
	for itr := s.mp.Iterator(); !itr.Done(); {
		v, e, _ := itr.Next()
		if oe, ok := o.mp.Get(v); !ok || !e.Eq(oe) {
			return false
		}
	}
	return true
}

func (s Store) Leq(e2 Element) bool {
	checkLatticeMatch(s.Lattice(), e2.Lattice(), "⊑")
	return boundedLeq(s, e2)
}

// leq compares the stores pointwise.
func (s Store) leq(e2 Element) bool {
	o := e2.Store()
	for itr := s.mp.Iterator(); !itr.Done(); {
		v, e, _ := itr.Next()
		if !e.Leq(s.counterpart(o, v)) {
			return false
		}
	}
	return true
}

func (s Store) Geq(e2 Element) bool {
	checkLatticeMatch(s.Lattice(), e2.Lattice(), "⊒")
	return boundedLeq(e2, s)
}

func (s Store) Join(e2 Element) Element {
	checkLatticeMatch(s.Lattice(), e2.Lattice(), "⊔")
	return boundedJoin(s, e2)
}

func (s Store) join(e2 Element) Element {
	return s.pointwise(e2, Element.Join)
}

// MonoJoin is a monomorphic variant of s ⊔ o for stores.
func (s Store) MonoJoin(o Store) Store {
	return s.Join(o).Store()
}

func (s Store) Meet(e2 Element) Element {
	checkLatticeMatch(s.Lattice(), e2.Lattice(), "⊓")
	return boundedMeet(s, e2)
}

func (s Store) meet(e2 Element) Element {
	return s.pointwise(e2, Element.Meet)
}

func (s Store) Widening(e2 Element) Element {
	checkLatticeMatch(s.Lattice(), e2.Lattice(), "∇")
	return boundedWidening(s, e2)
}

func (s Store) widening(e2 Element) Element {
	return s.pointwise(e2, Element.Widening)
}
