package utils

import (
	"github.com/benbjohnson/immutable"
	"golang.org/x/tools/go/ssa"
)

// SSAValueSet is an immutable set of unique SSA values.
type SSAValueSet struct {
	*immutable.Map[ssa.Value, struct{}]
}

// Size returns the number of elements in the SSA value set.
func (s SSAValueSet) Size() int {
	return s.Map.Len()
}

// MakeSSASet creates a set of SSA registers from the given values.
func MakeSSASet(vs ...ssa.Value) SSAValueSet {
	mp := immutable.NewMap[ssa.Value, struct{}](PointerHasher[ssa.Value]{})
	for _, v := range vs {
		mp = mp.Set(v, struct{}{})
	}

	return SSAValueSet{mp}
}

// Add v to s:
//
//	s ∪ {v}
func (s SSAValueSet) Add(v ssa.Value) SSAValueSet {
	return SSAValueSet{s.Map.Set(v, struct{}{})}
}

// Contains checks whether the SSA value set contains v:
//
//	v ∈ s
func (s SSAValueSet) Contains(v ssa.Value) bool {
	_, ok := s.Get(v)
	return ok
}

// ForEach executes the provided procedure for each element in the SSA value set.
func (s SSAValueSet) ForEach(do func(ssa.Value)) {
	for iter := s.Iterator(); !iter.Done(); {
		next, _, _ := iter.Next()
		do(next)
	}
}

// Entries aggregates all elements in the SSA value set in a slice.
func (s SSAValueSet) Entries() []ssa.Value {
	vs := make([]ssa.Value, 0, s.Size())

	s.ForEach(func(v ssa.Value) {
		vs = append(vs, v)
	})
	return vs
}
