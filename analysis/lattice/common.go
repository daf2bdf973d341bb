package lattice

import (
	"errors"
	"fmt"

	"github.com/cs-au-dk/absdom/utils"

	"github.com/fatih/color"
)

var colorize = struct {
	Lattice func(...interface{}) string
	Element func(...interface{}) string
	Const   func(...interface{}) string
	Key     func(...interface{}) string
}{
	Lattice: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiBlue).SprintFunc())(is...)
	},
	Element: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgCyan).SprintFunc())(is...)
	},
	Const: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiWhite).SprintFunc())(is...)
	},
	Key: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgYellow).SprintFunc())(is...)
	},
}

var (
	// ErrUnsupportedOperation is the cause of panics raised by lattice
	// operations that a domain leaves undefined.
	ErrUnsupportedOperation = errors.New("unsupported lattice operation")
	// ErrMissingLattice is returned when a store must track a variable
	// whose type has no registered lattice.
	ErrMissingLattice = errors.New("missing lattice for variable type")
	// ErrVariableTracked is returned when adding a variable that a store
	// already tracks.
	ErrVariableTracked = errors.New("variable is already tracked")

	errUnsupportedTypeConversion = errors.New("UnsupportedTypeConversion")
	errInternal                  = errors.New("internal error")
	errPatternMatch              = func(v interface{}) error {
		return fmt.Errorf("invalid pattern match: %v %T", v, v)
	}
)

// Element is implemented by the members of every lattice. Elements are
// persistent: no operation mutates its receiver or its argument, so an
// element may be freely shared between program points.
type Element interface {
	// Type conversion API
	Type() TypeElement
	Interval() Interval
	Assumption() Assumption
	InputAssumption() InputAssumption
	Store() Store
	IntervalKey() IntervalKey

	Lattice() Lattice

	// External API for lattice element operations.
	// They dynamically perform lattice type checking, and resolve
	// the cases decided by ⊥ and ⊤ before consulting the domain.
	Leq(Element) bool
	Geq(Element) bool
	Eq(Element) bool
	Join(Element) Element
	Meet(Element) Element
	Widening(Element) Element

	IsBot() bool
	IsTop() bool

	// Domain specific hooks. Only called with operands of the same
	// lattice, neither of which decides the operation by being ⊥ or ⊤.
	leq(Element) bool
	eq(Element) bool
	join(Element) Element
	meet(Element) Element
	widening(Element) Element

	String() string
}

type element struct {
	lattice Lattice
}

func (e element) Lattice() Lattice {
	return e.lattice
}

func (element) Type() TypeElement {
	panic(errUnsupportedTypeConversion)
}

func (element) Interval() Interval {
	panic(errUnsupportedTypeConversion)
}

func (element) Assumption() Assumption {
	panic(errUnsupportedTypeConversion)
}

func (element) InputAssumption() InputAssumption {
	panic(errUnsupportedTypeConversion)
}

func (element) Store() Store {
	panic(errUnsupportedTypeConversion)
}

func (element) IntervalKey() IntervalKey {
	panic(errUnsupportedTypeConversion)
}

// boundedLeq computes e1 ⊑ e2:
//
//	⊥ ⊑ e, e ⊑ ⊤
func boundedLeq(e1, e2 Element) bool {
	switch {
	case e1.IsBot() || e2.IsTop():
		return true
	case e2.IsBot() || e1.IsTop():
		return false
	}
	return e1.leq(e2)
}

// boundedEq computes e1 = e2.
func boundedEq(e1, e2 Element) bool {
	switch b1, b2 := e1.IsBot(), e2.IsBot(); {
	case b1 || b2:
		return b1 == b2
	}
	switch t1, t2 := e1.IsTop(), e2.IsTop(); {
	case t1 || t2:
		return t1 == t2
	}
	return e1.eq(e2)
}

// boundedJoin computes e1 ⊔ e2:
//
//	⊥ ⊔ e = e ⊔ ⊥ = e
//	⊤ ⊔ e = e ⊔ ⊤ = ⊤
func boundedJoin(e1, e2 Element) Element {
	switch {
	case e1.IsBot() || e2.IsTop():
		return e2
	case e2.IsBot() || e1.IsTop():
		return e1
	}
	return e1.join(e2)
}

// boundedMeet computes e1 ⊓ e2:
//
//	⊥ ⊓ e = e ⊓ ⊥ = ⊥
//	⊤ ⊓ e = e ⊓ ⊤ = e
func boundedMeet(e1, e2 Element) Element {
	switch {
	case e1.IsTop() || e2.IsBot():
		return e2
	case e2.IsTop() || e1.IsBot():
		return e1
	}
	return e1.meet(e2)
}

// boundedWidening computes e1 ∇ e2:
//
//	⊥ ∇ e = e
//	e ∇ ⊤ = ⊤
func boundedWidening(e1, e2 Element) Element {
	if e1.IsBot() || e2.IsTop() {
		return e2
	}
	return e1.widening(e2)
}
