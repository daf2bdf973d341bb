package lattice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benbjohnson/immutable"
)

// Iterations counts how many times a sequence of input assumptions repeats.
type Iterations int

// Unresolved marks a sequence whose iteration count is not known yet.
// Joining with such a sequence adopts the other operand.
const Unresolved Iterations = -1

// Resolved holds for known iteration counts.
func (n Iterations) Resolved() bool {
	return n >= 0
}

func (n Iterations) String() string {
	if !n.Resolved() {
		return "NONE"
	}
	return strconv.Itoa(int(n))
}

type inputEntryKind uint8

const (
	leafEntry inputEntryKind = iota
	blockEntry
)

// InputEntry is one position in a sequence of input assumptions. It is
// either a leaf, an assumption about a single input, or a block, a
// nested sequence repeated as a unit.
type InputEntry struct {
	kind  inputEntryKind
	leaf  Assumption
	block InputAssumption
}

// Leaf wraps an assumption about one input as a sequence position.
func Leaf(a Assumption) InputEntry {
	return InputEntry{kind: leafEntry, leaf: a}
}

// Block wraps a nested sequence as a sequence position.
func Block(b InputAssumption) InputEntry {
	return InputEntry{kind: blockEntry, block: b}
}

// IsLeaf holds for positions holding a single assumption.
func (en InputEntry) IsLeaf() bool {
	return en.kind == leafEntry
}

// IsBlock holds for positions holding a nested sequence.
func (en InputEntry) IsBlock() bool {
	return en.kind == blockEntry
}

// AsLeaf unpacks a leaf position.
func (en InputEntry) AsLeaf() (Assumption, bool) {
	return en.leaf, en.kind == leafEntry
}

// AsBlock unpacks a block position.
func (en InputEntry) AsBlock() (InputAssumption, bool) {
	return en.block, en.kind == blockEntry
}

func (en InputEntry) isPlaceholder() bool {
	return en.kind == blockEntry && en.block.IsPlaceholder()
}

func (en InputEntry) element() Element {
	if en.kind == leafEntry {
		return en.leaf
	}
	return en.block
}

func (en InputEntry) String() string {
	return en.element().String()
}

type inputKind uint8

const (
	inputRegular inputKind = iota
	inputBot
	inputTop
)

// InputAssumption is a member of the input assumption lattice. A regular
// member states that its sequence of entries repeats `iterations` times.
// ⊤ carries no information about the inputs and ⊥ denotes an impossible
// input trace.
type InputAssumption struct {
	element
	kind       inputKind
	iterations Iterations
	entries    *immutable.List[InputEntry]
	loop       bool
	condition  any
}

// InputAssumption creates an input assumption factory for the given lattice.
func (elementFactory) InputAssumption(lat *InputAssumptionLattice) func(iterations Iterations, entries ...InputEntry) InputAssumption {
	return func(iterations Iterations, entries ...InputEntry) InputAssumption {
		e := InputAssumption{element: element{lat}, iterations: iterations}
		return e.withEntries(entries)
	}
}

// InputAssumptionOf creates a member of the input assumption lattice over
// interval assumptions.
func (elementFactory) InputAssumptionOf(iterations Iterations, entries ...InputEntry) InputAssumption {
	return elFact.InputAssumption(inputAssumptionLattice)(iterations, entries...)
}

// Placeholder creates an empty sequence with unresolved iterations.
func (elementFactory) Placeholder(lat *InputAssumptionLattice) InputAssumption {
	return elFact.InputAssumption(lat)(Unresolved)
}

func (e InputAssumption) withEntries(entries []InputEntry) InputAssumption {
	lat := e.lattice.InputAssumption()
	lst := immutable.NewListBuilder[InputEntry]()
	for _, en := range entries {
		switch en.kind {
		case leafEntry:
			checkLatticeMatch(lat.asm, en.leaf.Lattice(), "input entry")
		case blockEntry:
			checkLatticeMatch(lat, en.block.Lattice(), "input block")
		}
		lst.Append(en)
	}
	e.entries = lst.List()
	return e
}

func (e InputAssumption) InputAssumption() InputAssumption {
	return e
}

// Iterations retrieves the number of times the sequence repeats.
func (e InputAssumption) Iterations() Iterations {
	return e.iterations
}

// IsPlaceholder holds for regular members with unresolved iterations.
func (e InputAssumption) IsPlaceholder() bool {
	return e.kind == inputRegular && !e.iterations.Resolved()
}

// IsLoop holds for blocks produced by a loop.
func (e InputAssumption) IsLoop() bool {
	return e.loop
}

// Condition retrieves the opaque condition attached to the sequence.
func (e InputAssumption) Condition() any {
	return e.condition
}

// WithCondition attaches an opaque condition to the sequence.
func (e InputAssumption) WithCondition(cond any) InputAssumption {
	e.condition = cond
	return e
}

// Len is the number of positions in the sequence. ⊤ and ⊥ have none.
func (e InputAssumption) Len() int {
	if e.kind != inputRegular || e.entries == nil {
		return 0
	}
	return e.entries.Len()
}

// Entry retrieves the i-th position of the sequence.
func (e InputAssumption) Entry(i int) InputEntry {
	return e.entries.Get(i)
}

// Entries retrieves all positions of the sequence, in order.
func (e InputAssumption) Entries() []InputEntry {
	res := make([]InputEntry, 0, e.Len())
	for i := 0; i < e.Len(); i++ {
		res = append(res, e.entries.Get(i))
	}
	return res
}

func (e InputAssumption) prepend(en InputEntry) InputAssumption {
	if e.kind != inputRegular {
		return e
	}
	if e.entries == nil {
		e.entries = immutable.NewList[InputEntry]()
	}
	e.entries = e.entries.Prepend(en)
	return e
}

// PrependAssumption adds an assumption to the front of the sequence.
// ⊤ and ⊥ are left unchanged.
func (e InputAssumption) PrependAssumption(a Assumption) InputAssumption {
	checkLatticeMatch(e.lattice.InputAssumption().asm, a.Lattice(), "input entry")
	return e.prepend(Leaf(a))
}

// PrependAssumptions adds the assumptions, in order, to the front of the sequence.
func (e InputAssumption) PrependAssumptions(as ...Assumption) InputAssumption {
	for i := len(as) - 1; i >= 0; i-- {
		e = e.PrependAssumption(as[i])
	}
	return e
}

// PrependLoop adds a loop block, repeating the given entries the given
// number of times, to the front of the sequence.
func (e InputAssumption) PrependLoop(iterations Iterations, entries ...InputEntry) InputAssumption {
	if e.kind != inputRegular {
		return e
	}
	block := elFact.InputAssumption(e.lattice.InputAssumption())(iterations, entries...)
	block.loop = true
	return e.prepend(Block(block))
}

func (e InputAssumption) String() string {
	switch {
	case e.kind == inputBot:
		return colorize.Element("⊥")
	case e.kind == inputTop:
		return colorize.Element("T")
	case !e.iterations.Resolved():
		return colorize.Const("NONE")
	}

	strs := make([]string, 0, e.Len())
	for i := 0; i < e.Len(); i++ {
		strs = append(strs, e.Entry(i).String())
	}
	seq := "[" + strings.Join(strs, ", ") + "]"
	if e.iterations == 1 {
		return seq
	}
	return colorize.Const(e.iterations.String()) + " x " + seq
}

func (e InputAssumption) IsBot() bool {
	return e.kind == inputBot
}

func (e InputAssumption) IsTop() bool {
	return e.kind == inputTop
}

func (e1 InputAssumption) top() InputAssumption {
	return e1.lattice.Top().InputAssumption()
}

func (e1 InputAssumption) Eq(e2 Element) bool {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "=")
	return boundedEq(e1, e2)
}

// eq compares the iteration counts and the sequences position-wise.
// Loop markers and conditions do not take part in the comparison.
func (e1 InputAssumption) eq(e2 Element) bool {
	o := e2.InputAssumption()
	if e1.iterations != o.iterations || e1.Len() != o.Len() {
		return false
	}
	for i := 0; i < e1.Len(); i++ {
		a, b := e1.Entry(i), o.Entry(i)
		if a.kind != b.kind || !boundedEq(a.element(), b.element()) {
			return false
		}
	}
	return true
}

func (e1 InputAssumption) Leq(e2 Element) bool {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "⊑")
	return boundedLeq(e1, e2)
}

// leq compares sequences of the same shape position-wise. Sequences of
// different lengths or iteration counts are incomparable. A placeholder
// is below every sequence, since joining with it adopts the other operand.
func (e1 InputAssumption) leq(e2 Element) bool {
	o := e2.InputAssumption()
	switch {
	case e1.IsPlaceholder():
		return true
	case o.IsPlaceholder():
		return false
	case e1.iterations != o.iterations || e1.Len() != o.Len():
		return false
	}
	for i := 0; i < e1.Len(); i++ {
		a, b := e1.Entry(i), o.Entry(i)
		switch {
		case a.isPlaceholder():
			continue
		case b.isPlaceholder() || a.kind != b.kind:
			return false
		case !boundedLeq(a.element(), b.element()):
			return false
		}
	}
	return true
}

func (e1 InputAssumption) Geq(e2 Element) bool {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "⊒")
	return boundedLeq(e2, e1)
}

func (e1 InputAssumption) Join(e2 Element) Element {
	checkLatticeMatch(e1.Lattice(), e2.Lattice(), "⊔")
	return boundedJoin(e1, e2)
}

func (e1 InputAssumption) join(e2 Element) Element {
	return e1.joinInputs(e2.InputAssumption())
}

// joinInputs reconciles the input traces of two paths:
//  1. a placeholder on the right carries no information;
//  2. a placeholder on the left adopts the right operand;
//  3. different iteration counts cannot be reconciled, yielding ⊤;
//  4. sequences of equal length are joined position-wise;
//  5. otherwise, the longer sequence may fold its two leading blocks
//     into one, when the shorter sequence starts with a placeholder block,
//     and the join is retried.
//
// Every other shape yields ⊤.
func (e1 InputAssumption) joinInputs(e2 InputAssumption) InputAssumption {
	switch {
	case !e2.iterations.Resolved():
		return e1
	case !e1.iterations.Resolved():
		return e2
	case e1.iterations != e2.iterations:
		return e1.top()
	case e1.Len() == e2.Len():
		return e1.joinEntries(e2)
	case e1.Len() > e2.Len():
		if folded, ok := e1.foldLeadingBlocks(e2); ok {
			return folded.joinInputs(e2)
		}
	default:
		if folded, ok := e2.foldLeadingBlocks(e1); ok {
			return e1.joinInputs(folded)
		}
	}
	return e1.top()
}

// joinEntries joins sequences of equal length position-wise. A placeholder
// block adopts the opposite position. Positions of different kinds cannot
// be reconciled, yielding ⊤.
func (e1 InputAssumption) joinEntries(e2 InputAssumption) InputAssumption {
	lst := immutable.NewListBuilder[InputEntry]()
	for i := 0; i < e1.Len(); i++ {
		a, b := e1.Entry(i), e2.Entry(i)
		switch {
		case a.isPlaceholder():
			lst.Append(b)
		case b.isPlaceholder():
			lst.Append(a)
		case a.kind != b.kind:
			return e1.top()
		case a.kind == leafEntry:
			lst.Append(Leaf(boundedJoin(a.leaf, b.leaf).Assumption()))
		default:
			lst.Append(Block(boundedJoin(a.block, b.block).InputAssumption()))
		}
	}
	e1.entries = lst.List()
	return e1
}

// foldLeadingBlocks shortens the longer sequence e by one position, by
// joining its two leading blocks, when the shorter sequence starts with a
// placeholder block. Both leading blocks must be resolved.
func (e InputAssumption) foldLeadingBlocks(shorter InputAssumption) (InputAssumption, bool) {
	if shorter.Len() == 0 || e.Len() < 2 || !shorter.Entry(0).isPlaceholder() {
		return e, false
	}

	first, ok1 := e.Entry(0).AsBlock()
	second, ok2 := e.Entry(1).AsBlock()
	if !ok1 || !ok2 || first.IsPlaceholder() || second.IsPlaceholder() {
		return e, false
	}

	folded := Block(boundedJoin(first, second).InputAssumption())
	e.entries = e.entries.Slice(2, e.Len()).Prepend(folded)
	return e, true
}

// Meet is not defined for input assumptions and always panics.
func (e1 InputAssumption) Meet(e2 Element) Element {
	return e1.meet(e2)
}

func (e1 InputAssumption) meet(e2 Element) Element {
	panic(fmt.Errorf("%w: meet of %s and %s", ErrUnsupportedOperation, e1, e2))
}

// Widening is not defined for input assumptions and always panics.
func (e1 InputAssumption) Widening(e2 Element) Element {
	return e1.widening(e2)
}

func (e1 InputAssumption) widening(e2 Element) Element {
	panic(fmt.Errorf("%w: widening of %s and %s", ErrUnsupportedOperation, e1, e2))
}
