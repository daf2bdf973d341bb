package assume

import (
	"io"
	"sort"

	L "github.com/cs-au-dk/absdom/analysis/lattice"
	"github.com/cs-au-dk/absdom/utils/graph"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/tools/go/ssa"
)

// Result holds the fixpoint of the analysis of one function.
type Result struct {
	Function *ssa.Function
	Lattice  *L.StoreLattice
	// Variables lists the tracked values: parameters first, and then
	// value-defining instructions in block order.
	Variables []ssa.Value
	// In and Out bind every reached block to the store at its entry and exit.
	In, Out map[*ssa.BasicBlock]L.Store
	// Exit joins the stores of all reached return instructions. It is ⊥
	// if the function never returns.
	Exit L.Store
}

// Reached checks whether the analysis found a path to the block.
func (r *Result) Reached(b *ssa.BasicBlock) bool {
	_, ok := r.Out[b]
	return ok
}

// Infeasible lists the blocks reachable in the control-flow graph that the
// analysis found no feasible path to, ordered by index.
func (r *Result) Infeasible() (res []*ssa.BasicBlock) {
	graph.FromBasicBlocks(r.Function).BFS(r.Function.Blocks[0], func(b *ssa.BasicBlock) bool {
		if !r.Reached(b) {
			res = append(res, b)
		}
		return false
	})
	sort.Slice(res, func(i, j int) bool {
		return res[i].Index < res[j].Index
	})
	return
}

// ValueOf retrieves the assumption about a value right after its
// definition. Parameters are described at function entry.
func (r *Result) ValueOf(v ssa.Value) (L.Assumption, bool) {
	var (
		s  L.Store
		ok bool
	)
	switch v := v.(type) {
	case *ssa.Parameter:
		s, ok = r.In[r.Function.Blocks[0]]
	case ssa.Instruction:
		s, ok = r.Out[v.Block()]
	}
	if !ok {
		return L.Assumption{}, false
	}

	e, ok := s.Get(v)
	if !ok {
		return L.Assumption{}, false
	}
	return e.Assumption(), true
}

// Inputs describes the parameters of the function as a sequence of
// input assumptions, consumed once per call.
func (r *Result) Inputs() L.InputAssumption {
	entries := make([]L.InputEntry, 0, len(r.Function.Params))
	for _, p := range r.Function.Params {
		if asm, ok := r.ValueOf(p); ok {
			entries = append(entries, L.Leaf(asm))
		}
	}
	return L.Elements().InputAssumptionOf(1, entries...)
}

// WriteTable renders the assumptions about every tracked value.
func (r *Result) WriteTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Value", "Instruction", "Type", "Range"})
	table.SetAutoWrapText(false)

	for _, v := range r.Variables {
		row := []string{v.Name(), v.String(), "unreachable", "⊥"}
		if asm, ok := r.ValueOf(v); ok {
			row[2] = asm.TypeAssumption().String()
			row[3] = asm.RangeAssumption().String()
		}
		table.Append(row)
	}
	table.Render()
}
