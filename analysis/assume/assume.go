// Package assume computes, for every scalar value of a function, what can
// be assumed about its type and range. It is an intraprocedural forward
// abstract interpretation over the SSA form of the function.
package assume

import (
	"fmt"

	L "github.com/cs-au-dk/absdom/analysis/lattice"
	"github.com/cs-au-dk/absdom/utils"
	"github.com/cs-au-dk/absdom/utils/graph"
	"github.com/cs-au-dk/absdom/utils/worklist"

	"golang.org/x/tools/go/ssa"
)

// Config tunes the fixpoint computation.
type Config struct {
	// WidenDelay is the number of times a loop head is joined before
	// widening kicks in.
	WidenDelay int
}

// DefaultConfig reads the configuration from the CLI options.
func DefaultConfig() Config {
	return Config{WidenDelay: utils.Opts().WidenDelay()}
}

type analysis struct {
	Config
	fun *ssa.Function
	asm *L.AssumptionLattice
	lat *L.StoreLattice

	init   L.Store
	in     map[*ssa.BasicBlock]L.Store
	out    map[*ssa.BasicBlock]L.Store
	visits map[*ssa.BasicBlock]int
}

// Analyze computes the assumptions of every scalar value of the function.
func (c Config) Analyze(fun *ssa.Function) (*Result, error) {
	if fun.Blocks == nil {
		return nil, fmt.Errorf("%s has no body", fun)
	}

	vars := utils.ScalarValues(fun)
	asm := L.Lattices().Assumption()
	lat := L.Lattices().Store()
	vars.ForEach(func(v ssa.Value) {
		lat.Bind(v.Type(), asm)
	})

	init, err := L.Elements().Store(lat, storeVariables(vars)...)
	if err != nil {
		return nil, fmt.Errorf("analyzing %s: %w", fun, err)
	}
	for _, p := range fun.Params {
		if init.Has(p) {
			init = init.Update(p, typeTop(p.Type()))
		}
	}

	a := &analysis{
		Config: c,
		fun:    fun,
		asm:    asm,
		lat:    lat,
		init:   init,
		in:     make(map[*ssa.BasicBlock]L.Store),
		out:    make(map[*ssa.BasicBlock]L.Store),
		visits: make(map[*ssa.BasicBlock]int),
	}
	a.run()

	return a.result(vars), nil
}

// Analyze computes the assumptions of every scalar value of the function,
// according to the CLI options.
func Analyze(fun *ssa.Function) (*Result, error) {
	return DefaultConfig().Analyze(fun)
}

func storeVariables(vars utils.SSAValueSet) []L.Variable {
	res := make([]L.Variable, 0, vars.Size())
	for _, v := range vars.Entries() {
		res = append(res, v)
	}
	return res
}

// isLoopHead holds for blocks that dominate one of their predecessors.
func isLoopHead(b *ssa.BasicBlock) bool {
	for _, p := range b.Preds {
		if b.Dominates(p) {
			return true
		}
	}
	return false
}

// entryState joins the stores flowing into the block along every reached
// edge, binding the φ-nodes of the block to the operand of each edge.
func (a *analysis) entryState(b *ssa.BasicBlock) (L.Store, bool) {
	if b == a.fun.Blocks[0] {
		return a.init, true
	}

	var (
		res   L.Store
		found bool
	)
	for i, p := range b.Preds {
		if _, reached := a.out[p]; !reached {
			continue
		}
		s := a.edgeState(p, b)
		for _, insn := range b.Instrs {
			phi, ok := insn.(*ssa.Phi)
			if !ok {
				break
			}
			if s.Has(phi) {
				s = s.Update(phi, a.eval(s, phi.Edges[i]))
			}
		}
		if s.IsBot() {
			// The edge is infeasible.
			continue
		}

		if !found {
			res, found = s, true
		} else {
			res = res.MonoJoin(s)
		}
	}
	return res, found
}

// run computes the fixpoint, visiting pending blocks in reverse postorder,
// so that the predecessors of a block are visited first, except along back edges.
func (a *analysis) run() {
	order := make(map[*ssa.BasicBlock]int, len(a.fun.Blocks))
	for i, b := range graph.FromBasicBlocks(a.fun).ReversePostorder(a.fun.Blocks[0]) {
		order[b] = i
	}
	rpo := func(b1, b2 *ssa.BasicBlock) bool {
		return order[b1] < order[b2]
	}

	worklist.StartPriority(a.fun.Blocks[0], rpo, func(b *ssa.BasicBlock, add func(*ssa.BasicBlock)) {
		in, ok := a.entryState(b)
		if !ok {
			return
		}

		old, visited := a.in[b]
		if visited {
			if isLoopHead(b) && a.visits[b] >= a.WidenDelay {
				in = old.Widening(in).Store()
			} else {
				in = old.MonoJoin(in)
			}
			if in.Eq(old) {
				return
			}
		}
		a.visits[b]++
		a.in[b] = in

		utils.VerbosePrint("Visiting %s (%d)\n", utils.SSABlockString(b), a.visits[b])

		out := in
		for _, insn := range b.Instrs {
			out = a.transfer(out, insn)
		}
		a.out[b] = out

		for _, succ := range b.Succs {
			add(succ)
		}
	})
}

func (a *analysis) result(vars utils.SSAValueSet) *Result {
	res := &Result{
		Function: a.fun,
		Lattice:  a.lat,
		In:       a.in,
		Out:      a.out,
		Exit:     a.init.ToBot(),
	}

	for _, p := range a.fun.Params {
		if vars.Contains(p) {
			res.Variables = append(res.Variables, p)
		}
	}
	for _, b := range a.fun.Blocks {
		for _, insn := range b.Instrs {
			if v, ok := insn.(ssa.Value); ok && vars.Contains(v) {
				res.Variables = append(res.Variables, v)
			}
		}
	}

	found := false
	for _, b := range a.fun.Blocks {
		out, reached := a.out[b]
		if _, ok := b.Instrs[len(b.Instrs)-1].(*ssa.Return); !ok || !reached {
			continue
		}
		if !found {
			res.Exit, found = out, true
		} else {
			res.Exit = res.Exit.MonoJoin(out)
		}
	}
	return res
}
