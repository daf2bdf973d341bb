package graph

import (
	"golang.org/x/tools/go/ssa"
)

// FromBasicBlocks creates the control-flow graph of a function.
func FromBasicBlocks(fun *ssa.Function) Graph[*ssa.BasicBlock] {
	return OfHashable(func(bb *ssa.BasicBlock) []*ssa.BasicBlock {
		return bb.Succs
	})
}
