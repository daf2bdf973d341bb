package utils

import (
	"fmt"
	"go/types"

	"golang.org/x/tools/go/ssa"
)

// Returns the first instruction in block-instruction order that matches the predicate.
func FindSSAInstruction(fun *ssa.Function, pred func(ssa.Instruction) bool) (ssa.Instruction, bool) {
	for _, block := range fun.Blocks {
		for _, insn := range block.Instrs {
			if pred(insn) {
				return insn, true
			}
		}
	}
	return nil, false
}

// IsScalarType checks whether values of the type are booleans, integers
// or floating point numbers.
func IsScalarType(typ types.Type) bool {
	basic, ok := typ.Underlying().(*types.Basic)
	return ok && basic.Info()&(types.IsBoolean|types.IsInteger|types.IsFloat) != 0
}

// ScalarValues collects the parameters and value-defining instructions
// of scalar type in a function.
func ScalarValues(fun *ssa.Function) SSAValueSet {
	vs := MakeSSASet()
	for _, p := range fun.Params {
		if IsScalarType(p.Type()) {
			vs = vs.Add(p)
		}
	}
	for _, b := range fun.Blocks {
		for _, insn := range b.Instrs {
			if v, ok := insn.(ssa.Value); ok && IsScalarType(v.Type()) {
				vs = vs.Add(v)
			}
		}
	}
	return vs
}

func PrintSSAFun(fun *ssa.Function) {
	fmt.Println(fun.Name())
	for bi, b := range fun.Blocks {
		fmt.Println(bi, ":")
		for _, i := range b.Instrs {
			switch v := i.(type) {
			case *ssa.DebugRef:
				// skip
			case ssa.Value:
				fmt.Println(v.Name(), "=", v)
			default:
				fmt.Println(i)
			}
		}
	}
}
