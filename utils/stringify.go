package utils

import (
	"fmt"

	"github.com/fatih/color"

	"golang.org/x/tools/go/ssa"
)

var funColor = func(is ...interface{}) string {
	return CanColorize(color.New(color.FgHiYellow).SprintFunc())(is...)
}
var blkColor = func(is ...interface{}) string {
	return CanColorize(color.New(color.FgHiCyan).SprintFunc())(is...)
}

func SSAFunString(fun *ssa.Function) string {
	if fun != nil {
		return funColor(fun.String())
	}
	return funColor("<nil>")
}

func SSABlockString(blk *ssa.BasicBlock) string {
	if blk != nil {
		return SSAFunString(blk.Parent()) + ":" + blkColor(fmt.Sprintf("%d", blk.Index))
	}
	return funColor("<nil>")
}
