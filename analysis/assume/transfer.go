package assume

import (
	"go/constant"
	"go/token"
	"go/types"
	"math"

	L "github.com/cs-au-dk/absdom/analysis/lattice"

	"golang.org/x/tools/go/ssa"
)

var (
	elFact = L.Elements()

	boolRange  = elFact.IntervalFinite(0, 1)
	trueRange  = elFact.Constant(1)
	falseRange = elFact.Constant(0)
)

// kindRange over-approximates the values of a basic type as an interval.
func kindRange(t types.Type) L.Interval {
	top := L.Lattices().Interval().Top().Interval()
	basic, ok := t.Underlying().(*types.Basic)
	if !ok {
		return top
	}

	switch basic.Kind() {
	case types.Bool, types.UntypedBool:
		return boolRange
	case types.Int8:
		return elFact.IntervalFinite(math.MinInt8, math.MaxInt8)
	case types.Int16:
		return elFact.IntervalFinite(math.MinInt16, math.MaxInt16)
	case types.Int32:
		return elFact.IntervalFinite(math.MinInt32, math.MaxInt32)
	case types.Uint8:
		return elFact.IntervalFinite(0, math.MaxUint8)
	case types.Uint16:
		return elFact.IntervalFinite(0, math.MaxUint16)
	case types.Uint32:
		return elFact.IntervalFinite(0, math.MaxUint32)
	case types.Uint, types.Uint64, types.Uintptr:
		return elFact.Interval(L.FiniteBound(0), L.PlusInfinity{})
	}
	return top
}

func isInteger(t types.Type) bool {
	basic, ok := t.Underlying().(*types.Basic)
	return ok && basic.Info()&types.IsInteger != 0
}

// clamp accounts for overflow: a range escaping the values of the type may wrap around.
func clamp(t types.Type, rng L.Interval) L.Interval {
	if !isInteger(t) {
		return rng
	}
	if k := kindRange(t); !rng.Leq(k) {
		return k
	}
	return rng
}

// typeTop is the weakest assumption about a value of the given static type.
func typeTop(t types.Type) L.Assumption {
	return elFact.AssumptionOf(elFact.TypeOf(t), kindRange(t))
}

func constAssumption(c *ssa.Const) L.Assumption {
	asm := typeTop(c.Type())
	if c.Value == nil {
		return asm
	}

	switch c.Value.Kind() {
	case constant.Bool:
		if constant.BoolVal(c.Value) {
			return asm.UpdateRange(trueRange)
		}
		return asm.UpdateRange(falseRange)
	case constant.Int:
		if i, exact := constant.Int64Val(c.Value); exact {
			return asm.UpdateRange(elFact.Constant(int(i)))
		}
	case constant.Float:
		if f, _ := constant.Float64Val(c.Value); math.Abs(f) < 1<<62 {
			return asm.UpdateRange(elFact.IntervalFinite(int(math.Floor(f)), int(math.Ceil(f))))
		}
	}
	return asm
}

// eval computes the assumption about an operand in a store. Values
// without a binding are only constrained by their static type.
func (a *analysis) eval(s L.Store, v ssa.Value) L.Assumption {
	if c, ok := v.(*ssa.Const); ok {
		return constAssumption(c)
	}
	if e, ok := s.Get(v); ok {
		return e.Assumption()
	}
	return typeTop(v.Type())
}

// compare decides a comparison between two ranges, if possible.
func compare(op token.Token, x, y L.Interval) L.Interval {
	switch op {
	case token.LSS:
		switch {
		case x.HighBound().Lt(y.LowBound()):
			return trueRange
		case x.LowBound().Geq(y.HighBound()):
			return falseRange
		}
	case token.LEQ:
		switch {
		case x.HighBound().Leq(y.LowBound()):
			return trueRange
		case x.LowBound().Gt(y.HighBound()):
			return falseRange
		}
	case token.GTR:
		return compare(token.LSS, y, x)
	case token.GEQ:
		return compare(token.LEQ, y, x)
	case token.EQL:
		switch {
		case x.IsSingleton() && y.IsSingleton() && x.Eq(y):
			return trueRange
		case x.Meet(y).IsBot():
			return falseRange
		}
	case token.NEQ:
		return trueRange.Minus(compare(token.EQL, x, y))
	}
	return boolRange
}

func (a *analysis) binop(s L.Store, v *ssa.BinOp) L.Assumption {
	x, y := a.eval(s, v.X), a.eval(s, v.Y)
	if x.IsBot() || y.IsBot() {
		return a.asm.Bot().Assumption()
	}
	xr, yr := x.RangeAssumption().Interval(), y.RangeAssumption().Interval()

	var rng L.Interval
	switch v.Op {
	case token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ:
		rng = compare(v.Op, xr, yr)
	case token.ADD:
		rng = xr.Plus(yr)
	case token.SUB:
		rng = xr.Minus(yr)
	case token.MUL:
		rng = xr.Mult(yr)
	default:
		rng = kindRange(v.Type())
	}
	return elFact.AssumptionOf(elFact.TypeOf(v.Type()), clamp(v.Type(), rng))
}

func (a *analysis) unop(s L.Store, v *ssa.UnOp) L.Assumption {
	x := a.eval(s, v.X)
	if x.IsBot() {
		return x
	}
	xr := x.RangeAssumption().Interval()

	var rng L.Interval
	switch v.Op {
	case token.SUB:
		rng = xr.Neg()
	case token.NOT:
		rng = trueRange.Minus(xr).Meet(boolRange).Interval()
	case token.XOR:
		rng = xr.Neg().Minus(trueRange)
	default:
		return typeTop(v.Type())
	}
	return elFact.AssumptionOf(elFact.TypeOf(v.Type()), clamp(v.Type(), rng))
}

// convert retypes the operand. Its range survives unless it escapes the
// values of the target type.
func (a *analysis) convert(s L.Store, x ssa.Value, t types.Type) L.Assumption {
	asm := a.eval(s, x)
	if asm.IsBot() {
		return asm
	}
	rng := asm.RangeAssumption().Interval()
	if k := kindRange(t); !rng.Leq(k) {
		rng = k
	}
	return elFact.AssumptionOf(elFact.TypeOf(t), rng)
}

// transfer computes the effect of an instruction on the store.
func (a *analysis) transfer(s L.Store, insn ssa.Instruction) L.Store {
	v, ok := insn.(ssa.Value)
	if !ok || !s.Has(v) {
		return s
	}

	switch insn := insn.(type) {
	case *ssa.Phi:
		// Bound on block entry.
		return s
	case *ssa.BinOp:
		return s.Update(v, a.binop(s, insn))
	case *ssa.UnOp:
		return s.Update(v, a.unop(s, insn))
	case *ssa.Convert:
		return s.Update(v, a.convert(s, insn.X, insn.Type()))
	case *ssa.ChangeType:
		return s.Update(v, a.convert(s, insn.X, insn.Type()))
	}
	return s.InvalidateVar(v)
}

// refine strengthens the assumption about x on the edge where `x op y` holds.
func (a *analysis) refine(s L.Store, op token.Token, x, y ssa.Value) L.Store {
	e, ok := s.Get(x)
	if !ok || !isInteger(x.Type()) {
		return s
	}
	xa := e.Assumption()
	yr := a.eval(s, y).RangeAssumption().Interval()
	if yr.IsBot() {
		return s
	}

	one := L.FiniteBound(1)
	var bound L.Interval
	switch op {
	case token.LSS:
		bound = elFact.Interval(L.MinusInfinity{}, yr.HighBound().Minus(one))
	case token.LEQ:
		bound = elFact.Interval(L.MinusInfinity{}, yr.HighBound())
	case token.GTR:
		bound = elFact.Interval(yr.LowBound().Plus(one), L.PlusInfinity{})
	case token.GEQ:
		bound = elFact.Interval(yr.LowBound(), L.PlusInfinity{})
	case token.EQL:
		bound = yr
	default:
		return s
	}
	return s.Update(x, xa.UpdateRange(xa.RangeAssumption().Meet(bound)))
}

var (
	negated = map[token.Token]token.Token{
		token.LSS: token.GEQ, token.LEQ: token.GTR,
		token.GTR: token.LEQ, token.GEQ: token.LSS,
		token.EQL: token.NEQ, token.NEQ: token.EQL,
	}
	mirrored = map[token.Token]token.Token{
		token.LSS: token.GTR, token.LEQ: token.GEQ,
		token.GTR: token.LSS, token.GEQ: token.LEQ,
		token.EQL: token.EQL, token.NEQ: token.NEQ,
	}
)

// edgeState computes the store flowing from the end of pred to succ,
// refined by the branch condition of pred.
func (a *analysis) edgeState(pred, succ *ssa.BasicBlock) L.Store {
	s := a.out[pred]
	ifInsn, ok := pred.Instrs[len(pred.Instrs)-1].(*ssa.If)
	if !ok || pred.Succs[0] == pred.Succs[1] {
		return s
	}
	cond, ok := ifInsn.Cond.(*ssa.BinOp)
	if !ok {
		return s
	}
	op := cond.Op
	if _, ok := negated[op]; !ok {
		return s
	}
	if succ == pred.Succs[1] {
		op = negated[op]
	}

	s = a.refine(s, op, cond.X, cond.Y)
	return a.refine(s, mirrored[op], cond.Y, cond.X)
}
