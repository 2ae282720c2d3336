package lower

import (
	"math"

	"mipscc/internal/ast"
	"mipscc/internal/cerr"
	"mipscc/internal/ctype"
	"mipscc/internal/ir"
)

// GetType computes an expression's static type without emitting any IR,
// per spec §4.4's "GetType(bindings) -> type; pure; no IR emitted".
func GetType(env *Env, e ast.Expr) (ctype.Type, error) {
	switch n := e.(type) {
	case *ast.Identifier:
		return identifierType(env, n)
	case *ast.IntLiteral:
		return n.Type, nil
	case *ast.FloatLiteral:
		if n.IsSingle {
			return ctype.Builtin(ctype.Float), nil
		}
		return ctype.Builtin(ctype.Double), nil
	case *ast.CharLiteral:
		return ctype.Builtin(ctype.Char), nil
	case *ast.StringLiteral:
		return ctype.NewPointer(ctype.Builtin(ctype.Char)), nil
	case *ast.Unary:
		return unaryType(env, n)
	case *ast.PostfixIncDec:
		return GetType(env, n.Operand)
	case *ast.Binary:
		return binaryType(env, n)
	case *ast.Logical:
		return ctype.Builtin(ctype.Int), nil
	case *ast.Assignment:
		return GetType(env, n.Target)
	case *ast.CompoundAssignment:
		return GetType(env, n.Target)
	case *ast.Ternary:
		return GetType(env, n.Then)
	case *ast.Call:
		return callType(env, n)
	case *ast.Member:
		return memberType(env, n)
	case *ast.Subscript:
		bt, err := GetType(env, n.Base)
		if err != nil {
			return ctype.Type{}, err
		}
		if !bt.IsPointer() {
			return ctype.Type{}, cerr.InvalidOperandf(n.Line(), "subscript of non-pointer type %s", bt.Name())
		}
		return bt.Dereference(), nil
	case *ast.Cast:
		return n.Type, nil
	case *ast.SizeofType:
		return ctype.Builtin(ctype.Long), nil
	case *ast.SizeofExpr:
		return ctype.Builtin(ctype.Long), nil
	}
	return ctype.Type{}, cerr.InternalInvariantf(e.Line(), "GetType: unhandled expression %T", e)
}

func identifierType(env *Env, n *ast.Identifier) (ctype.Type, error) {
	b, ok := env.Vars.Lookup(n.Name)
	if !ok {
		return ctype.Type{}, cerr.Undeclaredf(n.Line(), "undeclared identifier %q", n.Name)
	}
	if _, isArray := env.Stack.LookupArray(b.Alias); isArray && !b.IsGlobal {
		return ctype.NewPointer(b.Type), nil
	}
	return b.Type, nil
}

func unaryType(env *Env, n *ast.Unary) (ctype.Type, error) {
	ot, err := GetType(env, n.Operand)
	if err != nil {
		return ctype.Type{}, err
	}
	switch n.Op {
	case ast.UnaryAddr:
		return ctype.NewPointer(ot), nil
	case ast.UnaryDeref:
		if !ot.IsPointer() {
			return ctype.Type{}, cerr.InvalidOperandf(n.Line(), "dereference of non-pointer type %s", ot.Name())
		}
		return ot.Dereference(), nil
	case ast.UnaryNot:
		return ctype.Builtin(ctype.Int), nil
	case ast.UnaryNeg, ast.UnaryBitNot:
		return ctype.Promote(ot), nil
	case ast.UnaryPreInc, ast.UnaryPreDec:
		return ot, nil
	}
	return ctype.Type{}, cerr.InternalInvariantf(n.Line(), "unaryType: unhandled op %v", n.Op)
}

func binaryType(env *Env, n *ast.Binary) (ctype.Type, error) {
	lt, err := GetType(env, n.Left)
	if err != nil {
		return ctype.Type{}, err
	}
	rt, err := GetType(env, n.Right)
	if err != nil {
		return ctype.Type{}, err
	}
	switch n.Op {
	case ast.BinEQ, ast.BinNE, ast.BinLT, ast.BinGT, ast.BinLE, ast.BinGE:
		return ctype.Builtin(ctype.Int), nil
	case ast.BinAdd, ast.BinSub:
		if lt.IsPointer() && rt.IsPointer() {
			if n.Op == ast.BinSub {
				return ctype.Builtin(ctype.Long), nil
			}
			return ctype.Type{}, cerr.InvalidOperandf(n.Line(), "pointer + pointer is not a valid operation")
		}
		if lt.IsPointer() {
			return lt, nil
		}
		if rt.IsPointer() {
			return rt, nil
		}
		return ctype.Common(lt, rt), nil
	default:
		if lt.IsPointer() || rt.IsPointer() {
			return ctype.Type{}, cerr.InvalidOperandf(n.Line(), "pointer operand not valid for this operator")
		}
		return ctype.Common(lt, rt), nil
	}
}

func callType(env *Env, n *ast.Call) (ctype.Type, error) {
	id, ok := n.Callee.(*ast.Identifier)
	if !ok {
		return ctype.Type{}, cerr.InvalidOperandf(n.Line(), "call target must be a function name")
	}
	b, ok := env.Vars.Lookup(id.Name)
	if !ok {
		return ctype.Type{}, cerr.Undeclaredf(n.Line(), "call to undeclared function %q", id.Name)
	}
	if !b.IsFunction {
		return ctype.Type{}, cerr.InvalidOperandf(n.Line(), "%q is not a function", id.Name)
	}
	return b.Type, nil
}

func memberType(env *Env, n *ast.Member) (ctype.Type, error) {
	bt, err := GetType(env, n.Base)
	if err != nil {
		return ctype.Type{}, err
	}
	st := bt
	if n.Arrow {
		if !bt.IsPointer() {
			return ctype.Type{}, cerr.InvalidOperandf(n.Line(), "-> on non-pointer type %s", bt.Name())
		}
		st = bt.Dereference()
	}
	if !st.IsStruct() {
		return ctype.Type{}, cerr.InvalidOperandf(n.Line(), "member access on non-struct type %s", st.Name())
	}
	def, ok := env.Ctx.LookupStruct(st.TagName)
	if !ok {
		return ctype.Type{}, cerr.Undeclaredf(n.Line(), "undeclared struct %q", st.TagName)
	}
	mt, ok := def.Members[n.Field]
	if !ok {
		return ctype.Type{}, cerr.Undeclaredf(n.Line(), "struct %q has no member %q", st.TagName, n.Field)
	}
	return mt, nil
}

// MakeIR lowers e, emits IR into env.B, and returns the name of the
// rvalue temporary holding the result.
func MakeIR(env *Env, e ast.Expr) (string, error) {
	switch n := e.(type) {
	case *ast.Identifier:
		return makeIRIdentifier(env, n)
	case *ast.IntLiteral:
		return makeIRIntLiteral(env, n)
	case *ast.FloatLiteral:
		return makeIRFloatLiteral(env, n)
	case *ast.CharLiteral:
		return makeIRCharLiteral(env, n)
	case *ast.StringLiteral:
		return makeIRStringLiteral(env, n)
	case *ast.Unary:
		return makeIRUnary(env, n)
	case *ast.PostfixIncDec:
		return makeIRPostfix(env, n)
	case *ast.Binary:
		return makeIRBinary(env, n)
	case *ast.Logical:
		return makeIRLogical(env, n)
	case *ast.Assignment:
		return makeIRAssignment(env, n)
	case *ast.CompoundAssignment:
		return makeIRCompoundAssignment(env, n)
	case *ast.Ternary:
		return makeIRTernary(env, n)
	case *ast.Call:
		return makeIRCall(env, n)
	case *ast.Member:
		return makeIRMemberRvalue(env, n)
	case *ast.Subscript:
		return makeIRSubscriptRvalue(env, n)
	case *ast.Cast:
		return makeIRCast(env, n)
	case *ast.SizeofType:
		return makeIRSizeofType(env, n)
	case *ast.SizeofExpr:
		return makeIRSizeofExpr(env, n)
	}
	return "", cerr.InternalInvariantf(e.Line(), "MakeIR: unhandled expression %T", e)
}

// MakeIRLvalue lowers e as an lvalue, returning the temporary holding its
// address. Literals, rvalue arithmetic results, casts, and non-struct
// function-call results are not lvalues (spec §4.4).
func MakeIRLvalue(env *Env, e ast.Expr) (string, error) {
	switch n := e.(type) {
	case *ast.Identifier:
		return lvalueIdentifier(env, n)
	case *ast.Unary:
		if n.Op == ast.UnaryDeref {
			// *p as lvalue is simply p's rvalue (the address itself).
			return MakeIR(env, n.Operand)
		}
	case *ast.Member:
		return makeIRMemberAddress(env, n)
	case *ast.Subscript:
		return makeIRSubscriptAddress(env, n)
	case *ast.Ternary:
		return makeIRTernaryLvalue(env, n)
	}
	return "", cerr.NotAnLvaluef(e.Line(), "expression is not assignable")
}

func lvalueIdentifier(env *Env, n *ast.Identifier) (string, error) {
	b, ok := env.Vars.Lookup(n.Name)
	if !ok {
		return "", cerr.Undeclaredf(n.Line(), "undeclared identifier %q", n.Name)
	}
	addr := env.newTemp(ctype.NewPointer(b.Type))
	env.B.Emit(&ir.AddressOf{Dst: addr, Src: b.Alias})
	return addr, nil
}

func makeIRIdentifier(env *Env, n *ast.Identifier) (string, error) {
	b, ok := env.Vars.Lookup(n.Name)
	if !ok {
		return "", cerr.Undeclaredf(n.Line(), "undeclared identifier %q", n.Name)
	}
	// A local array evaluates to the address of its first element.
	if _, isArray := env.Stack.LookupArray(b.Alias); isArray && !b.IsGlobal {
		dst := env.newTemp(ctype.NewPointer(b.Type))
		env.B.Emit(&ir.AddressOf{Dst: dst, Src: b.Alias})
		return dst, nil
	}
	dst := env.newTemp(b.Type)
	env.B.Emit(&ir.Move{Dst: dst, Src: b.Alias, DstType: b.Type, SrcType: b.Type})
	return dst, nil
}

func makeIRIntLiteral(env *Env, n *ast.IntLiteral) (string, error) {
	t := n.Type
	dst := env.newTemp(t)
	lo, hi := splitWord(uint64(n.Value))
	env.B.Emit(&ir.Constant{Dst: dst, Type: t, Lo32: lo, Hi32: hi})
	return dst, nil
}

func makeIRFloatLiteral(env *Env, n *ast.FloatLiteral) (string, error) {
	t := ctype.Builtin(ctype.Double)
	if n.IsSingle {
		t = ctype.Builtin(ctype.Float)
	}
	dst := env.newTemp(t)
	var bits uint64
	if n.IsSingle {
		bits = uint64(float32Bits(float32(n.Value)))
	} else {
		bits = float64Bits(n.Value)
	}
	lo, hi := splitWord(bits)
	env.B.Emit(&ir.Constant{Dst: dst, Type: t, Lo32: lo, Hi32: hi})
	return dst, nil
}

func makeIRCharLiteral(env *Env, n *ast.CharLiteral) (string, error) {
	t := ctype.Builtin(ctype.Char)
	dst := env.newTemp(t)
	env.B.Emit(&ir.Constant{Dst: dst, Type: t, Lo32: uint32(uint8(n.Value))})
	return dst, nil
}

func makeIRStringLiteral(env *Env, n *ast.StringLiteral) (string, error) {
	t := ctype.NewPointer(ctype.Builtin(ctype.Char))
	dst := env.newTemp(t)
	env.B.Emit(&ir.StringLit{Dst: dst, Bytes: append([]byte(n.Value), 0)})
	return dst, nil
}

func makeIRUnary(env *Env, n *ast.Unary) (string, error) {
	switch n.Op {
	case ast.UnaryAddr:
		addr, err := MakeIRLvalue(env, n.Operand)
		if err != nil {
			return "", err
		}
		ot, err := GetType(env, n.Operand)
		if err != nil {
			return "", err
		}
		pt := ctype.NewPointer(ot)
		dst := env.newTemp(pt)
		env.B.Emit(&ir.Move{Dst: dst, Src: addr, DstType: pt, SrcType: pt})
		return dst, nil
	case ast.UnaryDeref:
		src, err := MakeIR(env, n.Operand)
		if err != nil {
			return "", err
		}
		ot, err := GetType(env, n.Operand)
		if err != nil {
			return "", err
		}
		if !ot.IsPointer() {
			return "", cerr.InvalidOperandf(n.Line(), "dereference of non-pointer type %s", ot.Name())
		}
		elem := ot.Dereference()
		dst := env.newTemp(elem)
		env.B.Emit(&ir.Dereference{Dst: dst, Src: src, ElemType: elem})
		return dst, nil
	case ast.UnaryNot:
		src, err := MakeIR(env, n.Operand)
		if err != nil {
			return "", err
		}
		dst := env.newTemp(ctype.Builtin(ctype.Int))
		env.B.Emit(&ir.Logical{Dst: dst, S1: src, Op: ir.LogicalNot})
		return dst, nil
	case ast.UnaryBitNot:
		src, err := MakeIR(env, n.Operand)
		if err != nil {
			return "", err
		}
		ot, err := GetType(env, n.Operand)
		if err != nil {
			return "", err
		}
		rt := ctype.Promote(ot)
		dst := env.newTemp(rt)
		env.B.Emit(&ir.Bitwise{Dst: dst, S1: src, Op: ir.BitNot, Type: rt})
		return dst, nil
	case ast.UnaryNeg:
		src, err := MakeIR(env, n.Operand)
		if err != nil {
			return "", err
		}
		ot, err := GetType(env, n.Operand)
		if err != nil {
			return "", err
		}
		if ot.IsStruct() {
			return "", cerr.InvalidOperandf(n.Line(), "unary minus on struct operand")
		}
		rt := ctype.Promote(ot)
		dst := env.newTemp(rt)
		env.B.Emit(&ir.Negative{Dst: dst, Src: src, Type: rt})
		return dst, nil
	case ast.UnaryPreInc, ast.UnaryPreDec:
		return makeIRPrefixIncDec(env, n)
	}
	return "", cerr.InternalInvariantf(n.Line(), "makeIRUnary: unhandled op %v", n.Op)
}

func makeIRPrefixIncDec(env *Env, n *ast.Unary) (string, error) {
	addr, err := MakeIRLvalue(env, n.Operand)
	if err != nil {
		return "", err
	}
	ot, err := GetType(env, n.Operand)
	if err != nil {
		return "", err
	}
	elemSize := 0
	if ot.IsPointer() {
		elemSize = env.Ctx.SizeOf(ot.Dereference())
	}
	cur := env.newTemp(ot)
	env.B.Emit(&ir.Dereference{Dst: cur, Src: addr, ElemType: ot})
	newVal := env.newTemp(ot)
	env.B.Emit(&ir.Increment{Dst: newVal, Src: cur, Decrement: n.Op == ast.UnaryPreDec, Type: ot, ElemSize: elemSize})
	env.B.Emit(&ir.Assign{Dst: addr, Src: newVal, ElemType: ot, SrcType: ot})
	return newVal, nil
}

func makeIRPostfix(env *Env, n *ast.PostfixIncDec) (string, error) {
	addr, err := MakeIRLvalue(env, n.Operand)
	if err != nil {
		return "", err
	}
	ot, err := GetType(env, n.Operand)
	if err != nil {
		return "", err
	}
	old := env.newTemp(ot)
	env.B.Emit(&ir.Dereference{Dst: old, Src: addr, ElemType: ot})

	elemSize := 0
	if ot.IsPointer() {
		elemSize = env.Ctx.SizeOf(ot.Dereference())
	}
	newVal := env.newTemp(ot)
	env.B.Emit(&ir.Increment{Dst: newVal, Src: old, Decrement: n.Op == ast.PostDec, Type: ot, ElemSize: elemSize})
	env.B.Emit(&ir.Assign{Dst: addr, Src: newVal, ElemType: ot, SrcType: ot})
	return old, nil
}

func makeIRBinary(env *Env, n *ast.Binary) (string, error) {
	switch n.Op {
	case ast.BinEQ, ast.BinNE, ast.BinLT, ast.BinGT, ast.BinLE, ast.BinGE:
		return makeIREquality(env, n)
	case ast.BinAdd, ast.BinSub:
		return makeIRAddSub(env, n)
	case ast.BinMul, ast.BinDiv, ast.BinMod:
		return makeIRMulDivMod(env, n)
	case ast.BinBitAnd, ast.BinBitOr, ast.BinBitXor:
		return makeIRBitwise(env, n)
	case ast.BinShl, ast.BinShr:
		return makeIRShift(env, n)
	}
	return "", cerr.InternalInvariantf(n.Line(), "makeIRBinary: unhandled op %v", n.Op)
}

func lowerOperands(env *Env, n *ast.Binary) (s1, s2 string, lt, rt ctype.Type, err error) {
	lt, err = GetType(env, n.Left)
	if err != nil {
		return
	}
	rt, err = GetType(env, n.Right)
	if err != nil {
		return
	}
	s1, err = MakeIR(env, n.Left)
	if err != nil {
		return
	}
	s2, err = MakeIR(env, n.Right)
	return
}

func makeIREquality(env *Env, n *ast.Binary) (string, error) {
	s1, s2, lt, rt, err := lowerOperands(env, n)
	if err != nil {
		return "", err
	}
	operandType := lt
	if lt.IsFloat() || rt.IsFloat() {
		operandType = ctype.Common(lt, rt)
	} else if !lt.IsPointer() {
		operandType = ctype.Common(lt, rt)
	}
	signed := lt.IsSigned() && rt.IsSigned()
	op := equalityOpFor(n.Op)
	dst := env.newTemp(ctype.Builtin(ctype.Int))
	env.B.Emit(&ir.Equality{Dst: dst, S1: s1, S2: s2, Op: op, OperandType: operandType, Signed: signed})
	return dst, nil
}

func equalityOpFor(op ast.BinaryOp) ir.EqualityOp {
	switch op {
	case ast.BinEQ:
		return ir.EqEQ
	case ast.BinNE:
		return ir.EqNE
	case ast.BinLT:
		return ir.EqLT
	case ast.BinGT:
		return ir.EqGT
	case ast.BinLE:
		return ir.EqLE
	case ast.BinGE:
		return ir.EqGE
	}
	return ir.EqEQ
}

func makeIRAddSub(env *Env, n *ast.Binary) (string, error) {
	s1, s2, lt, rt, err := lowerOperands(env, n)
	if err != nil {
		return "", err
	}

	lp, rp := lt.IsPointer(), rt.IsPointer()

	if n.Op == ast.BinSub && lp && rp {
		elemSize := env.Ctx.SizeOf(lt.Dereference())
		rtType := ctype.Builtin(ctype.Long)
		dst := env.newTemp(rtType)
		env.B.Emit(ir.NewPointerMinusPointer(dst, s1, s2, rtType, elemSize))
		return dst, nil
	}
	if lp && rp {
		return "", cerr.InvalidOperandf(n.Line(), "pointer + pointer is not a valid operation")
	}
	if lp {
		elemSize := env.Ctx.SizeOf(lt.Dereference())
		dst := env.newTemp(lt)
		if n.Op == ast.BinAdd {
			env.B.Emit(ir.NewPointerPlusInt(dst, s1, s2, lt, elemSize))
		} else {
			env.B.Emit(ir.NewPointerMinusInt(dst, s1, s2, lt, elemSize))
		}
		return dst, nil
	}
	if rp {
		// int + ptr is commuted to ptr + int; int - ptr is rejected.
		if n.Op == ast.BinSub {
			return "", cerr.InvalidOperandf(n.Line(), "integer - pointer is not a valid operation")
		}
		elemSize := env.Ctx.SizeOf(rt.Dereference())
		dst := env.newTemp(rt)
		env.B.Emit(ir.NewPointerPlusInt(dst, s2, s1, rt, elemSize))
		return dst, nil
	}

	result := ctype.Common(lt, rt)
	dst := env.newTemp(result)
	if n.Op == ast.BinAdd {
		env.B.Emit(ir.NewPlainAdd(dst, s1, s2, result))
	} else {
		env.B.Emit(ir.NewPlainSub(dst, s1, s2, result))
	}
	return dst, nil
}

func makeIRMulDivMod(env *Env, n *ast.Binary) (string, error) {
	s1, s2, lt, rt, err := lowerOperands(env, n)
	if err != nil {
		return "", err
	}
	if lt.IsPointer() || rt.IsPointer() {
		return "", cerr.InvalidOperandf(n.Line(), "pointer operand not valid for %v", n.Op)
	}
	result := ctype.Common(lt, rt)
	dst := env.newTemp(result)
	switch n.Op {
	case ast.BinMul:
		env.B.Emit(&ir.Mul{Dst: dst, S1: s1, S2: s2, Type: result})
	case ast.BinDiv:
		env.B.Emit(&ir.Div{Dst: dst, S1: s1, S2: s2, Type: result})
	case ast.BinMod:
		if result.IsFloat() {
			return "", cerr.InvalidOperandf(n.Line(), "%% is integer-only")
		}
		env.B.Emit(&ir.Mod{Dst: dst, S1: s1, S2: s2, Type: result})
	}
	return dst, nil
}

func makeIRBitwise(env *Env, n *ast.Binary) (string, error) {
	s1, s2, lt, rt, err := lowerOperands(env, n)
	if err != nil {
		return "", err
	}
	if lt.IsPointer() || rt.IsPointer() || lt.IsFloat() || rt.IsFloat() || lt.IsStruct() || rt.IsStruct() {
		return "", cerr.InvalidOperandf(n.Line(), "bitwise operator requires integer operands")
	}
	result := ctype.Common(lt, rt)
	op := map[ast.BinaryOp]ir.BitwiseOp{ast.BinBitAnd: ir.BitAnd, ast.BinBitOr: ir.BitOr, ast.BinBitXor: ir.BitXor}[n.Op]
	dst := env.newTemp(result)
	env.B.Emit(&ir.Bitwise{Dst: dst, S1: s1, S2: s2, HasS2: true, Op: op, Type: result})
	return dst, nil
}

func makeIRShift(env *Env, n *ast.Binary) (string, error) {
	s1, s2, lt, rt, err := lowerOperands(env, n)
	if err != nil {
		return "", err
	}
	if lt.IsPointer() || rt.IsPointer() || lt.IsFloat() || rt.IsFloat() {
		return "", cerr.InvalidOperandf(n.Line(), "shift operator requires integer operands")
	}
	result := ctype.Promote(lt)
	dst := env.newTemp(result)
	env.B.Emit(&ir.Shift{Dst: dst, S1: s1, S2: s2, Right: n.Op == ast.BinShr, Signed: lt.IsSigned(), Type: result})
	return dst, nil
}

// makeIRLogical lowers short-circuit && / || via labeled branches per
// spec §4.4; it never constructs a binary ir.Logical instruction.
func makeIRLogical(env *Env, n *ast.Logical) (string, error) {
	dst := env.newTemp(ctype.Builtin(ctype.Int))
	falseLabel := env.B.NewLabel()
	endLabel := env.B.NewLabel()

	s1, err := MakeIR(env, n.Left)
	if err != nil {
		return "", err
	}
	if n.Op == ast.LogAnd {
		env.B.Emit(&ir.GotoIfEqual{Target: falseLabel, Var: s1, Value: 0})
	} else {
		truthy := env.B.NewLabel()
		env.B.Emit(&ir.GotoIfEqual{Target: truthy, Var: s1, Value: 0})
		one := env.newTemp(ctype.Builtin(ctype.Int))
		env.B.Emit(&ir.Constant{Dst: one, Type: ctype.Builtin(ctype.Int), Lo32: 1})
		env.B.Emit(&ir.Move{Dst: dst, Src: one, DstType: ctype.Builtin(ctype.Int), SrcType: ctype.Builtin(ctype.Int)})
		env.B.Emit(&ir.Goto{Target: endLabel})
		env.B.Emit(&ir.Label{Name: truthy})
	}

	s2, err := MakeIR(env, n.Right)
	if err != nil {
		return "", err
	}
	truthLabel := env.B.NewLabel()
	env.B.Emit(&ir.GotoIfEqual{Target: falseLabel, Var: s2, Value: 0})
	one := env.newTemp(ctype.Builtin(ctype.Int))
	env.B.Emit(&ir.Constant{Dst: one, Type: ctype.Builtin(ctype.Int), Lo32: 1})
	env.B.Emit(&ir.Move{Dst: dst, Src: one, DstType: ctype.Builtin(ctype.Int), SrcType: ctype.Builtin(ctype.Int)})
	env.B.Emit(&ir.Goto{Target: endLabel})
	env.B.Emit(&ir.Label{Name: truthLabel})

	env.B.Emit(&ir.Label{Name: falseLabel})
	zero := env.newTemp(ctype.Builtin(ctype.Int))
	env.B.Emit(&ir.Constant{Dst: zero, Type: ctype.Builtin(ctype.Int), Lo32: 0})
	env.B.Emit(&ir.Move{Dst: dst, Src: zero, DstType: ctype.Builtin(ctype.Int), SrcType: ctype.Builtin(ctype.Int)})
	env.B.Emit(&ir.Label{Name: endLabel})
	return dst, nil
}

func makeIRAssignment(env *Env, n *ast.Assignment) (string, error) {
	addr, err := MakeIRLvalue(env, n.Target)
	if err != nil {
		return "", err
	}
	targetType, err := GetType(env, n.Target)
	if err != nil {
		return "", err
	}
	src, err := MakeIR(env, n.Value)
	if err != nil {
		return "", err
	}
	srcType, err := GetType(env, n.Value)
	if err != nil {
		return "", err
	}
	env.B.Emit(&ir.Assign{Dst: addr, Src: src, ElemType: targetType, SrcType: srcType})

	dst := env.newTemp(targetType)
	env.B.Emit(&ir.Move{Dst: dst, Src: src, DstType: targetType, SrcType: srcType})
	return dst, nil
}

func makeIRCompoundAssignment(env *Env, n *ast.CompoundAssignment) (string, error) {
	addr, err := MakeIRLvalue(env, n.Target)
	if err != nil {
		return "", err
	}
	targetType, err := GetType(env, n.Target)
	if err != nil {
		return "", err
	}
	cur := env.newTemp(targetType)
	env.B.Emit(&ir.Dereference{Dst: cur, Src: addr, ElemType: targetType})

	rhsType, err := GetType(env, n.Value)
	if err != nil {
		return "", err
	}
	rhs, err := MakeIR(env, n.Value)
	if err != nil {
		return "", err
	}

	result, err := applyBinaryOp(env, n.Line(), n.Op, cur, targetType, rhs, rhsType)
	if err != nil {
		return "", err
	}

	resultType, err := GetType(env, n.Target)
	if err != nil {
		return "", err
	}
	env.B.Emit(&ir.Assign{Dst: addr, Src: result, ElemType: resultType, SrcType: resultType})
	dst := env.newTemp(resultType)
	env.B.Emit(&ir.Move{Dst: dst, Src: result, DstType: resultType, SrcType: resultType})
	return dst, nil
}

// applyBinaryOp emits the operator portion of a compound assignment given
// already-lowered operand temporaries and their types, without
// re-evaluating either operand (spec §4.4: "single evaluation of a's
// address, no double side-effect").
func applyBinaryOp(env *Env, line int, op ast.BinaryOp, s1 string, lt ctype.Type, s2 string, rt ctype.Type) (string, error) {
	switch op {
	case ast.BinAdd, ast.BinSub:
		lp, rp := lt.IsPointer(), rt.IsPointer()
		if lp {
			elemSize := env.Ctx.SizeOf(lt.Dereference())
			dst := env.newTemp(lt)
			if op == ast.BinAdd {
				env.B.Emit(ir.NewPointerPlusInt(dst, s1, s2, lt, elemSize))
			} else {
				env.B.Emit(ir.NewPointerMinusInt(dst, s1, s2, lt, elemSize))
			}
			return dst, nil
		}
		if rp {
			return "", cerr.InvalidOperandf(line, "invalid operand for compound assignment")
		}
		result := ctype.Common(lt, rt)
		dst := env.newTemp(result)
		if op == ast.BinAdd {
			env.B.Emit(ir.NewPlainAdd(dst, s1, s2, result))
		} else {
			env.B.Emit(ir.NewPlainSub(dst, s1, s2, result))
		}
		return dst, nil
	case ast.BinMul, ast.BinDiv, ast.BinMod:
		if lt.IsPointer() || rt.IsPointer() {
			return "", cerr.InvalidOperandf(line, "pointer operand not valid for %v", op)
		}
		result := ctype.Common(lt, rt)
		dst := env.newTemp(result)
		switch op {
		case ast.BinMul:
			env.B.Emit(&ir.Mul{Dst: dst, S1: s1, S2: s2, Type: result})
		case ast.BinDiv:
			env.B.Emit(&ir.Div{Dst: dst, S1: s1, S2: s2, Type: result})
		case ast.BinMod:
			env.B.Emit(&ir.Mod{Dst: dst, S1: s1, S2: s2, Type: result})
		}
		return dst, nil
	case ast.BinBitAnd, ast.BinBitOr, ast.BinBitXor:
		result := ctype.Common(lt, rt)
		bop := map[ast.BinaryOp]ir.BitwiseOp{ast.BinBitAnd: ir.BitAnd, ast.BinBitOr: ir.BitOr, ast.BinBitXor: ir.BitXor}[op]
		dst := env.newTemp(result)
		env.B.Emit(&ir.Bitwise{Dst: dst, S1: s1, S2: s2, HasS2: true, Op: bop, Type: result})
		return dst, nil
	case ast.BinShl, ast.BinShr:
		result := ctype.Promote(lt)
		dst := env.newTemp(result)
		env.B.Emit(&ir.Shift{Dst: dst, S1: s1, S2: s2, Right: op == ast.BinShr, Signed: lt.IsSigned(), Type: result})
		return dst, nil
	}
	return "", cerr.InternalInvariantf(line, "applyBinaryOp: unhandled op %v", op)
}

func makeIRTernary(env *Env, n *ast.Ternary) (string, error) {
	resultType, err := GetType(env, n.Then)
	if err != nil {
		return "", err
	}
	dst := env.newTemp(resultType)
	elseLabel := env.B.NewLabel()
	endLabel := env.B.NewLabel()

	cond, err := MakeIR(env, n.Cond)
	if err != nil {
		return "", err
	}
	env.B.Emit(&ir.GotoIfEqual{Target: elseLabel, Var: cond, Value: 0})

	thenVal, err := MakeIR(env, n.Then)
	if err != nil {
		return "", err
	}
	env.B.Emit(&ir.Move{Dst: dst, Src: thenVal, DstType: resultType, SrcType: resultType})
	env.B.Emit(&ir.Goto{Target: endLabel})

	env.B.Emit(&ir.Label{Name: elseLabel})
	elseVal, err := MakeIR(env, n.Else)
	if err != nil {
		return "", err
	}
	env.B.Emit(&ir.Move{Dst: dst, Src: elseVal, DstType: resultType, SrcType: resultType})
	env.B.Emit(&ir.Label{Name: endLabel})
	return dst, nil
}

// makeIRTernaryLvalue handles the permissible case from spec §4.4: both
// arms are lvalues of the same type, so the result temporary holds the
// chosen address instead of a dereferenced value.
func makeIRTernaryLvalue(env *Env, n *ast.Ternary) (string, error) {
	thenType, err := GetType(env, n.Then)
	if err != nil {
		return "", err
	}
	elseType, err := GetType(env, n.Else)
	if err != nil {
		return "", err
	}
	if !thenType.Equals(elseType) {
		return "", cerr.NotAnLvaluef(n.Line(), "ternary arms have different types; not usable as an lvalue")
	}
	dst := env.newTemp(ctype.NewPointer(thenType))
	elseLabel := env.B.NewLabel()
	endLabel := env.B.NewLabel()

	cond, err := MakeIR(env, n.Cond)
	if err != nil {
		return "", err
	}
	env.B.Emit(&ir.GotoIfEqual{Target: elseLabel, Var: cond, Value: 0})

	thenAddr, err := MakeIRLvalue(env, n.Then)
	if err != nil {
		return "", err
	}
	env.B.Emit(&ir.Move{Dst: dst, Src: thenAddr, DstType: ctype.NewPointer(thenType), SrcType: ctype.NewPointer(thenType)})
	env.B.Emit(&ir.Goto{Target: endLabel})

	env.B.Emit(&ir.Label{Name: elseLabel})
	elseAddr, err := MakeIRLvalue(env, n.Else)
	if err != nil {
		return "", err
	}
	env.B.Emit(&ir.Move{Dst: dst, Src: elseAddr, DstType: ctype.NewPointer(elseType), SrcType: ctype.NewPointer(elseType)})
	env.B.Emit(&ir.Label{Name: endLabel})
	return dst, nil
}

func makeIRCall(env *Env, n *ast.Call) (string, error) {
	id, ok := n.Callee.(*ast.Identifier)
	if !ok {
		return "", cerr.InvalidOperandf(n.Line(), "call target must be a function name")
	}
	b, ok := env.Vars.Lookup(id.Name)
	if !ok {
		return "", cerr.Undeclaredf(n.Line(), "call to undeclared function %q", id.Name)
	}
	if !b.IsFunction {
		return "", cerr.InvalidOperandf(n.Line(), "%q is not a function", id.Name)
	}
	if len(n.Args) < len(b.Params) {
		return "", cerr.ArityMismatchf(n.Line(), "%q expects %d argument(s), got %d", id.Name, len(b.Params), len(n.Args))
	}

	args := make([]string, len(n.Args))
	argTypes := make([]ctype.Type, len(n.Args))
	for i, a := range n.Args {
		v, err := MakeIR(env, a)
		if err != nil {
			return "", err
		}
		t, err := GetType(env, a)
		if err != nil {
			return "", err
		}
		args[i] = v
		argTypes[i] = t
	}

	call := &ir.FunctionCall{
		Callee:       b.Alias,
		Args:         args,
		ArgTypes:     argTypes,
		Variadic:     len(n.Args) > len(b.Params),
		DeclaredArgc: len(b.Params),
		ReturnType:   b.Type,
		StructReturn: b.Type.IsStruct(),
	}
	if b.Type.IsVoid() {
		env.B.Emit(call)
		return "", nil
	}
	dst := env.newTemp(b.Type)
	call.Dst = dst
	call.HasDst = true
	env.B.Emit(call)
	return dst, nil
}

func makeIRMemberAddress(env *Env, n *ast.Member) (string, error) {
	var base string
	var baseErr error
	var st ctype.Type
	if n.Arrow {
		base, baseErr = MakeIR(env, n.Base)
		bt, err := GetType(env, n.Base)
		if err != nil {
			return "", err
		}
		st = bt.Dereference()
	} else {
		base, baseErr = MakeIRLvalue(env, n.Base)
		bt, err := GetType(env, n.Base)
		if err != nil {
			return "", err
		}
		st = bt
	}
	if baseErr != nil {
		return "", baseErr
	}
	def, ok := env.Ctx.LookupStruct(st.TagName)
	if !ok {
		return "", cerr.Undeclaredf(n.Line(), "undeclared struct %q", st.TagName)
	}
	memberType, ok := def.Members[n.Field]
	if !ok {
		return "", cerr.Undeclaredf(n.Line(), "struct %q has no member %q", st.TagName, n.Field)
	}
	offset := def.Offset(env.Ctx, n.Field)
	dst := env.newTemp(ctype.NewPointer(memberType))
	env.B.Emit(&ir.MemberAccess{Dst: dst, Base: base, Offset: offset, MemberType: memberType})
	return dst, nil
}

func makeIRMemberRvalue(env *Env, n *ast.Member) (string, error) {
	addr, err := makeIRMemberAddress(env, n)
	if err != nil {
		return "", err
	}
	mt, err := memberType(env, n)
	if err != nil {
		return "", err
	}
	dst := env.newTemp(mt)
	env.B.Emit(&ir.Dereference{Dst: dst, Src: addr, ElemType: mt})
	return dst, nil
}

func makeIRSubscriptAddress(env *Env, n *ast.Subscript) (string, error) {
	bt, err := GetType(env, n.Base)
	if err != nil {
		return "", err
	}
	if !bt.IsPointer() {
		return "", cerr.InvalidOperandf(n.Line(), "subscript of non-pointer type %s", bt.Name())
	}
	base, err := MakeIR(env, n.Base)
	if err != nil {
		return "", err
	}
	idx, err := MakeIR(env, n.Index)
	if err != nil {
		return "", err
	}
	elemSize := env.Ctx.SizeOf(bt.Dereference())
	dst := env.newTemp(bt)
	env.B.Emit(ir.NewPointerPlusInt(dst, base, idx, bt, elemSize))
	return dst, nil
}

func makeIRSubscriptRvalue(env *Env, n *ast.Subscript) (string, error) {
	addr, err := makeIRSubscriptAddress(env, n)
	if err != nil {
		return "", err
	}
	bt, err := GetType(env, n.Base)
	if err != nil {
		return "", err
	}
	elem := bt.Dereference()
	dst := env.newTemp(elem)
	env.B.Emit(&ir.Dereference{Dst: dst, Src: addr, ElemType: elem})
	return dst, nil
}

func makeIRCast(env *Env, n *ast.Cast) (string, error) {
	srcType, err := GetType(env, n.Operand)
	if err != nil {
		return "", err
	}
	if srcType.IsStruct() || n.Type.IsStruct() {
		return "", cerr.InvalidOperandf(n.Line(), "cannot cast to or from a struct type")
	}
	src, err := MakeIR(env, n.Operand)
	if err != nil {
		return "", err
	}
	dst := env.newTemp(n.Type)
	env.B.Emit(&ir.Cast{Dst: dst, Src: src, SrcType: srcType, DstType: n.Type})
	return dst, nil
}

func makeIRSizeofType(env *Env, n *ast.SizeofType) (string, error) {
	if n.Type.IsVoid() {
		return "", cerr.InvalidOperandf(n.Line(), "sizeof(void) is not valid")
	}
	size := env.Ctx.SizeOf(n.Type)
	t := ctype.Builtin(ctype.Long)
	dst := env.newTemp(t)
	env.B.Emit(&ir.Constant{Dst: dst, Type: t, Lo32: uint32(size)})
	return dst, nil
}

// makeIRSizeofExpr must not evaluate the operand's side effects: only its
// static type is consulted (spec §4.1 "sizeof").
func makeIRSizeofExpr(env *Env, n *ast.SizeofExpr) (string, error) {
	ot, err := GetType(env, n.Operand)
	if err != nil {
		return "", err
	}
	size := env.Ctx.SizeOf(ot)
	t := ctype.Builtin(ctype.Long)
	dst := env.newTemp(t)
	env.B.Emit(&ir.Constant{Dst: dst, Type: t, Lo32: uint32(size)})
	return dst, nil
}

func splitWord(v uint64) (lo, hi uint32) {
	return uint32(v), uint32(v >> 32)
}

func float32Bits(f float32) uint32 { return math.Float32bits(f) }

func float64Bits(f float64) uint64 { return math.Float64bits(f) }
