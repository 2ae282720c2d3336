package mips

import (
	"bytes"
	"fmt"

	"mipscc/internal/cerr"
	"mipscc/internal/ctype"
	"mipscc/internal/ir"
	"mipscc/internal/lower"
	"mipscc/internal/symtab"
)

type emitter struct {
	ctx    *symtab.Context
	text   *bytes.Buffer
	data   *bytes.Buffer
	frame  *frame
	usePIC bool

	// retType and epilogue are fixed for the duration of emitFunction;
	// Return reads them to decide how to hand back its value and where
	// to jump instead of falling through.
	retType  ctype.Type
	epilogue string
}

func newEmitter(ctx *symtab.Context) *emitter {
	return &emitter{ctx: ctx, text: new(bytes.Buffer), data: new(bytes.Buffer), usePIC: true}
}

func (e *emitter) line(format string, args ...any) {
	fmt.Fprintf(e.text, "    "+format+"\n", args...)
}

func (e *emitter) label(name string) {
	fmt.Fprintf(e.text, "%s:\n", name)
}

// emitFunction lays out the stack frame, emits the prologue, dispatches
// every IR instruction, and emits the epilogue. Every branch-like
// instruction is immediately followed by a nop (branch delay slot, spec
// §4.5).
func (e *emitter) emitFunction(fn *lower.Function) error {
	e.frame = buildFrame(e.ctx, fn.Stack)
	e.retType = fn.ReturnType
	e.epilogue = e.ctx.NewLabel()

	e.label(fn.Name)
	e.line("addiu $sp, $sp, -%d", e.frame.size+8)
	e.line("sw $ra, %d($sp)", e.frame.size+4)
	e.line("sw $fp, %d($sp)", e.frame.size)
	e.line("addiu $fp, $sp, %d", e.frame.size)

	if err := e.emitArgSave(fn); err != nil {
		return err
	}

	for _, inst := range fn.Program {
		if err := e.emitInstruction(inst); err != nil {
			return err
		}
	}

	e.label(e.epilogue)
	e.emitEpilogue(fn)
	return nil
}

// emitArgSave stores the incoming argument words from $4..$7 into their
// declared parameters' stack homes, mirroring the callee side of spec
// §4.5 step 6. A struct-returning function first saves the hidden
// return pointer out of $a0 (spec §4.5 step 5), shifting its declared
// parameters one register over.
func (e *emitter) emitArgSave(fn *lower.Function) error {
	argRegs := intArgRegs[:]
	if fn.ReturnType.IsStruct() {
		e.storeVar(lower.ReturnPointerAlias, regA0)
		argRegs = intArgRegs[1:]
	}
	for i, name := range fn.ParamNames {
		if i >= len(argRegs) {
			break
		}
		off := e.frame.offsetOf(name)
		t := fn.Params[i].Type
		e.storeWidth(argRegs[i], regFP, off, e.ctx.SizeOf(t))
	}
	return nil
}

func (e *emitter) emitEpilogue(fn *lower.Function) {
	e.line("lw $fp, %d($sp)", e.frame.size)
	e.line("lw $ra, %d($sp)", e.frame.size+4)
	e.line("addiu $sp, $sp, %d", e.frame.size+8)
	e.line("jr $ra")
	e.line("nop")
}

// emitInstruction is the exhaustive type-switch dispatch over concrete
// *ir.Instruction values, the MIPS counterpart of
// arc-language-core-codegen's arch/amd64 compileInstruction switch.
func (e *emitter) emitInstruction(inst ir.Instruction) error {
	switch n := inst.(type) {
	case *ir.Label:
		e.label(n.Name)
	case *ir.Goto:
		e.line("j %s", n.Target)
		e.line("nop")
	case *ir.GotoIfEqual:
		e.loadToReg(scratch1, n.Var)
		e.line("addiu %s, $0, %d", scratch2, n.Value)
		e.line("beq %s, %s, %s", scratch1, scratch2, n.Target)
		e.line("nop")
	case *ir.Return:
		e.emitReturn(n)
	case *ir.Constant:
		e.emitConstant(n)
	case *ir.StringLit:
		label := e.emitStringLiteral(n.Dst, n.Bytes)
		e.line("lui %s, %%hi(%s)", scratch1, label)
		e.line("addiu %s, %s, %%lo(%s)", scratch1, scratch1, label)
		e.storeVar(n.Dst, scratch1)
	case *ir.Move:
		e.emitMove(n)
	case *ir.Assign:
		e.emitAssign(n)
	case *ir.AddressOf:
		e.emitAddressOf(n)
	case *ir.Dereference:
		e.emitDereference(n)
	case *ir.Logical:
		e.emitLogical(n)
	case *ir.Bitwise:
		e.emitBitwise(n)
	case *ir.Equality:
		e.emitEquality(n)
	case *ir.Shift:
		e.emitShift(n)
	case *ir.Negative:
		e.emitNegative(n)
	case *ir.Increment:
		e.emitIncrement(n)
	case *ir.Add:
		e.emitAdd(n)
	case *ir.Sub:
		e.emitSub(n)
	case *ir.Mul:
		e.emitMul(n)
	case *ir.Div:
		e.emitDiv(n)
	case *ir.Mod:
		e.emitMod(n)
	case *ir.Cast:
		e.emitCast(n)
	case *ir.FunctionCall:
		e.emitCall(n)
	case *ir.MemberAccess:
		e.emitMemberAccess(n)
	default:
		return cerr.InternalInvariantf(0, "emitInstruction: unhandled instruction %T", inst)
	}
	return nil
}

// loadToReg loads variable v (a local/temp name) from its stack home
// into reg. Globals load via lui/addiu %hi/%lo per spec §4.5.
func (e *emitter) loadToReg(reg, v string) {
	if off, ok := e.frame.offsets[v]; ok {
		e.line("lw %s, %d($fp)", reg, -(e.frame.size - off))
		return
	}
	e.line("lui %s, %%hi(%s)", reg, v)
	e.line("lw %s, %%lo(%s)(%s)", reg, v, reg)
}

func (e *emitter) storeVar(v, reg string) {
	off := e.frame.offsetOf(v)
	e.line("sw %s, %d($fp)", reg, off)
}

// loadHighWord loads the high word (offset +4) of an 8-byte local or
// global v into reg, mirroring loadToReg's low-word addressing.
func (e *emitter) loadHighWord(reg, v string) {
	if off, ok := e.frame.offsets[v]; ok {
		e.line("lw %s, %d($fp)", reg, -(e.frame.size-off)+4)
		return
	}
	e.line("lui %s, %%hi(%s)", reg, v)
	e.line("lw %s, %%lo(%s+4)(%s)", reg, v, reg)
}

// storeHighWord stores reg into the high word (offset +4) of local v.
// Move/Assign/Dereference destinations are always local temps (spec
// §3's "every temporary is registered in FunctionStack"), so unlike
// loadHighWord this never needs a global form.
func (e *emitter) storeHighWord(v, reg string) {
	off := e.frame.offsetOf(v)
	e.line("sw %s, %d($fp)", reg, off+4)
}

// loadAddress computes &v into reg: a frame-relative addiu for a local,
// or a lui/addiu %hi/%lo pair for a global.
func (e *emitter) loadAddress(reg, v string) {
	if off, ok := e.frame.offsets[v]; ok {
		e.line("addiu %s, $fp, %d", reg, -(e.frame.size-off))
		return
	}
	e.line("lui %s, %%hi(%s)", reg, v)
	e.line("addiu %s, %s, %%lo(%s)", reg, reg, v)
}

// storeWidth emits sb/sh/sw from reg into off(base), the width chosen
// from the destination element size (spec §4.5 "Byte widths of
// stores").
func (e *emitter) storeWidth(reg, base string, off, size int) {
	switch {
	case size <= 1:
		e.line("sb %s, %d(%s)", reg, off, base)
	case size <= 2:
		e.line("sh %s, %d(%s)", reg, off, base)
	default:
		e.line("sw %s, %d(%s)", reg, off, base)
	}
}

func (e *emitter) emitConstant(n *ir.Constant) {
	e.line("addiu %s, $0, %d", scratch1, int32(n.Lo32))
	e.storeVar(n.Dst, scratch1)
	if n.Type.Bytes() > 4 {
		e.line("addiu %s, $0, %d", scratch2, int32(n.Hi32))
		e.line("sw %s, %d($fp)", scratch2, e.frame.offsetOf(n.Dst)+4)
	}
}

func (e *emitter) emitMove(n *ir.Move) {
	if n.DstType.IsStruct() {
		e.loadAddress(scratch1, n.Src)
		e.loadAddress(scratch2, n.Dst)
		e.emitStructCopy(scratch1, scratch2, e.ctx.SizeOf(n.DstType))
		return
	}
	e.loadToReg(scratch1, n.Src)
	wide := n.SrcType.Bytes() > 4 && n.DstType.Bytes() > 4 && n.SrcType.IsFloat() == n.DstType.IsFloat()
	if wide {
		e.loadHighWord(scratch2, n.Src)
	}
	e.convert(scratch1, n.SrcType, n.DstType)
	e.storeVar(n.Dst, scratch1)
	if wide {
		e.storeHighWord(n.Dst, scratch2)
	}
}

func (e *emitter) emitAssign(n *ir.Assign) {
	e.loadToReg(scratch1, n.Dst) // address
	if n.ElemType.IsStruct() {
		e.loadAddress(scratch2, n.Src)
		e.emitStructCopy(scratch2, scratch1, e.ctx.SizeOf(n.ElemType))
		return
	}
	e.loadToReg(scratch2, n.Src)
	wide := n.SrcType.Bytes() > 4 && n.ElemType.Bytes() > 4 && n.SrcType.IsFloat() == n.ElemType.IsFloat()
	var hi string
	if wide {
		hi = scratch3
		e.loadHighWord(hi, n.Src)
	}
	e.convert(scratch2, n.SrcType, n.ElemType)
	e.storeWidth(scratch2, scratch1, 0, e.ctx.SizeOf(n.ElemType))
	if wide {
		e.storeWidth(hi, scratch1, 4, 4)
	}
}

func (e *emitter) emitAddressOf(n *ir.AddressOf) {
	e.loadAddress(scratch1, n.Src)
	e.storeVar(n.Dst, scratch1)
}

func (e *emitter) emitDereference(n *ir.Dereference) {
	e.loadToReg(scratch1, n.Src) // address
	if n.ElemType.IsStruct() {
		e.loadAddress(scratch2, n.Dst)
		e.emitStructCopy(scratch1, scratch2, e.ctx.SizeOf(n.ElemType))
		return
	}
	e.line("lw %s, 0(%s)", scratch2, scratch1)
	e.storeVar(n.Dst, scratch2)
	if n.ElemType.Bytes() > 4 {
		e.line("lw %s, 4(%s)", scratch3, scratch1)
		e.storeHighWord(n.Dst, scratch3)
	}
}

// emitReturn hands the return value (if any) back through the fixed
// $2/$3 or hidden-pointer convention and always jumps to the function's
// single epilogue label (spec §4.5) instead of falling through, so a
// return nested inside an if/while/for body actually leaves the
// function.
func (e *emitter) emitReturn(n *ir.Return) {
	if n.HasVar {
		if e.retType.IsStruct() {
			e.loadAddress(scratch1, n.Var)
			e.loadToReg(scratch2, lower.ReturnPointerAlias)
			e.emitStructCopy(scratch1, scratch2, e.ctx.SizeOf(e.retType))
		} else {
			e.loadToReg(regV0, n.Var)
			if e.retType.Bytes() > 4 {
				e.loadHighWord(regV1, n.Var)
			}
		}
	}
	e.line("j %s", e.epilogue)
	e.line("nop")
}

func (e *emitter) emitLogical(n *ir.Logical) {
	e.loadToReg(scratch1, n.S1)
	switch n.Op {
	case ir.LogicalNot:
		e.line("sltu %s, %s, 1", scratch1, scratch1)
	case ir.LogicalAnd, ir.LogicalOr:
		e.loadToReg(scratch2, n.S2)
		e.line("sltu %s, $0, %s", scratch1, scratch1)
		e.line("sltu %s, $0, %s", scratch2, scratch2)
		if n.Op == ir.LogicalAnd {
			e.line("and %s, %s, %s", scratch1, scratch1, scratch2)
		} else {
			e.line("or %s, %s, %s", scratch1, scratch1, scratch2)
		}
	}
	e.storeVar(n.Dst, scratch1)
}

func (e *emitter) emitBitwise(n *ir.Bitwise) {
	e.loadToReg(scratch1, n.S1)
	switch n.Op {
	case ir.BitNot:
		e.line("nor %s, %s, $0", scratch1, scratch1)
	default:
		e.loadToReg(scratch2, n.S2)
		switch n.Op {
		case ir.BitAnd:
			e.line("and %s, %s, %s", scratch1, scratch1, scratch2)
		case ir.BitOr:
			e.line("or %s, %s, %s", scratch1, scratch1, scratch2)
		case ir.BitXor:
			e.line("xor %s, %s, %s", scratch1, scratch1, scratch2)
		}
	}
	e.storeVar(n.Dst, scratch1)
}

func (e *emitter) emitEquality(n *ir.Equality) {
	if n.OperandType.IsFloat() {
		e.emitFloatEquality(n)
		return
	}
	e.loadToReg(scratch1, n.S1)
	e.loadToReg(scratch2, n.S2)
	switch n.Op {
	case ir.EqEQ:
		e.line("xor %s, %s, %s", scratch3, scratch1, scratch2)
		e.line("sltu %s, $0, %s", scratch3, scratch3)
		e.line("xori %s, %s, 1", scratch3, scratch3)
	case ir.EqNE:
		e.line("xor %s, %s, %s", scratch3, scratch1, scratch2)
		e.line("sltu %s, $0, %s", scratch3, scratch3)
	case ir.EqLT:
		e.emitSlt(scratch3, scratch1, scratch2, n.Signed)
	case ir.EqGT:
		e.emitSlt(scratch3, scratch2, scratch1, n.Signed)
	case ir.EqLE:
		e.emitSlt(scratch3, scratch2, scratch1, n.Signed)
		e.line("xori %s, %s, 1", scratch3, scratch3)
	case ir.EqGE:
		e.emitSlt(scratch3, scratch1, scratch2, n.Signed)
		e.line("xori %s, %s, 1", scratch3, scratch3)
	}
	e.storeVar(n.Dst, scratch3)
}

// emitFloatEquality compares two float/double operands with the FPU
// c.<cond>.<fmt> instruction followed by a bc1t/bc1f branch (spec §4.3:
// "Operand types may be int/pointer or float/double"), since raw-bit
// slt/sltu is wrong for negative IEEE-754 values. Operands already share
// OperandType, matching emitFloatBinary's existing convention for mixed
// arithmetic.
func (e *emitter) emitFloatEquality(n *ir.Equality) {
	e.loadFloatToReg(fpScratch1, n.S1, n.OperandType)
	e.loadFloatToReg(fpScratch2, n.S2, n.OperandType)
	suf := floatSuffix(n.OperandType)

	a, b := fpScratch1, fpScratch2
	cond := "c.lt." + suf
	invert := false
	switch n.Op {
	case ir.EqEQ:
		cond = "c.eq." + suf
	case ir.EqNE:
		cond = "c.eq." + suf
		invert = true
	case ir.EqGT:
		a, b = fpScratch2, fpScratch1
	case ir.EqLE:
		cond = "c.le." + suf
	case ir.EqGE:
		cond = "c.le." + suf
		a, b = fpScratch2, fpScratch1
	}

	e.line("%s %s, %s", cond, a, b)
	e.line("nop")
	branch := "bc1t"
	if invert {
		branch = "bc1f"
	}
	trueLabel := e.ctx.NewLabel()
	endLabel := e.ctx.NewLabel()
	e.line("%s %s", branch, trueLabel)
	e.line("nop")
	e.line("addiu %s, $0, 0", scratch3)
	e.line("j %s", endLabel)
	e.line("nop")
	e.label(trueLabel)
	e.line("addiu %s, $0, 1", scratch3)
	e.label(endLabel)
	e.storeVar(n.Dst, scratch3)
}

func (e *emitter) emitSlt(dst, a, b string, signed bool) {
	if signed {
		e.line("slt %s, %s, %s", dst, a, b)
	} else {
		e.line("sltu %s, %s, %s", dst, a, b)
	}
}

func (e *emitter) emitShift(n *ir.Shift) {
	e.loadToReg(scratch1, n.S1)
	e.loadToReg(scratch2, n.S2)
	switch {
	case !n.Right:
		e.line("sllv %s, %s, %s", scratch1, scratch1, scratch2)
	case n.Signed:
		e.line("srav %s, %s, %s", scratch1, scratch1, scratch2)
	default:
		e.line("srlv %s, %s, %s", scratch1, scratch1, scratch2)
	}
	e.storeVar(n.Dst, scratch1)
}

func (e *emitter) emitNegative(n *ir.Negative) {
	if n.Type.IsFloat() {
		e.loadFloatToReg(fpScratch1, n.Src, n.Type)
		e.line("neg.%s %s, %s", floatSuffix(n.Type), fpScratch1, fpScratch1)
		e.storeFloatVar(n.Dst, fpScratch1, n.Type)
		return
	}
	e.loadToReg(scratch1, n.Src)
	e.line("sub %s, $0, %s", scratch1, scratch1)
	e.storeVar(n.Dst, scratch1)
}

func (e *emitter) emitIncrement(n *ir.Increment) {
	delta := 1
	if n.Type.IsPointer() {
		delta = n.ElemSize
	}
	if n.Decrement {
		delta = -delta
	}
	if n.Type.IsFloat() {
		e.loadFloatToReg(fpScratch1, n.Src, n.Type)
		e.line("li.%s %s, %d", floatSuffix(n.Type), fpScratch2, sign(n.Decrement))
		e.line("add.%s %s, %s, %s", floatSuffix(n.Type), fpScratch1, fpScratch1, fpScratch2)
		e.storeFloatVar(n.Dst, fpScratch1, n.Type)
		return
	}
	e.loadToReg(scratch1, n.Src)
	e.line("addiu %s, %s, %d", scratch1, scratch1, delta)
	e.storeVar(n.Dst, scratch1)
}

func sign(neg bool) int {
	if neg {
		return -1
	}
	return 1
}

func (e *emitter) emitAdd(n *ir.Add) {
	if n.ResultType.IsFloat() {
		e.emitFloatBinary(n.Dst, n.S1, n.S2, n.ResultType, "add")
		return
	}
	e.loadToReg(scratch1, n.S1)
	e.loadToReg(scratch2, n.S2)
	if n.IsPointerPlusInt() {
		e.line("addiu %s, $0, %d", scratch3, n.PointerElemSize)
		e.line("mul %s, %s, %s", scratch2, scratch2, scratch3)
	}
	e.line("add %s, %s, %s", scratch1, scratch1, scratch2)
	e.storeVar(n.Dst, scratch1)
}

func (e *emitter) emitSub(n *ir.Sub) {
	if n.ResultType.IsFloat() {
		e.emitFloatBinary(n.Dst, n.S1, n.S2, n.ResultType, "sub")
		return
	}
	e.loadToReg(scratch1, n.S1)
	e.loadToReg(scratch2, n.S2)
	switch {
	case n.IsPointerMinusPointer():
		e.line("sub %s, %s, %s", scratch1, scratch1, scratch2)
		e.line("addiu %s, $0, %d", scratch3, n.PointerElemSize)
		e.line("div %s, %s", scratch1, scratch3)
		e.line("mflo %s", scratch1)
	case n.IsPointerMinusInt():
		e.line("addiu %s, $0, %d", scratch3, n.PointerElemSize)
		e.line("mul %s, %s, %s", scratch2, scratch2, scratch3)
		e.line("sub %s, %s, %s", scratch1, scratch1, scratch2)
	default:
		e.line("sub %s, %s, %s", scratch1, scratch1, scratch2)
	}
	e.storeVar(n.Dst, scratch1)
}

func (e *emitter) emitMul(n *ir.Mul) {
	if n.Type.IsFloat() {
		e.emitFloatBinary(n.Dst, n.S1, n.S2, n.Type, "mul")
		return
	}
	e.loadToReg(scratch1, n.S1)
	e.loadToReg(scratch2, n.S2)
	e.line("mul %s, %s, %s", scratch1, scratch1, scratch2)
	e.storeVar(n.Dst, scratch1)
}

func (e *emitter) emitDiv(n *ir.Div) {
	if n.Type.IsFloat() {
		e.emitFloatBinary(n.Dst, n.S1, n.S2, n.Type, "div")
		return
	}
	e.loadToReg(scratch1, n.S1)
	e.loadToReg(scratch2, n.S2)
	if n.Type.IsSigned() {
		e.line("div %s, %s", scratch1, scratch2)
	} else {
		e.line("divu %s, %s", scratch1, scratch2)
	}
	e.line("mflo %s", scratch1)
	e.storeVar(n.Dst, scratch1)
}

func (e *emitter) emitMod(n *ir.Mod) {
	e.loadToReg(scratch1, n.S1)
	e.loadToReg(scratch2, n.S2)
	if n.Type.IsSigned() {
		e.line("div %s, %s", scratch1, scratch2)
	} else {
		e.line("divu %s, %s", scratch1, scratch2)
	}
	e.line("mfhi %s", scratch1)
	e.storeVar(n.Dst, scratch1)
}

func (e *emitter) emitFloatBinary(dst, s1, s2 string, t ctype.Type, op string) {
	e.loadFloatToReg(fpScratch1, s1, t)
	e.loadFloatToReg(fpScratch2, s2, t)
	e.line("%s.%s %s, %s, %s", op, floatSuffix(t), fpScratch1, fpScratch1, fpScratch2)
	e.storeFloatVar(dst, fpScratch1, t)
}

func (e *emitter) emitCast(n *ir.Cast) {
	e.loadToReg(scratch1, n.Src)
	e.convert(scratch1, n.SrcType, n.DstType)
	e.storeVar(n.Dst, scratch1)
}

// convert implements §4.1's convert_type rules: int<->int widen/narrow,
// int<->float via FPU, pointer<->int as a bit-copy (both already 4 bytes
// so no instruction is needed beyond the load/store already performed by
// the caller).
func (e *emitter) convert(reg string, from, to ctype.Type) {
	if from.IsPointer() || to.IsPointer() {
		return
	}
	if from.IsFloat() && !to.IsFloat() {
		e.line("mtc1 %s, %s", reg, fpScratch1)
		e.line("cvt.w.%s %s, %s", floatSuffix(from), fpScratch1, fpScratch1)
		e.line("mfc1 %s, %s", reg, fpScratch1)
		return
	}
	if !from.IsFloat() && to.IsFloat() {
		e.line("mtc1 %s, %s", reg, fpScratch1)
		e.line("cvt.%s.w %s, %s", floatSuffix(to), fpScratch1, fpScratch1)
		e.line("mfc1 %s, %s", reg, fpScratch1)
		return
	}
	if from.IsFloat() && to.IsFloat() && from.Base != to.Base {
		e.line("mtc1 %s, %s", reg, fpScratch1)
		e.line("cvt.%s.%s %s, %s", floatSuffix(to), floatSuffix(from), fpScratch1, fpScratch1)
		e.line("mfc1 %s, %s", reg, fpScratch1)
		return
	}
	if !from.IsFloat() && !to.IsFloat() {
		fromSize, toSize := from.Bytes(), to.Bytes()
		if toSize < fromSize {
			switch toSize {
			case 1:
				e.line("andi %s, %s, 0xff", reg, reg)
				if !to.Unsigned {
					e.line("sll %s, %s, 24", reg, reg)
					e.line("sra %s, %s, 24", reg, reg)
				}
			case 2:
				e.line("andi %s, %s, 0xffff", reg, reg)
				if !to.Unsigned {
					e.line("sll %s, %s, 16", reg, reg)
					e.line("sra %s, %s, 16", reg, reg)
				}
			}
		}
	}
}

func floatSuffix(t ctype.Type) string {
	if t.Base == ctype.Float {
		return "s"
	}
	return "d"
}

func (e *emitter) loadFloatToReg(reg, v string, t ctype.Type) {
	e.loadToReg(scratch1, v)
	e.line("mtc1 %s, %s", scratch1, reg)
	if t.Bytes() > 4 {
		e.line("lw %s, %d($fp)", scratch2, e.frame.offsetOf(v)+4)
		e.line("mtc1 %s, %s", scratch2, nextFpReg(reg))
	}
}

func (e *emitter) storeFloatVar(dst, reg string, t ctype.Type) {
	e.line("mfc1 %s, %s", scratch1, reg)
	e.storeVar(dst, scratch1)
	if t.Bytes() > 4 {
		e.line("mfc1 %s, %s", scratch2, nextFpReg(reg))
		e.line("sw %s, %d($fp)", scratch2, e.frame.offsetOf(dst)+4)
	}
}

func nextFpReg(r string) string {
	if r == fpScratch1 {
		return "$f1"
	}
	return "$f3"
}

// emitMemberAccess computes dst = base + offset as a pointer-sized
// value, per spec §4.3.
func (e *emitter) emitMemberAccess(n *ir.MemberAccess) {
	e.loadToReg(scratch1, n.Base)
	e.line("addiu %s, %s, %d", scratch1, scratch1, n.Offset)
	e.storeVar(n.Dst, scratch1)
}
