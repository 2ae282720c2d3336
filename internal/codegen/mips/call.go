package mips

import (
	"mipscc/internal/ir"
)

// emitCall implements the O32 calling-convention subset from spec §4.5
// steps 1-9: build the outgoing argument area, spill arguments into it,
// load the first four words into $4..$7 (and $f12/$f14 for a leading
// float argument), wrap the call in .option pic0/pic2, and route the
// result back to the caller's destination temporary.
func (e *emitter) emitCall(n *ir.FunctionCall) {
	structRetSize := 0
	if n.StructReturn {
		structRetSize = alignUp(e.ctx.SizeOf(n.ReturnType), 4)
	}

	offsets := make([]int, len(n.Args))
	cur := structRetSize
	for i, t := range n.ArgTypes {
		at := t
		if i >= n.DeclaredArgc {
			at = variadicPromote(t)
		}
		size, align := argSlot(e.ctx, at)
		cur = alignUp(cur, align)
		offsets[i] = cur
		cur += size
	}
	total := alignUp(cur, 8)

	e.line("addiu $sp, $sp, -%d", total)

	for i, arg := range n.Args {
		at := n.ArgTypes[i]
		if i >= n.DeclaredArgc {
			at = variadicPromote(at)
		}
		if n.ArgTypes[i].IsStruct() {
			e.loadAddress(scratch1, arg)
			e.line("addiu %s, $sp, %d", scratch2, offsets[i])
			e.emitStructCopy(scratch1, scratch2, e.ctx.SizeOf(n.ArgTypes[i]))
			continue
		}
		e.loadToReg(scratch1, arg)
		e.convert(scratch1, n.ArgTypes[i], at)
		e.storeWidth(scratch1, regSP, offsets[i], e.ctx.SizeOf(at))
	}

	if n.StructReturn {
		// The hidden struct-return slot lives at the very front of this
		// call's own outgoing-argument area, so the address handed to
		// the callee in $a0 stays inside the space just reserved.
		e.line("addiu %s, $sp, 0", regA0)
	}

	argRegs := intArgRegs[:]
	if n.StructReturn {
		argRegs = intArgRegs[1:]
	}
	for i := 0; i < len(argRegs) && i < len(n.Args); i++ {
		if n.ArgTypes[i].IsStruct() {
			continue
		}
		off := offsets[i]
		e.line("lw %s, %d($sp)", argRegs[i], off)
		if i == 0 && n.ArgTypes[i].IsFloat() {
			e.line("lw %s, %d($sp)", scratch1, off)
			e.line("mtc1 %s, %s", scratch1, fpArg0)
		}
		if i == 1 && n.ArgTypes[i].IsFloat() {
			e.line("lw %s, %d($sp)", scratch1, off)
			e.line("mtc1 %s, %s", scratch1, fpArg1)
		}
	}

	if e.usePIC {
		e.line(".option pic0")
	}
	e.line("jal %s", n.Callee)
	e.line("nop")
	if e.usePIC {
		e.line(".option pic2")
	}

	if n.HasDst {
		e.emitCallResult(n)
	}

	e.line("addiu $sp, $sp, %d", total)
}

func (e *emitter) emitCallResult(n *ir.FunctionCall) {
	switch {
	case n.StructReturn:
		// The callee wrote the struct into the hidden slot reserved at
		// $sp+0; copy it into dst's own stack home.
		e.line("addiu %s, $sp, 0", scratch3)
		e.line("addiu %s, $fp, %d", scratch4, e.frame.offsetOf(n.Dst))
		e.emitStructCopy(scratch3, scratch4, e.ctx.SizeOf(n.ReturnType))
	case n.ReturnType.IsFloat():
		e.line("mfc1 %s, %s", scratch1, fpScratch1)
		e.storeVar(n.Dst, scratch1)
		if n.ReturnType.Bytes() > 4 {
			e.line("mfc1 %s, %s", scratch2, "$f1")
			e.line("sw %s, %d($fp)", scratch2, e.frame.offsetOf(n.Dst)+4)
		}
	default:
		e.storeVar(n.Dst, regV0)
	}
}

// emitStructCopy is a byte-wise loop copying size bytes from address
// src to address dst, advancing 4 bytes at a time with a 1-byte
// trailing remainder, per spec §4.5 "Struct copy".
func (e *emitter) emitStructCopy(src, dst string, size int) {
	off := 0
	for ; size-off >= 4; off += 4 {
		e.line("lw %s, %d(%s)", scratchCopy, off, src)
		e.line("sw %s, %d(%s)", scratchCopy, off, dst)
	}
	for ; off < size; off++ {
		e.line("lb %s, %d(%s)", scratchCopy, off, src)
		e.line("sb %s, %d(%s)", scratchCopy, off, dst)
	}
}
