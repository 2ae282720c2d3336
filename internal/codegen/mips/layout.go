// Package mips implements the IR→MIPS emitter from spec §4.5: a fixed
// register discipline with no allocator (every instruction loads its
// operands from their stack home, computes, and stores the result back),
// modeled on arc-language-core-codegen's arch/amd64 compiler — a
// type-switch dispatch per concrete *ir.Instruction, building into a
// bytes.Buffer instead of an x86-64 byte encoder.
package mips

import (
	"fmt"

	"mipscc/internal/ctype"
	"mipscc/internal/lower"
	"mipscc/internal/symtab"
)

// frame is the stack-frame layout for one function: a deterministic
// offset($fp) for every local and temporary in FunctionStack, assigned
// after IR generation is complete (spec §4.5).
type frame struct {
	offsets map[string]int
	size    int
}

// buildFrame assigns offsets in FunctionStack.Order() order, which is
// declaration order and therefore a pure function of program text (spec
// §8: "Stack slot offsets are a function of FunctionStack contents
// only"). Slots grow upward from 0; offsetOf converts them to negative
// offsets from $fp.
func buildFrame(ctx *symtab.Context, stack *symtab.FunctionStack) *frame {
	f := &frame{offsets: make(map[string]int)}
	cur := 0
	for _, alias := range stack.Order() {
		var size int
		if arr, ok := stack.LookupArray(alias); ok {
			size = arr.TotalSize(ctx)
		} else {
			t, _ := stack.Lookup(alias)
			size = slotSize(ctx, t)
		}
		// O32 locals never need more than word alignment, even for
		// 8-byte types (those are stored as two adjacent words).
		const align = 4
		if cur%align != 0 {
			cur += align - cur%align
		}
		f.offsets[alias] = cur
		cur += size
	}
	// Round the frame to 8 bytes, matching the outgoing-arg-area rule
	// from spec §4.5 step 1 applied uniformly to the whole frame.
	if cur%8 != 0 {
		cur += 8 - cur%8
	}
	f.size = cur
	return f
}

func slotSize(ctx *symtab.Context, t ctype.Type) int {
	size := ctx.SizeOf(t)
	if size <= 0 {
		return 4
	}
	return symtab.Stride(size)
}

// offsetOf returns alias's offset relative to $fp. Locals live below the
// frame pointer in this layout, so the stored non-negative slot index is
// negated on read.
func (f *frame) offsetOf(alias string) int { return -(f.size - f.offsets[alias]) }

// Options controls the ambient knobs SPEC_FULL.md §10.3 allows a project
// to default from .mipscc.yml: whether calls are wrapped in ".option
// pic0/pic2", and a cosmetic target-CPU comment line.
type Options struct {
	UsePIC    bool
	TargetCPU string
}

// DefaultOptions matches config.Default(): pic0/pic2 wrapping on, no
// target comment.
func DefaultOptions() Options { return Options{UsePIC: true} }

// Compile lowers a whole module's functions into MIPS assembly text plus
// a shared data section for string and global data, per spec §6 "Output:
// MIPS assembly".
func Compile(mod *lower.Module, opts Options) (text []byte, data []byte, err error) {
	e := newEmitter(mod.Ctx)
	e.usePIC = opts.UsePIC
	if opts.TargetCPU != "" {
		fmt.Fprintf(e.text, "# target: %s\n", opts.TargetCPU)
	}
	for _, g := range mod.Globals {
		e.emitGlobal(g)
	}
	for _, fn := range mod.Functions {
		if err := e.emitFunction(fn); err != nil {
			return nil, nil, err
		}
	}
	return e.text.Bytes(), e.data.Bytes(), nil
}
