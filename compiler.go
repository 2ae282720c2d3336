// Package mipscc is the compiler core's top-level entry point, playing
// the role arc-language-core-codegen's own root-level codegen.go plays
// for its teacher pipeline: a thin orchestration layer wiring the
// internal packages (internal/lower, internal/codegen/mips) into the
// two outputs the driver surface exposes, --ir and --compile/-S (spec §6).
package mipscc

import (
	"bytes"

	"mipscc/internal/ast"
	"mipscc/internal/codegen/mips"
	"mipscc/internal/lower"
	"mipscc/internal/symtab"
)

// Unit is one translation unit: an AST program paired with the symbol
// table its declarations populate. NewUnit is the sole constructor so
// every caller starts from a fresh Context, matching §4.2's invariant
// that a Context is scoped to a single translation unit.
type Unit struct {
	Program *ast.Program
	Ctx     *symtab.Context
}

// NewUnit wraps prog for compilation with a fresh, empty Context.
func NewUnit(prog *ast.Program) *Unit {
	return &Unit{Program: prog, Ctx: symtab.NewContext()}
}

// CompileIR lowers the unit's AST to the flat three-address IR described
// in spec §4.3, returning one *lower.Module covering every function and
// global in the translation unit.
func (u *Unit) CompileIR() (*lower.Module, error) {
	return lower.LowerProgram(u.Ctx, u.Program)
}

// CompileMIPS lowers the unit straight to MIPS assembly text and a data
// section, per spec §4.5 / §6 "Output: MIPS assembly". opts is typically
// derived from internal/config's effective configuration.
func (u *Unit) CompileMIPS(opts mips.Options) (text []byte, data []byte, err error) {
	mod, err := u.CompileIR()
	if err != nil {
		return nil, nil, err
	}
	return mips.Compile(mod, opts)
}

// DebugIR renders the --ir dump text for mod, one instruction per line
// per function, in declaration order.
func DebugIR(mod *lower.Module) []byte {
	var buf bytes.Buffer
	for _, fn := range mod.Functions {
		buf.WriteString(fn.Name)
		buf.WriteString(":\n")
		fn.Program.Debug(&buf)
	}
	return buf.Bytes()
}
