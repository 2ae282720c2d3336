package ir

import "io"

// Program is the flat, ordered instruction sequence for one function (or,
// for top-level string data bookkeeping, the whole translation unit).
type Program []Instruction

// Debug writes the --ir dump of the whole program: one instruction per
// line, four-space indentation, deterministic across runs since it does
// nothing but walk the already-built slice (spec §6 "Output: IR dump").
func (p Program) Debug(out io.Writer) {
	for _, inst := range p {
		inst.Debug(out)
	}
}

// NameSource is satisfied by symtab.Context; kept as a narrow interface
// here so internal/ir does not need to import internal/symtab just to
// mint fresh temporary/label names.
type NameSource interface {
	NewTemp() string
	NewLabel() string
}

// Builder accumulates instructions for the function currently being
// lowered and mints fresh temporary/label names through a shared
// NameSource so names stay globally unique across the whole translation
// unit, per spec §3's uniqueness invariant.
type Builder struct {
	Names NameSource
	prog  Program
}

func NewBuilder(names NameSource) *Builder {
	return &Builder{Names: names}
}

func (b *Builder) Emit(inst Instruction) { b.prog = append(b.prog, inst) }

func (b *Builder) NewTemp() string  { return b.Names.NewTemp() }
func (b *Builder) NewLabel() string { return b.Names.NewLabel() }

func (b *Builder) Program() Program { return b.prog }
