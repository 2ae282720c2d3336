package mips

import "mipscc/internal/ctype"

// O32 register names, per spec §4.5 / GLOSSARY.
const (
	regZero = "$0"
	regV0   = "$2"
	regV1   = "$3"
	regA0   = "$4"
	regA1   = "$5"
	regA2   = "$6"
	regA3   = "$7"
	regSP   = "$sp"
	regFP   = "$fp"
	regRA   = "$ra"

	// Scratch integer registers; never live across instructions (spec
	// §4.5 "Scratch register"), so the emitter can reuse the same pair
	// for every instruction's operands without tracking liveness.
	scratch1 = "$8"
	scratch2 = "$9"
	scratch3 = "$10"
	scratch4 = "$11"

	// scratchCopy is reserved for emitStructCopy's word buffer so a
	// struct copy never clobbers an address its caller loaded into one
	// of the other scratch registers.
	scratchCopy = "$12"

	fpScratch1 = "$f0"
	fpScratch2 = "$f2"
	fpArg0     = "$f12"
	fpArg1     = "$f14"
)

var intArgRegs = [4]string{regA0, regA1, regA2, regA3}

// argSlot computes a declared or variadic argument's byte size in the
// outgoing argument area, applying the O32 alignment rule from spec
// §4.5 step 3 ("align offset to 4, or 8 for doubles").
func argSlot(ctx argSizer, t ctype.Type) (size, align int) {
	size = ctx.SizeOf(t)
	if size <= 0 {
		size = 4
	}
	align = 4
	if t.Base == ctype.Double || t.Base == ctype.LongLong || t.Base == ctype.LongDouble {
		align = 8
	}
	return size, align
}

// argSizer is the narrow slice of *symtab.Context the ABI helpers need,
// kept as an interface so this file does not import internal/symtab just
// for SizeOf.
type argSizer interface {
	SizeOf(t ctype.Type) int
}

func alignUp(n, align int) int {
	if n%align == 0 {
		return n
	}
	return n + (align - n%align)
}

// variadicPromote applies C's default argument promotion for variadic
// calls (spec §4.5 step 4): float is promoted to double; everything else
// passes at its already-promoted type.
func variadicPromote(t ctype.Type) ctype.Type {
	if !t.IsPointer() && t.Base == ctype.Float {
		return ctype.Builtin(ctype.Double)
	}
	return t
}
