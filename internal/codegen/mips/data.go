package mips

import (
	"fmt"

	"mipscc/internal/lower"
	"mipscc/internal/symtab"
)

// emitStringLiteral writes a static null-terminated byte sequence into
// the data stream, per spec §6: ".align 2", a generated label, and
// ".ascii" with octal escapes for any non-alphanumeric, non-space byte.
func (e *emitter) emitStringLiteral(dst string, data []byte) string {
	label := fmt.Sprintf("string_data_%s", dst[1:])
	fmt.Fprintf(e.data, ".align 2\n%s:\n    .ascii \"%s\"\n", label, asciiEscape(data))
	return label
}

func asciiEscape(data []byte) string {
	out := make([]byte, 0, len(data)*2)
	for _, b := range data {
		switch {
		case b >= '0' && b <= '9', b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b == ' ':
			out = append(out, b)
		default:
			out = append(out, []byte(fmt.Sprintf("\\%03o", b))...)
		}
	}
	return string(out)
}

// emitGlobal writes a file-scope variable into the data section: a label
// followed by its initial bytes (zero-filled with .space when
// uninitialized), per the global-variable supplement in SPEC_FULL.md.
func (e *emitter) emitGlobal(g *lower.Global) {
	size := e.ctx.SizeOf(g.Type)
	if g.IsArray {
		elemSize := e.ctx.SizeOf(g.Type)
		size = symtab.Stride(elemSize) * g.ArrayCount
	}
	if size <= 0 {
		size = 4
	}
	fmt.Fprintf(e.data, ".align 2\n%s:\n", g.Name)
	if !g.HasInit {
		fmt.Fprintf(e.data, "    .space %d\n", size)
		return
	}
	switch {
	case size <= 1:
		fmt.Fprintf(e.data, "    .byte %d\n", g.InitLo&0xff)
	case size <= 2:
		fmt.Fprintf(e.data, "    .half %d\n", g.InitLo&0xffff)
	case size <= 4:
		fmt.Fprintf(e.data, "    .word %d\n", g.InitLo)
	default:
		fmt.Fprintf(e.data, "    .word %d\n    .word %d\n", g.InitLo, g.InitHi)
	}
}
