package mipscc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mipscc/internal/codegen/mips"
	"mipscc/internal/fixtures"
)

// These exercise the end-to-end pipeline (AST -> IR -> MIPS) the way
// spec §8's numbered scenarios describe, against the fixtures standing
// in for parser output.
func TestUnitCompileIRThenMIPSForEveryFixture(t *testing.T) {
	for name, prog := range fixtures.Named() {
		t.Run(name, func(t *testing.T) {
			unit := NewUnit(prog)

			mod, err := unit.CompileIR()
			require.NoError(t, err)
			assert.NotEmpty(t, mod.Functions)

			dump := DebugIR(mod)
			assert.Contains(t, string(dump), "main:")

			text, _, err := unit.CompileMIPS(mips.DefaultOptions())
			require.NoError(t, err)
			assert.Contains(t, string(text), "main:")
			assert.Contains(t, string(text), "jr $ra")
		})
	}
}

func TestNewUnitStartsWithFreshContextPerCall(t *testing.T) {
	u1 := NewUnit(fixtures.Fibonacci())
	u2 := NewUnit(fixtures.Fibonacci())
	assert.NotSame(t, u1.Ctx, u2.Ctx)
}
