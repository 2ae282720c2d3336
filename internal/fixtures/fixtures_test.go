package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mipscc/internal/ast"
)

func TestNamedCoversOrder(t *testing.T) {
	named := Named()
	for _, name := range Order {
		prog, ok := named[name]
		require.True(t, ok, "fixture %q missing from Named()", name)
		assert.NotEmpty(t, prog.Decls)
	}
}

func TestFibonacciHasTwoFunctions(t *testing.T) {
	prog := Fibonacci()
	assert.Len(t, prog.Decls, 2)
}

func TestStructDemoDeclaresStructBeforeUse(t *testing.T) {
	prog := StructDemo()
	require.Len(t, prog.Decls, 3)
	_, isStruct := prog.Decls[0].(*ast.StructDecl)
	assert.True(t, isStruct)
}
