package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mipscc/internal/ast"
	"mipscc/internal/cerr"
	"mipscc/internal/ctype"
	"mipscc/internal/fixtures"
	"mipscc/internal/symtab"
)

func TestLowerProgramFixturesSucceed(t *testing.T) {
	for name, prog := range fixtures.Named() {
		t.Run(name, func(t *testing.T) {
			ctx := symtab.NewContext()
			mod, err := LowerProgram(ctx, prog)
			require.NoError(t, err)
			assert.NotEmpty(t, mod.Functions)
		})
	}
}

func TestLowerProgramForwardReferenceResolves(t *testing.T) {
	intT := ctype.IntType
	callB := ast.NewCall(1, ast.NewIdentifier(1, "b"), nil)
	a := ast.NewFunctionDecl(1, "a", intT, nil, false,
		ast.NewBlock(1, []ast.Stmt{ast.NewReturnStmt(1, callB)}))
	b := ast.NewFunctionDecl(2, "b", intT, nil, false,
		ast.NewBlock(2, []ast.Stmt{ast.NewReturnStmt(2, ast.NewIntLiteral(2, 1, intT))}))

	ctx := symtab.NewContext()
	mod, err := LowerProgram(ctx, ast.NewProgram([]ast.Decl{a, b}))
	require.NoError(t, err)
	assert.Len(t, mod.Functions, 2)
}

func TestLowerGlobalConstantExpression(t *testing.T) {
	ctx := symtab.NewContext()
	n := ast.NewVariableDecl(1, "count", ctype.IntType, ast.NewIntLiteral(1, 42, ctype.IntType))
	g, err := LowerGlobal(ctx, n)
	require.NoError(t, err)
	assert.True(t, g.HasInit)
	assert.Equal(t, uint32(42), g.InitLo)
}

func TestLowerGlobalRejectsNonConstantInitializer(t *testing.T) {
	ctx := symtab.NewContext()
	call := ast.NewCall(1, ast.NewIdentifier(1, "f"), nil)
	n := ast.NewVariableDecl(1, "x", ctype.IntType, call)
	_, err := LowerGlobal(ctx, n)
	assert.Error(t, err)
}

func TestLowerFunctionReturnsIRForSimpleArithmetic(t *testing.T) {
	intT := ctype.IntType
	body := ast.NewBlock(1, []ast.Stmt{
		ast.NewReturnStmt(1, ast.NewBinary(1, ast.BinAdd, ast.NewIntLiteral(1, 2, intT), ast.NewIntLiteral(1, 3, intT))),
	})
	fn := ast.NewFunctionDecl(1, "add_literals", intT, nil, false, body)

	ctx := symtab.NewContext()
	vars := symtab.NewVariableMap()
	require.NoError(t, declareFunctionSignature(vars, fn))

	lowered, err := LowerFunction(ctx, vars, fn)
	require.NoError(t, err)
	assert.NotEmpty(t, lowered.Program)
}

func TestBreakOutsideLoopIsInvalidOperand(t *testing.T) {
	intT := ctype.IntType
	fn := ast.NewFunctionDecl(1, "bad", intT, nil, false,
		ast.NewBlock(1, []ast.Stmt{ast.NewBreakStmt(1)}))

	ctx := symtab.NewContext()
	vars := symtab.NewVariableMap()
	require.NoError(t, declareFunctionSignature(vars, fn))

	_, err := LowerFunction(ctx, vars, fn)
	assert.Error(t, err)
	assert.True(t, cerr.IsKind(err, cerr.InvalidOperand))
}
