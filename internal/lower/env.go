// Package lower implements the AST→IR lowering pipeline from spec §4.4:
// each expression/statement kind is lowered by an exhaustive type switch
// (Env.GetType / Env.MakeIR / Env.MakeIRLvalue / Env.LowerStmt) rather
// than by a MakeIR method hung directly off each ast node type — the
// "tagged variant... rather than open inheritance" design note in spec
// §9 applies equally to AST dispatch and to IR/MIPS dispatch.
package lower

import (
	"mipscc/internal/ctype"
	"mipscc/internal/ir"
	"mipscc/internal/symtab"
)

// Env bundles everything a lowering step needs: the process-wide type
// registries and name counter (Ctx), the current lexical scope chain
// (Vars), the current function's stack-slot registry (Stack), and the IR
// output buffer (B). Matches spec §4.4's "(bindings, stack, out)" method
// signatures, with Ctx folded in as the one piece of process-wide state
// spec §9's design notes ask to thread explicitly instead of leaving
// global.
type Env struct {
	Ctx   *symtab.Context
	Vars  *symtab.VariableMap
	Stack *symtab.FunctionStack
	B     *ir.Builder
}

func NewEnv(ctx *symtab.Context, vars *symtab.VariableMap, stack *symtab.FunctionStack) *Env {
	b := ir.NewBuilder(ctx)
	return &Env{Ctx: ctx, Vars: vars, Stack: stack, B: b}
}

// newTemp mints a fresh temporary and immediately registers its type in
// the current function's stack before any instruction references it, per
// spec §3's invariant ("every name appearing as source/destination of an
// IR instruction is either registered... or is a global").
func (e *Env) newTemp(t ctype.Type) string {
	name := e.B.NewTemp()
	e.Stack.Declare(name, t)
	return name
}
