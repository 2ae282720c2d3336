package lower

import (
	"mipscc/internal/ast"
	"mipscc/internal/cerr"
	"mipscc/internal/ctype"
	"mipscc/internal/ir"
	"mipscc/internal/symtab"
)

// ReturnPointerAlias is the FunctionStack entry a struct-returning
// function saves its incoming hidden return pointer into (spec §4.5
// step 5); it is never visible to C source, so it is declared only for
// functions whose return type is a struct.
const ReturnPointerAlias = "$retptr"

// Function is one lowered function: its signature plus the flat IR
// program for its body and the FunctionStack the emitter consults for
// stack-frame layout (spec §4.5 "Stack frame").
type Function struct {
	Name       string
	ReturnType ctype.Type
	Params     []symtab.Binding
	ParamNames []string
	Variadic   bool
	Stack      *symtab.FunctionStack
	Program    ir.Program
}

// Global is a file-scope variable. Per SPEC_FULL.md's constant-expression
// restriction, Init (when present) has already been folded to a scalar
// value; no IR is emitted for it; the emitter writes it directly into
// the .data section.
type Global struct {
	Name       string
	Type       ctype.Type
	IsArray    bool
	ArrayCount int
	HasInit    bool
	InitLo     uint32
	InitHi     uint32
}

// Module is the whole lowered translation unit.
type Module struct {
	Ctx       *symtab.Context
	Functions []*Function
	Globals   []*Global
}

// LowerProgram lowers every top-level declaration in two passes: pass one
// registers every struct/enum/typedef tag and every function/global
// signature so forward references resolve (spec §6: "the parser must
// install enum members into the enum table during parsing"; the same
// two-pass discipline extends naturally to functions called before their
// textual declaration); pass two lowers bodies and initializers.
func LowerProgram(ctx *symtab.Context, prog *ast.Program) (*Module, error) {
	vars := symtab.NewVariableMap()
	mod := &Module{Ctx: ctx}

	for _, d := range prog.Decls {
		if err := registerDecl(ctx, vars, d); err != nil {
			return nil, err
		}
	}

	for _, d := range prog.Decls {
		switch n := d.(type) {
		case *ast.FunctionDecl:
			if n.Body == nil {
				continue
			}
			fn, err := LowerFunction(ctx, vars, n)
			if err != nil {
				return nil, err
			}
			mod.Functions = append(mod.Functions, fn)
		case *ast.VariableDecl:
			g, err := LowerGlobal(ctx, n)
			if err != nil {
				return nil, err
			}
			mod.Globals = append(mod.Globals, g)
		}
	}
	return mod, nil
}

func registerDecl(ctx *symtab.Context, vars *symtab.VariableMap, d ast.Decl) error {
	switch n := d.(type) {
	case *ast.StructDecl:
		return registerStruct(ctx, n)
	case *ast.EnumDecl:
		return registerEnum(ctx, n)
	case *ast.TypedefDecl:
		if _, exists := ctx.LookupTypedef(n.Name); exists {
			return cerr.Redeclarationf(n.Line(), "redeclaration of typedef %q", n.Name)
		}
		ctx.DeclareTypedef(n.Name, n.Type)
		return nil
	case *ast.FunctionDecl:
		return declareFunctionSignature(vars, n)
	case *ast.VariableDecl:
		binding := symtab.Binding{Alias: n.Name, Type: n.Type, IsGlobal: true}
		if !vars.Declare(n.Name, binding) {
			return cerr.Redeclarationf(n.Line(), "redeclaration of global %q", n.Name)
		}
		return nil
	}
	return cerr.InternalInvariantf(d.Line(), "registerDecl: unhandled declaration %T", d)
}

func registerStruct(ctx *symtab.Context, n *ast.StructDecl) error {
	if existing, ok := ctx.LookupStruct(n.Tag); ok && len(existing.Order) > 0 && len(n.Members) > 0 {
		return cerr.Redeclarationf(n.Line(), "redeclaration of struct %q", n.Tag)
	}
	st := symtab.NewStructureType(n.Tag)
	for _, m := range n.Members {
		if m.IsArray {
			st.AddArrayMember(m.Name, symtab.ArrayType{ElementType: m.Type, Count: m.ArrayCount})
		} else {
			st.AddMember(m.Name, m.Type)
		}
	}
	ctx.DeclareStruct(st)
	return nil
}

func registerEnum(ctx *symtab.Context, n *ast.EnumDecl) error {
	if _, ok := ctx.LookupEnum(n.Tag); ok && n.Tag != "" {
		return cerr.Redeclarationf(n.Line(), "redeclaration of enum %q", n.Tag)
	}
	e := symtab.NewEnumType(n.Tag)
	for _, m := range n.Members {
		if m.HasValue {
			e.Add(m.Name, m.Value)
		} else {
			e.Add(m.Name)
		}
	}
	ctx.DeclareEnum(e)
	return nil
}

func declareFunctionSignature(vars *symtab.VariableMap, n *ast.FunctionDecl) error {
	params := make([]ctype.Type, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.Type
	}
	binding := symtab.Binding{Alias: n.Name, Type: n.ReturnType, IsFunction: true, Params: params}
	if existing, ok := vars.Lookup(n.Name); ok {
		if !existing.IsFunction || !existing.Type.Equals(n.ReturnType) || len(existing.Params) != len(params) {
			return cerr.Redeclarationf(n.Line(), "conflicting declaration of function %q", n.Name)
		}
		return nil
	}
	if !vars.Declare(n.Name, binding) {
		return cerr.Redeclarationf(n.Line(), "redeclaration of function %q", n.Name)
	}
	return nil
}

// LowerFunction lowers one function body into a flat ir.Program, per spec
// §4.4's statement lowering rules.
func LowerFunction(ctx *symtab.Context, vars *symtab.VariableMap, n *ast.FunctionDecl) (*Function, error) {
	stack := symtab.NewFunctionStack()
	env := NewEnv(ctx, vars, stack)

	if n.ReturnType.IsStruct() {
		stack.Declare(ReturnPointerAlias, ctype.NewPointer(ctype.Builtin(ctype.Int)))
	}

	params := make([]symtab.Binding, len(n.Params))
	paramNames := make([]string, len(n.Params))

	var err error
	vars.WithScope(func() {
		for i, p := range n.Params {
			b := symtab.Binding{Alias: p.Name, Type: p.Type}
			params[i] = b
			paramNames[i] = p.Name
			stack.Declare(p.Name, p.Type)
			if !vars.Declare(p.Name, b) {
				err = cerr.Redeclarationf(n.Line(), "redeclaration of parameter %q", p.Name)
				return
			}
		}
		for _, st := range n.Body.Stmts {
			if err != nil {
				return
			}
			err = LowerStmt(env, st)
		}
	})
	if err != nil {
		return nil, err
	}

	return &Function{
		Name:       n.Name,
		ReturnType: n.ReturnType,
		Params:     params,
		ParamNames: paramNames,
		Variadic:   n.Variadic,
		Stack:      stack,
		Program:    env.B.Program(),
	}, nil
}

// LowerGlobal folds a file-scope initializer to a scalar constant. Per
// SPEC_FULL.md's supplemented restriction, a global initializer must be a
// constant expression (literals, sizeof, enum constants, and unary +/-
// over those); anything else is an InvalidOperand error, since the core
// never emits code that runs before main.
func LowerGlobal(ctx *symtab.Context, n *ast.VariableDecl) (*Global, error) {
	g := &Global{Name: n.Name, Type: n.Type, IsArray: n.IsArray, ArrayCount: n.ArrayCount}
	if n.Init == nil {
		return g, nil
	}
	v, _, err := evalConstExpr(ctx, n.Init)
	if err != nil {
		return nil, err
	}
	g.HasInit = true
	g.InitLo, g.InitHi = splitWord(uint64(v))
	return g, nil
}

// evalConstExpr evaluates the restricted constant-expression grammar
// accepted for global initializers: integer/char
// literals, enum constants, sizeof, and unary +/-/~ applied to another
// constant expression.
func evalConstExpr(ctx *symtab.Context, e ast.Expr) (int64, ctype.Type, error) {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return n.Value, n.Type, nil
	case *ast.CharLiteral:
		return int64(n.Value), ctype.Builtin(ctype.Char), nil
	case *ast.Identifier:
		if v, ok := ctx.LookupEnumConstant(n.Name); ok {
			return int64(v), ctype.Builtin(ctype.Int), nil
		}
		return 0, ctype.Type{}, cerr.InvalidOperandf(n.Line(), "global initializer must be a constant expression")
	case *ast.SizeofType:
		if n.Type.IsVoid() {
			return 0, ctype.Type{}, cerr.InvalidOperandf(n.Line(), "sizeof(void) is not valid")
		}
		return int64(ctx.SizeOf(n.Type)), ctype.Builtin(ctype.Long), nil
	case *ast.SizeofExpr:
		// sizeof(expr) never evaluates its operand; only its static
		// type matters, which this constant-folding path cannot
		// determine without a bindings table, so it is rejected here
		// and must instead be lowered through the normal MakeIR path.
		return 0, ctype.Type{}, cerr.InvalidOperandf(n.Line(), "sizeof(expr) is not permitted in a global initializer")
	case *ast.Unary:
		v, t, err := evalConstExpr(ctx, n.Operand)
		if err != nil {
			return 0, ctype.Type{}, err
		}
		switch n.Op {
		case ast.UnaryNeg:
			return -v, t, nil
		case ast.UnaryBitNot:
			return ^v, t, nil
		default:
			return 0, ctype.Type{}, cerr.InvalidOperandf(n.Line(), "operator not permitted in a constant expression")
		}
	}
	return 0, ctype.Type{}, cerr.InvalidOperandf(e.Line(), "global initializer must be a constant expression")
}
