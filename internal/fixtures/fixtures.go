// Package fixtures hand-builds small ast.Program values, standing in for
// a parser's output (spec §1: lexing/parsing is out of scope). It plays
// the role arc-language-core-codegen's examples/main.go plays for its
// teacher pipeline — worked examples driven straight through the core
// API — rewritten against this package's own ast/ctype constructors
// instead of an LLVM-style IR builder. cmd/mipscc's --ir/--compile modes
// and the tests of the root package, internal/lower and
// internal/codegen/mips drive these programs through internal/lower and
// internal/codegen/mips end to end; this package's own tests only check
// the programs' declarations.
package fixtures

import (
	"mipscc/internal/ast"
	"mipscc/internal/ctype"
)

// Named returns every fixture program keyed by name. Iteration over the
// map has no defined order; Order gives the fixed sequence.
func Named() map[string]*ast.Program {
	return map[string]*ast.Program{
		"fibonacci":       Fibonacci(),
		"struct_demo":     StructDemo(),
		"array_sum":       ArraySum(),
		"control_flow":    ControlFlow(),
		"float_compare":   FloatCompare(),
		"struct_copy":     StructCopy(),
		"struct_by_value": StructByValue(),
	}
}

// Order lists fixture names in a fixed, deterministic sequence.
var Order = []string{
	"fibonacci", "struct_demo", "array_sum", "control_flow",
	"float_compare", "struct_copy", "struct_by_value",
}

// Fibonacci builds:
//
//	int fibonacci(int n) {
//	    if (n <= 1) return n;
//	    return fibonacci(n - 1) + fibonacci(n - 2);
//	}
//	int main() { return fibonacci(10); }
func Fibonacci() *ast.Program {
	intT := ctype.IntType
	n := ast.NewIdentifier(1, "n")

	cond := ast.NewBinary(1, ast.BinLE, n, ast.NewIntLiteral(1, 1, intT))
	baseReturn := ast.NewReturnStmt(1, n)

	nMinus1 := ast.NewBinary(2, ast.BinSub, n, ast.NewIntLiteral(2, 1, intT))
	nMinus2 := ast.NewBinary(2, ast.BinSub, n, ast.NewIntLiteral(2, 2, intT))
	call1 := ast.NewCall(2, ast.NewIdentifier(2, "fibonacci"), []ast.Expr{nMinus1})
	call2 := ast.NewCall(2, ast.NewIdentifier(2, "fibonacci"), []ast.Expr{nMinus2})
	recReturn := ast.NewReturnStmt(2, ast.NewBinary(2, ast.BinAdd, call1, call2))

	fib := ast.NewFunctionDecl(1, "fibonacci", intT,
		[]ast.Param{{Name: "n", Type: intT}}, false,
		ast.NewBlock(1, []ast.Stmt{
			ast.NewIf(1, cond, baseReturn, nil),
			recReturn,
		}),
	)

	mainCall := ast.NewCall(3, ast.NewIdentifier(3, "fibonacci"), []ast.Expr{ast.NewIntLiteral(3, 10, intT)})
	main := ast.NewFunctionDecl(3, "main", intT, nil, false,
		ast.NewBlock(3, []ast.Stmt{ast.NewReturnStmt(3, mainCall)}),
	)

	return ast.NewProgram([]ast.Decl{fib, main})
}

// StructDemo builds:
//
//	struct Point { int x; int y; };
//	int distance_squared(struct Point *p) {
//	    return p->x * p->x + p->y * p->y;
//	}
//	int main() {
//	    struct Point pt;
//	    pt.x = 3;
//	    pt.y = 4;
//	    return distance_squared(&pt);
//	}
func StructDemo() *ast.Program {
	intT := ctype.IntType
	pointT := ctype.NewStruct("Point")

	structDecl := ast.NewStructDecl(1, "Point", []ast.StructMember{
		{Name: "x", Type: intT},
		{Name: "y", Type: intT},
	})

	p := ast.NewIdentifier(2, "p")
	px := ast.NewMember(2, p, "x", true)
	py := ast.NewMember(2, p, "y", true)
	body := ast.NewReturnStmt(2,
		ast.NewBinary(2, ast.BinAdd,
			ast.NewBinary(2, ast.BinMul, px, px),
			ast.NewBinary(2, ast.BinMul, py, py),
		),
	)
	distFn := ast.NewFunctionDecl(2, "distance_squared", intT,
		[]ast.Param{{Name: "p", Type: ctype.NewPointer(pointT)}}, false,
		ast.NewBlock(2, []ast.Stmt{body}),
	)

	ptDecl := ast.NewVariableDecl(3, "pt", pointT, nil)
	ptIdent := ast.NewIdentifier(3, "pt")
	setX := ast.NewExprStmt(3, ast.NewAssignment(3, ast.NewMember(3, ptIdent, "x", false), ast.NewIntLiteral(3, 3, intT)))
	setY := ast.NewExprStmt(3, ast.NewAssignment(3, ast.NewMember(3, ptIdent, "y", false), ast.NewIntLiteral(3, 4, intT)))
	callDist := ast.NewCall(3, ast.NewIdentifier(3, "distance_squared"), []ast.Expr{ast.NewUnary(3, ast.UnaryAddr, ptIdent)})
	mainFn := ast.NewFunctionDecl(3, "main", intT, nil, false,
		ast.NewBlock(3, []ast.Stmt{
			ast.NewDeclStmt(3, ptDecl),
			setX,
			setY,
			ast.NewReturnStmt(3, callDist),
		}),
	)

	return ast.NewProgram([]ast.Decl{structDecl, distFn, mainFn})
}

// ArraySum builds:
//
//	int array_sum(int *arr, int len) {
//	    int sum = 0;
//	    int i = 0;
//	    while (i < len) {
//	        sum = sum + arr[i];
//	        i = i + 1;
//	    }
//	    return sum;
//	}
//	int main() {
//	    int arr[5];
//	    arr[0] = 1; arr[1] = 2; arr[2] = 3; arr[3] = 4; arr[4] = 5;
//	    return array_sum(arr, 5);
//	}
func ArraySum() *ast.Program {
	intT := ctype.IntType

	sumDecl := ast.NewVariableDecl(1, "sum", intT, ast.NewIntLiteral(1, 0, intT))
	iDecl := ast.NewVariableDecl(1, "i", intT, ast.NewIntLiteral(1, 0, intT))

	i := ast.NewIdentifier(2, "i")
	lenIdent := ast.NewIdentifier(2, "len")
	arr := ast.NewIdentifier(2, "arr")
	sum := ast.NewIdentifier(2, "sum")

	cond := ast.NewBinary(2, ast.BinLT, i, lenIdent)
	addElem := ast.NewExprStmt(2, ast.NewAssignment(2, sum, ast.NewBinary(2, ast.BinAdd, sum, ast.NewSubscript(2, arr, i))))
	incI := ast.NewExprStmt(2, ast.NewAssignment(2, i, ast.NewBinary(2, ast.BinAdd, i, ast.NewIntLiteral(2, 1, intT))))
	loop := ast.NewWhile(2, cond, ast.NewBlock(2, []ast.Stmt{addElem, incI}))

	sumFn := ast.NewFunctionDecl(1, "array_sum", intT,
		[]ast.Param{{Name: "arr", Type: ctype.NewPointer(intT)}, {Name: "len", Type: intT}}, false,
		ast.NewBlock(1, []ast.Stmt{
			ast.NewDeclStmt(1, sumDecl),
			ast.NewDeclStmt(1, iDecl),
			loop,
			ast.NewReturnStmt(2, sum),
		}),
	)

	arrDecl := ast.NewVariableDecl(3, "arr", intT, nil)
	arrDecl.IsArray = true
	arrDecl.ArrayCount = 5
	var assigns []ast.Stmt
	assigns = append(assigns, ast.NewDeclStmt(3, arrDecl))
	arrIdent := ast.NewIdentifier(3, "arr")
	for idx := 0; idx < 5; idx++ {
		assigns = append(assigns, ast.NewExprStmt(3, ast.NewAssignment(3,
			ast.NewSubscript(3, arrIdent, ast.NewIntLiteral(3, int64(idx), intT)),
			ast.NewIntLiteral(3, int64(idx+1), intT),
		)))
	}
	callSum := ast.NewCall(3, ast.NewIdentifier(3, "array_sum"), []ast.Expr{arrIdent, ast.NewIntLiteral(3, 5, intT)})
	assigns = append(assigns, ast.NewReturnStmt(3, callSum))

	mainFn := ast.NewFunctionDecl(3, "main", intT, nil, false, ast.NewBlock(3, assigns))

	return ast.NewProgram([]ast.Decl{sumFn, mainFn})
}

// FloatCompare builds:
//
//	int is_less(double a, double b) { return a < b; }
//	int main() { return is_less(-1.0, -2.0); }
//
// -1.0's and -2.0's IEEE-754 bit patterns, read as raw signed integers,
// order the opposite way their values do; this exercises the FPU
// c.lt.d/bc1t comparison sequence rather than a bitwise slt.
func FloatCompare() *ast.Program {
	intT := ctype.IntType
	doubleT := ctype.Builtin(ctype.Double)
	a := ast.NewIdentifier(1, "a")
	b := ast.NewIdentifier(1, "b")

	cmp := ast.NewBinary(1, ast.BinLT, a, b)
	isLess := ast.NewFunctionDecl(1, "is_less", intT,
		[]ast.Param{{Name: "a", Type: doubleT}, {Name: "b", Type: doubleT}}, false,
		ast.NewBlock(1, []ast.Stmt{ast.NewReturnStmt(1, cmp)}),
	)

	callArgs := []ast.Expr{
		ast.NewUnary(2, ast.UnaryNeg, ast.NewFloatLiteral(2, 1.0, false)),
		ast.NewUnary(2, ast.UnaryNeg, ast.NewFloatLiteral(2, 2.0, false)),
	}
	callIsLess := ast.NewCall(2, ast.NewIdentifier(2, "is_less"), callArgs)
	mainFn := ast.NewFunctionDecl(2, "main", intT, nil, false,
		ast.NewBlock(2, []ast.Stmt{ast.NewReturnStmt(2, callIsLess)}),
	)

	return ast.NewProgram([]ast.Decl{isLess, mainFn})
}

// StructCopy builds:
//
//	struct Point { int x; int y; };
//	int main() {
//	    struct Point a; a.x = 7; a.y = 9;
//	    struct Point b; b = a;
//	    struct Point *p; p = &b;
//	    struct Point c; c = *p;
//	    return c.x + c.y;
//	}
//
// b = a exercises a struct-typed Move (rvalue load of a) and a struct
// Assign (byte-copy into b's address); c = *p exercises a struct
// Dereference byte-copy instead of a single-word load.
func StructCopy() *ast.Program {
	intT := ctype.IntType
	pointT := ctype.NewStruct("Point")
	pointPtrT := ctype.NewPointer(pointT)

	structDecl := ast.NewStructDecl(1, "Point", []ast.StructMember{
		{Name: "x", Type: intT},
		{Name: "y", Type: intT},
	})

	aDecl := ast.NewVariableDecl(2, "a", pointT, nil)
	aIdent := ast.NewIdentifier(2, "a")
	setAX := ast.NewExprStmt(2, ast.NewAssignment(2, ast.NewMember(2, aIdent, "x", false), ast.NewIntLiteral(2, 7, intT)))
	setAY := ast.NewExprStmt(2, ast.NewAssignment(2, ast.NewMember(2, aIdent, "y", false), ast.NewIntLiteral(2, 9, intT)))

	bDecl := ast.NewVariableDecl(3, "b", pointT, nil)
	bIdent := ast.NewIdentifier(3, "b")
	copyAB := ast.NewExprStmt(3, ast.NewAssignment(3, bIdent, aIdent))

	pDecl := ast.NewVariableDecl(4, "p", pointPtrT, nil)
	pIdent := ast.NewIdentifier(4, "p")
	setP := ast.NewExprStmt(4, ast.NewAssignment(4, pIdent, ast.NewUnary(4, ast.UnaryAddr, bIdent)))

	cDecl := ast.NewVariableDecl(5, "c", pointT, nil)
	cIdent := ast.NewIdentifier(5, "c")
	derefAssign := ast.NewExprStmt(5, ast.NewAssignment(5, cIdent, ast.NewUnary(5, ast.UnaryDeref, pIdent)))

	ret := ast.NewReturnStmt(6, ast.NewBinary(6, ast.BinAdd,
		ast.NewMember(6, cIdent, "x", false),
		ast.NewMember(6, cIdent, "y", false),
	))

	mainFn := ast.NewFunctionDecl(1, "main", intT, nil, false,
		ast.NewBlock(1, []ast.Stmt{
			ast.NewDeclStmt(2, aDecl), setAX, setAY,
			ast.NewDeclStmt(3, bDecl), copyAB,
			ast.NewDeclStmt(4, pDecl), setP,
			ast.NewDeclStmt(5, cDecl), derefAssign,
			ret,
		}),
	)

	return ast.NewProgram([]ast.Decl{structDecl, mainFn})
}

// StructByValue builds:
//
//	struct Point { int x; int y; };
//	struct Point make_point(int x, int y) {
//	    struct Point r; r.x = x; r.y = y;
//	    return r;
//	}
//	int sum_point(struct Point p) { return p.x + p.y; }
//	int main() {
//	    struct Point pt; pt = make_point(3, 4);
//	    return sum_point(pt);
//	}
//
// make_point exercises the hidden return-pointer convention; the call
// to sum_point exercises a struct-by-value argument spilled with a
// byte-copy instead of a single scalar word.
func StructByValue() *ast.Program {
	intT := ctype.IntType
	pointT := ctype.NewStruct("Point")

	structDecl := ast.NewStructDecl(1, "Point", []ast.StructMember{
		{Name: "x", Type: intT},
		{Name: "y", Type: intT},
	})

	rDecl := ast.NewVariableDecl(2, "r", pointT, nil)
	rIdent := ast.NewIdentifier(2, "r")
	setRX := ast.NewExprStmt(2, ast.NewAssignment(2, ast.NewMember(2, rIdent, "x", false), ast.NewIdentifier(2, "x")))
	setRY := ast.NewExprStmt(2, ast.NewAssignment(2, ast.NewMember(2, rIdent, "y", false), ast.NewIdentifier(2, "y")))
	makePoint := ast.NewFunctionDecl(2, "make_point", pointT,
		[]ast.Param{{Name: "x", Type: intT}, {Name: "y", Type: intT}}, false,
		ast.NewBlock(2, []ast.Stmt{
			ast.NewDeclStmt(2, rDecl), setRX, setRY,
			ast.NewReturnStmt(2, rIdent),
		}),
	)

	p := ast.NewIdentifier(3, "p")
	sumPoint := ast.NewFunctionDecl(3, "sum_point", intT,
		[]ast.Param{{Name: "p", Type: pointT}}, false,
		ast.NewBlock(3, []ast.Stmt{
			ast.NewReturnStmt(3, ast.NewBinary(3, ast.BinAdd,
				ast.NewMember(3, p, "x", false),
				ast.NewMember(3, p, "y", false),
			)),
		}),
	)

	ptDecl := ast.NewVariableDecl(4, "pt", pointT, nil)
	ptIdent := ast.NewIdentifier(4, "pt")
	callMake := ast.NewCall(4, ast.NewIdentifier(4, "make_point"), []ast.Expr{ast.NewIntLiteral(4, 3, intT), ast.NewIntLiteral(4, 4, intT)})
	assignPt := ast.NewExprStmt(4, ast.NewAssignment(4, ptIdent, callMake))
	callSum := ast.NewCall(5, ast.NewIdentifier(5, "sum_point"), []ast.Expr{ptIdent})
	mainFn := ast.NewFunctionDecl(4, "main", intT, nil, false,
		ast.NewBlock(4, []ast.Stmt{
			ast.NewDeclStmt(4, ptDecl), assignPt,
			ast.NewReturnStmt(5, callSum),
		}),
	)

	return ast.NewProgram([]ast.Decl{structDecl, makePoint, sumPoint, mainFn})
}

// ControlFlow builds:
//
//	int classify(int n) {
//	    switch (n) {
//	    case 0: return 100;
//	    case 1: return 200;
//	    case 2: return 300;
//	    default: return -1;
//	    }
//	}
//	int main() { return classify(1); }
func ControlFlow() *ast.Program {
	intT := ctype.IntType
	n := ast.NewIdentifier(1, "n")

	cases := []ast.SwitchCase{
		{Value: 0, Body: []ast.Stmt{ast.NewReturnStmt(1, ast.NewIntLiteral(1, 100, intT))}},
		{Value: 1, Body: []ast.Stmt{ast.NewReturnStmt(1, ast.NewIntLiteral(1, 200, intT))}},
		{Value: 2, Body: []ast.Stmt{ast.NewReturnStmt(1, ast.NewIntLiteral(1, 300, intT))}},
		{IsDefault: true, Body: []ast.Stmt{ast.NewReturnStmt(1, ast.NewUnary(1, ast.UnaryNeg, ast.NewIntLiteral(1, 1, intT)))}},
	}
	classifyFn := ast.NewFunctionDecl(1, "classify", intT,
		[]ast.Param{{Name: "n", Type: intT}}, false,
		ast.NewBlock(1, []ast.Stmt{ast.NewSwitch(1, n, cases)}),
	)

	callClassify := ast.NewCall(2, ast.NewIdentifier(2, "classify"), []ast.Expr{ast.NewIntLiteral(2, 1, intT)})
	mainFn := ast.NewFunctionDecl(2, "main", intT, nil, false,
		ast.NewBlock(2, []ast.Stmt{ast.NewReturnStmt(2, callClassify)}),
	)

	return ast.NewProgram([]ast.Decl{classifyFn, mainFn})
}
