package symtab

import "mipscc/internal/ctype"

// FunctionStack maps every local (declared variable or compiler-generated
// temporary) in the current function to its type, accumulated during IR
// generation and consumed afterward by the emitter to compute the stack
// frame size and per-variable offsets. It also tracks which aliases are
// arrays, since a plain ctype.Type cannot carry an element count.
type FunctionStack struct {
	order   []string
	types   map[string]ctype.Type
	arrays  map[string]ArrayType
}

func NewFunctionStack() *FunctionStack {
	return &FunctionStack{
		types:  make(map[string]ctype.Type),
		arrays: make(map[string]ArrayType),
	}
}

// Declare registers a local or temporary. Re-declaring the same alias
// with a different type is a programming error in the lowering code
// (temporaries are fresh per generation, per spec §3's invariant); the
// second declaration wins silently since that invariant is enforced by
// construction, not by this table.
func (f *FunctionStack) Declare(alias string, t ctype.Type) {
	if _, ok := f.types[alias]; !ok {
		f.order = append(f.order, alias)
	}
	f.types[alias] = t
}

// DeclareArray registers an array-typed local, recording both its
// element type (for ordinary lookups) and its element count (for stride
// and total-size computation).
func (f *FunctionStack) DeclareArray(alias string, arr ArrayType) {
	f.Declare(alias, arr.ElementType)
	f.arrays[alias] = arr
}

func (f *FunctionStack) Lookup(alias string) (ctype.Type, bool) {
	t, ok := f.types[alias]
	return t, ok
}

func (f *FunctionStack) LookupArray(alias string) (ArrayType, bool) {
	a, ok := f.arrays[alias]
	return a, ok
}

// Order returns aliases in declaration order. Stack slot offsets are a
// deterministic function of this order and nothing else, per spec §8.
func (f *FunctionStack) Order() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}
