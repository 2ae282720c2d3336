package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mipscc/internal/ctype"
)

func TestVariableMapInnermostWins(t *testing.T) {
	v := NewVariableMap()
	require.True(t, v.Declare("x", Binding{Alias: "x", Type: ctype.Builtin(ctype.Int)}))

	v.EnterScope()
	require.True(t, v.Declare("x", Binding{Alias: "x$1", Type: ctype.Builtin(ctype.Char)}))
	b, ok := v.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "x$1", b.Alias)
	v.LeaveScope()

	b, ok = v.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "x", b.Alias)
}

func TestVariableMapUndeclaredLookupMisses(t *testing.T) {
	v := NewVariableMap()
	_, ok := v.Lookup("nope")
	assert.False(t, ok)
}

func TestWithScopeReleasesOnPanic(t *testing.T) {
	v := NewVariableMap()
	func() {
		defer func() { recover() }()
		v.WithScope(func() {
			v.Declare("y", Binding{Alias: "y", Type: ctype.Builtin(ctype.Int)})
			panic("boom")
		})
	}()
	_, ok := v.Lookup("y")
	assert.False(t, ok, "scope must be released even when the body panics")
}

func TestLoopDestinationsRestoredAroundScopes(t *testing.T) {
	v := NewVariableMap()
	v.SetLoopDestinations("", "")
	v.EnterScope()
	v.SetLoopDestinations("$Lbreak", "$Lcontinue")
	assert.Equal(t, "$Lbreak", v.BreakDestination())
	v.LeaveScope()
	assert.Equal(t, "", v.BreakDestination())
}

func TestEnumAutoIncrement(t *testing.T) {
	e := NewEnumType("Color")
	e.Add("Red")
	e.Add("Green")
	e.Add("Blue", 10)
	e.Add("Cyan")

	assert.Equal(t, 0, e.Members["Red"])
	assert.Equal(t, 1, e.Members["Green"])
	assert.Equal(t, 10, e.Members["Blue"])
	assert.Equal(t, 11, e.Members["Cyan"])
}

func TestStructureLayoutAndStride(t *testing.T) {
	ctx := NewContext()
	point := NewStructureType("Point")
	point.AddMember("x", ctype.Builtin(ctype.Int))
	point.AddMember("y", ctype.Builtin(ctype.Int))
	ctx.DeclareStruct(point)

	assert.Equal(t, 0, point.Offset(ctx, "x"))
	assert.Equal(t, 4, point.Offset(ctx, "y"))
	assert.Equal(t, 8, point.TotalSize(ctx))

	// A char array longer than 4 bytes still strides at 1 byte/elem
	// (<=4-byte rule applies to the element, not the array).
	arr := ArrayType{ElementType: ctype.Builtin(ctype.Char), Count: 10}
	assert.Equal(t, 1, arr.Stride(ctx))
	assert.Equal(t, 10, arr.TotalSize(ctx))

	// An 8-byte double element is already a multiple of 4, so its stride stays 8.
	wide := ArrayType{ElementType: ctype.Builtin(ctype.Double), Count: 3}
	assert.Equal(t, 8, wide.Stride(ctx))
}

func TestFunctionStackOrderIsDeclarationOrder(t *testing.T) {
	fs := NewFunctionStack()
	fs.Declare("$T1", ctype.Builtin(ctype.Int))
	fs.Declare("x", ctype.Builtin(ctype.Char))
	fs.Declare("$T2", ctype.NewPointer(ctype.Builtin(ctype.Int)))

	assert.Equal(t, []string{"$T1", "x", "$T2"}, fs.Order())
}
