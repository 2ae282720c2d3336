package ctype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want int
	}{
		{"char", Builtin(Char), 1},
		{"short", Builtin(Short), 2},
		{"int", Builtin(Int), 4},
		{"long", Builtin(Long), 4},
		{"float", Builtin(Float), 4},
		{"long_long", Builtin(LongLong), 8},
		{"double", Builtin(Double), 8},
		{"long_double", Builtin(LongDouble), 8},
		{"pointer to char", NewPointer(Builtin(Char)), 4},
		{"pointer to double", NewPointer(Builtin(Double)), 4},
		{"pointer to pointer", NewPointer(NewPointer(Builtin(Int))), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.Bytes())
		})
	}
}

func TestDereference(t *testing.T) {
	p := NewPointer(Builtin(Int))
	require.True(t, p.IsPointer())
	d := p.Dereference()
	assert.False(t, d.IsPointer())
	assert.Equal(t, Int, d.Base)
}

func TestEqualsAnonymousStructsNeverEqual(t *testing.T) {
	a := NewStruct("")
	b := NewStruct("")
	assert.False(t, a.Equals(b), "two anonymous structs must never compare equal")

	named1 := NewStruct("Point")
	named2 := NewStruct("Point")
	assert.True(t, named1.Equals(named2))
}

func TestCommonArithmeticConversions(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Type
		want   Type
	}{
		{"char+char promotes to int", Builtin(Char), Builtin(Char), Builtin(Int)},
		{"int+double is double", Builtin(Int), Builtin(Double), Builtin(Double)},
		{"float+double is double", Builtin(Float), Builtin(Double), Builtin(Double)},
		{"int+unsigned int is unsigned int", Builtin(Int), UnsignedBuiltin(Int), UnsignedBuiltin(Int)},
		{"long+int is long", Builtin(Long), Builtin(Int), Builtin(Long)},
		{"long_long+unsigned long long", Builtin(LongLong), UnsignedBuiltin(LongLong), UnsignedBuiltin(LongLong)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Common(tt.a, tt.b)
			assert.True(t, got.Equals(tt.want), "Common(%s,%s) = %s, want %s", tt.a, tt.b, got, tt.want)
		})
	}
}

func TestSignedUnsignedComparisonSelectsUnsigned(t *testing.T) {
	// (-1 < 1u): once the int operand is converted to the common type of
	// int and unsigned int (unsigned int), comparison must be unsigned.
	signed := Builtin(Int)
	unsigned := UnsignedBuiltin(Int)
	common := Common(signed, unsigned)
	assert.False(t, common.IsSigned())
}
