package ir

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"mipscc/internal/ctype"
)

type fakeNames struct{ t, l int }

func (f *fakeNames) NewTemp() string  { f.t++; return "$T" + itoa(f.t) }
func (f *fakeNames) NewLabel() string { f.l++; return "$L" + itoa(f.l) }

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	return digits
}

func TestBuilderMintsUniqueNames(t *testing.T) {
	b := NewBuilder(&fakeNames{})
	t1 := b.NewTemp()
	t2 := b.NewTemp()
	assert.NotEqual(t, t1, t2)

	b.Emit(&Constant{Dst: t1, Type: ctype.Builtin(ctype.Int), Lo32: 14})
	b.Emit(&Move{Dst: t2, Src: t1, DstType: ctype.Builtin(ctype.Int), SrcType: ctype.Builtin(ctype.Int)})

	var buf bytes.Buffer
	b.Program().Debug(&buf)
	assert.Contains(t, buf.String(), "Constant $T1, int, 14, 0")
	assert.Contains(t, buf.String(), "Move $T2, $T1")
}

func TestProgramDebugIsDeterministic(t *testing.T) {
	prog := Program{
		&Label{Name: "$L1"},
		&Goto{Target: "$L2"},
		&GotoIfEqual{Target: "$L3", Var: "$T1", Value: 0},
	}
	var a, b bytes.Buffer
	prog.Debug(&a)
	prog.Debug(&b)
	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, "    Label $L1\n    Goto $L2\n    GotoIfEqual $L3, $T1, 0\n", a.String())
}

func TestAddHelpersSetKind(t *testing.T) {
	add := NewPointerPlusInt("$T3", "$T1", "$T2", ctype.NewPointer(ctype.Builtin(ctype.Int)), 4)
	assert.True(t, add.IsPointerPlusInt())

	sub := NewPointerMinusPointer("$T4", "$T1", "$T2", ctype.Builtin(ctype.Long), 4)
	assert.True(t, sub.IsPointerMinusPointer())
}
