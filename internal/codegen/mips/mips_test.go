package mips

import (
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mipscc/internal/ctype"
	"mipscc/internal/fixtures"
	"mipscc/internal/lower"
	"mipscc/internal/symtab"
)

func compileFixture(t *testing.T, name string) (string, string) {
	t.Helper()
	prog, ok := fixtures.Named()[name]
	require.True(t, ok, "unknown fixture %q", name)
	ctx := symtab.NewContext()
	mod, err := lower.LowerProgram(ctx, prog)
	require.NoError(t, err)
	text, data, err := Compile(mod, DefaultOptions())
	require.NoError(t, err)
	return string(text), string(data)
}

func TestCompileFibonacciEmitsBothFunctions(t *testing.T) {
	text, _ := compileFixture(t, "fibonacci")
	assert.Contains(t, text, "fibonacci:")
	assert.Contains(t, text, "main:")
	assert.Contains(t, text, "jal fibonacci")
}

func TestCompileWrapsCallsInPICDirectivesByDefault(t *testing.T) {
	text, _ := compileFixture(t, "fibonacci")
	assert.Contains(t, text, ".option pic0")
	assert.Contains(t, text, ".option pic2")
}

func TestCompileOmitsPICDirectivesWhenDisabled(t *testing.T) {
	prog := fixtures.Fibonacci()
	ctx := symtab.NewContext()
	mod, err := lower.LowerProgram(ctx, prog)
	require.NoError(t, err)

	text, _, err := Compile(mod, Options{UsePIC: false})
	require.NoError(t, err)
	assert.NotContains(t, text, ".option pic0")
}

func TestCompileTargetCPUCommentIsLeading(t *testing.T) {
	prog := fixtures.Fibonacci()
	ctx := symtab.NewContext()
	mod, err := lower.LowerProgram(ctx, prog)
	require.NoError(t, err)

	text, _, err := Compile(mod, Options{UsePIC: true, TargetCPU: "mips32r2"})
	require.NoError(t, err)
	lines := strings.SplitN(string(text), "\n", 2)
	assert.Equal(t, "# target: mips32r2", lines[0])
}

func TestCompileStructDemoCopiesMemberAccesses(t *testing.T) {
	text, _ := compileFixture(t, "struct_demo")
	assert.Contains(t, text, "distance_squared:")
	assert.Contains(t, text, "jal distance_squared")
	assert.Contains(t, text, "addiu $8, $8, 4")
}

func TestCompileArraySumEmitsLoopLabels(t *testing.T) {
	text, _ := compileFixture(t, "array_sum")
	assert.Contains(t, text, "array_sum:")
	labels := regexp.MustCompile(`(?m)^(\$L\d+):$`).FindAllStringSubmatchIndex(text, -1)
	backEdge := false
	for _, m := range labels {
		if strings.Contains(text[m[1]:], "j "+text[m[2]:m[3]]+"\n") {
			backEdge = true
		}
	}
	assert.True(t, backEdge, "expected a backward jump to a loop-head label")
}

func TestCompileControlFlowEmitsSwitchDispatch(t *testing.T) {
	text, _ := compileFixture(t, "control_flow")
	assert.Contains(t, text, "classify:")
	assert.Contains(t, text, "beq")
}

// TestCompileFibonacciReturnsJumpToSharedEpilogue guards against a
// return nested in an if-body falling through into whatever follows it:
// both fibonacci's base-case and recursive returns must jump to the
// same epilogue label rather than only the last one reaching it.
func TestCompileFibonacciReturnsJumpToSharedEpilogue(t *testing.T) {
	text, _ := compileFixture(t, "fibonacci")
	re := regexp.MustCompile(`(?m)^(\$L\d+):\n {4}lw \$fp`)
	m := re.FindStringSubmatch(text)
	require.NotNil(t, m, "expected a label immediately preceding the frame teardown")
	label := m[1]
	jumps := strings.Count(text, "j "+label+"\n")
	assert.GreaterOrEqual(t, jumps, 2, "both fibonacci returns should jump to the shared epilogue %q", label)
}

// TestCompileControlFlowCaseReturnsJumpToSharedEpilogue covers the same
// fall-through hazard for a switch where every case ends in return.
func TestCompileControlFlowCaseReturnsJumpToSharedEpilogue(t *testing.T) {
	text, _ := compileFixture(t, "control_flow")
	re := regexp.MustCompile(`(?m)^(\$L\d+):\n {4}lw \$fp`)
	matches := re.FindAllStringSubmatch(text, -1)
	require.NotEmpty(t, matches)
	var total int
	for _, m := range matches {
		total += strings.Count(text, "j "+m[1]+"\n")
	}
	assert.GreaterOrEqual(t, total, 4, "all four classify cases should jump to their function's epilogue")
}

func TestCompileFloatCompareUsesFPUComparisonNotRawBitSlt(t *testing.T) {
	text, _ := compileFixture(t, "float_compare")
	assert.Contains(t, text, "c.lt.d")
	assert.Contains(t, text, "bc1t")
	assert.NotContains(t, text, "slt $")
}

func TestCompileStructCopyUsesByteCopyNotSingleWordMove(t *testing.T) {
	text, _ := compileFixture(t, "struct_copy")
	// scratchCopy ($12) is reserved for emitStructCopy's working
	// register and never appears in any scalar load/store path.
	assert.Contains(t, text, "$12")
}

func TestCompileStructByValuePassesArgumentAndReturnByByteCopy(t *testing.T) {
	text, _ := compileFixture(t, "struct_by_value")
	assert.Contains(t, text, "make_point:")
	assert.Contains(t, text, "sum_point:")
	assert.Contains(t, text, "jal make_point")
	assert.Contains(t, text, "jal sum_point")
	assert.Contains(t, text, "$12")
}

func TestCompileStructDemoNeverUsesStructCopyRegister(t *testing.T) {
	// struct_demo only ever passes a struct pointer, never a struct
	// value, so the dedicated struct-copy scratch register should be
	// unused.
	text, _ := compileFixture(t, "struct_demo")
	assert.NotContains(t, text, "$12")
}

func TestBuildFrameIsDeterministic(t *testing.T) {
	ctx := symtab.NewContext()
	stack := symtab.NewFunctionStack()
	stack.Declare("a", ctype.IntType)
	f1 := buildFrame(ctx, stack)
	f2 := buildFrame(ctx, stack)
	if diff := cmp.Diff(f1.offsets, f2.offsets); diff != "" {
		t.Fatalf("frame offsets diverged across identical builds (-first +second):\n%s", diff)
	}
	assert.Equal(t, f1.size, f2.size)
}
