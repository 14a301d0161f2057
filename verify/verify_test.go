package verify

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fconst(v float64) *constant.Float {
	return constant.NewFloat(types.Double, v)
}

// diamond builds a function of the shape entry -> (a | b) -> merge.  The
// merge block is left unterminated for the test to fill in.
func diamond() (f *ir.Func, a, b, merge *ir.Block) {
	f = ir.NewModule().NewFunc("f", types.Double)

	entry := f.NewBlock("entry")
	a = f.NewBlock("a")
	b = f.NewBlock("b")
	merge = f.NewBlock("merge")

	cond := entry.NewFCmp(enum.FPredONE, fconst(1), fconst(0))
	entry.NewCondBr(cond, a, b)
	a.NewBr(merge)
	b.NewBr(merge)

	return f, a, b, merge
}

// requireDefect asserts that err is a verification error mentioning the
// given message fragment.
func requireDefect(t *testing.T, err error, fragment string) *Error {
	t.Helper()

	require.Error(t, err)

	verr, ok := err.(*Error)
	require.True(t, ok, "expected a verification error, got %T", err)
	assert.Contains(t, verr.Message, fragment)

	return verr
}

// -----------------------------------------------------------------------------

func TestVerifyFunction_WellFormed(t *testing.T) {
	m := ir.NewModule()
	x := ir.NewParam("x", types.Double)
	f := m.NewFunc("pick", types.Double, x)

	entry := f.NewBlock("entry")
	cell := entry.NewAlloca(types.Double)
	cell.SetName("x.addr")
	entry.NewStore(x, cell)
	load := entry.NewLoad(types.Double, cell)
	cond := entry.NewFCmp(enum.FPredONE, load, fconst(0))

	then := f.NewBlock("then")
	els := f.NewBlock("else")
	merge := f.NewBlock("merge")
	entry.NewCondBr(cond, then, els)
	then.NewBr(merge)
	els.NewBr(merge)

	phi := merge.NewPhi(ir.NewIncoming(fconst(1), then), ir.NewIncoming(fconst(2), els))
	merge.NewRet(phi)

	require.NoError(t, Function(f))
	require.NoError(t, Module(m))
}

func TestVerifyFunction_UnnamedLocalsNeverCollide(t *testing.T) {
	// The shape lowering emits for `def add(a, b) a + b`: named storage
	// cells, unnamed loads and arithmetic.  Unnamed values all carry ID 0
	// until the printer assigns IDs, so treating them as named locals would
	// reject any function with two or more of them.
	a := ir.NewParam("a", types.Double)
	b := ir.NewParam("b", types.Double)
	f := ir.NewModule().NewFunc("add", types.Double, a, b)

	entry := f.NewBlock("entry")

	aCell := entry.NewAlloca(types.Double)
	aCell.SetName("a.addr")
	bCell := entry.NewAlloca(types.Double)
	bCell.SetName("b.addr")
	entry.NewStore(a, aCell)
	entry.NewStore(b, bCell)

	sum := entry.NewFAdd(
		entry.NewLoad(types.Double, aCell),
		entry.NewLoad(types.Double, bCell),
	)
	entry.NewRet(sum)

	assert.NoError(t, Function(f))
}

func TestVerifyFunction_DeclarationIsTrivial(t *testing.T) {
	f := ir.NewModule().NewFunc("sin", types.Double, ir.NewParam("x", types.Double))
	assert.NoError(t, Function(f))
}

func TestVerifyFunction_MissingTerminator(t *testing.T) {
	f := ir.NewModule().NewFunc("f", types.Double)
	body := f.NewBlock("body")
	body.NewFAdd(fconst(1), fconst(2))

	verr := requireDefect(t, Function(f), "no terminator")
	assert.Equal(t, "f", verr.FuncName)
	assert.Equal(t, "body", verr.BlockName)
	assert.Equal(t, `function "f", block "body": block has no terminator`, verr.Error())
}

func TestVerifyFunction_EntryWithPredecessors(t *testing.T) {
	f := ir.NewModule().NewFunc("f", types.Double)
	entry := f.NewBlock("entry")
	loop := f.NewBlock("loop")
	entry.NewBr(loop)
	loop.NewBr(entry)

	requireDefect(t, Function(f), "entry block has predecessors")
}

func TestVerifyFunction_BranchToForeignBlock(t *testing.T) {
	m := ir.NewModule()

	g := m.NewFunc("g", types.Double)
	gBody := g.NewBlock("g.body")
	gBody.NewRet(fconst(0))

	f := m.NewFunc("f", types.Double)
	f.NewBlock("entry").NewBr(gBody)

	requireDefect(t, Function(f), "branch to block \"g.body\" of another function")
}

func TestVerifyFunction_PhiIncomingCountMismatch(t *testing.T) {
	f, a, _, merge := diamond()

	phi := merge.NewPhi(ir.NewIncoming(fconst(1), a))
	merge.NewRet(phi)

	requireDefect(t, Function(f), "phi has 1 incomings but block has 2 predecessors")
}

func TestVerifyFunction_PhiAfterNonPhi(t *testing.T) {
	f, a, b, merge := diamond()

	sum := merge.NewFAdd(fconst(1), fconst(2))
	phi := merge.NewPhi(ir.NewIncoming(fconst(1), a), ir.NewIncoming(fconst(2), b))
	merge.NewRet(merge.NewFAdd(sum, phi))

	requireDefect(t, Function(f), "phi instruction after non-phi instruction")
}

func TestVerifyFunction_PhiFromNonPredecessor(t *testing.T) {
	f, a, _, merge := diamond()
	entry := f.Blocks[0]

	phi := merge.NewPhi(ir.NewIncoming(fconst(1), a), ir.NewIncoming(fconst(2), entry))
	merge.NewRet(phi)

	requireDefect(t, Function(f), "which is not a predecessor")
}

func TestVerifyFunction_PhiDuplicateIncoming(t *testing.T) {
	f, a, _, merge := diamond()

	phi := merge.NewPhi(ir.NewIncoming(fconst(1), a), ir.NewIncoming(fconst(2), a))
	merge.NewRet(phi)

	requireDefect(t, Function(f), "multiple incomings from \"a\"")
}

func TestVerifyFunction_ReturnTypeMismatch(t *testing.T) {
	f := ir.NewModule().NewFunc("f", types.Double)
	f.NewBlock("entry").NewRet(nil)
	requireDefect(t, Function(f), "void return from function returning double")

	f = ir.NewModule().NewFunc("f", types.Double)
	f.NewBlock("entry").NewRet(constant.True)
	requireDefect(t, Function(f), "returned value has type i1, function returns double")
}

func TestVerifyFunction_CondBrConditionType(t *testing.T) {
	f := ir.NewModule().NewFunc("f", types.Double)
	entry := f.NewBlock("entry")
	a := f.NewBlock("a")
	b := f.NewBlock("b")
	a.NewRet(fconst(1))
	b.NewRet(fconst(2))

	// An unconverted double is the classic mistake here.
	entry.NewCondBr(fconst(1), a, b)

	requireDefect(t, Function(f), "branch condition has type double, want i1")
}

func TestVerifyFunction_DuplicateLocalNames(t *testing.T) {
	f := ir.NewModule().NewFunc("f", types.Double,
		ir.NewParam("x", types.Double), ir.NewParam("x", types.Double))
	f.NewBlock("entry").NewRet(fconst(0))
	requireDefect(t, Function(f), "multiple parameters named \"x\"")

	f = ir.NewModule().NewFunc("f", types.Double, ir.NewParam("x", types.Double))
	f.NewBlock("x").NewRet(fconst(0))
	requireDefect(t, Function(f), "block label \"x\" collides with another local")

	f = ir.NewModule().NewFunc("f", types.Double, ir.NewParam("x", types.Double))
	entry := f.NewBlock("entry")
	cell := entry.NewAlloca(types.Double)
	cell.SetName("x")
	entry.NewRet(fconst(0))
	requireDefect(t, Function(f), "multiple locals named \"x\"")
}

func TestVerifyModule_DuplicateFunctionNames(t *testing.T) {
	m := ir.NewModule()
	m.NewFunc("f", types.Double)
	m.NewFunc("f", types.Double)

	requireDefect(t, Module(m), "multiple functions share this name")
}
