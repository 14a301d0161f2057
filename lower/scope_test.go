package lower

import (
	"testing"

	"brio/report"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cell returns a fresh dummy storage handle for scope tests.
func cell() *constant.Float {
	return constant.NewFloat(types.Double, 0)
}

// assertICE asserts that fn panics with an internal error.
func assertICE(t *testing.T, fn func()) {
	t.Helper()

	defer func() {
		x := recover()
		require.NotNil(t, x, "expected an internal error panic")

		_, ok := x.(*report.InternalError)
		require.True(t, ok, "panic value should be *report.InternalError, got %T", x)
	}()

	fn()
}

func TestScopeTable_DefineAndLookup(t *testing.T) {
	st := NewScopeTable()
	st.EnterScope()
	defer st.LeaveScope()

	a, b := cell(), cell()
	st.Define("a", a)
	st.Define("b", b)

	got, ok := st.Lookup("a")
	require.True(t, ok)
	assert.Same(t, a, got)

	got, ok = st.Lookup("b")
	require.True(t, ok)
	assert.Same(t, b, got)

	_, ok = st.Lookup("c")
	assert.False(t, ok)
}

func TestScopeTable_ShadowingRestoresOuterBinding(t *testing.T) {
	st := NewScopeTable()

	outer, inner := cell(), cell()

	st.EnterScope()
	st.Define("x", outer)

	st.EnterScope()
	st.Define("x", inner)

	got, ok := st.Lookup("x")
	require.True(t, ok)
	assert.Same(t, inner, got, "inner binding should shadow the outer one")

	st.LeaveScope()

	got, ok = st.Lookup("x")
	require.True(t, ok)
	assert.Same(t, outer, got, "leaving the scope should restore the outer binding")

	st.LeaveScope()

	_, ok = st.Lookup("x")
	assert.False(t, ok, "no binding should survive the outermost scope")
}

func TestScopeTable_ShadowChainWithinOneScope(t *testing.T) {
	st := NewScopeTable()

	outer, first, second := cell(), cell(), cell()

	st.EnterScope()
	st.Define("x", outer)

	// One scope may rebind the same name several times; all of them unwind
	// together when the scope closes.
	st.EnterScope()
	st.Define("x", first)
	st.Define("x", second)

	got, _ := st.Lookup("x")
	assert.Same(t, second, got)

	st.LeaveScope()

	got, ok := st.Lookup("x")
	require.True(t, ok)
	assert.Same(t, outer, got)

	st.LeaveScope()
}

func TestScopeTable_LeaveDropsOnlyInnermostScope(t *testing.T) {
	st := NewScopeTable()

	st.EnterScope()
	st.Define("a", cell())

	st.EnterScope()
	st.Define("b", cell())
	st.LeaveScope()

	_, ok := st.Lookup("b")
	assert.False(t, ok)

	_, ok = st.Lookup("a")
	assert.True(t, ok, "bindings of enclosing scopes must survive")

	st.LeaveScope()
}

func TestScopeTable_DepthTracksNesting(t *testing.T) {
	st := NewScopeTable()
	assert.Equal(t, 0, st.Depth())

	st.EnterScope()
	st.EnterScope()
	assert.Equal(t, 2, st.Depth())

	st.LeaveScope()
	assert.Equal(t, 1, st.Depth())

	st.LeaveScope()
	assert.Equal(t, 0, st.Depth())
}

func TestScopeTable_LeaveWithoutEnterIsInternalError(t *testing.T) {
	st := NewScopeTable()
	assertICE(t, func() { st.LeaveScope() })
}

func TestScopeTable_DefineOutsideScopeIsInternalError(t *testing.T) {
	st := NewScopeTable()
	assertICE(t, func() { st.Define("x", cell()) })
}
