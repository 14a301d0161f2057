package lower

import (
	"brio/report"

	"github.com/llir/llvm/ir/value"
)

// ScopeTable maps source names to their storage cells for the function
// currently being lowered.  Scopes nest: entering a scope opens a frame,
// defining a name may shadow an outer binding, and leaving a scope restores
// exactly the set of bindings that was visible before the frame opened.
//
// The table keeps one record per Define call, in creation order.  Records
// never move: each records the index of the binding it shadowed, and the
// name index always points at the innermost live record for a name, so
// leaving a scope just unwinds the tail of the record list.
type ScopeTable struct {
	// The current scope depth.  Zero means no scope is open.
	depth int

	// All live bindings, in creation order.  The bindings of the innermost
	// scope form the tail of the slice.
	bindings []binding

	// The index into bindings of the innermost live binding for each name.
	byName map[string]int
}

// binding records a single Define call.
type binding struct {
	// The source name bound.
	name string

	// The storage cell the name is bound to.
	handle value.Value

	// The scope depth the binding was created at.
	depth int

	// The index of the binding this one shadows, or -1 if it shadows
	// nothing.
	outer int
}

// NewScopeTable creates a new, empty scope table.
func NewScopeTable() *ScopeTable {
	return &ScopeTable{byName: make(map[string]int)}
}

// Depth returns the number of scopes currently open.
func (st *ScopeTable) Depth() int {
	return st.depth
}

// EnterScope opens a new scope.  Every EnterScope must be paired with
// exactly one LeaveScope, on error paths included.
func (st *ScopeTable) EnterScope() {
	st.depth++
}

// LeaveScope closes the innermost scope, dropping the bindings it created
// and restoring whatever those bindings shadowed.  Leaving with no scope
// open is a contract violation.
func (st *ScopeTable) LeaveScope() {
	if st.depth == 0 {
		report.ICE("scope table: LeaveScope without a matching EnterScope")
	}

	// Bindings pop in reverse creation order so that a name shadowed
	// several times within one scope unwinds through its chain correctly.
	for len(st.bindings) > 0 {
		b := st.bindings[len(st.bindings)-1]
		if b.depth != st.depth {
			break
		}

		if b.outer >= 0 {
			st.byName[b.name] = b.outer
		} else {
			delete(st.byName, b.name)
		}

		st.bindings = st.bindings[:len(st.bindings)-1]
	}

	st.depth--
}

// Define binds name to the given storage cell in the innermost scope,
// shadowing any visible binding of the same name.  Defining with no scope
// open is a contract violation.
func (st *ScopeTable) Define(name string, handle value.Value) {
	if st.depth == 0 {
		report.ICE("scope table: Define %q outside any scope", name)
	}

	outer := -1
	if i, ok := st.byName[name]; ok {
		outer = i
	}

	st.byName[name] = len(st.bindings)
	st.bindings = append(st.bindings, binding{
		name:   name,
		handle: handle,
		depth:  st.depth,
		outer:  outer,
	})
}

// Lookup returns the storage cell bound to name by the innermost scope that
// binds it.
func (st *ScopeTable) Lookup(name string) (value.Value, bool) {
	i, ok := st.byName[name]
	if !ok {
		return nil, false
	}

	return st.bindings[i].handle, true
}
