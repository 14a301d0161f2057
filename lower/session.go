package lower

import (
	"sort"

	"github.com/llir/llvm/ir"
)

// FuncPass is a function-level transformation run over each function that
// lowers and verifies successfully.  The session itself ships no passes;
// drivers install any they want.
type FuncPass func(*ir.Func)

// Session owns the state of one compilation: the destination IR module, the
// table of functions declared so far, the scope table for whatever function
// is currently being lowered, and the pass pipeline.  Sessions are created
// and driven by a single caller; they are not safe for concurrent use.
type Session struct {
	// The destination IR module.
	mod *ir.Module

	// The functions declared so far, by source name.
	funcs map[string]*ir.Func

	// The scope table used while lowering function bodies.  Its depth is
	// zero whenever no lowering is in progress.
	scopes *ScopeTable

	// The passes run over each successfully lowered function.
	passes []FuncPass
}

// Option configures a session.
type Option func(*Session)

// WithSourceName records the source file's name on the emitted module.
func WithSourceName(name string) Option {
	return func(s *Session) {
		s.mod.SourceFilename = name
	}
}

// WithPasses appends function passes to the session's pipeline.
func WithPasses(passes ...FuncPass) Option {
	return func(s *Session) {
		s.passes = append(s.passes, passes...)
	}
}

// NewSession creates a new compilation session lowering into a fresh
// module.
func NewSession(opts ...Option) *Session {
	s := &Session{
		mod:    ir.NewModule(),
		funcs:  make(map[string]*ir.Func),
		scopes: NewScopeTable(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Module returns the module being lowered into.
func (s *Session) Module() *ir.Module {
	return s.mod
}

// Func returns the declared function with the given source name.
func (s *Session) Func(name string) (*ir.Func, bool) {
	f, ok := s.funcs[name]
	return f, ok
}

// FuncNames returns the names of all declared functions in sorted order.
func (s *Session) FuncNames() []string {
	names := make([]string, 0, len(s.funcs))
	for name := range s.funcs {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// ScopeDepth returns the number of scopes currently open.  Between
// declarations it is always zero, failed lowerings included.
func (s *Session) ScopeDepth() int {
	return s.scopes.Depth()
}

// Discard removes a function from the session and its module.  It is meant
// for callers that choose not to keep a function after a verification
// failure.
func (s *Session) Discard(f *ir.Func) {
	s.remove(f)
}

// remove unlinks a function from the module and the function table.
func (s *Session) remove(f *ir.Func) {
	if s.funcs[f.GlobalName] == f {
		delete(s.funcs, f.GlobalName)
	}

	for i, mf := range s.mod.Funcs {
		if mf == f {
			s.mod.Funcs = append(s.mod.Funcs[:i], s.mod.Funcs[i+1:]...)
			break
		}
	}
}
