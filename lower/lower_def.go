package lower

import (
	"brio/ast"
	"brio/report"
	"brio/verify"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// DeclareExtern declares a body-less external function for the given
// prototype.  The name must not already be taken: externs and definitions
// share one namespace and neither may be re-declared.
func (s *Session) DeclareExtern(proto *ast.Prototype) (*ir.Func, error) {
	return s.declareProto(proto)
}

// LowerFunction lowers one function definition into the session's module
// and returns the finished IR function.
//
// The sequence is fixed: the name is checked against the session before any
// IR exists; the function and its entry block are created; a scope frame
// binds every parameter to a storage cell; the body lowers; the body's
// value is wired into a return; the function is verified; the pass pipeline
// runs.  If the body fails to lower, the scope frame still closes, the
// half-built function is removed from the module, and no trace of the
// definition survives.  If verification fails the function is returned
// *with* the error so the caller can decide to keep it or Discard it.
func (s *Session) LowerFunction(fn *ast.FuncDef) (*ir.Func, error) {
	f, err := s.declareProto(fn.Proto)
	if err != nil {
		return nil, err
	}

	l := newLowerer(s, f)

	s.scopes.EnterScope()

	// Parameters live in storage cells like every other variable, so the
	// body is free to assign to them.
	for _, param := range f.Params {
		cell := l.entryAlloca(param.LocalName)
		l.block.NewStore(param, cell)
		s.scopes.Define(param.LocalName, cell)
	}

	bodyVal, err := l.lowerExpr(fn.Body)
	s.scopes.LeaveScope()
	if err != nil {
		s.remove(f)
		return nil, err
	}

	l.block.NewRet(bodyVal)

	if err := verify.Function(f); err != nil {
		return f, &Error{Kind: VerificationFailure, Name: fn.Proto.Name, Span: fn.Span(), Err: err}
	}

	for _, pass := range s.passes {
		pass(f)
	}

	return f, nil
}

// declareProto creates the IR function for a prototype: external linkage,
// double return, one named double parameter per source parameter.
func (s *Session) declareProto(proto *ast.Prototype) (*ir.Func, error) {
	if _, ok := s.funcs[proto.Name]; ok {
		return nil, &Error{Kind: FunctionRedefinition, Name: proto.Name, Span: proto.Span()}
	}

	seen := make(map[string]bool, len(proto.Params))
	for _, name := range proto.Params {
		if seen[name] {
			report.ICE("prototype %q repeats parameter %q", proto.Name, name)
		}
		seen[name] = true
	}

	params := make([]*ir.Param, len(proto.Params))
	for i, name := range proto.Params {
		params[i] = ir.NewParam(name, types.Double)
	}

	f := s.mod.NewFunc(proto.Name, types.Double, params...)
	f.Linkage = enum.LinkageExternal

	s.funcs[proto.Name] = f
	return f, nil
}
