// Package verify implements structural well-formedness checks over lowered
// LLVM IR.  It stands in for LLVM's own function verifier: it validates the
// block and phi structure that lowering is responsible for, not full
// dominance or instruction-level typing.
package verify

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Error describes a structural defect found in a function.
type Error struct {
	// The name of the offending function.
	FuncName string

	// The name of the offending block, if the defect is block-local.
	BlockName string

	// A description of the defect.
	Message string
}

func (e *Error) Error() string {
	if e.BlockName != "" {
		return fmt.Sprintf("function %q, block %q: %s", e.FuncName, e.BlockName, e.Message)
	}

	return fmt.Sprintf("function %q: %s", e.FuncName, e.Message)
}

// errorf creates a new function-level verification error.
func errorf(f *ir.Func, msg string, args ...interface{}) *Error {
	return &Error{FuncName: f.GlobalName, Message: fmt.Sprintf(msg, args...)}
}

// blockErrorf creates a new block-level verification error.
func blockErrorf(f *ir.Func, b *ir.Block, msg string, args ...interface{}) *Error {
	return &Error{FuncName: f.GlobalName, BlockName: b.LocalName, Message: fmt.Sprintf(msg, args...)}
}

// -----------------------------------------------------------------------------

// Function checks that a function's control-flow structure is well formed:
// every block is terminated, branch targets belong to the function, the
// entry block has no predecessors, phi nodes sit at the top of their blocks
// and agree exactly with their block's predecessors, returned values match
// the function's return type, and local names are unique.  A body-less
// function is a declaration and is trivially well formed.
func Function(f *ir.Func) error {
	if len(f.Blocks) == 0 {
		return nil
	}

	// Every block must end in a terminator, and every branch target must be
	// a block of this function.  Predecessor sets are collected along the
	// way for the phi checks below.
	inFunc := make(map[*ir.Block]bool, len(f.Blocks))
	for _, b := range f.Blocks {
		inFunc[b] = true
	}

	preds := make(map[*ir.Block][]*ir.Block)
	for _, b := range f.Blocks {
		if b.Term == nil {
			return blockErrorf(f, b, "block has no terminator")
		}

		for _, succ := range b.Term.Succs() {
			if !inFunc[succ] {
				return blockErrorf(f, b, "branch to block %q of another function", succ.LocalName)
			}

			preds[succ] = append(preds[succ], b)
		}
	}

	if len(preds[f.Blocks[0]]) > 0 {
		return blockErrorf(f, f.Blocks[0], "entry block has predecessors")
	}

	for _, b := range f.Blocks {
		if err := checkBlock(f, b, preds[b]); err != nil {
			return err
		}
	}

	return checkNames(f)
}

// Module checks every function of a module and that no two globals share a
// name.
func Module(m *ir.Module) error {
	seen := make(map[string]bool, len(m.Funcs))
	for _, f := range m.Funcs {
		if seen[f.GlobalName] {
			return errorf(f, "multiple functions share this name")
		}
		seen[f.GlobalName] = true

		if err := Function(f); err != nil {
			return err
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// checkBlock checks the instructions and terminator of a single block
// against the block's predecessor set.
func checkBlock(f *ir.Func, b *ir.Block, blockPreds []*ir.Block) error {
	sawNonPhi := false
	for _, inst := range b.Insts {
		phi, ok := inst.(*ir.InstPhi)
		if !ok {
			sawNonPhi = true
			continue
		}

		if sawNonPhi {
			return blockErrorf(f, b, "phi instruction after non-phi instruction")
		}

		if err := checkPhi(f, b, phi, blockPreds); err != nil {
			return err
		}
	}

	switch term := b.Term.(type) {
	case *ir.TermRet:
		retType := f.Sig.RetType
		if term.X == nil {
			if !types.Equal(retType, types.Void) {
				return blockErrorf(f, b, "void return from function returning %v", retType)
			}
		} else if !types.Equal(term.X.Type(), retType) {
			return blockErrorf(f, b, "returned value has type %v, function returns %v", term.X.Type(), retType)
		}
	case *ir.TermCondBr:
		if !types.Equal(term.Cond.Type(), types.I1) {
			return blockErrorf(f, b, "branch condition has type %v, want i1", term.Cond.Type())
		}
	}

	return nil
}

// checkPhi checks that a phi instruction's incomings agree exactly with its
// block's predecessors: one incoming per predecessor, no strays, and every
// incoming value typed like the phi itself.
func checkPhi(f *ir.Func, b *ir.Block, phi *ir.InstPhi, blockPreds []*ir.Block) error {
	if len(phi.Incs) != len(blockPreds) {
		return blockErrorf(f, b, "phi has %d incomings but block has %d predecessors", len(phi.Incs), len(blockPreds))
	}

	isPred := make(map[*ir.Block]bool, len(blockPreds))
	for _, pred := range blockPreds {
		isPred[pred] = true
	}

	seen := make(map[*ir.Block]bool, len(phi.Incs))
	for _, inc := range phi.Incs {
		pred, ok := inc.Pred.(*ir.Block)
		if !ok {
			return blockErrorf(f, b, "phi incoming from non-block %v", inc.Pred)
		}

		if !isPred[pred] {
			return blockErrorf(f, b, "phi incoming from %q, which is not a predecessor", pred.LocalName)
		}

		if seen[pred] {
			return blockErrorf(f, b, "phi has multiple incomings from %q", pred.LocalName)
		}
		seen[pred] = true

		if !types.Equal(inc.X.Type(), phi.Type()) {
			return blockErrorf(f, b, "phi incoming from %q has type %v, want %v", pred.LocalName, inc.X.Type(), phi.Type())
		}
	}

	return nil
}

// checkNames checks that no two named locals of a function collide.  Block
// labels share the local namespace with parameters and instruction results,
// and LLVM assemblers reject duplicate names rather than renaming them.
// Unnamed locals are skipped: they print by sequential ID, which the printer
// assigns, so only explicit names can collide.  Name() is no help for
// telling the two apart because it renders the ID of an unnamed value, and
// IDs are all zero until the printer runs.
func checkNames(f *ir.Func) error {
	seen := make(map[string]bool)

	record := func(name string) bool {
		if seen[name] {
			return false
		}
		seen[name] = true
		return true
	}

	for _, param := range f.Params {
		if param.IsUnnamed() {
			continue
		}

		if !record(param.LocalName) {
			return errorf(f, "multiple parameters named %q", param.LocalName)
		}
	}

	for _, b := range f.Blocks {
		if !b.IsUnnamed() && !record(b.LocalName) {
			return errorf(f, "block label %q collides with another local", b.LocalName)
		}

		for _, inst := range b.Insts {
			named, ok := inst.(interface {
				value.Named
				IsUnnamed() bool
			})
			if !ok || named.IsUnnamed() {
				continue
			}

			if !record(named.Name()) {
				return errorf(f, "multiple locals named %q", named.Name())
			}
		}
	}

	return nil
}
