package lower

import (
	"brio/ast"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// lowerIfExpr lowers a conditional expression.  Each branch lowers into its
// own block and a merge block joins the branch values with a phi.  The
// phi's incoming blocks are wherever each branch *ended*, not the blocks
// the branches started in: a branch containing nested control flow exits
// somewhere further down.
func (l *lowerer) lowerIfExpr(cond *ast.IfExpr) (value.Value, error) {
	condVal, err := l.lowerExpr(cond.Cond)
	if err != nil {
		return nil, err
	}

	// The condition is truthy when it is not 0.0.
	condBool := l.block.NewFCmp(enum.FPredONE, condVal, zero())

	thenBlock := l.appendBlock("then")
	elseBlock := l.appendBlock("else")
	mergeBlock := l.appendBlock("merge")

	l.block.NewCondBr(condBool, thenBlock, elseBlock)

	var incoming []*ir.Incoming

	l.block = thenBlock
	thenVal, err := l.lowerExpr(cond.Then)
	if err != nil {
		return nil, err
	}
	incoming = append(incoming, ir.NewIncoming(thenVal, l.block))
	l.block.NewBr(mergeBlock)

	l.block = elseBlock
	elseVal, err := l.lowerExpr(cond.Else)
	if err != nil {
		return nil, err
	}
	incoming = append(incoming, ir.NewIncoming(elseVal, l.block))
	l.block.NewBr(mergeBlock)

	l.block = mergeBlock
	return l.block.NewPhi(incoming...), nil
}

// lowerForExpr lowers a counting loop.  The initial value computes before
// the induction variable is defined, so the initializer can refer to an
// outer binding of the same name.  The condition is tested after the body
// and the step run: the body always executes at least once, and the back
// edge targets the loop header even when the body ends in another block.
// The loop's value is always 0.
func (l *lowerer) lowerForExpr(loop *ast.ForExpr) (value.Value, error) {
	initVal, err := l.lowerExpr(loop.Init)
	if err != nil {
		return nil, err
	}

	l.sess.scopes.EnterScope()
	defer l.sess.scopes.LeaveScope()

	cell := l.entryAlloca(loop.VarName)
	l.block.NewStore(initVal, cell)
	l.sess.scopes.Define(loop.VarName, cell)

	loopBlock := l.appendBlock("loop")
	l.block.NewBr(loopBlock)
	l.block = loopBlock

	if _, err := l.lowerExpr(loop.Body); err != nil {
		return nil, err
	}

	// The step defaults to 1.
	var stepVal value.Value = constant.NewFloat(types.Double, 1)
	if loop.Step != nil {
		if stepVal, err = l.lowerExpr(loop.Step); err != nil {
			return nil, err
		}
	}

	// Advance the induction variable, then test the condition against the
	// advanced value.
	next := l.block.NewFAdd(l.block.NewLoad(types.Double, cell), stepVal)
	l.block.NewStore(next, cell)

	condVal, err := l.lowerExpr(loop.Cond)
	if err != nil {
		return nil, err
	}
	condBool := l.block.NewFCmp(enum.FPredONE, condVal, zero())

	exitBlock := l.appendBlock("loopend")
	l.block.NewCondBr(condBool, loopBlock, exitBlock)

	l.block = exitBlock
	return zero(), nil
}

// lowerLetExpr lowers a sequence of local bindings scoped over a body.
// Each initializer computes before its own name becomes visible, so a
// binding can be initialized from an outer binding of the same name; later
// bindings in the same sequence do see earlier ones.
func (l *lowerer) lowerLetExpr(let *ast.LetExpr) (value.Value, error) {
	l.sess.scopes.EnterScope()
	defer l.sess.scopes.LeaveScope()

	for _, b := range let.Bindings {
		// A binding without an initializer starts at 0.
		var initVal value.Value = zero()
		if b.Init != nil {
			v, err := l.lowerExpr(b.Init)
			if err != nil {
				return nil, err
			}
			initVal = v
		}

		cell := l.entryAlloca(b.Name)
		l.block.NewStore(initVal, cell)
		l.sess.scopes.Define(b.Name, cell)
	}

	return l.lowerExpr(let.Body)
}
