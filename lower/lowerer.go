package lower

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

// lowerer holds the insertion state while one function body is lowered.
type lowerer struct {
	sess *Session

	// The function being built.
	fn *ir.Func

	// The function's entry block.  All storage cells are allocated here no
	// matter where lowering currently is, so every cell dominates every
	// use.
	entry *ir.Block

	// The block new instructions append to.  Control-flow lowering moves
	// this as it opens and closes blocks.
	block *ir.Block

	// The number of times each base name has been claimed in this
	// function.  Parameters, block labels, and storage cells all share the
	// local namespace.
	names map[string]int
}

// newLowerer creates a lowerer for the given function and opens its entry
// block.  The function's parameter names are claimed before any label so
// they always keep their source spellings.
func newLowerer(sess *Session, fn *ir.Func) *lowerer {
	l := &lowerer{
		sess:  sess,
		fn:    fn,
		names: make(map[string]int),
	}

	for _, param := range fn.Params {
		l.names[param.LocalName]++
	}

	l.entry = l.appendBlock("entry")
	l.block = l.entry

	return l
}

// appendBlock appends a new block with a uniquified label to the function.
func (l *lowerer) appendBlock(label string) *ir.Block {
	return l.fn.NewBlock(l.claimName(label))
}

// claimName returns name itself the first time it is claimed and a
// dot-suffixed variant on later claims.  Source identifiers cannot contain
// dots, so suffixed names never collide with parameter names.
func (l *lowerer) claimName(name string) string {
	n := l.names[name]
	l.names[name]++

	if n == 0 {
		return name
	}

	return fmt.Sprintf("%s.%d", name, n)
}

// entryAlloca creates a double-typed storage cell for the named variable in
// the function's entry block.
func (l *lowerer) entryAlloca(name string) *ir.InstAlloca {
	cell := l.entry.NewAlloca(types.Double)
	cell.SetName(l.claimName(name + ".addr"))
	return cell
}

// zero returns the double constant 0.0.
func zero() *constant.Float {
	return constant.NewFloat(types.Double, 0)
}
