package lower

import (
	"fmt"

	"brio/report"
)

// Kind classifies the recoverable lowering errors.
type Kind int

// Enumeration of the recoverable lowering error kinds.  Anything outside
// this set (malformed AST shapes, unbalanced scope pairing) is a bug in the
// compiler and panics through report.ICE instead of being returned.
const (
	// UnboundIdentifier reports a variable reference with no visible
	// binding.
	UnboundIdentifier Kind = iota

	// UnknownFunction reports a call to an undeclared function name.
	UnknownFunction

	// UnknownOperator reports an application of an operator that is neither
	// built in nor defined as an operator function.
	UnknownOperator

	// ArityMismatch reports a call whose argument count does not match the
	// callee's parameter count.
	ArityMismatch

	// FunctionRedefinition reports a definition or declaration whose name
	// is already taken.
	FunctionRedefinition

	// VerificationFailure reports a lowered function rejected by the
	// structural verifier.
	VerificationFailure
)

func (k Kind) String() string {
	switch k {
	case UnboundIdentifier:
		return "UnboundIdentifier"
	case UnknownFunction:
		return "UnknownFunction"
	case UnknownOperator:
		return "UnknownOperator"
	case ArityMismatch:
		return "ArityMismatch"
	case FunctionRedefinition:
		return "FunctionRedefinition"
	case VerificationFailure:
		return "VerificationFailure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// -----------------------------------------------------------------------------

// Error is a recoverable lowering error.  It aborts the declaration being
// lowered; the session stays usable for subsequent declarations.
type Error struct {
	// The error classification.
	Kind Kind

	// The offending name: an identifier, a function name, or an operator
	// spelling, depending on Kind.
	Name string

	// The source span of the offending node, when known.
	Span *report.TextSpan

	// The argument and parameter counts of an ArityMismatch.
	Got, Want int

	// The underlying verifier error of a VerificationFailure.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnboundIdentifier:
		return fmt.Sprintf("unknown variable %q", e.Name)
	case UnknownFunction:
		return fmt.Sprintf("unknown function %q", e.Name)
	case UnknownOperator:
		return fmt.Sprintf("unknown operator '%s'", e.Name)
	case ArityMismatch:
		return fmt.Sprintf("function %q takes %d arguments but %d were given", e.Name, e.Want, e.Got)
	case FunctionRedefinition:
		return fmt.Sprintf("function %q is already defined", e.Name)
	case VerificationFailure:
		return fmt.Sprintf("function %q failed verification: %s", e.Name, e.Err)
	default:
		return fmt.Sprintf("lowering error %s: %q", e.Kind, e.Name)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}
