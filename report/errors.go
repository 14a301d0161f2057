package report

import (
	"fmt"
	"os"
)

// TextSpan represents a range or "span" of source text.  It is used to specify
// erroneous or otherwise significant source text in a brio program.  The
// starting position is the position of the first character in the span and
// the ending position is the position immediately after the last character in
// the span.  The line and column numbers are zero-indexed.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// -----------------------------------------------------------------------------

// SyntaxError is an error produced while lexing or parsing a source file.  It
// carries the span of the offending source text so the driver can display a
// source excerpt alongside the message.
type SyntaxError struct {
	// The error message.
	Message string

	// The span over which the error occurs.
	Span *TextSpan
}

func (se *SyntaxError) Error() string {
	return se.Message
}

// Errorf creates a new syntax error over the given span.
func Errorf(span *TextSpan, msg string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(msg, args...), Span: span}
}

// -----------------------------------------------------------------------------

// InternalError is the panic value raised by ICE.  It indicates a violated
// internal contract: a bug in the compiler rather than erroneous input.
type InternalError struct {
	// The error message.
	Message string
}

func (ie *InternalError) Error() string {
	return ie.Message
}

// ICE raises an internal compiler error.  These are errors that specifically
// result from a bug or unexpected condition occurring within the compiler:
// they are not intended to ever happen.  The panic value is an
// *InternalError, which drivers intercept with CatchInternal and tests can
// assert on directly.
func ICE(msg string, args ...interface{}) {
	panic(&InternalError{Message: fmt.Sprintf(msg, args...)})
}

// CatchInternal catches a panic raised through ICE, displays it, and exits.
// Any other panic value keeps bubbling.
// NB: This function must ALWAYS be deferred.
func CatchInternal() {
	if x := recover(); x != nil {
		if ierr, ok := x.(*InternalError); ok {
			rep.m.Lock()
			displayICE(ierr.Message)
			rep.m.Unlock()

			os.Exit(-1)
		}

		panic(x)
	}
}
