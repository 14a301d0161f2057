package syntax

import (
	"bufio"

	"brio/ast"
	"brio/report"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse as well as any
// semantic actions they perform during parsing.

// Parser is the parser for brio source text.  It is a recursive descent
// parser: a state machine that moves over the input token by token and
// decides what to parse based on the token it is currently positioned on and
// its context (implicit from the callstack of parsing functions).  All
// parsing functions assume that they begin with the parser centered on the
// first token of their production and must consume all tokens (including the
// last) of their production, leaving the parser on the next token.  Parsers
// are created once per source input; the operator table passed to NewParser
// outlives them and carries user operator precedences from one input to the
// next.
type Parser struct {
	// opers is the binary operator precedence table in effect for this input.
	opers *OperTable

	// lexer is the Lexer this parser is using to lex the source text.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token

	// absPath is the absolute path of the input, if it came from a file.
	absPath string

	// reprPath is the representative path of the input used to label
	// warnings.
	reprPath string

	// anonCount counts the anonymous functions created for bare top level
	// expressions so that each one within an input gets a distinct name.
	anonCount int
}

// NewParser creates a new parser over the given source reader.  The absPath
// is the absolute path of the source file; it may be empty when the input did
// not come from a file.  The reprPath is the representative path used to
// label warnings.
func NewParser(opers *OperTable, absPath, reprPath string, r *bufio.Reader) *Parser {
	return &Parser{
		opers:    opers,
		lexer:    NewLexer(r),
		absPath:  absPath,
		reprPath: reprPath,
	}
}

// Parse parses the input in full and returns the definitions it contains.
// Bare top level expressions are returned wrapped in anonymous function
// definitions.  Parsing stops at the first syntax error.
func (p *Parser) Parse() ([]ast.Def, error) {
	// move the parser onto the first token
	if err := p.next(); err != nil {
		return nil, err
	}

	return p.parseFile()
}

// -----------------------------------------------------------------------------

// IncompleteError is a syntax error produced when the input ends in the
// middle of a production.
type IncompleteError struct {
	// The wrapped syntax error.
	Err *report.SyntaxError
}

func (ie *IncompleteError) Error() string {
	return ie.Err.Error()
}

func (ie *IncompleteError) Unwrap() error {
	return ie.Err
}

// Incomplete returns whether the given error indicates input that ended in
// the middle of a production: eg. a REPL line that should be continued rather
// than rejected.
func Incomplete(err error) bool {
	_, ok := err.(*IncompleteError)
	return ok
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() error {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}

	p.tok = tok
	return nil
}

// got returns true if the parser is on a token of a given kind.
func (p *Parser) got(kind int) bool {
	return p.tok.Kind == kind
}

// gotOper returns true if the parser is on the given operator character.
func (p *Parser) gotOper(op rune) bool {
	return p.tok.Kind == TOK_OPER && p.tok.Value == string(op)
}

// assert checks if the parser is on a token of a given kind and rejects the
// token if not.
func (p *Parser) assert(kind int) error {
	if p.got(kind) {
		return nil
	}

	return p.reject()
}

// assertAndNext performs an assert operation and moves the parser forward.
func (p *Parser) assertAndNext(kind int) error {
	if err := p.assert(kind); err != nil {
		return err
	}

	return p.next()
}

// want moves the parser forward one and then asserts that the token the
// parser has moved to is of a given kind.
func (p *Parser) want(kind int) error {
	if err := p.next(); err != nil {
		return err
	}

	return p.assert(kind)
}

// -----------------------------------------------------------------------------

// reject returns an unexpected token error for the current token.
func (p *Parser) reject() error {
	if p.got(TOK_EOF) {
		return &IncompleteError{Err: report.Errorf(p.tok.Span, "unexpected end of input")}
	}

	return report.Errorf(p.tok.Span, "unexpected token: `%s`", p.tok.Value)
}

// rejectWithMsg rejects the current token with a specific message.  The
// function takes a message and arguments to format into it.
func (p *Parser) rejectWithMsg(msg string, args ...interface{}) error {
	if p.got(TOK_EOF) {
		return &IncompleteError{Err: report.Errorf(p.tok.Span, msg, args...)}
	}

	return report.Errorf(p.tok.Span, msg, args...)
}

// warnOn reports a warning on a given token.  The function takes a message
// and arguments to format into it.  Warnings never interrupt parsing, so
// unlike errors they are reported in place rather than returned.
func (p *Parser) warnOn(tok *Token, msg string, args ...interface{}) {
	report.ReportCompileWarning(p.absPath, p.reprPath, tok.Span, msg, args...)
}
