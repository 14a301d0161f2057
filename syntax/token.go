package syntax

import "brio/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The string value of the token.
	Value string

	// The text span over which the token exists.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_DEF = iota
	TOK_EXTERN
	TOK_BINARY
	TOK_UNARY

	TOK_LET
	TOK_IF
	TOK_THEN
	TOK_ELSE
	TOK_FOR
	TOK_IN

	TOK_OPER

	TOK_LPAREN
	TOK_RPAREN
	TOK_COMMA
	TOK_SEMI

	TOK_IDENT
	TOK_NUMLIT

	TOK_EOF
)
