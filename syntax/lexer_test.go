package syntax

import (
	"bufio"
	"strings"
	"testing"

	"brio/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lexAll lexes a test input to EOF, requiring every token to lex cleanly.
func lexAll(t *testing.T, src string) []*Token {
	t.Helper()

	l := NewLexer(bufio.NewReader(strings.NewReader(src)))

	var toks []*Token
	for {
		tok, err := l.NextToken()
		require.NoError(t, err)

		toks = append(toks, tok)
		if tok.Kind == TOK_EOF {
			return toks
		}
	}
}

// lexFail lexes a test input until it produces an error and returns it.
func lexFail(t *testing.T, src string) *report.SyntaxError {
	t.Helper()

	l := NewLexer(bufio.NewReader(strings.NewReader(src)))
	for {
		tok, err := l.NextToken()
		if err != nil {
			serr, ok := err.(*report.SyntaxError)
			require.True(t, ok, "lexing should fail with *report.SyntaxError, got %T", err)
			return serr
		}

		require.NotEqual(t, TOK_EOF, tok.Kind, "input lexed to EOF without an error")
	}
}

type wantToken struct {
	kind  int
	value string
}

func TestLexer_TokenStream(t *testing.T) {
	tests := []struct {
		input string
		want  []wantToken
	}{
		{"def f(x) x;", []wantToken{
			{TOK_DEF, "def"},
			{TOK_IDENT, "f"},
			{TOK_LPAREN, "("},
			{TOK_IDENT, "x"},
			{TOK_RPAREN, ")"},
			{TOK_IDENT, "x"},
			{TOK_SEMI, ";"},
			{TOK_EOF, ""},
		}},
		{"extern binary unary let if then else for in", []wantToken{
			{TOK_EXTERN, "extern"},
			{TOK_BINARY, "binary"},
			{TOK_UNARY, "unary"},
			{TOK_LET, "let"},
			{TOK_IF, "if"},
			{TOK_THEN, "then"},
			{TOK_ELSE, "else"},
			{TOK_FOR, "for"},
			{TOK_IN, "in"},
			{TOK_EOF, ""},
		}},
		{"1 2.5 1e10 1.5e-3 1_000", []wantToken{
			{TOK_NUMLIT, "1"},
			{TOK_NUMLIT, "2.5"},
			{TOK_NUMLIT, "1e10"},
			{TOK_NUMLIT, "1.5e-3"},
			{TOK_NUMLIT, "1000"},
			{TOK_EOF, ""},
		}},
		// A second dot ends the literal rather than extending it.
		{"1.2.3", []wantToken{
			{TOK_NUMLIT, "1.2"},
			{TOK_OPER, "."},
			{TOK_NUMLIT, "3"},
			{TOK_EOF, ""},
		}},
		{"a+b, c<d", []wantToken{
			{TOK_IDENT, "a"},
			{TOK_OPER, "+"},
			{TOK_IDENT, "b"},
			{TOK_COMMA, ","},
			{TOK_IDENT, "c"},
			{TOK_OPER, "<"},
			{TOK_IDENT, "d"},
			{TOK_EOF, ""},
		}},
		{"! % & | ^ ~ : ? @ = / > -", []wantToken{
			{TOK_OPER, "!"},
			{TOK_OPER, "%"},
			{TOK_OPER, "&"},
			{TOK_OPER, "|"},
			{TOK_OPER, "^"},
			{TOK_OPER, "~"},
			{TOK_OPER, ":"},
			{TOK_OPER, "?"},
			{TOK_OPER, "@"},
			{TOK_OPER, "="},
			{TOK_OPER, "/"},
			{TOK_OPER, ">"},
			{TOK_OPER, "-"},
			{TOK_EOF, ""},
		}},
		{"_under x1 definitely", []wantToken{
			{TOK_IDENT, "_under"},
			{TOK_IDENT, "x1"},
			{TOK_IDENT, "definitely"},
			{TOK_EOF, ""},
		}},
	}

	for _, test := range tests {
		toks := lexAll(t, test.input)
		require.Len(t, toks, len(test.want), "input %q", test.input)

		for i, want := range test.want {
			assert.Equal(t, want.kind, toks[i].Kind, "input %q, token %d", test.input, i)
			assert.Equal(t, want.value, toks[i].Value, "input %q, token %d", test.input, i)
		}
	}
}

func TestLexer_SkipsComments(t *testing.T) {
	toks := lexAll(t, "# leading comment\ndef # trailing comment\nx")

	require.Len(t, toks, 3)
	assert.Equal(t, TOK_DEF, toks[0].Kind)
	assert.Equal(t, TOK_IDENT, toks[1].Kind)
	assert.Equal(t, TOK_EOF, toks[2].Kind)
}

func TestLexer_Spans(t *testing.T) {
	toks := lexAll(t, "def\n  foo")

	def := toks[0]
	assert.Equal(t, 0, def.Span.StartLine)
	assert.Equal(t, 0, def.Span.StartCol)
	assert.Equal(t, 0, def.Span.EndLine)
	assert.Equal(t, 3, def.Span.EndCol)

	foo := toks[1]
	assert.Equal(t, 1, foo.Span.StartLine)
	assert.Equal(t, 2, foo.Span.StartCol)
	assert.Equal(t, 5, foo.Span.EndCol)
}

func TestLexer_TabsCountFourColumns(t *testing.T) {
	toks := lexAll(t, "\tx")

	assert.Equal(t, 4, toks[0].Span.StartCol)
	assert.Equal(t, 5, toks[0].Span.EndCol)
}

func TestLexer_EOFTokenHasPosition(t *testing.T) {
	toks := lexAll(t, "ab")
	eof := toks[len(toks)-1]

	require.NotNil(t, eof.Span)
	assert.Equal(t, 2, eof.Span.StartCol)
	assert.Equal(t, 2, eof.Span.EndCol)
}

func TestLexer_UnknownRune(t *testing.T) {
	serr := lexFail(t, "a $ b")
	assert.Contains(t, serr.Message, "unknown rune")
}

func TestLexer_IncompleteNumericLiterals(t *testing.T) {
	for _, src := range []string{"1.", "1e", "1e-", "1.e5"} {
		serr := lexFail(t, src)
		assert.Contains(t, serr.Message, "incomplete numeric literal", "input %q", src)
	}
}
