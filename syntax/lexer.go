package syntax

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"brio/report"
)

// Lexer is responsible for tokenizing brio source text.
type Lexer struct {
	file    *bufio.Reader
	tokBuff *strings.Builder

	line, col           int
	startLine, startCol int
}

// NewLexer creates a new lexer over the given source reader.
func NewLexer(file *bufio.Reader) *Lexer {
	return &Lexer{
		file:    file,
		tokBuff: &strings.Builder{},
		line:    0,
		col:     0,
	}
}

// NextToken retrieves the next token from the input.  If the input has ended,
// this will be an EOF token positioned at the end of the input.
func (l *Lexer) NextToken() (*Token, error) {
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '#':
			if err := l.skipComment(); err != nil {
				return nil, err
			}
		default:
			if isDecimalDigit(c) {
				return l.lexNumericLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	l.mark()
	return l.makeToken(TOK_EOF), nil
}

// -----------------------------------------------------------------------------

// symbolPatterns maps punctuation strings (patterns) to their token kind.
var symbolPatterns = map[string]int{
	"(": TOK_LPAREN,
	")": TOK_RPAREN,
	",": TOK_COMMA,
	";": TOK_SEMI,
}

// operChars is the set of characters which may form operator tokens.  Every
// operator is a single character: brio gets multi character operators by
// letting users name functions after them, not by lexing them.
const operChars = "+-*/<>=!%&|^~:?.@"

// lexPunctOrOper lexes a punctuation or operator symbol.
func (l *Lexer) lexPunctOrOper() (*Token, error) {
	l.mark()
	c, err := l.eat()
	if err != nil {
		return nil, err
	}

	if kind, ok := symbolPatterns[l.tokBuff.String()]; ok {
		return l.makeToken(kind), nil
	}

	if strings.ContainsRune(operChars, c) {
		return l.makeToken(TOK_OPER), nil
	}

	return nil, report.Errorf(l.getSpan(), "unknown rune")
}

// -----------------------------------------------------------------------------

// keywordPatterns maps keyword strings (patterns) to their keyword token kind.
var keywordPatterns = map[string]int{
	"def":    TOK_DEF,
	"extern": TOK_EXTERN,
	"binary": TOK_BINARY,
	"unary":  TOK_UNARY,

	"let": TOK_LET,

	"if":   TOK_IF,
	"then": TOK_THEN,
	"else": TOK_ELSE,
	"for":  TOK_FOR,
	"in":   TOK_IN,
}

// lexIdentOrKeyword lexes an identifier or a keyword.
func (l *Lexer) lexIdentOrKeyword() (*Token, error) {
	l.mark()
	l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if !isFirstIdentChar(c) && !isDecimalDigit(c) {
			break
		}

		l.eat()
	}

	var kind int
	if _kind, ok := keywordPatterns[l.tokBuff.String()]; ok {
		kind = _kind
	} else {
		kind = TOK_IDENT
	}

	return l.makeToken(kind), nil
}

// -----------------------------------------------------------------------------

// lexNumericLit lexes a numeric literal.  All brio numbers are doubles, so
// the literal forms are decimal digits with an optional fractional part and
// an optional exponent.
func (l *Lexer) lexNumericLit() (*Token, error) {
	l.mark()
	l.eat()

	// Floating-point data.
	var isFloat, hasExp, expectNeg, mustHaveDigit bool

numLexLoop:
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if c == -1 {
			break
		} else if c == '_' {
			// Skip all _ that occur in the literal.
			l.skip()
			continue
		}

		switch c {
		case '.':
			if mustHaveDigit || isFloat {
				break numLexLoop
			}

			l.eat()

			isFloat = true
			mustHaveDigit = true
			continue
		case 'e', 'E':
			if mustHaveDigit || hasExp {
				break numLexLoop
			}

			l.eat()

			isFloat = true
			hasExp = true
			expectNeg = true
			mustHaveDigit = true
			continue
		case '-':
			// A sign is only valid directly after the exponent marker.  The
			// digit requirement stays in force: `1e-` is still incomplete.
			if !expectNeg {
				break numLexLoop
			}

			l.eat()

			expectNeg = false
			continue
		default:
			if isDecimalDigit(c) {
				l.eat()
				expectNeg = false
			} else {
				break numLexLoop
			}
		}

		// Indicate that a value was received.
		mustHaveDigit = false
	}

	// Ensure that the literal is not malformed.
	if mustHaveDigit {
		return nil, report.Errorf(l.getSpan(), "incomplete numeric literal")
	}

	return l.makeToken(TOK_NUMLIT), nil
}

// -----------------------------------------------------------------------------

// skipComment skips a line comment.  The leading `#` has not yet been
// consumed.
func (l *Lexer) skipComment() error {
	c, err := l.skip()
	for ; err == nil && c != '\n' && c != -1; c, err = l.skip() {
	}

	return err
}

// -----------------------------------------------------------------------------

// mark sets the lexer's stored start line and column to its current position.
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
}

// makeToken produces a new token of the given kind from the lexer's state and
// resets the lexer to begin building the next token.
func (l *Lexer) makeToken(kind int) *Token {
	value := l.tokBuff.String()
	l.tokBuff.Reset()

	return &Token{
		Kind:  kind,
		Value: value,
		Span:  l.getSpan(),
	}
}

// getSpan calculates a text span based on the lexer's current state.
func (l *Lexer) getSpan() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.line,
		EndCol:    l.col,
	}
}

// -----------------------------------------------------------------------------

// eat moves the lexer forward one rune and writes the rune to the token buffer.
// If the lexer encounters an EOF, -1 is returned as the rune value.
func (l *Lexer) eat() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.updatePos(c)
	l.tokBuff.WriteRune(c)

	return c, nil
}

// skip moves the lexer forward one rune but does not write the rune to the
// token buffer.  If the lexer encounters an EOF, -1 is returned as the rune
// value.
func (l *Lexer) skip() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.updatePos(c)

	return c, nil
}

// peek returns the next rune in the input without moving the lexer forward or
// writing the rune to the token buffer.  If the lexer encounters an EOF, -1 is
// returned as the rune value.
func (l *Lexer) peek() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	if err = l.file.UnreadRune(); err != nil {
		return 0, err
	}

	return c, nil
}

// updatePos updates the lexer's position based on input character.
func (l *Lexer) updatePos(c rune) {
	switch c {
	case '\n':
		l.line++
		l.col = 0
	case '\t':
		l.col += 4
	default:
		l.col++
	}
}

// -----------------------------------------------------------------------------

// isDecimalDigit returns whether c is a decimal digit.
func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

// isFirstIdentChar returns whether c could be the first rune of an identifier.
func isFirstIdentChar(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}
