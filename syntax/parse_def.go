package syntax

import (
	"fmt"
	"strconv"

	"brio/ast"
	"brio/report"
	"brio/util"
)

// file = {definition | extern | top_level_expr | ';'}
func (p *Parser) parseFile() ([]ast.Def, error) {
	var defs []ast.Def

	for !p.got(TOK_EOF) {
		switch p.tok.Kind {
		case TOK_SEMI:
			// Stray semicolons delimit nothing.
			if err := p.next(); err != nil {
				return nil, err
			}
		case TOK_DEF:
			def, err := p.parseDefinition()
			if err != nil {
				return nil, err
			}

			defs = append(defs, def)
		case TOK_EXTERN:
			ext, err := p.parseExtern()
			if err != nil {
				return nil, err
			}

			defs = append(defs, ext)
		default:
			def, err := p.parseTopLevelExpr()
			if err != nil {
				return nil, err
			}

			defs = append(defs, def)
		}
	}

	return defs, nil
}

// -----------------------------------------------------------------------------

// definition = 'def' prototype expr
func (p *Parser) parseDefinition() (ast.Def, error) {
	startSpan := p.tok.Span
	if err := p.next(); err != nil {
		return nil, err
	}

	proto, err := p.parsePrototype()
	if err != nil {
		return nil, err
	}

	bodyExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ast.FuncDef{
		ASTBase: ast.NewASTBaseOver(startSpan, bodyExpr.Span()),
		Proto:   proto,
		Body:    bodyExpr,
	}, nil
}

// extern = 'extern' prototype
func (p *Parser) parseExtern() (ast.Def, error) {
	startSpan := p.tok.Span
	if err := p.next(); err != nil {
		return nil, err
	}

	proto, err := p.parsePrototype()
	if err != nil {
		return nil, err
	}

	return &ast.Extern{
		ASTBase: ast.NewASTBaseOver(startSpan, proto.Span()),
		Proto:   proto,
	}, nil
}

// top_level_expr = expr
// Semantic actions: the expression is wrapped in an anonymous function
// definition so that it can be lowered like any other function.
func (p *Parser) parseTopLevelExpr() (ast.Def, error) {
	bodyExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	proto := &ast.Prototype{
		ASTBase: ast.NewASTBaseOn(bodyExpr.Span()),
		Name:    fmt.Sprintf("%s%d", ast.AnonFuncPrefix, p.anonCount),
	}
	p.anonCount++

	return &ast.FuncDef{
		ASTBase: ast.NewASTBaseOn(bodyExpr.Span()),
		Proto:   proto,
		Body:    bodyExpr,
	}, nil
}

// -----------------------------------------------------------------------------

// prototype = named_proto | binary_proto | unary_proto
func (p *Parser) parsePrototype() (*ast.Prototype, error) {
	startTok := p.tok

	switch p.tok.Kind {
	case TOK_IDENT:
		if err := p.next(); err != nil {
			return nil, err
		}

		params, endSpan, err := p.parseParams()
		if err != nil {
			return nil, err
		}

		return &ast.Prototype{
			ASTBase: ast.NewASTBaseOver(startTok.Span, endSpan),
			Name:    startTok.Value,
			Params:  params,
		}, nil
	case TOK_BINARY:
		return p.parseBinaryProto(startTok)
	case TOK_UNARY:
		return p.parseUnaryProto(startTok)
	default:
		return nil, p.reject()
	}
}

// binary_proto = 'binary' OPER ['NUMLIT'] '(' params ')'
// Semantic actions: the prototype is named by the "binary"+op convention, its
// arity is checked, and the operator's precedence is registered in the
// operator table.  The precedence defaults to 30 when unspecified.
func (p *Parser) parseBinaryProto(startTok *Token) (*ast.Prototype, error) {
	if err := p.next(); err != nil {
		return nil, err
	}

	if !p.got(TOK_OPER) {
		return nil, p.rejectWithMsg("expected an operator after `binary`")
	}

	operTok := p.tok
	op := rune(operTok.Value[0])

	if isBuiltinOper(op) {
		return nil, report.Errorf(operTok.Span, "operator `%s` is built in and cannot be redefined", operTok.Value)
	}

	if err := p.next(); err != nil {
		return nil, err
	}

	prec := 30
	if p.got(TOK_NUMLIT) {
		value, err := p.parseNumberValue(p.tok)
		if err != nil {
			return nil, err
		}

		prec = int(value)
		if prec < 1 || prec > 100 {
			return nil, report.Errorf(p.tok.Span, "operator precedence must be between 1 and 100")
		}

		if err := p.next(); err != nil {
			return nil, err
		}
	}

	params, endSpan, err := p.parseParams()
	if err != nil {
		return nil, err
	}

	if len(params) != 2 {
		return nil, report.Errorf(operTok.Span, "binary operator `%s` must take exactly 2 parameters", operTok.Value)
	}

	// Register the precedence before the definition's body is parsed so that
	// the operator may appear in its own body.
	if prev, ok := p.opers.Define(op, prec); ok && prev != prec {
		p.warnOn(operTok, "operator `%s` precedence changed from %d to %d", operTok.Value, prev, prec)
	}

	return ast.NewBinaryProto(report.NewSpanOver(startTok.Span, endSpan), op, params[0], params[1]), nil
}

// unary_proto = 'unary' OPER '(' params ')'
// Semantic actions: the prototype is named by the "unary"+op convention and
// its arity is checked.  Unary operators need no precedence, so nothing is
// registered: any operator character already parses in unary position.
func (p *Parser) parseUnaryProto(startTok *Token) (*ast.Prototype, error) {
	if err := p.next(); err != nil {
		return nil, err
	}

	if !p.got(TOK_OPER) {
		return nil, p.rejectWithMsg("expected an operator after `unary`")
	}

	operTok := p.tok
	if err := p.next(); err != nil {
		return nil, err
	}

	params, endSpan, err := p.parseParams()
	if err != nil {
		return nil, err
	}

	if len(params) != 1 {
		return nil, report.Errorf(operTok.Span, "unary operator `%s` must take exactly 1 parameter", operTok.Value)
	}

	return ast.NewUnaryProto(report.NewSpanOver(startTok.Span, endSpan), rune(operTok.Value[0]), params[0]), nil
}

// params = '(' ['IDENT' {',' 'IDENT'}] ')'
// The returned span is that of the closing parenthesis.
func (p *Parser) parseParams() ([]string, *report.TextSpan, error) {
	if err := p.assertAndNext(TOK_LPAREN); err != nil {
		return nil, nil, err
	}

	var params []string

	if !p.got(TOK_RPAREN) {
		for {
			if err := p.assert(TOK_IDENT); err != nil {
				return nil, nil, err
			}

			if util.Contains(params, p.tok.Value) {
				return nil, nil, report.Errorf(p.tok.Span, "multiple parameters named `%s`", p.tok.Value)
			}

			params = append(params, p.tok.Value)

			if err := p.next(); err != nil {
				return nil, nil, err
			}

			if p.got(TOK_COMMA) {
				if err := p.next(); err != nil {
					return nil, nil, err
				}

				continue
			}

			break
		}
	}

	endSpan := p.tok.Span
	if err := p.assertAndNext(TOK_RPAREN); err != nil {
		return nil, nil, err
	}

	return params, endSpan, nil
}

// parseNumberValue converts a numeric literal token to its double value.
func (p *Parser) parseNumberValue(tok *Token) (float64, error) {
	value, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return 0, report.Errorf(tok.Span, "invalid numeric literal: `%s`", tok.Value)
	}

	return value, nil
}
