package syntax

import (
	"brio/ast"
	"brio/report"
)

// expr = unary_expr {OPER unary_expr}
func (p *Parser) parseExpr() (ast.Expr, error) {
	lhs, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}

	return p.parseBinOpRHS(lhs, 0)
}

// parseBinOpRHS parses the operator and operand pairs following a primary
// expression, folding them into BinaryOp nodes by operator precedence.  Only
// operators binding at least as tightly as minPrec are consumed; looser ones
// are left for an enclosing call.  Operators missing from the operator table
// also end the expression: the caller rejects whatever they turn out to be.
func (p *Parser) parseBinOpRHS(lhs ast.Expr, minPrec int) (ast.Expr, error) {
	for {
		if !p.got(TOK_OPER) {
			return lhs, nil
		}

		operTok := p.tok
		op := rune(operTok.Value[0])

		prec := p.opers.Precedence(op)
		if prec < minPrec {
			return lhs, nil
		}

		if op == '=' {
			if _, ok := lhs.(*ast.Identifier); !ok {
				return nil, report.Errorf(operTok.Span, "destination of `=` must be a variable")
			}
		}

		if err := p.next(); err != nil {
			return nil, err
		}

		rhs, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}

		// If the operator after the right operand binds more tightly than
		// this one, it takes the right operand first.  Assignment reclaims
		// equal precedence so that chains associate to the right.
		if p.got(TOK_OPER) {
			minRHS := prec + 1
			if op == '=' {
				minRHS = prec
			}

			if p.opers.Precedence(rune(p.tok.Value[0])) >= minRHS {
				rhs, err = p.parseBinOpRHS(rhs, minRHS)
				if err != nil {
					return nil, err
				}
			}
		}

		lhs = &ast.BinaryOp{
			ExprBase: ast.NewExprBaseOver(lhs.Span(), rhs.Span()),
			Op:       op,
			Lhs:      lhs,
			Rhs:      rhs,
		}
	}
}

// -----------------------------------------------------------------------------

// unary_expr = OPER unary_expr | atom_expr
func (p *Parser) parseUnaryExpr() (ast.Expr, error) {
	if p.got(TOK_OPER) {
		operTok := p.tok
		if err := p.next(); err != nil {
			return nil, err
		}

		operand, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}

		return &ast.UnaryOp{
			ExprBase: ast.NewExprBaseOver(operTok.Span, operand.Span()),
			Op:       rune(operTok.Value[0]),
			Operand:  operand,
		}, nil
	}

	return p.parseAtomExpr()
}

// -----------------------------------------------------------------------------

// atom_expr = 'NUMLIT' | ident_or_call | paren_expr | if_expr | for_expr
//   | let_expr
func (p *Parser) parseAtomExpr() (ast.Expr, error) {
	switch p.tok.Kind {
	case TOK_NUMLIT:
		return p.parseNumberLit()
	case TOK_IDENT:
		return p.parseIdentOrCall()
	case TOK_LPAREN:
		return p.parseParenExpr()
	case TOK_IF:
		return p.parseIfExpr()
	case TOK_FOR:
		return p.parseForExpr()
	case TOK_LET:
		return p.parseLetExpr()
	default:
		return nil, p.reject()
	}
}

// number_lit = 'NUMLIT'
func (p *Parser) parseNumberLit() (ast.Expr, error) {
	value, err := p.parseNumberValue(p.tok)
	if err != nil {
		return nil, err
	}

	lit := &ast.NumberLit{
		ExprBase: ast.NewExprBaseOn(p.tok.Span),
		Value:    value,
	}

	if err := p.next(); err != nil {
		return nil, err
	}

	return lit, nil
}

// ident_or_call = 'IDENT' ['(' [expr {',' expr}] ')']
func (p *Parser) parseIdentOrCall() (ast.Expr, error) {
	idTok := p.tok
	if err := p.next(); err != nil {
		return nil, err
	}

	if !p.got(TOK_LPAREN) {
		return &ast.Identifier{
			ExprBase: ast.NewExprBaseOn(idTok.Span),
			Name:     idTok.Value,
		}, nil
	}

	if err := p.next(); err != nil {
		return nil, err
	}

	var args []ast.Expr
	if !p.got(TOK_RPAREN) {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)

			if p.got(TOK_COMMA) {
				if err := p.next(); err != nil {
					return nil, err
				}

				continue
			}

			break
		}
	}

	endSpan := p.tok.Span
	if err := p.assertAndNext(TOK_RPAREN); err != nil {
		return nil, err
	}

	return &ast.Call{
		ExprBase: ast.NewExprBaseOver(idTok.Span, endSpan),
		Callee:   idTok.Value,
		Args:     args,
	}, nil
}

// paren_expr = '(' expr ')'
func (p *Parser) parseParenExpr() (ast.Expr, error) {
	if err := p.next(); err != nil {
		return nil, err
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if err := p.assertAndNext(TOK_RPAREN); err != nil {
		return nil, err
	}

	return expr, nil
}

// -----------------------------------------------------------------------------

// if_expr = 'if' expr 'then' expr 'else' expr
func (p *Parser) parseIfExpr() (ast.Expr, error) {
	startSpan := p.tok.Span
	if err := p.next(); err != nil {
		return nil, err
	}

	condExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if err := p.assertAndNext(TOK_THEN); err != nil {
		return nil, err
	}

	thenExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if err := p.assertAndNext(TOK_ELSE); err != nil {
		return nil, err
	}

	elseExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ast.IfExpr{
		ExprBase: ast.NewExprBaseOver(startSpan, elseExpr.Span()),
		Cond:     condExpr,
		Then:     thenExpr,
		Else:     elseExpr,
	}, nil
}

// for_expr = 'for' 'IDENT' '=' expr ',' expr [',' expr] 'in' expr
func (p *Parser) parseForExpr() (ast.Expr, error) {
	startSpan := p.tok.Span

	if err := p.want(TOK_IDENT); err != nil {
		return nil, err
	}

	varName := p.tok.Value
	if err := p.next(); err != nil {
		return nil, err
	}

	if !p.gotOper('=') {
		return nil, p.rejectWithMsg("expected `=` after loop variable")
	}

	if err := p.next(); err != nil {
		return nil, err
	}

	initExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if err := p.assertAndNext(TOK_COMMA); err != nil {
		return nil, err
	}

	condExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	var stepExpr ast.Expr
	if p.got(TOK_COMMA) {
		if err := p.next(); err != nil {
			return nil, err
		}

		stepExpr, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	if err := p.assertAndNext(TOK_IN); err != nil {
		return nil, err
	}

	bodyExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ast.ForExpr{
		ExprBase: ast.NewExprBaseOver(startSpan, bodyExpr.Span()),
		VarName:  varName,
		Init:     initExpr,
		Cond:     condExpr,
		Step:     stepExpr,
		Body:     bodyExpr,
	}, nil
}

// let_expr = 'let' let_binding {',' let_binding} 'in' expr
// let_binding = 'IDENT' ['=' expr]
func (p *Parser) parseLetExpr() (ast.Expr, error) {
	startSpan := p.tok.Span
	if err := p.next(); err != nil {
		return nil, err
	}

	var bindings []ast.LetBinding
	for {
		if err := p.assert(TOK_IDENT); err != nil {
			return nil, err
		}

		binding := ast.LetBinding{Name: p.tok.Value}
		if err := p.next(); err != nil {
			return nil, err
		}

		if p.gotOper('=') {
			if err := p.next(); err != nil {
				return nil, err
			}

			initExpr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			binding.Init = initExpr
		}

		bindings = append(bindings, binding)

		if p.got(TOK_COMMA) {
			if err := p.next(); err != nil {
				return nil, err
			}

			continue
		}

		break
	}

	if err := p.assertAndNext(TOK_IN); err != nil {
		return nil, err
	}

	bodyExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ast.LetExpr{
		ExprBase: ast.NewExprBaseOver(startSpan, bodyExpr.Span()),
		Bindings: bindings,
		Body:     bodyExpr,
	}, nil
}
