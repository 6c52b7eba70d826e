package parser

import (
	"fmt"

	"github.com/merkispavel/colang/internal/diagnostics"
	"github.com/merkispavel/colang/internal/frontend/ast"
	"github.com/merkispavel/colang/internal/source"
	"github.com/merkispavel/colang/internal/tokens"
)

// Binary operator precedence, low to high. Assignment is the only
// right-associative operator.
var binaryPrecedence = map[tokens.TOKEN]int{
	tokens.EQUALS_TOKEN:        1,
	tokens.OR_TOKEN:            2,
	tokens.AND_TOKEN:           3,
	tokens.DOUBLE_EQUAL_TOKEN:  4,
	tokens.NOT_EQUAL_TOKEN:     4,
	tokens.LESS_TOKEN:          5,
	tokens.GREATER_TOKEN:       5,
	tokens.LESS_EQUAL_TOKEN:    5,
	tokens.GREATER_EQUAL_TOKEN: 5,
	tokens.PLUS_TOKEN:          6,
	tokens.MINUS_TOKEN:         6,
	tokens.MUL_TOKEN:           7,
	tokens.DIV_TOKEN:           7,
	tokens.MOD_TOKEN:           7,
}

func isRightAssociative(op tokens.TOKEN) bool {
	return op == tokens.EQUALS_TOKEN
}

// applyExpr is the expression strategy: NoMatch when the cursor does not
// start an expression, Success (possibly with recovered issues) otherwise.
func applyExpr(c Cursor) Result {
	if !startsExpression(c.Peek()) {
		return noMatch()
	}
	p := &exprParser{c: c}
	expr := p.parseBinary(1)
	if expr == nil {
		return noMatch()
	}
	return success(expr, p.issues, p.c)
}

func startsExpression(tok tokens.Token) bool {
	switch tok.Kind {
	case tokens.INT_TOKEN, tokens.FLOAT_TOKEN, tokens.STRING_TOKEN,
		tokens.IDENTIFIER_TOKEN, tokens.OPEN_PAREN,
		tokens.NOT_TOKEN, tokens.MINUS_TOKEN:
		return true
	}
	return false
}

// exprParser is the hand-written core of the expression tiers: primary
// atoms, secondary postfix chains, tertiary precedence climbing.
type exprParser struct {
	c      Cursor
	issues []*diagnostics.Diagnostic
}

func (p *exprParser) peek() tokens.Token { return p.c.Peek() }

func (p *exprParser) advance() tokens.Token {
	tok := p.c.Peek()
	p.c = p.c.Next()
	return tok
}

func (p *exprParser) errorf(span *source.Span, code, format string, args ...any) {
	p.issues = append(p.issues, diagnostics.NewError(span, fmt.Sprintf(format, args...)).WithCode(code))
}

// parseBinary implements the tertiary tier via precedence climbing.
func (p *exprParser) parseBinary(minPrec int) ast.Expression {
	left := p.parseSecondary()
	if left == nil {
		return nil
	}

	for {
		op := p.peek()
		prec, ok := binaryPrecedence[op.Kind]
		if !ok || prec < minPrec {
			return left
		}
		p.advance()

		nextMin := prec + 1
		if isRightAssociative(op.Kind) {
			nextMin = prec
		}

		right := p.parseBinary(nextMin)
		if right == nil {
			at := p.peek().Span.Before()
			p.errorf(at, diagnostics.ErrInvalidExpression,
				"expected expression after '%s'", op.Value)
			right = &ast.BadExpr{Loc: at}
		}

		span := left.Span().Add(right.Span())
		if op.Kind == tokens.EQUALS_TOKEN {
			left = &ast.AssignExpr{Target: left, Value: right, Loc: span}
		} else {
			left = &ast.BinaryExpr{Left: left, Op: op, Right: right, Loc: span}
		}
	}
}

// parseSecondary implements the secondary tier: a primary followed by a
// chain of postfix operators. Each postfix operator is collected as an
// Expression -> Expression wrapper and the chain is folded left to right.
func (p *exprParser) parseSecondary() ast.Expression {
	primary := p.parsePrimary()
	if primary == nil {
		return nil
	}

	var postfix []func(ast.Expression) ast.Expression

	for {
		switch p.peek().Kind {
		case tokens.OPEN_PAREN:
			args, span := p.parseArguments()
			postfix = append(postfix, func(x ast.Expression) ast.Expression {
				return &ast.CallExpr{Callee: x, Args: args, Loc: x.Span().Add(span)}
			})
			continue

		case tokens.DOT_TOKEN:
			p.advance()
			nameTok := p.peek()
			var name *ast.Identifier
			if nameTok.Kind == tokens.IDENTIFIER_TOKEN {
				p.advance()
				name = &ast.Identifier{Name: nameTok.Value, Loc: nameTok.Span}
			} else {
				at := nameTok.Span.Before()
				p.errorf(at, diagnostics.ErrMissingToken, "missing member name after '.'")
				name = &ast.Identifier{Synthetic: true, Loc: at}
			}
			postfix = append(postfix, func(x ast.Expression) ast.Expression {
				return &ast.MemberExpr{Receiver: x, Name: name, Loc: x.Span().Add(name.Loc)}
			})
			continue

		case tokens.PLUS_PLUS_TOKEN:
			op := p.advance()
			postfix = append(postfix, func(x ast.Expression) ast.Expression {
				return &ast.PostfixExpr{X: x, Op: op, Loc: x.Span().Add(op.Span)}
			})
			continue
		}
		break
	}

	expr := primary
	for _, wrap := range postfix {
		expr = wrap(expr)
	}
	return expr
}

// parseArguments parses a parenthesized, comma-separated argument list.
func (p *exprParser) parseArguments() ([]ast.Expression, *source.Span) {
	open := p.advance() // consume '('
	span := open.Span

	var args []ast.Expression
	for {
		tok := p.peek()
		if tok.Kind == tokens.CLOSE_PAREN {
			span = span.Add(tok.Span)
			p.advance()
			return args, span
		}
		if tok.Kind == tokens.EOF_TOKEN {
			at := span.After()
			p.errorf(at, diagnostics.ErrMissingClosing, "expected closing ')'")
			return args, span.Add(at)
		}

		arg := p.parseBinary(1)
		if arg == nil {
			p.errorf(tok.Span, diagnostics.ErrInvalidExpression,
				"unexpected token '%s' in argument list", tok.Value)
			p.advance()
			continue
		}
		args = append(args, arg)
		span = span.Add(arg.Span())

		if p.peek().Kind == tokens.COMMA_TOKEN {
			p.advance()
		}
	}
}

// parsePrimary implements the primary tier: literals, identifier
// references, parenthesized expressions, and prefix operators.
func (p *exprParser) parsePrimary() ast.Expression {
	tok := p.peek()

	switch tok.Kind {
	case tokens.INT_TOKEN:
		p.advance()
		return &ast.Literal{Kind: ast.INT, Value: tok.Value, Loc: tok.Span}

	case tokens.FLOAT_TOKEN:
		p.advance()
		return &ast.Literal{Kind: ast.FLOAT, Value: tok.Value, Loc: tok.Span}

	case tokens.STRING_TOKEN:
		p.advance()
		return &ast.Literal{Kind: ast.STRING, Value: tok.Value, Loc: tok.Span}

	case tokens.IDENTIFIER_TOKEN:
		p.advance()
		return &ast.Identifier{Name: tok.Value, Loc: tok.Span}

	case tokens.OPEN_PAREN:
		p.advance()
		expr := p.parseBinary(1)
		if expr == nil {
			at := p.peek().Span.Before()
			p.errorf(at, diagnostics.ErrInvalidExpression, "expected expression after '('")
			expr = &ast.BadExpr{Loc: at}
		}
		if p.peek().Kind == tokens.CLOSE_PAREN {
			p.advance()
		} else {
			at := expr.Span().After()
			p.errorf(at, diagnostics.ErrMissingClosing, "expected closing ')'")
		}
		return expr

	case tokens.NOT_TOKEN, tokens.MINUS_TOKEN:
		op := p.advance()
		operand := p.parseSecondary()
		if operand == nil {
			at := p.peek().Span.Before()
			p.errorf(at, diagnostics.ErrInvalidExpression,
				"expected expression after '%s'", op.Value)
			operand = &ast.BadExpr{Loc: at}
		}
		return &ast.UnaryExpr{Op: op, X: operand, Loc: op.Span.Add(operand.Span())}
	}

	return nil
}
