package typechecker

import (
	"fmt"

	"github.com/merkispavel/colang/internal/diagnostics"
	"github.com/merkispavel/colang/internal/frontend/ast"
	"github.com/merkispavel/colang/internal/semantics/symbols"
	"github.com/merkispavel/colang/internal/tokens"
)

// checkBinary types the built-in infix operators. Arithmetic promotes
// int operands to float when mixed; comparisons yield bool; logical
// operators require bool on both sides.
func (c *checker) checkBinary(scope *symbols.Scope, n *ast.BinaryExpr) symbols.Expression {
	left := c.checkExpr(scope, n.Left)
	right := c.checkExpr(scope, n.Right)
	u := c.program.Universe
	op := string(n.Op.Kind)

	if left.Type().Invalid || right.Type().Invalid {
		return symbols.NewErrorExpr(u.ErrType, n)
	}

	switch n.Op.Kind {
	case tokens.PLUS_TOKEN, tokens.MINUS_TOKEN, tokens.MUL_TOKEN, tokens.DIV_TOKEN:
		l, r, t := c.promoteNumeric(left, right)
		if t == nil {
			return c.binaryMismatch(n, op, left, right)
		}
		return symbols.NewBinaryExpr(op, l, r, t, n)

	case tokens.MOD_TOKEN:
		if left.Type() != u.Int || right.Type() != u.Int {
			return c.binaryMismatch(n, op, left, right)
		}
		return symbols.NewBinaryExpr(op, left, right, u.Int, n)

	case tokens.LESS_TOKEN, tokens.GREATER_TOKEN, tokens.LESS_EQUAL_TOKEN, tokens.GREATER_EQUAL_TOKEN:
		l, r, t := c.promoteNumeric(left, right)
		if t == nil {
			return c.binaryMismatch(n, op, left, right)
		}
		return symbols.NewBinaryExpr(op, l, r, u.Bool, n)

	case tokens.DOUBLE_EQUAL_TOKEN, tokens.NOT_EQUAL_TOKEN:
		if left.Type() == right.Type() {
			return symbols.NewBinaryExpr(op, left, right, u.Bool, n)
		}
		if l, r, t := c.promoteNumeric(left, right); t != nil {
			return symbols.NewBinaryExpr(op, l, r, u.Bool, n)
		}
		return c.binaryMismatch(n, op, left, right)

	case tokens.AND_TOKEN, tokens.OR_TOKEN:
		if left.Type() != u.Bool || right.Type() != u.Bool {
			return c.binaryMismatch(n, op, left, right)
		}
		return symbols.NewBinaryExpr(op, left, right, u.Bool, n)
	}

	return c.binaryMismatch(n, op, left, right)
}

// promoteNumeric unifies two numeric operands, widening int to float
// when mixed. Returns nil as the result type when either operand is
// not numeric.
func (c *checker) promoteNumeric(left, right symbols.Expression) (symbols.Expression, symbols.Expression, *symbols.Type) {
	u := c.program.Universe

	isNumeric := func(t *symbols.Type) bool { return t == u.Int || t == u.Float }
	if !isNumeric(left.Type()) || !isNumeric(right.Type()) {
		return left, right, nil
	}

	if left.Type() == right.Type() {
		return left, right, left.Type()
	}
	if left.Type() == u.Int {
		return symbols.NewConvertExpr(left, u.Float), right, u.Float
	}
	return left, symbols.NewConvertExpr(right, u.Float), u.Float
}

func (c *checker) binaryMismatch(n *ast.BinaryExpr, op string, left, right symbols.Expression) symbols.Expression {
	c.diag.Add(diagnostics.NewError(n.Span(),
		fmt.Sprintf("type mismatch: operator '%s' cannot be applied to '%s' and '%s'",
			op, left.Type(), right.Type())).
		WithCode(diagnostics.ErrTypeMismatch))
	return symbols.NewErrorExpr(c.errType(), n)
}
