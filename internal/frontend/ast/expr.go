package ast

import (
	"github.com/merkispavel/colang/internal/source"
	"github.com/merkispavel/colang/internal/tokens"
)

// LiteralKind distinguishes the literal expression forms.
type LiteralKind int

const (
	INT LiteralKind = iota
	FLOAT
	STRING
)

// Literal is an integer, floating or string literal.
type Literal struct {
	Kind  LiteralKind
	Value string
	Loc   *source.Span
}

func (l *Literal) Span() *source.Span { return l.Loc }
func (l *Literal) exprNode()          {}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Callee Expression
	Args   []Expression
	Loc    *source.Span
}

func (e *CallExpr) Span() *source.Span { return e.Loc }
func (e *CallExpr) exprNode()          {}

// MemberExpr is `receiver.name`.
type MemberExpr struct {
	Receiver Expression
	Name     *Identifier
	Loc      *source.Span
}

func (e *MemberExpr) Span() *source.Span { return e.Loc }
func (e *MemberExpr) exprNode()          {}

// PostfixExpr is a postfix operator application such as `x++`.
type PostfixExpr struct {
	X   Expression
	Op  tokens.Token
	Loc *source.Span
}

func (e *PostfixExpr) Span() *source.Span { return e.Loc }
func (e *PostfixExpr) exprNode()          {}

// UnaryExpr is a prefix operator application such as `!x` or `-x`.
type UnaryExpr struct {
	Op  tokens.Token
	X   Expression
	Loc *source.Span
}

func (e *UnaryExpr) Span() *source.Span { return e.Loc }
func (e *UnaryExpr) exprNode()          {}

// BinaryExpr is an infix operator application.
type BinaryExpr struct {
	Left  Expression
	Op    tokens.Token
	Right Expression
	Loc   *source.Span
}

func (e *BinaryExpr) Span() *source.Span { return e.Loc }
func (e *BinaryExpr) exprNode()          {}

// AssignExpr is `target = value`. Assignment is right-associative and
// kept distinct from BinaryExpr because the left side must be a place.
type AssignExpr struct {
	Target Expression
	Value  Expression
	Loc    *source.Span
}

func (e *AssignExpr) Span() *source.Span { return e.Loc }
func (e *AssignExpr) exprNode()          {}

// BadExpr is a placeholder for source text that failed to parse as an
// expression. The analyzer skips semantic checks on it.
type BadExpr struct {
	Loc *source.Span
}

func (e *BadExpr) Span() *source.Span { return e.Loc }
func (e *BadExpr) exprNode()          {}
