package symbols

import (
	"github.com/merkispavel/colang/internal/frontend/ast"
)

// Statement is a resolved, type-checked statement.
type Statement interface {
	stmtNode()
}

// Expression is a resolved expression. Every expression carries a
// non-nil inferred type and a back-pointer to the raw node its spans
// come from.
type Expression interface {
	Type() *Type
	Raw() ast.Node
}

// Block is a resolved statement sequence.
type Block struct {
	Stmts []Statement
	Node  *ast.CodeBlock
}

func (*Block) stmtNode() {}

// IfElseStatement is a resolved if with an optional else arm.
type IfElseStatement struct {
	Cond Expression
	Then Statement
	Else Statement // nil when absent
	Node *ast.IfStatement
}

func (*IfElseStatement) stmtNode() {}

// WhileStatement is a resolved while loop.
type WhileStatement struct {
	Cond Expression
	Body Statement
	Node *ast.WhileStatement
}

func (*WhileStatement) stmtNode() {}

// ReturnStatement is a resolved return with an optional value.
type ReturnStatement struct {
	Value Expression // nil for `return;`
	Node  *ast.ReturnStatement
}

func (*ReturnStatement) stmtNode() {}

// ExpressionStatement is an expression evaluated for effect.
type ExpressionStatement struct {
	X    Expression
	Node *ast.ExpressionStatement
}

func (*ExpressionStatement) stmtNode() {}

// VarDeclStatement is a local variable definition.
type VarDeclStatement struct {
	Var  *Variable
	Init Expression // nil when absent
	Node *ast.VariableDefinition
}

func (*VarDeclStatement) stmtNode() {}

// LiteralExpr is an int, float or string literal.
type LiteralExpr struct {
	Value string
	typ   *Type
	raw   ast.Node
}

func NewLiteralExpr(value string, typ *Type, raw ast.Node) *LiteralExpr {
	return &LiteralExpr{Value: value, typ: typ, raw: raw}
}

func (e *LiteralExpr) Type() *Type   { return e.typ }
func (e *LiteralExpr) Raw() ast.Node { return e.raw }

// VarRefExpr is a reference to a resolved variable.
type VarRefExpr struct {
	Var *Variable
	raw ast.Node
}

func NewVarRefExpr(v *Variable, raw ast.Node) *VarRefExpr {
	return &VarRefExpr{Var: v, raw: raw}
}

func (e *VarRefExpr) Type() *Type   { return e.Var.Type }
func (e *VarRefExpr) Raw() ast.Node { return e.raw }

// CallExpr is a resolved free-function call.
type CallExpr struct {
	Callee *Function
	Args   []Expression
	raw    ast.Node
}

func NewCallExpr(callee *Function, args []Expression, raw ast.Node) *CallExpr {
	return &CallExpr{Callee: callee, Args: args, raw: raw}
}

func (e *CallExpr) Type() *Type   { return e.Callee.ReturnType }
func (e *CallExpr) Raw() ast.Node { return e.raw }

// MethodCallExpr is a resolved method invocation on a receiver.
type MethodCallExpr struct {
	Receiver Expression
	Method   *Method
	Args     []Expression
	raw      ast.Node
}

func NewMethodCallExpr(recv Expression, m *Method, args []Expression, raw ast.Node) *MethodCallExpr {
	return &MethodCallExpr{Receiver: recv, Method: m, Args: args, raw: raw}
}

func (e *MethodCallExpr) Type() *Type   { return e.Method.ReturnType }
func (e *MethodCallExpr) Raw() ast.Node { return e.raw }

// ConvertExpr is an implicit coercion inserted by the analyzer.
type ConvertExpr struct {
	X   Expression
	typ *Type
}

func NewConvertExpr(x Expression, to *Type) *ConvertExpr {
	return &ConvertExpr{X: x, typ: to}
}

func (e *ConvertExpr) Type() *Type   { return e.typ }
func (e *ConvertExpr) Raw() ast.Node { return e.X.Raw() }

// BinaryExpr is a resolved built-in binary operation.
type BinaryExpr struct {
	Op    string
	Left  Expression
	Right Expression
	typ   *Type
	raw   ast.Node
}

func NewBinaryExpr(op string, left, right Expression, typ *Type, raw ast.Node) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right, typ: typ, raw: raw}
}

func (e *BinaryExpr) Type() *Type   { return e.typ }
func (e *BinaryExpr) Raw() ast.Node { return e.raw }

// AssignExpr is a resolved assignment; its type is the target's type.
type AssignExpr struct {
	Target Expression
	Value  Expression
	raw    ast.Node
}

func NewAssignExpr(target, value Expression, raw ast.Node) *AssignExpr {
	return &AssignExpr{Target: target, Value: value, raw: raw}
}

func (e *AssignExpr) Type() *Type   { return e.Target.Type() }
func (e *AssignExpr) Raw() ast.Node { return e.raw }

// PostfixIncExpr is `x++`.
type PostfixIncExpr struct {
	X   Expression
	raw ast.Node
}

func NewPostfixIncExpr(x Expression, raw ast.Node) *PostfixIncExpr {
	return &PostfixIncExpr{X: x, raw: raw}
}

func (e *PostfixIncExpr) Type() *Type   { return e.X.Type() }
func (e *PostfixIncExpr) Raw() ast.Node { return e.raw }

// UnaryExpr is a resolved built-in prefix operation.
type UnaryExpr struct {
	Op  string
	X   Expression
	typ *Type
	raw ast.Node
}

func NewUnaryExpr(op string, x Expression, typ *Type, raw ast.Node) *UnaryExpr {
	return &UnaryExpr{Op: op, X: x, typ: typ, raw: raw}
}

func (e *UnaryExpr) Type() *Type   { return e.typ }
func (e *UnaryExpr) Raw() ast.Node { return e.raw }

// ErrorExpr is the placeholder produced when an expression could not be
// resolved; its type is the absorbing error type.
type ErrorExpr struct {
	typ *Type
	raw ast.Node
}

func NewErrorExpr(errType *Type, raw ast.Node) *ErrorExpr {
	return &ErrorExpr{typ: errType, raw: raw}
}

func (e *ErrorExpr) Type() *Type   { return e.typ }
func (e *ErrorExpr) Raw() ast.Node { return e.raw }
