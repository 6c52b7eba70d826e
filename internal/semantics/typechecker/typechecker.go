package typechecker

import (
	"fmt"

	"github.com/merkispavel/colang/internal/diagnostics"
	"github.com/merkispavel/colang/internal/frontend/ast"
	"github.com/merkispavel/colang/internal/semantics/symbols"
	"github.com/merkispavel/colang/internal/tokens"
)

// Check is phase two of analysis: it resolves and type-checks every
// function and method body against the symbols phase one collected.
// Each body gets a fresh scope chained to the root namespace with its
// parameters bound; methods additionally bind the receiver as `this`.
func Check(program *symbols.Program, diag *diagnostics.Bag) {
	c := &checker{program: program, diag: diag}

	for _, g := range program.Globals {
		c.checkGlobal(g)
	}
	for _, fn := range program.Functions {
		c.checkFunction(fn, nil)
	}
	for _, m := range program.Methods {
		c.checkFunction(&m.Function, m.Owner)
	}
}

type checker struct {
	program *symbols.Program
	diag    *diagnostics.Bag

	// current function context
	fn     *symbols.Function
	locals []*localInfo
}

type localInfo struct {
	v    *symbols.Variable
	used bool
}

func (c *checker) errType() *symbols.Type {
	return c.program.Universe.ErrType
}

func (c *checker) checkGlobal(g *symbols.Global) {
	if g.Decl == nil || g.Decl.Init == nil {
		return
	}
	init := c.checkExpr(c.program.Root, g.Decl.Init)
	coerced := c.coerce(init, g.Var.Type)
	if coerced == nil {
		c.diag.Add(diagnostics.NewError(g.Decl.Init.Span(),
			fmt.Sprintf("type mismatch: cannot initialize '%s' with '%s'", g.Var.Type, init.Type())).
			WithCode(diagnostics.ErrTypeMismatch))
		coerced = init
	}
	g.Init = coerced
}

func (c *checker) checkFunction(fn *symbols.Function, owner *symbols.Type) {
	if fn.Decl == nil || fn.Decl.Body == nil {
		return
	}

	scope := symbols.NewScope(fn.Name, c.program.Root)
	if owner != nil {
		scope.Declare(&symbols.Variable{Name: "this", Type: owner, Decl: fn.DeclLoc})
	}
	for _, p := range fn.Params {
		if p.Name != "" {
			scope.Declare(p)
		}
	}

	c.fn = fn
	c.locals = nil
	fn.Body = c.checkBlock(scope, fn.Decl.Body)

	for _, l := range c.locals {
		if !l.used {
			c.diag.Add(diagnostics.NewWarning(l.v.Decl,
				fmt.Sprintf("unused variable '%s'", l.v.Name)).
				WithCode(diagnostics.WarnUnusedSymbol))
		}
	}
	c.fn = nil
}

func (c *checker) checkBlock(parent *symbols.Scope, block *ast.CodeBlock) *symbols.Block {
	scope := symbols.NewScope("<block>", parent)
	resolved := &symbols.Block{Node: block}

	for _, stmt := range block.Stmts {
		if s := c.checkStatement(scope, stmt); s != nil {
			resolved.Stmts = append(resolved.Stmts, s)
		}
	}
	return resolved
}

func (c *checker) checkStatement(scope *symbols.Scope, node ast.Node) symbols.Statement {
	switch n := node.(type) {
	case *ast.CodeBlock:
		return c.checkBlock(scope, n)

	case *ast.IfStatement:
		cond := c.checkCondition(scope, n.Cond)
		stmt := &symbols.IfElseStatement{Cond: cond, Node: n}
		if n.Then != nil {
			stmt.Then = c.checkStatement(scope, n.Then)
		}
		if n.Else != nil {
			stmt.Else = c.checkStatement(scope, n.Else)
		}
		return stmt

	case *ast.WhileStatement:
		cond := c.checkCondition(scope, n.Cond)
		stmt := &symbols.WhileStatement{Cond: cond, Node: n}
		if n.Body != nil {
			stmt.Body = c.checkStatement(scope, n.Body)
		}
		return stmt

	case *ast.ReturnStatement:
		return c.checkReturn(scope, n)

	case *ast.VariableDefinition:
		return c.checkLocal(scope, n)

	case *ast.ExpressionStatement:
		return &symbols.ExpressionStatement{X: c.checkExpr(scope, n.X), Node: n}
	}
	return nil
}

func (c *checker) checkCondition(scope *symbols.Scope, cond ast.Expression) symbols.Expression {
	if cond == nil {
		return c.errorExpr(nil)
	}
	expr := c.checkExpr(scope, cond)
	t := expr.Type()
	if t != c.program.Universe.Bool && !t.Invalid {
		c.diag.Add(diagnostics.NewError(cond.Span(),
			fmt.Sprintf("type mismatch: condition must be 'bool', found '%s'", t)).
			WithCode(diagnostics.ErrTypeMismatch))
	}
	return expr
}

func (c *checker) checkReturn(scope *symbols.Scope, n *ast.ReturnStatement) symbols.Statement {
	ret := c.fn.ReturnType
	void := c.program.Universe.Void

	if n.Value == nil {
		if ret != void && !ret.Invalid {
			c.diag.Add(diagnostics.NewError(n.Loc,
				fmt.Sprintf("return without a value in a function returning '%s'", ret)).
				WithCode(diagnostics.ErrReturnWithoutValue))
		}
		return &symbols.ReturnStatement{Node: n}
	}

	value := c.checkExpr(scope, n.Value)
	if ret == void {
		c.diag.Add(diagnostics.NewError(n.Value.Span(),
			"return with a value in a void function").
			WithCode(diagnostics.ErrReturnValueInVoid))
		return &symbols.ReturnStatement{Value: value, Node: n}
	}

	coerced := c.coerce(value, ret)
	if coerced == nil {
		c.diag.Add(diagnostics.NewError(n.Value.Span(),
			fmt.Sprintf("type mismatch: cannot return '%s' as '%s'", value.Type(), ret)).
			WithCode(diagnostics.ErrTypeMismatch))
		coerced = value
	}
	return &symbols.ReturnStatement{Value: coerced, Node: n}
}

func (c *checker) checkLocal(scope *symbols.Scope, n *ast.VariableDefinition) symbols.Statement {
	typ := c.resolveTypeRef(n.Type)

	v := &symbols.Variable{Type: typ}
	if n.Name != nil && !n.Name.Synthetic {
		v.Name = n.Name.Name
		v.Decl = n.Name.Loc
		if prev, ok := scope.Declare(v); !ok {
			c.diag.Add(diagnostics.NewError(n.Name.Loc,
				fmt.Sprintf("redeclaration of '%s'", v.Name)).
				WithCode(diagnostics.ErrRedeclaredSymbol).
				WithSpanNote(prev.DeclSpan(), "previously declared here"))
		} else {
			c.locals = append(c.locals, &localInfo{v: v})
		}
	}

	stmt := &symbols.VarDeclStatement{Var: v, Node: n}
	if n.Init != nil {
		init := c.checkExpr(scope, n.Init)
		coerced := c.coerce(init, typ)
		if coerced == nil {
			c.diag.Add(diagnostics.NewError(n.Init.Span(),
				fmt.Sprintf("type mismatch: cannot initialize '%s' with '%s'", typ, init.Type())).
				WithCode(diagnostics.ErrTypeMismatch))
			coerced = init
		}
		stmt.Init = coerced
	}
	return stmt
}

func (c *checker) resolveTypeRef(id *ast.Identifier) *symbols.Type {
	if id == nil || id.Synthetic {
		return c.errType()
	}
	for _, sym := range c.program.Root.Lookup(id.Name) {
		if ts, ok := sym.(*symbols.TypeSymbol); ok {
			return ts.Type
		}
	}
	c.diag.Add(diagnostics.NewError(id.Loc,
		fmt.Sprintf("unknown type '%s'", id.Name)).
		WithCode(diagnostics.ErrUnknownType))
	return c.errType()
}

// coerce adapts expr to the target type: identity and error absorption
// pass through, a registered 1-step conversion inserts a coercion node,
// anything else returns nil.
func (c *checker) coerce(expr symbols.Expression, to *symbols.Type) symbols.Expression {
	from := expr.Type()
	if from == to || from.Invalid || to.Invalid {
		return expr
	}
	if from.ConvertsTo(to) {
		return symbols.NewConvertExpr(expr, to)
	}
	return nil
}

func (c *checker) errorExpr(raw ast.Node) symbols.Expression {
	return symbols.NewErrorExpr(c.errType(), raw)
}

func (c *checker) checkExpr(scope *symbols.Scope, node ast.Expression) symbols.Expression {
	if node == nil {
		return c.errorExpr(nil)
	}
	switch n := node.(type) {
	case *ast.BadExpr:
		return c.errorExpr(n)

	case *ast.Literal:
		u := c.program.Universe
		switch n.Kind {
		case ast.INT:
			return symbols.NewLiteralExpr(n.Value, u.Int, n)
		case ast.FLOAT:
			return symbols.NewLiteralExpr(n.Value, u.Float, n)
		default:
			return symbols.NewLiteralExpr(n.Value, u.String, n)
		}

	case *ast.Identifier:
		return c.checkIdentifier(scope, n)

	case *ast.CallExpr:
		return c.checkCall(scope, n)

	case *ast.MemberExpr:
		// bare member access: CO types have methods only, so a member
		// expression is meaningful only as a call callee
		c.checkExpr(scope, n.Receiver)
		if n.Name != nil && !n.Name.Synthetic {
			c.diag.Add(diagnostics.NewError(n.Span(),
				fmt.Sprintf("method '%s' must be called", n.Name.Name)).
				WithCode(diagnostics.ErrMethodNotFound))
		}
		return c.errorExpr(n)

	case *ast.AssignExpr:
		return c.checkAssign(scope, n)

	case *ast.BinaryExpr:
		return c.checkBinary(scope, n)

	case *ast.UnaryExpr:
		return c.checkUnary(scope, n)

	case *ast.PostfixExpr:
		x := c.checkExpr(scope, n.X)
		if !c.isPlace(x) {
			c.diag.Add(diagnostics.NewError(n.X.Span(), "expression is not assignable").
				WithCode(diagnostics.ErrNotAssignable))
			return c.errorExpr(n)
		}
		if x.Type() != c.program.Universe.Int && !x.Type().Invalid {
			c.diag.Add(diagnostics.NewError(n.X.Span(),
				fmt.Sprintf("type mismatch: '%s' requires 'int', found '%s'", n.Op.Value, x.Type())).
				WithCode(diagnostics.ErrTypeMismatch))
		}
		return symbols.NewPostfixIncExpr(x, n)
	}
	return c.errorExpr(node)
}

func (c *checker) checkIdentifier(scope *symbols.Scope, n *ast.Identifier) symbols.Expression {
	if n.Synthetic {
		return c.errorExpr(n)
	}

	syms := scope.Lookup(n.Name)
	if len(syms) == 0 {
		c.diag.Add(diagnostics.NewError(n.Loc,
			fmt.Sprintf("unknown identifier '%s'", n.Name)).
			WithCode(diagnostics.ErrUndefinedSymbol))
		return c.errorExpr(n)
	}

	switch sym := syms[0].(type) {
	case *symbols.Variable:
		c.markUsed(sym)
		return symbols.NewVarRefExpr(sym, n)
	case *symbols.Function:
		c.diag.Add(diagnostics.NewError(n.Loc,
			fmt.Sprintf("function '%s' is not a value; call it", n.Name)).
			WithCode(diagnostics.ErrNotCallable))
	case *symbols.TypeSymbol:
		c.diag.Add(diagnostics.NewError(n.Loc,
			fmt.Sprintf("type '%s' is not a value", n.Name)).
			WithCode(diagnostics.ErrTypeMismatch))
	}
	return c.errorExpr(n)
}

func (c *checker) markUsed(v *symbols.Variable) {
	for _, l := range c.locals {
		if l.v == v {
			l.used = true
			return
		}
	}
}

func (c *checker) checkAssign(scope *symbols.Scope, n *ast.AssignExpr) symbols.Expression {
	target := c.checkExpr(scope, n.Target)
	value := c.checkExpr(scope, n.Value)

	if !c.isPlace(target) {
		c.diag.Add(diagnostics.NewError(n.Target.Span(), "expression is not assignable").
			WithCode(diagnostics.ErrNotAssignable))
		return c.errorExpr(n)
	}

	coerced := c.coerce(value, target.Type())
	if coerced == nil {
		c.diag.Add(diagnostics.NewError(n.Value.Span(),
			fmt.Sprintf("type mismatch: cannot assign '%s' to '%s'", value.Type(), target.Type())).
			WithCode(diagnostics.ErrTypeMismatch))
		coerced = value
	}
	return symbols.NewAssignExpr(target, coerced, n)
}

// isPlace reports whether the expression designates storage.
func (c *checker) isPlace(expr symbols.Expression) bool {
	switch expr.(type) {
	case *symbols.VarRefExpr:
		return true
	case *symbols.ErrorExpr:
		return true // avoid cascades
	}
	return false
}

func (c *checker) checkUnary(scope *symbols.Scope, n *ast.UnaryExpr) symbols.Expression {
	x := c.checkExpr(scope, n.X)
	u := c.program.Universe

	switch n.Op.Kind {
	case tokens.NOT_TOKEN:
		if x.Type() != u.Bool && !x.Type().Invalid {
			c.diag.Add(diagnostics.NewError(n.X.Span(),
				fmt.Sprintf("type mismatch: '!' requires 'bool', found '%s'", x.Type())).
				WithCode(diagnostics.ErrTypeMismatch))
			return c.errorExpr(n)
		}
		return symbols.NewUnaryExpr("!", x, u.Bool, n)
	case tokens.MINUS_TOKEN:
		if t := x.Type(); t != u.Int && t != u.Float && !t.Invalid {
			c.diag.Add(diagnostics.NewError(n.X.Span(),
				fmt.Sprintf("type mismatch: '-' requires a numeric operand, found '%s'", t)).
				WithCode(diagnostics.ErrTypeMismatch))
			return c.errorExpr(n)
		}
		return symbols.NewUnaryExpr("-", x, x.Type(), n)
	}
	return c.errorExpr(n)
}
