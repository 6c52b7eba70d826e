package parser

import (
	"fmt"

	"github.com/merkispavel/colang/internal/diagnostics"
	"github.com/merkispavel/colang/internal/frontend/ast"
	"github.com/merkispavel/colang/internal/source"
	"github.com/merkispavel/colang/internal/tokens"
)

// The concrete grammar. Strategies are wired in init because statements
// and blocks are mutually recursive.
var (
	exprStrategy           Strategy
	codeBlock              Strategy
	statement              Strategy
	ifStatement            Strategy
	whileStatement         Strategy
	returnStatement        Strategy
	expressionStatement    Strategy
	variableDefinition     Strategy
	functionDefinition     Strategy
	typeDefinition         Strategy
	globalSymbolDefinition Strategy
)

// strategyFunc adapts a function to the Strategy interface.
type strategyFunc func(c Cursor) Result

func (f strategyFunc) Apply(c Cursor) Result { return f(c) }

// specListNode carries parsed specifiers between group elements.
type specListNode struct {
	specs []*ast.Specifier
	span  *source.Span
}

func (n *specListNode) Span() *source.Span { return n.span }

// initNode carries a parsed `= expr` initializer.
type initNode struct {
	expr ast.Expression
	span *source.Span
}

func (n *initNode) Span() *source.Span { return n.span }

// specifierList parses a possibly-empty run of declaration specifiers.
// Duplicates are reported as warnings and discarded.
type specifierList struct{}

func (specifierList) Apply(c Cursor) Result {
	var specs []*ast.Specifier
	var issues []*diagnostics.Diagnostic
	seen := make(map[string]bool)
	span := c.Peek().Span.Before()

	for c.Peek().Kind == tokens.NATIVE_TOKEN {
		tok := c.Peek()
		if seen[tok.Value] {
			issues = append(issues, diagnostics.NewWarning(tok.Span,
				fmt.Sprintf("duplicate specifier '%s'", tok.Value)).
				WithCode(diagnostics.WarnDuplicateSpecifier))
		} else {
			seen[tok.Value] = true
			specs = append(specs, &ast.Specifier{Name: tok.Value, Loc: tok.Span})
			span = span.Add(tok.Span)
		}
		c = c.Next()
	}

	return success(&specListNode{specs: specs, span: span}, issues, c)
}

// mapResult wraps a strategy with a post-processing step that may
// rewrite the result (used for context-dependent validation).
func mapResult(s Strategy, f func(Result) Result) Strategy {
	return strategyFunc(func(c Cursor) Result {
		r := s.Apply(c)
		if r.Status != StatusSuccess {
			return r
		}
		return f(r)
	})
}

func asIdent(n ast.Node) *ast.Identifier {
	if n == nil {
		return nil
	}
	id, _ := n.(*ast.Identifier)
	return id
}

func asExpr(n ast.Node) ast.Expression {
	if n == nil {
		return nil
	}
	e, _ := n.(ast.Expression)
	return e
}

func asSpecs(n ast.Node) []*ast.Specifier {
	if n == nil {
		return nil
	}
	l, _ := n.(*specListNode)
	if l == nil {
		return nil
	}
	return l.specs
}

func init() {
	exprStrategy = strategyFunc(applyExpr)

	statementRef := strategyFunc(func(c Cursor) Result { return statement.Apply(c) })

	codeBlock = Enclosed(tokens.OPEN_CURLY, tokens.CLOSE_CURLY, statementRef,
		func(nodes []ast.Node, span *source.Span, missingClose bool) ast.Node {
			return &ast.CodeBlock{Stmts: nodes, MissingClose: missingClose, Loc: span}
		})

	elseClause := Group(
		func(nodes []ast.Node, span *source.Span) ast.Node {
			return nodes[1]
		},
		def("'else'", Tok(tokens.ELSE_TOKEN)),
		req("statement", statementRef).stop(),
	)

	ifStatement = Group(
		func(nodes []ast.Node, span *source.Span) ast.Node {
			return &ast.IfStatement{
				Cond: asExpr(nodes[2]),
				Then: nodes[4],
				Else: nodes[5],
				Loc:  span,
			}
		},
		def("'if'", Tok(tokens.IF_TOKEN)),
		req("'('", Tok(tokens.OPEN_PAREN)),
		req("condition", exprStrategy).synthesize(badExprAt),
		req("')'", Tok(tokens.CLOSE_PAREN)),
		req("statement", statementRef).stop(),
		opt("else clause", elseClause),
	)

	whileStatement = Group(
		func(nodes []ast.Node, span *source.Span) ast.Node {
			return &ast.WhileStatement{
				Cond: asExpr(nodes[2]),
				Body: nodes[4],
				Loc:  span,
			}
		},
		def("'while'", Tok(tokens.WHILE_TOKEN)),
		req("'('", Tok(tokens.OPEN_PAREN)),
		req("condition", exprStrategy).synthesize(badExprAt),
		req("')'", Tok(tokens.CLOSE_PAREN)),
		req("statement", statementRef).stop(),
	)

	returnStatement = Group(
		func(nodes []ast.Node, span *source.Span) ast.Node {
			return &ast.ReturnStatement{Value: asExpr(nodes[1]), Loc: span}
		},
		def("'return'", Tok(tokens.RETURN_TOKEN)),
		opt("return value", exprStrategy),
		req("';'", Tok(tokens.SEMICOLON_TOKEN)).synthesize(func(at *source.Span) ast.Node {
			return &tokenNode{tok: tokens.NewToken(tokens.SEMICOLON_TOKEN, ";", at)}
		}),
	)

	expressionStatement = Group(
		func(nodes []ast.Node, span *source.Span) ast.Node {
			return &ast.ExpressionStatement{X: asExpr(nodes[0]), Loc: span}
		},
		def("expression", exprStrategy),
		req("';'", Tok(tokens.SEMICOLON_TOKEN)).synthesize(func(at *source.Span) ast.Node {
			return &tokenNode{tok: tokens.NewToken(tokens.SEMICOLON_TOKEN, ";", at)}
		}),
	)

	initOrTerminator := Union(
		Group(
			func(nodes []ast.Node, span *source.Span) ast.Node {
				return &initNode{expr: asExpr(nodes[1]), span: span}
			},
			def("'='", Tok(tokens.EQUALS_TOKEN)),
			req("initializer", exprStrategy).synthesize(badExprAt),
			req("';'", Tok(tokens.SEMICOLON_TOKEN)).synthesize(func(at *source.Span) ast.Node {
				return &tokenNode{tok: tokens.NewToken(tokens.SEMICOLON_TOKEN, ";", at)}
			}),
		),
		Tok(tokens.SEMICOLON_TOKEN),
	)

	variableDefinition = mapResult(Group(
		func(nodes []ast.Node, span *source.Span) ast.Node {
			var init ast.Expression
			if in, ok := nodes[3].(*initNode); ok {
				init = in.expr
			}
			return &ast.VariableDefinition{
				Specifiers: asSpecs(nodes[0]),
				Type:       asIdent(nodes[1]),
				Name:       asIdent(nodes[2]),
				Init:       init,
				Loc:        span,
			}
		},
		opt("specifiers", specifierList{}),
		def("type", Ident()),
		def("name", Ident()),
		def("initializer or ';'", initOrTerminator),
	), rejectVariableSpecifiers)

	parameter := Group(
		func(nodes []ast.Node, span *source.Span) ast.Node {
			return &ast.Parameter{Type: asIdent(nodes[0]), Name: asIdent(nodes[1]), Loc: span}
		},
		def("parameter type", Ident()),
		req("parameter name", Ident()).synthesize(syntheticIdent),
		opt("','", Tok(tokens.COMMA_TOKEN)),
	)

	parameterList := Enclosed(tokens.OPEN_PAREN, tokens.CLOSE_PAREN, parameter,
		func(nodes []ast.Node, span *source.Span, missingClose bool) ast.Node {
			params := make([]*ast.Parameter, 0, len(nodes))
			for _, n := range nodes {
				if p, ok := n.(*ast.Parameter); ok {
					params = append(params, p)
				}
			}
			return &ast.ParameterList{Params: params, MissingClose: missingClose, Loc: span}
		})

	functionDefinition = Group(
		func(nodes []ast.Node, span *source.Span) ast.Node {
			params, _ := nodes[3].(*ast.ParameterList)
			body, _ := nodes[4].(*ast.CodeBlock)
			return &ast.FunctionDefinition{
				Specifiers: asSpecs(nodes[0]),
				ReturnType: asIdent(nodes[1]),
				Name:       asIdent(nodes[2]),
				Params:     params,
				Body:       body,
				Loc:        span,
			}
		},
		opt("specifiers", specifierList{}),
		def("return type", Ident()),
		def("name", Ident()),
		def("parameter list", parameterList),
		req("body or ';'", Union(strategyFunc(func(c Cursor) Result { return codeBlock.Apply(c) }),
			Tok(tokens.SEMICOLON_TOKEN))).stop(),
	)

	typeBody := Enclosed(tokens.OPEN_CURLY, tokens.CLOSE_CURLY,
		strategyFunc(func(c Cursor) Result { return functionDefinition.Apply(c) }),
		func(nodes []ast.Node, span *source.Span, missingClose bool) ast.Node {
			methods := make([]*ast.FunctionDefinition, 0, len(nodes))
			for _, n := range nodes {
				if m, ok := n.(*ast.FunctionDefinition); ok {
					methods = append(methods, m)
				}
			}
			return &ast.TypeBody{Methods: methods, MissingClose: missingClose, Loc: span}
		})

	typeDefinition = Group(
		func(nodes []ast.Node, span *source.Span) ast.Node {
			body, _ := nodes[3].(*ast.TypeBody)
			return &ast.TypeDefinition{
				Specifiers: asSpecs(nodes[0]),
				Name:       asIdent(nodes[2]),
				Body:       body,
				Loc:        span,
			}
		},
		opt("specifiers", specifierList{}),
		def("'struct'", Tok(tokens.STRUCT_TOKEN)),
		req("type name", Ident()).synthesize(syntheticIdent),
		req("type body or ';'", Union(typeBody, Tok(tokens.SEMICOLON_TOKEN))).stop(),
	)

	statement = Union(
		strategyFunc(func(c Cursor) Result { return codeBlock.Apply(c) }),
		ifStatement,
		whileStatement,
		returnStatement,
		variableDefinition,
		expressionStatement,
	)

	// order decides the ambiguity: `struct` anchors a type, a
	// parenthesized parameter list anchors a function, `=` or `;`
	// anchors a variable
	globalSymbolDefinition = Union(
		typeDefinition,
		functionDefinition,
		variableDefinition,
	)
}

func badExprAt(at *source.Span) ast.Node {
	return &ast.BadExpr{Loc: at}
}

// rejectVariableSpecifiers drops specifiers that are not legal on
// variable definitions, reporting each one.
func rejectVariableSpecifiers(r Result) Result {
	decl, ok := r.Node.(*ast.VariableDefinition)
	if !ok || len(decl.Specifiers) == 0 {
		return r
	}
	for _, spec := range decl.Specifiers {
		r.Issues = append(r.Issues, diagnostics.NewError(spec.Loc,
			fmt.Sprintf("specifier '%s' is not allowed on a variable definition", spec.Name)).
			WithCode(diagnostics.ErrIllegalSpecifier))
	}
	decl.Specifiers = nil
	return r
}
