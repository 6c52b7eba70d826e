package parser

import (
	"fmt"

	"github.com/merkispavel/colang/internal/diagnostics"
	"github.com/merkispavel/colang/internal/frontend/ast"
	"github.com/merkispavel/colang/internal/source"
	"github.com/merkispavel/colang/internal/tokens"
)

// Parse consumes a token stream and produces the raw translation unit.
// Recovery is local: malformed regions never abort the parse, and stray
// top-level tokens are reported and stepped over.
func Parse(toks []tokens.Token, file *source.File, diag *diagnostics.Bag) *ast.TranslationUnit {
	c := NewCursor(toks)

	var defs []ast.Node
	span := c.Peek().Span.Before()

	for !c.AtEnd() {
		r := globalSymbolDefinition.Apply(c)
		switch r.Status {
		case StatusSuccess:
			diag.AddAll(r.Issues)
			if r.Node != nil {
				defs = append(defs, r.Node)
				if r.Node.Span() != nil {
					span = span.Add(r.Node.Span())
				}
			}
			c = advanceFrom(c, r.Cursor)

		case StatusMalformed:
			diag.AddAll(r.Issues)
			c = advanceFrom(c, r.Cursor)

		case StatusNoMatch:
			tok := c.Peek()
			diag.Add(diagnostics.NewError(tok.Span,
				fmt.Sprintf("unexpected token '%s' at top level", tok.Value)).
				WithCode(diagnostics.ErrUnexpectedToken))
			c = c.Next()
		}
	}

	return &ast.TranslationUnit{Defs: defs, Loc: span}
}

// advanceFrom guarantees forward progress even when a strategy reported
// a result without consuming tokens.
func advanceFrom(before, after Cursor) Cursor {
	if after.pos <= before.pos {
		return before.Next()
	}
	return after
}
