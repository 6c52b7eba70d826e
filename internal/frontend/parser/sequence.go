package parser

import (
	"fmt"

	"github.com/merkispavel/colang/internal/diagnostics"
	"github.com/merkispavel/colang/internal/frontend/ast"
	"github.com/merkispavel/colang/internal/source"
	"github.com/merkispavel/colang/internal/tokens"
)

// nodeList is the node produced by Sequence: the matched elements in
// order. Productions unwrap it in their build functions.
type nodeList struct {
	nodes []ast.Node
	span  *source.Span
}

func (l *nodeList) Span() *source.Span { return l.span }

// Nodes exposes the matched elements for callers unwrapping a sequence.
func (l *nodeList) Nodes() []ast.Node { return l.nodes }

// sequence repeats an element strategy until it reports NoMatch,
// recovering from Malformed elements by collecting their issues and
// continuing with the next one.
type sequence struct {
	elem Strategy
}

// Sequence repeats the element until it no longer matches. A sequence
// always succeeds; zero elements produce an empty list.
func Sequence(elem Strategy) Strategy {
	return sequence{elem: elem}
}

func (s sequence) Apply(c Cursor) Result {
	var nodes []ast.Node
	var issues []*diagnostics.Diagnostic
	span := c.Peek().Span.Before()

	for {
		r := s.elem.Apply(c)
		if r.Status == StatusNoMatch {
			break
		}
		issues = append(issues, r.Issues...)
		if r.Status == StatusSuccess && r.Node != nil {
			nodes = append(nodes, r.Node)
			if r.Node.Span() != nil {
				span = span.Add(r.Node.Span())
			}
		}
		if r.Cursor.pos == c.pos {
			// the element reported progress without consuming anything;
			// step over one token so the loop terminates
			c = c.Next()
		} else {
			c = r.Cursor
		}
	}

	return success(&nodeList{nodes: nodes, span: span}, issues, c)
}

// enclosed matches an opening token, a sequence of elements, and a
// closing token. A missing closer is reported and synthesized so the
// production always yields a well-formed node, even on truncated input.
type enclosed struct {
	open  tokens.TOKEN
	close tokens.TOKEN
	elem  Strategy
	build func(nodes []ast.Node, span *source.Span, missingClose bool) ast.Node
}

// Enclosed builds a delimited-sequence strategy. The opener is its
// defining anchor.
func Enclosed(open, close tokens.TOKEN, elem Strategy,
	build func(nodes []ast.Node, span *source.Span, missingClose bool) ast.Node) Strategy {
	return enclosed{open: open, close: close, elem: elem, build: build}
}

func (e enclosed) Apply(c Cursor) Result {
	if c.Peek().Kind != e.open {
		return noMatch()
	}
	openTok := c.Peek()
	c = c.Next()

	var nodes []ast.Node
	var issues []*diagnostics.Diagnostic
	last := openTok.Span
	missing := false

	for {
		tok := c.Peek()
		if tok.Kind == e.close {
			last = tok.Span
			c = c.Next()
			break
		}
		if tok.Kind == tokens.EOF_TOKEN {
			missing = true
			break
		}

		r := e.elem.Apply(c)
		switch r.Status {
		case StatusSuccess:
			issues = append(issues, r.Issues...)
			if r.Node != nil {
				nodes = append(nodes, r.Node)
				if r.Node.Span() != nil {
					last = r.Node.Span()
				}
			}
			if r.Cursor.pos == c.pos {
				c = c.Next()
			} else {
				c = r.Cursor
			}
		case StatusMalformed:
			issues = append(issues, r.Issues...)
			if r.Cursor.pos == c.pos {
				c = c.Next()
			} else {
				c = r.Cursor
			}
		case StatusNoMatch:
			// not an element and not the closer: report and step over
			issues = append(issues, diagnostics.NewError(tok.Span,
				fmt.Sprintf("unexpected token '%s'", tok.Value)).
				WithCode(diagnostics.ErrUnexpectedToken))
			c = c.Next()
		}
	}

	span := openTok.Span.Add(last)
	if missing {
		at := last.After()
		issues = append(issues, diagnostics.NewError(at,
			fmt.Sprintf("expected closing '%s'", e.close)).
			WithCode(diagnostics.ErrMissingClosing))
		span = openTok.Span.Add(at)
	}

	return success(e.build(nodes, span, missing), issues, c)
}
