package parser

import (
	"github.com/merkispavel/colang/internal/diagnostics"
	"github.com/merkispavel/colang/internal/frontend/ast"
	"github.com/merkispavel/colang/internal/source"
)

// presence classifies a group element.
type presence int

const (
	// defining: absence makes the whole group NoMatch. Anchor tokens
	// that decide which production we are in are defining.
	defining presence = iota
	// required: absence after commitment is a "missing X" issue; the
	// group becomes Malformed unless a placeholder can be synthesized.
	required
	// optional: absence is silent.
	optional
)

// groupElement is one slot of a fixed-sequence production.
type groupElement struct {
	what         string // shown in "missing X" diagnostics
	strat        Strategy
	presence     presence
	stopIfAbsent bool // when absent, skip the remaining elements silently
	synth        func(at *source.Span) ast.Node
}

func def(what string, s Strategy) groupElement {
	return groupElement{what: what, strat: s, presence: defining}
}

func req(what string, s Strategy) groupElement {
	return groupElement{what: what, strat: s, presence: required}
}

func opt(what string, s Strategy) groupElement {
	return groupElement{what: what, strat: s, presence: optional}
}

func (e groupElement) stop() groupElement {
	e.stopIfAbsent = true
	return e
}

func (e groupElement) synthesize(f func(at *source.Span) ast.Node) groupElement {
	e.synth = f
	return e
}

// group consumes a fixed sequence of elements and assembles a node from
// whatever was matched. Nodes for absent optional elements are nil.
type group struct {
	elems []groupElement
	build func(nodes []ast.Node, span *source.Span) ast.Node
}

// Group builds a fixed-sequence strategy.
func Group(build func(nodes []ast.Node, span *source.Span) ast.Node, elems ...groupElement) Strategy {
	return group{elems: elems, build: build}
}

func (g group) Apply(c Cursor) Result {
	start := c
	nodes := make([]ast.Node, len(g.elems))
	var issues []*diagnostics.Diagnostic
	bad := false
	stopped := false
	var span *source.Span

	for i, el := range g.elems {
		if stopped {
			break
		}

		r := el.strat.Apply(c)
		switch r.Status {
		case StatusSuccess:
			nodes[i] = r.Node
			issues = append(issues, r.Issues...)
			c = r.Cursor
			if r.Node != nil && r.Node.Span() != nil {
				if span == nil {
					span = r.Node.Span()
				} else {
					span = span.Add(r.Node.Span())
				}
			}

		case StatusMalformed:
			issues = append(issues, r.Issues...)
			c = r.Cursor
			bad = true
			if el.stopIfAbsent {
				stopped = true
			}

		case StatusNoMatch:
			switch el.presence {
			case defining:
				// not this production at all; discard any progress
				return noMatch()
			case required:
				at := c.Peek().Span.Before()
				issues = append(issues, diagnostics.NewError(at, "missing "+el.what).
					WithCode(diagnostics.ErrMissingToken))
				if el.synth != nil {
					nodes[i] = el.synth(at)
				} else {
					bad = true
				}
				if el.stopIfAbsent {
					stopped = true
				}
			case optional:
				// silent
			}
		}
	}

	if bad {
		return malformed(issues, c)
	}
	if span == nil {
		span = start.Peek().Span.Before()
	}
	return success(g.build(nodes, span), issues, c)
}
