package parser

import (
	"github.com/merkispavel/colang/internal/diagnostics"
	"github.com/merkispavel/colang/internal/frontend/ast"
	"github.com/merkispavel/colang/internal/source"
	"github.com/merkispavel/colang/internal/tokens"
)

// Cursor is an immutable position in the token stream. Advancing returns
// a new cursor; strategies never mutate the one they were given.
type Cursor struct {
	toks []tokens.Token
	pos  int
}

// NewCursor creates a cursor at the start of a token stream. The stream
// must be terminated by an EOF token (the lexer guarantees this).
func NewCursor(toks []tokens.Token) Cursor {
	return Cursor{toks: toks, pos: 0}
}

// Peek returns the token under the cursor.
func (c Cursor) Peek() tokens.Token {
	if c.pos >= len(c.toks) {
		return c.toks[len(c.toks)-1]
	}
	return c.toks[c.pos]
}

// Next returns the cursor advanced by one token.
func (c Cursor) Next() Cursor {
	if c.pos >= len(c.toks)-1 {
		return Cursor{toks: c.toks, pos: len(c.toks) - 1}
	}
	return Cursor{toks: c.toks, pos: c.pos + 1}
}

// AtEnd reports whether the cursor sits on the EOF token.
func (c Cursor) AtEnd() bool {
	return c.Peek().Kind == tokens.EOF_TOKEN
}

// Status is the three-way outcome of applying a strategy.
type Status int

const (
	// StatusNoMatch: the strategy did not commit; cursor unchanged,
	// no issues. The caller is free to try alternatives.
	StatusNoMatch Status = iota
	// StatusSuccess: a node was produced, possibly with recovered-from
	// issues; the cursor advanced past it.
	StatusSuccess
	// StatusMalformed: the strategy committed (its anchors matched) but
	// the node could not be completed; the cursor advanced past the
	// attempted region so the caller can continue the outer production.
	StatusMalformed
)

// Result is what a strategy returns.
type Result struct {
	Status Status
	Node   ast.Node
	Issues []*diagnostics.Diagnostic
	Cursor Cursor
}

func success(node ast.Node, issues []*diagnostics.Diagnostic, c Cursor) Result {
	return Result{Status: StatusSuccess, Node: node, Issues: issues, Cursor: c}
}

func malformed(issues []*diagnostics.Diagnostic, c Cursor) Result {
	return Result{Status: StatusMalformed, Issues: issues, Cursor: c}
}

func noMatch() Result {
	return Result{Status: StatusNoMatch}
}

// Strategy is a parsing operation over a token cursor with a three-way
// outcome. All grammar productions are built from these.
type Strategy interface {
	Apply(c Cursor) Result
}

// union tries each alternative in order and returns the first
// non-NoMatch result. Ordering resolves grammar ambiguities.
type union struct {
	alts []Strategy
}

// Union combines strategies into an ordered alternative.
func Union(alts ...Strategy) Strategy {
	return union{alts: alts}
}

func (u union) Apply(c Cursor) Result {
	for _, alt := range u.alts {
		r := alt.Apply(c)
		if r.Status != StatusNoMatch {
			return r
		}
	}
	return noMatch()
}

// tokenNode wraps a single matched token as a parse node.
type tokenNode struct {
	tok tokens.Token
}

func (n *tokenNode) Span() *source.Span { return n.tok.Span }

// tokenStrategy matches exactly one token of the given kind.
type tokenStrategy struct {
	kind tokens.TOKEN
}

// Tok matches a single token of the given kind.
func Tok(kind tokens.TOKEN) Strategy {
	return tokenStrategy{kind: kind}
}

func (t tokenStrategy) Apply(c Cursor) Result {
	if c.Peek().Kind != t.kind {
		return noMatch()
	}
	return success(&tokenNode{tok: c.Peek()}, nil, c.Next())
}

// identifierStrategy matches a single identifier token.
type identifierStrategy struct{}

// Ident matches one identifier token and produces an ast.Identifier.
func Ident() Strategy {
	return identifierStrategy{}
}

func (identifierStrategy) Apply(c Cursor) Result {
	tok := c.Peek()
	if tok.Kind != tokens.IDENTIFIER_TOKEN {
		return noMatch()
	}
	node := &ast.Identifier{Name: tok.Value, Loc: tok.Span}
	return success(node, nil, c.Next())
}

// syntheticIdent builds a placeholder identifier at a zero-width span.
// The analyzer skips semantic checks on synthetic nodes.
func syntheticIdent(at *source.Span) ast.Node {
	return &ast.Identifier{Name: "", Synthetic: true, Loc: at}
}
