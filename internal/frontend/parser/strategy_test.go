package parser

import (
	"testing"

	"github.com/merkispavel/colang/internal/diagnostics"
	"github.com/merkispavel/colang/internal/frontend/ast"
	"github.com/merkispavel/colang/internal/frontend/lexer"
	"github.com/merkispavel/colang/internal/source"
	"github.com/merkispavel/colang/internal/tokens"
)

func cursorFor(t *testing.T, src string) Cursor {
	t.Helper()
	diag := diagnostics.NewBag()
	file := source.NewFile("test.co", src)
	return NewCursor(lexer.New(file, diag).Tokenize())
}

func TestTokenStrategyNoMatchLeavesCursorAlone(t *testing.T) {
	c := cursorFor(t, "x")

	r := Tok(tokens.STRUCT_TOKEN).Apply(c)
	if r.Status != StatusNoMatch {
		t.Fatalf("expected NoMatch, got %v", r.Status)
	}
	if len(r.Issues) != 0 {
		t.Error("NoMatch must carry no issues")
	}
}

func TestUnionReturnsFirstNonNoMatch(t *testing.T) {
	c := cursorFor(t, "struct")

	u := Union(
		Tok(tokens.IF_TOKEN),
		Tok(tokens.STRUCT_TOKEN),
		Ident(),
	)
	r := u.Apply(c)
	if r.Status != StatusSuccess {
		t.Fatalf("expected Success, got %v", r.Status)
	}
	tok := r.Node.(*tokenNode).tok
	if tok.Kind != tokens.STRUCT_TOKEN {
		t.Errorf("expected the struct alternative, got %q", tok.Kind)
	}
}

func TestGroupDefiningAbsenceIsNoMatch(t *testing.T) {
	c := cursorFor(t, "x y")

	g := Group(
		func(nodes []ast.Node, span *source.Span) ast.Node { return nodes[1] },
		def("'struct'", Tok(tokens.STRUCT_TOKEN)),
		req("name", Ident()),
	)
	r := g.Apply(c)
	if r.Status != StatusNoMatch {
		t.Fatalf("expected NoMatch on absent anchor, got %v", r.Status)
	}
}

func TestGroupRequiredAbsenceReportsAndSynthesizes(t *testing.T) {
	c := cursorFor(t, "struct ;")

	g := Group(
		func(nodes []ast.Node, span *source.Span) ast.Node { return nodes[1] },
		def("'struct'", Tok(tokens.STRUCT_TOKEN)),
		req("type name", Ident()).synthesize(syntheticIdent),
	)
	r := g.Apply(c)
	if r.Status != StatusSuccess {
		t.Fatalf("expected Success via placeholder, got %v", r.Status)
	}
	if len(r.Issues) != 1 || r.Issues[0].Code != diagnostics.ErrMissingToken {
		t.Fatalf("expected one missing-token issue, got %v", r.Issues)
	}
	id := r.Node.(*ast.Identifier)
	if !id.Synthetic {
		t.Error("placeholder identifier must be marked synthetic")
	}
	if !id.Loc.ZeroWidth() {
		t.Error("placeholder must carry a zero-width span")
	}
}

func TestGroupRequiredWithoutPlaceholderIsMalformed(t *testing.T) {
	c := cursorFor(t, "if x")

	g := Group(
		func(nodes []ast.Node, span *source.Span) ast.Node { return nodes[0] },
		def("'if'", Tok(tokens.IF_TOKEN)),
		req("'('", Tok(tokens.OPEN_PAREN)),
	)
	r := g.Apply(c)
	if r.Status != StatusMalformed {
		t.Fatalf("expected Malformed, got %v", r.Status)
	}
	if len(r.Issues) != 1 {
		t.Fatalf("expected one issue, got %d", len(r.Issues))
	}
}

// stopIfAbsent prevents cascading missing-token errors after the first
// structural failure.
func TestGroupStopIfAbsent(t *testing.T) {
	c := cursorFor(t, "if")

	g := Group(
		func(nodes []ast.Node, span *source.Span) ast.Node { return nodes[0] },
		def("'if'", Tok(tokens.IF_TOKEN)),
		req("'('", Tok(tokens.OPEN_PAREN)).stop(),
		req("condition", exprStrategy),
		req("')'", Tok(tokens.CLOSE_PAREN)),
	)
	r := g.Apply(c)
	if r.Status != StatusMalformed {
		t.Fatalf("expected Malformed, got %v", r.Status)
	}
	if len(r.Issues) != 1 {
		t.Errorf("expected only the first missing-token issue, got %d", len(r.Issues))
	}
}

func TestSequenceCollectsUntilNoMatch(t *testing.T) {
	c := cursorFor(t, "a b c 42")

	r := Sequence(Ident()).Apply(c)
	if r.Status != StatusSuccess {
		t.Fatalf("expected Success, got %v", r.Status)
	}
	list := r.Node.(*nodeList)
	if len(list.Nodes()) != 3 {
		t.Fatalf("expected 3 identifiers, got %d", len(list.Nodes()))
	}
	if r.Cursor.Peek().Kind != tokens.INT_TOKEN {
		t.Errorf("cursor must stop at the first non-match, got %q", r.Cursor.Peek().Kind)
	}
}

func TestEnclosedSynthesizesMissingCloser(t *testing.T) {
	c := cursorFor(t, "{ a b")

	r := Enclosed(tokens.OPEN_CURLY, tokens.CLOSE_CURLY, Ident(),
		func(nodes []ast.Node, span *source.Span, missingClose bool) ast.Node {
			return &ast.CodeBlock{Stmts: nodes, MissingClose: missingClose, Loc: span}
		}).Apply(c)

	if r.Status != StatusSuccess {
		t.Fatalf("enclosed productions must always yield a node, got %v", r.Status)
	}
	block := r.Node.(*ast.CodeBlock)
	if !block.MissingClose {
		t.Error("expected the missing-closer flag")
	}
	if len(block.Stmts) != 2 {
		t.Errorf("expected 2 elements, got %d", len(block.Stmts))
	}

	found := false
	for _, issue := range r.Issues {
		if issue.Code == diagnostics.ErrMissingClosing {
			found = true
			if !issue.Span.ZeroWidth() {
				t.Error("missing-closer span must be zero-width")
			}
		}
	}
	if !found {
		t.Error("expected an expected-closing issue")
	}
}

func TestEnclosedEmptyBody(t *testing.T) {
	c := cursorFor(t, "{ }")

	r := Enclosed(tokens.OPEN_CURLY, tokens.CLOSE_CURLY, Ident(),
		func(nodes []ast.Node, span *source.Span, missingClose bool) ast.Node {
			return &ast.CodeBlock{Stmts: nodes, MissingClose: missingClose, Loc: span}
		}).Apply(c)

	if r.Status != StatusSuccess || len(r.Issues) != 0 {
		t.Fatalf("expected clean Success, got %v / %v", r.Status, r.Issues)
	}
	if r.Node.(*ast.CodeBlock).MissingClose {
		t.Error("closer was present")
	}
}
