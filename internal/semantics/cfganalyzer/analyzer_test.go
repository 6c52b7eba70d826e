package cfganalyzer

import (
	"testing"

	"github.com/merkispavel/colang/internal/diagnostics"
	"github.com/merkispavel/colang/internal/frontend/ast"
	"github.com/merkispavel/colang/internal/frontend/lexer"
	"github.com/merkispavel/colang/internal/frontend/parser"
	"github.com/merkispavel/colang/internal/semantics/collector"
	"github.com/merkispavel/colang/internal/semantics/symbols"
	"github.com/merkispavel/colang/internal/semantics/typechecker"
	"github.com/merkispavel/colang/internal/source"
)

const testPrelude = `
native void print(int v);
native void print(float v);
`

func analyzeFlow(t *testing.T, src string) (*symbols.Program, *diagnostics.Bag) {
	t.Helper()
	diag := diagnostics.NewBag()

	var units []*ast.TranslationUnit
	for _, in := range []struct{ name, content string }{
		{"prelude.co", testPrelude},
		{"test.co", src},
	} {
		file := source.NewFile(in.name, in.content)
		toks := lexer.New(file, diag).Tokenize()
		units = append(units, parser.Parse(toks, file, diag))
	}

	program := collector.Collect(units, diag)
	typechecker.Check(program, diag)
	Analyze(program, diag)
	return program, diag
}

func codesOf(diag *diagnostics.Bag) []string {
	var codes []string
	for _, d := range diag.Diagnostics() {
		codes = append(codes, d.Code)
	}
	return codes
}

func countCode(diag *diagnostics.Bag, code string) int {
	n := 0
	for _, d := range diag.Diagnostics() {
		if d.Code == code {
			n++
		}
	}
	return n
}

func TestMissingReturn(t *testing.T) {
	_, diag := analyzeFlow(t, "int f() { }")

	if countCode(diag, diagnostics.ErrMissingReturn) != 1 {
		t.Fatalf("expected one missing-return error, got %v", codesOf(diag))
	}

	// the span points immediately before the closing brace
	for _, d := range diag.Diagnostics() {
		if d.Code == diagnostics.ErrMissingReturn {
			if d.Span == nil || !d.Span.ZeroWidth() {
				t.Fatal("missing-return span must be zero-width")
			}
			if d.Span.Start.Line != 0 || d.Span.Start.Column != 10 {
				t.Errorf("expected span at 0:10 (before '}'), got %v", d.Span.Start)
			}
		}
	}
}

func TestUnreachableCode(t *testing.T) {
	_, diag := analyzeFlow(t, "int f() { return 1; return 2; }")

	if countCode(diag, diagnostics.WarnUnreachableCode) != 1 {
		t.Fatalf("expected one unreachable-code warning, got %v", codesOf(diag))
	}
	if countCode(diag, diagnostics.ErrMissingReturn) != 0 {
		t.Errorf("must not also report missing return, got %v", codesOf(diag))
	}
}

func TestVoidFunctionNeedsNoReturn(t *testing.T) {
	_, diag := analyzeFlow(t, "void f() { print(1); }")

	if len(diag.Diagnostics()) != 0 {
		t.Errorf("expected no issues, got %v", codesOf(diag))
	}
}

func TestIfWithoutElseDoesNotProveReturn(t *testing.T) {
	_, diag := analyzeFlow(t, "int f(bool c) { if (c) return 1; }")

	if countCode(diag, diagnostics.ErrMissingReturn) != 1 {
		t.Errorf("then-arm alone must not satisfy the return check, got %v", codesOf(diag))
	}
}

func TestIfElseBothReturn(t *testing.T) {
	_, diag := analyzeFlow(t, "int f(bool c) { if (c) return 1; else return 2; }")

	if len(diag.Diagnostics()) != 0 {
		t.Errorf("expected no issues, got %v", codesOf(diag))
	}
}

// Branch-wise inference: both arms return subtypes of the declared
// float; their least upper bound satisfies the function.
func TestIfElseLeastUpperBound(t *testing.T) {
	_, diag := analyzeFlow(t, "float f(bool c) { if (c) return 1; else return 2.5; }")

	if len(diag.Diagnostics()) != 0 {
		t.Errorf("expected zero issues, got %v", codesOf(diag))
	}
}

func TestWhileIsConservative(t *testing.T) {
	// the loop body may never run, so a return inside proves nothing
	_, diag := analyzeFlow(t, "int f(bool c) { while (c) return 1; }")

	if countCode(diag, diagnostics.ErrMissingReturn) != 1 {
		t.Errorf("expected missing-return despite the loop return, got %v", codesOf(diag))
	}
}

func TestNestedBlocksPropagateReturn(t *testing.T) {
	_, diag := analyzeFlow(t, "int f() { { return 1; } }")

	if len(diag.Diagnostics()) != 0 {
		t.Errorf("a nested block's return must count, got %v", codesOf(diag))
	}
}

func TestStatementsAfterReturningIfElseAreUnreachable(t *testing.T) {
	_, diag := analyzeFlow(t, `
int f(bool c) {
    if (c) return 1; else return 2;
    print(3);
}`)

	if countCode(diag, diagnostics.WarnUnreachableCode) != 1 {
		t.Errorf("expected one unreachable warning, got %v", codesOf(diag))
	}
	if countCode(diag, diagnostics.ErrMissingReturn) != 0 {
		t.Errorf("must not report missing return, got %v", codesOf(diag))
	}
}

func TestReturnWithoutValueInNonVoid(t *testing.T) {
	_, diag := analyzeFlow(t, "int f() { return; }")

	if countCode(diag, diagnostics.ErrReturnWithoutValue) != 1 {
		t.Errorf("expected return-without-value error, got %v", codesOf(diag))
	}
	// the bare return still terminates the path
	if countCode(diag, diagnostics.ErrMissingReturn) != 0 {
		t.Errorf("must not also report missing return, got %v", codesOf(diag))
	}
}

func TestReturnWithValueInVoid(t *testing.T) {
	_, diag := analyzeFlow(t, "void f() { return 1; }")

	if countCode(diag, diagnostics.ErrReturnValueInVoid) != 1 {
		t.Errorf("expected return-value-in-void error, got %v", codesOf(diag))
	}
}

func TestNativeFunctionsAreExempt(t *testing.T) {
	_, diag := analyzeFlow(t, "native int f(int x);")

	if len(diag.Diagnostics()) != 0 {
		t.Errorf("native declarations need no return check, got %v", codesOf(diag))
	}
}

func TestMethodsAreChecked(t *testing.T) {
	_, diag := analyzeFlow(t, `
struct S {
    int broken() { }
}`)

	if countCode(diag, diagnostics.ErrMissingReturn) != 1 {
		t.Errorf("method bodies must be checked, got %v", codesOf(diag))
	}
}
