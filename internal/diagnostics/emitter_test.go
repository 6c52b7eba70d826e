package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/merkispavel/colang/internal/source"
)

func render(diags ...*Diagnostic) string {
	var buf bytes.Buffer
	e := &Emitter{
		writer: &buf,
		labels: labelSets[0], // English, independent of the host locale
	}
	e.EmitAll(diags)
	return buf.String()
}

func TestEmitHeaderFormat(t *testing.T) {
	file := source.NewFile("demo.co", "int x = oops;\n")
	d := NewError(span(file, 0, 8, 0, 12), "unknown identifier 'oops'")

	out := render(d)
	if !strings.HasPrefix(out, "demo.co:1:9: error: unknown identifier 'oops'") {
		t.Errorf("unexpected header: %q", out)
	}
}

func TestEmitUnderlinesSpan(t *testing.T) {
	file := source.NewFile("demo.co", "int x = oops;\n")
	d := NewError(span(file, 0, 8, 0, 12), "unknown identifier")

	out := render(d)
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected source excerpt, got %q", out)
	}
	if lines[1] != "int x = oops;" {
		t.Errorf("expected the source line, got %q", lines[1])
	}
	if lines[2] != strings.Repeat(" ", 8)+"~~~~" {
		t.Errorf("expected a 4-tilde underline at column 8, got %q", lines[2])
	}
}

func TestEmitMultiLineSpan(t *testing.T) {
	file := source.NewFile("demo.co", "if (x\n&& y)\n{}\n")
	d := NewError(span(file, 0, 4, 1, 4), "condition spans lines")

	out := render(d)
	// both covered lines appear, each with an underline beneath
	if !strings.Contains(out, "if (x\n") {
		t.Errorf("missing first source line: %q", out)
	}
	if !strings.Contains(out, "&& y)\n~~~~\n") {
		t.Errorf("missing second underline: %q", out)
	}
}

func TestEmitZeroWidthSpanStillPoints(t *testing.T) {
	file := source.NewFile("demo.co", "int f() { }\n")
	at := source.NewSpan(file, source.Position{Line: 0, Column: 10}, source.Position{Line: 0, Column: 10})
	d := NewError(at, "missing return statement")

	out := render(d)
	if !strings.Contains(out, strings.Repeat(" ", 10)+"~") {
		t.Errorf("zero-width span must render one tilde: %q", out)
	}
}

func TestEmitNotes(t *testing.T) {
	file := source.NewFile("demo.co", "int x = 1;\nint x = 2;\n")
	d := NewError(span(file, 1, 4, 1, 5), "redeclaration of 'x'").
		WithSpanNote(span(file, 0, 4, 0, 5), "previously declared here")

	out := render(d)
	if !strings.Contains(out, "demo.co:2:5: error: redeclaration of 'x'") {
		t.Errorf("missing error header: %q", out)
	}
	if !strings.Contains(out, "demo.co:1:5: note: previously declared here") {
		t.Errorf("missing note header: %q", out)
	}
}

func TestLocaleLabels(t *testing.T) {
	tests := []struct {
		locale string
		err    string
	}{
		{"en_US.UTF-8", "error"},
		{"ru_RU.UTF-8", "ошибка"},
		{"be_BY.UTF-8", "памылка"},
		{"fr_FR.UTF-8", "error"}, // unsupported falls back to English
		{"", "error"},
		{"garbage!!", "error"},
	}

	for _, tt := range tests {
		labels := labelsForLocale(tt.locale)
		if labels.Error != tt.err {
			t.Errorf("%q: expected error label %q, got %q", tt.locale, tt.err, labels.Error)
		}
	}
}
