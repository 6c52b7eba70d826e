package diagnostics

import (
	"testing"

	"github.com/merkispavel/colang/internal/source"
)

func span(file *source.File, sl, sc, el, ec int) *source.Span {
	return source.NewSpan(file,
		source.Position{Line: sl, Column: sc},
		source.Position{Line: el, Column: ec})
}

func TestBagCounts(t *testing.T) {
	bag := NewBag()

	if bag.HasErrors() {
		t.Error("empty bag must have no errors")
	}

	bag.Add(NewError(nil, "error 1"))
	bag.Add(NewWarning(nil, "warning 1"))
	bag.Add(NewError(nil, "error 2"))

	if !bag.HasErrors() {
		t.Error("expected HasErrors after adding errors")
	}
	if bag.ErrorCount() != 2 {
		t.Errorf("expected 2 errors, got %d", bag.ErrorCount())
	}
	if bag.WarningCount() != 1 {
		t.Errorf("expected 1 warning, got %d", bag.WarningCount())
	}
	if len(bag.Diagnostics()) != 3 {
		t.Errorf("expected 3 diagnostics, got %d", len(bag.Diagnostics()))
	}
}

func TestSortOrder(t *testing.T) {
	file := source.NewFile("test.co", "line one\nline two\nline three\n")

	enclosed := NewError(span(file, 0, 2, 0, 4), "enclosed")
	enclosing := NewError(span(file, 0, 2, 1, 0), "enclosing")
	later := NewError(span(file, 2, 0, 2, 1), "later")
	first := NewError(span(file, 0, 0, 0, 1), "first")

	diags := []*Diagnostic{later, enclosed, enclosing, first}
	Sort(diags)

	want := []string{"first", "enclosing", "enclosed", "later"}
	for i, w := range want {
		if diags[i].Message != w {
			t.Errorf("position %d: expected %q, got %q", i, w, diags[i].Message)
		}
	}
}

// Sorting is a total order; re-sorting never reorders.
func TestSortIdempotent(t *testing.T) {
	file := source.NewFile("test.co", "aaaa\nbbbb\ncccc\n")

	diags := []*Diagnostic{
		NewError(span(file, 1, 0, 1, 2), "a"),
		NewError(span(file, 0, 0, 2, 0), "b"),
		NewError(span(file, 0, 0, 0, 4), "c"),
		NewWarning(span(file, 1, 0, 1, 2), "d"),
		NewError(span(file, 2, 3, 2, 3), "e"),
	}

	Sort(diags)
	once := make([]string, len(diags))
	for i, d := range diags {
		once[i] = d.Message
	}

	Sort(diags)
	for i, d := range diags {
		if d.Message != once[i] {
			t.Fatalf("re-sorting reordered: %v vs %v", once, d.Message)
		}
	}
}

func TestSortedKeepsAllDiagnostics(t *testing.T) {
	file := source.NewFile("test.co", "xy\n")
	bag := NewBag()
	bag.Add(NewWarning(span(file, 0, 1, 0, 2), "w"))
	bag.Add(NewError(span(file, 0, 0, 0, 1), "e"))

	sorted := bag.Sorted()
	if len(sorted) != 2 {
		t.Fatalf("expected 2, got %d", len(sorted))
	}
	if sorted[0].Message != "e" {
		t.Errorf("expected the earlier span first, got %q", sorted[0].Message)
	}
}
