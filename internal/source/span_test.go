package source

import "testing"

func TestSpanAdd(t *testing.T) {
	file := NewFile("test.co", "int x = 1;\nint y = 2;\n")

	a := NewSpan(file, Position{Line: 0, Column: 4}, Position{Line: 0, Column: 5})
	b := NewSpan(file, Position{Line: 1, Column: 0}, Position{Line: 1, Column: 3})

	cover := a.Add(b)
	if cover.Start != a.Start {
		t.Errorf("expected cover start %v, got %v", a.Start, cover.Start)
	}
	if cover.End != b.End {
		t.Errorf("expected cover end %v, got %v", b.End, cover.End)
	}

	// covering is symmetric
	cover2 := b.Add(a)
	if cover2.Start != cover.Start || cover2.End != cover.End {
		t.Errorf("Add is not symmetric: %v vs %v", cover, cover2)
	}
}

func TestSpanBeforeAfter(t *testing.T) {
	file := NewFile("test.co", "abc def")
	span := NewSpan(file, Position{Line: 0, Column: 4}, Position{Line: 0, Column: 7})

	before := span.Before()
	if !before.ZeroWidth() {
		t.Error("Before() must be zero-width")
	}
	if before.Start != span.Start {
		t.Errorf("Before() must sit at the span start, got %v", before.Start)
	}

	after := span.After()
	if !after.ZeroWidth() {
		t.Error("After() must be zero-width")
	}
	if after.Start != span.End {
		t.Errorf("After() must sit at the span end, got %v", after.Start)
	}
}

func TestSpanContains(t *testing.T) {
	file := NewFile("test.co", "int x = 1;\nint y = 2;\n")

	outer := NewSpan(file, Position{Line: 0, Column: 0}, Position{Line: 1, Column: 10})
	inner := NewSpan(file, Position{Line: 0, Column: 4}, Position{Line: 0, Column: 5})
	outside := NewSpan(file, Position{Line: 1, Column: 5}, Position{Line: 2, Column: 0})

	if !outer.Contains(inner) {
		t.Error("outer must contain inner")
	}
	if !outer.Contains(outer) {
		t.Error("a span must contain itself")
	}
	if outer.Contains(outside) {
		t.Error("outer must not contain a span ending past it")
	}
	if inner.Contains(outer) {
		t.Error("inner must not contain outer")
	}
}

func TestFileLines(t *testing.T) {
	file := NewFile("test.co", "one\ntwo\nthree")

	if file.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", file.LineCount())
	}
	if file.Line(1) != "two" {
		t.Errorf("expected line 1 to be 'two', got %q", file.Line(1))
	}
	if file.Line(99) != "" {
		t.Error("out-of-range line must be empty")
	}

	end := file.EndPos()
	if end.Line != 2 || end.Column != 5 {
		t.Errorf("expected end position 2:5, got %d:%d", end.Line, end.Column)
	}
}
