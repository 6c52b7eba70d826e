package source

import "fmt"

// Position is a location in a source file. Line and Column are 0-based;
// rendering adds 1 for human consumption.
type Position struct {
	Line   int
	Column int
}

// Less reports whether p comes before q in source order.
func (p Position) Less(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Span is a region of a source file. End points one past the last
// character of the region; a span with Start == End is zero-width
// (used for synthesized tokens and "insert here" diagnostics).
type Span struct {
	File  *File
	Start Position
	End   Position
}

// NewSpan creates a span over the given positions.
func NewSpan(file *File, start, end Position) *Span {
	return &Span{File: file, Start: start, End: end}
}

// Add returns the smallest span covering both s and other.
func (s *Span) Add(other *Span) *Span {
	if other == nil {
		return s
	}
	start := s.Start
	if other.Start.Less(start) {
		start = other.Start
	}
	end := s.End
	if end.Less(other.End) {
		end = other.End
	}
	return &Span{File: s.File, Start: start, End: end}
}

// Before returns the zero-width span immediately preceding s.
func (s *Span) Before() *Span {
	return &Span{File: s.File, Start: s.Start, End: s.Start}
}

// After returns the zero-width span immediately following s.
func (s *Span) After() *Span {
	return &Span{File: s.File, Start: s.End, End: s.End}
}

// Contains reports whether other lies entirely within s.
func (s *Span) Contains(other *Span) bool {
	if other.Start.Less(s.Start) {
		return false
	}
	if s.End.Less(other.End) {
		return false
	}
	return true
}

// ZeroWidth reports whether the span covers no characters.
func (s *Span) ZeroWidth() bool {
	return s.Start == s.End
}

func (s *Span) String() string {
	name := "<unknown>"
	if s.File != nil {
		name = s.File.Path
	}
	return fmt.Sprintf("%s:%s-%s", name, s.Start, s.End)
}
