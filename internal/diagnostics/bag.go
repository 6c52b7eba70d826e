package diagnostics

import (
	"sort"
	"sync"
)

// Bag collects diagnostics during compilation. Subsystems append as they
// run; the driver sorts and emits once at the end.
type Bag struct {
	diagnostics []*Diagnostic
	mu          sync.Mutex
	errorCount  int
	warnCount   int
}

// NewBag creates a new diagnostic bag
func NewBag() *Bag {
	return &Bag{
		diagnostics: make([]*Diagnostic, 0),
	}
}

// Add adds a diagnostic to the bag
func (b *Bag) Add(diag *Diagnostic) {
	if diag == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.diagnostics = append(b.diagnostics, diag)

	switch diag.Severity {
	case Error:
		b.errorCount++
	case Warning:
		b.warnCount++
	}
}

// AddAll adds every diagnostic from the given slice
func (b *Bag) AddAll(diags []*Diagnostic) {
	for _, d := range diags {
		b.Add(d)
	}
}

// HasErrors returns true if there are any errors
func (b *Bag) HasErrors() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errorCount > 0
}

// ErrorCount returns the number of errors
func (b *Bag) ErrorCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errorCount
}

// WarningCount returns the number of warnings
func (b *Bag) WarningCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.warnCount
}

// Diagnostics returns a copy of all diagnostics
func (b *Bag) Diagnostics() []*Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	result := make([]*Diagnostic, len(b.diagnostics))
	copy(result, b.diagnostics)
	return result
}

// Sorted returns all diagnostics in reporting order: by start position
// ascending, then end position descending, so enclosing spans precede
// enclosed ones on ties.
func (b *Bag) Sorted() []*Diagnostic {
	diags := b.Diagnostics()
	Sort(diags)
	return diags
}

// Sort orders diagnostics in place by
// (startLine asc, startChar asc, endLine desc, endChar desc).
func Sort(diags []*Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i].Span, diags[j].Span
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		if a.Start.Line != b.Start.Line {
			return a.Start.Line < b.Start.Line
		}
		if a.Start.Column != b.Start.Column {
			return a.Start.Column < b.Start.Column
		}
		if a.End.Line != b.End.Line {
			return a.End.Line > b.End.Line
		}
		return a.End.Column > b.End.Column
	})
}
