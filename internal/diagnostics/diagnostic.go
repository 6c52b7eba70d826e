package diagnostics

import (
	"github.com/merkispavel/colang/internal/source"
)

// Severity represents the severity level of a diagnostic
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Note represents additional information attached to a diagnostic.
// The span is optional; a note without one renders as a bare message.
type Note struct {
	Span    *source.Span
	Message string
}

// Diagnostic represents a compiler diagnostic (error or warning).
// Once added to a Bag a diagnostic is treated as immutable.
type Diagnostic struct {
	Severity Severity
	Code     string // diagnostic code like "T0005"
	Span     *source.Span
	Message  string
	Notes    []Note
}

// NewError creates a new error diagnostic
func NewError(span *source.Span, message string) *Diagnostic {
	return &Diagnostic{
		Severity: Error,
		Span:     span,
		Message:  message,
	}
}

// NewWarning creates a new warning diagnostic
func NewWarning(span *source.Span, message string) *Diagnostic {
	return &Diagnostic{
		Severity: Warning,
		Span:     span,
		Message:  message,
	}
}

// WithCode sets the diagnostic code
func (d *Diagnostic) WithCode(code string) *Diagnostic {
	d.Code = code
	return d
}

// WithNote appends a note without a source span
func (d *Diagnostic) WithNote(message string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Message: message})
	return d
}

// WithSpanNote appends a note pointing at a source span
func (d *Diagnostic) WithSpanNote(span *source.Span, message string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Span: span, Message: message})
	return d
}
