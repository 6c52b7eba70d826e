package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/merkispavel/colang/colors"
	"github.com/merkispavel/colang/internal/source"
)

// Emitter renders diagnostics as text: a location header followed by the
// offending source lines with a tilde underline across the span.
type Emitter struct {
	writer io.Writer
	labels kindLabels
	color  bool
}

// NewEmitter creates an emitter for the given writer. Color is enabled
// only when the writer is an *os.File attached to a terminal.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{
		writer: w,
		labels: labelsForLocale(processLocale()),
		color:  writerIsTerminal(w),
	}
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// EmitAll renders every diagnostic in order, followed by their notes.
func (e *Emitter) EmitAll(diags []*Diagnostic) {
	for _, d := range diags {
		e.Emit(d)
	}
}

// Emit renders a single diagnostic and its notes.
func (e *Emitter) Emit(d *Diagnostic) {
	kind, color := e.labels.Error, colors.RED
	if d.Severity == Warning {
		kind, color = e.labels.Warning, colors.YELLOW
	}
	e.emitOne(d.Span, kind, color, d.Message)
	for _, note := range d.Notes {
		e.emitOne(note.Span, e.labels.Note, colors.WHITE, note.Message)
	}
}

func (e *Emitter) emitOne(span *source.Span, kind string, color colors.COLOR, message string) {
	if span == nil || span.File == nil {
		fmt.Fprintf(e.writer, "%s: %s\n", e.paint(color, kind), message)
		return
	}

	fmt.Fprintf(e.writer, "%s:%d:%d: %s: %s\n",
		span.File.Path,
		span.Start.Line+1, span.Start.Column+1,
		e.paint(color, kind), message)

	e.printExcerpt(span)
}

// printExcerpt writes the source lines the span covers, each followed by
// a tilde underline beneath the covered columns.
func (e *Emitter) printExcerpt(span *source.Span) {
	file := span.File
	for line := span.Start.Line; line <= span.End.Line; line++ {
		text := file.Line(line)
		fmt.Fprintln(e.writer, text)

		from := 0
		if line == span.Start.Line {
			from = span.Start.Column
		}
		to := len(text)
		if line == span.End.Line {
			to = span.End.Column
		}
		width := to - from
		if width < 1 {
			// zero-width spans still point at one column
			width = 1
		}
		if from > len(text) {
			from = len(text)
		}
		fmt.Fprintln(e.writer, strings.Repeat(" ", from)+strings.Repeat("~", width))
	}
}

func (e *Emitter) paint(color colors.COLOR, s string) string {
	if !e.color {
		return s
	}
	return string(color) + s + string(colors.RESET)
}
