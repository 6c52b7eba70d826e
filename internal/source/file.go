package source

import (
	"os"
	"strings"
)

// File is an in-memory source buffer with a line index. The whole
// compilation works off these buffers; files are read once, eagerly.
type File struct {
	Path    string
	Content string
	lines   []string
}

// NewFile wraps already-loaded content in a File.
func NewFile(path, content string) *File {
	return &File{
		Path:    path,
		Content: content,
		lines:   splitLines(content),
	}
}

// ReadFile loads a file from disk into a File.
func ReadFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewFile(path, string(content)), nil
}

// Line returns the i-th line (0-based) without its trailing newline.
// Out-of-range lines return the empty string.
func (f *File) Line(i int) string {
	if i < 0 || i >= len(f.lines) {
		return ""
	}
	return f.lines[i]
}

// LineCount returns the number of lines in the file.
func (f *File) LineCount() int {
	return len(f.lines)
}

// EndPos returns the position one past the last character of the file.
func (f *File) EndPos() Position {
	if len(f.lines) == 0 {
		return Position{Line: 0, Column: 0}
	}
	last := len(f.lines) - 1
	return Position{Line: last, Column: len(f.lines[last])}
}

func splitLines(content string) []string {
	if content == "" {
		return []string{""}
	}
	lines := strings.Split(content, "\n")
	return lines
}
