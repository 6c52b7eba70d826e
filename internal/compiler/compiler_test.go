package compiler

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testPrelude = `
native void print(int v);
native void print(float v);
native void print(string v);
`

func compileString(t *testing.T, src string) (Result, string, string) {
	t.Helper()
	dir := t.TempDir()

	srcPath := filepath.Join(dir, "main.co")
	if err := os.WriteFile(srcPath, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "main.c")

	var stderr bytes.Buffer
	result := Compile(Options{
		SourcePath:    srcPath,
		OutPath:       outPath,
		PreludeSource: testPrelude,
		Stderr:        &stderr,
	})

	generated := ""
	if data, err := os.ReadFile(outPath); err == nil {
		generated = string(data)
	}
	return result, generated, stderr.String()
}

func TestCompileHelloWorld(t *testing.T) {
	result, generated, stderr := compileString(t, `void main() { print(42); }`)

	if !result.Success {
		t.Fatalf("expected success, stderr:\n%s", stderr)
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("expected zero issues, got %d", len(result.Diagnostics))
	}
	if generated == "" {
		t.Fatal("expected non-empty backend output")
	}
	if !strings.Contains(generated, "co_main") {
		t.Errorf("expected a mangled main in the output:\n%s", generated)
	}
	if !strings.Contains(generated, "int main(void)") {
		t.Errorf("expected a C entry point:\n%s", generated)
	}
}

func TestCompileErrorBlocksBackend(t *testing.T) {
	result, generated, stderr := compileString(t, `int f() { }`)

	if result.Success {
		t.Fatal("expected failure for missing return")
	}
	if generated != "" {
		t.Error("backend must not run when errors were reported")
	}
	if !strings.Contains(stderr, "missing return") {
		t.Errorf("expected rendered diagnostic on stderr, got:\n%s", stderr)
	}
}

func TestWarningsDoNotBlockBackend(t *testing.T) {
	result, generated, _ := compileString(t, `void main() { int unused = 1; }`)

	if !result.Success {
		t.Fatal("warnings must not block code generation")
	}
	if generated == "" {
		t.Error("expected backend output despite the warning")
	}
	if len(result.Diagnostics) != 1 {
		t.Errorf("expected the warning to be reported, got %d diagnostics", len(result.Diagnostics))
	}
}

func TestDiagnosticsAreSorted(t *testing.T) {
	result, _, _ := compileString(t, `
void main() {
    print(first);
    print(second);
}`)

	if result.Success {
		t.Fatal("expected failure")
	}
	var lines []int
	for _, d := range result.Diagnostics {
		if d.Span != nil {
			lines = append(lines, d.Span.Start.Line)
		}
	}
	for i := 1; i < len(lines); i++ {
		if lines[i] < lines[i-1] {
			t.Fatalf("diagnostics out of order: %v", lines)
		}
	}
}

func TestMethodsCompileToReceiverFunctions(t *testing.T) {
	result, generated, stderr := compileString(t, `
struct Counter {
    int get() { return 41; }
}
void main() { print(1); }
`)

	if !result.Success {
		t.Fatalf("expected success, stderr:\n%s", stderr)
	}
	if !strings.Contains(generated, "co_Counter_get(co_Counter *this)") {
		t.Errorf("expected method lowered with receiver parameter:\n%s", generated)
	}
}

func TestTruncatedInputStillFailsGracefully(t *testing.T) {
	result, generated, stderr := compileString(t, `struct S { void m() { `)

	if result.Success {
		t.Fatal("expected failure")
	}
	if generated != "" {
		t.Error("backend must not run")
	}
	if !strings.Contains(stderr, "expected closing") {
		t.Errorf("expected missing-closer diagnostics, got:\n%s", stderr)
	}
}

func TestFindPreludeProbesKnownPaths(t *testing.T) {
	paths := preludeProbePaths()
	if len(paths) < 3 {
		t.Fatalf("expected at least the three system paths, got %v", paths)
	}
	last := paths[len(paths)-1]
	if last != "/lib/colang/prelude.co" {
		t.Errorf("expected /lib/colang/prelude.co last, got %s", last)
	}
}
