package compiler

import (
	"io"
	"os"

	"github.com/merkispavel/colang/internal/codegen/cgen"
	"github.com/merkispavel/colang/internal/diagnostics"
	"github.com/merkispavel/colang/internal/frontend/ast"
	"github.com/merkispavel/colang/internal/frontend/lexer"
	"github.com/merkispavel/colang/internal/frontend/parser"
	"github.com/merkispavel/colang/internal/semantics/cfganalyzer"
	"github.com/merkispavel/colang/internal/semantics/collector"
	"github.com/merkispavel/colang/internal/semantics/typechecker"
	"github.com/merkispavel/colang/internal/source"
)

// Options configures one compilation.
type Options struct {
	SourcePath string
	OutPath    string

	// PreludeSource overrides prelude discovery; used by tests and
	// in-memory compiles. When empty the prelude is probed on disk.
	PreludeSource string

	// Stderr receives rendered diagnostics; defaults to os.Stderr.
	Stderr io.Writer
}

// Result is the outcome of a compilation.
type Result struct {
	Success     bool
	Diagnostics []*diagnostics.Diagnostic
}

// Compile runs the whole pipeline: read, lex, parse, collect symbols,
// type-check, verify return flow, emit diagnostics, and generate C if
// and only if no error-severity issue was produced.
func Compile(opts Options) Result {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	diag := diagnostics.NewBag()

	prelude, userFile, err := loadInputs(opts)
	if err != nil {
		io.WriteString(stderr, err.Error()+"\n")
		return Result{Success: false}
	}

	units := parseUnits([]*source.File{prelude, userFile}, diag)

	program := collector.Collect(units, diag)
	typechecker.Check(program, diag)
	cfganalyzer.Analyze(program, diag)

	sorted := diag.Sorted()
	diagnostics.NewEmitter(stderr).EmitAll(sorted)

	if diag.HasErrors() {
		return Result{Success: false, Diagnostics: sorted}
	}

	if opts.OutPath != "" {
		out, err := os.Create(opts.OutPath)
		if err != nil {
			io.WriteString(stderr, err.Error()+"\n")
			return Result{Success: false, Diagnostics: sorted}
		}
		defer out.Close()
		if err := cgen.Emit(out, program, opts.SourcePath); err != nil {
			io.WriteString(stderr, err.Error()+"\n")
			return Result{Success: false, Diagnostics: sorted}
		}
	}

	return Result{Success: true, Diagnostics: sorted}
}

func loadInputs(opts Options) (prelude, user *source.File, err error) {
	if opts.PreludeSource != "" {
		prelude = source.NewFile("prelude.co", opts.PreludeSource)
	} else {
		path, ferr := FindPrelude()
		if ferr != nil {
			return nil, nil, ferr
		}
		prelude, err = source.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
	}

	user, err = source.ReadFile(opts.SourcePath)
	if err != nil {
		return nil, nil, err
	}
	return prelude, user, nil
}

func parseUnits(files []*source.File, diag *diagnostics.Bag) []*ast.TranslationUnit {
	units := make([]*ast.TranslationUnit, 0, len(files))
	for _, f := range files {
		toks := lexer.New(f, diag).Tokenize()
		units = append(units, parser.Parse(toks, f, diag))
	}
	return units
}
