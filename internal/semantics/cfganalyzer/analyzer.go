package cfganalyzer

import (
	"fmt"

	"github.com/merkispavel/colang/internal/diagnostics"
	"github.com/merkispavel/colang/internal/semantics/symbols"
	"github.com/merkispavel/colang/internal/source"
)

// Analyze validates return flow over the resolved program: every path
// through a non-void function must return, and statements after a
// statically guaranteed return are flagged unreachable.
func Analyze(program *symbols.Program, diag *diagnostics.Bag) {
	a := &analyzer{program: program, diag: diag}

	for _, fn := range program.Functions {
		a.analyzeFunction(fn)
	}
	for _, m := range program.Methods {
		a.analyzeFunction(&m.Function)
	}
}

type analyzer struct {
	program *symbols.Program
	diag    *diagnostics.Bag
}

// flowResult is the per-statement outcome: whether the statement is
// guaranteed to return, and the inferred value type when it is.
type flowResult struct {
	returns   bool
	valueType *symbols.Type // nil for `return;` and non-returning paths
}

func wontReturn() flowResult {
	return flowResult{}
}

func willReturn(t *symbols.Type) flowResult {
	return flowResult{returns: true, valueType: t}
}

func (a *analyzer) analyzeFunction(fn *symbols.Function) {
	if fn.Body == nil || fn.Native {
		return
	}

	r := a.analyzeStmt(fn.Body)

	void := a.program.Universe.Void
	if !r.returns && fn.ReturnType != void && !fn.ReturnType.Invalid {
		a.diag.Add(diagnostics.NewError(beforeClosingBrace(fn),
			fmt.Sprintf("missing return statement: '%s' must return '%s' on every path",
				fn.Name, fn.ReturnType)).
			WithCode(diagnostics.ErrMissingReturn))
	}
}

// beforeClosingBrace locates the zero-width span immediately preceding
// the closing brace of a function body.
func beforeClosingBrace(fn *symbols.Function) *source.Span {
	body := fn.Decl.Body
	end := body.Loc.End
	pos := source.Position{Line: end.Line, Column: end.Column}
	if !body.MissingClose && pos.Column > 0 {
		pos.Column--
	}
	return source.NewSpan(body.Loc.File, pos, pos)
}

func (a *analyzer) analyzeStmt(stmt symbols.Statement) flowResult {
	if stmt == nil {
		return wontReturn()
	}
	switch s := stmt.(type) {
	case *symbols.ReturnStatement:
		if s.Value == nil {
			return willReturn(nil)
		}
		return willReturn(s.Value.Type())

	case *symbols.IfElseStatement:
		thenResult := a.analyzeStmt(s.Then)
		if s.Else == nil {
			// the then arm alone proves nothing: the condition may
			// be false, so its WillReturn is dropped deliberately
			return wontReturn()
		}
		elseResult := a.analyzeStmt(s.Else)
		if thenResult.returns && elseResult.returns {
			return willReturn(symbols.LeastUpperBound(thenResult.valueType, elseResult.valueType))
		}
		return wontReturn()

	case *symbols.WhileStatement:
		// the loop body may never run
		a.analyzeStmt(s.Body)
		return wontReturn()

	case *symbols.Block:
		var result flowResult
		for _, inner := range s.Stmts {
			if result.returns {
				a.diag.Add(diagnostics.NewWarning(stmtSpan(inner), "unreachable code").
					WithCode(diagnostics.WarnUnreachableCode))
				// still analyze for nested issues
				a.analyzeStmt(inner)
				continue
			}
			if r := a.analyzeStmt(inner); r.returns {
				result = r
			}
		}
		return result
	}

	return wontReturn()
}

// stmtSpan recovers a diagnostic span from a resolved statement via its
// raw-node back-pointer.
func stmtSpan(stmt symbols.Statement) *source.Span {
	switch s := stmt.(type) {
	case *symbols.Block:
		if s.Node != nil {
			return s.Node.Loc
		}
	case *symbols.IfElseStatement:
		if s.Node != nil {
			return s.Node.Loc
		}
	case *symbols.WhileStatement:
		if s.Node != nil {
			return s.Node.Loc
		}
	case *symbols.ReturnStatement:
		if s.Node != nil {
			return s.Node.Loc
		}
	case *symbols.ExpressionStatement:
		if s.Node != nil {
			return s.Node.Loc
		}
	case *symbols.VarDeclStatement:
		if s.Node != nil {
			return s.Node.Loc
		}
	}
	return nil
}
