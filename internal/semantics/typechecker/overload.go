package typechecker

import (
	"fmt"
	"strings"

	"github.com/merkispavel/colang/internal/diagnostics"
	"github.com/merkispavel/colang/internal/frontend/ast"
	"github.com/merkispavel/colang/internal/semantics/symbols"
	"github.com/merkispavel/colang/internal/source"
)

// candidate pairs a callable with its parameter type vector for
// overload selection.
type candidate struct {
	fn     *symbols.Function
	method *symbols.Method
	params []*symbols.Type
}

func (cand candidate) declSpan() *source.Span {
	if cand.method != nil {
		return cand.method.DeclLoc
	}
	return cand.fn.DeclLoc
}

func (cand candidate) signature() string {
	names := make([]string, len(cand.params))
	for i, t := range cand.params {
		names[i] = t.String()
	}
	name := cand.fn.Name
	if cand.method != nil {
		name = cand.method.Name
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(names, ", "))
}

// resolveOverload selects the unique best candidate for the given
// argument types, per the call-site selection rules:
//
//  1. drop candidates whose arity does not match;
//  2. drop candidates some argument is not assignable to;
//  3. among the survivors, pick the unique minimum of the
//     component-wise assignability order on parameter vectors.
//
// The minimum is found with a pairwise dominance filter, not a sort:
// the order is partial, and both zero and several minima are
// meaningful outcomes (no match / ambiguous).
func (c *checker) resolveOverload(name string, cands []candidate, args []symbols.Expression, at *source.Span) *candidate {
	arityMatched := make([]candidate, 0, len(cands))
	for _, cand := range cands {
		if len(cand.params) == len(args) {
			arityMatched = append(arityMatched, cand)
		}
	}

	var survivors []candidate
	for _, cand := range arityMatched {
		ok := true
		for i, arg := range args {
			if !arg.Type().AssignableTo(cand.params[i]) {
				ok = false
				break
			}
		}
		if ok {
			survivors = append(survivors, cand)
		}
	}

	if len(survivors) == 0 {
		diag := diagnostics.NewError(at,
			fmt.Sprintf("no matching overload for '%s'", name)).
			WithCode(diagnostics.ErrNoMatchingOverload)
		for _, cand := range cands {
			diag.WithSpanNote(cand.declSpan(), "candidate: "+cand.signature())
		}
		c.diag.Add(diag)
		return nil
	}

	minima := paramMinima(survivors)
	if len(minima) == 1 {
		return &minima[0]
	}

	diag := diagnostics.NewError(at,
		fmt.Sprintf("ambiguous call to '%s'", name)).
		WithCode(diagnostics.ErrAmbiguousCall)
	for _, cand := range minima {
		diag.WithSpanNote(cand.declSpan(), "candidate: "+cand.signature())
	}
	c.diag.Add(diag)
	return nil
}

// paramMinima filters the candidates down to the minima of the
// component-wise assignability order: those not strictly dominated by
// any other candidate.
func paramMinima(cands []candidate) []candidate {
	var minima []candidate
	for i, m := range cands {
		dominated := false
		for j, other := range cands {
			if i == j {
				continue
			}
			if paramLessEq(other.params, m.params) && !paramLessEq(m.params, other.params) {
				dominated = true
				break
			}
		}
		if !dominated {
			minima = append(minima, m)
		}
	}
	return minima
}

// paramLessEq reports a <= b component-wise under assignability.
func paramLessEq(a, b []*symbols.Type) bool {
	for i := range a {
		if !a[i].AssignableTo(b[i]) {
			return false
		}
	}
	return true
}

// coerceArgs inserts implicit conversions for arguments whose type is
// not identical to the selected parameter type.
func (c *checker) coerceArgs(args []symbols.Expression, params []*symbols.Type) []symbols.Expression {
	out := make([]symbols.Expression, len(args))
	for i, arg := range args {
		if coerced := c.coerce(arg, params[i]); coerced != nil {
			out[i] = coerced
		} else {
			out[i] = arg
		}
	}
	return out
}

func (c *checker) checkCall(scope *symbols.Scope, n *ast.CallExpr) symbols.Expression {
	args := make([]symbols.Expression, len(n.Args))
	for i, a := range n.Args {
		args[i] = c.checkExpr(scope, a)
	}

	switch callee := n.Callee.(type) {
	case *ast.Identifier:
		return c.checkFunctionCall(scope, n, callee, args)
	case *ast.MemberExpr:
		return c.checkMethodCall(scope, n, callee, args)
	}

	c.diag.Add(diagnostics.NewError(n.Callee.Span(), "expression is not callable").
		WithCode(diagnostics.ErrNotCallable))
	return c.errorExpr(n)
}

func (c *checker) checkFunctionCall(scope *symbols.Scope, n *ast.CallExpr, callee *ast.Identifier, args []symbols.Expression) symbols.Expression {
	if callee.Synthetic {
		return c.errorExpr(n)
	}

	syms := scope.Lookup(callee.Name)
	if len(syms) == 0 {
		c.diag.Add(diagnostics.NewError(callee.Loc,
			fmt.Sprintf("unknown identifier '%s'", callee.Name)).
			WithCode(diagnostics.ErrUndefinedSymbol))
		return c.errorExpr(n)
	}

	var cands []candidate
	for _, sym := range syms {
		if fn, ok := sym.(*symbols.Function); ok {
			cands = append(cands, candidate{fn: fn, params: fn.ParamTypes()})
		}
	}
	if len(cands) == 0 {
		c.diag.Add(diagnostics.NewError(callee.Loc,
			fmt.Sprintf("'%s' is not a function", callee.Name)).
			WithCode(diagnostics.ErrNotCallable))
		return c.errorExpr(n)
	}

	winner := c.resolveOverload(callee.Name, cands, args, n.Loc)
	if winner == nil {
		return c.errorExpr(n)
	}
	return symbols.NewCallExpr(winner.fn, c.coerceArgs(args, winner.params), n)
}

// checkMethodCall dispatches `receiver.name(args)`: the method table of
// the receiver's type only (methods are not inherited), then the same
// overload selection as free functions.
func (c *checker) checkMethodCall(scope *symbols.Scope, n *ast.CallExpr, callee *ast.MemberExpr, args []symbols.Expression) symbols.Expression {
	recv := c.checkExpr(scope, callee.Receiver)
	if recv.Type().Invalid {
		return c.errorExpr(n)
	}
	if callee.Name == nil || callee.Name.Synthetic {
		return c.errorExpr(n)
	}
	name := callee.Name.Name

	methods := recv.Type().Methods(name)
	if len(methods) == 0 {
		c.diag.Add(diagnostics.NewError(callee.Name.Loc,
			fmt.Sprintf("type '%s' has no method '%s'", recv.Type(), name)).
			WithCode(diagnostics.ErrMethodNotFound))
		return c.errorExpr(n)
	}

	var cands []candidate
	for _, m := range methods {
		cands = append(cands, candidate{fn: &m.Function, method: m, params: m.ParamTypes()})
	}

	winner := c.resolveOverload(name, cands, args, n.Loc)
	if winner == nil {
		return c.errorExpr(n)
	}
	return symbols.NewMethodCallExpr(recv, winner.method, c.coerceArgs(args, winner.params), n)
}
