package collector

import (
	"fmt"

	"github.com/merkispavel/colang/internal/diagnostics"
	"github.com/merkispavel/colang/internal/frontend/ast"
	"github.com/merkispavel/colang/internal/semantics/symbols"
)

// Collect is phase one of analysis: it registers every top-level symbol
// of the given translation units (prelude first, then user code) into
// one root namespace, so later body resolution can see forward
// references. Bodies are not entered here; type bodies contribute
// method headers only.
func Collect(units []*ast.TranslationUnit, diag *diagnostics.Bag) *symbols.Program {
	program := symbols.NewProgram()
	c := &collector{program: program, diag: diag}

	// register type names first so signatures can refer to any type
	for _, unit := range units {
		for _, def := range unit.Defs {
			if td, ok := def.(*ast.TypeDefinition); ok {
				c.collectType(td)
			}
		}
	}

	// then function headers, method headers, and globals
	for _, unit := range units {
		for _, def := range unit.Defs {
			switch d := def.(type) {
			case *ast.TypeDefinition:
				c.collectMethods(d)
			case *ast.FunctionDefinition:
				c.collectFunction(d)
			case *ast.VariableDefinition:
				c.collectGlobal(d)
			}
		}
	}

	return program
}

type collector struct {
	program *symbols.Program
	diag    *diagnostics.Bag
}

func (c *collector) collectType(decl *ast.TypeDefinition) {
	if decl.Name == nil || decl.Name.Synthetic {
		return
	}
	name := decl.Name.Name

	typ := symbols.NewType(name, hasSpecifier(decl.Specifiers, "native"))
	sym := &symbols.TypeSymbol{Type: typ, Decl: decl.Name.Loc}

	if prev, ok := c.program.Root.Declare(sym); !ok {
		c.diag.Add(diagnostics.NewError(decl.Name.Loc,
			fmt.Sprintf("redeclaration of '%s'", name)).
			WithCode(diagnostics.ErrRedeclaredSymbol).
			WithSpanNote(prev.DeclSpan(), "previously declared here"))
		return
	}

	c.program.Types = append(c.program.Types, typ)
}

func (c *collector) collectMethods(decl *ast.TypeDefinition) {
	if decl.Name == nil || decl.Name.Synthetic || decl.Body == nil {
		return
	}
	owner := c.lookupType(decl.Name)
	if owner == nil {
		return
	}

	for _, m := range decl.Body.Methods {
		fn := c.makeFunction(m)
		if fn == nil {
			continue
		}
		method := &symbols.Method{Function: *fn, Owner: owner}
		owner.AddMethod(method)
		c.program.Methods = append(c.program.Methods, method)
	}
}

func (c *collector) collectFunction(decl *ast.FunctionDefinition) {
	fn := c.makeFunction(decl)
	if fn == nil {
		return
	}

	if prev, ok := c.program.Root.Declare(fn); !ok {
		c.diag.Add(diagnostics.NewError(decl.Name.Loc,
			fmt.Sprintf("redeclaration of '%s'", fn.Name)).
			WithCode(diagnostics.ErrRedeclaredSymbol).
			WithSpanNote(prev.DeclSpan(), "previously declared here"))
		return
	}

	c.program.Functions = append(c.program.Functions, fn)
}

// makeFunction builds the header (signature) of a function or method.
// The body stays unresolved until phase two.
func (c *collector) makeFunction(decl *ast.FunctionDefinition) *symbols.Function {
	if decl.Name == nil || decl.Name.Synthetic {
		return nil
	}

	fn := &symbols.Function{
		Name:       decl.Name.Name,
		ReturnType: c.resolveTypeRef(decl.ReturnType),
		Native:     hasSpecifier(decl.Specifiers, "native"),
		Decl:       decl,
		DeclLoc:    decl.Name.Loc,
	}

	if decl.Params != nil {
		seen := make(map[string]*ast.Identifier)
		for _, p := range decl.Params.Params {
			name := ""
			if p.Name != nil {
				name = p.Name.Name
			}
			if p.Name != nil && !p.Name.Synthetic {
				if prev, dup := seen[name]; dup {
					c.diag.Add(diagnostics.NewError(p.Name.Loc,
						fmt.Sprintf("redeclaration of parameter '%s'", name)).
						WithCode(diagnostics.ErrRedeclaredSymbol).
						WithSpanNote(prev.Loc, "previously declared here"))
				} else {
					seen[name] = p.Name
				}
			}
			fn.Params = append(fn.Params, &symbols.Variable{
				Name: name,
				Type: c.resolveTypeRef(p.Type),
				Decl: p.Loc,
			})
		}
	}

	return fn
}

func (c *collector) collectGlobal(decl *ast.VariableDefinition) {
	if decl.Name == nil || decl.Name.Synthetic {
		return
	}
	name := decl.Name.Name

	v := &symbols.Variable{
		Name: name,
		Type: c.resolveTypeRef(decl.Type),
		Decl: decl.Name.Loc,
	}

	if prev, ok := c.program.Root.Declare(v); !ok {
		c.diag.Add(diagnostics.NewError(decl.Name.Loc,
			fmt.Sprintf("redeclaration of '%s'", name)).
			WithCode(diagnostics.ErrRedeclaredSymbol).
			WithSpanNote(prev.DeclSpan(), "previously declared here"))
		return
	}

	c.program.Globals = append(c.program.Globals, &symbols.Global{Var: v, Decl: decl})
}

// resolveTypeRef resolves a type-expression identifier against the root
// namespace. Unknown types are reported once and become the absorbing
// error type so downstream checks stay quiet.
func (c *collector) resolveTypeRef(id *ast.Identifier) *symbols.Type {
	if id == nil || id.Synthetic {
		return c.program.Universe.ErrType
	}
	if t := c.lookupType(id); t != nil {
		return t
	}
	c.diag.Add(diagnostics.NewError(id.Loc,
		fmt.Sprintf("unknown type '%s'", id.Name)).
		WithCode(diagnostics.ErrUnknownType))
	return c.program.Universe.ErrType
}

func (c *collector) lookupType(id *ast.Identifier) *symbols.Type {
	for _, sym := range c.program.Root.Lookup(id.Name) {
		if ts, ok := sym.(*symbols.TypeSymbol); ok {
			return ts.Type
		}
	}
	return nil
}

func hasSpecifier(specs []*ast.Specifier, name string) bool {
	for _, s := range specs {
		if s.Name == name {
			return true
		}
	}
	return false
}
