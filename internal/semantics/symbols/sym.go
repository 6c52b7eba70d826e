package symbols

import (
	"github.com/merkispavel/colang/internal/frontend/ast"
	"github.com/merkispavel/colang/internal/source"
)

// Symbol is anything a name can resolve to: a type, a variable, or a
// function overload set member.
type Symbol interface {
	SymbolName() string
	DeclSpan() *source.Span
}

// TypeSymbol binds a type into a scope.
type TypeSymbol struct {
	Type *Type
	Decl *source.Span
}

func (s *TypeSymbol) SymbolName() string     { return s.Type.Name }
func (s *TypeSymbol) DeclSpan() *source.Span { return s.Decl }

// Variable is a named storage location.
type Variable struct {
	Name string
	Type *Type
	Decl *source.Span
}

func (v *Variable) SymbolName() string     { return v.Name }
func (v *Variable) DeclSpan() *source.Span { return v.Decl }

// Function is a named callable. Functions sharing a name in a scope form
// an overload set; selection happens at the call site.
type Function struct {
	Name       string
	ReturnType *Type
	Params     []*Variable
	Body       *Block // nil for native and forward declarations
	Native     bool
	Decl       *ast.FunctionDefinition
	DeclLoc    *source.Span
}

func (f *Function) SymbolName() string     { return f.Name }
func (f *Function) DeclSpan() *source.Span { return f.DeclLoc }

// ParamTypes returns the parameter type vector.
func (f *Function) ParamTypes() []*Type {
	ts := make([]*Type, len(f.Params))
	for i, p := range f.Params {
		ts[i] = p.Type
	}
	return ts
}

// Method is a function bound to a containing type. It is not itself a
// named scope symbol; it is reached by member access on the receiver.
type Method struct {
	Function
	Owner *Type
}

// Scope is a named container mapping identifiers to symbols. Scopes form
// a parent chain; the root is the translation-unit namespace.
type Scope struct {
	Name     string
	Parent   *Scope
	bindings map[string][]Symbol
}

// NewScope creates a scope chained to the given parent (nil for the
// root namespace).
func NewScope(name string, parent *Scope) *Scope {
	return &Scope{
		Name:     name,
		Parent:   parent,
		bindings: make(map[string][]Symbol),
	}
}

// Declare binds a symbol in this scope. Functions accumulate into an
// overload set; everything else collides, and the caller is expected to
// report the duplicate using the returned previous symbol.
func (s *Scope) Declare(sym Symbol) (prev Symbol, ok bool) {
	name := sym.SymbolName()
	existing := s.bindings[name]

	_, newIsFunc := sym.(*Function)
	for _, e := range existing {
		_, oldIsFunc := e.(*Function)
		if !newIsFunc || !oldIsFunc {
			return e, false
		}
	}

	s.bindings[name] = append(existing, sym)
	return nil, true
}

// Lookup walks the scope chain leaf to root and returns the full
// binding set of the first scope that binds the name.
func (s *Scope) Lookup(name string) []Symbol {
	for scope := s; scope != nil; scope = scope.Parent {
		if syms, ok := scope.bindings[name]; ok {
			return syms
		}
	}
	return nil
}

// LookupLocal returns the binding set of this scope only.
func (s *Scope) LookupLocal(name string) []Symbol {
	return s.bindings[name]
}

// Names returns all names bound directly in this scope.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.bindings))
	for name := range s.bindings {
		names = append(names, name)
	}
	return names
}
