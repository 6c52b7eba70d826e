package symbols

import (
	"github.com/merkispavel/colang/internal/frontend/ast"
)

// Universe holds the built-in native types every compilation starts
// from. The prelude contributes native functions on top of these.
type Universe struct {
	Void    *Type
	Bool    *Type
	Int     *Type
	Float   *Type
	String  *Type
	ErrType *Type
}

// NewUniverse creates the built-in types and the implicit conversions
// between them (int widens to float).
func NewUniverse() *Universe {
	u := &Universe{
		Void:    NewType("void", true),
		Bool:    NewType("bool", true),
		Int:     NewType("int", true),
		Float:   NewType("float", true),
		String:  NewType("string", true),
		ErrType: NewErrorType(),
	}
	u.Int.RegisterConversion(u.Float)
	return u
}

// Types returns the built-in types in declaration order.
func (u *Universe) Types() []*Type {
	return []*Type{u.Void, u.Bool, u.Int, u.Float, u.String}
}

// Global is a top-level variable definition: the symbol plus its raw
// declaration, with the initializer filled in during phase two.
type Global struct {
	Var  *Variable
	Decl *ast.VariableDefinition
	Init Expression // nil when the definition has no initializer
}

// Program is the resolved root namespace handed to the backend: the
// sole long-lived artifact of a compile.
type Program struct {
	Root      *Scope
	Universe  *Universe
	Types     []*Type     // user-defined types in declaration order
	Functions []*Function // free functions in declaration order
	Methods   []*Method   // methods in declaration order
	Globals   []*Global
}

// NewProgram creates an empty program with the built-in types bound in
// the root namespace.
func NewProgram() *Program {
	u := NewUniverse()
	root := NewScope("<root>", nil)
	for _, t := range u.Types() {
		root.Declare(&TypeSymbol{Type: t})
	}
	return &Program{
		Root:     root,
		Universe: u,
	}
}
