package ast

import (
	"github.com/merkispavel/colang/internal/source"
)

// Node is anything produced by the parser. Every node carries the span
// of the source text it was parsed from.
type Node interface {
	Span() *source.Span
}

// Expression marks nodes usable in expression position.
type Expression interface {
	Node
	exprNode()
}

// TranslationUnit is the root of a parsed file: the ordered sequence of
// top-level symbol definitions.
type TranslationUnit struct {
	Defs []Node
	Loc  *source.Span
}

func (u *TranslationUnit) Span() *source.Span { return u.Loc }

// Specifier is a single declaration specifier such as `native`.
type Specifier struct {
	Name string
	Loc  *source.Span
}

func (s *Specifier) Span() *source.Span { return s.Loc }

// Identifier is a name occurrence. Synthetic identifiers are placeholders
// created during error recovery; the analyzer skips checks on them.
type Identifier struct {
	Name      string
	Synthetic bool
	Loc       *source.Span
}

func (i *Identifier) Span() *source.Span { return i.Loc }
func (i *Identifier) exprNode()          {}

// TypeDefinition is `[specifiers] struct NAME { methods }`.
type TypeDefinition struct {
	Specifiers []*Specifier
	Name       *Identifier
	Body       *TypeBody
	Loc        *source.Span
}

func (d *TypeDefinition) Span() *source.Span { return d.Loc }

// TypeBody is the brace-delimited sequence of method definitions.
// MissingClose is set when the closing brace had to be synthesized.
type TypeBody struct {
	Methods      []*FunctionDefinition
	MissingClose bool
	Loc          *source.Span
}

func (b *TypeBody) Span() *source.Span { return b.Loc }

// FunctionDefinition covers both free functions and methods. Body is nil
// for native or forward declarations terminated by a semicolon.
type FunctionDefinition struct {
	Specifiers []*Specifier
	ReturnType *Identifier
	Name       *Identifier
	Params     *ParameterList
	Body       *CodeBlock
	Loc        *source.Span
}

func (d *FunctionDefinition) Span() *source.Span { return d.Loc }

// Parameter is a single `TYPE NAME` entry of a parameter list.
type Parameter struct {
	Type *Identifier
	Name *Identifier
	Loc  *source.Span
}

func (p *Parameter) Span() *source.Span { return p.Loc }

// ParameterList is the parenthesized parameter sequence of a function.
type ParameterList struct {
	Params       []*Parameter
	MissingClose bool
	Loc          *source.Span
}

func (l *ParameterList) Span() *source.Span { return l.Loc }

// VariableDefinition is `TYPE NAME [= expr] ;`.
type VariableDefinition struct {
	Specifiers []*Specifier
	Type       *Identifier
	Name       *Identifier
	Init       Expression
	Loc        *source.Span
}

func (d *VariableDefinition) Span() *source.Span { return d.Loc }

// CodeBlock is a brace-delimited statement sequence.
type CodeBlock struct {
	Stmts        []Node
	MissingClose bool
	Loc          *source.Span
}

func (b *CodeBlock) Span() *source.Span { return b.Loc }

// IfStatement is `if (cond) then [else else]`.
type IfStatement struct {
	Cond Expression
	Then Node
	Else Node
	Loc  *source.Span
}

func (s *IfStatement) Span() *source.Span { return s.Loc }

// WhileStatement is `while (cond) body`.
type WhileStatement struct {
	Cond Expression
	Body Node
	Loc  *source.Span
}

func (s *WhileStatement) Span() *source.Span { return s.Loc }

// ReturnStatement is `return [expr] ;`.
type ReturnStatement struct {
	Value Expression
	Loc   *source.Span
}

func (s *ReturnStatement) Span() *source.Span { return s.Loc }

// ExpressionStatement is an expression in statement position.
type ExpressionStatement struct {
	X   Expression
	Loc *source.Span
}

func (s *ExpressionStatement) Span() *source.Span { return s.Loc }
