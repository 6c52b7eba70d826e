package cgen

import (
	"fmt"
	"io"
	"strings"

	"github.com/merkispavel/colang/internal/semantics/symbols"
)

// Emit writes a self-contained C translation unit for the resolved
// program. It must only be called when compilation produced no errors.
func Emit(w io.Writer, program *symbols.Program, sourcePath string) error {
	g := &generator{w: w, program: program, globals: make(map[*symbols.Variable]bool)}
	for _, global := range program.Globals {
		g.globals[global.Var] = true
	}

	g.printf("/* generated from %s */\n", sourcePath)
	g.printf("#include <stdio.h>\n\n")

	g.emitNativeRuntime()
	g.emitTypes()
	g.emitPrototypes()
	g.emitGlobals()
	g.emitBodies()
	g.emitMain()

	return g.err
}

type generator struct {
	w       io.Writer
	program *symbols.Program
	globals map[*symbols.Variable]bool
	indent  int
	err     error
}

func (g *generator) printf(format string, args ...any) {
	if g.err != nil {
		return
	}
	_, g.err = fmt.Fprintf(g.w, format, args...)
}

func (g *generator) line(format string, args ...any) {
	g.printf(strings.Repeat("    ", g.indent)+format+"\n", args...)
}

// cType maps a CO type to its C spelling. Native types map to their
// registered C names; user types are passed by pointer.
func (g *generator) cType(t *symbols.Type) string {
	u := g.program.Universe
	switch t {
	case u.Void:
		return "void"
	case u.Bool:
		return "int"
	case u.Int:
		return "long"
	case u.Float:
		return "double"
	case u.String:
		return "const char *"
	}
	return verboseTypeName(t) + " *"
}

func verboseTypeName(t *symbols.Type) string {
	return "co_" + t.Name
}

// verboseFunctionName generates the mangled C name of a function: the
// CO name suffixed with its parameter types, so overloads stay distinct.
func verboseFunctionName(fn *symbols.Function) string {
	parts := []string{"co", fn.Name}
	for _, p := range fn.Params {
		parts = append(parts, p.Type.Name)
	}
	return strings.Join(parts, "_")
}

func verboseMethodName(m *symbols.Method) string {
	parts := []string{"co", m.Owner.Name, m.Name}
	for _, p := range m.Params {
		parts = append(parts, p.Type.Name)
	}
	return strings.Join(parts, "_")
}

// emitNativeRuntime provides implementations for the prelude's print
// family; other native functions are declared extern and expected from
// the link environment.
func (g *generator) emitNativeRuntime() {
	known := map[string]string{
		"co_print_int":    "static void co_print_int(long v) { printf(\"%ld\\n\", v); }",
		"co_print_float":  "static void co_print_float(double v) { printf(\"%g\\n\", v); }",
		"co_print_string": "static void co_print_string(const char *v) { printf(\"%s\\n\", v); }",
	}

	emitted := false
	for _, fn := range g.program.Functions {
		if !fn.Native {
			continue
		}
		name := verboseFunctionName(fn)
		if impl, ok := known[name]; ok {
			g.printf("%s\n", impl)
		} else {
			g.printf("extern %s %s(%s);\n", g.cType(fn.ReturnType), name, g.paramList(fn, nil))
		}
		emitted = true
	}
	if emitted {
		g.printf("\n")
	}
}

func (g *generator) emitTypes() {
	for _, t := range g.program.Types {
		if t.Native {
			continue
		}
		name := verboseTypeName(t)
		g.printf("typedef struct %s %s;\n", name, name)
		g.printf("struct %s { char _reserved; };\n\n", name)
	}
}

func (g *generator) paramList(fn *symbols.Function, owner *symbols.Type) string {
	var parts []string
	if owner != nil {
		parts = append(parts, verboseTypeName(owner)+" *this")
	}
	for _, p := range fn.Params {
		parts = append(parts, fmt.Sprintf("%s %s", g.cType(p.Type), p.Name))
	}
	if len(parts) == 0 {
		return "void"
	}
	return strings.Join(parts, ", ")
}

func (g *generator) emitPrototypes() {
	for _, fn := range g.program.Functions {
		if fn.Native {
			continue
		}
		g.printf("%s %s(%s);\n", g.cType(fn.ReturnType), verboseFunctionName(fn), g.paramList(fn, nil))
	}
	for _, m := range g.program.Methods {
		g.printf("%s %s(%s);\n", g.cType(m.ReturnType), verboseMethodName(m), g.paramList(&m.Function, m.Owner))
	}
	g.printf("\n")
}

func (g *generator) emitGlobals() {
	for _, global := range g.program.Globals {
		if global.Init != nil {
			g.printf("%s %s = %s;\n", g.cType(global.Var.Type), "co_"+global.Var.Name, g.expr(global.Init))
		} else {
			g.printf("%s %s;\n", g.cType(global.Var.Type), "co_"+global.Var.Name)
		}
	}
	if len(g.program.Globals) > 0 {
		g.printf("\n")
	}
}

func (g *generator) emitBodies() {
	for _, fn := range g.program.Functions {
		if fn.Native || fn.Body == nil {
			continue
		}
		g.printf("%s %s(%s)\n", g.cType(fn.ReturnType), verboseFunctionName(fn), g.paramList(fn, nil))
		g.block(fn.Body)
		g.printf("\n")
	}
	for _, m := range g.program.Methods {
		if m.Native || m.Body == nil {
			continue
		}
		g.printf("%s %s(%s)\n", g.cType(m.ReturnType), verboseMethodName(m), g.paramList(&m.Function, m.Owner))
		g.block(m.Body)
		g.printf("\n")
	}
}

// emitMain wraps a CO `void main()` into the C entry point.
func (g *generator) emitMain() {
	for _, fn := range g.program.Functions {
		if fn.Name == "main" && len(fn.Params) == 0 && !fn.Native {
			g.printf("int main(void) { %s(); return 0; }\n", verboseFunctionName(fn))
			return
		}
	}
}

func (g *generator) block(b *symbols.Block) {
	g.line("{")
	g.indent++
	for _, stmt := range b.Stmts {
		g.stmt(stmt)
	}
	g.indent--
	g.line("}")
}

func (g *generator) stmt(stmt symbols.Statement) {
	switch s := stmt.(type) {
	case *symbols.Block:
		g.block(s)

	case *symbols.IfElseStatement:
		g.line("if (%s)", g.expr(s.Cond))
		g.stmtAsBlock(s.Then)
		if s.Else != nil {
			g.line("else")
			g.stmtAsBlock(s.Else)
		}

	case *symbols.WhileStatement:
		g.line("while (%s)", g.expr(s.Cond))
		g.stmtAsBlock(s.Body)

	case *symbols.ReturnStatement:
		if s.Value != nil {
			g.line("return %s;", g.expr(s.Value))
		} else {
			g.line("return;")
		}

	case *symbols.VarDeclStatement:
		if s.Init != nil {
			g.line("%s %s = %s;", g.cType(s.Var.Type), s.Var.Name, g.expr(s.Init))
		} else {
			g.line("%s %s;", g.cType(s.Var.Type), s.Var.Name)
		}

	case *symbols.ExpressionStatement:
		g.line("%s;", g.expr(s.X))
	}
}

func (g *generator) stmtAsBlock(stmt symbols.Statement) {
	if b, ok := stmt.(*symbols.Block); ok {
		g.block(b)
		return
	}
	g.line("{")
	g.indent++
	g.stmt(stmt)
	g.indent--
	g.line("}")
}

func (g *generator) expr(expr symbols.Expression) string {
	switch e := expr.(type) {
	case *symbols.LiteralExpr:
		if e.Type() == g.program.Universe.String {
			return fmt.Sprintf("%q", e.Value)
		}
		return e.Value

	case *symbols.VarRefExpr:
		if g.globals[e.Var] {
			return "co_" + e.Var.Name
		}
		return e.Var.Name

	case *symbols.CallExpr:
		return fmt.Sprintf("%s(%s)", verboseFunctionName(e.Callee), g.args(e.Args))

	case *symbols.MethodCallExpr:
		recv := g.expr(e.Receiver)
		if len(e.Args) == 0 {
			return fmt.Sprintf("%s(%s)", verboseMethodName(e.Method), recv)
		}
		return fmt.Sprintf("%s(%s, %s)", verboseMethodName(e.Method), recv, g.args(e.Args))

	case *symbols.ConvertExpr:
		return fmt.Sprintf("(%s)(%s)", g.cType(e.Type()), g.expr(e.X))

	case *symbols.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", g.expr(e.Left), e.Op, g.expr(e.Right))

	case *symbols.UnaryExpr:
		return fmt.Sprintf("%s(%s)", e.Op, g.expr(e.X))

	case *symbols.AssignExpr:
		return fmt.Sprintf("%s = %s", g.expr(e.Target), g.expr(e.Value))

	case *symbols.PostfixIncExpr:
		return fmt.Sprintf("%s++", g.expr(e.X))
	}
	return "0"
}

func (g *generator) args(args []symbols.Expression) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = g.expr(a)
	}
	return strings.Join(parts, ", ")
}
