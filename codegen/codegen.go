// Package codegen lowers a lang/ast tree into Milo832 assembly text, the
// same textual form package asm parses. It is a two-pass emitter in the
// sense the reference compiler is: symbols and constants are resolved as
// they're encountered (no separate analysis pass), and forward branch
// targets are plain label names the assembler resolves afterward.
package codegen

import (
	"fmt"
	"strings"

	"github.com/benjcooley/milo832/diag"
	"github.com/benjcooley/milo832/lang/ast"
)

// Generator lowers one translation unit to assembly text.
type Generator struct {
	Pool    *ConstantPool
	symbols SymbolTable
	out     strings.Builder

	nextReg    int
	labelCount int
	loopEnd    []string // break targets, one per enclosing loop
	loopCont   []string // continue targets, one per enclosing loop (unused by the continue placeholder, kept for symmetry)
	epilogue   string   // current function's return target

	Errors *diag.ErrorList
}

// New returns a Generator with the register allocator starting at r2 (r0
// is hardwired zero, r1 is the function return-value convention) and the
// constant pool based at the reference default address.
func New() *Generator {
	return &Generator{
		Pool:    NewConstantPool(DefaultConstantPoolBase),
		nextReg: 2,
		Errors:  &diag.ErrorList{},
	}
}

func (g *Generator) alloc(n int) int {
	r := g.nextReg
	g.nextReg += n
	return r
}

func (g *Generator) newLabel(prefix string) string {
	g.labelCount++
	return fmt.Sprintf("L_%s_%d", prefix, g.labelCount)
}

func (g *Generator) emit(line string) {
	g.out.WriteString(line)
	g.out.WriteString("\n")
}

func (g *Generator) emitf(format string, args ...interface{}) {
	g.emit(fmt.Sprintf(format, args...))
}

func (g *Generator) errorf(n *ast.Node, format string, args ...interface{}) {
	g.Errors.Add(diag.NewError(n.Pos, diag.ErrorInvalidOperand, fmt.Sprintf(format, args...)))
}

// Generate lowers an entire program, declaring every "in"/"uniform"
// top-level variable in source order (so BindFragmentInputs/
// BindVertexInputs' fixed register layout lines up with identifier
// references) and emitting every function body. Function bodies are
// emitted in source order, so execution starts with the first function
// declared; the function named "main" ends in `exit` rather than `ret`.
func (g *Generator) Generate(prog *ast.Node) string {
	reg := 2
	for _, d := range prog.Decls {
		if d.Kind != ast.VarDecl {
			continue
		}
		n := d.Type.Components()
		g.symbols.Declare(&Symbol{Name: d.Name, Type: d.Type, Reg: reg, Storage: d.Storage})
		if d.Storage == ast.StorageIn || d.Storage == ast.StorageUniform {
			reg += n
		}
		// "out" and "local" top-level declarations with an initializer
		// are evaluated once, at the point they're declared.
		if d.Init != nil {
			val, _ := g.genExpr(d.Init)
			g.copyComponents(reg, val, n)
		}
		if d.Storage == ast.StorageOut {
			reg += n
		}
	}
	g.nextReg = reg

	for _, d := range prog.Decls {
		if d.Kind == ast.Function {
			g.genFunction(d)
		}
	}

	return g.out.String()
}

func (g *Generator) genFunction(fn *ast.Node) {
	for _, p := range fn.Params {
		n := p.Type.Components()
		r := g.alloc(n)
		g.symbols.Declare(&Symbol{Name: p.Name, Type: p.Type, Reg: r, Storage: ast.StorageLocal})
	}

	epilogue := g.newLabel("epilogue")
	g.genStmtWithEpilogue(fn.Body, epilogue)
	g.emitf("%s:", epilogue)
	if fn.Name == "main" {
		g.emit("exit")
	} else {
		g.emit("ret")
	}
}

// genStmtWithEpilogue threads the enclosing function's epilogue label
// through statement generation so `return` can branch to it.
func (g *Generator) genStmtWithEpilogue(n *ast.Node, epilogue string) {
	g.epilogue = epilogue
	g.genStmt(n)
}
