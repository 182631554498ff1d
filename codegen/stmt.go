package codegen

import "github.com/benjcooley/milo832/lang/ast"

func (g *Generator) genStmt(n *ast.Node) {
	switch n.Kind {
	case ast.Block:
		for _, s := range n.Stmts {
			g.genStmt(s)
		}

	case ast.VarDecl:
		comp := n.Type.Components()
		r := g.alloc(comp)
		g.symbols.Declare(&Symbol{Name: n.Name, Type: n.Type, Reg: r, Storage: ast.StorageLocal})
		if n.Init != nil {
			val, _ := g.genExpr(n.Init)
			g.copyComponents(r, val, comp)
		}

	case ast.ExprStmt:
		g.genExpr(n.Expr)

	case ast.IfStmt:
		g.genIf(n)

	case ast.ForStmt:
		g.genFor(n)

	case ast.WhileStmt:
		g.genWhile(n)

	case ast.ReturnStmt:
		if n.Expr != nil {
			val, typ := g.genExpr(n.Expr)
			g.copyComponents(1, val, typ.Components())
		}
		g.emitf("bra %s", g.epilogue)

	case ast.BreakStmt:
		if len(g.loopEnd) == 0 {
			g.errorf(n, "break outside of a loop")
			return
		}
		g.emitf("bra %s", g.loopEnd[len(g.loopEnd)-1])

	case ast.ContinueStmt:
		// The reference compiler never threads a loop-head target
		// through continue; it emits a placeholder and nothing else.
		g.emit("; continue (unimplemented)")

	case ast.DiscardStmt:
		g.emit("exit")

	default:
		g.errorf(n, "unsupported statement kind %v", n.Kind)
	}
}

func (g *Generator) genIf(n *ast.Node) {
	cond, _ := g.genExpr(n.Cond)
	trueLabel := g.newLabel("if_true")
	endLabel := g.newLabel("if_end")

	g.emitf("bne r%d, r0, %s", cond, trueLabel)
	if n.Else != nil {
		g.genStmt(n.Else)
	}
	g.emitf("bra %s", endLabel)
	g.emitf("%s:", trueLabel)
	g.genStmt(n.Then)
	g.emitf("%s:", endLabel)
}

func (g *Generator) genFor(n *ast.Node) {
	if n.ForInit != nil {
		g.genStmt(n.ForInit)
	}
	condLabel := g.newLabel("for_cond")
	bodyLabel := g.newLabel("for_body")
	endLabel := g.newLabel("for_end")

	g.emitf("%s:", condLabel)
	if n.ForCond != nil {
		cond, _ := g.genExpr(n.ForCond)
		g.emitf("bne r%d, r0, %s", cond, bodyLabel)
		g.emitf("bra %s", endLabel)
	}
	g.emitf("%s:", bodyLabel)

	g.loopEnd = append(g.loopEnd, endLabel)
	g.genStmt(n.ForBody)
	g.loopEnd = g.loopEnd[:len(g.loopEnd)-1]

	if n.ForPost != nil {
		g.genExpr(n.ForPost)
	}
	g.emitf("bra %s", condLabel)
	g.emitf("%s:", endLabel)
}

func (g *Generator) genWhile(n *ast.Node) {
	condLabel := g.newLabel("while_cond")
	bodyLabel := g.newLabel("while_body")
	endLabel := g.newLabel("while_end")

	g.emitf("%s:", condLabel)
	cond, _ := g.genExpr(n.WhileCond)
	g.emitf("bne r%d, r0, %s", cond, bodyLabel)
	g.emitf("bra %s", endLabel)
	g.emitf("%s:", bodyLabel)

	g.loopEnd = append(g.loopEnd, endLabel)
	g.genStmt(n.WhileBody)
	g.loopEnd = g.loopEnd[:len(g.loopEnd)-1]

	g.emitf("bra %s", condLabel)
	g.emitf("%s:", endLabel)
}
