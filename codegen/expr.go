package codegen

import "github.com/benjcooley/milo832/lang/ast"

// swizzleOffset maps a single swizzle character to its component index,
// accepting both the positional (xyzw) and color (rgba) conventions.
var swizzleOffset = map[byte]int{
	'x': 0, 'y': 1, 'z': 2, 'w': 3,
	'r': 0, 'g': 1, 'b': 2, 'a': 3,
}

// copyComponents emits a mov per component from src..src+n-1 to
// dst..dst+n-1, skipping registers that already coincide.
func (g *Generator) copyComponents(dst, src, n int) {
	for i := 0; i < n; i++ {
		if dst+i == src+i {
			continue
		}
		g.emitf("mov r%d, r%d", dst+i, src+i)
	}
}

// genExpr lowers an expression, returning the base register holding its
// (possibly multi-component) result and its type.
func (g *Generator) genExpr(n *ast.Node) (int, ast.Type) {
	switch n.Kind {
	case ast.IntLit:
		r := g.alloc(1)
		g.emitf("addi r%d, r0, %d", r, n.IntValue)
		return r, ast.Int

	case ast.FloatLit:
		r := g.alloc(1)
		addr := g.Pool.InternFloat(n.FloatValue)
		g.emitf("ldr r%d, r0, %d", r, addr)
		return r, ast.Float

	case ast.Identifier:
		sym, ok := g.symbols.Lookup(n.Name)
		if !ok {
			g.errorf(n, "undefined identifier %q", n.Name)
			return g.alloc(1), ast.Void
		}
		return sym.Reg, sym.Type

	case ast.MemberAccess:
		return g.genMemberAccess(n)

	case ast.IndexAccess:
		return g.genIndexAccess(n)

	case ast.UnaryExpr:
		return g.genUnary(n)

	case ast.BinaryExpr:
		return g.genBinary(n)

	case ast.TernaryExpr:
		return g.genTernary(n)

	case ast.AssignExpr:
		return g.genAssign(n)

	case ast.TypeConstructor:
		return g.genTypeConstructor(n)

	case ast.CallExpr:
		return g.genCall(n)
	}
	g.errorf(n, "unsupported expression kind %v", n.Kind)
	return g.alloc(1), ast.Void
}

func (g *Generator) genMemberAccess(n *ast.Node) (int, ast.Type) {
	baseReg, _ := g.genExpr(n.Object)
	if len(n.Swizzle) == 1 {
		off, ok := swizzleOffset[n.Swizzle[0]]
		if !ok {
			g.errorf(n, "invalid swizzle component %q", n.Swizzle)
			return baseReg, ast.Float
		}
		return baseReg + off, ast.Float
	}

	r := g.alloc(len(n.Swizzle))
	for i := 0; i < len(n.Swizzle); i++ {
		off, ok := swizzleOffset[n.Swizzle[i]]
		if !ok {
			g.errorf(n, "invalid swizzle component %q", n.Swizzle)
			continue
		}
		g.emitf("mov r%d, r%d", r+i, baseReg+off)
	}
	return r, vecTypeForLen(len(n.Swizzle))
}

func (g *Generator) genIndexAccess(n *ast.Node) (int, ast.Type) {
	baseReg, _ := g.genExpr(n.Object)
	if n.Index.Kind == ast.IntLit {
		return baseReg + int(n.Index.IntValue), ast.Float
	}
	g.errorf(n, "only constant indices are supported")
	return baseReg, ast.Float
}

func vecTypeForLen(n int) ast.Type {
	switch n {
	case 2:
		return ast.Vec2
	case 3:
		return ast.Vec3
	case 4:
		return ast.Vec4
	default:
		return ast.Float
	}
}

func (g *Generator) genUnary(n *ast.Node) (int, ast.Type) {
	src, typ := g.genExpr(n.Operand)
	comp := typ.Components()
	dst := g.alloc(comp)
	for i := 0; i < comp; i++ {
		switch n.Op {
		case "-":
			if typ == ast.Int {
				g.emitf("neg r%d, r%d", dst+i, src+i)
			} else {
				g.emitf("fneg r%d, r%d", dst+i, src+i)
			}
		case "!":
			g.emitf("xori r%d, r%d, 1", dst+i, src+i)
		}
	}
	return dst, typ
}

func isFloatType(t ast.Type) bool {
	switch t {
	case ast.Float, ast.Vec2, ast.Vec3, ast.Vec4, ast.Mat3, ast.Mat4:
		return true
	}
	return false
}

var intBinOp = map[string]string{
	"+": "add", "-": "sub", "*": "mul",
	"<": "slt", "<=": "sle", "==": "seq",
	"&&": "and", "||": "or",
}

var floatBinOp = map[string]string{
	"+": "fadd", "-": "fsub", "*": "fmul", "/": "fdiv",
	"<": "fslt", "<=": "fsle", "==": "fseq",
}

func (g *Generator) genBinary(n *ast.Node) (int, ast.Type) {
	lhs, lt := g.genExpr(n.Left)
	rhs, rt := g.genExpr(n.Right)
	useFloat := isFloatType(lt) || isFloatType(rt)

	comp := lt.Components()
	if rt.Components() > comp {
		comp = rt.Components()
	}
	dst := g.alloc(comp)

	switch n.Op {
	case ">":
		return g.genBinary(&ast.Node{Kind: ast.BinaryExpr, Pos: n.Pos, Op: "<", Left: n.Right, Right: n.Left})
	case ">=":
		return g.genBinary(&ast.Node{Kind: ast.BinaryExpr, Pos: n.Pos, Op: "<=", Left: n.Right, Right: n.Left})
	case "!=":
		eqReg, eqType := g.genBinary(&ast.Node{Kind: ast.BinaryExpr, Pos: n.Pos, Op: "==", Left: n.Left, Right: n.Right})
		out := g.alloc(1)
		g.emitf("xori r%d, r%d, 1", out, eqReg)
		return out, eqType
	}

	mnem, ok := intBinOp[n.Op]
	if useFloat {
		mnem, ok = floatBinOp[n.Op]
	}
	if !ok {
		g.errorf(n, "unsupported binary operator %q", n.Op)
		return dst, lt
	}

	for i := 0; i < comp; i++ {
		l := lhs
		if lt.Components() > 1 {
			l = lhs + i
		}
		r := rhs
		if rt.Components() > 1 {
			r = rhs + i
		}
		g.emitf("%s r%d, r%d, r%d", mnem, dst+i, l, r)
	}

	if n.Op == "<" || n.Op == "<=" || n.Op == "==" {
		return dst, ast.Int
	}
	if useFloat {
		return dst, vecTypeForLen(comp)
	}
	return dst, ast.Int
}

func (g *Generator) genTernary(n *ast.Node) (int, ast.Type) {
	cond, _ := g.genExpr(n.TernCond)
	thenReg, typ := g.genExpr(n.TernThen)
	elseReg, _ := g.genExpr(n.TernElse)
	comp := typ.Components()
	dst := g.alloc(comp)
	for i := 0; i < comp; i++ {
		g.emitf("selp r%d, r%d, r%d, r%d", dst+i, thenReg+i, elseReg+i, cond)
	}
	return dst, typ
}

func (g *Generator) genAssign(n *ast.Node) (int, ast.Type) {
	val, typ := g.genExpr(n.Right)

	if n.Op != "=" {
		// Compound assignment: x OP= y  ==>  x = x OP y.
		baseOp := n.Op[:len(n.Op)-1]
		combined := &ast.Node{Kind: ast.BinaryExpr, Pos: n.Pos, Op: baseOp, Left: n.Left, Right: n.Right}
		val, typ = g.genBinary(combined)
	}

	dst, dtyp := g.lvalue(n.Left)
	comp := dtyp.Components()
	g.copyComponents(dst, val, comp)
	return dst, typ
}

// lvalue resolves the base register an assignment target writes into,
// without emitting a redundant load for plain identifiers/swizzles.
func (g *Generator) lvalue(n *ast.Node) (int, ast.Type) {
	switch n.Kind {
	case ast.Identifier:
		sym, ok := g.symbols.Lookup(n.Name)
		if !ok {
			g.errorf(n, "undefined identifier %q", n.Name)
			return g.alloc(1), ast.Void
		}
		return sym.Reg, sym.Type
	case ast.MemberAccess:
		baseReg, _ := g.genExpr(n.Object)
		if len(n.Swizzle) != 1 {
			g.errorf(n, "only single-component swizzle assignment is supported")
			return baseReg, ast.Float
		}
		off := swizzleOffset[n.Swizzle[0]]
		return baseReg + off, ast.Float
	case ast.IndexAccess:
		return g.genIndexAccess(n)
	}
	g.errorf(n, "invalid assignment target")
	return g.alloc(1), ast.Void
}

func (g *Generator) genTypeConstructor(n *ast.Node) (int, ast.Type) {
	want := n.Type.Components()
	dst := g.alloc(want)

	pos := 0
	lastComp := 0
	for _, a := range n.Args {
		val, typ := g.genExpr(a)
		argComp := typ.Components()
		lastComp = argComp
		for i := 0; i < argComp && pos < want; i++ {
			g.emitf("mov r%d, r%d", dst+pos, val+i)
			pos++
		}
	}
	// A single scalar argument splats across every component
	// (vec3(1.0) style constructors).
	if len(n.Args) == 1 && lastComp == 1 {
		for i := 1; i < want; i++ {
			g.emitf("mov r%d, r%d", dst+i, dst)
		}
	}
	return dst, n.Type
}
