package codegen

import "github.com/benjcooley/milo832/lang/ast"

// sfuBuiltins maps single-argument GLSL built-ins to the SFU mnemonic
// that computes them.
var sfuBuiltins = map[string]string{
	"sin": "sin", "cos": "cos", "exp2": "ex2", "log2": "lg2",
	"inversesqrt": "rsq", "sqrt": "sqrt", "tanh": "tanh",
}

func (g *Generator) genCall(n *ast.Node) (int, ast.Type) {
	if mnem, ok := sfuBuiltins[n.Callee]; ok && len(n.Args) == 1 {
		src, typ := g.genExpr(n.Args[0])
		comp := typ.Components()
		dst := g.alloc(comp)
		for i := 0; i < comp; i++ {
			g.emitf("%s r%d, r%d", mnem, dst+i, src+i)
		}
		return dst, typ
	}

	switch n.Callee {
	case "abs":
		return g.genUnaryBuiltin(n, "fabs", "iabs")
	case "min":
		return g.genBinaryBuiltin(n, "fmin", "imin")
	case "max":
		return g.genBinaryBuiltin(n, "fmax", "imax")
	case "clamp":
		return g.genClamp(n)
	case "mix":
		return g.genMix(n)
	case "dot":
		return g.genDot(n)
	case "normalize":
		return g.genNormalize(n)
	case "texture":
		return g.genTexture(n)
	}

	g.errorf(n, "unknown built-in or unsupported user function %q", n.Callee)
	return g.alloc(1), ast.Void
}

func (g *Generator) genUnaryBuiltin(n *ast.Node, floatMnem, intMnem string) (int, ast.Type) {
	src, typ := g.genExpr(n.Args[0])
	mnem := intMnem
	if isFloatType(typ) {
		mnem = floatMnem
	}
	comp := typ.Components()
	dst := g.alloc(comp)
	for i := 0; i < comp; i++ {
		g.emitf("%s r%d, r%d", mnem, dst+i, src+i)
	}
	return dst, typ
}

func (g *Generator) genBinaryBuiltin(n *ast.Node, floatMnem, intMnem string) (int, ast.Type) {
	a, at := g.genExpr(n.Args[0])
	b, _ := g.genExpr(n.Args[1])
	mnem := intMnem
	if isFloatType(at) {
		mnem = floatMnem
	}
	comp := at.Components()
	dst := g.alloc(comp)
	for i := 0; i < comp; i++ {
		g.emitf("%s r%d, r%d, r%d", mnem, dst+i, a+i, b+i)
	}
	return dst, at
}

// genClamp lowers clamp(x, lo, hi) as min(max(x, lo), hi).
func (g *Generator) genClamp(n *ast.Node) (int, ast.Type) {
	maxed, typ := g.genBinaryBuiltin(&ast.Node{Kind: ast.CallExpr, Pos: n.Pos, Callee: "max", Args: n.Args[:2]}, "fmax", "imax")
	hi, _ := g.genExpr(n.Args[2])
	mnem := "imin"
	if isFloatType(typ) {
		mnem = "fmin"
	}
	comp := typ.Components()
	dst := g.alloc(comp)
	for i := 0; i < comp; i++ {
		g.emitf("%s r%d, r%d, r%d", mnem, dst+i, maxed+i, hi+i)
	}
	return dst, typ
}

// genMix lowers mix(a, b, t) as a + (b - a) * t.
func (g *Generator) genMix(n *ast.Node) (int, ast.Type) {
	a, typ := g.genExpr(n.Args[0])
	b, _ := g.genExpr(n.Args[1])
	t, _ := g.genExpr(n.Args[2])
	comp := typ.Components()

	diff := g.alloc(comp)
	for i := 0; i < comp; i++ {
		g.emitf("fsub r%d, r%d, r%d", diff+i, b+i, a+i)
	}
	scaled := g.alloc(comp)
	for i := 0; i < comp; i++ {
		g.emitf("fmul r%d, r%d, r%d", scaled+i, diff+i, t)
	}
	dst := g.alloc(comp)
	for i := 0; i < comp; i++ {
		g.emitf("fadd r%d, r%d, r%d", dst+i, a+i, scaled+i)
	}
	return dst, typ
}

// genDot lowers dot(a, b) as a sum of component-wise products.
func (g *Generator) genDot(n *ast.Node) (int, ast.Type) {
	a, typ := g.genExpr(n.Args[0])
	b, _ := g.genExpr(n.Args[1])
	comp := typ.Components()

	dst := g.alloc(1)
	g.emitf("fmul r%d, r%d, r%d", dst, a, b)
	for i := 1; i < comp; i++ {
		prod := g.alloc(1)
		g.emitf("fmul r%d, r%d, r%d", prod, a+i, b+i)
		g.emitf("fadd r%d, r%d, r%d", dst, dst, prod)
	}
	return dst, ast.Float
}

// genNormalize lowers normalize(v) as self-dot, reciprocal-sqrt, then a
// per-component scale by the result: len = v·v; rlen = rsq(len);
// r = v * rlen.
func (g *Generator) genNormalize(n *ast.Node) (int, ast.Type) {
	if len(n.Args) != 1 {
		g.errorf(n, "normalize() takes a single vector argument")
		return g.alloc(1), ast.Void
	}
	v, typ := g.genExpr(n.Args[0])
	comp := typ.Components()

	lenSq := g.alloc(1)
	g.emitf("fmul r%d, r%d, r%d", lenSq, v, v)
	for i := 1; i < comp; i++ {
		prod := g.alloc(1)
		g.emitf("fmul r%d, r%d, r%d", prod, v+i, v+i)
		g.emitf("fadd r%d, r%d, r%d", lenSq, lenSq, prod)
	}

	rlen := g.alloc(1)
	g.emitf("rsq r%d, r%d", rlen, lenSq)

	dst := g.alloc(comp)
	for i := 0; i < comp; i++ {
		g.emitf("fmul r%d, r%d, r%d", dst+i, v+i, rlen)
	}
	return dst, typ
}

// genTexture lowers texture(sampler, uv) to the TEX opcode: the sampler
// argument must be a uniform sampler2D identifier resolved to its texture
// unit number, and uv a vec2 whose two components occupy adjacent
// registers (TEX reads v from rs2+1).
func (g *Generator) genTexture(n *ast.Node) (int, ast.Type) {
	if len(n.Args) != 2 {
		g.errorf(n, "texture() takes a sampler and a vec2 uv")
		return g.alloc(4), ast.Vec4
	}
	unit, _ := g.genExpr(n.Args[0])
	uv, _ := g.genExpr(n.Args[1])
	dst := g.alloc(4)
	g.emitf("tex r%d, r%d, r%d", dst, unit, uv)
	return dst, ast.Vec4
}
