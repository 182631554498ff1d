package parser_test

import (
	"testing"

	"github.com/benjcooley/milo832/lang/ast"
	"github.com/benjcooley/milo832/lang/parser"
)

func TestParseGradientShader(t *testing.T) {
	src := `
in vec2 v_texcoord;
out vec4 fragColor;
void main() {
	fragColor = vec4(v_texcoord.x, v_texcoord.y, 0.5, 1.0);
}
`
	p := parser.New(src, "gradient.glsl")
	prog := p.ParseProgram()
	if p.Errors.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", p.Errors.Error())
	}
	if len(prog.Decls) != 3 {
		t.Fatalf("expected 3 top-level decls, got %d", len(prog.Decls))
	}
	if prog.Decls[0].Kind != ast.VarDecl || prog.Decls[0].Storage != ast.StorageIn {
		t.Errorf("decl 0: expected in vec2 v_texcoord, got %+v", prog.Decls[0])
	}
	if prog.Decls[2].Kind != ast.Function || prog.Decls[2].Name != "main" {
		t.Errorf("decl 2: expected function main, got %+v", prog.Decls[2])
	}
}

func TestFunctionVsVariableDisambiguation(t *testing.T) {
	src := "float a; float f(float x) { return x; }"
	p := parser.New(src, "test.glsl")
	prog := p.ParseProgram()
	if p.Errors.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", p.Errors.Error())
	}
	if prog.Decls[0].Kind != ast.VarDecl {
		t.Errorf("expected first decl to be a variable, got %v", prog.Decls[0].Kind)
	}
	if prog.Decls[1].Kind != ast.Function || len(prog.Decls[1].Params) != 1 {
		t.Errorf("expected second decl to be a 1-param function, got %+v", prog.Decls[1])
	}
}

func TestControlFlowParsing(t *testing.T) {
	src := `
void main() {
	float x = 0.0;
	if (x > 0.5) {
		x = 1.0;
	} else {
		x = 0.0;
	}
	for (int i = 0; i < 4; i = i + 1) {
		x = x + 1.0;
	}
	while (x < 10.0) {
		x = x + 1.0;
	}
}
`
	p := parser.New(src, "test.glsl")
	prog := p.ParseProgram()
	if p.Errors.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", p.Errors.Error())
	}
	body := prog.Decls[0].Body
	if len(body.Stmts) != 4 {
		t.Fatalf("expected 4 statements in main body, got %d", len(body.Stmts))
	}
	if body.Stmts[1].Kind != ast.IfStmt || body.Stmts[1].Else == nil {
		t.Errorf("expected if/else statement")
	}
	if body.Stmts[2].Kind != ast.ForStmt {
		t.Errorf("expected for statement")
	}
	if body.Stmts[3].Kind != ast.WhileStmt {
		t.Errorf("expected while statement")
	}
}

func TestOperatorPrecedence(t *testing.T) {
	src := "void main() { float x = 1.0 + 2.0 * 3.0; }"
	p := parser.New(src, "test.glsl")
	prog := p.ParseProgram()
	if p.Errors.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", p.Errors.Error())
	}
	init := prog.Decls[0].Body.Stmts[0].Init
	if init.Kind != ast.BinaryExpr || init.Op != "+" {
		t.Fatalf("expected top-level +, got %+v", init)
	}
	if init.Right.Kind != ast.BinaryExpr || init.Right.Op != "*" {
		t.Fatalf("expected right side to be 2.0 * 3.0, got %+v", init.Right)
	}
}

func TestTernaryAndSwizzle(t *testing.T) {
	src := "void main() { float y = v.xy.x > 0.0 ? 1.0 : 0.0; }"
	p := parser.New(src, "test.glsl")
	prog := p.ParseProgram()
	if p.Errors.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", p.Errors.Error())
	}
	init := prog.Decls[0].Body.Stmts[0].Init
	if init.Kind != ast.TernaryExpr {
		t.Fatalf("expected ternary, got %v", init.Kind)
	}
}

func TestLayoutLocationAttachesToDecl(t *testing.T) {
	src := "layout(location=0) in vec3 a_position;"
	p := parser.New(src, "test.glsl")
	prog := p.ParseProgram()
	if p.Errors.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", p.Errors.Error())
	}
	if prog.Decls[0].Location != 0 {
		t.Errorf("expected location 0, got %d", prog.Decls[0].Location)
	}
}

func TestIllegalTopLevelTokenRecordsError(t *testing.T) {
	src := "@@@ void main() {}"
	p := parser.New(src, "test.glsl")
	p.ParseProgram()
	if !p.Errors.HasErrors() {
		t.Fatal("expected parse errors for illegal token")
	}
}
