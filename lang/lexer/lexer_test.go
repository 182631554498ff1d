package lexer_test

import (
	"testing"

	"github.com/benjcooley/milo832/lang/lexer"
	"github.com/benjcooley/milo832/lang/token"
)

func TestBasicTokens(t *testing.T) {
	input := "vec4 fragColor = vec4(1.0, 0.5, 0.25, 1.0);"
	l := lexer.New(input, "test.glsl")

	expected := []token.Type{
		token.KwVec4, token.Identifier, token.Assign, token.KwVec4,
		token.LParen, token.FloatLiteral, token.Comma, token.FloatLiteral,
		token.Comma, token.FloatLiteral, token.Comma, token.FloatLiteral,
		token.RParen, token.Semicolon, token.EOF,
	}
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Errorf("token %d: expected %v, got %v (%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input    string
		wantType token.Type
		wantLit  string
	}{
		{"42", token.IntLiteral, "42"},
		{"0x2A", token.IntLiteral, "0x2A"},
		{"3.14", token.FloatLiteral, "3.14"},
		{"1.0", token.FloatLiteral, "1.0"},
		{"5f", token.FloatLiteral, "5"},
	}
	for _, tt := range tests {
		l := lexer.New(tt.input, "test.glsl")
		tok := l.NextToken()
		if tok.Type != tt.wantType {
			t.Errorf("input %q: expected %v, got %v", tt.input, tt.wantType, tok.Type)
		}
		if tok.Literal != tt.wantLit {
			t.Errorf("input %q: expected literal %q, got %q", tt.input, tt.wantLit, tok.Literal)
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "uniform float u_time; in vec2 v_texcoord;"
	l := lexer.New(input, "test.glsl")

	expected := []token.Type{
		token.KwUniform, token.KwFloat, token.Identifier, token.Semicolon,
		token.KwIn, token.KwVec2, token.Identifier, token.Semicolon, token.EOF,
	}
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Errorf("token %d: expected %v, got %v", i, want, tok.Type)
		}
	}
}

func TestComments(t *testing.T) {
	input := "// line comment\nfloat /* block */ x;"
	l := lexer.New(input, "test.glsl")

	expected := []token.Type{token.KwFloat, token.Identifier, token.Semicolon, token.EOF}
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Errorf("token %d: expected %v, got %v", i, want, tok.Type)
		}
	}
}

func TestPreprocessorLineSkipped(t *testing.T) {
	input := "#version 300 es\nvoid main() {}"
	l := lexer.New(input, "test.glsl")

	tok := l.NextToken()
	if tok.Type != token.KwVoid {
		t.Fatalf("expected preprocessor line to be skipped, got %v %q", tok.Type, tok.Literal)
	}
}

func TestOperators(t *testing.T) {
	input := "a == b && c != d || e <= f"
	l := lexer.New(input, "test.glsl")
	expected := []token.Type{
		token.Identifier, token.Eq, token.Identifier, token.AndAnd,
		token.Identifier, token.Ne, token.Identifier, token.OrOr,
		token.Identifier, token.Le, token.Identifier, token.EOF,
	}
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Errorf("token %d: expected %v, got %v", i, want, tok.Type)
		}
	}
}

func TestSwizzleDotAccess(t *testing.T) {
	input := "v.xyzw"
	l := lexer.New(input, "test.glsl")
	expected := []token.Type{token.Identifier, token.Dot, token.Identifier, token.EOF}
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Errorf("token %d: expected %v, got %v", i, want, tok.Type)
		}
	}
}

func TestIllegalCharacterRecordsError(t *testing.T) {
	l := lexer.New("$", "test.glsl")
	tok := l.NextToken()
	if tok.Type != token.Illegal {
		t.Fatalf("expected illegal token, got %v", tok.Type)
	}
	if !l.Errors.HasErrors() {
		t.Fatal("expected lexer to record an error for illegal character")
	}
}
