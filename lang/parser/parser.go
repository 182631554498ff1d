// Package parser is a recursive-descent, precedence-climbing parser for
// the Milo832 shading-language subset, producing a lang/ast tree.
package parser

import (
	"fmt"
	"strconv"

	"github.com/benjcooley/milo832/diag"
	"github.com/benjcooley/milo832/lang/ast"
	"github.com/benjcooley/milo832/lang/lexer"
	"github.com/benjcooley/milo832/lang/token"
)

// Parser consumes a pre-tokenized stream. Tokenizing up front (rather than
// driving the lexer char-by-char as statements are parsed) is what makes
// the function-vs-variable lookahead a cheap save/restore of an integer
// index instead of a lexer-state snapshot.
type Parser struct {
	filename string
	toks     []token.Token
	pos      int
	Errors   *diag.ErrorList
}

// New tokenizes input and returns a Parser positioned at the first token.
func New(input, filename string) *Parser {
	lx := lexer.New(input, filename)
	toks := lx.Tokenize()
	errs := lx.Errors
	return &Parser{filename: filename, toks: toks, Errors: errs}
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+1]
}
func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) pos_() diag.Position {
	c := p.cur()
	return diag.Position{Filename: p.filename, Line: c.Line, Column: c.Column}
}

func (p *Parser) errorf(kind diag.ErrorKind, format string, args ...interface{}) {
	p.Errors.Add(diag.NewError(p.pos_(), kind, fmt.Sprintf(format, args...)))
}

func (p *Parser) expect(tt token.Type) token.Token {
	if p.cur().Type != tt {
		p.errorf(diag.ErrorSyntax, "expected %v, got %v (%q)", tt, p.cur().Type, p.cur().Literal)
		return p.cur()
	}
	return p.advance()
}

// mark/reset implement the save-position/advance/look/restore technique
// used to disambiguate a function declaration from a variable declaration.
func (p *Parser) mark() int       { return p.pos }
func (p *Parser) reset(mark int)  { p.pos = mark }

// ParseProgram parses the full translation unit.
func (p *Parser) ParseProgram() *ast.Node {
	prog := &ast.Node{Kind: ast.Program, Pos: p.pos_()}
	for p.cur().Type != token.EOF {
		if d := p.parseTopLevel(); d != nil {
			prog.Decls = append(prog.Decls, d)
		} else if p.cur().Type != token.EOF {
			// Avoid spinning forever on an unrecognized token.
			p.advance()
		}
	}
	return prog
}

func (p *Parser) parseTopLevel() *ast.Node {
	// `precision QUAL TYPE;` is accepted and discarded.
	if p.cur().Type == token.KwPrecision {
		p.advance()
		p.advance() // qualifier (lowp/mediump/highp), lexed as identifier
		p.parseTypeKeyword()
		p.expect(token.Semicolon)
		return nil
	}

	location := -1
	if p.cur().Type == token.Identifier && p.cur().Literal == "layout" {
		p.advance()
		p.expect(token.LParen)
		p.expect(token.Identifier) // "location"
		p.expect(token.Assign)
		n := p.expect(token.IntLiteral)
		if v, err := strconv.Atoi(n.Literal); err == nil {
			location = v
		}
		p.expect(token.RParen)
	}

	storage := ast.StorageLocal
	switch p.cur().Type {
	case token.KwUniform:
		storage = ast.StorageUniform
		p.advance()
	case token.KwIn:
		storage = ast.StorageIn
		p.advance()
	case token.KwOut:
		storage = ast.StorageOut
		p.advance()
	case token.KwConst:
		storage = ast.StorageConst
		p.advance()
	}

	if !token.IsTypeKeyword(p.cur().Type) {
		p.errorf(diag.ErrorSyntax, "expected type, got %v", p.cur().Type)
		return nil
	}

	mark := p.mark()
	declPos := p.pos_()
	typ := p.parseTypeKeyword()
	name := p.expect(token.Identifier).Literal
	isFunc := p.cur().Type == token.LParen

	if isFunc {
		p.reset(mark)
		return p.parseFunction()
	}
	return p.parseVarDeclRest(declPos, storage, location, typ, name)
}

func (p *Parser) parseTypeKeyword() ast.Type {
	t := p.cur().Type
	p.advance()
	switch t {
	case token.KwVoid:
		return ast.Void
	case token.KwInt, token.KwBool:
		return ast.Int
	case token.KwFloat:
		return ast.Float
	case token.KwVec2:
		return ast.Vec2
	case token.KwVec3:
		return ast.Vec3
	case token.KwVec4:
		return ast.Vec4
	case token.KwMat3:
		return ast.Mat3
	case token.KwMat4:
		return ast.Mat4
	case token.KwSampler2D:
		return ast.Sampler2D
	default:
		p.errorf(diag.ErrorUnknownType, "expected type keyword, got %v", t)
		return ast.Void
	}
}

func (p *Parser) parseFunction() *ast.Node {
	pos := p.pos_()
	retType := p.parseTypeKeyword()
	name := p.expect(token.Identifier).Literal

	fn := &ast.Node{Kind: ast.Function, Pos: pos, Name: name, Type: retType}
	p.expect(token.LParen)
	for p.cur().Type != token.RParen && p.cur().Type != token.EOF {
		if len(fn.Params) > 0 {
			p.expect(token.Comma)
		}
		ppos := p.pos_()
		ptyp := p.parseTypeKeyword()
		pname := p.expect(token.Identifier).Literal
		fn.Params = append(fn.Params, &ast.Node{Kind: ast.Param, Pos: ppos, Name: pname, Type: ptyp})
	}
	p.expect(token.RParen)
	fn.Body = p.parseBlock()
	return fn
}

// parseVarDeclRest parses the remainder of a declaration (optional
// initializer, semicolon) after the caller has already consumed
// storage class, type, and name via the lookahead pass.
func (p *Parser) parseVarDeclRest(pos diag.Position, storage ast.StorageClass, location int, typ ast.Type, name string) *ast.Node {
	decl := &ast.Node{Kind: ast.VarDecl, Pos: pos, Name: name, Type: typ, Storage: storage, Location: location}
	if p.cur().Type == token.Assign {
		p.advance()
		decl.Init = p.parseExpression(0)
	}
	p.expect(token.Semicolon)
	return decl
}

func (p *Parser) parseBlock() *ast.Node {
	pos := p.pos_()
	p.expect(token.LBrace)
	blk := &ast.Node{Kind: ast.Block, Pos: pos}
	for p.cur().Type != token.RBrace && p.cur().Type != token.EOF {
		blk.Stmts = append(blk.Stmts, p.parseStatement())
	}
	p.expect(token.RBrace)
	return blk
}

func (p *Parser) parseStatement() *ast.Node {
	switch p.cur().Type {
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwReturn:
		pos := p.pos_()
		p.advance()
		var e *ast.Node
		if p.cur().Type != token.Semicolon {
			e = p.parseExpression(0)
		}
		p.expect(token.Semicolon)
		return &ast.Node{Kind: ast.ReturnStmt, Pos: pos, Expr: e}
	case token.KwBreak:
		pos := p.pos_()
		p.advance()
		p.expect(token.Semicolon)
		return &ast.Node{Kind: ast.BreakStmt, Pos: pos}
	case token.KwContinue:
		pos := p.pos_()
		p.advance()
		p.expect(token.Semicolon)
		return &ast.Node{Kind: ast.ContinueStmt, Pos: pos}
	case token.KwDiscard:
		pos := p.pos_()
		p.advance()
		p.expect(token.Semicolon)
		return &ast.Node{Kind: ast.DiscardStmt, Pos: pos}
	}

	if token.IsTypeKeyword(p.cur().Type) {
		pos := p.pos_()
		typ := p.parseTypeKeyword()
		name := p.expect(token.Identifier).Literal
		return p.parseVarDeclRest(pos, ast.StorageLocal, -1, typ, name)
	}

	pos := p.pos_()
	e := p.parseExpression(0)
	p.expect(token.Semicolon)
	return &ast.Node{Kind: ast.ExprStmt, Pos: pos, Expr: e}
}

func (p *Parser) parseIf() *ast.Node {
	pos := p.pos_()
	p.advance()
	p.expect(token.LParen)
	cond := p.parseExpression(0)
	p.expect(token.RParen)
	then := p.parseStatement()
	n := &ast.Node{Kind: ast.IfStmt, Pos: pos, Cond: cond, Then: then}
	if p.cur().Type == token.KwElse {
		p.advance()
		n.Else = p.parseStatement()
	}
	return n
}

func (p *Parser) parseFor() *ast.Node {
	pos := p.pos_()
	p.advance()
	p.expect(token.LParen)

	n := &ast.Node{Kind: ast.ForStmt, Pos: pos}
	if p.cur().Type != token.Semicolon {
		if token.IsTypeKeyword(p.cur().Type) {
			ipos := p.pos_()
			typ := p.parseTypeKeyword()
			name := p.expect(token.Identifier).Literal
			n.ForInit = p.parseVarDeclRest(ipos, ast.StorageLocal, -1, typ, name)
		} else {
			n.ForInit = &ast.Node{Kind: ast.ExprStmt, Pos: p.pos_(), Expr: p.parseExpression(0)}
			p.expect(token.Semicolon)
		}
	} else {
		p.expect(token.Semicolon)
	}

	if p.cur().Type != token.Semicolon {
		n.ForCond = p.parseExpression(0)
	}
	p.expect(token.Semicolon)

	if p.cur().Type != token.RParen {
		n.ForPost = p.parseExpression(0)
	}
	p.expect(token.RParen)

	n.ForBody = p.parseStatement()
	return n
}

func (p *Parser) parseWhile() *ast.Node {
	pos := p.pos_()
	p.advance()
	p.expect(token.LParen)
	cond := p.parseExpression(0)
	p.expect(token.RParen)
	body := p.parseStatement()
	return &ast.Node{Kind: ast.WhileStmt, Pos: pos, WhileCond: cond, WhileBody: body}
}
