package parser

import (
	"strconv"

	"github.com/benjcooley/milo832/diag"
	"github.com/benjcooley/milo832/lang/ast"
	"github.com/benjcooley/milo832/lang/token"
)

// precedence levels, lowest to highest. Assignment and the ternary are
// handled outside this table since they're right-associative and the
// ternary isn't a simple binary operator.
var binPrec = map[token.Type]int{
	token.OrOr:    1,
	token.AndAnd:  2,
	token.Eq:      3,
	token.Ne:      3,
	token.Lt:      4,
	token.Gt:      4,
	token.Le:      4,
	token.Ge:      4,
	token.Plus:    5,
	token.Minus:   5,
	token.Star:    6,
	token.Slash:   6,
	token.Percent: 6,
}

var assignOps = map[token.Type]string{
	token.Assign:      "=",
	token.PlusAssign:  "+=",
	token.MinusAssign: "-=",
	token.StarAssign:  "*=",
	token.SlashAssign: "/=",
}

// parseExpression parses a full expression, starting from the assignment
// level (the lowest precedence).
func (p *Parser) parseExpression(minPrec int) *ast.Node {
	if minPrec == 0 {
		return p.parseAssignment()
	}
	return p.parseBinary(minPrec)
}

func (p *Parser) parseAssignment() *ast.Node {
	left := p.parseTernary()
	if op, ok := assignOps[p.cur().Type]; ok {
		pos := p.pos_()
		p.advance()
		right := p.parseAssignment()
		return &ast.Node{Kind: ast.AssignExpr, Pos: pos, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseTernary() *ast.Node {
	cond := p.parseBinary(1)
	if p.cur().Type == token.Question {
		pos := p.pos_()
		p.advance()
		then := p.parseAssignment()
		p.expect(token.Colon)
		els := p.parseAssignment()
		return &ast.Node{Kind: ast.TernaryExpr, Pos: pos, TernCond: cond, TernThen: then, TernElse: els}
	}
	return cond
}

// parseBinary implements precedence climbing: it parses a unary operand,
// then repeatedly consumes operators whose precedence is >= minPrec,
// recursing with precedence+1 for the right-hand side (left-associative).
func (p *Parser) parseBinary(minPrec int) *ast.Node {
	left := p.parseUnary()
	for {
		prec, ok := binPrec[p.cur().Type]
		if !ok || prec < minPrec {
			return left
		}
		opTok := p.advance()
		right := p.parseBinary(prec + 1)
		left = &ast.Node{Kind: ast.BinaryExpr, Pos: left.Pos, Op: opTok.Literal, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() *ast.Node {
	switch p.cur().Type {
	case token.Minus, token.Not:
		pos := p.pos_()
		op := p.advance().Literal
		operand := p.parseUnary()
		return &ast.Node{Kind: ast.UnaryExpr, Pos: pos, Op: op, Operand: operand}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() *ast.Node {
	n := p.parsePrimary()
	for {
		switch p.cur().Type {
		case token.Dot:
			pos := p.pos_()
			p.advance()
			swizzle := p.expect(token.Identifier).Literal
			n = &ast.Node{Kind: ast.MemberAccess, Pos: pos, Object: n, Swizzle: swizzle}
		case token.LBracket:
			pos := p.pos_()
			p.advance()
			idx := p.parseExpression(0)
			p.expect(token.RBracket)
			n = &ast.Node{Kind: ast.IndexAccess, Pos: pos, Object: n, Index: idx}
		default:
			return n
		}
	}
}

func (p *Parser) parsePrimary() *ast.Node {
	pos := p.pos_()
	switch p.cur().Type {
	case token.IntLiteral:
		lit := p.advance().Literal
		v := parseIntLiteral(lit)
		return &ast.Node{Kind: ast.IntLit, Pos: pos, IntValue: v}

	case token.FloatLiteral:
		lit := p.advance().Literal
		f, _ := strconv.ParseFloat(lit, 32)
		return &ast.Node{Kind: ast.FloatLit, Pos: pos, FloatValue: float32(f)}

	case token.KwTrue:
		p.advance()
		return &ast.Node{Kind: ast.IntLit, Pos: pos, IntValue: 1}

	case token.KwFalse:
		p.advance()
		return &ast.Node{Kind: ast.IntLit, Pos: pos, IntValue: 0}

	case token.LParen:
		p.advance()
		n := p.parseExpression(0)
		p.expect(token.RParen)
		return n

	case token.Identifier:
		name := p.advance().Literal
		if p.cur().Type == token.LParen {
			return p.parseCallArgs(pos, name)
		}
		return &ast.Node{Kind: ast.Identifier, Pos: pos, Name: name}
	}

	if token.IsTypeKeyword(p.cur().Type) {
		typ := p.parseTypeKeyword()
		n := &ast.Node{Kind: ast.TypeConstructor, Pos: pos, Type: typ}
		p.expect(token.LParen)
		for p.cur().Type != token.RParen && p.cur().Type != token.EOF {
			if len(n.Args) > 0 {
				p.expect(token.Comma)
			}
			n.Args = append(n.Args, p.parseAssignment())
		}
		p.expect(token.RParen)
		return n
	}

	p.errorf(diag.ErrorSyntax, "unexpected token %v in expression", p.cur().Type)
	p.advance()
	return &ast.Node{Kind: ast.IntLit, Pos: pos}
}

func (p *Parser) parseCallArgs(pos diag.Position, name string) *ast.Node {
	n := &ast.Node{Kind: ast.CallExpr, Pos: pos, Callee: name}
	p.expect(token.LParen)
	for p.cur().Type != token.RParen && p.cur().Type != token.EOF {
		if len(n.Args) > 0 {
			p.expect(token.Comma)
		}
		n.Args = append(n.Args, p.parseAssignment())
	}
	p.expect(token.RParen)
	return n
}

func parseIntLiteral(lit string) int32 {
	if len(lit) > 1 && lit[0] == '0' && (lit[1] == 'x' || lit[1] == 'X') {
		v, _ := strconv.ParseInt(lit[2:], 16, 64)
		return int32(v)
	}
	v, _ := strconv.ParseInt(lit, 10, 64)
	return int32(v)
}
