// Package token defines the lexical tokens of the Milo832 shading
// language subset.
package token

import "fmt"

// Type identifies a token's lexical category.
type Type int

const (
	EOF Type = iota
	Illegal

	Identifier
	IntLiteral
	FloatLiteral

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	Dot

	// Operators
	Assign
	Plus
	Minus
	Star
	Slash
	Percent
	Not
	Lt
	Gt
	Le
	Ge
	Eq
	Ne
	AndAnd
	OrOr
	Question
	Colon
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign

	// Keywords
	KwIf
	KwElse
	KwFor
	KwWhile
	KwReturn
	KwBreak
	KwContinue
	KwDiscard
	KwUniform
	KwIn
	KwOut
	KwConst
	KwPrecision
	KwVoid
	KwInt
	KwFloat
	KwBool
	KwVec2
	KwVec3
	KwVec4
	KwMat3
	KwMat4
	KwSampler2D
	KwTrue
	KwFalse
)

var names = map[Type]string{
	EOF: "EOF", Illegal: "ILLEGAL",
	Identifier: "IDENT", IntLiteral: "INT", FloatLiteral: "FLOAT",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Comma: ",", Semicolon: ";", Dot: ".",
	Assign: "=", Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Not: "!", Lt: "<", Gt: ">", Le: "<=", Ge: ">=", Eq: "==", Ne: "!=",
	AndAnd: "&&", OrOr: "||", Question: "?", Colon: ":",
	PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=",
	KwIf: "if", KwElse: "else", KwFor: "for", KwWhile: "while",
	KwReturn: "return", KwBreak: "break", KwContinue: "continue",
	KwDiscard: "discard", KwUniform: "uniform", KwIn: "in", KwOut: "out",
	KwConst: "const", KwPrecision: "precision",
	KwVoid: "void", KwInt: "int", KwFloat: "float", KwBool: "bool",
	KwVec2: "vec2", KwVec3: "vec3", KwVec4: "vec4",
	KwMat3: "mat3", KwMat4: "mat4", KwSampler2D: "sampler2D",
	KwTrue: "true", KwFalse: "false",
}

func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return fmt.Sprintf("Type(%d)", t)
}

var keywords = map[string]Type{
	"if": KwIf, "else": KwElse, "for": KwFor, "while": KwWhile,
	"return": KwReturn, "break": KwBreak, "continue": KwContinue,
	"discard": KwDiscard, "uniform": KwUniform, "in": KwIn, "out": KwOut,
	"const": KwConst, "precision": KwPrecision,
	"void": KwVoid, "int": KwInt, "float": KwFloat, "bool": KwBool,
	"vec2": KwVec2, "vec3": KwVec3, "vec4": KwVec4,
	"mat3": KwMat3, "mat4": KwMat4, "sampler2D": KwSampler2D,
	"true": KwTrue, "false": KwFalse,
}

// LookupIdent classifies an identifier as a keyword type, or Identifier if
// it isn't one.
func LookupIdent(s string) Type {
	if t, ok := keywords[s]; ok {
		return t
	}
	return Identifier
}

// IsTypeKeyword reports whether t names one of the shading language's
// closed set of value types.
func IsTypeKeyword(t Type) bool {
	switch t {
	case KwVoid, KwInt, KwFloat, KwBool, KwVec2, KwVec3, KwVec4, KwMat3, KwMat4, KwSampler2D:
		return true
	}
	return false
}

// Token is one lexical token with its source position.
type Token struct {
	Type    Type
	Literal string
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Type, t.Literal, t.Line, t.Column)
}
