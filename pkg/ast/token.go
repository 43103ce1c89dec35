package ast

import "fmt"

// TokenType enumerates the lexical categories of Lox source.
type TokenType int

const (
	// Single-character tokens.
	TokLeftParen TokenType = iota
	TokRightParen
	TokLeftBrace
	TokRightBrace
	TokComma
	TokDot
	TokMinus
	TokPlus
	TokSemicolon
	TokSlash
	TokStar

	// One or two character tokens.
	TokBang
	TokBangEqual
	TokEqual
	TokEqualEqual
	TokGreater
	TokGreaterEqual
	TokLess
	TokLessEqual

	// Literals.
	TokIdentifier
	TokString
	TokNumber

	// Keywords.
	TokAnd
	TokClass
	TokElse
	TokFalse
	TokFun
	TokFor
	TokIf
	TokNil
	TokOr
	TokPrint
	TokReturn
	TokSuper
	TokThis
	TokTrue
	TokVar
	TokWhile

	TokEOF
)

var tokenNames = [...]string{
	TokLeftParen:    "LEFT_PAREN",
	TokRightParen:   "RIGHT_PAREN",
	TokLeftBrace:    "LEFT_BRACE",
	TokRightBrace:   "RIGHT_BRACE",
	TokComma:        "COMMA",
	TokDot:          "DOT",
	TokMinus:        "MINUS",
	TokPlus:         "PLUS",
	TokSemicolon:    "SEMICOLON",
	TokSlash:        "SLASH",
	TokStar:         "STAR",
	TokBang:         "BANG",
	TokBangEqual:    "BANG_EQUAL",
	TokEqual:        "EQUAL",
	TokEqualEqual:   "EQUAL_EQUAL",
	TokGreater:      "GREATER",
	TokGreaterEqual: "GREATER_EQUAL",
	TokLess:         "LESS",
	TokLessEqual:    "LESS_EQUAL",
	TokIdentifier:   "IDENTIFIER",
	TokString:       "STRING",
	TokNumber:       "NUMBER",
	TokAnd:          "AND",
	TokClass:        "CLASS",
	TokElse:         "ELSE",
	TokFalse:        "FALSE",
	TokFun:          "FUN",
	TokFor:          "FOR",
	TokIf:           "IF",
	TokNil:          "NIL",
	TokOr:           "OR",
	TokPrint:        "PRINT",
	TokReturn:       "RETURN",
	TokSuper:        "SUPER",
	TokThis:         "THIS",
	TokTrue:         "TRUE",
	TokVar:          "VAR",
	TokWhile:        "WHILE",
	TokEOF:          "EOF",
}

func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Keywords maps reserved words to their token types.
var Keywords = map[string]TokenType{
	"and":    TokAnd,
	"class":  TokClass,
	"else":   TokElse,
	"false":  TokFalse,
	"for":    TokFor,
	"fun":    TokFun,
	"if":     TokIf,
	"nil":    TokNil,
	"or":     TokOr,
	"print":  TokPrint,
	"return": TokReturn,
	"super":  TokSuper,
	"this":   TokThis,
	"true":   TokTrue,
	"var":    TokVar,
	"while":  TokWhile,
}

// Token is a single lexeme with its literal payload and source line.
// Tokens are shared by pointer; two occurrences of the same name are
// distinct tokens.
type Token struct {
	Type    TokenType `json:"type"`
	Lexeme  string    `json:"lexeme"`
	Literal any       `json:"literal,omitempty"`
	Line    int       `json:"line"`
}

func NewToken(typ TokenType, lexeme string, literal any, line int) *Token {
	return &Token{Type: typ, Lexeme: lexeme, Literal: literal, Line: line}
}

func (t *Token) String() string {
	if t == nil {
		return "<nil token>"
	}
	if t.Literal != nil {
		return fmt.Sprintf("%s %s %v", t.Type, t.Lexeme, t.Literal)
	}
	return fmt.Sprintf("%s %s", t.Type, t.Lexeme)
}
