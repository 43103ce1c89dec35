// Package lexer turns Lox source text into a token stream.
package lexer

import (
	"strconv"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
)

// Lexer scans one source string. It is single use.
type Lexer struct {
	src   []byte
	start int
	i     int
	line  int

	tokens []*ast.Token
	errs   diag.ErrorList
}

func New(src string) *Lexer {
	return &Lexer{src: []byte(src), line: 1}
}

// Scan tokenizes the whole source. The returned slice always ends with an
// EOF token; scanning continues past bad characters so every error in the
// source is reported at once.
func Scan(src string) ([]*ast.Token, error) {
	return New(src).Tokens()
}

func (lx *Lexer) Tokens() ([]*ast.Token, error) {
	for !lx.atEOF() {
		lx.start = lx.i
		lx.scanToken()
	}
	lx.tokens = append(lx.tokens, ast.NewToken(ast.TokEOF, "", nil, lx.line))
	return lx.tokens, lx.errs.Err()
}

func (lx *Lexer) atEOF() bool { return lx.i >= len(lx.src) }

func (lx *Lexer) advance() byte {
	ch := lx.src[lx.i]
	lx.i++
	return ch
}

func (lx *Lexer) peek() byte {
	if lx.atEOF() {
		return 0
	}
	return lx.src[lx.i]
}

func (lx *Lexer) peekNext() byte {
	if lx.i+1 >= len(lx.src) {
		return 0
	}
	return lx.src[lx.i+1]
}

func (lx *Lexer) match(expect byte) bool {
	if lx.atEOF() || lx.src[lx.i] != expect {
		return false
	}
	lx.i++
	return true
}

func (lx *Lexer) emit(kind ast.TokenType, literal any) {
	text := string(lx.src[lx.start:lx.i])
	lx.tokens = append(lx.tokens, ast.NewToken(kind, text, literal, lx.line))
}

func (lx *Lexer) fail(msg string) {
	lx.errs = append(lx.errs, &diag.ScanError{Line: lx.line, Message: msg})
}

func (lx *Lexer) scanToken() {
	c := lx.advance()
	switch c {
	case ' ', '\r', '\t':
	case '\n':
		lx.line++
	case '(':
		lx.emit(ast.TokLeftParen, nil)
	case ')':
		lx.emit(ast.TokRightParen, nil)
	case '{':
		lx.emit(ast.TokLeftBrace, nil)
	case '}':
		lx.emit(ast.TokRightBrace, nil)
	case ',':
		lx.emit(ast.TokComma, nil)
	case '.':
		lx.emit(ast.TokDot, nil)
	case '-':
		lx.emit(ast.TokMinus, nil)
	case '+':
		lx.emit(ast.TokPlus, nil)
	case ';':
		lx.emit(ast.TokSemicolon, nil)
	case '*':
		lx.emit(ast.TokStar, nil)
	case '!':
		lx.either('=', ast.TokBangEqual, ast.TokBang)
	case '=':
		lx.either('=', ast.TokEqualEqual, ast.TokEqual)
	case '<':
		lx.either('=', ast.TokLessEqual, ast.TokLess)
	case '>':
		lx.either('=', ast.TokGreaterEqual, ast.TokGreater)
	case '/':
		if lx.match('/') {
			// comment runs to end of line
			for lx.peek() != '\n' && !lx.atEOF() {
				lx.advance()
			}
			return
		}
		lx.emit(ast.TokSlash, nil)
	case '"':
		lx.str()
	default:
		switch {
		case isDigit(c):
			lx.number()
		case isAlpha(c):
			lx.identifier()
		default:
			lx.fail("Unexpected character '" + string(c) + "'")
		}
	}
}

func (lx *Lexer) either(next byte, with, without ast.TokenType) {
	if lx.match(next) {
		lx.emit(with, nil)
		return
	}
	lx.emit(without, nil)
}

func (lx *Lexer) str() {
	for lx.peek() != '"' && !lx.atEOF() {
		if lx.peek() == '\n' {
			lx.line++
		}
		lx.advance()
	}
	if lx.atEOF() {
		lx.fail("Unterminated string literal")
		return
	}
	lx.advance() // closing quote
	value := string(lx.src[lx.start+1 : lx.i-1])
	lx.emit(ast.TokString, value)
}

func (lx *Lexer) number() {
	for isDigit(lx.peek()) {
		lx.advance()
	}
	if lx.peek() == '.' && isDigit(lx.peekNext()) {
		lx.advance()
		for isDigit(lx.peek()) {
			lx.advance()
		}
	}
	value, err := strconv.ParseFloat(string(lx.src[lx.start:lx.i]), 64)
	if err != nil {
		lx.fail("Invalid number literal '" + string(lx.src[lx.start:lx.i]) + "'")
		return
	}
	lx.emit(ast.TokNumber, value)
}

func (lx *Lexer) identifier() {
	for isAlpha(lx.peek()) || isDigit(lx.peek()) {
		lx.advance()
	}
	text := string(lx.src[lx.start:lx.i])
	if kind, ok := ast.Keywords[text]; ok {
		lx.emit(kind, nil)
		return
	}
	lx.emit(ast.TokIdentifier, nil)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
