package lexer

import (
	"errors"
	"testing"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
)

func kinds(tokens []*ast.Token) []ast.TokenType {
	out := make([]ast.TokenType, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Type)
	}
	return out
}

func TestScanEmptySourceYieldsEOF(t *testing.T) {
	tokens, err := Scan("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Type != ast.TokEOF {
		t.Fatalf("expected lone EOF, got %v", tokens)
	}
}

func TestScanOperatorsAndPunctuation(t *testing.T) {
	tokens, err := Scan("(){},.-+;*/ ! != = == < <= > >=")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []ast.TokenType{
		ast.TokLeftParen, ast.TokRightParen, ast.TokLeftBrace, ast.TokRightBrace,
		ast.TokComma, ast.TokDot, ast.TokMinus, ast.TokPlus, ast.TokSemicolon,
		ast.TokStar, ast.TokSlash, ast.TokBang, ast.TokBangEqual, ast.TokEqual,
		ast.TokEqualEqual, ast.TokLess, ast.TokLessEqual, ast.TokGreater,
		ast.TokGreaterEqual, ast.TokEOF,
	}
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestScanLiteralsKeywordsAndLines(t *testing.T) {
	src := "var answer = 42.5; // trailing comment\nprint \"multi\nline\";\nclass this_1"
	tokens, err := Scan(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Type != ast.TokVar || tokens[1].Type != ast.TokIdentifier || tokens[1].Lexeme != "answer" {
		t.Fatalf("unexpected leading tokens: %v %v", tokens[0], tokens[1])
	}
	if v, ok := tokens[3].Literal.(float64); !ok || v != 42.5 {
		t.Fatalf("expected number literal 42.5, got %#v", tokens[3].Literal)
	}
	str := tokens[6]
	if str.Type != ast.TokString || str.Literal != "multi\nline" {
		t.Fatalf("expected multi-line string literal, got %#v", str)
	}
	if str.Line != 3 {
		t.Fatalf("string token should carry the line it ends on, got %d", str.Line)
	}
	class := tokens[8]
	if class.Type != ast.TokClass || class.Line != 4 {
		t.Fatalf("expected class keyword on line 4, got %v line %d", class, class.Line)
	}
	if tokens[9].Type != ast.TokIdentifier || tokens[9].Lexeme != "this_1" {
		t.Fatalf("identifiers may contain keywords as prefixes, got %v", tokens[9])
	}
}

func TestScanNumberWithoutFractionDigits(t *testing.T) {
	tokens, err := Scan("12.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := kinds(tokens); len(got) != 3 || got[0] != ast.TokNumber || got[1] != ast.TokDot {
		t.Fatalf("expected NUMBER DOT EOF, got %v", got)
	}
}

func TestScanReportsAllErrors(t *testing.T) {
	_, err := Scan("@\n#\n\"open")
	if err == nil {
		t.Fatalf("expected scan errors")
	}
	var list diag.ErrorList
	if !errors.As(err, &list) || len(list) != 3 {
		t.Fatalf("expected three errors, got %v", err)
	}
	want := []string{
		"[line 1] Scanner error: Unexpected character '@'",
		"[line 2] Scanner error: Unexpected character '#'",
		"[line 3] Scanner error: Unterminated string literal",
	}
	for i, w := range want {
		if list[i].Error() != w {
			t.Fatalf("error %d: got %q want %q", i, list[i].Error(), w)
		}
	}
}

func TestScanDistinctTokenIdentity(t *testing.T) {
	tokens, err := Scan("a a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0] == tokens[1] {
		t.Fatalf("each occurrence must be its own token")
	}
	if tokens[0].Lexeme != tokens[1].Lexeme {
		t.Fatalf("lexemes should match")
	}
}
