package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/resolver"
)

// runSource parses, resolves and runs src on a fresh interpreter. Static
// errors fail the test; the runtime error, if any, is returned.
func runSource(t *testing.T, src string, opts ...Option) ([]string, error) {
	t.Helper()
	var out bytes.Buffer
	interp := New(append([]Option{WithOutput(&out)}, opts...)...)
	err := runOn(t, interp, src)
	return outputLines(out.String()), err
}

func runOn(t *testing.T, interp *Interpreter, src string) error {
	t.Helper()
	stmts, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return runProgram(t, interp, stmts)
}

func runProgram(t *testing.T, interp *Interpreter, stmts []ast.Statement) error {
	t.Helper()
	locals, err := resolver.Resolve(stmts)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	return interp.Interpret(stmts, locals)
}

func outputLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
