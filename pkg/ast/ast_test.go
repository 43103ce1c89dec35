package ast

import "testing"

func TestDumpStatements(t *testing.T) {
	program := Prog(
		VarDecl("x", Bin(Num(1), "+", Num(2))),
		IfStmt(Logic(ID("x"), "or", Nil()), PrintStmt(Str("yes")), nil),
		While(Un("!", Bool(false)), Block()),
		ClassDecl("Point", Fn("norm", []string{"p"}, Ret(Member(Self(), "x")))),
		ExprStmt(SetMember(ID("pt"), "x", CallExpr(ID("f"), Num(1.5)))),
		ExprStmt(Assign("x", Group(Num(-3)))),
	)
	want := `(var x (+ 1 2))
(if (or x nil) (print "yes"))
(while (! false) (block))
(class Point (method norm (p) (return (. this x))))
(; (.= pt x (call f 1.5)))
(; (= x (group -3)))
`
	if got := Dump(program); got != want {
		t.Fatalf("unexpected dump:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildersMintDistinctTokens(t *testing.T) {
	a, b := ID("a"), ID("a")
	if a == b || a.Name == b.Name {
		t.Fatalf("each builder call must produce fresh nodes and tokens")
	}
	if a.NodeType() != NodeVariableExpression {
		t.Fatalf("unexpected node type %s", a.NodeType())
	}
}

func TestOpRejectsUnknownOperator(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown operator")
		}
	}()
	Op("**")
}

func TestTokenString(t *testing.T) {
	tok := NewToken(TokNumber, "1.5", 1.5, 3)
	if got := tok.String(); got != "NUMBER 1.5 1.5" {
		t.Fatalf("unexpected token rendering %q", got)
	}
	if got := Ident("x").String(); got != "IDENTIFIER x" {
		t.Fatalf("unexpected identifier rendering %q", got)
	}
	if Keywords["class"] != TokClass {
		t.Fatalf("class should be a keyword")
	}
}
