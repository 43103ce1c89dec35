package ast

import (
	"fmt"
	"strconv"
	"strings"
)

/*** DUMP (parenthesized outline for the CLI) ***/

// Dump renders statements one per line in prefix form, e.g.
// `(var x (+ 1 2))`.
func Dump(statements []Statement) string {
	var b strings.Builder
	for _, s := range statements {
		b.WriteString(stmtString(s))
		b.WriteByte('\n')
	}
	return b.String()
}

// DumpExpression renders a single expression in prefix form.
func DumpExpression(e Expression) string {
	return exprString(e)
}

func stmtString(s Statement) string {
	switch st := s.(type) {
	case *ExpressionStatement:
		return "(; " + exprString(st.Expression) + ")"
	case *PrintStatement:
		return "(print " + exprString(st.Expression) + ")"
	case *VarStatement:
		if st.Initializer == nil {
			return "(var " + st.Name.Lexeme + ")"
		}
		return "(var " + st.Name.Lexeme + " " + exprString(st.Initializer) + ")"
	case *BlockStatement:
		parts := make([]string, 0, len(st.Statements))
		for _, inner := range st.Statements {
			parts = append(parts, stmtString(inner))
		}
		if len(parts) == 0 {
			return "(block)"
		}
		return "(block " + strings.Join(parts, " ") + ")"
	case *IfStatement:
		if st.Else == nil {
			return fmt.Sprintf("(if %s %s)", exprString(st.Condition), stmtString(st.Then))
		}
		return fmt.Sprintf("(if-else %s %s %s)", exprString(st.Condition), stmtString(st.Then), stmtString(st.Else))
	case *WhileStatement:
		return fmt.Sprintf("(while %s %s)", exprString(st.Condition), stmtString(st.Body))
	case *FunctionStatement:
		return functionString("fun", st)
	case *ClassStatement:
		var b strings.Builder
		b.WriteString("(class ")
		b.WriteString(st.Name.Lexeme)
		for _, m := range st.Methods {
			b.WriteByte(' ')
			b.WriteString(functionString("method", m))
		}
		b.WriteByte(')')
		return b.String()
	case *ReturnStatement:
		if st.Value == nil {
			return "(return)"
		}
		return "(return " + exprString(st.Value) + ")"
	default:
		return "<stmt>"
	}
}

func functionString(keyword string, fn *FunctionStatement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "(%s %s (", keyword, fn.Name.Lexeme)
	for i, p := range fn.Params {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.Lexeme)
	}
	b.WriteByte(')')
	for _, s := range fn.Body {
		b.WriteByte(' ')
		b.WriteString(stmtString(s))
	}
	b.WriteByte(')')
	return b.String()
}

func exprString(e Expression) string {
	switch v := e.(type) {
	case *LiteralExpression:
		return literalString(v.Value)
	case *GroupingExpression:
		return "(group " + exprString(v.Expression) + ")"
	case *UnaryExpression:
		return "(" + v.Operator.Lexeme + " " + exprString(v.Right) + ")"
	case *BinaryExpression:
		return "(" + v.Operator.Lexeme + " " + exprString(v.Left) + " " + exprString(v.Right) + ")"
	case *LogicalExpression:
		return "(" + v.Operator.Lexeme + " " + exprString(v.Left) + " " + exprString(v.Right) + ")"
	case *VariableExpression:
		return v.Name.Lexeme
	case *AssignExpression:
		return "(= " + v.Name.Lexeme + " " + exprString(v.Value) + ")"
	case *CallExpression:
		parts := []string{exprString(v.Callee)}
		for _, a := range v.Arguments {
			parts = append(parts, exprString(a))
		}
		return "(call " + strings.Join(parts, " ") + ")"
	case *GetExpression:
		return "(. " + exprString(v.Object) + " " + v.Name.Lexeme + ")"
	case *SetExpression:
		return "(.= " + exprString(v.Object) + " " + v.Name.Lexeme + " " + exprString(v.Value) + ")"
	case *ThisExpression:
		return "this"
	default:
		return "<expr>"
	}
}

func literalString(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
