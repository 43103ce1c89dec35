package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/runtime"
)

func typeError(op *ast.Token, msg string) error {
	return diag.NewRuntimeError(op.Line, diag.TypeError, "%s", msg)
}

func (i *Interpreter) evaluateUnary(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Type {
	case ast.TokMinus:
		n, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, typeError(expr.Operator, "Operand must be a number.")
		}
		return runtime.NumberValue{Val: -n.Val}, nil
	case ast.TokBang:
		return runtime.BoolValue{Val: !runtime.IsTruthy(right)}, nil
	default:
		return nil, fmt.Errorf("unsupported unary operator %s", expr.Operator.Lexeme)
	}
}

func (i *Interpreter) evaluateBinary(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	return applyBinary(expr.Operator, left, right)
}

func applyBinary(op *ast.Token, left, right runtime.Value) (runtime.Value, error) {
	switch op.Type {
	case ast.TokEqualEqual:
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case ast.TokBangEqual:
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	case ast.TokPlus:
		return add(op, left, right)
	}

	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return nil, typeError(op, "Operands must be numbers.")
	}
	switch op.Type {
	case ast.TokMinus:
		return runtime.NumberValue{Val: l.Val - r.Val}, nil
	case ast.TokStar:
		return runtime.NumberValue{Val: l.Val * r.Val}, nil
	case ast.TokSlash:
		return runtime.NumberValue{Val: l.Val / r.Val}, nil
	case ast.TokGreater:
		return runtime.BoolValue{Val: l.Val > r.Val}, nil
	case ast.TokGreaterEqual:
		return runtime.BoolValue{Val: l.Val >= r.Val}, nil
	case ast.TokLess:
		return runtime.BoolValue{Val: l.Val < r.Val}, nil
	case ast.TokLessEqual:
		return runtime.BoolValue{Val: l.Val <= r.Val}, nil
	default:
		return nil, fmt.Errorf("unsupported binary operator %s", op.Lexeme)
	}
}

func add(op *ast.Token, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.NumberValue:
		if r, ok := right.(runtime.NumberValue); ok {
			return runtime.NumberValue{Val: l.Val + r.Val}, nil
		}
	case runtime.StringValue:
		if r, ok := right.(runtime.StringValue); ok {
			return runtime.StringValue{Val: l.Val + r.Val}, nil
		}
	}
	return nil, typeError(op, "Operands must be two numbers or two strings.")
}
