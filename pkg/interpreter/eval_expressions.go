package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.LiteralExpression:
		return runtime.FromLiteral(n.Value), nil
	case *ast.GroupingExpression:
		return i.evaluateExpression(n.Expression, env)
	case *ast.UnaryExpression:
		return i.evaluateUnary(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinary(n, env)
	case *ast.LogicalExpression:
		return i.evaluateLogical(n, env)
	case *ast.VariableExpression:
		return i.lookupVariable(n, n.Name, env)
	case *ast.AssignExpression:
		return i.evaluateAssign(n, env)
	case *ast.CallExpression:
		return i.evaluateCall(n, env)
	case *ast.GetExpression:
		return i.evaluateGet(n, env)
	case *ast.SetExpression:
		return i.evaluateSet(n, env)
	case *ast.ThisExpression:
		return i.lookupVariable(n, n.Keyword, env)
	default:
		return nil, fmt.Errorf("unsupported expression type %s", node.NodeType())
	}
}

// lookupVariable reads through the hop table, falling back to the global
// scope for references the resolver left unrecorded.
func (i *Interpreter) lookupVariable(expr ast.Expression, name *ast.Token, env *runtime.Environment) (runtime.Value, error) {
	if hops, ok := i.locals[expr]; ok {
		return env.GetAt(hops, name.Lexeme), nil
	}
	return env.GetGlobal(name.Lexeme, name.Line)
}

func (i *Interpreter) evaluateAssign(expr *ast.AssignExpression, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evaluateExpression(expr.Value, env)
	if err != nil {
		return nil, err
	}
	if hops, ok := i.locals[expr]; ok {
		env.AssignAt(hops, expr.Name.Lexeme, value)
		return value, nil
	}
	if err := env.AssignGlobal(expr.Name.Lexeme, value, expr.Name.Line); err != nil {
		return nil, err
	}
	return value, nil
}

// evaluateLogical returns whichever operand decided the outcome.
func (i *Interpreter) evaluateLogical(expr *ast.LogicalExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	if expr.Operator.Type == ast.TokOr {
		if runtime.IsTruthy(left) {
			return left, nil
		}
	} else if !runtime.IsTruthy(left) {
		return left, nil
	}
	return i.evaluateExpression(expr.Right, env)
}
