package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

// completion is the result of executing a statement. A set returning flag
// unwinds to the nearest call, which takes value as its result.
type completion struct {
	returning bool
	value     runtime.Value
}

var normal = completion{}

func (i *Interpreter) executeStatement(node ast.Statement, env *runtime.Environment) (completion, error) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		_, err := i.evaluateExpression(n.Expression, env)
		return normal, err
	case *ast.PrintStatement:
		return normal, i.executePrint(n, env)
	case *ast.VarStatement:
		var value runtime.Value = runtime.Nil
		if n.Initializer != nil {
			v, err := i.evaluateExpression(n.Initializer, env)
			if err != nil {
				return normal, err
			}
			value = v
		}
		env.Define(n.Name.Lexeme, value)
		return normal, nil
	case *ast.BlockStatement:
		return i.executeBlock(n.Statements, runtime.NewEnvironment(env))
	case *ast.IfStatement:
		return i.executeIf(n, env)
	case *ast.WhileStatement:
		return i.executeWhile(n, env)
	case *ast.FunctionStatement:
		env.Define(n.Name.Lexeme, &runtime.FunctionValue{Declaration: n, Closure: env})
		return normal, nil
	case *ast.ClassStatement:
		methods := make(map[string]*runtime.FunctionValue, len(n.Methods))
		for _, m := range n.Methods {
			methods[m.Name.Lexeme] = &runtime.FunctionValue{Declaration: m, Closure: env}
		}
		env.Define(n.Name.Lexeme, runtime.NewClass(n.Name.Lexeme, methods))
		return normal, nil
	case *ast.ReturnStatement:
		var value runtime.Value = runtime.Nil
		if n.Value != nil {
			v, err := i.evaluateExpression(n.Value, env)
			if err != nil {
				return normal, err
			}
			value = v
		}
		return completion{returning: true, value: value}, nil
	default:
		return normal, fmt.Errorf("unsupported statement type %s", node.NodeType())
	}
}

// executeBlock runs statements in env. The caller's environment is untouched
// because env is a parameter, so every exit path leaves it in place.
func (i *Interpreter) executeBlock(statements []ast.Statement, env *runtime.Environment) (completion, error) {
	for _, stmt := range statements {
		c, err := i.executeStatement(stmt, env)
		if err != nil || c.returning {
			return c, err
		}
	}
	return normal, nil
}

func (i *Interpreter) executePrint(stmt *ast.PrintStatement, env *runtime.Environment) error {
	value, err := i.evaluateExpression(stmt.Expression, env)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(i.out, runtime.Stringify(value)); err != nil {
		return fmt.Errorf("print: %w", err)
	}
	return nil
}

func (i *Interpreter) executeIf(stmt *ast.IfStatement, env *runtime.Environment) (completion, error) {
	cond, err := i.evaluateExpression(stmt.Condition, env)
	if err != nil {
		return normal, err
	}
	if runtime.IsTruthy(cond) {
		return i.executeStatement(stmt.Then, env)
	}
	if stmt.Else != nil {
		return i.executeStatement(stmt.Else, env)
	}
	return normal, nil
}

func (i *Interpreter) executeWhile(loop *ast.WhileStatement, env *runtime.Environment) (completion, error) {
	for {
		cond, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return normal, err
		}
		if !runtime.IsTruthy(cond) {
			return normal, nil
		}
		c, err := i.executeStatement(loop.Body, env)
		if err != nil || c.returning {
			return c, err
		}
	}
}
