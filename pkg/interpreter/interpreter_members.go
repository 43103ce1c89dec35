package interpreter

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateGet(expr *ast.GetExpression, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(expr.Object, env)
	if err != nil {
		return nil, err
	}
	inst, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, diag.NewRuntimeError(expr.Name.Line, diag.TypeError, "Only instances have properties.")
	}
	value, ok := inst.Get(expr.Name.Lexeme)
	if !ok {
		return nil, diag.NewRuntimeError(expr.Name.Line, diag.UndefinedProperty, "Undefined property '%s'.", expr.Name.Lexeme)
	}
	return value, nil
}

func (i *Interpreter) evaluateSet(expr *ast.SetExpression, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(expr.Object, env)
	if err != nil {
		return nil, err
	}
	inst, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, diag.NewRuntimeError(expr.Name.Line, diag.TypeError, "Only instances have fields.")
	}
	value, err := i.evaluateExpression(expr.Value, env)
	if err != nil {
		return nil, err
	}
	inst.Set(expr.Name.Lexeme, value)
	return value, nil
}
