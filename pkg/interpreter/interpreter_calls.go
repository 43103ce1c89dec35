package interpreter

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateCall(expr *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(expr.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(expr.Arguments))
	for _, argExpr := range expr.Arguments {
		arg, err := i.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return i.callValue(callee, args, expr.Paren)
}

func (i *Interpreter) callValue(callee runtime.Value, args []runtime.Value, paren *ast.Token) (runtime.Value, error) {
	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		if err := checkArity(fn.Arity(), len(args), paren); err != nil {
			return nil, err
		}
		return i.callFunction(fn, args, paren)
	case *runtime.NativeFunctionValue:
		if err := checkArity(fn.Arity, len(args), paren); err != nil {
			return nil, err
		}
		return fn.Impl(args)
	case *runtime.ClassValue:
		if err := checkArity(0, len(args), paren); err != nil {
			return nil, err
		}
		return runtime.NewInstance(fn), nil
	default:
		return nil, diag.NewRuntimeError(paren.Line, diag.NotCallable, "Can only call functions and classes.")
	}
}

func checkArity(expected, got int, paren *ast.Token) error {
	if expected == got {
		return nil
	}
	return diag.NewRuntimeError(paren.Line, diag.ArityMismatch, "Expected %d arguments but got %d.", expected, got)
}

// callFunction binds parameters in a fresh scope under the closure and runs
// the body there directly; the resolver puts params and body in one scope.
func (i *Interpreter) callFunction(fn *runtime.FunctionValue, args []runtime.Value, paren *ast.Token) (runtime.Value, error) {
	if i.callDepth >= i.maxCallDepth {
		return nil, diag.NewRuntimeError(paren.Line, diag.StackOverflow, "Stack overflow.")
	}
	i.callDepth++
	defer func() { i.callDepth-- }()

	env := runtime.NewEnvironment(fn.Closure)
	for idx, param := range fn.Declaration.Params {
		env.Define(param.Lexeme, args[idx])
	}
	c, err := i.executeBlock(fn.Declaration.Body, env)
	if err != nil {
		return nil, err
	}
	if c.returning {
		return c.value, nil
	}
	return runtime.Nil, nil
}
