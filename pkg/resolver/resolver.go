// Package resolver computes, before anything runs, how many scopes separate
// each variable reference from the declaration it refers to.
package resolver

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
)

// Locals maps a Variable, Assign or This node to its hop count. The key is
// the node pointer, so two occurrences of one name are separate entries. A
// reference without an entry is looked up in the global scope at run time.
type Locals map[ast.Expression]int

// Merge copies other into l. Entries never collide because keys are nodes.
func (l Locals) Merge(other Locals) {
	for expr, hops := range other {
		l[expr] = hops
	}
}

type functionType int

const (
	functionNone functionType = iota
	functionPlain
	functionMethod
)

type classType int

const (
	classNone classType = iota
	classClass
)

// scope maps a name to whether its initializer has finished.
type scope map[string]bool

type Resolver struct {
	scopes   []scope
	locals   Locals
	function functionType
	class    classType
}

// New returns a resolver whose scope stack holds only the global scope.
// Global names are tracked for declaration checks but never recorded.
func New() *Resolver {
	return &Resolver{
		scopes: []scope{{}},
		locals: make(Locals),
	}
}

// Resolve walks statements once and stops at the first static error.
func Resolve(statements []ast.Statement) (Locals, error) {
	r := New()
	if err := r.resolveStatements(statements); err != nil {
		return nil, err
	}
	return r.locals, nil
}

func staticError(tok *ast.Token, msg string) error {
	return &diag.StaticError{Line: tok.Line, Message: msg}
}

//-----------------------------------------------------------------------------
// Scope handling
//-----------------------------------------------------------------------------

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) innermost() scope {
	return r.scopes[len(r.scopes)-1]
}

func (r *Resolver) declare(name *ast.Token) error {
	sc := r.innermost()
	if _, exists := sc[name.Lexeme]; exists {
		return staticError(name, "Already a variable with this name declared in this scope.")
	}
	sc[name.Lexeme] = false
	return nil
}

func (r *Resolver) define(name *ast.Token) {
	r.innermost()[name.Lexeme] = true
}

// resolveLocal records the distance to the nearest scope declaring name.
// The global scope at index 0 is left to dynamic lookup.
func (r *Resolver) resolveLocal(expr ast.Expression, name string) {
	for i := len(r.scopes) - 1; i > 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

func (r *Resolver) resolveStatements(statements []ast.Statement) error {
	for _, stmt := range statements {
		if err := r.resolveStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) resolveStatement(node ast.Statement) error {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		return r.resolveExpression(n.Expression)
	case *ast.PrintStatement:
		return r.resolveExpression(n.Expression)
	case *ast.VarStatement:
		if err := r.declare(n.Name); err != nil {
			return err
		}
		if n.Initializer != nil {
			if err := r.resolveExpression(n.Initializer); err != nil {
				return err
			}
		}
		r.define(n.Name)
		return nil
	case *ast.BlockStatement:
		r.beginScope()
		defer r.endScope()
		return r.resolveStatements(n.Statements)
	case *ast.IfStatement:
		if err := r.resolveExpression(n.Condition); err != nil {
			return err
		}
		if err := r.resolveStatement(n.Then); err != nil {
			return err
		}
		if n.Else != nil {
			return r.resolveStatement(n.Else)
		}
		return nil
	case *ast.WhileStatement:
		if err := r.resolveExpression(n.Condition); err != nil {
			return err
		}
		return r.resolveStatement(n.Body)
	case *ast.FunctionStatement:
		if err := r.declare(n.Name); err != nil {
			return err
		}
		r.define(n.Name)
		return r.resolveFunction(n, functionPlain)
	case *ast.ClassStatement:
		return r.resolveClass(n)
	case *ast.ReturnStatement:
		if r.function == functionNone {
			return staticError(n.Keyword, "Can't return from top-level code.")
		}
		if n.Value != nil {
			return r.resolveExpression(n.Value)
		}
		return nil
	default:
		return fmt.Errorf("resolver: unsupported statement %T", node)
	}
}

// resolveFunction resolves parameters and body in one scope; the interpreter
// runs the body directly in the call environment to match.
func (r *Resolver) resolveFunction(fn *ast.FunctionStatement, kind functionType) error {
	enclosing := r.function
	r.function = kind
	defer func() { r.function = enclosing }()

	r.beginScope()
	defer r.endScope()
	for _, param := range fn.Params {
		if err := r.declare(param); err != nil {
			return err
		}
		r.define(param)
	}
	return r.resolveStatements(fn.Body)
}

func (r *Resolver) resolveClass(cls *ast.ClassStatement) error {
	enclosing := r.class
	r.class = classClass
	defer func() { r.class = enclosing }()

	if err := r.declare(cls.Name); err != nil {
		return err
	}
	r.define(cls.Name)

	r.beginScope()
	defer r.endScope()
	r.innermost()["this"] = true
	for _, method := range cls.Methods {
		if err := r.resolveFunction(method, functionMethod); err != nil {
			return err
		}
	}
	return nil
}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

func (r *Resolver) resolveExpression(node ast.Expression) error {
	switch n := node.(type) {
	case *ast.LiteralExpression:
		return nil
	case *ast.GroupingExpression:
		return r.resolveExpression(n.Expression)
	case *ast.UnaryExpression:
		return r.resolveExpression(n.Right)
	case *ast.BinaryExpression:
		return r.resolvePair(n.Left, n.Right)
	case *ast.LogicalExpression:
		return r.resolvePair(n.Left, n.Right)
	case *ast.VariableExpression:
		if defined, declared := r.innermost()[n.Name.Lexeme]; declared && !defined {
			return staticError(n.Name, "Can't read local variable in its own initializer.")
		}
		r.resolveLocal(n, n.Name.Lexeme)
		return nil
	case *ast.AssignExpression:
		if err := r.resolveExpression(n.Value); err != nil {
			return err
		}
		r.resolveLocal(n, n.Name.Lexeme)
		return nil
	case *ast.CallExpression:
		if err := r.resolveExpression(n.Callee); err != nil {
			return err
		}
		for _, arg := range n.Arguments {
			if err := r.resolveExpression(arg); err != nil {
				return err
			}
		}
		return nil
	case *ast.GetExpression:
		return r.resolveExpression(n.Object)
	case *ast.SetExpression:
		return r.resolvePair(n.Value, n.Object)
	case *ast.ThisExpression:
		if r.class == classNone {
			return staticError(n.Keyword, "Can't use 'this' outside of a class.")
		}
		r.resolveLocal(n, "this")
		return nil
	default:
		return fmt.Errorf("resolver: unsupported expression %T", node)
	}
}

func (r *Resolver) resolvePair(first, second ast.Expression) error {
	if err := r.resolveExpression(first); err != nil {
		return err
	}
	return r.resolveExpression(second)
}
