package runtime

import (
	"errors"
	"fmt"
	"sort"

	"lox/interpreter-go/pkg/diag"
)

// ErrResolverInvariant is the panic payload raised when a resolved lookup
// does not find its binding. It signals an implementation bug.
var ErrResolverInvariant = errors.New("resolved binding missing from environment")

// Environment is one lexical scope. Children share their ancestors.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]Value),
		enclosing: enclosing,
	}
}

// Enclosing exposes the lexical parent (nil when global).
func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// Define inserts or overwrites a binding in this scope.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Ancestor walks exactly hops parent links.
func (e *Environment) Ancestor(hops int) *Environment {
	env := e
	for i := 0; i < hops; i++ {
		if env.enclosing == nil {
			panic(fmt.Errorf("%w: ancestor %d of a chain of depth %d", ErrResolverInvariant, hops, i))
		}
		env = env.enclosing
	}
	return env
}

func (e *Environment) GetAt(hops int, name string) Value {
	v, ok := e.Ancestor(hops).values[name]
	if !ok {
		panic(fmt.Errorf("%w: '%s' at distance %d", ErrResolverInvariant, name, hops))
	}
	return v
}

func (e *Environment) AssignAt(hops int, name string, value Value) {
	scope := e.Ancestor(hops)
	if _, ok := scope.values[name]; !ok {
		panic(fmt.Errorf("%w: '%s' at distance %d", ErrResolverInvariant, name, hops))
	}
	scope.values[name] = value
}

// Global returns the outermost scope of the chain.
func (e *Environment) Global() *Environment {
	env := e
	for env.enclosing != nil {
		env = env.enclosing
	}
	return env
}

// GetGlobal reads an unresolved name from the outermost scope. line is used
// for the error when the name is not defined.
func (e *Environment) GetGlobal(name string, line int) (Value, error) {
	if v, ok := e.Global().values[name]; ok {
		return v, nil
	}
	return nil, undefinedVariable(name, line)
}

func (e *Environment) AssignGlobal(name string, value Value, line int) error {
	global := e.Global()
	if _, ok := global.values[name]; !ok {
		return undefinedVariable(name, line)
	}
	global.values[name] = value
	return nil
}

// Lookup reads a binding in this scope only.
func (e *Environment) Lookup(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func undefinedVariable(name string, line int) error {
	return diag.NewRuntimeError(line, diag.UndefinedVariable, "Undefined variable '%s'.", name)
}
