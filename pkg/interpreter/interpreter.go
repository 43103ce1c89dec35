// Package interpreter evaluates resolved Lox programs by walking the tree.
package interpreter

import (
	"io"
	"os"
	"time"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/runtime"
)

// DefaultMaxCallDepth bounds nested calls before a Stack overflow error.
const DefaultMaxCallDepth = 1024

// Interpreter drives evaluation of Lox statements. The global environment
// persists across Interpret calls. It is not safe for concurrent use.
type Interpreter struct {
	global *runtime.Environment
	locals resolver.Locals

	out          io.Writer
	clock        func() time.Time
	maxCallDepth int
	callDepth    int
}

type Option func(*Interpreter)

// WithOutput redirects `print` (stdout by default).
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithClock replaces the time source behind the clock() native.
func WithClock(clock func() time.Time) Option {
	return func(i *Interpreter) { i.clock = clock }
}

// WithMaxCallDepth sets the call nesting limit; n <= 0 keeps the default.
func WithMaxCallDepth(n int) Option {
	return func(i *Interpreter) {
		if n > 0 {
			i.maxCallDepth = n
		}
	}
}

// New returns an interpreter whose global environment holds the natives.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		global:       runtime.NewEnvironment(nil),
		locals:       make(resolver.Locals),
		out:          os.Stdout,
		clock:        time.Now,
		maxCallDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.defineNatives()
	return i
}

// Globals returns the interpreter's global environment.
func (i *Interpreter) Globals() *runtime.Environment {
	return i.global
}

// Interpret runs statements in order against the global environment. The
// first runtime error stops the run and is returned as *diag.RuntimeError.
// locals must come from resolving exactly these statements. They are kept
// for the interpreter's lifetime because closures from an earlier run may
// still be called, so the table grows with each distinct program run.
// Running the same statements again adds nothing.
func (i *Interpreter) Interpret(statements []ast.Statement, locals resolver.Locals) error {
	i.locals.Merge(locals)
	i.callDepth = 0
	for _, stmt := range statements {
		if _, err := i.executeStatement(stmt, i.global); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) defineNatives() {
	i.global.Define("clock", &runtime.NativeFunctionValue{
		Name:  "clock",
		Arity: 0,
		Impl: func(args []runtime.Value) (runtime.Value, error) {
			now := i.clock()
			return runtime.NumberValue{Val: float64(now.UnixNano()) / float64(time.Second)}, nil
		},
	})
}
