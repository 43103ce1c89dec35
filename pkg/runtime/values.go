package runtime

import (
	"fmt"
	"math"
	"strconv"

	"lox/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindFunction
	KindNativeFunction
	KindClass
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// Nil is the only nil value.
var Nil Value = NilValue{}

// FromLiteral converts a token literal payload into a runtime value.
func FromLiteral(lit any) Value {
	switch v := lit.(type) {
	case nil:
		return Nil
	case bool:
		return BoolValue{Val: v}
	case float64:
		return NumberValue{Val: v}
	case string:
		return StringValue{Val: v}
	default:
		panic(fmt.Sprintf("runtime: unsupported literal %T", lit))
	}
}

//-----------------------------------------------------------------------------
// Callables
//-----------------------------------------------------------------------------

// FunctionValue is a user function or method together with the environment
// it closes over.
type FunctionValue struct {
	Declaration *ast.FunctionStatement
	Closure     *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

func (v *FunctionValue) Name() string { return v.Declaration.Name.Lexeme }

func (v *FunctionValue) Arity() int { return len(v.Declaration.Params) }

// Bind returns a copy of the method whose closure is a fresh scope holding
// `this`. The result can be stored and called later.
func (v *FunctionValue) Bind(instance *InstanceValue) *FunctionValue {
	env := NewEnvironment(v.Closure)
	env.Define("this", instance)
	return &FunctionValue{Declaration: v.Declaration, Closure: env}
}

// NativeFunctionValue is a host-provided function.
type NativeFunctionValue struct {
	Name  string
	Arity int
	Impl  func(args []Value) (Value, error)
}

func (v *NativeFunctionValue) Kind() Kind { return KindNativeFunction }

//-----------------------------------------------------------------------------
// Classes and instances
//-----------------------------------------------------------------------------

type ClassValue struct {
	Name    string
	Methods map[string]*FunctionValue
}

func (v *ClassValue) Kind() Kind { return KindClass }

func NewClass(name string, methods map[string]*FunctionValue) *ClassValue {
	if methods == nil {
		methods = make(map[string]*FunctionValue)
	}
	return &ClassValue{Name: name, Methods: methods}
}

func (v *ClassValue) FindMethod(name string) (*FunctionValue, bool) {
	m, ok := v.Methods[name]
	return m, ok
}

// InstanceValue holds per-instance fields, created lazily on assignment.
type InstanceValue struct {
	Class  *ClassValue
	Fields map[string]Value
}

func (v *InstanceValue) Kind() Kind { return KindInstance }

func NewInstance(class *ClassValue) *InstanceValue {
	return &InstanceValue{Class: class, Fields: make(map[string]Value)}
}

// Get looks up a field first and then a method, which comes back bound to
// the instance.
func (v *InstanceValue) Get(name string) (Value, bool) {
	if field, ok := v.Fields[name]; ok {
		return field, true
	}
	if method, ok := v.Class.FindMethod(name); ok {
		return method.Bind(v), true
	}
	return nil, false
}

func (v *InstanceValue) Set(name string, value Value) {
	v.Fields[name] = value
}

//-----------------------------------------------------------------------------
// Helpers
//-----------------------------------------------------------------------------

// IsTruthy: nil and false are falsy, everything else is truthy.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case nil, NilValue:
		return false
	case BoolValue:
		return val.Val
	default:
		return true
	}
}

// Equal never fails. Values of different kinds are unequal; scalars compare
// by value and reference values by identity.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.Val == bv.Val
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	case *FunctionValue:
		bv, ok := b.(*FunctionValue)
		return ok && av == bv
	case *NativeFunctionValue:
		bv, ok := b.(*NativeFunctionValue)
		return ok && av == bv
	case *ClassValue:
		bv, ok := b.(*ClassValue)
		return ok && av == bv
	case *InstanceValue:
		bv, ok := b.(*InstanceValue)
		return ok && av == bv
	default:
		return false
	}
}

// Stringify renders a value the way `print` shows it.
func Stringify(v Value) string {
	switch val := v.(type) {
	case nil, NilValue:
		return "nil"
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case NumberValue:
		return FormatNumber(val.Val)
	case StringValue:
		return val.Val
	case *FunctionValue:
		return "<fn " + val.Name() + ">"
	case *NativeFunctionValue:
		return "<native fn>"
	case *ClassValue:
		return val.Name
	case *InstanceValue:
		return val.Class.Name + " instance"
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}

// FormatNumber prints the shortest decimal that round-trips, without a
// trailing ".0" for integral values.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "nan"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
