package runtime

import (
	"errors"
	"math"
	"testing"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
)

func TestEnvironmentHopAccess(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", NumberValue{Val: 1})
	outer := NewEnvironment(global)
	outer.Define("a", NumberValue{Val: 2})
	inner := NewEnvironment(outer)

	if got := inner.GetAt(1, "a"); !Equal(got, NumberValue{Val: 2}) {
		t.Fatalf("expected shadowing binding 2, got %s", Stringify(got))
	}
	if got := inner.GetAt(2, "a"); !Equal(got, NumberValue{Val: 1}) {
		t.Fatalf("expected global binding 1, got %s", Stringify(got))
	}
	inner.AssignAt(2, "a", StringValue{Val: "g"})
	if got, _ := global.Lookup("a"); !Equal(got, StringValue{Val: "g"}) {
		t.Fatalf("assign at distance 2 should mutate the global scope")
	}
	if inner.Global() != global || inner.Ancestor(1) != outer || inner.Enclosing() != outer {
		t.Fatalf("unexpected chain links")
	}
}

func TestEnvironmentMissingResolvedBindingPanics(t *testing.T) {
	env := NewEnvironment(NewEnvironment(nil))
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrResolverInvariant) {
			t.Fatalf("expected resolver invariant panic, got %v", r)
		}
	}()
	env.GetAt(1, "ghost")
}

func TestEnvironmentGlobalAccess(t *testing.T) {
	global := NewEnvironment(nil)
	block := NewEnvironment(NewEnvironment(global))

	_, err := block.GetGlobal("x", 7)
	var rtErr *diag.RuntimeError
	if !errors.As(err, &rtErr) || rtErr.Kind != diag.UndefinedVariable {
		t.Fatalf("expected undefined variable error, got %v", err)
	}
	if err.Error() != "[line 7] Undefined variable 'x'." {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if err := block.AssignGlobal("x", Nil, 8); err == nil {
		t.Fatalf("assigning an undeclared global must fail")
	}

	global.Define("x", BoolValue{Val: true})
	if err := block.AssignGlobal("x", NumberValue{Val: 3}, 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := block.GetGlobal("x", 10)
	if err != nil || !Equal(v, NumberValue{Val: 3}) {
		t.Fatalf("expected 3, got %v (%v)", v, err)
	}
	if keys := global.Keys(); len(keys) != 1 || keys[0] != "x" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestTruthiness(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Nil, false},
		{BoolValue{Val: false}, false},
		{BoolValue{Val: true}, true},
		{NumberValue{Val: 0}, true},
		{StringValue{Val: ""}, true},
		{NewClass("A", nil), true},
	}
	for _, tc := range cases {
		if got := IsTruthy(tc.v); got != tc.want {
			t.Fatalf("IsTruthy(%s) = %v", Stringify(tc.v), got)
		}
	}
}

func TestEquality(t *testing.T) {
	class := NewClass("A", nil)
	a, b := NewInstance(class), NewInstance(class)
	cases := []struct {
		l, r Value
		want bool
	}{
		{Nil, Nil, true},
		{Nil, BoolValue{Val: false}, false},
		{NumberValue{Val: 0}, StringValue{Val: "0"}, false},
		{NumberValue{Val: 1.5}, NumberValue{Val: 1.5}, true},
		{StringValue{Val: "ab"}, StringValue{Val: "ab"}, true},
		{BoolValue{Val: true}, BoolValue{Val: true}, true},
		{a, a, true},
		{a, b, false},
		{class, class, true},
		{NumberValue{Val: math.NaN()}, NumberValue{Val: math.NaN()}, false},
	}
	for i, tc := range cases {
		if got := Equal(tc.l, tc.r); got != tc.want {
			t.Fatalf("case %d: Equal(%s, %s) = %v", i, Stringify(tc.l), Stringify(tc.r), got)
		}
	}
}

func TestStringify(t *testing.T) {
	fn := &FunctionValue{Declaration: ast.Fn("greet", nil), Closure: NewEnvironment(nil)}
	class := NewClass("Point", nil)
	tenth, fifth := 0.1, 0.2
	cases := []struct {
		v    Value
		want string
	}{
		{Nil, "nil"},
		{BoolValue{Val: true}, "true"},
		{NumberValue{Val: 3}, "3"},
		{NumberValue{Val: -0.5}, "-0.5"},
		{NumberValue{Val: 1e21}, "1000000000000000000000"},
		{NumberValue{Val: tenth + fifth}, "0.30000000000000004"},
		{NumberValue{Val: math.Inf(1)}, "inf"},
		{NumberValue{Val: math.Inf(-1)}, "-inf"},
		{NumberValue{Val: math.NaN()}, "nan"},
		{StringValue{Val: "hi"}, "hi"},
		{fn, "<fn greet>"},
		{&NativeFunctionValue{Name: "clock"}, "<native fn>"},
		{class, "Point"},
		{NewInstance(class), "Point instance"},
	}
	for _, tc := range cases {
		if got := Stringify(tc.v); got != tc.want {
			t.Fatalf("Stringify = %q, want %q", got, tc.want)
		}
	}
}

func TestInstanceFieldsShadowMethodsAndBind(t *testing.T) {
	closure := NewEnvironment(nil)
	method := &FunctionValue{Declaration: ast.Fn("speak", nil), Closure: closure}
	class := NewClass("Dog", map[string]*FunctionValue{"speak": method})
	inst := NewInstance(class)

	got, ok := inst.Get("speak")
	if !ok {
		t.Fatalf("expected method lookup to succeed")
	}
	bound, ok := got.(*FunctionValue)
	if !ok || bound == method {
		t.Fatalf("expected a freshly bound method, got %#v", got)
	}
	if bound.Closure.Enclosing() != closure {
		t.Fatalf("bound closure should be parented on the method closure")
	}
	if this := bound.Closure.GetAt(0, "this"); this != Value(inst) {
		t.Fatalf("bound closure should hold the receiver")
	}

	inst.Set("speak", StringValue{Val: "field"})
	if got, _ := inst.Get("speak"); !Equal(got, StringValue{Val: "field"}) {
		t.Fatalf("fields take precedence over methods")
	}
	if _, ok := inst.Get("missing"); ok {
		t.Fatalf("expected missing property")
	}
}
