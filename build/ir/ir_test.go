// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ir_test

import (
	"testing"

	"github.com/gx-org/cas/build/fmterr"
	"github.com/gx-org/cas/build/ir"
	"github.com/gx-org/cas/stdlib/ops"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/pkg/errors"
)

var (
	a = ir.NewVariable("a")
	b = ir.NewVariable("b")
	c = ir.NewVariable("c")
	d = ir.NewVariable("d")
	x = ir.NewVariable("x")
	y = ir.NewVariable("y")
)

func cst(v float64) ir.Expr {
	return ir.NewConst(v)
}

func named(t *testing.T, name string) ir.Expr {
	cst, err := ir.NamedConstant(name)
	if err != nil {
		t.Fatal(err)
	}
	return cst
}

func array(t *testing.T, elems ...ir.Expr) ir.Expr {
	arr, err := ir.NewArray(elems...)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return arr
}

func apply(t *testing.T, id ops.ID, x ir.Expr) ir.Expr {
	r, err := ir.Apply(id, x)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return r
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		expr ir.Expr
		want string
	}{
		{expr: ir.Add(x, ir.Zero), want: "x"},
		{expr: ir.Add(ir.Zero, x), want: "x"},
		{expr: ir.Add(cst(2), cst(3)), want: "5"},
		{expr: ir.Add(x, x), want: "2*x"},
		{expr: ir.Add(cst(1), x), want: "x + 1"},
		{expr: ir.Sub(x, x), want: "0"},
		{expr: ir.Sub(ir.Zero, x), want: "-x"},
		{expr: ir.Add(x, ir.Neg(y)), want: "x - y"},
		{expr: ir.Add(ir.Neg(x), ir.Neg(y)), want: "-(x + y)"},
		{expr: ir.Sub(x, ir.Neg(y)), want: "x + y"},
		{expr: ir.Add(a, ir.Mul(cst(-2), x)), want: "a - 2*x"},
		{expr: ir.Add(x, cst(-3)), want: "x - 3"},
		{expr: ir.Add(ir.Add(x, cst(1)), cst(2)), want: "x + 3"},
		{expr: ir.Sub(ir.Add(a, b), ir.Add(c, d)), want: "a + b - c - d"},
		{expr: ir.Add(ir.Sub(x, y), ir.Add(y, x)), want: "2*x"},
		{expr: ir.Sub(ir.Mul(cst(3), x), x), want: "2*x"},
		{expr: ir.Mul(x, ir.One), want: "x"},
		{expr: ir.Mul(x, ir.Zero), want: "0"},
		{expr: ir.Mul(x, cst(3)), want: "3*x"},
		{expr: ir.Mul(x, ir.MinusOne), want: "-x"},
		{expr: ir.Mul(cst(2), ir.Mul(cst(3), x)), want: "6*x"},
		{expr: ir.Mul(ir.Neg(x), ir.Neg(y)), want: "x*y"},
		{expr: ir.Mul(ir.Div(x, a), ir.Div(y, b)), want: "x*y/(a*b)"},
		{expr: ir.Mul(cst(3), ir.Div(x, cst(2))), want: "1.5*x"},
		{expr: ir.Mul(x, x), want: "x^2"},
		{expr: ir.Mul(ir.Pow(x, cst(2)), x), want: "x^3"},
		{expr: ir.Div(x, cst(2)), want: "x/2"},
		{expr: ir.Div(ir.Mul(cst(2), x), cst(2)), want: "x"},
		{expr: ir.Div(ir.Mul(a, b), b), want: "a"},
		{expr: ir.Div(x, x), want: "1"},
		{expr: ir.Div(ir.One, ir.Div(ir.One, x)), want: "x"},
		{expr: ir.Div(ir.Pow(x, cst(3)), x), want: "x^2"},
		{expr: ir.Pow(x, ir.One), want: "x"},
		{expr: ir.Pow(x, ir.Zero), want: "1"},
		{expr: ir.Pow(x, ir.MinusOne), want: "1/x"},
		{expr: ir.Pow(ir.Pow(x, cst(2)), cst(3)), want: "x^6"},
		{expr: ir.Pow(cst(2), cst(10)), want: "1024"},
		{expr: ir.Pow(ir.Neg(x), cst(2)), want: "-x^2"},
		{expr: ir.Neg(ir.Pow(x, cst(2))), want: "-(x^2)"},
		{expr: ir.Neg(ir.Sub(x, y)), want: "y - x"},
		{expr: ir.Neg(ir.Mul(cst(2), x)), want: "-2*x"},
		{expr: ir.Sub(a, ir.Add(b, c)), want: "a - b - c"},
		{expr: ir.Mul(a, ir.Add(b, c)), want: "a*(b + c)"},
		{expr: ir.Pow(ir.Add(a, b), c), want: "(a + b)^c"},
		{expr: ir.Sub(a, ir.Mul(b, c)), want: "a - b*c"},
		{expr: ir.Sum(x, y, x, cst(1), ir.Neg(y), cst(2)), want: "2*x + 3"},
		{expr: ir.Sum(), want: "0"},
		{expr: ir.Sum(ir.Neg(x), ir.Neg(y), cst(-1)), want: "-(x + y + 1)"},
		{expr: ir.MustApplyBinary("atan2", y, x), want: "atan2(y, x)"},
		{expr: ir.MustApplyBinary("max", cst(2), cst(3)), want: "3"},
		{expr: ir.NewAssign(ir.Add(x, cst(1)), y), want: "x + 1 = y"},
		{expr: ir.Add(ir.NewAssign(x, cst(2)), cst(1)), want: "x + 1 = 3"},
	}
	for i, test := range tests {
		if got := test.expr.String(); got != test.want {
			t.Errorf("test %d: got %s but want %s", i, got, test.want)
		}
	}
}

func TestIdentityLaws(t *testing.T) {
	exprs := []ir.Expr{
		x,
		cst(2.5),
		named(t, "pi"),
		ir.Add(x, y),
		ir.Mul(cst(3), ir.Pow(x, y)),
		apply(t, "sin", ir.Sub(x, y)),
		array(t, x, y, cst(1)),
	}
	for i, e := range exprs {
		if got := ir.Add(e, ir.Zero); !got.Equal(e) {
			t.Errorf("test %d: %s+0 = %s but want %s", i, e, got, e)
		}
		if got := ir.Mul(e, ir.One); !got.Equal(e) {
			t.Errorf("test %d: %s*1 = %s but want %s", i, e, got, e)
		}
		if got := ir.Pow(e, ir.One); !got.Equal(e) {
			t.Errorf("test %d: %s^1 = %s but want %s", i, e, got, e)
		}
		if got := ir.Neg(ir.Neg(e)); !got.Equal(e) {
			t.Errorf("test %d: -(-(%s)) = %s but want %s", i, e, got, e)
		}
		if e.Rank() > 0 {
			continue
		}
		if got := ir.Mul(e, ir.Zero); got != ir.Zero {
			t.Errorf("test %d: %s*0 = %s but want the interned 0", i, e, got)
		}
		if got := ir.Pow(e, ir.Zero); got != ir.One {
			t.Errorf("test %d: %s^0 = %s but want the interned 1", i, e, got)
		}
	}
	if got, want := ir.Add(cst(2), cst(3)), cst(5); !got.Equal(want) {
		t.Errorf("2+3 = %s but want %s", got, want)
	}
}

func TestNamedConstants(t *testing.T) {
	pi := named(t, "pi")
	tests := []struct {
		expr ir.Expr
		want string
	}{
		{expr: ir.Add(pi, pi), want: "2*pi"},
		{expr: ir.Add(pi, cst(1)), want: "pi + 1"},
		{expr: ir.Mul(cst(2), pi), want: "2*pi"},
		{expr: ir.Div(pi, cst(2)), want: "pi/2"},
	}
	for i, test := range tests {
		if got := test.expr.String(); got != test.want {
			t.Errorf("test %d: got %s but want %s", i, got, test.want)
		}
	}
	if _, err := ir.NamedConstant("x"); !errors.Is(err, fmterr.ErrUnknownOperator) {
		t.Errorf("x is not a named constant: got error %v", err)
	}
	if !ir.IsConstant(ir.Add(pi, cst(1)), true) {
		t.Errorf("pi+1 should be constant when including named constants")
	}
	if ir.IsConstant(ir.Add(pi, cst(1)), false) {
		t.Errorf("pi+1 should not be constant when excluding named constants")
	}
}

func TestInverseCancellation(t *testing.T) {
	tests := []struct {
		outer, inner ops.ID
		want         ir.Expr
	}{
		{outer: "sqrt", inner: "sqr", want: apply(t, "abs", x)},
		{outer: "sqr", inner: "sqrt", want: x},
		{outer: "ln", inner: "exp", want: x},
		{outer: "exp", inner: "ln", want: x},
		{outer: "sin", inner: "asin", want: x},
		// Inverse trigonometric functions assume the principal branch.
		{outer: "asin", inner: "sin", want: x},
		{outer: "acos", inner: "cos", want: x},
		{outer: "atan", inner: "tan", want: x},
		{outer: "cosh", inner: "acosh", want: x},
		{outer: "acosh", inner: "cosh", want: apply(t, "abs", x)},
		{outer: "-", inner: "-", want: x},
		{outer: "abs", inner: "-", want: apply(t, "abs", x)},
	}
	for i, test := range tests {
		got := apply(t, test.outer, apply(t, test.inner, x))
		if !got.Equal(test.want) {
			t.Errorf("test %d: %s(%s(x)) = %s but want %s", i, test.outer, test.inner, got, test.want)
		}
	}
	if _, err := ir.Apply("foo", x); !errors.Is(err, fmterr.ErrUnknownOperator) {
		t.Errorf("got error %v but want an unknown operator error", err)
	}
}

func TestArrays(t *testing.T) {
	vec := array(t, x, ir.Sub(cst(1), x))
	tests := []struct {
		expr ir.Expr
		want string
		rank int
	}{
		{
			expr: ir.Add(vec, ir.NewVector(1, 2, 3)),
			want: "[x + 1, 3 - x, x + 3]",
			rank: 1,
		},
		{
			expr: ir.Mul(array(t, a, b), cst(2)),
			want: "[2*a, 2*b]",
			rank: 1,
		},
		{
			expr: ir.MustApply("sin", array(t, a, b)),
			want: "[sin(a), sin(b)]",
			rank: 1,
		},
		{
			expr: ir.Add(array(t, array(t, cst(1), cst(2)), array(t, cst(3), cst(4))), x),
			want: "[[x + 1, x + 2], [x + 3, x + 4]]",
			rank: 2,
		},
		{
			expr: ir.Mul(array(t, array(t, a, b), array(t, c, d)), array(t, x, y)),
			want: "[[a*x, b*x], [c*y, d*y]]",
			rank: 2,
		},
		{
			expr: ir.NewAssign(array(t, a, b), array(t, x, y)),
			want: "[a = x, b = y]",
			rank: 1,
		},
		{
			expr: array(t),
			want: "0",
		},
		{
			expr: array(t, x),
			want: "x",
		},
	}
	for i, test := range tests {
		if got := test.expr.String(); got != test.want {
			t.Errorf("test %d: got %s but want %s", i, got, test.want)
		}
		if got := test.expr.Rank(); got != test.rank {
			t.Errorf("test %d: %s has rank %d but want %d", i, test.expr, got, test.rank)
		}
	}
}

func TestArrayErrors(t *testing.T) {
	row := array(t, a, b)
	matrix := array(t, row, row)
	if _, err := ir.NewArray(matrix, matrix); !errors.Is(err, fmterr.ErrUnsupportedRank) {
		t.Errorf("got error %v but want an unsupported rank error", err)
	}
	if _, err := ir.NewArray(row, array(t, a, b, c)); !errors.Is(err, fmterr.ErrDimensionMismatch) {
		t.Errorf("got error %v but want a dimension mismatch error", err)
	}
	if _, err := ir.NewArray(row, x); !errors.Is(err, fmterr.ErrDimensionMismatch) {
		t.Errorf("got error %v but want a dimension mismatch error", err)
	}
}

func TestEqualHash(t *testing.T) {
	tests := []struct {
		x, y  ir.Expr
		equal bool
	}{
		{x: ir.Add(x, cst(1)), y: ir.Add(x, cst(1)), equal: true},
		{x: ir.Add(x, cst(1)), y: ir.Add(cst(1), x), equal: true},
		{x: ir.Add(x, cst(1)), y: ir.Add(y, cst(1))},
		{x: ir.NewVariable("pi"), y: named(t, "pi")},
		{x: cst(0), y: cst(-1 * 0.0), equal: true},
		{x: ir.NewVector(1, 2), y: ir.NewVector(1, 2), equal: true},
		{x: ir.NewVector(1, 2), y: ir.NewVector(1, 2, 3)},
	}
	for i, test := range tests {
		if got := test.x.Equal(test.y); got != test.equal {
			t.Errorf("test %d: %s.Equal(%s) = %v but want %v", i, test.x, test.y, got, test.equal)
		}
		if test.equal && test.x.Hash() != test.y.Hash() {
			t.Errorf("test %d: %s and %s are equal but have different hashes", i, test.x, test.y)
		}
	}
}

func TestSimplify(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cas.ir")
	defer teardown()
	e := ir.Add(ir.Mul(x, y), cst(1))
	sub, err := ir.Substitute(e, map[string]ir.Expr{"y": x})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := sub.String(), "x^2 + 1"; got != want {
		t.Errorf("got %s but want %s", got, want)
	}
	simplified, err := ir.Simplify(sub)
	if err != nil {
		t.Fatal(err)
	}
	if !simplified.Equal(sub) {
		t.Errorf("simplify changed %s into %s", sub, simplified)
	}
	if _, err := ir.Simplify(sub, ir.MaxIterations(0)); !errors.Is(err, fmterr.ErrIterationLimit) {
		t.Errorf("got error %v but want an iteration limit error", err)
	}
}

func TestFreeVariables(t *testing.T) {
	e := ir.Add(ir.Mul(y, named(t, "e")), apply(t, "sin", ir.Mul(x, y)))
	vars := ir.FreeVariables(e)
	var got []string
	for _, v := range vars {
		got = append(got, v.Name())
	}
	want := []string{"x", "y"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got free variables %v but want %v", got, want)
	}
}

func TestFunction(t *testing.T) {
	body := ir.Add(x, cst(1))
	f, err := ir.NewFunction("f", body, x)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := f.String(), "f(x) = x + 1"; got != want {
		t.Errorf("got %s but want %s", got, want)
	}
	if _, err := ir.NewFunction("f", body, x, y); !errors.Is(err, fmterr.ErrMissingParameter) {
		t.Errorf("got error %v but want a missing parameter error", err)
	}
	if _, err := ir.NewFunction("f", body, x, x, y); !errors.Is(err, fmterr.ErrMissingParameter) {
		t.Errorf("got error %v but want a missing parameter error", err)
	}
}
