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

package linalg_test

import (
	"math"
	"testing"

	"github.com/gx-org/cas/build/fmterr"
	"github.com/gx-org/cas/build/ir"
	"github.com/gx-org/cas/build/parser"
	"github.com/gx-org/cas/stdlib/linalg"
	"github.com/pkg/errors"
)

func TestExpr(t *testing.T) {
	tests := []struct {
		name string
		f    func(x, y ir.Expr) (ir.Expr, error)
		x, y string
		want string
	}{
		{
			name: "dot",
			f:    linalg.DotExpr,
			x:    "[a, b]",
			y:    "[x, y]",
			want: "a*x + b*y",
		},
		{
			name: "cross2",
			f:    linalg.CrossExpr,
			x:    "[a, b]",
			y:    "[x, y]",
			want: "a*y - b*x",
		},
		{
			name: "cross1x2",
			f:    linalg.CrossExpr,
			x:    "w",
			y:    "[x, y]",
			want: "[-(w*y), w*x]",
		},
		{
			name: "outer",
			f:    linalg.OuterExpr,
			x:    "[a, b]",
			y:    "[x, y]",
			want: "[[a*x, a*y], [b*x, b*y]]",
		},
		{
			name: "matvec",
			f:    linalg.MatMulExpr,
			x:    "[[a, b], [c, d]]",
			y:    "[x, y]",
			want: "[a*x + b*y, c*x + d*y]",
		},
		{
			name: "matmul",
			f:    linalg.MatMulExpr,
			x:    "[[a, 0], [0, b]]",
			y:    "[[x, y], [y, x]]",
			want: "[[a*x, a*y], [b*y, b*x]]",
		},
		{
			name: "solve",
			f:    linalg.SolveExpr,
			x:    "[[2, 0], [0, 4]]",
			y:    "[x, y]",
			want: "[x/2, y/4]",
		},
		{
			name: "solveScalar",
			f:    linalg.SolveExpr,
			x:    "a",
			y:    "b",
			want: "b/a",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.f(parser.MustParse(test.x), parser.MustParse(test.y))
			if err != nil {
				t.Fatal(err)
			}
			if got.String() != test.want {
				t.Errorf("%s(%s, %s) = %s but want %s", test.name, test.x, test.y, got, test.want)
			}
		})
	}
}

func TestTransposeExpr(t *testing.T) {
	got, err := linalg.TransposeExpr(parser.MustParse("[[a, b], [c, d]]"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "[[a, c], [b, d]]"; got.String() != want {
		t.Errorf("got %s but want %s", got, want)
	}
}

func TestExprErrors(t *testing.T) {
	if _, err := linalg.DotExpr(parser.MustParse("[a, b]"), parser.MustParse("[x, y, z]")); !errors.Is(err, fmterr.ErrLengthMismatch) {
		t.Errorf("got error %v but want %v", err, fmterr.ErrLengthMismatch)
	}
	if _, err := linalg.MatMulExpr(parser.MustParse("x"), parser.MustParse("y")); !errors.Is(err, fmterr.ErrDimensionMismatch) {
		t.Errorf("got error %v but want %v", err, fmterr.ErrDimensionMismatch)
	}
	if _, err := linalg.DotExpr(parser.MustParse("[[a, b], [c, d]]"), parser.MustParse("[x, y]")); !errors.Is(err, fmterr.ErrDimensionMismatch) {
		t.Errorf("got error %v but want %v", err, fmterr.ErrDimensionMismatch)
	}
}

func TestSolveSymbolicMatchesNumeric(t *testing.T) {
	rows := [][]float64{{4, 1, 0}, {2, 3, 1}, {0, 1, 5}}
	rhs := []float64{1, 2, 3}
	a, err := ir.NewMatrix(rows...)
	if err != nil {
		t.Fatal(err)
	}
	sym, err := linalg.SolveExpr(a, ir.NewVector(rhs...))
	if err != nil {
		t.Fatal(err)
	}
	num, err := linalg.Matrix[float64](rows).Solve(rhs)
	if err != nil {
		t.Fatal(err)
	}
	for i, el := range ir.Elements(sym) {
		c, ok := el.(*ir.Const)
		if !ok {
			t.Fatalf("element %d is %s: not a literal", i, el)
		}
		if math.Abs(c.Value()-num[i]) > 1e-12 {
			t.Errorf("element %d: symbolic solve gives %v but numeric solve gives %v", i, c.Value(), num[i])
		}
	}
}
