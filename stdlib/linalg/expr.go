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

package linalg

import (
	"github.com/gx-org/cas/build/fmterr"
	"github.com/gx-org/cas/build/ir"
)

// ExprField is the field of symbolic expressions.
// Results are built with the rewrite constructors of the ir package.
type ExprField struct{}

var _ Field[ir.Expr] = ExprField{}

// Zero returns the literal 0.
func (ExprField) Zero() ir.Expr { return ir.Zero }

// Add returns x+y.
func (ExprField) Add(x, y ir.Expr) ir.Expr { return ir.Add(x, y) }

// Sub returns x-y.
func (ExprField) Sub(x, y ir.Expr) ir.Expr { return ir.Sub(x, y) }

// Mul returns x*y.
func (ExprField) Mul(x, y ir.Expr) ir.Expr { return ir.Mul(x, y) }

// Div returns x/y.
func (ExprField) Div(x, y ir.Expr) ir.Expr { return ir.Div(x, y) }

// Neg returns -x.
func (ExprField) Neg(x ir.Expr) ir.Expr { return ir.Neg(x) }

func vectorOf(e ir.Expr) ([]ir.Expr, error) {
	if e.Rank() > 1 {
		return nil, fmterr.Errorf(fmterr.ErrDimensionMismatch, "%s is not a vector", e)
	}
	return ir.Elements(e), nil
}

func matrixOf(e ir.Expr) ([][]ir.Expr, error) {
	if e.Rank() != 2 {
		return nil, fmterr.Errorf(fmterr.ErrDimensionMismatch, "%s is not a matrix", e)
	}
	return ir.Rows(e), nil
}

func fromVector(v []ir.Expr) (ir.Expr, error) {
	return ir.NewArray(v...)
}

func fromMatrix(m [][]ir.Expr) (ir.Expr, error) {
	rows := make([]ir.Expr, len(m))
	for i, row := range m {
		var err error
		if rows[i], err = ir.NewArray(row...); err != nil {
			return nil, err
		}
	}
	return ir.NewArray(rows...)
}

// TransposeExpr returns the transpose of a matrix.
// Scalars and vectors are returned unchanged.
func TransposeExpr(e ir.Expr) (ir.Expr, error) {
	if e.Rank() < 2 {
		return e, nil
	}
	t, err := Transpose(ir.Rows(e))
	if err != nil {
		return nil, err
	}
	return fromMatrix(t)
}

// DotExpr returns the dot product of two vectors.
func DotExpr(x, y ir.Expr) (ir.Expr, error) {
	xs, err := vectorOf(x)
	if err != nil {
		return nil, err
	}
	ys, err := vectorOf(y)
	if err != nil {
		return nil, err
	}
	return Dot[ir.Expr](ExprField{}, xs, ys)
}

// OuterExpr returns the outer product of two vectors.
func OuterExpr(x, y ir.Expr) (ir.Expr, error) {
	xs, err := vectorOf(x)
	if err != nil {
		return nil, err
	}
	ys, err := vectorOf(y)
	if err != nil {
		return nil, err
	}
	return fromMatrix(Outer[ir.Expr](ExprField{}, xs, ys))
}

// CrossExpr returns the cross product of two vectors.
// The product of planar vectors is a scalar.
func CrossExpr(x, y ir.Expr) (ir.Expr, error) {
	xs, err := vectorOf(x)
	if err != nil {
		return nil, err
	}
	ys, err := vectorOf(y)
	if err != nil {
		return nil, err
	}
	r, err := Cross[ir.Expr](ExprField{}, xs, ys)
	if err != nil {
		return nil, err
	}
	return fromVector(r)
}

// MatMulExpr returns the product of a matrix with a vector or with another matrix.
func MatMulExpr(a, b ir.Expr) (ir.Expr, error) {
	am, err := matrixOf(a)
	if err != nil {
		return nil, err
	}
	if b.Rank() < 2 {
		r, err := MatVec[ir.Expr](ExprField{}, am, ir.Elements(b))
		if err != nil {
			return nil, err
		}
		return fromVector(r)
	}
	r, err := MatMul[ir.Expr](ExprField{}, am, ir.Rows(b))
	if err != nil {
		return nil, err
	}
	return fromMatrix(r)
}

// SolveExpr returns x such that a*x = b where b is a vector or a matrix.
// A scalar system a*x = b is solved as b/a.
func SolveExpr(a, b ir.Expr) (ir.Expr, error) {
	if a.Rank() == 0 && b.Rank() == 0 {
		return ir.Div(b, a), nil
	}
	am, err := matrixOf(a)
	if err != nil {
		return nil, err
	}
	if b.Rank() < 2 {
		r, err := Solve[ir.Expr](ExprField{}, am, ir.Elements(b))
		if err != nil {
			return nil, err
		}
		return fromVector(r)
	}
	r, err := SolveMatrix[ir.Expr](ExprField{}, am, ir.Rows(b))
	if err != nil {
		return nil, err
	}
	return fromMatrix(r)
}
