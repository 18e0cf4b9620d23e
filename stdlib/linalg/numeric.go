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
	"go/token"

	"github.com/gx-org/cas/build/fmterr"
	"github.com/gx-org/cas/fmt/fmtarray"
	"github.com/gx-org/cas/golang/backend/kernels"
	"golang.org/x/exp/constraints"
)

type (
	// Vector of floating point numbers.
	Vector[T constraints.Float] []T

	// Matrix of floating point numbers stored as a slice of rows.
	Matrix[T constraints.Float] [][]T

	numField[T constraints.Float] struct{}
)

var _ Field[float64] = numField[float64]{}

func (numField[T]) Zero() T      { return 0 }
func (numField[T]) Add(x, y T) T { return x + y }
func (numField[T]) Sub(x, y T) T { return x - y }
func (numField[T]) Mul(x, y T) T { return x * y }
func (numField[T]) Div(x, y T) T { return x / y }
func (numField[T]) Neg(x T) T    { return -x }

// NewMatrix returns a matrix given its rows.
// All rows must have the same length.
func NewMatrix[T constraints.Float](rows ...[]T) (Matrix[T], error) {
	if _, _, err := checkMatrix(rows); err != nil {
		return nil, err
	}
	return Matrix[T](rows), nil
}

// Identity returns the n x n identity matrix.
func Identity[T constraints.Float](n int) Matrix[T] {
	m := make(Matrix[T], n)
	for i := range m {
		m[i] = make([]T, n)
		m[i][i] = 1
	}
	return m
}

func (v Vector[T]) array() *kernels.Array[T] {
	return kernels.ToArray([]T(v), []int{len(v)})
}

func vectorOfArray[T constraints.Float](a *kernels.Array[T]) Vector[T] {
	return Vector[T](a.Flat())
}

func (v Vector[T]) apply(op token.Token, w Vector[T]) (Vector[T], error) {
	r, err := kernels.Apply(op, v.array(), w.array())
	if err != nil {
		return nil, err
	}
	return vectorOfArray(r), nil
}

// Add returns v+w. A shorter vector is tiled to the length of the longer one.
func (v Vector[T]) Add(w Vector[T]) (Vector[T], error) { return v.apply(token.ADD, w) }

// Sub returns v-w. A shorter vector is tiled to the length of the longer one.
func (v Vector[T]) Sub(w Vector[T]) (Vector[T], error) { return v.apply(token.SUB, w) }

// Mul returns the elementwise product of v and w.
func (v Vector[T]) Mul(w Vector[T]) (Vector[T], error) { return v.apply(token.MUL, w) }

// Div returns the elementwise quotient of v and w.
func (v Vector[T]) Div(w Vector[T]) (Vector[T], error) { return v.apply(token.QUO, w) }

// Scale returns s*v.
func (v Vector[T]) Scale(s T) Vector[T] {
	r, err := kernels.Apply(token.MUL, kernels.ToAtom(s), v.array())
	if err != nil {
		panic(fmterr.Internal(err))
	}
	return vectorOfArray(r)
}

// Dot returns the dot product of v and w.
func (v Vector[T]) Dot(w Vector[T]) (T, error) {
	return Dot[T](numField[T]{}, v, w)
}

// Cross returns the cross product of v and w.
func (v Vector[T]) Cross(w Vector[T]) (Vector[T], error) {
	return Cross[T](numField[T]{}, v, w)
}

// Outer returns the outer product of v and w.
func (v Vector[T]) Outer(w Vector[T]) Matrix[T] {
	return Outer[T](numField[T]{}, v, w)
}

// String representation of the vector.
func (v Vector[T]) String() string {
	return fmtarray.SDataPrint([]T(v), []int{len(v)})
}

func (m Matrix[T]) array() (*kernels.Array[T], error) {
	numRows, numCols, err := checkMatrix[T](m)
	if err != nil {
		return nil, err
	}
	data := make([]T, 0, numRows*numCols)
	for _, row := range m {
		data = append(data, row...)
	}
	return kernels.ToArray(data, []int{numRows, numCols}), nil
}

func matrixOfArray[T constraints.Float](a *kernels.Array[T]) Matrix[T] {
	m := make(Matrix[T], a.Len())
	for i := range m {
		m[i] = a.Slice(i).Flat()
	}
	return m
}

func (m Matrix[T]) apply(op token.Token, n Matrix[T]) (Matrix[T], error) {
	x, err := m.array()
	if err != nil {
		return nil, err
	}
	y, err := n.array()
	if err != nil {
		return nil, err
	}
	r, err := kernels.Apply(op, x, y)
	if err != nil {
		return nil, err
	}
	return matrixOfArray(r), nil
}

// Add returns m+n. Rows and columns of a smaller matrix are tiled.
func (m Matrix[T]) Add(n Matrix[T]) (Matrix[T], error) { return m.apply(token.ADD, n) }

// Sub returns m-n. Rows and columns of a smaller matrix are tiled.
func (m Matrix[T]) Sub(n Matrix[T]) (Matrix[T], error) { return m.apply(token.SUB, n) }

// Mul returns the elementwise product of m and n.
func (m Matrix[T]) Mul(n Matrix[T]) (Matrix[T], error) { return m.apply(token.MUL, n) }

// Div returns the elementwise quotient of m and n.
func (m Matrix[T]) Div(n Matrix[T]) (Matrix[T], error) { return m.apply(token.QUO, n) }

// Transpose returns the transpose of the matrix.
func (m Matrix[T]) Transpose() (Matrix[T], error) {
	t, err := Transpose[T](m)
	return Matrix[T](t), err
}

// MulVec returns the product m*v.
func (m Matrix[T]) MulVec(v Vector[T]) (Vector[T], error) {
	return MatVec[T](numField[T]{}, m, v)
}

// MulMat returns the product m*n.
func (m Matrix[T]) MulMat(n Matrix[T]) (Matrix[T], error) {
	return MatMul[T](numField[T]{}, m, n)
}

// Solve returns x such that m*x = b.
func (m Matrix[T]) Solve(b Vector[T]) (Vector[T], error) {
	return Solve[T](numField[T]{}, m, b)
}

// SolveMatrix returns X such that m*X = b.
func (m Matrix[T]) SolveMatrix(b Matrix[T]) (Matrix[T], error) {
	return SolveMatrix[T](numField[T]{}, m, b)
}

// String representation of the matrix.
func (m Matrix[T]) String() string {
	a, err := m.array()
	if err != nil {
		return err.Error()
	}
	return a.String()
}
