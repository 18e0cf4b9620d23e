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

// Package linalg implements vector and matrix algebra.
//
// The algorithms are written once over a Field and instantiated for
// numeric values (Vector and Matrix) and for symbolic expressions
// (the *Expr functions).
package linalg

import (
	"github.com/gx-org/cas/base/iter"
	"github.com/gx-org/cas/build/fmterr"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("cas.linalg")
}

// Field defines the arithmetic of the elements of vectors and matrices.
type Field[T any] interface {
	Zero() T
	Add(x, y T) T
	Sub(x, y T) T
	Mul(x, y T) T
	Div(x, y T) T
	Neg(x T) T
}

// checkMatrix returns the number of rows and columns of a matrix.
func checkMatrix[T any](a [][]T) (int, int, error) {
	if len(a) == 0 {
		return 0, 0, fmterr.Errorf(fmterr.ErrDimensionMismatch, "matrix without rows")
	}
	numCols := len(a[0])
	for i, row := range a {
		if len(row) != numCols {
			return 0, 0, fmterr.Errorf(fmterr.ErrDimensionMismatch, "row %d of matrix has %d elements but row 0 has %d", i, len(row), numCols)
		}
	}
	return len(a), numCols, nil
}

// Transpose returns the transpose of a matrix.
func Transpose[T any](a [][]T) ([][]T, error) {
	numRows, numCols, err := checkMatrix(a)
	if err != nil {
		return nil, err
	}
	t := make([][]T, numCols)
	for j := range t {
		t[j] = make([]T, numRows)
		for i := range numRows {
			t[j][i] = a[i][j]
		}
	}
	return t, nil
}

// Dot returns the dot product of two vectors of the same length.
func Dot[T any](f Field[T], x, y []T) (T, error) {
	products, err := iter.Zip(x, y, f.Mul)
	if err != nil {
		return f.Zero(), fmterr.PrefixWith("dot product: ")(err)
	}
	return sum(f, products), nil
}

func sum[T any](f Field[T], terms []T) T {
	if len(terms) == 0 {
		return f.Zero()
	}
	r := terms[0]
	for _, t := range terms[1:] {
		r = f.Add(r, t)
	}
	return r
}

func dot[T any](f Field[T], x, y []T) T {
	if len(x) == 0 {
		return f.Zero()
	}
	r := f.Mul(x[0], y[0])
	for i := 1; i < len(x); i++ {
		r = f.Add(r, f.Mul(x[i], y[i]))
	}
	return r
}

// Outer returns the outer product of two vectors, that is the matrix m[i][j] = x[i]*y[j].
func Outer[T any](f Field[T], x, y []T) [][]T {
	m := make([][]T, len(x))
	for i, xi := range x {
		m[i] = make([]T, len(y))
		for j, yj := range y {
			m[i][j] = f.Mul(xi, yj)
		}
	}
	return m
}

// Cross returns the cross product of two vectors.
//
// The cross product of two planar vectors is a slice with a single element,
// the z-component of the product. A vector of length 1 is the z-component of
// a vector orthogonal to the plane, so that its product with a planar vector
// is a planar vector.
func Cross[T any](f Field[T], x, y []T) ([]T, error) {
	switch {
	case len(x) == 3 && len(y) == 3:
		return []T{
			f.Sub(f.Mul(x[1], y[2]), f.Mul(x[2], y[1])),
			f.Sub(f.Mul(x[2], y[0]), f.Mul(x[0], y[2])),
			f.Sub(f.Mul(x[0], y[1]), f.Mul(x[1], y[0])),
		}, nil
	case len(x) == 2 && len(y) == 2:
		return []T{f.Sub(f.Mul(x[0], y[1]), f.Mul(x[1], y[0]))}, nil
	case len(x) == 1 && len(y) == 2:
		w := x[0]
		return []T{f.Neg(f.Mul(w, y[1])), f.Mul(w, y[0])}, nil
	case len(x) == 2 && len(y) == 1:
		w := y[0]
		return []T{f.Mul(w, x[1]), f.Neg(f.Mul(w, x[0]))}, nil
	}
	return nil, fmterr.Errorf(fmterr.ErrLengthMismatch, "cross product of vectors of length %d and %d", len(x), len(y))
}

// MatVec returns the product of a matrix and a vector.
func MatVec[T any](f Field[T], a [][]T, x []T) ([]T, error) {
	_, numCols, err := checkMatrix(a)
	if err != nil {
		return nil, err
	}
	if numCols != len(x) {
		return nil, fmterr.Errorf(fmterr.ErrDimensionMismatch, "cannot multiply a matrix with %d columns by a vector of length %d", numCols, len(x))
	}
	r := make([]T, len(a))
	for i, row := range a {
		r[i] = dot(f, row, x)
	}
	return r, nil
}

// MatMul returns the product of two matrices.
func MatMul[T any](f Field[T], a, b [][]T) ([][]T, error) {
	numRows, numInner, err := checkMatrix(a)
	if err != nil {
		return nil, err
	}
	bRows, numCols, err := checkMatrix(b)
	if err != nil {
		return nil, err
	}
	if numInner != bRows {
		return nil, fmterr.Errorf(fmterr.ErrDimensionMismatch, "cannot multiply a matrix with %d columns by a matrix with %d rows", numInner, bRows)
	}
	bt, _ := Transpose(b)
	m := make([][]T, numRows)
	for i := range m {
		m[i] = make([]T, numCols)
		for j := range numCols {
			m[i][j] = dot(f, a[i], bt[j])
		}
	}
	return m, nil
}
