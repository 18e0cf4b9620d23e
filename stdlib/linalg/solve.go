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
)

// Solve returns x such that a*x = b.
//
// The system is solved by recursive block elimination without pivoting.
// A zero pivot produces NaN or infinite values, not an error.
func Solve[T any](f Field[T], a [][]T, b []T) ([]T, error) {
	n, err := checkSquare(a)
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, fmterr.Errorf(fmterr.ErrLengthMismatch, "right-hand side has length %d but the system has %d equations", len(b), n)
	}
	tracer().Debugf("solving a %dx%d system", n, n)
	return solveColumns(f, a, [][]T{b})[0], nil
}

// SolveMatrix returns X such that a*X = b.
func SolveMatrix[T any](f Field[T], a, b [][]T) ([][]T, error) {
	n, err := checkSquare(a)
	if err != nil {
		return nil, err
	}
	bRows, numCols, err := checkMatrix(b)
	if err != nil {
		return nil, err
	}
	if bRows != n {
		return nil, fmterr.Errorf(fmterr.ErrDimensionMismatch, "right-hand side has %d rows but the system has %d equations", bRows, n)
	}
	tracer().Debugf("solving a %dx%d system for %d right-hand sides", n, n, numCols)
	cols, _ := Transpose(b)
	return Transpose(solveColumns(f, a, cols))
}

func checkSquare[T any](a [][]T) (int, error) {
	numRows, numCols, err := checkMatrix(a)
	if err != nil {
		return 0, err
	}
	if numRows != numCols {
		return 0, fmterr.Errorf(fmterr.ErrDimensionMismatch, "cannot solve a system with a %dx%d matrix: matrix is not square", numRows, numCols)
	}
	return numRows, nil
}

// solveColumns solves a*x = col for each column of cols.
//
// a is partitioned into a leading block a', a last column bc, a last row cr
// and a corner d. A single recursive call solves a'*v1 = u for the leading
// part u of every column and a'*v2 = bc. The last unknown of each column is
// x = (y - cr.v1)/(d - cr.v2) and the others are v1 - x*v2.
func solveColumns[T any](f Field[T], a [][]T, cols [][]T) [][]T {
	n := len(a)
	if n == 1 {
		xs := make([][]T, len(cols))
		for k, col := range cols {
			xs[k] = []T{f.Div(col[0], a[0][0])}
		}
		return xs
	}
	m := n - 1
	lead := make([][]T, m)
	bc := make([]T, m)
	for i := range m {
		lead[i] = a[i][:m]
		bc[i] = a[i][m]
	}
	cr := a[m][:m]
	d := a[m][m]

	sub := make([][]T, 0, len(cols)+1)
	for _, col := range cols {
		sub = append(sub, col[:m])
	}
	sub = append(sub, bc)
	vs := solveColumns(f, lead, sub)
	v2 := vs[len(cols)]
	pivot := f.Sub(d, dot(f, cr, v2))

	xs := make([][]T, len(cols))
	for k, col := range cols {
		v1 := vs[k]
		last := f.Div(f.Sub(col[m], dot(f, cr, v1)), pivot)
		x := make([]T, n)
		for i := range m {
			x[i] = f.Sub(v1[i], f.Mul(last, v2[i]))
		}
		x[m] = last
		xs[k] = x
	}
	return xs
}
