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

package ir

import (
	"github.com/gx-org/cas/build/fmterr"
)

// maxRank is the largest rank of an expression.
const maxRank = 2

// NewArray returns an array given its elements.
// An empty array is 0 and an array of a single element is that element.
// The elements of a matrix must be arrays of the same length.
func NewArray(elems ...Expr) (Expr, error) {
	switch len(elems) {
	case 0:
		return Zero, nil
	case 1:
		return elems[0], nil
	}
	rank, err := arrayRank(elems)
	if err != nil {
		return nil, err
	}
	return mkArray(append([]Expr{}, elems...), rank), nil
}

func arrayRank(elems []Expr) (int, error) {
	elRank := 0
	for _, el := range elems {
		elRank = max(elRank, el.Rank())
	}
	rank := elRank + 1
	if rank > maxRank {
		return 0, fmterr.Errorf(fmterr.ErrUnsupportedRank, "cannot build an array of rank %d: maximum rank is %d", rank, maxRank)
	}
	if rank < maxRank {
		return rank, nil
	}
	rowLen := -1
	for i, el := range elems {
		row, ok := el.(*Array)
		if !ok || row.rank != 1 {
			return 0, fmterr.Errorf(fmterr.ErrDimensionMismatch, "row %d of matrix is %s: not a vector", i, el.String())
		}
		if rowLen < 0 {
			rowLen = row.Len()
		}
		if row.Len() != rowLen {
			return 0, fmterr.Errorf(fmterr.ErrDimensionMismatch, "row %d of matrix has %d elements but row 0 has %d", i, row.Len(), rowLen)
		}
	}
	return rank, nil
}

// mustArray builds an array from elements computed by the constructors.
// The constructors never increase the rank of their operands, so an error
// is a bug.
func mustArray(elems []Expr) Expr {
	a, err := NewArray(elems...)
	if err != nil {
		panic(fmterr.Internal(err))
	}
	return a
}

// NewVector returns a vector of numeric literals.
func NewVector(vals ...float64) Expr {
	elems := make([]Expr, len(vals))
	for i, v := range vals {
		elems[i] = NewConst(v)
	}
	return mustArray(elems)
}

// NewMatrix returns a matrix of numeric literals.
func NewMatrix(rows ...[]float64) (Expr, error) {
	elems := make([]Expr, len(rows))
	for i, row := range rows {
		elems[i] = NewVector(row...)
	}
	return NewArray(elems...)
}

// Rows returns the elements of a matrix as rows of expressions.
// A vector is returned as a single row and a scalar as a 1x1 matrix.
func Rows(e Expr) [][]Expr {
	outer := Elements(e)
	if e.Rank() < maxRank {
		return [][]Expr{outer}
	}
	rows := make([][]Expr, len(outer))
	for i, row := range outer {
		rows[i] = Elements(row)
	}
	return rows
}

// NewAssign returns the equation l = r.
// Equations between arrays are built element by element.
func NewAssign(l, r Expr) Expr {
	if res, ok := broadcast(l, r, NewAssign); ok {
		return res
	}
	return mkAssign(l, r)
}
