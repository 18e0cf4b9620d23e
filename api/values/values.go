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

// Package values implements the numeric values produced by evaluating expressions.
package values

import (
	"github.com/gx-org/backend/shape"
	"github.com/gx-org/cas/build/fmterr"
	"github.com/gx-org/cas/fmt/fmtarray"
	"github.com/gx-org/cas/golang/backend/kernels"
	"github.com/pkg/errors"
)

// Quantity is a scalar, a vector, or a matrix of float64.
// A quantity is immutable.
type Quantity struct {
	array *kernels.Array[float64]
}

// FromArray returns a quantity given a kernel array.
func FromArray(a *kernels.Array[float64]) Quantity {
	return Quantity{array: a}
}

// Scalar returns a quantity of rank 0.
func Scalar(v float64) Quantity {
	return FromArray(kernels.ToAtom(v))
}

// Vector returns a quantity of rank 1.
func Vector(vals ...float64) Quantity {
	return FromArray(kernels.ToArray(append([]float64{}, vals...), []int{len(vals)}))
}

// Matrix returns a quantity of rank 2 given its rows.
func Matrix(rows ...[]float64) (Quantity, error) {
	if len(rows) == 0 {
		return Quantity{}, fmterr.Errorf(fmterr.ErrDimensionMismatch, "matrix without rows")
	}
	numCols := len(rows[0])
	data := make([]float64, 0, len(rows)*numCols)
	for i, row := range rows {
		if len(row) != numCols {
			return Quantity{}, fmterr.Errorf(fmterr.ErrDimensionMismatch, "row %d has %d columns but want %d", i, len(row), numCols)
		}
		data = append(data, row...)
	}
	return FromArray(kernels.ToArray(data, []int{len(rows), numCols})), nil
}

// Array returns the kernel array storing the data of the quantity.
func (q Quantity) Array() *kernels.Array[float64] {
	return q.array
}

// Shape of the quantity.
func (q Quantity) Shape() *shape.Shape {
	return q.array.Shape()
}

// Rank of the quantity.
func (q Quantity) Rank() int {
	return q.array.Rank()
}

// Float returns the value of a scalar.
func (q Quantity) Float() (float64, error) {
	return q.array.ToAtom()
}

// Floats returns the elements of a vector.
func (q Quantity) Floats() ([]float64, error) {
	if q.Rank() != 1 {
		return nil, errors.Errorf("%s is not a vector", q.Shape())
	}
	return append([]float64{}, q.array.Flat()...), nil
}

// Rows returns the rows of a matrix.
func (q Quantity) Rows() ([][]float64, error) {
	if q.Rank() != 2 {
		return nil, errors.Errorf("%s is not a matrix", q.Shape())
	}
	rows := make([][]float64, q.array.Len())
	for i := range rows {
		rows[i] = append([]float64{}, q.array.Slice(i).Flat()...)
	}
	return rows, nil
}

// Native returns the quantity as a float64, a []float64, or a [][]float64
// depending on its rank.
func (q Quantity) Native() any {
	switch q.Rank() {
	case 0:
		return q.array.Flat()[0]
	case 1:
		vals, _ := q.Floats()
		return vals
	default:
		rows, _ := q.Rows()
		return rows
	}
}

// String representation of the quantity using the expression notation.
func (q Quantity) String() string {
	if q.array == nil {
		return "<nil>"
	}
	return q.array.String()
}

// Format returns the quantity prefixed with its type.
func (q Quantity) Format() string {
	return fmtarray.Sprint(q.array.Flat(), q.Shape().AxisLengths)
}
