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

// Package kernels implements elementwise kernels on dense float arrays.
//
// Binary kernels broadcast their operands by cyclic tiling: axes are
// aligned from the outermost one, the output length of an axis is the
// largest length of both operands, and a shorter operand is repeated
// from its start.
package kernels

import (
	"fmt"
	"go/token"
	"slices"

	"github.com/gx-org/backend/shape"
	"github.com/gx-org/cas/build/fmterr"
	"github.com/gx-org/cas/fmt/fmtarray"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

type (
	// Array is a dense array of floating point numbers stored in row-major order.
	Array[T constraints.Float] struct {
		shape  shape.Shape
		values []T
	}

	// Unary like - or sin.
	Unary[T constraints.Float] func(*Array[T]) *Array[T]

	// Binary like +, -, *, /.
	Binary[T constraints.Float] func(*Array[T], *Array[T]) *Array[T]

	// Factory creates kernels for arrays of a given float type.
	Factory[T constraints.Float] struct{}
)

// ToAtom converts a value into an atomic array.
func ToAtom[T constraints.Float](val T) *Array[T] {
	return &Array[T]{
		shape:  shape.Shape{DType: fmtarray.DType[T]()},
		values: []T{val},
	}
}

// ToArray converts values and axis lengths into an array.
func ToArray[T constraints.Float](values []T, dims []int) *Array[T] {
	arr := &Array[T]{
		shape: shape.Shape{
			DType:       fmtarray.DType[T](),
			AxisLengths: dims,
		},
		values: values,
	}
	if len(values) != arr.shape.Size() {
		panic(fmt.Sprintf("mismatch between the number of values (=%d) and the number of elements (=%d) in shape %s", len(values), arr.shape.Size(), arr.shape.String()))
	}
	return arr
}

// Zero returns an array of zeros given axis lengths.
func Zero[T constraints.Float](dims []int) *Array[T] {
	size := 1
	for _, d := range dims {
		size *= d
	}
	return ToArray(make([]T, size), dims)
}

// Stack returns the array whose slices along the first axis are the given arrays.
// All arrays must have the same shape.
func Stack[T constraints.Float](slices []*Array[T]) (*Array[T], error) {
	if len(slices) == 0 {
		return nil, fmterr.Errorf(fmterr.ErrDimensionMismatch, "cannot stack an empty list of arrays")
	}
	inner := slices[0].shape.AxisLengths
	var values []T
	for i, s := range slices {
		if !sameAxes(s.shape.AxisLengths, inner) {
			return nil, fmterr.Errorf(fmterr.ErrDimensionMismatch, "element %d has shape %v but want %v", i, s.shape.AxisLengths, inner)
		}
		values = append(values, s.values...)
	}
	dims := append([]int{len(slices)}, inner...)
	return ToArray(values, dims), nil
}

func sameAxes(x, y []int) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Shape of the array.
func (a *Array[T]) Shape() *shape.Shape {
	return &a.shape
}

// Rank of the array, that is its number of axes.
func (a *Array[T]) Rank() int {
	return len(a.shape.AxisLengths)
}

// Len returns the length of the first axis, or 1 for atoms.
func (a *Array[T]) Len() int {
	if a.shape.IsAtomic() {
		return 1
	}
	return a.shape.AxisLengths[0]
}

// Flat values of the array.
func (a *Array[T]) Flat() []T {
	return a.values
}

// Slice returns the i-th slice of the array along its first axis.
// The returned array shares its values with a.
func (a *Array[T]) Slice(i int) *Array[T] {
	if a.shape.IsAtomic() {
		return a
	}
	inner := shape.Shape{
		DType:       a.shape.DType,
		AxisLengths: a.shape.AxisLengths[1:],
	}
	stride := inner.Size()
	return &Array[T]{
		shape:  inner,
		values: a.values[i*stride : (i+1)*stride],
	}
}

// ToAtom returns the atomic value contained in the array.
// It returns an error if the array contains more than one value.
func (a *Array[T]) ToAtom() (val T, err error) {
	if !a.shape.IsAtomic() {
		return val, errors.Errorf("%s not atomic", a.shape.String())
	}
	return a.values[0], nil
}

// String representation of the array.
func (a *Array[T]) String() string {
	return fmtarray.SDataPrint(a.values, a.shape.AxisLengths)
}

// TileShape returns the shape of the result of a binary operator
// applied to arrays of shape x and y.
func TileShape(x, y *shape.Shape) *shape.Shape {
	return &shape.Shape{
		DType:       x.DType,
		AxisLengths: tileAxes(x.AxisLengths, y.AxisLengths),
	}
}

func tileAxes(x, y []int) []int {
	if len(x) == 0 {
		return y
	}
	if len(y) == 0 {
		return x
	}
	return append([]int{max(x[0], y[0])}, tileAxes(x[1:], y[1:])...)
}

// BinaryOp creates a new kernel for a binary operator.
func (f Factory[T]) BinaryOp(op token.Token, x, y *shape.Shape) (Binary[T], *shape.Shape, error) {
	fn, ok := binaryFuncs[T]()[op]
	if !ok {
		return nil, nil, errors.Errorf("operator %s not supported for %s", op.String(), x.DType.String())
	}
	return f.Kernelize2(fn, x, y)
}

// UnaryOp creates a new kernel for a unary operator.
func (Factory[T]) UnaryOp(op token.Token, x *shape.Shape) (Unary[T], *shape.Shape, error) {
	switch op {
	case token.SUB:
		return negArray[T], x, nil
	default:
		return nil, nil, errors.Errorf("operator %s not supported for %s", op.String(), x.DType.String())
	}
}

// Kernelize2 turns a binary function into a kernel given the shapes of its operands.
func (Factory[T]) Kernelize2(fn func(T, T) T, x, y *shape.Shape) (Binary[T], *shape.Shape, error) {
	xAtomic := x.IsAtomic()
	yAtomic := y.IsAtomic()
	switch {
	case xAtomic && yAtomic:
		return atomicToAtomic(fn), &shape.Shape{DType: x.DType}, nil
	case xAtomic:
		return atomicToArray(fn), &shape.Shape{DType: x.DType, AxisLengths: y.AxisLengths}, nil
	case yAtomic:
		return arrayToAtomic(fn), &shape.Shape{DType: x.DType, AxisLengths: x.AxisLengths}, nil
	}
	if slices.Contains(x.AxisLengths, 0) || slices.Contains(y.AxisLengths, 0) {
		return nil, nil, fmterr.Errorf(fmterr.ErrLengthMismatch, "cannot tile arrays of shape %v and %v: an axis has length 0", x.AxisLengths, y.AxisLengths)
	}
	out := TileShape(x, y)
	return arrayToArray(fn, out), out, nil
}

// Math returns a factory for kernels of functions from the math package.
func (Factory[T]) Math() MathFactory[T] {
	return mathFactory[T]{}
}

// Apply creates a kernel for a binary operator and applies it to two arrays.
func Apply[T constraints.Float](op token.Token, x, y *Array[T]) (*Array[T], error) {
	kernel, _, err := Factory[T]{}.BinaryOp(op, x.Shape(), y.Shape())
	if err != nil {
		return nil, err
	}
	return kernel(x, y), nil
}
