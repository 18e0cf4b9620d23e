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

package kernels

import (
	"go/token"

	"github.com/gx-org/backend/shape"
	"golang.org/x/exp/constraints"
)

func binaryFuncs[T constraints.Float]() map[token.Token]func(T, T) T {
	return map[token.Token]func(T, T) T{
		token.ADD: func(x, y T) T { return x + y },
		token.SUB: func(x, y T) T { return x - y },
		token.MUL: func(x, y T) T { return x * y },
		token.QUO: func(x, y T) T { return x / y },
		token.EQL: func(x, y T) T {
			if x == y {
				return 1
			}
			return 0
		},
	}
}

// AtomicToAtomic

func atomicToAtomic[T constraints.Float](fn func(T, T) T) Binary[T] {
	return func(x, y *Array[T]) *Array[T] {
		return ToAtom(fn(x.values[0], y.values[0]))
	}
}

// AtomicToArray

func atomicToArray[T constraints.Float](fn func(T, T) T) Binary[T] {
	return func(xVal, y *Array[T]) *Array[T] {
		x := xVal.values[0]
		z := make([]T, len(y.values))
		for i, yi := range y.values {
			z[i] = fn(x, yi)
		}
		return ToArray(z, y.shape.AxisLengths)
	}
}

// ArrayToAtomic

func arrayToAtomic[T constraints.Float](fn func(T, T) T) Binary[T] {
	return func(x, yVal *Array[T]) *Array[T] {
		y := yVal.values[0]
		z := make([]T, len(x.values))
		for i, xi := range x.values {
			z[i] = fn(xi, y)
		}
		return ToArray(z, x.shape.AxisLengths)
	}
}

// ArrayToArray

func strides(axes []int) []int {
	s := make([]int, len(axes))
	stride := 1
	for i := len(axes) - 1; i >= 0; i-- {
		s[i] = stride
		stride *= axes[i]
	}
	return s
}

// tiledIndex maps the position of an element in the output to the position
// of the element in an operand of a smaller or equal rank.
func tiledIndex(pos []int, axes, stridesIn []int) int {
	var index int
	for k, length := range axes {
		index += (pos[k] % length) * stridesIn[k]
	}
	return index
}

func arrayToArray[T constraints.Float](fn func(T, T) T, out *shape.Shape) Binary[T] {
	outStrides := strides(out.AxisLengths)
	return func(x, y *Array[T]) *Array[T] {
		xStrides := strides(x.shape.AxisLengths)
		yStrides := strides(y.shape.AxisLengths)
		z := make([]T, out.Size())
		pos := make([]int, len(out.AxisLengths))
		for i := range z {
			rem := i
			for k, stride := range outStrides {
				pos[k] = rem / stride
				rem %= stride
			}
			xi := x.values[tiledIndex(pos, x.shape.AxisLengths, xStrides)]
			yi := y.values[tiledIndex(pos, y.shape.AxisLengths, yStrides)]
			z[i] = fn(xi, yi)
		}
		return ToArray(z, out.AxisLengths)
	}
}

// Unary Operators

func negArray[T constraints.Float](x *Array[T]) *Array[T] {
	z := make([]T, len(x.values))
	for i, xi := range x.values {
		z[i] = -xi
	}
	return ToArray(z, x.shape.AxisLengths)
}
