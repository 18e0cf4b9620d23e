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
	"github.com/gx-org/backend/shape"
	"golang.org/x/exp/constraints"
)

type (
	// MathFactory returns a factory to implement functions from the math package.
	MathFactory[T constraints.Float] interface {
		// Kernelize turns a unary Go math function into a unary kernel.
		Kernelize(func(float64) float64) Unary[T]

		// Kernelize2 turns a binary Go math function into a binary kernel
		// given the shapes of its operands.
		Kernelize2(fn func(float64, float64) float64, x, y *shape.Shape) (Binary[T], *shape.Shape, error)
	}

	mathFactory[T constraints.Float] struct{}
)

func (m mathFactory[T]) Kernelize(f func(float64) float64) Unary[T] {
	return func(x *Array[T]) *Array[T] {
		z := make([]T, len(x.values))
		for i, xi := range x.values {
			z[i] = T(f(float64(xi)))
		}
		return ToArray(z, x.shape.AxisLengths)
	}
}

func (m mathFactory[T]) Kernelize2(f func(float64, float64) float64, x, y *shape.Shape) (Binary[T], *shape.Shape, error) {
	return Factory[T]{}.Kernelize2(func(xi, yi T) T {
		return T(f(float64(xi), float64(yi)))
	}, x, y)
}
