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

package values

import (
	"github.com/gx-org/cas/build/ir"
	"github.com/gx-org/cas/golang/backend/kernels"
	"github.com/pkg/errors"
)

// ToExpr converts a quantity into a literal expression.
func (q Quantity) ToExpr() ir.Expr {
	return toExpr(q.array)
}

func toExpr(a *kernels.Array[float64]) ir.Expr {
	if a.Rank() == 0 {
		return ir.NewConst(a.Flat()[0])
	}
	elems := make([]ir.Expr, a.Len())
	for i := range elems {
		elems[i] = toExpr(a.Slice(i))
	}
	arr, err := ir.NewArray(elems...)
	if err != nil {
		// A quantity has a rank of 2 at most.
		panic(err)
	}
	return arr
}

// FromExpr converts a literal expression into a quantity.
// The expression can only contain constants and arrays.
func FromExpr(e ir.Expr) (Quantity, error) {
	a, err := fromExpr(e)
	if err != nil {
		return Quantity{}, err
	}
	return FromArray(a), nil
}

func fromExpr(e ir.Expr) (*kernels.Array[float64], error) {
	switch eT := e.(type) {
	case *ir.Const:
		return kernels.ToAtom(eT.Value()), nil
	case *ir.NamedConst:
		return kernels.ToAtom(eT.Value()), nil
	case *ir.Array:
		slices := make([]*kernels.Array[float64], eT.Len())
		for i := range slices {
			var err error
			if slices[i], err = fromExpr(eT.At(i)); err != nil {
				return nil, err
			}
		}
		return kernels.Stack(slices)
	default:
		return nil, errors.Errorf("%s is not a literal", e)
	}
}
