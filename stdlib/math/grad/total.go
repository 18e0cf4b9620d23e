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

package grad

import (
	"slices"

	"github.com/gx-org/cas/base/ordered"
	"github.com/gx-org/cas/base/uname"
	"github.com/gx-org/cas/build/fmterr"
	"github.com/gx-org/cas/build/ir"
	"golang.org/x/exp/maps"
)

// Rate pairs a variable with the expression of its rate of change.
type Rate struct {
	Var  *ir.Variable
	Rate ir.Expr
}

// Total returns the total derivative of an expression, that is
// the sum of the partial derivatives multiplied by their rates.
func Total(e ir.Expr, rates []Rate) (ir.Expr, error) {
	terms := make([]ir.Expr, 0, len(rates))
	for _, rate := range rates {
		d, err := Partial(e, rate.Var)
		if err != nil {
			return nil, fmterr.PrefixWith("d/d%s: ", rate.Var.Name())(err)
		}
		terms = append(terms, ir.Mul(d, rate.Rate))
	}
	return ir.Sum(terms...), nil
}

// TotalMap returns the total derivative of an expression given
// a map from variable names to rates. Variables are processed in alphabetical order.
func TotalMap(e ir.Expr, rates map[string]ir.Expr) (ir.Expr, error) {
	names := maps.Keys(rates)
	slices.Sort(names)
	pairs := make([]Rate, len(names))
	for i, name := range names {
		pairs[i] = Rate{Var: ir.NewVariable(name), Rate: rates[name]}
	}
	return Total(e, pairs)
}

// TotalAuto returns the total derivative of an expression with respect
// to all its free variables. A rate variable is generated for each free
// variable. The map from free variable names to rates is also returned.
func TotalAuto(e ir.Expr) (ir.Expr, *ordered.Map[string, *ir.Variable], error) {
	free := ir.FreeVariables(e)
	names := uname.New()
	for _, v := range free {
		names.Register(v.Name())
	}
	rateVars := ordered.NewMap[string, *ir.Variable]()
	pairs := make([]Rate, len(free))
	for i, v := range free {
		rate := ir.NewVariable(names.Rate(v.Name()))
		rateVars.Store(v.Name(), rate)
		pairs[i] = Rate{Var: v, Rate: rate}
	}
	total, err := Total(e, pairs)
	if err != nil {
		return nil, nil, err
	}
	return total, rateVars, nil
}

// Jacobian returns the array of the partial derivatives of an expression.
// The i-th element is the derivative with respect to the i-th variable.
// If no variable is given, the free variables of the expression are used
// in alphabetical order.
func Jacobian(e ir.Expr, vars ...*ir.Variable) (ir.Expr, error) {
	if len(vars) == 0 {
		vars = ir.FreeVariables(e)
	}
	elems := make([]ir.Expr, len(vars))
	for i, v := range vars {
		var err error
		if elems[i], err = Partial(e, v); err != nil {
			return nil, fmterr.PrefixWith("d/d%s: ", v.Name())(err)
		}
	}
	return ir.NewArray(elems...)
}
