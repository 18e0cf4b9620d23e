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

// Package interp evaluates expressions by walking their tree.
package interp

import (
	"go/token"

	"github.com/gx-org/cas/api/values"
	"github.com/gx-org/cas/build/fmterr"
	"github.com/gx-org/cas/build/ir"
	"github.com/gx-org/cas/golang/backend/kernels"
	"github.com/gx-org/cas/stdlib/ops"
	"github.com/npillmayer/schuko/tracing"
)

type array = kernels.Array[float64]

func tracer() tracing.Trace {
	return tracing.Select("cas.interp")
}

var factory = kernels.Factory[float64]{}

// Tokens of the binary operators the kernels implement directly.
var binaryTokens = map[ops.ID]token.Token{
	ops.Add: token.ADD,
	ops.Sub: token.SUB,
	ops.Mul: token.MUL,
	ops.Div: token.QUO,
}

// Eval evaluates an expression given values for its variables.
//
// Operators are applied elementwise to arrays. Arrays of different
// lengths are tiled. An assignment evaluates to 1 if both sides are
// equal and 0 otherwise.
func Eval(e ir.Expr, env *Env) (values.Quantity, error) {
	a, err := evalExpr(env, e)
	if err != nil {
		tracer().Errorf("eval %s: %+v", e, fmterr.ToStackTraceError(err))
		return values.Quantity{}, err
	}
	q := values.FromArray(a)
	tracer().Debugf("eval %s = %s", e, q)
	return q, nil
}

// EvalFunction evaluates the body of a function given its arguments.
// Variables which are not parameters are looked up in defaults.
func EvalFunction(f *ir.Function, defaults *Env, args ...float64) (values.Quantity, error) {
	env, err := Bind(defaults, f.Params(), args)
	if err != nil {
		return values.Quantity{}, fmterr.PrefixWith("%s: ", f.Name())(err)
	}
	return Eval(f.Body(), env)
}

func evalExpr(env *Env, e ir.Expr) (*array, error) {
	switch eT := e.(type) {
	case *ir.Const:
		return kernels.ToAtom(eT.Value()), nil
	case *ir.NamedConst:
		return kernels.ToAtom(eT.Value()), nil
	case *ir.Variable:
		v, err := env.Lookup(eT.Name())
		if err != nil {
			return nil, err
		}
		return kernels.ToAtom(v), nil
	case *ir.Unary:
		return evalUnary(env, eT)
	case *ir.Binary:
		return evalBinary(env, eT)
	case *ir.Array:
		return evalArray(env, eT)
	case *ir.Assign:
		return evalAssign(env, eT)
	default:
		return nil, fmterr.Internalf("cannot evaluate expression %s: %T not supported", e, e)
	}
}

func evalUnary(env *Env, e *ir.Unary) (*array, error) {
	x, err := evalExpr(env, e.Arg())
	if err != nil {
		return nil, err
	}
	op, err := ops.LookupUnary(e.Op())
	if err != nil {
		return nil, err
	}
	if op.ID == ops.Neg {
		kernel, _, err := factory.UnaryOp(token.SUB, x.Shape())
		if err != nil {
			return nil, err
		}
		return kernel(x), nil
	}
	return factory.Math().Kernelize(op.Fn)(x), nil
}

func evalBinary(env *Env, e *ir.Binary) (*array, error) {
	x, err := evalExpr(env, e.Left())
	if err != nil {
		return nil, err
	}
	y, err := evalExpr(env, e.Right())
	if err != nil {
		return nil, err
	}
	op, err := ops.LookupBinary(e.Op())
	if err != nil {
		return nil, err
	}
	var kernel kernels.Binary[float64]
	if tok, ok := binaryTokens[op.ID]; ok {
		kernel, _, err = factory.BinaryOp(tok, x.Shape(), y.Shape())
	} else {
		kernel, _, err = factory.Math().Kernelize2(op.Fn, x.Shape(), y.Shape())
	}
	if err != nil {
		return nil, err
	}
	return kernel(x, y), nil
}

func evalArray(env *Env, e *ir.Array) (*array, error) {
	elems := make([]*array, e.Len())
	for i := range elems {
		var err error
		if elems[i], err = evalExpr(env, e.At(i)); err != nil {
			return nil, err
		}
	}
	return kernels.Stack(elems)
}

func evalAssign(env *Env, e *ir.Assign) (*array, error) {
	l, err := evalExpr(env, e.Left())
	if err != nil {
		return nil, err
	}
	r, err := evalExpr(env, e.Right())
	if err != nil {
		return nil, err
	}
	return kernels.Apply(token.EQL, l, r)
}
