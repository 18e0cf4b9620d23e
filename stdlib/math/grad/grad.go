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

// Package grad computes symbolic derivatives of expressions.
//
// Derivatives are built with the ir constructors, so they are simplified
// as they are computed.
package grad

import (
	"github.com/gx-org/cas/build/fmterr"
	"github.com/gx-org/cas/build/ir"
	"github.com/gx-org/cas/stdlib/ops"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("cas.grad")
}

// exprGrader computes the partial derivative of expressions
// with respect to a variable.
type exprGrader struct {
	wrt *ir.Variable
}

// Partial returns the partial derivative of an expression with respect to a variable.
func Partial(e ir.Expr, wrt *ir.Variable) (ir.Expr, error) {
	g := &exprGrader{wrt: wrt}
	r, err := g.gradExpr(e)
	if err != nil {
		tracer().Errorf("d/d%s %s: %v", wrt.Name(), e, err)
		return nil, err
	}
	tracer().Debugf("d/d%s %s = %s", wrt.Name(), e, r)
	return r, nil
}

func (g *exprGrader) gradExpr(src ir.Expr) (ir.Expr, error) {
	switch srcT := src.(type) {
	case *ir.Const, *ir.NamedConst:
		return ir.Zero, nil
	case *ir.Variable:
		if srcT.Equal(g.wrt) {
			return ir.One, nil
		}
		return ir.Zero, nil
	case *ir.Unary:
		return g.gradUnary(srcT)
	case *ir.Binary:
		return g.gradBinary(srcT)
	case *ir.Array:
		return g.gradArray(srcT)
	case *ir.Assign:
		return g.gradAssign(srcT)
	default:
		return nil, fmterr.Internalf("gradient of %T expression not supported", srcT)
	}
}

func (g *exprGrader) gradUnary(src *ir.Unary) (ir.Expr, error) {
	op, err := ops.LookupUnary(src.Op())
	if err != nil {
		return nil, err
	}
	du, err := g.gradExpr(src.Arg())
	if err != nil {
		return nil, err
	}
	if du == ir.Zero {
		return ir.Zero, nil
	}
	rule, ok := unaryRules[op.Rule]
	if !ok {
		return nil, fmterr.Errorf(fmterr.ErrNoDerivativeRule, "operator %s in %s cannot be differentiated", op.ID, src)
	}
	return ir.Mul(du, rule(src.Arg())), nil
}

func (g *exprGrader) gradBinary(src *ir.Binary) (ir.Expr, error) {
	op, err := ops.LookupBinary(src.Op())
	if err != nil {
		return nil, err
	}
	du, err := g.gradExpr(src.Left())
	if err != nil {
		return nil, err
	}
	dv, err := g.gradExpr(src.Right())
	if err != nil {
		return nil, err
	}
	if du == ir.Zero && dv == ir.Zero {
		return ir.Zero, nil
	}
	rule, ok := binaryRules[op.Rule]
	if !ok {
		return nil, fmterr.Errorf(fmterr.ErrNoDerivativeRule, "operator %s in %s cannot be differentiated", op.ID, src)
	}
	return rule(src.Left(), src.Right(), du, dv), nil
}

func (g *exprGrader) gradArray(src *ir.Array) (ir.Expr, error) {
	elems := make([]ir.Expr, src.Len())
	for i := range elems {
		var err error
		if elems[i], err = g.gradExpr(src.At(i)); err != nil {
			return nil, err
		}
	}
	return ir.NewArray(elems...)
}

func (g *exprGrader) gradAssign(src *ir.Assign) (ir.Expr, error) {
	left, err := g.gradExpr(src.Left())
	if err != nil {
		return nil, err
	}
	right, err := g.gradExpr(src.Right())
	if err != nil {
		return nil, err
	}
	return ir.NewAssign(left, right), nil
}
