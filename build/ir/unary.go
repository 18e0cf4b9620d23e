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
	"github.com/gx-org/cas/stdlib/ops"
)

// Neg returns -x.
func Neg(x Expr) Expr {
	if r, ok := distributeUnary(x, Neg); ok {
		return r
	}
	if r, ok := broadcastUnary(x, Neg); ok {
		return r
	}
	switch x := x.(type) {
	case *Const:
		return NewConst(-x.value)
	case *Unary:
		if x.op == ops.Neg {
			return x.arg
		}
	case *Binary:
		switch x.op {
		case ops.Sub:
			return mkBinary(ops.Sub, x.right, x.left)
		case ops.Mul:
			if c, ok := x.left.(*Const); ok {
				return Mul(NewConst(-c.value), x.right)
			}
		case ops.Div:
			if c, ok := x.left.(*Const); ok {
				return Div(NewConst(-c.value), x.right)
			}
		}
	}
	return mkUnary(ops.Neg, x)
}

// Apply a registered unary operator to an expression.
func Apply(id ops.ID, x Expr) (Expr, error) {
	op, err := ops.LookupUnary(id)
	if err != nil {
		return nil, err
	}
	return apply(op, x), nil
}

// MustApply applies a unary operator registered in the ops package.
// It panics if the operator does not exist.
func MustApply(id ops.ID, x Expr) Expr {
	return apply(ops.MustUnary(id), x)
}

func apply(op *ops.Unary, x Expr) Expr {
	if op.ID == ops.Neg {
		return Neg(x)
	}
	f := func(x Expr) Expr { return apply(op, x) }
	if r, ok := distributeUnary(x, f); ok {
		return r
	}
	if r, ok := broadcastUnary(x, f); ok {
		return r
	}
	if c, ok := x.(*Const); ok {
		return NewConst(op.Fn(c.value))
	}
	if u, ok := x.(*Unary); ok {
		if op.Inverse != "" && u.op == op.Inverse {
			if op.Collapse == ops.Abs {
				return MustApply(ops.AbsOp, u.arg)
			}
			return u.arg
		}
		if op.ID == ops.AbsOp && (u.op == ops.Neg || u.op == ops.AbsOp) {
			return MustApply(ops.AbsOp, u.arg)
		}
	}
	return mkUnary(op.ID, x)
}

// ApplyBinary applies a registered binary operator to two expressions.
func ApplyBinary(id ops.ID, x, y Expr) (Expr, error) {
	switch id {
	case ops.Add:
		return Add(x, y), nil
	case ops.Sub:
		return Sub(x, y), nil
	case ops.Mul:
		return Mul(x, y), nil
	case ops.Div:
		return Div(x, y), nil
	case ops.Pow:
		return Pow(x, y), nil
	}
	op, err := ops.LookupBinary(id)
	if err != nil {
		return nil, err
	}
	return applyBinary(op, x, y), nil
}

// MustApplyBinary applies a binary operator registered in the ops package.
// It panics if the operator does not exist.
func MustApplyBinary(id ops.ID, x, y Expr) Expr {
	r, err := ApplyBinary(id, x, y)
	if err != nil {
		panic(fmterr.Internal(err))
	}
	return r
}

func applyBinary(op *ops.Binary, x, y Expr) Expr {
	f := func(x, y Expr) Expr { return applyBinary(op, x, y) }
	if r, ok := structural(x, y, f); ok {
		return r
	}
	if xv, yv, ok := consts(x, y); ok {
		return NewConst(op.Fn(xv, yv))
	}
	return mkBinary(op.ID, x, y)
}
