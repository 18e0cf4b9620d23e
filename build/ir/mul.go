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
	"math"

	"github.com/gx-org/cas/stdlib/ops"
)

// powerOf returns e as a base and an exponent.
func powerOf(e Expr) (Expr, Expr) {
	if p, ok := asBinary(e, ops.Pow); ok {
		return p.left, p.right
	}
	return e, One
}

func samePowerBase(x, y Expr) (base, px, py Expr, ok bool) {
	bx, px := powerOf(x)
	by, py := powerOf(y)
	if _, isConst := bx.(*Const); isConst {
		return nil, nil, nil, false
	}
	if !bx.Equal(by) {
		return nil, nil, nil, false
	}
	return bx, px, py, true
}

// Mul returns x*y.
func Mul(x, y Expr) Expr {
	if r, ok := structural(x, y, Mul); ok {
		return r
	}
	if xv, yv, ok := consts(x, y); ok {
		return NewConst(xv * yv)
	}
	switch {
	case isZero(x) || isZero(y):
		return Zero
	case isOne(x):
		return y
	case isOne(y):
		return x
	case isMinusOne(x):
		return Neg(y)
	case isMinusOne(y):
		return Neg(x)
	}
	xn, xNeg := negArg(x)
	yn, yNeg := negArg(y)
	switch {
	case xNeg && yNeg:
		return Mul(xn, yn)
	case xNeg:
		return Neg(Mul(xn, y))
	case yNeg:
		return Neg(Mul(x, yn))
	}
	// Numeric literals come first in products.
	if _, ok := y.(*Const); ok {
		x, y = y, x
	}
	if c, ok := x.(*Const); ok {
		if m, ok := asBinary(y, ops.Mul); ok {
			if d, ok := m.left.(*Const); ok {
				return Mul(NewConst(c.value*d.value), m.right)
			}
		}
		if q, ok := asBinary(y, ops.Div); ok {
			if d, ok := q.right.(*Const); ok {
				return Mul(NewConst(c.value/d.value), q.left)
			}
			if d, ok := q.left.(*Const); ok {
				return Div(NewConst(c.value*d.value), q.right)
			}
		}
	}
	xq, xQuo := asBinary(x, ops.Div)
	yq, yQuo := asBinary(y, ops.Div)
	switch {
	case xQuo && yQuo:
		return Div(Mul(xq.left, yq.left), Mul(xq.right, yq.right))
	case xQuo:
		return Div(Mul(xq.left, y), xq.right)
	case yQuo:
		return Div(Mul(x, yq.left), yq.right)
	}
	if base, px, py, ok := samePowerBase(x, y); ok {
		return Pow(base, Add(px, py))
	}
	return mkBinary(ops.Mul, x, y)
}

// Div returns x/y.
func Div(x, y Expr) Expr {
	if r, ok := structural(x, y, Div); ok {
		return r
	}
	if xv, yv, ok := consts(x, y); ok {
		return NewConst(xv / yv)
	}
	switch {
	case isOne(y):
		return x
	case isZero(x):
		return Zero
	case isMinusOne(y):
		return Neg(x)
	case x.Equal(y):
		return One
	}
	xn, xNeg := negArg(x)
	yn, yNeg := negArg(y)
	switch {
	case xNeg && yNeg:
		return Div(xn, yn)
	case xNeg:
		return Neg(Div(xn, y))
	case yNeg:
		return Neg(Div(x, yn))
	}
	if yq, ok := asBinary(y, ops.Div); ok {
		return Div(Mul(x, yq.right), yq.left)
	}
	if xq, ok := asBinary(x, ops.Div); ok {
		return Div(xq.left, Mul(xq.right, y))
	}
	if d, ok := y.(*Const); ok {
		if c, r := factor(x); c != 1 {
			return scale(c/d.value, r)
		}
	}
	if m, ok := asBinary(x, ops.Mul); ok {
		if m.right.Equal(y) {
			return m.left
		}
		if m.left.Equal(y) {
			return m.right
		}
	}
	if base, px, py, ok := samePowerBase(x, y); ok {
		return Pow(base, Sub(px, py))
	}
	return mkBinary(ops.Div, x, y)
}

func isInteger(e Expr) bool {
	c, ok := e.(*Const)
	return ok && c.value == math.Trunc(c.value) && !math.IsInf(c.value, 0)
}

// Pow returns x^y.
func Pow(x, y Expr) Expr {
	if r, ok := structural(x, y, Pow); ok {
		return r
	}
	if xv, yv, ok := consts(x, y); ok {
		return NewConst(math.Pow(xv, yv))
	}
	switch {
	case isZero(y):
		return One
	case isOne(y):
		return x
	case isMinusOne(y):
		return Div(One, x)
	case isOne(x):
		return One
	case isZero(x):
		if c, ok := y.(*Const); ok && c.value > 0 {
			return Zero
		}
	}
	if p, ok := asBinary(x, ops.Pow); ok && isInteger(y) {
		if _, ok := p.right.(*Const); ok {
			return Pow(p.left, Mul(p.right, y))
		}
	}
	return mkBinary(ops.Pow, x, y)
}
