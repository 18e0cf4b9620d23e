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
	"github.com/gx-org/cas/base/iter"
	"github.com/gx-org/cas/stdlib/ops"
)

type (
	binaryFunc func(Expr, Expr) Expr
	unaryFunc  func(Expr) Expr
)

// distribute applies a binary constructor to both sides of an equation.
func distribute(x, y Expr, f binaryFunc) (Expr, bool) {
	xa, xok := x.(*Assign)
	ya, yok := y.(*Assign)
	switch {
	case xok && yok:
		return NewAssign(f(xa.left, ya.left), f(xa.right, ya.right)), true
	case xok:
		return NewAssign(f(xa.left, y), f(xa.right, y)), true
	case yok:
		return NewAssign(f(x, ya.left), f(x, ya.right)), true
	}
	return nil, false
}

// broadcast applies a binary constructor element by element if one of the operand
// is an array. The shortest operand is tiled to the length of the longest.
func broadcast(x, y Expr, f binaryFunc) (Expr, bool) {
	_, xok := x.(*Array)
	_, yok := y.(*Array)
	if !xok && !yok {
		return nil, false
	}
	return mustArray(iter.ZipTiled(Elements(x), Elements(y), f)), true
}

// distributeUnary applies a unary constructor to both sides of an equation.
func distributeUnary(x Expr, f unaryFunc) (Expr, bool) {
	a, ok := x.(*Assign)
	if !ok {
		return nil, false
	}
	return NewAssign(f(a.left), f(a.right)), true
}

// broadcastUnary applies a unary constructor to all the elements of an array.
func broadcastUnary(x Expr, f unaryFunc) (Expr, bool) {
	a, ok := x.(*Array)
	if !ok {
		return nil, false
	}
	elems := make([]Expr, len(a.elems))
	for i, el := range a.elems {
		elems[i] = f(el)
	}
	return mustArray(elems), true
}

// structural applies the assignment and array rules shared by all constructors.
func structural(x, y Expr, f binaryFunc) (Expr, bool) {
	if r, ok := distribute(x, y, f); ok {
		return r, true
	}
	return broadcast(x, y, f)
}

func consts(x, y Expr) (float64, float64, bool) {
	xc, xok := x.(*Const)
	yc, yok := y.(*Const)
	if !xok || !yok {
		return 0, 0, false
	}
	return xc.value, yc.value, true
}

func isValue(e Expr, v float64) bool {
	c, ok := e.(*Const)
	return ok && c.value == v
}

func isZero(e Expr) bool     { return isValue(e, 0) }
func isOne(e Expr) bool      { return isValue(e, 1) }
func isMinusOne(e Expr) bool { return isValue(e, -1) }

func isNumber(e Expr) bool {
	switch e.(type) {
	case *Const, *NamedConst:
		return true
	}
	return false
}

// negArg returns x if e is -x.
func negArg(e Expr) (Expr, bool) {
	u, ok := e.(*Unary)
	if !ok || u.op != ops.Neg {
		return nil, false
	}
	return u.arg, true
}

func asBinary(e Expr, op ops.ID) (*Binary, bool) {
	b, ok := e.(*Binary)
	if !ok || b.op != op {
		return nil, false
	}
	return b, true
}

func isSum(e Expr) bool {
	b, ok := e.(*Binary)
	return ok && (b.op == ops.Add || b.op == ops.Sub)
}

// factor returns e as a numeric coefficient and a residual expression
// such that e = coefficient * residual.
func factor(e Expr) (float64, Expr) {
	switch e := e.(type) {
	case *Const:
		return e.value, One
	case *Unary:
		if e.op == ops.Neg {
			c, r := factor(e.arg)
			return -c, r
		}
	case *Binary:
		switch e.op {
		case ops.Mul:
			if c, ok := e.left.(*Const); ok {
				return c.value, e.right
			}
		case ops.Div:
			if c, ok := e.right.(*Const); ok {
				num, r := factor(e.left)
				return num / c.value, r
			}
		}
	}
	return 1, e
}

// scale returns c*r.
func scale(c float64, r Expr) Expr {
	switch {
	case isOne(r):
		return NewConst(c)
	case c == 0:
		return Zero
	case c == 1:
		return r
	case c == -1:
		return Neg(r)
	}
	return Mul(NewConst(c), r)
}
