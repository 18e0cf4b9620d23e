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

import "github.com/gx-org/cas/stdlib/ops"

// Add returns x+y.
func Add(x, y Expr) Expr {
	if r, ok := structural(x, y, Add); ok {
		return r
	}
	if xv, yv, ok := consts(x, y); ok {
		return NewConst(xv + yv)
	}
	if isZero(x) {
		return y
	}
	if isZero(y) {
		return x
	}
	xn, xNeg := negArg(x)
	yn, yNeg := negArg(y)
	switch {
	case xNeg && yNeg:
		return Neg(Add(xn, yn))
	case yNeg:
		return Sub(x, yn)
	case xNeg:
		return Sub(y, xn)
	}
	if isSum(x) || isSum(y) {
		return sum([]term{{coef: 1, e: x}, {coef: 1, e: y}})
	}
	cx, rx := factor(x)
	cy, ry := factor(y)
	if rx.Equal(ry) {
		return scale(cx+cy, rx)
	}
	if cy < 0 {
		return Sub(x, scale(-cy, ry))
	}
	if cx < 0 {
		return Sub(y, scale(-cx, rx))
	}
	if isNumber(x) && !isNumber(y) {
		x, y = y, x
	}
	return mkBinary(ops.Add, x, y)
}

// Sub returns x-y.
func Sub(x, y Expr) Expr {
	if r, ok := structural(x, y, Sub); ok {
		return r
	}
	if xv, yv, ok := consts(x, y); ok {
		return NewConst(xv - yv)
	}
	if isZero(y) {
		return x
	}
	if isZero(x) {
		return Neg(y)
	}
	if x.Equal(y) {
		return Zero
	}
	if yn, ok := negArg(y); ok {
		return Add(x, yn)
	}
	if xn, ok := negArg(x); ok {
		return Neg(Add(xn, y))
	}
	if isSum(x) || isSum(y) {
		return sum([]term{{coef: 1, e: x}, {coef: -1, e: y}})
	}
	cx, rx := factor(x)
	cy, ry := factor(y)
	if rx.Equal(ry) {
		return scale(cx-cy, rx)
	}
	if cy < 0 {
		return Add(x, scale(-cy, ry))
	}
	return mkBinary(ops.Sub, x, y)
}

// term is an expression multiplied by a numeric coefficient.
type term struct {
	coef float64
	e    Expr
}

// Sum returns the sum of all terms.
// Nested sums are flattened, structurally equal terms are grouped
// and numeric literals are folded.
func Sum(terms ...Expr) Expr {
	ts := make([]term, len(terms))
	for i, t := range terms {
		switch t.(type) {
		case *Array, *Assign:
			return foldSum(terms)
		}
		ts[i] = term{coef: 1, e: t}
	}
	return sum(ts)
}

func foldSum(terms []Expr) Expr {
	var r Expr = Zero
	for _, t := range terms {
		r = Add(r, t)
	}
	return r
}

func flatten(dst []term, e Expr, coef float64) []term {
	switch e := e.(type) {
	case *Binary:
		switch e.op {
		case ops.Add:
			dst = flatten(dst, e.left, coef)
			return flatten(dst, e.right, coef)
		case ops.Sub:
			dst = flatten(dst, e.left, coef)
			return flatten(dst, e.right, -coef)
		}
	case *Unary:
		if e.op == ops.Neg {
			return flatten(dst, e.arg, -coef)
		}
	}
	c, r := factor(e)
	return append(dst, term{coef: coef * c, e: r})
}

func sum(terms []term) Expr {
	var flat []term
	for _, t := range terms {
		flat = flatten(flat, t.e, t.coef)
	}
	var residue float64
	var groups []term
	byHash := make(map[uint64][]int)
	for _, t := range flat {
		if isOne(t.e) {
			residue += t.coef
			continue
		}
		h := t.e.Hash()
		found := false
		for _, i := range byHash[h] {
			if groups[i].e.Equal(t.e) {
				groups[i].coef += t.coef
				found = true
				break
			}
		}
		if found {
			continue
		}
		byHash[h] = append(byHash[h], len(groups))
		groups = append(groups, t)
	}
	return assemble(groups, residue)
}

// assemble builds the sum of grouped terms and a numeric residue.
// Positive terms are written first. A sum made only of negative terms is
// written as the negation of a sum of positive terms.
func assemble(groups []term, residue float64) Expr {
	var pos, neg []term
	for _, g := range groups {
		switch {
		case g.coef == 0:
		case g.coef < 0:
			neg = append(neg, g)
		default:
			pos = append(pos, g)
		}
	}
	if len(pos) == 0 && len(neg) == 1 && residue == 0 {
		return scale(neg[0].coef, neg[0].e)
	}
	if len(pos) == 0 && len(neg) > 0 && !(residue > 0) {
		for i := range neg {
			neg[i].coef = -neg[i].coef
		}
		return mkUnary(ops.Neg, assemble(neg, -residue))
	}
	var r Expr
	if len(pos) == 0 && residue > 0 {
		r = NewConst(residue)
		residue = 0
	}
	for _, g := range append(pos, neg...) {
		switch {
		case r == nil:
			r = scale(g.coef, g.e)
		case g.coef < 0:
			r = mkBinary(ops.Sub, r, scale(-g.coef, g.e))
		default:
			r = mkBinary(ops.Add, r, scale(g.coef, g.e))
		}
	}
	switch {
	case r == nil:
		return NewConst(residue)
	case residue < 0:
		return mkBinary(ops.Sub, r, NewConst(-residue))
	case residue != 0:
		return mkBinary(ops.Add, r, NewConst(residue))
	}
	return r
}
