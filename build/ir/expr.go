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

// Package ir is the intermediate representation of algebraic expressions.
//
// Expressions are immutable trees. Nodes can only be built with the
// constructors of this package: each constructor applies a fixed list of
// local rewrite rules so that every expression is kept in a canonical,
// partially simplified form.
package ir

import (
	"math"
	"strings"

	"github.com/gx-org/cas/stdlib/ops"
)

type (
	// Expr is an algebraic expression.
	Expr interface {
		// Rank of the expression: 0 for a scalar, 1 for a vector, 2 for a matrix.
		Rank() int
		// Hash returns a structural hash of the expression.
		Hash() uint64
		// Equal returns true if two expressions are structurally equal.
		Equal(Expr) bool
		// String returns the infix representation of the expression.
		String() string

		precedence() int
		format(*strings.Builder)
	}

	// Const is a numeric literal.
	Const struct {
		value float64
		hash  uint64
	}

	// NamedConst is a numeric literal bound to a protected identifier.
	NamedConst struct {
		name  string
		value float64
		hash  uint64
	}

	// Variable is a free symbol.
	Variable struct {
		name string
		hash uint64
	}

	// Unary applies a registered operator to an expression.
	Unary struct {
		op   ops.ID
		arg  Expr
		hash uint64
	}

	// Binary applies a registered operator to two expressions.
	Binary struct {
		op          ops.ID
		left, right Expr
		hash        uint64
	}

	// Array is a vector or a matrix.
	Array struct {
		elems []Expr
		rank  int
		hash  uint64
	}

	// Assign is an equation between two expressions.
	Assign struct {
		left, right Expr
		hash        uint64
	}
)

var (
	_ Expr = (*Const)(nil)
	_ Expr = (*NamedConst)(nil)
	_ Expr = (*Variable)(nil)
	_ Expr = (*Unary)(nil)
	_ Expr = (*Binary)(nil)
	_ Expr = (*Array)(nil)
	_ Expr = (*Assign)(nil)
)

// Interned constants.
var (
	Zero     = newConst(0)
	One      = newConst(1)
	MinusOne = newConst(-1)
)

func newConst(v float64) *Const {
	return &Const{value: v, hash: newHash(kindConst).float(v).sum()}
}

// NewConst returns a numeric literal.
func NewConst(v float64) *Const {
	switch v {
	case 0:
		return Zero
	case 1:
		return One
	case -1:
		return MinusOne
	}
	return newConst(v)
}

// Value of the literal.
func (c *Const) Value() float64 {
	return c.value
}

// Rank of a literal is 0.
func (c *Const) Rank() int { return 0 }

// Hash returns a structural hash of the expression.
func (c *Const) Hash() uint64 { return c.hash }

// Equal returns true if e is a literal with the same value.
func (c *Const) Equal(e Expr) bool {
	other, ok := e.(*Const)
	if !ok {
		return false
	}
	return other == c || sameFloat(other.value, c.value)
}

func sameFloat(x, y float64) bool {
	return x == y || (math.IsNaN(x) && math.IsNaN(y))
}

// NamedConstant returns the named constant registered with a given name.
func NamedConstant(name string) (*NamedConst, error) {
	cst, err := ops.LookupConstant(ops.ID(name))
	if err != nil {
		return nil, err
	}
	return &NamedConst{
		name:  name,
		value: cst.Value,
		hash:  newHash(kindNamedConst).str(name).sum(),
	}, nil
}

// Name of the constant.
func (c *NamedConst) Name() string {
	return c.name
}

// Value of the constant.
func (c *NamedConst) Value() float64 {
	return c.value
}

// Rank of a named constant is 0.
func (c *NamedConst) Rank() int { return 0 }

// Hash returns a structural hash of the expression.
func (c *NamedConst) Hash() uint64 { return c.hash }

// Equal returns true if e is the same named constant.
func (c *NamedConst) Equal(e Expr) bool {
	other, ok := e.(*NamedConst)
	return ok && other.name == c.name
}

// NewVariable returns a free symbol.
func NewVariable(name string) *Variable {
	return &Variable{
		name: name,
		hash: newHash(kindVariable).str(name).sum(),
	}
}

// Name of the variable.
func (v *Variable) Name() string {
	return v.name
}

// Rank of a variable is 0.
func (v *Variable) Rank() int { return 0 }

// Hash returns a structural hash of the expression.
func (v *Variable) Hash() uint64 { return v.hash }

// Equal returns true if e is a variable with the same name.
func (v *Variable) Equal(e Expr) bool {
	other, ok := e.(*Variable)
	return ok && other.name == v.name
}

func mkUnary(op ops.ID, arg Expr) *Unary {
	return &Unary{
		op:   op,
		arg:  arg,
		hash: newHash(kindUnary).str(string(op)).sub(arg).sum(),
	}
}

// Op returns the identifier of the operator.
func (u *Unary) Op() ops.ID {
	return u.op
}

// Arg returns the operand.
func (u *Unary) Arg() Expr {
	return u.arg
}

// Rank of the operand.
func (u *Unary) Rank() int { return u.arg.Rank() }

// Hash returns a structural hash of the expression.
func (u *Unary) Hash() uint64 { return u.hash }

// Equal returns true if e applies the same operator to an equal operand.
func (u *Unary) Equal(e Expr) bool {
	other, ok := e.(*Unary)
	if !ok {
		return false
	}
	if other == u {
		return true
	}
	return other.hash == u.hash && other.op == u.op && other.arg.Equal(u.arg)
}

func mkBinary(op ops.ID, left, right Expr) *Binary {
	return &Binary{
		op:    op,
		left:  left,
		right: right,
		hash:  newHash(kindBinary).str(string(op)).sub(left).sub(right).sum(),
	}
}

// Op returns the identifier of the operator.
func (b *Binary) Op() ops.ID {
	return b.op
}

// Left operand.
func (b *Binary) Left() Expr {
	return b.left
}

// Right operand.
func (b *Binary) Right() Expr {
	return b.right
}

// Rank is the largest rank of the operands.
func (b *Binary) Rank() int { return max(b.left.Rank(), b.right.Rank()) }

// Hash returns a structural hash of the expression.
func (b *Binary) Hash() uint64 { return b.hash }

// Equal returns true if e applies the same operator to equal operands.
func (b *Binary) Equal(e Expr) bool {
	other, ok := e.(*Binary)
	if !ok {
		return false
	}
	if other == b {
		return true
	}
	return other.hash == b.hash &&
		other.op == b.op &&
		other.left.Equal(b.left) &&
		other.right.Equal(b.right)
}

func mkArray(elems []Expr, rank int) *Array {
	h := newHash(kindArray)
	for _, el := range elems {
		h = h.sub(el)
	}
	return &Array{elems: elems, rank: rank, hash: h.sum()}
}

// Len returns the number of elements in the array.
func (a *Array) Len() int {
	return len(a.elems)
}

// At returns the ith element of the array.
func (a *Array) At(i int) Expr {
	return a.elems[i]
}

// Elements returns a copy of the elements of the array.
func (a *Array) Elements() []Expr {
	return append([]Expr{}, a.elems...)
}

// Rank of the array: 1 for a vector, 2 for a matrix.
func (a *Array) Rank() int { return a.rank }

// Hash returns a structural hash of the expression.
func (a *Array) Hash() uint64 { return a.hash }

// Equal returns true if e is an array with equal elements.
func (a *Array) Equal(e Expr) bool {
	other, ok := e.(*Array)
	if !ok {
		return false
	}
	if other == a {
		return true
	}
	if other.hash != a.hash || len(other.elems) != len(a.elems) {
		return false
	}
	for i, el := range a.elems {
		if !el.Equal(other.elems[i]) {
			return false
		}
	}
	return true
}

func mkAssign(left, right Expr) *Assign {
	return &Assign{
		left:  left,
		right: right,
		hash:  newHash(kindAssign).sub(left).sub(right).sum(),
	}
}

// Left side of the equation.
func (a *Assign) Left() Expr {
	return a.left
}

// Right side of the equation.
func (a *Assign) Right() Expr {
	return a.right
}

// Rank is the largest rank of both sides.
func (a *Assign) Rank() int { return max(a.left.Rank(), a.right.Rank()) }

// Hash returns a structural hash of the expression.
func (a *Assign) Hash() uint64 { return a.hash }

// Equal returns true if e is an equation with equal sides.
func (a *Assign) Equal(e Expr) bool {
	other, ok := e.(*Assign)
	if !ok {
		return false
	}
	if other == a {
		return true
	}
	return other.hash == a.hash && other.left.Equal(a.left) && other.right.Equal(a.right)
}

// Elements returns the elements of an expression if it is an array.
// Any other expression is returned as a sequence of one element.
func Elements(e Expr) []Expr {
	if a, ok := e.(*Array); ok {
		return a.elems
	}
	return []Expr{e}
}
