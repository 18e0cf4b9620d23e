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
	"strconv"
	"strings"

	"github.com/gx-org/cas/stdlib/ops"
)

// Precedence levels, from the lowest to the highest.
const (
	precAssign = iota + 1
	precSum
	precProduct
	precPower
	precUnary
	precPrimary
)

func binaryPrecedence(op ops.ID) int {
	switch op {
	case ops.Add, ops.Sub:
		return precSum
	case ops.Mul, ops.Div:
		return precProduct
	case ops.Pow:
		return precPower
	}
	return precPrimary
}

func toString(e Expr) string {
	var w strings.Builder
	e.format(&w)
	return w.String()
}

func writeOperand(w *strings.Builder, e Expr, parens bool) {
	if parens {
		w.WriteString("(")
	}
	e.format(w)
	if parens {
		w.WriteString(")")
	}
}

// formatFloat writes non-finite values as the quotients they fold from
// so that the output can be parsed back.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "0/0"
	case math.IsInf(v, 1):
		return "1/0"
	case math.IsInf(v, -1):
		return "-1/0"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (c *Const) precedence() int {
	if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
		return precProduct
	}
	if c.value < 0 {
		return precUnary
	}
	return precPrimary
}

func (c *Const) format(w *strings.Builder) {
	w.WriteString(formatFloat(c.value))
}

// String returns the literal value.
func (c *Const) String() string { return toString(c) }

func (c *NamedConst) precedence() int { return precPrimary }

func (c *NamedConst) format(w *strings.Builder) {
	w.WriteString(c.name)
}

// String returns the name of the constant.
func (c *NamedConst) String() string { return toString(c) }

func (v *Variable) precedence() int { return precPrimary }

func (v *Variable) format(w *strings.Builder) {
	w.WriteString(v.name)
}

// String returns the name of the variable.
func (v *Variable) String() string { return toString(v) }

func (u *Unary) precedence() int {
	if u.op == ops.Neg {
		return precUnary
	}
	return precPrimary
}

func (u *Unary) format(w *strings.Builder) {
	if u.op == ops.Neg {
		w.WriteString("-")
		writeOperand(w, u.arg, u.arg.precedence() < precUnary)
		return
	}
	w.WriteString(string(u.op))
	w.WriteString("(")
	u.arg.format(w)
	w.WriteString(")")
}

// String returns the infix representation of the expression.
func (u *Unary) String() string { return toString(u) }

func (b *Binary) precedence() int {
	return binaryPrecedence(b.op)
}

func (b *Binary) format(w *strings.Builder) {
	prec := b.precedence()
	if prec == precPrimary {
		w.WriteString(string(b.op))
		w.WriteString("(")
		b.left.format(w)
		w.WriteString(", ")
		b.right.format(w)
		w.WriteString(")")
		return
	}
	leftPrec, rightPrec := b.left.precedence(), b.right.precedence()
	if prec == precPower {
		// Power is right associative.
		writeOperand(w, b.left, leftPrec <= prec)
		w.WriteString("^")
		writeOperand(w, b.right, rightPrec < prec)
		return
	}
	writeOperand(w, b.left, leftPrec < prec)
	if prec == precSum {
		w.WriteString(" " + string(b.op) + " ")
	} else {
		w.WriteString(string(b.op))
	}
	writeOperand(w, b.right, rightPrec <= prec)
}

// String returns the infix representation of the expression.
func (b *Binary) String() string { return toString(b) }

func (a *Array) precedence() int { return precPrimary }

func (a *Array) format(w *strings.Builder) {
	w.WriteString("[")
	for i, el := range a.elems {
		if i > 0 {
			w.WriteString(", ")
		}
		el.format(w)
	}
	w.WriteString("]")
}

// String returns the elements of the array between brackets.
func (a *Array) String() string { return toString(a) }

func (a *Assign) precedence() int { return precAssign }

func (a *Assign) format(w *strings.Builder) {
	writeOperand(w, a.left, a.left.precedence() <= precAssign)
	w.WriteString(" = ")
	writeOperand(w, a.right, a.right.precedence() <= precAssign)
}

// String returns the equation.
func (a *Assign) String() string { return toString(a) }
