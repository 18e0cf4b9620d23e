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
	"math"

	"github.com/gx-org/cas/build/ir"
	"github.com/gx-org/cas/stdlib/ops"
)

type (
	// unaryRule returns the derivative f'(u) of a unary operator f.
	// The chain rule multiplies u' by the result.
	unaryRule func(u ir.Expr) ir.Expr

	// binaryRule returns the derivative of f(u, v) given u, v, u' and v'.
	binaryRule func(u, v, du, dv ir.Expr) ir.Expr
)

var (
	two  = ir.NewConst(2)
	ln10 = ir.NewConst(math.Ln10)
)

func call(id ops.ID, x ir.Expr) ir.Expr {
	return ir.MustApply(id, x)
}

func sqr(x ir.Expr) ir.Expr {
	return ir.Pow(x, two)
}

var unaryRules = map[ops.Rule]unaryRule{
	ops.RuleZero: func(ir.Expr) ir.Expr { return ir.Zero },
	ops.RuleNeg:  func(ir.Expr) ir.Expr { return ir.MinusOne },
	ops.RuleAbs:  func(u ir.Expr) ir.Expr { return call(ops.Sign, u) },
	ops.RuleSqrt: func(u ir.Expr) ir.Expr {
		return ir.Div(ir.One, ir.Mul(two, call(ops.Sqrt, u)))
	},
	ops.RuleSqr: func(u ir.Expr) ir.Expr { return ir.Mul(two, u) },
	ops.RuleInv: func(u ir.Expr) ir.Expr {
		return ir.Neg(ir.Div(ir.One, sqr(u)))
	},
	ops.RuleExp:   func(u ir.Expr) ir.Expr { return call(ops.Exp, u) },
	ops.RuleLn:    func(u ir.Expr) ir.Expr { return ir.Div(ir.One, u) },
	ops.RuleLog10: func(u ir.Expr) ir.Expr { return ir.Div(ir.One, ir.Mul(ln10, u)) },
	ops.RuleSin:   func(u ir.Expr) ir.Expr { return call("cos", u) },
	ops.RuleCos:   func(u ir.Expr) ir.Expr { return ir.Neg(call("sin", u)) },
	ops.RuleTan: func(u ir.Expr) ir.Expr {
		return ir.Div(ir.One, sqr(call("cos", u)))
	},
	ops.RuleAsin: func(u ir.Expr) ir.Expr {
		return ir.Div(ir.One, call(ops.Sqrt, ir.Sub(ir.One, sqr(u))))
	},
	ops.RuleAcos: func(u ir.Expr) ir.Expr {
		return ir.Neg(ir.Div(ir.One, call(ops.Sqrt, ir.Sub(ir.One, sqr(u)))))
	},
	ops.RuleAtan: func(u ir.Expr) ir.Expr {
		return ir.Div(ir.One, ir.Add(ir.One, sqr(u)))
	},
	ops.RuleSinh: func(u ir.Expr) ir.Expr { return call("cosh", u) },
	ops.RuleCosh: func(u ir.Expr) ir.Expr { return call("sinh", u) },
	ops.RuleTanh: func(u ir.Expr) ir.Expr {
		return ir.Sub(ir.One, sqr(call("tanh", u)))
	},
	ops.RuleAsinh: func(u ir.Expr) ir.Expr {
		return ir.Div(ir.One, call(ops.Sqrt, ir.Add(sqr(u), ir.One)))
	},
	ops.RuleAcosh: func(u ir.Expr) ir.Expr {
		return ir.Div(ir.One, call(ops.Sqrt, ir.Sub(sqr(u), ir.One)))
	},
	ops.RuleAtanh: func(u ir.Expr) ir.Expr {
		return ir.Div(ir.One, ir.Sub(ir.One, sqr(u)))
	},
}

var binaryRules = map[ops.Rule]binaryRule{
	ops.RuleAdd: func(_, _, du, dv ir.Expr) ir.Expr {
		return ir.Add(du, dv)
	},
	ops.RuleSub: func(_, _, du, dv ir.Expr) ir.Expr {
		return ir.Sub(du, dv)
	},
	ops.RuleMul: func(u, v, du, dv ir.Expr) ir.Expr {
		return ir.Add(ir.Mul(du, v), ir.Mul(u, dv))
	},
	ops.RuleDiv: func(u, v, du, dv ir.Expr) ir.Expr {
		return ir.Div(ir.Sub(ir.Mul(du, v), ir.Mul(u, dv)), sqr(v))
	},
	// d(u^v) = u^(v-1) * (v*u' + u*ln(u)*v'), assuming u > 0.
	ops.RulePow: func(u, v, du, dv ir.Expr) ir.Expr {
		return ir.Mul(
			ir.Pow(u, ir.Sub(v, ir.One)),
			ir.Add(ir.Mul(v, du), ir.Mul(ir.Mul(u, call(ops.Ln, u)), dv)),
		)
	},
	// atan2(u, v) is the angle of the point (v, u).
	ops.RuleAtan2: func(u, v, du, dv ir.Expr) ir.Expr {
		return ir.Div(ir.Sub(ir.Mul(v, du), ir.Mul(u, dv)), ir.Add(sqr(u), sqr(v)))
	},
	ops.RuleHypot: func(u, v, du, dv ir.Expr) ir.Expr {
		return ir.Div(ir.Add(ir.Mul(u, du), ir.Mul(v, dv)), ir.MustApplyBinary("hypot", u, v))
	},
}
