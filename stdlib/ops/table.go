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

package ops

import "math"

// Derivative rules.
const (
	// NoRule marks an operator that cannot be differentiated.
	NoRule Rule = iota
	// RuleZero marks an operator with a derivative of zero almost everywhere.
	RuleZero

	RuleNeg
	RuleAbs
	RuleSqrt
	RuleSqr
	RuleInv
	RuleExp
	RuleLn
	RuleLog10
	RuleSin
	RuleCos
	RuleTan
	RuleAsin
	RuleAcos
	RuleAtan
	RuleSinh
	RuleCosh
	RuleTanh
	RuleAsinh
	RuleAcosh
	RuleAtanh

	RuleAdd
	RuleSub
	RuleMul
	RuleDiv
	RulePow
	RuleAtan2
	RuleHypot
)

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return x
}

var unaries = map[ID]*Unary{
	Neg: {
		ID:       Neg,
		Fn:       func(x float64) float64 { return -x },
		Rule:     RuleNeg,
		Strategy: Primitive,
		Inverse:  Neg,
	},
	AbsOp:   {ID: AbsOp, Fn: math.Abs, Rule: RuleAbs},
	Sign:    {ID: Sign, Fn: sign, Rule: RuleZero},
	Sqrt:    {ID: Sqrt, Fn: math.Sqrt, Rule: RuleSqrt, Inverse: Sqr, Collapse: Abs},
	Sqr:     {ID: Sqr, Fn: func(x float64) float64 { return x * x }, Rule: RuleSqr, Inverse: Sqrt},
	"inv":   {ID: "inv", Fn: func(x float64) float64 { return 1 / x }, Rule: RuleInv, Inverse: "inv"},
	Exp:     {ID: Exp, Fn: math.Exp, Rule: RuleExp, Inverse: Ln},
	Ln:      {ID: Ln, Fn: math.Log, Rule: RuleLn, Inverse: Exp},
	"log10": {ID: "log10", Fn: math.Log10, Rule: RuleLog10},
	"sin":   {ID: "sin", Fn: math.Sin, Rule: RuleSin, Inverse: "asin"},
	"cos":   {ID: "cos", Fn: math.Cos, Rule: RuleCos, Inverse: "acos"},
	"tan":   {ID: "tan", Fn: math.Tan, Rule: RuleTan, Inverse: "atan"},
	// asin(sin(x)), acos(cos(x)) and atan(tan(x)) collapse to x. This only
	// holds when x is in the principal branch of the inverse function.
	"asin":  {ID: "asin", Fn: math.Asin, Rule: RuleAsin, Inverse: "sin"},
	"acos":  {ID: "acos", Fn: math.Acos, Rule: RuleAcos, Inverse: "cos"},
	"atan":  {ID: "atan", Fn: math.Atan, Rule: RuleAtan, Inverse: "tan"},
	"sinh":  {ID: "sinh", Fn: math.Sinh, Rule: RuleSinh, Inverse: "asinh"},
	"cosh":  {ID: "cosh", Fn: math.Cosh, Rule: RuleCosh, Inverse: "acosh"},
	"tanh":  {ID: "tanh", Fn: math.Tanh, Rule: RuleTanh, Inverse: "atanh"},
	"asinh": {ID: "asinh", Fn: math.Asinh, Rule: RuleAsinh, Inverse: "sinh"},
	"acosh": {ID: "acosh", Fn: math.Acosh, Rule: RuleAcosh, Inverse: "cosh", Collapse: Abs},
	"atanh": {ID: "atanh", Fn: math.Atanh, Rule: RuleAtanh, Inverse: "tanh"},
	"floor": {ID: "floor", Fn: math.Floor, Rule: RuleZero},
	"ceil":  {ID: "ceil", Fn: math.Ceil, Rule: RuleZero},
	"round": {ID: "round", Fn: math.Round},
}

var binaries = map[ID]*Binary{
	Add: {
		ID:       Add,
		Infix:    true,
		Fn:       func(x, y float64) float64 { return x + y },
		Rule:     RuleAdd,
		Strategy: Primitive,
	},
	Sub: {
		ID:       Sub,
		Infix:    true,
		Fn:       func(x, y float64) float64 { return x - y },
		Rule:     RuleSub,
		Strategy: Primitive,
	},
	Mul: {
		ID:       Mul,
		Infix:    true,
		Fn:       func(x, y float64) float64 { return x * y },
		Rule:     RuleMul,
		Strategy: Primitive,
	},
	Div: {
		ID:       Div,
		Infix:    true,
		Fn:       func(x, y float64) float64 { return x / y },
		Rule:     RuleDiv,
		Strategy: Primitive,
	},
	Pow:     {ID: Pow, Infix: true, Fn: math.Pow, Rule: RulePow},
	"atan2": {ID: "atan2", Fn: math.Atan2, Rule: RuleAtan2},
	"hypot": {ID: "hypot", Fn: math.Hypot, Rule: RuleHypot},
	"min":   {ID: "min", Fn: math.Min},
	"max":   {ID: "max", Fn: math.Max},
	"mod":   {ID: "mod", Fn: math.Mod},
}

var constants = map[ID]*Constant{
	"pi":  {ID: "pi", Value: math.Pi},
	"e":   {ID: "e", Value: math.E},
	"tau": {ID: "tau", Value: 2 * math.Pi},
	"phi": {ID: "phi", Value: math.Phi},
}
