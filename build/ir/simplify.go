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
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/gx-org/cas/build/fmterr"
	"github.com/gx-org/cas/stdlib/ops"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("cas.ir")
}

// DefaultMaxIterations is the default maximum number of rewriting passes
// of Simplify.
const DefaultMaxIterations = 64

type simplifyOptions struct {
	maxIterations int
}

// SimplifyOption configures Simplify.
type SimplifyOption func(*simplifyOptions)

// MaxIterations sets the maximum number of rewriting passes.
func MaxIterations(n int) SimplifyOption {
	return func(opts *simplifyOptions) {
		opts.maxIterations = n
	}
}

// Simplify rebuilds an expression bottom-up with the constructors
// until a pass leaves the expression unchanged.
// It returns an error if the expression did not converge within the
// maximum number of passes.
func Simplify(e Expr, options ...SimplifyOption) (Expr, error) {
	opts := simplifyOptions{maxIterations: DefaultMaxIterations}
	for _, opt := range options {
		opt(&opts)
	}
	for i := 0; i < opts.maxIterations; i++ {
		next, err := Rebuild(e)
		if err != nil {
			return nil, err
		}
		if next.Equal(e) {
			tracer().Debugf("simplify: %s converged after %d pass(es)", next, i+1)
			return next, nil
		}
		e = next
	}
	tracer().Errorf("simplify: %s did not converge after %d passes", e, opts.maxIterations)
	return e, fmterr.Errorf(fmterr.ErrIterationLimit, "simplify did not converge after %d passes: last expression is %s", opts.maxIterations, e)
}

// Rebuild constructs an expression again from its leaves using the constructors.
func Rebuild(e Expr) (Expr, error) {
	return Transform(e, func(e Expr) (Expr, bool, error) {
		return nil, false, nil
	})
}

// Transform rebuilds an expression bottom-up with the constructors.
// For each node, f is called first: if it returns true, the node is replaced
// by the expression returned by f and its children are not visited.
func Transform(e Expr, f func(Expr) (Expr, bool, error)) (Expr, error) {
	r, done, err := f(e)
	if err != nil || done {
		return r, err
	}
	switch e := e.(type) {
	case *Const, *NamedConst, *Variable:
		return e, nil
	case *Unary:
		arg, err := Transform(e.arg, f)
		if err != nil {
			return nil, err
		}
		return Apply(e.op, arg)
	case *Binary:
		left, err := Transform(e.left, f)
		if err != nil {
			return nil, err
		}
		right, err := Transform(e.right, f)
		if err != nil {
			return nil, err
		}
		return ApplyBinary(e.op, left, right)
	case *Array:
		elems := make([]Expr, len(e.elems))
		for i, el := range e.elems {
			if elems[i], err = Transform(el, f); err != nil {
				return nil, err
			}
		}
		return NewArray(elems...)
	case *Assign:
		left, err := Transform(e.left, f)
		if err != nil {
			return nil, err
		}
		right, err := Transform(e.right, f)
		if err != nil {
			return nil, err
		}
		return NewAssign(left, right), nil
	}
	return nil, fmterr.Internalf("expression type %T not supported", e)
}

// Substitute replaces variables by expressions.
// Named constants are never substituted.
func Substitute(e Expr, vals map[string]Expr) (Expr, error) {
	return Transform(e, func(e Expr) (Expr, bool, error) {
		v, ok := e.(*Variable)
		if !ok {
			return nil, false, nil
		}
		val, ok := vals[v.name]
		if !ok {
			return v, true, nil
		}
		return val, true, nil
	})
}

// Walk calls f for all the nodes of an expression, parents first.
// Children of a node are not visited if f returns false.
func Walk(e Expr, f func(Expr) bool) {
	if !f(e) {
		return
	}
	switch e := e.(type) {
	case *Unary:
		Walk(e.arg, f)
	case *Binary:
		Walk(e.left, f)
		Walk(e.right, f)
	case *Array:
		for _, el := range e.elems {
			Walk(el, f)
		}
	case *Assign:
		Walk(e.left, f)
		Walk(e.right, f)
	}
}

// FreeVariables returns the variables of an expression sorted by name.
func FreeVariables(e Expr) []*Variable {
	names := treeset.NewWithStringComparator()
	Walk(e, func(e Expr) bool {
		if v, ok := e.(*Variable); ok {
			names.Add(v.name)
		}
		return true
	})
	vars := make([]*Variable, 0, names.Size())
	for _, name := range names.Values() {
		vars = append(vars, NewVariable(name.(string)))
	}
	return vars
}

// HasVariable returns true if a variable occurs in an expression.
func HasVariable(e Expr, name string) bool {
	found := false
	Walk(e, func(e Expr) bool {
		if v, ok := e.(*Variable); ok && v.name == name {
			found = true
		}
		return !found
	})
	return found
}

// IsConstant returns true if an expression does not depend on any variable.
// Named constants are considered constant only if includeNamed is true.
func IsConstant(e Expr, includeNamed bool) bool {
	constant := true
	Walk(e, func(e Expr) bool {
		switch e.(type) {
		case *Variable:
			constant = false
		case *NamedConst:
			constant = constant && includeNamed
		}
		return constant
	})
	return constant
}

// IsNeg returns true if the expression is a negation.
func IsNeg(e Expr) bool {
	u, ok := e.(*Unary)
	return ok && u.op == ops.Neg
}
