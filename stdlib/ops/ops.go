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

// Package ops is the registry of named operations.
//
// The registry is a static table: unary operators, binary operators and
// named constants live in three disjoint namespaces keyed by the identifiers
// used when parsing and formatting expressions.
package ops

import (
	"slices"

	"github.com/gx-org/cas/build/fmterr"
	"golang.org/x/exp/maps"
)

type (
	// ID identifies an operation in the registry.
	ID string

	// Rule identifies how to differentiate an operator.
	Rule int

	// Strategy is how the compiler lowers an operator.
	Strategy int

	// Collapse describes the result of applying an operator to its inverse.
	Collapse int

	// Unary is a registered unary operator.
	Unary struct {
		ID ID
		// Fn computes the operator on a scalar.
		Fn func(float64) float64
		// Rule to compute the derivative of the operator.
		Rule Rule
		// Strategy to lower the operator to bytecode.
		Strategy Strategy
		// Inverse is the operator g such that this(g(x)) collapses.
		// Empty if the operator has no registered inverse.
		Inverse ID
		// Collapse is the result of this(Inverse(x)).
		Collapse Collapse
	}

	// Binary is a registered binary operator.
	Binary struct {
		ID ID
		// Infix is true if the operator is written between its operands.
		Infix bool
		// Fn computes the operator on two scalars.
		Fn func(float64, float64) float64
		// Rule to compute the derivative of the operator.
		Rule Rule
		// Strategy to lower the operator to bytecode.
		Strategy Strategy
	}

	// Constant is a named constant.
	Constant struct {
		ID    ID
		Value float64
	}
)

// Lowering strategies.
const (
	// Call the registered numeric implementation.
	Call Strategy = iota
	// Primitive arithmetic instruction.
	Primitive
)

// Results of collapsing an operator with its inverse.
const (
	// Identity collapses f(g(x)) to x.
	Identity Collapse = iota
	// Abs collapses f(g(x)) to abs(x).
	Abs
)

// Identifiers of the operators the algebra engine rewrites.
const (
	Add ID = "+"
	Sub ID = "-"
	Mul ID = "*"
	Div ID = "/"
	Pow ID = "^"
	Neg ID = "-"

	AbsOp ID = "abs"
	Sqrt  ID = "sqrt"
	Sqr   ID = "sqr"
	Exp   ID = "exp"
	Ln    ID = "ln"
	Sign  ID = "sign"
)

// String returns the identifier.
func (id ID) String() string {
	return string(id)
}

// LookupUnary returns a unary operator given its identifier.
func LookupUnary(id ID) (*Unary, error) {
	op, ok := unaries[id]
	if !ok {
		return nil, fmterr.Errorf(fmterr.ErrUnknownOperator, "unary operator %q not registered", id)
	}
	return op, nil
}

// LookupBinary returns a binary operator given its identifier.
func LookupBinary(id ID) (*Binary, error) {
	op, ok := binaries[id]
	if !ok {
		return nil, fmterr.Errorf(fmterr.ErrUnknownOperator, "binary operator %q not registered", id)
	}
	return op, nil
}

// LookupConstant returns a named constant given its identifier.
func LookupConstant(id ID) (*Constant, error) {
	cst, ok := constants[id]
	if !ok {
		return nil, fmterr.Errorf(fmterr.ErrUnknownOperator, "constant %q not registered", id)
	}
	return cst, nil
}

// MustUnary returns a unary operator registered by this package.
// It panics if the operator does not exist.
func MustUnary(id ID) *Unary {
	op, err := LookupUnary(id)
	if err != nil {
		panic(fmterr.Internal(err))
	}
	return op
}

// MustBinary returns a binary operator registered by this package.
// It panics if the operator does not exist.
func MustBinary(id ID) *Binary {
	op, err := LookupBinary(id)
	if err != nil {
		panic(fmterr.Internal(err))
	}
	return op
}

func sortedIDs[V any](m map[ID]V) []ID {
	ids := maps.Keys(m)
	slices.Sort(ids)
	return ids
}

// UnaryIDs returns the identifiers of all unary operators in lexical order.
func UnaryIDs() []ID {
	return sortedIDs(unaries)
}

// BinaryIDs returns the identifiers of all binary operators in lexical order.
func BinaryIDs() []ID {
	return sortedIDs(binaries)
}

// ConstantIDs returns the identifiers of all named constants in lexical order.
func ConstantIDs() []ID {
	return sortedIDs(constants)
}
