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
	"slices"

	"github.com/gx-org/cas/base/stringseq"
	"github.com/gx-org/cas/build/fmterr"
	"go.uber.org/multierr"
)

// Function pairs an expression with an ordered list of parameters.
type Function struct {
	name   string
	body   Expr
	params []*Variable
}

// NewFunction returns a new function.
// Every parameter must occur in the body of the function and can only be
// declared once.
func NewFunction(name string, body Expr, params ...*Variable) (*Function, error) {
	var err error
	seen := make(map[string]bool)
	for _, param := range params {
		if seen[param.name] {
			err = multierr.Append(err, fmterr.Errorf(fmterr.ErrMissingParameter, "parameter %s of %s declared more than once", param.name, name))
			continue
		}
		seen[param.name] = true
		if !HasVariable(body, param.name) {
			err = multierr.Append(err, fmterr.Errorf(fmterr.ErrMissingParameter, "parameter %s does not occur in the body of %s", param.name, name))
		}
	}
	if err != nil {
		return nil, err
	}
	return &Function{
		name:   name,
		body:   body,
		params: append([]*Variable{}, params...),
	}, nil
}

// Name of the function.
func (f *Function) Name() string {
	return f.name
}

// Body of the function.
func (f *Function) Body() Expr {
	return f.body
}

// Params returns the parameters of the function.
func (f *Function) Params() []*Variable {
	return append([]*Variable{}, f.params...)
}

// Arity returns the number of parameters.
func (f *Function) Arity() int {
	return len(f.params)
}

// String representation of the function.
func (f *Function) String() string {
	return f.name + "(" + stringseq.JoinStringer(slices.Values(f.params), ", ") + ") = " + f.body.String()
}
