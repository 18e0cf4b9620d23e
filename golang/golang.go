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

// Package golang provides everything required to run expressions from Go.
//
// It chains the parser, the interpreter and the compiler so that a
// source string can be evaluated or turned into a native Go function.
package golang

import (
	"maps"
	"slices"

	"github.com/gx-org/cas/api/values"
	"github.com/gx-org/cas/build/fmterr"
	"github.com/gx-org/cas/build/ir"
	"github.com/gx-org/cas/build/parser"
	"github.com/gx-org/cas/golang/backend/compiler"
	"github.com/gx-org/cas/interp"
)

// Eval parses an expression and evaluates it given values for its variables.
func Eval(src string, vars map[string]float64) (values.Quantity, error) {
	e, err := parser.Parse(src)
	if err != nil {
		return values.Quantity{}, err
	}
	env := interp.NewEnv(nil)
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		env.Set(name, vars[name])
	}
	return interp.Eval(e, env)
}

// Compile parses an expression and compiles it as a function of the given parameters.
func Compile(name, src string, params []string, opts ...compiler.Option) (*compiler.Callable, error) {
	body, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	vars := make([]*ir.Variable, len(params))
	for i, p := range params {
		vars[i] = ir.NewVariable(p)
	}
	f, err := ir.NewFunction(name, body, vars...)
	if err != nil {
		return nil, fmterr.PrefixWith("%s: ", name)(err)
	}
	return compiler.Compile(f, append([]compiler.Option{compiler.WithName(name)}, opts...)...)
}

// Func parses an expression and returns it as a native Go function of the given parameters.
// See compiler.Callable.Func for the signature of the returned function.
func Func(src string, params ...string) (any, error) {
	c, err := Compile("f", src, params)
	if err != nil {
		return nil, err
	}
	return c.Func(), nil
}
