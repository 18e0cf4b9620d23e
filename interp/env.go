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

package interp

import (
	"github.com/gx-org/cas/base/ordered"
	"github.com/gx-org/cas/build/fmterr"
	"github.com/gx-org/cas/build/ir"
)

// Env binds variable names to values.
//
// Lookups fall back on the parent environment, if any, which
// typically stores default values.
type Env struct {
	parent *Env
	vars   *ordered.Map[string, float64]
}

// NewEnv returns a new environment. parent can be nil.
func NewEnv(parent *Env) *Env {
	return &Env{
		parent: parent,
		vars:   ordered.NewMap[string, float64](),
	}
}

// Bind returns a new environment binding parameters to arguments.
// Lookups of other variables fall back on defaults, which can be nil.
func Bind(defaults *Env, params []*ir.Variable, args []float64) (*Env, error) {
	if len(params) != len(args) {
		return nil, fmterr.Errorf(fmterr.ErrArity, "got %d arguments but want %d", len(args), len(params))
	}
	env := NewEnv(defaults)
	for i, param := range params {
		env.Set(param.Name(), args[i])
	}
	return env, nil
}

// Set the value of a variable in the environment.
// It returns the environment to chain calls.
func (env *Env) Set(name string, value float64) *Env {
	env.vars.Store(name, value)
	return env
}

// Parent returns the environment this environment falls back on.
func (env *Env) Parent() *Env {
	return env.parent
}

// Lookup returns the value of a variable.
func (env *Env) Lookup(name string) (float64, error) {
	for cur := env; cur != nil; cur = cur.parent {
		if v, ok := cur.vars.Load(name); ok {
			return v, nil
		}
	}
	return 0, fmterr.Errorf(fmterr.ErrUnboundVariable, "%s", name)
}

// Names returns the names of the variables bound in this environment,
// excluding its parents, in the order they were first set.
func (env *Env) Names() []string {
	var names []string
	for name := range env.vars.Keys() {
		names = append(names, name)
	}
	return names
}
