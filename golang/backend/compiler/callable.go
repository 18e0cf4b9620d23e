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

package compiler

import (
	"reflect"
	"sync"

	"github.com/gx-org/cas/api/values"
	"github.com/gx-org/cas/build/fmterr"
	"github.com/gx-org/cas/build/ir"
	"github.com/gx-org/cas/golang/backend/vm"
	"go.uber.org/multierr"
)

// Callable is a compiled function.
type Callable struct {
	fn   *ir.Function
	prog *vm.Program
}

// Function returns the function from which the callable has been compiled.
func (c *Callable) Function() *ir.Function {
	return c.fn
}

// Program returns the compiled program.
func (c *Callable) Program() *vm.Program {
	return c.prog
}

// Arity returns the number of arguments of the callable.
func (c *Callable) Arity() int {
	return c.prog.Arity()
}

// Rank returns the rank of the result.
func (c *Callable) Rank() int {
	return c.prog.Rank
}

// Call the function and returns its result as a quantity.
func (c *Callable) Call(args ...float64) (values.Quantity, error) {
	r, err := c.prog.Run(args...)
	if err != nil {
		return values.Quantity{}, err
	}
	switch rT := r.(type) {
	case float64:
		return values.Scalar(rT), nil
	case []float64:
		return values.Vector(rT...), nil
	case [][]float64:
		return values.Matrix(rT...)
	default:
		return values.Quantity{}, fmterr.Internalf("program returned a value of type %T", r)
	}
}

func (c *Callable) checkRank(rank int) error {
	if c.Rank() != rank {
		return fmterr.Errorf(fmterr.ErrDimensionMismatch, "%s returns a value of rank %d but want rank %d", c.prog.Name, c.Rank(), rank)
	}
	return nil
}

// Scalar calls a function returning a scalar.
func (c *Callable) Scalar(args ...float64) (float64, error) {
	return c.prog.RunScalar(args...)
}

// Vector calls a function returning a vector.
func (c *Callable) Vector(args ...float64) ([]float64, error) {
	if err := c.checkRank(1); err != nil {
		return nil, err
	}
	r, err := c.prog.Run(args...)
	if err != nil {
		return nil, err
	}
	return r.([]float64), nil
}

// Matrix calls a function returning a matrix.
func (c *Callable) Matrix(args ...float64) ([][]float64, error) {
	if err := c.checkRank(2); err != nil {
		return nil, err
	}
	r, err := c.prog.Run(args...)
	if err != nil {
		return nil, err
	}
	return r.([][]float64), nil
}

var (
	float64Type = reflect.TypeFor[float64]()
	resultTypes = []reflect.Type{
		float64Type,
		reflect.TypeFor[[]float64](),
		reflect.TypeFor[[][]float64](),
	}
)

// Func returns the callable as a native Go function.
// The function has one float64 parameter per argument and returns a float64,
// a []float64, or a [][]float64 depending on the rank of the result.
// For example, a function f(x, y) returning a scalar is returned as
// a func(float64, float64) float64.
func (c *Callable) Func() any {
	in := make([]reflect.Type, c.Arity())
	for i := range in {
		in[i] = float64Type
	}
	typ := reflect.FuncOf(in, []reflect.Type{resultTypes[c.Rank()]}, false)
	return reflect.MakeFunc(typ, func(vals []reflect.Value) []reflect.Value {
		args := make([]float64, len(vals))
		for i, val := range vals {
			args[i] = val.Float()
		}
		r, err := c.prog.Run(args...)
		if err != nil {
			// The arity is enforced by the type of the function.
			panic(fmterr.Internal(err))
		}
		return []reflect.Value{reflect.ValueOf(r)}
	}).Interface()
}

// CompileAll compiles functions concurrently.
// All compilation errors are returned.
func CompileAll(fns []*ir.Function, opts ...Option) ([]*Callable, error) {
	callables := make([]*Callable, len(fns))
	errs := make([]error, len(fns))
	var wg sync.WaitGroup
	for i, fn := range fns {
		wg.Add(1)
		go func() {
			defer wg.Done()
			callables[i], errs[i] = Compile(fn, opts...)
		}()
	}
	wg.Wait()
	if err := multierr.Combine(errs...); err != nil {
		return nil, err
	}
	return callables, nil
}
