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

// Package compiler compiles functions into programs for the stack machine.
package compiler

import (
	"math"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/gx-org/cas/build/fmterr"
	"github.com/gx-org/cas/build/ir"
	"github.com/gx-org/cas/golang/backend/vm"
	"github.com/gx-org/cas/interp"
	"github.com/gx-org/cas/stdlib/ops"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("cas.compiler")
}

type (
	options struct {
		defaults *interp.Env
		name     string
	}

	// Option of the compiler.
	Option func(*options)
)

// WithDefaults resolves the variables which are not parameters
// from an environment. Their values are compiled as constants.
func WithDefaults(env *interp.Env) Option {
	return func(opts *options) {
		opts.defaults = env
	}
}

// WithName sets the name of the compiled program.
// The name of the function is used by default.
func WithName(name string) Option {
	return func(opts *options) {
		opts.name = name
	}
}

var primitives = map[ops.ID]vm.Opcode{
	ops.Add: vm.OpAdd,
	ops.Sub: vm.OpSub,
	ops.Mul: vm.OpMul,
	ops.Div: vm.OpDiv,
}

type compiler struct {
	opts   options
	prog   *vm.Program
	params map[string]int
	consts map[uint64]int
	funcs1 map[ops.ID]int
	funcs2 map[ops.ID]int
	// stack tracks the expressions pushed on the operand stack.
	stack *arraystack.Stack
}

// Compile a function into a callable.
// Every call produces a new program.
func Compile(f *ir.Function, opts ...Option) (*Callable, error) {
	c := &compiler{
		opts:   options{name: f.Name()},
		params: make(map[string]int),
		consts: make(map[uint64]int),
		funcs1: make(map[ops.ID]int),
		funcs2: make(map[ops.ID]int),
		stack:  arraystack.New(),
	}
	for _, opt := range opts {
		opt(&c.opts)
	}
	c.prog = &vm.Program{
		Name: c.opts.name,
		Rank: f.Body().Rank(),
	}
	for i, param := range f.Params() {
		c.params[param.Name()] = i
		c.prog.Params = append(c.prog.Params, param.Name())
	}
	if err := c.compileRoot(f.Body()); err != nil {
		return nil, fmterr.PrefixWith("compiling %s: ", c.prog.Name)(err)
	}
	tracer().Debugf("compiled %s:\n%s", f, c.prog)
	return &Callable{fn: f, prog: c.prog}, nil
}

func (c *compiler) emit(op vm.Opcode, arg int, src ir.Expr) error {
	pops, pushes := op.StackEffect()
	for range pops {
		if _, ok := c.stack.Pop(); !ok {
			return fmterr.Internalf("operand stack underflow when emitting %s for %s", op, src)
		}
	}
	for range pushes {
		c.stack.Push(src)
	}
	c.prog.MaxStack = max(c.prog.MaxStack, c.stack.Size())
	c.prog.Code = append(c.prog.Code, vm.Instr{Op: op, Arg: arg})
	return nil
}

func (c *compiler) compileRoot(body ir.Expr) error {
	switch body.Rank() {
	case 0:
		if err := c.compileScalar(body); err != nil {
			return err
		}
		if c.stack.Size() != 1 {
			return fmterr.Internalf("operand stack has %d values at the end of the program", c.stack.Size())
		}
		return nil
	case 1:
		return c.compileVector(body)
	default:
		return c.compileMatrix(body)
	}
}

func (c *compiler) compileVector(e ir.Expr) error {
	elems := ir.Elements(e)
	if err := c.emit(vm.OpVec, len(elems), e); err != nil {
		return err
	}
	for i, el := range elems {
		if err := c.compileScalar(el); err != nil {
			return err
		}
		if err := c.emit(vm.OpSetVec, i, el); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) compileMatrix(e ir.Expr) error {
	rows := ir.Elements(e)
	if err := c.emit(vm.OpMat, len(rows), e); err != nil {
		return err
	}
	for i, row := range rows {
		if err := c.compileVector(row); err != nil {
			return err
		}
		if err := c.emit(vm.OpSetRow, i, row); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) constIndex(v float64) int {
	key := math.Float64bits(v)
	if i, ok := c.consts[key]; ok {
		return i
	}
	i := len(c.prog.Consts)
	c.prog.Consts = append(c.prog.Consts, v)
	c.consts[key] = i
	return i
}

func (c *compiler) compileScalar(e ir.Expr) error {
	switch eT := e.(type) {
	case *ir.Const:
		return c.emit(vm.OpConst, c.constIndex(eT.Value()), e)
	case *ir.NamedConst:
		return c.emit(vm.OpConst, c.constIndex(eT.Value()), e)
	case *ir.Variable:
		return c.compileVariable(eT)
	case *ir.Unary:
		return c.compileUnary(eT)
	case *ir.Binary:
		return c.compileBinary(eT)
	case *ir.Assign:
		if err := c.compileScalar(eT.Left()); err != nil {
			return err
		}
		if err := c.compileScalar(eT.Right()); err != nil {
			return err
		}
		return c.emit(vm.OpEq, 0, e)
	default:
		return fmterr.Internalf("cannot compile %s: %T is not a scalar expression", e, e)
	}
}

func (c *compiler) compileVariable(v *ir.Variable) error {
	if i, ok := c.params[v.Name()]; ok {
		return c.emit(vm.OpArg, i, v)
	}
	if c.opts.defaults == nil {
		return fmterr.Errorf(fmterr.ErrUnboundVariable, "%s", v.Name())
	}
	val, err := c.opts.defaults.Lookup(v.Name())
	if err != nil {
		return err
	}
	return c.emit(vm.OpConst, c.constIndex(val), v)
}

func (c *compiler) compileUnary(e *ir.Unary) error {
	op, err := ops.LookupUnary(e.Op())
	if err != nil {
		return err
	}
	if err := c.compileScalar(e.Arg()); err != nil {
		return err
	}
	if op.Strategy == ops.Primitive {
		if op.ID != ops.Neg {
			return fmterr.Internalf("no primitive instruction for unary operator %s", op.ID)
		}
		return c.emit(vm.OpNeg, 0, e)
	}
	i, ok := c.funcs1[op.ID]
	if !ok {
		i = len(c.prog.Funcs1)
		c.prog.Funcs1 = append(c.prog.Funcs1, vm.Func1{Name: string(op.ID), Fn: op.Fn})
		c.funcs1[op.ID] = i
	}
	return c.emit(vm.OpCall1, i, e)
}

func (c *compiler) compileBinary(e *ir.Binary) error {
	op, err := ops.LookupBinary(e.Op())
	if err != nil {
		return err
	}
	if err := c.compileScalar(e.Left()); err != nil {
		return err
	}
	if err := c.compileScalar(e.Right()); err != nil {
		return err
	}
	if op.Strategy == ops.Primitive {
		code, ok := primitives[op.ID]
		if !ok {
			return fmterr.Internalf("no primitive instruction for binary operator %s", op.ID)
		}
		return c.emit(code, 0, e)
	}
	i, ok := c.funcs2[op.ID]
	if !ok {
		i = len(c.prog.Funcs2)
		c.prog.Funcs2 = append(c.prog.Funcs2, vm.Func2{Name: string(op.ID), Fn: op.Fn})
		c.funcs2[op.ID] = i
	}
	return c.emit(vm.OpCall2, i, e)
}
