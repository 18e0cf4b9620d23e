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

package vm

import "github.com/gx-org/cas/build/fmterr"

type machine struct {
	prog  *Program
	stack []float64
	vec   []float64
	mat   [][]float64
}

func (m *machine) push(x float64) {
	m.stack = append(m.stack, x)
}

func (m *machine) pop() float64 {
	n := len(m.stack) - 1
	x := m.stack[n]
	m.stack = m.stack[:n]
	return x
}

func (m *machine) run(args []float64) {
	p := m.prog
	for _, in := range p.Code {
		switch in.Op {
		case OpConst:
			m.push(p.Consts[in.Arg])
		case OpArg:
			m.push(args[in.Arg])
		case OpAdd:
			y := m.pop()
			m.push(m.pop() + y)
		case OpSub:
			y := m.pop()
			m.push(m.pop() - y)
		case OpMul:
			y := m.pop()
			m.push(m.pop() * y)
		case OpDiv:
			y := m.pop()
			m.push(m.pop() / y)
		case OpNeg:
			m.push(-m.pop())
		case OpCall1:
			m.push(p.Funcs1[in.Arg].Fn(m.pop()))
		case OpCall2:
			y := m.pop()
			m.push(p.Funcs2[in.Arg].Fn(m.pop(), y))
		case OpEq:
			y := m.pop()
			if m.pop() == y {
				m.push(1)
			} else {
				m.push(0)
			}
		case OpVec:
			m.vec = make([]float64, in.Arg)
		case OpSetVec:
			m.vec[in.Arg] = m.pop()
		case OpMat:
			m.mat = make([][]float64, in.Arg)
		case OpSetRow:
			m.mat[in.Arg] = m.vec
		}
	}
}

// Run the program given its arguments.
// The result is a float64, a []float64, or a [][]float64 depending on
// the rank of the program.
func (p *Program) Run(args ...float64) (any, error) {
	if err := p.checkArity(args); err != nil {
		return nil, err
	}
	m := &machine{
		prog:  p,
		stack: make([]float64, 0, p.MaxStack),
	}
	m.run(args)
	switch p.Rank {
	case 0:
		if len(m.stack) != 1 {
			return nil, fmterr.Internalf("%s: operand stack has %d values at the end of the program", p.Name, len(m.stack))
		}
		return m.stack[0], nil
	case 1:
		return m.vec, nil
	default:
		return m.mat, nil
	}
}

// RunScalar runs a program returning a scalar.
func (p *Program) RunScalar(args ...float64) (float64, error) {
	if p.Rank != 0 {
		return 0, fmterr.Errorf(fmterr.ErrDimensionMismatch, "%s returns a value of rank %d, not a scalar", p.Name, p.Rank)
	}
	r, err := p.Run(args...)
	if err != nil {
		return 0, err
	}
	return r.(float64), nil
}
