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

// Package vm implements a stack machine to evaluate compiled expressions.
//
// Scalars are computed on an operand stack. Vector and matrix results are
// assembled in registers: OpVec allocates a vector which OpSetVec fills
// with values popped from the operand stack, and OpMat allocates a matrix
// which OpSetRow fills with the last allocated vector.
package vm

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gx-org/cas/base/stringseq"
	"github.com/gx-org/cas/build/fmterr"
)

// Opcode of an instruction.
type Opcode uint8

// Opcodes of the machine.
const (
	// OpConst pushes Consts[Arg].
	OpConst Opcode = iota
	// OpArg pushes the argument at index Arg.
	OpArg
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpNeg
	// OpCall1 pops x and pushes Funcs1[Arg](x).
	OpCall1
	// OpCall2 pops y and x, and pushes Funcs2[Arg](x, y).
	OpCall2
	// OpEq pops y and x, and pushes 1 if x == y, 0 otherwise.
	OpEq
	// OpVec allocates a vector of length Arg.
	OpVec
	// OpSetVec pops x and stores it at index Arg of the current vector.
	OpSetVec
	// OpMat allocates a matrix of Arg rows.
	OpMat
	// OpSetRow stores the current vector at row Arg of the matrix.
	OpSetRow
)

var opcodeNames = [...]string{
	OpConst:  "CONST",
	OpArg:    "ARG",
	OpAdd:    "ADD",
	OpSub:    "SUB",
	OpMul:    "MUL",
	OpDiv:    "DIV",
	OpNeg:    "NEG",
	OpCall1:  "CALL1",
	OpCall2:  "CALL2",
	OpEq:     "EQ",
	OpVec:    "VEC",
	OpSetVec: "SETVEC",
	OpMat:    "MAT",
	OpSetRow: "SETROW",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return fmt.Sprintf("Opcode(%d)", op)
}

// StackEffect returns the number of values an opcode pops from and pushes
// to the operand stack.
func (op Opcode) StackEffect() (pops, pushes int) {
	switch op {
	case OpConst, OpArg:
		return 0, 1
	case OpNeg, OpCall1:
		return 1, 1
	case OpAdd, OpSub, OpMul, OpDiv, OpCall2, OpEq:
		return 2, 1
	case OpSetVec:
		return 1, 0
	}
	return 0, 0
}

// HasArg returns true if the opcode uses the argument of the instruction.
func (op Opcode) HasArg() bool {
	switch op {
	case OpConst, OpArg, OpCall1, OpCall2, OpVec, OpSetVec, OpMat, OpSetRow:
		return true
	}
	return false
}

// Instr is a single instruction.
type Instr struct {
	Op  Opcode
	Arg int
}

// Func1 is a unary function called by OpCall1.
type Func1 struct {
	Name string
	Fn   func(float64) float64
}

// Func2 is a binary function called by OpCall2.
type Func2 struct {
	Name string
	Fn   func(float64, float64) float64
}

// Program is a sequence of instructions with its constant and function tables.
// A program is immutable once built and can be run concurrently.
type Program struct {
	Name   string
	Params []string
	// Rank of the result.
	Rank   int
	Code   []Instr
	Consts []float64
	Funcs1 []Func1
	Funcs2 []Func2
	// MaxStack is the maximum depth of the operand stack.
	MaxStack int
}

// Arity returns the number of arguments of the program.
func (p *Program) Arity() int {
	return len(p.Params)
}

func (p *Program) comment(in Instr) string {
	switch in.Op {
	case OpConst:
		return fmt.Sprint(p.Consts[in.Arg])
	case OpArg:
		return p.Params[in.Arg]
	case OpCall1:
		return p.Funcs1[in.Arg].Name
	case OpCall2:
		return p.Funcs2[in.Arg].Name
	}
	return ""
}

// String returns a disassembly of the program.
func (p *Program) String() string {
	var w strings.Builder
	fmt.Fprintf(&w, "%s(%s) rank=%d stack=%d\n", p.Name, stringseq.Join(slices.Values(p.Params), ", "), p.Rank, p.MaxStack)
	for pc, in := range p.Code {
		fmt.Fprintf(&w, "%04d %s", pc, in.Op)
		if in.Op.HasArg() {
			fmt.Fprintf(&w, " %d", in.Arg)
		}
		if c := p.comment(in); c != "" {
			fmt.Fprintf(&w, " ; %s", c)
		}
		w.WriteString("\n")
	}
	return w.String()
}

// checkArity returns an error if the number of arguments does not match the program.
func (p *Program) checkArity(args []float64) error {
	if len(args) != len(p.Params) {
		return fmterr.Errorf(fmterr.ErrArity, "%s: got %d arguments but want %d", p.Name, len(args), len(p.Params))
	}
	return nil
}
