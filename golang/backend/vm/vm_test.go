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

package vm_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/cas/build/fmterr"
	"github.com/gx-org/cas/golang/backend/vm"
	"github.com/pkg/errors"
)

// affine computes 2*x + sin(y).
var affine = &vm.Program{
	Name:   "f",
	Params: []string{"x", "y"},
	Code: []vm.Instr{
		{Op: vm.OpConst, Arg: 0},
		{Op: vm.OpArg, Arg: 0},
		{Op: vm.OpMul},
		{Op: vm.OpArg, Arg: 1},
		{Op: vm.OpCall1, Arg: 0},
		{Op: vm.OpAdd},
	},
	Consts:   []float64{2},
	Funcs1:   []vm.Func1{{Name: "sin", Fn: math.Sin}},
	MaxStack: 2,
}

func TestRunScalar(t *testing.T) {
	got, err := affine.RunScalar(3, math.Pi/2)
	if err != nil {
		t.Fatal(err)
	}
	if got != 7 {
		t.Errorf("got %v but want 7", got)
	}
	if _, err := affine.Run(1); !errors.Is(err, fmterr.ErrArity) {
		t.Errorf("got error %v but want %v", err, fmterr.ErrArity)
	}
}

func TestRunArrays(t *testing.T) {
	vec := &vm.Program{
		Name:   "v",
		Params: []string{"x"},
		Rank:   1,
		Code: []vm.Instr{
			{Op: vm.OpVec, Arg: 2},
			{Op: vm.OpArg, Arg: 0},
			{Op: vm.OpSetVec, Arg: 0},
			{Op: vm.OpArg, Arg: 0},
			{Op: vm.OpNeg},
			{Op: vm.OpSetVec, Arg: 1},
		},
		MaxStack: 1,
	}
	got, err := vec.Run(4)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, any([]float64{4, -4})); diff != "" {
		t.Errorf("incorrect vector: %s", diff)
	}

	mat := &vm.Program{
		Name:   "m",
		Params: []string{"x", "y"},
		Rank:   2,
		Code: []vm.Instr{
			{Op: vm.OpMat, Arg: 2},
			{Op: vm.OpVec, Arg: 2},
			{Op: vm.OpArg, Arg: 0},
			{Op: vm.OpSetVec, Arg: 0},
			{Op: vm.OpArg, Arg: 1},
			{Op: vm.OpSetVec, Arg: 1},
			{Op: vm.OpSetRow, Arg: 0},
			{Op: vm.OpVec, Arg: 2},
			{Op: vm.OpArg, Arg: 0},
			{Op: vm.OpArg, Arg: 1},
			{Op: vm.OpEq},
			{Op: vm.OpSetVec, Arg: 0},
			{Op: vm.OpArg, Arg: 0},
			{Op: vm.OpArg, Arg: 1},
			{Op: vm.OpDiv},
			{Op: vm.OpSetVec, Arg: 1},
			{Op: vm.OpSetRow, Arg: 1},
		},
		MaxStack: 2,
	}
	got, err = mat.Run(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, any([][]float64{{1, 2}, {0, 0.5}})); diff != "" {
		t.Errorf("incorrect matrix: %s", diff)
	}
	if _, err := mat.RunScalar(1, 2); !errors.Is(err, fmterr.ErrDimensionMismatch) {
		t.Errorf("got error %v but want %v", err, fmterr.ErrDimensionMismatch)
	}
}

func TestDisassemble(t *testing.T) {
	const want = `f(x, y) rank=0 stack=2
0000 CONST 0 ; 2
0001 ARG 0 ; x
0002 MUL
0003 ARG 1 ; y
0004 CALL1 0 ; sin
0005 ADD
`
	if diff := cmp.Diff(affine.String(), want); diff != "" {
		t.Errorf("incorrect disassembly: %s", diff)
	}
}

func TestStackEffect(t *testing.T) {
	depth := 0
	for _, in := range affine.Code {
		pops, pushes := in.Op.StackEffect()
		depth += pushes - pops
	}
	if depth != 1 {
		t.Errorf("program leaves %d values on the stack but want 1", depth)
	}
}
