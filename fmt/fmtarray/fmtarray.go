// Copyright 2024 Google LLC
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

// Package fmtarray formats numeric arrays into strings.
package fmtarray

import (
	"strconv"
	"strings"

	"github.com/gx-org/backend/dtype"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

type builder[T constraints.Float] struct {
	w    *strings.Builder
	data []T
	axes []int
}

func newBuilder[T constraints.Float](data []T, axes []int) (*builder[T], error) {
	b := &builder[T]{
		w:    &strings.Builder{},
		data: data,
		axes: axes,
	}
	if len(axes) > 2 {
		return b, errors.Errorf("cannot format an array of rank %d", len(axes))
	}
	total := 1
	for _, size := range b.axes {
		total *= size
	}
	if total != len(data) {
		return b, errors.Errorf("len(data)=%d does not match axes %v=%d", len(data), axes, total)
	}
	return b, nil
}

// DType returns the data type of a Go float type.
func DType[T constraints.Float]() dtype.DataType {
	var x T
	if _, ok := any(x).(float32); ok {
		return dtype.Float32
	}
	return dtype.Float64
}

func typeName[T constraints.Float]() string {
	if DType[T]() == dtype.Float32 {
		return "float32"
	}
	return "float64"
}

func bitSize[T constraints.Float]() int {
	if DType[T]() == dtype.Float32 {
		return 32
	}
	return 64
}

// Value formats a single number using the shortest representation.
func Value[T constraints.Float](x T) string {
	return strconv.FormatFloat(float64(x), 'g', -1, bitSize[T]())
}

func (b *builder[T]) printVector(row []T) {
	b.w.WriteString("[")
	for i, x := range row {
		if i > 0 {
			b.w.WriteString(", ")
		}
		b.w.WriteString(Value(x))
	}
	b.w.WriteString("]")
}

func (b *builder[T]) printMatrix(indent string) {
	numRows, numCols := b.axes[0], b.axes[1]
	if indent == "" {
		b.w.WriteString("[")
		for i := range numRows {
			if i > 0 {
				b.w.WriteString(", ")
			}
			b.printVector(b.data[i*numCols : (i+1)*numCols])
		}
		b.w.WriteString("]")
		return
	}
	b.w.WriteString("[\n")
	for i := range numRows {
		b.w.WriteString(indent)
		b.printVector(b.data[i*numCols : (i+1)*numCols])
		b.w.WriteString(",\n")
	}
	b.w.WriteString("]")
}

func (b *builder[T]) printData(indent string) {
	switch len(b.axes) {
	case 0:
		b.w.WriteString(Value(b.data[0]))
	case 1:
		b.printVector(b.data)
	case 2:
		b.printMatrix(indent)
	}
}

func (b *builder[T]) printType() {
	for _, size := range b.axes {
		b.w.WriteString("[")
		b.w.WriteString(strconv.Itoa(size))
		b.w.WriteString("]")
	}
	b.w.WriteString(typeName[T]())
}

// SDataPrint returns a one line representation of the content of an array without the type.
// The output uses the same bracket notation as expressions.
func SDataPrint[T constraints.Float](data []T, axes []int) string {
	b, err := newBuilder[T](data, axes)
	if err != nil {
		return err.Error()
	}
	b.printData("")
	return b.w.String()
}

// Sprint returns a string representation of an array prefixed with its type.
// Matrices are printed with one row per line.
func Sprint[T constraints.Float](data []T, axes []int) string {
	b, err := newBuilder[T](data, axes)
	if err != nil {
		return err.Error()
	}
	b.printType()
	if len(axes) == 0 {
		b.w.WriteString("(")
		b.printData("\t")
		b.w.WriteString(")")
		return b.w.String()
	}
	b.printData("\t")
	return b.w.String()
}
