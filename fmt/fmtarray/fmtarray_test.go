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

package fmtarray_test

import (
	"math"
	"strings"
	"testing"

	"github.com/gx-org/cas/fmt/fmtarray"
)

func buildData(axes []int) []float64 {
	total := 1
	for _, axisSize := range axes {
		total *= axisSize
	}
	data := make([]float64, total)
	for i := range total {
		data[i] = float64(i)
	}
	return data
}

func TestSprint(t *testing.T) {
	tests := []struct {
		data []float64
		axes []int
		want string
	}{
		{
			data: []float64{42},
			want: "float64(42)",
		},
		{
			data: []float64{1, 2.5, 3, -4, 5, 6},
			axes: []int{6},
			want: "[6]float64[1, 2.5, 3, -4, 5, 6]",
		},
		{
			axes: []int{2, 3},
			want: `
[2][3]float64[
	[0, 1, 2],
	[3, 4, 5],
]
`,
		},
		{
			axes: []int{2, 3, 4},
			want: "cannot format an array of rank 3",
		},
		{
			data: []float64{1, 2},
			axes: []int{3},
			want: "len(data)=2 does not match axes [3]=3",
		},
	}
	for i, test := range tests {
		if test.data == nil {
			test.data = buildData(test.axes)
		}
		test.want = strings.TrimSpace(test.want)
		got := fmtarray.Sprint[float64](test.data, test.axes)
		if got != test.want {
			t.Errorf("test %d: incorrect array formatting:\naxes: %v\ndata: %v\ngot:\n%s\nwant:\n%s\n", i, test.axes, test.data, got, test.want)
		}
	}
}

func TestSDataPrint(t *testing.T) {
	tests := []struct {
		data []float64
		axes []int
		want string
	}{
		{
			data: []float64{0.1},
			want: "0.1",
		},
		{
			data: []float64{math.NaN()},
			want: "NaN",
		},
		{
			data: []float64{2, 2, 4},
			axes: []int{3},
			want: "[2, 2, 4]",
		},
		{
			data: []float64{1, 2, 3, 4},
			axes: []int{2, 2},
			want: "[[1, 2], [3, 4]]",
		},
	}
	for i, test := range tests {
		got := fmtarray.SDataPrint(test.data, test.axes)
		if got != test.want {
			t.Errorf("test %d: got %q but want %q", i, got, test.want)
		}
	}
}

func TestFloat32(t *testing.T) {
	got := fmtarray.Sprint([]float32{0.1, 1e-7}, []int{2})
	const want = "[2]float32[0.1, 1e-07]"
	if got != want {
		t.Errorf("got %q but want %q", got, want)
	}
}
