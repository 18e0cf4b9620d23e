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

package values_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/cas/api/values"
	"github.com/gx-org/cas/build/fmterr"
	"github.com/gx-org/cas/build/ir"
	"github.com/pkg/errors"
)

func TestQuantity(t *testing.T) {
	m, err := values.Matrix([]float64{1, 2}, []float64{3, 4})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		q      values.Quantity
		str    string
		format string
		native any
	}{
		{
			q:      values.Scalar(2.5),
			str:    "2.5",
			format: "float64(2.5)",
			native: 2.5,
		},
		{
			q:      values.Vector(1, 2, 3),
			str:    "[1, 2, 3]",
			format: "[3]float64[1, 2, 3]",
			native: []float64{1, 2, 3},
		},
		{
			q:      m,
			str:    "[[1, 2], [3, 4]]",
			format: "[2][2]float64[\n\t[1, 2],\n\t[3, 4],\n]",
			native: [][]float64{{1, 2}, {3, 4}},
		},
	}
	for i, test := range tests {
		if got := test.q.String(); got != test.str {
			t.Errorf("test %d: got %q but want %q", i, got, test.str)
		}
		if got := test.q.Format(); got != test.format {
			t.Errorf("test %d: got %q but want %q", i, got, test.format)
		}
		if diff := cmp.Diff(test.q.Native(), test.native); diff != "" {
			t.Errorf("test %d: incorrect native value: %s", i, diff)
		}
		back, err := values.FromExpr(test.q.ToExpr())
		if err != nil {
			t.Errorf("test %d: %v", i, err)
			continue
		}
		if back.String() != test.str {
			t.Errorf("test %d: round trip returned %s but want %s", i, back, test.str)
		}
	}
}

func TestMatrixErrors(t *testing.T) {
	if _, err := values.Matrix([]float64{1, 2}, []float64{3}); !errors.Is(err, fmterr.ErrDimensionMismatch) {
		t.Errorf("got error %v but want %v", err, fmterr.ErrDimensionMismatch)
	}
	if _, err := values.FromExpr(ir.NewVariable("x")); err == nil {
		t.Errorf("expected an error when converting a variable")
	}
}
