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

package linalg_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/gx-org/cas/build/fmterr"
	"github.com/gx-org/cas/stdlib/linalg"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/pkg/errors"
)

func TestVector(t *testing.T) {
	v := linalg.Vector[float64]{1, 0}
	w := linalg.Vector[float64]{1, 2, 3}
	sum, err := v.Add(w)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sum, linalg.Vector[float64]{2, 2, 4}); diff != "" {
		t.Errorf("incorrect tiled sum: %s", diff)
	}
	difference, err := w.Sub(v)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(difference, linalg.Vector[float64]{0, 2, 2}); diff != "" {
		t.Errorf("incorrect tiled difference: %s", diff)
	}
	if _, err := (linalg.Vector[float64]{}).Add(w); !errors.Is(err, fmterr.ErrLengthMismatch) {
		t.Errorf("got error %v but want %v", err, fmterr.ErrLengthMismatch)
	}
	if diff := cmp.Diff(w.Scale(2), linalg.Vector[float64]{2, 4, 6}); diff != "" {
		t.Errorf("incorrect scaling: %s", diff)
	}
	dot, err := w.Dot(linalg.Vector[float64]{4, 5, 6})
	if err != nil {
		t.Fatal(err)
	}
	if dot != 32 {
		t.Errorf("got dot product %v but want 32", dot)
	}
	if _, err := v.Dot(w); !errors.Is(err, fmterr.ErrLengthMismatch) {
		t.Errorf("got error %v but want %v", err, fmterr.ErrLengthMismatch)
	}
	if got, want := w.Outer(v).String(), "[[1, 0], [2, 0], [3, 0]]"; got != want {
		t.Errorf("got outer product %s but want %s", got, want)
	}
}

func TestCross(t *testing.T) {
	tests := []struct {
		x, y linalg.Vector[float64]
		want linalg.Vector[float64]
	}{
		{
			x:    linalg.Vector[float64]{1, 0, 0},
			y:    linalg.Vector[float64]{0, 1, 0},
			want: linalg.Vector[float64]{0, 0, 1},
		},
		{
			x:    linalg.Vector[float64]{1, 2},
			y:    linalg.Vector[float64]{3, 4},
			want: linalg.Vector[float64]{-2},
		},
		{
			x:    linalg.Vector[float64]{2},
			y:    linalg.Vector[float64]{3, 4},
			want: linalg.Vector[float64]{-8, 6},
		},
		{
			x:    linalg.Vector[float64]{3, 4},
			y:    linalg.Vector[float64]{2},
			want: linalg.Vector[float64]{8, -6},
		},
	}
	for i, test := range tests {
		got, err := test.x.Cross(test.y)
		if err != nil {
			t.Errorf("test %d: %v", i, err)
			continue
		}
		if diff := cmp.Diff(got, test.want); diff != "" {
			t.Errorf("test %d: incorrect cross product: %s", i, diff)
		}
	}
	if _, err := (linalg.Vector[float64]{1, 2, 3}).Cross(linalg.Vector[float64]{1, 2}); !errors.Is(err, fmterr.ErrLengthMismatch) {
		t.Errorf("got error %v but want %v", err, fmterr.ErrLengthMismatch)
	}
}

func TestMatrix(t *testing.T) {
	a, err := linalg.NewMatrix([]float64{1, 2, 3}, []float64{4, 5, 6})
	if err != nil {
		t.Fatal(err)
	}
	at, err := a.Transpose()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := at.String(), "[[1, 4], [2, 5], [3, 6]]"; got != want {
		t.Errorf("got transpose %s but want %s", got, want)
	}
	av, err := a.MulVec(linalg.Vector[float64]{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(av, linalg.Vector[float64]{6, 15}); diff != "" {
		t.Errorf("incorrect matrix-vector product: %s", diff)
	}
	aat, err := a.MulMat(at)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := aat.String(), "[[14, 32], [32, 77]]"; got != want {
		t.Errorf("got product %s but want %s", got, want)
	}
	sum, err := a.Add(linalg.Matrix[float64]{{10}})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := sum.String(), "[[11, 12, 13], [14, 15, 16]]"; got != want {
		t.Errorf("got sum %s but want %s", got, want)
	}
	if _, err := a.MulMat(a); !errors.Is(err, fmterr.ErrDimensionMismatch) {
		t.Errorf("got error %v but want %v", err, fmterr.ErrDimensionMismatch)
	}
	if _, err := linalg.NewMatrix([]float64{1, 2}, []float64{3}); !errors.Is(err, fmterr.ErrDimensionMismatch) {
		t.Errorf("got error %v but want %v", err, fmterr.ErrDimensionMismatch)
	}
}

func randomSystem(rnd *rand.Rand, n int) (linalg.Matrix[float64], linalg.Vector[float64]) {
	a := make(linalg.Matrix[float64], n)
	b := make(linalg.Vector[float64], n)
	for i := range a {
		a[i] = make([]float64, n)
		for j := range a[i] {
			a[i][j] = rnd.Float64()*2 - 1
		}
		// Diagonal dominance keeps the leading blocks invertible.
		a[i][i] += float64(n)
		b[i] = rnd.Float64()*10 - 5
	}
	return a, b
}

func TestSolveRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cas.linalg")
	defer teardown()
	rnd := rand.New(rand.NewSource(1))
	for n := 1; n <= 6; n++ {
		a, b := randomSystem(rnd, n)
		x, err := a.Solve(b)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		ax, err := a.MulVec(x)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if diff := cmp.Diff(ax, b, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
			t.Errorf("n=%d: unexpected A*x (-got +want):\n%s", n, diff)
		}
	}
}

func TestSolveMatrix(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	a, _ := randomSystem(rnd, 4)
	x, err := a.SolveMatrix(linalg.Identity[float64](4))
	if err != nil {
		t.Fatal(err)
	}
	id, err := a.MulMat(x)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(id, linalg.Identity[float64](4), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("unexpected A*inv(A) (-got +want):\n%s", diff)
	}
}

func TestSolveErrors(t *testing.T) {
	a, err := linalg.NewMatrix([]float64{1, 2, 3}, []float64{4, 5, 6})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Solve(linalg.Vector[float64]{1, 2}); !errors.Is(err, fmterr.ErrDimensionMismatch) {
		t.Errorf("got error %v but want %v", err, fmterr.ErrDimensionMismatch)
	}
	sq := linalg.Identity[float64](2)
	if _, err := sq.Solve(linalg.Vector[float64]{1, 2, 3}); !errors.Is(err, fmterr.ErrLengthMismatch) {
		t.Errorf("got error %v but want %v", err, fmterr.ErrLengthMismatch)
	}
	if _, err := sq.SolveMatrix(linalg.Matrix[float64]{{1}}); !errors.Is(err, fmterr.ErrDimensionMismatch) {
		t.Errorf("got error %v but want %v", err, fmterr.ErrDimensionMismatch)
	}
	ragged := linalg.Matrix[float64]{{1, 2}, {3}}
	if _, err := ragged.Solve(linalg.Vector[float64]{1, 2}); !errors.Is(err, fmterr.ErrDimensionMismatch) {
		t.Errorf("got error %v but want %v", err, fmterr.ErrDimensionMismatch)
	}
}

func TestZeroPivot(t *testing.T) {
	singular := linalg.Matrix[float64]{{0, 1}, {1, 0}}
	x, err := singular.Solve(linalg.Vector[float64]{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	for i, xi := range x {
		if !math.IsNaN(xi) && !math.IsInf(xi, 0) {
			t.Errorf("x[%d] = %v: want NaN or Inf", i, xi)
		}
	}
}
