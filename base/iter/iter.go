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

// Package iter provides common iterators and the cyclic tiling used to
// broadcast sequences of different lengths.
package iter

import "github.com/gx-org/cas/build/fmterr"

// Tile returns a sequence of length n built by copying s repeatedly,
// wrapping around to its first element, until the sequence is filled.
// s is returned as is if its length is already n.
func Tile[T any](s []T, n int) []T {
	if len(s) == n || len(s) == 0 {
		return s
	}
	r := make([]T, n)
	for i := range r {
		r[i] = s[i%len(s)]
	}
	return r
}

// Broadcast tiles the shortest of two sequences to the length of the longest.
func Broadcast[T any](x, y []T) ([]T, []T) {
	n := max(len(x), len(y))
	return Tile(x, n), Tile(y, n)
}

// Zip combines two sequences of the same length element by element.
// It returns an error if the sequences do not have the same length.
func Zip[T, R any](x, y []T, f func(T, T) R) ([]R, error) {
	if len(x) != len(y) {
		return nil, fmterr.Errorf(fmterr.ErrLengthMismatch, "cannot combine sequences of length %d and %d", len(x), len(y))
	}
	r := make([]R, len(x))
	for i := range x {
		r[i] = f(x[i], y[i])
	}
	return r, nil
}

// ZipTiled broadcasts two sequences then combines them element by element.
func ZipTiled[T, R any](x, y []T, f func(T, T) R) []R {
	x, y = Broadcast(x, y)
	r := make([]R, len(x))
	for i := range x {
		r[i] = f(x[i], y[i])
	}
	return r
}
