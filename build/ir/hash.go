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

package ir

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

type kind byte

const (
	kindConst kind = iota
	kindNamedConst
	kindVariable
	kindUnary
	kindBinary
	kindArray
	kindAssign
)

// hasher accumulates the fields of a node into a FNV-1a hash.
type hasher struct {
	buf []byte
}

func newHash(k kind) hasher {
	return hasher{buf: []byte{byte(k)}}
}

func (h hasher) float(v float64) hasher {
	switch {
	case v == 0:
		// -0 and +0 are equal literals.
		v = 0
	case math.IsNaN(v):
		v = math.NaN()
	}
	h.buf = binary.LittleEndian.AppendUint64(h.buf, math.Float64bits(v))
	return h
}

func (h hasher) str(s string) hasher {
	h.buf = binary.LittleEndian.AppendUint32(h.buf, uint32(len(s)))
	h.buf = append(h.buf, s...)
	return h
}

func (h hasher) sub(e Expr) hasher {
	h.buf = binary.LittleEndian.AppendUint64(h.buf, e.Hash())
	return h
}

func (h hasher) sum() uint64 {
	f := fnv.New64a()
	f.Write(h.buf)
	return f.Sum64()
}
