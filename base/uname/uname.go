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

// Package uname provides unique names.
package uname

import (
	"fmt"
	"strings"
)

// RateSuffix is appended to a symbol name to build the name of its rate.
const RateSuffix = "p"

// Unique generates unique names.
type Unique struct {
	names map[string]int
}

// New name generator.
func New() *Unique {
	return &Unique{names: make(map[string]int)}
}

// Register a name as already taken.
func (n *Unique) Register(name string) {
	if _, ok := n.names[name]; ok {
		return
	}
	n.names[name] = 1
}

// Name returns a unique name given a desired base name.
// If the base name is available, it is returned directly. Else, a unique suffix is appended.
func (n *Unique) Name(root string) string {
	nextIndex, ok := n.names[root]
	if !ok {
		n.names[root] = 1
		return root
	}
	for {
		name := fmt.Sprintf("%s%d", root, nextIndex)
		nextIndex++
		if _, taken := n.names[name]; taken {
			continue
		}
		n.names[root] = nextIndex
		n.names[name] = 1
		return name
	}
}

// Rate returns the name of the rate of a symbol.
// The suffix is inserted before the subscript separator if any,
// that is x becomes xp and x_1 becomes xp_1.
func Rate(name string) string {
	base, sub, found := strings.Cut(name, "_")
	if !found {
		return name + RateSuffix
	}
	return base + RateSuffix + "_" + sub
}

// Rate returns a unique name for the rate of a symbol.
func (n *Unique) Rate(name string) string {
	return n.Name(Rate(name))
}
