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

package compiler

import (
	"github.com/gx-org/cas/api/values"
	gxsync "github.com/gx-org/cas/base/sync"
	"github.com/gx-org/cas/build/ir"
)

// Cache compiles functions on first use and keeps the resulting callables.
// It is safe for concurrent use.
type Cache struct {
	opts      []Option
	callables gxsync.Map[*ir.Function, *Callable]
}

// NewCache returns an empty cache compiling functions with the given options.
func NewCache(opts ...Option) *Cache {
	return &Cache{opts: opts}
}

// Get returns the callable of a function, compiling it if required.
func (c *Cache) Get(f *ir.Function) (*Callable, error) {
	if cl, ok := c.callables.Load(f); ok {
		return cl, nil
	}
	cl, err := Compile(f, c.opts...)
	if err != nil {
		return nil, err
	}
	cl, _ = c.callables.LoadOrStore(f, cl)
	return cl, nil
}

// Call compiles the function if required and calls it with the given arguments.
func (c *Cache) Call(f *ir.Function, args ...float64) (values.Quantity, error) {
	cl, err := c.Get(f)
	if err != nil {
		return values.Quantity{}, err
	}
	return cl.Call(args...)
}

// Len returns the number of compiled functions in the cache.
func (c *Cache) Len() int {
	return c.callables.Size()
}
