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

package fmterr

import (
	"fmt"
	"go/token"

	"github.com/pkg/errors"
)

type (
	// ErrorWithPos is an error attached to a position in a source expression.
	ErrorWithPos interface {
		error
		FSet() *token.FileSet
		Pos() token.Pos
		Err() error
	}

	errorWithPos struct {
		fset *token.FileSet
		pos  token.Pos
		err  error
	}
)

// Position adds position information to an error.
func Position(fset *token.FileSet, pos token.Pos, err error) ErrorWithPos {
	return errorWithPos{
		fset: fset,
		pos:  pos,
		err:  err,
	}
}

// PosErrorf returns an error of a given kind at a position.
func PosErrorf(fset *token.FileSet, pos token.Pos, kind error, format string, a ...any) error {
	return Position(fset, pos, Errorf(kind, format, a...))
}

// Internal marks an error as internal, potentially adding additional information.
func Internal(err error) error {
	return fmt.Errorf("CAS internal error. This is a bug. Please report it. Error:\n%+v", err)
}

// Internalf returns a formatted internal error.
func Internalf(format string, a ...any) error {
	return Internal(errors.Errorf(format, a...))
}

// Error returns a string description of the error.
func (err errorWithPos) Error() string {
	if err.fset == nil || !err.pos.IsValid() {
		return err.err.Error()
	}
	return PosString(err.fset, err.pos) + " " + err.err.Error()
}

// Unwrap the error.
func (err errorWithPos) Unwrap() error {
	return err.err
}

// Format writes the error into the state of the formatter.
func (err errorWithPos) Format(s fmt.State, verb rune) {
	format(err, s, verb)
}

// FSet returns the file set in which the position is defined.
func (err errorWithPos) FSet() *token.FileSet {
	return err.fset
}

// Pos returns the position of the error.
func (err errorWithPos) Pos() token.Pos {
	return err.pos
}

func (err errorWithPos) Err() error {
	return err.err
}

// PosString returns a position as a string that can be used for an error.
func PosString(fset *token.FileSet, pos token.Pos) string {
	return fset.Position(pos).String() + ":"
}
