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

	"github.com/pkg/errors"
)

// Kinds of errors. Use errors.Is to test an error against a kind.
var (
	ErrSyntax            = errors.New("syntax error")
	ErrUnknownOperator   = errors.New("unknown operator")
	ErrUnsupportedRank   = errors.New("unsupported rank")
	ErrLengthMismatch    = errors.New("length mismatch")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrUnboundVariable   = errors.New("unbound variable")
	ErrNoDerivativeRule  = errors.New("no derivative rule")
	ErrMissingParameter  = errors.New("missing parameter")
	ErrIterationLimit    = errors.New("iteration limit exceeded")
	ErrArity             = errors.New("wrong number of arguments")
)

type kindError struct {
	kind error
	err  error
}

// Errorf returns an error of a given kind.
// The error records the stack trace where it has been created.
func Errorf(kind error, format string, a ...any) error {
	return kindError{kind: kind, err: errors.Errorf(format, a...)}
}

// Error returns the kind followed by the message.
func (err kindError) Error() string {
	return err.kind.Error() + ": " + err.err.Error()
}

// Is returns true if the target is the kind of the error.
func (err kindError) Is(target error) bool {
	return target == err.kind
}

// Unwrap returns the error carrying the message and the stack trace.
func (err kindError) Unwrap() error {
	return err.err
}

// Format writes the error into the state of the formatter.
func (err kindError) Format(s fmt.State, verb rune) {
	format(err, s, verb)
}
