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
	"io"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// StackTrace returns the stack trace recorded when the innermost
// github.com/pkg/errors error of the chain has been created.
// It returns nil if no such error can be found.
func StackTrace(err error) errors.StackTrace {
	var st stackTracer
	if !errors.As(err, &st) {
		return nil
	}
	return st.StackTrace()
}

// format writes an error for a formatter.
// The %+v verb appends the stack trace to the message.
func format(err error, s fmt.State, verb rune) {
	msg := err.Error()
	switch {
	case verb == 'q':
		fmt.Fprintf(s, "%q", msg)
	case verb == 'v' && s.Flag('+'):
		io.WriteString(s, msg)
		if st := StackTrace(err); st != nil {
			fmt.Fprintf(s, "\nError generated at:%+v\n", st)
		}
	default:
		io.WriteString(s, msg)
	}
}

type stackTraceError struct {
	error
}

// ToStackTraceError returns an error printing its stack trace
// when formatted with %+v.
func ToStackTraceError(err error) error {
	if err == nil {
		return nil
	}
	return stackTraceError{error: err}
}

func (err stackTraceError) Unwrap() error {
	return err.error
}

func (err stackTraceError) Format(s fmt.State, verb rune) {
	format(err, s, verb)
}
