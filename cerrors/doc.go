// This file is part of caio.
//
// caio is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// caio is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with caio.  If not, see <https://www.gnu.org/licenses/>.

// Package cerrors is a helper package for the plain Go error type. We
// think of errors constructed here as "curated" errors: each is built
// from a message template (a format string, used also as the error's
// identity for Is/Has) and the formatted arguments.
//
// The Error() implementation normalises the causal chain so that
// wrapping the same template twice in a row (a common outcome of
// naive `return cerrors.Errorf("x: %v", err)` wrapping at every call
// site) does not produce a doubled prefix.
package cerrors

import (
	"errors"
	"fmt"
)

// Error is a curated error: a message template plus the values used to
// format it.
type Error struct {
	format string
	msg    string
	prev   *Error
}

// Errorf builds a curated error from format and args. If one of the
// args is itself a *Error built from the same format, the duplicate
// layer is dropped.
func Errorf(format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)

	e := &Error{format: format, msg: msg}

	for _, a := range args {
		if prev, ok := a.(*Error); ok {
			if prev.format == format {
				// collapse: keep only the innermost message
				e.msg = prev.msg
				e.format = prev.format
				e.prev = prev.prev
				return e
			}
			e.prev = prev
		}
	}

	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.msg
}

// Unwrap allows errors.Is/errors.As to traverse the chain.
func (e *Error) Unwrap() error {
	if e == nil || e.prev == nil {
		return nil
	}
	return e.prev
}

// Is reports whether err was built directly from format (it does not
// look further down the wrapped chain — use Has for that).
func Is(err error, format string) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.format == format
}

// Has reports whether format appears anywhere in err's wrapped chain.
func Has(err error, format string) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	for c := e; c != nil; c = c.prev {
		if c.format == format {
			return true
		}
	}
	return false
}

// IsAny reports whether err was constructed by this package.
func IsAny(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
