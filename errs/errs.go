/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package errs defines the failure kinds shared by the pointer, boxing and
// metadata layers.
//
// Every failure is reported through a returned error that matches exactly one
// of the sentinels below via errors.Is. Nothing in rtti recovers from these
// errors internally: they propagate to the caller unmodified.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNullReference is returned when a null handle or a null boxed value
	// is dereferenced or unboxed into a non-nilable type.
	ErrNullReference = errors.New("rtti: null reference")
	// ErrInvalidCast is returned when a checked conversion finds a runtime
	// type unrelated to the requested one.
	ErrInvalidCast = errors.New("rtti: invalid cast")
	// ErrConfiguration is returned on TypeBuilder misuse.
	ErrConfiguration = errors.New("rtti: configuration error")
	// ErrInvalidOperation is returned when an operation is not valid for the
	// current state of its receiver (e.g. writing a read-only property).
	ErrInvalidOperation = errors.New("rtti: invalid operation")
	// ErrIndexOutOfRange is returned by positional element access.
	ErrIndexOutOfRange = errors.New("rtti: index out of range")
	// ErrEqualityNotImplemented is returned by Object to Object equality.
	ErrEqualityNotImplemented = errors.New("rtti: object equality not implemented")
)

// CastError describes a failed checked conversion. It matches ErrInvalidCast.
type CastError struct {
	// From is the runtime type that was found.
	From string
	// To is the type that was requested.
	To string
}

func (e *CastError) Error() string {
	return fmt.Sprintf("rtti: invalid cast from %s to %s", e.From, e.To)
}

// Is reports ErrInvalidCast as the kind of e.
func (e *CastError) Is(target error) bool {
	return target == ErrInvalidCast
}

// Cast builds a CastError for the given type names.
func Cast(from, to string) error {
	return &CastError{From: from, To: to}
}

// Configuration wraps ErrConfiguration with a formatted message.
func Configuration(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// InvalidOperation wraps ErrInvalidOperation with a formatted message.
func InvalidOperation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOperation, fmt.Sprintf(format, args...))
}

// IndexOutOfRange wraps ErrIndexOutOfRange with the offending index and length.
func IndexOutOfRange(i, n int) error {
	return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, n)
}
