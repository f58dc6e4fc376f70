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

// Package value holds the small value types that the boxing layer and the
// builtin metadata know about: optional values, tuples and Void.
package value

import (
	"fmt"
	"reflect"

	"dirpx.dev/rtti/errs"
	"dirpx.dev/rtti/object"
)

// Nullable is an optional T. The zero value has no value.
type Nullable[T any] struct {
	v   T
	has bool
}

// Some returns a Nullable holding v.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{v: v, has: true}
}

// None returns an empty Nullable.
func None[T any]() Nullable[T] {
	return Nullable[T]{}
}

// HasValue reports whether n holds a value.
func (n Nullable[T]) HasValue() bool {
	return n.has
}

// Value returns the held value or errs.ErrInvalidOperation when empty.
func (n Nullable[T]) Value() (T, error) {
	if !n.has {
		var zero T
		return zero, errs.InvalidOperation("nullable object must have a value")
	}
	return n.v, nil
}

// GetValueOrDefault returns the held value or the zero T.
func (n Nullable[T]) GetValueOrDefault() T {
	return n.v
}

// BoxedValue returns the held value for boxing.
func (n Nullable[T]) BoxedValue() any {
	return n.v
}

// ElemType returns the reflect.Type of T.
func (n Nullable[T]) ElemType() reflect.Type {
	return reflect.TypeFor[T]()
}

func (n Nullable[T]) String() string {
	if !n.has {
		return ""
	}
	return fmt.Sprintf("%v", n.v)
}

// Unbox converts an Object back into a Nullable. The null Object yields an
// empty Nullable; content of another type fails with errs.ErrInvalidCast.
func Unbox[T any](o object.Object) (Nullable[T], error) {
	if o.IsNull() {
		return Nullable[T]{}, nil
	}
	v, err := object.As[T](o)
	if err != nil {
		return Nullable[T]{}, err
	}
	return Some(v), nil
}

// Void stands in for the absence of a value in metadata (method return types).
type Void struct{}
