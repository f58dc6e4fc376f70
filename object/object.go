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

// Package object implements Object, the uniform handle for reference values
// and boxed copies of value types.
//
// An Object is a ptr.Ptr[any] with a classification. Reference values
// (pointers, maps, slices, channels, funcs and ptr.Ptr handles) are stored
// as shared handles without copying. Everything else (numbers, strings,
// structs, arrays, enums) is boxed: copied into a fresh cell.
//
// Box borrows raw Go references: the Object never disposes them, and two
// boxes of one referent are Same. Ownership is shared only through FromPtr
// (or boxing a ptr.Ptr), whose last release disposes the value once. Unboxing is
// always checked, and a type mismatch is reported as errs.ErrInvalidCast,
// never as errs.ErrNullReference.
package object

import (
	"fmt"
	"reflect"

	"dirpx.dev/rtti/errs"
	"dirpx.dev/rtti/ptr"
)

// Kind classifies the content of an Object.
type Kind uint8

const (
	// KindNull is the null Object.
	KindNull Kind = iota
	// KindReference is a shared handle to a reference value.
	KindReference
	// KindBoxed is a boxed copy of a value.
	KindBoxed
	// KindEnum is a boxed enum discriminant together with its declared names.
	KindEnum
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindReference:
		return "reference"
	case KindBoxed:
		return "boxed"
	case KindEnum:
		return "enum"
	default:
		return "?"
	}
}

// Nullable is implemented by optional values. An empty Nullable boxes to the
// null Object; a present one boxes as its value.
type Nullable interface {
	HasValue() bool
	BoxedValue() any
}

// sharer is implemented by ptr.Ptr handles.
type sharer interface {
	Share() ptr.Ptr[any]
}

// Object is a reference-counted handle to a reference value or a boxed value.
// The zero value is the null Object.
type Object struct {
	p    ptr.Ptr[any]
	kind Kind
}

// Null returns the null Object.
func Null() Object {
	return Object{}
}

// Box wraps v into an Object.
func Box(v any) Object {
	switch x := v.(type) {
	case nil:
		return Object{}
	case Object:
		return x.Clone()
	case Nullable:
		if !x.HasValue() {
			return Object{}
		}
		return Box(x.BoxedValue())
	case Enum:
		if isInteger(reflect.TypeOf(x).Kind()) {
			return boxEnum(x)
		}
	case sharer:
		p := x.Share()
		if p.IsNil() {
			return Object{}
		}
		return Object{p: p, kind: KindReference}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if rv.IsNil() {
			return Object{}
		}
		return Object{p: ptr.Borrow(v), kind: KindReference}
	default:
		return Object{p: ptr.New(v), kind: KindBoxed}
	}
}

// FromPtr returns an Object sharing p's cell.
func FromPtr[T any](p ptr.Ptr[T]) Object {
	s := p.Share()
	if s.IsNil() {
		return Object{}
	}
	return Object{p: s, kind: KindReference}
}

// IsNull reports whether o is the null Object.
func (o Object) IsNull() bool {
	return o.p.IsNil()
}

// Kind returns the classification of o's content.
func (o Object) Kind() Kind {
	if o.p.IsNil() {
		return KindNull
	}
	return o.kind
}

// Value returns o's content, materializing enum boxes as values of their
// declared enum type. The null Object yields nil.
func (o Object) Value() any {
	v := o.p.Any()
	if e, ok := v.(*enumBox); ok {
		return e.value()
	}
	return v
}

// GoType returns the runtime Go type of o's content, or nil for null.
func (o Object) GoType() reflect.Type {
	v := o.p.Any()
	if v == nil {
		return nil
	}
	if e, ok := v.(*enumBox); ok {
		return e.typ
	}
	return reflect.TypeOf(v)
}

// Clone returns a new owning handle to o's content.
func (o Object) Clone() Object {
	return Object{p: o.p.Clone(), kind: o.kind}
}

// Release gives back o's reference and resets o to null.
func (o *Object) Release() {
	o.p.Release()
	o.kind = KindNull
}

// RefCount returns the number of owning handles to o's content.
func (o Object) RefCount() int64 {
	return o.p.RefCount()
}

// Same reports whether o and other share the same cell or, for references,
// refer to the same referent.
func (o Object) Same(other Object) bool {
	if o.p.Equal(other.p) {
		return true
	}
	if o.Kind() != KindReference || other.Kind() != KindReference {
		return false
	}
	return sameReferent(o.p.Any(), other.p.Any())
}

// sameReferent compares reference values by identity. Funcs have no
// identity beyond their cell.
func sameReferent(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	default:
		return false
	}
}

// Equals always fails with errs.ErrEqualityNotImplemented: no value-equality
// contract is defined across boxed content types. Compare unboxed values
// instead.
func (o Object) Equals(Object) (bool, error) {
	return false, errs.ErrEqualityNotImplemented
}

func (o Object) String() string {
	v := o.p.Any()
	switch x := v.(type) {
	case nil:
		return "null"
	case *enumBox:
		if name, ok := x.name(); ok {
			return name
		}
		return fmt.Sprintf("%d", x.v)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// As unboxes o into T.
//
// A null Object unboxes to the zero value of a nilable T (pointer,
// interface, map, slice, chan, func) and fails with errs.ErrNullReference for
// any other T. Content of a different runtime type fails with
// errs.ErrInvalidCast.
func As[T any](o Object) (T, error) {
	var zero T
	want := reflect.TypeFor[T]()
	if o.IsNull() {
		if nilable(want) {
			return zero, nil
		}
		return zero, fmt.Errorf("%w: unboxing null object to %s", errs.ErrNullReference, want)
	}
	if want == objectType {
		return any(o.Clone()).(T), nil
	}
	if v, ok := o.Value().(T); ok {
		return v, nil
	}
	return zero, errs.Cast(o.GoType().String(), want.String())
}

// MustAs is like As but panics on failure.
func MustAs[T any](o Object) T {
	v, err := As[T](o)
	if err != nil {
		panic(err)
	}
	return v
}

var objectType = reflect.TypeFor[Object]()

func isInteger(k reflect.Kind) bool {
	return (k >= reflect.Int && k <= reflect.Int64) || (k >= reflect.Uint && k <= reflect.Uintptr)
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}
