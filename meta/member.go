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

package meta

import (
	"fmt"
	"reflect"

	"dirpx.dev/rtti/errs"
	"dirpx.dev/rtti/object"
)

// Access tells whether a member can be written through its descriptor.
type Access uint8

const (
	// ReadWrite members support Get and Set.
	ReadWrite Access = iota
	// ReadOnly members reject every Set with errs.ErrInvalidOperation.
	ReadOnly
)

// String returns a human-readable representation of the access mode.
func (a Access) String() string {
	switch a {
	case ReadWrite:
		return "read-write"
	case ReadOnly:
		return "read-only"
	default:
		return "?"
	}
}

// MemberKind distinguishes raw fields from getter/setter properties.
type MemberKind uint8

const (
	// KindField is a field read and written in place.
	KindField MemberKind = iota
	// KindProperty is a value exposed through getter/setter functions.
	KindProperty
)

// String returns a human-readable representation of the member kind.
func (k MemberKind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindProperty:
		return "property"
	default:
		return "?"
	}
}

// MemberAccessor reads and writes one member of an instance through boxed
// values.
type MemberAccessor interface {
	// Get reads the member of instance and boxes it.
	Get(instance object.Object) (object.Object, error)
	// Set unboxes value and writes it to the member of instance.
	Set(instance, value object.Object) error
	// Access reports whether Set is supported.
	Access() Access
	// ValueType is the Go type of the member.
	ValueType() reflect.Type
}

// errReadOnly is the failure of every Set on a read-only member.
var errReadOnly = errs.InvalidOperation("attempting to use SetValue on read-only property")

// Field returns an accessor for the field of T selected by ref, the Go form of
// a pointer-to-member: Field(func(c *Circle) *float64 { return &c.Radius }).
func Field[T, V any](ref func(*T) *V) MemberAccessor {
	return fieldAccessor[T, V]{ref: ref}
}

type fieldAccessor[T, V any] struct {
	ref func(*T) *V
}

func (a fieldAccessor[T, V]) Get(instance object.Object) (object.Object, error) {
	p, err := readTarget[T](instance)
	if err != nil {
		return object.Null(), err
	}
	return object.Box(*a.ref(p)), nil
}

func (a fieldAccessor[T, V]) Set(instance, value object.Object) error {
	p, err := writeTarget[T](instance)
	if err != nil {
		return err
	}
	v, err := object.As[V](value)
	if err != nil {
		return err
	}
	*a.ref(p) = v
	return nil
}

func (fieldAccessor[T, V]) Access() Access { return ReadWrite }

func (fieldAccessor[T, V]) ValueType() reflect.Type { return reflect.TypeFor[V]() }

// Property returns an accessor backed by getter and setter functions. A nil
// set makes the property read-only.
func Property[T, V any](get func(*T) V, set func(*T, V)) MemberAccessor {
	return propertyAccessor[T, V]{get: get, set: set}
}

// ReadOnlyProperty returns an accessor backed by a getter only.
func ReadOnlyProperty[T, V any](get func(*T) V) MemberAccessor {
	return propertyAccessor[T, V]{get: get}
}

type propertyAccessor[T, V any] struct {
	get func(*T) V
	set func(*T, V)
}

func (a propertyAccessor[T, V]) Get(instance object.Object) (object.Object, error) {
	p, err := readTarget[T](instance)
	if err != nil {
		return object.Null(), err
	}
	return object.Box(a.get(p)), nil
}

func (a propertyAccessor[T, V]) Set(instance, value object.Object) error {
	if a.set == nil {
		return errReadOnly
	}
	p, err := writeTarget[T](instance)
	if err != nil {
		return err
	}
	v, err := object.As[V](value)
	if err != nil {
		return err
	}
	a.set(p, v)
	return nil
}

func (a propertyAccessor[T, V]) Access() Access {
	if a.set == nil {
		return ReadOnly
	}
	return ReadWrite
}

func (propertyAccessor[T, V]) ValueType() reflect.Type { return reflect.TypeFor[V]() }

// readTarget unboxes an instance for reading. Boxed copies of T are read
// from a private copy.
func readTarget[T any](instance object.Object) (*T, error) {
	if instance.IsNull() {
		return nil, fmt.Errorf("%w: member access on null %s", errs.ErrNullReference, reflect.TypeFor[T]())
	}
	switch v := instance.Value().(type) {
	case *T:
		if v == nil {
			return nil, fmt.Errorf("%w: member access on nil %s", errs.ErrNullReference, reflect.TypeFor[*T]())
		}
		return v, nil
	case T:
		return &v, nil
	}
	rv := reflect.ValueOf(instance.Value())
	if pv, ok := promote(rv, reflect.TypeFor[*T]()); ok {
		return pv.Interface().(*T), nil
	}
	if cv, ok := promote(rv, reflect.TypeFor[T]()); ok {
		c := cv.Interface().(T)
		return &c, nil
	}
	return nil, errs.Cast(instance.GoType().String(), reflect.TypeFor[*T]().String())
}

// writeTarget unboxes an instance for writing. Only shared references can be
// written: a write into a boxed copy would be lost.
func writeTarget[T any](instance object.Object) (*T, error) {
	if instance.IsNull() {
		return nil, fmt.Errorf("%w: member access on null %s", errs.ErrNullReference, reflect.TypeFor[T]())
	}
	if p, ok := instance.Value().(*T); ok {
		return p, nil
	}
	if pv, ok := promote(reflect.ValueOf(instance.Value()), reflect.TypeFor[*T]()); ok {
		return pv.Interface().(*T), nil
	}
	return nil, errs.Cast(instance.GoType().String(), reflect.TypeFor[*T]().String())
}

// maxPromoteDepth bounds the walk through embedded fields.
const maxPromoteDepth = 8

// promote finds a value of type want among the exported embedded fields of
// v, the way Go promotes the members of an embedded struct: breadth-first,
// the shallowest depth wins, and two matches at that depth are ambiguous.
// Members inherited from a base type are reached this way on derived
// instances.
func promote(v reflect.Value, want reflect.Type) (reflect.Value, bool) {
	level := []reflect.Value{v}
	for depth := 0; depth <= maxPromoteDepth && len(level) > 0; depth++ {
		var (
			found reflect.Value
			n     int
			next  []reflect.Value
		)
		for _, lv := range level {
			sv, ok := structValue(lv)
			if !ok {
				continue
			}
			for i := 0; i < sv.NumField(); i++ {
				f := sv.Type().Field(i)
				if !f.Anonymous || !f.IsExported() {
					continue
				}
				fv := sv.Field(i)
				switch {
				case fv.Type() == want:
					if fv.Kind() == reflect.Pointer && fv.IsNil() {
						continue
					}
					found, n = fv, n+1
				case fv.CanAddr() && reflect.PointerTo(fv.Type()) == want:
					found, n = fv.Addr(), n+1
				default:
					next = append(next, fv)
				}
			}
		}
		switch {
		case n == 1:
			return found, true
		case n > 1:
			return reflect.Value{}, false
		}
		level = next
	}
	return reflect.Value{}, false
}

// structValue dereferences v down to a struct, if there is one.
func structValue(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.Kind() == reflect.Struct
}

// FieldInfo describes one field or property of a type.
type FieldInfo struct {
	name      string
	kind      MemberKind
	declaring *Type
	acc       MemberAccessor
}

// Name returns the member name.
func (f *FieldInfo) Name() string { return f.name }

// Kind reports whether f is a field or a property.
func (f *FieldInfo) Kind() MemberKind { return f.kind }

// DeclaringType returns the type that declared f.
func (f *FieldInfo) DeclaringType() *Type { return f.declaring }

// FieldType returns the Go type of the member value.
func (f *FieldInfo) FieldType() reflect.Type { return f.acc.ValueType() }

// CanWrite reports whether SetValue can succeed.
func (f *FieldInfo) CanWrite() bool { return f.acc.Access() == ReadWrite }

// Accessor returns the underlying MemberAccessor.
func (f *FieldInfo) Accessor() MemberAccessor { return f.acc }

// GetValue reads the member from instance.
func (f *FieldInfo) GetValue(instance object.Object) (object.Object, error) {
	return f.acc.Get(instance)
}

// SetValue writes value to the member of instance. Read-only members fail
// with errs.ErrInvalidOperation whatever the arguments.
func (f *FieldInfo) SetValue(instance, value object.Object) error {
	if f.acc.Access() == ReadOnly {
		return errReadOnly
	}
	return f.acc.Set(instance, value)
}

func (f *FieldInfo) String() string {
	return fmt.Sprintf("%s %s %s", f.kind, f.acc.ValueType(), f.name)
}
