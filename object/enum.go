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

package object

import (
	"fmt"
	"reflect"
	"sort"

	"dirpx.dev/rtti/errs"
	"dirpx.dev/rtti/ptr"
)

// Integer is the set of underlying types an enum may have.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Enum is implemented by enum types that publish their declared names.
// Box recognizes Enum values and keeps the names alongside the discriminant.
type Enum interface {
	EnumNames() map[string]int64
}

// enumBox is the boxed form of an enum: the underlying integer, the declared
// enum type and its name→value map.
type enumBox struct {
	typ   reflect.Type
	v     int64
	names map[string]int64
}

// BoxEnum boxes v together with its declared names.
func BoxEnum[T Integer](v T, names map[string]T) Object {
	m := make(map[string]int64, len(names))
	for k, n := range names {
		m[k] = toInt64(reflect.ValueOf(n))
	}
	e := &enumBox{typ: reflect.TypeFor[T](), v: toInt64(reflect.ValueOf(v)), names: m}
	return Object{p: ptr.New[any](e), kind: KindEnum}
}

// ToEnum recovers the enum discriminant boxed in o.
func ToEnum[T Integer](o Object) (T, error) {
	return As[T](o)
}

// EnumName returns the declared name of the discriminant boxed in o.
func EnumName(o Object) (string, bool) {
	e, ok := o.p.Any().(*enumBox)
	if !ok {
		return "", false
	}
	return e.name()
}

// EnumNames returns a copy of the name→value map boxed in o.
func EnumNames(o Object) (map[string]int64, error) {
	e, ok := o.p.Any().(*enumBox)
	if !ok {
		if o.IsNull() {
			return nil, fmt.Errorf("%w: enum names of null object", errs.ErrNullReference)
		}
		return nil, errs.Cast(o.GoType().String(), "enum")
	}
	m := make(map[string]int64, len(e.names))
	for k, v := range e.names {
		m[k] = v
	}
	return m, nil
}

func boxEnum(x Enum) Object {
	rv := reflect.ValueOf(x)
	e := &enumBox{typ: rv.Type(), v: toInt64(rv), names: x.EnumNames()}
	return Object{p: ptr.New[any](e), kind: KindEnum}
}

// value materializes the discriminant as a value of the enum type.
func (e *enumBox) value() any {
	rv := reflect.New(e.typ).Elem()
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		rv.SetUint(uint64(e.v))
	default:
		rv.SetInt(e.v)
	}
	return rv.Interface()
}

// name returns the first declared name (in lexical order) bound to e.v.
func (e *enumBox) name() (string, bool) {
	keys := make([]string, 0, len(e.names))
	for k, v := range e.names {
		if v == e.v {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return "", false
	}
	sort.Strings(keys)
	return keys[0], true
}

func toInt64(rv reflect.Value) int64 {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int64(rv.Uint())
	default:
		return rv.Int()
	}
}
