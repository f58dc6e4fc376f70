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

package value

import (
	"fmt"
	"reflect"

	"dirpx.dev/rtti/errs"
)

// Tuple is the positional access contract shared by Tuple2 and Tuple3.
type Tuple interface {
	Len() int
	Item(i int) (any, error)
	SetItem(i int, v any) error
	ElemTypes() []reflect.Type
}

// Tuple2 is an ordered pair.
type Tuple2[A, B any] struct {
	Item1 A
	Item2 B
}

// NewTuple2 returns a Tuple2 holding a and b.
func NewTuple2[A, B any](a A, b B) *Tuple2[A, B] {
	return &Tuple2[A, B]{Item1: a, Item2: b}
}

func (t *Tuple2[A, B]) Len() int { return 2 }

func (t *Tuple2[A, B]) Item(i int) (any, error) {
	switch i {
	case 0:
		return t.Item1, nil
	case 1:
		return t.Item2, nil
	}
	return nil, errs.IndexOutOfRange(i, 2)
}

func (t *Tuple2[A, B]) SetItem(i int, v any) error {
	switch i {
	case 0:
		return assign(&t.Item1, v)
	case 1:
		return assign(&t.Item2, v)
	}
	return errs.IndexOutOfRange(i, 2)
}

func (t *Tuple2[A, B]) ElemTypes() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()}
}

func (t *Tuple2[A, B]) String() string {
	return fmt.Sprintf("(%v, %v)", t.Item1, t.Item2)
}

// Tuple3 is an ordered triple.
type Tuple3[A, B, C any] struct {
	Item1 A
	Item2 B
	Item3 C
}

// NewTuple3 returns a Tuple3 holding a, b and c.
func NewTuple3[A, B, C any](a A, b B, c C) *Tuple3[A, B, C] {
	return &Tuple3[A, B, C]{Item1: a, Item2: b, Item3: c}
}

func (t *Tuple3[A, B, C]) Len() int { return 3 }

func (t *Tuple3[A, B, C]) Item(i int) (any, error) {
	switch i {
	case 0:
		return t.Item1, nil
	case 1:
		return t.Item2, nil
	case 2:
		return t.Item3, nil
	}
	return nil, errs.IndexOutOfRange(i, 3)
}

func (t *Tuple3[A, B, C]) SetItem(i int, v any) error {
	switch i {
	case 0:
		return assign(&t.Item1, v)
	case 1:
		return assign(&t.Item2, v)
	case 2:
		return assign(&t.Item3, v)
	}
	return errs.IndexOutOfRange(i, 3)
}

func (t *Tuple3[A, B, C]) ElemTypes() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]()}
}

func (t *Tuple3[A, B, C]) String() string {
	return fmt.Sprintf("(%v, %v, %v)", t.Item1, t.Item2, t.Item3)
}

// assign stores v into dst after a checked conversion.
func assign[T any](dst *T, v any) error {
	if v == nil {
		var zero T
		switch reflect.TypeFor[T]().Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			*dst = zero
			return nil
		}
		return errs.Cast("nil", reflect.TypeFor[T]().String())
	}
	x, ok := v.(T)
	if !ok {
		return errs.Cast(fmt.Sprintf("%T", v), reflect.TypeFor[T]().String())
	}
	*dst = x
	return nil
}
