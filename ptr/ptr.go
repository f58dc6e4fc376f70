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

// Package ptr provides Ptr, a shared-ownership handle with an explicit,
// observable reference count.
//
// A Ptr shares a heap cell with every handle cloned or converted from it.
// Ownership is counted, not inferred: Clone and Assign take a reference,
// Release gives one back, and the cell is destroyed exactly once when the
// last reference is released. Destruction runs Dispose on values that
// implement Disposer.
//
// Plain Go assignment of a Ptr copies the handle without taking a reference;
// such copies are borrowed views and must not be released.
//
// Counts are maintained atomically, so handles to the same cell may be
// cloned and released from different goroutines.
package ptr

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"dirpx.dev/rtti/errs"
)

// Disposer is implemented by values that need to observe their destruction.
type Disposer interface {
	// Dispose is called once, when the last reference to the cell is released.
	Dispose()
}

// Indexer is implemented by pointee types that support positional or keyed
// element access.
type Indexer[K, V any] interface {
	Item(k K) (V, error)
}

// cell is the shared heap object behind every Ptr.
type cell struct {
	// refs is the number of live owning handles.
	refs atomic.Int64
	// v is the owned value as originally stored.
	v any
	// borrowed cells never dispose v: its owner lives elsewhere.
	borrowed bool
}

// release drops one reference and destroys the cell on the transition to zero.
func (c *cell) release() {
	n := c.refs.Add(-1)
	switch {
	case n == 0:
		if c.borrowed {
			return
		}
		if d, ok := c.v.(Disposer); ok {
			d.Dispose()
		}
	case n < 0:
		panic(fmt.Sprintf("ptr: reference count below zero (%d) for %T", n, c.v))
	}
}

// Ptr is a reference-counted handle to a value of type T.
// The zero value is the null handle.
type Ptr[T any] struct {
	c *cell
	v T
}

// New takes ownership of v and returns the first handle to it.
// A nil pointer, interface, map, slice, chan or func yields the null handle.
func New[T any](v T) Ptr[T] {
	if isNil(v) {
		return Ptr[T]{}
	}
	c := &cell{v: v}
	c.refs.Add(1)
	return Ptr[T]{c: c, v: v}
}

// Borrow returns the first handle to a cell that refers to v without owning
// it. Handles are counted as for New, but releasing the last one never calls
// Dispose. A nil v yields the null handle.
func Borrow[T any](v T) Ptr[T] {
	if isNil(v) {
		return Ptr[T]{}
	}
	c := &cell{v: v, borrowed: true}
	c.refs.Add(1)
	return Ptr[T]{c: c, v: v}
}

// IsBorrowed reports whether p's cell was created by Borrow.
func (p Ptr[T]) IsBorrowed() bool {
	return p.c != nil && p.c.borrowed
}

// Null returns the null handle for T.
func Null[T any]() Ptr[T] {
	return Ptr[T]{}
}

// IsNil reports whether p is the null handle.
func (p Ptr[T]) IsNil() bool {
	return p.c == nil
}

// Get returns the pointee, or ErrNullReference if p is null.
func (p Ptr[T]) Get() (T, error) {
	if p.c == nil {
		var zero T
		return zero, fmt.Errorf("%w: dereference of null ptr.Ptr[%s]", errs.ErrNullReference, typeName[T]())
	}
	return p.v, nil
}

// MustGet is like Get but panics on a null handle.
func (p Ptr[T]) MustGet() T {
	v, err := p.Get()
	if err != nil {
		panic(err)
	}
	return v
}

// Clone returns a new owning handle to the same cell.
func (p Ptr[T]) Clone() Ptr[T] {
	if p.c != nil {
		p.c.refs.Add(1)
	}
	return p
}

// Assign makes p an owning handle to q's cell. The new target is retained
// before the previous target is released, so assigning a handle to itself
// never destroys the cell.
func (p *Ptr[T]) Assign(q Ptr[T]) {
	if q.c != nil {
		q.c.refs.Add(1)
	}
	old := p.c
	p.c, p.v = q.c, q.v
	if old != nil {
		old.release()
	}
}

// Release gives back p's reference and resets p to null.
func (p *Ptr[T]) Release() {
	if p.c == nil {
		return
	}
	c := p.c
	*p = Ptr[T]{}
	c.release()
}

// Equal reports whether p and q refer to the same cell.
func (p Ptr[T]) Equal(q Ptr[T]) bool {
	return p.c == q.c
}

// RefCount returns the current number of owning handles to p's cell.
func (p Ptr[T]) RefCount() int64 {
	if p.c == nil {
		return 0
	}
	return p.c.refs.Load()
}

// Any returns p's pointee as stored, or nil for the null handle.
func (p Ptr[T]) Any() any {
	if p.c == nil {
		return nil
	}
	return p.c.v
}

// Share returns a new owning handle to p's cell, typed as any.
func (p Ptr[T]) Share() Ptr[any] {
	if p.c == nil {
		return Ptr[any]{}
	}
	p.c.refs.Add(1)
	return Ptr[any]{c: p.c, v: p.c.v}
}

func (p Ptr[T]) String() string {
	if p.c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v", p.v)
}

// Upcast converts p to a handle of a wider type T and retains the cell.
// It is meant for conversions that hold statically (R implements T) and
// panics with ErrInvalidCast when they do not.
func Upcast[T, R any](p Ptr[R]) Ptr[T] {
	q, err := Cast[T](p)
	if err != nil {
		panic(err)
	}
	return q
}

// Cast converts p to a handle of type T after checking the pointee's
// runtime type. The result owns a new reference. A null p converts to a
// null handle without error.
func Cast[T, R any](p Ptr[R]) (Ptr[T], error) {
	if p.c == nil {
		return Ptr[T]{}, nil
	}
	v, ok := p.c.v.(T)
	if !ok {
		return Ptr[T]{}, errs.Cast(fmt.Sprintf("%T", p.c.v), typeName[T]())
	}
	p.c.refs.Add(1)
	return Ptr[T]{c: p.c, v: v}, nil
}

// Item forwards indexing to the pointee.
func Item[K, V any, T Indexer[K, V]](p Ptr[T], k K) (V, error) {
	t, err := p.Get()
	if err != nil {
		var zero V
		return zero, err
	}
	return t.Item(k)
}

// isNil reports whether v is nil or a typed nil of a nilable kind.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
