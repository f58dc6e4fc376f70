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

package rtti

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/builder"
	"dirpx.dev/rtti/config"
	"dirpx.dev/rtti/meta"
)

// init initializes the global state.
func init() {
	st.Store(defaultState())
}

// defaultState builds a snapshot from the default config and builder.
func defaultState() *state {
	s := &state{cfg: config.DefaultConfig(), bld: builder.New()}
	s.reg = s.bld.BuildRegistry(s.cfg, nil)
	s.res = s.bld.BuildResolver(s.cfg, s.reg, nil)
	return s
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("rtti: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("rtti: builder returned nil resolver")
)

// TypeOf returns the metadata of T, building and registering it on first use.
// Pointer types share the metadata of their element: TypeOf[*Circle] and
// TypeOf[Circle] return the same instance.
func TypeOf[T any]() (*meta.Type, error) {
	return TypeFor(reflect.TypeFor[T]())
}

// MustTypeOf is TypeOf for types known to be declared. It panics on error.
func MustTypeOf[T any]() *meta.Type {
	t, err := TypeOf[T]()
	if err != nil {
		panic(err)
	}
	return t
}

// TypeOfValue returns the metadata of the dynamic type of v. A boxed
// object.Object resolves to the type of its content.
func TypeOfValue(v any) (*meta.Type, error) {
	s := st.Load()
	return s.res.Resolve(v, s.cfg)
}

// TypeFor returns the metadata of the Go type t.
func TypeFor(t reflect.Type) (*meta.Type, error) {
	s := st.Load()
	return s.res.ResolveType(t, s.cfg)
}

// GetType returns the type registered under a full name, a stable id or a
// simple name, or nil. It never builds: the type must have been resolved
// or registered before.
func GetType(name string) *meta.Type {
	t, _ := st.Load().reg.Lookup(name)
	return t
}

// GetDerivedTypes returns every registered type that has the named type as
// a direct or transitive base, in registration order. The result is nil for
// a name never registered and empty for a type without descendants.
func GetDerivedTypes(name string) []*meta.Type {
	return st.Load().reg.DerivedTypes(name)
}

// DerivedTypesOf is GetDerivedTypes keyed by metadata.
func DerivedTypesOf(t *meta.Type) []*meta.Type {
	if t == nil {
		return nil
	}
	return GetDerivedTypes(t.FullName())
}

// Declare builds b into the global registry, for types declared without a
// Go type behind them.
func Declare(b *meta.TypeBuilder) (*meta.Type, error) {
	return b.Build(st.Load().reg)
}

// SetAll explicitly sets all global state components.
//
// Nil arguments leave the corresponding component unchanged; a nil reg or
// res is rebuilt by the (possibly new) builder and unpinned.
//
// This is mainly used by tests to get a clean deterministic state.
func SetAll(cfg *apis.Config, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	update(func(old, next *state) {
		if cfg != nil {
			next.cfg = *cfg
		}
		if bld != nil {
			next.bld = bld
		}
		next.reg, next.preg = reg, reg != nil
		if reg == nil {
			next.reg = next.bld.BuildRegistry(next.cfg, old.reg)
		}
		next.res, next.pres = res, res != nil
		if res == nil {
			next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res)
		}
	})
}

// Reset discards every registered type and restores the default config and
// builder. Pins are cleared.
func Reset() {
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Store(defaultState())
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg.
// It rebuilds the registry and resolver unless they are pinned.
func SetConfig(cfg apis.Config) {
	update(func(old, next *state) {
		next.cfg = cfg
		rebuild(old, next)
	})
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets and pins the global registry.
// It rebuilds the resolver over reg unless the resolver is pinned.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	update(func(old, next *state) {
		next.reg, next.preg = reg, true
		if !old.pres {
			next.res = next.bld.BuildResolver(next.cfg, reg, old.res)
		}
	})
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets and pins the global resolver.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	update(func(_, next *state) {
		next.res, next.pres = res, true
	})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder to b.
// It rebuilds the registry and resolver unless they are pinned.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	update(func(old, next *state) {
		next.bld = b
		rebuild(old, next)
	})
}

// IsRegistryPinned returns whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops automatic rebuilds of the global registry.
func PinRegistry() {
	update(func(_, next *state) { next.preg = true })
}

// UnpinRegistry allows automatic rebuilds of the global registry again.
func UnpinRegistry() {
	update(func(_, next *state) { next.preg = false })
}

// IsResolverPinned returns whether the global resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver stops automatic rebuilds of the global resolver.
func PinResolver() {
	update(func(_, next *state) { next.pres = true })
}

// UnpinResolver allows automatic rebuilds of the global resolver again.
func UnpinResolver() {
	update(func(_, next *state) { next.pres = false })
}

// rebuild replaces the unpinned layers of next using next.bld and next.cfg.
func rebuild(old, next *state) {
	if !old.preg {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg)
	}
	if !old.pres {
		next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res)
	}
}

// update derives a new snapshot from the current one under buildMu and
// publishes it. It panics if the result lacks a registry or resolver.
func update(fn func(old, next *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	fn(old, &next)

	// Ensure non-nil reg and res.
	if next.reg == nil {
		panic(ErrNilRegistry)
	}
	if next.res == nil {
		panic(ErrNilResolver)
	}
	st.Store(&next)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// reg is the global registry.
	reg apis.Registry
	// res is the global resolver.
	res apis.Resolver
	// bld is the global builder.
	bld apis.Builder
	// preg indicates whether reg is pinned.
	preg bool
	// pres indicates whether res is pinned.
	pres bool
}
