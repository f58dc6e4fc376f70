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

package resolver

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"golang.org/x/sync/singleflight"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/errs"
	"dirpx.dev/rtti/meta"
	"dirpx.dev/rtti/object"
	uref "dirpx.dev/rtti/utils/reflect"
)

var (
	// ErrTypeNotDeclared is returned when no strategy handles a type.
	ErrTypeNotDeclared = errors.New("rtti(resolver): type not declared")
	// ErrCyclicDeclaration is returned when a type is (transitively) declared
	// in terms of itself, e.g. as its own base.
	ErrCyclicDeclaration = errors.New("rtti(resolver): cyclic type declaration")
)

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. The returned resolver is safe for concurrent use
// provided strategies themselves are safe for concurrent TryResolveType calls.
func New(strategies ...apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return &chain{strats: out}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	strats []apis.Strategy
	// flights collapses concurrent first resolutions of one Go type.
	flights singleflight.Group
}

// Resolve returns the metadata of the dynamic type of v. A boxed
// object.Object resolves to the type of its content.
func (r *chain) Resolve(v any, cfg apis.Config) (*meta.Type, error) {
	if o, ok := v.(object.Object); ok {
		if o.IsNull() {
			return nil, fmt.Errorf("%w: type of null object", errs.ErrNullReference)
		}
		return r.ResolveType(o.GoType(), cfg)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: type of nil value", errs.ErrNullReference)
	}
	return r.ResolveType(reflect.TypeOf(v), cfg)
}

// ResolveType runs strategies in order until one handles the type.
// Concurrent first resolutions of the same type share one build.
func (r *chain) ResolveType(t reflect.Type, cfg apis.Config) (*meta.Type, error) {
	nt, err := uref.Normalize(t, cfg)
	if err != nil {
		return nil, err
	}
	// reflect.Type values are unique per type, so the address is a safe key.
	key := fmt.Sprintf("%p", nt)
	v, err, _ := r.flights.Do(key, func() (any, error) {
		return r.resolve(nt, cfg, nil)
	})
	if err != nil {
		return nil, err
	}
	return v.(*meta.Type), nil
}

// resolve runs the chain for a normalized type. path holds the types whose
// declaration is in progress on this call stack; nested resolutions bypass
// the singleflight group so a cycle fails instead of waiting on itself.
func (r *chain) resolve(t reflect.Type, cfg apis.Config, path []reflect.Type) (*meta.Type, error) {
	if slices.Contains(path, t) {
		return nil, fmt.Errorf("%w: %s", ErrCyclicDeclaration, uref.TypeID(t))
	}
	path = append(slices.Clip(path), t)
	nested := func(dep reflect.Type) (*meta.Type, error) {
		nt, err := uref.Normalize(dep, cfg)
		if err != nil {
			return nil, err
		}
		return r.resolve(nt, cfg, path)
	}

	obs := cfg.Observer()
	for _, s := range r.strats {
		timer := obs.ResolveDuration(s.Name())
		typ, ok, err := s.TryResolveType(t, cfg, nested)
		timer.ObserveDuration()
		if err != nil {
			cfg.Log().Debug("rtti: resolution failed",
				slog.String("strategy", s.Name()), slog.String("type", uref.TypeID(t)), slog.Any("error", err))
			return nil, err
		}
		if ok {
			return typ, nil
		}
	}
	obs.ResolveFailed()
	return nil, fmt.Errorf("%w: %s", ErrTypeNotDeclared, uref.TypeID(t))
}
