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

package registry

import (
	"errors"
	"log/slog"
	"reflect"
	"sync"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/config"
	"dirpx.dev/rtti/meta"
	uref "dirpx.dev/rtti/utils/reflect"
)

var (
	// ErrNilType is returned when a nil *meta.Type is provided.
	ErrNilType = errors.New("rtti(registry): nil type provided")
	// ErrEmptyName is returned when a type without a name is provided.
	ErrEmptyName = errors.New("rtti(registry): empty name provided")
	// ErrConflictingRegistration indicates an attempt to register a
	// different type under a full name that is already taken.
	ErrConflictingRegistration = errors.New("rtti(registry): conflicting type registration")
)

// New constructs a Registry that normalizes Go types according to cfg.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	r := &registry{cfg: cfg}
	r.init()
	return r
}

// registry is a Registry implementation backed by maps under an RWMutex.
// Every type is reachable under three aliases: full name, stable id and
// simple name.
type registry struct {
	// cfg is the configuration used for type normalization and logging.
	cfg apis.Config
	// mu guards every map below.
	mu sync.RWMutex
	// byName maps full names ("geo.Circle") to types.
	byName map[string]*meta.Type
	// byID maps stable source ids ("example.com/geo.Circle") to types.
	byID map[string]*meta.Type
	// bySimple maps simple names ("Circle") to their first owner.
	bySimple map[string]*meta.Type
	// byGo maps described Go types to types.
	byGo map[reflect.Type]*meta.Type
	// derived maps an ancestor full name to its descendants.
	derived map[string][]*meta.Type
	// order keeps registration order for Entries.
	order []*meta.Type
}

func (r *registry) init() {
	r.byName = make(map[string]*meta.Type)
	r.byID = make(map[string]*meta.Type)
	r.bySimple = make(map[string]*meta.Type)
	r.byGo = make(map[reflect.Type]*meta.Type)
	r.derived = make(map[string][]*meta.Type)
	r.order = nil
}

// Register inserts t and indexes it under every ancestor. It is idempotent
// per identity: when a type with the same id (or Go type) is already present
// the existing instance is returned and t is discarded.
func (r *registry) Register(t *meta.Type) (*meta.Type, error) {
	// Validate inputs early.
	if t == nil {
		return nil, ErrNilType
	}
	if t.Name() == "" {
		return nil, ErrEmptyName
	}
	full := t.FullName()
	log := r.cfg.Log()
	obs := r.cfg.Observer()

	r.mu.Lock()
	defer r.mu.Unlock()

	if old := r.canonical(t); old != nil {
		return old, nil
	}
	if old, ok := r.byName[full]; ok {
		obs.RegistrationConflict(t.Namespace())
		log.Warn("rtti: conflicting registration",
			slog.String("name", full), slog.String("id", t.ID()), slog.String("owner", old.ID()))
		return nil, ErrConflictingRegistration
	}

	r.byName[full] = t
	if t.ID() != "" {
		r.byID[t.ID()] = t
	}
	if t.GoType() != nil {
		r.byGo[t.GoType()] = t
	}
	if owner, taken := r.bySimple[t.Name()]; taken {
		log.Warn("rtti: simple name already taken, type is reachable by full name only",
			slog.String("name", t.Name()), slog.String("type", full), slog.String("owner", owner.FullName()))
	} else {
		r.bySimple[t.Name()] = t
	}

	// The type owns an (empty) derived list, then joins every ancestor's.
	if _, ok := r.derived[full]; !ok {
		r.derived[full] = []*meta.Type{}
	}
	for b := t.BaseType(); b != nil; b = b.BaseType() {
		r.derived[b.FullName()] = append(r.derived[b.FullName()], t)
	}
	r.order = append(r.order, t)

	obs.TypeRegistered(t.Namespace())
	log.Debug("rtti: registered type", slog.String("name", full), slog.String("id", t.ID()))
	return t, nil
}

// canonical returns the instance already registered for t's identity.
// Caller holds mu.
func (r *registry) canonical(t *meta.Type) *meta.Type {
	if t.ID() != "" {
		if old, ok := r.byID[t.ID()]; ok {
			return old
		}
	}
	if t.GoType() != nil {
		if old, ok := r.byGo[t.GoType()]; ok {
			return old
		}
	}
	return nil
}

// Lookup returns the type registered under a full name, a stable id or a
// simple name, tried in that order.
func (r *registry) Lookup(name string) (*meta.Type, bool) {
	r.mu.RLock()
	t := r.lookup(name)
	r.mu.RUnlock()

	r.cfg.Observer().Lookup(t != nil)
	return t, t != nil
}

// lookup is Lookup without locking or metrics. Caller holds mu.
func (r *registry) lookup(name string) *meta.Type {
	if t, ok := r.byName[name]; ok {
		return t
	}
	if t, ok := r.byID[name]; ok {
		return t
	}
	return r.bySimple[name]
}

// LookupType returns the type registered for t after pointer normalization.
func (r *registry) LookupType(t reflect.Type) (*meta.Type, bool) {
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return nil, false
	}
	r.mu.RLock()
	mt, ok := r.byGo[nt]
	r.mu.RUnlock()

	r.cfg.Observer().Lookup(ok)
	return mt, ok
}

// DerivedTypes returns a copy of the descendants recorded for name.
func (r *registry) DerivedTypes(name string) []*meta.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := name
	if t := r.lookup(name); t != nil {
		key = t.FullName()
	}
	d, ok := r.derived[key]
	if !ok {
		return nil
	}
	return append(make([]*meta.Type, 0, len(d)), d...)
}

// Entries returns a snapshot in registration order.
func (r *registry) Entries() []apis.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]apis.Entry, 0, len(r.order))
	for _, t := range r.order {
		entries = append(entries, apis.Entry{Name: t.FullName(), Type: t})
	}
	return entries
}

// Count returns the number of registered types.
func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Reset clears all registered types.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.init()
}
