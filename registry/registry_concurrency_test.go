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

package registry_test

import (
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apis "dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/config"
	"dirpx.dev/rtti/meta"
	"dirpx.dev/rtti/registry"
)

// A few named types to back Go type lookups.
type T0 struct{}
type T1 struct{}
type T2 struct{}
type T3 struct{}
type T4 struct{}
type T5 struct{}
type T6 struct{}
type T7 struct{}
type T8 struct{}
type T9 struct{}

var goTypes = []reflect.Type{
	reflect.TypeFor[T0](), reflect.TypeFor[T1](), reflect.TypeFor[T2](),
	reflect.TypeFor[T3](), reflect.TypeFor[T4](), reflect.TypeFor[T5](),
	reflect.TypeFor[T6](), reflect.TypeFor[T7](), reflect.TypeFor[T8](),
	reflect.TypeFor[T9](),
}

func build(reg apis.Registry, i int) (*meta.Type, error) {
	name := fmt.Sprintf("T%d", i)
	return meta.NewTypeBuilder("hammer", name, "test/hammer."+name,
		meta.WithGoType(goTypes[i])).Build(reg)
}

// TestConcurrentRegisterAndLookup verifies that Register/Lookup/Entries/Count
// are race-free and that concurrent builds of one type agree on a single
// canonical instance.
func TestConcurrentRegisterAndLookup(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	// Register once (sequential) to establish baseline.
	canon := make([]*meta.Type, len(goTypes))
	for i := range goTypes {
		typ, err := build(reg, i)
		require.NoError(t, err)
		canon[i] = typ
	}

	// Hammer with concurrent lookups and idempotent re-registrations.
	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4

	// Readers
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				j := i % len(goTypes)
				if got, ok := reg.LookupType(goTypes[j]); !ok || got != canon[j] {
					t.Errorf("lookup failed for %v: ok=%v got=%v", goTypes[j], ok, got)
					return
				}
				_ = reg.Count()
				_ = reg.Entries()
				_ = reg.DerivedTypes("hammer.T0")
			}
		}()
	}

	// Writers (idempotent re-register)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				j := (i + id) % len(goTypes)
				got, err := build(reg, j)
				if err != nil || got != canon[j] {
					t.Errorf("re-register T%d: got (%v, %v)", j, got, err)
					return
				}
			}
		}(w)
	}

	wg.Wait()

	// Final consistency checks.
	require.Equal(t, len(goTypes), reg.Count())
	for i, e := range reg.Entries() {
		assert.Same(t, canon[i], e.Type)
	}
}

// TestConcurrentFirstBuild races first registrations of the same identity.
func TestConcurrentFirstBuild(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	base, err := build(reg, 0)
	require.NoError(t, err)

	workers := runtime.GOMAXPROCS(0) * 4
	got := make([]*meta.Type, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			typ, err := meta.NewTypeBuilder("hammer", "Child", "test/hammer.Child").
				WithBaseType(base).
				Build(reg)
			if err != nil {
				t.Errorf("build: %v", err)
				return
			}
			got[w] = typ
		}(w)
	}
	wg.Wait()

	for _, typ := range got {
		assert.Same(t, got[0], typ)
	}
	assert.Len(t, reg.DerivedTypes("hammer.T0"), 1, "one derived entry despite racing builds")
}

// TestResetSnapshot ensures Reset is safe and Entries returns a stable snapshot.
func TestResetSnapshot(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	_, _ = build(reg, 0)
	_, _ = build(reg, 1)

	snap := reg.Entries() // snapshot copy expected
	reg.Reset()

	// After Reset, Count() should be 0, but previous snapshot must still be usable.
	require.Equal(t, 0, reg.Count())
	require.Len(t, snap, 2)
	assert.NotEmpty(t, snap[0].Name)
	assert.NotEmpty(t, snap[1].Name)
	assert.Nil(t, reg.DerivedTypes("hammer.T0"))
}

// This ensures the interface is satisfied; not a test but a compile-time check.
var _ apis.Registry = registry.New(config.DefaultConfig())
