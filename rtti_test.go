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
	"reflect"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/config"
	"dirpx.dev/rtti/meta"
	"dirpx.dev/rtti/registry"
	"dirpx.dev/rtti/resolver"
	"dirpx.dev/rtti/strategy"
)

// Reset to a clean snapshot using our test builder.
// Pins are reset because we pass nil reg/res.
func resetWithBuilder(tb testing.TB, b apis.Builder, cfg apis.Config) {
	tb.Helper()
	SetAll(&cfg, nil, nil, b)
	tb.Cleanup(Reset)
}

// ---------------------- Test doubles (mocks) ----------------------

// mockBuilder builds real registries and resolvers and records its calls.
type mockBuilder struct {
	mu          sync.Mutex
	lastCfg     apis.Config
	lastPrevReg apis.Registry
	lastPrevRes apis.Resolver
	regCounter  int
	resCounter  int
}

func (b *mockBuilder) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg, b.lastPrevReg = cfg, prev
	b.regCounter++
	return registry.New(cfg)
}

func (b *mockBuilder) BuildResolver(cfg apis.Config, reg apis.Registry, prev apis.Resolver) apis.Resolver {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg, b.lastPrevRes = cfg, prev
	b.resCounter++
	return resolver.New(strategy.NewRegistryStrategy(reg), strategy.NewBuiltinStrategy(reg))
}

func (b *mockBuilder) counters() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.regCounter, b.resCounter
}

// ---------------------- Tests ----------------------

func TestSetConfig_Rebuilds_Unpinned(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.NewConfig())

	// snapshot 1
	s1Reg := Registry()
	s1Res := Resolver()

	// change cfg -> both should rebuild (not pinned)
	SetConfig(config.NewConfig(config.WithMaxUnwrap(4)))

	assert.NotSame(t, s1Reg, Registry(), "registry was not rebuilt on SetConfig (unpinned)")
	assert.NotSame(t, s1Res, Resolver(), "resolver was not rebuilt on SetConfig (unpinned)")

	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Equal(t, 4, b.lastCfg.MaxUnwrap, "builder received wrong cfg")
	assert.Same(t, s1Reg, b.lastPrevReg, "previous registry is handed over for migration")
}

func TestSetRegistry_PinsRegistry_and_RebuildsResolverIfUnpinned(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.NewConfig())

	customReg := registry.New(config.NewConfig())
	SetRegistry(customReg)
	require.True(t, IsRegistryPinned())

	beforeRes := Resolver()
	SetConfig(config.NewConfig(config.WithMaxUnwrap(3)))

	assert.Same(t, customReg, Registry(), "pinned registry was rebuilt unexpectedly")
	assert.NotSame(t, beforeRes, Resolver(), "resolver was not rebuilt when cfg changed and res not pinned")
}

func TestSetResolver_PinsResolver(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.NewConfig())

	// Pin resolver
	customRes := resolver.New()
	SetResolver(customRes)
	require.True(t, IsResolverPinned())

	regBefore := Registry()

	// Change cfg -> expect: registry rebuilt (not pinned), resolver unchanged (pinned)
	SetConfig(config.NewConfig(config.WithMaxUnwrap(3)))

	assert.Same(t, customRes, Resolver(), "pinned resolver was rebuilt unexpectedly")
	assert.NotSame(t, regBefore, Registry(), "registry was not rebuilt on SetConfig when resolver is pinned")
}

func TestSetBuilder_Rebuilds_Only_Unpinned(t *testing.T) {
	// Start with builder A
	a := &mockBuilder{}
	resetWithBuilder(t, a, config.NewConfig())

	// Pin resolver, leave registry unpinned
	SetResolver(resolver.New())
	regBefore := Registry()
	resBefore := Resolver()

	// Swap to builder B -> registry rebuilt by B, resolver unchanged (pinned)
	b := &mockBuilder{}
	SetBuilder(b)

	assert.Same(t, b, Builder())
	assert.NotSame(t, regBefore, Registry())
	assert.Same(t, resBefore, Resolver())

	reg, res := b.counters()
	assert.Equal(t, 1, reg)
	assert.Equal(t, 0, res)
}

func TestUnpin_Allows_Rebuild_After(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.NewConfig())

	PinRegistry()
	PinResolver()

	reg1 := Registry()
	res1 := Resolver()
	regN, resN := b.counters()
	SetConfig(config.NewConfig(config.WithMaxUnwrap(4)))
	require.Same(t, reg1, Registry(), "pinned layers should not rebuild on SetConfig")
	require.Same(t, res1, Resolver(), "pinned layers should not rebuild on SetConfig")
	regM, resM := b.counters()
	require.Equal(t, regN, regM)
	require.Equal(t, resN, resM)

	UnpinRegistry()
	UnpinResolver()
	require.False(t, IsRegistryPinned())
	require.False(t, IsResolverPinned())

	SetConfig(config.NewConfig(config.WithMaxUnwrap(6)))
	assert.NotSame(t, reg1, Registry(), "registry should rebuild after UnpinRegistry+SetConfig")
	assert.NotSame(t, res1, Resolver(), "resolver should rebuild after UnpinResolver+SetConfig")
}

func TestSetConfig_MigratesTypes(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	before, err := TypeOf[int]()
	require.NoError(t, err)

	SetConfig(config.NewConfig(config.WithMaxUnwrap(2)))

	assert.Same(t, before, GetType("System.Int"), "types survive a registry rebuild")
	after, err := TypeOf[int]()
	require.NoError(t, err)
	assert.Same(t, before, after)
}

func TestReset_ClearsTypesAndPins(t *testing.T) {
	_, err := TypeOf[bool]()
	require.NoError(t, err)
	PinRegistry()

	Reset()

	assert.False(t, IsRegistryPinned())
	assert.Nil(t, GetType("System.Boolean"))
	assert.Equal(t, config.DefaultConfig(), Config())
}

func TestSetAll_NilBuildersPanics(t *testing.T) {
	t.Cleanup(Reset)
	cfg := config.NewConfig()
	assert.PanicsWithValue(t, ErrNilRegistry, func() {
		SetAll(&cfg, nil, nil, nilBuilder{})
	})
}

type nilBuilder struct{}

func (nilBuilder) BuildRegistry(apis.Config, apis.Registry) apis.Registry                { return nil }
func (nilBuilder) BuildResolver(apis.Config, apis.Registry, apis.Resolver) apis.Resolver { return nil }

func TestTypeOf_Concurrent_With_SetConfig(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	type token struct{}
	done := make(chan struct{})
	var wg sync.WaitGroup

	readers := runtime.GOMAXPROCS(0) * 4
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if _, err := TypeOf[int](); err != nil {
					t.Errorf("TypeOf[int]: %v", err)
					return
				}
				_, _ = TypeOfValue(token{})
				_ = GetDerivedTypes("System.Int")
			}
		}()
	}

	go func() {
		for i := 0; i < 20; i++ {
			SetConfig(config.NewConfig(config.WithMaxUnwrap(4 + i%5)))
			time.Sleep(time.Millisecond)
		}
		close(done)
	}()

	wg.Wait()
	<-done

	typ, err := TypeFor(reflect.TypeFor[*int]())
	require.NoError(t, err)
	assert.Equal(t, "System.Int", typ.FullName())
}

func TestDeclare_WithoutGoType(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	base, err := Declare(meta.NewTypeBuilder("doc", "Node", "doc.Node"))
	require.NoError(t, err)
	child, err := Declare(meta.NewTypeBuilder("doc", "Leaf", "doc.Leaf").WithBaseType(base))
	require.NoError(t, err)

	assert.Same(t, base, GetType("Node"))
	assert.Equal(t, []*meta.Type{child}, DerivedTypesOf(base))
	assert.Nil(t, DerivedTypesOf(nil))
}
