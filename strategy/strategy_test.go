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

package strategy_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/config"
	"dirpx.dev/rtti/meta"
	"dirpx.dev/rtti/registry"
	"dirpx.dev/rtti/strategy"
)

// Local test types.
type Shape struct{ Area int }

func (s *Shape) DeclareType(b *meta.TypeBuilder) {
	b.WithField("area", meta.Field(func(s *Shape) *int { return &s.Area }))
}

type Plain struct{}

type Box[T any] struct{ V T }

func (Box[T]) DeclareType(b *meta.TypeBuilder) {
	b.AsValueType().WithGenericArgument(reflect.TypeFor[T]())
}

type Color int

func (Color) EnumNames() map[string]int64 {
	return map[string]int64{"Red": 1, "Green": 2, "Crimson": 1}
}

type Drawable interface{ Draw() }

// noResolve fails every nested lookup.
func noResolve(t reflect.Type) (*meta.Type, error) {
	return nil, assert.AnError
}

func TestRegistryStrategy(t *testing.T) {
	conf := config.DefaultConfig()
	reg := registry.New(conf)
	s := strategy.NewRegistryStrategy(reg)
	assert.Equal(t, "registry", s.Name())

	_, ok, err := s.TryResolveType(reflect.TypeFor[Shape](), conf, noResolve)
	require.NoError(t, err)
	assert.False(t, ok, "unknown type -> miss")

	typ, err := meta.NewTypeBuilder("strategy_test", "Shape", "x", meta.WithGoType(reflect.TypeFor[Shape]())).Build(reg)
	require.NoError(t, err)

	for _, tt := range []reflect.Type{reflect.TypeFor[Shape](), reflect.TypeFor[*Shape]()} {
		got, ok, err := s.TryResolveType(tt, conf, noResolve)
		require.NoError(t, err)
		require.True(t, ok, tt.String())
		assert.Same(t, typ, got)
	}

	_, ok, _ = strategy.NewRegistryStrategy(nil).TryResolveType(reflect.TypeFor[Shape](), conf, noResolve)
	assert.False(t, ok)
}

func TestDeclarerStrategy_Defaults(t *testing.T) {
	conf := config.DefaultConfig()
	reg := registry.New(conf)
	s := strategy.NewDeclarerStrategy(reg)

	typ, ok, err := s.TryResolveType(reflect.TypeFor[Shape](), conf, noResolve)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "strategy_test.Shape", typ.FullName())
	assert.Equal(t, "dirpx.dev/rtti/strategy_test.Shape", typ.ID())
	assert.Equal(t, reflect.TypeFor[Shape](), typ.GoType())
	assert.NotNil(t, typ.GetField("area"))

	got, ok := reg.Lookup("Shape")
	require.True(t, ok)
	assert.Same(t, typ, got)
}

func TestDeclarerStrategy_Misses(t *testing.T) {
	conf := config.DefaultConfig()
	s := strategy.NewDeclarerStrategy(registry.New(conf))

	for _, tt := range []reflect.Type{
		reflect.TypeFor[Plain](),
		reflect.TypeFor[int](),
		reflect.TypeFor[[]Shape](),
		reflect.TypeFor[time.Time](),
	} {
		_, ok, err := s.TryResolveType(tt, conf, noResolve)
		require.NoError(t, err)
		assert.False(t, ok, tt.String())
	}
}

func TestDeclarerStrategy_GenericNameAndArguments(t *testing.T) {
	conf := config.DefaultConfig()
	s := strategy.NewDeclarerStrategy(registry.New(conf))

	intType, err := meta.NewTypeBuilder("System", "Int", "int").Build(registry.New(conf))
	require.NoError(t, err)
	resolve := func(t reflect.Type) (*meta.Type, error) { return intType, nil }

	typ, ok, err := s.TryResolveType(reflect.TypeFor[Box[int]](), conf, resolve)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "strategy_test.Box[System.Int]", typ.FullName())
	assert.True(t, typ.IsValueType())
	assert.Equal(t, []*meta.Type{intType}, typ.GenericArguments())
}

func TestDeclarerStrategy_NestedFailure(t *testing.T) {
	conf := config.DefaultConfig()
	reg := registry.New(conf)
	s := strategy.NewDeclarerStrategy(reg)

	_, ok, err := s.TryResolveType(reflect.TypeFor[Box[string]](), conf, noResolve)
	assert.True(t, ok)
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 0, reg.Count())
}

func TestDeclarerStrategy_Enum(t *testing.T) {
	conf := config.DefaultConfig()
	s := strategy.NewDeclarerStrategy(registry.New(conf))

	typ, ok, err := s.TryResolveType(reflect.TypeFor[Color](), conf, noResolve)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, typ.IsEnum())
	assert.Equal(t, []meta.EnumValue{{Name: "Crimson", Value: 1}, {Name: "Red", Value: 1}, {Name: "Green", Value: 2}}, typ.EnumValues())

	name, ok := typ.EnumName(1)
	require.True(t, ok)
	assert.Equal(t, "Crimson", name)
}

func TestDeclarerStrategy_Interface(t *testing.T) {
	conf := config.DefaultConfig()
	s := strategy.NewDeclarerStrategy(registry.New(conf))

	typ, ok, err := s.TryResolveType(reflect.TypeFor[Drawable](), conf, noResolve)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "strategy_test.Drawable", typ.FullName())
	assert.Empty(t, typ.Methods())
}

func TestBuiltinStrategy(t *testing.T) {
	conf := config.DefaultConfig()
	reg := registry.New(conf)
	s := strategy.NewBuiltinStrategy(reg)
	assert.Equal(t, "builtin", s.Name())

	typ, ok, err := s.TryResolveType(reflect.TypeFor[int32](), conf, noResolve)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "System.Int32", typ.FullName())

	_, ok, err = s.TryResolveType(reflect.TypeFor[Plain](), conf, noResolve)
	require.NoError(t, err)
	assert.False(t, ok)
}

var _ apis.Strategy = strategy.NewBuiltinStrategy(nil)
