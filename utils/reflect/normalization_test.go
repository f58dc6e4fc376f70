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

package reflect_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/object"
	uref "dirpx.dev/rtti/utils/reflect"
)

// Local test types.
type A struct{}
type G[T any] struct{}

// cfg returns a convenient baseline Config for tests.
func cfg(opts ...func(*apis.Config)) apis.Config {
	c := apis.Config{MaxUnwrap: 8}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func TestNormalize_Pointers(t *testing.T) {
	conf := cfg()

	cases := []struct {
		name string
		typ  reflect.Type
		want reflect.Type
	}{
		{"plain", reflect.TypeFor[A](), reflect.TypeFor[A]()},
		{"ptr", reflect.TypeFor[*A](), reflect.TypeFor[A]()},
		{"ptr ptr", reflect.TypeFor[**A](), reflect.TypeFor[A]()},
		{"slice kept", reflect.TypeFor[[]A](), reflect.TypeFor[[]A]()},
		{"builtin", reflect.TypeFor[*int](), reflect.TypeFor[int]()},
		{"generic", reflect.TypeFor[*G[int]](), reflect.TypeFor[G[int]]()},
		{"any", reflect.TypeFor[any](), reflect.TypeFor[object.Object]()},
		{"ptr any", reflect.TypeFor[*any](), reflect.TypeFor[object.Object]()},
		{"named interface kept", reflect.TypeFor[error](), reflect.TypeFor[error]()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Normalize(tc.typ, conf)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalize_Errors(t *testing.T) {
	_, err := uref.Normalize(nil, cfg())
	require.ErrorIs(t, err, uref.ErrReflectNilType)

	shallow := cfg(func(c *apis.Config) { c.MaxUnwrap = 1 })
	_, err = uref.Normalize(reflect.TypeFor[**A](), shallow)
	require.ErrorIs(t, err, uref.ErrReflectUnwrapLimit)

	got, err := uref.Normalize(reflect.TypeFor[*A](), shallow)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[A](), got)
}

func TestNormalize_ZeroMaxUnwrapUsesDefault(t *testing.T) {
	got, err := uref.Normalize(reflect.TypeFor[***A](), cfg(func(c *apis.Config) { c.MaxUnwrap = 0 }))
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[A](), got)
}

func TestNaming(t *testing.T) {
	assert.Equal(t, "dirpx.dev/rtti/utils/reflect_test.A", uref.TypeID(reflect.TypeFor[A]()))
	assert.Equal(t, "int", uref.TypeID(reflect.TypeFor[int]()))
	assert.Equal(t, "[]string", uref.TypeID(reflect.TypeFor[[]string]()))
	assert.Equal(t, "", uref.TypeID(nil))

	assert.Equal(t, "G", uref.BaseName(reflect.TypeFor[G[int]]()))
	assert.Equal(t, "A", uref.BaseName(reflect.TypeFor[A]()))

	assert.Equal(t, "reflect_test", uref.Namespace(reflect.TypeFor[A]()))
	assert.Equal(t, "", uref.Namespace(reflect.TypeFor[int]()))
}

func TestNormalize_Concurrent(t *testing.T) {
	conf := cfg()
	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				got, err := uref.Normalize(reflect.TypeFor[**A](), conf)
				if err != nil || got != reflect.TypeFor[A]() {
					t.Errorf("Normalize: got (%v, %v)", got, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
