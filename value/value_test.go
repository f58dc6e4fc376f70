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

package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rtti/errs"
	"dirpx.dev/rtti/object"
	"dirpx.dev/rtti/value"
)

func TestNullable(t *testing.T) {
	n := value.None[int]()
	assert.False(t, n.HasValue())
	_, err := n.Value()
	require.ErrorIs(t, err, errs.ErrInvalidOperation)
	assert.Equal(t, 0, n.GetValueOrDefault())

	s := value.Some(4)
	v, err := s.Value()
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestNullable_Boxing(t *testing.T) {
	assert.True(t, object.Box(value.None[int]()).IsNull(), "empty nullable boxes to null, not to an empty marker")

	o := object.Box(value.Some(12))
	require.Equal(t, object.KindBoxed, o.Kind())

	back, err := value.Unbox[int](o)
	require.NoError(t, err)
	assert.Equal(t, value.Some(12), back)

	empty, err := value.Unbox[int](object.Null())
	require.NoError(t, err)
	assert.False(t, empty.HasValue())

	_, err = value.Unbox[string](o)
	require.ErrorIs(t, err, errs.ErrInvalidCast)
}

func TestTuple2(t *testing.T) {
	tp := value.NewTuple2(1, "a")
	require.Equal(t, 2, tp.Len())

	v, err := tp.Item(1)
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	require.NoError(t, tp.SetItem(0, 9))
	assert.Equal(t, 9, tp.Item1)

	_, err = tp.Item(2)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	require.ErrorIs(t, tp.SetItem(-1, 0), errs.ErrIndexOutOfRange)
	require.ErrorIs(t, tp.SetItem(1, 3), errs.ErrInvalidCast)
	require.ErrorIs(t, tp.SetItem(0, nil), errs.ErrInvalidCast)

	assert.Equal(t, "(9, a)", tp.String())
}

func TestTuple3(t *testing.T) {
	tp := value.NewTuple3(1, 2.5, (*int)(nil))
	require.Equal(t, 3, tp.Len())
	require.Len(t, tp.ElemTypes(), 3)

	x := 5
	require.NoError(t, tp.SetItem(2, &x))
	require.NoError(t, tp.SetItem(2, nil))
	assert.Nil(t, tp.Item3)

	_, err := tp.Item(3)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}
