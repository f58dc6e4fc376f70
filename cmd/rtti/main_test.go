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

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rtti"
)

func TestExec(t *testing.T) {
	rtti.Reset()
	t.Cleanup(rtti.Reset)
	require.NoError(t, declareDemo())

	var out bytes.Buffer
	assert.True(t, exec(&out, ":types"))
	assert.Contains(t, out.String(), "demo.Circle")
	assert.Contains(t, out.String(), "demo.Shape")
	assert.Contains(t, out.String(), "main.Color")

	out.Reset()
	assert.True(t, exec(&out, ":type Circle"))
	s := out.String()
	assert.Contains(t, s, "class demo.Circle")
	assert.Contains(t, s, "base demo.Shape")
	assert.Contains(t, s, "implements main.Drawable")
	assert.Contains(t, s, "area (read-only)")
	assert.Contains(t, s, "method demo.Shape.Draw()")
	assert.Contains(t, s, "ctor demo.Circle(radius float64)")

	out.Reset()
	exec(&out, ":type main.Color")
	assert.Contains(t, out.String(), "enum main.Color")
	assert.Contains(t, out.String(), "Blue = 2")

	out.Reset()
	exec(&out, ":derived demo.Shape")
	assert.Equal(t, "demo.Circle\ndemo.Square\n", out.String())

	out.Reset()
	exec(&out, ":type Nope")
	assert.Contains(t, out.String(), `unknown type "Nope"`)

	assert.False(t, exec(&out, ":quit"))
}
