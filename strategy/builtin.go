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

package strategy

import (
	"reflect"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/builtin"
	"dirpx.dev/rtti/meta"
)

// NewBuiltinStrategy creates an apis.Strategy that declares builtin types
// (see package builtin) and registers them in reg.
func NewBuiltinStrategy(reg meta.Registrar) apis.Strategy {
	return builtinStrategy{reg: reg}
}

// builtinStrategy is the universal fallback for types nobody declared.
type builtinStrategy struct {
	reg meta.Registrar
}

// Ensure builtinStrategy implements apis.Strategy.
var _ apis.Strategy = (*builtinStrategy)(nil)

// Name identifies the strategy in logs and metrics.
func (builtinStrategy) Name() string { return "builtin" }

// TryResolveType declares t when it is a builtin.
func (s builtinStrategy) TryResolveType(t reflect.Type, cfg apis.Config, resolve meta.ResolveFunc) (*meta.Type, bool, error) {
	if t == nil || s.reg == nil {
		return nil, false, nil
	}
	return builtin.Declare(t, cfg, s.reg, resolve)
}
