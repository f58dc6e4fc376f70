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

package apis

import (
	"reflect"

	"dirpx.dev/rtti/meta"
)

// Strategy is a single step of the resolution chain.
type Strategy interface {
	// Name identifies the strategy in logs and metrics.
	Name() string
	// TryResolveType returns the metadata of t and true when the strategy
	// handles t. resolve looks up the metadata of other Go types t refers to
	// (base, interfaces, generic arguments).
	// ok=false with a nil error passes t to the next strategy.
	TryResolveType(t reflect.Type, cfg Config, resolve meta.ResolveFunc) (typ *meta.Type, ok bool, err error)
}
