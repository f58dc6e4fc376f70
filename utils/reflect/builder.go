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

package reflect

import (
	"reflect"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/meta"
)

// NewTypeBuilder starts a meta.TypeBuilder for the Go type t, registered
// under its stable TypeID and wired to cfg and resolve.
func NewTypeBuilder(namespace, name string, t reflect.Type, cfg apis.Config, resolve meta.ResolveFunc) *meta.TypeBuilder {
	return meta.NewTypeBuilder(namespace, name, TypeID(t),
		meta.WithGoType(t),
		meta.WithResolveFunc(resolve),
		meta.WithLogger(cfg.Log()),
		meta.WithDuplicateWarnings(cfg.WarnDuplicateMembers),
	)
}
