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

// Registry stores finalized type metadata and the derived-type index.
// Register doubles as the meta.Registrar handed to TypeBuilder.Build.
type Registry interface {
	meta.Registrar
	// Lookup returns the type registered under a full name, a stable id or
	// an unambiguous simple name.
	Lookup(name string) (*meta.Type, bool)
	// LookupType returns the type registered for a Go type.
	LookupType(t reflect.Type) (*meta.Type, bool)
	// DerivedTypes returns the transitive descendants of the named type in
	// registration order. It returns nil for a name never registered and a
	// non-nil empty slice for a type without descendants.
	DerivedTypes(name string) []*meta.Type
	// Entries returns a snapshot for diagnostics/docs in registration order.
	Entries() []Entry
	// Count returns the number of registered types.
	Count() int
	// Reset clears all registered types.
	Reset()
}

// Entry is a single (full name, type) association in a Registry snapshot.
type Entry struct {
	// Name is the full name the type is registered under.
	Name string
	// Type is the registered metadata.
	Type *meta.Type
}
