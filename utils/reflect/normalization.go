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
	"errors"
	"path"
	"reflect"
	"strings"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/config"
	"dirpx.dev/rtti/object"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectUnwrapLimit indicates that the provided type is still a
	// pointer after MaxUnwrap levels were stripped.
	ErrReflectUnwrapLimit = errors.New("reflect: pointer nesting exceeds MaxUnwrap")
)

// objectType is the canonical Go type of the root Object metadata.
var objectType = reflect.TypeFor[object.Object]()

// Normalize strips pointer levels so that T, *T and **T share one metadata
// entry, and maps the empty interface to object.Object so both resolve to
// the root Object type. Other kinds are returned as is.
//
// If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; t.Kind() == reflect.Pointer; i++ {
		if i == maxUnwrap {
			return nil, ErrReflectUnwrapLimit
		}
		t = t.Elem()
	}
	if IsEmptyInterface(t) {
		return objectType, nil
	}
	return t, nil
}

// IsEmptyInterface reports whether t is the unnamed interface{} (any).
func IsEmptyInterface(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Interface && t.Name() == "" && t.NumMethod() == 0
}

// TypeID returns the stable identifier of t: "pkgpath.Name" for named types
// declared in a package, the type literal otherwise ("int", "[]string").
func TypeID(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.PkgPath() == "" || t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// BaseName returns the type name without its type parameter list:
// "Box[int]" becomes "Box".
func BaseName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		return name[:i]
	}
	return name
}

// Namespace returns the last element of the package path of t, or "" for
// predeclared and unnamed types.
func Namespace(t reflect.Type) string {
	if t == nil || t.PkgPath() == "" {
		return ""
	}
	return path.Base(t.PkgPath())
}
