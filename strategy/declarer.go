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
	"cmp"
	"maps"
	"reflect"
	"slices"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/meta"
	"dirpx.dev/rtti/object"
	uref "dirpx.dev/rtti/utils/reflect"
)

// NewDeclarerStrategy creates an apis.Strategy that builds the metadata of
// Go types describing themselves, and registers it in reg.
//
// Handled types:
//   - types implementing meta.Declarer (on the value or the pointer);
//   - integer types implementing object.Enum, declared as enums;
//   - named interface types, declared without members so they can be
//     referenced as interfaces or bases.
//
// The builder arrives preset with namespace path.Base(PkgPath), the type
// name without type parameters, and id "PkgPath.Name".
func NewDeclarerStrategy(reg meta.Registrar) apis.Strategy {
	return &declarerStrategy{reg: reg}
}

// declarerStrategy is the Go form of a static T::typeof() hook.
type declarerStrategy struct {
	reg meta.Registrar
}

// Ensure declarerStrategy implements apis.Strategy.
var _ apis.Strategy = (*declarerStrategy)(nil)

var (
	declarerType = reflect.TypeFor[meta.Declarer]()
	enumType     = reflect.TypeFor[object.Enum]()
)

// Name identifies the strategy in logs and metrics.
func (*declarerStrategy) Name() string { return "declarer" }

// TryResolveType builds and registers t when it can describe itself.
func (s *declarerStrategy) TryResolveType(t reflect.Type, cfg apis.Config, resolve meta.ResolveFunc) (*meta.Type, bool, error) {
	if t == nil || s.reg == nil || t.Name() == "" || t.PkgPath() == "" {
		return nil, false, nil
	}

	b := uref.NewTypeBuilder(uref.Namespace(t), uref.BaseName(t), t, cfg, resolve)
	switch {
	case t.Kind() == reflect.Interface:
		// Interfaces carry no instance to ask; they are declared bare.
	case reflect.PointerTo(t).Implements(declarerType):
		reflect.New(t).Interface().(meta.Declarer).DeclareType(b)
	case t.Implements(declarerType):
		reflect.Zero(t).Interface().(meta.Declarer).DeclareType(b)
	case t.Implements(enumType) && isInteger(t.Kind()):
		declareEnum(b, reflect.Zero(t).Interface().(object.Enum))
	default:
		return nil, false, nil
	}

	typ, err := b.Build(s.reg)
	return typ, true, err
}

// declareEnum declares the names of e ordered by value, then by name.
func declareEnum(b *meta.TypeBuilder, e object.Enum) {
	names := e.EnumNames()
	keys := slices.SortedFunc(maps.Keys(names), func(x, y string) int {
		if c := cmp.Compare(names[x], names[y]); c != 0 {
			return c
		}
		return cmp.Compare(x, y)
	})
	b.IsEnum()
	for _, k := range keys {
		b.WithEnumValue(k, names[k])
	}
}

func isInteger(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Uintptr
}
