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

// Package builtin declares the metadata of types the runtime knows without a
// declaration: predeclared Go types, time values, object.Object, and the
// generic value types of package value.
package builtin

import (
	"reflect"
	"time"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/meta"
	"dirpx.dev/rtti/object"
	uref "dirpx.dev/rtti/utils/reflect"
	"dirpx.dev/rtti/value"
)

// primitives names the predeclared Go types by kind.
var primitives = map[reflect.Kind]string{
	reflect.Bool:       "Boolean",
	reflect.Int:        "Int",
	reflect.Int8:       "Int8",
	reflect.Int16:      "Int16",
	reflect.Int32:      "Int32",
	reflect.Int64:      "Int64",
	reflect.Uint:       "UInt",
	reflect.Uint8:      "Byte",
	reflect.Uint16:     "UInt16",
	reflect.Uint32:     "UInt32",
	reflect.Uint64:     "UInt64",
	reflect.Uintptr:    "UIntPtr",
	reflect.Float32:    "Single",
	reflect.Float64:    "Double",
	reflect.Complex64:  "Complex64",
	reflect.Complex128: "Complex128",
	reflect.String:     "String",
}

var (
	objectType   = reflect.TypeFor[object.Object]()
	voidType     = reflect.TypeFor[value.Void]()
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
	tupleType    = reflect.TypeFor[value.Tuple]()
	valuePkg     = reflect.TypeFor[value.Void]().PkgPath()
)

// Name returns the simple builtin name of t ("Int32", "DateTime",
// "Nullable"), or false when t is not a builtin.
func Name(t reflect.Type) (string, bool) {
	if t == nil {
		return "", false
	}
	switch t {
	case objectType:
		return "Object", true
	case voidType:
		return "Void", true
	case timeType:
		return "DateTime", true
	case durationType:
		return "TimeSpan", true
	}
	if uref.IsEmptyInterface(t) {
		return "Object", true
	}
	if t.PkgPath() == "" && t.Name() != "" {
		name, ok := primitives[t.Kind()]
		return name, ok
	}
	if t.PkgPath() == valuePkg {
		switch name := uref.BaseName(t); {
		case name == "Nullable":
			return name, true
		case reflect.PointerTo(t).Implements(tupleType):
			return "Tuple", true
		}
	}
	return "", false
}

// Declare builds and registers the metadata of a builtin type. It returns
// false when t is not a builtin.
func Declare(t reflect.Type, cfg apis.Config, reg meta.Registrar, resolve meta.ResolveFunc) (*meta.Type, bool, error) {
	name, ok := Name(t)
	if !ok {
		return nil, false, nil
	}
	if uref.IsEmptyInterface(t) {
		t = objectType
	}
	b := uref.NewTypeBuilder(cfg.BuiltinNamespace, name, t, cfg, resolve)
	switch name {
	case "Object", "String":
	case "Nullable":
		declareNullable(b, t)
	case "Tuple":
		declareTuple(b.AsValueType(), t)
	default:
		b.AsValueType()
	}
	typ, err := b.Build(reg)
	return typ, true, err
}

// declareNullable binds the element type. Boxing a Nullable yields its value
// or null, so no members are exposed through boxed instances.
func declareNullable(b *meta.TypeBuilder, t reflect.Type) {
	n, ok := reflect.Zero(t).Interface().(interface{ ElemType() reflect.Type })
	if !ok {
		return
	}
	b.AsValueType().WithGenericArgument(n.ElemType())
}

// declareTuple binds the element types, the positional accessors and a
// default constructor. Reads work on boxed tuple copies; SetItem needs a
// shared *Tuple reference.
func declareTuple(b *meta.TypeBuilder, t reflect.Type) {
	tup := reflect.New(t).Interface().(value.Tuple)
	for _, et := range tup.ElemTypes() {
		b.WithGenericArgument(et)
	}

	pt := reflect.PointerTo(t)
	if m, ok := pt.MethodByName("Item"); ok {
		b.WithConstMethod("GetItem", m.Func.Interface(), "index")
	}
	if m, ok := pt.MethodByName("SetItem"); ok {
		b.WithMethod("SetItem", m.Func.Interface(), "index", "value")
	}
	if m, ok := pt.MethodByName("Len"); ok {
		b.WithConstMethod("Length", m.Func.Interface())
	}

	ctor := reflect.MakeFunc(reflect.FuncOf(nil, []reflect.Type{pt}, false),
		func([]reflect.Value) []reflect.Value {
			return []reflect.Value{reflect.New(t)}
		})
	b.WithConstructor(ctor.Interface())
}
