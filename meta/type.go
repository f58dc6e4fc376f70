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

// Package meta holds the runtime type metadata model: Type, the fluent
// TypeBuilder that produces it, and the member descriptors (fields,
// properties, methods, constructors) that read, write and invoke members
// through boxed object.Object values.
//
// # Lifecycle
//
// A TypeBuilder is created once per Go type, configured through its With*
// calls and finalized with Build. Build copies the staged state into a new
// Type, flattens the base type's methods and fields in front of the type's
// own (constructors are not inherited), and hands the Type to a Registrar,
// which returns the canonical instance. A built Type is immutable: every
// list accessor returns a copy.
package meta

import (
	"encoding/binary"
	"reflect"
	"slices"

	"golang.org/x/crypto/blake2b"
)

// EnumValue is one declared name of an enum type.
type EnumValue struct {
	// Name is the declared name.
	Name string
	// Value is the underlying integer.
	Value int64
}

// Type is the immutable metadata of one registered type.
type Type struct {
	// name is the simple name, e.g. "Circle".
	name string
	// namespace is the declared namespace, e.g. "geo".
	namespace string
	// id is the stable Go identifier ("pkgpath.Name") of the source type.
	id string
	// goType is the described Go type (nil for purely declared types).
	goType reflect.Type
	// isClass and isEnum are the classification flags.
	isClass bool
	isEnum  bool
	// base is the direct base type, nil when there is none.
	base        *Type
	interfaces  []*Type
	genericArgs []*Type
	methods     []*MethodInfo
	ctors       []*ConstructorInfo
	fields      []*FieldInfo
	enumValues  []EnumValue
}

// Name returns the simple name.
func (t *Type) Name() string { return t.name }

// Namespace returns the declared namespace.
func (t *Type) Namespace() string { return t.namespace }

// FullName returns "{namespace}.{name}".
func (t *Type) FullName() string {
	if t.namespace == "" {
		return t.name
	}
	return t.namespace + "." + t.name
}

// ID returns the stable source identifier the type was registered under.
func (t *Type) ID() string { return t.id }

// GoType returns the described Go type, or nil.
func (t *Type) GoType() reflect.Type { return t.goType }

// IsClass reports whether the type is a class (reference) type.
func (t *Type) IsClass() bool { return t.isClass }

// IsEnum reports whether the type is an enum.
func (t *Type) IsEnum() bool { return t.isEnum }

// IsValueType reports whether the type is neither a class nor an enum.
func (t *Type) IsValueType() bool { return !t.isClass && !t.isEnum }

// BaseType returns the direct base type, or nil.
func (t *Type) BaseType() *Type { return t.base }

// Interfaces returns the implemented interfaces in declaration order.
func (t *Type) Interfaces() []*Type { return slices.Clone(t.interfaces) }

// GenericArguments returns the generic type arguments in declaration order.
func (t *Type) GenericArguments() []*Type { return slices.Clone(t.genericArgs) }

// Methods returns the inherited methods followed by the declared ones.
func (t *Type) Methods() []*MethodInfo { return slices.Clone(t.methods) }

// Constructors returns the declared constructors. Base constructors are not
// inherited.
func (t *Type) Constructors() []*ConstructorInfo { return slices.Clone(t.ctors) }

// Fields returns the inherited fields and properties followed by the
// declared ones.
func (t *Type) Fields() []*FieldInfo { return slices.Clone(t.fields) }

// EnumValues returns the declared enum names in declaration order.
func (t *Type) EnumValues() []EnumValue { return slices.Clone(t.enumValues) }

// GetMethod returns the first method named name, or nil.
func (t *Type) GetMethod(name string) *MethodInfo {
	for _, m := range t.methods {
		if m.name == name {
			return m
		}
	}
	return nil
}

// GetField returns the first field or property named name, or nil.
func (t *Type) GetField(name string) *FieldInfo {
	for _, f := range t.fields {
		if f.name == name {
			return f
		}
	}
	return nil
}

// GetInterface returns the first interface whose simple or full name is
// name, or nil.
func (t *Type) GetInterface(name string) *Type {
	for _, i := range t.interfaces {
		if i.name == name || i.FullName() == name {
			return i
		}
	}
	return nil
}

// GetConstructor returns the first constructor taking arity arguments, or nil.
func (t *Type) GetConstructor(arity int) *ConstructorInfo {
	for _, c := range t.ctors {
		if len(c.params) == arity {
			return c
		}
	}
	return nil
}

// EnumValue returns the value bound to the declared name.
func (t *Type) EnumValue(name string) (int64, bool) {
	for _, e := range t.enumValues {
		if e.Name == name {
			return e.Value, true
		}
	}
	return 0, false
}

// EnumName returns the first declared name bound to v.
func (t *Type) EnumName(v int64) (string, bool) {
	for _, e := range t.enumValues {
		if e.Value == v {
			return e.Name, true
		}
	}
	return "", false
}

// IsSubclassOf reports whether other is a transitive base of t.
func (t *Type) IsSubclassOf(other *Type) bool {
	if other == nil {
		return false
	}
	for b := t.base; b != nil; b = b.base {
		if b.Equals(other) {
			return true
		}
	}
	return false
}

// Equals compares types by full name.
func (t *Type) Equals(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.FullName() == other.FullName()
}

// HashCode returns a 64-bit hash of the full name. It is stable across
// processes.
func (t *Type) HashCode() uint64 {
	h, _ := blake2b.New(8, nil)
	h.Write([]byte(t.FullName()))
	return binary.BigEndian.Uint64(h.Sum(nil))
}

func (t *Type) String() string {
	return t.FullName()
}
