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

// Package rtti provides process-wide runtime type metadata: one canonical
// *meta.Type per Go type, carrying its name, namespace, base type,
// interfaces, generic arguments and member descriptors that read, write and
// invoke members through boxed object.Object values.
//
// # Design
//
// The core of rtti is a read-mostly global snapshot (state). The snapshot
// holds four things:
//
//   - Config: knobs shared by every layer (pointer unwrap depth, builtin
//     namespace, duplicate-member warnings, logger and metrics sinks).
//
//   - Registry: the process-wide store of finalized types. Every type is
//     reachable by full name ("geo.Circle"), by stable id
//     ("example.com/geo.Circle") and by simple name ("Circle"). A second
//     index maps every ancestor to all of its direct and transitive
//     descendants.
//
//   - Resolver: answers "what is the metadata of this Go type?". It tries
//     strategies in priority order:
//     1. If the type is found in the Registry, use that.
//     2. If the type implements meta.Declarer (or object.Enum), build it
//     from its own declaration.
//     3. Otherwise, fall back to builtin types (System.Int32, System.String,
//     System.Nullable[T], ...).
//     Concurrent first resolutions of a type share a single build.
//
//   - Builder: a pluggable factory that constructs Registry and Resolver
//     instances for a given Config, migrating registered types from the
//     previous Registry.
//
// All of these live inside a single immutable struct called state.
// The package holds an atomic pointer to the current state. Readers load
// that pointer, use it, and never mutate it. Writers build a brand-new
// state and atomically swap it in.
//
// # Declaring a type
//
//	type Circle struct {
//		Shape
//		Radius float64
//	}
//
//	func (*Circle) DeclareType(b *meta.TypeBuilder) {
//		b.WithBase(reflect.TypeFor[Shape]()).
//			WithField("radius", meta.Field(func(c *Circle) *float64 { return &c.Radius })).
//			WithMethod("Scale", (*Circle).Scale, "factor")
//	}
//
//	t := rtti.MustTypeOf[Circle]()
//	t.GetField("area")           // inherited from Shape
//	rtti.GetDerivedTypes("Shape") // [geo.Circle]
//
// # Pinning
//
// SetRegistry and SetResolver install a layer and pin it: SetConfig and
// SetBuilder stop rebuilding that layer until UnpinRegistry/UnpinResolver.
//
// # Tests
//
// Reset restores the default state and drops every registered type.
package rtti
