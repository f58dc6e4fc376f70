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
	"fmt"
	"math"
	"reflect"

	"dirpx.dev/rtti"
	"dirpx.dev/rtti/meta"
)

// Drawable is implemented by every demo shape.
type Drawable interface{ Draw() string }

// Color is a demo enum.
type Color int

const (
	Red Color = iota
	Green
	Blue
)

func (Color) EnumNames() map[string]int64 {
	return map[string]int64{"Red": int64(Red), "Green": int64(Green), "Blue": int64(Blue)}
}

// Shape is the root of the demo hierarchy.
type Shape struct {
	Fill Color
}

func (*Shape) DeclareType(b *meta.TypeBuilder) {
	b.InNamespace("demo").
		WithInterface(reflect.TypeFor[Drawable]()).
		WithField("fill", meta.Field(func(s *Shape) *Color { return &s.Fill })).
		WithMethod("Draw", (*Shape).Draw)
}

func (s *Shape) Draw() string { return fmt.Sprintf("shape(%d)", s.Fill) }

// Circle derives from Shape.
type Circle struct {
	Shape
	Radius float64
}

func NewCircle(r float64) *Circle { return &Circle{Radius: r} }

func (c *Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

func (*Circle) DeclareType(b *meta.TypeBuilder) {
	b.InNamespace("demo").
		WithBase(reflect.TypeFor[Shape]()).
		WithField("radius", meta.Field(func(c *Circle) *float64 { return &c.Radius })).
		WithProperty("area", meta.ReadOnlyProperty(func(c *Circle) float64 { return c.Area() })).
		WithConstructor(NewCircle, "radius")
}

// Square derives from Shape.
type Square struct {
	Shape
	Side float64
}

func NewSquare(side float64) *Square { return &Square{Side: side} }

func (*Square) DeclareType(b *meta.TypeBuilder) {
	b.InNamespace("demo").
		WithBase(reflect.TypeFor[Shape]()).
		WithField("side", meta.Field(func(s *Square) *float64 { return &s.Side })).
		WithStaticMethod("Unit", func() *Square { return NewSquare(1) }).
		WithConstructor(NewSquare, "side")
}

// declareDemo registers the demo model so there is something to inspect.
func declareDemo() error {
	for _, t := range []reflect.Type{
		reflect.TypeFor[Circle](),
		reflect.TypeFor[Square](),
		reflect.TypeFor[Color](),
	} {
		if _, err := rtti.TypeFor(t); err != nil {
			return err
		}
	}
	return nil
}
