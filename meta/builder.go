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

package meta

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"dirpx.dev/rtti/errs"
)

// ResolveFunc looks up (building on demand) the metadata of a Go type.
type ResolveFunc func(t reflect.Type) (*Type, error)

// Registrar receives finalized types. Register returns the canonical
// instance, which is t itself unless a type with the same identity was
// registered before.
type Registrar interface {
	Register(t *Type) (*Type, error)
}

// Declarer is implemented by Go types that describe their own metadata. The
// builder arrives preset with the default namespace, name and identifier of
// the Go type; DeclareType adds members, base, interfaces and so on.
type Declarer interface {
	DeclareType(b *TypeBuilder)
}

// Option configures a TypeBuilder.
type Option func(*TypeBuilder)

// WithGoType binds the builder to the described Go type. Instance methods are
// then checked to take that type (or a pointer to it) as receiver.
func WithGoType(t reflect.Type) Option {
	return func(b *TypeBuilder) {
		b.goType = t
	}
}

// WithResolveFunc sets how reflect.Type arguments of WithBase, WithInterface
// and WithGenericArgument are turned into metadata.
func WithResolveFunc(fn ResolveFunc) Option {
	return func(b *TypeBuilder) {
		b.resolve = fn
	}
}

// WithLogger sets the logger used for build-time warnings.
func WithLogger(l *slog.Logger) Option {
	return func(b *TypeBuilder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithDuplicateWarnings toggles warnings about members sharing a name.
func WithDuplicateWarnings(enabled bool) Option {
	return func(b *TypeBuilder) {
		b.warnDup = enabled
	}
}

// TypeBuilder stages the metadata of one type. Calls are chainable; a call
// that fails leaves the builder unchanged and records its error, which Err
// reports and Build returns.
type TypeBuilder struct {
	namespace   string
	name        string
	id          string
	goType      reflect.Type
	resolve     ResolveFunc
	logger      *slog.Logger
	warnDup     bool
	isClass     bool
	isEnum      bool
	base        *Type
	interfaces  []*Type
	genericArgs []*Type
	methods     []*MethodInfo
	ctors       []*ConstructorInfo
	fields      []*FieldInfo
	enumValues  []EnumValue
	err         error
}

// NewTypeBuilder starts a builder for the type namespace.name registered
// under the stable identifier id.
func NewTypeBuilder(namespace, name, id string, opts ...Option) *TypeBuilder {
	b := &TypeBuilder{
		namespace: namespace,
		name:      name,
		id:        id,
		isClass:   true,
		logger:    slog.Default(),
		warnDup:   true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Err returns the accumulated errors of failed calls.
func (b *TypeBuilder) Err() error { return b.err }

// GoType returns the Go type the builder describes, or nil.
func (b *TypeBuilder) GoType() reflect.Type { return b.goType }

// FullName returns the staged "{namespace}.{name}".
func (b *TypeBuilder) FullName() string {
	if b.namespace == "" {
		return b.name
	}
	return b.namespace + "." + b.name
}

// Base returns the staged base type, or nil.
func (b *TypeBuilder) Base() *Type { return b.base }

// Methods returns the staged own methods.
func (b *TypeBuilder) Methods() []*MethodInfo { return slices.Clone(b.methods) }

// Constructors returns the staged constructors.
func (b *TypeBuilder) Constructors() []*ConstructorInfo { return slices.Clone(b.ctors) }

// Fields returns the staged own fields and properties.
func (b *TypeBuilder) Fields() []*FieldInfo { return slices.Clone(b.fields) }

func (b *TypeBuilder) fail(err error) *TypeBuilder {
	b.err = errors.Join(b.err, err)
	return b
}

// InNamespace overrides the namespace.
func (b *TypeBuilder) InNamespace(namespace string) *TypeBuilder {
	b.namespace = namespace
	return b
}

// Named overrides the simple name.
func (b *TypeBuilder) Named(name string) *TypeBuilder {
	if name == "" {
		return b.fail(errs.Configuration("%s: empty type name", b.FullName()))
	}
	b.name = name
	return b
}

// AsValueType clears the class flag.
func (b *TypeBuilder) AsValueType() *TypeBuilder {
	b.isClass = false
	return b
}

// IsEnum marks the type as an enum and clears the class flag.
func (b *TypeBuilder) IsEnum() *TypeBuilder {
	b.isEnum = true
	b.isClass = false
	return b
}

// WithEnumValue declares one enum name.
func (b *TypeBuilder) WithEnumValue(name string, v int64) *TypeBuilder {
	if name == "" {
		return b.fail(errs.Configuration("%s: empty enum value name", b.FullName()))
	}
	b.enumValues = append(b.enumValues, EnumValue{Name: name, Value: v})
	return b
}

// WithField declares a field. Names are not checked for uniqueness: lookups
// return the first match.
func (b *TypeBuilder) WithField(name string, acc MemberAccessor) *TypeBuilder {
	return b.withMember(name, KindField, acc)
}

// WithProperty declares a getter/setter property.
func (b *TypeBuilder) WithProperty(name string, acc MemberAccessor) *TypeBuilder {
	return b.withMember(name, KindProperty, acc)
}

func (b *TypeBuilder) withMember(name string, kind MemberKind, acc MemberAccessor) *TypeBuilder {
	if name == "" {
		return b.fail(errs.Configuration("%s: empty %s name", b.FullName(), kind))
	}
	if acc == nil {
		return b.fail(errs.Configuration("%s.%s: nil accessor", b.FullName(), name))
	}
	b.fields = append(b.fields, &FieldInfo{name: name, kind: kind, acc: acc})
	return b
}

// WithMethod declares an instance method from a method expression such as
// (*Circle).Scale. names must list one name per parameter, receiver excluded.
func (b *TypeBuilder) WithMethod(name string, fn any, names ...string) *TypeBuilder {
	return b.withMethod(name, fn, false, names)
}

// WithConstMethod declares an instance method that does not modify its
// receiver. Unlike WithMethod, it can also be invoked on a boxed copy of a
// value type, which is passed to a pointer receiver as a private copy.
func (b *TypeBuilder) WithConstMethod(name string, fn any, names ...string) *TypeBuilder {
	return b.withMethod(name, fn, true, names)
}

func (b *TypeBuilder) withMethod(name string, fn any, readOnly bool, names []string) *TypeBuilder {
	if name == "" {
		return b.fail(errs.Configuration("%s: empty method name", b.FullName()))
	}
	sig, err := parseSignature(fn)
	if err != nil {
		return b.fail(err)
	}
	if len(sig.in) == 0 {
		return b.fail(errs.Configuration("%s.%s: instance method without receiver", b.FullName(), name))
	}
	recv := sig.in[0]
	if b.goType != nil && recv != b.goType && recv != reflect.PointerTo(b.goType) {
		return b.fail(errs.Configuration("%s.%s: receiver %s does not belong to %s", b.FullName(), name, recv, b.goType))
	}
	ps, err := params(names, sig.in[1:])
	if err != nil {
		return b.fail(fmt.Errorf("%s.%s: %w", b.FullName(), name, err))
	}
	b.methods = append(b.methods, &MethodInfo{name: name, params: ps, recv: recv, sig: sig, readOnly: readOnly})
	return b
}

// WithStaticMethod declares a function without receiver.
func (b *TypeBuilder) WithStaticMethod(name string, fn any, names ...string) *TypeBuilder {
	if name == "" {
		return b.fail(errs.Configuration("%s: empty method name", b.FullName()))
	}
	sig, err := parseSignature(fn)
	if err != nil {
		return b.fail(err)
	}
	ps, err := params(names, sig.in)
	if err != nil {
		return b.fail(fmt.Errorf("%s.%s: %w", b.FullName(), name, err))
	}
	b.methods = append(b.methods, &MethodInfo{name: name, params: ps, static: true, sig: sig})
	return b
}

// WithConstructor declares a factory function returning a new instance
// (optionally with an error).
func (b *TypeBuilder) WithConstructor(fn any, names ...string) *TypeBuilder {
	sig, err := parseSignature(fn)
	if err != nil {
		return b.fail(err)
	}
	if sig.ret == nil {
		return b.fail(errs.Configuration("%s: constructor returns no instance", b.FullName()))
	}
	ps, err := params(names, sig.in)
	if err != nil {
		return b.fail(fmt.Errorf("%s constructor: %w", b.FullName(), err))
	}
	b.ctors = append(b.ctors, &ConstructorInfo{params: ps, sig: sig})
	return b
}

// WithBase sets the base type from a Go type. A base can be set once.
func (b *TypeBuilder) WithBase(t reflect.Type) *TypeBuilder {
	if b.base != nil {
		return b.fail(errs.Configuration("%s: base already defined as %s", b.FullName(), b.base.FullName()))
	}
	if t != nil && t == b.goType {
		return b.fail(errs.Configuration("%s: a type cannot be its own base", b.FullName()))
	}
	bt, err := b.lookup(t)
	if err != nil {
		return b.fail(err)
	}
	return b.WithBaseType(bt)
}

// WithBaseType sets the base type from its metadata. A base can be set once.
func (b *TypeBuilder) WithBaseType(t *Type) *TypeBuilder {
	if t == nil {
		return b.fail(errs.Configuration("%s: nil base type", b.FullName()))
	}
	if b.base != nil {
		return b.fail(errs.Configuration("%s: base already defined as %s", b.FullName(), b.base.FullName()))
	}
	if t.id != "" && t.id == b.id {
		return b.fail(errs.Configuration("%s: a type cannot be its own base", b.FullName()))
	}
	b.base = t
	return b
}

// WithInterface appends an implemented interface.
func (b *TypeBuilder) WithInterface(t reflect.Type) *TypeBuilder {
	it, err := b.lookup(t)
	if err != nil {
		return b.fail(err)
	}
	return b.WithInterfaceType(it)
}

// WithInterfaceType appends an implemented interface from its metadata.
func (b *TypeBuilder) WithInterfaceType(t *Type) *TypeBuilder {
	if t == nil {
		return b.fail(errs.Configuration("%s: nil interface type", b.FullName()))
	}
	b.interfaces = append(b.interfaces, t)
	return b
}

// WithGenericArgument appends a generic type argument.
func (b *TypeBuilder) WithGenericArgument(t reflect.Type) *TypeBuilder {
	gt, err := b.lookup(t)
	if err != nil {
		return b.fail(err)
	}
	return b.WithGenericArgumentType(gt)
}

// WithGenericArgumentType appends a generic type argument from its metadata.
func (b *TypeBuilder) WithGenericArgumentType(t *Type) *TypeBuilder {
	if t == nil {
		return b.fail(errs.Configuration("%s: nil generic argument", b.FullName()))
	}
	b.genericArgs = append(b.genericArgs, t)
	return b
}

func (b *TypeBuilder) lookup(t reflect.Type) (*Type, error) {
	if t == nil {
		return nil, errs.Configuration("%s: nil reflect.Type", b.FullName())
	}
	if b.resolve == nil {
		return nil, errs.Configuration("%s: no resolver to look up %s", b.FullName(), t)
	}
	return b.resolve(t)
}

// Build finalizes the staged metadata and registers it with reg. It returns
// the canonical Type reg hands back.
func (b *TypeBuilder) Build(reg Registrar) (*Type, error) {
	if b.err != nil {
		return nil, b.err
	}
	if reg == nil {
		return nil, errs.Configuration("%s: nil registrar", b.FullName())
	}

	t := &Type{
		name:        b.decoratedName(),
		namespace:   b.namespace,
		id:          b.id,
		goType:      b.goType,
		isClass:     b.isClass,
		isEnum:      b.isEnum,
		base:        b.base,
		interfaces:  slices.Clone(b.interfaces),
		genericArgs: slices.Clone(b.genericArgs),
		enumValues:  slices.Clone(b.enumValues),
	}

	// Own members are copied per Build and declared by t, so a Type built
	// earlier from the same builder keeps its own descriptors. Inherited ones
	// keep their declaring type.
	methods := make([]*MethodInfo, len(b.methods))
	for i, m := range b.methods {
		c := *m
		c.declaring = t
		methods[i] = &c
	}
	fields := make([]*FieldInfo, len(b.fields))
	for i, f := range b.fields {
		c := *f
		c.declaring = t
		fields[i] = &c
	}
	t.ctors = make([]*ConstructorInfo, len(b.ctors))
	for i, ctor := range b.ctors {
		c := *ctor
		c.declaring = t
		t.ctors[i] = &c
	}

	// Base methods and fields come first. Constructors are not inherited.
	if b.base != nil {
		t.methods = append(slices.Clone(b.base.methods), methods...)
		t.fields = append(slices.Clone(b.base.fields), fields...)
	} else {
		t.methods = methods
		t.fields = fields
	}

	if b.warnDup {
		b.warnDuplicates(t)
	}
	return reg.Register(t)
}

// decoratedName appends generic argument names: "Nullable[System.Int32]".
func (b *TypeBuilder) decoratedName() string {
	if len(b.genericArgs) == 0 || strings.Contains(b.name, "[") {
		return b.name
	}
	names := make([]string, len(b.genericArgs))
	for i, g := range b.genericArgs {
		names[i] = g.FullName()
	}
	return b.name + "[" + strings.Join(names, ",") + "]"
}

// warnDuplicates logs members hidden by an earlier member of the same name.
func (b *TypeBuilder) warnDuplicates(t *Type) {
	seen := make(map[string]struct{}, len(t.methods)+len(t.fields))
	for _, m := range t.methods {
		if _, dup := seen["m:"+m.name]; dup {
			b.logger.Warn("rtti: duplicate method hidden by earlier declaration",
				slog.String("type", t.FullName()), slog.String("method", m.name))
		}
		seen["m:"+m.name] = struct{}{}
	}
	for _, f := range t.fields {
		if _, dup := seen["f:"+f.name]; dup {
			b.logger.Warn("rtti: duplicate field hidden by earlier declaration",
				slog.String("type", t.FullName()), slog.String("field", f.name))
		}
		seen["f:"+f.name] = struct{}{}
	}
}
