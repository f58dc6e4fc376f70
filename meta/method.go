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
	"fmt"
	"reflect"
	"strings"

	"dirpx.dev/rtti/errs"
	"dirpx.dev/rtti/object"
)

// ParameterInfo describes one parameter of a method or constructor.
type ParameterInfo struct {
	name     string
	position int
	typ      reflect.Type
}

// Name returns the declared parameter name.
func (p ParameterInfo) Name() string { return p.name }

// Position returns the zero-based position, receiver excluded.
func (p ParameterInfo) Position() int { return p.position }

// ParameterType returns the static Go type of the parameter.
func (p ParameterInfo) ParameterType() reflect.Type { return p.typ }

func (p ParameterInfo) String() string {
	return fmt.Sprintf("%s %s", p.name, p.typ)
}

var (
	errorType  = reflect.TypeFor[error]()
	objectType = reflect.TypeFor[object.Object]()
)

// signature is the parsed shape of a Go func used as a method or constructor.
type signature struct {
	fn         reflect.Value
	in         []reflect.Type
	ret        reflect.Type
	returnsErr bool
	variadic   bool
}

// parseSignature accepts funcs returning nothing, a value, an error, or a
// value followed by an error.
func parseSignature(fn any) (signature, error) {
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func || rv.IsNil() {
		return signature{}, errs.Configuration("expected a func, got %T", fn)
	}
	ft := rv.Type()
	s := signature{fn: rv, variadic: ft.IsVariadic()}
	for i := 0; i < ft.NumIn(); i++ {
		s.in = append(s.in, ft.In(i))
	}
	outs := ft.NumOut()
	if outs > 0 && ft.Out(outs-1) == errorType {
		s.returnsErr = true
		outs--
	}
	switch outs {
	case 0:
	case 1:
		s.ret = ft.Out(0)
	default:
		return signature{}, errs.Configuration("unsupported signature %s: at most one result besides error", ft)
	}
	return s, nil
}

// params pairs names with the parameter types, enforcing equal lengths.
func params(names []string, types []reflect.Type) ([]ParameterInfo, error) {
	if len(names) != len(types) {
		return nil, errs.Configuration("wrong number of parameters: %d names for %d parameters", len(names), len(types))
	}
	out := make([]ParameterInfo, len(types))
	for i, t := range types {
		out[i] = ParameterInfo{name: names[i], position: i, typ: t}
	}
	return out, nil
}

// call invokes s with in and unpacks the results.
func (s signature) call(in []reflect.Value) (object.Object, error) {
	var outs []reflect.Value
	if s.variadic {
		outs = s.fn.CallSlice(in)
	} else {
		outs = s.fn.Call(in)
	}
	if s.returnsErr {
		if err, _ := outs[len(outs)-1].Interface().(error); err != nil {
			return object.Null(), err
		}
	}
	if s.ret == nil {
		return object.Null(), nil
	}
	return object.Box(outs[0].Interface()), nil
}

// argValue converts a boxed argument to a reflect.Value assignable to want.
func argValue(o object.Object, want reflect.Type) (reflect.Value, error) {
	if want == objectType {
		return reflect.ValueOf(o), nil
	}
	if o.IsNull() {
		switch want.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return reflect.Zero(want), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: null argument for %s", errs.ErrNullReference, want)
	}
	v := reflect.ValueOf(o.Value())
	if v.Type().AssignableTo(want) {
		return v, nil
	}
	return reflect.Value{}, errs.Cast(v.Type().String(), want.String())
}

// receiverValue is argValue for receivers: a pointer instance also serves a
// value receiver, and a derived instance serves the receiver of an embedded
// base. When copyOK is set, a boxed value also serves a pointer receiver
// through a private copy.
func receiverValue(o object.Object, want reflect.Type, copyOK bool) (reflect.Value, error) {
	if o.IsNull() {
		return reflect.Value{}, fmt.Errorf("%w: method call on null %s", errs.ErrNullReference, want)
	}
	v := reflect.ValueOf(o.Value())
	if v.Type().AssignableTo(want) {
		return v, nil
	}
	if v.Kind() == reflect.Pointer && v.Type().Elem().AssignableTo(want) {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: method call on nil %s", errs.ErrNullReference, v.Type())
		}
		return v.Elem(), nil
	}
	if pv, ok := promote(v, want); ok {
		return pv, nil
	}
	if copyOK && want.Kind() == reflect.Pointer && v.Kind() != reflect.Pointer {
		elem := want.Elem()
		if v.Type() != elem {
			pv, ok := promote(v, elem)
			if !ok {
				return reflect.Value{}, errs.Cast(v.Type().String(), want.String())
			}
			v = pv
		}
		c := reflect.New(elem)
		c.Elem().Set(v)
		return c, nil
	}
	return reflect.Value{}, errs.Cast(v.Type().String(), want.String())
}

// args converts boxed arguments against the Go parameter types. Only the
// count and the runtime types are checked; ParameterInfo is not consulted.
func args(boxed []object.Object, types []reflect.Type) ([]reflect.Value, error) {
	if len(boxed) != len(types) {
		return nil, errs.InvalidOperation("wrong number of arguments: got %d, want %d", len(boxed), len(types))
	}
	in := make([]reflect.Value, len(types))
	for i, t := range types {
		v, err := argValue(boxed[i], t)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i] = v
	}
	return in, nil
}

// MethodInfo describes an instance or static method.
type MethodInfo struct {
	name      string
	declaring *Type
	params    []ParameterInfo
	static    bool
	readOnly  bool
	recv      reflect.Type
	sig       signature
}

// Name returns the method name.
func (m *MethodInfo) Name() string { return m.name }

// DeclaringType returns the type that declared m.
func (m *MethodInfo) DeclaringType() *Type { return m.declaring }

// Parameters returns the parameters, receiver excluded.
func (m *MethodInfo) Parameters() []ParameterInfo {
	return append([]ParameterInfo(nil), m.params...)
}

// ReturnType returns the Go result type, or nil for methods without a
// result (a trailing error is not counted).
func (m *MethodInfo) ReturnType() reflect.Type { return m.sig.ret }

// IsStatic reports whether m takes no receiver.
func (m *MethodInfo) IsStatic() bool { return m.static }

// IsConst reports whether m leaves its receiver unchanged, so it may run on
// a boxed copy of a value type.
func (m *MethodInfo) IsConst() bool { return m.readOnly }

// Invoke calls m. instance is ignored for static methods. A method without a
// result returns the null Object; a non-nil trailing error is returned as is.
func (m *MethodInfo) Invoke(instance object.Object, boxed ...object.Object) (object.Object, error) {
	types := m.sig.in
	var in []reflect.Value
	if !m.static {
		rv, err := receiverValue(instance, m.recv, m.readOnly)
		if err != nil {
			return object.Null(), err
		}
		in = append(in, rv)
		types = types[1:]
	}
	rest, err := args(boxed, types)
	if err != nil {
		return object.Null(), fmt.Errorf("%s: %w", m.qualifiedName(), err)
	}
	return m.sig.call(append(in, rest...))
}

func (m *MethodInfo) qualifiedName() string {
	if m.declaring == nil {
		return m.name
	}
	return m.declaring.FullName() + "." + m.name
}

func (m *MethodInfo) String() string {
	return fmt.Sprintf("%s(%s)", m.qualifiedName(), joinParams(m.params))
}

// ConstructorInfo describes a factory function producing instances of the
// declaring type.
type ConstructorInfo struct {
	declaring *Type
	params    []ParameterInfo
	sig       signature
}

// DeclaringType returns the constructed type.
func (c *ConstructorInfo) DeclaringType() *Type { return c.declaring }

// Parameters returns the constructor parameters.
func (c *ConstructorInfo) Parameters() []ParameterInfo {
	return append([]ParameterInfo(nil), c.params...)
}

// Invoke calls the factory and boxes the new instance.
func (c *ConstructorInfo) Invoke(boxed ...object.Object) (object.Object, error) {
	in, err := args(boxed, c.sig.in)
	if err != nil {
		return object.Null(), fmt.Errorf("%s constructor: %w", c.declaring, err)
	}
	return c.sig.call(in)
}

func (c *ConstructorInfo) String() string {
	return fmt.Sprintf("%s(%s)", c.declaring, joinParams(c.params))
}

func joinParams(ps []ParameterInfo) string {
	s := make([]string, len(ps))
	for i, p := range ps {
		s[i] = p.String()
	}
	return strings.Join(s, ", ")
}
