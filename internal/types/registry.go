// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package types

import (
	"reflect"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
)

// Registry maps fully-qualified type names to runtime types.
// It is how type references carried by a payload are resolved on the decode side.
type Registry interface {
	// Register records the runtime type of v. v is either a reflect.Type or a
	// value of the type (pointers are dereferenced to their element type).
	Register(v any)
	// Deregister removes the type of v from the registry
	Deregister(v any)
	// Exists return true when the type of v is in the registry
	Exists(v any) bool
	// TypesMap returns a snapshot of the registered types
	TypesMap() map[string]reflect.Type
	// TypeOf returns the type registered under name
	TypeOf(name string) (reflect.Type, bool)
}

type registry struct {
	m *xsync.MapOf[string, reflect.Type]
}

var _ Registry = (*registry)(nil)

// NewRegistry creates a new types registry
func NewRegistry() Registry {
	return &registry{
		m: xsync.NewMapOf[string, reflect.Type](),
	}
}

// Register records the type of v
func (x *registry) Register(v any) {
	rtype := Of(v)
	if rtype == nil {
		return
	}
	x.m.Store(NameOf(rtype), rtype)
}

// Deregister removes the type of v
func (x *registry) Deregister(v any) {
	rtype := Of(v)
	if rtype == nil {
		return
	}
	x.m.Delete(NameOf(rtype))
}

// Exists return true when the type of v is registered
func (x *registry) Exists(v any) bool {
	rtype := Of(v)
	if rtype == nil {
		return false
	}
	_, ok := x.m.Load(NameOf(rtype))
	return ok
}

// TypesMap returns a snapshot of the registered types
func (x *registry) TypesMap() map[string]reflect.Type {
	out := make(map[string]reflect.Type, x.m.Size())
	x.m.Range(func(name string, rtype reflect.Type) bool {
		out[name] = rtype
		return true
	})
	return out
}

// TypeOf returns the type registered under name
func (x *registry) TypeOf(name string) (reflect.Type, bool) {
	return x.m.Load(lowTrim(name))
}

// Of returns the runtime type of v with one level of pointer indirection removed.
func Of(v any) reflect.Type {
	var rtype reflect.Type
	switch t := v.(type) {
	case nil:
		return nil
	case reflect.Type:
		rtype = t
	default:
		rtype = reflect.TypeOf(v)
	}
	if rtype.Kind() == reflect.Pointer {
		rtype = rtype.Elem()
	}
	return rtype
}

// Name returns the registry name of the type of v
func Name(v any) string {
	rtype := Of(v)
	if rtype == nil {
		return ""
	}
	return NameOf(rtype)
}

// NameOf returns the fully-qualified, lower-cased name of rtype.
// Named types are qualified with their package path; unnamed types use their literal form.
func NameOf(rtype reflect.Type) string {
	if rtype.Name() != "" && rtype.PkgPath() != "" {
		return lowTrim(rtype.PkgPath() + "." + rtype.Name())
	}
	return lowTrim(rtype.String())
}

// lowTrim trim any space and lower the string value
func lowTrim(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
