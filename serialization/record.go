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

package serialization

import (
	"fmt"

	"github.com/samber/lo"

	gerrors "github.com/tochemey/goserde/errors"
)

// Record is a schema-described portable value without a concrete Go type.
// Decoding a portable whose class has no registered factory yields a Record,
// and so does ReadFields. A Record is itself a Portable and encodes back to
// the same wire form.
type Record struct {
	definition *ClassDefinition
	values     map[string]any
}

// enforce compilation error
var _ VersionedPortable = (*Record)(nil)

// NewRecord creates an empty record for definition
func NewRecord(definition *ClassDefinition) *Record {
	return &Record{
		definition: definition,
		values:     make(map[string]any, definition.FieldCount()),
	}
}

// ClassID returns the class id
func (r *Record) ClassID() int32 { return r.definition.ClassID() }

// Version returns the class version
func (r *Record) Version() int32 { return r.definition.Version() }

// ClassDefinition returns the definition of the record
func (r *Record) ClassDefinition() *ClassDefinition { return r.definition }

// Len returns the number of fields set
func (r *Record) Len() int { return len(r.values) }

// Has returns true when the field is set
func (r *Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Get returns the value of a field
func (r *Record) Get(name string) (any, bool) {
	value, ok := r.values[name]
	return value, ok
}

// Set sets the value of a declared field
func (r *Record) Set(name string, value any) error {
	if !r.definition.HasField(name) {
		return gerrors.NewErrSchemaMismatch(r.definition.ClassID(), name)
	}
	r.values[name] = value
	return nil
}

// FieldNames returns the names of the fields set, ordered by index
func (r *Record) FieldNames() []string {
	return lo.Filter(r.definition.FieldNames(), func(name string, _ int) bool {
		return r.Has(name)
	})
}

// WritePortable writes the fields set on the record
func (r *Record) WritePortable(writer PortableWriter) error {
	for _, field := range r.definition.fields {
		value, ok := r.values[field.name]
		if !ok {
			continue
		}
		if err := writer.WriteField(field.name, field.fieldType, value); err != nil {
			return err
		}
	}
	return nil
}

// ReadPortable reads every field of the encoded value
func (r *Record) ReadPortable(reader PortableReader) error {
	definition := reader.ClassDefinition()
	r.definition = definition
	r.values = make(map[string]any, definition.FieldCount())
	for _, field := range definition.fields {
		value, err := reader.ReadField(field.name)
		if err != nil {
			return err
		}
		if value != nil {
			r.values[field.name] = value
		}
	}
	return nil
}

// String returns a short description of the record
func (r *Record) String() string {
	return fmt.Sprintf("Record(class_id=%d, version=%d, fields=%v)", r.ClassID(), r.Version(), r.FieldNames())
}

// RecordField returns the value of a record field as T.
// It fails with ErrSchemaMismatch when the field is not set
// and with ErrFieldTypeMismatch when it holds another type.
func RecordField[T any](r *Record, name string) (T, error) {
	var zero T
	value, ok := r.Get(name)
	if !ok {
		return zero, gerrors.NewErrSchemaMismatch(r.ClassID(), name)
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("(field=%s, expected=%T, actual=%T) %w", name, zero, value, gerrors.ErrFieldTypeMismatch)
	}
	return typed, nil
}
