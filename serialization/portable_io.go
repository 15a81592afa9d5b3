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

	gerrors "github.com/tochemey/goserde/errors"
	"github.com/tochemey/goserde/stream"
)

// portableWriter captures one payload per declared field.
// In recording mode it derives the class definition from the writes instead.
type portableWriter struct {
	serializer *portableSerializer
	definition *ClassDefinition
	slots      [][]byte

	recording bool
	builder   *ClassDefinitionBuilder
}

// enforce compilation error
var _ PortableWriter = (*portableWriter)(nil)

func newPortableWriter(serializer *portableSerializer, definition *ClassDefinition) *portableWriter {
	return &portableWriter{
		serializer: serializer,
		definition: definition,
		slots:      make([][]byte, definition.FieldCount()),
	}
}

func newRecordingWriter(serializer *portableSerializer, classID, version int32) *portableWriter {
	return &portableWriter{
		serializer: serializer,
		recording:  true,
		builder:    NewClassDefinitionBuilder(classID, version),
	}
}

// build returns the definition derived by a recording writer
func (w *portableWriter) build() (*ClassDefinition, error) {
	return w.builder.Build()
}

func (w *portableWriter) WriteUint8(name string, value byte) error {
	return w.WriteField(name, FieldTypeByte, value)
}

func (w *portableWriter) WriteBool(name string, value bool) error {
	return w.WriteField(name, FieldTypeBool, value)
}

func (w *portableWriter) WriteChar(name string, value uint16) error {
	return w.WriteField(name, FieldTypeChar, value)
}

func (w *portableWriter) WriteShort(name string, value int16) error {
	return w.WriteField(name, FieldTypeShort, value)
}

func (w *portableWriter) WriteInt(name string, value int32) error {
	return w.WriteField(name, FieldTypeInt, value)
}

func (w *portableWriter) WriteLong(name string, value int64) error {
	return w.WriteField(name, FieldTypeLong, value)
}

func (w *portableWriter) WriteFloat(name string, value float32) error {
	return w.WriteField(name, FieldTypeFloat, value)
}

func (w *portableWriter) WriteDouble(name string, value float64) error {
	return w.WriteField(name, FieldTypeDouble, value)
}

func (w *portableWriter) WriteUTF(name string, value string) error {
	return w.WriteField(name, FieldTypeUTF, value)
}

func (w *portableWriter) WritePortable(name string, value Portable) error {
	return w.WriteField(name, FieldTypePortable, value)
}

func (w *portableWriter) WritePortableArray(name string, values []Portable) error {
	return w.WriteField(name, FieldTypePortableArray, values)
}

func (w *portableWriter) WriteByteArray(name string, values []byte) error {
	return w.WriteField(name, FieldTypeByteArray, values)
}

func (w *portableWriter) WriteCharArray(name string, values []uint16) error {
	return w.WriteField(name, FieldTypeCharArray, values)
}

func (w *portableWriter) WriteShortArray(name string, values []int16) error {
	return w.WriteField(name, FieldTypeShortArray, values)
}

func (w *portableWriter) WriteIntArray(name string, values []int32) error {
	return w.WriteField(name, FieldTypeIntArray, values)
}

func (w *portableWriter) WriteLongArray(name string, values []int64) error {
	return w.WriteField(name, FieldTypeLongArray, values)
}

func (w *portableWriter) WriteFloatArray(name string, values []float32) error {
	return w.WriteField(name, FieldTypeFloatArray, values)
}

func (w *portableWriter) WriteDoubleArray(name string, values []float64) error {
	return w.WriteField(name, FieldTypeDoubleArray, values)
}

// WriteField encodes value into the slot of the named field
func (w *portableWriter) WriteField(name string, fieldType FieldType, value any) error {
	index, ok, err := w.slot(name, fieldType, value)
	if err != nil || !ok {
		return err
	}

	out := stream.NewOutput()
	defer out.Release()
	if err := w.serializer.encodeValue(out, fieldType, value); err != nil {
		return fmt.Errorf("(field=%s) %w", name, err)
	}
	w.slots[index] = out.ToBytes()
	return nil
}

// slot resolves the index of the named field. It returns false when the
// definition does not declare name and the write must be ignored.
func (w *portableWriter) slot(name string, fieldType FieldType, value any) (int, bool, error) {
	if w.recording {
		if w.builder.has(name) {
			return 0, false, fmt.Errorf("(class_id=%d, field=%s) field written twice: %w", w.builder.classID, name, gerrors.ErrInvalidSchema)
		}
		w.builder.add(name, fieldType, nestedClassID(fieldType, value))
		w.slots = append(w.slots, nil)
		return len(w.slots) - 1, true, nil
	}

	field, ok := w.definition.Field(name)
	if !ok {
		return 0, false, nil
	}
	if field.fieldType != fieldType {
		return 0, false, gerrors.NewErrFieldTypeMismatch(name, field.fieldType, fieldType)
	}
	if fieldType == FieldTypePortable && field.classID != NoClassID {
		if nested, ok := value.(Portable); ok && !isNil(nested) && nested.ClassID() != field.classID {
			return 0, false, fmt.Errorf("(field=%s, declared_class_id=%d, actual_class_id=%d) %w",
				name, field.classID, nested.ClassID(), gerrors.ErrFieldTypeMismatch)
		}
	}
	return int(field.index), true, nil
}

// nestedClassID returns the class id recorded for a nested portable field
func nestedClassID(fieldType FieldType, value any) int32 {
	switch fieldType {
	case FieldTypePortable:
		if nested, ok := value.(Portable); ok && !isNil(nested) {
			return nested.ClassID()
		}
	case FieldTypePortableArray:
		if values, ok := value.([]Portable); ok {
			for _, nested := range values {
				if !isNil(nested) {
					return nested.ClassID()
				}
			}
		}
	}
	return NoClassID
}

// portableReader decodes field spans lazily by name
type portableReader struct {
	serializer *portableSerializer
	definition *ClassDefinition
	spans      [][]byte
	learned    *learnedDefinitions
}

// enforce compilation error
var _ PortableReader = (*portableReader)(nil)

func (r *portableReader) ReadUint8(name string) (byte, error) {
	return readTyped[byte](r, name, FieldTypeByte)
}

func (r *portableReader) ReadBool(name string) (bool, error) {
	return readTyped[bool](r, name, FieldTypeBool)
}

func (r *portableReader) ReadChar(name string) (uint16, error) {
	return readTyped[uint16](r, name, FieldTypeChar)
}

func (r *portableReader) ReadShort(name string) (int16, error) {
	return readTyped[int16](r, name, FieldTypeShort)
}

func (r *portableReader) ReadInt(name string) (int32, error) {
	return readTyped[int32](r, name, FieldTypeInt)
}

func (r *portableReader) ReadLong(name string) (int64, error) {
	return readTyped[int64](r, name, FieldTypeLong)
}

func (r *portableReader) ReadFloat(name string) (float32, error) {
	return readTyped[float32](r, name, FieldTypeFloat)
}

func (r *portableReader) ReadDouble(name string) (float64, error) {
	return readTyped[float64](r, name, FieldTypeDouble)
}

func (r *portableReader) ReadUTF(name string) (string, error) {
	return readTyped[string](r, name, FieldTypeUTF)
}

func (r *portableReader) ReadPortable(name string) (Portable, error) {
	return readTyped[Portable](r, name, FieldTypePortable)
}

func (r *portableReader) ReadPortableArray(name string) ([]Portable, error) {
	return readTyped[[]Portable](r, name, FieldTypePortableArray)
}

func (r *portableReader) ReadByteArray(name string) ([]byte, error) {
	return readTyped[[]byte](r, name, FieldTypeByteArray)
}

func (r *portableReader) ReadCharArray(name string) ([]uint16, error) {
	return readTyped[[]uint16](r, name, FieldTypeCharArray)
}

func (r *portableReader) ReadShortArray(name string) ([]int16, error) {
	return readTyped[[]int16](r, name, FieldTypeShortArray)
}

func (r *portableReader) ReadIntArray(name string) ([]int32, error) {
	return readTyped[[]int32](r, name, FieldTypeIntArray)
}

func (r *portableReader) ReadLongArray(name string) ([]int64, error) {
	return readTyped[[]int64](r, name, FieldTypeLongArray)
}

func (r *portableReader) ReadFloatArray(name string) ([]float32, error) {
	return readTyped[[]float32](r, name, FieldTypeFloatArray)
}

func (r *portableReader) ReadDoubleArray(name string) ([]float64, error) {
	return readTyped[[]float64](r, name, FieldTypeDoubleArray)
}

// ReadField reads the named field with its declared type
func (r *portableReader) ReadField(name string) (any, error) {
	field, ok := r.definition.Field(name)
	if !ok {
		return nil, gerrors.NewErrSchemaMismatch(r.definition.ClassID(), name)
	}
	return r.decode(field)
}

func (r *portableReader) HasField(name string) bool {
	return r.definition.HasField(name)
}

func (r *portableReader) ClassDefinition() *ClassDefinition {
	return r.definition
}

// decode decodes the span of field. Fields never written decode to nil.
func (r *portableReader) decode(field FieldDefinition) (any, error) {
	span := r.spans[field.index]
	if span == nil {
		return nil, nil
	}

	in := stream.NewInput(span)
	value, err := r.serializer.decodeValue(in, field.fieldType, r.learned)
	if err != nil {
		return nil, fmt.Errorf("(field=%s) %w", field.name, err)
	}
	if in.Remaining() > 0 {
		return nil, fmt.Errorf("(field=%s) %w", field.name, gerrors.NewErrTrailingBytes(PortableTypeID, in.Remaining()))
	}
	return value, nil
}

func readTyped[T any](r *portableReader, name string, fieldType FieldType) (T, error) {
	var zero T
	field, ok := r.definition.Field(name)
	if !ok {
		return zero, gerrors.NewErrSchemaMismatch(r.definition.ClassID(), name)
	}
	if field.fieldType != fieldType {
		return zero, gerrors.NewErrFieldTypeMismatch(name, field.fieldType, fieldType)
	}

	value, err := r.decode(field)
	if err != nil || value == nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, gerrors.NewErrFieldTypeMismatch(name, field.fieldType, fieldType)
	}
	return typed, nil
}
