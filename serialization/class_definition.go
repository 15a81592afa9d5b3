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
	"unicode/utf8"

	"github.com/samber/lo"

	gerrors "github.com/tochemey/goserde/errors"
	"github.com/tochemey/goserde/stream"
)

// ClassDefinition is the schema of a portable class at a given version:
// its fields ordered by index. A ClassDefinition is immutable.
type ClassDefinition struct {
	classID int32
	version int32
	fields  []FieldDefinition
	byName  map[string]FieldDefinition
}

// newClassDefinition validates fields and builds the definition
func newClassDefinition(classID, version int32, fields []FieldDefinition) (*ClassDefinition, error) {
	byName := make(map[string]FieldDefinition, len(fields))
	for i, field := range fields {
		if field.index != int32(i) {
			return nil, fmt.Errorf("(class_id=%d, field=%s, index=%d) %w", classID, field.name, field.index, gerrors.ErrInvalidSchema)
		}
		if field.name == "" {
			return nil, fmt.Errorf("(class_id=%d, index=%d) empty field name: %w", classID, i, gerrors.ErrInvalidSchema)
		}
		if !utf8.ValidString(field.name) {
			return nil, fmt.Errorf("(class_id=%d, index=%d) invalid utf-8 field name: %w", classID, i, gerrors.ErrInvalidSchema)
		}
		if _, ok := byName[field.name]; ok {
			return nil, fmt.Errorf("(class_id=%d, field=%s) duplicate field: %w", classID, field.name, gerrors.ErrInvalidSchema)
		}
		if !field.fieldType.IsValid() {
			return nil, fmt.Errorf("(class_id=%d, field=%s) %w", classID, field.name, gerrors.ErrInvalidSchema)
		}
		if !field.fieldType.IsPortable() && field.classID != NoClassID {
			return nil, fmt.Errorf("(class_id=%d, field=%s, field_class_id=%d) class id on a %s field: %w",
				classID, field.name, field.classID, field.fieldType, gerrors.ErrInvalidSchema)
		}
		byName[field.name] = field
	}

	return &ClassDefinition{
		classID: classID,
		version: version,
		fields:  append([]FieldDefinition(nil), fields...),
		byName:  byName,
	}, nil
}

// ClassID returns the class id
func (c *ClassDefinition) ClassID() int32 { return c.classID }

// Version returns the class version
func (c *ClassDefinition) Version() int32 { return c.version }

// FieldCount returns the number of fields
func (c *ClassDefinition) FieldCount() int { return len(c.fields) }

// Fields returns the fields ordered by index
func (c *ClassDefinition) Fields() []FieldDefinition {
	return append([]FieldDefinition(nil), c.fields...)
}

// FieldNames returns the field names ordered by index
func (c *ClassDefinition) FieldNames() []string {
	return lo.Map(c.fields, func(field FieldDefinition, _ int) string {
		return field.name
	})
}

// Field returns the field named name
func (c *ClassDefinition) Field(name string) (FieldDefinition, bool) {
	field, ok := c.byName[name]
	return field, ok
}

// HasField returns true when the class declares name
func (c *ClassDefinition) HasField(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Equal returns true when both definitions declare the same class, version and fields
func (c *ClassDefinition) Equal(other *ClassDefinition) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.classID != other.classID || c.version != other.version || len(c.fields) != len(other.fields) {
		return false
	}
	for i := range c.fields {
		if !c.fields[i].Equal(other.fields[i]) {
			return false
		}
	}
	return true
}

// String returns a short description of the class
func (c *ClassDefinition) String() string {
	return fmt.Sprintf("ClassDefinition(class_id=%d, version=%d, fields=%v)", c.classID, c.version, c.FieldNames())
}

// MarshalBinary returns the wire form of the definition
func (c *ClassDefinition) MarshalBinary() ([]byte, error) {
	out := stream.NewOutput()
	defer out.Release()
	if err := c.writeTo(out); err != nil {
		return nil, err
	}
	return out.ToBytes(), nil
}

// UnmarshalClassDefinition parses the wire form of a class definition
func UnmarshalClassDefinition(b []byte) (*ClassDefinition, error) {
	in := stream.NewInput(b)
	definition, err := readClassDefinition(in)
	if err != nil {
		return nil, gerrors.NewErrCorruptPayload(err)
	}
	if in.Remaining() > 0 {
		return nil, gerrors.NewErrTrailingBytes(PortableTypeID, in.Remaining())
	}
	return definition, nil
}

func (c *ClassDefinition) writeTo(out *stream.Output) error {
	out.WriteInt32(c.classID)
	out.WriteInt32(c.version)
	out.WriteInt32(int32(len(c.fields)))
	for _, field := range c.fields {
		if err := field.writeTo(out); err != nil {
			return err
		}
	}
	return nil
}

func readClassDefinition(in *stream.Input) (*ClassDefinition, error) {
	classID, err := in.ReadInt32()
	if err != nil {
		return nil, err
	}
	version, err := in.ReadInt32()
	if err != nil {
		return nil, err
	}
	count, err := in.ReadInt32()
	if err != nil {
		return nil, err
	}
	// every field takes at least 13 bytes on the wire
	if count < 0 || int(count) > in.Remaining()/13 {
		return nil, fmt.Errorf("(class_id=%d, fields=%d) %w", classID, count, gerrors.ErrCorruptPayload)
	}

	fields := make([]FieldDefinition, 0, count)
	for range count {
		field, err := readFieldDefinition(in)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	definition, err := newClassDefinition(classID, version, fields)
	if err != nil {
		return nil, gerrors.NewErrCorruptPayload(err)
	}
	return definition, nil
}

// ClassDefinitionBuilder assembles a ClassDefinition field by field.
// Fields get consecutive indexes in the order they are added.
type ClassDefinitionBuilder struct {
	classID int32
	version int32
	fields  []FieldDefinition
}

// NewClassDefinitionBuilder creates a builder for classID at version
func NewClassDefinitionBuilder(classID, version int32) *ClassDefinitionBuilder {
	return &ClassDefinitionBuilder{
		classID: classID,
		version: version,
	}
}

// AddField adds a field of the given type
func (b *ClassDefinitionBuilder) AddField(name string, fieldType FieldType) *ClassDefinitionBuilder {
	return b.add(name, fieldType, NoClassID)
}

func (b *ClassDefinitionBuilder) AddByteField(name string) *ClassDefinitionBuilder {
	return b.add(name, FieldTypeByte, NoClassID)
}

func (b *ClassDefinitionBuilder) AddBoolField(name string) *ClassDefinitionBuilder {
	return b.add(name, FieldTypeBool, NoClassID)
}

func (b *ClassDefinitionBuilder) AddCharField(name string) *ClassDefinitionBuilder {
	return b.add(name, FieldTypeChar, NoClassID)
}

func (b *ClassDefinitionBuilder) AddShortField(name string) *ClassDefinitionBuilder {
	return b.add(name, FieldTypeShort, NoClassID)
}

func (b *ClassDefinitionBuilder) AddIntField(name string) *ClassDefinitionBuilder {
	return b.add(name, FieldTypeInt, NoClassID)
}

func (b *ClassDefinitionBuilder) AddLongField(name string) *ClassDefinitionBuilder {
	return b.add(name, FieldTypeLong, NoClassID)
}

func (b *ClassDefinitionBuilder) AddFloatField(name string) *ClassDefinitionBuilder {
	return b.add(name, FieldTypeFloat, NoClassID)
}

func (b *ClassDefinitionBuilder) AddDoubleField(name string) *ClassDefinitionBuilder {
	return b.add(name, FieldTypeDouble, NoClassID)
}

func (b *ClassDefinitionBuilder) AddUTFField(name string) *ClassDefinitionBuilder {
	return b.add(name, FieldTypeUTF, NoClassID)
}

// AddPortableField adds a nested portable field of class classID
func (b *ClassDefinitionBuilder) AddPortableField(name string, classID int32) *ClassDefinitionBuilder {
	return b.add(name, FieldTypePortable, classID)
}

// AddPortableArrayField adds an array of portables of class classID
func (b *ClassDefinitionBuilder) AddPortableArrayField(name string, classID int32) *ClassDefinitionBuilder {
	return b.add(name, FieldTypePortableArray, classID)
}

// Build validates and returns the definition.
// Duplicate or empty names fail with ErrInvalidSchema.
func (b *ClassDefinitionBuilder) Build() (*ClassDefinition, error) {
	return newClassDefinition(b.classID, b.version, b.fields)
}

func (b *ClassDefinitionBuilder) has(name string) bool {
	for _, field := range b.fields {
		if field.name == name {
			return true
		}
	}
	return false
}

func (b *ClassDefinitionBuilder) add(name string, fieldType FieldType, classID int32) *ClassDefinitionBuilder {
	b.fields = append(b.fields, NewFieldDefinition(int32(len(b.fields)), name, fieldType, classID))
	return b
}
