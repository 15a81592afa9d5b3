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
	"encoding/binary"
	"fmt"

	gerrors "github.com/tochemey/goserde/errors"
	"github.com/tochemey/goserde/hash"
	"github.com/tochemey/goserde/stream"
)

// NoClassID is the class id of fields that do not hold portables
const NoClassID int32 = -1

// FieldDefinition describes one field of a class definition.
// It is a comparable value; two definitions are equal when all four attributes match.
type FieldDefinition struct {
	index     int32
	name      string
	fieldType FieldType
	classID   int32
}

// NewFieldDefinition creates a FieldDefinition
func NewFieldDefinition(index int32, name string, fieldType FieldType, classID int32) FieldDefinition {
	return FieldDefinition{
		index:     index,
		name:      name,
		fieldType: fieldType,
		classID:   classID,
	}
}

// Index returns the position of the field in its class
func (f FieldDefinition) Index() int32 { return f.index }

// Name returns the field name
func (f FieldDefinition) Name() string { return f.name }

// Type returns the field type
func (f FieldDefinition) Type() FieldType { return f.fieldType }

// ClassID returns the class id of nested portables or NoClassID
func (f FieldDefinition) ClassID() int32 { return f.classID }

// Equal returns true when both definitions match
func (f FieldDefinition) Equal(other FieldDefinition) bool {
	return f == other
}

// Hash returns a hash of the four attributes
func (f FieldDefinition) Hash() uint64 {
	var buf [5]byte
	buf[0] = byte(f.fieldType)
	binary.BigEndian.PutUint32(buf[1:5], uint32(f.classID))
	return hash.Tagged(f.index, buf[:], []byte(f.name))
}

// String returns a short description of the field
func (f FieldDefinition) String() string {
	return fmt.Sprintf("FieldDefinition(index=%d, name=%s, type=%s, class_id=%d)", f.index, f.name, f.fieldType, f.classID)
}

func (f FieldDefinition) writeTo(out *stream.Output) error {
	out.WriteInt32(f.index)
	out.WriteUTF(f.name)
	if err := out.WriteByte(byte(f.fieldType)); err != nil {
		return err
	}
	out.WriteInt32(f.classID)
	return nil
}

func readFieldDefinition(in *stream.Input) (FieldDefinition, error) {
	index, err := in.ReadInt32()
	if err != nil {
		return FieldDefinition{}, err
	}
	name, err := in.ReadUTF()
	if err != nil {
		return FieldDefinition{}, err
	}
	kind, err := in.ReadByte()
	if err != nil {
		return FieldDefinition{}, err
	}
	classID, err := in.ReadInt32()
	if err != nil {
		return FieldDefinition{}, err
	}

	fieldType := FieldType(kind)
	if !fieldType.IsValid() {
		return FieldDefinition{}, fmt.Errorf("(field=%s, type=%d) %w", name, kind, gerrors.ErrCorruptPayload)
	}
	return NewFieldDefinition(index, name, fieldType, classID), nil
}
