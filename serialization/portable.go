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

// Portable is implemented by structured types encoded field by field
// against a class definition. Receivers can read single fields by name
// without decoding the whole value, and a value written by one version of
// the class stays readable by another as long as the fields it reads exist.
//
// Register a factory with WithPortableFactory so that decoding yields the
// concrete type; without a factory decoding yields a *Record.
type Portable interface {
	// ClassID returns the class id of the type
	ClassID() int32
	// WritePortable writes the fields of the value
	WritePortable(writer PortableWriter) error
	// ReadPortable reads the fields of the value
	ReadPortable(reader PortableReader) error
}

// VersionedPortable is a Portable carrying a class version.
// Portables without a version are at version 0.
type VersionedPortable interface {
	Portable
	// Version returns the class version
	Version() int32
}

// PortableWriter writes named fields of a portable.
//
// Writing a name the class definition does not declare is a no-op.
// Writing a declared name with another type fails with ErrFieldTypeMismatch.
type PortableWriter interface {
	WriteUint8(name string, value byte) error
	WriteBool(name string, value bool) error
	WriteChar(name string, value uint16) error
	WriteShort(name string, value int16) error
	WriteInt(name string, value int32) error
	WriteLong(name string, value int64) error
	WriteFloat(name string, value float32) error
	WriteDouble(name string, value float64) error
	WriteUTF(name string, value string) error
	WritePortable(name string, value Portable) error
	WritePortableArray(name string, values []Portable) error
	WriteByteArray(name string, values []byte) error
	WriteCharArray(name string, values []uint16) error
	WriteShortArray(name string, values []int16) error
	WriteIntArray(name string, values []int32) error
	WriteLongArray(name string, values []int64) error
	WriteFloatArray(name string, values []float32) error
	WriteDoubleArray(name string, values []float64) error
	// WriteField writes value as a field of type fieldType
	WriteField(name string, fieldType FieldType, value any) error
}

// PortableReader reads named fields of an encoded portable.
//
// Reading a name the encoded class definition does not declare fails with
// ErrSchemaMismatch; reading it with another type fails with ErrFieldTypeMismatch.
// A declared field that was never written reads as the zero value.
type PortableReader interface {
	ReadUint8(name string) (byte, error)
	ReadBool(name string) (bool, error)
	ReadChar(name string) (uint16, error)
	ReadShort(name string) (int16, error)
	ReadInt(name string) (int32, error)
	ReadLong(name string) (int64, error)
	ReadFloat(name string) (float32, error)
	ReadDouble(name string) (float64, error)
	ReadUTF(name string) (string, error)
	ReadPortable(name string) (Portable, error)
	ReadPortableArray(name string) ([]Portable, error)
	ReadByteArray(name string) ([]byte, error)
	ReadCharArray(name string) ([]uint16, error)
	ReadShortArray(name string) ([]int16, error)
	ReadIntArray(name string) ([]int32, error)
	ReadLongArray(name string) ([]int64, error)
	ReadFloatArray(name string) ([]float32, error)
	ReadDoubleArray(name string) ([]float64, error)
	// ReadField reads the field with its declared type.
	// It returns nil for a declared field that was never written.
	ReadField(name string) (any, error)
	// HasField returns true when the encoded class declares name
	HasField(name string) bool
	// ClassDefinition returns the class definition the value was written with
	ClassDefinition() *ClassDefinition
}

// PortableFactory creates an empty portable for a class id
type PortableFactory func() Portable

// classDefinitionCarrier is implemented by portables that know their definition
type classDefinitionCarrier interface {
	ClassDefinition() *ClassDefinition
}

func versionOf(p Portable) int32 {
	if versioned, ok := p.(VersionedPortable); ok {
		return versioned.Version()
	}
	return 0
}
