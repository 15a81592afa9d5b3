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

import "fmt"

// FieldType is the declared type of a portable field.
// The numeric values are written on the wire.
type FieldType byte

const (
	FieldTypePortable FieldType = iota
	FieldTypeByte
	FieldTypeBool
	FieldTypeChar
	FieldTypeShort
	FieldTypeInt
	FieldTypeLong
	FieldTypeFloat
	FieldTypeDouble
	FieldTypeUTF
	FieldTypePortableArray
	FieldTypeByteArray
	FieldTypeCharArray
	FieldTypeShortArray
	FieldTypeIntArray
	FieldTypeLongArray
	FieldTypeFloatArray
	FieldTypeDoubleArray
)

var fieldTypeNames = [...]string{
	FieldTypePortable:      "portable",
	FieldTypeByte:          "byte",
	FieldTypeBool:          "bool",
	FieldTypeChar:          "char",
	FieldTypeShort:         "short",
	FieldTypeInt:           "int",
	FieldTypeLong:          "long",
	FieldTypeFloat:         "float",
	FieldTypeDouble:        "double",
	FieldTypeUTF:           "utf",
	FieldTypePortableArray: "portable[]",
	FieldTypeByteArray:     "byte[]",
	FieldTypeCharArray:     "char[]",
	FieldTypeShortArray:    "short[]",
	FieldTypeIntArray:      "int[]",
	FieldTypeLongArray:     "long[]",
	FieldTypeFloatArray:    "float[]",
	FieldTypeDoubleArray:   "double[]",
}

// String returns the name of the field type
func (t FieldType) String() string {
	if t.IsValid() {
		return fieldTypeNames[t]
	}
	return fmt.Sprintf("unknown(%d)", byte(t))
}

// IsValid returns true for the known field types
func (t FieldType) IsValid() bool {
	return int(t) < len(fieldTypeNames)
}

// IsPortable returns true for the field types that carry a nested class id
func (t FieldType) IsPortable() bool {
	return t == FieldTypePortable || t == FieldTypePortableArray
}

// IsArray returns true for the array field types
func (t FieldType) IsArray() bool {
	return t >= FieldTypePortableArray && t.IsValid()
}
