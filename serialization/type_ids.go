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

// Type tags of the built-in serializers. They are part of the wire format:
// a tag is never reused and new tags are only ever added.
// Tags <= 0 are reserved; user serializers must use positive tags.
const (
	NullTypeID           int32 = 0
	PortableTypeID       int32 = -1
	Int8TypeID           int32 = -3
	BoolTypeID           int32 = -4
	Int16TypeID          int32 = -6
	Int32TypeID          int32 = -7
	Int64TypeID          int32 = -8
	Float32TypeID        int32 = -9
	Float64TypeID        int32 = -10
	StringTypeID         int32 = -11
	BytesTypeID          int32 = -12
	TypeRefTypeID        int32 = -19
	TimeTypeID           int32 = -20
	BigIntTypeID         int32 = -21
	FallbackTypeID       int32 = -23
	ExternalizableTypeID int32 = -24
	UUIDTypeID           int32 = -25
	ProtoTypeID          int32 = -26
	CollectionTypeID     int32 = -27
)

var typeNames = map[int32]string{
	NullTypeID:           "null",
	PortableTypeID:       "portable",
	Int8TypeID:           "int8",
	BoolTypeID:           "bool",
	Int16TypeID:          "int16",
	Int32TypeID:          "int32",
	Int64TypeID:          "int64",
	Float32TypeID:        "float32",
	Float64TypeID:        "float64",
	StringTypeID:         "string",
	BytesTypeID:          "bytes",
	TypeRefTypeID:        "type",
	TimeTypeID:           "time",
	BigIntTypeID:         "bigint",
	FallbackTypeID:       "fallback",
	ExternalizableTypeID: "externalizable",
	UUIDTypeID:           "uuid",
	ProtoTypeID:          "proto",
	CollectionTypeID:     "collection",
}

// TypeName returns the name of a built-in tag, "user" for positive tags
// and "reserved" for unassigned non-positive ones
func TypeName(typeID int32) string {
	if name, ok := typeNames[typeID]; ok {
		return name
	}
	if typeID > 0 {
		return "user"
	}
	return "reserved"
}
