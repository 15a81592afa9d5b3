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
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"

	gerrors "github.com/tochemey/goserde/errors"
	"github.com/tochemey/goserde/internal/types"
	"github.com/tochemey/goserde/stream"
)

var errEmptyBigInt = errors.New("empty big integer payload")

// builtinSerializers returns the scalar serializers in dispatch order
func builtinSerializers(typesRegistry types.Registry) []Serializer {
	return []Serializer{
		NewTypedSerializer(BoolTypeID, writeBool, readBool),
		NewTypedSerializer(Int8TypeID, writeInt8, readInt8),
		NewTypedSerializer(Int16TypeID, writeInt16, readInt16),
		NewTypedSerializer(Int32TypeID, writeInt32, readInt32),
		NewTypedSerializer(Int64TypeID, writeInt64, readInt64),
		NewTypedSerializer(Float32TypeID, writeFloat32, readFloat32),
		NewTypedSerializer(Float64TypeID, writeFloat64, readFloat64),
		NewTypedSerializer(StringTypeID, writeString, readString),
		NewTypedSerializer(BytesTypeID, writeBytes, readBytes),
		&typeRefSerializer{types: typesRegistry},
		NewTypedSerializer(TimeTypeID, writeTime, readTime),
		NewTypedSerializer(BigIntTypeID, writeBigInt, readBigInt),
		NewTypedSerializer(UUIDTypeID, writeUUID, readUUID),
		NewTypedSerializer(ProtoTypeID, writeProto, readProto),
	}
}

// builtinTypes are resolvable by name without registration
var builtinTypes = []any{
	reflect.TypeFor[bool](),
	reflect.TypeFor[int](),
	reflect.TypeFor[int8](),
	reflect.TypeFor[int16](),
	reflect.TypeFor[int32](),
	reflect.TypeFor[int64](),
	reflect.TypeFor[uint](),
	reflect.TypeFor[uint8](),
	reflect.TypeFor[uint16](),
	reflect.TypeFor[uint32](),
	reflect.TypeFor[uint64](),
	reflect.TypeFor[float32](),
	reflect.TypeFor[float64](),
	reflect.TypeFor[string](),
	reflect.TypeFor[[]byte](),
	reflect.TypeFor[time.Time](),
	reflect.TypeFor[time.Duration](),
	reflect.TypeFor[big.Int](),
	reflect.TypeFor[uuid.UUID](),
}

// nullSerializer encodes the nil value as an empty payload
type nullSerializer struct{}

func (nullSerializer) TypeID() int32 { return NullTypeID }

func (nullSerializer) IsSuitable(value any) bool { return value == nil }

func (nullSerializer) Write(*stream.Output, any) error { return nil }

func (nullSerializer) Read(*stream.Input) (any, error) { return nil, nil }

func writeBool(out *stream.Output, v bool) error {
	out.WriteBool(v)
	return nil
}

func readBool(in *stream.Input) (bool, error) {
	return in.ReadBool()
}

func writeInt8(out *stream.Output, v int8) error {
	return out.WriteByte(byte(v))
}

func readInt8(in *stream.Input) (int8, error) {
	b, err := in.ReadByte()
	return int8(b), err
}

func writeInt16(out *stream.Output, v int16) error {
	out.WriteInt16(v)
	return nil
}

func readInt16(in *stream.Input) (int16, error) {
	return in.ReadInt16()
}

func writeInt32(out *stream.Output, v int32) error {
	out.WriteInt32(v)
	return nil
}

func readInt32(in *stream.Input) (int32, error) {
	return in.ReadInt32()
}

func writeInt64(out *stream.Output, v int64) error {
	out.WriteInt64(v)
	return nil
}

func readInt64(in *stream.Input) (int64, error) {
	return in.ReadInt64()
}

func writeFloat32(out *stream.Output, v float32) error {
	out.WriteFloat32(v)
	return nil
}

func readFloat32(in *stream.Input) (float32, error) {
	return in.ReadFloat32()
}

func writeFloat64(out *stream.Output, v float64) error {
	out.WriteFloat64(v)
	return nil
}

func readFloat64(in *stream.Input) (float64, error) {
	return in.ReadFloat64()
}

func writeString(out *stream.Output, v string) error {
	return writeUTF(out, v)
}

// writeUTF writes s as a length-prefixed string. A string that is not valid
// UTF-8 would not read back and is rejected.
func writeUTF(out *stream.Output, s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("(invalid utf-8 string) %w", gerrors.ErrUnsupportedType)
	}
	out.WriteUTF(s)
	return nil
}

func readString(in *stream.Input) (string, error) {
	return in.ReadUTF()
}

func writeBytes(out *stream.Output, v []byte) error {
	out.WriteBytes(v)
	return nil
}

func readBytes(in *stream.Input) ([]byte, error) {
	return in.ReadBytes()
}

// time values travel as milliseconds since the Unix epoch and decode in UTC
func writeTime(out *stream.Output, v time.Time) error {
	out.WriteInt64(v.UnixMilli())
	return nil
}

func readTime(in *stream.Input) (time.Time, error) {
	millis, err := in.ReadInt64()
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(millis).UTC(), nil
}

func writeBigInt(out *stream.Output, v *big.Int) error {
	out.WriteBytes(twosComplement(v))
	return nil
}

func readBigInt(in *stream.Input) (*big.Int, error) {
	b, err := in.ReadBytes()
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, gerrors.NewErrCorruptPayload(errEmptyBigInt)
	}
	return fromTwosComplement(b), nil
}

// twosComplement returns the minimal big-endian two's-complement form of v
func twosComplement(v *big.Int) []byte {
	if v.Sign() >= 0 {
		b := v.Bytes()
		if len(b) == 0 || b[0]&0x80 != 0 {
			b = append([]byte{0x00}, b...)
		}
		return b
	}

	// for v < 0 the encoding is the bitwise complement of -v-1
	m := new(big.Int).Neg(v)
	m.Sub(m, big.NewInt(1))
	b := m.Bytes()
	for i := range b {
		b[i] = ^b[i]
	}
	if len(b) == 0 || b[0]&0x80 == 0 {
		b = append([]byte{0xff}, b...)
	}
	return b
}

func fromTwosComplement(b []byte) *big.Int {
	if b[0]&0x80 == 0 {
		return new(big.Int).SetBytes(b)
	}
	inverted := make([]byte, len(b))
	for i := range b {
		inverted[i] = ^b[i]
	}
	m := new(big.Int).SetBytes(inverted)
	m.Add(m, big.NewInt(1))
	return m.Neg(m)
}

func writeUUID(out *stream.Output, v uuid.UUID) error {
	out.WriteRaw(v[:])
	return nil
}

func readUUID(in *stream.Input) (uuid.UUID, error) {
	raw, err := in.ReadRaw(len(uuid.UUID{}))
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.FromBytes(raw)
}

func writeProto(out *stream.Output, v proto.Message) error {
	bytea, err := proto.MarshalOptions{Deterministic: true}.Marshal(v)
	if err != nil {
		return err
	}
	out.WriteUTF(string(v.ProtoReflect().Descriptor().FullName()))
	out.WriteBytes(bytea)
	return nil
}

func readProto(in *stream.Input) (proto.Message, error) {
	name, err := in.ReadUTF()
	if err != nil {
		return nil, err
	}
	bytea, err := in.ReadSlice()
	if err != nil {
		return nil, err
	}

	messageType, err := protoregistry.GlobalTypes.FindMessageByName(protoreflect.FullName(name))
	if err != nil {
		return nil, gerrors.NewErrTypeNotFound(name)
	}

	message := messageType.New().Interface()
	if err := proto.Unmarshal(bytea, message); err != nil {
		return nil, gerrors.NewErrCorruptPayload(err)
	}
	return message, nil
}

// typeRefSerializer encodes a reflect.Type as its registry name.
// Pointer types are not claimed since the registry stores element types.
type typeRefSerializer struct {
	types types.Registry
}

func (s *typeRefSerializer) TypeID() int32 { return TypeRefTypeID }

func (s *typeRefSerializer) IsSuitable(value any) bool {
	rtype, ok := value.(reflect.Type)
	return ok && rtype.Kind() != reflect.Pointer
}

func (s *typeRefSerializer) Write(out *stream.Output, value any) error {
	rtype, ok := value.(reflect.Type)
	if !ok {
		return gerrors.NewErrUnsupportedType(value)
	}
	return writeUTF(out, types.NameOf(rtype))
}

func (s *typeRefSerializer) Read(in *stream.Input) (any, error) {
	name, err := in.ReadUTF()
	if err != nil {
		return nil, err
	}
	rtype, ok := s.types.TypeOf(name)
	if !ok {
		return nil, gerrors.NewErrTypeNotFound(name)
	}
	return rtype, nil
}
