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

// encodeValue writes value as a field payload of type fieldType
func (s *portableSerializer) encodeValue(out *stream.Output, fieldType FieldType, value any) error {
	switch fieldType {
	case FieldTypePortable:
		nested, err := fieldValue[Portable](value)
		if err != nil {
			return err
		}
		present := !isNil(nested)
		out.WriteBool(present)
		if !present {
			return nil
		}
		return s.writePortable(out, nested)
	case FieldTypeByte:
		return encodeScalar(value, out.WriteByte)
	case FieldTypeBool:
		return encodeScalar(value, noErr(out.WriteBool))
	case FieldTypeChar:
		return encodeScalar(value, noErr(out.WriteUint16))
	case FieldTypeShort:
		return encodeScalar(value, noErr(out.WriteInt16))
	case FieldTypeInt:
		return encodeScalar(value, noErr(out.WriteInt32))
	case FieldTypeLong:
		return encodeScalar(value, noErr(out.WriteInt64))
	case FieldTypeFloat:
		return encodeScalar(value, noErr(out.WriteFloat32))
	case FieldTypeDouble:
		return encodeScalar(value, noErr(out.WriteFloat64))
	case FieldTypeUTF:
		return encodeScalar(value, func(v string) error { return writeUTF(out, v) })
	case FieldTypePortableArray:
		values, err := fieldValue[[]Portable](value)
		if err != nil {
			return err
		}
		return writeArray(out, values, func(out *stream.Output, nested Portable) error {
			if isNil(nested) {
				out.WriteBytes(nil)
				return nil
			}
			body := stream.NewOutput()
			defer body.Release()
			if err := s.writePortable(body, nested); err != nil {
				return err
			}
			out.WriteBytes(body.ToBytes())
			return nil
		})
	case FieldTypeByteArray:
		values, err := fieldValue[[]byte](value)
		if err != nil {
			return err
		}
		out.WriteBytes(values)
		return nil
	case FieldTypeCharArray:
		return encodeArray(out, value, out.WriteUint16)
	case FieldTypeShortArray:
		return encodeArray(out, value, out.WriteInt16)
	case FieldTypeIntArray:
		return encodeArray(out, value, out.WriteInt32)
	case FieldTypeLongArray:
		return encodeArray(out, value, out.WriteInt64)
	case FieldTypeFloatArray:
		return encodeArray(out, value, out.WriteFloat32)
	case FieldTypeDoubleArray:
		return encodeArray(out, value, out.WriteFloat64)
	default:
		return fmt.Errorf("(type=%s) %w", fieldType, gerrors.ErrInvalidSchema)
	}
}

// decodeValue reads one field payload of type fieldType.
// Definitions of nested portables are appended to learned.
func (s *portableSerializer) decodeValue(in *stream.Input, fieldType FieldType, learned *learnedDefinitions) (any, error) {
	switch fieldType {
	case FieldTypePortable:
		present, err := in.ReadBool()
		if err != nil || !present {
			return nil, err
		}
		return s.readPortable(in, learned)
	case FieldTypeByte:
		return in.ReadByte()
	case FieldTypeBool:
		return in.ReadBool()
	case FieldTypeChar:
		return in.ReadUint16()
	case FieldTypeShort:
		return in.ReadInt16()
	case FieldTypeInt:
		return in.ReadInt32()
	case FieldTypeLong:
		return in.ReadInt64()
	case FieldTypeFloat:
		return in.ReadFloat32()
	case FieldTypeDouble:
		return in.ReadFloat64()
	case FieldTypeUTF:
		return in.ReadUTF()
	case FieldTypePortableArray:
		return readArray(in, func(in *stream.Input) (Portable, error) {
			body, err := in.ReadSlice()
			if err != nil || body == nil {
				return nil, err
			}
			nested := stream.NewInput(body)
			portable, err := s.readPortable(nested, learned)
			if err != nil {
				return nil, err
			}
			if nested.Remaining() > 0 {
				return nil, gerrors.NewErrTrailingBytes(PortableTypeID, nested.Remaining())
			}
			return portable, nil
		})
	case FieldTypeByteArray:
		return in.ReadBytes()
	case FieldTypeCharArray:
		return readArray(in, (*stream.Input).ReadUint16)
	case FieldTypeShortArray:
		return readArray(in, (*stream.Input).ReadInt16)
	case FieldTypeIntArray:
		return readArray(in, (*stream.Input).ReadInt32)
	case FieldTypeLongArray:
		return readArray(in, (*stream.Input).ReadInt64)
	case FieldTypeFloatArray:
		return readArray(in, (*stream.Input).ReadFloat32)
	case FieldTypeDoubleArray:
		return readArray(in, (*stream.Input).ReadFloat64)
	default:
		return nil, fmt.Errorf("(type=%s) %w", fieldType, gerrors.ErrCorruptPayload)
	}
}

// fieldValue asserts value to T. A nil value yields the zero T.
func fieldValue[T any](value any) (T, error) {
	var zero T
	if value == nil {
		return zero, nil
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("(expected=%T, actual=%T) %w", zero, value, gerrors.ErrFieldTypeMismatch)
	}
	return typed, nil
}

func noErr[T any](write func(T)) func(T) error {
	return func(v T) error {
		write(v)
		return nil
	}
}

func encodeScalar[T any](value any, write func(T) error) error {
	typed, err := fieldValue[T](value)
	if err != nil {
		return err
	}
	return write(typed)
}

func encodeArray[T any](out *stream.Output, value any, write func(T)) error {
	values, err := fieldValue[[]T](value)
	if err != nil {
		return err
	}
	return writeArray(out, values, func(_ *stream.Output, v T) error {
		write(v)
		return nil
	})
}

// writeArray writes an int32 count, -1 for nil, followed by each element
func writeArray[T any](out *stream.Output, values []T, write func(*stream.Output, T) error) error {
	if values == nil {
		out.WriteInt32(stream.NullLength)
		return nil
	}
	out.WriteInt32(int32(len(values)))
	for _, v := range values {
		if err := write(out, v); err != nil {
			return err
		}
	}
	return nil
}

func readArray[T any](in *stream.Input, read func(*stream.Input) (T, error)) ([]T, error) {
	count, err := in.ReadInt32()
	if err != nil {
		return nil, err
	}
	if count == stream.NullLength {
		return nil, nil
	}
	// every element takes at least one byte
	if count < 0 || int(count) > in.Remaining() {
		return nil, fmt.Errorf("(count=%d, available=%d) %w", count, in.Remaining(), gerrors.ErrCorruptPayload)
	}

	values := make([]T, 0, count)
	for range count {
		v, err := read(in)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
