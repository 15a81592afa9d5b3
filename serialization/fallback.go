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
	"reflect"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/fxamacker/cbor/v2"

	gerrors "github.com/tochemey/goserde/errors"
	"github.com/tochemey/goserde/internal/compression"
	"github.com/tochemey/goserde/internal/types"
	"github.com/tochemey/goserde/stream"
)

var (
	cborEncOpts = cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeRFC3339Nano,
	}
	cborDecOpts = cbor.DecOptions{
		MaxNestedLevels: 64,
		IndefLength:     cbor.IndefLengthForbidden,
		UTF8:            cbor.UTF8RejectInvalid,
	}
)

// fallbackSerializer encodes values of explicitly allowed types with CBOR.
//
// Frame layout:
//
//	UTF type name | byte compression kind | bool pointer | bytes(CBOR)
//
// The compression kind travels with the payload so a registry configured
// with another compression still decodes it. Decoding returns a pointer when
// the encoded value was a pointer and a plain value otherwise.
type fallbackSerializer struct {
	encMode    cbor.EncMode
	decMode    cbor.DecMode
	types      types.Registry
	allowed    mapset.Set[reflect.Type]
	compressor compression.Compressor
}

// enforce compilation error
var _ Serializer = (*fallbackSerializer)(nil)

func newFallbackSerializer(typesRegistry types.Registry, allowed mapset.Set[reflect.Type], compressor compression.Compressor) (*fallbackSerializer, error) {
	encMode, err := cborEncOpts.EncMode()
	if err != nil {
		return nil, err
	}
	decMode, err := cborDecOpts.DecMode()
	if err != nil {
		return nil, err
	}
	return &fallbackSerializer{
		encMode:    encMode,
		decMode:    decMode,
		types:      typesRegistry,
		allowed:    allowed,
		compressor: compressor,
	}, nil
}

func (s *fallbackSerializer) TypeID() int32 { return FallbackTypeID }

func (s *fallbackSerializer) IsSuitable(value any) bool {
	rtype := reflect.TypeOf(value)
	if rtype == nil {
		return false
	}
	if rtype.Kind() == reflect.Pointer {
		rtype = rtype.Elem()
	}
	return s.allowed.Contains(rtype)
}

func (s *fallbackSerializer) Write(out *stream.Output, value any) error {
	if !s.IsSuitable(value) {
		return gerrors.NewErrUnsupportedType(value)
	}

	bytea, err := s.encMode.Marshal(value)
	if err != nil {
		return gerrors.NewErrUnsupportedType(value)
	}

	compressed, err := s.compressor.Compress(bytea)
	if err != nil {
		return err
	}

	if err := writeUTF(out, types.Name(value)); err != nil {
		return err
	}
	if err := out.WriteByte(byte(s.compressor.Kind())); err != nil {
		return err
	}
	out.WriteBool(reflect.TypeOf(value).Kind() == reflect.Pointer)
	out.WriteBytes(compressed)
	return nil
}

func (s *fallbackSerializer) Read(in *stream.Input) (any, error) {
	name, err := in.ReadUTF()
	if err != nil {
		return nil, err
	}
	kind, err := in.ReadByte()
	if err != nil {
		return nil, err
	}
	isPointer, err := in.ReadBool()
	if err != nil {
		return nil, err
	}
	compressed, err := in.ReadSlice()
	if err != nil {
		return nil, err
	}

	rtype, ok := s.types.TypeOf(name)
	if !ok {
		return nil, gerrors.NewErrTypeNotFound(name)
	}

	decompressor, err := compression.For(compression.Kind(kind))
	if err != nil {
		return nil, gerrors.NewErrCorruptPayload(err)
	}

	bytea, err := decompressor.Decompress(compressed)
	if err != nil {
		return nil, gerrors.NewErrCorruptPayload(err)
	}

	ptr := reflect.New(rtype)
	if err := s.decMode.Unmarshal(bytea, ptr.Interface()); err != nil {
		return nil, gerrors.NewErrCorruptPayload(err)
	}

	if isPointer {
		return ptr.Interface(), nil
	}
	return ptr.Elem().Interface(), nil
}
