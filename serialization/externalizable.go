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

	gerrors "github.com/tochemey/goserde/errors"
	"github.com/tochemey/goserde/internal/types"
	"github.com/tochemey/goserde/stream"
)

// Externalizable is implemented by types that write and read their own state.
//
// The type travels by name, so the receiving registry must know it
// (see WithTypes). Decoding allocates a new value with reflect.New and calls
// ReadExternal on it, hence both methods must have pointer receivers.
type Externalizable interface {
	// WriteExternal writes the value state onto out
	WriteExternal(out *stream.Output) error
	// ReadExternal restores the value state from in
	ReadExternal(in *stream.Input) error
}

// externalizableSerializer is consulted after every registered serializer declined a value
type externalizableSerializer struct {
	types types.Registry
}

// enforce compilation error
var _ Serializer = (*externalizableSerializer)(nil)

func (s *externalizableSerializer) TypeID() int32 { return ExternalizableTypeID }

func (s *externalizableSerializer) IsSuitable(value any) bool {
	_, ok := value.(Externalizable)
	return ok
}

func (s *externalizableSerializer) Write(out *stream.Output, value any) error {
	externalizable, ok := value.(Externalizable)
	if !ok {
		return gerrors.NewErrUnsupportedType(value)
	}

	body := stream.NewOutput()
	defer body.Release()
	if err := externalizable.WriteExternal(body); err != nil {
		return err
	}

	if err := writeUTF(out, types.Name(value)); err != nil {
		return err
	}
	out.WriteBytes(body.ToBytes())
	return nil
}

func (s *externalizableSerializer) Read(in *stream.Input) (any, error) {
	name, err := in.ReadUTF()
	if err != nil {
		return nil, err
	}
	body, err := in.ReadSlice()
	if err != nil {
		return nil, err
	}

	rtype, ok := s.types.TypeOf(name)
	if !ok {
		return nil, gerrors.NewErrTypeNotFound(name)
	}

	ptr := reflect.New(rtype).Interface()
	externalizable, ok := ptr.(Externalizable)
	if !ok {
		return nil, gerrors.NewErrTypeNotFound(name)
	}

	nested := stream.NewInput(body)
	if err := externalizable.ReadExternal(nested); err != nil {
		return nil, gerrors.NewErrCorruptPayload(err)
	}
	if nested.Remaining() > 0 {
		return nil, gerrors.NewErrTrailingBytes(ExternalizableTypeID, nested.Remaining())
	}
	return ptr, nil
}
