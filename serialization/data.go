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
	"bytes"
	"encoding/binary"
	"fmt"

	gerrors "github.com/tochemey/goserde/errors"
	"github.com/tochemey/goserde/hash"
	"github.com/tochemey/goserde/stream"
)

// frameHeaderSize is the size of the type tag and length prefix of a framed Data
const frameHeaderSize = 8

// Data is the self-describing envelope produced by encoding a value:
// a type tag naming the serializer and the opaque bytes it produced.
//
// Data is immutable. Constructors copy their input and accessors return copies,
// so a Data can be shared across goroutines freely.
type Data struct {
	typeID  int32
	payload []byte
}

// NullData is the envelope of the nil value
var NullData = Data{typeID: NullTypeID}

// NewData creates a Data from a type tag and payload. The payload is copied.
func NewData(typeID int32, payload []byte) Data {
	return Data{
		typeID:  typeID,
		payload: bytes.Clone(payload),
	}
}

// TypeID returns the type tag
func (d Data) TypeID() int32 {
	return d.typeID
}

// Payload returns a copy of the payload bytes
func (d Data) Payload() []byte {
	return bytes.Clone(d.payload)
}

// Len returns the payload size in bytes
func (d Data) Len() int {
	return len(d.payload)
}

// IsNull returns true when d is the envelope of the nil value
func (d Data) IsNull() bool {
	return d.typeID == NullTypeID
}

// Equal returns true when both envelopes carry the same tag and bytes
func (d Data) Equal(other Data) bool {
	return d.typeID == other.typeID && bytes.Equal(d.payload, other.payload)
}

// Hash returns a hash of the tag and payload
func (d Data) Hash() uint64 {
	return hash.Tagged(d.typeID, d.payload)
}

// String returns a short description of the envelope
func (d Data) String() string {
	return fmt.Sprintf("Data(type_id=%d, len=%d)", d.typeID, len(d.payload))
}

// MarshalBinary returns the framed form of d: int32 tag, int32 length, payload.
func (d Data) MarshalBinary() ([]byte, error) {
	out := make([]byte, frameHeaderSize, frameHeaderSize+len(d.payload))
	binary.BigEndian.PutUint32(out[0:4], uint32(d.typeID))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(d.payload)))
	return append(out, d.payload...), nil
}

// ParseData reads a framed Data produced by MarshalBinary.
// The whole input must be consumed.
func ParseData(b []byte) (Data, error) {
	in := stream.NewInput(b)
	d, err := ReadData(in)
	if err != nil {
		return Data{}, gerrors.NewErrCorruptPayload(err)
	}
	if in.Remaining() > 0 {
		return Data{}, gerrors.NewErrTrailingBytes(d.typeID, in.Remaining())
	}
	return d, nil
}

// WriteData writes d in framed form onto out
func WriteData(out *stream.Output, d Data) {
	out.WriteInt32(d.typeID)
	out.WriteInt32(int32(len(d.payload)))
	out.WriteRaw(d.payload)
}

// ReadData reads a framed Data from in
func ReadData(in *stream.Input) (Data, error) {
	typeID, err := in.ReadInt32()
	if err != nil {
		return Data{}, err
	}
	payload, err := in.ReadBytes()
	if err != nil {
		return Data{}, err
	}
	return Data{typeID: typeID, payload: payload}, nil
}
