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

// Package stream provides the ordered byte input and output primitives every
// serializer reads from and writes to. All multi-byte values are big-endian.
//
// An Output is owned by exactly one encode call: obtain it with NewOutput and
// hand the buffer back with Release once the bytes have been copied out with
// ToBytes. An Input is a bounded, single-use reader over one payload.
package stream

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/tochemey/goserde/internal/bufferpool"
)

// NullLength is the length prefix written for a nil byte slice or array.
const NullLength int32 = -1

// Output accumulates encoded bytes in a pooled buffer.
// It is not safe for concurrent use.
type Output struct {
	buf     *bytes.Buffer
	scratch [8]byte
}

// NewOutput checks a buffer out of the pool and returns an Output writing into it.
func NewOutput() *Output {
	return &Output{buf: bufferpool.Pool.Get()}
}

// Release returns the underlying buffer to the pool. The Output must not be used afterwards.
func (o *Output) Release() {
	if o.buf == nil {
		return
	}
	bufferpool.Pool.Put(o.buf)
	o.buf = nil
}

// Len returns the number of bytes written so far
func (o *Output) Len() int {
	return o.buf.Len()
}

// ToBytes returns an owned copy of the accumulated bytes.
func (o *Output) ToBytes() []byte {
	out := make([]byte, o.buf.Len())
	copy(out, o.buf.Bytes())
	return out
}

// Write implements io.Writer so that an Output can sit at the end of a
// compression transform. It never fails.
func (o *Output) Write(p []byte) (int, error) {
	return o.buf.Write(p)
}

// WriteByte writes a single byte.
func (o *Output) WriteByte(b byte) error {
	return o.buf.WriteByte(b)
}

// WriteBool writes 0x01 for true and 0x00 for false.
func (o *Output) WriteBool(v bool) {
	if v {
		_ = o.buf.WriteByte(1)
		return
	}
	_ = o.buf.WriteByte(0)
}

// WriteInt16 writes a 2-byte signed integer.
func (o *Output) WriteInt16(v int16) {
	o.WriteUint16(uint16(v))
}

// WriteUint16 writes a 2-byte unsigned integer.
func (o *Output) WriteUint16(v uint16) {
	binary.BigEndian.PutUint16(o.scratch[:2], v)
	o.buf.Write(o.scratch[:2])
}

// WriteInt32 writes a 4-byte signed integer.
func (o *Output) WriteInt32(v int32) {
	binary.BigEndian.PutUint32(o.scratch[:4], uint32(v))
	o.buf.Write(o.scratch[:4])
}

// WriteInt64 writes an 8-byte signed integer.
func (o *Output) WriteInt64(v int64) {
	binary.BigEndian.PutUint64(o.scratch[:8], uint64(v))
	o.buf.Write(o.scratch[:8])
}

// WriteFloat32 writes the IEEE 754 bits of v.
func (o *Output) WriteFloat32(v float32) {
	binary.BigEndian.PutUint32(o.scratch[:4], math.Float32bits(v))
	o.buf.Write(o.scratch[:4])
}

// WriteFloat64 writes the IEEE 754 bits of v.
func (o *Output) WriteFloat64(v float64) {
	binary.BigEndian.PutUint64(o.scratch[:8], math.Float64bits(v))
	o.buf.Write(o.scratch[:8])
}

// WriteUTF writes the 4-byte length of s followed by its UTF-8 bytes.
func (o *Output) WriteUTF(s string) {
	o.WriteInt32(int32(len(s)))
	o.buf.WriteString(s)
}

// WriteBytes writes a 4-byte length prefix followed by b.
// A nil slice is written as NullLength with no body.
func (o *Output) WriteBytes(b []byte) {
	if b == nil {
		o.WriteInt32(NullLength)
		return
	}
	o.WriteInt32(int32(len(b)))
	o.buf.Write(b)
}

// WriteRaw writes b without a length prefix.
func (o *Output) WriteRaw(b []byte) {
	o.buf.Write(b)
}
