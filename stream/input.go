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

package stream

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	gerrors "github.com/tochemey/goserde/errors"
)

// Input reads primitives from a single payload.
// It never reads past the end of the payload and is not safe for concurrent use.
type Input struct {
	data []byte
	pos  int
}

// NewInput returns an Input reading b from the start.
func NewInput(b []byte) *Input {
	return &Input{data: b}
}

// Remaining returns the number of unread bytes
func (in *Input) Remaining() int {
	return len(in.data) - in.pos
}

// Position returns the read offset
func (in *Input) Position() int {
	return in.pos
}

// Skip advances the read offset by n bytes.
func (in *Input) Skip(n int) error {
	if _, err := in.next(n); err != nil {
		return err
	}
	return nil
}

// ReadRaw returns the next n bytes without copying.
func (in *Input) ReadRaw(n int) ([]byte, error) {
	return in.next(n)
}

// ReadByte reads a single byte.
func (in *Input) ReadByte() (byte, error) {
	b, err := in.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadBool reads a boolean. Only 0x00 and 0x01 are accepted.
func (in *Input) ReadBool() (bool, error) {
	b, err := in.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("(boolean byte=0x%02x) %w", b, gerrors.ErrCorruptPayload)
	}
}

// ReadInt16 reads a 2-byte signed integer.
func (in *Input) ReadInt16() (int16, error) {
	v, err := in.ReadUint16()
	return int16(v), err
}

// ReadUint16 reads a 2-byte unsigned integer.
func (in *Input) ReadUint16() (uint16, error) {
	b, err := in.next(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadInt32 reads a 4-byte signed integer.
func (in *Input) ReadInt32() (int32, error) {
	b, err := in.next(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

// ReadInt64 reads an 8-byte signed integer.
func (in *Input) ReadInt64() (int64, error) {
	b, err := in.next(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// ReadFloat32 reads an IEEE 754 single precision value.
func (in *Input) ReadFloat32() (float32, error) {
	b, err := in.next(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

// ReadFloat64 reads an IEEE 754 double precision value.
func (in *Input) ReadFloat64() (float64, error) {
	b, err := in.next(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// ReadUTF reads a length-prefixed UTF-8 string.
func (in *Input) ReadUTF() (string, error) {
	size, err := in.readLength(false)
	if err != nil {
		return "", err
	}
	b, err := in.next(size)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("(invalid utf-8 at offset=%d) %w", in.pos-size, gerrors.ErrCorruptPayload)
	}
	return string(b), nil
}

// ReadBytes reads a length-prefixed byte slice into an owned copy.
// NullLength yields a nil slice.
func (in *Input) ReadBytes() ([]byte, error) {
	view, err := in.ReadSlice()
	if err != nil || view == nil {
		return nil, err
	}
	out := make([]byte, len(view))
	copy(out, view)
	return out, nil
}

// ReadSlice reads a length-prefixed span and returns it without copying.
// NullLength yields a nil slice. The span aliases the Input's payload and must not be modified.
func (in *Input) ReadSlice() ([]byte, error) {
	size, err := in.readLength(true)
	if err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, nil
	}
	return in.next(size)
}

// readLength reads a length prefix. NullLength is returned as -1 when allowed.
func (in *Input) readLength(allowNull bool) (int, error) {
	size, err := in.ReadInt32()
	if err != nil {
		return 0, err
	}
	if size == NullLength && allowNull {
		return -1, nil
	}
	if size < 0 {
		return 0, fmt.Errorf("(length=%d) %w", size, gerrors.ErrCorruptPayload)
	}
	return int(size), nil
}

func (in *Input) next(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("(length=%d) %w", n, gerrors.ErrCorruptPayload)
	}
	if in.Remaining() < n {
		return nil, gerrors.NewErrEndOfInput(n, in.Remaining())
	}
	b := in.data[in.pos : in.pos+n]
	in.pos += n
	return b, nil
}
