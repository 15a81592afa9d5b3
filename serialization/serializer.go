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
	gerrors "github.com/tochemey/goserde/errors"
	"github.com/tochemey/goserde/stream"
)

// Serializer converts values of the types it claims to and from bytes.
//
// A registry holds an ordered list of serializers. On encode the first one
// whose IsSuitable returns true wins; on decode the serializer is found by TypeID.
//
// # Concurrency
//
// A Serializer is shared by every encode and decode running on a registry
// and must be safe for concurrent use. Per-call state belongs in the
// stream.Output and stream.Input handed to each call.
//
// # Wire stability
//
// TypeID is written on the wire. Once payloads have been produced with a tag
// the tag must keep its meaning. User serializers must use positive tags.
type Serializer interface {
	// TypeID returns the stable type tag of the serializer
	TypeID() int32
	// IsSuitable returns true when the serializer can encode value
	IsSuitable(value any) bool
	// Write encodes value onto out
	Write(out *stream.Output, value any) error
	// Read decodes one value from in
	Read(in *stream.Input) (any, error)
}

// typedSerializer adapts a pair of typed functions into a Serializer
type typedSerializer[T any] struct {
	typeID int32
	write  func(out *stream.Output, value T) error
	read   func(in *stream.Input) (T, error)
}

// enforce compilation error
var _ Serializer = (*typedSerializer[int])(nil)

// NewTypedSerializer creates a Serializer claiming every value of type T.
//
//	point := serialization.NewTypedSerializer(1000,
//	    func(out *stream.Output, p Point) error {
//	        out.WriteInt32(p.X)
//	        out.WriteInt32(p.Y)
//	        return nil
//	    },
//	    func(in *stream.Input) (Point, error) { ... },
//	)
func NewTypedSerializer[T any](typeID int32, write func(out *stream.Output, value T) error, read func(in *stream.Input) (T, error)) Serializer {
	return &typedSerializer[T]{
		typeID: typeID,
		write:  write,
		read:   read,
	}
}

func (s *typedSerializer[T]) TypeID() int32 {
	return s.typeID
}

func (s *typedSerializer[T]) IsSuitable(value any) bool {
	_, ok := value.(T)
	return ok
}

func (s *typedSerializer[T]) Write(out *stream.Output, value any) error {
	typed, ok := value.(T)
	if !ok {
		return gerrors.NewErrUnsupportedType(value)
	}
	return s.write(out, typed)
}

func (s *typedSerializer[T]) Read(in *stream.Input) (any, error) {
	return s.read(in)
}
