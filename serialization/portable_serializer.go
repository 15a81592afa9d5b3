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
	"github.com/tochemey/goserde/schemastore"
	"github.com/tochemey/goserde/stream"
)

// portableSerializer encodes Portable values.
//
// Frame layout:
//
//	class definition | for each field in index order: bytes(field payload) or -1 when unset
//
// Each field payload is length-prefixed so readers skip unrequested fields without decoding them.
type portableSerializer struct {
	registry *Registry
}

// enforce compilation error
var _ Serializer = (*portableSerializer)(nil)

func (s *portableSerializer) TypeID() int32 { return PortableTypeID }

func (s *portableSerializer) IsSuitable(value any) bool {
	_, ok := value.(Portable)
	return ok
}

func (s *portableSerializer) Write(out *stream.Output, value any) error {
	portable, ok := value.(Portable)
	if !ok {
		return gerrors.NewErrUnsupportedType(value)
	}
	return s.writePortable(out, portable)
}

func (s *portableSerializer) Read(in *stream.Input) (any, error) {
	learned := new(learnedDefinitions)
	portable, err := s.readPortable(in, learned)
	if err != nil {
		return nil, err
	}
	if in.Remaining() > 0 {
		return nil, gerrors.NewErrTrailingBytes(PortableTypeID, in.Remaining())
	}
	if err := s.registry.learnClassDefinitions(*learned); err != nil {
		return nil, err
	}
	return portable, nil
}

// learnedDefinitions collects the class definitions met while decoding one payload.
// They are remembered only once the whole payload decoded.
type learnedDefinitions []*ClassDefinition

func (s *portableSerializer) writePortable(out *stream.Output, portable Portable) error {
	definition, err := s.definitionOf(portable)
	if err != nil {
		return err
	}

	var writer *portableWriter
	if definition != nil {
		writer = newPortableWriter(s, definition)
		if err := portable.WritePortable(writer); err != nil {
			return err
		}
	} else {
		writer = newRecordingWriter(s, portable.ClassID(), versionOf(portable))
		if err := portable.WritePortable(writer); err != nil {
			return err
		}
		if definition, err = writer.build(); err != nil {
			return err
		}
		if err := s.registry.declareClassDefinition(definition); err != nil {
			return err
		}
	}

	if err := definition.writeTo(out); err != nil {
		return err
	}
	for _, slot := range writer.slots {
		out.WriteBytes(slot)
	}
	return nil
}

// definitionOf returns the declared or recorded definition of portable, or nil when it must be derived.
// Definitions learned from payloads never shape a local encode.
func (s *portableSerializer) definitionOf(portable Portable) (*ClassDefinition, error) {
	if carrier, ok := portable.(classDefinitionCarrier); ok && carrier.ClassDefinition() != nil {
		return carrier.ClassDefinition(), nil
	}
	definition, _ := s.registry.declared.Load(schemastore.Key{ClassID: portable.ClassID(), Version: versionOf(portable)})
	return definition, nil
}

func (s *portableSerializer) readPortable(in *stream.Input, learned *learnedDefinitions) (Portable, error) {
	reader, err := s.newReader(in, learned)
	if err != nil {
		return nil, err
	}

	portable, err := s.registry.newPortable(reader.definition.ClassID())
	if err != nil {
		return nil, err
	}
	if err := portable.ReadPortable(reader); err != nil {
		return nil, err
	}
	return portable, nil
}

// newReader reads the class definition and the field spans without decoding any field
func (s *portableSerializer) newReader(in *stream.Input, learned *learnedDefinitions) (*portableReader, error) {
	definition, err := readClassDefinition(in)
	if err != nil {
		return nil, err
	}

	spans := make([][]byte, definition.FieldCount())
	for i := range spans {
		if spans[i], err = in.ReadSlice(); err != nil {
			return nil, fmt.Errorf("(class_id=%d, index=%d) %w", definition.ClassID(), i, err)
		}
	}

	*learned = append(*learned, definition)
	return &portableReader{
		serializer: s,
		definition: definition,
		spans:      spans,
		learned:    learned,
	}, nil
}
