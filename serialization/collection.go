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
	"strings"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	gerrors "github.com/tochemey/goserde/errors"
	"github.com/tochemey/goserde/internal/metric"
	"github.com/tochemey/goserde/stream"
)

// ContainerKind is the kind of container a collection envelope rebuilds
type ContainerKind int

const (
	// ContainerList keeps every element in order
	ContainerList ContainerKind = iota
	// ContainerSet keeps one element per distinct encoded value
	ContainerSet
)

// String returns the wire name of the kind
func (k ContainerKind) String() string {
	switch k {
	case ContainerList:
		return "LIST"
	case ContainerSet:
		return "SET"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(k))
	}
}

// ParseContainerKind returns the kind matching a wire name
func ParseContainerKind(name string) (ContainerKind, error) {
	switch strings.ToUpper(name) {
	case "LIST":
		return ContainerList, nil
	case "SET":
		return ContainerSet, nil
	default:
		return ContainerList, fmt.Errorf("(container_kind=%s) %w", name, gerrors.ErrCorruptPayload)
	}
}

// Container is a materialized collection
type Container struct {
	kind   ContainerKind
	values []any
}

// Kind returns the container kind
func (c *Container) Kind() ContainerKind { return c.kind }

// Len returns the number of elements
func (c *Container) Len() int { return len(c.values) }

// Values returns a copy of the elements.
// A LIST keeps the encoding order; a SET keeps the first occurrence of each element.
func (c *Container) Values() []any {
	return append([]any(nil), c.values...)
}

// CollectionEnvelope bundles a collection of values with the kind of container
// to rebuild on the receiving side.
//
// Frame layout:
//
//	UTF kind | bool binary | int32 count (-1 when unset) | count framed Data
//
// A binary envelope carries Data elements that the receiver keeps as Data.
// Otherwise the receiver decodes every element on first materialization and
// caches the result.
type CollectionEnvelope struct {
	kind   ContainerKind
	binary bool
	// values holds live elements of an envelope built locally and not yet encoded
	values []any
	// elements holds the encoded elements; nil with unset values denotes count -1
	elements []Data
	unset    bool

	mu           sync.Mutex
	materialized *Container
}

// NewCollection creates an envelope over values.
//
// When binary is true every value must be a Data and fails with ErrUnsupportedType otherwise.
// When binary is false values are kept live and encoded when the envelope is written.
// A nil values slice is written with the -1 count.
func NewCollection(kind ContainerKind, values []any, binary bool) (*CollectionEnvelope, error) {
	envelope := &CollectionEnvelope{
		kind:   kind,
		binary: binary,
		unset:  values == nil,
	}

	if !binary {
		envelope.values = append([]any(nil), values...)
		return envelope, nil
	}

	elements := make([]Data, 0, len(values))
	for _, value := range values {
		data, ok := value.(Data)
		if !ok {
			return nil, gerrors.NewErrUnsupportedType(value)
		}
		elements = append(elements, data)
	}
	envelope.elements = elements
	return envelope, nil
}

// EncodeCollection creates an envelope and encodes every non-binary value right away.
// Any value the registry cannot encode fails the call with ErrUnsupportedType.
func EncodeCollection(registry *Registry, kind ContainerKind, values []any, binary bool) (*CollectionEnvelope, error) {
	envelope, err := NewCollection(kind, values, binary)
	if err != nil || binary {
		return envelope, err
	}

	elements, err := envelope.encodeValues(registry)
	if err != nil {
		return nil, err
	}
	envelope.elements = elements
	envelope.values = nil
	return envelope, nil
}

// Kind returns the container kind
func (e *CollectionEnvelope) Kind() ContainerKind { return e.kind }

// IsBinary returns true when the elements are kept as Data
func (e *CollectionEnvelope) IsBinary() bool { return e.binary }

// Count returns the element count written on the wire, -1 when unset
func (e *CollectionEnvelope) Count() int {
	switch {
	case e.unset:
		return int(stream.NullLength)
	case e.values != nil:
		return len(e.values)
	default:
		return len(e.elements)
	}
}

// Materialize returns the container of the envelope.
//
// Elements are decoded on the first successful call and the result is cached;
// later calls return the cached container. A failed element is reported as an
// *errors.ElementError carrying its index and the failure is not cached.
// Live values of either kind must be encodable by registry.
func (e *CollectionEnvelope) Materialize(registry *Registry) (*Container, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.materialized != nil {
		return e.materialized, nil
	}

	container, err := e.materialize(registry)
	if err != nil {
		registry.recordFailure(metric.MaterializeOperation)
		return nil, err
	}
	e.materialized = container
	return container, nil
}

func (e *CollectionEnvelope) materialize(registry *Registry) (*Container, error) {
	container := &Container{kind: e.kind}
	if e.unset {
		container.values = []any{}
		return container, nil
	}

	// live values of either kind must encode; a set collapses duplicates by their encoding
	if e.values != nil {
		elements, err := e.encodeValues(registry)
		if err != nil {
			return nil, err
		}
		if e.kind == ContainerList {
			container.values = append([]any(nil), e.values...)
			return container, nil
		}
		keep := distinct(elements)
		container.values = make([]any, 0, len(keep))
		for _, index := range keep {
			container.values = append(container.values, e.values[index])
		}
		return container, nil
	}

	indexes := make([]int, 0, len(e.elements))
	if e.kind == ContainerSet {
		indexes = distinct(e.elements)
	} else {
		for index := range e.elements {
			indexes = append(indexes, index)
		}
	}

	container.values = make([]any, 0, len(indexes))
	for _, index := range indexes {
		if e.binary {
			container.values = append(container.values, e.elements[index])
			continue
		}
		value, err := registry.ToObject(e.elements[index])
		if err != nil {
			return nil, gerrors.NewElementError(index, err)
		}
		container.values = append(container.values, value)
	}
	return container, nil
}

func (e *CollectionEnvelope) encodeValues(registry *Registry) ([]Data, error) {
	elements := make([]Data, 0, len(e.values))
	for index, value := range e.values {
		data, err := registry.ToData(value)
		if err != nil {
			return nil, fmt.Errorf("(element=%d) %w", index, err)
		}
		elements = append(elements, data)
	}
	return elements, nil
}

// distinct returns the indexes of the first occurrence of each distinct element
func distinct(elements []Data) []int {
	seen := mapset.NewThreadUnsafeSetWithSize[string](len(elements))
	indexes := make([]int, 0, len(elements))
	for index, element := range elements {
		framed, _ := element.MarshalBinary()
		if seen.Add(string(framed)) {
			indexes = append(indexes, index)
		}
	}
	return indexes
}

// collectionSerializer encodes *CollectionEnvelope values
type collectionSerializer struct {
	registry *Registry
}

// enforce compilation error
var _ Serializer = (*collectionSerializer)(nil)

func (s *collectionSerializer) TypeID() int32 { return CollectionTypeID }

func (s *collectionSerializer) IsSuitable(value any) bool {
	_, ok := value.(*CollectionEnvelope)
	return ok
}

func (s *collectionSerializer) Write(out *stream.Output, value any) error {
	envelope, ok := value.(*CollectionEnvelope)
	if !ok || envelope == nil {
		return gerrors.NewErrUnsupportedType(value)
	}

	elements := envelope.elements
	if envelope.values != nil {
		var err error
		if elements, err = envelope.encodeValues(s.registry); err != nil {
			return err
		}
	}

	out.WriteUTF(envelope.kind.String())
	out.WriteBool(envelope.binary)
	if envelope.unset {
		out.WriteInt32(stream.NullLength)
		return nil
	}

	out.WriteInt32(int32(len(elements)))
	for _, element := range elements {
		WriteData(out, element)
	}
	return nil
}

func (s *collectionSerializer) Read(in *stream.Input) (any, error) {
	name, err := in.ReadUTF()
	if err != nil {
		return nil, err
	}
	kind, err := ParseContainerKind(name)
	if err != nil {
		return nil, err
	}
	binary, err := in.ReadBool()
	if err != nil {
		return nil, err
	}
	count, err := in.ReadInt32()
	if err != nil {
		return nil, err
	}

	envelope := &CollectionEnvelope{kind: kind, binary: binary}
	if count == stream.NullLength {
		envelope.unset = true
		return envelope, nil
	}
	// every element takes at least its frame header
	if count < 0 || int(count) > in.Remaining()/frameHeaderSize {
		return nil, fmt.Errorf("(count=%d, available=%d) %w", count, in.Remaining(), gerrors.ErrCorruptPayload)
	}

	envelope.elements = make([]Data, 0, count)
	for index := range int(count) {
		element, err := ReadData(in)
		if err != nil {
			return nil, gerrors.NewElementError(index, err)
		}
		envelope.elements = append(envelope.elements, element)
	}
	return envelope, nil
}
