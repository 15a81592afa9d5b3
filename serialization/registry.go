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
	"context"
	"errors"
	"fmt"
	"reflect"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/samber/lo"

	gerrors "github.com/tochemey/goserde/errors"
	"github.com/tochemey/goserde/internal/compression"
	"github.com/tochemey/goserde/internal/metric"
	"github.com/tochemey/goserde/internal/types"
	"github.com/tochemey/goserde/log"
	"github.com/tochemey/goserde/schemastore"
	"github.com/tochemey/goserde/stream"
)

// Registry encodes values to Data and decodes Data back to values.
//
// # Dispatch
//
// Encoding picks the first serializer, in registration order, whose
// IsSuitable accepts the value: built-in scalars, then user serializers in the
// order given to WithSerializers, then the portable and collection serializers.
// When none accepts it, Externalizable values use the externalizable adapter
// and types given to WithFallbackTypes use the CBOR fallback. Anything else
// fails with ErrUnsupportedType. Decoding looks the serializer up by type tag.
//
// # Concurrency
//
// A Registry is immutable once built and safe for concurrent use. The only
// state it updates at runtime is the cache of class definitions, which does
// not affect dispatch. Definitions read from payloads are cached only after
// the payload decoded and never replace the schema a local encode records.
// A failed call leaves the registry usable.
type Registry struct {
	logger log.Logger

	serializers    []Serializer
	byTypeID       map[int32]Serializer
	null           Serializer
	portable       *portableSerializer
	externalizable *externalizableSerializer
	fallback       *fallbackSerializer

	types       types.Registry
	factories   map[int32]PortableFactory
	definitions *xsync.MapOf[schemastore.Key, *ClassDefinition]
	declared    *xsync.MapOf[schemastore.Key, *ClassDefinition]
	schemaStore schemastore.Store

	metric *metric.CodecMetric
}

// NewRegistry creates a Registry.
// It fails with ErrDuplicateTagRegistration when two serializers share a tag
// and with ErrInvalidConfig when the options do not validate.
func NewRegistry(opts ...Option) (*Registry, error) {
	config := NewConfig(opts...)
	if err := config.Validate(); err != nil {
		return nil, err
	}

	codecMetric, err := metric.NewCodecMetric(metric.New(metric.WithMeterProvider(config.meterProvider)).Meter())
	if err != nil {
		return nil, err
	}

	typesRegistry := types.NewRegistry()
	for _, value := range builtinTypes {
		typesRegistry.Register(value)
	}
	for _, value := range config.types {
		typesRegistry.Register(value)
	}

	allowed := mapset.NewSet[reflect.Type]()
	for _, value := range config.fallbackTypes {
		if rtype := types.Of(value); rtype != nil {
			typesRegistry.Register(rtype)
			allowed.Add(rtype)
		}
	}

	compressor, err := compression.For(config.compression)
	if err != nil {
		return nil, errors.Join(gerrors.ErrInvalidConfig, err)
	}

	fallback, err := newFallbackSerializer(typesRegistry, allowed, compressor)
	if err != nil {
		return nil, err
	}

	registry := &Registry{
		logger:         config.logger,
		byTypeID:       make(map[int32]Serializer),
		null:           nullSerializer{},
		externalizable: &externalizableSerializer{types: typesRegistry},
		fallback:       fallback,
		types:          typesRegistry,
		factories:      config.factories,
		definitions:    xsync.NewMapOf[schemastore.Key, *ClassDefinition](),
		declared:       xsync.NewMapOf[schemastore.Key, *ClassDefinition](),
		schemaStore:    config.schemaStore,
		metric:         codecMetric,
	}
	registry.portable = &portableSerializer{registry: registry}

	ordered := builtinSerializers(typesRegistry)
	ordered = append(ordered, config.serializers...)
	ordered = append(ordered, registry.portable, &collectionSerializer{registry: registry})
	for _, serializer := range ordered {
		if err := registry.register(serializer); err != nil {
			return nil, err
		}
	}

	// decode-only serializers
	for _, serializer := range []Serializer{registry.null, registry.externalizable, registry.fallback} {
		if err := registry.index(serializer); err != nil {
			return nil, err
		}
	}

	for _, definition := range config.classDefinitions {
		if err := registry.declareClassDefinition(definition); err != nil {
			return nil, err
		}
	}

	registry.logger.Debugf("serialization registry created with %d serializers", len(registry.byTypeID))
	return registry, nil
}

func (r *Registry) register(serializer Serializer) error {
	if err := r.index(serializer); err != nil {
		return err
	}
	r.serializers = append(r.serializers, serializer)
	return nil
}

func (r *Registry) index(serializer Serializer) error {
	typeID := serializer.TypeID()
	if _, ok := r.byTypeID[typeID]; ok {
		return gerrors.NewErrDuplicateTagRegistration(typeID)
	}
	r.byTypeID[typeID] = serializer
	return nil
}

// TypeIDs returns the tags of the dispatch serializers in registration order
func (r *Registry) TypeIDs() []int32 {
	return lo.Map(r.serializers, func(serializer Serializer, _ int) int32 {
		return serializer.TypeID()
	})
}

// ResolveForEncode returns the serializer that encodes value
func (r *Registry) ResolveForEncode(value any) (Serializer, error) {
	if isNil(value) {
		return r.null, nil
	}
	for _, serializer := range r.serializers {
		if serializer.IsSuitable(value) {
			return serializer, nil
		}
	}
	if r.externalizable.IsSuitable(value) {
		return r.externalizable, nil
	}
	if r.fallback.IsSuitable(value) {
		return r.fallback, nil
	}
	return nil, gerrors.NewErrUnsupportedType(value)
}

// ResolveForDecode returns the serializer registered under typeID
func (r *Registry) ResolveForDecode(typeID int32) (Serializer, error) {
	serializer, ok := r.byTypeID[typeID]
	if !ok {
		return nil, gerrors.NewErrUnknownTypeTag(typeID)
	}
	return serializer, nil
}

// ToData encodes value
func (r *Registry) ToData(value any) (Data, error) {
	serializer, err := r.ResolveForEncode(value)
	if err != nil {
		r.recordFailure(metric.EncodeOperation)
		return Data{}, err
	}
	if serializer == r.null {
		return NullData, nil
	}

	out := stream.NewOutput()
	defer out.Release()
	if err := serializer.Write(out, value); err != nil {
		r.recordFailure(metric.EncodeOperation)
		return Data{}, err
	}

	data := Data{typeID: serializer.TypeID(), payload: out.ToBytes()}
	r.metric.RecordEncode(context.Background(), data.typeID, data.Len())
	return data, nil
}

// ToObject decodes data. The decoder must consume the whole payload.
func (r *Registry) ToObject(data Data) (any, error) {
	value, err := r.toObject(data)
	if err != nil {
		r.logger.Debugf("failed to decode payload (type_id=%d): %v", data.typeID, err)
		r.recordFailure(metric.DecodeOperation)
		return nil, err
	}
	r.metric.RecordDecode(context.Background(), data.typeID)
	return value, nil
}

func (r *Registry) toObject(data Data) (any, error) {
	serializer, err := r.ResolveForDecode(data.typeID)
	if err != nil {
		return nil, err
	}

	in := stream.NewInput(data.payload)
	value, err := serializer.Read(in)
	if err != nil {
		return nil, decodeError(err)
	}
	if in.Remaining() > 0 {
		return nil, gerrors.NewErrTrailingBytes(data.typeID, in.Remaining())
	}
	return value, nil
}

// WriteObject encodes value and writes it in framed form onto out
func (r *Registry) WriteObject(out *stream.Output, value any) error {
	data, err := r.ToData(value)
	if err != nil {
		return err
	}
	WriteData(out, data)
	return nil
}

// ReadObject reads a framed Data from in and decodes it
func (r *Registry) ReadObject(in *stream.Input) (any, error) {
	data, err := ReadData(in)
	if err != nil {
		return nil, decodeError(err)
	}
	return r.ToObject(data)
}

// ReadFields decodes the wanted fields of a portable payload into a Record.
//
// Spans of fields that were not asked for are skipped without being decoded.
// A nil schema reads against the schema embedded in the payload; no wanted
// names reads every field of the schema. A wanted name missing from the
// schema or the payload fails with ErrSchemaMismatch and a type disagreement
// between them with ErrFieldTypeMismatch.
func (r *Registry) ReadFields(data Data, schema *ClassDefinition, wanted ...string) (*Record, error) {
	record, err := r.readFields(data, schema, wanted)
	if err != nil {
		r.recordFailure(metric.ReadFieldsOperation)
		return nil, err
	}
	return record, nil
}

func (r *Registry) readFields(data Data, schema *ClassDefinition, wanted []string) (*Record, error) {
	if data.typeID != PortableTypeID {
		return nil, fmt.Errorf("(type_id=%d) not a portable payload: %w", data.typeID, gerrors.ErrSchemaMismatch)
	}

	in := stream.NewInput(data.payload)
	learned := new(learnedDefinitions)
	reader, err := r.portable.newReader(in, learned)
	if err != nil {
		return nil, decodeError(err)
	}
	if in.Remaining() > 0 {
		return nil, gerrors.NewErrTrailingBytes(data.typeID, in.Remaining())
	}

	wire := reader.definition
	if schema == nil {
		schema = wire
	}
	if schema.ClassID() != wire.ClassID() {
		return nil, fmt.Errorf("(class_id=%d, payload_class_id=%d) %w", schema.ClassID(), wire.ClassID(), gerrors.ErrSchemaMismatch)
	}

	if len(wanted) == 0 {
		wanted = schema.FieldNames()
	}

	requested := mapset.NewThreadUnsafeSetWithSize[string](len(wanted))
	record := NewRecord(schema)
	for _, name := range wanted {
		if !requested.Add(name) {
			continue
		}

		field, ok := schema.Field(name)
		if !ok {
			return nil, gerrors.NewErrSchemaMismatch(schema.ClassID(), name)
		}
		wireField, ok := wire.Field(name)
		if !ok {
			return nil, gerrors.NewErrSchemaMismatch(wire.ClassID(), name)
		}
		if wireField.fieldType != field.fieldType {
			return nil, gerrors.NewErrFieldTypeMismatch(name, field.fieldType, wireField.fieldType)
		}

		value, err := reader.decode(wireField)
		if err != nil {
			return nil, decodeError(err)
		}
		if value != nil {
			record.values[name] = value
		}
	}

	if err := r.learnClassDefinitions(*learned); err != nil {
		return nil, err
	}
	return record, nil
}

// ClassDefinitionOf returns the class definition embedded in a portable payload
// without decoding any field
func (r *Registry) ClassDefinitionOf(data Data) (*ClassDefinition, error) {
	if data.typeID != PortableTypeID {
		return nil, fmt.Errorf("(type_id=%d) not a portable payload: %w", data.typeID, gerrors.ErrSchemaMismatch)
	}
	definition, err := readClassDefinition(stream.NewInput(data.payload))
	if err != nil {
		return nil, decodeError(err)
	}
	return definition, nil
}

// ClassDefinition returns the definition of classID at version from the
// cache or the schema store. It fails with ErrSchemaMismatch when neither knows it.
func (r *Registry) ClassDefinition(ctx context.Context, classID, version int32) (*ClassDefinition, error) {
	definition, ok, err := r.loadClassDefinition(ctx, classID, version)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("(class_id=%d, version=%d) class definition not found: %w", classID, version, gerrors.ErrSchemaMismatch)
	}
	return definition, nil
}

func (r *Registry) loadClassDefinition(ctx context.Context, classID, version int32) (*ClassDefinition, bool, error) {
	key := schemastore.Key{ClassID: classID, Version: version}
	if definition, ok := r.declared.Load(key); ok {
		return definition, true, nil
	}
	if definition, ok := r.definitions.Load(key); ok {
		return definition, true, nil
	}
	if r.schemaStore == nil {
		return nil, false, nil
	}

	bytea, ok, err := r.schemaStore.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	definition, err := UnmarshalClassDefinition(bytea)
	if err != nil {
		return nil, false, err
	}
	definition, _ = r.definitions.LoadOrStore(key, definition)
	return definition, true, nil
}

// rememberClassDefinition caches definition and writes it through to the schema store
func (r *Registry) rememberClassDefinition(definition *ClassDefinition) error {
	key := schemastore.Key{ClassID: definition.ClassID(), Version: definition.Version()}
	if _, ok := r.definitions.Load(key); ok {
		return nil
	}

	if r.schemaStore != nil {
		bytea, err := definition.MarshalBinary()
		if err != nil {
			return err
		}
		if err := r.schemaStore.Put(context.Background(), key, bytea); err != nil {
			return err
		}
	}

	if _, loaded := r.definitions.LoadOrStore(key, definition); !loaded {
		r.logger.Debugf("learned class definition (class_id=%d, version=%d)", key.ClassID, key.Version)
	}
	return nil
}

// declareClassDefinition records definition as the schema local encodes of its class use
func (r *Registry) declareClassDefinition(definition *ClassDefinition) error {
	if err := r.rememberClassDefinition(definition); err != nil {
		return err
	}
	r.declared.LoadOrStore(schemastore.Key{ClassID: definition.ClassID(), Version: definition.Version()}, definition)
	return nil
}

// learnClassDefinitions remembers the definitions read from a decoded payload
func (r *Registry) learnClassDefinitions(definitions []*ClassDefinition) error {
	for _, definition := range definitions {
		if err := r.rememberClassDefinition(definition); err != nil {
			return err
		}
	}
	return nil
}

// newPortable returns an empty value of classID, or a *Record without a factory
func (r *Registry) newPortable(classID int32) (Portable, error) {
	factory, ok := r.factories[classID]
	if !ok {
		return new(Record), nil
	}
	portable := factory()
	if isNil(portable) {
		return nil, fmt.Errorf("(class_id=%d) portable factory returned nil: %w", classID, gerrors.ErrTypeNotFound)
	}
	return portable, nil
}

func (r *Registry) recordFailure(operation metric.Operation) {
	r.metric.RecordFailure(context.Background(), operation)
}

// decodeError tags truncation failures as corrupt payloads
func decodeError(err error) error {
	if errors.Is(err, gerrors.ErrEndOfInput) {
		return gerrors.NewErrCorruptPayload(err)
	}
	return err
}

// isNil returns true for nil and nil pointers
func isNil(value any) bool {
	if value == nil {
		return true
	}
	rvalue := reflect.ValueOf(value)
	return rvalue.Kind() == reflect.Pointer && rvalue.IsNil()
}
