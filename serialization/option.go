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
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/tochemey/goserde/internal/compression"
	"github.com/tochemey/goserde/log"
	"github.com/tochemey/goserde/schemastore"
)

// Compression is the transform applied to fallback payloads
type Compression = compression.Kind

const (
	NoCompression     = compression.NoCompression
	GzipCompression   = compression.Gzip
	ZstdCompression   = compression.Zstd
	BrotliCompression = compression.Brotli
)

// ParseCompression returns the compression matching name: none, gzip, zstd or brotli
func ParseCompression(name string) (Compression, error) {
	return compression.ParseKind(name)
}

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(*Config)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(config *Config)

func (f OptionFunc) Apply(c *Config) {
	f(c)
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(config *Config) {
		config.logger = logger
	})
}

// WithMeterProvider sets the OpenTelemetry meter provider used for the codec metrics.
// The global provider is used by default.
func WithMeterProvider(provider otelmetric.MeterProvider) Option {
	return OptionFunc(func(config *Config) {
		config.meterProvider = provider
	})
}

// WithCompression sets the compression applied to fallback payloads.
// Payloads carry their compression so any registry decodes them.
func WithCompression(kind Compression) Option {
	return OptionFunc(func(config *Config) {
		config.compression = kind
	})
}

// WithSerializers appends user serializers. They are consulted after the
// built-in scalars, in the order given, and must use positive type tags.
func WithSerializers(serializers ...Serializer) Option {
	return OptionFunc(func(config *Config) {
		config.serializers = append(config.serializers, serializers...)
	})
}

// WithPortableFactory registers the factory of a portable class.
// Without a factory, values of the class decode to *Record.
func WithPortableFactory(classID int32, factory PortableFactory) Option {
	return OptionFunc(func(config *Config) {
		config.factories[classID] = factory
	})
}

// WithClassDefinitions declares portable schemas up front.
// Undeclared schemas are derived from the first value encoded.
func WithClassDefinitions(definitions ...*ClassDefinition) Option {
	return OptionFunc(func(config *Config) {
		config.classDefinitions = append(config.classDefinitions, definitions...)
	})
}

// WithSchemaStore sets the store class definitions are persisted to and loaded from
func WithSchemaStore(store schemastore.Store) Option {
	return OptionFunc(func(config *Config) {
		config.schemaStore = store
	})
}

// WithTypes registers types that payloads may reference by name:
// type references and Externalizable values. Pass a value of each type,
// typically a pointer to the zero value.
func WithTypes(values ...any) Option {
	return OptionFunc(func(config *Config) {
		config.types = append(config.types, values...)
	})
}

// WithFallbackTypes registers types that no serializer handles and that
// should be encoded with the CBOR fallback. Values of any other unhandled
// type fail with ErrUnsupportedType.
func WithFallbackTypes(values ...any) Option {
	return OptionFunc(func(config *Config) {
		config.fallbackTypes = append(config.fallbackTypes, values...)
	})
}
