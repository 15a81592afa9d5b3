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
	"errors"
	"fmt"

	otelmetric "go.opentelemetry.io/otel/metric"

	gerrors "github.com/tochemey/goserde/errors"
	"github.com/tochemey/goserde/internal/validation"
	"github.com/tochemey/goserde/log"
	"github.com/tochemey/goserde/schemastore"
)

// Config holds the registry configuration
type Config struct {
	logger           log.Logger
	meterProvider    otelmetric.MeterProvider
	compression      Compression
	serializers      []Serializer
	factories        map[int32]PortableFactory
	classDefinitions []*ClassDefinition
	schemaStore      schemastore.Store
	types            []any
	fallbackTypes    []any
}

// enforce compilation error
var _ validation.Validator = (*Config)(nil)

// NewConfig creates a Config with the given options applied over the defaults
func NewConfig(opts ...Option) *Config {
	config := DefaultConfig()
	for _, opt := range opts {
		opt.Apply(config)
	}
	return config
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		logger:      log.DiscardLogger,
		compression: NoCompression,
		factories:   make(map[int32]PortableFactory),
	}
}

// Logger returns the logger
func (x *Config) Logger() log.Logger {
	return x.logger
}

// Compression returns the fallback compression
func (x *Config) Compression() Compression {
	return x.compression
}

// Serializers returns the user serializers
func (x *Config) Serializers() []Serializer {
	return append([]Serializer(nil), x.serializers...)
}

// SchemaStore returns the schema store or nil
func (x *Config) SchemaStore() schemastore.Store {
	return x.schemaStore
}

// Validate checks the configuration
func (x *Config) Validate() error {
	chain := validation.New(validation.AllErrors()).
		AddAssertion(x.logger != nil, "logger is required").
		AddValidator(validation.NewOneOfValidator("compression", x.compression.String(), "none", "gzip", "zstd", "brotli"))

	for _, serializer := range x.serializers {
		if serializer == nil {
			chain.AddAssertion(false, "serializer is nil")
			continue
		}
		chain.AddValidator(validation.NewTypeIDValidator(serializer.TypeID()))
	}

	for classID, factory := range x.factories {
		chain.AddAssertion(factory != nil, fmt.Sprintf("portable factory of class_id=%d is nil", classID))
	}

	for _, definition := range x.classDefinitions {
		chain.AddAssertion(definition != nil, "class definition is nil")
	}

	if err := chain.Validate(); err != nil {
		return errors.Join(gerrors.ErrInvalidConfig, err)
	}
	return nil
}
