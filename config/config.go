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

// Package config loads the configuration of a serialization registry from a
// YAML, TOML or JSON file and GOSERDE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"

	gerrors "github.com/tochemey/goserde/errors"
	"github.com/tochemey/goserde/internal/validation"
	"github.com/tochemey/goserde/log"
	"github.com/tochemey/goserde/schemastore"
	"github.com/tochemey/goserde/serialization"
)

// EnvPrefix is the prefix of the environment variables read by Load
const EnvPrefix = "goserde"

const (
	// StoreNone disables schema persistence
	StoreNone = "none"
	// StoreMemory keeps learned class definitions in memory
	StoreMemory = "memory"
	// StoreBolt persists learned class definitions in a bbolt file
	StoreBolt = "bolt"
)

const (
	keyLogLevel        = "log_level"
	keyCompression     = "compression"
	keySchemaStoreKind = "schema_store.kind"
	keySchemaStorePath = "schema_store.path"
)

// Config is the file and environment configuration of a registry
type Config struct {
	// LogLevel is one of debug, info, warn or error. The default is info.
	LogLevel string `mapstructure:"log_level"`
	// Compression is the fallback compression: none, gzip, zstd or brotli
	Compression string `mapstructure:"compression"`
	// SchemaStore configures where learned class definitions are kept
	SchemaStore SchemaStore `mapstructure:"schema_store"`
}

// SchemaStore configures the schema store
type SchemaStore struct {
	// Kind is one of none, memory or bolt. The default is memory.
	Kind string `mapstructure:"kind"`
	// Path is the bbolt file. Required for the bolt kind.
	Path string `mapstructure:"path"`
}

// enforce compilation error
var _ validation.Validator = (*Config)(nil)

// Default returns the default configuration
func Default() *Config {
	return &Config{
		LogLevel:    log.InfoLevel.String(),
		Compression: serialization.NoCompression.String(),
		SchemaStore: SchemaStore{Kind: StoreMemory},
	}
}

// Load reads the configuration file at path, when set, and overlays the
// GOSERDE_* environment variables, e.g. GOSERDE_SCHEMA_STORE_KIND.
// The file format is derived from its extension.
func Load(path string) (*Config, error) {
	v := viper.New()
	defaults := Default()
	v.SetDefault(keyLogLevel, defaults.LogLevel)
	v.SetDefault(keyCompression, defaults.Compression)
	v.SetDefault(keySchemaStoreKind, defaults.SchemaStore.Kind)
	v.SetDefault(keySchemaStorePath, defaults.SchemaStore.Path)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file=(%s): %w", path, err)
		}
	}

	config := new(Config)
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	chain := validation.
		New(validation.AllErrors()).
		AddValidator(validation.NewOneOfValidator(keyLogLevel, c.LogLevel, "", "debug", "info", "warn", "warning", "error")).
		AddValidator(validation.NewOneOfValidator(keyCompression, c.Compression, "", "none", "gzip", "zstd", "brotli", "br")).
		AddValidator(validation.NewOneOfValidator(keySchemaStoreKind, c.SchemaStore.Kind, StoreNone, StoreMemory, StoreBolt))

	if strings.EqualFold(strings.TrimSpace(c.SchemaStore.Kind), StoreBolt) {
		chain = chain.AddValidator(validation.NewEmptyStringValidator(keySchemaStorePath, c.SchemaStore.Path))
	}

	if err := chain.Validate(); err != nil {
		return errors.Join(gerrors.ErrInvalidConfig, err)
	}
	return nil
}

// OpenSchemaStore opens the configured schema store.
// It returns nil when persistence is disabled; the caller closes the store.
func (c *Config) OpenSchemaStore() (schemastore.Store, error) {
	switch strings.ToLower(strings.TrimSpace(c.SchemaStore.Kind)) {
	case StoreNone:
		return nil, nil
	case StoreMemory:
		return schemastore.NewMemoryStore(), nil
	case StoreBolt:
		return schemastore.NewBoltStore(c.SchemaStore.Path)
	default:
		return nil, fmt.Errorf("(schema_store.kind=%s) %w", c.SchemaStore.Kind, gerrors.ErrInvalidConfig)
	}
}

// Options returns the registry options matching the configuration.
// The logger writes to writers, or to stdout when none is given.
// store is the value returned by OpenSchemaStore.
func (c *Config) Options(store schemastore.Store, writers ...io.Writer) ([]serialization.Option, error) {
	kind, err := serialization.ParseCompression(c.Compression)
	if err != nil {
		return nil, errors.Join(gerrors.ErrInvalidConfig, err)
	}

	level := log.ParseLevel(c.LogLevel)
	if level == log.InvalidLevel {
		return nil, fmt.Errorf("(log_level=%s) %w", c.LogLevel, gerrors.ErrInvalidConfig)
	}

	if len(writers) == 0 {
		writers = []io.Writer{os.Stdout}
	}

	opts := []serialization.Option{
		serialization.WithLogger(log.NewZap(level, writers...)),
		serialization.WithCompression(kind),
	}
	if store != nil {
		opts = append(opts, serialization.WithSchemaStore(store))
	}
	return opts, nil
}

// NewRegistry opens the schema store and creates a registry with the
// configuration applied before extra. The returned store may be nil.
func (c *Config) NewRegistry(writers []io.Writer, extra ...serialization.Option) (*serialization.Registry, schemastore.Store, error) {
	store, err := c.OpenSchemaStore()
	if err != nil {
		return nil, nil, err
	}

	opts, err := c.Options(store, writers...)
	if err != nil {
		closeStore(store)
		return nil, nil, err
	}

	registry, err := serialization.NewRegistry(append(opts, extra...)...)
	if err != nil {
		closeStore(store)
		return nil, nil, err
	}
	return registry, store, nil
}

func closeStore(store schemastore.Store) {
	if store != nil {
		_ = store.Close()
	}
}
