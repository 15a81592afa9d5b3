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

package config

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/goserde/errors"
	"github.com/tochemey/goserde/schemastore"
	"github.com/tochemey/goserde/serialization"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("With defaults", func(t *testing.T) {
		config, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), config)
	})
	t.Run("With YAML file", func(t *testing.T) {
		path := writeFile(t, "goserde.yaml", `
log_level: debug
compression: zstd
schema_store:
  kind: bolt
  path: /tmp/schemas.db
`)
		config, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", config.LogLevel)
		assert.Equal(t, "zstd", config.Compression)
		assert.Equal(t, StoreBolt, config.SchemaStore.Kind)
		assert.Equal(t, "/tmp/schemas.db", config.SchemaStore.Path)
	})
	t.Run("With TOML file", func(t *testing.T) {
		path := writeFile(t, "goserde.toml", `
compression = "gzip"

[schema_store]
kind = "none"
`)
		config, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "info", config.LogLevel)
		assert.Equal(t, "gzip", config.Compression)
		assert.Equal(t, StoreNone, config.SchemaStore.Kind)
	})
	t.Run("With JSON file", func(t *testing.T) {
		path := writeFile(t, "goserde.json", `{"compression": "brotli", "schema_store": {"kind": "memory"}}`)
		config, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "brotli", config.Compression)
		assert.Equal(t, StoreMemory, config.SchemaStore.Kind)
	})
	t.Run("With environment overriding the file", func(t *testing.T) {
		t.Setenv("GOSERDE_COMPRESSION", "gzip")
		t.Setenv("GOSERDE_SCHEMA_STORE_KIND", "none")
		path := writeFile(t, "goserde.yaml", "compression: zstd\n")
		config, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "gzip", config.Compression)
		assert.Equal(t, StoreNone, config.SchemaStore.Kind)
	})
	t.Run("With missing file", func(t *testing.T) {
		config, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Nil(t, config)
	})
	t.Run("With invalid values", func(t *testing.T) {
		path := writeFile(t, "goserde.yaml", `
log_level: verbose
compression: lz4
schema_store:
  kind: bolt
`)
		config, err := Load(path)
		require.Error(t, err)
		assert.Nil(t, config)
		assert.ErrorIs(t, err, gerrors.ErrInvalidConfig)
		assert.ErrorContains(t, err, "log_level")
		assert.ErrorContains(t, err, "compression")
		assert.ErrorContains(t, err, "schema_store.path")
	})
}

func TestNewRegistry(t *testing.T) {
	t.Run("With bolt store", func(t *testing.T) {
		config := Default()
		config.LogLevel = "debug"
		config.Compression = "zstd"
		config.SchemaStore = SchemaStore{Kind: StoreBolt, Path: filepath.Join(t.TempDir(), "schemas.db")}

		buffer := new(bytes.Buffer)
		registry, store, err := config.NewRegistry([]io.Writer{buffer})
		require.NoError(t, err)
		require.NotNil(t, registry)
		require.IsType(t, new(schemastore.BoltStore), store)
		t.Cleanup(func() { _ = store.Close() })
		assert.Contains(t, buffer.String(), "serialization registry created")

		definition, err := serialization.NewClassDefinitionBuilder(7, 1).AddUTFField("name").Build()
		require.NoError(t, err)
		record := serialization.NewRecord(definition)
		require.NoError(t, record.Set("name", "John"))

		data, err := registry.ToData(record)
		require.NoError(t, err)
		_, err = registry.ToObject(data)
		require.NoError(t, err)

		keys, err := store.Keys(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []schemastore.Key{{ClassID: 7, Version: 1}}, keys)
	})
	t.Run("With no store", func(t *testing.T) {
		config := Default()
		config.SchemaStore.Kind = StoreNone
		registry, store, err := config.NewRegistry(nil)
		require.NoError(t, err)
		assert.NotNil(t, registry)
		assert.Nil(t, store)
	})
	t.Run("With memory store", func(t *testing.T) {
		registry, store, err := Default().NewRegistry([]io.Writer{io.Discard})
		require.NoError(t, err)
		assert.NotNil(t, registry)
		assert.IsType(t, new(schemastore.MemoryStore), store)
		require.NoError(t, store.Close())
	})
	t.Run("With invalid compression", func(t *testing.T) {
		config := Default()
		config.Compression = "lz4"
		registry, store, err := config.NewRegistry(nil)
		require.ErrorIs(t, err, gerrors.ErrInvalidConfig)
		assert.Nil(t, registry)
		assert.Nil(t, store)
	})
	t.Run("With invalid log level", func(t *testing.T) {
		config := Default()
		config.LogLevel = "verbose"
		_, err := config.Options(nil)
		assert.ErrorIs(t, err, gerrors.ErrInvalidConfig)
	})
	t.Run("With unknown store kind", func(t *testing.T) {
		config := Default()
		config.SchemaStore.Kind = "redis"
		_, err := config.OpenSchemaStore()
		assert.ErrorIs(t, err, gerrors.ErrInvalidConfig)
	})
}
