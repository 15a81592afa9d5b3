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

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLogger(t *testing.T) {
	t.Run("With unknown level falls back to debug", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(Level(42), buffer)
		require.Equal(t, DebugLevel, logger.LogLevel())

		logger.Debug("test debug")
		require.NoError(t, logger.Flush())

		msg, lvl := extract(t, buffer.Bytes())
		assert.Equal(t, "test debug", msg)
		assert.Equal(t, DebugLevel.String(), lvl)
	})

	t.Run("With info level drops debug", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.Debugf("decoded %d bytes", 12)
		assert.Empty(t, buffer.Bytes())
		assert.False(t, logger.Enabled(DebugLevel))
		assert.True(t, logger.Enabled(ErrorLevel))

		logger.Infof("registry built with %d serializers", 14)
		msg, lvl := extract(t, buffer.Bytes())
		assert.Equal(t, "registry built with 14 serializers", msg)
		assert.Equal(t, InfoLevel.String(), lvl)
	})

	t.Run("With warn and error", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(WarningLevel, buffer)
		logger.Warn("careful")
		msg, lvl := extract(t, buffer.Bytes())
		assert.Equal(t, "careful", msg)
		assert.Equal(t, "warn", lvl)

		buffer.Reset()
		logger.Errorf("failed %s", "decode")
		msg, lvl = extract(t, buffer.Bytes())
		assert.Equal(t, "failed decode", msg)
		assert.Equal(t, "error", lvl)
		assert.Equal(t, WarningLevel, logger.LogLevel())
		assert.Len(t, logger.LogOutput(), 1)
	})
}

func TestLogWith(t *testing.T) {
	t.Run("Adds structured fields to output", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("type_id", int32(-11), "codec", "string").Info("decoded")

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &m))
		require.Contains(t, m, "type_id")
		require.Contains(t, m, "codec")
	})

	t.Run("Returns same logger when keyValues empty", func(t *testing.T) {
		logger := NewZap(InfoLevel, new(bytes.Buffer))
		assert.Equal(t, logger, logger.With())
	})

	t.Run("Orphan value is logged under underscore", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("a", 1, "orphan").Info("msg")

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &m))
		require.Contains(t, m, "a")
		require.Contains(t, m, "_")
	})

	t.Run("Skips non-string keys", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With(42, "ignored", "k", "v").Info("msg")

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &m))
		require.Contains(t, m, "k")
		require.NotContains(t, m, "42")
	})

	t.Run("More than inline fields", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("a", 1, "b", 2, "c", 3, "d", 4, "e", 5, "f", 6, "g", 7).Info("msg")

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &m))
		require.Contains(t, m, "a")
		require.Contains(t, m, "g")
	})
}

func TestDiscardLogger(t *testing.T) {
	DiscardLogger.Debug("x")
	DiscardLogger.Infof("%d", 1)
	DiscardLogger.Error("x")
	assert.Equal(t, DiscardLogger, DiscardLogger.With("k", "v"))
	assert.False(t, DiscardLogger.Enabled(ErrorLevel))
	assert.Equal(t, InfoLevel, DiscardLogger.LogLevel())
	assert.Len(t, DiscardLogger.LogOutput(), 1)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, InfoLevel, ParseLevel(""))
	assert.Equal(t, WarningLevel, ParseLevel("warning"))
	assert.Equal(t, ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, InvalidLevel, ParseLevel("verbose"))
	assert.Equal(t, "invalid", InvalidLevel.String())
}

func extract(t *testing.T, raw []byte) (string, string) {
	t.Helper()
	var entry struct {
		Msg   string `json:"msg"`
		Level string `json:"level"`
	}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(raw), &entry))
	return entry.Msg, entry.Level
}
