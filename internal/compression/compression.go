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

// Package compression provides the payload compressors used by the fallback serializer.
package compression

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Kind identifies a compression algorithm
type Kind int

const (
	// NoCompression leaves payloads untouched
	NoCompression Kind = iota
	// Gzip uses gzip compression
	Gzip
	// Zstd uses Zstandard compression
	Zstd
	// Brotli uses brotli compression
	Brotli
)

// maxDecodedSize bounds the size of a decompressed payload
const maxDecodedSize = 64 << 20

// ErrPayloadTooLarge is returned when a decompressed payload exceeds the allowed size
var ErrPayloadTooLarge = errors.New("decompressed payload too large")

// String returns the configuration name of the kind
func (k Kind) String() string {
	switch k {
	case NoCompression:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case Brotli:
		return "brotli"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ParseKind returns the kind matching name
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return NoCompression, nil
	case "gzip":
		return Gzip, nil
	case "zstd":
		return Zstd, nil
	case "brotli", "br":
		return Brotli, nil
	default:
		return NoCompression, fmt.Errorf("unknown compression: %q", name)
	}
}

// Compressor compresses and decompresses whole payloads.
// Implementations are safe for concurrent use.
type Compressor interface {
	// Kind returns the compressor algorithm
	Kind() Kind
	// Compress returns the compressed form of src
	Compress(src []byte) ([]byte, error)
	// Decompress returns the original form of src
	Decompress(src []byte) ([]byte, error)
}

// New returns the Compressor for kind
func New(kind Kind) (Compressor, error) {
	switch kind {
	case NoCompression:
		return noop{}, nil
	case Gzip:
		return newGzip(), nil
	case Zstd:
		return newZstd()
	case Brotli:
		return newBrotli(DefaultBrotliLevel), nil
	default:
		return nil, fmt.Errorf("unknown compression: %s", kind)
	}
}

var (
	shared      = make(map[Kind]Compressor)
	sharedMutex sync.Mutex
)

// For returns a process-wide Compressor for kind, creating it on first use
func For(kind Kind) (Compressor, error) {
	sharedMutex.Lock()
	defer sharedMutex.Unlock()

	if compressor, ok := shared[kind]; ok {
		return compressor, nil
	}

	compressor, err := New(kind)
	if err != nil {
		return nil, err
	}
	shared[kind] = compressor
	return compressor, nil
}

type noop struct{}

func (noop) Kind() Kind { return NoCompression }

func (noop) Compress(src []byte) ([]byte, error) {
	return append([]byte(nil), src...), nil
}

func (noop) Decompress(src []byte) ([]byte, error) {
	return append([]byte(nil), src...), nil
}
