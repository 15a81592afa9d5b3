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

package compression

import (
	"bytes"
	"io"
	"sync"

	"github.com/andybalholm/brotli"
)

// DefaultBrotliLevel is the brotli quality used when none is configured
const DefaultBrotliLevel = brotli.DefaultCompression

var brotliReaderPool = sync.Pool{
	New: func() any {
		return brotli.NewReader(nil)
	},
}

var (
	brotliWriterPools      = make(map[int]*sync.Pool)
	brotliWriterPoolsMutex sync.RWMutex
)

func brotliWriterPool(level int) *sync.Pool {
	brotliWriterPoolsMutex.RLock()
	pool, exists := brotliWriterPools[level]
	brotliWriterPoolsMutex.RUnlock()

	if exists {
		return pool
	}

	brotliWriterPoolsMutex.Lock()
	defer brotliWriterPoolsMutex.Unlock()

	if pool, exists := brotliWriterPools[level]; exists {
		return pool
	}

	pool = &sync.Pool{
		New: func() any {
			return brotli.NewWriterLevel(nil, level)
		},
	}
	brotliWriterPools[level] = pool
	return pool
}

type brotliCompressor struct {
	writers *sync.Pool
}

func newBrotli(level int) *brotliCompressor {
	return &brotliCompressor{writers: brotliWriterPool(level)}
}

func (c *brotliCompressor) Kind() Kind { return Brotli }

func (c *brotliCompressor) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := c.writers.Get().(*brotli.Writer)
	writer.Reset(&buf)
	defer func() {
		writer.Reset(nil)
		c.writers.Put(writer)
	}()

	if _, err := writer.Write(src); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *brotliCompressor) Decompress(src []byte) ([]byte, error) {
	reader := brotliReaderPool.Get().(*brotli.Reader)
	defer func() {
		_ = reader.Reset(nil)
		brotliReaderPool.Put(reader)
	}()

	if err := reader.Reset(bytes.NewReader(src)); err != nil {
		return nil, err
	}
	return readBounded(reader)
}

// readBounded drains r, refusing output larger than maxDecodedSize
func readBounded(r io.Reader) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, maxDecodedSize+1))
	if err != nil {
		return nil, err
	}
	if len(out) > maxDecodedSize {
		return nil, ErrPayloadTooLarge
	}
	return out, nil
}
