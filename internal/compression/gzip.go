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
	"sync"

	"github.com/klauspost/compress/gzip"
)

type gzipCompressor struct {
	writers sync.Pool
	readers sync.Pool
}

func newGzip() *gzipCompressor {
	return &gzipCompressor{
		writers: sync.Pool{
			New: func() any {
				return gzip.NewWriter(nil)
			},
		},
	}
}

func (c *gzipCompressor) Kind() Kind { return Gzip }

func (c *gzipCompressor) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := c.writers.Get().(*gzip.Writer)
	writer.Reset(&buf)
	defer c.writers.Put(writer)

	if _, err := writer.Write(src); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *gzipCompressor) Decompress(src []byte) ([]byte, error) {
	// gzip readers validate the header on creation so the pool holds only used readers
	reader, ok := c.readers.Get().(*gzip.Reader)
	if ok {
		if err := reader.Reset(bytes.NewReader(src)); err != nil {
			return nil, err
		}
	} else {
		var err error
		if reader, err = gzip.NewReader(bytes.NewReader(src)); err != nil {
			return nil, err
		}
	}
	defer c.readers.Put(reader)

	out, err := readBounded(reader)
	if err != nil {
		return nil, err
	}
	return out, reader.Close()
}
