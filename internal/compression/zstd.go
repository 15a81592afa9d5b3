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
	"runtime"

	"github.com/klauspost/compress/zstd"
)

// zstdCompressor shares a single encoder and decoder.
// EncodeAll and DecodeAll are safe for concurrent use.
type zstdCompressor struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func newZstd() (*zstdCompressor, error) {
	concurrency := runtime.GOMAXPROCS(0)
	if concurrency < 1 {
		concurrency = 1
	}

	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedFastest),
		zstd.WithEncoderConcurrency(concurrency),
		zstd.WithLowerEncoderMem(false),
	)
	if err != nil {
		return nil, err
	}

	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(0),
		zstd.WithDecoderLowmem(false),
		zstd.WithDecoderMaxMemory(maxDecodedSize),
	)
	if err != nil {
		_ = encoder.Close()
		return nil, err
	}

	return &zstdCompressor{
		encoder: encoder,
		decoder: decoder,
	}, nil
}

func (c *zstdCompressor) Kind() Kind { return Zstd }

func (c *zstdCompressor) Compress(src []byte) ([]byte, error) {
	return c.encoder.EncodeAll(src, make([]byte, 0, len(src))), nil
}

func (c *zstdCompressor) Decompress(src []byte) ([]byte, error) {
	out, err := c.decoder.DecodeAll(src, nil)
	if err != nil {
		return nil, err
	}
	if len(out) > maxDecodedSize {
		return nil, ErrPayloadTooLarge
	}
	return out, nil
}
