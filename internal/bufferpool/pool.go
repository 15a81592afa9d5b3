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

package bufferpool

import (
	"bytes"
	"sync"
)

// maxRetainedCapacity bounds the buffers kept in the pool so that a single
// large payload does not pin memory for the lifetime of the process.
const maxRetainedCapacity = 1 << 20

// Pool is the process-wide buffer pool used by stream outputs.
var Pool = New()

// BufferPool hands out buffers with checkout/return semantics.
// A buffer belongs to exactly one caller between Get and Put.
type BufferPool struct {
	pool sync.Pool
}

// New creates a BufferPool
func New() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() any {
				return new(bytes.Buffer)
			},
		},
	}
}

// Get checks a reset buffer out of the pool
func (p *BufferPool) Get() *bytes.Buffer {
	return p.pool.Get().(*bytes.Buffer)
}

// Put returns the buffer to the pool. Oversized buffers are dropped.
func (p *BufferPool) Put(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxRetainedCapacity {
		return
	}
	buf.Reset()
	p.pool.Put(buf)
}
