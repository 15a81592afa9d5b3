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

package schemastore

import (
	"bytes"
	"context"
	"slices"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/goserde/errors"
)

// MemoryStore keeps class definitions in memory.
// Stored and returned bytes are copies.
type MemoryStore struct {
	definitions *xsync.MapOf[Key, []byte]
	closed      *atomic.Bool
}

var _ Store = (*MemoryStore)(nil) // enforce compilation error

// NewMemoryStore creates a MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		definitions: xsync.NewMapOf[Key, []byte](),
		closed:      atomic.NewBool(false),
	}
}

// Put stores definition under key
func (m *MemoryStore) Put(ctx context.Context, key Key, definition []byte) error {
	if err := m.ensureOpen(ctx); err != nil {
		return err
	}
	m.definitions.Store(key, bytes.Clone(definition))
	return nil
}

// Get returns the definition stored under key
func (m *MemoryStore) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	if err := m.ensureOpen(ctx); err != nil {
		return nil, false, err
	}
	definition, ok := m.definitions.Load(key)
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(definition), true, nil
}

// Keys returns the stored keys in order
func (m *MemoryStore) Keys(ctx context.Context) ([]Key, error) {
	if err := m.ensureOpen(ctx); err != nil {
		return nil, err
	}
	keys := make([]Key, 0, m.definitions.Size())
	m.definitions.Range(func(key Key, _ []byte) bool {
		keys = append(keys, key)
		return true
	})
	slices.SortFunc(keys, func(a, b Key) int {
		return bytes.Compare(a.bytes(), b.bytes())
	})
	return keys, nil
}

// Close drops every definition
func (m *MemoryStore) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	m.definitions.Clear()
	return nil
}

func (m *MemoryStore) ensureOpen(ctx context.Context) error {
	if m.closed.Load() {
		return gerrors.ErrSchemaStoreClosed
	}
	return contextErr(ctx)
}
