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

// Package schemastore persists portable class definitions so that schemas
// learned by one process are available to the next.
package schemastore

import (
	"context"
	"encoding/binary"
	"fmt"
)

// Key identifies a class definition
type Key struct {
	ClassID int32
	Version int32
}

// String returns the key in class_id/version form
func (k Key) String() string {
	return fmt.Sprintf("%d/%d", k.ClassID, k.Version)
}

// bytes returns the sortable binary form of the key
func (k Key) bytes() []byte {
	var b [8]byte
	// flip the sign bit so negative ids sort before positive ones
	binary.BigEndian.PutUint32(b[0:4], uint32(k.ClassID)^(1<<31))
	binary.BigEndian.PutUint32(b[4:8], uint32(k.Version)^(1<<31))
	return b[:]
}

func keyFromBytes(b []byte) (Key, error) {
	if len(b) != 8 {
		return Key{}, fmt.Errorf("schemastore: invalid key length %d", len(b))
	}
	return Key{
		ClassID: int32(binary.BigEndian.Uint32(b[0:4]) ^ (1 << 31)),
		Version: int32(binary.BigEndian.Uint32(b[4:8]) ^ (1 << 31)),
	}, nil
}

// Store persists encoded class definitions.
// Implementations are safe for concurrent use.
type Store interface {
	// Put stores the encoded definition under key, replacing any previous one
	Put(ctx context.Context, key Key, definition []byte) error
	// Get returns the encoded definition stored under key
	Get(ctx context.Context, key Key) ([]byte, bool, error)
	// Keys returns every stored key ordered by class id then version
	Keys(ctx context.Context) ([]Key, error)
	// Close releases the store. Later calls fail with ErrSchemaStoreClosed.
	Close() error
}

func contextErr(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
