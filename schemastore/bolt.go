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
	"fmt"
	"os"
	"path/filepath"
	"time"

	bbolt "go.etcd.io/bbolt"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/goserde/errors"
)

const (
	boltFileMode   os.FileMode = 0o600
	boltBucketName             = "class_definitions"
)

var (
	boltTimeout        = 5 * time.Second
	defaultBoltOptions = &bbolt.Options{Timeout: boltTimeout, NoGrowSync: true}
)

// BoltStore persists class definitions in a bbolt database.
//
// bbolt provides single-writer/multi-reader semantics; the store only
// guards its closed state. Keys sort by class id then version.
type BoltStore struct {
	db     *bbolt.DB
	bucket []byte
	path   string
	closed *atomic.Bool
}

var _ Store = (*BoltStore)(nil) // enforce compilation error

// NewBoltStore opens, or creates, the database at path
func NewBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("schemastore: unable to create boltdb directory: %w", err)
	}

	optionsCopy := *defaultBoltOptions
	db, err := bbolt.Open(path, boltFileMode, &optionsCopy)
	if err != nil {
		return nil, fmt.Errorf("schemastore: opening boltdb: %w", err)
	}

	bucket := []byte(boltBucketName)
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bucket)
		return e
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("schemastore: initializing boltdb bucket: %w", err)
	}

	return &BoltStore{
		db:     db,
		bucket: bucket,
		path:   path,
		closed: atomic.NewBool(false),
	}, nil
}

// Path returns the database file path
func (s *BoltStore) Path() string {
	return s.path
}

// Put stores definition under key
func (s *BoltStore) Put(ctx context.Context, key Key, definition []byte) error {
	if err := s.ensureOpen(ctx); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("schemastore: bucket %q missing", s.bucket)
		}
		return bucket.Put(key.bytes(), definition)
	})
}

// Get returns the definition stored under key
func (s *BoltStore) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	if err := s.ensureOpen(ctx); err != nil {
		return nil, false, err
	}

	var definition []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("schemastore: bucket %q missing", s.bucket)
		}
		// bbolt values are only valid for the life of the transaction
		if raw := bucket.Get(key.bytes()); raw != nil {
			definition = bytes.Clone(raw)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return definition, definition != nil, nil
}

// Keys returns the stored keys in order
func (s *BoltStore) Keys(ctx context.Context) ([]Key, error) {
	if err := s.ensureOpen(ctx); err != nil {
		return nil, err
	}

	var keys []Key
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("schemastore: bucket %q missing", s.bucket)
		}
		return bucket.ForEach(func(k, _ []byte) error {
			key, err := keyFromBytes(k)
			if err != nil {
				return err
			}
			keys = append(keys, key)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Close releases the database handle. The file is kept.
func (s *BoltStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

func (s *BoltStore) ensureOpen(ctx context.Context) error {
	if s.closed.Load() {
		return gerrors.ErrSchemaStoreClosed
	}
	return contextErr(ctx)
}
