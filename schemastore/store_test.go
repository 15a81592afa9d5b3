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
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	gerrors "github.com/tochemey/goserde/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"memory": func(*testing.T) Store {
			return NewMemoryStore()
		},
		"bolt": func(t *testing.T) Store {
			store, err := NewBoltStore(filepath.Join(t.TempDir(), "schemas", "schemas.db"))
			require.NoError(t, err)
			return store
		},
	}

	for name, newStore := range stores {
		t.Run("With "+name+" store", func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			_, ok, err := store.Get(ctx, Key{ClassID: 1, Version: 0})
			require.NoError(t, err)
			assert.False(t, ok)

			definition := []byte{0x01, 0x02, 0x03}
			require.NoError(t, store.Put(ctx, Key{ClassID: 1, Version: 0}, definition))
			require.NoError(t, store.Put(ctx, Key{ClassID: -5, Version: 2}, []byte{0x04}))
			require.NoError(t, store.Put(ctx, Key{ClassID: 1, Version: 1}, []byte{0x05}))

			// stored bytes are not aliased
			definition[0] = 0xff
			actual, ok, err := store.Get(ctx, Key{ClassID: 1, Version: 0})
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, []byte{0x01, 0x02, 0x03}, actual)

			keys, err := store.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []Key{
				{ClassID: -5, Version: 2},
				{ClassID: 1, Version: 0},
				{ClassID: 1, Version: 1},
			}, keys)

			require.NoError(t, store.Close())
			require.NoError(t, store.Close())

			_, _, err = store.Get(ctx, Key{ClassID: 1})
			assert.ErrorIs(t, err, gerrors.ErrSchemaStoreClosed)
			assert.ErrorIs(t, store.Put(ctx, Key{ClassID: 1}, nil), gerrors.ErrSchemaStoreClosed)
			_, err = store.Keys(ctx)
			assert.ErrorIs(t, err, gerrors.ErrSchemaStoreClosed)
		})
	}
}

func TestStoreCanceledContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, store.Put(ctx, Key{ClassID: 1}, []byte{0x01}), context.Canceled)
	require.NoError(t, store.Close())
}

func TestBoltStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "schemas.db")

	store, err := NewBoltStore(path)
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
	require.NoError(t, store.Put(ctx, Key{ClassID: 7, Version: 3}, []byte("definition")))
	require.NoError(t, store.Close())

	reopened, err := NewBoltStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	actual, ok, err := reopened.Get(ctx, Key{ClassID: 7, Version: 3})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("definition"), actual)
}

func TestKeyBytes(t *testing.T) {
	for _, key := range []Key{{ClassID: -1, Version: 0}, {ClassID: 1 << 30, Version: -7}} {
		actual, err := keyFromBytes(key.bytes())
		require.NoError(t, err)
		assert.Equal(t, key, actual)
	}
	_, err := keyFromBytes([]byte{0x01})
	assert.Error(t, err)
	assert.Equal(t, "3/1", Key{ClassID: 3, Version: 1}.String())
}
