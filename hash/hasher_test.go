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

package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasher(t *testing.T) {
	hasher := DefaultHasher()
	t.Run("With same key", func(t *testing.T) {
		assert.Equal(t, hasher.HashCode([]byte("key")), hasher.HashCode([]byte("key")))
	})
	t.Run("With different keys", func(t *testing.T) {
		assert.NotEqual(t, hasher.HashCode([]byte("key1")), hasher.HashCode([]byte("key2")))
	})
	t.Run("With tagged parts", func(t *testing.T) {
		expected := hasher.HashCode([]byte{0xff, 0xff, 0xff, 0xf5, 'a', 'b', 'c'})
		assert.Equal(t, expected, Tagged(-11, []byte("a"), []byte("bc")))
		assert.Equal(t, expected, Tagged(-11, []byte("abc")))
		assert.NotEqual(t, expected, Tagged(-12, []byte("abc")))
	})
}
