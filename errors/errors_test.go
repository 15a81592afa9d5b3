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

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kind string

func (k kind) String() string { return string(k) }

func TestErrors(t *testing.T) {
	err := NewErrUnsupportedType(make(chan int))
	require.ErrorIs(t, err, ErrUnsupportedType)
	require.EqualError(t, err, "(type=chan int) unsupported type")

	err = NewErrUnknownTypeTag(9999)
	require.ErrorIs(t, err, ErrUnknownTypeTag)
	require.EqualError(t, err, "(type_id=9999) unknown type tag")

	err = NewErrTypeNotFound("pkg.missing")
	require.ErrorIs(t, err, ErrTypeNotFound)

	err = NewErrSchemaMismatch(7, "name")
	require.ErrorIs(t, err, ErrSchemaMismatch)
	require.EqualError(t, err, "(class_id=7, field=name) schema mismatch")

	err = NewErrFieldTypeMismatch("age", kind("int"), kind("long"))
	require.ErrorIs(t, err, ErrFieldTypeMismatch)
	require.EqualError(t, err, "(field=age, declared=int, actual=long) field type mismatch")

	err = NewErrDuplicateTagRegistration(12)
	require.ErrorIs(t, err, ErrDuplicateTagRegistration)

	err = NewErrReservedTypeID(-3)
	require.ErrorIs(t, err, ErrReservedTypeID)

	err = NewErrTrailingBytes(-11, 2)
	require.ErrorIs(t, err, ErrCorruptPayload)
}

func TestNewErrCorruptPayload(t *testing.T) {
	t.Run("With nil error", func(t *testing.T) {
		assert.NoError(t, NewErrCorruptPayload(nil))
	})

	t.Run("With end of input", func(t *testing.T) {
		err := NewErrCorruptPayload(NewErrEndOfInput(4, 1))
		require.ErrorIs(t, err, ErrCorruptPayload)
		require.ErrorIs(t, err, ErrEndOfInput)
	})

	t.Run("Does not wrap twice", func(t *testing.T) {
		base := fmt.Errorf("bad: %w", ErrCorruptPayload)
		assert.Equal(t, base, NewErrCorruptPayload(base))
	})
}

func TestElementError(t *testing.T) {
	cause := errors.New("boom")
	err := NewElementError(2, cause)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrCorruptPayload)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, 2, err.Index)

	var elementErr *ElementError
	require.True(t, errors.As(fmt.Errorf("materialize: %w", err), &elementErr))
	assert.Equal(t, 2, elementErr.Index)
}
