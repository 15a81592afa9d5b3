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

package serialization

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	gerrors "github.com/tochemey/goserde/errors"
	"github.com/tochemey/goserde/log"
	"github.com/tochemey/goserde/stream"
)

type celsius float64

func TestNewRegistry(t *testing.T) {
	t.Run("With default options", func(t *testing.T) {
		registry := newTestRegistry(t)
		assert.NotEmpty(t, registry.TypeIDs())
	})
	t.Run("With all options", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		decodes := atomic.NewInt64(0)
		registry := newTestRegistry(t,
			WithLogger(log.NewZap(log.DebugLevel, buffer)),
			WithMeterProvider(noop.NewMeterProvider()),
			WithCompression(ZstdCompression),
			WithSerializers(newCountingSerializer(100, decodes)),
			WithPortableFactory(personClassID, personFactory),
			WithTypes(new(point)),
			WithFallbackTypes(new(order)),
		)
		assert.Contains(t, registry.TypeIDs(), int32(100))
		assert.Contains(t, buffer.String(), "serialization registry created")
	})
	t.Run("With duplicate type tag", func(t *testing.T) {
		decodes := atomic.NewInt64(0)
		_, err := NewRegistry(WithSerializers(
			newCountingSerializer(100, decodes),
			newCountingSerializer(100, decodes),
		))
		assert.ErrorIs(t, err, gerrors.ErrDuplicateTagRegistration)
	})
	t.Run("With reserved type tag", func(t *testing.T) {
		decodes := atomic.NewInt64(0)
		_, err := NewRegistry(WithSerializers(newCountingSerializer(StringTypeID, decodes)))
		assert.ErrorIs(t, err, gerrors.ErrInvalidConfig)
		assert.ErrorIs(t, err, gerrors.ErrReservedTypeID)
	})
	t.Run("With invalid config", func(t *testing.T) {
		_, err := NewRegistry(
			WithLogger(nil),
			WithCompression(Compression(42)),
			WithPortableFactory(9, nil),
			WithSerializers(nil),
		)
		assert.ErrorIs(t, err, gerrors.ErrInvalidConfig)
	})
}

func TestDispatchIsDeterministic(t *testing.T) {
	first := NewTypedSerializer(100,
		func(out *stream.Output, v celsius) error {
			out.WriteFloat64(float64(v))
			return nil
		},
		func(in *stream.Input) (celsius, error) {
			v, err := in.ReadFloat64()
			return celsius(v), err
		},
	)
	second := NewTypedSerializer(200,
		func(out *stream.Output, v celsius) error {
			out.WriteUTF(fmt.Sprintf("%f", float64(v)))
			return nil
		},
		func(*stream.Input) (celsius, error) {
			return 0, errors.New("never called")
		},
	)

	registry := newTestRegistry(t, WithSerializers(first, second))
	for range 10 {
		serializer, err := registry.ResolveForEncode(celsius(21.5))
		require.NoError(t, err)
		assert.Equal(t, int32(100), serializer.TypeID())
	}

	data, actual := roundTrip(t, registry, celsius(21.5))
	assert.Equal(t, int32(100), data.TypeID())
	assert.Equal(t, celsius(21.5), actual)

	// built-ins are consulted before user serializers
	shadow := NewTypedSerializer(300,
		func(*stream.Output, string) error { return errors.New("never called") },
		func(*stream.Input) (string, error) { return "", errors.New("never called") },
	)
	registry = newTestRegistry(t, WithSerializers(shadow))
	serializer, err := registry.ResolveForEncode("text")
	require.NoError(t, err)
	assert.Equal(t, StringTypeID, serializer.TypeID())
}

func TestUnsupportedType(t *testing.T) {
	registry := newTestRegistry(t)

	_, err := registry.ToData(celsius(1))
	assert.ErrorIs(t, err, gerrors.ErrUnsupportedType)
	_, err = registry.ToData(order{ID: "1"})
	assert.ErrorIs(t, err, gerrors.ErrUnsupportedType)
	_, err = registry.ToData(42)
	assert.ErrorIs(t, err, gerrors.ErrUnsupportedType)
}

func TestUnknownTypeTagLeavesRegistryUsable(t *testing.T) {
	registry := newTestRegistry(t)

	_, err := registry.ToObject(NewData(9999, []byte{0x01}))
	require.ErrorIs(t, err, gerrors.ErrUnknownTypeTag)
	_, err = registry.ResolveForDecode(9999)
	require.ErrorIs(t, err, gerrors.ErrUnknownTypeTag)

	_, actual := roundTrip(t, registry, "still working")
	assert.Equal(t, "still working", actual)
}

func TestCorruptPayloads(t *testing.T) {
	registry := newTestRegistry(t)

	t.Run("With truncated string", func(t *testing.T) {
		// declared length 10, only 3 bytes present
		payload := []byte{0x00, 0x00, 0x00, 0x0a, 'a', 'b', 'c'}
		_, err := registry.ToObject(NewData(StringTypeID, payload))
		assert.ErrorIs(t, err, gerrors.ErrCorruptPayload)
		assert.ErrorIs(t, err, gerrors.ErrEndOfInput)
	})
	t.Run("With truncated integer", func(t *testing.T) {
		_, err := registry.ToObject(NewData(Int64TypeID, []byte{0x01, 0x02}))
		assert.ErrorIs(t, err, gerrors.ErrCorruptPayload)
	})
	t.Run("With trailing bytes", func(t *testing.T) {
		_, err := registry.ToObject(NewData(Int32TypeID, []byte{0, 0, 0, 1, 0}))
		assert.ErrorIs(t, err, gerrors.ErrCorruptPayload)
		assert.NotErrorIs(t, err, gerrors.ErrEndOfInput)
	})
	t.Run("With payload on null data", func(t *testing.T) {
		_, err := registry.ToObject(NewData(NullTypeID, []byte{0x01}))
		assert.ErrorIs(t, err, gerrors.ErrCorruptPayload)
	})
	t.Run("With invalid utf8", func(t *testing.T) {
		_, err := registry.ToObject(NewData(StringTypeID, []byte{0, 0, 0, 1, 0xff}))
		assert.ErrorIs(t, err, gerrors.ErrCorruptPayload)
	})
}

func TestWriteObjectReadObject(t *testing.T) {
	registry := newTestRegistry(t)
	values := []any{"first", int64(2), nil, []byte{0x03}, true}

	out := stream.NewOutput()
	defer out.Release()
	for _, value := range values {
		require.NoError(t, registry.WriteObject(out, value))
	}
	require.ErrorIs(t, registry.WriteObject(out, celsius(1)), gerrors.ErrUnsupportedType)

	in := stream.NewInput(out.ToBytes())
	for _, expected := range values {
		actual, err := registry.ReadObject(in)
		require.NoError(t, err)
		assert.Equal(t, expected, actual)
	}
	assert.Zero(t, in.Remaining())

	_, err := registry.ReadObject(in)
	assert.ErrorIs(t, err, gerrors.ErrCorruptPayload)
	assert.ErrorIs(t, err, gerrors.ErrEndOfInput)
}

func TestExternalizable(t *testing.T) {
	t.Run("With round trip", func(t *testing.T) {
		registry := newTestRegistry(t, WithTypes(new(point)))
		data, actual := roundTrip(t, registry, &point{X: 3, Y: -4})
		assert.Equal(t, ExternalizableTypeID, data.TypeID())
		assert.Equal(t, &point{X: 3, Y: -4}, actual)
	})
	t.Run("With receiver that knows the type", func(t *testing.T) {
		sender := newTestRegistry(t)
		receiver := newTestRegistry(t, WithTypes(new(point)))
		data, err := sender.ToData(&point{X: 1, Y: 2})
		require.NoError(t, err)
		actual, err := receiver.ToObject(data)
		require.NoError(t, err)
		assert.Equal(t, &point{X: 1, Y: 2}, actual)
	})
	t.Run("With receiver that does not know the type", func(t *testing.T) {
		sender := newTestRegistry(t)
		receiver := newTestRegistry(t)
		data, err := sender.ToData(&point{X: 1, Y: 2})
		require.NoError(t, err)
		_, err = receiver.ToObject(data)
		assert.ErrorIs(t, err, gerrors.ErrTypeNotFound)
	})
	t.Run("With encode that does not register the type", func(t *testing.T) {
		sender := newTestRegistry(t)
		receiver := newTestRegistry(t)
		data, err := sender.ToData(&point{X: 1, Y: 2})
		require.NoError(t, err)

		_, err = receiver.ToData(&point{X: 9, Y: 9})
		require.NoError(t, err)
		_, err = receiver.ToObject(data)
		assert.ErrorIs(t, err, gerrors.ErrTypeNotFound)
		_, err = sender.ToObject(data)
		assert.ErrorIs(t, err, gerrors.ErrTypeNotFound)
	})
	t.Run("With truncated body", func(t *testing.T) {
		registry := newTestRegistry(t, WithTypes(new(point)))
		out := stream.NewOutput()
		defer out.Release()
		out.WriteUTF("github.com/tochemey/goserde/serialization.point")
		out.WriteBytes([]byte{0, 0, 0, 1})
		_, err := registry.ToObject(NewData(ExternalizableTypeID, out.ToBytes()))
		assert.ErrorIs(t, err, gerrors.ErrCorruptPayload)
	})
}

func TestFallback(t *testing.T) {
	value := order{ID: "order-1", Amount: 12.5, Items: []string{"a", "b"}}

	for _, compression := range []Compression{NoCompression, GzipCompression, ZstdCompression, BrotliCompression} {
		t.Run("With "+compression.String()+" compression", func(t *testing.T) {
			registry := newTestRegistry(t, WithFallbackTypes(new(order)), WithCompression(compression))

			data, actual := roundTrip(t, registry, value)
			assert.Equal(t, FallbackTypeID, data.TypeID())
			assert.Equal(t, value, actual)

			_, actual = roundTrip(t, registry, &value)
			assert.Equal(t, &value, actual)

			// any registry knowing the type decodes it
			receiver := newTestRegistry(t, WithFallbackTypes(order{}))
			decoded, err := receiver.ToObject(data)
			require.NoError(t, err)
			assert.Equal(t, value, decoded)
		})
	}

	t.Run("With unknown type on receiver", func(t *testing.T) {
		sender := newTestRegistry(t, WithFallbackTypes(new(order)))
		data, err := sender.ToData(value)
		require.NoError(t, err)
		_, err = newTestRegistry(t).ToObject(data)
		assert.ErrorIs(t, err, gerrors.ErrTypeNotFound)
	})
}

func TestConcurrentUse(t *testing.T) {
	decodes := atomic.NewInt64(0)
	registry := newTestRegistry(t,
		WithSerializers(newCountingSerializer(100, decodes)),
		WithPortableFactory(personClassID, personFactory),
		WithPortableFactory(addressClassID, addressFactory),
		WithFallbackTypes(new(order)),
		WithTypes(new(point)),
		WithCompression(ZstdCompression),
	)

	values := []any{
		"text",
		int64(7),
		counted{Value: 9},
		newPerson(),
		order{ID: "1"},
		&point{X: 1, Y: 1},
	}

	group := new(errgroup.Group)
	for i := range 32 {
		group.Go(func() error {
			value := values[i%len(values)]
			data, err := registry.ToData(value)
			if err != nil {
				return err
			}
			actual, err := registry.ToObject(data)
			if err != nil {
				return err
			}
			if !assert.ObjectsAreEqual(value, actual) {
				return fmt.Errorf("value mismatch: %v != %v", value, actual)
			}
			return nil
		})
	}
	require.NoError(t, group.Wait())

	var expected int64
	for i := range 32 {
		if _, ok := values[i%len(values)].(counted); ok {
			expected++
		}
	}
	assert.Equal(t, expected, decodes.Load())
}
