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
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/tochemey/goserde/stream"
)

const (
	personClassID  int32 = 1
	addressClassID int32 = 2
)

type address struct {
	street string
	zip    int32
}

var _ Portable = (*address)(nil)

func (a *address) ClassID() int32 { return addressClassID }

func (a *address) WritePortable(writer PortableWriter) error {
	if err := writer.WriteUTF("street", a.street); err != nil {
		return err
	}
	return writer.WriteInt("zip", a.zip)
}

func (a *address) ReadPortable(reader PortableReader) error {
	var err error
	if a.street, err = reader.ReadUTF("street"); err != nil {
		return err
	}
	a.zip, err = reader.ReadInt("zip")
	return err
}

type person struct {
	name    string
	age     int32
	active  bool
	score   float64
	scores  []int32
	home    *address
	friends []Portable
}

var _ VersionedPortable = (*person)(nil)

func (p *person) ClassID() int32 { return personClassID }

func (p *person) Version() int32 { return 1 }

func (p *person) WritePortable(writer PortableWriter) error {
	if err := writer.WriteUTF("name", p.name); err != nil {
		return err
	}
	if err := writer.WriteInt("age", p.age); err != nil {
		return err
	}
	if err := writer.WriteBool("active", p.active); err != nil {
		return err
	}
	if err := writer.WriteDouble("score", p.score); err != nil {
		return err
	}
	if err := writer.WriteIntArray("scores", p.scores); err != nil {
		return err
	}
	var home Portable
	if p.home != nil {
		home = p.home
	}
	if err := writer.WritePortable("home", home); err != nil {
		return err
	}
	return writer.WritePortableArray("friends", p.friends)
}

func (p *person) ReadPortable(reader PortableReader) error {
	var err error
	if p.name, err = reader.ReadUTF("name"); err != nil {
		return err
	}
	if p.age, err = reader.ReadInt("age"); err != nil {
		return err
	}
	if p.active, err = reader.ReadBool("active"); err != nil {
		return err
	}
	if p.score, err = reader.ReadDouble("score"); err != nil {
		return err
	}
	if p.scores, err = reader.ReadIntArray("scores"); err != nil {
		return err
	}
	home, err := reader.ReadPortable("home")
	if err != nil {
		return err
	}
	if home != nil {
		p.home = home.(*address)
	}
	p.friends, err = reader.ReadPortableArray("friends")
	return err
}

func newPerson() *person {
	return &person{
		name:   "John",
		age:    42,
		active: true,
		score:  98.5,
		scores: []int32{1, 2, 3},
		home:   &address{street: "Main Street", zip: 10001},
		friends: []Portable{
			&address{street: "Second Street", zip: 20002},
		},
	}
}

func personFactory() Portable { return new(person) }

func addressFactory() Portable { return new(address) }

// point is an Externalizable fixture
type point struct {
	X int32
	Y int32
}

var _ Externalizable = (*point)(nil)

func (p *point) WriteExternal(out *stream.Output) error {
	out.WriteInt32(p.X)
	out.WriteInt32(p.Y)
	return nil
}

func (p *point) ReadExternal(in *stream.Input) error {
	var err error
	if p.X, err = in.ReadInt32(); err != nil {
		return err
	}
	p.Y, err = in.ReadInt32()
	return err
}

// order is a fallback fixture
type order struct {
	ID     string
	Amount float64
	Items  []string
}

// counted is encoded by a user serializer that counts decodes
type counted struct {
	Value int64
}

func newCountingSerializer(typeID int32, decodes *atomic.Int64) Serializer {
	return NewTypedSerializer(typeID,
		func(out *stream.Output, v counted) error {
			out.WriteInt64(v.Value)
			return nil
		},
		func(in *stream.Input) (counted, error) {
			decodes.Inc()
			value, err := in.ReadInt64()
			return counted{Value: value}, err
		},
	)
}

func newTestRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	registry, err := NewRegistry(opts...)
	require.NoError(t, err)
	require.NotNil(t, registry)
	return registry
}

func roundTrip(t *testing.T, registry *Registry, value any) (Data, any) {
	t.Helper()
	data, err := registry.ToData(value)
	require.NoError(t, err)
	actual, err := registry.ToObject(data)
	require.NoError(t, err)
	return data, actual
}
