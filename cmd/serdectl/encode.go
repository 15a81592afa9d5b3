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

package main

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/tochemey/goserde/schemastore"
	"github.com/tochemey/goserde/serialization"
)

// parsers turn a command line value into the Go value of a built-in serializer
var parsers = map[string]func(string) (any, error){
	"null":   func(string) (any, error) { return nil, nil },
	"bool":   func(s string) (any, error) { return strconv.ParseBool(s) },
	"int8":   parseInt[int8](8),
	"int16":  parseInt[int16](16),
	"int32":  parseInt[int32](32),
	"int64":  parseInt[int64](64),
	"string": func(s string) (any, error) { return s, nil },
	"bytes":  func(s string) (any, error) { return hex.DecodeString(s) },
	"uuid":   func(s string) (any, error) { return uuid.Parse(s) },
	"float32": func(s string) (any, error) {
		v, err := strconv.ParseFloat(s, 32)
		return float32(v), err
	},
	"float64": func(s string) (any, error) { return strconv.ParseFloat(s, 64) },
	"time": func(s string) (any, error) {
		return time.Parse(time.RFC3339Nano, s)
	},
	"bigint": func(s string) (any, error) {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("invalid integer: %q", s)
		}
		return v, nil
	},
}

func supportedTypes() []string {
	names := lo.Keys(parsers)
	slices.Sort(names)
	return names
}

func parseInt[T int8 | int16 | int32 | int64](bits int) func(string) (any, error) {
	return func(s string) (any, error) {
		v, err := strconv.ParseInt(s, 10, bits)
		return T(v), err
	}
}

func newEncodeCommand(c *cli) *cobra.Command {
	var (
		kind string
		list string
	)
	cmd := &cobra.Command{
		Use:   "encode VALUE...",
		Short: "encode values with a built-in serializer and print the framed payload",
		Long: fmt.Sprintf(`encode values with a built-in serializer and print the framed payload.

A single value is encoded as is. With --collection the values are wrapped
in a LIST or SET envelope. Supported types: %s.`, strings.Join(supportedTypes(), ", ")),
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parse, ok := parsers[kind]
			if !ok {
				return fmt.Errorf("unsupported type=(%s)", kind)
			}

			values := make([]any, 0, len(args))
			for _, arg := range args {
				value, err := parse(arg)
				if err != nil {
					return fmt.Errorf("invalid %s value=(%s): %w", kind, arg, err)
				}
				values = append(values, value)
			}

			return c.withRegistry(cmd, func(registry *serialization.Registry, _ schemastore.Store) error {
				data, err := encodeValues(registry, values, list, kind)
				if err != nil {
					return err
				}
				return c.writeData(cmd, data)
			})
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", "string", "type of the values")
	cmd.Flags().StringVar(&list, "collection", "", "wrap the values in a LIST or SET envelope")
	return cmd
}

func encodeValues(registry *serialization.Registry, values []any, collection, kind string) (serialization.Data, error) {
	if collection != "" {
		containerKind, err := serialization.ParseContainerKind(collection)
		if err != nil {
			return serialization.Data{}, err
		}
		envelope, err := serialization.EncodeCollection(registry, containerKind, values, false)
		if err != nil {
			return serialization.Data{}, err
		}
		return registry.ToData(envelope)
	}

	switch {
	case len(values) == 1:
		return registry.ToData(values[0])
	case len(values) == 0 && kind == "null":
		return registry.ToData(nil)
	default:
		return serialization.Data{}, fmt.Errorf("expected one value, got %d", len(values))
	}
}
