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
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tochemey/goserde/schemastore"
	"github.com/tochemey/goserde/serialization"
)

func newDecodeCommand(c *cli) *cobra.Command {
	var fields []string
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "decode a payload and print its value",
		Long: `decode a payload and print its value.

Portables without a registered factory print as records. With --field only
the named portable fields are decoded.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := c.readData(cmd, args)
			if err != nil {
				return err
			}

			return c.withRegistry(cmd, func(registry *serialization.Registry, _ schemastore.Store) error {
				var value any
				if len(fields) > 0 {
					value, err = registry.ReadFields(data, nil, fields...)
				} else {
					value, err = registry.ToObject(data)
				}
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), registry, value, 0)
			})
		},
	}
	cmd.Flags().StringSliceVar(&fields, "field", nil, "portable fields to decode")
	return cmd
}

// render prints value, expanding records and collections one level per indent
func render(out io.Writer, registry *serialization.Registry, value any, depth int) error {
	indent := strings.Repeat("  ", depth)
	switch v := value.(type) {
	case *serialization.Record:
		fmt.Fprintf(out, "%sRecord(class_id=%d, version=%d)\n", indent, v.ClassID(), v.Version())
		for _, name := range v.FieldNames() {
			field, _ := v.Get(name)
			if isComposite(field) {
				fmt.Fprintf(out, "%s  %s:\n", indent, name)
				if err := render(out, registry, field, depth+2); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintf(out, "%s  %s: %v\n", indent, name, field)
		}
	case []serialization.Portable:
		for _, element := range v {
			if err := render(out, registry, element, depth); err != nil {
				return err
			}
		}
	case *serialization.CollectionEnvelope:
		container, err := v.Materialize(registry)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s%s(%d)\n", indent, container.Kind(), container.Len())
		for _, element := range container.Values() {
			if err := render(out, registry, element, depth+1); err != nil {
				return err
			}
		}
	case nil:
		fmt.Fprintf(out, "%snull\n", indent)
	default:
		fmt.Fprintf(out, "%s%v\n", indent, v)
	}
	return nil
}

func isComposite(value any) bool {
	switch value.(type) {
	case *serialization.Record, []serialization.Portable, *serialization.CollectionEnvelope:
		return true
	default:
		return false
	}
}
