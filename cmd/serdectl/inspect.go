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

	"github.com/spf13/cobra"

	"github.com/tochemey/goserde/schemastore"
	"github.com/tochemey/goserde/serialization"
)

func newInspectCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "print the envelope of a payload without decoding it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := c.readData(cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "type_id: %d (%s)\n", data.TypeID(), serialization.TypeName(data.TypeID()))
			fmt.Fprintf(out, "length: %d\n", data.Len())
			fmt.Fprintf(out, "hash: %016x\n", data.Hash())
			if data.TypeID() != serialization.PortableTypeID {
				return nil
			}

			return c.withRegistry(cmd, func(registry *serialization.Registry, _ schemastore.Store) error {
				definition, err := registry.ClassDefinitionOf(data)
				if err != nil {
					return err
				}
				printClassDefinition(cmd, definition)
				return nil
			})
		},
	}
}

func printClassDefinition(cmd *cobra.Command, definition *serialization.ClassDefinition) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "class_id: %d\n", definition.ClassID())
	fmt.Fprintf(out, "version: %d\n", definition.Version())
	for _, field := range definition.Fields() {
		if field.ClassID() != serialization.NoClassID {
			fmt.Fprintf(out, "  %d %s %s (class_id=%d)\n", field.Index(), field.Name(), field.Type(), field.ClassID())
			continue
		}
		fmt.Fprintf(out, "  %d %s %s\n", field.Index(), field.Name(), field.Type())
	}
}
