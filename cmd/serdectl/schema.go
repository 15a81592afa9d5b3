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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tochemey/goserde/internal/strconvx"
	"github.com/tochemey/goserde/schemastore"
	"github.com/tochemey/goserde/serialization"
)

var errNoSchemaStore = errors.New("no schema store configured")

func newSchemaCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "list and show the class definitions kept in the schema store",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "list the stored class definitions",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.withRegistry(cmd, func(registry *serialization.Registry, store schemastore.Store) error {
					if store == nil {
						return errNoSchemaStore
					}
					keys, err := store.Keys(cmd.Context())
					if err != nil {
						return err
					}
					for _, key := range keys {
						definition, err := registry.ClassDefinition(cmd.Context(), key.ClassID, key.Version)
						if err != nil {
							return err
						}
						fmt.Fprintf(cmd.OutOrStdout(), "class_id=%d version=%d fields=%d\n", key.ClassID, key.Version, definition.FieldCount())
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "show CLASS_ID VERSION",
			Short: "print a stored class definition",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				classID, err := strconvx.ParseInt32("class_id", args[0])
				if err != nil {
					return err
				}
				version, err := strconvx.ParseInt32("version", args[1])
				if err != nil {
					return err
				}

				return c.withRegistry(cmd, func(registry *serialization.Registry, store schemastore.Store) error {
					if store == nil {
						return errNoSchemaStore
					}
					definition, err := registry.ClassDefinition(cmd.Context(), classID, version)
					if err != nil {
						return err
					}
					printClassDefinition(cmd, definition)
					return nil
				})
			},
		},
	)
	return cmd
}
