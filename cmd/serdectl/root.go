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
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tochemey/goserde/config"
	"github.com/tochemey/goserde/schemastore"
	"github.com/tochemey/goserde/serialization"
)

const (
	formatHex = "hex"
	formatRaw = "raw"
)

// cli holds the persistent flags shared by every command
type cli struct {
	configPath string
	format     string
}

func newRootCommand() *cobra.Command {
	c := new(cli)
	root := &cobra.Command{
		Use:           "serdectl",
		Short:         "inspect, decode and encode goserde payloads",
		SilenceUsage:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			switch c.format {
			case formatHex, formatRaw:
				return nil
			default:
				return fmt.Errorf("invalid format=(%s): expected one of [%s, %s]", c.format, formatHex, formatRaw)
			}
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "configuration file (YAML, TOML or JSON); GOSERDE_* variables override it")
	root.PersistentFlags().StringVarP(&c.format, "format", "f", formatHex, "payload format on stdin/stdout: hex or raw")

	root.AddCommand(
		newInspectCommand(c),
		newDecodeCommand(c),
		newEncodeCommand(c),
		newSchemaCommand(c),
	)
	return root
}

// withRegistry runs fn with a registry built from the configuration and
// closes the schema store once fn returns
func (c *cli) withRegistry(cmd *cobra.Command, fn func(*serialization.Registry, schemastore.Store) error) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	registry, store, err := cfg.NewRegistry([]io.Writer{cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	if store != nil {
		defer func() { _ = store.Close() }()
	}
	return fn(registry, store)
}

// readData reads a framed Data from the file named by args or from stdin
func (c *cli) readData(cmd *cobra.Command, args []string) (serialization.Data, error) {
	var (
		bytea []byte
		err   error
	)
	if len(args) == 0 || args[0] == "-" {
		bytea, err = io.ReadAll(cmd.InOrStdin())
	} else {
		bytea, err = os.ReadFile(args[0])
	}
	if err != nil {
		return serialization.Data{}, err
	}

	if c.format == formatHex {
		if bytea, err = hex.DecodeString(strings.TrimSpace(string(bytea))); err != nil {
			return serialization.Data{}, fmt.Errorf("invalid hex input: %w", err)
		}
	}
	return serialization.ParseData(bytea)
}

// writeData writes data in framed form to stdout
func (c *cli) writeData(cmd *cobra.Command, data serialization.Data) error {
	bytea, err := data.MarshalBinary()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if c.format == formatHex {
		_, err = fmt.Fprintln(out, hex.EncodeToString(bytea))
		return err
	}
	_, err = out.Write(bytea)
	return err
}
