// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rivaas.dev/preflight/config/codec"
	"rivaas.dev/preflight/limits"
)

func newLimitsCmd(root *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Print the limits catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all := limits.All()
			if output == "text" {
				d := newDisplay(cmd.OutOrStdout(), root.noColor)
				return d.print(d.limitsTable(all))
			}

			rows := make([]map[string]any, 0, len(all))
			for _, l := range all {
				rows = append(rows, map[string]any{"name": l.Name, "max": l.Max, "unit": string(l.Unit)})
			}

			return encodeTo(cmd, output, map[string]any{"limits": rows})
		},
	}

	cmd.Flags().StringVarP(&output, "format", "f", "text", "output format: text, json, yaml, toml")

	return cmd
}

// encodeTo writes v to stdout with the named config codec.
func encodeTo(cmd *cobra.Command, name string, v any) error {
	enc, err := codec.GetEncoder(codec.Type(name))
	if err != nil {
		return err
	}
	data, err := enc.Encode(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	_, err = cmd.OutOrStdout().Write(data)

	return err
}
