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
	"io"
	"os"

	"github.com/spf13/cobra"

	"rivaas.dev/preflight/request"
)

// inputFlags selects how a request file is decoded.
type inputFlags struct {
	shape  string
	format string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.shape, "shape", "s", string(request.ShapePageCreate),
		"request shape: page-create, page-update, database-create, blocks")
	cmd.Flags().StringVar(&f.format, "input-format", "",
		"input encoding: json, yaml, msgpack (default from the file extension)")
}

// read decodes path, or stdin when path is "-".
func (f *inputFlags) read(cmd *cobra.Command, path string) (request.Request, request.Format, error) {
	shape, err := request.ParseShape(f.shape)
	if err != nil {
		return nil, "", err
	}

	format := request.FormatFromPath(path)
	if f.format != "" {
		if format, err = request.ParseFormat(f.format); err != nil {
			return nil, "", err
		}
	}

	var data []byte
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}

	req, err := request.Decode(shape, format, data)
	if err != nil {
		return nil, "", err
	}

	return req, format, nil
}
