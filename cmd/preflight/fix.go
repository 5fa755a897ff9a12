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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rivaas.dev/preflight/request"
	"rivaas.dev/preflight/validation"
)

func newFixCmd(root *rootOptions) *cobra.Command {
	var (
		in           inputFlags
		outPath      string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "fix FILE",
		Short: "Split over-long rich text and write the repaired request",
		Long: `Fix decodes FILE, splits every rich-text segment that exceeds the
content limit into compliant segments, and writes the result.

Violations that cannot be repaired (oversized arrays, long URLs, emails or
phone numbers) are reported and the command exits with status 1 without
writing anything.`,
		Example: `  preflight fix page.json -o page.fixed.json
  preflight fix blocks.yaml --shape blocks --output-format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, format, err := in.read(cmd, args[0])
			if err != nil {
				return err
			}
			switch {
			case outputFormat != "":
				if format, err = request.ParseFormat(outputFormat); err != nil {
					return err
				}
			case outPath != "":
				format = request.FormatFromPath(outPath)
			}

			v, err := root.newValidator()
			if err != nil {
				return err
			}
			fixed, err := v.ValidateOrFix(req)
			if err != nil {
				var verr *validation.Error
				if errors.As(err, &verr) {
					fmt.Fprintf(cmd.ErrOrStderr(), "cannot fix %s: %s\n", args[0], verr.Violation)
					return errViolations
				}
				return err
			}

			data, err := request.Encode(fixed, format)
			if err != nil {
				return err
			}
			if outPath == "" || outPath == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err = os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			root.logger.Info("request fixed", "file", args[0], "output", outPath)

			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the repaired request to this file (default stdout)")
	cmd.Flags().StringVar(&outputFormat, "output-format", "", "output encoding (default from --output, else the input encoding)")

	return cmd
}
