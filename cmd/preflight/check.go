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
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	riverrors "rivaas.dev/preflight/errors"
	"rivaas.dev/preflight/validation"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	var (
		in     inputFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Report every limit violation in a request body",
		Long: `Check decodes FILE as the given shape and reports every field that
exceeds a platform limit. FILE may be "-" for stdin.

Exit status is 0 when the request is valid and 1 when violations were
found.`,
		Example: `  preflight check page.json --shape page-create
  preflight check blocks.yaml --shape blocks --format json
  cat page.json | preflight check - --format problem`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, _, err := in.read(cmd, args[0])
			if err != nil {
				return err
			}
			v, err := root.newValidator()
			if err != nil {
				return err
			}

			result := v.Validate(req)
			root.logger.Debug("request checked", "file", args[0], "shape", req.Shape(), "violations", result.Len())

			if err = writeResult(cmd, output, args[0], result, root.noColor); err != nil {
				return err
			}
			if result.HasErrors() {
				return errViolations
			}

			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&output, "format", "f", "text", "output format: text, json, problem")

	return cmd
}

func writeResult(cmd *cobra.Command, output, name string, result *validation.Result, noColor bool) error {
	out := cmd.OutOrStdout()

	switch output {
	case "text":
		if result.IsValid() {
			fmt.Fprintf(out, "%s: no violations\n", name)
			return nil
		}
		d := newDisplay(out, noColor)
		return d.print(d.report(result))
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "problem":
		if result.IsValid() {
			fmt.Fprintln(out, "{}")
			return nil
		}
		response := riverrors.NewRFC9457("").Format(nil, &checkError{result: result})
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(response.Body)
	default:
		return fmt.Errorf("unknown output format %q (valid: text, json, problem)", output)
	}
}

// checkError presents a whole report as one problem.
type checkError struct {
	result *validation.Result
}

func (e *checkError) Error() string {
	return fmt.Sprintf("request has %d violation(s)", e.result.Len())
}

func (e *checkError) HTTPStatus() int { return http.StatusUnprocessableEntity }

func (e *checkError) Code() string { return "validation_failed" }

func (e *checkError) Details() any { return e.result.Violations() }
