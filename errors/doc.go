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

// Package errors formats failures as HTTP-style error bodies for the
// preflight server and the CLI's machine-readable output.
//
// Two formatters are provided:
//   - RFC9457: RFC 9457 Problem Details (application/problem+json)
//   - Simple: a flat JSON object (application/json)
//
// Errors opt in to richer output through three small interfaces:
// [ErrorType] (status code), [ErrorDetails] (structured details) and
// [ErrorCode] (machine-readable code). validation.Error implements all
// three, so a failed ValidateOrFix becomes:
//
//	{
//	  "type": "https://preflight.example.com/problems/array_too_large",
//	  "title": "Unprocessable Entity",
//	  "status": 422,
//	  "detail": "ArrayTooLarge: Tags.multiSelect exceeds the maximum of 100 elements (got 150)",
//	  "instance": "/v1/fix/page-create",
//	  "code": "array_too_large",
//	  "error_id": "3f0c2a4e-...",
//	  "errors": [{"field": "Tags.multiSelect", "kind": "ArrayTooLarge", ...}]
//	}
//
// # Quick Start
//
//	formatter := errors.NewRFC9457("https://preflight.example.com/problems")
//	if _, err := v.ValidateOrFix(req); err != nil {
//		_ = errors.Write(w, r, formatter, err)
//		return
//	}
package errors
