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

package validation

import (
	"errors"
	"net/http"
)

// ErrValidation is a sentinel error for validation failures.
// Use errors.Is(err, ErrValidation) to check if an error is a validation error.
var ErrValidation = errors.New("validation")

var (
	// ErrEmptyContent is returned when splitting a segment without text content.
	ErrEmptyContent = errors.New("rich text segment has no content to split")

	// ErrInvalidLimit is returned when splitting with a non-positive limit.
	ErrInvalidLimit = errors.New("split limit must be positive")

	// ErrUnsupportedRequest is returned for a nil or unknown request value.
	ErrUnsupportedRequest = errors.New("unsupported request")
)

// Error is the failure returned by [Validator.ValidateOrFix] and
// [Validator.ValidateOrThrow]. It carries the violation that stopped the
// call.
//
// Example:
//
//	var verr *validation.Error
//	if errors.As(err, &verr) {
//	    fmt.Println(verr.Violation.Field, verr.Violation.Limit)
//	}
type Error struct {
	Violation Violation `json:"violation"`
}

// Error returns "<Kind>: <message>".
func (e *Error) Error() string {
	return e.Violation.String()
}

// Unwrap returns [ErrValidation] for errors.Is/errors.As compatibility.
func (e *Error) Unwrap() error {
	return ErrValidation
}

// HTTPStatus implements rivaas.dev/preflight/errors.ErrorType.
func (e *Error) HTTPStatus() int {
	return http.StatusUnprocessableEntity
}

// Code implements rivaas.dev/preflight/errors.ErrorCode.
func (e *Error) Code() string {
	return e.Violation.Code()
}

// Details implements rivaas.dev/preflight/errors.ErrorDetails.
func (e *Error) Details() any {
	return []Violation{e.Violation}
}
