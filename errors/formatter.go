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

package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnknownFormatter is returned by [ForName] for an unsupported name.
var ErrUnknownFormatter = errors.New("unknown error formatter")

// Formatter turns an error into the parts of an HTTP error response. The
// request may be nil when formatting outside a server, e.g. for CLI output.
//
// Example:
//
//	formatter := errors.NewRFC9457("https://preflight.example.com/problems")
//	response := formatter.Format(req, err)
type Formatter interface {
	Format(req *http.Request, err error) Response
}

// Response is a formatted error response.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// ContentType is the Content-Type header value.
	ContentType string

	// Body is marshaled to JSON.
	Body any

	// Headers are extra headers to set.
	Headers http.Header
}

// ErrorType lets an error declare its HTTP status code.
// validation.Error reports 422 Unprocessable Entity.
type ErrorType interface {
	error
	HTTPStatus() int
}

// ErrorDetails lets an error expose structured details, such as the
// violations behind a validation failure.
type ErrorDetails interface {
	error
	Details() any
}

// ErrorCode lets an error expose a machine-readable code such as
// "content_too_long".
type ErrorCode interface {
	error
	Code() string
}

// NewRFC9457 creates an RFC 9457 formatter. baseURL is prepended to error
// codes to build problem type URIs.
func NewRFC9457(baseURL string) *RFC9457 {
	return &RFC9457{BaseURL: baseURL}
}

// NewSimple creates a [Simple] formatter.
func NewSimple() *Simple {
	return &Simple{}
}

// ForName returns the formatter registered under name: "problem" (or
// "rfc9457") and "simple" (or "json").
func ForName(name, baseURL string) (Formatter, error) {
	switch name {
	case "problem", "rfc9457":
		return NewRFC9457(baseURL), nil
	case "simple", "json":
		return NewSimple(), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormatter, name)
}

// Write formats err with f and writes the response to w.
//
// Example:
//
//	if err != nil {
//	    _ = errors.Write(w, r, formatter, err)
//	    return
//	}
func Write(w http.ResponseWriter, req *http.Request, f Formatter, err error) error {
	response := f.Format(req, err)
	for k, values := range response.Headers {
		for _, v := range values {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Type", response.ContentType)
	w.WriteHeader(response.Status)

	return json.NewEncoder(w).Encode(response.Body)
}

// WithStatus wraps an error with an explicit HTTP status code.
// If err is nil, the status text is used as the message.
//
// Example:
//
//	return errors.WithStatus(err, http.StatusBadRequest)
func WithStatus(err error, status int) error {
	return &statusError{err: err, status: status}
}

type statusError struct {
	err    error
	status int
}

func (e *statusError) Error() string {
	if e.err == nil {
		return http.StatusText(e.status)
	}

	return e.err.Error()
}

func (e *statusError) Unwrap() error {
	return e.err
}

func (e *statusError) HTTPStatus() int {
	return e.status
}

// statusOf resolves the status for err: the custom resolver, then
// ErrorType, then 500.
func statusOf(resolver func(error) int, err error) int {
	if resolver != nil {
		return resolver(err)
	}

	var typed ErrorType
	if errors.As(err, &typed) {
		return typed.HTTPStatus()
	}

	return http.StatusInternalServerError
}
