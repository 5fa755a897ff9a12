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

//go:build !integration

package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimple_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		formatter  *Simple
		err        error
		wantStatus int
		wantCode   any
	}{
		{"plain", NewSimple(), &testError{message: "boom"}, http.StatusInternalServerError, nil},
		{"coded", NewSimple(), &testErrorWithCode{message: "x", code: "content_too_long"}, http.StatusInternalServerError, "content_too_long"},
		{"full", NewSimple(), &testErrorFull{message: "x", code: "array_too_large", status: 422}, 422, "array_too_large"},
		{"resolver", &Simple{StatusResolver: func(error) int { return http.StatusTeapot }}, &testError{message: "x"}, http.StatusTeapot, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			response := tt.formatter.Format(nil, tt.err)
			assert.Equal(t, tt.wantStatus, response.Status)
			assert.Equal(t, "application/json; charset=utf-8", response.ContentType)

			body, ok := response.Body.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.err.Error(), body["error"])
			assert.Equal(t, tt.wantCode, body["code"])
		})
	}
}

func TestForName(t *testing.T) {
	t.Parallel()

	f, err := ForName("problem", "https://x")
	require.NoError(t, err)
	assert.IsType(t, &RFC9457{}, f)

	f, err = ForName("simple", "")
	require.NoError(t, err)
	assert.IsType(t, &Simple{}, f)

	_, err = ForName("jsonapi", "")
	require.ErrorIs(t, err, ErrUnknownFormatter)
}

func TestWrite(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/fix/blocks", nil)

	err := Write(rec, req, NewSimple(), &testErrorFull{message: "too many", code: "array_too_large", status: 422})
	require.NoError(t, err)

	assert.Equal(t, 422, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "too many", body["error"])
}

func TestWithStatus(t *testing.T) {
	t.Parallel()

	inner := &testError{message: "bad"}
	err := WithStatus(inner, http.StatusBadRequest)
	assert.Equal(t, "bad", err.Error())
	assert.True(t, errors.Is(err, inner))

	var typed ErrorType
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, http.StatusBadRequest, typed.HTTPStatus())

	assert.Equal(t, "Request Entity Too Large", WithStatus(nil, http.StatusRequestEntityTooLarge).Error())
}
