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

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/preflight/metrics"
	"rivaas.dev/preflight/request"
	"rivaas.dev/preflight/validation"
)

// syncBuffer is a bytes.Buffer safe for a logger shared with server goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()

	s, err := New(validation.MustNew(), opts...)
	require.NoError(t, err)

	return s
}

func encode(t *testing.T, req request.Request, format request.Format) []byte {
	t.Helper()

	data, err := request.Encode(req, format)
	require.NoError(t, err)

	return data
}

func titledPage(content string) *request.PageCreate {
	return &request.PageCreate{
		Parent:     request.DatabaseParent("db"),
		Properties: request.NewProperties().Set("title", request.TitleValue(request.Text(content))),
	}
}

func serve(h http.Handler, method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

func TestNew_NilValidator(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	require.ErrorIs(t, err, ErrNilValidator)
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, WithMaxBody(0), WithShutdownTimeout(-1), WithLogger(nil), WithFormatter(nil))
	assert.Equal(t, DefaultMaxBody, s.maxBody)
	assert.Equal(t, DefaultShutdownTimeout, s.shutdownTimeout)
	assert.NotNil(t, s.logger)
	assert.NotNil(t, s.formatter)
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	w := serve(newTestServer(t).Handler(), http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestLimits(t *testing.T) {
	t.Parallel()

	w := serve(newTestServer(t).Handler(), http.MethodGet, "/v1/limits", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Limits []struct {
			Name string `json:"name"`
			Max  int    `json:"max"`
			Unit string `json:"unit"`
		} `json:"limits"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Limits)
	assert.Equal(t, "rich_text.content", body.Limits[0].Name)
	assert.Equal(t, 2000, body.Limits[0].Max)
	assert.Equal(t, "characters", body.Limits[0].Unit)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	h := newTestServer(t).Handler()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		body := encode(t, titledPage("short"), request.FormatJSON)
		w := serve(h, http.MethodPost, "/v1/validate/page-create", "application/json", body)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"valid":true,"violations":[]}`, w.Body.String())
	})

	t.Run("long title", func(t *testing.T) {
		t.Parallel()

		body := encode(t, titledPage(strings.Repeat("a", 2100)), request.FormatYAML)
		w := serve(h, http.MethodPost, "/v1/validate/page-create", "application/yaml", body)

		require.Equal(t, http.StatusOK, w.Code)
		var res struct {
			Valid      bool                   `json:"valid"`
			Violations []validation.Violation `json:"violations"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.False(t, res.Valid)
		require.Len(t, res.Violations, 1)
		assert.Equal(t, "title.title[0]", res.Violations[0].Field)
		assert.Equal(t, validation.ContentTooLong, res.Violations[0].Kind)
		assert.Equal(t, 2100, res.Violations[0].CurrentValue)
	})
}

func TestDecodeFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       []Option
		path       string
		body       []byte
		wantStatus int
	}{
		{
			name:       "unknown shape",
			path:       "/v1/validate/comment-create",
			body:       []byte(`{}`),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed body",
			path:       "/v1/validate/page-create",
			body:       []byte(`{"parent":`),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "body too large",
			opts:       []Option{WithMaxBody(16)},
			path:       "/v1/fix/page-create",
			body:       encode(t, titledPage("this body is longer than sixteen bytes"), request.FormatJSON),
			wantStatus: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := serve(newTestServer(t, tt.opts...).Handler(), http.MethodPost, tt.path, "application/json", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/problem+json; charset=utf-8", w.Header().Get("Content-Type"))
			assert.InDelta(t, float64(tt.wantStatus), decodeBody(t, w)["status"], 0)
		})
	}
}

func TestFix_SplitsLongTitle(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("a", 2100)
	body := encode(t, titledPage(content), request.FormatJSON)

	w := serve(newTestServer(t).Handler(), http.MethodPost, "/v1/fix/page-create", "application/json", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	fixed, err := request.Decode(request.ShapePageCreate, request.FormatJSON, w.Body.Bytes())
	require.NoError(t, err)

	title, ok := fixed.(*request.PageCreate).Properties.Get("title")
	require.True(t, ok)
	require.Len(t, title.Title, 2)
	assert.Equal(t, content, request.PlainTextOf(title.Title))
}

func TestFix_PreservesFormat(t *testing.T) {
	t.Parallel()

	body := encode(t, titledPage(strings.Repeat("b", 4100)), request.FormatMsgPack)

	w := serve(newTestServer(t).Handler(), http.MethodPost, "/v1/fix/page-create", "application/msgpack", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/msgpack", w.Header().Get("Content-Type"))

	fixed, err := request.Decode(request.ShapePageCreate, request.FormatMsgPack, w.Body.Bytes())
	require.NoError(t, err)
	title, _ := fixed.(*request.PageCreate).Properties.Get("title")
	assert.Len(t, title.Title, 3)
}

func TestFix_Unrepairable(t *testing.T) {
	t.Parallel()

	blocks := make(request.BlockList, 101)
	for i := range blocks {
		blocks[i] = request.Paragraph(request.Text("x"))
	}
	body := encode(t, blocks, request.FormatJSON)

	w := serve(newTestServer(t).Handler(), http.MethodPost, "/v1/fix/blocks", "application/json", body)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	problem := decodeBody(t, w)
	assert.Equal(t, "array_too_large", problem["code"])
	assert.Equal(t, "/v1/fix/blocks", problem["instance"])
	assert.Contains(t, problem["detail"], "children exceeds the maximum of 100 elements")
}

func TestFix_AutoSplitDisabled(t *testing.T) {
	t.Parallel()

	v := validation.MustNew(validation.WithAutoSplitLongText(false))
	s, err := New(v)
	require.NoError(t, err)

	body := encode(t, titledPage(strings.Repeat("a", 2100)), request.FormatJSON)
	w := serve(s.Handler(), http.MethodPost, "/v1/fix/page-create", "application/json", body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "content_too_long", decodeBody(t, w)["code"])
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	w := serve(newTestServer(t).Handler(), http.MethodGet, "/v1/validate/page-create", "", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	rec, err := metrics.New(metrics.WithPrometheus(), metrics.WithServiceName("preflight-test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rec.Shutdown(context.Background()) })

	h := newTestServer(t, WithMetrics(rec)).Handler()
	serve(h, http.MethodGet, "/healthz", "", nil)

	w := serve(h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "preflight_http_requests_total")
	assert.Contains(t, w.Body.String(), `http_route="GET /healthz"`)
}

func TestMetricsEndpoint_NotMountedWithoutPrometheus(t *testing.T) {
	t.Parallel()

	rec, err := metrics.New(metrics.WithStdoutWriter(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rec.Shutdown(context.Background()) })

	w := serve(newTestServer(t, WithMetrics(rec)).Handler(), http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	h := newTestServer(t).Handler()

	t.Run("generated", func(t *testing.T) {
		t.Parallel()

		w := serve(h, http.MethodGet, "/healthz", "", nil)
		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	})

	t.Run("client supplied", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
	})
}

func TestAccessLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		method    string
		path      string
		wantLevel string
		wantLog   bool
	}{
		{"success", http.MethodGet, "/v1/limits", "level=INFO", true},
		{"client error", http.MethodPost, "/v1/validate/nope", "level=WARN", true},
		{"health is quiet", http.MethodGet, "/healthz", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf syncBuffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			h := newTestServer(t, WithLogger(logger)).Handler()

			serve(h, tt.method, tt.path, "application/json", []byte(`{}`))

			out := buf.String()
			if !tt.wantLog {
				assert.NotContains(t, out, "http request")
				return
			}
			assert.Contains(t, out, `msg="http request"`)
			assert.Contains(t, out, tt.wantLevel)
			assert.Contains(t, out, "path="+tt.path)
			assert.Contains(t, out, "request_id=")
		})
	}
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	var buf syncBuffer
	s := newTestServer(t, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	h := s.recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := serve(h, http.MethodGet, "/boom", "", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", decodeBody(t, w)["detail"])
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "stack=")
}

func TestServe_GracefulShutdown(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var buf syncBuffer
	s := newTestServer(t, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	require.NoError(t, <-done)
	assert.Contains(t, buf.String(), "server exited")
}

func TestRun_ListenError(t *testing.T) {
	t.Parallel()

	err := newTestServer(t).Run(t.Context(), "256.0.0.1:http")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server: listen")
}
