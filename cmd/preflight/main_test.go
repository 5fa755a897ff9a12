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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/preflight/config"
	"rivaas.dev/preflight/metrics"
	"rivaas.dev/preflight/request"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, ctx context.Context, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--no-color"}, args...))

	err := cmd.ExecuteContext(ctx)

	return stdout.String(), stderr.String(), err
}

func titledPage(content string) *request.PageCreate {
	return &request.PageCreate{
		Parent:     request.DatabaseParent("db"),
		Properties: request.NewProperties().Set("title", request.TitleValue(request.Text(content))),
	}
}

// writeRequest encodes req into dir/name using the format its extension implies.
func writeRequest(t *testing.T, dir, name string, req request.Request) string {
	t.Helper()

	path := filepath.Join(dir, name)
	data, err := request.Encode(req, request.FormatFromPath(path))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

// tableRows returns the cells of each content row of a bordered table.
func tableRows(out string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "│") {
			continue
		}
		var cells []string
		for _, cell := range strings.Split(strings.Trim(line, "│"), "│") {
			cells = append(cells, strings.TrimSpace(cell))
		}
		rows = append(rows, cells)
	}

	return rows
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, t.Context(), "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "preflight "+Version)
	assert.Contains(t, out, "Go Version: go")

	out, _, err = execute(t, t.Context(), "", "--version")
	require.NoError(t, err)
	assert.Equal(t, "preflight "+Version+"\n", out)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	valid := writeRequest(t, dir, "valid.json", titledPage("short"))
	long := writeRequest(t, dir, "long.yaml", titledPage(strings.Repeat("a", 2100)))

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		out, _, err := execute(t, t.Context(), "", "check", valid)
		require.NoError(t, err)
		assert.Equal(t, valid+": no violations\n", out)
	})

	t.Run("text report", func(t *testing.T) {
		t.Parallel()

		out, _, err := execute(t, t.Context(), "", "check", long)
		require.ErrorIs(t, err, errViolations)
		assert.True(t, strings.HasPrefix(out, "Validation Summary: Errors: 1\n"))
		rows := tableRows(out)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"Field", "Kind", "Current", "Limit", "Auto-fix"}, rows[0])
		assert.Equal(t, []string{"title.title[0]", "ContentTooLong", "2100", "2000", "yes"}, rows[1])
	})

	t.Run("json report", func(t *testing.T) {
		t.Parallel()

		out, _, err := execute(t, t.Context(), "", "check", long, "--format", "json")
		require.ErrorIs(t, err, errViolations)

		var res struct {
			Valid      bool `json:"valid"`
			Violations []struct {
				Field string `json:"field"`
				Kind  string `json:"kind"`
			} `json:"violations"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.False(t, res.Valid)
		require.Len(t, res.Violations, 1)
		assert.Equal(t, "title.title[0]", res.Violations[0].Field)
		assert.Equal(t, "ContentTooLong", res.Violations[0].Kind)
	})

	t.Run("problem report", func(t *testing.T) {
		t.Parallel()

		out, _, err := execute(t, t.Context(), "", "check", long, "-f", "problem")
		require.ErrorIs(t, err, errViolations)

		var problem map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &problem))
		assert.Equal(t, "validation_failed", problem["code"])
		assert.InDelta(t, 422, problem["status"], 0)
		assert.Len(t, problem["errors"], 1)
		assert.NotEmpty(t, problem["error_id"])
	})

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()

		data, err := request.Encode(titledPage(strings.Repeat("b", 2001)), request.FormatJSON)
		require.NoError(t, err)

		out, _, err := execute(t, t.Context(), string(data), "check", "-", "--shape", "page-create")
		require.ErrorIs(t, err, errViolations)
		assert.Contains(t, out, "(got 2001)")
	})

	t.Run("blocks", func(t *testing.T) {
		t.Parallel()

		blocks := make(request.BlockList, 101)
		for i := range blocks {
			blocks[i] = request.Paragraph(request.Text("x"))
		}
		path := writeRequest(t, t.TempDir(), "blocks.json", blocks)

		out, _, err := execute(t, t.Context(), "", "check", path, "--shape", "blocks")
		require.ErrorIs(t, err, errViolations)
		assert.Contains(t, out, "ArrayTooLarge: children exceeds the maximum of 100 elements (got 101)")
	})
}

func TestCheck_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	valid := writeRequest(t, dir, "valid.json", titledPage("short"))
	broken := writeFile(t, dir, "broken.json", `{"parent":`)

	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown shape",
			args:    []string{"check", valid, "--shape", "comment"},
			wantErr: request.ErrUnknownShape,
		},
		{
			name:    "unknown input format",
			args:    []string{"check", valid, "--input-format", "xml"},
			wantErr: request.ErrUnknownFormat,
		},
		{
			name:    "missing file",
			args:    []string{"check", filepath.Join(dir, "missing.json")},
			wantMsg: "read ",
		},
		{
			name:    "malformed body",
			args:    []string{"check", broken},
			wantMsg: "decode json as page-create",
		},
		{
			name:    "unknown output format",
			args:    []string{"check", valid, "--format", "xml"},
			wantMsg: "unknown output format",
		},
		{
			name:    "no file",
			args:    []string{"check"},
			wantMsg: "accepts 1 arg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, t.Context(), "", tt.args...)
			require.Error(t, err)
			assert.NotErrorIs(t, err, errViolations)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestFix(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("a", 4500)

	t.Run("writes output file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeRequest(t, dir, "page.json", titledPage(content))
		out := filepath.Join(dir, "fixed.yaml")

		_, _, err := execute(t, t.Context(), "", "fix", in, "-o", out)
		require.NoError(t, err)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		fixed, err := request.Decode(request.ShapePageCreate, request.FormatYAML, data)
		require.NoError(t, err)

		title, ok := fixed.(*request.PageCreate).Properties.Get("title")
		require.True(t, ok)
		require.Len(t, title.Title, 3)
		assert.Equal(t, content, request.PlainTextOf(title.Title))

		original, err := os.ReadFile(in)
		require.NoError(t, err)
		assert.Contains(t, string(original), content)
	})

	t.Run("stdout keeps input format", func(t *testing.T) {
		t.Parallel()

		in := writeRequest(t, t.TempDir(), "page.json", titledPage(content))

		stdout, _, err := execute(t, t.Context(), "", "fix", in)
		require.NoError(t, err)

		fixed, err := request.Decode(request.ShapePageCreate, request.FormatJSON, []byte(stdout))
		require.NoError(t, err)
		title, _ := fixed.(*request.PageCreate).Properties.Get("title")
		assert.Len(t, title.Title, 3)
	})

	t.Run("unrepairable", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocks := make(request.BlockList, 101)
		for i := range blocks {
			blocks[i] = request.Paragraph(request.Text("x"))
		}
		in := writeRequest(t, dir, "blocks.json", blocks)
		out := filepath.Join(dir, "fixed.json")

		_, stderr, err := execute(t, t.Context(), "", "fix", in, "--shape", "blocks", "-o", out)
		require.ErrorIs(t, err, errViolations)
		assert.Contains(t, stderr, "cannot fix "+in+": ArrayTooLarge: children")
		assert.NoFileExists(t, out)
	})

	t.Run("auto split disabled by config", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cfg := writeFile(t, dir, "preflight.yaml", "validation:\n  autosplit: false\n")
		in := writeRequest(t, dir, "page.json", titledPage(content))

		_, stderr, err := execute(t, t.Context(), "", "fix", in, "--config", cfg)
		require.ErrorIs(t, err, errViolations)
		assert.Contains(t, stderr, "ContentTooLong: title.title[0]")
	})
}

func TestLimits(t *testing.T) {
	t.Parallel()

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		out, _, err := execute(t, t.Context(), "", "limits")
		require.NoError(t, err)

		assert.NotContains(t, out, "\x1b[", "no color outside a terminal")
		rows := tableRows(out)
		require.Len(t, rows, 14)
		assert.Equal(t, []string{"Name", "Max", "Unit"}, rows[0])
		assert.Equal(t, []string{"rich_text.content", "2000", "characters"}, rows[1])
		assert.Equal(t, []string{"files", "100", "elements"}, rows[13])
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		out, _, err := execute(t, t.Context(), "", "limits", "--format", "json")
		require.NoError(t, err)

		var body struct {
			Limits []map[string]any `json:"limits"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &body))
		require.Len(t, body.Limits, 13)
		assert.Equal(t, "children", body.Limits[11]["name"])
	})

	t.Run("toml", func(t *testing.T) {
		t.Parallel()

		out, _, err := execute(t, t.Context(), "", "limits", "-f", "toml")
		require.NoError(t, err)
		assert.Contains(t, out, "[[limits]]")
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, t.Context(), "", "limits", "-f", "csv")
		require.Error(t, err)
	})
}

func TestConfigShow(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := writeFile(t, dir, "preflight.toml", "[logging]\nlevel = \"debug\"\n\n[server]\nshutdowntimeout = \"3s\"\n")

	out, _, err := execute(t, t.Context(), "", "config", "show", "--config", cfg, "--format", "json", "--log-format", "json")
	require.NoError(t, err)

	var got map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "debug", got["logging"]["level"])
	assert.Equal(t, "json", got["logging"]["format"])
	assert.Equal(t, "3s", got["server"]["shutdowntimeout"])
	assert.Equal(t, ":8080", got["server"]["addr"])
	assert.Equal(t, true, got["validation"]["autosplit"])
}

func TestRootConfigErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"missing config file", []string{"limits", "--config", filepath.Join(dir, "nope.yaml")}},
		{"schema violation", []string{"limits", "--config", writeFile(t, dir, "bad.yaml", "server:\n  port: 80\n")}},
		{"invalid level in file", []string{"limits", "--config", writeFile(t, dir, "level.yaml", "logging:\n  level: loud\n")}},
		{"invalid level flag", []string{"limits", "--log-level", "loud"}},
		{"invalid format flag", []string{"limits", "--log-format", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, t.Context(), "", tt.args...)
			require.Error(t, err)
		})
	}
}

func TestLoggingGoesToStderr(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeRequest(t, dir, "page.json", titledPage(strings.Repeat("a", 2100)))
	out := filepath.Join(dir, "fixed.json")

	stdout, stderr, err := execute(t, t.Context(), "", "fix", in, "-o", out, "--log-level", "debug", "--log-format", "text")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `msg="rich text split"`)
	assert.Contains(t, stderr, `msg="request fixed"`)
	assert.Contains(t, stderr, "service=preflight")
}

func TestNewRecorder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		provider string
		want     metrics.Provider
		wantNil  bool
		wantErr  bool
	}{
		{provider: "none", wantNil: true},
		{provider: "prometheus", want: metrics.PrometheusProvider},
		{provider: "stdout", want: metrics.StdoutProvider},
		{provider: "statsd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			t.Parallel()

			s := config.DefaultSettings()
			s.Metrics.Provider = tt.provider

			rec, err := newRecorder(&s, nil, &bytes.Buffer{})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, rec)
				return
			}
			t.Cleanup(func() { _ = rec.Shutdown(context.Background()) })
			assert.Equal(t, tt.want, rec.Provider())
			assert.Equal(t, "preflight", rec.ServiceName())
		})
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(t.Context(), 200*time.Millisecond)
	defer cancel()

	stdout, stderr, err := execute(t, ctx, "", "serve", "--addr", "127.0.0.1:0", "--log-format", "text")
	require.NoError(t, err)
	assert.Contains(t, stderr, `msg="server exited"`)
	assert.Contains(t, stdout, "http://127.0.0.1:0")
	assert.Contains(t, stdout, "Auto-split:")
	assert.NotContains(t, stdout, "\x1b[")
}

func TestServe_NoBanner(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(t.Context(), 200*time.Millisecond)
	defer cancel()

	stdout, _, err := execute(t, ctx, "", "serve", "--addr", "127.0.0.1:0", "--no-banner")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}
