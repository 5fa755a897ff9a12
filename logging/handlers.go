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

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[37m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

var consoleBuilderPool = sync.Pool{
	New: func() any { return &strings.Builder{} },
}

// consoleHandler writes one human-readable line per record:
//
//	15:04:05.000 INFO  validation completed operation=validate violations=0
//
// Groups become dotted key prefixes. The handler honours Level, AddSource
// and ReplaceAttr from its options.
type consoleHandler struct {
	opts   slog.HandlerOptions
	color  bool
	mu     *sync.Mutex
	output io.Writer
	attrs  []slog.Attr // already prefixed and replaced
	prefix string
	groups []string
}

func newConsoleHandler(w io.Writer, opts *slog.HandlerOptions, color bool) *consoleHandler {
	h := &consoleHandler{output: w, color: color, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}

	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

// Handle formats and writes a log record.
func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	b := consoleBuilderPool.Get().(*strings.Builder)
	b.Reset()
	defer consoleBuilderPool.Put(b)

	if !r.Time.IsZero() {
		h.paint(b, colorDim, r.Time.Format("15:04:05.000"))
		b.WriteByte(' ')
	}
	h.paint(b, h.levelColor(r.Level)+colorBold, fmt.Sprintf("%-5s", r.Level.String()))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(b, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(b, h.prefix, h.groups, a)
		return true
	})

	if h.opts.AddSource && r.PC != 0 {
		if src := recordSource(r.PC); src != "" {
			b.WriteByte(' ')
			h.paint(b, colorGray, "("+src+")")
		}
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.output, b.String())

	return err
}

// WithAttrs returns a handler that prepends attrs to every record.
func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	resolved := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	resolved = append(resolved, h.attrs...)
	for _, a := range attrs {
		h.collect(&resolved, h.prefix, h.groups, a)
	}
	c := *h
	c.attrs = resolved

	return &c
}

// WithGroup returns a handler that qualifies later keys with name.
func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.prefix = h.prefix + name + "."
	c.groups = append(append([]string(nil), h.groups...), name)

	return &c
}

func (h *consoleHandler) paint(b *strings.Builder, color, s string) {
	if !h.color {
		b.WriteString(s)
		return
	}
	b.WriteString(color)
	b.WriteString(s)
	b.WriteString(colorReset)
}

func (h *consoleHandler) levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	default:
		return colorBlue
	}
}

func (h *consoleHandler) appendAttr(b *strings.Builder, prefix string, groups []string, a slog.Attr) {
	var flat []slog.Attr
	h.collect(&flat, prefix, groups, a)
	for _, f := range flat {
		writeAttr(b, f)
	}
}

// collect flattens a into dst, replacing and prefixing keys.
func (h *consoleHandler) collect(dst *[]slog.Attr, prefix string, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return
		}
		sub, subGroups := prefix, groups
		if a.Key != "" {
			sub = prefix + a.Key + "."
			subGroups = append(append([]string(nil), groups...), a.Key)
		}
		for _, g := range group {
			h.collect(dst, sub, subGroups, g)
		}

		return
	}
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(groups, a)
		a.Value = a.Value.Resolve()
	}
	if a.Equal(slog.Attr{}) {
		return
	}
	a.Key = prefix + a.Key
	*dst = append(*dst, a)
}

func writeAttr(b *strings.Builder, a slog.Attr) {
	b.WriteByte(' ')
	b.WriteString(a.Key)
	b.WriteByte('=')

	v := a.Value
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			s = strconv.Quote(s)
		}
		b.WriteString(s)
	case slog.KindInt64:
		b.WriteString(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		b.WriteString(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		b.WriteString(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindBool:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case slog.KindDuration:
		b.WriteString(v.Duration().String())
	case slog.KindTime:
		b.WriteString(v.Time().Format(time.RFC3339))
	default:
		if err, ok := v.Any().(error); ok {
			b.WriteString(strconv.Quote(err.Error()))
			return
		}
		b.WriteString(fmt.Sprint(v.Any()))
	}
}

// recordSource returns "file.go:line" for pc.
func recordSource(pc uintptr) string {
	fs := runtime.CallersFrames([]uintptr{pc})
	f, _ := fs.Next()
	if f.File == "" {
		return ""
	}

	return filepath.Base(f.File) + ":" + strconv.Itoa(f.Line)
}
