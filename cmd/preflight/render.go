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
	"strconv"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/common-nighthawk/go-figure"
	"golang.org/x/term"

	"rivaas.dev/preflight/config"
	"rivaas.dev/preflight/limits"
	"rivaas.dev/preflight/validation"
)

// display writes human-readable output. Colors are kept only when the
// destination is a terminal and --no-color is not set; otherwise every ANSI
// sequence is stripped.
type display struct {
	w     *colorprofile.Writer
	color bool
}

func newDisplay(w io.Writer, noColor bool) *display {
	d := &display{w: colorprofile.NewWriter(w, os.Environ())}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		d.color = !noColor
	}
	if !d.color {
		d.w.Profile = colorprofile.NoTTY
	}

	return d
}

func (d *display) print(s string) error {
	_, err := fmt.Fprint(d.w, s)
	return err
}

// table renders rows under headers with a rounded border. style, when not
// nil, styles a data cell.
func (d *display) table(headers []string, rows [][]string, style func(row, col int) lipgloss.Style) string {
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	borderStyle := lipgloss.NewStyle()
	if d.color {
		borderStyle = borderStyle.Foreground(lipgloss.Color("240"))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Align(lipgloss.Left).Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return base.Inherit(headerStyle)
			case style != nil && d.color:
				return base.Inherit(style(row, col))
			}
			return base
		})

	return t.String() + "\n"
}

func (d *display) limitsTable(all []limits.Limit) string {
	rows := make([][]string, len(all))
	for i, l := range all {
		rows[i] = []string{l.Name, strconv.Itoa(l.Max), string(l.Unit)}
	}

	return d.table([]string{"Name", "Max", "Unit"}, rows, nil)
}

var kindColors = map[validation.Kind]lipgloss.Color{
	validation.ContentTooLong: lipgloss.Color("11"),
	validation.ArrayTooLarge:  lipgloss.Color("9"),
}

// report renders a result as its summary line followed by one table row
// per violation.
func (d *display) report(result *validation.Result) string {
	violations := result.Violations()
	rows := make([][]string, len(violations))
	for i, v := range violations {
		fix := "no"
		if v.AutoFixAvailable {
			fix = "yes"
		}
		rows[i] = []string{v.Field, v.Kind.String(), strconv.Itoa(v.CurrentValue), strconv.Itoa(v.Limit), fix}
	}

	style := func(row, col int) lipgloss.Style {
		if col != 1 {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(kindColors[violations[row].Kind]).Bold(true)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Validation Summary: Errors: %d\n", result.Len())
	b.WriteString(d.table([]string{"Field", "Kind", "Current", "Limit", "Auto-fix"}, rows, style))

	return b.String()
}

// banner renders the serve startup banner.
func (d *display) banner(s *config.Settings) string {
	gradient := []string{"12", "14", "10", "11"}

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range figure.NewFigure("preflight", "", false).Slicify() {
		if strings.TrimSpace(line) == "" {
			b.WriteString("\n")
			continue
		}
		for i, char := range line {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradient[i%len(gradient)])).Bold(true)
			b.WriteString(style.Render(string(char)))
		}
		b.WriteString("\n")
	}

	category := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(14).PaddingLeft(2)
	value := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	disabled := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	addr := s.Server.Addr
	if strings.HasPrefix(addr, ":") {
		addr = "0.0.0.0" + addr
	}
	autoSplit := value.Foreground(lipgloss.Color("10")).Render("enabled")
	if !s.Validation.AutoSplit {
		autoSplit = disabled.Render("disabled")
	}
	metricsLine := disabled.Render("Disabled")
	if s.Metrics.Provider != "none" {
		metricsLine = value.Foreground(lipgloss.Color("13")).Render(s.Metrics.Provider)
	}

	b.WriteString("\n" + category.Render("Service") + "\n")
	b.WriteString(label.Render("Version:") + "  " + value.Foreground(lipgloss.Color("14")).Render(Version) + "\n")
	b.WriteString(label.Render("Address:") + "  " + value.Foreground(lipgloss.Color("10")).Render("http://"+addr) + "\n")
	b.WriteString("\n" + category.Render("Engine") + "\n")
	b.WriteString(label.Render("Auto-split:") + "  " + autoSplit + "\n")
	b.WriteString("\n" + category.Render("Observability") + "\n")
	b.WriteString(label.Render("Metrics:") + "  " + metricsLine + "\n\n")

	return b.String()
}
