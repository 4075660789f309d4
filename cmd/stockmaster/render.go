// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/toeirei/stockmaster/internal/i18n"
)

var (
	colorSubtle = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderTable writes rows under the translated column headers. An empty
// result prints the "no rows" message instead of an empty frame.
func renderTable(w io.Writer, headerIDs []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, i18n.T("table.empty"))
		return
	}
	headers := make([]string, len(headerIDs))
	for i, id := range headerIDs {
		headers[i] = i18n.T(id)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorSubtle)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
}

func fmtID(v int64) string {
	if v == 0 {
		return "-"
	}
	return strconv.FormatInt(v, 10)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func stamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

func parseID(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s", i18n.T("cli.error_invalid_id", s))
	}
	return v, nil
}

func parseQty(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s", i18n.T("cli.error_invalid_quantity", s))
	}
	return v, nil
}
