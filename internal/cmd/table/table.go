// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

var printer = message.NewPrinter(language.BritishEnglish)

// FormatGBP renders an optional amount as pounds with thousands separators.
func FormatGBP(v *float64) string {
	if v == nil {
		return "-"
	}
	return printer.Sprintf("£%.0f", *v)
}

// FormatCount renders an optional count with thousands separators.
func FormatCount(v *float64) string {
	if v == nil {
		return "-"
	}
	return printer.Sprintf("%.0f", *v)
}

// FormatRate renders an optional rate per 10,000 residents.
func FormatRate(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 4 {
		return s
	}
	return string(r[:n-3]) + "..."
}

// OrDash returns "-" for blank strings.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// Join renders a list for a single cell.
func Join(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
