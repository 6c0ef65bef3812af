package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Brand colors
var (
	Brand  = color.New(color.FgHiGreen, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

const Trophy = "\U0001F3C6" // 🏆

// Banner prints the tourney banner.
func Banner(subtitle string) {
	fmt.Printf("%s %s · %s\n\n", Trophy, Brand.Sprint("tourney"), subtitle)
}

// KV prints one aligned label/value line.
func KV(label string, value any) {
	fmt.Printf("  %s  %v\n", Brand.Sprintf("%-16s", label), value)
}

// Table prints a simple aligned table.
func Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := columnWidths(headers, rows)

	headerLine := "  "
	sepLine := "  "
	for i, h := range headers {
		headerLine += pad(h, widths[i]) + "  "
		sepLine += strings.Repeat("─", widths[i]) + "  "
	}
	Subtle.Println(headerLine)
	Subtle.Println(sepLine)

	for _, row := range rows {
		fmt.Println(formatRow(row, widths))
	}
}

// columnWidths measures display width, so wide runes in titles keep
// columns aligned.
func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}
	return widths
}

func formatRow(row []string, widths []int) string {
	line := "  "
	for i, cell := range row {
		if i < len(widths) {
			line += pad(cell, widths[i]) + "  "
		}
	}
	return line
}

func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// StatusIcon returns a status icon string.
func StatusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}

// WarnIcon returns a warning icon.
func WarnIcon() string {
	return Warn.Sprint("⚠")
}

// Style funcs for renderers that take plain string transforms.
func BrandFn(s string) string  { return Brand.Sprint(s) }
func SubtleFn(s string) string { return Subtle.Sprint(s) }
func InfoFn(s string) string   { return Info.Sprint(s) }
