package ui

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestColumnWidthsUseDisplayWidth(t *testing.T) {
	headers := []string{"Title", "Kind"}
	rows := [][]string{
		{"Coupe de Quebec", "Group Stage"},
		{"東京カップ", "Ladder"},
	}

	widths := columnWidths(headers, rows)
	assert.Equal(t, []int{15, 11}, widths)

	a := formatRow(rows[0], widths)
	b := formatRow(rows[1], widths)
	assert.Equal(t, runewidth.StringWidth(a), runewidth.StringWidth(b))
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab ", pad("ab", 3))
	assert.Equal(t, "カ ", pad("カ", 3))
	assert.Equal(t, "long", pad("long", 2))
}
