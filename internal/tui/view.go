package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msalah0e/tourney/internal/block"
	"github.com/msalah0e/tourney/internal/graph"
	"github.com/msalah0e/tourney/internal/inspector"
)

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)

	canvasStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))

	paneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			Width(34)
)

// Box corners per block state: plain, selected, connection source.
var boxes = [3][6]rune{
	{'┌', '┐', '└', '┘', '─', '│'},
	{'╔', '╗', '╚', '╝', '═', '║'},
	{'┏', '┓', '┗', '┛', '━', '┃'},
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	header := titleStyle.Render("🏆 "+m.store.Name()) + subtleStyle.Render(fmt.Sprintf("  ·  adding %s", block.Label(m.Kind())))
	if m.session.Active() {
		header += activeStyle.Render("  ·  connecting from " + m.title(m.session.Source()))
	}
	b.WriteString(header + "\n")

	paneWidth := lipgloss.Width(paneStyle.Render(""))
	cols := max(20, m.width-paneWidth-2)
	rows := max(8, m.height-5)
	canvas := canvasStyle.Render(m.renderCanvas(cols, rows))

	var side string
	if m.mode == modeCanvas {
		side = paneStyle.Render(m.renderConnections())
	} else {
		side = paneStyle.Render(m.renderInspector())
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, canvas, side))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("✗ " + m.err.Error()))
	case m.status != "":
		b.WriteString(okStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderCanvas draws every block onto a cols x rows rune grid.
func (m Model) renderCanvas(cols, rows int) string {
	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}

	cw, ch := m.opts.Canvas.CellWidth, m.opts.Canvas.CellHeight
	bw := max(4, int(m.opts.Canvas.BlockWidth/cw))
	bh := max(3, int(m.opts.Canvas.BlockHeight/ch))

	for _, blk := range m.store.Blocks() {
		x0, y0 := int(blk.Position.X/cw), int(blk.Position.Y/ch)
		style := 0
		switch {
		case m.session.Active() && blk.ID == m.session.Source():
			style = 2
		case blk.ID == m.selected:
			style = 1
		}
		drawBox(grid, x0, y0, bw, bh, boxes[style])
		drawText(grid, x0+1, y0+1, bw-2, blk.Title)
		if bh > 3 {
			drawText(grid, x0+1, y0+2, bw-2, block.Label(blk.Kind))
		}
	}

	lines := make([]string, rows)
	for i, r := range grid {
		lines[i] = string(r)
	}
	return strings.Join(lines, "\n")
}

func drawBox(grid [][]rune, x0, y0, w, h int, box [6]rune) {
	set := func(x, y int, r rune) {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) {
			grid[y][x] = r
		}
	}
	for x := x0 + 1; x < x0+w-1; x++ {
		set(x, y0, box[4])
		set(x, y0+h-1, box[4])
	}
	for y := y0 + 1; y < y0+h-1; y++ {
		set(x0, y, box[5])
		set(x0+w-1, y, box[5])
		for x := x0 + 1; x < x0+w-1; x++ {
			set(x, y, ' ')
		}
	}
	set(x0, y0, box[0])
	set(x0+w-1, y0, box[1])
	set(x0, y0+h-1, box[2])
	set(x0+w-1, y0+h-1, box[3])
}

func drawText(grid [][]rune, x, y, width int, s string) {
	if y < 0 || y >= len(grid) {
		return
	}
	runes := []rune(s)
	if len(runes) > width {
		runes = append(runes[:max(0, width-1)], '…')
	}
	for i, r := range runes {
		if x+i >= 0 && x+i < len(grid[y]) {
			grid[y][x+i] = r
		}
	}
}

func (m Model) renderConnections() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Connections") + "\n")
	conns := m.store.Connections()
	if len(conns) == 0 {
		b.WriteString(subtleStyle.Render("none yet: c then enter"))
		return b.String()
	}
	for _, c := range conns {
		line := fmt.Sprintf("%s → %s", m.title(c.From), m.title(c.To))
		if c.From == m.selected || c.To == m.selected {
			line = activeStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderInspector() string {
	var b strings.Builder
	blk, _ := m.store.Block(m.selected)
	b.WriteString(titleStyle.Render(block.Label(blk.Kind)) + "\n")
	for i, f := range m.fields {
		line := fieldLine(f)
		if i == m.fieldIdx {
			if m.mode == modeEdit {
				line = f.Name + " " + m.input.View()
			}
			line = activeStyle.Render("› " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(subtleStyle.Render(positionLine(blk)))
	return b.String()
}

func fieldLine(f inspector.Field) string {
	switch f.Type {
	case inspector.Int:
		return fmt.Sprintf("%s: %v %s", f.Name, f.Value, subtleStyle.Render(fmt.Sprintf("[%d..%d]", f.Min, f.Max)))
	case inspector.Bool:
		mark := "[ ]"
		if v, _ := f.Value.(bool); v {
			mark = "[x]"
		}
		return fmt.Sprintf("%s %s", mark, f.Name)
	default:
		return fmt.Sprintf("%s: %v", f.Name, f.Value)
	}
}

func positionLine(b graph.Block) string {
	return fmt.Sprintf("at (%g, %g)", b.Position.X, b.Position.Y)
}
