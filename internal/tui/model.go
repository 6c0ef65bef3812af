// Package tui is the interactive canvas editor behind `tourney edit`.
package tui

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/msalah0e/tourney/internal/block"
	"github.com/msalah0e/tourney/internal/config"
	"github.com/msalah0e/tourney/internal/connect"
	"github.com/msalah0e/tourney/internal/graph"
	"github.com/msalah0e/tourney/internal/inspector"
	"github.com/msalah0e/tourney/internal/placement"
)

type mode int

const (
	modeCanvas mode = iota
	modeInspect
	modeEdit
)

// Canvas chrome: one title line plus the border.
const (
	canvasTop  = 2
	canvasLeft = 1
)

// Options configures a Model.
type Options struct {
	Canvas config.CanvasConfig
	// Save persists the store. Nil disables the save key.
	Save func() error
}

// Model is the bubbletea model for the canvas.
type Model struct {
	store  *graph.Store
	opts   Options
	keys   KeyMap
	help   help.Model
	input  textinput.Model
	width  int
	height int

	mode     mode
	kinds    []block.Kind
	kindIdx  int
	selected string
	session  connect.Session

	fields   []inspector.Field
	fieldIdx int

	pointer  placement.Point
	dragging bool
	lastDrag placement.Point

	status string
	err    error
}

// New returns a canvas model editing s.
func New(s *graph.Store, opts Options) Model {
	if opts.Canvas.CellWidth <= 0 || opts.Canvas.CellHeight <= 0 {
		opts.Canvas = config.Default().Canvas
	}
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 64

	m := Model{
		store:  s,
		opts:   opts,
		keys:   DefaultKeyMap,
		help:   help.New(),
		input:  ti,
		width:  100,
		height: 30,
		kinds:  block.Kinds(),
	}
	m.pointer = placement.Point{X: opts.Canvas.BlockWidth, Y: opts.Canvas.BlockHeight}
	if blocks := s.Blocks(); len(blocks) > 0 {
		m.selected = blocks[0].ID
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Selected returns the selected block id.
func (m Model) Selected() string { return m.selected }

// Status returns the last status line.
func (m Model) Status() string { return m.status }

// Err returns the last error shown to the user.
func (m Model) Err() error { return m.err }

// Kind returns the kind the add key places.
func (m Model) Kind() block.Kind { return m.kinds[m.kindIdx] }

// Connecting reports whether a connection is in progress.
func (m Model) Connecting() bool { return m.session.Active() }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	case tea.KeyMsg:
		switch m.mode {
		case modeEdit:
			return m.handleEditKeys(msg)
		case modeInspect:
			return m.handleInspectKeys(msg), nil
		default:
			return m.handleCanvasKeys(msg)
		}
	}
	return m, nil
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.err = nil
}

func (m *Model) setErr(err error) {
	m.err = err
	m.status = ""
}

func (m Model) handleCanvasKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.nudge(placement.Up)
	case key.Matches(msg, m.keys.Down):
		m.nudge(placement.Down)
	case key.Matches(msg, m.keys.Left):
		m.nudge(placement.Left)
	case key.Matches(msg, m.keys.Right):
		m.nudge(placement.Right)

	case key.Matches(msg, m.keys.NextKind):
		m.kindIdx = (m.kindIdx + 1) % len(m.kinds)
		m.setStatus("kind: %s", block.Label(m.Kind()))

	case key.Matches(msg, m.keys.Add):
		half := placement.Extents{W: m.opts.Canvas.BlockWidth / 2, H: m.opts.Canvas.BlockHeight / 2}
		pos := placement.DropPosition(m.pointer, placement.Point{}, half)
		b := m.store.AddBlock(m.Kind(), pos, "")
		m.selected = b.ID
		m.setStatus("added %s", b.Title)

	case key.Matches(msg, m.keys.Next):
		m.cycleSelection(1)
	case key.Matches(msg, m.keys.Prev):
		m.cycleSelection(-1)

	case key.Matches(msg, m.keys.Connect):
		if m.selected == "" {
			break
		}
		if m.session.Start(m.selected) {
			m.setStatus("connecting from %s: select a target and press enter", m.title(m.selected))
		}

	case key.Matches(msg, m.keys.Enter):
		m.completeConnection(m.selected)

	case key.Matches(msg, m.keys.Back):
		if m.session.Active() {
			m.session.Cancel()
			m.setStatus("connection cancelled")
		}

	case key.Matches(msg, m.keys.Delete):
		if m.selected == "" {
			break
		}
		title := m.title(m.selected)
		if m.session.Source() == m.selected {
			m.session.Cancel()
		}
		if m.store.RemoveBlock(m.selected) {
			m.selected = ""
			m.cycleSelection(1)
			m.setStatus("deleted %s", title)
		}

	case key.Matches(msg, m.keys.Inspect):
		m.openInspector()

	case key.Matches(msg, m.keys.Save):
		if m.opts.Save == nil {
			break
		}
		if err := m.opts.Save(); err != nil {
			m.setErr(err)
		} else {
			m.setStatus("saved")
		}
	}
	return m, nil
}

func (m *Model) nudge(dir placement.Direction) {
	if m.selected == "" {
		return
	}
	m.store.MovePosition(m.selected, placement.Nudge(dir, m.opts.Canvas.NudgeStep))
}

func (m *Model) cycleSelection(step int) {
	blocks := m.store.Blocks()
	if len(blocks) == 0 {
		m.selected = ""
		return
	}
	idx := slices.IndexFunc(blocks, func(b graph.Block) bool { return b.ID == m.selected })
	if idx < 0 {
		m.selected = blocks[0].ID
		return
	}
	idx = (idx + step + len(blocks)) % len(blocks)
	m.selected = blocks[idx].ID
}

func (m *Model) completeConnection(target string) {
	if !m.session.Active() || target == "" {
		return
	}
	from := m.session.Source()
	c, err := m.session.Complete(m.store, target)
	if err != nil {
		m.setErr(err)
		return
	}
	m.setStatus("connected %s → %s", m.title(from), m.title(c.To))
}

func (m *Model) title(id string) string {
	b, ok := m.store.Block(id)
	if !ok {
		return id
	}
	return b.Title
}

// ─── Inspector ───

func (m *Model) openInspector() {
	b, ok := m.store.Block(m.selected)
	if !ok {
		return
	}
	m.fields = inspector.Fields(b)
	if m.fieldIdx >= len(m.fields) {
		m.fieldIdx = 0
	}
	m.mode = modeInspect
}

func (m *Model) refreshFields() {
	b, ok := m.store.Block(m.selected)
	if !ok {
		m.mode = modeCanvas
		return
	}
	m.fields = inspector.Fields(b)
}

func (m Model) handleInspectKeys(msg tea.KeyMsg) tea.Model {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Inspect):
		m.mode = modeCanvas
	case key.Matches(msg, m.keys.Up):
		if m.fieldIdx > 0 {
			m.fieldIdx--
		}
	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Next):
		if m.fieldIdx < len(m.fields)-1 {
			m.fieldIdx++
		}
	case key.Matches(msg, m.keys.Toggle):
		f := m.fields[m.fieldIdx]
		if f.Type != inspector.Bool {
			break
		}
		if err := inspector.Toggle(m.store, m.selected, f.Name); err != nil {
			m.setErr(err)
		}
		m.refreshFields()
	case key.Matches(msg, m.keys.Enter):
		f := m.fields[m.fieldIdx]
		if f.Type == inspector.Bool {
			if err := inspector.Toggle(m.store, m.selected, f.Name); err != nil {
				m.setErr(err)
			}
			m.refreshFields()
			break
		}
		m.input.SetValue(fmt.Sprint(f.Value))
		m.input.CursorEnd()
		m.input.Focus()
		m.mode = modeEdit
	case key.Matches(msg, m.keys.Quit):
		m.mode = modeCanvas
	}
	return m
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Blur()
		m.mode = modeInspect
		return m, nil
	case tea.KeyEnter:
		f := m.fields[m.fieldIdx]
		err := inspector.SetField(m.store, m.selected, f.Name, m.input.Value())
		switch {
		case errors.Is(err, inspector.ErrInvalidNumber), errors.Is(err, inspector.ErrInvalidBool):
			// Keep the editor open so the value can be fixed
			m.setErr(err)
			return m, nil
		case err != nil:
			m.setErr(err)
		default:
			m.setStatus("%s updated", f.Name)
		}
		m.input.Blur()
		m.refreshFields()
		if m.mode == modeEdit {
			m.mode = modeInspect
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ─── Mouse ───

// canvasPoint converts a terminal cell to canvas units.
func (m Model) canvasPoint(x, y int) placement.Point {
	return placement.Point{
		X: float64(x-canvasLeft) * m.opts.Canvas.CellWidth,
		Y: float64(y-canvasTop) * m.opts.Canvas.CellHeight,
	}
}

// blockAt returns the topmost block under p.
func (m Model) blockAt(p placement.Point) (string, bool) {
	blocks := m.store.Blocks()
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		if p.X >= b.Position.X && p.X < b.Position.X+m.opts.Canvas.BlockWidth &&
			p.Y >= b.Position.Y && p.Y < b.Position.Y+m.opts.Canvas.BlockHeight {
			return b.ID, true
		}
	}
	return "", false
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if m.mode != modeCanvas {
		return m
	}
	p := m.canvasPoint(msg.X, msg.Y)

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		id, hit := m.blockAt(p)
		if !hit {
			m.pointer = p
			return m
		}
		if m.session.Active() {
			m.completeConnection(id)
			return m
		}
		m.selected = id
		m.dragging = true
		m.lastDrag = p

	case msg.Action == tea.MouseActionMotion && m.dragging:
		delta := placement.Point{X: p.X - m.lastDrag.X, Y: p.Y - m.lastDrag.Y}
		m.store.MovePosition(m.selected, placement.DragDelta(delta))
		m.lastDrag = p

	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
	}
	return m
}
