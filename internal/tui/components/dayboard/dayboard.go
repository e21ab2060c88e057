// Package dayboard renders the day calendar canvas: an hour-marked timeline
// gutter beside a grid of entry blocks, scrolled in a viewport. Mouse
// gestures on the canvas drive the drag controller; a press-release with no
// movement is reported upward as a request to edit the entry.
package dayboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/drag"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/layout"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/models"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/store"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/timeutil"
)

const gutterWidth = 8

var (
	gutterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	gridStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("237"))

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// EditEntryMsg asks the root model to open the edit modal for an entry.
// Emitted on a click (press + release without crossing the drag threshold).
type EditEntryMsg struct {
	ID string
}

// Model is the calendar canvas component.
type Model struct {
	store  *store.Store
	drag   *drag.Controller
	scale  layout.Scale
	window timeutil.Window

	viewport viewport.Model
	originX  int // screen column of the component's left edge
	originY  int // screen row of the viewport's top edge
	width    int
	height   int
}

// New creates the canvas over a store and drag controller sharing one scale.
func New(s *store.Store, d *drag.Controller, scale layout.Scale) Model {
	m := Model{
		store:    s,
		drag:     d,
		scale:    scale,
		window:   s.Window(),
		viewport: viewport.New(0, 0),
	}
	m.Refresh()
	return m
}

// SetSize resizes the viewport.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Refresh()
}

// SetOrigin records where the viewport sits on screen, so raw mouse
// coordinates can be translated into canvas coordinates.
func (m *Model) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
}

// Dragging reports whether a drag gesture is in progress.
func (m Model) Dragging() bool {
	return m.drag.Dragging()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseLeft:
		if x, y, ok := m.toCanvas(msg.X, msg.Y); ok {
			if id, mode, hit := m.hitTest(x, y); hit {
				m.drag.Begin(id, mode, y)
			}
		}
		return m, nil

	case tea.MouseMotion:
		if m.drag.Dragging() {
			if _, y, ok := m.toCanvas(msg.X, msg.Y); ok {
				m.drag.Move(y)
			}
			m.Refresh()
		}
		return m, nil

	case tea.MouseRelease:
		if r, ok := m.drag.Release(); ok {
			m.Refresh()
			if !r.Moved {
				// A click, not a drag: reinterpret as edit.
				return m, func() tea.Msg { return EditEntryMsg{ID: r.EntryID} }
			}
		}
		return m, nil

	case tea.MouseWheelUp, tea.MouseWheelDown:
		// Scrolling mid-drag would shear the gesture; swallow it.
		if m.drag.Dragging() {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// CancelDrag discards any in-progress gesture, e.g. when focus leaves the
// board.
func (m *Model) CancelDrag() {
	m.drag.Cancel()
	m.Refresh()
}

// toCanvas translates screen coordinates into canvas-content coordinates,
// compensating for the viewport scroll. ok is false outside the entry grid
// (the gutter is not draggable).
func (m Model) toCanvas(screenX, screenY int) (x, y int, ok bool) {
	x = screenX - m.originX
	y = screenY - m.originY + m.viewport.YOffset
	if x < gutterWidth || x >= m.width {
		return 0, 0, false
	}
	if screenY < m.originY || screenY >= m.originY+m.viewport.Height {
		return 0, 0, false
	}
	return x, y, true
}

// hitTest finds the entry under a canvas row and the drag mode its zone
// implies: the top row of a tall block resizes the start, the bottom row
// resizes the end, everything else moves. Overlapping entries resolve to the
// one drawn last.
func (m Model) hitTest(x, y int) (string, drag.Mode, bool) {
	entries := m.store.Entries()
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		box := m.scale.BoxFor(m.window, e)
		if !box.Contains(y) {
			continue
		}
		mode := drag.ModeMove
		if box.Height >= 3 {
			switch y {
			case box.Top:
				mode = drag.ModeResizeStart
			case box.Top + box.Height - 1:
				mode = drag.ModeResizeEnd
			}
		}
		return e.ID, mode, true
	}
	return "", drag.ModeMove, false
}

// Refresh re-renders the canvas from the store.
func (m *Model) Refresh() {
	m.viewport.SetContent(m.render())
}

func (m Model) View() string {
	return m.viewport.View()
}

// render paints the full-day canvas: hour labels and grid lines first, entry
// blocks on top in start order so later entries win overlaps.
func (m Model) render() string {
	height := m.scale.DayHeight(m.window) + 1 // closing grid line
	canvasWidth := m.width - gutterWidth
	if canvasWidth < 10 {
		canvasWidth = 10
	}

	gutter := make([]string, height)
	rows := make([]string, height)

	for _, mark := range m.scale.HourMarks(m.window) {
		if mark.Y >= height {
			continue
		}
		gutter[mark.Y] = mark.Label
		rows[mark.Y] = gridStyle.Render(strings.Repeat("┄", canvasWidth))
	}
	for i := range rows {
		if gutter[i] == "" {
			gutter[i] = strings.Repeat(" ", 5)
		}
		if rows[i] == "" {
			rows[i] = strings.Repeat(" ", canvasWidth)
		}
	}

	entries := m.store.Entries()
	for _, e := range entries {
		m.paintEntry(rows, e, canvasWidth)
	}

	var b strings.Builder
	for i := range rows {
		b.WriteString(gutterStyle.Render(fmt.Sprintf("%-5s", gutter[i])))
		b.WriteString(gridStyle.Render("┊ "))
		b.WriteString(rows[i])
		if i < len(rows)-1 {
			b.WriteByte('\n')
		}
	}

	if len(entries) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			emptyStyle.Render("No entries yet — start a timer or add a manual entry."),
			b.String(),
		)
	}
	return b.String()
}

func (m Model) paintEntry(rows []string, e models.CalendarEntry, canvasWidth int) {
	task, ok := m.store.Task(e.TaskID)
	if !ok {
		return
	}
	box := m.scale.BoxFor(m.window, e)

	style := lipgloss.NewStyle().
		Background(lipgloss.Color(task.Color)).
		Foreground(lipgloss.Color(LabelColor(task.Color)))

	for i := 0; i < box.Height; i++ {
		y := box.Top + i
		if y < 0 || y >= len(rows) {
			continue
		}
		var text string
		switch i {
		case 0:
			text = fmt.Sprintf(" %s → %s  %s (%s)",
				timeutil.FormatHM(e.Start), timeutil.FormatHM(e.End),
				task.Name,
				timeutil.FormatDuration(timeutil.MinutesBetween(e.Start, e.End)))
			if e.IsRunning {
				text += "  ● running"
			}
		case 1:
			if e.Notes != "" {
				text = " " + e.Notes
			} else {
				text = " (no notes)"
			}
		}
		text = padTo(text, canvasWidth)
		line := style.Render(text)
		if e.IsRunning && i == 0 {
			line = runningStyle.Inherit(style).Render(text)
		}
		rows[y] = line
	}
}

// LabelColor picks a readable text color over a hex background via a simple
// luminance check.
func LabelColor(bgHex string) string {
	hex := strings.TrimPrefix(bgHex, "#")
	if len(hex) != 6 {
		return "#1A1A1A"
	}
	r, _ := strconv.ParseInt(hex[0:2], 16, 32)
	g, _ := strconv.ParseInt(hex[2:4], 16, 32)
	b, _ := strconv.ParseInt(hex[4:6], 16, 32)
	lum := 0.2126*float64(r)/255 + 0.7152*float64(g)/255 + 0.0722*float64(b)/255
	if lum > 0.6 {
		return "#1A1A1A"
	}
	return "#F5F5F5"
}

// padTo fits s to exactly width terminal cells. Widths are measured in cells,
// not bytes, so arrows and ellipses in entry labels line up.
func padTo(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}
