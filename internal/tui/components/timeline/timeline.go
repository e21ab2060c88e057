// Package timeline is the read-only browser view: one column per task, the
// task's entries listed chronologically underneath. Columns can be toggled
// off and entries filtered by substring so the drafting workflow can pull up
// just the material for one matter.
package timeline

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/models"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/timeutil"
)

const columnWidth = 34

var (
	headerStyle = lipgloss.NewStyle().Bold(true)

	columnStyle = lipgloss.NewStyle().
			Width(columnWidth).
			PaddingRight(2)

	entryTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	notesStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	hiddenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)
)

// Column is one task and its entries, already ordered by start time.
type Column struct {
	Task    models.Task
	Entries []models.CalendarEntry
}

type KeyMap struct {
	Toggle key.Binding
	Filter key.Binding
	Clear  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "toggle column"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
	}
}

type Model struct {
	columns  []Column
	hidden   map[string]bool
	filter   textinput.Model
	viewport viewport.Model
	keys     KeyMap
	width    int
	height   int
}

func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "filter entries…"
	ti.CharLimit = 64
	ti.Width = 30

	m := Model{
		hidden:   map[string]bool{},
		filter:   ti,
		viewport: viewport.New(width, height),
		keys:     DefaultKeyMap(),
		width:    width,
		height:   height,
	}
	return m
}

// SetColumns replaces the browser's data. Hidden state survives refreshes so
// toggles are not lost on every tick.
func (m *Model) SetColumns(cols []Column) {
	m.columns = cols
	m.refresh()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2 // filter line + spacing
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.refresh()
}

func (m Model) Filtering() bool {
	return m.filter.Focused()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filter.Focused() {
			switch msg.String() {
			case "enter":
				m.filter.Blur()
				return m, nil
			case "esc":
				m.filter.Blur()
				m.filter.SetValue("")
				m.refresh()
				return m, nil
			}
			m.filter, cmd = m.filter.Update(msg)
			m.refresh()
			return m, cmd
		}

		switch {
		case key.Matches(msg, m.keys.Filter):
			m.filter.Focus()
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Clear):
			m.filter.SetValue("")
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			idx := int(msg.String()[0] - '1')
			if idx >= 0 && idx < len(m.columns) {
				id := m.columns[idx].Task.ID
				m.hidden[id] = !m.hidden[id]
				m.refresh()
			}
			return m, nil
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.render())
}

func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.filter.View(),
		"",
		m.viewport.View(),
	)
}

func (m Model) render() string {
	if len(m.columns) == 0 {
		return mutedStyle.Render("No tasks to browse.")
	}

	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))

	rendered := make([]string, 0, len(m.columns))
	for i, col := range m.columns {
		rendered = append(rendered, m.renderColumn(i, col, needle))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderColumn(idx int, col Column, needle string) string {
	var b strings.Builder

	title := fmt.Sprintf("%d · %s", idx+1, col.Task.Name)
	if m.hidden[col.Task.ID] {
		b.WriteString(hiddenStyle.Render(title + " (hidden)"))
		return columnStyle.Render(b.String())
	}
	b.WriteString(headerStyle.Foreground(lipgloss.Color(col.Task.Color)).Render(title))
	b.WriteByte('\n')

	total := 0
	shown := 0
	for _, e := range col.Entries {
		total += timeutil.MinutesBetween(e.Start, e.End)
		if needle != "" && !matches(e, col.Task, needle) {
			continue
		}
		shown++
		line := fmt.Sprintf("%s–%s (%s)",
			timeutil.FormatHM(e.Start), timeutil.FormatHM(e.End),
			timeutil.FormatDuration(timeutil.MinutesBetween(e.Start, e.End)))
		if e.IsRunning {
			line += " ⏱"
		}
		b.WriteByte('\n')
		b.WriteString(entryTimeStyle.Render(line))
		b.WriteByte('\n')
		if e.Notes != "" {
			b.WriteString(notesStyle.Render(truncate(e.Notes, columnWidth-4)))
		} else {
			b.WriteString(mutedStyle.Render("(no notes)"))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if shown == 0 {
		b.WriteString(mutedStyle.Render("no matching entries"))
		b.WriteByte('\n')
	}
	b.WriteString(headerStyle.Render("Σ " + timeutil.FormatDuration(total)))

	return columnStyle.Render(b.String())
}

func matches(e models.CalendarEntry, t models.Task, needle string) bool {
	return strings.Contains(strings.ToLower(e.Notes), needle) ||
		strings.Contains(strings.ToLower(t.Name), needle)
}

// truncate caps s at max terminal cells, never splitting a rune.
func truncate(s string, max int) string {
	if max < 1 {
		return s
	}
	return runewidth.Truncate(s, max, "…")
}
