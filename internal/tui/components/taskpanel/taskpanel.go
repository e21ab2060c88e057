package taskpanel

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/models"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/timeutil"
)

type AddTaskMsg struct{}

type AddEntryMsg struct {
	TaskID string
}

type StartTimerMsg struct {
	TaskID string
}

type StopTimerMsg struct{}

// Row is one task with its derived time-ledger figures.
type Row struct {
	Task      models.Task
	Spent     int // minutes across all entries
	Remaining int // billable target minus spent, may be negative
	Running   bool
}

type Item struct {
	Row Row
}

func (i Item) Title() string {
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(i.Row.Task.Color)).Render("■")
	title := fmt.Sprintf("%s %s", dot, i.Row.Task.Name)
	if i.Row.Running {
		title += " ⏱ running"
	}
	return title
}

func (i Item) Description() string {
	desc := fmt.Sprintf("spent %s · target %s · remaining %s",
		timeutil.FormatDuration(i.Row.Spent),
		timeutil.FormatDuration(i.Row.Task.BillableMinutes),
		timeutil.FormatDuration(i.Row.Remaining))
	if i.Row.Task.Description != "" {
		desc += " · " + i.Row.Task.Description
	}
	return desc
}

func (i Item) FilterValue() string { return i.Row.Task.Name }

type KeyMap struct {
	Add   key.Binding
	Entry key.Binding
	Start key.Binding
	Stop  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add task"),
		),
		Entry: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new entry"),
		),
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start timer"),
		),
		Stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop timer"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(rows []Row, width, height int) Model {
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = Item{Row: r}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Tasks"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Entry, keys.Start, keys.Stop}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Entry, keys.Start, keys.Stop}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetRows(rows []Row) {
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = Item{Row: r}
	}
	m.list.SetItems(items)
}

// SelectedTaskID returns the highlighted task, or "" when the list is empty.
func (m Model) SelectedTaskID() string {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Row.Task.ID
	}
	return ""
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTaskMsg{} }
		case key.Matches(msg, m.keys.Entry):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return AddEntryMsg{TaskID: i.Row.Task.ID} }
			}
		case key.Matches(msg, m.keys.Start):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return StartTimerMsg{TaskID: i.Row.Task.ID} }
			}
		case key.Matches(msg, m.keys.Stop):
			return m, func() tea.Msg { return StopTimerMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No tasks yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
