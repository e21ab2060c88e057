package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/timeutil"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateBoard:
		content = m.viewBoard()
	case StateTimeline:
		content = docStyle.Render(m.timeline.View())
	case StateNarrative:
		content = docStyle.Render(m.drafting.View())
	case StateAddTask, StateAddEntry, StateEditEntry:
		content = m.viewForm()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Board", "Timeline", "Narrative"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewBoard() string {
	return docStyle.Render(lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.taskPanel.View(),
		"  ",
		m.board.View(),
	))
}

func (m Model) viewForm() string {
	parts := []string{m.form.View()}
	if m.formError != "" {
		parts = append(parts, errorStyle.Render(m.formError))
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, parts...),
	)
}

func (m Model) viewStatus() string {
	left := statusStyle.Render(m.status)

	right := ""
	if e, ok := m.store.RunningEntry(); ok {
		name := "unknown task"
		if t, found := m.store.Task(e.TaskID); found {
			name = t.Name
		}
		elapsed := timeutil.MinutesBetween(e.Start, e.End)
		right = runningBadgeStyle.Render(fmt.Sprintf("⏱ %s %s", name, timeutil.FormatDuration(elapsed)))
	} else {
		right = statusStyle.Render(m.window.Anchor.Format("Mon 02 Jan"))
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + lipgloss.NewStyle().Width(gap).Render("") + right
}
