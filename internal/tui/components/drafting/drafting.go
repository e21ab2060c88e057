// Package drafting is the narrative workbench: matter-reference fields and an
// internal keyword narrative on the left, the generated client-facing
// narrative on the right. Generation happens off the update loop in a tea.Cmd;
// only a successful result replaces the client-facing text.
package drafting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/narrative"
)

const generateTimeout = 45 * time.Second

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(14)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	statusOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("78"))

	statusErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

type resultMsg struct {
	text string
	err  error
}

type KeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Generate key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Generate: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "generate narrative"),
		),
	}
}

const (
	focusClient = iota
	focusMatter
	focusTaskCode
	focusActivity
	focusInternal
	focusCount
)

type Model struct {
	client *narrative.Client
	keys   KeyMap

	clientNum textinput.Model
	matterNum textinput.Model
	taskCode  textinput.Model
	activity  textinput.Model
	internal  textarea.Model

	external   string
	status     string
	statusErr  bool
	generating bool
	focus      int
	width      int
	height     int
}

func New(client *narrative.Client, width, height int) Model {
	newInput := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 32
		ti.Width = 24
		return ti
	}

	ta := textarea.New()
	ta.Placeholder = "keywords for the work done, e.g. disclosure, bundle, chronology…"
	ta.SetWidth(48)
	ta.SetHeight(6)
	ta.CharLimit = 2000

	m := Model{
		client:    client,
		keys:      DefaultKeyMap(),
		clientNum: newInput("e.g. TH46"),
		matterNum: newInput("e.g. 56789"),
		taskCode:  newInput("e.g. JA10"),
		activity:  newInput("e.g. A104"),
		internal:  ta,
		width:     width,
		height:    height,
	}
	m.clientNum.Focus()
	return m
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	paneWidth := width/2 - 6
	if paneWidth > 20 {
		m.internal.SetWidth(paneWidth)
	}
}

// Generating reports whether a request is in flight; the root model uses it
// to keep the view from quitting mid-call unannounced.
func (m Model) Generating() bool {
	return m.generating
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.generating = false
		if msg.err != nil {
			// The client-facing narrative is deliberately left untouched.
			m.status = "generation failed: " + msg.err.Error()
			m.statusErr = true
			return m, nil
		}
		m.external = msg.text
		m.status = "narrative drafted — review before filing"
		m.statusErr = false
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Generate):
			if m.generating {
				m.status = "already generating…"
				m.statusErr = false
				return m, nil
			}
			if strings.TrimSpace(m.internal.Value()) == "" {
				m.status = "enter an internal narrative first"
				m.statusErr = true
				return m, nil
			}
			m.generating = true
			m.status = "generating…"
			m.statusErr = false
			return m, m.generateCmd()
		case key.Matches(msg, m.keys.Next):
			m.setFocus((m.focus + 1) % focusCount)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.setFocus((m.focus + focusCount - 1) % focusCount)
			return m, nil
		}
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusClient:
		m.clientNum, cmd = m.clientNum.Update(msg)
	case focusMatter:
		m.matterNum, cmd = m.matterNum.Update(msg)
	case focusTaskCode:
		m.taskCode, cmd = m.taskCode.Update(msg)
	case focusActivity:
		m.activity, cmd = m.activity.Update(msg)
	case focusInternal:
		m.internal, cmd = m.internal.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(f int) {
	m.clientNum.Blur()
	m.matterNum.Blur()
	m.taskCode.Blur()
	m.activity.Blur()
	m.internal.Blur()

	m.focus = f
	switch f {
	case focusClient:
		m.clientNum.Focus()
	case focusMatter:
		m.matterNum.Focus()
	case focusTaskCode:
		m.taskCode.Focus()
	case focusActivity:
		m.activity.Focus()
	case focusInternal:
		m.internal.Focus()
	}
}

// generateCmd performs the call off the update loop. The prompt is the
// internal keyword narrative; the matter references travel along as context.
func (m Model) generateCmd() tea.Cmd {
	prompt := m.buildPrompt()
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()
		text, err := client.GenerateText(ctx, narrative.SystemInstructions, prompt)
		return resultMsg{text: text, err: err}
	}
}

func (m Model) buildPrompt() string {
	var b strings.Builder
	add := func(label, v string) {
		if v = strings.TrimSpace(v); v != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, v)
		}
	}
	add("Client number", m.clientNum.Value())
	add("Matter number", m.matterNum.Value())
	add("Task code", m.taskCode.Value())
	add("Activity code", m.activity.Value())
	b.WriteString("Keywords: ")
	b.WriteString(strings.TrimSpace(m.internal.Value()))
	return b.String()
}

func (m Model) View() string {
	field := func(label string, ti textinput.Model) string {
		return labelStyle.Render(label) + ti.View()
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		paneTitleStyle.Render("Matter reference"),
		field("Client no.", m.clientNum),
		field("Matter no.", m.matterNum),
		field("Task code", m.taskCode),
		field("Activity", m.activity),
		"",
		paneTitleStyle.Render("Internal narrative"),
		m.internal.View(),
	)

	external := m.external
	if external == "" {
		external = "Nothing drafted yet. Fill in the internal narrative and press ctrl+g."
	}
	if m.generating {
		external = spinnerStyle.Render("⋯ drafting") + "\n\n" + external
	}
	extWidth := m.width/2 - 6
	if extWidth < 24 {
		extWidth = 24
	}
	right := lipgloss.JoinVertical(lipgloss.Left,
		paneTitleStyle.Render("Client-facing narrative"),
		paneStyle.Width(extWidth).Render(wrap(external, extWidth-2)),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, paneStyle.Render(left), " ", right)

	status := ""
	if m.status != "" {
		if m.statusErr {
			status = statusErrStyle.Render(m.status)
		} else {
			status = statusOKStyle.Render(m.status)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, "", status)
}

// wrap is a greedy word wrapper for the read-only narrative pane.
func wrap(s string, width int) string {
	if width < 10 {
		return s
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			switch {
			case line == "":
				line = word
			case len(line)+1+len(word) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
