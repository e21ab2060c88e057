package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/constants"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/drag"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/layout"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/narrative"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/store"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/timer"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/timeutil"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/tui/components/dayboard"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/tui/components/drafting"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/tui/components/taskpanel"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/tui/components/timeline"
)

type SessionState int

const (
	StateBoard SessionState = iota
	StateTimeline
	StateNarrative
	StateAddTask
	StateAddEntry
	StateEditEntry
)

// NumMainTabs is how many states participate in tab cycling.
const NumMainTabs = 3

// tickMsg drives the running timer. It carries the timer generation at the
// moment the tick was armed so ticks from a stopped timer fall through
// harmlessly instead of resurrecting the loop.
type tickMsg struct {
	gen int
	at  time.Time
}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(constants.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

type TaskFormModel struct {
	Name        string
	Description string
	Target      string // billable target in minutes
}

type EntryFormModel struct {
	TaskID string
	Start  string
	End    string
	Notes  string
}

type EditEntryFormModel struct {
	TaskID string
	Start  string
	End    string
	Notes  string
	Delete bool
}

type Model struct {
	store  *store.Store
	timer  *timer.Controller
	window timeutil.Window
	scale  layout.Scale

	state SessionState
	keys  KeyMap
	help  help.Model

	board     dayboard.Model
	taskPanel taskpanel.Model
	timeline  timeline.Model
	drafting  drafting.Model

	form           *huh.Form
	taskForm       *TaskFormModel
	entryForm      *EntryFormModel
	editForm       *EditEntryFormModel
	editingEntryID string
	formError      string

	status   string
	quitting bool
	width    int
	height   int
}

// Config wires the TUI's collaborators together.
type Config struct {
	Store           *store.Store
	Timer           *timer.Controller
	Scale           layout.Scale
	NarrativeClient *narrative.Client
}

func NewModel(cfg Config) Model {
	window := cfg.Store.Window()
	dragCtl := drag.New(cfg.Store, cfg.Scale, window)

	m := Model{
		store:     cfg.Store,
		timer:     cfg.Timer,
		window:    window,
		scale:     cfg.Scale,
		state:     StateBoard,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		board:     dayboard.New(cfg.Store, dragCtl, cfg.Scale),
		taskPanel: taskpanel.New(nil, 0, 0),
		timeline:  timeline.New(0, 0),
		drafting:  drafting.New(cfg.NarrativeClient, 0, 0),
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateBoard:
		keys = append(keys, m.keys.Add, m.keys.Entry, m.keys.Start, m.keys.Stop)
	case StateTimeline:
		keys = append(keys, m.keys.Filter)
	case StateNarrative:
		keys = append(keys, m.keys.Generate, m.keys.Back)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateBoard:
		actions = []key.Binding{m.keys.Add, m.keys.Entry, m.keys.Start, m.keys.Stop}
	case StateTimeline:
		actions = []key.Binding{m.keys.Filter}
	case StateNarrative:
		actions = []key.Binding{m.keys.Generate, m.keys.Back}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.drafting.Init()}
	if _, ok := m.timer.Running(); ok {
		cmds = append(cmds, tickCmd(m.timer.Generation()))
	}
	return tea.Batch(cmds...)
}

// refresh pushes the store's current state into every component that renders
// from a snapshot rather than querying live.
func (m *Model) refresh() {
	running, hasRunning := m.store.RunningEntry()

	tasks := m.store.Tasks()
	rows := make([]taskpanel.Row, 0, len(tasks))
	cols := make([]timeline.Column, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, taskpanel.Row{
			Task:      t,
			Spent:     m.store.SpentMinutes(t.ID),
			Remaining: m.store.RemainingMinutes(t.ID),
			Running:   hasRunning && running.TaskID == t.ID,
		})
		cols = append(cols, timeline.Column{
			Task:    t,
			Entries: m.store.EntriesForTask(t.ID),
		})
	}
	m.taskPanel.SetRows(rows)
	m.timeline.SetColumns(cols)
	m.board.Refresh()
}
