package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/timeutil"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/tui/components/dayboard"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/tui/components/taskpanel"
)

const taskPanelWidth = 44

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The tick is handled before any modal routing: a form soaking up every
	// message must not starve the running entry or kill the tick loop.
	if t, ok := msg.(tickMsg); ok {
		// A stale generation means the timer that armed this tick has since
		// stopped or been superseded; drop it without re-arming.
		if t.gen != m.timer.Generation() {
			return m, nil
		}
		m.timer.Advance(t.at)
		m.refresh()
		return m, tickCmd(t.gen)
	}

	// Handle Add Task State
	if m.state == StateAddTask {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = StateBoard
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			target := 0
			if t := strings.TrimSpace(m.taskForm.Target); t != "" {
				if i, err := strconv.Atoi(t); err == nil {
					target = i
				}
			}
			m.store.AddTask(m.taskForm.Name, m.taskForm.Description, target)
			m.refresh()
			m.state = StateBoard
		case huh.StateAborted:
			m.state = StateBoard
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Add Manual Entry State
	if m.state == StateAddEntry {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = StateBoard
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			_, err := m.store.AddManualEntry(m.entryForm.TaskID, m.entryForm.Start, m.entryForm.End, m.entryForm.Notes)
			if err != nil {
				// Stay in form state on error to allow retry
				m.formError = fmt.Sprintf("Failed to add entry: %v", err)
				m.form.State = huh.StateNormal
				return m, tea.Batch(cmds...)
			}
			m.formError = ""
			m.refresh()
			m.state = StateBoard
		case huh.StateAborted:
			m.formError = ""
			m.state = StateBoard
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Edit Entry State
	if m.state == StateEditEntry {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.formError = ""
			m.state = StateBoard
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			if err := m.applyEntryEdit(); err != nil {
				m.formError = fmt.Sprintf("Failed to save entry: %v", err)
				m.form.State = huh.StateNormal
				return m, tea.Batch(cmds...)
			}
			m.formError = ""
			m.refresh()
			m.state = StateBoard
		case huh.StateAborted:
			m.formError = ""
			m.state = StateBoard
		}
		return m, tea.Batch(cmds...)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		contentHeight := msg.Height - 4 // tabs + status + help

		h, v := docStyle.GetFrameSize()
		boardWidth := msg.Width - taskPanelWidth - h - 2
		if boardWidth < 20 {
			boardWidth = 20
		}
		m.taskPanel.SetSize(taskPanelWidth, contentHeight-v)
		m.board.SetSize(boardWidth, contentHeight-v)
		// Tabs row plus the doc margin sit above the board; the task panel
		// and a separator column sit to its left.
		m.board.SetOrigin(docStyle.GetMarginLeft()+taskPanelWidth+2, 1+docStyle.GetMarginTop())
		m.timeline.SetSize(msg.Width-h, contentHeight-v)
		m.drafting.SetSize(msg.Width-h, contentHeight-v)
		m.refresh()

	case taskpanel.AddTaskMsg:
		m.taskForm = &TaskFormModel{}
		m.form = NewTaskForm(m.taskForm)
		m.state = StateAddTask
		return m, m.form.Init()

	case taskpanel.AddEntryMsg:
		start := m.window.Min()
		m.entryForm = &EntryFormModel{
			TaskID: msg.TaskID,
			Start:  timeutil.FormatHM(start),
			End:    timeutil.FormatHM(timeutil.AddMinutes(start, 30)),
		}
		m.form = NewEntryForm(m.entryForm, m.store.Tasks())
		m.state = StateAddEntry
		return m, m.form.Init()

	case taskpanel.StartTimerMsg:
		if _, err := m.timer.Start(msg.TaskID, time.Now()); err != nil {
			m.status = fmt.Sprintf("could not start timer: %v", err)
			return m, nil
		}
		m.status = "timer started"
		m.refresh()
		return m, tickCmd(m.timer.Generation())

	case taskpanel.StopTimerMsg:
		if m.timer.Stop(time.Now()) {
			m.status = "timer stopped"
		} else {
			m.status = "no timer running"
		}
		m.refresh()
		return m, nil

	case dayboard.EditEntryMsg:
		e, ok := m.store.Entry(msg.ID)
		if !ok {
			return m, nil
		}
		m.editingEntryID = e.ID
		m.editForm = &EditEntryFormModel{
			TaskID: e.TaskID,
			Start:  timeutil.FormatHM(e.Start),
			End:    timeutil.FormatHM(e.End),
			Notes:  e.Notes,
		}
		if e.IsRunning {
			// Times, task, and delete belong to the tick while running; only
			// the notes stay editable.
			m.form = NewRunningEntryForm(m.editForm)
		} else {
			m.form = NewEditEntryForm(m.editForm, m.store.Tasks())
		}
		m.state = StateEditEntry
		return m, m.form.Init()

	case tea.MouseMsg:
		if m.state == StateBoard {
			var cmd tea.Cmd
			m.board, cmd = m.board.Update(msg)
			cmds = append(cmds, cmd)
			if msg.Type == tea.MouseRelease {
				m.refresh()
			}
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		// The timeline's filter input swallows plain keys while focused.
		if m.state == StateTimeline && m.timeline.Filtering() {
			break
		}
		// The narrative view is all text inputs: plain 'q' types, tab cycles
		// fields, and esc is the way back to the board.
		if m.state == StateNarrative {
			switch msg.String() {
			case "ctrl+c":
				m.quitting = true
				return m, tea.Quit
			case "esc":
				m.state = StateBoard
				return m, nil
			}
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.board.CancelDrag()
			m.state = (m.state + 1) % NumMainTabs
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.board.CancelDrag()
			m.state = (m.state - 1 + NumMainTabs) % NumMainTabs
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateBoard:
		m.taskPanel, cmd = m.taskPanel.Update(msg)
		cmds = append(cmds, cmd)
	case StateTimeline:
		m.timeline, cmd = m.timeline.Update(msg)
		cmds = append(cmds, cmd)
	case StateNarrative:
		m.drafting, cmd = m.drafting.Update(msg)
		cmds = append(cmds, cmd)
	}

	// A generation result must land even if the user tabbed away mid-call.
	if m.state != StateNarrative {
		switch msg.(type) {
		case tea.KeyMsg, tea.MouseMsg:
		default:
			m.drafting, cmd = m.drafting.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// applyEntryEdit writes the edit form back to the store. Running entries only
// take the notes; everything else takes task, notes, and retimed boundaries,
// or is deleted outright when the delete confirm was affirmed.
func (m *Model) applyEntryEdit() error {
	e, ok := m.store.Entry(m.editingEntryID)
	if !ok {
		return nil // deleted out from under the modal; nothing to save
	}

	if e.IsRunning {
		e.Notes = m.editForm.Notes
		return m.store.UpdateEntry(e)
	}

	if m.editForm.Delete {
		return m.store.DeleteEntry(e.ID)
	}

	e.TaskID = m.editForm.TaskID
	e.Notes = m.editForm.Notes
	if err := m.store.UpdateEntry(e); err != nil {
		return err
	}
	return m.store.UpdateEntryTimes(e.ID, m.editForm.Start, m.editForm.End)
}
