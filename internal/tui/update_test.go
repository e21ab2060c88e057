package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/layout"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/models"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/narrative"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/store"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/timer"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/timeutil"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/tui/components/taskpanel"
)

func newTestModel(t *testing.T) (Model, *store.Store, models.Task) {
	t.Helper()
	window := timeutil.NewWindow(time.Now(), 8, 18)
	s := store.New(window)
	task := s.AddTask("Drafting", "", 120)

	m := NewModel(Config{
		Store:           s,
		Timer:           timer.New(s),
		Scale:           layout.Scale{PxPerHour: 12},
		NarrativeClient: narrative.NewClient(narrative.Config{}),
	})
	return m, s, task
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	nm, cmd := m.Update(msg)
	out, ok := nm.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestStartTimer_ArmsTickAndRunsEntry(t *testing.T) {
	m, s, task := newTestModel(t)

	m, cmd := update(t, m, taskpanel.StartTimerMsg{TaskID: task.ID})
	require.NotNil(t, cmd, "starting a timer must arm the tick loop")

	running, ok := s.RunningEntry()
	require.True(t, ok)
	assert.Equal(t, task.ID, running.TaskID)
	assert.Equal(t, running.Start, running.End)
}

func TestStopTimer_FreezesEntry(t *testing.T) {
	m, s, task := newTestModel(t)

	m, _ = update(t, m, taskpanel.StartTimerMsg{TaskID: task.ID})
	m, _ = update(t, m, taskpanel.StopTimerMsg{})

	_, ok := s.RunningEntry()
	assert.False(t, ok)
	assert.Equal(t, "timer stopped", m.status)
}

func TestStaleTick_DroppedWithoutRearming(t *testing.T) {
	m, s, task := newTestModel(t)

	m, _ = update(t, m, taskpanel.StartTimerMsg{TaskID: task.ID})
	staleGen := m.timer.Generation()
	m, _ = update(t, m, taskpanel.StopTimerMsg{})

	entries := s.Entries()
	require.Len(t, entries, 1)
	frozenEnd := entries[0].End

	// A tick armed before the stop must neither mutate nor re-arm.
	m, cmd := update(t, m, tickMsg{gen: staleGen, at: time.Now().Add(time.Hour)})
	assert.Nil(t, cmd)
	got, _ := s.Entry(entries[0].ID)
	assert.Equal(t, frozenEnd, got.End)
}

func TestFreshTick_AdvancesRunningEntryAndRearms(t *testing.T) {
	m, s, task := newTestModel(t)

	m, _ = update(t, m, taskpanel.StartTimerMsg{TaskID: task.ID})
	gen := m.timer.Generation()

	running, _ := s.RunningEntry()
	later := running.Start.Add(time.Minute)

	m, cmd := update(t, m, tickMsg{gen: gen, at: later})
	require.NotNil(t, cmd, "a live tick re-arms itself")

	got, ok := s.RunningEntry()
	require.True(t, ok)
	assert.Equal(t, later, got.End)
}

func TestFreshTick_AdvancesWhileFormOpen(t *testing.T) {
	m, s, task := newTestModel(t)

	m, _ = update(t, m, taskpanel.StartTimerMsg{TaskID: task.ID})
	gen := m.timer.Generation()

	// An open modal must not swallow the tick loop.
	m, _ = update(t, m, taskpanel.AddTaskMsg{})
	require.Equal(t, StateAddTask, m.state)

	running, _ := s.RunningEntry()
	later := running.Start.Add(time.Minute)

	m, cmd := update(t, m, tickMsg{gen: gen, at: later})
	require.NotNil(t, cmd, "the tick loop stays armed while a form is open")
	assert.Equal(t, StateAddTask, m.state, "a tick never closes the form")

	got, ok := s.RunningEntry()
	require.True(t, ok)
	assert.Equal(t, later, got.End)
}

func TestAddTaskMsg_OpensForm(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, cmd := update(t, m, taskpanel.AddTaskMsg{})
	assert.Equal(t, StateAddTask, m.state)
	assert.NotNil(t, m.form)
	assert.NotNil(t, cmd)
}

func TestTabCyclesMainViews(t *testing.T) {
	m, _, _ := newTestModel(t)

	tab := tea.KeyMsg{Type: tea.KeyTab}
	m, _ = update(t, m, tab)
	assert.Equal(t, StateTimeline, m.state)
	m, _ = update(t, m, tab)
	assert.Equal(t, StateNarrative, m.state)

	// Inside the narrative view tab cycles form fields; esc leaves it.
	m, _ = update(t, m, tab)
	assert.Equal(t, StateNarrative, m.state)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateBoard, m.state)
}

func TestApplyEntryEdit_Delete(t *testing.T) {
	m, s, task := newTestModel(t)
	e, err := s.AddManualEntry(task.ID, "09:00", "09:30", "call")
	require.NoError(t, err)

	m.editingEntryID = e.ID
	m.editForm = &EditEntryFormModel{TaskID: task.ID, Start: "09:00", End: "09:30", Delete: true}
	require.NoError(t, m.applyEntryEdit())

	_, ok := s.Entry(e.ID)
	assert.False(t, ok)
}

func TestApplyEntryEdit_RetimesAndReassigns(t *testing.T) {
	m, s, task := newTestModel(t)
	other := s.AddTask("Research", "", 60)
	e, err := s.AddManualEntry(task.ID, "09:00", "09:30", "")
	require.NoError(t, err)

	m.editingEntryID = e.ID
	m.editForm = &EditEntryFormModel{TaskID: other.ID, Start: "10:00", End: "11:00", Notes: "moved"}
	require.NoError(t, m.applyEntryEdit())

	got, _ := s.Entry(e.ID)
	assert.Equal(t, other.ID, got.TaskID)
	assert.Equal(t, "moved", got.Notes)
	assert.Equal(t, "10:00", timeutil.FormatHM(got.Start))
	assert.Equal(t, "11:00", timeutil.FormatHM(got.End))
}

func TestApplyEntryEdit_RunningEntryOnlyTakesNotes(t *testing.T) {
	m, s, task := newTestModel(t)
	running, err := m.timer.Start(task.ID, time.Now())
	require.NoError(t, err)

	m.editingEntryID = running.ID
	m.editForm = &EditEntryFormModel{TaskID: task.ID, Start: "08:00", End: "08:05", Notes: "live notes", Delete: true}
	require.NoError(t, m.applyEntryEdit())

	got, _ := s.Entry(running.ID)
	assert.True(t, got.IsRunning, "delete must not touch a running entry")
	assert.Equal(t, "live notes", got.Notes)
	assert.Equal(t, running.Start, got.Start)
}
