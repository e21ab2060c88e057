package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/models"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/store"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/timeutil"
)

var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func newStore() *store.Store {
	return store.New(timeutil.NewWindow(day, 8, 18))
}

func at(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC)
}

func TestAddTask_PaletteRotation(t *testing.T) {
	s := newStore()

	var colors []string
	for i := 0; i < len(models.Palette)+1; i++ {
		task := s.AddTask("Task", "", 60)
		colors = append(colors, task.Color)
	}

	for i, c := range colors {
		assert.Equal(t, models.Palette[i%len(models.Palette)], c, "task %d color", i)
	}
	assert.Len(t, s.Tasks(), len(models.Palette)+1)
}

func TestAddTask_Defaults(t *testing.T) {
	s := newStore()

	task := s.AddTask("", "", -30)
	assert.Equal(t, "Untitled task", task.Name)
	assert.Equal(t, 0, task.BillableMinutes)
	assert.NotEmpty(t, task.ID)
}

func TestAddManualEntry_EndBeforeStartCorrection(t *testing.T) {
	s := newStore()
	task := s.AddTask("Filing", "", 60)

	// End before start forces end = start+15min (18:05), then the window
	// clamp shifts the pair back five minutes.
	e, err := s.AddManualEntry(task.ID, "17:50", "17:40", "")
	require.NoError(t, err)
	assert.Equal(t, at(17, 45), e.Start)
	assert.Equal(t, at(18, 0), e.End)
}

func TestAddManualEntry_UnknownTask(t *testing.T) {
	s := newStore()
	_, err := s.AddManualEntry("nope", "09:00", "09:30", "")
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestAddManualEntry_LenientTimes(t *testing.T) {
	s := newStore()
	task := s.AddTask("Filing", "", 60)

	// Garbage degrades to midnight, which the clamp then pulls into the window.
	e, err := s.AddManualEntry(task.ID, "junk", "also junk", "notes")
	require.NoError(t, err)
	assert.Equal(t, at(8, 0), e.Start)
	assert.Equal(t, at(8, 15), e.End)
	assert.Equal(t, "notes", e.Notes)
}

func TestUpdateEntryTimes_Clamps(t *testing.T) {
	s := newStore()
	task := s.AddTask("Filing", "", 60)
	e, err := s.AddManualEntry(task.ID, "09:00", "09:30", "")
	require.NoError(t, err)

	require.NoError(t, s.UpdateEntryTimes(e.ID, "07:00", "07:45"))
	got, ok := s.Entry(e.ID)
	require.True(t, ok)
	assert.Equal(t, at(8, 0), got.Start)
	assert.Equal(t, at(8, 45), got.End)
}

func TestUpdateEntry_RunningGuard(t *testing.T) {
	s := newStore()
	task := s.AddTask("Filing", "", 60)
	other := s.AddTask("Research", "", 60)

	running, err := s.StartRunning(task.ID, at(9, 0))
	require.NoError(t, err)

	// Retiming, re-assigning, or deleting the running entry is rejected.
	retimed := running
	retimed.End = at(10, 0)
	assert.ErrorIs(t, s.UpdateEntry(retimed), store.ErrEntryRunning)

	reassigned := running
	reassigned.TaskID = other.ID
	assert.ErrorIs(t, s.UpdateEntry(reassigned), store.ErrEntryRunning)

	assert.ErrorIs(t, s.UpdateEntryTimes(running.ID, "10:00", "11:00"), store.ErrEntryRunning)
	assert.ErrorIs(t, s.DeleteEntry(running.ID), store.ErrEntryRunning)

	// Notes remain editable while running.
	noted := running
	noted.Notes = "attendance note"
	require.NoError(t, s.UpdateEntry(noted))
	got, _ := s.Entry(running.ID)
	assert.Equal(t, "attendance note", got.Notes)
	assert.True(t, got.IsRunning)
}

func TestDeleteEntry(t *testing.T) {
	s := newStore()
	task := s.AddTask("Filing", "", 60)
	e, err := s.AddManualEntry(task.ID, "09:00", "09:30", "")
	require.NoError(t, err)

	require.NoError(t, s.DeleteEntry(e.ID))
	_, ok := s.Entry(e.ID)
	assert.False(t, ok)
	assert.ErrorIs(t, s.DeleteEntry(e.ID), store.ErrEntryNotFound)
}

func TestSpentMinutes_IsolatedPerTask(t *testing.T) {
	s := newStore()
	a := s.AddTask("A", "", 120)
	b := s.AddTask("B", "", 45)

	_, err := s.AddManualEntry(a.ID, "09:00", "09:35", "")
	require.NoError(t, err)
	_, err = s.AddManualEntry(a.ID, "10:00", "10:50", "")
	require.NoError(t, err)

	assert.Equal(t, 85, s.SpentMinutes(a.ID))
	assert.Equal(t, 35, s.RemainingMinutes(a.ID))

	// An unrelated entry for another task changes nothing.
	_, err = s.AddManualEntry(b.ID, "11:00", "12:00", "")
	require.NoError(t, err)
	assert.Equal(t, 85, s.SpentMinutes(a.ID))

	// Remaining may go negative; it is not clamped.
	assert.Equal(t, -15, s.RemainingMinutes(b.ID))
}

func TestStartRunning_AtMostOne(t *testing.T) {
	s := newStore()
	a := s.AddTask("A", "", 60)
	b := s.AddTask("B", "", 60)

	first, err := s.StartRunning(a.ID, at(9, 0))
	require.NoError(t, err)

	handoff := at(9, 20)
	second, err := s.StartRunning(b.ID, handoff)
	require.NoError(t, err)

	countRunning := 0
	for _, e := range s.Entries() {
		if e.IsRunning {
			countRunning++
			assert.Equal(t, second.ID, e.ID)
		}
	}
	assert.Equal(t, 1, countRunning)

	// The first entry froze at the moment the second started.
	frozen, ok := s.Entry(first.ID)
	require.True(t, ok)
	assert.False(t, frozen.IsRunning)
	assert.Equal(t, handoff, frozen.End)
}

func TestStopRunning(t *testing.T) {
	s := newStore()
	a := s.AddTask("A", "", 60)

	assert.False(t, s.StopRunning(at(9, 0)), "stop with no timer is a no-op")

	e, err := s.StartRunning(a.ID, at(9, 0))
	require.NoError(t, err)
	assert.True(t, s.StopRunning(at(9, 42)))

	got, _ := s.Entry(e.ID)
	assert.False(t, got.IsRunning)
	assert.Equal(t, at(9, 42), got.End)
}

func TestAdvanceRunning_ExemptFromUpperClamp(t *testing.T) {
	s := newStore()
	a := s.AddTask("A", "", 60)

	assert.False(t, s.AdvanceRunning(at(9, 0)))

	e, err := s.StartRunning(a.ID, at(17, 58))
	require.NoError(t, err)

	// Past the window's end: the running end tracks the wall clock anyway.
	assert.True(t, s.AdvanceRunning(at(18, 3)))
	got, _ := s.Entry(e.ID)
	assert.Equal(t, at(18, 3), got.End)
}

func TestEntries_SortedByStart(t *testing.T) {
	s := newStore()
	a := s.AddTask("A", "", 60)
	_, err := s.AddManualEntry(a.ID, "12:00", "12:30", "")
	require.NoError(t, err)
	_, err = s.AddManualEntry(a.ID, "09:00", "09:30", "")
	require.NoError(t, err)

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Start.Before(entries[1].Start))
}

func TestSeeded(t *testing.T) {
	s := store.Seeded(timeutil.NewWindow(day, 8, 18))
	assert.Len(t, s.Tasks(), 3)
	assert.Len(t, s.Entries(), 2)
	_, running := s.RunningEntry()
	assert.False(t, running)
}
