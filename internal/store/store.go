// Package store holds the session-local collections of tasks and calendar
// entries. All mutation funnels through its operations so the running-entry
// and day-window invariants are enforced in one place. Nothing is persisted;
// state lives and dies with the process.
package store

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/constants"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/logger"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/models"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/timeutil"
)

var (
	// ErrTaskNotFound is returned when an operation references an unknown task.
	ErrTaskNotFound = errors.New("task not found")
	// ErrEntryNotFound is returned when an operation references an unknown entry.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrEntryRunning rejects deleting or retiming the running entry.
	ErrEntryRunning = errors.New("entry is running; stop the timer first")
)

// Store owns the in-memory task and entry collections for one session.
type Store struct {
	window  timeutil.Window
	tasks   []models.Task
	entries []models.CalendarEntry
}

// New creates an empty store bound to the given day window.
func New(window timeutil.Window) *Store {
	return &Store{window: window}
}

// Seeded creates a store pre-populated with the demo matters and entries the
// session opens with.
func Seeded(window timeutil.Window) *Store {
	s := New(window)

	draft := s.AddTask("Draft statement of case", "Client: A. Smith — initial pleadings", 120)
	review := s.AddTask("Review disclosure bundle", "Client: Redwood Ltd — priority docs", 90)
	s.AddTask("Call with counsel", "Prep + attendance note", 45)

	s.entries = append(s.entries,
		models.CalendarEntry{
			ID:     uuid.New().String(),
			TaskID: review.ID,
			Start:  window.WithHM("09:00"),
			End:    window.WithHM("09:35"),
			Notes:  "Initial scan of key docs",
		},
		models.CalendarEntry{
			ID:     uuid.New().String(),
			TaskID: draft.ID,
			Start:  window.WithHM("10:00"),
			End:    window.WithHM("10:50"),
			Notes:  "First draft sections 1-3",
		},
	)
	return s
}

// Window returns the day window entries are clamped into.
func (s *Store) Window() timeutil.Window {
	return s.window
}

// AddTask creates a task, assigning its ID and the next palette color by
// current task count.
func (s *Store) AddTask(name, description string, billableMinutes int) models.Task {
	if name == "" {
		name = "Untitled task"
	}
	if billableMinutes < 0 {
		billableMinutes = 0
	}
	t := models.Task{
		ID:              uuid.New().String(),
		Name:            name,
		Description:     description,
		BillableMinutes: billableMinutes,
		Color:           models.Palette[len(s.tasks)%len(models.Palette)],
	}
	s.tasks = append(s.tasks, t)
	logger.Debug("task added", "id", t.ID, "name", t.Name)
	return t
}

// Task looks a task up by ID.
func (s *Store) Task(id string) (models.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// Tasks returns the tasks in creation order.
func (s *Store) Tasks() []models.Task {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Entry looks an entry up by ID.
func (s *Store) Entry(id string) (models.CalendarEntry, bool) {
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return models.CalendarEntry{}, false
}

// Entries returns all entries sorted by start time.
func (s *Store) Entries() []models.CalendarEntry {
	out := make([]models.CalendarEntry, len(s.entries))
	copy(out, s.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// EntriesForTask returns the task's entries sorted by start time.
func (s *Store) EntriesForTask(taskID string) []models.CalendarEntry {
	var out []models.CalendarEntry
	for _, e := range s.entries {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// AddManualEntry parses start/end against the window's day, corrects an end
// at or before the start to start+15min, clamps the pair into the window, and
// appends the entry.
func (s *Store) AddManualEntry(taskID, startHM, endHM, notes string) (models.CalendarEntry, error) {
	if _, ok := s.Task(taskID); !ok {
		return models.CalendarEntry{}, ErrTaskNotFound
	}

	start := s.window.WithHM(startHM)
	end := s.window.WithHM(endHM)
	if !end.After(start) {
		end = timeutil.AddMinutes(start, constants.ManualEntryFixMin)
	}
	start, end = s.window.ClampEntry(start, end)

	e := models.CalendarEntry{
		ID:     uuid.New().String(),
		TaskID: taskID,
		Start:  start,
		End:    end,
		Notes:  notes,
	}
	s.entries = append(s.entries, e)
	logger.Debug("manual entry added", "id", e.ID, "start", timeutil.FormatHM(start), "end", timeutil.FormatHM(end))
	return e, nil
}

// UpdateEntry replaces an entry by ID. Retiming or re-assigning the running
// entry is rejected; its notes may still change.
func (s *Store) UpdateEntry(updated models.CalendarEntry) error {
	for i, e := range s.entries {
		if e.ID != updated.ID {
			continue
		}
		if e.IsRunning && (updated.TaskID != e.TaskID || !updated.Start.Equal(e.Start) || !updated.End.Equal(e.End)) {
			return ErrEntryRunning
		}
		updated.IsRunning = e.IsRunning
		s.entries[i] = updated
		return nil
	}
	return ErrEntryNotFound
}

// UpdateEntryTimes re-times an entry from HH:MM text, applying the same
// end-before-start correction and day-window clamp as manual entry.
func (s *Store) UpdateEntryTimes(id, startHM, endHM string) error {
	e, ok := s.Entry(id)
	if !ok {
		return ErrEntryNotFound
	}
	if e.IsRunning {
		return ErrEntryRunning
	}

	start := s.window.WithHM(startHM)
	end := s.window.WithHM(endHM)
	if !end.After(start) {
		end = timeutil.AddMinutes(start, constants.ManualEntryFixMin)
	}
	e.Start, e.End = s.window.ClampEntry(start, end)
	return s.UpdateEntry(e)
}

// SetEntryTimes replaces an entry's start/end directly. Callers are expected
// to have clamped the pair already (the drag controller does); the running
// guard still applies.
func (s *Store) SetEntryTimes(id string, start, end time.Time) error {
	e, ok := s.Entry(id)
	if !ok {
		return ErrEntryNotFound
	}
	if e.IsRunning {
		return ErrEntryRunning
	}
	e.Start, e.End = start, end
	return s.UpdateEntry(e)
}

// DeleteEntry removes an entry by ID. The running entry cannot be deleted;
// the presentation disables the control, and the store rejects the call so
// the invariant survives direct API use too.
func (s *Store) DeleteEntry(id string) error {
	for i, e := range s.entries {
		if e.ID != id {
			continue
		}
		if e.IsRunning {
			return ErrEntryRunning
		}
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		return nil
	}
	return ErrEntryNotFound
}

// SpentMinutes sums the durations of all entries recorded against a task.
func (s *Store) SpentMinutes(taskID string) int {
	total := 0
	for _, e := range s.entries {
		if e.TaskID == taskID {
			total += timeutil.MinutesBetween(e.Start, e.End)
		}
	}
	return total
}

// RemainingMinutes is the task's billable target minus spent time. Negative
// when the target is exceeded; deliberately not clamped.
func (s *Store) RemainingMinutes(taskID string) int {
	t, ok := s.Task(taskID)
	if !ok {
		return 0
	}
	return t.BillableMinutes - s.SpentMinutes(taskID)
}

// RunningEntry returns the single running entry, if any.
func (s *Store) RunningEntry() (models.CalendarEntry, bool) {
	for _, e := range s.entries {
		if e.IsRunning {
			return e, true
		}
	}
	return models.CalendarEntry{}, false
}

// StartRunning freezes any running entry at now and appends a fresh running
// entry for the task with start = end = now. The at-most-one-running
// invariant holds because the stop happens before the append.
func (s *Store) StartRunning(taskID string, now time.Time) (models.CalendarEntry, error) {
	if _, ok := s.Task(taskID); !ok {
		return models.CalendarEntry{}, ErrTaskNotFound
	}

	s.StopRunning(now)

	e := models.CalendarEntry{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		Start:     now,
		End:       now,
		IsRunning: true,
	}
	s.entries = append(s.entries, e)
	logger.Info("timer started", "entry", e.ID, "task", taskID)
	return e, nil
}

// StopRunning freezes the running entry's end at now. No-op when idle.
func (s *Store) StopRunning(now time.Time) bool {
	for i := range s.entries {
		if s.entries[i].IsRunning {
			s.entries[i].IsRunning = false
			s.entries[i].End = now
			logger.Info("timer stopped", "entry", s.entries[i].ID)
			return true
		}
	}
	return false
}

// AdvanceRunning moves the running entry's end to now. This is the tick's
// only mutation; the end is deliberately exempt from the upper day-window
// clamp while running.
func (s *Store) AdvanceRunning(now time.Time) bool {
	for i := range s.entries {
		if s.entries[i].IsRunning {
			s.entries[i].End = now
			return true
		}
	}
	return false
}
