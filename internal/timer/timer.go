// Package timer owns the running-entry lifecycle: starting a timer freezes
// any previous one first, stopping freezes the end, and a periodic tick
// advances the running entry's end. The generation counter lets the
// presentation's tick loop detect that the running-entry identity changed
// underneath it and stand down, so two tickers never coexist.
package timer

import (
	"time"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/models"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/store"
)

// Controller enforces the at-most-one-running-entry invariant over a store.
type Controller struct {
	store *store.Store
	gen   int
}

// New creates a controller bound to the store.
func New(s *store.Store) *Controller {
	return &Controller{store: s}
}

// Generation identifies the current running-entry epoch. It changes on every
// successful Start and on every Stop that actually stopped something; a tick
// armed under an older generation must not fire again.
func (c *Controller) Generation() int {
	return c.gen
}

// Start stops any running entry (freezing its end at now), then opens a new
// running entry for the task with start = end = now. Starting over a running
// timer is not an error; the old one is implicitly stopped.
func (c *Controller) Start(taskID string, now time.Time) (models.CalendarEntry, error) {
	e, err := c.store.StartRunning(taskID, now)
	if err != nil {
		return models.CalendarEntry{}, err
	}
	c.gen++
	return e, nil
}

// Stop freezes the running entry's end at now. No-op when nothing runs.
func (c *Controller) Stop(now time.Time) bool {
	if c.store.StopRunning(now) {
		c.gen++
		return true
	}
	return false
}

// Advance moves the running entry's end to now, reporting whether anything
// was running. The end is exempt from the upper day-window clamp while
// running; it tracks the wall clock.
func (c *Controller) Advance(now time.Time) bool {
	return c.store.AdvanceRunning(now)
}

// Running returns the running entry, if any.
func (c *Controller) Running() (models.CalendarEntry, bool) {
	return c.store.RunningEntry()
}
