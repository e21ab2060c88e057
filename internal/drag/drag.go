// Package drag translates pointer movement over the calendar canvas into
// entry time changes. The lifecycle is an explicit two-state machine,
// Idle | Dragging, so transition legality is checked in one place rather
// than scattered across boolean flags.
package drag

import (
	"math"
	"time"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/constants"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/layout"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/store"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/timeutil"
)

// Mode selects which entry boundary a drag adjusts.
type Mode string

const (
	ModeMove        Mode = "move"
	ModeResizeStart Mode = "resize-start"
	ModeResizeEnd   Mode = "resize-end"
)

// state is the ephemeral drag record, created on pointer-down and discarded
// on pointer-up/cancel/leave. Never persisted.
type state struct {
	entryID       string
	mode          Mode
	pointerStartY int
	startAtBegin  time.Time
	endAtBegin    time.Time
	moved         bool
}

// Result is what a finished drag reports so the presentation can
// distinguish a click (open the edit modal) from a completed drag.
type Result struct {
	EntryID string
	Moved   bool
}

// Controller is the pointer-event state machine for one canvas.
type Controller struct {
	store  *store.Store
	scale  layout.Scale
	window timeutil.Window
	active *state
}

// New creates an idle controller.
func New(s *store.Store, scale layout.Scale, window timeutil.Window) *Controller {
	return &Controller{store: s, scale: scale, window: window}
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool {
	return c.active != nil
}

// ActiveEntryID returns the dragged entry's ID, or "" when idle.
func (c *Controller) ActiveEntryID() string {
	if c.active == nil {
		return ""
	}
	return c.active.entryID
}

// Begin starts a drag on pointer-down over an entry or its resize handle.
// Refused (stays idle) for running or unknown entries; the running entry's
// times belong to the tick.
func (c *Controller) Begin(entryID string, mode Mode, pointerY int) bool {
	e, ok := c.store.Entry(entryID)
	if !ok || e.IsRunning {
		return false
	}
	c.active = &state{
		entryID:       entryID,
		mode:          mode,
		pointerStartY: pointerY,
		startAtBegin:  e.Start,
		endAtBegin:    e.End,
	}
	return true
}

// Move applies pointer movement to the dragged entry: the pixel delta since
// pointer-down converts to minutes, snaps to the 5-minute grid, shifts the
// boundaries captured at drag begin per the mode, clamps into the day
// window, and commits to the store. No-op when idle.
func (c *Controller) Move(pointerY int) {
	if c.active == nil {
		return
	}

	dy := pointerY - c.active.pointerStartY
	deltaMinutes := timeutil.SnapMinutes(float64(dy)*c.scale.MinutesPerPixel(), constants.SnapStepMin)

	start := c.active.startAtBegin
	end := c.active.endAtBegin

	switch c.active.mode {
	case ModeMove:
		start = timeutil.AddMinutes(start, deltaMinutes)
		end = timeutil.AddMinutes(end, deltaMinutes)
	case ModeResizeStart:
		start = timeutil.AddMinutes(start, deltaMinutes)
		if !end.After(start) {
			start = timeutil.AddMinutes(end, -constants.MinEntryMin)
		}
	case ModeResizeEnd:
		end = timeutil.AddMinutes(end, deltaMinutes)
		if !end.After(start) {
			end = timeutil.AddMinutes(start, constants.MinEntryMin)
		}
	}

	start, end = c.window.ClampEntry(start, end)
	if err := c.store.SetEntryTimes(c.active.entryID, start, end); err != nil {
		// Entry vanished or started running mid-drag; abandon the drag.
		c.active = nil
		return
	}

	if !c.active.moved && math.Abs(float64(dy)) > constants.DragThresholdPx {
		c.active.moved = true
	}
}

// Release ends the drag on pointer-up, discarding the ephemeral state. The
// returned result carries the moved flag: a release that never crossed the
// drag threshold is a click, which the presentation reinterprets as
// "open edit modal".
func (c *Controller) Release() (Result, bool) {
	if c.active == nil {
		return Result{}, false
	}
	r := Result{EntryID: c.active.entryID, Moved: c.active.moved}
	c.active = nil
	return r, true
}

// Cancel ends the drag on pointer-cancel/leave with no further mutation.
func (c *Controller) Cancel() {
	c.active = nil
}
