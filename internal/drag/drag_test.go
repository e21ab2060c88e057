package drag_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/drag"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/layout"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/models"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/store"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/timeutil"
)

var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC)
}

// fixture: day window 08:00-18:00, 72 px per hour, one entry 09:00-09:35.
func newFixture(t *testing.T) (*store.Store, *drag.Controller, models.CalendarEntry) {
	t.Helper()
	window := timeutil.NewWindow(day, 8, 18)
	s := store.New(window)
	task := s.AddTask("Draft", "", 120)
	e, err := s.AddManualEntry(task.ID, "09:00", "09:35", "")
	require.NoError(t, err)
	c := drag.New(s, layout.Scale{PxPerHour: 72}, window)
	return s, c, e
}

func TestBegin_RefusedForRunningEntry(t *testing.T) {
	s, c, _ := newFixture(t)
	task := s.AddTask("Live", "", 60)
	running, err := s.StartRunning(task.ID, at(11, 0))
	require.NoError(t, err)

	assert.False(t, c.Begin(running.ID, drag.ModeMove, 100))
	assert.False(t, c.Dragging())
}

func TestBegin_RefusedForUnknownEntry(t *testing.T) {
	_, c, _ := newFixture(t)
	assert.False(t, c.Begin("nope", drag.ModeMove, 100))
}

func TestMove_ShiftsBothBoundaries(t *testing.T) {
	s, c, e := newFixture(t)

	// 72 px down at 72 px/h = 60 minutes, snaps to 60.
	require.True(t, c.Begin(e.ID, drag.ModeMove, 100))
	c.Move(172)

	got, _ := s.Entry(e.ID)
	assert.Equal(t, at(10, 0), got.Start)
	assert.Equal(t, at(10, 35), got.End)
}

func TestMove_SnapsToFiveMinutes(t *testing.T) {
	s, c, e := newFixture(t)

	// 37 px at 72 px/h = 30.83 minutes, snaps to 30; both boundaries shift
	// by the same snapped delta.
	require.True(t, c.Begin(e.ID, drag.ModeMove, 0))
	c.Move(37)

	got, _ := s.Entry(e.ID)
	assert.Equal(t, at(9, 30), got.Start)
	assert.Equal(t, at(10, 5), got.End)
}

func TestMove_DeltaIsFromDragBegin(t *testing.T) {
	s, c, e := newFixture(t)

	// Successive moves recompute from the drag-begin snapshot, not from the
	// previous intermediate position.
	require.True(t, c.Begin(e.ID, drag.ModeMove, 0))
	c.Move(72)
	c.Move(36) // 30 min from begin, not 30 past the previous move

	got, _ := s.Entry(e.ID)
	assert.Equal(t, at(9, 30), got.Start)
	assert.Equal(t, at(10, 5), got.End)
}

func TestMove_ClampsToWindow(t *testing.T) {
	s, c, e := newFixture(t)

	// Dragging far past the bottom clamps against 18:00, duration preserved.
	require.True(t, c.Begin(e.ID, drag.ModeMove, 0))
	c.Move(10000)

	got, _ := s.Entry(e.ID)
	assert.Equal(t, at(17, 25), got.Start)
	assert.Equal(t, at(18, 0), got.End)

	// And far past the top clamps against 08:00.
	c.Move(-10000)
	got, _ = s.Entry(e.ID)
	assert.Equal(t, at(8, 0), got.Start)
	assert.Equal(t, at(8, 35), got.End)
}

func TestResizeEnd_PinnedToMinimumDuration(t *testing.T) {
	s, c, e := newFixture(t)

	// Pulling the end 30 minutes before the start pins it to start+5min.
	require.True(t, c.Begin(e.ID, drag.ModeResizeEnd, 0))
	c.Move(-78) // -65 minutes from a 35-minute entry

	got, _ := s.Entry(e.ID)
	assert.Equal(t, at(9, 0), got.Start)
	assert.Equal(t, at(9, 5), got.End)
}

func TestResizeEnd_GrowsEntry(t *testing.T) {
	s, c, e := newFixture(t)

	require.True(t, c.Begin(e.ID, drag.ModeResizeEnd, 0))
	c.Move(30) // 25 minutes

	got, _ := s.Entry(e.ID)
	assert.Equal(t, at(9, 0), got.Start)
	assert.Equal(t, at(10, 0), got.End)
}

func TestResizeStart_PinnedToMinimumDuration(t *testing.T) {
	s, c, e := newFixture(t)

	// Pushing the start past the end pins it to end-5min.
	require.True(t, c.Begin(e.ID, drag.ModeResizeStart, 0))
	c.Move(60) // +50 minutes onto a 35-minute entry

	got, _ := s.Entry(e.ID)
	assert.Equal(t, at(9, 30), got.Start)
	assert.Equal(t, at(9, 35), got.End)
}

func TestRelease_DistinguishesClickFromDrag(t *testing.T) {
	_, c, e := newFixture(t)

	// Within the 2px threshold: a click, not a drag.
	require.True(t, c.Begin(e.ID, drag.ModeMove, 100))
	c.Move(102)
	r, ok := c.Release()
	require.True(t, ok)
	assert.Equal(t, e.ID, r.EntryID)
	assert.False(t, r.Moved)

	// Past the threshold: a drag.
	require.True(t, c.Begin(e.ID, drag.ModeMove, 100))
	c.Move(110)
	r, ok = c.Release()
	require.True(t, ok)
	assert.True(t, r.Moved)

	// Idle release reports nothing.
	_, ok = c.Release()
	assert.False(t, ok)
}

func TestCancel_DiscardsState(t *testing.T) {
	s, c, e := newFixture(t)

	require.True(t, c.Begin(e.ID, drag.ModeMove, 0))
	c.Move(72)
	c.Cancel()
	assert.False(t, c.Dragging())

	// The last committed position stays; cancel only stops further mutation.
	got, _ := s.Entry(e.ID)
	assert.Equal(t, at(10, 0), got.Start)

	c.Move(144) // ignored while idle
	got, _ = s.Entry(e.ID)
	assert.Equal(t, at(10, 0), got.Start)
}

func TestMove_AbandonsWhenEntryDeletedMidDrag(t *testing.T) {
	s, c, e := newFixture(t)

	require.True(t, c.Begin(e.ID, drag.ModeMove, 0))
	require.NoError(t, s.DeleteEntry(e.ID))
	c.Move(72)
	assert.False(t, c.Dragging())
}
