// Package layout maps wall-clock times to vertical pixel positions on the
// day-calendar canvas. In the terminal a "pixel" is a cell row; the scale is
// parameterized so the same math serves any pixels-per-hour density.
package layout

import (
	"fmt"
	"math"
	"time"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/models"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/timeutil"
)

// Scale fixes the vertical density of the calendar canvas.
type Scale struct {
	PxPerHour int
}

// MinutesPerPixel converts a pointer displacement in pixels to minutes.
func (s Scale) MinutesPerPixel() float64 {
	return 60.0 / float64(s.PxPerHour)
}

// DayHeight is the canvas height for the full window.
func (s Scale) DayHeight(w timeutil.Window) int {
	return (w.EndHour - w.StartHour) * s.PxPerHour
}

// YForHour returns the y position of a (possibly fractional) clock hour.
func (s Scale) YForHour(w timeutil.Window, hour float64) int {
	return int(math.Round((hour - float64(w.StartHour)) * float64(s.PxPerHour)))
}

// YForTime returns the y position of an instant within the window's day.
func (s Scale) YForTime(w timeutil.Window, t time.Time) int {
	h := float64(t.Hour()) + float64(t.Minute())/60.0
	return s.YForHour(w, h)
}

// Box is the rendered extent of an entry on the canvas.
type Box struct {
	Top    int
	Height int
}

// BoxFor positions an entry, flooring the height at one pixel so no entry is
// ever unrenderable.
func (s Scale) BoxFor(w timeutil.Window, e models.CalendarEntry) Box {
	top := s.YForTime(w, e.Start)
	bottom := s.YForTime(w, e.End)
	height := bottom - top
	if height < 1 {
		height = 1
	}
	return Box{Top: top, Height: height}
}

// Contains reports whether y falls inside the box.
func (b Box) Contains(y int) bool {
	return y >= b.Top && y < b.Top+b.Height
}

// HourMark labels a grid line shared by the timeline gutter and the canvas.
type HourMark struct {
	Hour  int
	Y     int
	Label string
}

// HourMarks returns one mark per clock hour in the window, inclusive of both
// bounds so the final grid line closes the day.
func (s Scale) HourMarks(w timeutil.Window) []HourMark {
	marks := make([]HourMark, 0, w.EndHour-w.StartHour+1)
	for h := w.StartHour; h <= w.EndHour; h++ {
		marks = append(marks, HourMark{
			Hour:  h,
			Y:     (h - w.StartHour) * s.PxPerHour,
			Label: fmt.Sprintf("%02d:00", h),
		})
	}
	return marks
}
