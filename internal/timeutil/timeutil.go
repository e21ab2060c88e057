package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/constants"
)

// Window is the clock-hour range of a single day within which entries may
// exist. The anchor date is threaded explicitly so clamping and parsing never
// depend on the ambient wall clock.
type Window struct {
	Anchor    time.Time
	StartHour int
	EndHour   int
}

// NewWindow builds a window anchored at the given day's midnight.
func NewWindow(anchor time.Time, startHour, endHour int) Window {
	return Window{
		Anchor:    DayOf(anchor),
		StartHour: startHour,
		EndHour:   endHour,
	}
}

// Min returns the earliest instant of the window.
func (w Window) Min() time.Time {
	return w.Anchor.Add(time.Duration(w.StartHour) * time.Hour)
}

// Max returns the latest instant of the window.
func (w Window) Max() time.Time {
	return w.Anchor.Add(time.Duration(w.EndHour) * time.Hour)
}

// DayOf returns midnight of t's calendar day in t's location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MinutesBetween returns the rounded number of minutes from a to b, floored
// at zero so a reversed pair never yields a negative duration.
func MinutesBetween(a, b time.Time) int {
	mins := int(math.Round(b.Sub(a).Minutes()))
	if mins < 0 {
		return 0
	}
	return mins
}

// SnapMinutes rounds raw minutes to the nearest multiple of step
// (round half up).
func SnapMinutes(raw float64, step int) int {
	if step <= 0 {
		step = constants.SnapStepMin
	}
	return int(math.Round(raw/float64(step))) * step
}

// AddMinutes shifts t by the given number of minutes.
func AddMinutes(t time.Time, mins int) time.Time {
	return t.Add(time.Duration(mins) * time.Minute)
}

// FormatHM renders t as zero-padded 24-hour HH:MM local wall-clock time.
func FormatHM(t time.Time) string {
	return t.Format(constants.TimeFormat)
}

// FormatDuration renders minutes as signed H:MM, e.g. 125 -> "2:05" and
// -15 -> "-0:15". The sign prefix appears only for negative values.
func FormatDuration(mins int) string {
	sign := ""
	if mins < 0 {
		sign = "-"
		mins = -mins
	}
	return fmt.Sprintf("%s%d:%02d", sign, mins/60, mins%60)
}

// ParseHM parses HH:MM leniently: non-numeric or out-of-range components
// clamp into [0,23] and [0,59] instead of failing. This is deliberate — a
// half-typed time degrades to a usable one rather than an error.
func ParseHM(text string) (hour, minute int) {
	h, m := "", ""
	if parts := strings.SplitN(text, ":", 2); len(parts) == 2 {
		h, m = parts[0], parts[1]
	} else {
		h = text
	}
	hour = clampInt(atoiLenient(h), 0, 23)
	minute = clampInt(atoiLenient(m), 0, 59)
	return hour, minute
}

// WithHM composes the window's anchor day with a lenient HH:MM time of day.
func (w Window) WithHM(text string) time.Time {
	h, m := ParseHM(text)
	return w.Anchor.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

// ClampEntry forces an entry into the window, preserving duration where
// possible. The lower-bound shift runs before the upper-bound shift so an
// entry overflowing both ends settles inside the window instead of
// oscillating. Guarantees min <= start <= end <= max and a duration of at
// least MinEntryMin. Idempotent.
func (w Window) ClampEntry(start, end time.Time) (time.Time, time.Time) {
	min, max := w.Min(), w.Max()

	if !end.After(start) {
		end = AddMinutes(start, constants.MinEntryMin)
	}

	if start.Before(min) {
		dur := end.Sub(start)
		start = min
		end = min.Add(dur)
	}

	if end.After(max) {
		dur := end.Sub(start)
		end = max
		start = max.Add(-dur)
	}

	// Windows narrower than the duration leave start/end poking out after
	// the shifts; pin them and restore the minimum duration.
	if start.Before(min) {
		start = min
	}
	if end.After(max) {
		end = max
	}
	if !end.After(start) {
		end = AddMinutes(start, constants.MinEntryMin)
	}

	return start, end
}

func atoiLenient(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
