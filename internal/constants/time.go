package constants

import "time"

const (
	// TimeFormat is the standard time format used throughout the application (24-hour HH:MM)
	TimeFormat = "15:04"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"
)

const (
	// DefaultDayStartHour and DefaultDayEndHour bound the day window entries may occupy.
	DefaultDayStartHour = 8
	DefaultDayEndHour   = 18

	// SnapStepMin is the granularity drags and durations snap to.
	SnapStepMin = 5

	// MinEntryMin is the minimum entry duration; clamping never produces less.
	MinEntryMin = 5

	// ManualEntryFixMin is the duration given to a manual entry whose end
	// parses at or before its start.
	ManualEntryFixMin = 15

	// DragThresholdPx is the cumulative pointer displacement past which a
	// pointer-down is treated as a drag rather than a click.
	DragThresholdPx = 2

	// DefaultRowsPerHour is the terminal rendering scale: 12 rows per hour
	// gives one row per snap step.
	DefaultRowsPerHour = 12
)

// TickInterval is the cadence at which a running entry's end time advances.
const TickInterval = time.Second
