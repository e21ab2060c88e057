package models

import "time"

// CalendarEntry is a scheduled or in-progress block of time attributed to a
// task. At most one entry in a store has IsRunning set; while running, End is
// advanced live by the timer tick and is exempt from the day-window clamp.
type CalendarEntry struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Notes     string    `json:"notes,omitempty"`
	IsRunning bool      `json:"is_running,omitempty"`
}
