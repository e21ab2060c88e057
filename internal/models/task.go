package models

// Task is a billable matter a lawyer records time against.
type Task struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	BillableMinutes int    `json:"billable_minutes"` // target billable time
	Color           string `json:"color"`            // hex RGB, assigned from Palette
}

// Palette is the fixed rotating set of task colors. New tasks take the color
// indexed by the task count at creation time.
var Palette = []string{
	"#B08D57", // gold-ish
	"#4C6A92",
	"#6B8E6E",
	"#8B5E83",
	"#A35D4B",
	"#3B7A7A",
	"#7A6A3B",
	"#5A5A8B",
}
