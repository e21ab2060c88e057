package cli

import (
	"fmt"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/timeutil"
)

// DayCmd prints the day's ledger without entering the TUI: each task with its
// spent/target/remaining figures and its entries in chronological order.
type DayCmd struct{}

func (cmd *DayCmd) Run(ctx *Context) error {
	w := ctx.Store.Window()
	fmt.Printf("Day %s (%02d:00–%02d:00)\n", w.Anchor.Format("2006-01-02"), w.StartHour, w.EndHour)
	fmt.Println()

	tasks := ctx.Store.Tasks()
	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return nil
	}

	for _, t := range tasks {
		spent := ctx.Store.SpentMinutes(t.ID)
		remaining := ctx.Store.RemainingMinutes(t.ID)
		fmt.Printf("%s  [spent %s / target %s / remaining %s]\n",
			t.Name,
			timeutil.FormatDuration(spent),
			timeutil.FormatDuration(t.BillableMinutes),
			timeutil.FormatDuration(remaining))

		entries := ctx.Store.EntriesForTask(t.ID)
		if len(entries) == 0 {
			fmt.Println("  (no entries)")
		}
		for _, e := range entries {
			marker := " "
			if e.IsRunning {
				marker = "⏱"
			}
			notes := e.Notes
			if notes == "" {
				notes = "(no notes)"
			}
			fmt.Printf("  %s %s–%s (%s)  %s\n",
				marker,
				timeutil.FormatHM(e.Start), timeutil.FormatHM(e.End),
				timeutil.FormatDuration(timeutil.MinutesBetween(e.Start, e.End)),
				notes)
		}
		fmt.Println()
	}
	return nil
}
