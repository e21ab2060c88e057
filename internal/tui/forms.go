package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/models"
)

// NewTaskForm creates the add-task modal form.
func NewTaskForm(fm *TaskFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("e.g. Prepare witness statements").
				Value(&fm.Name),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewInput().
				Title("Billable target (min)").
				Value(&fm.Target).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("target must be a number of minutes")
					}
					if i < 0 {
						return fmt.Errorf("target cannot be negative")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewEntryForm creates the manual-entry modal form. Times are free text in
// HH:MM; unparseable input falls back to the start of the day window rather
// than erroring, so validation here only nudges.
func NewEntryForm(fm *EntryFormModel, tasks []models.Task) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Task").
				Options(taskOptions(tasks)...).
				Value(&fm.TaskID),
			huh.NewInput().
				Title("Start (HH:MM)").
				Placeholder("09:00").
				Value(&fm.Start),
			huh.NewInput().
				Title("End (HH:MM)").
				Placeholder("09:30").
				Value(&fm.End),
			huh.NewInput().
				Title("Notes").
				Value(&fm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewEditEntryForm creates the edit-entry modal form, including the delete
// confirm that replaces a separate delete flow.
func NewEditEntryForm(fm *EditEntryFormModel, tasks []models.Task) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Task").
				Options(taskOptions(tasks)...).
				Value(&fm.TaskID),
			huh.NewInput().
				Title("Start (HH:MM)").
				Value(&fm.Start),
			huh.NewInput().
				Title("End (HH:MM)").
				Value(&fm.End),
			huh.NewInput().
				Title("Notes").
				Value(&fm.Notes),
			huh.NewConfirm().
				Title("Delete this entry?").
				Affirmative("Delete").
				Negative("Keep").
				Value(&fm.Delete),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewRunningEntryForm is the reduced edit form for a running entry: times,
// task, and delete are off the table while the timer owns the boundaries, so
// only the notes field is offered.
func NewRunningEntryForm(fm *EditEntryFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Notes").
				Description("Timer running: times and task are locked until you stop it.").
				Value(&fm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}

func taskOptions(tasks []models.Task) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(tasks))
	for _, t := range tasks {
		opts = append(opts, huh.NewOption(t.Name, t.ID))
	}
	return opts
}
