package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alecthomas/kong"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/cli"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/constants"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/layout"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/logger"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/store"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/timer"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/timeutil"
)

var CLI struct {
	Version     kong.VersionFlag
	DayStart    int  `help:"First hour of the day window." default:"${day_start}"`
	DayEnd      int  `help:"Last hour of the day window." default:"${day_end}"`
	RowsPerHour int  `help:"Vertical density of the calendar board." default:"${rows_per_hour}"`
	Seed        bool `help:"Start with sample tasks and entries." default:"true" negatable:""`
	Debug       bool `help:"Verbose logging to stderr."`

	Tui       cli.TuiCmd       `cmd:"" help:"Launch the interactive timekeeping board." default:"1"`
	Day       cli.DayCmd       `cmd:"" help:"Print the day's tasks and entries."`
	Narrative cli.NarrativeCmd `cmd:"" help:"Draft a client-facing narrative from keywords."`
	Keyring   struct {
		Set    cli.KeyringSetCmd    `cmd:"" help:"Store the narrative API key."`
		Delete cli.KeyringDeleteCmd `cmd:"" help:"Remove the narrative API key."`
		Status cli.KeyringStatusCmd `cmd:"" help:"Check whether an API key is available."`
	} `cmd:"" help:"Manage the narrative API key."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run environment diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Day-calendar timekeeping for legal billing"),
		kong.UsageOnError(),
		kong.Vars{
			"version":       "v0.1.0",
			"day_start":     strconv.Itoa(constants.DefaultDayStartHour),
			"day_end":       strconv.Itoa(constants.DefaultDayEndHour),
			"rows_per_hour": strconv.Itoa(constants.DefaultRowsPerHour),
		},
	)

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Join(configDir, constants.AppName),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	if CLI.DayEnd <= CLI.DayStart || CLI.DayStart < 0 || CLI.DayEnd > 24 {
		fmt.Fprintf(os.Stderr, "Error: invalid day window %d–%d\n", CLI.DayStart, CLI.DayEnd)
		os.Exit(1)
	}

	window := timeutil.NewWindow(time.Now(), CLI.DayStart, CLI.DayEnd)

	var s *store.Store
	if CLI.Seed {
		s = store.Seeded(window)
	} else {
		s = store.New(window)
	}

	appCtx := &cli.Context{
		Store:  s,
		Timer:  timer.New(s),
		Window: window,
		Scale:  layout.Scale{PxPerHour: CLI.RowsPerHour},
		Debug:  CLI.Debug,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
