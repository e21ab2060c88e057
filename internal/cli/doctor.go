package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/constants"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/keyring"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: Day window sanity
	if err := checkDayWindow(ctx); err != nil {
		fmt.Printf("❌ Day window: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Day window: OK (%02d:00–%02d:00)\n", ctx.Window.StartHour, ctx.Window.EndHour)
	}

	// Check 2: OS keyring availability (warning only)
	if !keyring.IsAvailable() {
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   Keyring unavailable; use %s instead\n", constants.APIKeyEnvVar)
	} else {
		fmt.Printf("✓ OS keyring: OK\n")
	}

	// Check 3: Narrative API key resolvable (warning only)
	if _, err := keyring.ResolveAPIKey(); err != nil {
		fmt.Printf("⚠ Narrative API key: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Narrative API key: OK\n")
	}

	// Check 4: Duplicate instances. Two boards driving one timer would race
	// the single-running-timer rule, so flag it.
	if err := checkDuplicateInstances(); err != nil {
		fmt.Printf("⚠ Single instance: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Single instance: OK\n")
	}

	// Check 5: Clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDayWindow(ctx *Context) error {
	w := ctx.Window
	if w.StartHour < 0 || w.EndHour > 24 {
		return fmt.Errorf("window hours out of range: %d–%d", w.StartHour, w.EndHour)
	}
	if w.EndHour <= w.StartHour {
		return fmt.Errorf("day end (%d) must be after day start (%d)", w.EndHour, w.StartHour)
	}
	if ctx.Scale.PxPerHour < 1 {
		return fmt.Errorf("rows per hour must be at least 1, got %d", ctx.Scale.PxPerHour)
	}
	return nil
}

func checkDuplicateInstances() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	count := 0
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.Contains(strings.ToLower(p.Executable()), constants.AppName) {
			count++
		}
	}
	if count > 0 {
		return fmt.Errorf("%d other %s process(es) running; timers are per-process", count, constants.AppName)
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	_, offset := now.Zone()
	if offset == 0 && now.Location() == time.UTC {
		// This might be intentional, so just note it
		fmt.Printf("   Note: timezone is UTC\n")
	}

	return nil
}
