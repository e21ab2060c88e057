// Package cli holds the kong command implementations. Each command receives
// the shared Context assembled in main.
package cli

import (
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/layout"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/store"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/timer"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/timeutil"
)

type Context struct {
	Store  *store.Store
	Timer  *timer.Controller
	Window timeutil.Window
	Scale  layout.Scale
	Debug  bool
}
