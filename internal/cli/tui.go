package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/keyring"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/logger"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/narrative"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	// A missing key is not fatal here; the drafting view surfaces the error
	// when generation is actually attempted.
	apiKey, err := keyring.ResolveAPIKey()
	if err != nil {
		logger.Debug("no narrative API key available", "err", err)
	}

	model := tui.NewModel(tui.Config{
		Store:           ctx.Store,
		Timer:           ctx.Timer,
		Scale:           ctx.Scale,
		NarrativeClient: narrative.NewClient(narrative.Config{APIKey: apiKey}),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
