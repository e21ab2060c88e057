package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/keyring"
	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/narrative"
)

// NarrativeCmd drafts a client-facing narrative from keywords in one shot,
// for use from scripts or when the TUI is overkill.
type NarrativeCmd struct {
	Keywords []string `arg:"" help:"Keywords describing the work done."`
	Client   string   `help:"Client number for context." short:"c"`
	Matter   string   `help:"Matter number for context." short:"m"`
	Timeout  int      `help:"Request timeout in seconds." default:"45"`
}

func (cmd *NarrativeCmd) Run(ctx *Context) error {
	apiKey, err := keyring.ResolveAPIKey()
	if err != nil {
		return fmt.Errorf("no API key: %w (set one with 'lawtime keyring set')", err)
	}

	var b strings.Builder
	if cmd.Client != "" {
		fmt.Fprintf(&b, "Client number: %s\n", cmd.Client)
	}
	if cmd.Matter != "" {
		fmt.Fprintf(&b, "Matter number: %s\n", cmd.Matter)
	}
	b.WriteString("Keywords: ")
	b.WriteString(strings.Join(cmd.Keywords, ", "))

	client := narrative.NewClient(narrative.Config{APIKey: apiKey})

	reqCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cmd.Timeout)*time.Second)
	defer cancel()

	text, err := client.GenerateText(reqCtx, narrative.SystemInstructions, b.String())
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}
