package cli

import (
	"fmt"

	"github.com/Jaccident2910/Law-CS-Timekeeping/internal/keyring"
)

// KeyringSetCmd stores the narrative API key in the OS keyring.
type KeyringSetCmd struct {
	Key string `arg:"" help:"The API key to store."`
}

func (cmd *KeyringSetCmd) Run(ctx *Context) error {
	if err := keyring.SetAPIKey(cmd.Key); err != nil {
		return err
	}
	fmt.Println("API key stored in OS keyring.")
	return nil
}

// KeyringDeleteCmd removes the narrative API key from the OS keyring.
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		return err
	}
	fmt.Println("API key removed from OS keyring.")
	return nil
}

// KeyringStatusCmd reports whether a key is resolvable without printing it.
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *Context) error {
	if _, err := keyring.ResolveAPIKey(); err != nil {
		fmt.Println("No API key available.")
		return nil
	}
	fmt.Println("API key available.")
	return nil
}
