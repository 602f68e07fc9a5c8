// Package mnemocmder
package mnemocmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/mnemo-ai/mnemo/cmd/mnemo/config"
	memorycmder "github.com/mnemo-ai/mnemo/cmd/mnemo/memory"
	servecmder "github.com/mnemo-ai/mnemo/cmd/mnemo/serve"
	versioncmder "github.com/mnemo-ai/mnemo/cmd/version"
)

const mnemoLongDesc string = `Mnemo is a per-user conversational memory service.

It persists identity facts, an entity record, and an append-only transcript
for every user, bridges chat messages to an external agent service, and
mirrors every memory mutation to connected observers.

Run services using:
  mnemo serve          Run the memory API server

Inspect the store using:
  mnemo memory list    List user keys with a memory document
  mnemo memory get     Print the memory document for a key`

const mnemoShortDesc string = "Mnemo - Conversational Memory"

func NewMnemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mnemo",
		Short: mnemoShortDesc,
		Long:  mnemoLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .mnemo/ config directory")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(memorycmder.NewMemoryCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
