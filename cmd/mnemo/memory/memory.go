// Package memorycmder provides the memory command for inspecting the
// document store from the CLI.
package memorycmder

import (
	"github.com/spf13/cobra"

	"github.com/mnemo-ai/mnemo/pkg/config"
)

const memoryLongDesc string = `Inspect persisted memory documents.

Documents live as one <key>_memory.json file per user under the configured
memory directory.

Use subcommands to list keys or print a document:
  mnemo memory list           List user keys with a memory document
  mnemo memory get <key>      Print the memory document for a key`

const memoryShortDesc string = "Inspect persisted memory documents"

func NewMemoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: memoryShortDesc,
		Long:  memoryLongDesc,
	}

	cmd.PersistentFlags().StringP("memory-dir", "m", "", "Directory holding per-user memory documents")

	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

// resolveMemoryDir resolves the store directory the same way serve does:
// explicit flag first, then the env/file/default chain.
func resolveMemoryDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("memory-dir")
	if dir != "" {
		return dir, nil
	}

	configDir, _ := cmd.Flags().GetString("config-dir")
	v, err := config.InitViper(configDir)
	if err != nil {
		return "", err
	}

	return v.GetString("memory.dir"), nil
}
