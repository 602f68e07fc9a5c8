package memorycmder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mnemo-ai/mnemo/pkg/logger"
	"github.com/mnemo-ai/mnemo/pkg/memory"
	"github.com/mnemo-ai/mnemo/pkg/memory/filestore"
)

const getLongDesc string = `Print the memory document for a user key.

Examples:
  mnemo memory get u1
  mnemo memory get u1 --memory-dir /var/lib/mnemo`

const getShortDesc string = "Print the memory document for a key"

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: getShortDesc,
		Long:  getLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveMemoryDir(cmd)
			if err != nil {
				return err
			}
			return runGet(dir, args[0])
		},
	}

	return cmd
}

func runGet(dir, key string) error {
	store := filestore.New(dir, logger.Nop())
	defer store.Close()

	doc, err := store.Load(context.Background(), key)
	if err != nil {
		if memory.IsNotFound(err) {
			return fmt.Errorf("no memory document for key %q", key)
		}
		return err
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	fmt.Println(string(out))

	return nil
}
