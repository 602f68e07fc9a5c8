package memorycmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mnemo-ai/mnemo/pkg/cliui"
	"github.com/mnemo-ai/mnemo/pkg/logger"
	"github.com/mnemo-ai/mnemo/pkg/memory"
	"github.com/mnemo-ai/mnemo/pkg/memory/filestore"
)

const listShortDesc string = "List user keys with a memory document"

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  "List every user key that currently has a persisted memory document.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := resolveMemoryDir(cmd)
			if err != nil {
				return err
			}
			return runList(dir)
		},
	}

	return cmd
}

func runList(dir string) error {
	store := filestore.New(dir, logger.Nop())
	defer store.Close()

	ctx := context.Background()

	keys, err := store.List(ctx)
	if err != nil {
		return err
	}

	if len(keys) == 0 {
		fmt.Printf("\n  %s\n\n", cliui.DimStyle.Render("No memory documents found."))
		return nil
	}

	fmt.Println()
	for _, key := range keys {
		summary := documentSummary(ctx, store, key)
		fmt.Printf("  %s  %s\n",
			cliui.KeyStyle.Render(key),
			cliui.DimStyle.Render(summary),
		)
	}
	fmt.Printf("\n  %d document(s)\n\n", len(keys))

	return nil
}

// documentSummary renders a one-line description of a document, tolerating
// malformed files so one corrupt document doesn't break the listing.
func documentSummary(ctx context.Context, store *filestore.Store, key string) string {
	doc, err := store.Load(ctx, key)
	if err != nil {
		if memory.IsMalformed(err) {
			return "malformed"
		}
		return "unreadable"
	}

	name := "unknown"
	if doc.UserMemory.Name != nil && *doc.UserMemory.Name != "" {
		name = *doc.UserMemory.Name
	}

	return fmt.Sprintf("name=%s messages=%d", name, len(doc.ConversationMemory.Messages))
}
