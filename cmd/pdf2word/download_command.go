package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pdf2word/internal/history"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "download [id]",
		Short: "Download a previously converted document",
		Long: `Download fetches the Word document for a past conversion. The argument is
either a history row number or a server file identifier; without one the most
recent downloadable conversion is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, store, err := ctx.newSession()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var arg string
			if len(args) > 0 {
				arg = strings.TrimSpace(args[0])
			}
			item, err := resolveHistoryItem(cmd.Context(), store, arg)
			if err != nil {
				return err
			}

			if err := session.Restore(item); err != nil {
				return err
			}
			outputPath, err := session.Download(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, map[string]string{
					"file_id":     item.FileID,
					"output_path": outputPath,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON output")
	return cmd
}

// resolveHistoryItem maps a row number, file identifier, or empty argument to
// a downloadable history entry.
func resolveHistoryItem(ctx context.Context, store *history.Store, arg string) (*history.Item, error) {
	if arg == "" {
		items, err := store.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if item.Downloadable() {
				return item, nil
			}
		}
		return nil, errors.New("no downloadable conversions in history")
	}

	if rowID, err := strconv.ParseInt(arg, 10, 64); err == nil {
		item, err := store.GetByID(ctx, rowID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("conversion %d not found", rowID)
		}
		if !item.Downloadable() {
			return nil, fmt.Errorf("conversion %d has no downloadable document (status %s)", rowID, item.Status)
		}
		return item, nil
	}

	item, err := store.GetByFileID(ctx, arg)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("no conversion with file id %q", arg)
	}
	if !item.Downloadable() {
		return nil, fmt.Errorf("conversion %q has no downloadable document (status %s)", arg, item.Status)
	}
	return item, nil
}
